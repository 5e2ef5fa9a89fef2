// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package services

import (
	"context"
	"errors"
	"testing"
	"time"
)

type mockConsumer struct {
	runErr error
}

func (m *mockConsumer) Run(ctx context.Context) error {
	if m.runErr != nil {
		return m.runErr
	}
	<-ctx.Done()
	return ctx.Err()
}

func TestInvalidatorServiceStopsWithContext(t *testing.T) {
	svc := NewInvalidatorService(&mockConsumer{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Fatalf("Serve returned %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}

func TestInvalidatorServicePropagatesError(t *testing.T) {
	runErr := errors.New("router failed")
	svc := NewInvalidatorService(&mockConsumer{runErr: runErr})

	if err := svc.Serve(context.Background()); !errors.Is(err, runErr) {
		t.Fatalf("Serve returned %v, want the run error", err)
	}
	if svc.String() != "result-cache-invalidator" {
		t.Fatalf("String() = %q", svc.String())
	}
}
