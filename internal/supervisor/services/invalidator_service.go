// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package services

import (
	"context"
)

// MutationConsumer matches the cache invalidator's Run method without
// importing the events package, avoiding a dependency cycle in tests.
//
// Satisfied by *events.Invalidator.
type MutationConsumer interface {
	// Run consumes mutation events until the context is canceled.
	Run(ctx context.Context) error
}

// InvalidatorService wraps the result-cache invalidator as a supervised
// service, so a crashed event router is restarted instead of silently
// leaving stale cache entries behind.
type InvalidatorService struct {
	consumer MutationConsumer
	name     string
}

// NewInvalidatorService creates a cache invalidator service wrapper.
func NewInvalidatorService(consumer MutationConsumer) *InvalidatorService {
	return &InvalidatorService{
		consumer: consumer,
		name:     "result-cache-invalidator",
	}
}

// Serve implements suture.Service.
func (s *InvalidatorService) Serve(ctx context.Context) error {
	return s.consumer.Run(ctx)
}

// String implements fmt.Stringer; suture uses it in log messages.
func (s *InvalidatorService) String() string {
	return s.name
}
