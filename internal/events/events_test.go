// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package events

import (
	"context"
	"testing"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/cache"
)

func TestSerializeRoundTrip(t *testing.T) {
	e := SpotMutated{
		SpotID:     "spot-1",
		ETag:       "tok-b",
		Deleted:    true,
		OccurredAt: time.Date(2026, 8, 28, 10, 0, 0, 0, time.UTC),
	}

	data, err := Serialize(e)
	if err != nil {
		t.Fatalf("serialize: %v", err)
	}
	got, err := Deserialize(data)
	if err != nil {
		t.Fatalf("deserialize: %v", err)
	}
	if got != e {
		t.Errorf("round trip = %+v, want %+v", got, e)
	}
}

func TestDeserializeRejectsGarbage(t *testing.T) {
	if _, err := Deserialize([]byte("not json")); err == nil {
		t.Error("expected error for malformed payload")
	}
}

func TestPublishMutationStampsTime(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()

	msgs, err := bus.Subscribe(context.Background(), TopicSpotMutated)
	if err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	if err := bus.PublishMutation(context.Background(), SpotMutated{SpotID: "spot-1"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	select {
	case msg := <-msgs:
		e, err := Deserialize(msg.Payload)
		if err != nil {
			t.Fatalf("deserialize: %v", err)
		}
		if e.OccurredAt.IsZero() {
			t.Error("event published without timestamp")
		}
		if msg.Metadata.Get("spot_id") != "spot-1" {
			t.Errorf("spot_id metadata = %q", msg.Metadata.Get("spot_id"))
		}
		msg.Ack()
	case <-time.After(time.Second):
		t.Fatal("no message received")
	}
}

func TestPublishAfterCloseFails(t *testing.T) {
	bus := NewBus(nil)
	bus.Close()

	if err := bus.PublishMutation(context.Background(), SpotMutated{SpotID: "x"}); err == nil {
		t.Error("expected error publishing on closed bus")
	}
}

func TestInvalidatorEvictsMutatedSpot(t *testing.T) {
	bus := NewBus(nil)
	defer bus.Close()
	results := cache.New(time.Minute, 0)
	results.Put("spot-1", "tok-a", []byte("body"))
	results.Put("spot-2", "tok-x", []byte("other"))

	inv, err := NewInvalidator(bus, results, nil)
	if err != nil {
		t.Fatalf("new invalidator: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- inv.Run(ctx) }()
	<-inv.Running()

	if err := bus.PublishMutation(ctx, SpotMutated{SpotID: "spot-1", ETag: "tok-b"}); err != nil {
		t.Fatalf("publish: %v", err)
	}

	deadline := time.After(2 * time.Second)
	for {
		if _, ok := results.Get("spot-1", "tok-a"); !ok {
			break
		}
		select {
		case <-deadline:
			t.Fatal("cached entry was not evicted")
		case <-time.After(10 * time.Millisecond):
		}
	}

	// Unrelated entries stay put.
	if _, ok := results.Get("spot-2", "tok-x"); !ok {
		t.Error("unrelated cache entry evicted")
	}

	cancel()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("router did not stop")
	}
}
