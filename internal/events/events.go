// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package events carries spot mutation notifications over an in-process
// Watermill pub/sub. Writers publish after every successful mutation;
// subscribers keep derived state (the result cache) coherent without the
// write path knowing about them.
package events

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// TopicSpotMutated carries one message per successful spot mutation,
// including deletes and child-entity writes that advanced the spot token.
const TopicSpotMutated = "spot.mutated"

// SpotMutated describes one committed change to a spot.
type SpotMutated struct {
	SpotID     string    `json:"spot_id"`
	ETag       string    `json:"etag"`
	Deleted    bool      `json:"deleted"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Serialize encodes the event for transport.
func Serialize(e SpotMutated) ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("serialize spot mutation: %w", err)
	}
	return data, nil
}

// Deserialize decodes an event from transport form.
func Deserialize(data []byte) (SpotMutated, error) {
	var e SpotMutated
	if err := json.Unmarshal(data, &e); err != nil {
		return SpotMutated{}, fmt.Errorf("deserialize spot mutation: %w", err)
	}
	return e, nil
}
