// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package events

import (
	"context"
	"fmt"
	"time"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/cache"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/logging"
)

// Invalidator subscribes to spot mutations and evicts the mutated spot from
// the result cache. Write handlers also evict directly; the subscriber is
// the backstop that keeps the cache coherent for writers that bypass the
// HTTP layer.
type Invalidator struct {
	router *message.Router
}

// NewInvalidator wires a Watermill router with a single no-publisher
// handler on the mutation topic.
func NewInvalidator(bus *Bus, results *cache.ResultCache, logger watermill.LoggerAdapter) (*Invalidator, error) {
	if logger == nil {
		logger = watermill.NopLogger{}
	}

	router, err := message.NewRouter(message.RouterConfig{
		CloseTimeout: 15 * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("create event router: %w", err)
	}
	router.AddMiddleware(middleware.Recoverer)

	router.AddNoPublisherHandler(
		"result-cache-invalidator",
		TopicSpotMutated,
		bus.Subscriber(),
		func(msg *message.Message) error {
			e, err := Deserialize(msg.Payload)
			if err != nil {
				logging.Warn().Err(err).Str("message_uuid", msg.UUID).
					Msg("Dropping malformed mutation event")
				return nil
			}
			results.Evict(e.SpotID)
			logging.Debug().Str("spot_id", e.SpotID).Bool("deleted", e.Deleted).
				Msg("Evicted cached spot after mutation")
			return nil
		},
	)

	return &Invalidator{router: router}, nil
}

// Run blocks until the context is canceled or the router stops.
func (i *Invalidator) Run(ctx context.Context) error {
	return i.router.Run(ctx)
}

// Running returns a channel closed once all handlers are subscribed.
func (i *Invalidator) Running() <-chan struct{} {
	return i.router.Running()
}

// Close stops the router and waits for in-flight handlers.
func (i *Invalidator) Close() error {
	return i.router.Close()
}
