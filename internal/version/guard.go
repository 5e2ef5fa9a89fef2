// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package version implements single-writer-wins optimistic concurrency for
// spots. Every mutating request must present the version token (ETag) it
// last observed; the guard validates it against the entity's current token
// and issues a fresh one when the mutation commits.
//
// Tokens are drawn from a high-entropy source, never from content hashing:
// a delete followed by a recreate with identical fields must not produce a
// token a stale client could still hold.
package version

import (
	"errors"

	"github.com/google/uuid"
)

// Guard errors, mapped to client errors by the API layer.
var (
	// ErrPreconditionRequired means a mutating request carried no token.
	ErrPreconditionRequired = errors.New("version token required for mutating request")

	// ErrConflict means the presented token does not match the entity's
	// current token. The entity is left unmodified; the caller must
	// re-read and retry with the fresh token.
	ErrConflict = errors.New("version token is stale")
)

// Issue generates a new opaque version token. Successive calls never repeat,
// so a superseded token is permanently invalid even when the mutation that
// replaced it was a content no-op.
func Issue() string {
	return uuid.NewString()
}

// Validate checks a presented token against the entity's current token.
// An empty presented token fails with ErrPreconditionRequired; a mismatch
// fails with ErrConflict.
func Validate(presented, current string) error {
	if presented == "" {
		return ErrPreconditionRequired
	}
	if presented != current {
		return ErrConflict
	}
	return nil
}
