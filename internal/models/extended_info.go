// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package models

import (
	"bytes"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// ExtendedInfo is the free-form attribute bag attached to a spot: a mapping
// of string keys to string values with one value per key. Iteration and
// serialization order is lexicographic by key so a spot's serialized form is
// a pure function of its content.
type ExtendedInfo struct {
	values map[string]string
}

// NewExtendedInfo creates an ExtendedInfo from an existing map. The map is
// copied; the caller keeps ownership of its argument.
func NewExtendedInfo(values map[string]string) ExtendedInfo {
	info := ExtendedInfo{}
	for k, v := range values {
		info.Set(k, v)
	}
	return info
}

// Set stores a value under key, replacing any previous value.
func (e *ExtendedInfo) Set(key, value string) {
	if e.values == nil {
		e.values = make(map[string]string)
	}
	e.values[key] = value
}

// Get returns the value for key and whether it is present.
func (e ExtendedInfo) Get(key string) (string, bool) {
	v, ok := e.values[key]
	return v, ok
}

// Delete removes key if present.
func (e *ExtendedInfo) Delete(key string) {
	delete(e.values, key)
}

// Len returns the number of stored keys.
func (e ExtendedInfo) Len() int {
	return len(e.values)
}

// Keys returns all keys in lexicographic order.
func (e ExtendedInfo) Keys() []string {
	keys := make([]string, 0, len(e.values))
	for k := range e.values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Map returns a copy of the underlying key/value pairs.
func (e ExtendedInfo) Map() map[string]string {
	out := make(map[string]string, len(e.values))
	for k, v := range e.values {
		out[k] = v
	}
	return out
}

// MarshalJSON encodes the bag as a JSON object with keys in lexicographic
// order.
func (e ExtendedInfo) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, k := range e.Keys() {
		if i > 0 {
			buf.WriteByte(',')
		}
		kb, err := json.Marshal(k)
		if err != nil {
			return nil, err
		}
		vb, err := json.Marshal(e.values[k])
		if err != nil {
			return nil, err
		}
		buf.Write(kb)
		buf.WriteByte(':')
		buf.Write(vb)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes a JSON object of string values.
func (e *ExtendedInfo) UnmarshalJSON(data []byte) error {
	var raw map[string]string
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	e.values = raw
	return nil
}

// KeyRule validates the value stored under one recognized extended-info key.
// Rules are selected by name at startup from the deployment profile in the
// configuration; adding a new rule means adding a named implementation here,
// not branching at call sites.
type KeyRule interface {
	// Validate returns a descriptive error when value is not acceptable.
	Validate(value string) error
}

// AnyValue accepts every non-empty value.
type AnyValue struct{}

// Validate implements KeyRule.
func (AnyValue) Validate(value string) error {
	if value == "" {
		return fmt.Errorf("value must not be empty")
	}
	return nil
}

// BoolValue accepts "true" and "false".
type BoolValue struct{}

// Validate implements KeyRule.
func (BoolValue) Validate(value string) error {
	if value != "true" && value != "false" {
		return fmt.Errorf("value %q is not a boolean", value)
	}
	return nil
}

// IntValue accepts non-negative decimal integers.
type IntValue struct{}

// Validate implements KeyRule.
func (IntValue) Validate(value string) error {
	n, err := strconv.Atoi(value)
	if err != nil || n < 0 {
		return fmt.Errorf("value %q is not a non-negative integer", value)
	}
	return nil
}

// OneOfValue accepts only values from a fixed set.
type OneOfValue struct {
	Allowed []string
}

// Validate implements KeyRule.
func (r OneOfValue) Validate(value string) error {
	for _, a := range r.Allowed {
		if value == a {
			return nil
		}
	}
	return fmt.Errorf("value %q is not one of %s", value, strings.Join(r.Allowed, ", "))
}

// KeyProfile is the closed set of recognized extended-info keys for one
// deployment, with a validation rule per key. An empty profile recognizes
// every key with AnyValue semantics (the development default).
type KeyProfile struct {
	rules map[string]KeyRule
}

// NewKeyProfile builds a profile from key to rule assignments.
func NewKeyProfile(rules map[string]KeyRule) *KeyProfile {
	return &KeyProfile{rules: rules}
}

// RuleByName resolves a configured rule name to its implementation.
// Supported names: "any", "bool", "int", and "oneof:a|b|c".
func RuleByName(name string) (KeyRule, error) {
	switch {
	case name == "any" || name == "":
		return AnyValue{}, nil
	case name == "bool":
		return BoolValue{}, nil
	case name == "int":
		return IntValue{}, nil
	case strings.HasPrefix(name, "oneof:"):
		allowed := strings.Split(strings.TrimPrefix(name, "oneof:"), "|")
		if len(allowed) == 0 || allowed[0] == "" {
			return nil, fmt.Errorf("oneof rule needs at least one value")
		}
		return OneOfValue{Allowed: allowed}, nil
	default:
		return nil, fmt.Errorf("unknown extended info rule %q", name)
	}
}

// Validate checks every key/value pair in info against the profile.
// Unrecognized keys are rejected when the profile is non-empty.
func (p *KeyProfile) Validate(info ExtendedInfo) error {
	if p == nil || len(p.rules) == 0 {
		for _, k := range info.Keys() {
			v, _ := info.Get(k)
			if err := (AnyValue{}).Validate(v); err != nil {
				return fmt.Errorf("extended_info[%s]: %w", k, err)
			}
		}
		return nil
	}

	for _, k := range info.Keys() {
		rule, ok := p.rules[k]
		if !ok {
			return fmt.Errorf("extended_info key %q is not recognized by this deployment", k)
		}
		v, _ := info.Get(k)
		if err := rule.Validate(v); err != nil {
			return fmt.Errorf("extended_info[%s]: %w", k, err)
		}
	}
	return nil
}
