// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package validation

import (
	"strings"
	"testing"
)

type windowRequest struct {
	Day   string `validate:"required,daycode"`
	Start string `validate:"required,clocktime"`
	End   string `validate:"required,clocktime"`
}

func TestValidateStructPasses(t *testing.T) {
	req := windowRequest{Day: "th", Start: "09:00", End: "17:30"}
	if err := ValidateStruct(&req); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestDaycodeValidator(t *testing.T) {
	cases := []struct {
		day string
		ok  bool
	}{
		{"su", true},
		{"m", true},
		{"sa", true},
		{"monday", true},
		{"Friday", true},
		{"mon", false},
		{"x", false},
	}
	for _, tc := range cases {
		req := windowRequest{Day: tc.day, Start: "09:00", End: "17:00"}
		err := ValidateStruct(&req)
		if (err == nil) != tc.ok {
			t.Errorf("day %q: err = %v, want ok=%v", tc.day, err, tc.ok)
		}
	}
}

func TestClocktimeValidator(t *testing.T) {
	cases := []struct {
		clock string
		ok    bool
	}{
		{"00:00", true},
		{"23:59", true},
		{"09:30:15", true},
		{"24:00", false},
		{"9am", false},
		{"12:60", false},
	}
	for _, tc := range cases {
		req := windowRequest{Day: "m", Start: tc.clock, End: "23:59"}
		err := ValidateStruct(&req)
		if (err == nil) != tc.ok {
			t.Errorf("clock %q: err = %v, want ok=%v", tc.clock, err, tc.ok)
		}
	}
}

func TestToAPIErrorSingleField(t *testing.T) {
	req := windowRequest{Day: "nope", Start: "09:00", End: "17:00"}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}

	apiErr := err.ToAPIError()
	if apiErr.Code != "VALIDATION_ERROR" {
		t.Errorf("code = %q", apiErr.Code)
	}
	if !strings.Contains(apiErr.Message, "Day") {
		t.Errorf("message %q does not name the field", apiErr.Message)
	}
	if apiErr.Details["field"] != "Day" {
		t.Errorf("details = %v", apiErr.Details)
	}
}

func TestToAPIErrorMultipleFields(t *testing.T) {
	req := windowRequest{}
	err := ValidateStruct(&req)
	if err == nil {
		t.Fatal("expected validation error")
	}
	if len(err.Errors()) != 3 {
		t.Errorf("got %d field errors, want 3", len(err.Errors()))
	}

	apiErr := err.ToAPIError()
	if _, ok := apiErr.Details["fields"]; !ok {
		t.Error("multi-field error missing fields detail")
	}
}
