// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package query provides SQL WHERE-clause construction for the database
// package, keeping parameter binding in one place.
package query

import (
	"strings"
)

// WhereBuilder accumulates parameterized SQL conditions joined with AND.
//
//	wb := query.NewWhereBuilder()
//	wb.AddIn("s.id", ids)
//	wb.AddSubstring("s.name", name)
//	clause, args := wb.Build()
type WhereBuilder struct {
	clauses []string
	args    []interface{}
}

// NewWhereBuilder creates an empty WhereBuilder.
func NewWhereBuilder() *WhereBuilder {
	return &WhereBuilder{}
}

// AddClause adds a raw condition fragment with its bound arguments.
func (wb *WhereBuilder) AddClause(clause string, args ...interface{}) *WhereBuilder {
	wb.clauses = append(wb.clauses, clause)
	wb.args = append(wb.args, args...)
	return wb
}

// AddIn adds a "column IN (?, ...)" condition. Empty value lists are
// skipped, not turned into an always-false condition.
func (wb *WhereBuilder) AddIn(column string, values []string) *WhereBuilder {
	if len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	for i, v := range values {
		placeholders[i] = "?"
		wb.args = append(wb.args, v)
	}
	wb.clauses = append(wb.clauses, column+" IN ("+strings.Join(placeholders, ", ")+")")
	return wb
}

// AddSubstring adds a case-insensitive substring match. Empty needles are
// skipped.
func (wb *WhereBuilder) AddSubstring(column, needle string) *WhereBuilder {
	if needle == "" {
		return wb
	}
	wb.clauses = append(wb.clauses, column+" ILIKE '%' || ? || '%'")
	wb.args = append(wb.args, needle)
	return wb
}

// AddMin adds a "column >= ?" condition when minimum is positive.
func (wb *WhereBuilder) AddMin(column string, minimum int) *WhereBuilder {
	if minimum <= 0 {
		return wb
	}
	wb.clauses = append(wb.clauses, column+" >= ?")
	wb.args = append(wb.args, minimum)
	return wb
}

// AddAttributeEquals adds an EXISTS condition against the extended-info
// table requiring the stored value for key to equal one of values.
func (wb *WhereBuilder) AddAttributeEquals(key string, values []string) *WhereBuilder {
	if key == "" || len(values) == 0 {
		return wb
	}
	placeholders := make([]string, len(values))
	wb.args = append(wb.args, key)
	for i := range placeholders {
		placeholders[i] = "?"
	}
	clause := "EXISTS (SELECT 1 FROM spot_extended_info ei WHERE ei.spot_id = s.id" +
		" AND ei.key = ? AND ei.value IN (" + strings.Join(placeholders, ", ") + "))"
	wb.clauses = append(wb.clauses, clause)
	for _, v := range values {
		wb.args = append(wb.args, v)
	}
	return wb
}

// Build returns the assembled WHERE clause (including the leading "WHERE",
// or an empty string when no conditions were added) and the bound arguments.
func (wb *WhereBuilder) Build() (string, []interface{}) {
	if len(wb.clauses) == 0 {
		return "", nil
	}
	return "WHERE " + strings.Join(wb.clauses, " AND "), wb.args
}
