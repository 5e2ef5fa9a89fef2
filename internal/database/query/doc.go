// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

// Package query builds parameterized SQL WHERE clauses for spot catalog
// queries. See WhereBuilder.
package query
