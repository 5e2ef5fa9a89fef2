// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/database/query"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
	"github.com/uw-it-aca/spotseeker-server-sub000/internal/version"
)

const spotColumns = "s.id, s.name, s.capacity, s.latitude, s.longitude, s.elevation, s.etag, s.last_modified"

// CreateSpot inserts a spot and its extended-info rows in one transaction.
func (db *DB) CreateSpot(ctx context.Context, spot *models.Spot) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin create spot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO spots (id, name, capacity, latitude, longitude, elevation, etag, last_modified)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		spot.ID, spot.Name, spot.Capacity, spot.Latitude, spot.Longitude,
		floatNull(spot.Elevation), spot.ETag, timestamp(spot.LastModified))
	if err != nil {
		return fmt.Errorf("insert spot %s: %w", spot.ID, err)
	}

	if err := insertExtendedInfo(ctx, tx, spot.ID, spot.ExtendedInfo); err != nil {
		return err
	}
	return tx.Commit()
}

// GetSpot returns one spot with its extended info.
func (db *DB) GetSpot(ctx context.Context, id string) (models.Spot, error) {
	row := db.conn.QueryRowContext(ctx,
		"SELECT "+spotColumns+" FROM spots s WHERE s.id = ?", id)

	spot, err := scanSpot(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.Spot{}, ErrNotFound
		}
		return models.Spot{}, fmt.Errorf("get spot %s: %w", id, err)
	}

	info, err := db.extendedInfoFor(ctx, []string{id})
	if err != nil {
		return models.Spot{}, err
	}
	spot.ExtendedInfo = info[id]
	return spot, nil
}

// QuerySpots returns spots matching the filter in primary-key order.
func (db *DB) QuerySpots(ctx context.Context, filter SpotFilter) ([]models.Spot, error) {
	wb := query.NewWhereBuilder()
	wb.AddIn("s.id", filter.IDs)
	wb.AddSubstring("s.name", filter.NameContains)
	wb.AddMin("s.capacity", filter.MinCapacity)
	for key, values := range filter.ExtendedInfo {
		wb.AddAttributeEquals(key, values)
	}
	clause, args := wb.Build()

	rows, err := db.conn.QueryContext(ctx,
		"SELECT "+spotColumns+" FROM spots s "+clause+" ORDER BY s.id", args...)
	if err != nil {
		return nil, fmt.Errorf("query spots: %w", err)
	}
	defer rows.Close()

	var spots []models.Spot
	var ids []string
	for rows.Next() {
		spot, err := scanSpot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan spot: %w", err)
		}
		spots = append(spots, spot)
		ids = append(ids, spot.ID)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate spots: %w", err)
	}

	info, err := db.extendedInfoFor(ctx, ids)
	if err != nil {
		return nil, err
	}
	for i := range spots {
		spots[i].ExtendedInfo = info[spots[i].ID]
	}
	return spots, nil
}

// UpdateSpot replaces a spot's fields. The UPDATE is conditioned on the
// expected token, which makes concurrent writers to the same spot serialize:
// the loser's statement matches zero rows and fails with ErrConflict.
func (db *DB) UpdateSpot(ctx context.Context, spot *models.Spot, expectedToken string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin update spot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		`UPDATE spots SET name = ?, capacity = ?, latitude = ?, longitude = ?,
		 elevation = ?, etag = ?, last_modified = ?
		 WHERE id = ? AND etag = ?`,
		spot.Name, spot.Capacity, spot.Latitude, spot.Longitude,
		floatNull(spot.Elevation), spot.ETag, timestamp(spot.LastModified),
		spot.ID, expectedToken)
	if err != nil {
		return fmt.Errorf("update spot %s: %w", spot.ID, err)
	}
	if err := db.requireCASHit(ctx, tx, res, spot.ID); err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx,
		"DELETE FROM spot_extended_info WHERE spot_id = ?", spot.ID); err != nil {
		return fmt.Errorf("clear extended info for %s: %w", spot.ID, err)
	}
	if err := insertExtendedInfo(ctx, tx, spot.ID, spot.ExtendedInfo); err != nil {
		return err
	}
	return tx.Commit()
}

// DeleteSpot removes a spot and everything it owns, conditioned on the
// expected token.
func (db *DB) DeleteSpot(ctx context.Context, id, expectedToken string) error {
	tx, err := db.conn.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete spot: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	res, err := tx.ExecContext(ctx,
		"DELETE FROM spots WHERE id = ? AND etag = ?", id, expectedToken)
	if err != nil {
		return fmt.Errorf("delete spot %s: %w", id, err)
	}
	if err := db.requireCASHit(ctx, tx, res, id); err != nil {
		return err
	}

	for _, table := range []string{"spot_extended_info", "spot_windows", "spot_items"} {
		if _, err := tx.ExecContext(ctx,
			"DELETE FROM "+table+" WHERE spot_id = ?", id); err != nil {
			return fmt.Errorf("cascade delete %s for %s: %w", table, id, err)
		}
	}
	return tx.Commit()
}

// TouchSpot advances the version token after a child write, conditioned on
// the expected token.
func (db *DB) TouchSpot(ctx context.Context, id, expectedToken, newToken string, now time.Time) error {
	res, err := db.conn.ExecContext(ctx,
		"UPDATE spots SET etag = ?, last_modified = ? WHERE id = ? AND etag = ?",
		newToken, timestamp(now), id, expectedToken)
	if err != nil {
		return fmt.Errorf("touch spot %s: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("touch spot %s: %w", id, err)
	}
	if affected == 0 {
		exists, err := db.spotExists(ctx, db.conn, id)
		if err != nil {
			return err
		}
		if !exists {
			return ErrNotFound
		}
		return version.ErrConflict
	}
	return nil
}

// requireCASHit distinguishes a missing spot from a stale token when a
// token-conditioned statement matched zero rows.
func (db *DB) requireCASHit(ctx context.Context, tx *sql.Tx, res sql.Result, id string) error {
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for %s: %w", id, err)
	}
	if affected > 0 {
		return nil
	}
	exists, err := db.spotExists(ctx, tx, id)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return version.ErrConflict
}

type queryer interface {
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

func (db *DB) spotExists(ctx context.Context, q queryer, id string) (bool, error) {
	var n int
	if err := q.QueryRowContext(ctx,
		"SELECT count(*) FROM spots WHERE id = ?", id).Scan(&n); err != nil {
		return false, fmt.Errorf("check spot %s: %w", id, err)
	}
	return n > 0, nil
}

// scanner abstracts sql.Row and sql.Rows.
type scanner interface {
	Scan(dest ...interface{}) error
}

func scanSpot(s scanner) (models.Spot, error) {
	var spot models.Spot
	var elevation sql.NullFloat64
	err := s.Scan(&spot.ID, &spot.Name, &spot.Capacity, &spot.Latitude,
		&spot.Longitude, &elevation, &spot.ETag, &spot.LastModified)
	if err != nil {
		return models.Spot{}, err
	}
	spot.Elevation = nullFloat(elevation)
	return spot, nil
}

func insertExtendedInfo(ctx context.Context, tx *sql.Tx, spotID string, info models.ExtendedInfo) error {
	for _, key := range info.Keys() {
		value, _ := info.Get(key)
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO spot_extended_info (spot_id, key, value) VALUES (?, ?, ?)",
			spotID, key, value); err != nil {
			return fmt.Errorf("insert extended info %s[%s]: %w", spotID, key, err)
		}
	}
	return nil
}

// extendedInfoFor batch-loads extended info for a set of spot ids.
func (db *DB) extendedInfoFor(ctx context.Context, ids []string) (map[string]models.ExtendedInfo, error) {
	out := make(map[string]models.ExtendedInfo, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := db.conn.QueryContext(ctx,
		"SELECT spot_id, key, value FROM spot_extended_info WHERE spot_id IN ("+
			strings.Join(placeholders, ", ")+")", args...)
	if err != nil {
		return nil, fmt.Errorf("load extended info: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var spotID, key, value string
		if err := rows.Scan(&spotID, &key, &value); err != nil {
			return nil, fmt.Errorf("scan extended info: %w", err)
		}
		info := out[spotID]
		info.Set(key, value)
		out[spotID] = info
	}
	return out, rows.Err()
}
