// Spotseeker - Study Spot Search and Availability API
// Copyright 2026 University of Washington
// SPDX-License-Identifier: Apache-2.0
// https://github.com/uw-it-aca/spotseeker-server-sub000

package database

import (
	"context"
	"fmt"

	"github.com/uw-it-aca/spotseeker-server-sub000/internal/models"
)

// WindowsForSpot returns all windows for a spot ordered by (day, start).
// The ordering is supplied by the query so serialization never re-sorts.
func (db *DB) WindowsForSpot(ctx context.Context, spotID string) ([]models.AvailabilityWindow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, spot_id, day, start_sec, end_sec FROM spot_windows
		 WHERE spot_id = ? ORDER BY day, start_sec`, spotID)
	if err != nil {
		return nil, fmt.Errorf("windows for spot %s: %w", spotID, err)
	}
	defer rows.Close()
	return scanWindows(rows)
}

// WindowsForDay returns a spot's windows for one day ordered by start.
func (db *DB) WindowsForDay(ctx context.Context, spotID string, day models.Day) ([]models.AvailabilityWindow, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, spot_id, day, start_sec, end_sec FROM spot_windows
		 WHERE spot_id = ? AND day = ? ORDER BY start_sec`, spotID, int(day))
	if err != nil {
		return nil, fmt.Errorf("windows for spot %s day %s: %w", spotID, day, err)
	}
	defer rows.Close()
	return scanWindows(rows)
}

// InsertWindow stores one window.
func (db *DB) InsertWindow(ctx context.Context, w *models.AvailabilityWindow) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO spot_windows (id, spot_id, day, start_sec, end_sec)
		 VALUES (?, ?, ?, ?, ?)`,
		w.ID, w.SpotID, int(w.Day), int(w.Start), int(w.End))
	if err != nil {
		return fmt.Errorf("insert window %s: %w", w.ID, err)
	}
	return nil
}

// DeleteWindow removes one window; deleting a missing window is a no-op.
func (db *DB) DeleteWindow(ctx context.Context, id string) error {
	if _, err := db.conn.ExecContext(ctx,
		"DELETE FROM spot_windows WHERE id = ?", id); err != nil {
		return fmt.Errorf("delete window %s: %w", id, err)
	}
	return nil
}

// ItemsForSpot returns a spot's items ordered by id.
func (db *DB) ItemsForSpot(ctx context.Context, spotID string) ([]models.SpotItem, error) {
	rows, err := db.conn.QueryContext(ctx,
		`SELECT id, spot_id, name, coalesce(category, ''), coalesce(subcategory, '')
		 FROM spot_items WHERE spot_id = ? ORDER BY id`, spotID)
	if err != nil {
		return nil, fmt.Errorf("items for spot %s: %w", spotID, err)
	}
	defer rows.Close()

	var items []models.SpotItem
	for rows.Next() {
		var item models.SpotItem
		if err := rows.Scan(&item.ID, &item.SpotID, &item.Name,
			&item.Category, &item.Subcategory); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// CreateItem stores one item.
func (db *DB) CreateItem(ctx context.Context, item *models.SpotItem) error {
	_, err := db.conn.ExecContext(ctx,
		`INSERT INTO spot_items (id, spot_id, name, category, subcategory)
		 VALUES (?, ?, ?, ?, ?)`,
		item.ID, item.SpotID, item.Name, item.Category, item.Subcategory)
	if err != nil {
		return fmt.Errorf("insert item %s: %w", item.ID, err)
	}
	return nil
}

func scanWindows(rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}) ([]models.AvailabilityWindow, error) {
	var windows []models.AvailabilityWindow
	for rows.Next() {
		var w models.AvailabilityWindow
		var day, start, end int
		if err := rows.Scan(&w.ID, &w.SpotID, &day, &start, &end); err != nil {
			return nil, fmt.Errorf("scan window: %w", err)
		}
		w.Day = models.Day(day)
		w.Start = models.ClockTime(start)
		w.End = models.ClockTime(end)
		windows = append(windows, w)
	}
	return windows, rows.Err()
}
