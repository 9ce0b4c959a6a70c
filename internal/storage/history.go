package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"renal-calculator/internal/models"
)

type History struct {
	db *sql.DB
}

func NewHistory(db *sql.DB) *History {
	return &History{db: db}
}

// Save appends a calculation and returns its id. A zero CreatedAt is
// stamped with the current time.
func (h *History) Save(ctx context.Context, c models.Calculation) (int64, error) {
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now().UTC()
	}
	res, err := h.db.ExecContext(ctx,
		"INSERT INTO calculations (user_id, kind, input, result, created_at) VALUES (?, ?, ?, ?, ?)",
		c.UserID, c.Kind, c.Input, c.Result, c.CreatedAt,
	)
	if err != nil {
		return 0, fmt.Errorf("insert calculation: %w", err)
	}
	return res.LastInsertId()
}

// List returns up to limit calculations for userID, newest first.
func (h *History) List(ctx context.Context, userID int64, limit int) ([]models.Calculation, error) {
	rows, err := h.db.QueryContext(ctx,
		"SELECT id, user_id, kind, input, result, created_at FROM calculations WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?",
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("query calculations: %w", err)
	}
	defer rows.Close()

	out := []models.Calculation{}
	for rows.Next() {
		var c models.Calculation
		if err := rows.Scan(&c.ID, &c.UserID, &c.Kind, &c.Input, &c.Result, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan calculation: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}
