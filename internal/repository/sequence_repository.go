package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SequenceRepository struct {
	db *gorm.DB
}

func NewSequenceRepository(db *gorm.DB) *SequenceRepository {
	return &SequenceRepository{db: db}
}

// Next returns the next value of the (workspace, name) counter, creating it
// at 1 on first use. The read-modify-write runs as a single upsert, so the
// row lock serializes concurrent callers: no two of them can observe or
// return the same value.
func (r *SequenceRepository) Next(ctx context.Context, workspaceID uuid.UUID, name string) (int, error) {
	return r.NextTx(r.db.WithContext(ctx), workspaceID, name)
}

// NextTx is Next inside an already-open transaction.
func (r *SequenceRepository) NextTx(tx *gorm.DB, workspaceID uuid.UUID, name string) (int, error) {
	var value int
	err := tx.Raw(
		"INSERT INTO workspace_sequences (workspace_id, name, value) VALUES (?, ?, 1) ON CONFLICT (workspace_id, name) DO UPDATE SET value = workspace_sequences.value + 1 RETURNING value",
		workspaceID, name,
	).Scan(&value).Error
	if err != nil {
		return 0, err
	}
	return value, nil
}
