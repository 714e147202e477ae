package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sharpcut/booking-backend-go/internal/domain/availability"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
)

type blockRepositoryImpl struct {
	db *database.DB
}

func NewBlockRepository(db *database.DB) availability.BlockRepository {
	return &blockRepositoryImpl{db: db}
}

// DeleteBetween implements availability.BlockRepository.
func (r *blockRepositoryImpl) DeleteBetween(ctx context.Context, employeeID string, from, to time.Time) error {
	q := GetQuerier(ctx, r.db)

	query := `
		DELETE FROM availability_blocks
		WHERE employee_id = $1 AND start_at >= $2 AND start_at < $3
	`

	if _, err := q.Exec(ctx, query, employeeID, from, to); err != nil {
		return fmt.Errorf("failed to delete availability blocks: %w", err)
	}
	return nil
}

// InsertMany implements availability.BlockRepository.
func (r *blockRepositoryImpl) InsertMany(ctx context.Context, blocks []availability.Block) error {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO availability_blocks (id, employee_id, start_at, end_at, created_at)
		VALUES ($1, $2, $3, $4, NOW())
	`

	for _, block := range blocks {
		id := block.ID
		if id == "" {
			id = uuid.NewString()
		}
		if _, err := q.Exec(ctx, query, id, block.EmployeeID, block.StartAt, block.EndAt); err != nil {
			return fmt.Errorf("failed to insert availability block: %w", err)
		}
	}
	return nil
}

// ExistsBetween implements availability.BlockRepository.
func (r *blockRepositoryImpl) ExistsBetween(ctx context.Context, employeeID string, from, to time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT EXISTS (
			SELECT 1 FROM availability_blocks
			WHERE employee_id = $1 AND start_at >= $2 AND start_at < $3
		)
	`

	var exists bool
	if err := q.QueryRow(ctx, query, employeeID, from, to).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check availability blocks: %w", err)
	}
	return exists, nil
}

// ListBetween implements availability.BlockRepository.
func (r *blockRepositoryImpl) ListBetween(ctx context.Context, employeeID string, from, to time.Time) ([]availability.Block, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, start_at, end_at, created_at
		FROM availability_blocks
		WHERE employee_id = $1 AND start_at >= $2 AND start_at < $3
		ORDER BY start_at
	`

	rows, err := q.Query(ctx, query, employeeID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to list availability blocks: %w", err)
	}
	defer rows.Close()

	var blocks []availability.Block
	for rows.Next() {
		var block availability.Block
		if err := rows.Scan(
			&block.ID,
			&block.EmployeeID,
			&block.StartAt,
			&block.EndAt,
			&block.CreatedAt,
		); err != nil {
			return nil, err
		}
		blocks = append(blocks, block)
	}
	return blocks, rows.Err()
}
