package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/sharpcut/booking-backend-go/internal/domain/client"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
)

type clientRepositoryImpl struct {
	db *database.DB
}

func NewClientRepository(db *database.DB) client.ClientRepository {
	return &clientRepositoryImpl{db: db}
}

// Create implements client.ClientRepository.
func (r *clientRepositoryImpl) Create(ctx context.Context, c client.Client) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO clients (id, user_id, name, phone, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING created_at, updated_at
	`

	c.ID = uuid.NewString()
	err := q.QueryRow(ctx, query, c.ID, c.UserID, c.Name, c.Phone).Scan(&c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return client.Client{}, fmt.Errorf("failed to insert client: %w", err)
	}
	return c, nil
}

// GetByUserID implements client.ClientRepository.
func (r *clientRepositoryImpl) GetByUserID(ctx context.Context, userID string) (client.Client, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, user_id, name, phone, created_at, updated_at
		FROM clients
		WHERE user_id = $1
	`

	var c client.Client
	err := q.QueryRow(ctx, query, userID).Scan(
		&c.ID, &c.UserID, &c.Name, &c.Phone, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return client.Client{}, client.ErrClientNotFound
		}
		return client.Client{}, fmt.Errorf("failed to get client: %w", err)
	}
	return c, nil
}
