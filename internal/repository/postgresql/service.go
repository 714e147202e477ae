package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/sharpcut/booking-backend-go/internal/domain/catalog"
	"github.com/sharpcut/booking-backend-go/internal/pkg/database"
)

type serviceRepositoryImpl struct {
	db *database.DB
}

func NewServiceRepository(db *database.DB) catalog.ServiceRepository {
	return &serviceRepositoryImpl{db: db}
}

// Create implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) Create(ctx context.Context, service catalog.Service) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO services (id, name, duration_minutes, price_cents, active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, true, NOW(), NOW())
		RETURNING active, created_at, updated_at
	`

	service.ID = uuid.NewString()
	err := q.QueryRow(ctx, query,
		service.ID, service.Name, service.DurationMinutes, service.PriceCents,
	).Scan(&service.Active, &service.CreatedAt, &service.UpdatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return catalog.Service{}, catalog.ErrServiceNameExists
		}
		return catalog.Service{}, fmt.Errorf("failed to insert service: %w", err)
	}
	return service, nil
}

// GetByID implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) GetByID(ctx context.Context, id string) (catalog.Service, error) {
	return r.get(ctx, id, false)
}

// GetActiveByID implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) GetActiveByID(ctx context.Context, id string) (catalog.Service, error) {
	return r.get(ctx, id, true)
}

func (r *serviceRepositoryImpl) get(ctx context.Context, id string, activeOnly bool) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, duration_minutes, price_cents, active, created_at, updated_at
		FROM services
		WHERE id = $1
	`
	if activeOnly {
		query += ` AND active`
	}

	var service catalog.Service
	err := q.QueryRow(ctx, query, id).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceCents,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to get service: %w", err)
	}
	return service, nil
}

// List implements catalog.ServiceRepository.
func (r *serviceRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, duration_minutes, price_cents, active, created_at, updated_at
		FROM services
	`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list services: %w", err)
	}
	defer rows.Close()

	var services []catalog.Service
	for rows.Next() {
		var service catalog.Service
		if err := rows.Scan(
			&service.ID,
			&service.Name,
			&service.DurationMinutes,
			&service.PriceCents,
			&service.Active,
			&service.CreatedAt,
			&service.UpdatedAt,
		); err != nil {
			return nil, err
		}
		services = append(services, service)
	}
	return services, rows.Err()
}

// Update implements catalog.ServiceRepository. Duration is deliberately not
// updatable: existing appointments were sized by it.
func (r *serviceRepositoryImpl) Update(ctx context.Context, req catalog.UpdateServiceRequest) (catalog.Service, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE services
		SET name = COALESCE($2, name),
			price_cents = COALESCE($3, price_cents),
			active = COALESCE($4, active),
			updated_at = NOW()
		WHERE id = $1
		RETURNING id, name, duration_minutes, price_cents, active, created_at, updated_at
	`

	var service catalog.Service
	err := q.QueryRow(ctx, query, req.ID, req.Name, req.PriceCents, req.Active).Scan(
		&service.ID,
		&service.Name,
		&service.DurationMinutes,
		&service.PriceCents,
		&service.Active,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return catalog.Service{}, catalog.ErrServiceNotFound
		}
		return catalog.Service{}, fmt.Errorf("failed to update service: %w", err)
	}
	return service, nil
}
