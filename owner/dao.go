package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"slotbook/faults"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

func (a *Accessor) CreateOwner(ctx context.Context, owner Owner, now time.Time) (*Owner, error) {
	owner.Email = strings.ToLower(owner.Email)
	if err := owner.Validate(); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}

	id := uuid.New()

	query := `INSERT INTO owners (id, name, email, created_at) VALUES ($1, $2, $3, $4)`
	if _, err := a.db.ExecContext(ctx, query, id, owner.Name, owner.Email, now); err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, fmt.Errorf("%w: email already registered", faults.ErrConflict)
		}
		return nil, fmt.Errorf("exec context: %w", err)
	}

	return &Owner{
		ID:        id,
		Name:      owner.Name,
		Email:     owner.Email,
		CreatedAt: now,
	}, nil
}

func (a *Accessor) GetOwner(ctx context.Context, id uuid.UUID) (*Owner, error) {
	var owner Owner

	query := `SELECT id, name, email, created_at FROM owners WHERE id = $1`
	row := a.db.QueryRowContext(ctx, query, id)
	if err := row.Scan(&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan: %w", err)
	}

	return &owner, nil
}

func (a *Accessor) GetOwners(ctx context.Context) ([]Owner, error) {
	var owners []Owner

	query := `SELECT id, name, email, created_at FROM owners`
	rows, err := a.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query context: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var owner Owner
		if err := rows.Scan(&owner.ID, &owner.Name, &owner.Email, &owner.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		owners = append(owners, owner)
	}

	return owners, rows.Err()
}
