package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"portfolio-web/internal/domain"
)

type ContactRepository interface {
	Create(ctx context.Context, contact *domain.Contact) error
}

type PgContactRepository struct {
	pool *pgxpool.Pool
}

func NewPgContactRepository(pool *pgxpool.Pool) *PgContactRepository {
	return &PgContactRepository{pool: pool}
}

// Create inserta el mensaje como no leido y completa ID y EnvoyeLe.
func (r *PgContactRepository) Create(ctx context.Context, contact *domain.Contact) error {
	const query = `
		INSERT INTO contacts (nom, email, sujet, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, envoye_le
	`
	return r.pool.QueryRow(ctx, query,
		contact.Nom,
		contact.Email,
		contact.Sujet,
		contact.Message,
	).Scan(&contact.ID, &contact.EnvoyeLe)
}
