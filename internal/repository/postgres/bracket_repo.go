package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portos/internal/domain"
	"portos/internal/port"
)

type bracketRepo struct {
	db *sqlx.DB
}

// NewBracketRepo creates a new PostgreSQL-backed BracketRepository.
func NewBracketRepo(db *sqlx.DB) port.BracketRepository {
	return &bracketRepo{db: db}
}

func (r *bracketRepo) ListByKind(ctx context.Context, kind domain.BracketKind) ([]domain.BracketTier, error) {
	var tiers []domain.BracketTier
	err := r.db.SelectContext(ctx, &tiers,
		"SELECT * FROM bracket_tiers WHERE kind = $1 AND is_active = TRUE ORDER BY min_amount", kind)
	if err != nil {
		return nil, fmt.Errorf("bracketRepo.ListByKind: %w", err)
	}
	return tiers, nil
}

// ReplaceKind swaps the whole tier table of one kind inside a transaction so
// readers never observe a partial table.
func (r *bracketRepo) ReplaceKind(ctx context.Context, kind domain.BracketKind, tiers []domain.BracketTier) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("bracketRepo.ReplaceKind begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM bracket_tiers WHERE kind = $1", kind); err != nil {
		return fmt.Errorf("bracketRepo.ReplaceKind delete: %w", err)
	}

	now := time.Now().UTC()
	query := `INSERT INTO bracket_tiers
		(id, kind, min_amount, max_amount, taux,
		 sal_min_emp, sal_max_emp, sal_min_pat, sal_max_pat,
		 pr_min_emp, pr_max_emp, pr_min_pat, pr_max_pat,
		 is_active, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`

	for _, t := range tiers {
		if t.ID == uuid.Nil {
			t.ID = uuid.New()
		}
		t.Kind = kind
		_, err := tx.ExecContext(ctx, query,
			t.ID, t.Kind, t.Min, t.Max, t.Rate,
			t.SalMinEmployee, t.SalMaxEmployee, t.SalMinOwner, t.SalMaxOwner,
			t.BonusMinEmployee, t.BonusMaxEmployee, t.BonusMinOwner, t.BonusMaxOwner,
			true, now)
		if err != nil {
			return fmt.Errorf("bracketRepo.ReplaceKind insert: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("bracketRepo.ReplaceKind commit: %w", err)
	}
	return nil
}
