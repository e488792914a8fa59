package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"portos/internal/domain"
	"portos/internal/port"
)

type enterpriseRepo struct {
	db *sqlx.DB
}

// NewEnterpriseRepo creates a new PostgreSQL-backed EnterpriseRepository.
func NewEnterpriseRepo(db *sqlx.DB) port.EnterpriseRepository {
	return &enterpriseRepo{db: db}
}

func (r *enterpriseRepo) Create(ctx context.Context, e *domain.Enterprise) error {
	now := time.Now().UTC()
	e.CreatedAt = now
	e.UpdatedAt = now

	query := `INSERT INTO enterprises
		(id, name, guild_id, staff_role_id, patron_role_id, co_patron_role_id, dot_role_id, employe_role_id, is_active, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	_, err := r.db.ExecContext(ctx, query,
		e.ID, e.Name, e.GuildID, e.StaffRoleID, e.PatronRoleID, e.CoPatronRoleID,
		e.DotRoleID, e.EmployeRoleID, e.IsActive, e.CreatedAt, e.UpdatedAt)
	if err != nil {
		return fmt.Errorf("enterpriseRepo.Create: %w", err)
	}
	return nil
}

func (r *enterpriseRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Enterprise, error) {
	var e domain.Enterprise
	err := r.db.GetContext(ctx, &e, "SELECT * FROM enterprises WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("enterpriseRepo.GetByID: %w", err)
	}
	return &e, nil
}

func (r *enterpriseRepo) GetByGuildID(ctx context.Context, guildID string) (*domain.Enterprise, error) {
	var e domain.Enterprise
	err := r.db.GetContext(ctx, &e, "SELECT * FROM enterprises WHERE guild_id = $1", guildID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("enterpriseRepo.GetByGuildID: %w", err)
	}
	return &e, nil
}

func (r *enterpriseRepo) List(ctx context.Context, offset, limit int) ([]domain.Enterprise, int, error) {
	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM enterprises"); err != nil {
		return nil, 0, fmt.Errorf("enterpriseRepo.List count: %w", err)
	}

	var enterprises []domain.Enterprise
	err := r.db.SelectContext(ctx, &enterprises,
		"SELECT * FROM enterprises ORDER BY name LIMIT $1 OFFSET $2", limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("enterpriseRepo.List: %w", err)
	}
	return enterprises, total, nil
}

func (r *enterpriseRepo) Update(ctx context.Context, e *domain.Enterprise) error {
	e.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE enterprises SET name = $1, guild_id = $2, staff_role_id = $3, patron_role_id = $4,
		 co_patron_role_id = $5, dot_role_id = $6, employe_role_id = $7, is_active = $8, updated_at = $9
		 WHERE id = $10`,
		e.Name, e.GuildID, e.StaffRoleID, e.PatronRoleID, e.CoPatronRoleID,
		e.DotRoleID, e.EmployeRoleID, e.IsActive, e.UpdatedAt, e.ID)
	if err != nil {
		return fmt.Errorf("enterpriseRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *enterpriseRepo) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM enterprises WHERE id = $1", id)
	if err != nil {
		return fmt.Errorf("enterpriseRepo.Delete: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
