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

type userRepo struct {
	db *sqlx.DB
}

// NewUserRepo creates a new PostgreSQL-backed UserRepository.
func NewUserRepo(db *sqlx.DB) port.UserRepository {
	return &userRepo{db: db}
}

func (r *userRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByID: %w", err)
	}
	return &u, nil
}

func (r *userRepo) GetByDiscordID(ctx context.Context, discordID string) (*domain.User, error) {
	var u domain.User
	err := r.db.GetContext(ctx, &u, "SELECT * FROM users WHERE discord_id = $1", discordID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("userRepo.GetByDiscordID: %w", err)
	}
	return &u, nil
}

// Upsert inserts the user or refreshes the Discord-derived fields of an
// existing one, keyed by discord_id.
func (r *userRepo) Upsert(ctx context.Context, u *domain.User) error {
	now := time.Now().UTC()
	if u.CreatedAt.IsZero() {
		u.CreatedAt = now
	}
	u.UpdatedAt = now

	query := `INSERT INTO users
		(id, discord_id, discord_username, avatar_url, role, enterprise_id, is_active, last_login, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (discord_id) DO UPDATE SET
			discord_username = EXCLUDED.discord_username,
			avatar_url = EXCLUDED.avatar_url,
			role = EXCLUDED.role,
			enterprise_id = EXCLUDED.enterprise_id,
			last_login = EXCLUDED.last_login,
			updated_at = EXCLUDED.updated_at
		RETURNING id, created_at`

	row := r.db.QueryRowxContext(ctx, query,
		u.ID, u.DiscordID, u.DiscordUsername, u.AvatarURL, u.Role, u.EnterpriseID,
		u.IsActive, u.LastLogin, u.CreatedAt, u.UpdatedAt)
	if err := row.Scan(&u.ID, &u.CreatedAt); err != nil {
		return fmt.Errorf("userRepo.Upsert: %w", err)
	}
	return nil
}

func (r *userRepo) ListByEnterprise(ctx context.Context, enterpriseID uuid.UUID, offset, limit int) ([]domain.User, int, error) {
	var total int
	err := r.db.GetContext(ctx, &total,
		"SELECT COUNT(*) FROM users WHERE enterprise_id = $1", enterpriseID)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByEnterprise count: %w", err)
	}

	var users []domain.User
	err = r.db.SelectContext(ctx, &users,
		`SELECT * FROM users WHERE enterprise_id = $1
		 ORDER BY discord_username LIMIT $2 OFFSET $3`,
		enterpriseID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("userRepo.ListByEnterprise: %w", err)
	}
	return users, total, nil
}

func (r *userRepo) Update(ctx context.Context, u *domain.User) error {
	u.UpdatedAt = time.Now().UTC()
	result, err := r.db.ExecContext(ctx,
		`UPDATE users SET discord_username = $1, avatar_url = $2, role = $3,
		 enterprise_id = $4, is_active = $5, last_login = $6, updated_at = $7
		 WHERE id = $8`,
		u.DiscordUsername, u.AvatarURL, u.Role, u.EnterpriseID, u.IsActive,
		u.LastLogin, u.UpdatedAt, u.ID)
	if err != nil {
		return fmt.Errorf("userRepo.Update: %w", err)
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}
