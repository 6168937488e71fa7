package db

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityapw/kuitansihub/internal/config"
	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/security"
)

// EnsureAdminUser seeds the configured administrator account when it does not
// exist yet. A no-op unless both ADMIN_EMAIL_NIK and ADMIN_PASSWORD are set.
func EnsureAdminUser(ctx context.Context, pool *pgxpool.Pool, cfg config.Config) error {
	if cfg.AdminEmailNIK == "" || cfg.AdminPassword == "" {
		return nil
	}

	var dummy int64

	err := pool.QueryRow(ctx, `SELECT id_user FROM users WHERE email_nik = $1`, cfg.AdminEmailNIK).Scan(&dummy)

	if err == nil {
		return nil
	}

	if !errors.Is(err, pgx.ErrNoRows) {
		return err
	}

	hash, err := security.HashPassword(cfg.AdminPassword)

	if err != nil {
		return err
	}

	_, err = pool.Exec(ctx,
		`INSERT INTO users (nama, email_nik, password, role)
		 VALUES ($1, $2, $3, $4)`,
		cfg.AdminNama, cfg.AdminEmailNIK, hash, string(user.RoleAdmin),
	)

	return err
}
