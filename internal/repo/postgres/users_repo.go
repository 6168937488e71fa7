package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityapw/kuitansihub/internal/domain/user"
	"github.com/adityapw/kuitansihub/internal/observability"
)

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrEmailNIKTaken = errors.New("Email/NIK already registered")
)

const uniqueViolation = "23505"

type UsersRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewUsersRepo(pool *pgxpool.Pool, prom *observability.Prom) *UsersRepo {
	return &UsersRepo{pool: pool, prom: prom}
}

func (r *UsersRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *UsersRepo) GetByID(ctx context.Context, id int64) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id_user, nama, email_nik, password, role
			 FROM users
			 WHERE id_user = $1`,
			id,
		).Scan(&u.IDUser, &u.Nama, &u.EmailNIK, &u.PasswordHash, &u.Role)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) GetByEmailNIK(ctx context.Context, emailNIK string) (user.User, error) {
	var u user.User

	err := r.observe("users.get_by_email_nik", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id_user, nama, email_nik, password, role
			 FROM users
			 WHERE email_nik = $1`,
			emailNIK,
		).Scan(&u.IDUser, &u.Nama, &u.EmailNIK, &u.PasswordHash, &u.Role)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, ErrUserNotFound
		}
		return user.User{}, err
	}

	return u, nil
}

func (r *UsersRepo) List(ctx context.Context) ([]user.User, error) {
	var out []user.User

	err := r.observe("users.list", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT id_user, nama, email_nik, password, role
			 FROM users
			 ORDER BY id_user ASC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var u user.User
			if err := rows.Scan(&u.IDUser, &u.Nama, &u.EmailNIK, &u.PasswordHash, &u.Role); err != nil {
				return err
			}
			out = append(out, u)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *UsersRepo) Create(ctx context.Context, nama, emailNIK, passwordHash string, role user.Role) (user.User, error) {
	u := user.User{
		Nama:         nama,
		EmailNIK:     emailNIK,
		PasswordHash: passwordHash,
		Role:         role,
	}

	err := r.observe("users.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO users (nama, email_nik, password, role)
			 VALUES ($1, $2, $3, $4)
			 RETURNING id_user`,
			nama, emailNIK, passwordHash, string(role),
		).Scan(&u.IDUser)
	})

	if err != nil {
		if isUniqueViolation(err) {
			return user.User{}, ErrEmailNIKTaken
		}
		return user.User{}, err
	}

	return u, nil
}

// ApplyChanges commits a validated change set atomically: all columns update
// in one transaction or none do.
func (r *UsersRepo) ApplyChanges(ctx context.Context, id int64, columns []string, values []any) error {
	if len(columns) == 0 {
		return nil
	}

	return r.observe("users.apply_changes", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		tag, err := tx.Exec(ctx, buildUpdate("users", "id_user", columns), append([]any{id}, values...)...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrEmailNIKTaken
			}
			return err
		}

		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}

		return tx.Commit(ctx)
	})
}

func (r *UsersRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("users.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id_user = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

func (r *UsersRepo) Count(ctx context.Context) (int64, error) {
	var n int64

	err := r.observe("users.count", func() error {
		return r.pool.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&n)
	})

	return n, err
}

// ResetIDSequence restarts the identity sequence after the table has been
// emptied. Best-effort housekeeping; callers ignore the error.
func (r *UsersRepo) ResetIDSequence(ctx context.Context) error {
	return r.observe("users.reset_sequence", func() error {
		_, err := r.pool.Exec(ctx, `ALTER SEQUENCE users_id_user_seq RESTART WITH 1`)
		return err
	})
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolation
}

// buildUpdate renders `UPDATE <table> SET col1 = $2, col2 = $3 ... WHERE <id> = $1`.
// Column names come from the mutation whitelist, never from client input.
func buildUpdate(table, idColumn string, columns []string) string {
	sets := make([]string, len(columns))
	for i, col := range columns {
		sets[i] = fmt.Sprintf("%s = $%d", col, i+2)
	}

	return fmt.Sprintf("UPDATE %s SET %s WHERE %s = $1", table, strings.Join(sets, ", "), idColumn)
}
