package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/adityapw/kuitansihub/internal/domain/kuitansi"
	"github.com/adityapw/kuitansihub/internal/observability"
)

var (
	ErrKuitansiNotFound = errors.New("kuitansi not found")
	ErrNomorTaken       = errors.New("Nomor kuitansi already registered")
)

type KuitansiRepo struct {
	pool *pgxpool.Pool
	prom *observability.Prom
}

func NewKuitansiRepo(pool *pgxpool.Pool, prom *observability.Prom) *KuitansiRepo {
	return &KuitansiRepo{pool: pool, prom: prom}
}

func (r *KuitansiRepo) observe(op string, fn func() error) error {
	if r.prom != nil {
		return r.prom.ObserveDB(op, fn)
	}
	return fn()
}

func (r *KuitansiRepo) GetByID(ctx context.Context, id int64) (kuitansi.Kuitansi, error) {
	var k kuitansi.Kuitansi

	err := r.observe("kuitansi.get_by_id", func() error {
		return r.pool.QueryRow(
			ctx,
			`SELECT id_kuitansi, nomor_kuitansi, nama, tanggal, jumlah, terbilang, deskripsi, id_user
			 FROM kuitansi
			 WHERE id_kuitansi = $1`,
			id,
		).Scan(&k.IDKuitansi, &k.NomorKuitansi, &k.Nama, &k.Tanggal, &k.Jumlah, &k.Terbilang, &k.Deskripsi, &k.IDUser)
	})

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return kuitansi.Kuitansi{}, ErrKuitansiNotFound
		}
		return kuitansi.Kuitansi{}, err
	}

	return k, nil
}

func (r *KuitansiRepo) List(ctx context.Context) ([]kuitansi.Kuitansi, error) {
	var out []kuitansi.Kuitansi

	err := r.observe("kuitansi.list", func() error {
		rows, err := r.pool.Query(
			ctx,
			`SELECT id_kuitansi, nomor_kuitansi, nama, tanggal, jumlah, terbilang, deskripsi, id_user
			 FROM kuitansi
			 ORDER BY id_kuitansi ASC`,
		)
		if err != nil {
			return err
		}
		defer rows.Close()

		for rows.Next() {
			var k kuitansi.Kuitansi
			if err := rows.Scan(&k.IDKuitansi, &k.NomorKuitansi, &k.Nama, &k.Tanggal, &k.Jumlah, &k.Terbilang, &k.Deskripsi, &k.IDUser); err != nil {
				return err
			}
			out = append(out, k)
		}

		return rows.Err()
	})

	if err != nil {
		return nil, err
	}

	return out, nil
}

func (r *KuitansiRepo) Create(ctx context.Context, k kuitansi.Kuitansi) (kuitansi.Kuitansi, error) {
	err := r.observe("kuitansi.create", func() error {
		return r.pool.QueryRow(
			ctx,
			`INSERT INTO kuitansi (nomor_kuitansi, nama, tanggal, jumlah, terbilang, deskripsi, id_user)
			 VALUES ($1, $2, $3, $4, $5, $6, $7)
			 RETURNING id_kuitansi`,
			k.NomorKuitansi, k.Nama, k.Tanggal, k.Jumlah, k.Terbilang, k.Deskripsi, k.IDUser,
		).Scan(&k.IDKuitansi)
	})

	if err != nil {
		if isUniqueViolation(err) {
			return kuitansi.Kuitansi{}, ErrNomorTaken
		}
		return kuitansi.Kuitansi{}, err
	}

	return k, nil
}

// ApplyChanges commits a validated change set atomically.
func (r *KuitansiRepo) ApplyChanges(ctx context.Context, id int64, columns []string, values []any) error {
	if len(columns) == 0 {
		return nil
	}

	return r.observe("kuitansi.apply_changes", func() error {
		tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
		if err != nil {
			return err
		}
		defer func() { _ = tx.Rollback(ctx) }()

		tag, err := tx.Exec(ctx, buildUpdate("kuitansi", "id_kuitansi", columns), append([]any{id}, values...)...)
		if err != nil {
			if isUniqueViolation(err) {
				return ErrNomorTaken
			}
			return err
		}

		if tag.RowsAffected() == 0 {
			return ErrKuitansiNotFound
		}

		return tx.Commit(ctx)
	})
}

func (r *KuitansiRepo) Delete(ctx context.Context, id int64) error {
	return r.observe("kuitansi.delete", func() error {
		tag, err := r.pool.Exec(ctx, `DELETE FROM kuitansi WHERE id_kuitansi = $1`, id)
		if err != nil {
			return err
		}

		if tag.RowsAffected() == 0 {
			return ErrKuitansiNotFound
		}

		return nil
	})
}
