package db

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// kuitansi.id_user carries no ON DELETE action on purpose: deleting a user
// leaves their receipts in place with historical attribution.
const schema = `
CREATE TABLE IF NOT EXISTS users (
	id_user   BIGSERIAL PRIMARY KEY,
	nama      VARCHAR(100) NOT NULL,
	email_nik VARCHAR(100) NOT NULL UNIQUE,
	password  VARCHAR(255) NOT NULL,
	role      VARCHAR(10) NOT NULL DEFAULT 'ISE' CHECK (role IN ('admin', 'ISE', 'off3so'))
);

CREATE TABLE IF NOT EXISTS kuitansi (
	id_kuitansi    BIGSERIAL PRIMARY KEY,
	nomor_kuitansi VARCHAR(50) NOT NULL UNIQUE,
	nama           VARCHAR(100) NOT NULL,
	tanggal        DATE NOT NULL,
	jumlah         DOUBLE PRECISION NOT NULL,
	terbilang      TEXT NOT NULL,
	deskripsi      TEXT NOT NULL,
	id_user        BIGINT REFERENCES users (id_user)
);
`

// Migrate creates the two tables when missing. Idempotent, runs at startup.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, schema)
	return err
}
