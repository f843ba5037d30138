package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Each service owns its own tables; nothing here is shared across
// services. The stock CHECK is a backstop for the non-negative
// invariant the deduction transaction already enforces.

const usersSchema = `
CREATE TABLE IF NOT EXISTS users (
	id            BIGSERIAL PRIMARY KEY,
	email         TEXT NOT NULL UNIQUE,
	password_hash TEXT NOT NULL,
	role          TEXT NOT NULL DEFAULT 'user',
	created_at    TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const productsSchema = `
CREATE TABLE IF NOT EXISTS products (
	id       BIGSERIAL PRIMARY KEY,
	name     TEXT NOT NULL UNIQUE,
	brand    TEXT NOT NULL DEFAULT '',
	category TEXT NOT NULL DEFAULT '',
	price    DOUBLE PRECISION NOT NULL CHECK (price > 0),
	stock    INTEGER NOT NULL DEFAULT 0 CHECK (stock >= 0),
	unit     TEXT NOT NULL DEFAULT '',
	image    TEXT NOT NULL DEFAULT ''
);`

const salesSchema = `
CREATE TABLE IF NOT EXISTS sales (
	id         BIGSERIAL PRIMARY KEY,
	items      JSONB NOT NULL,
	total      DOUBLE PRECISION NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS sales_created_at_idx ON sales (created_at DESC);`

func EnsureUsersSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, usersSchema)
	return err
}

func EnsureProductsSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, productsSchema)
	return err
}

func EnsureSalesSchema(ctx context.Context, db *pgxpool.Pool) error {
	_, err := db.Exec(ctx, salesSchema)
	return err
}
