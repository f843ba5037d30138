package sales

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/ariefcatur/go-retail-checkout.git/internal/inventory"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrSaleNotFound = errors.New("sale not found")

type Repo struct{ DB *pgxpool.Pool }

func (r *Repo) Insert(ctx context.Context, items []inventory.ItemQty, total float64) (int64, error) {
	b, err := json.Marshal(items)
	if err != nil {
		return 0, err
	}
	var id int64
	err = r.DB.QueryRow(ctx, `
		INSERT INTO sales(items, total) VALUES ($1, $2) RETURNING id`,
		b, total).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

func (r *Repo) Get(ctx context.Context, id int64) (Sale, error) {
	var s Sale
	var items []byte
	err := r.DB.QueryRow(ctx, `
		SELECT id, items, total, created_at FROM sales WHERE id=$1`, id).
		Scan(&s.ID, &items, &s.Total, &s.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return Sale{}, ErrSaleNotFound
	}
	if err != nil {
		return Sale{}, err
	}
	if err := json.Unmarshal(items, &s.Items); err != nil {
		return Sale{}, err
	}
	return s, nil
}

func (r *Repo) List(ctx context.Context) ([]Sale, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, items, total, created_at FROM sales
		ORDER BY created_at DESC, id DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Sale
	for rows.Next() {
		var s Sale
		var items []byte
		if err := rows.Scan(&s.ID, &items, &s.Total, &s.CreatedAt); err != nil {
			return nil, err
		}
		if err := json.Unmarshal(items, &s.Items); err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *Repo) Update(ctx context.Context, id int64, in SaleInput) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var s Sale
	var items []byte
	err = tx.QueryRow(ctx, `
		SELECT id, items, total FROM sales WHERE id=$1 FOR UPDATE`, id).
		Scan(&s.ID, &items, &s.Total)
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrSaleNotFound
	}
	if err != nil {
		return err
	}

	if in.Total != nil {
		s.Total = *in.Total
	}
	if in.Items != nil {
		if items, err = json.Marshal(*in.Items); err != nil {
			return err
		}
	}
	if _, err := tx.Exec(ctx, `
		UPDATE sales SET items=$2, total=$3 WHERE id=$1`,
		s.ID, items, s.Total); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM sales WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return ErrSaleNotFound
	}
	return nil
}
