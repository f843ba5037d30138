package inventory

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type Repo struct{ DB *pgxpool.Pool }

var _ Store = (*Repo)(nil)

func (r *Repo) List(ctx context.Context) ([]Product, error) {
	rows, err := r.DB.Query(ctx, `
		SELECT id, name, brand, category, price, stock, unit, image
		FROM products ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Stock, &p.Unit, &p.Image); err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *Repo) Get(ctx context.Context, id int64) (Product, error) {
	var p Product
	err := r.DB.QueryRow(ctx, `
		SELECT id, name, brand, category, price, stock, unit, image
		FROM products WHERE id=$1`, id).
		Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Stock, &p.Unit, &p.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return Product{}, &NotFoundError{ProductID: id}
	}
	if err != nil {
		return Product{}, err
	}
	return p, nil
}

func (r *Repo) Create(ctx context.Context, in ProductInput) (int64, error) {
	var p Product
	in.ApplyTo(&p)
	var id int64
	err := r.DB.QueryRow(ctx, `
		INSERT INTO products(name, brand, category, price, stock, unit, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		p.Name, p.Brand, p.Category, p.Price, p.Stock, p.Unit, p.Image).Scan(&id)
	if err != nil {
		return 0, err
	}
	return id, nil
}

// Update is read-modify-write under a row lock so the allow-list is
// applied against the current row, not a stale copy.
func (r *Repo) Update(ctx context.Context, id int64, in ProductInput) error {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	var p Product
	err = tx.QueryRow(ctx, `
		SELECT id, name, brand, category, price, stock, unit, image
		FROM products WHERE id=$1 FOR UPDATE`, id).
		Scan(&p.ID, &p.Name, &p.Brand, &p.Category, &p.Price, &p.Stock, &p.Unit, &p.Image)
	if errors.Is(err, pgx.ErrNoRows) {
		return &NotFoundError{ProductID: id}
	}
	if err != nil {
		return err
	}

	in.ApplyTo(&p)
	if _, err := tx.Exec(ctx, `
		UPDATE products
		SET name=$2, brand=$3, category=$4, price=$5, stock=$6, unit=$7, image=$8
		WHERE id=$1`,
		p.ID, p.Name, p.Brand, p.Category, p.Price, p.Stock, p.Unit, p.Image); err != nil {
		return err
	}
	return tx.Commit(ctx)
}

func (r *Repo) Delete(ctx context.Context, id int64) error {
	ct, err := r.DB.Exec(ctx, `DELETE FROM products WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if ct.RowsAffected() == 0 {
		return &NotFoundError{ProductID: id}
	}
	return nil
}

// Deduct locks every referenced product row FOR UPDATE so concurrent
// deductions against overlapping products serialize on the rows: two
// calls cannot both validate against the same stock and both
// decrement. Rows are locked in ascending id order regardless of the
// order the caller listed them, so two overlapping deductions cannot
// deadlock each other. Validation and mutation happen inside one
// transaction; any failing line rolls back the whole call.
func (r *Repo) Deduct(ctx context.Context, items []ItemQty) (float64, error) {
	tx, err := r.DB.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return 0, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	byID := make(map[int64]Product, len(items))
	for _, id := range lockOrder(items) {
		var p Product
		err := tx.QueryRow(ctx, `
			SELECT id, name, price, stock FROM products
			WHERE id=$1 FOR UPDATE`, id).
			Scan(&p.ID, &p.Name, &p.Price, &p.Stock)
		if errors.Is(err, pgx.ErrNoRows) {
			return 0, &NotFoundError{ProductID: id}
		}
		if err != nil {
			return 0, err
		}
		byID[p.ID] = p
	}

	total, err := planDeduction(byID, items)
	if err != nil {
		return 0, err
	}

	for _, it := range items {
		if _, err := tx.Exec(ctx, `
			UPDATE products SET stock = stock - $2 WHERE id=$1`,
			it.ProductID, it.Quantity); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, err
	}
	return total, nil
}
