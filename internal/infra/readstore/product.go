package readstore

import (
	"context"
	"fmt"
	"strings"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const productViewColumns = `id, name_en, name_ar, description_en, description_ar, category,
       price, original_price, quantity, images, is_visible, created_at`

type ProductReadStore struct {
	db db.DBTX
}

func NewProductReadStore(dbtx db.DBTX) *ProductReadStore {
	return &ProductReadStore{db: dbtx}
}

func (r *ProductReadStore) List(ctx context.Context, filter queries.ProductFilter) ([]*queries.ProductView, error) {
	var (
		conds []string
		args  []any
	)
	if filter.VisibleOnly {
		conds = append(conds, "is_visible")
	}
	if filter.Category != nil {
		args = append(args, *filter.Category)
		conds = append(conds, fmt.Sprintf("category = $%d", len(args)))
	}
	sql := `SELECT ` + productViewColumns + ` FROM products`
	if len(conds) > 0 {
		sql += " WHERE " + strings.Join(conds, " AND ")
	}
	sql += " ORDER BY created_at DESC, id DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list products", err)
	}
	defer rows.Close()

	views := []*queries.ProductView{}
	for rows.Next() {
		v, err := scanProductView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		views = append(views, v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}
	return views, nil
}

func (r *ProductReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ProductView, error) {
	v, err := scanProductView(r.db.QueryRow(ctx, `SELECT `+productViewColumns+` FROM products WHERE id = $1`, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return v, nil
}

func scanProductView(row pgx.Row) (*queries.ProductView, error) {
	var (
		v                    queries.ProductView
		price, originalPrice pgtype.Numeric
	)
	if err := row.Scan(&v.ID, &v.NameEN, &v.NameAR, &v.DescriptionEN, &v.DescriptionAR, &v.Category,
		&price, &originalPrice, &v.Quantity, &v.Images, &v.IsVisible, &v.CreatedAt); err != nil {
		return nil, err
	}

	d, err := pgconv.DecimalFromNumeric(price)
	if err != nil {
		return nil, err
	}
	v.Price = money.New(d)

	orig, err := pgconv.DecimalPtrFromNumeric(originalPrice)
	if err != nil {
		return nil, err
	}
	if orig != nil {
		m := money.New(*orig)
		v.OriginalPrice = &m
	}
	if v.Images == nil {
		v.Images = []string{}
	}
	return &v, nil
}
