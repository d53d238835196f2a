package repository

import (
	"context"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/pkg/pgconv"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

const (
	productColumns = `id, name_en, name_ar, description_en, description_ar, category,
       price, original_price, quantity, images, is_visible, created_at`

	insertProductSQL = `
INSERT INTO products (id, name_en, name_ar, description_en, description_ar, category,
                      price, original_price, quantity, images, is_visible, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $12)`

	updateProductSQL = `
UPDATE products
SET name_en = $2, name_ar = $3, description_en = $4, description_ar = $5, category = $6,
    price = $7, original_price = $8, quantity = $9, images = $10, is_visible = $11, updated_at = now()
WHERE id = $1`

	deleteProductSQL = `DELETE FROM products WHERE id = $1`

	selectProductForUpdateSQL = `SELECT ` + productColumns + ` FROM products WHERE id = $1 FOR UPDATE`

	// Locking in id order keeps concurrent placements from deadlocking.
	selectProductsForUpdateSQL = `SELECT ` + productColumns + `
FROM products
WHERE id = ANY($1::uuid[])
ORDER BY id
FOR UPDATE`

	updateProductStockSQL = `UPDATE products SET quantity = $2, updated_at = now() WHERE id = $1`
)

type ProductRepository struct {
	db db.DBTX
}

func NewProductRepository(dbtx db.DBTX) *ProductRepository {
	return &ProductRepository{db: dbtx}
}

func (r *ProductRepository) Create(ctx context.Context, p *catalog.Product) error {
	_, err := r.db.Exec(ctx, insertProductSQL,
		p.ID(), p.Name().EN, p.Name().AR, p.Description().EN, p.Description().AR, p.Category().String(),
		pgconv.DecimalToNumeric(p.Price().Decimal()), moneyPtrToNumeric(p.OriginalPrice()),
		p.Stock(), nonNilImages(p.Images()), p.Visible(), p.CreatedAt(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to insert product", err)
	}
	return nil
}

func (r *ProductRepository) Update(ctx context.Context, p *catalog.Product) error {
	tag, err := r.db.Exec(ctx, updateProductSQL,
		p.ID(), p.Name().EN, p.Name().AR, p.Description().EN, p.Description().AR, p.Category().String(),
		pgconv.DecimalToNumeric(p.Price().Decimal()), moneyPtrToNumeric(p.OriginalPrice()),
		p.Stock(), nonNilImages(p.Images()), p.Visible(),
	)
	if err != nil {
		return infra.WrapRepoErr("failed to update product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("product not found")
	}
	return nil
}

func (r *ProductRepository) Delete(ctx context.Context, id uuid.UUID) error {
	tag, err := r.db.Exec(ctx, deleteProductSQL, id)
	if err != nil {
		return infra.WrapRepoErr("failed to delete product", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("product not found")
	}
	return nil
}

func (r *ProductRepository) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error) {
	p, err := scanProduct(r.db.QueryRow(ctx, selectProductForUpdateSQL, id))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("product not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find product", err)
	}
	return p, nil
}

func (r *ProductRepository) FindManyForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error) {
	found := make(map[uuid.UUID]*catalog.Product, len(ids))
	if len(ids) == 0 {
		return found, nil
	}

	keys := make([]string, len(ids))
	for i, id := range ids {
		keys[i] = id.String()
	}
	rows, err := r.db.Query(ctx, selectProductsForUpdateSQL, keys)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to lock products", err)
	}
	defer rows.Close()

	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan product", err)
		}
		found[p.ID()] = p
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read products", err)
	}
	return found, nil
}

func (r *ProductRepository) UpdateStock(ctx context.Context, p *catalog.Product) error {
	tag, err := r.db.Exec(ctx, updateProductStockSQL, p.ID(), p.Stock())
	if err != nil {
		return infra.WrapRepoErr("failed to update product stock", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.NotFound("product not found")
	}
	return nil
}

func scanProduct(row pgx.Row) (*catalog.Product, error) {
	var (
		id                   uuid.UUID
		nameEN, nameAR       string
		descEN, descAR       string
		category             string
		price, originalPrice pgtype.Numeric
		stock                int
		images               []string
		visible              bool
		createdAt            time.Time
	)
	if err := row.Scan(&id, &nameEN, &nameAR, &descEN, &descAR, &category,
		&price, &originalPrice, &stock, &images, &visible, &createdAt); err != nil {
		return nil, err
	}

	unitPrice, err := moneyFromNumeric(price)
	if err != nil {
		return nil, err
	}
	original, err := moneyPtrFromNumeric(originalPrice)
	if err != nil {
		return nil, err
	}

	return catalog.ReconstructProduct(id, catalog.NewProductParams{
		Name:          catalog.LocalizedText{EN: nameEN, AR: nameAR},
		Description:   catalog.LocalizedText{EN: descEN, AR: descAR},
		Category:      catalog.Category(category),
		Price:         unitPrice,
		OriginalPrice: original,
		Stock:         stock,
		Images:        images,
		Visible:       visible,
	}, createdAt), nil
}

func nonNilImages(images []string) []string {
	if images == nil {
		return []string{}
	}
	return images
}
