package readstore

import (
	"context"

	"zaylux-store/internal/infra"
	"zaylux-store/internal/infra/db"
	"zaylux-store/internal/usecase/queries"

	"github.com/google/uuid"
)

const (
	// Rows of one product are adjacent so they can be grouped in one pass.
	listNotifyDemandSQL = `
SELECT p.id, p.name_en, p.name_ar, n.id, n.phone, n.name, n.created_at
FROM notify_requests n
JOIN products p ON p.id = n.product_id
ORDER BY p.created_at DESC, p.id, n.created_at, n.id`

	listNotifyRequestsByProductSQL = `
SELECT id, product_id, phone, name, created_at
FROM notify_requests
WHERE product_id = $1
ORDER BY created_at, id`
)

type NotifyReadStore struct {
	db db.DBTX
}

func NewNotifyReadStore(dbtx db.DBTX) *NotifyReadStore {
	return &NotifyReadStore{db: dbtx}
}

func (r *NotifyReadStore) ListDemand(ctx context.Context) ([]*queries.ProductDemandView, error) {
	rows, err := r.db.Query(ctx, listNotifyDemandSQL)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notify requests", err)
	}
	defer rows.Close()

	groups := []*queries.ProductDemandView{}
	var current *queries.ProductDemandView
	for rows.Next() {
		var (
			productID      uuid.UUID
			nameEN, nameAR string
			req            queries.NotifyRequestView
		)
		if err := rows.Scan(&productID, &nameEN, &nameAR, &req.ID, &req.Phone, &req.Name, &req.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notify request", err)
		}
		req.ProductID = productID
		if current == nil || current.ProductID != productID {
			current = &queries.ProductDemandView{ProductID: productID, ProductNameEN: nameEN, ProductNameAR: nameAR}
			groups = append(groups, current)
		}
		current.Requests = append(current.Requests, req)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notify requests", err)
	}
	return groups, nil
}

func (r *NotifyReadStore) ListByProduct(ctx context.Context, productID uuid.UUID) ([]*queries.NotifyRequestView, error) {
	rows, err := r.db.Query(ctx, listNotifyRequestsByProductSQL, productID)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list notify requests", err)
	}
	defer rows.Close()

	views := []*queries.NotifyRequestView{}
	for rows.Next() {
		var v queries.NotifyRequestView
		if err := rows.Scan(&v.ID, &v.ProductID, &v.Phone, &v.Name, &v.CreatedAt); err != nil {
			return nil, infra.WrapRepoErr("failed to scan notify request", err)
		}
		views = append(views, &v)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to read notify requests", err)
	}
	return views, nil
}
