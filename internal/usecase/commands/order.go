package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/ptr"
	"zaylux-store/internal/usecase/queries"
	"zaylux-store/internal/usecase/shared"

	"github.com/google/uuid"
)

const placeOrderEndpoint = "POST /api/orders"

var (
	ErrCustomerBlocked         = errs.New("customer blocked")
	ErrMissingCustomerFields   = errs.New("missing customer fields")
	ErrProductNotFound         = errs.New("product not found")
	ErrInsufficientStock       = errs.New("insufficient stock")
	ErrInvalidOrder            = errs.New("invalid order")
	ErrOrderNotFound           = errs.New("order not found")
	ErrInvalidStatus           = errs.New("invalid status")
	ErrTransitionNotAllowed    = errs.New("transition not allowed")
	ErrIdempotencyInProgress   = errs.New("idempotency in progress")
	ErrIdempotencyKeyReused    = errs.New("idempotency key reused with a different request")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const MsgCustomerBlocked = "Your account has been blocked. Please contact support."

type PlaceOrderItem struct {
	ProductID uuid.UUID   `json:"product_id"`
	NameEN    string      `json:"name_en"`
	NameAR    string      `json:"name_ar"`
	Price     money.Money `json:"price"`
	Quantity  int         `json:"quantity"`
	Image     string      `json:"image"`
}

// PlaceOrderCommand is the checkout snapshot submitted by the storefront.
type PlaceOrderCommand struct {
	CustomerName string           `json:"customer_name"`
	Phone        string           `json:"phone"`
	City         string           `json:"city"`
	Address      string           `json:"address"`
	Items        []PlaceOrderItem `json:"items"`
	Subtotal     money.Money      `json:"subtotal"`
	Discount     money.Money      `json:"discount"`
	Total        money.Money      `json:"total"`
	CouponCode   *string          `json:"coupon_code,omitempty"`
}

type PlaceOrderResult struct {
	Order      *queries.OrderView
	PublicID   string
	IsReplayed bool
}

type OrderCommands interface {
	// PlaceOrder creates a Pending order. With an idempotency key a completed
	// request is replayed instead of placed twice.
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand, idempotencyKey *uuid.UUID) (*PlaceOrderResult, error)
	UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*queries.OrderView, error)
}

type OrderSettings struct {
	PublicIDPrefix string
	IdempotencyTTL time.Duration
	Policy         order.TransitionPolicy
}

type orderCommandsImpl struct {
	uow          shared.UnitOfWork
	orderQueries queries.OrderQueries
	settings     OrderSettings
	clock        clock.Clock
}

func NewOrderCommands(uow shared.UnitOfWork, orderQueries queries.OrderQueries, settings OrderSettings, clk clock.Clock) OrderCommands {
	if settings.Policy == nil {
		settings.Policy = order.PermissivePolicy{}
	}
	if settings.IdempotencyTTL <= 0 {
		settings.IdempotencyTTL = 24 * time.Hour
	}
	return &orderCommandsImpl{
		uow:          uow,
		orderQueries: orderQueries,
		settings:     settings,
		clock:        clk,
	}
}

func (c *orderCommandsImpl) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand, idempotencyKey *uuid.UUID) (*PlaceOrderResult, error) {
	if idempotencyKey == nil {
		return c.placeNewOrder(ctx, cmd, nil)
	}

	requestHash := c.calculateRequestHash(cmd)
	replayed, err := c.handleIdempotency(ctx, *idempotencyKey, requestHash)
	if err != nil {
		return nil, err
	}
	if replayed != nil {
		return &PlaceOrderResult{Order: replayed, PublicID: replayed.PublicID, IsReplayed: true}, nil
	}

	result, err := c.placeNewOrder(ctx, cmd, idempotencyKey)
	if err != nil {
		c.releaseIdempotencyKey(ctx, *idempotencyKey)
		return nil, err
	}
	return result, nil
}

// handleIdempotency claims the key or returns the order a previous request
// with the same key already produced.
func (c *orderCommandsImpl) handleIdempotency(ctx context.Context, key uuid.UUID, requestHash string) (*queries.OrderView, error) {
	now := c.clock.Now()
	expiresAt := now.Add(c.settings.IdempotencyTTL)

	var inserted bool
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		var txErr error
		inserted, txErr = tx.Idempotency().TryInsert(ctx, key, placeOrderEndpoint, requestHash, expiresAt)
		return txErr
	})
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}
	if inserted {
		return nil, nil
	}

	existing, err := c.uow.CommandReads().IdempotencyByKey(ctx, key, placeOrderEndpoint)
	if err != nil {
		return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
	}

	if existing.IsExpired(now) {
		var claimed bool
		err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
			var txErr error
			claimed, txErr = tx.Idempotency().ClaimExpired(ctx, key, placeOrderEndpoint, requestHash, now, expiresAt)
			return txErr
		})
		if err != nil {
			return nil, errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if claimed {
			return nil, nil
		}
		return nil, ErrIdempotencyInProgress
	}

	if existing.RequestHash != requestHash {
		return nil, ErrIdempotencyKeyReused
	}

	switch existing.Status {
	case shared.IdempotencyCompleted:
		if existing.ResultOrderID == nil {
			return nil, errs.New("completed request missing result order ID")
		}
		return c.orderQueries.GetByID(ctx, *existing.ResultOrderID)
	case shared.IdempotencyProcessing:
		return nil, ErrIdempotencyInProgress
	default:
		return nil, errs.New("invalid idempotency key status")
	}
}

func (c *orderCommandsImpl) releaseIdempotencyKey(ctx context.Context, key uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, key, placeOrderEndpoint)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key", "key", key, "error", err)
	}
}

func (c *orderCommandsImpl) placeNewOrder(ctx context.Context, cmd PlaceOrderCommand, idempotencyKey *uuid.UUID) (*PlaceOrderResult, error) {
	customer, err := order.NewCustomer(cmd.CustomerName, cmd.Phone, cmd.City, cmd.Address)
	if err != nil {
		return nil, errs.WithMessage(errs.Mark(err, ErrMissingCustomerFields), err.Error())
	}

	var orderID uuid.UUID
	var publicID order.PublicID
	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		blocked, err := tx.Reads().IsCustomerBlocked(ctx, customer.Phone)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		if blocked {
			return errs.WithMessage(ErrCustomerBlocked, MsgCustomerBlocked)
		}

		items, err := c.reserveStock(ctx, tx, cmd.Items)
		if err != nil {
			return err
		}

		seq, err := tx.Orders().NextSequence(ctx)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		publicID = order.FormatPublicID(c.settings.PublicIDPrefix, seq)

		couponCode := ptr.NilIfZero(coupon.NormalizeCode(ptr.Deref(cmd.CouponCode)))

		o, err := order.Place(publicID, order.PlaceParams{
			Customer:   customer,
			Items:      items,
			Totals:     order.Totals{Subtotal: cmd.Subtotal, Discount: cmd.Discount, Total: cmd.Total},
			CouponCode: couponCode,
		}, c.clock.Now())
		if err != nil {
			return errs.WithMessage(errs.Mark(err, ErrInvalidOrder), err.Error())
		}
		orderID = o.ID()

		if err := tx.Orders().Create(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := c.createNotificationJob(ctx, tx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().MarkCompleted(ctx, *idempotencyKey, placeOrderEndpoint, o.ID()); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: Get the complete order view from read store
	view, err := c.orderQueries.GetByID(ctx, orderID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return &PlaceOrderResult{Order: view, PublicID: publicID.String()}, nil
}

// reserveStock locks every referenced product, checks availability and
// decrements stock. Item snapshots keep the submitted display fields and price.
func (c *orderCommandsImpl) reserveStock(ctx context.Context, tx shared.Tx, submitted []PlaceOrderItem) ([]order.Item, error) {
	ids := make([]uuid.UUID, 0, len(submitted))
	for _, it := range submitted {
		ids = append(ids, it.ProductID)
	}
	products, err := tx.Products().FindManyForUpdate(ctx, ids)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	items := make([]order.Item, 0, len(submitted))
	touched := make(map[uuid.UUID]*catalog.Product, len(submitted))
	for _, it := range submitted {
		p, ok := products[it.ProductID]
		if !ok {
			return nil, errs.WithMessage(ErrProductNotFound, fmt.Sprintf("Product %s not found", it.ProductID))
		}
		if err := p.Reserve(it.Quantity); err != nil {
			if errors.Is(err, catalog.ErrInsufficientStock) {
				return nil, errs.WithMessage(ErrInsufficientStock, "Insufficient stock for "+p.Name().EN)
			}
			return nil, errs.WithMessage(errs.Mark(err, ErrInvalidOrder), err.Error())
		}
		touched[p.ID()] = p
		items = append(items, order.Item{
			ProductID: it.ProductID,
			Name:      catalog.LocalizedText{EN: it.NameEN, AR: it.NameAR},
			UnitPrice: it.Price,
			Quantity:  it.Quantity,
			Image:     it.Image,
		})
	}

	for _, p := range touched {
		if err := tx.Products().UpdateStock(ctx, p); err != nil {
			return nil, errs.Mark(err, ErrDatabaseOperationFailed)
		}
	}
	return items, nil
}

func (c *orderCommandsImpl) createNotificationJob(ctx context.Context, tx shared.Tx, o *order.Order) error {
	payload, err := json.Marshal(map[string]any{
		"order_id":      o.ID(),
		"public_id":     o.PublicID(),
		"customer_name": o.Customer().Name,
		"phone":         o.Customer().Phone,
		"total":         o.Totals().Total,
		"type":          "order_created",
	})
	if err != nil {
		return err
	}
	return tx.Notifications().CreateJob(ctx, "whatsapp", "order_created", payload, c.clock.Now())
}

func (c *orderCommandsImpl) UpdateStatus(ctx context.Context, orderID uuid.UUID, status string) (*queries.OrderView, error) {
	target, err := order.ParseStatus(status)
	if err != nil {
		return nil, ErrInvalidStatus
	}

	err = c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		o, err := tx.Orders().FindByIDForUpdate(ctx, orderID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return ErrOrderNotFound
			}
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if err := o.ChangeStatus(target, c.settings.Policy, c.clock.Now()); err != nil {
			if errors.Is(err, order.ErrTransitionNotAllowed) {
				return errs.WithMessage(errs.Mark(err, ErrTransitionNotAllowed),
					fmt.Sprintf("Cannot change status from %s to %s", o.Status(), target))
			}
			return ErrInvalidStatus
		}

		if err := tx.Orders().UpdateStatus(ctx, o); err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return c.orderQueries.GetByID(ctx, orderID)
}

func (c *orderCommandsImpl) calculateRequestHash(cmd PlaceOrderCommand) string {
	data, _ := json.Marshal(cmd)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
