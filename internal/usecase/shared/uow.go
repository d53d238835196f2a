package shared

import (
	"context"
	"time"

	"zaylux-store/internal/domain/admin"
	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/customer"
	"zaylux-store/internal/domain/notify"
	"zaylux-store/internal/domain/order"

	"github.com/google/uuid"
)

type UnitOfWork interface {
	// Within: Full transaction for write operations with retry logic
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	// CommandReads: Direct access to command reads for validation outside transactions
	CommandReads() CommandReads
}

type Tx interface {
	Orders() OrderRepository
	Products() ProductRepository
	Coupons() CouponRepository
	Customers() CustomerRepository
	Admins() AdminRepository
	Idempotency() IdempotencyRepository
	Notifications() NotificationRepository
	NotifyRequests() NotifyRequestRepository
	Reads() CommandReads
}

type CommandReads interface {
	IdempotencyByKey(ctx context.Context, key uuid.UUID, endpoint string) (*IdempotencyRecord, error)
	AdminByUsername(ctx context.Context, username string) (*admin.Admin, error)
	IsCustomerBlocked(ctx context.Context, phone string) (bool, error)
}

type OrderRepository interface {
	NextSequence(ctx context.Context) (int64, error)
	Create(ctx context.Context, o *order.Order) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*order.Order, error)
	UpdateStatus(ctx context.Context, o *order.Order) error
}

type ProductRepository interface {
	Create(ctx context.Context, p *catalog.Product) error
	Update(ctx context.Context, p *catalog.Product) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*catalog.Product, error)
	// FindManyForUpdate locks rows in id order to avoid deadlocks between
	// concurrent orders over the same products.
	FindManyForUpdate(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]*catalog.Product, error)
	UpdateStock(ctx context.Context, p *catalog.Product) error
}

type CouponRepository interface {
	Create(ctx context.Context, c *coupon.Coupon) error
	Update(ctx context.Context, c *coupon.Coupon) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindByID(ctx context.Context, id uuid.UUID) (*coupon.Coupon, error)
	FindByCodeForUpdate(ctx context.Context, code coupon.Code) (*coupon.Coupon, error)
	SaveUsage(ctx context.Context, c *coupon.Coupon) error
}

type CustomerRepository interface {
	Block(ctx context.Context, b customer.Blocked) error
	Unblock(ctx context.Context, phone string) (bool, error)
}

type AdminRepository interface {
	Create(ctx context.Context, a *admin.Admin) error
	UpdateLastLogin(ctx context.Context, a *admin.Admin) error
}

type IdempotencyRepository interface {
	// TryInsert reports false when a record for key+endpoint already exists.
	TryInsert(ctx context.Context, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error)
	MarkCompleted(ctx context.Context, key uuid.UUID, endpoint string, orderID uuid.UUID) error
	ClaimExpired(ctx context.Context, key uuid.UUID, endpoint, requestHash string, now, expiresAt time.Time) (bool, error)
	Release(ctx context.Context, key uuid.UUID, endpoint string) error
}

type NotificationRepository interface {
	CreateJob(ctx context.Context, kind, topic string, payload []byte, runAt time.Time) error
}

type NotifyRequestRepository interface {
	// Create reports false when the phone already waits for the product.
	Create(ctx context.Context, r notify.Request) (bool, error)
}
