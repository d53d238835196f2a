//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"testing"
	"time"

	"zaylux-store/internal/domain/catalog"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/shared"
	"zaylux-store/tests/common/builder"
	queriesmock "zaylux-store/tests/mock/queries"
	sharedmock "zaylux-store/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderCommandsTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	reads         *sharedmock.MockCommandReads
	orders        *sharedmock.MockOrderRepository
	products      *sharedmock.MockProductRepository
	idempotency   *sharedmock.MockIdempotencyRepository
	notifications *sharedmock.MockNotificationRepository
	orderQueries  *queriesmock.MockOrderQueries
	clock         *clock.Fixed
	sut           commands.OrderCommands
}

func TestOrderCommandsSuite(t *testing.T) {
	suite.Run(t, new(OrderCommandsTestSuite))
}

func (s *OrderCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.reads = sharedmock.NewMockCommandReads(s.ctrl)
	s.orders = sharedmock.NewMockOrderRepository(s.ctrl)
	s.products = sharedmock.NewMockProductRepository(s.ctrl)
	s.idempotency = sharedmock.NewMockIdempotencyRepository(s.ctrl)
	s.notifications = sharedmock.NewMockNotificationRepository(s.ctrl)
	s.orderQueries = queriesmock.NewMockOrderQueries(s.ctrl)
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.uow.EXPECT().CommandReads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Reads().Return(s.reads).AnyTimes()
	s.tx.EXPECT().Orders().Return(s.orders).AnyTimes()
	s.tx.EXPECT().Products().Return(s.products).AnyTimes()
	s.tx.EXPECT().Idempotency().Return(s.idempotency).AnyTimes()
	s.tx.EXPECT().Notifications().Return(s.notifications).AnyTimes()

	s.sut = commands.NewOrderCommands(s.uow, s.orderQueries, commands.OrderSettings{
		PublicIDPrefix: "ZAY",
		IdempotencyTTL: time.Hour,
		Policy:         order.StrictPolicy{},
	}, s.clock)
}

func (s *OrderCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

// expectStock makes every item of b resolve to a product with the given stock.
func (s *OrderCommandsTestSuite) expectStock(b *builder.OrderBuilder, stock int) map[uuid.UUID]*catalog.Product {
	products := make(map[uuid.UUID]*catalog.Product, len(b.Items))
	for _, it := range b.Items {
		products[it.ProductID] = builder.NewProductBuilder().With(func(p *builder.ProductBuilder) {
			p.ID = it.ProductID
			p.NameEN = it.NameEN
			p.Stock = stock
		}).BuildStored()
	}
	s.products.EXPECT().FindManyForUpdate(gomock.Any(), gomock.Any()).Return(products, nil)
	return products
}

func requestHash(cmd commands.PlaceOrderCommand) string {
	data, _ := json.Marshal(cmd)
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func (s *OrderCommandsTestSuite) TestPlaceOrder() {
	s.Run("success: places a pending order and decrements stock", func() {
		b := builder.NewOrderBuilder()
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), b.Phone).Return(false, nil)
		products := s.expectStock(b, 10)
		s.products.EXPECT().UpdateStock(gomock.Any(), gomock.Any()).Return(nil)

		var created *order.Order
		s.orders.EXPECT().NextSequence(gomock.Any()).Return(order.FirstSequence, nil)
		s.orders.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, o *order.Order) error {
				created = o
				return nil
			})
		s.notifications.EXPECT().CreateJob(gomock.Any(), "whatsapp", "order_created", gomock.Any(), s.clock.Now()).Return(nil)
		s.orderQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(b.BuildView(), nil)

		result, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.Require().NoError(err)
		s.Equal("ZAY-100001", result.PublicID)
		s.False(result.IsReplayed)
		s.Require().NotNil(created)
		s.Equal(order.StatusPending, created.Status())
		s.Equal(order.PaymentCashOnDelivery, created.PaymentMethod())
		s.Equal(8, products[b.Items[0].ProductID].Stock())
	})

	s.Run("error: blocked customer", func() {
		b := builder.NewOrderBuilder()
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), b.Phone).Return(true, nil)

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.True(errs.Is(err, commands.ErrCustomerBlocked))
		s.Equal(commands.MsgCustomerBlocked, errs.Message(err))
	})

	s.Run("error: unknown product", func() {
		b := builder.NewOrderBuilder()
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.products.EXPECT().FindManyForUpdate(gomock.Any(), gomock.Any()).
			Return(map[uuid.UUID]*catalog.Product{}, nil)

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.True(errs.Is(err, commands.ErrProductNotFound))
		s.Equal("Product "+b.Items[0].ProductID.String()+" not found", errs.Message(err))
	})

	s.Run("error: insufficient stock names the product", func() {
		b := builder.NewOrderBuilder()
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.expectStock(b, 1)

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.True(errs.Is(err, commands.ErrInsufficientStock))
		s.Equal("Insufficient stock for Oud Royal", errs.Message(err))
	})

	s.Run("error: totals that do not add up", func() {
		b := builder.NewOrderBuilder()
		cmd := b.BuildCommand()
		cmd.Total = cmd.Total.Add(cmd.Total)
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.expectStock(b, 10)
		s.products.EXPECT().UpdateStock(gomock.Any(), gomock.Any()).Return(nil)
		s.orders.EXPECT().NextSequence(gomock.Any()).Return(order.FirstSequence, nil)

		_, err := s.sut.PlaceOrder(context.Background(), cmd, nil)

		s.True(errs.Is(err, commands.ErrInvalidOrder))
	})

	s.Run("error: missing customer fields are listed", func() {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) {
			o.City = ""
			o.Address = "  "
		})

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.True(errs.Is(err, commands.ErrMissingCustomerFields))
		s.Equal("missing required fields: city, address", errs.Message(err))
	})

	s.Run("error: database failure while checking the block list", func() {
		b := builder.NewOrderBuilder()
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).
			Return(false, infra.WrapRepoErr("check blocked", errs.New("connection reset")))

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), nil)

		s.True(errs.Is(err, commands.ErrDatabaseOperationFailed))
	})
}

func (s *OrderCommandsTestSuite) TestPlaceOrderIdempotency() {
	key := uuid.New()

	s.Run("completed key replays the stored order", func() {
		b := builder.NewOrderBuilder()
		cmd := b.BuildCommand()
		orderID := b.ID
		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, gomock.Any(), requestHash(cmd), gomock.Any()).Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, gomock.Any()).Return(&shared.IdempotencyRecord{
			Key:           key,
			Status:        shared.IdempotencyCompleted,
			RequestHash:   requestHash(cmd),
			ResultOrderID: &orderID,
			ExpiresAt:     s.clock.Now().Add(time.Hour),
		}, nil)
		s.orderQueries.EXPECT().GetByID(gomock.Any(), orderID).Return(b.BuildView(), nil)

		result, err := s.sut.PlaceOrder(context.Background(), cmd, &key)

		s.Require().NoError(err)
		s.True(result.IsReplayed)
		s.Equal(b.PublicID, result.PublicID)
	})

	s.Run("key still processing", func() {
		cmd := builder.NewOrderBuilder().BuildCommand()
		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, gomock.Any()).Return(&shared.IdempotencyRecord{
			Key:         key,
			Status:      shared.IdempotencyProcessing,
			RequestHash: requestHash(cmd),
			ExpiresAt:   s.clock.Now().Add(time.Hour),
		}, nil)

		_, err := s.sut.PlaceOrder(context.Background(), cmd, &key)

		s.True(errs.Is(err, commands.ErrIdempotencyInProgress))
	})

	s.Run("key reused with a different payload", func() {
		cmd := builder.NewOrderBuilder().BuildCommand()
		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).Return(false, nil)
		s.reads.EXPECT().IdempotencyByKey(gomock.Any(), key, gomock.Any()).Return(&shared.IdempotencyRecord{
			Key:         key,
			Status:      shared.IdempotencyCompleted,
			RequestHash: "other",
			ExpiresAt:   s.clock.Now().Add(time.Hour),
		}, nil)

		_, err := s.sut.PlaceOrder(context.Background(), cmd, &key)

		s.True(errs.Is(err, commands.ErrIdempotencyKeyReused))
	})

	s.Run("failed placement releases the key", func() {
		b := builder.NewOrderBuilder()
		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).Return(true, nil)
		s.idempotency.EXPECT().Release(gomock.Any(), key, gomock.Any()).Return(nil)

		_, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), &key)

		s.True(errs.Is(err, commands.ErrCustomerBlocked))
	})

	s.Run("fresh key completes with the new order", func() {
		b := builder.NewOrderBuilder()
		s.idempotency.EXPECT().TryInsert(gomock.Any(), key, gomock.Any(), gomock.Any(), gomock.Any()).Return(true, nil)
		s.reads.EXPECT().IsCustomerBlocked(gomock.Any(), gomock.Any()).Return(false, nil)
		s.expectStock(b, 5)
		s.products.EXPECT().UpdateStock(gomock.Any(), gomock.Any()).Return(nil)
		s.orders.EXPECT().NextSequence(gomock.Any()).Return(int64(100002), nil)
		s.orders.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.notifications.EXPECT().CreateJob(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
		s.idempotency.EXPECT().MarkCompleted(gomock.Any(), key, gomock.Any(), gomock.Any()).Return(nil)
		s.orderQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(b.BuildView(), nil)

		result, err := s.sut.PlaceOrder(context.Background(), b.BuildCommand(), &key)

		s.Require().NoError(err)
		s.Equal("ZAY-100002", result.PublicID)
	})
}

func (s *OrderCommandsTestSuite) TestUpdateStatus() {
	s.Run("success: moves along the lifecycle", func() {
		b := builder.NewOrderBuilder()
		stored := b.BuildStored()
		s.orders.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID).Return(stored, nil)
		s.orders.EXPECT().UpdateStatus(gomock.Any(), stored).Return(nil)
		s.orderQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(b.BuildView(), nil)

		_, err := s.sut.UpdateStatus(context.Background(), b.ID, "confirmed")

		s.Require().NoError(err)
		s.Equal(order.StatusConfirmed, stored.Status())
	})

	s.Run("error: unknown status", func() {
		_, err := s.sut.UpdateStatus(context.Background(), uuid.New(), "Returned")
		s.True(errs.Is(err, commands.ErrInvalidStatus))
	})

	s.Run("error: unknown order", func() {
		id := uuid.New()
		s.orders.EXPECT().FindByIDForUpdate(gomock.Any(), id).Return(nil, infra.NotFound("order"))

		_, err := s.sut.UpdateStatus(context.Background(), id, "Shipped")

		s.True(errs.Is(err, commands.ErrOrderNotFound))
	})

	s.Run("error: terminal order under strict policy", func() {
		b := builder.NewOrderBuilder().With(func(o *builder.OrderBuilder) { o.Status = order.StatusDelivered })
		s.orders.EXPECT().FindByIDForUpdate(gomock.Any(), b.ID).Return(b.BuildStored(), nil)

		_, err := s.sut.UpdateStatus(context.Background(), b.ID, "Pending")

		s.True(errs.Is(err, commands.ErrTransitionNotAllowed))
		s.Equal("Cannot change status from Delivered to Pending", errs.Message(err))
	})
}
