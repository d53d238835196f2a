//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"zaylux-store/internal/domain/notify"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/ptr"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/shared"
	"zaylux-store/tests/common/builder"
	sharedmock "zaylux-store/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type notifyFixture struct {
	sut      commands.NotifyCommands
	products *sharedmock.MockProductRepository
	requests *sharedmock.MockNotifyRequestRepository
	clock    *clock.Fixed
}

func newNotifyCommands(t *testing.T) notifyFixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	f := notifyFixture{
		products: sharedmock.NewMockProductRepository(ctrl),
		requests: sharedmock.NewMockNotifyRequestRepository(ctrl),
		clock:    clock.NewFixed(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)),
	}
	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).AnyTimes()
	tx.EXPECT().Products().Return(f.products).AnyTimes()
	tx.EXPECT().NotifyRequests().Return(f.requests).AnyTimes()

	f.sut = commands.NewNotifyCommands(uow, f.clock)
	return f
}

func TestNotifyCommands_RequestRestock(t *testing.T) {
	soldOut := builder.NewProductBuilder().WithStock(0)

	t.Run("records a request for a sold out product", func(t *testing.T) {
		f := newNotifyCommands(t)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), soldOut.ID).Return(soldOut.BuildStored(), nil)
		f.requests.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, r notify.Request) (bool, error) {
				assert.Equal(t, soldOut.ID, r.ProductID)
				assert.Equal(t, "0551234567", r.Phone)
				assert.Equal(t, "Sara", ptr.Deref(r.Name))
				return true, nil
			})

		view, err := f.sut.RequestRestock(context.Background(), soldOut.ID, " 0551234567 ", ptr.Of(" Sara "))

		require.NoError(t, err)
		assert.Equal(t, soldOut.ID, view.ProductID)
		assert.Equal(t, "0551234567", view.Phone)
		assert.Equal(t, f.clock.Now(), view.CreatedAt)
	})

	t.Run("unknown product", func(t *testing.T) {
		f := newNotifyCommands(t)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), soldOut.ID).
			Return(nil, infra.NotFound("product not found"))

		_, err := f.sut.RequestRestock(context.Background(), soldOut.ID, "0551234567", nil)

		assert.True(t, errs.Is(err, commands.ErrProductNotFound))
	})

	t.Run("product still in stock", func(t *testing.T) {
		f := newNotifyCommands(t)
		inStock := builder.NewProductBuilder().WithStock(3)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), inStock.ID).Return(inStock.BuildStored(), nil)

		_, err := f.sut.RequestRestock(context.Background(), inStock.ID, "0551234567", nil)

		assert.True(t, errs.Is(err, commands.ErrProductInStock))
	})

	t.Run("blank phone", func(t *testing.T) {
		f := newNotifyCommands(t)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), soldOut.ID).Return(soldOut.BuildStored(), nil)

		_, err := f.sut.RequestRestock(context.Background(), soldOut.ID, "  ", nil)

		assert.True(t, errs.Is(err, commands.ErrInvalidPhone))
	})

	t.Run("same phone asks twice", func(t *testing.T) {
		f := newNotifyCommands(t)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), soldOut.ID).Return(soldOut.BuildStored(), nil)
		f.requests.EXPECT().Create(gomock.Any(), gomock.Any()).Return(false, nil)

		_, err := f.sut.RequestRestock(context.Background(), soldOut.ID, "0551234567", nil)

		assert.True(t, errs.Is(err, commands.ErrNotifyRequestExists))
	})

	t.Run("storage failure", func(t *testing.T) {
		f := newNotifyCommands(t)
		f.products.EXPECT().FindByIDForUpdate(gomock.Any(), soldOut.ID).Return(soldOut.BuildStored(), nil)
		f.requests.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(false, infra.WrapRepoErr("insert notify request", errs.New("conn refused")))

		_, err := f.sut.RequestRestock(context.Background(), soldOut.ID, "0551234567", nil)

		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
	})
}
