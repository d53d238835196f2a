//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"zaylux-store/internal/domain/customer"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/shared"
	sharedmock "zaylux-store/tests/mock/shared"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func newCustomerCommands(t *testing.T) (commands.CustomerCommands, *sharedmock.MockCustomerRepository, *clock.Fixed) {
	t.Helper()
	ctrl := gomock.NewController(t)
	uow := sharedmock.NewMockUnitOfWork(ctrl)
	tx := sharedmock.NewMockTx(ctrl)
	repo := sharedmock.NewMockCustomerRepository(ctrl)
	uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, tx)
		}).AnyTimes()
	tx.EXPECT().Customers().Return(repo).AnyTimes()

	clk := clock.NewFixed(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC))
	return commands.NewCustomerCommands(uow, clk), repo, clk
}

func TestCustomerCommands_Block(t *testing.T) {
	t.Run("stores the trimmed phone and reason", func(t *testing.T) {
		sut, repo, clk := newCustomerCommands(t)
		repo.EXPECT().Block(gomock.Any(), customer.Blocked{
			Phone:     "0551234567",
			Reason:    "fake orders",
			BlockedAt: clk.Now(),
		}).Return(nil)

		require.NoError(t, sut.Block(context.Background(), " 0551234567 ", " fake orders "))
	})

	t.Run("empty phone", func(t *testing.T) {
		sut, _, _ := newCustomerCommands(t)
		err := sut.Block(context.Background(), "  ", "spam")
		assert.True(t, errs.Is(err, commands.ErrInvalidPhone))
	})

	t.Run("storage failure", func(t *testing.T) {
		sut, repo, _ := newCustomerCommands(t)
		repo.EXPECT().Block(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("block", errs.New("conn refused")))

		err := sut.Block(context.Background(), "0551234567", "")

		assert.True(t, errs.Is(err, commands.ErrDatabaseOperationFailed))
	})
}

func TestCustomerCommands_Unblock(t *testing.T) {
	t.Run("removes a blocked phone", func(t *testing.T) {
		sut, repo, _ := newCustomerCommands(t)
		repo.EXPECT().Unblock(gomock.Any(), "0551234567").Return(true, nil)

		require.NoError(t, sut.Unblock(context.Background(), "0551234567"))
	})

	t.Run("phone that was never blocked", func(t *testing.T) {
		sut, repo, _ := newCustomerCommands(t)
		repo.EXPECT().Unblock(gomock.Any(), "0500000000").Return(false, nil)

		err := sut.Unblock(context.Background(), "0500000000")

		assert.True(t, errs.Is(err, commands.ErrCustomerNotBlocked))
	})
}
