//go:build unit

package commands_test

import (
	"context"
	"testing"
	"time"

	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/infra"
	"zaylux-store/internal/pkg/clock"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/shared"
	"zaylux-store/tests/common/builder"
	queriesmock "zaylux-store/tests/mock/queries"
	sharedmock "zaylux-store/tests/mock/shared"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CouponCommandsTestSuite struct {
	suite.Suite
	ctrl          *gomock.Controller
	uow           *sharedmock.MockUnitOfWork
	tx            *sharedmock.MockTx
	coupons       *sharedmock.MockCouponRepository
	couponQueries *queriesmock.MockCouponQueries
	clock         *clock.Fixed
	sut           commands.CouponCommands
}

func TestCouponCommandsSuite(t *testing.T) {
	suite.Run(t, new(CouponCommandsTestSuite))
}

func (s *CouponCommandsTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.uow = sharedmock.NewMockUnitOfWork(s.ctrl)
	s.tx = sharedmock.NewMockTx(s.ctrl)
	s.coupons = sharedmock.NewMockCouponRepository(s.ctrl)
	s.couponQueries = queriesmock.NewMockCouponQueries(s.ctrl)
	s.clock = clock.NewFixed(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	s.uow.EXPECT().Within(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn func(context.Context, shared.Tx) error) error {
			return fn(ctx, s.tx)
		}).AnyTimes()
	s.tx.EXPECT().Coupons().Return(s.coupons).AnyTimes()

	s.sut = commands.NewCouponCommands(s.uow, s.couponQueries, s.clock)
}

func (s *CouponCommandsTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CouponCommandsTestSuite) TestValidate() {
	s.Run("applies and counts a use", func() {
		stored := builder.NewCouponBuilder().BuildStored()
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), coupon.Code("SAVE10")).Return(stored, nil)
		s.coupons.EXPECT().SaveUsage(gomock.Any(), stored).Return(nil)

		result, err := s.sut.Validate(context.Background(), "  save10 ", money.MustParse("250.00"))

		s.Require().NoError(err)
		s.True(result.Valid)
		s.Equal("SAVE10", result.Code)
		s.True(result.DiscountPercentage.Equal(decimal.NewFromInt(10)))
		s.True(result.DiscountAmount.Equal(money.MustParse("25.00")))
		s.Equal(coupon.MsgApplied, result.Message)
		s.Equal(1, stored.UsageCount())
	})

	s.Run("empty code never reaches storage", func() {
		result, err := s.sut.Validate(context.Background(), "   ", money.MustParse("100.00"))

		s.Require().NoError(err)
		s.False(result.Valid)
		s.Equal(coupon.MsgEmptyCode, result.Message)
	})

	s.Run("unknown code", func() {
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), coupon.Code("NOPE")).Return(nil, infra.NotFound("coupon"))

		result, err := s.sut.Validate(context.Background(), "nope", money.MustParse("100.00"))

		s.Require().NoError(err)
		s.False(result.Valid)
		s.Equal(coupon.MsgNotFound, result.Message)
	})

	s.Run("below minimum does not count a use", func() {
		stored := builder.NewCouponBuilder().WithMinOrderValue("500").BuildStored()
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), gomock.Any()).Return(stored, nil)

		result, err := s.sut.Validate(context.Background(), "SAVE10", money.MustParse("499.99"))

		s.Require().NoError(err)
		s.False(result.Valid)
		s.Equal("Minimum order value is "+money.MustParse("500").Format(), result.Message)
		s.Equal(0, stored.UsageCount())
	})

	s.Run("inactive and expired", func() {
		inactive := builder.NewCouponBuilder().Inactive().BuildStored()
		expired := builder.NewCouponBuilder().WithExpiry(s.clock.Now().Add(-time.Minute)).BuildStored()
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), gomock.Any()).Return(inactive, nil)
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), gomock.Any()).Return(expired, nil)

		first, err := s.sut.Validate(context.Background(), "SAVE10", money.MustParse("100.00"))
		s.Require().NoError(err)
		second, err := s.sut.Validate(context.Background(), "SAVE10", money.MustParse("100.00"))
		s.Require().NoError(err)

		s.Equal(coupon.MsgInactive, first.Message)
		s.Equal(coupon.MsgExpired, second.Message)
	})

	s.Run("storage failure is an error", func() {
		s.coupons.EXPECT().FindByCodeForUpdate(gomock.Any(), gomock.Any()).
			Return(nil, infra.WrapRepoErr("find coupon", errs.New("timeout")))

		_, err := s.sut.Validate(context.Background(), "SAVE10", money.MustParse("100.00"))

		s.True(errs.Is(err, commands.ErrDatabaseOperationFailed))
	})
}

func (s *CouponCommandsTestSuite) TestCreate() {
	s.Run("success", func() {
		b := builder.NewCouponBuilder()
		s.coupons.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil)
		s.couponQueries.EXPECT().GetByID(gomock.Any(), gomock.Any()).Return(b.BuildView(), nil)

		view, err := s.sut.Create(context.Background(), commands.CouponInput{
			Code:               "save10",
			DiscountPercentage: decimal.NewFromInt(10),
			IsActive:           true,
		})

		s.Require().NoError(err)
		s.Equal("SAVE10", view.Code)
	})

	s.Run("percentage above 100", func() {
		_, err := s.sut.Create(context.Background(), commands.CouponInput{
			Code:               "BIG",
			DiscountPercentage: decimal.NewFromInt(101),
		})
		s.True(errs.Is(err, commands.ErrInvalidCouponArg))
	})

	s.Run("duplicate code", func() {
		s.coupons.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(infra.WrapRepoErr("insert coupon", nil, infra.KindDuplicateKey))

		_, err := s.sut.Create(context.Background(), commands.CouponInput{
			Code:               "SAVE10",
			DiscountPercentage: decimal.NewFromInt(10),
		})

		s.True(errs.Is(err, commands.ErrDuplicateCoupon))
		s.Equal("Coupon code already exists", errs.Message(err))
	})
}

func (s *CouponCommandsTestSuite) TestUpdateAndDelete() {
	s.Run("update replaces fields", func() {
		b := builder.NewCouponBuilder()
		stored := b.BuildStored()
		s.coupons.EXPECT().FindByID(gomock.Any(), b.ID).Return(stored, nil)
		s.coupons.EXPECT().Update(gomock.Any(), stored).Return(nil)
		s.couponQueries.EXPECT().GetByID(gomock.Any(), b.ID).Return(b.BuildView(), nil)

		_, err := s.sut.Update(context.Background(), b.ID, commands.CouponInput{
			Code:               "SAVE20",
			DiscountPercentage: decimal.NewFromInt(20),
			IsActive:           false,
		})

		s.Require().NoError(err)
		s.Equal(coupon.Code("SAVE20"), stored.Code())
		s.False(stored.Active())
	})

	s.Run("update of a missing coupon", func() {
		id := uuid.New()
		s.coupons.EXPECT().FindByID(gomock.Any(), id).Return(nil, infra.NotFound("coupon"))

		_, err := s.sut.Update(context.Background(), id, commands.CouponInput{
			Code:               "SAVE20",
			DiscountPercentage: decimal.NewFromInt(20),
		})

		s.True(errs.Is(err, commands.ErrCouponNotFound))
	})

	s.Run("delete of a missing coupon", func() {
		id := uuid.New()
		s.coupons.EXPECT().Delete(gomock.Any(), id).Return(infra.NotFound("coupon"))

		err := s.sut.Delete(context.Background(), id)

		s.True(errs.Is(err, commands.ErrCouponNotFound))
	})
}
