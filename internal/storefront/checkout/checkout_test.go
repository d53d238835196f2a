//go:build unit

package checkout_test

import (
	"context"
	"net/http"
	"sync"
	"testing"
	"time"

	domcart "zaylux-store/internal/domain/cart"
	"zaylux-store/internal/domain/coupon"
	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/domain/order"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/pkg/logger"
	"zaylux-store/internal/storefront/cart"
	"zaylux-store/internal/storefront/checkout"
	"zaylux-store/internal/storefront/kvstore"
	"zaylux-store/internal/storefront/remote"
	checkoutmock "zaylux-store/tests/mock/checkout"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type CheckoutTestSuite struct {
	suite.Suite
	ctrl     *gomock.Controller
	ctx      context.Context
	cart     *cart.Manager
	coupons  *checkoutmock.MockCouponClient
	orders   *checkoutmock.MockOrderPlacer
	checkout *checkout.Checkout
}

func TestCheckoutTestSuite(t *testing.T) {
	suite.Run(t, new(CheckoutTestSuite))
}

func (s *CheckoutTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.ctx = context.Background()
	s.cart = cart.NewManager(s.ctx, kvstore.NewMemoryStore(), logger.Discard())
	s.coupons = checkoutmock.NewMockCouponClient(s.ctrl)
	s.orders = checkoutmock.NewMockOrderPlacer(s.ctrl)
	s.checkout = checkout.New(s.cart, checkout.NewCouponValidator(s.coupons), s.orders, logger.Discard())
}

func (s *CheckoutTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *CheckoutTestSuite) addItem(id, name, price string, qty int) {
	s.Require().NoError(s.cart.AddItem(s.ctx, id, domcart.Snapshot{
		NameEN: name,
		NameAR: name,
		Price:  money.MustParse(price),
		Image:  id + ".jpg",
	}, qty))
}

func (s *CheckoutTestSuite) applySave10() {
	s.coupons.EXPECT().ValidateCoupon(gomock.Any(), "SAVE10", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, total money.Money) (*remote.CouponResult, error) {
			return &remote.CouponResult{
				Valid:              true,
				DiscountPercentage: decimal.NewFromInt(10),
				DiscountAmount:     total.Percent(decimal.NewFromInt(10)),
				Message:            coupon.MsgApplied,
			}, nil
		})
	v, err := s.checkout.ApplyCoupon(s.ctx, " save10 ")
	s.Require().NoError(err)
	s.Require().True(v.Valid)
}

var customer = checkout.CustomerInfo{
	Name:    " Sara ",
	Phone:   "0551234567",
	City:    "Riyadh",
	Address: "King Fahd Road",
}

func (s *CheckoutTestSuite) TestApplyCoupon() {
	s.Run("valid code discounts the subtotal", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)

		s.applySave10()

		applied := s.checkout.Applied()
		s.Require().NotNil(applied)
		s.Equal("SAVE10", applied.Code)
		totals := s.checkout.Totals()
		s.Equal("250.00", totals.Subtotal.String())
		s.Equal("25.00", totals.Discount.String())
		s.Equal("225.00", totals.Total.String())
		s.False(totals.CouponStale)
	})

	s.Run("invalid code drops the applied coupon", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()
		s.coupons.EXPECT().ValidateCoupon(gomock.Any(), "OLD", gomock.Any()).
			Return(&remote.CouponResult{Valid: false, Message: coupon.MsgExpired}, nil)

		v, err := s.checkout.ApplyCoupon(s.ctx, "old")

		s.Require().NoError(err)
		s.False(v.Valid)
		s.Equal(coupon.MsgExpired, v.Message)
		s.Nil(s.checkout.Applied())
		s.True(s.checkout.Totals().Discount.IsZero())
	})

	s.Run("empty code stays local and keeps the coupon", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()

		v, err := s.checkout.ApplyCoupon(s.ctx, "   ")

		s.Require().NoError(err)
		s.Equal(coupon.MsgEmptyCode, v.Message)
		s.NotNil(s.checkout.Applied())
	})

	s.Run("transport failure keeps the coupon", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()
		s.coupons.EXPECT().ValidateCoupon(gomock.Any(), "OTHER", gomock.Any()).
			Return(nil, remote.ErrUnavailable)

		_, err := s.checkout.ApplyCoupon(s.ctx, "other")

		s.True(errs.Is(err, remote.ErrUnavailable))
		s.Require().NotNil(s.checkout.Applied())
		s.Equal("SAVE10", s.checkout.Applied().Code)
	})

	s.Run("cart change marks the discount stale", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()

		s.addItem("p2", "Falcon Mini", "100", 1)

		totals := s.checkout.Totals()
		s.True(totals.CouponStale)
		s.Equal("25.00", totals.Discount.String())
		s.Equal("325.00", totals.Total.String())
	})

	s.Run("remove clears the discount", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()

		s.checkout.RemoveCoupon()

		s.Nil(s.checkout.Applied())
		s.Equal("250.00", s.checkout.Totals().Total.String())
	})
}

func (s *CheckoutTestSuite) TestSubmit() {
	s.Run("blank fields are reported before any request", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "100", 1)

		_, err := s.checkout.Submit(s.ctx, checkout.CustomerInfo{Name: "Sara", Phone: " "})

		var ve *checkout.ValidationError
		s.Require().True(errs.As(err, &ve))
		s.Equal([]string{"phone", "city", "address"}, ve.Fields)
	})

	s.Run("empty cart", func() {
		s.SetupTest()

		_, err := s.checkout.Submit(s.ctx, customer)

		s.True(errs.Is(err, checkout.ErrEmptyCart))
	})

	s.Run("success sends the snapshot and resets local state", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "125", 2)
		s.applySave10()

		var sent remote.OrderRequest
		var sentKey string
		s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req remote.OrderRequest, key string) (*remote.Placement, error) {
				sent, sentKey = req, key
				return &remote.Placement{PublicOrderID: "ZAY-100001"}, nil
			})

		placement, err := s.checkout.Submit(s.ctx, customer)

		s.Require().NoError(err)
		s.Equal("ZAY-100001", placement.PublicOrderID)
		s.NotEmpty(sentKey)
		s.Equal("Sara", sent.CustomerName)
		s.Require().Len(sent.Items, 1)
		s.Equal("p1", sent.Items[0].ProductID)
		s.Equal("p1.jpg", sent.Items[0].Image)
		s.Equal("225.00", sent.Total.String())
		s.Require().NotNil(sent.CouponCode)
		s.Equal("SAVE10", *sent.CouponCode)

		s.Empty(s.cart.Items())
		s.Nil(s.checkout.Applied())
	})

	s.Run("cart shrunk below the discount still submits", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "450", 3)
		s.coupons.EXPECT().ValidateCoupon(gomock.Any(), "BIG", gomock.Any()).
			Return(&remote.CouponResult{
				Valid:              true,
				DiscountPercentage: decimal.NewFromInt(10),
				DiscountAmount:     money.MustParse("135"),
				Message:            coupon.MsgApplied,
			}, nil)
		_, err := s.checkout.ApplyCoupon(s.ctx, "BIG")
		s.Require().NoError(err)
		s.Require().NoError(s.cart.RemoveItem(s.ctx, "p1"))
		s.addItem("p2", "Falcon Mini", "100", 1)

		var sent remote.OrderRequest
		s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, req remote.OrderRequest, _ string) (*remote.Placement, error) {
				sent = req
				return &remote.Placement{PublicOrderID: "ZAY-100001"}, nil
			})

		_, err = s.checkout.Submit(s.ctx, customer)

		s.Require().NoError(err)
		s.Equal("100.00", sent.Subtotal.String())
		s.Equal("100.00", sent.Discount.String())
		s.Equal("0.00", sent.Total.String())
		itemSum := money.Zero
		for _, it := range sent.Items {
			itemSum = itemSum.Add(it.Price.Mul(it.Quantity))
		}
		s.NoError(order.CheckTotals(itemSum, order.Totals{Subtotal: sent.Subtotal, Discount: sent.Discount, Total: sent.Total}))
	})

	s.Run("failure keeps the cart and reuses the key", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "100", 1)

		var keys []string
		s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ remote.OrderRequest, key string) (*remote.Placement, error) {
				keys = append(keys, key)
				return nil, &remote.RemoteError{Status: http.StatusBadRequest, Message: "Insufficient stock for Oud Royal"}
			}).Times(2)

		_, err := s.checkout.Submit(s.ctx, customer)
		s.Require().Error(err)
		s.Equal("Insufficient stock for Oud Royal", checkout.UserMessage(err))
		_, err = s.checkout.Submit(s.ctx, customer)
		s.Require().Error(err)

		s.Require().Len(keys, 2)
		s.Equal(keys[0], keys[1])
		s.Len(s.cart.Items(), 1)
	})

	s.Run("changed payload gets a fresh key", func() {
		s.SetupTest()
		s.addItem("p1", "Oud Royal", "100", 1)

		var keys []string
		s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ remote.OrderRequest, key string) (*remote.Placement, error) {
				keys = append(keys, key)
				return nil, remote.ErrUnavailable
			}).Times(2)

		_, _ = s.checkout.Submit(s.ctx, customer)
		s.Require().NoError(s.cart.UpdateQuantity(s.ctx, "p1", 3))
		_, _ = s.checkout.Submit(s.ctx, customer)

		s.Require().Len(keys, 2)
		s.NotEqual(keys[0], keys[1])
	})

	s.Run("next order after a success gets a fresh key", func() {
		s.SetupTest()

		var keys []string
		s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, _ remote.OrderRequest, key string) (*remote.Placement, error) {
				keys = append(keys, key)
				return &remote.Placement{PublicOrderID: "ZAY-100001"}, nil
			}).Times(2)

		s.addItem("p1", "Oud Royal", "100", 1)
		_, err := s.checkout.Submit(s.ctx, customer)
		s.Require().NoError(err)
		s.addItem("p1", "Oud Royal", "100", 1)
		_, err = s.checkout.Submit(s.ctx, customer)
		s.Require().NoError(err)

		s.Require().Len(keys, 2)
		s.NotEqual(keys[0], keys[1])
	})
}

func (s *CheckoutTestSuite) TestSubmitConcurrentCallsShareOneRequest() {
	s.addItem("p1", "Oud Royal", "100", 1)

	release := make(chan struct{})
	s.orders.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(context.Context, remote.OrderRequest, string) (*remote.Placement, error) {
			<-release
			return &remote.Placement{PublicOrderID: "ZAY-100001"}, nil
		}).Times(1)

	var wg sync.WaitGroup
	results := make([]string, 3)
	for i := range results {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := s.checkout.Submit(s.ctx, customer)
			if assert.NoError(s.T(), err) {
				results[i] = p.PublicOrderID
			}
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	s.Equal([]string{"ZAY-100001", "ZAY-100001", "ZAY-100001"}, results)
	s.Empty(s.cart.Items())
}

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{name: "server message", err: errs.Wrap(&remote.RemoteError{Status: 403, Message: "Your account has been blocked. Please contact support."}, "place order"), want: "Your account has been blocked. Please contact support."},
		{name: "server error without text", err: &remote.RemoteError{Status: 502}, want: checkout.MsgPlaceOrderFailed},
		{name: "missing fields", err: &checkout.ValidationError{Fields: []string{"city"}}, want: "Please fill in all fields"},
		{name: "empty cart", err: checkout.ErrEmptyCart, want: "Your cart is empty"},
		{name: "breaker open", err: remote.ErrUnavailable, want: checkout.MsgPlaceOrderFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checkout.UserMessage(tt.err))
		})
	}
}

func TestComputeTotals(t *testing.T) {
	applied := &checkout.AppliedCoupon{
		Code:           "BIG",
		Percentage:     decimal.NewFromInt(50),
		DiscountAmount: money.MustParse("300"),
		Subtotal:       money.MustParse("600"),
	}

	totals := checkout.ComputeTotals(money.MustParse("200"), applied)

	require.True(t, totals.CouponStale)
	assert.Equal(t, "200.00", totals.Discount.String(), "discount is capped at the subtotal")
	assert.Equal(t, "0.00", totals.Total.String())
	assert.NoError(t, order.CheckTotals(totals.Subtotal, order.Totals{
		Subtotal: totals.Subtotal,
		Discount: totals.Discount,
		Total:    totals.Total,
	}))
}
