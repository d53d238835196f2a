//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/handler/api"
	resdto "zaylux-store/internal/handler/dto/response"
	"zaylux-store/internal/pkg/errs"
	"zaylux-store/internal/usecase/commands"
	"zaylux-store/internal/usecase/queries"
	"zaylux-store/tests/common/builder"
	"zaylux-store/tests/common/httptest"
	"zaylux-store/tests/common/testutil"
	commandsmock "zaylux-store/tests/mock/commands"
	queriesmock "zaylux-store/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type AdminCatalogHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockCtrl    *gomock.Controller
	productCmds *commandsmock.MockProductCommands
	productQ    *queriesmock.MockProductQueries
	couponCmds  *commandsmock.MockCouponCommands
	couponQ     *queriesmock.MockCouponQueries
	handler     *api.AdminCatalogHandler
}

func (s *AdminCatalogHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.productCmds = commandsmock.NewMockProductCommands(s.mockCtrl)
	s.productQ = queriesmock.NewMockProductQueries(s.mockCtrl)
	s.couponCmds = commandsmock.NewMockCouponCommands(s.mockCtrl)
	s.couponQ = queriesmock.NewMockCouponQueries(s.mockCtrl)
	s.handler = api.NewAdminCatalogHandler(s.productCmds, s.productQ, s.couponCmds, s.couponQ)

	s.router.GET("/api/admin/products", s.handler.ListProducts)
	s.router.POST("/api/admin/products", s.handler.CreateProduct)
	s.router.PUT("/api/admin/products/:id", s.handler.UpdateProduct)
	s.router.DELETE("/api/admin/products/:id", s.handler.DeleteProduct)
	s.router.GET("/api/admin/coupons", s.handler.ListCoupons)
	s.router.POST("/api/admin/coupons", s.handler.CreateCoupon)
	s.router.PUT("/api/admin/coupons/:id", s.handler.UpdateCoupon)
	s.router.DELETE("/api/admin/coupons/:id", s.handler.DeleteCoupon)
}

func (s *AdminCatalogHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestAdminCatalogHandlerSuite(t *testing.T) {
	suite.Run(t, new(AdminCatalogHandlerTestSuite))
}

func (s *AdminCatalogHandlerTestSuite) TestListProducts() {
	views := []*queries.ProductView{
		builder.NewProductBuilder().BuildView(),
		builder.NewProductBuilder().Hidden().BuildView(),
	}
	s.productQ.EXPECT().ListAll(gomock.Any()).Return(views, nil)

	rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/products", nil, "")

	var body []resdto.ProductResponse
	httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
	s.Len(body, 2)
	s.False(body[1].IsVisible)
}

func (s *AdminCatalogHandlerTestSuite) TestCreateProduct() {
	url := "/api/admin/products"
	b := builder.NewProductBuilder()
	reqBody := b.BuildCreateRequestDTO()

	s.Run("success: visibility defaults to true", func() {
		s.productCmds.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.ProductInput) (*queries.ProductView, error) {
				s.True(in.IsVisible)
				s.Equal("perfume", in.Category)
				s.Equal(10, in.Quantity)
				return b.BuildView(), nil
			})
		requestMap := testutil.DtoMap(s.T(), reqBody, testutil.Field("is_visible", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing name_en", mutate: testutil.Field("name_en", nil)},
			{name: "missing name_ar", mutate: testutil.Field("name_ar", nil)},
			{name: "missing category", mutate: testutil.Field("category", nil)},
			{name: "negative quantity", mutate: testutil.Field("quantity", -1)},
			{name: "non-numeric price", mutate: testutil.Field("price", "cheap")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: domain rejection carries its message", func() {
		s.productCmds.EXPECT().Create(gomock.Any(), gomock.Any()).
			Return(nil, errs.WithMessage(commands.ErrInvalidProduct, "invalid product category"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "invalid product category")
	})
}

func (s *AdminCatalogHandlerTestSuite) TestUpdateProduct() {
	b := builder.NewProductBuilder()
	url := "/api/admin/products/" + b.ID.String()

	s.Run("success: explicit null clears original price", func() {
		s.productCmds.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, p commands.ProductPatch) (*queries.ProductView, error) {
				s.True(p.OriginalPrice.Set)
				s.Nil(p.OriginalPrice.Value)
				s.Require().NotNil(p.Quantity)
				s.Equal(4, *p.Quantity)
				s.Nil(p.NameEN)
				return b.BuildView(), nil
			})

		body := map[string]any{"original_price": json.RawMessage("null"), "quantity": 4}
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, body, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: absent original price is untouched", func() {
		s.productCmds.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).
			DoAndReturn(func(_ any, _ uuid.UUID, p commands.ProductPatch) (*queries.ProductView, error) {
				s.False(p.OriginalPrice.Set)
				s.Require().NotNil(p.Price)
				s.True(p.Price.Equal(money.MustParse("199.50")))
				return b.BuildView(), nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{"price": 199.5}, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 404 on an unknown product", func() {
		s.productCmds.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(nil, commands.ErrProductNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, url, map[string]any{}, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Product not found")
	})

	s.Run("error: 400 on a malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/products/x", map[string]any{}, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid product id")
	})
}

func (s *AdminCatalogHandlerTestSuite) TestDeleteProduct() {
	id := uuid.New()
	url := "/api/admin/products/" + id.String()

	s.Run("success", func() {
		s.productCmds.EXPECT().Delete(gomock.Any(), id).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")

		var body resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Product deleted successfully", body.Message)
	})

	s.Run("error: 500 on storage failure", func() {
		s.productCmds.EXPECT().Delete(gomock.Any(), id).Return(errors.New("fk violation"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}

func (s *AdminCatalogHandlerTestSuite) TestCoupons() {
	b := builder.NewCouponBuilder()

	s.Run("list", func() {
		s.couponQ.EXPECT().List(gomock.Any()).Return([]*queries.CouponView{b.BuildView()}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/api/admin/coupons", nil, "")

		var body []resdto.CouponResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal("SAVE10", body[0].Code)
		s.InDelta(10.0, body[0].DiscountPercentage, 0.0001)
	})

	s.Run("create defaults to active", func() {
		s.couponCmds.EXPECT().Create(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ any, in commands.CouponInput) (*queries.CouponView, error) {
				s.True(in.IsActive)
				s.True(in.DiscountPercentage.Equal(decimal.NewFromInt(10)))
				return b.BuildView(), nil
			})
		requestMap := testutil.DtoMap(s.T(), b.BuildRequestDTO(), testutil.Field("is_active", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/coupons", requestMap, "")

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
	})

	s.Run("create maps coupon errors", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{"duplicate", errs.WithMessage(commands.ErrDuplicateCoupon, "Coupon code already exists"), http.StatusConflict, "Coupon code already exists"},
			{"invalid", errs.WithMessage(commands.ErrInvalidCouponArg, "discount percentage must be between 0 and 100"), http.StatusBadRequest, "between 0 and 100"},
			{"failure", errors.New("timeout"), http.StatusInternalServerError, "Internal server error"},
		}
		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.couponCmds.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil, tc.commandsError)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/coupons", b.BuildRequestDTO(), "")

				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})

	s.Run("create requires a code", func() {
		requestMap := testutil.DtoMap(s.T(), b.BuildRequestDTO(), testutil.Field("code", nil))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/api/admin/coupons", requestMap, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
	})

	s.Run("update of an unknown coupon", func() {
		s.couponCmds.EXPECT().Update(gomock.Any(), b.ID, gomock.Any()).Return(nil, commands.ErrCouponNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPut, "/api/admin/coupons/"+b.ID.String(), b.BuildRequestDTO(), "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Coupon not found")
	})

	s.Run("delete", func() {
		s.couponCmds.EXPECT().Delete(gomock.Any(), b.ID).Return(nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, "/api/admin/coupons/"+b.ID.String(), nil, "")

		var body resdto.MessageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("Coupon deleted successfully", body.Message)
	})
}
