//go:build unit

package api_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"zaylux-store/internal/handler/api"
	reqdto "zaylux-store/internal/handler/dto/request"
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
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockOrderCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockOrderCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)

	s.router.POST("/api/orders", s.handler.Create)
	s.router.POST("/api/orders/track", s.handler.Track)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

// ================================================================================
// TestCreate
// ================================================================================

func (s *OrderHandlerTestSuite) TestCreate() {
	url := "/api/orders"

	b := builder.NewOrderBuilder()
	reqBody := b.BuildRequestDTO()
	placed := &commands.PlaceOrderResult{Order: b.BuildView(), PublicID: b.PublicID}

	s.Run("success: returns 201 with the public order id", func() {
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), (*uuid.UUID)(nil)).
			DoAndReturn(func(_ any, cmd commands.PlaceOrderCommand, _ *uuid.UUID) (*commands.PlaceOrderResult, error) {
				s.Equal(b.Phone, cmd.Phone)
				s.Len(cmd.Items, 1)
				s.True(cmd.Total.Equal(b.Total()))
				return placed, nil
			})

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.CreateOrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal("ZAY-100001", body.PublicOrderID)
		s.Equal("Pending", body.Order.Status)
		s.Equal("Cash on Delivery", body.Order.PaymentMethod)
		s.Empty(rec.Header().Get("Idempotent-Replayed"))
	})

	s.Run("success: forwards the idempotency key and flags replays", func() {
		key := uuid.New()
		replayed := *placed
		replayed.IsReplayed = true
		s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), &key).Return(&replayed, nil)

		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": key.String()})

		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, nil)
		httptest.AssertHeaders(s.T(), rec, map[string]string{"Idempotent-Replayed": "true"})
	})

	s.Run("error: 400 on a malformed idempotency key", func() {
		rec := httptest.PerformRequestWithHeaders(s.T(), s.router, http.MethodPost, url, reqBody,
			map[string]string{"Idempotency-Key": "not-a-uuid"})
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid Idempotency-Key header")
	})

	s.Run("error: 400 Bad Request on malformed payloads", func() {
		cases := []struct {
			name   string
			mutate func(map[string]any)
		}{
			{name: "missing items", mutate: testutil.Field("items", nil)},
			{name: "empty items", mutate: testutil.Field("items", []any{})},
			{name: "zero quantity", mutate: testutil.Field("items", []map[string]any{{
				"product_id": uuid.NewString(), "name_en": "Oud Royal", "price": 100, "quantity": 0,
			}})},
			{name: "item without product id", mutate: testutil.Field("items", []map[string]any{{
				"name_en": "Oud Royal", "price": 100, "quantity": 1,
			}})},
			{name: "null total", mutate: testutil.Field("total", json.RawMessage("null"))},
			{name: "text subtotal", mutate: testutil.Field("subtotal", "a lot")},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "")
				httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid request")
			})
		}
	})

	s.Run("error: maps usecase errors to statuses and messages", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
			expectedMsg    string
		}{
			{
				name:           "blocked customer",
				commandsError:  errs.WithMessage(commands.ErrCustomerBlocked, commands.MsgCustomerBlocked),
				expectedStatus: http.StatusForbidden,
				expectedMsg:    commands.MsgCustomerBlocked,
			},
			{
				name:           "unknown product",
				commandsError:  errs.WithMessage(commands.ErrProductNotFound, "Product 42 not found"),
				expectedStatus: http.StatusNotFound,
				expectedMsg:    "Product 42 not found",
			},
			{
				name:           "insufficient stock",
				commandsError:  errs.WithMessage(commands.ErrInsufficientStock, "Insufficient stock for Oud Royal"),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Insufficient stock for Oud Royal",
			},
			{
				name:           "missing customer fields",
				commandsError:  errs.WithMessage(commands.ErrMissingCustomerFields, "missing required fields: city"),
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "missing required fields: city",
			},
			{
				name:           "totals mismatch",
				commandsError:  commands.ErrInvalidOrder,
				expectedStatus: http.StatusBadRequest,
				expectedMsg:    "Invalid order",
			},
			{
				name:           "key reused",
				commandsError:  commands.ErrIdempotencyKeyReused,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "already used",
			},
			{
				name:           "key in progress",
				commandsError:  commands.ErrIdempotencyInProgress,
				expectedStatus: http.StatusConflict,
				expectedMsg:    "currently being processed",
			},
			{
				name:           "unexpected failure",
				commandsError:  errors.New("database error"),
				expectedStatus: http.StatusInternalServerError,
				expectedMsg:    "Failed to place order",
			},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().PlaceOrder(gomock.Any(), gomock.Any(), gomock.Any()).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, tc.expectedMsg)
			})
		}
	})
}

// ================================================================================
// TestTrack
// ================================================================================

func (s *OrderHandlerTestSuite) TestTrack() {
	url := "/api/orders/track"
	reqBody := reqdto.TrackOrderRequest{OrderID: "ZAY-100001", Phone: "0551234567"}

	s.Run("success: returns the order status", func() {
		view := builder.NewOrderBuilder().BuildView()
		s.mockQueries.EXPECT().Track(gomock.Any(), "ZAY-100001", "0551234567").
			Return(&queries.TrackingView{
				PublicID:      view.PublicID,
				Status:        "Shipped",
				Items:         view.Items,
				Subtotal:      view.Subtotal,
				Discount:      view.Discount,
				Total:         view.Total,
				PaymentMethod: view.PaymentMethod,
			}, nil)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		var body resdto.TrackingResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("ZAY-100001", body.PublicID)
		s.Equal("Shipped", body.Status)
		s.Len(body.Items, 1)
	})

	s.Run("error: 404 when id and phone do not match", func() {
		s.mockQueries.EXPECT().Track(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, queries.ErrOrderNotFound)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 500 on storage failure", func() {
		s.mockQueries.EXPECT().Track(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil, errors.New("boom"))

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")

		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "Internal server error")
	})
}
