// Package remote is the storefront's HTTP client for the order authority.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"zaylux-store/internal/domain/money"
	"zaylux-store/internal/pkg/config"
	"zaylux-store/internal/pkg/errs"

	"github.com/sony/gobreaker/v2"
	"golang.org/x/sync/singleflight"
)

const (
	headerIdempotencyKey     = "Idempotency-Key"
	headerIdempotentReplayed = "Idempotent-Replayed"
	maxResponseBytes         = 4 << 20
)

type response struct {
	status int
	header http.Header
	body   []byte
}

type Client struct {
	baseURL string
	http    *http.Client
	breaker *gobreaker.CircuitBreaker[*response]
	reads   singleflight.Group
	logger  *slog.Logger
}

func NewClient(cfg config.StorefrontConfig, logger *slog.Logger) *Client {
	return NewClientWithHTTP(cfg, &http.Client{Timeout: cfg.RequestTimeout}, logger)
}

func NewClientWithHTTP(cfg config.StorefrontConfig, httpClient *http.Client, logger *slog.Logger) *Client {
	failures := cfg.Breaker.ConsecutiveFailures
	if failures == 0 {
		failures = 5
	}
	breaker := gobreaker.NewCircuitBreaker[*response](gobreaker.Settings{
		Name:        "order-authority",
		MaxRequests: cfg.Breaker.MaxRequests,
		Interval:    cfg.Breaker.Interval,
		Timeout:     cfg.Breaker.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 4xx answers are the caller's problem, not an outage
		IsSuccessful: func(err error) bool {
			var re *RemoteError
			if errors.As(err, &re) {
				return !re.IsServerError()
			}
			return err == nil || errors.Is(err, context.Canceled)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed", "name", name, "from", from.String(), "to", to.String())
		},
	})
	return &Client{
		baseURL: strings.TrimRight(cfg.APIURL, "/"),
		http:    httpClient,
		breaker: breaker,
		logger:  logger,
	}
}

// ListProducts collapses concurrent identical reads into one request.
func (c *Client) ListProducts(ctx context.Context, category string) ([]Product, error) {
	v, err, _ := c.reads.Do("products?"+category, func() (any, error) {
		path := "/api/products"
		if category != "" {
			path += "?category=" + url.QueryEscape(category)
		}
		var products []Product
		if _, err := c.do(ctx, http.MethodGet, path, nil, nil, &products); err != nil {
			return nil, err
		}
		return products, nil
	})
	if err != nil {
		return nil, err
	}
	return append([]Product(nil), v.([]Product)...), nil
}

func (c *Client) GetProduct(ctx context.Context, id string) (*Product, error) {
	v, err, _ := c.reads.Do("product/"+id, func() (any, error) {
		var p Product
		if _, err := c.do(ctx, http.MethodGet, "/api/products/"+url.PathEscape(id), nil, nil, &p); err != nil {
			return nil, err
		}
		return p, nil
	})
	if err != nil {
		return nil, err
	}
	p := v.(Product)
	return &p, nil
}

func (c *Client) ValidateCoupon(ctx context.Context, code string, orderTotal money.Money) (*CouponResult, error) {
	body := map[string]any{"code": code, "order_total": orderTotal}
	var res CouponResult
	if _, err := c.do(ctx, http.MethodPost, "/api/coupons/validate", body, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// PlaceOrder sends the order once; an empty idempotencyKey omits the header.
func (c *Client) PlaceOrder(ctx context.Context, req OrderRequest, idempotencyKey string) (*Placement, error) {
	var header http.Header
	if idempotencyKey != "" {
		header = http.Header{headerIdempotencyKey: []string{idempotencyKey}}
	}
	var res Placement
	respHeader, err := c.do(ctx, http.MethodPost, "/api/orders", req, header, &res)
	if err != nil {
		return nil, err
	}
	res.Replayed = respHeader.Get(headerIdempotentReplayed) == "true"
	return &res, nil
}

func (c *Client) TrackOrder(ctx context.Context, orderID, phone string) (*TrackedOrder, error) {
	body := map[string]string{"order_id": orderID, "phone": phone}
	var res TrackedOrder
	if _, err := c.do(ctx, http.MethodPost, "/api/orders/track", body, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

// RequestRestock asks to be told when a sold out product is back. A blank
// name is omitted.
func (c *Client) RequestRestock(ctx context.Context, productID, phone, name string) (*RestockRequest, error) {
	body := RestockRequest{ProductID: productID, Phone: phone}
	if name != "" {
		body.Name = &name
	}
	var res RestockRequest
	if _, err := c.do(ctx, http.MethodPost, "/api/notify-me", body, nil, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *Client) do(ctx context.Context, method, path string, in any, header http.Header, out any) (http.Header, error) {
	var payload []byte
	if in != nil {
		var err error
		if payload, err = json.Marshal(in); err != nil {
			return nil, errs.Wrap(err, "encode request")
		}
	}

	resp, err := c.breaker.Execute(func() (*response, error) {
		return c.roundTrip(ctx, method, path, payload, header)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return nil, errs.Mark(err, ErrUnavailable)
		}
		return nil, err
	}

	if out != nil && len(resp.body) > 0 {
		if err := json.Unmarshal(resp.body, out); err != nil {
			return nil, errs.Wrapf(err, "decode %s %s", method, path)
		}
	}
	return resp.header, nil
}

// roundTrip turns non-2xx answers into *RemoteError so the breaker can
// classify them.
func (c *Client) roundTrip(ctx context.Context, method, path string, payload []byte, header http.Header) (*response, error) {
	var body io.Reader
	if payload != nil {
		body = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, errs.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	res, err := c.http.Do(req)
	if err != nil {
		c.logger.Warn("order service request failed", "method", method, "path", path, "error", err)
		return nil, errs.Wrapf(err, "%s %s", method, path)
	}
	defer res.Body.Close()

	data, err := io.ReadAll(io.LimitReader(res.Body, maxResponseBytes))
	if err != nil {
		return nil, errs.Wrapf(err, "read %s %s", method, path)
	}
	c.logger.Debug("order service request", "method", method, "path", path, "status", res.StatusCode, "duration", time.Since(start))

	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, newRemoteError(res.StatusCode, data)
	}
	return &response{status: res.StatusCode, header: res.Header, body: data}, nil
}
