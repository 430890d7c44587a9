package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"storefront/search/internal/config"
	"storefront/search/internal/domain"
	"storefront/search/internal/upstream"

	log "github.com/sirupsen/logrus"
	"go.uber.org/ratelimit"
	"resty.dev/v3"
)

const customerProductsPath = "/api/admin/products/customer"

// ErrCircuitOpen is returned while the catalog is cooling down after it
// signalled overload.
var ErrCircuitOpen = errors.New("catalog circuit breaker is open")

// ProductFilter narrows a catalog request. Empty fields are not sent.
type ProductFilter struct {
	Type        string
	Category    string
	Subcategory string
}

// Key identifies the filter in cache keys.
func (f ProductFilter) Key() string {
	if f == (ProductFilter{}) {
		return "all"
	}
	return fmt.Sprintf("type=%s|category=%s|sub=%s", f.Type, f.Category, f.Subcategory)
}

func (f ProductFilter) params() map[string]string {
	params := make(map[string]string, 3)
	if f.Type != "" {
		params["type"] = f.Type
	}
	if f.Category != "" {
		params["category"] = f.Category
	}
	if f.Subcategory != "" {
		params["sub"] = f.Subcategory
	}
	return params
}

// CatalogClient fetches customer-facing product records from the storefront API
type CatalogClient interface {
	GetProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error)
}

type catalogClient struct {
	rl         ratelimit.Limiter
	httpClient *resty.Client
	pool       upstream.Pool

	// Circuit breaker for overload responses
	circuitBreakerMutex sync.RWMutex
	openUntil           time.Time
	cooldown            time.Duration
}

func NewCatalogClient(cfg config.CatalogConfig, pool upstream.Pool) CatalogClient {
	client := resty.New().
		SetTimeout(time.Duration(cfg.Timeout)*time.Second).
		SetRetryCount(cfg.MaxRetries).
		SetRetryWaitTime(200*time.Millisecond).
		SetRetryMaxWaitTime(2*time.Second).
		SetHeader("Accept", "application/json").
		SetHeader("User-Agent", "storefront-search/1.0")

	return &catalogClient{
		rl:         ratelimit.New(cfg.MaxRequestsPerSecond),
		httpClient: client,
		pool:       pool,
		cooldown:   time.Duration(cfg.CooldownSeconds) * time.Second,
	}
}

func (c *catalogClient) GetProducts(ctx context.Context, filter ProductFilter) ([]domain.Product, error) {
	attempts := 1
	if c.pool.Size() > 1 {
		attempts = 2
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		endpoint := c.pool.Next()
		if endpoint == "" {
			return nil, errors.New("no catalog endpoint configured")
		}

		products, err := c.fetchProducts(ctx, endpoint, filter)
		if err == nil {
			log.Debugf("Fetched %d products from %s (%s)", len(products), endpoint, filter.Key())
			return products, nil
		}

		lastErr = err
		if !retryable(ctx, err) {
			break
		}
		log.Warnf("🔄 Catalog request to %s failed, trying next endpoint: %v", endpoint, err)
	}

	return nil, lastErr
}

// transportError marks failures where another endpoint may succeed.
type transportError struct {
	err error
}

func (e *transportError) Error() string { return e.err.Error() }
func (e *transportError) Unwrap() error { return e.err }

func retryable(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var te *transportError
	return errors.As(err, &te)
}

func (c *catalogClient) fetchProducts(ctx context.Context, endpoint string, filter ProductFilter) ([]domain.Product, error) {
	if c.isCircuitBreakerOpen() {
		return nil, fmt.Errorf("%w for %v more", ErrCircuitOpen, c.remainingCooldown().Round(time.Second))
	}

	c.rl.Take()

	resp, err := c.httpClient.R().
		SetContext(ctx).
		SetQueryParams(filter.params()).
		Get(endpoint + customerProductsPath)

	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("request cancelled: %w", ctx.Err())
		}
		return nil, &transportError{err: fmt.Errorf("failed to fetch products: %w", err)}
	}

	switch {
	case resp.StatusCode() == http.StatusTooManyRequests || resp.StatusCode() == http.StatusServiceUnavailable:
		c.triggerCircuitBreaker()
		return nil, fmt.Errorf("catalog overloaded: %s", resp.Status())
	case resp.StatusCode() >= http.StatusInternalServerError:
		return nil, &transportError{err: fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())}
	case resp.IsError():
		return nil, fmt.Errorf("HTTP error: %d %s", resp.StatusCode(), resp.Status())
	}

	var products []domain.Product
	if err := json.Unmarshal(resp.Bytes(), &products); err != nil {
		return nil, fmt.Errorf("failed to decode products: %w", err)
	}

	return products, nil
}

func (c *catalogClient) isCircuitBreakerOpen() bool {
	c.circuitBreakerMutex.RLock()
	now := time.Now()
	wasOpen := now.Before(c.openUntil)
	wasTriggered := !c.openUntil.IsZero()
	c.circuitBreakerMutex.RUnlock()

	if !wasOpen && wasTriggered {
		c.circuitBreakerMutex.Lock()
		// Double-check after acquiring write lock
		if !c.openUntil.IsZero() && now.After(c.openUntil) {
			c.openUntil = time.Time{}
			log.Infof("✅ Catalog circuit breaker closed - requests are allowed again")
		}
		c.circuitBreakerMutex.Unlock()
	}

	return wasOpen
}

func (c *catalogClient) triggerCircuitBreaker() {
	if c.cooldown <= 0 {
		return
	}

	c.circuitBreakerMutex.Lock()
	defer c.circuitBreakerMutex.Unlock()

	c.openUntil = time.Now().Add(c.cooldown)
	log.Warnf("🚫 Catalog circuit breaker opened until %v", c.openUntil.Format("15:04:05"))
}

func (c *catalogClient) remainingCooldown() time.Duration {
	c.circuitBreakerMutex.RLock()
	defer c.circuitBreakerMutex.RUnlock()

	remaining := time.Until(c.openUntil)
	if remaining < 0 {
		return 0
	}
	return remaining
}
