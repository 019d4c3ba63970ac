package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "modeva-storefront/catalog"

var (
	// ErrNotFound is returned when the catalog answers 404.
	ErrNotFound = errors.New("catalog: not found")
	// ErrUnauthorized is returned when the catalog answers 401 or 403.
	ErrUnauthorized = errors.New("catalog: unauthorized")
)

// CatalogError describes a failed catalog call.
type CatalogError struct {
	Op         string
	StatusCode int
	Message    string
	Err        error
}

func (e *CatalogError) Error() string {
	var b strings.Builder
	b.WriteString("catalog ")
	b.WriteString(e.Op)
	if e.StatusCode != 0 {
		b.WriteString(": status ")
		b.WriteString(strconv.Itoa(e.StatusCode))
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *CatalogError) Unwrap() error { return e.Err }

// CatalogClient talks to the remote catalog API. It attaches the base URL,
// credentials and forwarded cookies; everything else is plain JSON over HTTP.
type CatalogClient struct {
	baseURL    *url.URL
	token      string
	httpClient *http.Client
	codec      *querystate.Codec
	tracer     trace.Tracer
}

// NewCatalogClient builds a client. codec encodes filter state for the
// catalog's query format; a nil httpClient gets one with settings.Timeout.
func NewCatalogClient(settings config.CatalogSettings, codec *querystate.Codec, httpClient *http.Client) (*CatalogClient, error) {
	base, err := url.Parse(strings.TrimRight(settings.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("invalid catalog base URL %q", settings.BaseURL)
	}
	if codec == nil {
		return nil, errors.New("catalog client needs a query codec")
	}
	if httpClient == nil {
		timeout := settings.Timeout
		if timeout <= 0 {
			timeout = 10 * time.Second
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	return &CatalogClient{
		baseURL:    base,
		token:      settings.Token,
		httpClient: httpClient,
		codec:      codec,
		tracer:     otel.Tracer(tracerName),
	}, nil
}

var (
	catalogMu     sync.RWMutex
	catalogClient *CatalogClient
)

// InitCatalogClient builds the shared client from the environment.
func InitCatalogClient() error {
	settings, err := config.Catalog()
	if err != nil {
		return err
	}
	client, err := NewCatalogClient(settings, config.UpstreamCodec(), nil)
	if err != nil {
		return err
	}
	SetCatalogClient(client)
	return nil
}

// SetCatalogClient replaces the shared client.
func SetCatalogClient(c *CatalogClient) {
	catalogMu.Lock()
	defer catalogMu.Unlock()
	catalogClient = c
}

// Catalog returns the shared client.
func Catalog() *CatalogClient {
	catalogMu.RLock()
	defer catalogMu.RUnlock()
	return catalogClient
}

// EncodeQuery returns the catalog-side encoding of s.
func (c *CatalogClient) EncodeQuery(s querystate.State) string {
	return c.codec.Encode(s)
}

// ─────────────────────────────────────────────────────────────
// Products and variants
// ─────────────────────────────────────────────────────────────

// ListProducts fetches one page of products matching s.
func (c *CatalogClient) ListProducts(ctx context.Context, s querystate.State) (*models.ProductPage, error) {
	body, _, err := c.get(ctx, "list_products", "/api/catalog/products/", c.codec.Encode(s))
	if err != nil {
		return nil, err
	}
	page, err := models.ParseProductPage(body)
	if err != nil {
		return nil, &CatalogError{Op: "list_products", Err: fmt.Errorf("decode: %w", err)}
	}
	return page, nil
}

// GetProduct fetches one product. A missing product yields ErrNotFound.
func (c *CatalogClient) GetProduct(ctx context.Context, id string) (*models.Product, error) {
	var product models.Product
	if err := c.getJSON(ctx, "get_product", "/api/catalog/products/"+url.PathEscape(id)+"/", "", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *CatalogClient) GetProductVariants(ctx context.Context, id string) ([]models.ProductVariant, error) {
	return getList[models.ProductVariant](ctx, c, "get_product_variants", "/api/catalog/products/"+url.PathEscape(id)+"/variants/", "")
}

func (c *CatalogClient) GetVariant(ctx context.Context, id string) (*models.ProductVariant, error) {
	var v models.ProductVariant
	if err := c.getJSON(ctx, "get_variant", "/api/catalog/variants/"+url.PathEscape(id)+"/", "", &v); err != nil {
		return nil, err
	}
	return &v, nil
}

func (c *CatalogClient) ListVariants(ctx context.Context, s querystate.State) ([]models.ProductVariant, error) {
	return getList[models.ProductVariant](ctx, c, "list_variants", "/api/catalog/variants/", c.codec.Encode(s))
}

// ─────────────────────────────────────────────────────────────
// Taxonomy
// ─────────────────────────────────────────────────────────────

func (c *CatalogClient) ListCategories(ctx context.Context) ([]models.Category, error) {
	return getList[models.Category](ctx, c, "list_categories", "/api/catalog/categories/", "")
}

func (c *CatalogClient) ListGenders(ctx context.Context) ([]models.Gender, error) {
	return getList[models.Gender](ctx, c, "list_genders", "/api/catalog/genders/", "")
}

func (c *CatalogClient) ListColors(ctx context.Context) ([]models.Color, error) {
	return getList[models.Color](ctx, c, "list_colors", "/api/catalog/colors/", "")
}

func (c *CatalogClient) ListSizes(ctx context.Context) ([]models.Size, error) {
	return getList[models.Size](ctx, c, "list_sizes", "/api/catalog/sizes/", "")
}

// ─────────────────────────────────────────────────────────────
// Auth passthrough
// ─────────────────────────────────────────────────────────────

// AuthResponse carries the catalog's auth answer and the cookies it set.
type AuthResponse struct {
	Result  models.AuthResult
	Cookies []*http.Cookie
}

func (c *CatalogClient) SignIn(ctx context.Context, email, password string, cookies []*http.Cookie) (*AuthResponse, error) {
	form := url.Values{"email": {email}, "password": {password}}
	return c.authCall(ctx, "sign_in", http.MethodPost, "/auth/sign-in/", form, cookies)
}

func (c *CatalogClient) SignUp(ctx context.Context, email, password, name string, cookies []*http.Cookie) (*AuthResponse, error) {
	form := url.Values{"email": {email}, "password": {password}}
	if name != "" {
		form.Set("name", name)
	}
	return c.authCall(ctx, "sign_up", http.MethodPost, "/auth/sign-up/", form, cookies)
}

func (c *CatalogClient) SignOut(ctx context.Context, cookies []*http.Cookie) (*AuthResponse, error) {
	return c.authCall(ctx, "sign_out", http.MethodPost, "/auth/sign-out/", url.Values{}, cookies)
}

func (c *CatalogClient) GuestSession(ctx context.Context, cookies []*http.Cookie) (*AuthResponse, error) {
	return c.authCall(ctx, "guest_session", http.MethodGet, "/auth/guest-session/", nil, cookies)
}

func (c *CatalogClient) authCall(ctx context.Context, op, method, path string, form url.Values, cookies []*http.Cookie) (*AuthResponse, error) {
	var body io.Reader
	contentType := ""
	if form != nil {
		body = strings.NewReader(form.Encode())
		contentType = "application/x-www-form-urlencoded"
	}
	resp, raw, err := c.do(ctx, op, method, path, "", body, contentType, cookies)
	if err != nil {
		return nil, err
	}
	out := &AuthResponse{Cookies: resp.Cookies()}
	if len(bytes.TrimSpace(raw)) > 0 {
		if err := json.Unmarshal(raw, &out.Result); err != nil {
			return nil, &CatalogError{Op: op, Err: fmt.Errorf("decode: %w", err)}
		}
	}
	return out, nil
}

// ─────────────────────────────────────────────────────────────
// Transport
// ─────────────────────────────────────────────────────────────

func getList[T any](ctx context.Context, c *CatalogClient, op, path, query string) ([]T, error) {
	body, _, err := c.get(ctx, op, path, query)
	if err != nil {
		return nil, err
	}
	items, err := decodeList[T](body)
	if err != nil {
		return nil, &CatalogError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return items, nil
}

// decodeList accepts a bare array or a paginated {"results": [...]} object.
func decodeList[T any](body []byte) ([]T, error) {
	body = bytes.TrimSpace(body)
	items := make([]T, 0)
	if len(body) > 0 && body[0] == '[' {
		if err := json.Unmarshal(body, &items); err != nil {
			return nil, err
		}
		return items, nil
	}
	var page struct {
		Results []T `json:"results"`
	}
	if err := json.Unmarshal(body, &page); err != nil {
		return nil, err
	}
	if page.Results != nil {
		items = page.Results
	}
	return items, nil
}

func (c *CatalogClient) getJSON(ctx context.Context, op, path, query string, dst any) error {
	body, _, err := c.get(ctx, op, path, query)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dst); err != nil {
		return &CatalogError{Op: op, Err: fmt.Errorf("decode: %w", err)}
	}
	return nil
}

func (c *CatalogClient) get(ctx context.Context, op, path, query string) ([]byte, *http.Response, error) {
	resp, body, err := c.do(ctx, op, http.MethodGet, path, query, nil, "", nil)
	return body, resp, err
}

func (c *CatalogClient) do(
	ctx context.Context,
	op, method, path, query string,
	body io.Reader,
	contentType string,
	cookies []*http.Cookie,
) (*http.Response, []byte, error) {
	ctx, span := c.tracer.Start(ctx, "catalog."+op,
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("http.method", method),
			attribute.String("catalog.path", path),
			attribute.String("catalog.query", query),
		),
	)
	defer span.End()

	start := time.Now()
	status := 0
	defer func() {
		observeCatalogCall(op, status, time.Since(start))
	}()

	fail := func(err error) (*http.Response, []byte, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, nil, err
	}

	target := *c.baseURL
	target.Path = strings.TrimRight(c.baseURL.Path, "/") + path
	target.RawQuery = query

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return fail(&CatalogError{Op: op, Err: err})
	}
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Token "+c.token)
	}
	for _, ck := range cookies {
		req.AddCookie(ck)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fail(&CatalogError{Op: op, Err: err})
	}
	defer resp.Body.Close()
	status = resp.StatusCode
	span.SetAttributes(attribute.Int("http.status_code", status))

	raw, err := io.ReadAll(io.LimitReader(resp.Body, 8<<20))
	if err != nil {
		return fail(&CatalogError{Op: op, StatusCode: status, Err: err})
	}

	if status >= 400 {
		cerr := &CatalogError{Op: op, StatusCode: status, Message: upstreamMessage(raw)}
		switch status {
		case http.StatusNotFound:
			cerr.Err = ErrNotFound
		case http.StatusUnauthorized, http.StatusForbidden:
			cerr.Err = ErrUnauthorized
		}
		config.Log.Debug("catalog call failed",
			zap.String("op", op),
			zap.Int("status", status),
			zap.String("query", query),
		)
		return fail(cerr)
	}

	span.SetStatus(codes.Ok, "")
	return resp, raw, nil
}

// upstreamMessage extracts {"error": "..."} or {"detail": "..."} from a body.
func upstreamMessage(raw []byte) string {
	var payload struct {
		Error  string `json:"error"`
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return ""
	}
	if payload.Error != "" {
		return payload.Error
	}
	return payload.Detail
}
