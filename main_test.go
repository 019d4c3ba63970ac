package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeCatalog serves the catalog endpoints the storefront calls.
type fakeCatalog struct {
	mu      sync.Mutex
	queries []string
}

func (f *fakeCatalog) productQueries() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.queries...)
}

func (f *fakeCatalog) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	switch r.URL.Path {
	case "/api/catalog/products/":
		f.mu.Lock()
		f.queries = append(f.queries, r.URL.RawQuery)
		f.mu.Unlock()
		fmt.Fprint(w, `{"count": 25, "next": "http://catalog/api/catalog/products/?page=2", "previous": null, "results": [
			{"id": 7, "name": "Runner", "images": [{"url": "runner.jpg", "is_primary": true}],
			 "variants": [{"id": 70, "price": "120.00", "sale_price": "90.00"}]}]}`)
	case "/api/catalog/products/7/":
		fmt.Fprint(w, `{"id": 7, "name": "Runner", "images": [{"url": "runner.jpg"}], "variants": []}`)
	case "/api/catalog/products/7/variants/":
		fmt.Fprint(w, `[{"id": 70, "price": "120.00", "sale_price": "90.00", "in_stock": 3,
			"color": {"slug": "red", "name": "Red", "hex_code": "#f00"}, "size": {"name": "M", "sort_order": 2}}]`)
	case "/api/catalog/variants/":
		f.mu.Lock()
		f.queries = append(f.queries, "variants:"+r.URL.RawQuery)
		f.mu.Unlock()
		fmt.Fprint(w, `{"count": 1, "results": [{"id": 70, "product_id": 7, "price": "120.00"}]}`)
	case "/api/catalog/variants/70/":
		fmt.Fprint(w, `{"id": 70, "product_id": 7, "sku": "RUN-RED-M", "price": "120.00"}`)
	case "/api/catalog/genders/":
		fmt.Fprint(w, `[{"id": 1, "label": "Men", "slug": "men"}]`)
	case "/api/catalog/colors/":
		fmt.Fprint(w, `[{"id": 1, "name": "Red", "slug": "red", "hex_code": "#f00"}]`)
	case "/api/catalog/sizes/":
		fmt.Fprint(w, `[{"id": 1, "name": "M", "sort_order": 2}]`)
	case "/api/catalog/categories/":
		fmt.Fprint(w, `[{"id": 1, "name": "Shoes", "slug": "shoes", "parent": null}]`)
	case "/auth/sign-in/":
		_ = r.ParseForm()
		if r.PostForm.Get("password") != "correct-horse" {
			w.WriteHeader(http.StatusUnauthorized)
			fmt.Fprint(w, `{"error": "Invalid credentials"}`)
			return
		}
		http.SetCookie(w, &http.Cookie{Name: "sessionid", Value: "abc", Path: "/"})
		fmt.Fprint(w, `{"message": "ok", "user_id": "42"}`)
	default:
		w.WriteHeader(http.StatusNotFound)
		fmt.Fprint(w, `{"detail": "Not found."}`)
	}
}

func setupTestServer(t *testing.T) (*gin.Engine, *fakeCatalog) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	fake := &fakeCatalog{}
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	client, err := services.NewCatalogClient(config.CatalogSettings{BaseURL: srv.URL, Timeout: 2 * time.Second}, config.UpstreamCodec(), nil)
	require.NoError(t, err)
	services.SetCatalogClient(client)
	cache.SetCatalogCache(cache.NewCatalogCache(cache.NewMemoryStore(), time.Minute))
	cache.Invalidate()
	require.NoError(t, services.InitJWTService("test-secret", time.Hour))

	t.Cleanup(func() {
		services.SetCatalogClient(nil)
		cache.Invalidate()
	})
	return setupRouter(), fake
}

func decodeData(t *testing.T, body []byte, dst any) {
	t.Helper()
	var env struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(body, &env))
	require.NoError(t, json.Unmarshal(env.Data, dst))
}

func TestBrowseProducts(t *testing.T) {
	router, fake := setupTestServer(t)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/store/products?size=M&gender=men&size=&size=L", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	assert.Equal(t, []string{"gender=men&size=M,L"}, fake.productQueries(), "catalog gets the comma encoding")

	var listing struct {
		Query    string `json:"query"`
		NextHref string `json:"next_href"`
		CacheHit bool   `json:"cache_hit"`
		Cards    []struct {
			Name      string  `json:"name"`
			Image     string  `json:"image"`
			SalePrice float64 `json:"sale_price"`
		} `json:"cards"`
	}
	decodeData(t, w.Body.Bytes(), &listing)
	assert.Equal(t, "gender=men&size=M&size=L", listing.Query)
	assert.Equal(t, "/products?gender=men&page=2&size=M&size=L", listing.NextHref)
	assert.False(t, listing.CacheHit)
	require.Len(t, listing.Cards, 1)
	assert.Equal(t, 90.0, listing.Cards[0].SalePrice)

	var env struct {
		Meta struct {
			Total      int `json:"total"`
			TotalPages int `json:"total_pages"`
		} `json:"meta"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	assert.Equal(t, 25, env.Meta.Total)
	assert.Equal(t, 3, env.Meta.TotalPages)

	// Same selection written differently hits the cache.
	req = httptest.NewRequest(http.MethodGet, "/api/v1/store/products?gender=men&size=M&size=L&size=M", nil)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	decodeData(t, w.Body.Bytes(), &listing)
	assert.True(t, listing.CacheHit)
	assert.Len(t, fake.productQueries(), 1)
}

func TestProductDetail(t *testing.T) {
	router, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/7", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var detail struct {
		Price           float64 `json:"price"`
		CompareAt       float64 `json:"compare_at"`
		DiscountPercent int     `json:"discount_percent"`
		Gallery         []struct {
			Color  string `json:"color"`
			Swatch string `json:"swatch"`
		} `json:"gallery"`
	}
	decodeData(t, w.Body.Bytes(), &detail)
	assert.Equal(t, 90.0, detail.Price)
	assert.Equal(t, 120.0, detail.CompareAt)
	assert.Equal(t, 25, detail.DiscountPercent)
	require.Len(t, detail.Gallery, 1)
	assert.Equal(t, "#f00", detail.Gallery[0].Swatch)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/products/404", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestFilterRedirects(t *testing.T) {
	router, _ := setupTestServer(t)

	cases := []struct {
		url, want string
	}{
		{"/api/v1/store/filters/toggle?facet=size&value=9&gender=men&size=9&size=10", "/products?gender=men&size=10"},
		{"/api/v1/store/filters/toggle?facet=size&value=9&size=9", "/products"},
		{"/api/v1/store/filters/toggle?facet=color&value=red&page=4", "/products?color=red"},
		{"/api/v1/store/filters/set?facet=ordering&value=-created_at&page=2&size=M", "/products?ordering=-created_at&size=M"},
		{"/api/v1/store/filters/set?facet=gender&size=M&gender=men", "/products?size=M"},
	}
	for _, tc := range cases {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tc.url, nil))
		assert.Equal(t, http.StatusSeeOther, w.Code, tc.url)
		assert.Equal(t, tc.want, w.Header().Get("Location"), tc.url)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/filters/toggle?facet=brand&value=x", nil))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestNormalizeQuery(t *testing.T) {
	router, _ := setupTestServer(t)

	body := strings.NewReader(`{"params": {"size": ["M", "", "M"], "ordering": "-created_at", "color": ""}}`)
	req := httptest.NewRequest(http.MethodPost, "/api/v1/store/query/normalize", body)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var got struct {
		Query string              `json:"query"`
		State map[string][]string `json:"state"`
	}
	decodeData(t, w.Body.Bytes(), &got)
	assert.Equal(t, "ordering=-created_at&size=M", got.Query)
	assert.NotContains(t, got.State, "color")
}

func TestSignInIssuesSession(t *testing.T) {
	router, _ := setupTestServer(t)

	form := "email=Ada%40Example.com&password=correct-horse"
	req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", strings.NewReader(form))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var authCookie *http.Cookie
	names := map[string]bool{}
	for _, ck := range w.Result().Cookies() {
		names[ck.Name] = true
		if ck.Name == middleware.AuthCookie {
			authCookie = ck
		}
	}
	assert.True(t, names["sessionid"], "catalog cookie relayed")
	require.NotNil(t, authCookie)
	assert.True(t, authCookie.HttpOnly)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/auth/me", nil)
	req.AddCookie(authCookie)
	w = httptest.NewRecorder()
	router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"email":"ada@example.com"`)
	assert.Contains(t, w.Body.String(), `"id":"42"`)
}

func TestSignInFailures(t *testing.T) {
	router, _ := setupTestServer(t)

	post := func(form string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodPost, "/api/v1/auth/sign-in", strings.NewReader(form))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	w := post("email=ada%40example.com&password=nope")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid credentials")

	w = post("email=not-an-email&password=x")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestCheckoutRequiresSession(t *testing.T) {
	router, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/auth/checkout", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestSavedSearchesWithoutDatabase(t *testing.T) {
	router, _ := setupTestServer(t)
	token, _, err := services.GetJWTService().GenerateCustomerJWT("42", "ada@example.com", "", "password")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/user/saved-searches", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestFilterMetadata(t *testing.T) {
	router, _ := setupTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/filters/metadata?color=red", nil))
	require.Equal(t, http.StatusOK, w.Code)

	var meta struct {
		Facets []struct {
			Key     string `json:"key"`
			Options []struct {
				Value    string `json:"value"`
				Selected bool   `json:"selected"`
				Href     string `json:"href"`
				Swatch   string `json:"swatch"`
			} `json:"options"`
		} `json:"facets"`
		Categories []struct {
			Href string `json:"href"`
		} `json:"categories"`
		Ordering []struct {
			Value string `json:"value"`
		} `json:"ordering"`
	}
	decodeData(t, w.Body.Bytes(), &meta)
	require.Len(t, meta.Facets, 3)
	require.Len(t, meta.Categories, 1)
	assert.Equal(t, "/products?category=shoes", meta.Categories[0].Href)
	assert.Len(t, meta.Ordering, 4)

	color := meta.Facets[2]
	require.Equal(t, "color", color.Key)
	assert.True(t, color.Options[0].Selected)
	assert.Equal(t, "#f00", color.Options[0].Swatch)
	assert.Equal(t, "/products", color.Options[0].Href)
}

func TestVariantsAndCategories(t *testing.T) {
	router, fake := setupTestServer(t)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/variants?color=red&color=black", nil))
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Contains(t, fake.productQueries(), "variants:color=red,black")

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/variants/70", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"sku":"RUN-RED-M"`)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/variants/71", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/store/categories", nil))
	require.Equal(t, http.StatusOK, w.Code)
	var tree []struct {
		Slug string `json:"slug"`
		Href string `json:"href"`
	}
	decodeData(t, w.Body.Bytes(), &tree)
	require.Len(t, tree, 1)
	assert.Equal(t, "/products?category=shoes", tree[0].Href)
}
