// Package shared holds the pieces every storefront controller needs: the
// catalog client lookup, error translation and the facet option lists.
package shared

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RequestTimeout bounds the catalog calls made while serving one request.
const RequestTimeout = 10 * time.Second

// Client returns the catalog client or answers 503 and returns nil.
func Client(c *gin.Context) *services.CatalogClient {
	client := services.Catalog()
	if client == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Catalog unavailable"))
		return nil
	}
	return client
}

// Context derives the bounded context for catalog calls from the request.
func Context(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), RequestTimeout)
}

// CatalogStatus maps a catalog error to the status the storefront answers with.
func CatalogStatus(err error) int {
	var cerr *services.CatalogError
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	case errors.As(err, &cerr) && cerr.StatusCode >= 400 && cerr.StatusCode < 500:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// RespondCatalogError writes the error envelope for a failed catalog call.
// notFound is the message used for 404s.
func RespondCatalogError(c *gin.Context, err error, notFound string) {
	status := CatalogStatus(err)
	msg := "Catalog request failed"
	switch status {
	case http.StatusNotFound:
		msg = notFound
	case http.StatusUnauthorized, http.StatusBadRequest:
		var cerr *services.CatalogError
		if errors.As(err, &cerr) && cerr.Message != "" {
			msg = cerr.Message
		}
	case http.StatusGatewayTimeout:
		msg = "Catalog timed out"
	}
	if status >= 500 {
		config.Log.Error("❌ Catalog call failed", zap.String("path", c.FullPath()), zap.Error(err))
	}
	c.JSON(status, models.ErrorResponse(c, msg))
}

// FacetChoices returns the catalog's gender, colour and size lists, cached
// in-process. A failure yields nil so the panel falls back to the facet table.
func FacetChoices(ctx context.Context, client *services.CatalogClient) map[string][]services.FacetChoice {
	if opts, ok := cache.GetFacetOptions(); ok {
		return services.CatalogChoices(opts.Genders, opts.Colors, opts.Sizes)
	}

	var opts cache.FacetOptions
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		opts.Genders, err = client.ListGenders(gctx)
		return err
	})
	g.Go(func() (err error) {
		opts.Colors, err = client.ListColors(gctx)
		return err
	})
	g.Go(func() (err error) {
		opts.Sizes, err = client.ListSizes(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		config.Log.Warn("⚠️  Facet options unavailable, using facet table", zap.Error(err))
		return nil
	}

	cache.SetFacetOptions(opts)
	return services.CatalogChoices(opts.Genders, opts.Colors, opts.Sizes)
}

// Categories returns the catalog's categories, cached in-process.
func Categories(ctx context.Context, client *services.CatalogClient) ([]models.Category, error) {
	if cats, ok := cache.GetCategories(); ok {
		return cats, nil
	}
	cats, err := client.ListCategories(ctx)
	if err != nil {
		return nil, err
	}
	cache.SetCategories(cats)
	return cats, nil
}
