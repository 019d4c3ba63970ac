package product_controller

import (
	"context"
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/cache"
	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
)

// GetProducts godoc
// @Summary Browse products
// @Description Decodes the filter selection from the query string (repeated keys, e.g. size=M&size=L), fetches the matching catalog page and returns product cards together with the filter panel, sort selector and pagination links. Every link is the canonical URL of the state its click produces.
// @Tags Storefront - Products
// @Produce json
// @Param gender query string false "Gender (single-select)"
// @Param size query []string false "Sizes (repeatable)"
// @Param color query []string false "Colours (repeatable)"
// @Param ordering query string false "Sort order" Enums(-created_at, variants__price, -variants__price)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} models.ApiResponse{data=models.ProductListing} "Products fetched successfully"
// @Failure 502 {object} models.ApiResponse "Catalog request failed"
// @Failure 503 {object} models.ApiResponse "Catalog unavailable"
// @Router /store/products [get]
func GetProducts(c *gin.Context) {
	client := shared.Client(c)
	if client == nil {
		return
	}

	codec := config.PageCodec()
	state := codec.Decode(c.Request.URL.RawQuery)

	ctx, cancel := shared.Context(c)
	defer cancel()

	page, hit, err := cache.Catalog().Products(ctx, client.EncodeQuery(state),
		func(ctx context.Context) (*models.ProductPage, error) {
			return client.ListProducts(ctx, state)
		})
	if err != nil {
		shared.RespondCatalogError(c, err, "Page not found")
		return
	}

	listing := services.BuildListing(codec, state, page, config.ProductsPath(), shared.FacetChoices(ctx, client))
	listing.CacheHit = hit
	services.Cloudinary().ApplyCardThumbnails(listing.Cards)

	meta := models.NewPagination(state.Page(), config.PageSize(), page.Count)
	c.JSON(http.StatusOK, models.PaginatedResponse(c, "Products fetched successfully", listing, meta))
}
