package product_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// GetProductByID godoc
// @Summary Get product details
// @Description Fetches the product and its variants concurrently and derives the display price (first variant's sale price, else its price), the discount and a gallery per colour.
// @Tags Storefront - Products
// @Produce json
// @Param id path string true "Product ID"
// @Success 200 {object} models.ApiResponse{data=models.ProductDetail}
// @Failure 404 {object} models.ApiResponse "Product not found"
// @Failure 502 {object} models.ApiResponse "Catalog request failed"
// @Router /store/products/{id} [get]
func GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid product ID"))
		return
	}

	client := shared.Client(c)
	if client == nil {
		return
	}

	ctx, cancel := shared.Context(c)
	defer cancel()

	var (
		product  *models.Product
		variants []models.ProductVariant
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		product, err = client.GetProduct(gctx, id)
		return err
	})
	g.Go(func() error {
		vs, err := client.GetProductVariants(gctx, id)
		if err != nil {
			// The embedded variants still describe the product.
			config.Log.Debug("product variants unavailable", zap.String("product_id", id), zap.Error(err))
			return nil
		}
		variants = vs
		return nil
	})
	if err := g.Wait(); err != nil {
		shared.RespondCatalogError(c, err, "Product not found")
		return
	}

	detail, err := services.BuildProductDetail(*product, variants)
	if errors.Is(err, services.ErrNoVariants) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Product not found"))
		return
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to build product"))
		return
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Product fetched successfully", detail))
}
