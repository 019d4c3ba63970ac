package variant_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/gin-gonic/gin"
)

// GetVariantByID godoc
// @Summary Get a variant
// @Tags Storefront - Variants
// @Produce json
// @Param id path string true "Variant ID"
// @Success 200 {object} models.ApiResponse{data=models.ProductVariant}
// @Failure 404 {object} models.ApiResponse "Variant not found"
// @Router /store/variants/{id} [get]
func GetVariantByID(c *gin.Context) {
	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	variant, err := client.GetVariant(ctx, c.Param("id"))
	if err != nil {
		shared.RespondCatalogError(c, err, "Variant not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Variant fetched successfully", variant))
}

// GetVariants godoc
// @Summary List variants
// @Description Lists variants matching the filter selection in the query string.
// @Tags Storefront - Variants
// @Produce json
// @Param size query []string false "Sizes (repeatable)"
// @Param color query []string false "Colours (repeatable)"
// @Success 200 {object} models.ApiResponse{data=[]models.ProductVariant}
// @Router /store/variants [get]
func GetVariants(c *gin.Context) {
	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	state := config.PageCodec().Decode(c.Request.URL.RawQuery)
	variants, err := client.ListVariants(ctx, state)
	if err != nil {
		shared.RespondCatalogError(c, err, "Variants not found")
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Variants fetched successfully", variants))
}
