package category_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
)

// GetCategories godoc
// @Summary Get category tree
// @Description Returns root categories with their subcategories. Each node links to the products page filtered by that category.
// @Tags Storefront - Categories
// @Produce json
// @Success 200 {object} models.ApiResponse{data=[]models.StorefrontCategory}
// @Failure 502 {object} models.ApiResponse "Catalog request failed"
// @Router /store/categories [get]
func GetCategories(c *gin.Context) {
	client := shared.Client(c)
	if client == nil {
		return
	}
	ctx, cancel := shared.Context(c)
	defer cancel()

	categories, err := shared.Categories(ctx, client)
	if err != nil {
		shared.RespondCatalogError(c, err, "Categories not found")
		return
	}

	tree := services.BuildCategoryTree(config.PageCodec(), categories, config.ProductsPath())
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Categories fetched successfully", tree))
}
