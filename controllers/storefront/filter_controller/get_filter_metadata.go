package filter_controller

import (
	"net/http"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/shared"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// GetFilterMetadata godoc
// @Summary Get filter metadata
// @Description Returns every facet with its options, the category tree and the sort options. Option links are computed against the filter selection in the query string, so the endpoint can render the panel for any page.
// @Tags Storefront - Filters
// @Produce json
// @Success 200 {object} models.ApiResponse{data=models.FilterMetadata}
// @Router /store/filters/metadata [get]
func GetFilterMetadata(c *gin.Context) {
	codec := config.PageCodec()
	state := codec.Decode(c.Request.URL.RawQuery)
	path := config.ProductsPath()

	var (
		choices    map[string][]services.FacetChoice
		categories = make([]models.StorefrontCategory, 0)
	)
	if client := services.Catalog(); client != nil {
		ctx, cancel := shared.Context(c)
		defer cancel()

		choices = shared.FacetChoices(ctx, client)
		if cats, err := shared.Categories(ctx, client); err == nil {
			categories = services.BuildCategoryTree(codec, cats, path)
		} else {
			config.Log.Warn("⚠️  Categories unavailable for filter metadata", zap.Error(err))
		}
	}

	metadata := models.FilterMetadata{
		Facets:     services.BuildFilterPanel(codec, state, path, choices).Facets,
		Categories: categories,
		Ordering:   services.BuildSortSelector(codec, state, path).Options,
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Filter metadata fetched successfully", metadata))
}
