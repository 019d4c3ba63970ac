package filter_controller

import (
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/gin-gonic/gin"
)

// Control parameters naming the action; they never belong to the state.
const (
	paramFacet = "facet"
	paramValue = "value"
)

// ToggleFilter godoc
// @Summary Toggle a multi-select filter value
// @Description Adds the value to the facet's selection or removes it when already selected, drops the page and redirects to the canonical products URL.
// @Tags Storefront - Filters
// @Param facet query string true "Multi-select facet key" example(size)
// @Param value query string true "Value to toggle" example(M)
// @Success 303 "Redirect to the products page"
// @Failure 400 {object} models.ApiResponse "Unknown facet or missing value"
// @Router /store/filters/toggle [get]
func ToggleFilter(c *gin.Context) {
	facets := config.Facets()
	state, key, value := readAction(c)

	if !facets.IsMulti(key) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Unknown multi-select facet"))
		return
	}
	if value == "" {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "value is required"))
		return
	}

	redirect(c, querystate.ToggleMultiValue(state, key, value))
}

// SetFilter godoc
// @Summary Set a single-select value
// @Description Replaces the key's value (an empty value clears it), drops the page and redirects to the canonical products URL. Used for sort order and single-select facets.
// @Tags Storefront - Filters
// @Param facet query string true "Key to set" example(ordering)
// @Param value query string false "New value; empty clears the key" example(-created_at)
// @Success 303 "Redirect to the products page"
// @Failure 400 {object} models.ApiResponse "Missing or reserved key"
// @Router /store/filters/set [get]
func SetFilter(c *gin.Context) {
	state, key, value := readAction(c)

	if key == "" || key == querystate.KeyPage || key == paramFacet || key == paramValue {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid facet"))
		return
	}

	redirect(c, querystate.SetSingleValue(state, key, value))
}

// readAction splits the request query into the current state and the action's
// facet and value.
func readAction(c *gin.Context) (querystate.State, string, string) {
	state := config.PageCodec().Decode(c.Request.URL.RawQuery)
	key := strings.TrimSpace(state.Get(paramFacet).First())
	value := strings.TrimSpace(state.Get(paramValue).First())
	return state.Without(paramFacet, paramValue), key, value
}

func redirect(c *gin.Context, next querystate.State) {
	c.Redirect(http.StatusSeeOther, config.PageCodec().Href(config.ProductsPath(), next))
}
