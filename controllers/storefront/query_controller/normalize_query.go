package query_controller

import (
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/querystate"
	"github.com/gin-gonic/gin"
)

// NormalizeQueryRequest carries either a raw query string or a parsed
// parameter map (values may be strings or arrays of strings).
type NormalizeQueryRequest struct {
	Query  string         `json:"query" example:"size=M&size=&gender=men&size=M"`
	Params map[string]any `json:"params"`
}

// NormalizeQuery godoc
// @Summary Normalize a filter query
// @Description Decodes a raw query string or a parameter map and returns the canonical query, the products URL and the decoded state.
// @Tags Storefront - Filters
// @Accept json
// @Produce json
// @Param request body NormalizeQueryRequest true "Query to normalize"
// @Success 200 {object} models.ApiResponse{data=models.NormalizedQuery}
// @Failure 400 {object} models.ApiResponse "Invalid request body"
// @Router /store/query/normalize [post]
func NormalizeQuery(c *gin.Context) {
	var req NormalizeQueryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request body"))
		return
	}

	codec := config.PageCodec()
	var state querystate.State
	if req.Params != nil {
		state = codec.DecodeMap(req.Params)
	} else {
		state = codec.Decode(strings.TrimPrefix(req.Query, "?"))
	}

	c.JSON(http.StatusOK, models.SuccessResponse(c, "Query normalized", models.NormalizedQuery{
		Query: codec.Encode(state),
		Href:  codec.Href(config.ProductsPath(), state),
		State: state.Map(),
	}))
}
