package saved_search_controller

import (
	"errors"
	"net/http"
	"strings"

	"github.com/Modeva-Ecommerce/modeva-storefront/config"
	"github.com/Modeva-Ecommerce/modeva-storefront/middleware"
	"github.com/Modeva-Ecommerce/modeva-storefront/models"
	"github.com/Modeva-Ecommerce/modeva-storefront/services"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

func service(c *gin.Context) *services.SavedSearchService {
	if config.StorefrontGorm == nil {
		c.JSON(http.StatusServiceUnavailable, models.ErrorResponse(c, "Saved searches are unavailable"))
		return nil
	}
	return services.NewSavedSearchService(config.StorefrontGorm, config.PageCodec())
}

func toResponse(s models.SavedSearch) models.SavedSearchResponse {
	codec := config.PageCodec()
	state := codec.Decode(s.Query)
	return models.SavedSearchResponse{
		ID:        s.ID,
		Name:      s.Name,
		Query:     s.Query,
		Href:      codec.Href(config.ProductsPath(), state),
		Filters:   state.Map(),
		CreatedAt: s.CreatedAt,
	}
}

// CreateSavedSearch godoc
// @Summary Save a filter selection
// @Description Stores the canonical form of the query (pagination removed). Saving the same selection again renames it instead of creating a duplicate.
// @Tags User - Saved Searches
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body models.SavedSearchRequest true "Saved search"
// @Success 201 {object} models.ApiResponse{data=models.SavedSearchResponse} "Created"
// @Success 200 {object} models.ApiResponse{data=models.SavedSearchResponse} "Already saved"
// @Failure 400 {object} models.ApiResponse "Invalid request"
// @Router /user/saved-searches [post]
func CreateSavedSearch(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	var req models.SavedSearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid request: "+err.Error()))
		return
	}

	svc := service(c)
	if svc == nil {
		return
	}

	search, created, err := svc.Save(c.Request.Context(), userID, req.Name, req.Query)
	if errors.Is(err, services.ErrEmptySearch) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Select at least one filter to save"))
		return
	}
	if err != nil {
		config.Log.Error("❌ Failed to save search", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to save search"))
		return
	}

	if created {
		c.JSON(http.StatusCreated, models.SuccessResponse(c, "Search saved", toResponse(*search)))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Search already saved", toResponse(*search)))
}

// GetSavedSearches godoc
// @Summary List saved searches
// @Tags User - Saved Searches
// @Produce json
// @Security BearerAuth
// @Param facet query string false "Only searches that filter on this facet" example(color)
// @Success 200 {object} models.ApiResponse{data=[]models.SavedSearchResponse}
// @Router /user/saved-searches [get]
func GetSavedSearches(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}
	svc := service(c)
	if svc == nil {
		return
	}

	searches, err := svc.List(c.Request.Context(), userID, strings.TrimSpace(c.Query("facet")))
	if err != nil {
		config.Log.Error("❌ Failed to list searches", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to fetch saved searches"))
		return
	}

	out := make([]models.SavedSearchResponse, 0, len(searches))
	for _, s := range searches {
		out = append(out, toResponse(s))
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Saved searches fetched successfully", out))
}

// DeleteSavedSearch godoc
// @Summary Delete a saved search
// @Tags User - Saved Searches
// @Produce json
// @Security BearerAuth
// @Param id path string true "Saved search ID"
// @Success 200 {object} models.ApiResponse
// @Failure 404 {object} models.ApiResponse "Not found"
// @Router /user/saved-searches/{id} [delete]
func DeleteSavedSearch(c *gin.Context) {
	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, models.ErrorResponse(c, "Unauthorized"))
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse(c, "Invalid saved search ID"))
		return
	}

	svc := service(c)
	if svc == nil {
		return
	}

	err = svc.Delete(c.Request.Context(), userID, id)
	if errors.Is(err, services.ErrSavedSearchNotFound) {
		c.JSON(http.StatusNotFound, models.ErrorResponse(c, "Saved search not found"))
		return
	}
	if err != nil {
		config.Log.Error("❌ Failed to delete search", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, models.ErrorResponse(c, "Failed to delete saved search"))
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(c, "Saved search deleted", nil))
}
