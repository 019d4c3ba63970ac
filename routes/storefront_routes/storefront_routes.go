package storefront_routes

import (
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/category_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/filter_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/product_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/query_controller"
	"github.com/Modeva-Ecommerce/modeva-storefront/controllers/storefront/variant_controller"
	"github.com/gin-gonic/gin"
)

func SetupStorefrontRoutes(router *gin.RouterGroup) {
	// Storefront routes (public, no auth required)
	store := router.Group("/store")

	products := store.Group("/products")
	{
		products.GET("", product_controller.GetProducts)
		products.GET("/:id", product_controller.GetProductByID)
	}

	variants := store.Group("/variants")
	{
		variants.GET("", variant_controller.GetVariants)
		variants.GET("/:id", variant_controller.GetVariantByID)
	}

	store.GET("/categories", category_controller.GetCategories)

	filters := store.Group("/filters")
	{
		filters.GET("/metadata", filter_controller.GetFilterMetadata)
		filters.GET("/toggle", filter_controller.ToggleFilter)
		filters.GET("/set", filter_controller.SetFilter)
	}

	store.POST("/query/normalize", query_controller.NormalizeQuery)
}
