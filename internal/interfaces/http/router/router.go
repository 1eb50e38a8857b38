package router

import (
	"github.com/gin-gonic/gin"
	"github.com/stockflow/backend/internal/interfaces/http/handler"
)

// RouteRegistrar defines the interface for registering routes
type RouteRegistrar interface {
	RegisterRoutes(rg *gin.RouterGroup)
}

// Router manages HTTP route registration
type Router struct {
	engine     *gin.Engine
	apiVersion string
	registrars []RouteRegistrar
}

// RouterOption is a functional option for Router configuration
type RouterOption func(*Router)

// WithAPIVersion sets the API version prefix (e.g., "v1", "v2")
func WithAPIVersion(version string) RouterOption {
	return func(r *Router) {
		r.apiVersion = version
	}
}

// NewRouter creates a new Router instance
func NewRouter(engine *gin.Engine, opts ...RouterOption) *Router {
	r := &Router{
		engine:     engine,
		apiVersion: "v1",
		registrars: make([]RouteRegistrar, 0),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Register adds a RouteRegistrar to be registered later
func (r *Router) Register(registrar RouteRegistrar) *Router {
	r.registrars = append(r.registrars, registrar)
	return r
}

// Setup registers all routes with the engine
func (r *Router) Setup() {
	api := r.engine.Group("/api/" + r.apiVersion)
	for _, registrar := range r.registrars {
		registrar.RegisterRoutes(api)
	}
}

// CatalogRoutes registers product catalog endpoints
type CatalogRoutes struct {
	products *handler.ProductHandler
}

// NewCatalogRoutes creates the catalog route registrar
func NewCatalogRoutes(products *handler.ProductHandler) *CatalogRoutes {
	return &CatalogRoutes{products: products}
}

// RegisterRoutes mounts the catalog endpoints
func (r *CatalogRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/catalog")
	group.POST("/products", r.products.Create)
	group.GET("/products", r.products.List)
	group.GET("/products/sku/:sku", r.products.GetBySKU)
	group.GET("/products/:id", r.products.GetByID)
	group.PUT("/products/:id", r.products.Update)
}

// InventoryRoutes registers stock endpoints
type InventoryRoutes struct {
	inventory *handler.InventoryHandler
}

// NewInventoryRoutes creates the inventory route registrar
func NewInventoryRoutes(inventory *handler.InventoryHandler) *InventoryRoutes {
	return &InventoryRoutes{inventory: inventory}
}

// RegisterRoutes mounts the inventory endpoints
func (r *InventoryRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/inventory")
	group.POST("/stock", r.inventory.AddStock)
	group.POST("/stock/bulk", r.inventory.AddBulkStock)
	group.GET("/stock", r.inventory.GetConsolidatedStock)
	group.GET("/availability/:product_id", r.inventory.GetAvailability)
}

// SalesRoutes registers sale endpoints
type SalesRoutes struct {
	sales *handler.SalesHandler
}

// NewSalesRoutes creates the sales route registrar
func NewSalesRoutes(sales *handler.SalesHandler) *SalesRoutes {
	return &SalesRoutes{sales: sales}
}

// RegisterRoutes mounts the sale endpoints
func (r *SalesRoutes) RegisterRoutes(rg *gin.RouterGroup) {
	group := rg.Group("/sales")
	group.POST("", r.sales.Create)
	group.GET("", r.sales.List)
	group.GET("/:id", r.sales.GetByID)
}
