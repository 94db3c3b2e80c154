package routes

import (
	"SmartCart-Backend/internal/api/handlers"
	"SmartCart-Backend/internal/middleware"
	"SmartCart-Backend/pkg/jwt"
	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App                   *fiber.App
	ResolverHandler       handlers.ResolverHandler
	ProductHandler        handlers.ProductHandler
	SuggestionHandler     handlers.SuggestionHandler
	GenericProductHandler handlers.GenericProductHandler
	Middleware            middleware.Middleware
	JWTService            jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.Barcodes()
	c.Products()
	c.GenericProducts()
	c.GuestRoute()
}

func (c *Config) Barcodes() {
	barcodes := c.App.Group("/api/v1/barcodes", c.Middleware.AuthMiddleware(c.JWTService))
	barcodes.Post("/resolve", c.ResolverHandler.ResolveBarcode)
	barcodes.Post("/resolve-batch", c.ResolverHandler.ResolveBatch)
}

func (c *Config) Products() {
	products := c.App.Group("/api/v1/products", c.Middleware.AuthMiddleware(c.JWTService))

	// Basic CRUD operations
	products.Post("", c.ProductHandler.CreateProduct)
	products.Get("", c.ProductHandler.GetProducts)
	products.Get("/duplicates", c.ProductHandler.CheckDuplicates)
	products.Get("/:id", c.ProductHandler.GetProductDetails)
	products.Delete("/:id", c.ProductHandler.DeleteProduct)

	// Special operations
	products.Post("/image", c.ProductHandler.UploadProductImage)
	products.Post("/cache-maintenance", c.ProductHandler.CacheMaintenance)
}

func (c *Config) GenericProducts() {
	generics := c.App.Group("/api/v1/generic-products", c.Middleware.AuthMiddleware(c.JWTService))
	generics.Post("", c.GenericProductHandler.CreateGenericProduct)
	generics.Get("", c.GenericProductHandler.GetGenericProducts)
	generics.Delete("/:id", c.GenericProductHandler.DeleteGenericProduct)

	generics.Post("/match", c.SuggestionHandler.MatchGenericProduct)
	generics.Post("/suggest", c.SuggestionHandler.SuggestGenericProducts)
	generics.Get("/suggest-by-brand", c.SuggestionHandler.SuggestByBrand)
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
