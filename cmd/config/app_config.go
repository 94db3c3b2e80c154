package config

import (
	"SmartCart-Backend/internal/api/handlers"
	"SmartCart-Backend/internal/api/routes"
	"SmartCart-Backend/internal/middleware"
	"SmartCart-Backend/internal/utils"
	"SmartCart-Backend/internal/utils/storage"
	"SmartCart-Backend/pkg/catalog"
	"SmartCart-Backend/pkg/genericproduct"
	"SmartCart-Backend/pkg/jwt"
	"SmartCart-Backend/pkg/product"
	"SmartCart-Backend/pkg/productcache"
	"SmartCart-Backend/pkg/resolver"
	"SmartCart-Backend/pkg/suggestion"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Sao_Paulo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()

	// External catalog adapters
	cosmosAdapter := catalog.NewCosmosAdapter(
		utils.GetConfig("COSMOS_BASE_URL"),
		utils.GetConfig("COSMOS_TOKEN"),
	)
	openFoodAdapter := catalog.NewOpenFoodAdapter(utils.GetConfig("OPENFOOD_BASE_URL"))

	// Repository
	productRepository := product.NewProductRepository(db)
	genericRepository := genericproduct.NewGenericRepository(db)
	cacheRepository := productcache.NewCacheRepository(db)
	statsRepository := suggestion.NewStatsRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	cacheService := productcache.NewCacheService(cacheRepository, time.Now)
	matcherService := genericproduct.NewMatcherService(genericRepository)
	rankingService := suggestion.NewRankingService(matcherService, statsRepository, time.Now)
	resolverService := resolver.NewResolverService(productRepository, cacheService, cosmosAdapter, openFoodAdapter)
	productService := product.NewProductService(productRepository, genericRepository, matcherService, cacheService, s3)

	// Handler
	resolverHandler := handlers.NewResolverHandler(resolverService, validator)
	productHandler := handlers.NewProductHandler(productService, cacheService, validator)
	suggestionHandler := handlers.NewSuggestionHandler(matcherService, rankingService, validator)
	genericProductHandler := handlers.NewGenericProductHandler(genericRepository, validator)

	// routes
	routesConfig := routes.Config{
		App:                   app,
		ResolverHandler:       resolverHandler,
		ProductHandler:        productHandler,
		SuggestionHandler:     suggestionHandler,
		GenericProductHandler: genericProductHandler,
		Middleware:            middlewares,
		JWTService:            jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
