package main

import (
	"fmt"
	"net/http"
	"time"

	_ "github.com/restobase/gin-resto-api/docs" // Import generated docs
	"github.com/restobase/gin-resto-api/internal/auth"
	"github.com/restobase/gin-resto-api/internal/config"
	"github.com/restobase/gin-resto-api/internal/controllers"
	"github.com/restobase/gin-resto-api/internal/database"
	"github.com/restobase/gin-resto-api/internal/middleware"
	"github.com/restobase/gin-resto-api/internal/models"
	"github.com/restobase/gin-resto-api/internal/repository"
	"github.com/restobase/gin-resto-api/internal/services"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

var (
	db            *gorm.DB
	configuration *config.Config

	orderController      controllers.OrderController
	productController    controllers.ProductController
	ingredientController controllers.IngredientController
	authController       *controllers.AuthController
	clientController     *controllers.ClientController
	oauthService         *auth.OAuthService
)

// @title Resto POS API
// @version 1.0
// @description Restaurant point-of-sale back office: orders, recipes and ingredient inventory
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	// Load environment variables
	loadDotenvFile()

	// Initialize logger
	setUpLogger()

	// Load configuration
	configuration = loadConfig()

	// Initialize database connection
	db = setupDatabase(configuration)

	// Repositories (persistence layer, transaction-aware)
	productRepo := repository.NewProductRepo(db)
	ingredientRepo := repository.NewIngredientRepo(db)
	recipeRepo := repository.NewRecipeRepo(db)
	orderRepo := repository.NewOrderRepo(db)

	// Core services
	productService := services.NewProductService(db, productRepo, recipeRepo)
	ingredientService := services.NewIngredientService(db, ingredientRepo)
	coordinator := services.NewStockCoordinator(productService, ingredientService, recipeRepo)
	orderService := services.NewOrderService(db, orderRepo, coordinator)
	userService := services.NewUserService(db)
	clientService := services.NewClientService(db)

	// Controllers and auth
	oauthService = auth.NewOAuthService(db, configuration.JWTSecret)
	authController = controllers.NewAuthController(userService, configuration.JWTSecret)
	clientController = controllers.NewClientController(clientService)
	orderController = controllers.NewOrderController(orderService)
	productController = controllers.NewProductController(productService)
	ingredientController = controllers.NewIngredientController(ingredientService)

	// Initialize Gin router
	var router *gin.Engine = setupRouter()

	// Start the server
	log.Infof("Starting server on %s:%d", configuration.Host, configuration.Port)
	router.Run(fmt.Sprintf("%v:%d", configuration.Host, configuration.Port))
}

// checkPanicErr checks if an error occurred and panics if it did
func checkPanicErr(err error) {
	if err != nil {
		panic(err)
	}
}

// loadDotenvFile loads environment variables from a .env file
// If the file is not found, it will log a warning and use system environment variables
func loadDotenvFile() {
	if err := godotenv.Load(); err != nil {
		log.Warn("No .env file found, using system environment variables")
	}
}

// setUpLogger initializes the logger with a JSON formatter and sets the log level based on the environment
func setUpLogger() {
	log.SetFormatter(&log.JSONFormatter{})
	environment := config.GetEnvWithDefault("APP_ENV", "development")
	switch environment {
	case "development":
		log.SetLevel(log.DebugLevel)
	case "production":
		log.SetLevel(log.ErrorLevel)
	default:
		log.SetLevel(log.InfoLevel)
	}
}

// loadConfig loads the application configuration from environment variables
// It returns a Config struct or panics if there is an error
func loadConfig() *config.Config {
	conf, err := config.LoadConfig()
	checkPanicErr(err)
	return conf
}

// setupDatabase initializes the database connection, migrates the schema and
// seeds a demo catalog when the database is empty
func setupDatabase(conf *config.Config) *gorm.DB {
	dbConf := database.DatabaseConfig{
		Driver:   conf.DBDriver,
		Host:     conf.DBHost,
		Port:     conf.DBPort,
		User:     conf.DBUser,
		Password: conf.DBPassword,
		Name:     conf.DBName,
		SSLMode:  conf.DBSSLMode,
		Path:     conf.DBPath,
	}

	db, err := database.InitDatabase(dbConf)
	checkPanicErr(err)
	checkPanicErr(database.Migrate(db))

	// Seed only if the catalog is empty
	var count int64
	db.Model(&models.Product{}).Count(&count)
	if count == 0 {
		log.Info("Database is empty, seeding initial data")
		seedDatabase(db)
	} else {
		log.Info("Database already seeded with initial data")
	}
	return db
}

// seedDatabase seeds the database with a small demo catalog
func seedDatabase(db *gorm.DB) {
	log.Info("Seeding database with initial data")

	flour := models.Ingredient{Name: "Flour", Unit: "g", Stock: 10000, MinStock: 2000}
	mozzarella := models.Ingredient{Name: "Mozzarella", Unit: "g", Stock: 5000, MinStock: 1000}
	tomatoSauce := models.Ingredient{Name: "Tomato Sauce", Unit: "ml", Stock: 4000, MinStock: 800}
	for _, ingredient := range []*models.Ingredient{&flour, &mozzarella, &tomatoSauce} {
		db.Create(ingredient)
	}

	pizza := models.Product{Name: "Margherita Pizza", Price: 10.99, Cost: 3.50, IsActive: true}
	db.Create(&pizza)
	db.Create(&models.Recipe{
		ProductID: pizza.ID,
		Items: []models.RecipeItem{
			{IngredientID: flour.ID, Quantity: 250},
			{IngredientID: mozzarella.ID, Quantity: 120},
			{IngredientID: tomatoSauce.ID, Quantity: 90},
		},
	})

	db.Create(&models.Product{Name: "Soda Can", Price: 1.99, Cost: 0.60, IsActive: true, ManageStock: true, Stock: 24})
	db.Create(&models.Product{Name: "Tap Water", Price: 0.50, IsActive: true})

	log.Info("Database seeded successfully")
}

// setupRouter initializes the Gin router and sets up the routes
// It returns the configured router
func setupRouter() *gin.Engine {
	// Initialize Gin router
	router := gin.Default()

	// Define routes
	setupRoutes(router)

	return router
}

// setupRoutes defines the routes for the Gin router
func setupRoutes(router *gin.Engine) {
	// Health check endpoint
	router.GET("/health", healthCheckHandler)

	v1 := router.Group("/api/v1")
	{
		// OAuth2 endpoints for integration clients (kiosk, kitchen display)
		oauthApi := v1.Group("/oauth")
		{
			oauthApi.POST("/token", oauthService.HandleToken)
			oauthApi.GET("/authorize", oauthService.HandleAuthorize)
		}

		// Staff account endpoints
		authApi := v1.Group("/auth")
		{
			authApi.POST("/register", authController.Register)
			authApi.POST("/login", authController.Login)
		}

		publicApi := v1.Group("/public")
		{
			publicApi.GET("/products", productController.GetAllProducts)
			publicApi.GET("/products/:id", productController.GetProductByID)
		}

		// Protected routes (requires JWT authentication)
		protectedApi := v1.Group("/protected")
		protectedApi.Use(middleware.OAuth2Auth([]byte(configuration.JWTSecret)))
		{
			ordersApi := protectedApi.Group("/orders")
			{
				ordersApi.POST("", orderController.CreateOrder)
				ordersApi.GET("", orderController.GetAllOrders)
				ordersApi.GET("/:id", orderController.GetOrderByID)
				ordersApi.POST("/:id/complete", orderController.CompleteOrder)
				ordersApi.POST("/:id/cancel", orderController.CancelOrder)
			}

			adminApi := protectedApi.Group("/admin")
			adminApi.Use(middleware.RequireRole("admin"))
			{
				adminApi.POST("/ingredients", ingredientController.CreateIngredient)
				adminApi.GET("/ingredients", ingredientController.GetAllIngredients)
				adminApi.GET("/ingredients/low-stock", ingredientController.GetLowStockIngredients)
				adminApi.POST("/ingredients/:id/adjust", ingredientController.AdjustStock)
				adminApi.GET("/products/:id/recipe", productController.GetProductRecipe)

				adminApi.POST("/clients", clientController.CreateClient)
				adminApi.GET("/clients", clientController.ListClients)
				adminApi.DELETE("/clients/:id", clientController.DeleteClient)
			}
		}
	}

	// Swagger documentation
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}

// healthCheckHandler handles the health check endpoint
// @Summary Health check
// @Description Check if the service is running
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} map[string]string
// @Router /health [get]
func healthCheckHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"service":   "gin-resto-api",
	})
}
