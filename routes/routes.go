package routes

import (
	"app/handlers"
	"app/middleware"

	"github.com/gofiber/fiber/v2"
)

// SetupRoutes defines all the routes for the application.
func SetupRoutes(app *fiber.App) {
	api := app.Group("/api/v1")

	// --- Authentication Routes ---
	auth := api.Group("/auth")
	auth.Post("/login", handlers.HandleLogin)
	auth.Post("/initialize-admin", handlers.HandleInitializeAdmin)

	// --- Admin Routes ---
	admin := api.Group("/admin", middleware.JWTMiddleware, middleware.AdminRequired)
	admin.Get("/dashboard/summary", handlers.HandleGetAdminDashboardSummary)
	admin.Get("/brands", handlers.HandleListBrands)
	admin.Get("/brands-for-selection", handlers.HandleGetBrandsForSelection)
	admin.Post("/users", handlers.HandleCreateUser)
	admin.Get("/users", handlers.HandleGetUsers)
	admin.Put("/users/:userId/status", handlers.HandleSetUserStatus)

	// --- Brand Routes ---
	brand := api.Group("/brand", middleware.JWTMiddleware, middleware.BrandRequired)
	brand.Get("/dashboard/summary", handlers.HandleGetBrandDashboardSummary)

	dispensaries := brand.Group("/dispensaries")
	dispensaries.Get("/", handlers.HandleListDispensaries)
	dispensaries.Post("/", handlers.HandleCreateDispensary)

	products := brand.Group("/products")
	products.Get("/", handlers.HandleListProducts)
	products.Get("/:productId", handlers.HandleGetProductByID)
	products.Post("/", handlers.HandleCreateProduct)
	products.Put("/:productId", handlers.HandleUpdateProduct)
	products.Delete("/:productId", handlers.HandleDeleteProduct)

	sales := brand.Group("/sales")
	sales.Get("/report", handlers.HandleGetSalesReport)
	sales.Post("/", handlers.HandleRecordSale)

	// Forecasting
	forecast := brand.Group("/forecast")
	forecast.Get("/demand", handlers.HandleGetDemandForecast)
	forecast.Post("/demand", handlers.HandleComputeDemandForecast)
	forecast.Get("/demand/analysis", handlers.HandleGetDemandForecastAnalysis)

	// Integrations
	integrations := brand.Group("/integrations")
	integrations.Get("/credentials", handlers.HandleListCredentials)
	integrations.Post("/credentials", handlers.HandleStoreCredential)
	integrations.Delete("/credentials/:credentialId", handlers.HandleDeleteCredential)
	integrations.Post("/dutchie/sync", handlers.HandleDutchieSync)
	integrations.Get("/leaflink/orders", handlers.HandleGetLeafLinkOrders)

	// Compliance
	brand.Post("/compliance/check", handlers.HandleComplianceCheck)

	// --- AI Assistant Routes ---
	ai := api.Group("/ai", middleware.JWTMiddleware)
	ai.Post("/assistant", handlers.HandleAIAssistant)
}
