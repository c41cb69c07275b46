package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/tomasdma/donation-platform/internal/config"
	"github.com/tomasdma/donation-platform/internal/constants"
	"github.com/tomasdma/donation-platform/internal/database"
	"github.com/tomasdma/donation-platform/internal/handlers"
	"github.com/tomasdma/donation-platform/internal/middleware"
	"github.com/tomasdma/donation-platform/internal/repository"
	"github.com/tomasdma/donation-platform/internal/services"
	"github.com/tomasdma/donation-platform/internal/token"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations and seed the permission catalog
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTLifetime)

	// Initialize repositories
	db := database.GetDB()
	userRepo := repository.NewUserRepository(db)
	companyRepo := repository.NewCompanyRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	campaignRepo := repository.NewCampaignRepository(db)
	donationRepo := repository.NewDonationRepository(db)

	// Initialize services
	authService := services.NewAuthService(userRepo, membershipRepo, codec)
	companyService := services.NewCompanyService(companyRepo, roleRepo)
	roleService := services.NewRoleService(companyRepo, roleRepo)
	employeeService := services.NewEmployeeService(userRepo, companyRepo, roleRepo, membershipRepo, cfg.GrantProhibitedRoles)
	campaignService := services.NewCampaignService(campaignRepo)
	donationService := services.NewDonationService(campaignRepo, donationRepo)

	// Initialize handlers
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(authService)
	companyHandler := handlers.NewCompanyHandler(companyService)
	roleHandler := handlers.NewRoleHandler(roleService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	campaignHandler := handlers.NewCampaignHandler(campaignService)
	donationHandler := handlers.NewDonationHandler(donationService)

	// Initialize Gin router
	r := gin.Default()

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Donation Platform API is running",
		})
	})

	// API routes, all behind the authentication gate
	api := r.Group("/api")
	api.Use(middleware.Authenticate(codec))
	{
		// Auth routes (public)
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", middleware.RequireAuth(), authHandler.GetCurrentUser)
		}

		// User self-service routes (protected)
		users := api.Group("/users")
		users.Use(middleware.RequireAuth())
		{
			users.PUT("/me", userHandler.UpdateProfile)
			users.PUT("/me/password", userHandler.ChangePassword)
			users.DELETE("/me", userHandler.DisableAccount)
		}

		// Company routes
		companies := api.Group("/companies")
		{
			companies.GET("", companyHandler.ListCompanies)
			companies.POST("", middleware.RequireAuth(), companyHandler.CreateCompany)
			companies.GET("/:id", companyHandler.GetCompany)
			companies.GET("/:id/employees", middleware.RequireAuth(), employeeHandler.ListEmployees)
			companies.POST("/membership", middleware.RequirePermission(constants.PermAddEmployee), employeeHandler.AddUserToCompany)
			companies.DELETE("/membership", middleware.RequirePermission(constants.PermRemoveEmployee), employeeHandler.RemoveUserFromCompany)
			companies.GET("/:id/roles", middleware.RequirePermission(constants.PermListRoles), roleHandler.ListRoles)
			companies.POST("/:id/roles", middleware.RequirePermission(constants.PermCreateRole), roleHandler.CreateRole)

			// Company type taxonomy
			companies.GET("/types", companyHandler.ListCompanyTypes)
			companies.POST("/types", middleware.RequireAuth(), companyHandler.CreateCompanyType)
		}

		// Role routes addressed by role id
		roles := api.Group("/roles")
		{
			roles.PUT("/:roleId", middleware.RequirePermission(constants.PermModifyRole), roleHandler.UpdateRole)
			roles.DELETE("/:roleId", middleware.RequirePermission(constants.PermDeleteRole), roleHandler.DeleteRole)
		}

		// Permission catalog (Owner only)
		permissions := api.Group("/permissions")
		permissions.Use(middleware.RequireOwnerRole())
		{
			permissions.GET("", roleHandler.ListPermissions)
			permissions.POST("", roleHandler.CreatePermission)
		}

		// Campaign routes
		campaigns := api.Group("/campaigns")
		{
			campaigns.GET("", campaignHandler.ListCampaigns)
			campaigns.GET("/:id", campaignHandler.GetCampaign)
			campaigns.POST("", middleware.RequirePermission(constants.PermCreateCampaign), campaignHandler.CreateCampaign)
			campaigns.PUT("/:id", middleware.RequirePermission(constants.PermModifyCampaign), campaignHandler.UpdateCampaign)
			campaigns.GET("/:id/donations", middleware.RequireAuth(), donationHandler.ListCampaignDonations)
		}

		// Donation routes (any authenticated user)
		donations := api.Group("/donations")
		donations.Use(middleware.RequireAuth())
		{
			donations.POST("", donationHandler.RecordDonation)
			donations.GET("/me", donationHandler.ListMyDonations)
		}
	}

	// Start server
	log.Println("Server starting on :8080")
	if err := r.Run(":8080"); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
