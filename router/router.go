package router

import (
	"net/http"
	"strings"
	"time"

	"fintrack/api"
	"fintrack/config"
	_ "fintrack/docs"
	"fintrack/middleware"
	"fintrack/service"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRouter wires handlers, middleware and routes
func SetupRouter(cfg *config.Config, db *gorm.DB, log zerolog.Logger) *gin.Engine {
	gin.SetMode(cfg.Server.Mode)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(log))
	r.Use(CORSMiddleware(cfg.Server.AllowedOrigins))

	txs := service.NewTransactionService(db)
	reports := service.NewReportService(db)
	email := service.NewEmailService(&cfg.Email)

	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status": "ok",
		})
	})

	apiGroup := r.Group("/api")
	{
		authHandler := api.NewAuthHandler(cfg, db)
		limiter := middleware.LoginRateLimit(10, time.Minute)
		auth := apiGroup.Group("/auth")
		{
			auth.POST("/register", limiter, authHandler.Register)
			auth.POST("/login", limiter, authHandler.Login)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", middleware.JWTAuth(), authHandler.Me)
		}

		authorized := apiGroup.Group("")
		authorized.Use(middleware.JWTAuth())
		{
			transactionHandler := api.NewTransactionHandler(txs)
			transactions := authorized.Group("/transactions")
			{
				transactions.POST("", transactionHandler.Create)
				transactions.GET("", transactionHandler.List)
				transactions.DELETE("/clear", transactionHandler.Clear)
				transactions.GET("/:id", transactionHandler.Get)
				transactions.PUT("/:id", transactionHandler.Update)
				transactions.DELETE("/:id", transactionHandler.Delete)
			}

			parcelHandler := api.NewParcelHandler(txs, reports)
			parcels := authorized.Group("/parcels")
			{
				parcels.GET("", parcelHandler.List)
				parcels.PUT("", parcelHandler.SetPaid)
				parcels.GET("/groups", parcelHandler.Groups)
			}

			summaryHandler := api.NewSummaryHandler(reports)
			authorized.GET("/summary", summaryHandler.Monthly)
			authorized.GET("/summary/annual", summaryHandler.Annual)

			categoryHandler := api.NewCategoryHandler(db, reports)
			categories := authorized.Group("/categories")
			{
				categories.GET("", categoryHandler.List)
				categories.POST("", categoryHandler.Create)
				categories.PUT("/:id", categoryHandler.Update)
				categories.DELETE("/:id", categoryHandler.Delete)
			}

			noteHandler := api.NewNoteHandler(db)
			notes := authorized.Group("/notes")
			{
				notes.GET("", noteHandler.List)
				notes.POST("", noteHandler.Create)
				notes.GET("/:id", noteHandler.Get)
				notes.PUT("/:id", noteHandler.Update)
				notes.DELETE("/:id", noteHandler.Delete)
			}

			taskHandler := api.NewTaskHandler(db)
			tasks := authorized.Group("/tasks")
			{
				tasks.GET("", taskHandler.List)
				tasks.POST("", taskHandler.Create)
				tasks.GET("/:id", taskHandler.Get)
				tasks.PUT("/:id", taskHandler.Update)
				tasks.DELETE("/:id", taskHandler.Delete)
			}

			limboHandler := api.NewLimboHandler(db)
			limbo := authorized.Group("/limbo")
			{
				limbo.GET("", limboHandler.List)
				limbo.POST("", limboHandler.Create)
				limbo.PUT("/:id", limboHandler.Update)
				limbo.DELETE("/:id", limboHandler.Delete)
			}

			settingsHandler := api.NewSettingsHandler(db, email)
			authorized.GET("/settings", settingsHandler.Get)
			authorized.PUT("/settings", settingsHandler.Update)
			authorized.POST("/settings/test-email", settingsHandler.TestEmail)

			exportHandler := api.NewExportHandler(db)
			export := authorized.Group("/export")
			{
				export.GET("/csv", exportHandler.ExportCSV)
				export.GET("/excel", exportHandler.ExportExcel)
			}
		}
	}

	return r
}

// CORSMiddleware CORS headers for allow-listed origins; preflight requests stop here.
// A "*" entry answers any origin but never with credentials.
func CORSMiddleware(allowedOrigins []string) gin.HandlerFunc {
	allowed := make(map[string]bool, len(allowedOrigins))
	wildcard := false
	for _, o := range allowedOrigins {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			wildcard = true
			continue
		}
		if o != "" {
			allowed[o] = true
		}
	}

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		c.Writer.Header().Add("Vary", "Origin")

		switch {
		case origin == "":
			c.Next()
			return
		case allowed[origin]:
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		case wildcard:
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		default:
			if c.Request.Method == http.MethodOptions {
				c.AbortWithStatus(http.StatusForbidden)
				return
			}
			c.Next()
			return
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, Authorization, accept, origin, Cache-Control, X-Requested-With, X-Request-ID")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE")

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}
