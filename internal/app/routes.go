package app

import (
	"net/http"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"github.com/swaggo/swag"

	"github.com/swapnil-SN7/TODO-App/internal/cache"
	"github.com/swapnil-SN7/TODO-App/internal/config"
	"github.com/swapnil-SN7/TODO-App/internal/dto"
	"github.com/swapnil-SN7/TODO-App/internal/handlers"
	"github.com/swapnil-SN7/TODO-App/internal/service"
	"github.com/swapnil-SN7/TODO-App/internal/store"
	"github.com/swapnil-SN7/TODO-App/internal/web"
)

// Setup registers all routes on the given engine. rec and tc are injected so
// tests can run the real router over an in-memory store.
func Setup(r *gin.Engine, cfg config.Config, rec store.RecordStore, tc *cache.TodoCache) {
	r.Use(gin.CustomRecovery(func(c *gin.Context, _ interface{}) {
		c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
	}))

	web.Register(r)
	r.GET("/health", healthHandler())
	r.GET("/version", versionHandler(cfg))
	r.GET("/swagger-doc.json", swaggerDocHandler())
	r.GET("/swagger", func(c *gin.Context) { c.Redirect(http.StatusFound, "/swagger/index.html") })
	r.GET("/swagger/*any", ginSwagger.WrapHandler(
		swaggerFiles.Handler,
		ginSwagger.URL("/swagger-doc.json"),
		ginSwagger.DefaultModelsExpandDepth(-1),
	))

	svc := service.NewTodoService(rec, tc)
	h := handlers.NewTodoHandler(svc)
	registerTodoRoutes(r, h)

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, dto.ErrorResponse{Error: "Not Found", Path: c.Request.URL.Path})
	})
}

func healthHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}

func versionHandler(cfg config.Config) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"version": cfg.App.Version, "env": cfg.App.Env})
	}
}

func swaggerDocHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := swag.ReadDoc("swagger")
		if err != nil {
			c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "Internal Server Error"})
			return
		}
		c.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	}
}

func registerTodoRoutes(r *gin.Engine, h *handlers.TodoHandler) {
	r.POST("/todos", h.Create)
	r.GET("/todos", h.List)
	r.GET("/todos/:id", h.GetByID)
	r.PUT("/todos/:id", h.Update)
	r.DELETE("/todos/:id", h.Delete)
}
