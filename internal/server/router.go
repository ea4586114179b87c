package server

import (
	"github.com/evsuite/chargepoint-server/internal/handlers"
	"github.com/evsuite/chargepoint-server/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
)

// NewRouter wires every surface: health probes, schema docs, the versioned
// public API and the administrative API.
func NewRouter(db *gorm.DB, log zerolog.Logger) *gin.Engine {
	r := gin.New()
	r.Use(
		middleware.RequestLogger(log),
		middleware.Recovery(log),
		middleware.CORS(),
	)

	healthHandler := handlers.NewHealthHandler(db)
	schemaHandler := handlers.NewSchemaHandler()
	chargePointHandler := handlers.NewChargePointHandler(db)
	adminHandler := handlers.NewAdminHandler(db)

	// Probes
	r.GET("/healthz", healthHandler.Healthz)
	r.GET("/readyz", healthHandler.Readyz)

	// Documentation
	r.GET("/api/schema", schemaHandler.Schema)
	r.GET("/api/docs", schemaHandler.Docs)

	// API v1
	v1 := r.Group("/api/v1")
	{
		cp := v1.Group("/chargepoint")
		{
			cp.GET("", chargePointHandler.List)
			cp.GET("/", chargePointHandler.List)
			cp.POST("", chargePointHandler.Create)
			cp.POST("/", chargePointHandler.Create)
			cp.GET("/:id", chargePointHandler.Get)
			cp.PUT("/:id", chargePointHandler.Update)
			cp.PATCH("/:id", chargePointHandler.PartialUpdate)
			cp.DELETE("/:id", chargePointHandler.Destroy)
		}
	}

	// Administrative surface (open in this configuration, like the API)
	admin := r.Group("/admin")
	{
		cps := admin.Group("/chargepoints")
		{
			cps.GET("", adminHandler.ListChargePoints)
			cps.POST("/soft-delete", adminHandler.SoftDeleteChargePoints)
			cps.POST("/restore", adminHandler.RestoreChargePoints)
			cps.POST("/hard-delete", adminHandler.HardDeleteChargePoints)
		}
		cns := admin.Group("/connectors")
		{
			cns.GET("", adminHandler.ListConnectors)
			cns.POST("", adminHandler.CreateConnector)
			cns.POST("/soft-delete", adminHandler.SoftDeleteConnectors)
			cns.POST("/restore", adminHandler.RestoreConnectors)
			cns.POST("/hard-delete", adminHandler.HardDeleteConnectors)
		}
	}

	return r
}
