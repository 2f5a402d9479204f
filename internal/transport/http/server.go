package http

import (
	"path/filepath"

	"github.com/gin-gonic/gin"

	"insight-console/internal/bootstrap"
	"insight-console/internal/transport/http/handler"
	"insight-console/internal/transport/http/middleware"
)

func NewRouter(app *bootstrap.App) *gin.Engine {
	gin.SetMode(app.Config.App.GinMode)
	router := gin.New()
	router.Use(gin.Logger(), gin.Recovery())
	if app.Config.UI.MaxUploadBytes > 0 {
		router.MaxMultipartMemory = app.Config.UI.MaxUploadBytes
	}

	healthHandler := handler.NewHealthHandler(app)
	router.GET("/healthz", healthHandler.Check)

	var audits handler.AuditLister
	if app.AuditRepo != nil {
		audits = app.AuditRepo
	}
	consoleHandler := handler.NewConsoleHandler(
		app.Uploads,
		app.History,
		app.Regions,
		audits,
		app.Config.UI.MaxUploadBytes,
	)

	page := router.Group("/")
	page.Use(middleware.Workspace(app.Config.Workspace))
	page.StaticFile("/", filepath.Join(app.Config.App.WebDir, "index.html"))

	ui := page.Group("/ui")
	ui.POST("/upload", consoleHandler.Upload)
	ui.GET("/history", consoleHandler.History)
	ui.GET("/regions/:region", consoleHandler.Region)
	ui.GET("/uploads", consoleHandler.Uploads)

	return router
}
