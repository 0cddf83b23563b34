package router

import (
	"net/http"

	"github.com/mjinjiu/course-record-system/internal/config"
	"github.com/mjinjiu/course-record-system/internal/handler"
	"github.com/mjinjiu/course-record-system/internal/middleware"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SetupRouter configures the Gin engine, templates and static resources.
func SetupRouter(cfg *config.Config, db *gorm.DB) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	r.Static("/static", "./web/static")
	r.LoadHTMLGlob("web/templates/*")

	// 登录页不鉴权
	r.GET("/login", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", gin.H{
			"title": "课时记录系统 - 登录",
		})
	})

	// 页面路由：没有有效 cookie 时跳回登录页
	pages := r.Group("", middleware.RequireAuth(db))

	pages.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "index.html", gin.H{
			"title": "课时记录系统",
		})
	})

	pages.GET("/dashboard", func(c *gin.Context) {
		c.HTML(http.StatusOK, "dashboard.html", gin.H{
			"title": "课时记录系统 - 数据统计",
		})
	})

	// ====== API ======
	api := r.Group("/api")

	// 登录接口不需要鉴权
	authHandler := handler.NewAuthHandler(db, cfg.Auth)
	api.POST("/auth/login", authHandler.Login)

	// 需要登录才能访问的接口
	protected := api.Group("")
	protected.Use(
		middleware.RequireAuth(db),
		middleware.AuditMiddleware(db),
	)

	protected.POST("/auth/logout", authHandler.Logout)

	recordHandler := handler.NewRecordHandler(db)
	protected.GET("/records", recordHandler.ListRecords)
	protected.POST("/records", recordHandler.CreateRecord)
	protected.PUT("/records/:id", recordHandler.UpdateRecord)
	protected.DELETE("/records/:id", recordHandler.DeleteRecord)

	statsHandler := handler.NewStatsHandler(db)
	protected.GET("/stats", statsHandler.GetStats)
	protected.GET("/stats/calendar", statsHandler.GetCalendar)

	protected.GET("/students", handler.ListStudents(db))

	exportHandler := handler.NewExportHandler(db)
	protected.GET("/export/csv", exportHandler.ExportCSV)
	protected.GET("/export/xlsx", exportHandler.ExportXLSX)

	backupHandler := handler.NewBackupHandler(db, cfg.Security.EncryptionKey, cfg.Backup.Dir)
	protected.POST("/backups", backupHandler.CreateBackup)
	protected.GET("/backups", backupHandler.ListBackups)
	protected.GET("/backups/:id/download", backupHandler.DownloadBackup)
	protected.POST("/backups/:id/restore", backupHandler.RestoreBackup)
	protected.DELETE("/backups/:id", backupHandler.DeleteBackup)

	logHandler := handler.NewLogHandler(db)
	protected.GET("/logs", logHandler.ListLogs)

	return r
}
