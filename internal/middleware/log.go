package middleware

import (
	"bytes"
	"io"
	"net/http"

	"github.com/mjinjiu/course-record-system/internal/models"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuditMiddleware 把写操作（POST/PUT/DELETE）记到 audit_logs 表，
// 供历史操作页面查询。挂在鉴权中间件之后，登录接口不经过这里，
// 所以密码不会落库。
func AuditMiddleware(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		method := c.Request.Method
		if method != http.MethodPost && method != http.MethodPut && method != http.MethodDelete {
			c.Next()
			return
		}

		// 读请求体后塞回去，handler 还要用
		var bodyBytes []byte
		if c.Request.Body != nil {
			bodyBytes, _ = io.ReadAll(c.Request.Body)
			c.Request.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
		}

		c.Next()

		// 只记成功的写操作
		if c.Writer.Status() >= http.StatusBadRequest {
			return
		}

		path := c.Request.URL.Path
		action := method + " " + path
		if len(bodyBytes) > 0 && len(bodyBytes) < 2000 {
			action += " " + string(bodyBytes)
		}

		entry := models.AuditLog{
			Path:      path,
			Method:    method,
			Action:    action,
			IP:        c.ClientIP(),
			UserAgent: c.Request.UserAgent(),
		}
		_ = db.Create(&entry).Error
	}
}
