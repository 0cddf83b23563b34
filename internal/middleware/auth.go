package middleware

import (
	"net/http"
	"strings"
	"time"

	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// AuthCookieName is the HTTP-only cookie carrying the session token.
const AuthCookieName = "course-record-auth"

// RequireAuth 校验会话 token，并把会话放进 context。
// token 来源优先级：cookie > Authorization: Bearer > ?token=
// （query 形式用于导出下载这类加不了自定义 Header 的场景）。
// 未登录时页面请求跳转 /login，API 请求返回 401。
func RequireAuth(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenStr string

		if cookie, err := c.Cookie(AuthCookieName); err == nil {
			tokenStr = cookie
		}

		if tokenStr == "" {
			authHeader := c.GetHeader("Authorization")
			if authHeader != "" {
				parts := strings.SplitN(authHeader, " ", 2)
				if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
					tokenStr = parts[1]
				}
			}
		}

		if tokenStr == "" {
			tokenStr = c.Query("token")
		}

		if tokenStr == "" || !validSession(db, tokenStr) {
			reject(c)
			return
		}

		c.Set("sessionID", tokenStr)
		c.Next()
	}
}

// validSession 检查会话存在、未吊销、未过期，过期的顺手删掉
func validSession(db *gorm.DB, id string) bool {
	var session models.LoginSession
	if err := db.First(&session, "id = ?", id).Error; err != nil {
		return false
	}
	if session.Revoked {
		return false
	}
	if time.Now().After(session.ExpiresAt) {
		_ = db.Delete(&session).Error
		return false
	}
	return true
}

func reject(c *gin.Context) {
	if strings.HasPrefix(c.Request.URL.Path, "/api/") {
		util.AbortError(c, http.StatusUnauthorized, "未授权访问")
		return
	}
	c.Redirect(http.StatusFound, "/login")
	c.Abort()
}
