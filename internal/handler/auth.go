package handler

import (
	"net/http"
	"time"

	"github.com/mjinjiu/course-record-system/internal/config"
	"github.com/mjinjiu/course-record-system/internal/middleware"
	"github.com/mjinjiu/course-record-system/internal/models"
	"github.com/mjinjiu/course-record-system/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AuthHandler 负责登录/登出接口。整个系统只有一个共享口令，
// 登录成功后签发随机会话 token（服务端落库，可吊销、可过期），
// 而不是从口令推导的确定性 token。
type AuthHandler struct {
	DB         *gorm.DB
	Auth       config.AuthConfig
	SessionTTL time.Duration
}

func NewAuthHandler(db *gorm.DB, authCfg config.AuthConfig) *AuthHandler {
	ttlHours := authCfg.SessionTTLHours
	if ttlHours <= 0 {
		ttlHours = 24 * 7
	}
	return &AuthHandler{
		DB:         db,
		Auth:       authCfg,
		SessionTTL: time.Duration(ttlHours) * time.Hour,
	}
}

type loginReq struct {
	Password string `json:"password"`
}

// verifyPassword 优先用配置里的哈希口令，否则对明文做恒定时间比较
func (h *AuthHandler) verifyPassword(password string) bool {
	if h.Auth.PasswordHash != "" {
		return util.CheckPassword(password, h.Auth.PasswordHash)
	}
	return util.ConstantTimeEquals(password, h.Auth.Password)
}

// Login 校验口令，签发会话并写入 HTTP-only cookie
func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil || req.Password == "" {
		util.Error(c, http.StatusBadRequest, "请输入密码")
		return
	}

	if !h.verifyPassword(req.Password) {
		util.Error(c, http.StatusUnauthorized, "密码错误")
		return
	}

	session := models.LoginSession{
		ID:        uuid.New().String(),
		ExpiresAt: time.Now().Add(h.SessionTTL),
	}
	if err := h.DB.Create(&session).Error; err != nil {
		util.Error(c, http.StatusInternalServerError, "登录失败")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.AuthCookieName, session.ID,
		int(h.SessionTTL.Seconds()), "/", "", false, true)

	c.JSON(http.StatusOK, gin.H{"success": true, "token": session.ID})
}

// Logout 吊销当前会话并清掉 cookie
func (h *AuthHandler) Logout(c *gin.Context) {
	if v, ok := c.Get("sessionID"); ok {
		if id, ok := v.(string); ok && id != "" {
			_ = h.DB.Model(&models.LoginSession{}).
				Where("id = ?", id).
				Update("revoked", true).Error
		}
	}

	c.SetCookie(middleware.AuthCookieName, "", -1, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true})
}
