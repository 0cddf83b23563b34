package util

import "github.com/gin-gonic/gin"

// Error 统一错误返回，响应体固定为 {"error": msg}，
// 和前端约定的接口格式保持一致
func Error(c *gin.Context, httpStatus int, msg string) {
	c.JSON(httpStatus, gin.H{"error": msg})
}

// AbortError 在中间件里用：返回错误并终止后续 handler
func AbortError(c *gin.Context, httpStatus int, msg string) {
	c.AbortWithStatusJSON(httpStatus, gin.H{"error": msg})
}
