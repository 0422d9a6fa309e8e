package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ErrorResponse 统一错误响应：{code, message}
func ErrorResponse(ctx *gin.Context, status int, code, message string) {
	ctx.JSON(status, gin.H{
		"code":    code,
		"message": message,
	})
}

// SuccessResponse 统一成功响应：{<key>: data, total}
func SuccessResponse(ctx *gin.Context, key string, data interface{}, count int) {
	ctx.JSON(http.StatusOK, gin.H{
		key:     data,
		"total": count,
	})
}
