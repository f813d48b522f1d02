package utils

import (
	"net/http"

	"rca-backend/internal/models"

	"github.com/gin-gonic/gin"
)

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, models.ErrorResponse{Error: message})
}

func ValidationError(c *gin.Context, errors interface{}) {
	c.JSON(http.StatusBadRequest, models.ErrorResponse{
		Error:  "验证失败",
		Errors: errors,
	})
}

func InternalError(c *gin.Context) {
	c.JSON(http.StatusInternalServerError, models.ErrorResponse{
		Error: "服务器内部错误",
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "资源不存在"
	}
	c.JSON(http.StatusNotFound, models.ErrorResponse{Error: message})
}

func Unauthorized(c *gin.Context, message string) {
	if message == "" {
		message = "未授权访问"
	}
	c.JSON(http.StatusUnauthorized, models.ErrorResponse{Error: message})
}
