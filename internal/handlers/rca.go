package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"rca-backend/internal/models"
	"rca-backend/internal/services"
	"rca-backend/internal/utils"
	pkgvalidator "rca-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type RcaHandler struct {
	rcaService *services.RcaService
	validator  *validator.Validate
}

func NewRcaHandler(rcaService *services.RcaService) *RcaHandler {
	return &RcaHandler{
		rcaService: rcaService,
		validator:  pkgvalidator.GetValidator(),
	}
}

func (h *RcaHandler) GetRcas(c *gin.Context) {
	userID, _ := c.Get("user_id")

	rcas, err := h.rcaService.GetRcas(userID.(uint))
	if err != nil {
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rcas": rcas})
}

func (h *RcaHandler) CreateRca(c *gin.Context) {
	userID, _ := c.Get("user_id")

	var req models.RcaCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	rca, err := h.rcaService.CreateRca(userID.(uint), &req)
	if err != nil {
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"rca": rca})
}

// GetRca 返回 RCA 及其完整 why 树
func (h *RcaHandler) GetRca(c *gin.Context) {
	userID, _ := c.Get("user_id")

	rcaID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的 RCA ID")
		return
	}

	rca, err := h.rcaService.GetRcaWithTree(rcaID, userID.(uint))
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFound(c, "RCA 不存在")
			return
		}
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rca": rca})
}

func (h *RcaHandler) UpdateRca(c *gin.Context) {
	userID, _ := c.Get("user_id")

	rcaID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的 RCA ID")
		return
	}

	var req models.RcaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	rca, err := h.rcaService.UpdateRca(rcaID, userID.(uint), &req)
	if err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFound(c, "RCA 不存在")
			return
		}
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, gin.H{"rca": rca})
}

func (h *RcaHandler) DeleteRca(c *gin.Context) {
	userID, _ := c.Get("user_id")

	rcaID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的 RCA ID")
		return
	}

	if err := h.rcaService.DeleteRca(rcaID, userID.(uint)); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			utils.NotFound(c, "RCA 不存在")
			return
		}
		utils.InternalError(c)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "RCA 已删除"})
}

func parseIDParam(c *gin.Context) (uint, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	return uint(id), err
}
