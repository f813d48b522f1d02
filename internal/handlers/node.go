package handlers

import (
	"errors"
	"net/http"

	"rca-backend/internal/models"
	"rca-backend/internal/services"
	"rca-backend/internal/utils"
	pkgvalidator "rca-backend/pkg/validator"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

type NodeHandler struct {
	nodeService *services.NodeService
	validator   *validator.Validate
}

func NewNodeHandler(nodeService *services.NodeService) *NodeHandler {
	return &NodeHandler{
		nodeService: nodeService,
		validator:   pkgvalidator.GetValidator(),
	}
}

// CreateNode 在 RCA 下新建 why/root_cause 节点
func (h *NodeHandler) CreateNode(c *gin.Context) {
	userID, _ := c.Get("user_id")

	rcaID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的 RCA ID")
		return
	}

	var req models.WhyNodeCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	node, err := h.nodeService.CreateNode(rcaID, userID.(uint), &req)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"node": node})
}

func (h *NodeHandler) UpdateNode(c *gin.Context) {
	userID, _ := c.Get("user_id")

	nodeID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的节点ID")
		return
	}

	var req models.WhyNodeUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, http.StatusBadRequest, "请求参数错误")
		return
	}

	if err := h.validator.Struct(&req); err != nil {
		utils.ValidationError(c, err.Error())
		return
	}

	node, err := h.nodeService.UpdateNode(nodeID, userID.(uint), &req)
	if err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"node": node})
}

// DeleteNode 删除节点及其全部后代
func (h *NodeHandler) DeleteNode(c *gin.Context) {
	userID, _ := c.Get("user_id")

	nodeID, err := parseIDParam(c)
	if err != nil {
		utils.Error(c, http.StatusBadRequest, "无效的节点ID")
		return
	}

	if err := h.nodeService.DeleteNode(nodeID, userID.(uint)); err != nil {
		h.renderServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.MessageResponse{Message: "节点已删除"})
}

func (h *NodeHandler) renderServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		utils.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalid):
		utils.Error(c, http.StatusBadRequest, err.Error())
	default:
		utils.InternalError(c)
	}
}
