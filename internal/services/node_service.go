package services

import (
	"errors"
	"fmt"
	"strings"

	"rca-backend/internal/models"

	"gorm.io/gorm"
)

type NodeService struct {
	db *gorm.DB
}

func NewNodeService(db *gorm.DB) *NodeService {
	return &NodeService{db: db}
}

// CreateNode 在指定 RCA 下新建 why / root_cause 节点。
// 约束：顶层节点（parent_id 为空）只能是 why 类型；父节点必须属于同一 RCA。
// 新节点 order = 同级最大 order + 1，无同级时为 0。
func (s *NodeService) CreateNode(rcaID, userID uint, req *models.WhyNodeCreateRequest) (*models.WhyNode, error) {
	// 校验 RCA 归属（不存在与无权限统一视为不存在）
	var count int64
	if err := s.db.Model(&models.Rca{}).Where("id = ? AND owner_id = ?", rcaID, userID).Count(&count).Error; err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, fmt.Errorf("%w: RCA 不存在", ErrNotFound)
	}

	if strings.TrimSpace(req.Content) == "" {
		return nil, fmt.Errorf("%w: 内容不能为空", ErrInvalid)
	}

	// 顶层节点必须是 why 类型
	if req.ParentID == nil && req.NodeType != models.NodeTypeWhy {
		return nil, fmt.Errorf("%w: 顶层节点必须是 why 类型", ErrInvalid)
	}

	// 父节点必须存在且属于同一 RCA
	if req.ParentID != nil {
		if err := s.db.Model(&models.WhyNode{}).
			Where("id = ? AND rca_id = ?", *req.ParentID, rcaID).
			Count(&count).Error; err != nil {
			return nil, err
		}
		if count == 0 {
			return nil, fmt.Errorf("%w: 父节点不在该 RCA 中", ErrNotFound)
		}
	}

	node := models.WhyNode{
		RcaID:    rcaID,
		ParentID: req.ParentID,
		NodeType: req.NodeType,
		Content:  req.Content,
	}

	err := s.db.Transaction(func(tx *gorm.DB) error {
		// 取同级最大 order，+1 作为新节点 order
		order, err := nextSiblingOrder(tx, rcaID, req.ParentID)
		if err != nil {
			return err
		}
		node.Order = order
		return tx.Create(&node).Error
	})
	if err != nil {
		return nil, err
	}

	node.Children = []models.WhyNode{}
	return &node, nil
}

func nextSiblingOrder(tx *gorm.DB, rcaID uint, parentID *uint) (int, error) {
	query := tx.Model(&models.WhyNode{}).Where("rca_id = ?", rcaID)
	if parentID == nil {
		query = query.Where("parent_id IS NULL")
	} else {
		query = query.Where("parent_id = ?", *parentID)
	}

	var next int
	err := query.Select(`COALESCE(MAX("order"), -1) + 1`).Scan(&next).Error
	return next, err
}

// UpdateNode 部分更新节点内容或类型。不支持变更父节点。
func (s *NodeService) UpdateNode(nodeID, userID uint, req *models.WhyNodeUpdateRequest) (*models.WhyNode, error) {
	node, err := s.getOwnedNode(nodeID, userID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{}
	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, fmt.Errorf("%w: 内容不能为空", ErrInvalid)
		}
		updates["content"] = *req.Content
	}
	if req.NodeType != nil {
		// 顶层约束按节点当前的 parent 判定
		if node.ParentID == nil && *req.NodeType != models.NodeTypeWhy {
			return nil, fmt.Errorf("%w: 顶层节点必须是 why 类型", ErrInvalid)
		}
		updates["node_type"] = *req.NodeType
	}

	if len(updates) > 0 {
		if err := s.db.Model(node).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	node.Children = []models.WhyNode{}
	return node, nil
}

// DeleteNode 删除节点并级联删除其全部后代。
func (s *NodeService) DeleteNode(nodeID, userID uint) error {
	node, err := s.getOwnedNode(nodeID, userID)
	if err != nil {
		return err
	}

	// 逐层收集后代 id，一次事务内整体删除
	return s.db.Transaction(func(tx *gorm.DB) error {
		ids := []uint{node.ID}
		frontier := []uint{node.ID}

		for len(frontier) > 0 {
			var childIDs []uint
			if err := tx.Model(&models.WhyNode{}).
				Where("parent_id IN ?", frontier).
				Pluck("id", &childIDs).Error; err != nil {
				return err
			}
			ids = append(ids, childIDs...)
			frontier = childIDs
		}

		return tx.Where("id IN ?", ids).Delete(&models.WhyNode{}).Error
	})
}

// getOwnedNode 取节点并校验其所属 RCA 归当前用户所有。
func (s *NodeService) getOwnedNode(nodeID, userID uint) (*models.WhyNode, error) {
	var node models.WhyNode
	err := s.db.Joins("JOIN rcas ON rcas.id = why_nodes.rca_id").
		Where("why_nodes.id = ? AND rcas.owner_id = ?", nodeID, userID).
		First(&node).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("%w: 节点不存在", ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	return &node, nil
}
