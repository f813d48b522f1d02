package services

import (
	"errors"

	"rca-backend/internal/models"

	"gorm.io/gorm"
)

type RcaService struct {
	db *gorm.DB
}

func NewRcaService(db *gorm.DB) *RcaService {
	return &RcaService{db: db}
}

// GetRcas 返回当前用户的全部 RCA（不含节点树），按创建时间倒序。
func (s *RcaService) GetRcas(userID uint) ([]models.Rca, error) {
	var rcas []models.Rca
	err := s.db.Preload("Owner").
		Where("owner_id = ?", userID).
		Order("created_at DESC").
		Find(&rcas).Error
	if err != nil {
		return nil, err
	}
	return rcas, nil
}

func (s *RcaService) CreateRca(userID uint, req *models.RcaCreateRequest) (*models.Rca, error) {
	rca := models.Rca{
		Name:        req.Name,
		Description: req.Description,
		Timeline:    req.Timeline,
		OwnerID:     userID,
	}

	if err := s.db.Create(&rca).Error; err != nil {
		return nil, err
	}

	s.db.Preload("Owner").First(&rca, rca.ID)
	return &rca, nil
}

// GetRcaWithTree 获取 RCA 及其组装好的 why 树。
// 唯一会带节点的读取路径；非所有者与不存在统一返回 ErrNotFound。
func (s *RcaService) GetRcaWithTree(rcaID, userID uint) (*models.RcaDetail, error) {
	var rca models.Rca
	err := s.db.Preload("Owner").
		Where("id = ? AND owner_id = ?", rcaID, userID).
		First(&rca).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	var nodes []models.WhyNode
	if err := s.db.Where("rca_id = ?", rcaID).Find(&nodes).Error; err != nil {
		return nil, err
	}

	forest, err := BuildTree(nodes)
	if err != nil {
		return nil, err
	}

	return &models.RcaDetail{Rca: rca, Nodes: forest}, nil
}

func (s *RcaService) UpdateRca(rcaID, userID uint, req *models.RcaUpdateRequest) (*models.Rca, error) {
	var rca models.Rca
	err := s.db.Where("id = ? AND owner_id = ?", rcaID, userID).First(&rca).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	// 部分更新：未提供的字段保持不变
	updates := map[string]interface{}{}
	if req.Name != nil {
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.Timeline != nil {
		updates["timeline"] = *req.Timeline
	}

	if len(updates) > 0 {
		if err := s.db.Model(&rca).Updates(updates).Error; err != nil {
			return nil, err
		}
	}

	s.db.Preload("Owner").First(&rca, rca.ID)
	return &rca, nil
}

// DeleteRca 删除 RCA 并级联删除其全部节点。
func (s *RcaService) DeleteRca(rcaID, userID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var rca models.Rca
		err := tx.Where("id = ? AND owner_id = ?", rcaID, userID).First(&rca).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}

		// 先删节点再删 RCA
		if err := tx.Where("rca_id = ?", rcaID).Delete(&models.WhyNode{}).Error; err != nil {
			return err
		}

		return tx.Delete(&rca).Error
	})
}
