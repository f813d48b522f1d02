package models

import (
	"time"
)

const (
	NodeTypeWhy       = "why"
	NodeTypeRootCause = "root_cause"
)

type WhyNode struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	RcaID     uint      `json:"rca_id" gorm:"not null;index"`
	ParentID  *uint     `json:"parent_id" gorm:"index"`
	NodeType  string    `json:"node_type" gorm:"size:20;not null;default:why"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Order     int       `json:"order" gorm:"not null;default:0"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// 关联（Children 由 BuildTree 按需组装，不做 gorm 关系）
	Parent   *WhyNode  `json:"-" gorm:"foreignKey:ParentID;constraint:OnDelete:CASCADE"`
	Children []WhyNode `json:"children" gorm:"-"`
}

type WhyNodeCreateRequest struct {
	ParentID *uint  `json:"parent_id"`
	NodeType string `json:"node_type" validate:"required,oneof=why root_cause"`
	Content  string `json:"content" validate:"required,notblank"`
}

type WhyNodeUpdateRequest struct {
	Content  *string `json:"content" validate:"omitempty,notblank"`
	NodeType *string `json:"node_type" validate:"omitempty,oneof=why root_cause"`
}
