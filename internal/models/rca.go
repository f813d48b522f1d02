package models

import (
	"time"
)

type Rca struct {
	ID          uint      `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"size:200;not null"`
	Description *string   `json:"description" gorm:"type:text"`
	Timeline    *string   `json:"timeline" gorm:"type:text"`
	OwnerID     uint      `json:"owner_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"index"`
	UpdatedAt   time.Time `json:"updated_at"`

	// 关联
	Owner User      `json:"owner,omitempty" gorm:"foreignKey:OwnerID"`
	Nodes []WhyNode `json:"-" gorm:"foreignKey:RcaID;constraint:OnDelete:CASCADE"`
}

// RcaDetail 带完整 why 树的 RCA 响应
type RcaDetail struct {
	Rca
	Nodes []WhyNode `json:"nodes"`
}

type RcaCreateRequest struct {
	Name        string  `json:"name" validate:"required,notblank,max=200"`
	Description *string `json:"description"`
	Timeline    *string `json:"timeline"`
}

type RcaUpdateRequest struct {
	Name        *string `json:"name" validate:"omitempty,notblank,max=200"`
	Description *string `json:"description"`
	Timeline    *string `json:"timeline"`
}
