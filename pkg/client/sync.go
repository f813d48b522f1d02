package client

import (
	"context"

	"rca-backend/internal/models"
)

// SyncController 维护单个 RCA 的客户端状态。
// 同步策略：任何变更成功后丢弃本地状态并整体重新拉取，
// 不做增量合并，保证客户端与服务端不会出现分叉。
type SyncController struct {
	client  *Client
	rcaID   uint
	current *models.RcaDetail
}

func NewSyncController(c *Client, rcaID uint) *SyncController {
	return &SyncController{client: c, rcaID: rcaID}
}

// Current 返回最近一次成功拉取的 RCA 状态，尚未拉取时为 nil
func (s *SyncController) Current() *models.RcaDetail {
	return s.current
}

// Refresh 丢弃本地状态并重新拉取完整 RCA + 树
func (s *SyncController) Refresh(ctx context.Context) error {
	s.current = nil
	rca, err := s.client.GetRca(ctx, s.rcaID)
	if err != nil {
		return err
	}
	s.current = rca
	return nil
}

// CreateNode 新建节点成功后全量刷新
func (s *SyncController) CreateNode(ctx context.Context, req *models.WhyNodeCreateRequest) error {
	if _, err := s.client.CreateNode(ctx, s.rcaID, req); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// UpdateNode 更新节点成功后全量刷新
func (s *SyncController) UpdateNode(ctx context.Context, nodeID uint, req *models.WhyNodeUpdateRequest) error {
	if _, err := s.client.UpdateNode(ctx, nodeID, req); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// DeleteNode 删除节点成功后全量刷新
func (s *SyncController) DeleteNode(ctx context.Context, nodeID uint) error {
	if err := s.client.DeleteNode(ctx, nodeID); err != nil {
		return err
	}
	return s.Refresh(ctx)
}

// RenderHTML 渲染当前树的 HTML，未加载时返回空字符串
func (s *SyncController) RenderHTML() string {
	if s.current == nil {
		return ""
	}
	return RenderForest(s.current.Nodes)
}
