package services

import (
	"testing"

	"rca-backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string {
	return &s
}

func TestCreateNode_TopLevelMustBeWhy(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	_, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeRootCause,
		Content:  "Disk full",
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrInvalid)

	node, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy,
		Content:  "Server crashed",
	})
	require.NoError(t, err)
	assert.Nil(t, node.ParentID)
	assert.Equal(t, 0, node.Order)
	assert.NotNil(t, node.Children)
	assert.Len(t, node.Children, 0)
}

func TestCreateNode_OrderIsMaxPlusOne(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	first, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "why 1",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, first.Order)

	second, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "why 2",
	})
	require.NoError(t, err)
	assert.Equal(t, 1, second.Order)

	// 子节点的 order 在自己的同级中独立计数
	child, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &first.ID, NodeType: models.NodeTypeRootCause, Content: "cause",
	})
	require.NoError(t, err)
	assert.Equal(t, 0, child.Order)
	assert.Equal(t, first.ID, *child.ParentID)
}

func TestCreateNode_BlankContentRejected(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	_, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "   ",
	})
	assert.ErrorIs(t, err, ErrInvalid)
}

func TestCreateNode_UnknownRcaOrForeignOwner(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	rca := createTestRca(t, db, alice.ID, "Outage")
	svc := NewNodeService(db)

	req := &models.WhyNodeCreateRequest{NodeType: models.NodeTypeWhy, Content: "why"}

	_, err := svc.CreateNode(9999, alice.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)

	// 非所有者与不存在不可区分
	_, err = svc.CreateNode(rca.ID, bob.ID, req)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreateNode_ParentMustBeInSameRca(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rcaA := createTestRca(t, db, user.ID, "A")
	rcaB := createTestRca(t, db, user.ID, "B")
	svc := NewNodeService(db)

	parent, err := svc.CreateNode(rcaA.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "why in A",
	})
	require.NoError(t, err)

	// 父节点属于另一棵树
	_, err = svc.CreateNode(rcaB.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &parent.ID, NodeType: models.NodeTypeWhy, Content: "cross-tree",
	})
	assert.ErrorIs(t, err, ErrNotFound)

	// 根本不存在的父节点
	missing := uint(9999)
	_, err = svc.CreateNode(rcaA.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &missing, NodeType: models.NodeTypeWhy, Content: "no parent",
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdateNode_TopLevelTypeConstraint(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	top, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "top",
	})
	require.NoError(t, err)

	child, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &top.ID, NodeType: models.NodeTypeWhy, Content: "child",
	})
	require.NoError(t, err)

	// 顶层节点不能改为 root_cause
	_, err = svc.UpdateNode(top.ID, user.ID, &models.WhyNodeUpdateRequest{
		NodeType: strPtr(models.NodeTypeRootCause),
	})
	assert.ErrorIs(t, err, ErrInvalid)

	// 非顶层节点可以
	updated, err := svc.UpdateNode(child.ID, user.ID, &models.WhyNodeUpdateRequest{
		NodeType: strPtr(models.NodeTypeRootCause),
	})
	require.NoError(t, err)
	assert.Equal(t, models.NodeTypeRootCause, updated.NodeType)
}

func TestUpdateNode_PartialUpdate(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	node, err := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "original",
	})
	require.NoError(t, err)

	updated, err := svc.UpdateNode(node.ID, user.ID, &models.WhyNodeUpdateRequest{
		Content: strPtr("updated"),
	})
	require.NoError(t, err)
	assert.Equal(t, "updated", updated.Content)
	assert.Equal(t, models.NodeTypeWhy, updated.NodeType)

	_, err = svc.UpdateNode(node.ID, user.ID, &models.WhyNodeUpdateRequest{
		Content: strPtr("  "),
	})
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = svc.UpdateNode(9999, user.ID, &models.WhyNodeUpdateRequest{
		Content: strPtr("x"),
	})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestDeleteNode_CascadesToDescendants(t *testing.T) {
	db := setupTestDB(t)
	user := createTestUser(t, db, "alice")
	rca := createTestRca(t, db, user.ID, "Outage")
	svc := NewNodeService(db)

	top, _ := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "top",
	})
	mid, _ := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &top.ID, NodeType: models.NodeTypeWhy, Content: "mid",
	})
	leaf, _ := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		ParentID: &mid.ID, NodeType: models.NodeTypeRootCause, Content: "leaf",
	})
	other, _ := svc.CreateNode(rca.ID, user.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "other",
	})

	require.NoError(t, svc.DeleteNode(top.ID, user.ID))

	var remaining []models.WhyNode
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 1)
	assert.Equal(t, other.ID, remaining[0].ID)

	for _, id := range []uint{top.ID, mid.ID, leaf.ID} {
		var count int64
		db.Model(&models.WhyNode{}).Where("id = ?", id).Count(&count)
		assert.Zero(t, count, "node %d should be gone", id)
	}
}

func TestDeleteNode_OwnershipCollapsesToNotFound(t *testing.T) {
	db := setupTestDB(t)
	alice := createTestUser(t, db, "alice")
	bob := createTestUser(t, db, "bob")
	rca := createTestRca(t, db, alice.ID, "Outage")
	svc := NewNodeService(db)

	node, err := svc.CreateNode(rca.ID, alice.ID, &models.WhyNodeCreateRequest{
		NodeType: models.NodeTypeWhy, Content: "top",
	})
	require.NoError(t, err)

	assert.ErrorIs(t, svc.DeleteNode(node.ID, bob.ID), ErrNotFound)
	assert.ErrorIs(t, svc.DeleteNode(9999, alice.ID), ErrNotFound)
}
