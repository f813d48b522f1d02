package client

import (
	"strings"
	"testing"

	"rca-backend/internal/models"

	"github.com/stretchr/testify/assert"
)

func uintPtr(v uint) *uint {
	return &v
}

func TestRenderForest_MirrorsStructure(t *testing.T) {
	forest := []models.WhyNode{
		{
			ID: 1, NodeType: models.NodeTypeWhy, Content: "Server crashed",
			Children: []models.WhyNode{
				{ID: 2, ParentID: uintPtr(1), NodeType: models.NodeTypeRootCause, Content: "Disk full", Children: []models.WhyNode{}},
			},
		},
	}

	out := RenderForest(forest)

	assert.Contains(t, out, `data-node-id="1"`)
	assert.Contains(t, out, `data-node-id="2"`)
	assert.Contains(t, out, "Server crashed")
	assert.Contains(t, out, "Disk full")
	assert.Contains(t, out, "node-type-why")
	assert.Contains(t, out, "node-type-root_cause")

	// 有子节点的节点默认展开
	assert.Contains(t, out, "<details open>")

	// 子节点嵌套在父节点之内
	parentIdx := strings.Index(out, `data-node-id="1"`)
	childIdx := strings.Index(out, `data-node-id="2"`)
	assert.Greater(t, childIdx, parentIdx)

	// 每个节点都带操作按钮
	assert.Contains(t, out, `class="add-why" data-node-id="1"`)
	assert.Contains(t, out, `class="add-root-cause" data-node-id="1"`)
	assert.Contains(t, out, `class="delete-node" data-node-id="2"`)
}

func TestRenderForest_LeafHasNoToggle(t *testing.T) {
	forest := []models.WhyNode{
		{ID: 1, NodeType: models.NodeTypeWhy, Content: "no children", Children: []models.WhyNode{}},
	}

	out := RenderForest(forest)
	assert.NotContains(t, out, "<details")
	assert.Contains(t, out, "no children")
}

func TestRenderForest_EscapesContent(t *testing.T) {
	forest := []models.WhyNode{
		{ID: 1, NodeType: models.NodeTypeWhy, Content: `<script>alert("x")</script>`, Children: []models.WhyNode{}},
	}

	out := RenderForest(forest)
	assert.NotContains(t, out, "<script>")
	assert.Contains(t, out, "&lt;script&gt;")
}

func TestRenderForest_Empty(t *testing.T) {
	out := RenderForest(nil)
	assert.Equal(t, `<ul class="why-tree"></ul>`, out)
}
