package services

import (
	"fmt"
	"sort"

	"rca-backend/internal/models"
)

// BuildTree 把一个 RCA 的全部 why 节点组装成有序森林。
// 纯函数：不触发任何查询，输入顺序无关，结果确定。
// 兄弟节点按 (order, id) 升序排列；叶子节点的 Children 为空切片而非 nil，
// 保证序列化后始终带有 "children": []。
// 若某节点的 parent_id 在输入集合中不存在，返回 ErrOrphanNode：
// 外键约束下这属于数据完整性问题，不做静默降级。
func BuildTree(nodes []models.WhyNode) ([]models.WhyNode, error) {
	byID := make(map[uint]bool, len(nodes))
	for _, n := range nodes {
		byID[n.ID] = true
	}

	// 按父节点分组
	byParent := make(map[uint][]models.WhyNode)
	var roots []models.WhyNode
	for _, n := range nodes {
		n.Children = []models.WhyNode{}
		if n.ParentID == nil {
			roots = append(roots, n)
			continue
		}
		if !byID[*n.ParentID] {
			return nil, fmt.Errorf("%w: 节点 %d 引用父节点 %d", ErrOrphanNode, n.ID, *n.ParentID)
		}
		byParent[*n.ParentID] = append(byParent[*n.ParentID], n)
	}

	forest := attachChildren(roots, byParent)
	if forest == nil {
		forest = []models.WhyNode{}
	}
	return forest, nil
}

func attachChildren(siblings []models.WhyNode, byParent map[uint][]models.WhyNode) []models.WhyNode {
	sortSiblings(siblings)
	for i := range siblings {
		if children, ok := byParent[siblings[i].ID]; ok {
			siblings[i].Children = attachChildren(children, byParent)
		}
	}
	return siblings
}

// sortSiblings 按 order 升序排列，order 相同时按 id 升序保证稳定。
func sortSiblings(nodes []models.WhyNode) {
	sort.Slice(nodes, func(i, j int) bool {
		if nodes[i].Order != nodes[j].Order {
			return nodes[i].Order < nodes[j].Order
		}
		return nodes[i].ID < nodes[j].ID
	})
}
