package client

import (
	"fmt"
	"html"
	"strings"

	"rca-backend/internal/models"
)

// RenderForest 把组装好的 why 森林渲染成嵌套 HTML，结构与树一一对应。
// 有子节点的节点渲染为 <details open>（默认展开，可折叠）；
// 展开/折叠状态只存在于输出的 DOM 中，重新渲染即重置。
// 内容经 HTML 转义，防止注入。
func RenderForest(nodes []models.WhyNode) string {
	var b strings.Builder
	b.WriteString(`<ul class="why-tree">`)
	for _, n := range nodes {
		renderNode(&b, &n)
	}
	b.WriteString("</ul>")
	return b.String()
}

func renderNode(b *strings.Builder, n *models.WhyNode) {
	fmt.Fprintf(b, `<li class="why-node" data-node-id="%d">`, n.ID)

	if len(n.Children) > 0 {
		b.WriteString("<details open>")
		b.WriteString("<summary>")
		renderNodeBody(b, n)
		b.WriteString("</summary>")
		b.WriteString(`<ul class="why-children">`)
		for _, child := range n.Children {
			renderNode(b, &child)
		}
		b.WriteString("</ul>")
		b.WriteString("</details>")
	} else {
		renderNodeBody(b, n)
	}

	b.WriteString("</li>")
}

func renderNodeBody(b *strings.Builder, n *models.WhyNode) {
	badge := "Why"
	if n.NodeType == models.NodeTypeRootCause {
		badge = "Root Cause"
	}

	fmt.Fprintf(b, `<span class="node-type node-type-%s">%s</span>`, html.EscapeString(n.NodeType), badge)
	fmt.Fprintf(b, `<span class="node-content">%s</span>`, html.EscapeString(n.Content))

	fmt.Fprintf(b, `<span class="node-actions">`)
	fmt.Fprintf(b, `<button class="add-why" data-node-id="%d">+ Why</button>`, n.ID)
	fmt.Fprintf(b, `<button class="add-root-cause" data-node-id="%d">+ Root Cause</button>`, n.ID)
	fmt.Fprintf(b, `<button class="edit-node" data-node-id="%d">编辑</button>`, n.ID)
	fmt.Fprintf(b, `<button class="delete-node" data-node-id="%d">删除</button>`, n.ID)
	b.WriteString("</span>")
}
