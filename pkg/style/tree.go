package style

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/tree"
)

// TreeNode 是 PrintTree 的数据结构
type TreeNode struct {
	Text     string
	Children []TreeNode
}

// PrintTree 以圆角连接符渲染树
func PrintTree(w io.Writer, root TreeNode) error {
	rootStyle := lipgloss.NewStyle().Foreground(ColorAccentText).Bold(true)
	itemStyle := lipgloss.NewStyle().Foreground(ColorText)
	enumeratorStyle := lipgloss.NewStyle().Foreground(ColorBorder)

	var build func(TreeNode) *tree.Tree
	build = func(node TreeNode) *tree.Tree {
		t := tree.Root(node.Text)
		for _, child := range node.Children {
			if len(child.Children) == 0 {
				t.Child(child.Text)
				continue
			}
			t.Child(build(child))
		}
		return t
	}

	t := build(root).
		Enumerator(tree.RoundedEnumerator).
		RootStyle(rootStyle).
		ItemStyle(itemStyle).
		EnumeratorStyle(enumeratorStyle)

	_, err := fmt.Fprintln(w, t)
	return err
}

// PathTree 把 '/' 分隔的路径组织成目录树，label 返回叶子节点的显示文本
// 子节点保持 paths 中首次出现的顺序
func PathTree(rootText string, paths []string, label func(path string) string) TreeNode {
	root := TreeNode{Text: rootText}
	for _, p := range paths {
		insertPath(&root, strings.Split(p, "/"), p, label)
	}
	return root
}

func insertPath(node *TreeNode, parts []string, full string, label func(string) string) {
	if len(parts) == 1 {
		node.Children = append(node.Children, TreeNode{Text: label(full)})
		return
	}
	dir := parts[0] + "/"
	for i := range node.Children {
		if node.Children[i].Text == dir {
			insertPath(&node.Children[i], parts[1:], full, label)
			return
		}
	}
	node.Children = append(node.Children, TreeNode{Text: dir})
	insertPath(&node.Children[len(node.Children)-1], parts[1:], full, label)
}
