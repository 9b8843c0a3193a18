package engine

import (
	"sort"

	"betmetric/internal/models"
)

// TreeNode is a summary with its visible children.
type TreeNode struct {
	Summary
	Children []*TreeNode `json:"children"`
}

// BuildForest arranges the analysis into a forest. LOST bets are hidden and
// so is everything beneath them. Roots are ordered by creation time; children
// keep snapshot order.
func BuildForest(a *Analysis) []*TreeNode {
	newNode := func(id string) *TreeNode {
		s, _ := a.Summary(id)
		return &TreeNode{Summary: s, Children: []*TreeNode{}}
	}
	visible := func(id string) bool {
		s, ok := a.Summary(id)
		return ok && s.Status != models.BetStatusLost
	}

	forest := make([]*TreeNode, 0)
	for _, id := range a.Index.Roots() {
		if visible(id) {
			forest = append(forest, newNode(id))
		}
	}
	sort.SliceStable(forest, func(i, j int) bool {
		return forest[i].CreatedAt.Before(forest[j].CreatedAt)
	})

	seen := make(map[string]bool, a.Index.Len())
	stack := make([]*TreeNode, 0, len(forest))
	for _, root := range forest {
		seen[root.ID] = true
		stack = append(stack, root)
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		for _, child := range a.Index.Children(n.ID) {
			if seen[child] || !visible(child) {
				continue
			}
			seen[child] = true
			cn := newNode(child)
			n.Children = append(n.Children, cn)
			stack = append(stack, cn)
		}
	}

	return forest
}

// FindSubtree searches the forest depth-first for id.
func FindSubtree(forest []*TreeNode, id string) *TreeNode {
	stack := make([]*TreeNode, 0, len(forest))
	for i := len(forest) - 1; i >= 0; i-- {
		stack = append(stack, forest[i])
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n.ID == id {
			return n
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
	return nil
}
