package figma

import (
	"ticketsmith/internal/types"
)

// MaxWalkDepth bounds node-tree traversal. The API is supposed to return
// acyclic trees, but a malformed payload must not take the process down.
const MaxWalkDepth = 50

// Walk visits every node reachable from root in depth-first order, calling
// fn with the node and its depth. Traversal stops early if fn returns false.
// Depth is capped at MaxWalkDepth and revisited nodes (by pointer) are
// skipped, so a cyclic payload terminates.
func Walk(root *types.FrameNode, fn func(n *types.FrameNode, depth int) bool) {
	if root == nil || fn == nil {
		return
	}
	seen := make(map[*types.FrameNode]struct{})
	var walk func(n *types.FrameNode, depth int) bool
	walk = func(n *types.FrameNode, depth int) bool {
		if n == nil || depth > MaxWalkDepth {
			return true
		}
		if _, ok := seen[n]; ok {
			return true
		}
		seen[n] = struct{}{}
		if !fn(n, depth) {
			return false
		}
		for _, c := range n.Children {
			if !walk(c, depth+1) {
				return false
			}
		}
		return true
	}
	walk(root, 0)
}

// CountNodes returns the number of reachable nodes and the maximum depth
// observed, within the traversal guard.
func CountNodes(root *types.FrameNode) (count, maxDepth int) {
	Walk(root, func(_ *types.FrameNode, depth int) bool {
		count++
		if depth > maxDepth {
			maxDepth = depth
		}
		return true
	})
	return count, maxDepth
}

// CollectText gathers non-empty text content from the tree in visit order.
func CollectText(root *types.FrameNode, limit int) []string {
	var out []string
	Walk(root, func(n *types.FrameNode, _ int) bool {
		if n.Text != "" {
			out = append(out, n.Text)
		}
		return limit <= 0 || len(out) < limit
	})
	return out
}

// CollectNames gathers non-empty node names from the tree in visit order.
func CollectNames(root *types.FrameNode, limit int) []string {
	var out []string
	Walk(root, func(n *types.FrameNode, _ int) bool {
		if n.Name != "" {
			out = append(out, n.Name)
		}
		return limit <= 0 || len(out) < limit
	})
	return out
}

// CollectFills gathers distinct fill values from the tree in visit order.
func CollectFills(root *types.FrameNode, limit int) []string {
	seen := make(map[string]struct{})
	var out []string
	Walk(root, func(n *types.FrameNode, _ int) bool {
		for _, f := range n.Fills {
			if f == "" {
				continue
			}
			if _, ok := seen[f]; ok {
				continue
			}
			seen[f] = struct{}{}
			out = append(out, f)
			if limit > 0 && len(out) >= limit {
				return false
			}
		}
		return true
	})
	return out
}
