package figma

import (
	"testing"

	"ticketsmith/internal/types"
)

func TestWalkVisitsAllNodes(t *testing.T) {
	root := &types.FrameNode{
		Name: "Frame",
		Children: []*types.FrameNode{
			{Name: "Button", Children: []*types.FrameNode{{Name: "Label", Text: "Click me"}}},
			{Name: "Input"},
		},
	}
	count, depth := CountNodes(root)
	if count != 4 {
		t.Fatalf("expected 4 nodes, got %d", count)
	}
	if depth != 2 {
		t.Fatalf("expected depth 2, got %d", depth)
	}
}

func TestWalkTerminatesOnCycle(t *testing.T) {
	a := &types.FrameNode{Name: "a"}
	b := &types.FrameNode{Name: "b"}
	a.Children = []*types.FrameNode{b}
	b.Children = []*types.FrameNode{a}

	count, _ := CountNodes(a)
	if count != 2 {
		t.Fatalf("expected 2 distinct nodes, got %d", count)
	}
}

func TestWalkDepthLimit(t *testing.T) {
	root := &types.FrameNode{Name: "n0"}
	cur := root
	for i := 1; i < MaxWalkDepth+20; i++ {
		next := &types.FrameNode{Name: "n"}
		cur.Children = []*types.FrameNode{next}
		cur = next
	}
	_, depth := CountNodes(root)
	if depth > MaxWalkDepth {
		t.Fatalf("depth %d exceeds guard %d", depth, MaxWalkDepth)
	}
}

func TestWalkNilRoot(t *testing.T) {
	count, depth := CountNodes(nil)
	if count != 0 || depth != 0 {
		t.Fatalf("expected zero counts for nil root, got %d/%d", count, depth)
	}
}

func TestCollectFillsDeduplicates(t *testing.T) {
	root := &types.FrameNode{
		Name:  "Frame",
		Fills: []string{"#fff", "#000"},
		Children: []*types.FrameNode{
			{Name: "Child", Fills: []string{"#fff", "#f00"}},
		},
	}
	fills := CollectFills(root, 0)
	if len(fills) != 3 {
		t.Fatalf("expected 3 distinct fills, got %v", fills)
	}
}
