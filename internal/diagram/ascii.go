package diagram

import (
	"fmt"
	"strings"
)

// TreeNode is one element of a drainage tree, with its upstream branches as children
type TreeNode struct {
	Label    string
	Children []*TreeNode
	Repeat   bool // already drawn under another branch; children are not repeated
}

// BarData holds one bar of an ASCII load chart
type BarData struct {
	Label    string
	Load     float64 // accumulated load (UHC)
	Capacity float64 // capacity of the suggested pipe (UHC), 0 if none
}

// DrawASCIINetworkTree renders drainage trees from each sink up to the fixtures
func DrawASCIINetworkTree(title string, roots []*TreeNode) string {
	var sb strings.Builder

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n", strings.Repeat("─", len([]rune(title)))))

	for _, root := range roots {
		sb.WriteString(fmt.Sprintf("  %s\n", root.Label))
		drawChildren(&sb, root, "  ")
	}
	return sb.String()
}

func drawChildren(sb *strings.Builder, n *TreeNode, prefix string) {
	if n.Repeat {
		return
	}
	for i, child := range n.Children {
		branch, next := "├── ", "│   "
		if i == len(n.Children)-1 {
			branch, next = "└── ", "    "
		}
		label := child.Label
		if child.Repeat {
			label += " ↑"
		}
		sb.WriteString(prefix + branch + label + "\n")
		drawChildren(sb, child, prefix+next)
	}
}

// DrawASCIILoadBars creates a horizontal bar chart of loads against pipe capacity.
// '█' is load, '░' is the spare capacity of the suggested pipe.
func DrawASCIILoadBars(title string, bars []BarData) string {
	var sb strings.Builder

	width := 40
	labelWidth := 0
	maxValue := 0.0
	for _, b := range bars {
		labelWidth = max(labelWidth, len([]rune(b.Label)))
		maxValue = max(maxValue, b.Load, b.Capacity)
	}

	sb.WriteString("\n")
	sb.WriteString(fmt.Sprintf("  %s\n", title))
	sb.WriteString(fmt.Sprintf("  %s\n\n", strings.Repeat("─", len([]rune(title)))))

	if maxValue <= 0 {
		return sb.String()
	}
	scale := float64(width) / maxValue

	for _, b := range bars {
		loadLen := int(b.Load * scale)
		spareLen := 0
		if b.Capacity > b.Load {
			spareLen = int(b.Capacity*scale) - loadLen
		}
		pad := strings.Repeat(" ", labelWidth-len([]rune(b.Label)))
		sb.WriteString(fmt.Sprintf("  %s%s │%s%s %.1f\n",
			b.Label, pad,
			strings.Repeat("█", loadLen),
			strings.Repeat("░", spareLen),
			b.Load))
	}
	return sb.String()
}
