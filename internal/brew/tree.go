package brew

import (
	"strings"

	"brewdeck/internal/model"
)

// `brew deps --tree` draws four-column indentation with box-drawing
// connectors:
//
//	wget
//	├── libidn2
//	│   ├── libunistring
//	│   └── gettext
//	└── openssl@3
//
// treeIndentWidth is the width of one nesting level ("├── " or "│   ").
const treeIndentWidth = 4

// treeConnectors are the glyphs stripped to recover a node name, and the
// runes counted toward indentation.
var treeConnectors = []rune{'├', '└', '─', '│', ' '}

type treeLine struct {
	level int
	name  string
}

// ParseDependencyTree reconstructs a dependency tree from its ASCII
// rendering. Sibling order matches the source listing; the parser only
// moves forward through the lines, so the result is acyclic by
// construction. Empty input yields a nameless root with no children.
func ParseDependencyTree(text string) *model.DependencyNode {
	var lines []treeLine
	for _, raw := range strings.Split(text, "\n") {
		if strings.TrimSpace(raw) == "" {
			continue
		}
		lines = append(lines, splitTreeLine(raw))
	}
	if len(lines) == 0 {
		return &model.DependencyNode{}
	}

	root := &model.DependencyNode{Name: lines[0].name}
	parseChildren(lines, 1, 1, root)
	return root
}

// parseChildren consumes lines that are children of parent (exactly
// `level` deep), recursing into each child's own subtree before moving
// to the next sibling. A shallower or equal indent ends the frame;
// stray over-indented lines are skipped, matching the permissive policy
// for free-text formats. Returns the index of the first unconsumed line.
func parseChildren(lines []treeLine, idx, level int, parent *model.DependencyNode) int {
	for idx < len(lines) {
		line := lines[idx]
		switch {
		case line.level == level:
			child := &model.DependencyNode{Name: line.name}
			parent.Children = append(parent.Children, child)
			idx = parseChildren(lines, idx+1, level+1, child)
		case line.level > level:
			idx++
		default:
			return idx
		}
	}
	return idx
}

// splitTreeLine computes the indent level by counting leading connector
// runes and dividing by the indent width, and extracts the name by
// stripping connectors and surrounding whitespace.
func splitTreeLine(raw string) treeLine {
	count := 0
	for _, r := range raw {
		if !isConnector(r) {
			break
		}
		count++
	}
	name := strings.TrimFunc(raw, isConnector)
	return treeLine{level: count / treeIndentWidth, name: strings.TrimSpace(name)}
}

func isConnector(r rune) bool {
	for _, c := range treeConnectors {
		if r == c {
			return true
		}
	}
	return false
}
