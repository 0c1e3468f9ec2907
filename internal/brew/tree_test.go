package brew

import (
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"brewdeck/internal/model"
)

func TestParseDependencyTreeThreeLevels(t *testing.T) {
	input := strings.Join([]string{
		"wget",
		"├── libidn2",
		"│   ├── libunistring",
		"│   └── gettext",
		"│       └── libiconv",
		"├── openssl@3",
		"│   └── ca-certificates",
		"└── zlib",
	}, "\n")

	root := ParseDependencyTree(input)
	require.Equal(t, "wget", root.Name)
	require.Len(t, root.Children, 3)

	assert.Equal(t, "libidn2", root.Children[0].Name)
	assert.Equal(t, "openssl@3", root.Children[1].Name)
	assert.Equal(t, "zlib", root.Children[2].Name)

	libidn2 := root.Children[0]
	require.Len(t, libidn2.Children, 2)
	assert.Equal(t, "libunistring", libidn2.Children[0].Name)
	assert.Equal(t, "gettext", libidn2.Children[1].Name)

	gettext := libidn2.Children[1]
	require.Len(t, gettext.Children, 1)
	assert.Equal(t, "libiconv", gettext.Children[0].Name)

	openssl := root.Children[1]
	require.Len(t, openssl.Children, 1)
	assert.Equal(t, "ca-certificates", openssl.Children[0].Name)
	assert.Empty(t, root.Children[2].Children)
}

func TestParseDependencyTreeEmptyInput(t *testing.T) {
	root := ParseDependencyTree("")
	require.NotNil(t, root)
	assert.Empty(t, root.Name)
	assert.Empty(t, root.Children)

	root = ParseDependencyTree("\n  \n")
	assert.Empty(t, root.Children)
}

func TestParseDependencyTreeSingleLine(t *testing.T) {
	root := ParseDependencyTree("jq\n")
	assert.Equal(t, "jq", root.Name)
	assert.Empty(t, root.Children)
}

func TestParseDependencyTreeSkipsOverIndentedLine(t *testing.T) {
	// A jump of two levels cannot be a child of anything; the line is
	// skipped and parsing continues.
	input := "top\n│   │   └── stray\n└── real\n"
	root := ParseDependencyTree(input)
	require.Len(t, root.Children, 1)
	assert.Equal(t, "real", root.Children[0].Name)
}

// renderTree draws a node the way brew does, for round-trip testing.
func renderTree(node *model.DependencyNode, prefix string, last bool, depth int, sb *strings.Builder) {
	if depth == 0 {
		sb.WriteString(node.Name + "\n")
	} else {
		connector := "├── "
		if last {
			connector = "└── "
		}
		sb.WriteString(prefix + connector + node.Name + "\n")
		if last {
			prefix += "    "
		} else {
			prefix += "│   "
		}
	}
	for i, child := range node.Children {
		renderTree(child, prefix, i == len(node.Children)-1, depth+1, sb)
	}
}

func genTree(depth int) gopter.Gen {
	name := gen.RegexMatch(`[a-z][a-z0-9@.-]{0,12}`)
	if depth <= 0 {
		return name.Map(func(n string) *model.DependencyNode {
			return &model.DependencyNode{Name: n}
		})
	}
	return gopter.CombineGens(
		name,
		gen.SliceOfN(2, genTree(depth-1)),
	).Map(func(vals []interface{}) *model.DependencyNode {
		node := &model.DependencyNode{Name: vals[0].(string)}
		for _, c := range vals[1].([]*model.DependencyNode) {
			node.Children = append(node.Children, c)
		}
		return node
	})
}

func TestParseDependencyTreeRoundTripProperty(t *testing.T) {
	params := gopter.DefaultTestParameters()
	params.MinSuccessfulTests = 50
	properties := gopter.NewProperties(params)

	properties.Property("render then parse reconstructs the tree", prop.ForAll(
		func(tree *model.DependencyNode) bool {
			var sb strings.Builder
			renderTree(tree, "", false, 0, &sb)
			return treesEqual(tree, ParseDependencyTree(sb.String()))
		},
		genTree(3),
	))

	properties.TestingRun(t)
}

func treesEqual(a, b *model.DependencyNode) bool {
	if a.Name != b.Name || len(a.Children) != len(b.Children) {
		return false
	}
	for i := range a.Children {
		if !treesEqual(a.Children[i], b.Children[i]) {
			return false
		}
	}
	return true
}
