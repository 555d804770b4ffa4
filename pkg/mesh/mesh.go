// Package mesh reads Gmsh MSH files and renders wireframe previews of
// simulation meshes to PNG.
package mesh

import (
	"sort"
	"strings"
)

// Node is a mesh vertex.
type Node struct {
	ID      int
	X, Y, Z float64
}

// Gmsh element type codes used for edge extraction.
const (
	elemLine     = 1
	elemTriangle = 2
	elemQuad     = 3
	elemTet      = 4
	elemHex      = 5
	elemPrism    = 6
	elemPyramid  = 7
	elemPoint    = 15
)

// Element is one mesh element with its physical group tag.
type Element struct {
	ID       int
	Type     int
	Physical int
	Nodes    []int
}

// edgeTable maps element types to node-index pairs forming edges.
var edgeTable = map[int][][2]int{
	elemLine:     {{0, 1}},
	elemTriangle: {{0, 1}, {1, 2}, {2, 0}},
	elemQuad:     {{0, 1}, {1, 2}, {2, 3}, {3, 0}},
	elemTet:      {{0, 1}, {0, 2}, {0, 3}, {1, 2}, {1, 3}, {2, 3}},
	elemHex: {
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{4, 5}, {5, 6}, {6, 7}, {7, 4},
		{0, 4}, {1, 5}, {2, 6}, {3, 7},
	},
	elemPrism: {
		{0, 1}, {1, 2}, {2, 0},
		{3, 4}, {4, 5}, {5, 3},
		{0, 3}, {1, 4}, {2, 5},
	},
	elemPyramid: {
		{0, 1}, {1, 2}, {2, 3}, {3, 0},
		{0, 4}, {1, 4}, {2, 4}, {3, 4},
	},
}

// Edges returns the node ID pairs forming the element's wireframe.
func (e Element) Edges() [][2]int {
	pairs, ok := edgeTable[e.Type]
	if !ok {
		return nil
	}
	out := make([][2]int, 0, len(pairs))
	for _, p := range pairs {
		if p[0] < len(e.Nodes) && p[1] < len(e.Nodes) {
			out = append(out, [2]int{e.Nodes[p[0]], e.Nodes[p[1]]})
		}
	}
	return out
}

// Group is a named physical group.
type Group struct {
	Tag  int
	Dim  int
	Name string
}

// Mesh is a parsed MSH file.
type Mesh struct {
	Nodes    map[int]Node
	Elements []Element
	Groups   map[int]Group // physical tag -> group
}

// GroupNames returns all physical group names, sorted.
func (m *Mesh) GroupNames() []string {
	out := make([]string, 0, len(m.Groups))
	for _, g := range m.Groups {
		out = append(out, g.Name)
	}
	sort.Strings(out)
	return out
}

// MatchGroups returns the tags of groups whose name contains any of
// the given substrings, sorted by tag.
func (m *Mesh) MatchGroups(patterns []string) []int {
	var tags []int
	for tag, g := range m.Groups {
		for _, p := range patterns {
			if strings.Contains(g.Name, p) {
				tags = append(tags, tag)
				break
			}
		}
	}
	sort.Ints(tags)
	return tags
}
