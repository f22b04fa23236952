// Package level builds a knot graph and per-knot board metadata from a
// YAML level description. A loaded level is immutable for the session
package level

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/knot-runner/knot"
	"github.com/lixenwraith/knot-runner/vmath"
)

// ErrInvalidLevel wraps every load-time rejection
var ErrInvalidLevel = errors.New("level: invalid level")

// Kind is the board role of a knot
type Kind string

const (
	KindPlain Kind = "plain"
	KindBlue  Kind = "blue"
	KindRed   Kind = "red"
	KindStar  Kind = "star"
)

// defaultCoins is the landing reward when a knot does not set one
var defaultCoins = map[Kind]int{
	KindPlain: 0,
	KindBlue:  3,
	KindRed:   -3,
	KindStar:  0,
}

// Meta is the board data attached to a knot
type Meta struct {
	Kind         Kind
	Coins        int
	PauseOnEntry bool
	// SkipStepCount is authored data only; traversal never reads it
	SkipStepCount int
}

// Level is a validated, immutable board
type Level struct {
	Name  string
	Start knot.Index
	Graph *knot.Graph

	meta      map[knot.Index]Meta
	junctions []knot.Index
}

// Meta returns the metadata of idx; linked knots share the canonical member's entry
func (l *Level) Meta(idx knot.Index) Meta {
	if m, ok := l.meta[l.Graph.Canonical(idx)]; ok {
		return m
	}
	return Meta{Kind: KindPlain}
}

// Junctions returns the canonical knot of every link set that offers a branch choice
func (l *Level) Junctions() []knot.Index {
	return append([]knot.Index(nil), l.junctions...)
}

// KnotTotal returns the number of authored knots across all paths
func (l *Level) KnotTotal() int {
	n := 0
	for p := 0; p < l.Graph.PathCount(); p++ {
		n += l.Graph.KnotCount(p)
	}
	return n
}

// Load reads and parses a level file
func Load(path string) (*Level, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read level %s: %w", path, err)
	}
	lvl, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("load level %s: %w", path, err)
	}
	return lvl, nil
}

// Parse decodes and validates a level document
func Parse(data []byte) (*Level, error) {
	var doc levelFile
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: decode: %w", ErrInvalidLevel, err)
	}
	return build(&doc)
}

func build(doc *levelFile) (*Level, error) {
	if len(doc.Paths) == 0 {
		return nil, fmt.Errorf("%w: no paths", ErrInvalidLevel)
	}

	paths := make([]knot.Path, len(doc.Paths))
	authored := make(map[knot.Index]Meta)
	for p, fp := range doc.Paths {
		knots := make([]vmath.Vec3F, len(fp.Knots))
		for k, fk := range fp.Knots {
			knots[k] = vmath.Vec3F{X: fk.Pos[0], Y: fk.Pos[1], Z: fk.Pos[2]}
			m, err := fk.meta()
			if err != nil {
				return nil, fmt.Errorf("%w: path %d knot %d: %w", ErrInvalidLevel, p, k, err)
			}
			authored[knot.Index{Path: p, Knot: k}] = m
		}
		paths[p] = knot.Path{Knots: knots, Closed: fp.Closed}
	}

	links := make([][]knot.Index, len(doc.Links))
	for i, group := range doc.Links {
		links[i] = make([]knot.Index, len(group))
		for j, ref := range group {
			links[i][j] = knot.Index{Path: ref[0], Knot: ref[1]}
		}
	}

	g, err := knot.NewGraph(paths, links)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidLevel, err)
	}

	lvl := &Level{
		Name:  doc.Name,
		Graph: g,
		meta:  make(map[knot.Index]Meta, len(authored)),
	}
	if doc.Start != nil {
		lvl.Start = knot.Index{Path: doc.Start[0], Knot: doc.Start[1]}
		if !g.Valid(lvl.Start) {
			return nil, fmt.Errorf("%w: start %s does not exist", ErrInvalidLevel, lvl.Start)
		}
	}

	// Only canonical members keep metadata; linked knots resolve through Canonical
	seen := make(map[knot.Index]bool)
	for idx, m := range authored {
		c := g.Canonical(idx)
		if c == idx {
			lvl.meta[idx] = m
		}
		if links := g.Links(idx); len(links) > 0 && !seen[c] {
			seen[c] = true
			if isJunction(g, links) {
				lvl.junctions = append(lvl.junctions, c)
			}
		}
	}
	sortIndices(lvl.junctions)
	return lvl, nil
}

// isJunction mirrors the resolver rule: more than one continuing member
func isJunction(g *knot.Graph, links []knot.Index) bool {
	n := 0
	for _, l := range links {
		if !g.IsTerminal(l) {
			n++
		}
	}
	return n > 1
}

func sortIndices(s []knot.Index) {
	sort.Slice(s, func(i, j int) bool { return s[i].Less(s[j]) })
}
