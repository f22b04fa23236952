package knot

import "fmt"

// Index addresses a knot by path and position on that path
type Index struct {
	Path int `yaml:"path" json:"path"`
	Knot int `yaml:"knot" json:"knot"`
}

// String renders the index as P<path>K<knot>
func (i Index) String() string {
	return fmt.Sprintf("P%dK%d", i.Path, i.Knot)
}

// Less orders by path, then knot (canonical link order)
func (i Index) Less(o Index) bool {
	if i.Path != o.Path {
		return i.Path < o.Path
	}
	return i.Knot < o.Knot
}
