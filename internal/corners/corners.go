// Package corners implements the three click corner collection used to mark
// a postcard on the displayed scan.
package corners

import (
	"fmt"

	"k8s.io/klog/v2"

	"github.com/example/postcardscan/internal/geometry"
)

// Quad is a completed rectangle in both coordinate spaces. Index 0-2 are the
// committed corners, index 3 is the synthesized fourth corner.
type Quad struct {
	Display [4]geometry.Point
	Hires   [4]geometry.Point
}

// Collector accumulates corners in display and hires space. Both slices always
// have the same length and index i refers to the same physical corner.
type Collector struct {
	mapper  geometry.Mapper
	display []geometry.Point
	hires   []geometry.Point
}

// New returns an empty collector using m to derive hires positions.
func New(m geometry.Mapper) *Collector {
	return &Collector{
		mapper:  m,
		display: make([]geometry.Point, 0, 4),
		hires:   make([]geometry.Point, 0, 4),
	}
}

// SetMapper replaces the mapper and drops any collected corners, which would
// otherwise refer to the previous scan.
func (c *Collector) SetMapper(m geometry.Mapper) {
	c.mapper = m
	c.Clear()
}

// Mapper returns the mapper in use.
func (c *Collector) Mapper() geometry.Mapper { return c.mapper }

// Len returns the number of collected corners.
func (c *Collector) Len() int { return len(c.display) }

// Display returns a copy of the corners in display coordinates.
func (c *Collector) Display() []geometry.Point {
	return append([]geometry.Point(nil), c.display...)
}

// Hires returns a copy of the corners in hires coordinates.
func (c *Collector) Hires() []geometry.Point {
	return append([]geometry.Point(nil), c.hires...)
}

// Clear drops all corners.
func (c *Collector) Clear() {
	c.display = c.display[:0]
	c.hires = c.hires[:0]
}

// Constrain returns where a commit of display point p would land. With two
// corners placed the point is moved onto the perpendicular through corner 2,
// otherwise it is returned unchanged.
func (c *Collector) Constrain(p geometry.Point) geometry.Point {
	if len(c.display) != 2 {
		return p
	}
	q, err := geometry.PerpendicularFoot(c.display[0], c.display[1], p)
	if err != nil {
		return p
	}
	return q
}

// Commit adds display point p as the next corner. When the third corner is
// placed the fourth is synthesized and the completed rectangle returned; the
// set stays full until Clear or the next Commit, which starts a new set.
func (c *Collector) Commit(p geometry.Point) (*Quad, error) {
	if len(c.display) >= 3 {
		klog.V(1).Infof("starting new corner set, discarding %d stale corners", len(c.display))
		c.Clear()
	}
	switch len(c.display) {
	case 0:
		c.push(p)
		return nil, nil
	case 1:
		if c.mapper.ToHires(p).Near(c.hires[0], 1e-9) {
			return nil, fmt.Errorf("second corner coincides with first: %w", geometry.ErrDegenerateGeometry)
		}
		c.push(p)
		return nil, nil
	}

	q, err := geometry.PerpendicularFoot(c.display[0], c.display[1], p)
	if err != nil {
		return nil, err
	}
	c.push(q)
	c.display = append(c.display, geometry.ParallelogramCorner(c.display[0], c.display[1], c.display[2]))
	c.hires = append(c.hires, geometry.ParallelogramCorner(c.hires[0], c.hires[1], c.hires[2]))

	quad := &Quad{}
	copy(quad.Display[:], c.display)
	copy(quad.Hires[:], c.hires)
	klog.V(2).Infof("corners complete: hires %v", quad.Hires)
	return quad, nil
}

func (c *Collector) push(p geometry.Point) {
	c.display = append(c.display, p)
	c.hires = append(c.hires, c.mapper.ToHires(p))
}
