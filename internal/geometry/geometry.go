// Package geometry provides the axis-aligned box model used for container packing.
//
// Coordinates follow the station convention: width runs left to right, depth runs
// from the access face (depth = 0) to the back wall, height runs floor to ceiling.
// All functions are pure.
package geometry

import "fmt"

// Dims holds the extent of a box along each axis.
type Dims struct {
	Width  int `json:"width" bson:"width"`
	Depth  int `json:"depth" bson:"depth"`
	Height int `json:"height" bson:"height"`
}

// Point is a corner of a box in container coordinates.
type Point struct {
	Width  int `json:"width" bson:"width"`
	Depth  int `json:"depth" bson:"depth"`
	Height int `json:"height" bson:"height"`
}

// Box is a half-open axis-aligned region [Start, End).
type Box struct {
	Start Point `json:"startCoordinates" bson:"start"`
	End   Point `json:"endCoordinates" bson:"end"`
}

// Valid reports whether every extent is positive.
func (d Dims) Valid() bool {
	return d.Width > 0 && d.Depth > 0 && d.Height > 0
}

// Volume returns width * depth * height.
func (d Dims) Volume() int64 {
	return int64(d.Width) * int64(d.Depth) * int64(d.Height)
}

func (d Dims) String() string {
	return fmt.Sprintf("%dx%dx%d", d.Width, d.Depth, d.Height)
}

// Add offsets p by d.
func (p Point) Add(d Dims) Point {
	return Point{Width: p.Width + d.Width, Depth: p.Depth + d.Depth, Height: p.Height + d.Height}
}

// Less orders points by width, then depth, then height.
func (p Point) Less(o Point) bool {
	if p.Width != o.Width {
		return p.Width < o.Width
	}
	if p.Depth != o.Depth {
		return p.Depth < o.Depth
	}
	return p.Height < o.Height
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d,%d)", p.Width, p.Depth, p.Height)
}

// NewBox builds the box that starts at origin and spans d.
func NewBox(origin Point, d Dims) Box {
	return Box{Start: origin, End: origin.Add(d)}
}

// Bounds returns the box covering a whole container interior of size d.
func Bounds(d Dims) Box {
	return NewBox(Point{}, d)
}

// Dims returns the extent of b.
func (b Box) Dims() Dims {
	return Dims{
		Width:  b.End.Width - b.Start.Width,
		Depth:  b.End.Depth - b.Start.Depth,
		Height: b.End.Height - b.Start.Height,
	}
}

// Volume returns the box volume, or zero for degenerate boxes.
func (b Box) Volume() int64 {
	d := b.Dims()
	if !d.Valid() {
		return 0
	}
	return d.Volume()
}

// Degenerate reports whether the box has no interior.
func (b Box) Degenerate() bool {
	return !b.Dims().Valid()
}

func (b Box) String() string {
	return b.Start.String() + "-" + b.End.String()
}

// Fits reports whether some axis permutation of item fits inside free.
func Fits(item Dims, free Box) bool {
	_, ok := FitOrientation(item, free)
	return ok
}

// FitOrientation returns the first orientation of item, in Orientations order,
// that fits inside free.
func FitOrientation(item Dims, free Box) (Dims, bool) {
	space := free.Dims()
	for _, o := range Orientations(item) {
		if o.Width <= space.Width && o.Depth <= space.Depth && o.Height <= space.Height {
			return o, true
		}
	}
	return Dims{}, false
}

// Orientations returns the distinct axis permutations of d. The identity
// orientation always comes first and the order is stable.
func Orientations(d Dims) []Dims {
	candidates := [6]Dims{
		{d.Width, d.Depth, d.Height},
		{d.Width, d.Height, d.Depth},
		{d.Depth, d.Width, d.Height},
		{d.Depth, d.Height, d.Width},
		{d.Height, d.Width, d.Depth},
		{d.Height, d.Depth, d.Width},
	}
	out := make([]Dims, 0, len(candidates))
	for _, c := range candidates {
		dup := false
		for _, seen := range out {
			if seen == c {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, c)
		}
	}
	return out
}

// IsOrientationOf reports whether got is an axis permutation of d.
func IsOrientationOf(got, d Dims) bool {
	for _, o := range Orientations(d) {
		if o == got {
			return true
		}
	}
	return false
}

// Overlaps reports whether a and b share interior volume. Touching faces do not overlap.
func Overlaps(a, b Box) bool {
	return a.Start.Width < b.End.Width && b.Start.Width < a.End.Width &&
		a.Start.Depth < b.End.Depth && b.Start.Depth < a.End.Depth &&
		a.Start.Height < b.End.Height && b.Start.Height < a.End.Height
}

// Contains reports whether inner lies completely within outer.
func Contains(outer, inner Box) bool {
	return inner.Start.Width >= outer.Start.Width && inner.End.Width <= outer.End.Width &&
		inner.Start.Depth >= outer.Start.Depth && inner.End.Depth <= outer.End.Depth &&
		inner.Start.Height >= outer.Start.Height && inner.End.Height <= outer.End.Height
}

// Intersection returns the common region of a and b and whether it has interior.
func Intersection(a, b Box) (Box, bool) {
	out := Box{
		Start: Point{
			Width:  max(a.Start.Width, b.Start.Width),
			Depth:  max(a.Start.Depth, b.Start.Depth),
			Height: max(a.Start.Height, b.Start.Height),
		},
		End: Point{
			Width:  min(a.End.Width, b.End.Width),
			Depth:  min(a.End.Depth, b.End.Depth),
			Height: min(a.End.Height, b.End.Height),
		},
	}
	return out, !out.Degenerate()
}

// FacesOverlap reports whether the projections of a and b onto the
// width/height plane share area, i.e. one sits in front of the other.
func FacesOverlap(a, b Box) bool {
	return a.Start.Width < b.End.Width && b.Start.Width < a.End.Width &&
		a.Start.Height < b.End.Height && b.Start.Height < a.End.Height
}

// Subtract returns disjoint boxes covering free minus cut. When cut is anchored at
// the start corner of free the result is the guillotine split: the slab beyond the
// far width edge, then the slab beyond the far depth edge, then the slab above.
func Subtract(free, cut Box) []Box {
	c, ok := Intersection(free, cut)
	if !ok {
		return []Box{free}
	}
	pieces := []Box{
		// width slabs span the full depth and height of free
		{Start: Point{c.End.Width, free.Start.Depth, free.Start.Height}, End: free.End},
		{Start: free.Start, End: Point{c.Start.Width, free.End.Depth, free.End.Height}},
		// depth slabs are clipped to the cut's width
		{Start: Point{c.Start.Width, c.End.Depth, free.Start.Height}, End: Point{c.End.Width, free.End.Depth, free.End.Height}},
		{Start: Point{c.Start.Width, free.Start.Depth, free.Start.Height}, End: Point{c.End.Width, c.Start.Depth, free.End.Height}},
		// height slabs are clipped to the cut's width and depth
		{Start: Point{c.Start.Width, c.Start.Depth, c.End.Height}, End: Point{c.End.Width, c.End.Depth, free.End.Height}},
		{Start: Point{c.Start.Width, c.Start.Depth, free.Start.Height}, End: Point{c.End.Width, c.End.Depth, c.Start.Height}},
	}
	out := pieces[:0]
	for _, p := range pieces {
		if !p.Degenerate() {
			out = append(out, p)
		}
	}
	return out
}

// Union returns the box covering a and b when their union is itself a box.
func Union(a, b Box) (Box, bool) {
	sameW := a.Start.Width == b.Start.Width && a.End.Width == b.End.Width
	sameD := a.Start.Depth == b.Start.Depth && a.End.Depth == b.End.Depth
	sameH := a.Start.Height == b.Start.Height && a.End.Height == b.End.Height
	switch {
	case sameD && sameH && (a.End.Width == b.Start.Width || b.End.Width == a.Start.Width):
	case sameW && sameH && (a.End.Depth == b.Start.Depth || b.End.Depth == a.Start.Depth):
	case sameW && sameD && (a.End.Height == b.Start.Height || b.End.Height == a.Start.Height):
	default:
		return Box{}, false
	}
	return Box{
		Start: Point{min(a.Start.Width, b.Start.Width), min(a.Start.Depth, b.Start.Depth), min(a.Start.Height, b.Start.Height)},
		End:   Point{max(a.End.Width, b.End.Width), max(a.End.Depth, b.End.Depth), max(a.End.Height, b.End.Height)},
	}, true
}
