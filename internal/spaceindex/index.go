// Package spaceindex tracks occupied and free space inside a single container.
//
// The occupied set is authoritative. Free space is a list of disjoint boxes kept
// incrementally by guillotine splits on place and coalescing merges on remove;
// Rebuild recomputes it from the occupied set.
package spaceindex

import (
	"sort"

	"github.com/guttosm/cargo-service/internal/cargoerr"
	"github.com/guttosm/cargo-service/internal/geometry"
)

// Fit is a candidate position returned by FindFit.
type Fit struct {
	Orientation geometry.Dims
	Box         geometry.Box
}

// Index is the free-space index of one container. It is not safe for
// concurrent use; Registry serializes access.
type Index struct {
	bounds   geometry.Box
	occupied map[string]geometry.Box
	free     []geometry.Box
}

// New returns an empty index for a container of the given interior size.
func New(d geometry.Dims) *Index {
	b := geometry.Bounds(d)
	return &Index{
		bounds:   b,
		occupied: make(map[string]geometry.Box),
		free:     []geometry.Box{b},
	}
}

// Bounds returns the container interior.
func (ix *Index) Bounds() geometry.Box { return ix.bounds }

// Len returns the number of placed boxes.
func (ix *Index) Len() int { return len(ix.occupied) }

// FreeVolume returns the total free volume.
func (ix *Index) FreeVolume() int64 {
	var v int64
	for _, b := range ix.free {
		v += b.Volume()
	}
	return v
}

// FreeBoxes returns the free boxes in scan order.
func (ix *Index) FreeBoxes() []geometry.Box {
	out := append([]geometry.Box(nil), ix.free...)
	sortScanOrder(out)
	return out
}

// Occupied returns a copy of the placed boxes keyed by item id.
func (ix *Index) Occupied() map[string]geometry.Box {
	out := make(map[string]geometry.Box, len(ix.occupied))
	for id, b := range ix.occupied {
		out[id] = b
	}
	return out
}

// Lookup returns the box placed for itemID.
func (ix *Index) Lookup(itemID string) (geometry.Box, bool) {
	b, ok := ix.occupied[itemID]
	return b, ok
}

// Clone returns an independent copy, used for planning without holding the lock.
func (ix *Index) Clone() *Index {
	return &Index{
		bounds:   ix.bounds,
		occupied: ix.Occupied(),
		free:     append([]geometry.Box(nil), ix.free...),
	}
}

// FindFit returns the first free box and orientation that accommodate item.
// Free boxes are scanned by descending volume, then ascending start corner.
// With preferAccess set, the fitting box closest to the access face wins.
func (ix *Index) FindFit(item geometry.Dims, preferAccess bool) (Fit, bool) {
	if !item.Valid() {
		return Fit{}, false
	}
	boxes := ix.FreeBoxes()

	var best Fit
	found := false
	for _, fb := range boxes {
		o, ok := geometry.FitOrientation(item, fb)
		if !ok {
			continue
		}
		candidate := Fit{Orientation: o, Box: geometry.NewBox(fb.Start, o)}
		if !preferAccess {
			return candidate, true
		}
		if !found || closerToFace(candidate.Box, best.Box) {
			best, found = candidate, true
		}
	}
	return best, found
}

func closerToFace(a, b geometry.Box) bool {
	if a.Start.Depth != b.Start.Depth {
		return a.Start.Depth < b.Start.Depth
	}
	return a.Start.Height < b.Start.Height
}

// Check validates that box could be placed now without violating any invariant.
func (ix *Index) Check(itemID string, box geometry.Box) error {
	if box.Degenerate() {
		return cargoerr.Invalid("spaceindex.place", "box %s has no volume", box)
	}
	if !geometry.Contains(ix.bounds, box) {
		return cargoerr.Invalid("spaceindex.place", "box %s exceeds container bounds %s", box, ix.bounds)
	}
	if _, ok := ix.occupied[itemID]; ok {
		return cargoerr.Invalid("spaceindex.place", "item %q is already placed", itemID)
	}
	for id, other := range ix.occupied {
		if geometry.Overlaps(box, other) {
			return cargoerr.Geometry("spaceindex.place", "box %s overlaps item %q at %s", box, id, other)
		}
	}
	return nil
}

// Place records box as occupied by itemID and splits the free boxes it covers.
func (ix *Index) Place(itemID string, box geometry.Box) error {
	if err := ix.Check(itemID, box); err != nil {
		return err
	}
	ix.occupied[itemID] = box
	ix.free = carve(ix.free, box)
	return nil
}

// Remove frees the box of itemID and merges adjacent free boxes where their
// union is a box.
func (ix *Index) Remove(itemID string) (geometry.Box, error) {
	box, ok := ix.occupied[itemID]
	if !ok {
		return geometry.Box{}, cargoerr.NotFound("spaceindex.remove", "item %q is not placed", itemID)
	}
	delete(ix.occupied, itemID)
	ix.free = coalesce(append(ix.free, box))
	return box, nil
}

// Rebuild recomputes the free boxes from the occupied set.
func (ix *Index) Rebuild() {
	ids := make([]string, 0, len(ix.occupied))
	for id := range ix.occupied {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	free := []geometry.Box{ix.bounds}
	for _, id := range ids {
		free = carve(free, ix.occupied[id])
	}
	ix.free = coalesce(free)
}

func carve(free []geometry.Box, cut geometry.Box) []geometry.Box {
	out := make([]geometry.Box, 0, len(free)+2)
	for _, fb := range free {
		if !geometry.Overlaps(fb, cut) {
			out = append(out, fb)
			continue
		}
		out = append(out, geometry.Subtract(fb, cut)...)
	}
	return out
}

func coalesce(free []geometry.Box) []geometry.Box {
	for merged := true; merged; {
		merged = false
		for i := 0; i < len(free) && !merged; i++ {
			for j := i + 1; j < len(free); j++ {
				u, ok := geometry.Union(free[i], free[j])
				if !ok {
					continue
				}
				free[i] = u
				free = append(free[:j], free[j+1:]...)
				merged = true
				break
			}
		}
	}
	return free
}

func sortScanOrder(boxes []geometry.Box) {
	sort.SliceStable(boxes, func(i, j int) bool {
		vi, vj := boxes[i].Volume(), boxes[j].Volume()
		if vi != vj {
			return vi > vj
		}
		return boxes[i].Start.Less(boxes[j].Start)
	})
}
