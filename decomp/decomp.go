package decomp

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/banshee-data/corridor/geo"
)

// DefaultWorkers is the number of dilation goroutines a decomposition uses
// unless overridden with SetWorkers.
const DefaultWorkers = 4

// EllipsoidDecomp decomposes a path into a safe flight corridor: one
// ellipsoid and one polyhedron per segment, in path order, plus the linear
// constraints derived from them.
//
// Configure obstacles and boxes first, then call Decompose. Results persist
// until the next Decompose replaces them; accessors hand out copies.
// EllipsoidDecomp is not safe for concurrent use by multiple goroutines.
type EllipsoidDecomp struct {
	obs       geo.ObstacleSet
	localBox  geo.Vec
	globalMin geo.Vec
	globalMax geo.Vec
	workers   int

	path        []geo.Vec
	pairedOnly  bool
	ellipsoids  []geo.Ellipsoid
	polyhedrons []geo.Polyhedron
}

// NewEllipsoidDecomp creates a decomposer with no global bounding box.
func NewEllipsoidDecomp() *EllipsoidDecomp {
	return &EllipsoidDecomp{workers: DefaultWorkers}
}

// NewEllipsoidDecompWithBounds creates a decomposer whose results are
// clipped to the axis-aligned box from origin to origin+size. Passing a
// box whose corners both work out to the zero vector leaves the global
// bound unset.
func NewEllipsoidDecompWithBounds(origin, size geo.Vec) *EllipsoidDecomp {
	return &EllipsoidDecomp{
		workers:   DefaultWorkers,
		globalMin: origin.Clone(),
		globalMax: origin.Add(size),
	}
}

// SetObstacles binds the obstacle cloud every segment dilates against.
// The slice is shared read-only with the dilation workers; callers must
// not mutate it while Decompose runs.
func (d *EllipsoidDecomp) SetObstacles(obs geo.ObstacleSet) { d.obs = obs }

// SetLocalBox sets the per-segment local search box half-extents in the
// segment frame. Zero norm disables local bounding.
func (d *EllipsoidDecomp) SetLocalBox(box geo.Vec) { d.localBox = box.Clone() }

// SetWorkers overrides the dilation worker count. Values below 1 are
// ignored.
func (d *EllipsoidDecomp) SetWorkers(n int) {
	if n >= 1 {
		d.workers = n
	}
}

// Decompose slices path into segments, fits an ellipsoid and polyhedron
// around each in parallel, and clips every polyhedron to the global
// bounding box when one is set.
//
// With pairedOnly false, segment i joins path[i] and path[i+1]. With
// pairedOnly true the path is read as independent pairs — segment i joins
// path[2i] and path[2i+1] — and an odd trailing waypoint is dropped.
//
// On success all previous results are replaced. On failure the error
// reports every failed segment and previous results are left in place.
func (d *EllipsoidDecomp) Decompose(path []geo.Vec, offset float64, pairedOnly bool) error {
	if len(path) < 2 {
		return fmt.Errorf("decompose: path needs at least 2 waypoints, got %d", len(path))
	}

	nseg := len(path) - 1
	if pairedOnly {
		nseg = len(path) / 2
		if len(path)%2 != 0 {
			log.Printf("[EllipsoidDecomp] paired path has odd length %d; trailing waypoint dropped", len(path))
		}
	}

	segs := make([]*LineSegment, nseg)
	idx := 0
	for i := 0; i < nseg; i++ {
		seg := NewLineSegment(path[idx], path[idx+1])
		seg.SetLocalBox(d.localBox)
		seg.SetObstacleStore(d.obs)
		segs[i] = seg
		if pairedOnly {
			idx++
		}
		idx++
	}

	// Each worker owns a disjoint contiguous block of segments, writing
	// only its own result and error slots. That single-writer-per-slot
	// discipline is the whole synchronization story; the join barrier
	// below is the only primitive.
	segErrs := make([]error, nseg)
	var wg sync.WaitGroup
	for _, r := range partitionRanges(nseg, d.workers) {
		if r.empty() {
			continue
		}
		wg.Add(1)
		go func(r indexRange) {
			defer wg.Done()
			for i := r.start; i < r.end; i++ {
				if err := segs[i].Dilate(offset); err != nil {
					segErrs[i] = fmt.Errorf("segment %d: %w", i, err)
				}
			}
		}(r)
	}
	wg.Wait()

	if err := errors.Join(segErrs...); err != nil {
		return fmt.Errorf("decompose: %w", err)
	}

	d.path = geo.CloneVecs(path)
	d.pairedOnly = pairedOnly
	d.ellipsoids = make([]geo.Ellipsoid, nseg)
	d.polyhedrons = make([]geo.Polyhedron, nseg)
	for i, seg := range segs {
		d.ellipsoids[i] = seg.Ellipsoid()
		d.polyhedrons[i] = seg.Polyhedron()
	}

	if !d.globalMin.IsZero() || !d.globalMax.IsZero() {
		for i := range d.polyhedrons {
			d.addGlobalBox(&d.polyhedrons[i])
		}
	}
	return nil
}

// Path returns a copy of the path used for the current results.
func (d *EllipsoidDecomp) Path() []geo.Vec { return geo.CloneVecs(d.path) }

// Ellipsoids returns copies of the per-segment ellipsoids in path order.
func (d *EllipsoidDecomp) Ellipsoids() []geo.Ellipsoid {
	out := make([]geo.Ellipsoid, len(d.ellipsoids))
	for i, e := range d.ellipsoids {
		out[i] = e.Clone()
	}
	return out
}

// Polyhedrons returns copies of the per-segment polyhedra in path order,
// reflecting any global-box clipping and tightening applied so far.
func (d *EllipsoidDecomp) Polyhedrons() []geo.Polyhedron {
	out := make([]geo.Polyhedron, len(d.polyhedrons))
	for i, p := range d.polyhedrons {
		out[i] = p.Clone()
	}
	return out
}

// Constraints derives one linear system A·x ≤ b per polyhedron, anchored
// at the midpoint of the polyhedron's originating segment so every row is
// oriented towards the free side.
//
// With clearance zero this is a pure read and repeat calls return identical
// systems. With clearance positive every stored polyhedron is also
// tightened in place by that distance, so the derived constraints and any
// later reads see the shrunk faces; repeated calls keep shrinking.
func (d *EllipsoidDecomp) Constraints(clearance float64) []geo.LinearConstraint {
	out := make([]geo.LinearConstraint, len(d.polyhedrons))
	idx := 0
	for i := range d.polyhedrons {
		ptInside := geo.Mid(d.path[idx], d.path[idx+1])
		out[i] = geo.NewLinearConstraint(ptInside, d.polyhedrons[i].Planes, clearance)
		if clearance > 0 {
			d.polyhedrons[i].Tighten(ptInside, clearance)
		}
		if d.pairedOnly {
			idx++
		}
		idx++
	}
	return out
}

// TightenPolyhedron shrinks stored polyhedron i by distance as seen from
// ptInside, outside the regular constraint pass.
func (d *EllipsoidDecomp) TightenPolyhedron(i int, ptInside geo.Vec, distance float64) error {
	if i < 0 || i >= len(d.polyhedrons) {
		return fmt.Errorf("tighten polyhedron: index %d out of range [0,%d)", i, len(d.polyhedrons))
	}
	d.polyhedrons[i].Tighten(ptInside, distance)
	return nil
}

// addGlobalBox appends one face per side of the global bounding box, axis
// aligned, anchored on the box surface with the other coordinates zero.
func (d *EllipsoidDecomp) addGlobalBox(p *geo.Polyhedron) {
	min, max := d.globalMin, d.globalMax
	switch len(min) {
	case 2:
		p.Add(geo.NewHyperplane(geo.Vec{max[0], 0}, geo.Vec{1, 0}))
		p.Add(geo.NewHyperplane(geo.Vec{min[0], 0}, geo.Vec{-1, 0}))
		p.Add(geo.NewHyperplane(geo.Vec{0, max[1]}, geo.Vec{0, 1}))
		p.Add(geo.NewHyperplane(geo.Vec{0, min[1]}, geo.Vec{0, -1}))
	case 3:
		p.Add(geo.NewHyperplane(geo.Vec{0, 0, max[2]}, geo.Vec{0, 0, 1}))
		p.Add(geo.NewHyperplane(geo.Vec{0, 0, min[2]}, geo.Vec{0, 0, -1}))
		p.Add(geo.NewHyperplane(geo.Vec{max[0], 0, 0}, geo.Vec{1, 0, 0}))
		p.Add(geo.NewHyperplane(geo.Vec{min[0], 0, 0}, geo.Vec{-1, 0, 0}))
		p.Add(geo.NewHyperplane(geo.Vec{0, max[1], 0}, geo.Vec{0, 1, 0}))
		p.Add(geo.NewHyperplane(geo.Vec{0, min[1], 0}, geo.Vec{0, -1, 0}))
	}
}
