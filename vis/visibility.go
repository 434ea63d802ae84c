// SPDX-License-Identifier: GPL-2.0-or-later

// Package vis computes the potentially visible set of a BSP tree: for every
// ordered pair of leafs whether some point of the first can see some point
// of the second.
package vis

import (
	"runtime"
	"sync"
	"time"

	"github.com/chewxy/math32"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"ctrvis/bsp"
	"ctrvis/conlog"
	"ctrvis/math/bbox"
	"ctrvis/math/ray"
	"ctrvis/math/vec"
	"ctrvis/quadblock"
)

var (
	ErrInvalidTree = errors.New("bsp tree is empty or was never generated")

	log = conlog.New("vis")
)

const (
	// Occluders must be at least this much in front of the target box.
	hitMargin float32 = 0.01
	// Hits on the source leaf this close to the ray origin belong to the
	// quadblock the sample lies on.
	originSlack float32 = 0.01
)

// Result is the outcome of one Generate run.
type Result struct {
	RunID uuid.UUID
	// Row i holds what leaf i sees, column j is leaf j. Leafs are numbered
	// in bsp.Tree.Leaves order.
	Matrix   *BitMatrix
	Settings Settings

	Leaves      int
	SamplePairs int64
	Rays        int64
	Duration    time.Duration
}

// Visible reports whether leaf to is visible from leaf from.
func (r *Result) Visible(from, to int) bool {
	return r.Matrix.Get(to, from)
}

// VisibleLeaves lists the leafs visible from leaf from in ascending order.
func (r *Result) VisibleLeaves(from int) []int {
	var l []int
	for i, v := range r.Matrix.Row(from) {
		if v {
			l = append(l, i)
		}
	}
	return l
}

type leafSamples struct {
	box    bbox.BoundingBox
	source []vec.Vec3
	target []vec.Vec3
}

type generator struct {
	quads    []*quadblock.Quadblock
	tree     *bsp.Tree
	settings Settings
	leaves   []leafSamples

	farClipSq  float32
	nearClipSq float32
}

// worker owns the scratch state of one goroutine.
type worker struct {
	g     *generator
	query bsp.RayQuery
	row   []bool

	pairs    int64
	rays     int64
	visible  int64
	hidden   int64
	nearClip int64
}

// Generate builds the visibility matrix of tree. quads must be the slice the
// tree was built from.
func Generate(quads []*quadblock.Quadblock, tree *bsp.Tree, s Settings) (*Result, error) {
	if !tree.Valid() {
		return nil, ErrInvalidTree
	}
	if err := s.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid vis settings")
	}
	start := time.Now()

	g := &generator{
		quads:      quads,
		tree:       tree,
		settings:   s,
		farClipSq:  s.FarClip * s.FarClip,
		nearClipSq: s.NearClip * s.NearClip,
	}
	if err := g.sample(); err != nil {
		return nil, err
	}

	n := len(g.leaves)
	res := &Result{
		RunID:    uuid.Must(uuid.NewV7()),
		Matrix:   NewBitMatrix(n, n),
		Settings: s,
		Leaves:   n,
	}

	workers := s.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	if workers > n {
		workers = n
	}
	log.Infof("%v: tracing %d leafs with %d workers", res.RunID, n, workers)

	ws := make([]*worker, workers)
	rows := make(chan int)
	var wg sync.WaitGroup
	for i := range ws {
		w := &worker{g: g, row: make([]bool, n)}
		ws[i] = w
		wg.Add(1)
		go func() {
			defer wg.Done()
			for a := range rows {
				w.computeRow(a)
				res.Matrix.SetRow(w.row, a)
			}
		}()
	}
	for a := 0; a < n; a++ {
		rows <- a
	}
	close(rows)
	wg.Wait()

	if s.CommutativeRays {
		m := res.Matrix
		for a := 0; a < n; a++ {
			for b := 0; b < a; b++ {
				m.Set(b, a, m.Get(a, b))
			}
		}
	}

	var visible, hidden, nearClip int64
	for _, w := range ws {
		res.SamplePairs += w.pairs
		res.Rays += w.rays
		visible += w.visible
		hidden += w.hidden
		nearClip += w.nearClip
	}
	res.Duration = time.Since(start)

	generateLatency.Observe(res.Duration.Seconds())
	raysCast.Add(float64(res.Rays))
	leafPairs.WithLabelValues(pairVisible).Add(float64(visible))
	leafPairs.WithLabelValues(pairHidden).Add(float64(hidden))
	leafPairs.WithLabelValues(pairNearClip).Add(float64(nearClip))

	log.Infof("%v: %d of %d cells visible, %d rays, %d ms",
		res.RunID, res.Matrix.Count(), n*n, res.Rays, res.Duration.Milliseconds())
	return res, nil
}

func (g *generator) sample() error {
	leaves := g.tree.Leaves()
	g.leaves = make([]leafSamples, len(leaves))
	for i, l := range leaves {
		for _, q := range l.Quadblocks() {
			if q < 0 || q >= len(g.quads) {
				return errors.Errorf("leaf %d references quadblock %d, only %d given", l.ID(), q, len(g.quads))
			}
		}
		g.leaves[i] = leafSamples{
			box:    l.BoundingBox(),
			source: SamplePoints(l, g.quads, true, g.settings.CenterOnlySamples),
			target: SamplePoints(l, g.quads, false, g.settings.CenterOnlySamples),
		}
	}
	return nil
}

// computeRow fills w.row with the leafs visible from leaf a. With
// commutative rays only the columns from a on are traced.
func (w *worker) computeRow(a int) {
	first := 0
	if w.g.settings.CommutativeRays {
		first = a
		for b := 0; b < a; b++ {
			w.row[b] = false
		}
	}
	for b := first; b < len(w.row); b++ {
		w.row[b] = w.leafVisible(a, b)
	}
}

func (w *worker) leafVisible(a, b int) bool {
	if a == b {
		return true
	}
	la, lb := &w.g.leaves[a], &w.g.leaves[b]
	if w.g.settings.NearClip >= 0 && la.box.DistanceSq(lb.box) <= w.g.nearClipSq {
		w.nearClip++
		return true
	}
	for _, pa := range la.source {
		for _, pb := range lb.target {
			if vec.DistanceSq(pa, pb) > w.g.farClipSq {
				continue
			}
			w.pairs++
			if w.sampleVisible(a, b, pa, pb) {
				w.visible++
				return true
			}
		}
	}
	w.hidden++
	return false
}

// sampleVisible traces from pa towards pb. The pair is visible when the
// closest accepted hit belongs to leaf b and no occluder lies in front of
// b's box.
func (w *worker) sampleVisible(a, b int, pa, pb vec.Vec3) bool {
	r, dist := ray.New(pa, pb)
	// a shared vertex, leafs touching in a single point see each other
	if dist == 0 {
		return true
	}
	w.rays++

	hitB, tMinB, tMaxB := ray.IntersectBox(r, w.g.leaves[b].box)
	if !hitB {
		tMinB, tMaxB = dist, dist
	}

	closestT := float32(math32.MaxFloat32)
	closestLeaf := -1
	for _, h := range w.g.tree.RayLeaves(r, math32.Max(tMaxB, dist), &w.query) {
		inB := h.Index == b
		if !inB && h.TMin > closestT {
			continue
		}
		for _, qi := range h.Leaf.Quadblocks() {
			q := w.g.quads[qi]
			if !inB && !occludes(q, r.Dir) {
				continue
			}
			hit, t := intersectQuad(r, q)
			if !hit {
				continue
			}
			if h.Index == a && t <= originSlack {
				continue
			}
			if !inB && t+hitMargin < tMinB {
				return false
			}
			if t < closestT || (inB && t <= closestT+hitMargin) {
				closestT = t
				closestLeaf = h.Index
			}
		}
	}
	return closestLeaf == b
}

// occludes reports whether q can block a ray travelling along dir.
func occludes(q *quadblock.Quadblock, dir vec.Vec3) bool {
	if q.IsTransparent() {
		return false
	}
	return q.IsDoubleSided() || !q.FacesAway(dir)
}

func intersectQuad(r ray.Ray, q *quadblock.Quadblock) (bool, float32) {
	found := false
	best := float32(math32.MaxFloat32)
	for _, tri := range q.HighLOD() {
		if hit, t := ray.IntersectTriangle(r, tri[0], tri[1], tri[2]); hit && t < best {
			found, best = true, t
		}
	}
	return found, best
}
