// SPDX-License-Identifier: GPL-2.0-or-later

// Package bbox implements axis aligned bounding boxes.
package bbox

import (
	"github.com/chewxy/math32"

	qmath "ctrvis/math"
	"ctrvis/math/vec"
)

type BoundingBox struct {
	Min vec.Vec3
	Max vec.Vec3
}

// Empty returns an inverted box. The union of an empty box with any box b is b.
func Empty() BoundingBox {
	return BoundingBox{
		Min: vec.Vec3{X: math32.MaxFloat32, Y: math32.MaxFloat32, Z: math32.MaxFloat32},
		Max: vec.Vec3{X: -math32.MaxFloat32, Y: -math32.MaxFloat32, Z: -math32.MaxFloat32},
	}
}

// FromPoints returns the smallest box containing all points.
func FromPoints(points ...vec.Vec3) BoundingBox {
	b := Empty()
	for _, p := range points {
		b = b.AddPoint(p)
	}
	return b
}

// IsEmpty reports whether no point was ever added to b.
func (b BoundingBox) IsEmpty() bool {
	return b.Min.X > b.Max.X || b.Min.Y > b.Max.Y || b.Min.Z > b.Max.Z
}

func (b BoundingBox) AddPoint(p vec.Vec3) BoundingBox {
	return BoundingBox{
		Min: vec.Min(b.Min, p),
		Max: vec.Max(b.Max, p),
	}
}

func (b BoundingBox) Union(o BoundingBox) BoundingBox {
	return BoundingBox{
		Min: vec.Min(b.Min, o.Min),
		Max: vec.Max(b.Max, o.Max),
	}
}

func (b BoundingBox) AxisLength(a vec.Axis) float32 {
	return b.Max.Idx(a) - b.Min.Idx(a)
}

// MaxAxisLength returns the length of the longest side.
func (b BoundingBox) MaxAxisLength() float32 {
	return math32.Max(b.AxisLength(vec.X), math32.Max(b.AxisLength(vec.Y), b.AxisLength(vec.Z)))
}

// SemiPerimeter returns the sum of the three side lengths.
func (b BoundingBox) SemiPerimeter() float32 {
	return b.AxisLength(vec.X) + b.AxisLength(vec.Y) + b.AxisLength(vec.Z)
}

func (b BoundingBox) Midpoint() vec.Vec3 {
	return vec.Lerp(b.Min, b.Max, 0.5)
}

// Contains reports whether o lies completely inside b.
func (b BoundingBox) Contains(o BoundingBox) bool {
	return b.Min.X <= o.Min.X && b.Min.Y <= o.Min.Y && b.Min.Z <= o.Min.Z &&
		b.Max.X >= o.Max.X && b.Max.Y >= o.Max.Y && b.Max.Z >= o.Max.Z
}

// ContainsPoint reports whether p lies inside b grown by eps on every side.
func (b BoundingBox) ContainsPoint(p vec.Vec3, eps float32) bool {
	return qmath.InRange(p.X, b.Min.X, b.Max.X, eps) &&
		qmath.InRange(p.Y, b.Min.Y, b.Max.Y, eps) &&
		qmath.InRange(p.Z, b.Min.Z, b.Max.Z, eps)
}

func (b BoundingBox) Expand(amount float32) BoundingBox {
	e := vec.Vec3{X: amount, Y: amount, Z: amount}
	return BoundingBox{
		Min: vec.Sub(b.Min, e),
		Max: vec.Add(b.Max, e),
	}
}

// ClosestPoint returns the point of b nearest to p.
func (b BoundingBox) ClosestPoint(p vec.Vec3) vec.Vec3 {
	return vec.Vec3{X: qmath.Clamp(b.Min.X, p.X, b.Max.X), Y: qmath.Clamp(b.Min.Y, p.Y, b.Max.Y), Z: qmath.Clamp(b.Min.Z, p.Z, b.Max.Z)}

}

// DistanceSq returns the squared distance between the closest points of b
// and o. Overlapping or touching boxes have distance 0.
func (b BoundingBox) DistanceSq(o BoundingBox) float32 {
	gap := func(a vec.Axis) float32 {
		if d := o.Min.Idx(a) - b.Max.Idx(a); d > 0 {
			return d
		}
		if d := b.Min.Idx(a) - o.Max.Idx(a); d > 0 {
			return d
		}
		return 0
	}
	d := vec.Vec3{X: gap(vec.X), Y: gap(vec.Y), Z: gap(vec.Z)}
	return d.LengthSq()
}
