// Package geometry holds the minimal 3D primitives used by struxml entities.
// Coordinates are in metres in the global system of the FEM-Design model.
package geometry

import (
	"errors"
	"math"
)

// Tolerance used when comparing coordinates and vector lengths.
const Tolerance = 1e-9

// Point3d is a position in the global coordinate system.
type Point3d struct {
	X float64 `xml:"x,attr" yaml:"x"`
	Y float64 `xml:"y,attr" yaml:"y"`
	Z float64 `xml:"z,attr" yaml:"z"`
}

// Vector3d is a direction or a magnitude-carrying vector.
type Vector3d struct {
	X float64 `xml:"x,attr" yaml:"x"`
	Y float64 `xml:"y,attr" yaml:"y"`
	Z float64 `xml:"z,attr" yaml:"z"`
}

var (
	UnitX = Vector3d{X: 1}
	UnitY = Vector3d{Y: 1}
	UnitZ = Vector3d{Z: 1}
)

// Add translates p by v.
func (p Point3d) Add(v Vector3d) Point3d {
	return Point3d{X: p.X + v.X, Y: p.Y + v.Y, Z: p.Z + v.Z}
}

// Sub returns the vector from q to p.
func (p Point3d) Sub(q Point3d) Vector3d {
	return Vector3d{X: p.X - q.X, Y: p.Y - q.Y, Z: p.Z - q.Z}
}

// Equals compares two points within Tolerance.
func (p Point3d) Equals(q Point3d) bool {
	return p.Sub(q).Length() < Tolerance
}

func (v Vector3d) Add(w Vector3d) Vector3d {
	return Vector3d{X: v.X + w.X, Y: v.Y + w.Y, Z: v.Z + w.Z}
}

func (v Vector3d) Scale(f float64) Vector3d {
	return Vector3d{X: v.X * f, Y: v.Y * f, Z: v.Z * f}
}

func (v Vector3d) Dot(w Vector3d) float64 {
	return v.X*w.X + v.Y*w.Y + v.Z*w.Z
}

func (v Vector3d) Cross(w Vector3d) Vector3d {
	return Vector3d{
		X: v.Y*w.Z - v.Z*w.Y,
		Y: v.Z*w.X - v.X*w.Z,
		Z: v.X*w.Y - v.Y*w.X,
	}
}

func (v Vector3d) Length() float64 {
	return math.Sqrt(v.Dot(v))
}

// IsZero reports whether v has no length.
func (v Vector3d) IsZero() bool {
	return v.Length() < Tolerance
}

// Normalize returns the unit vector of v. A zero vector cannot be normalized.
func (v Vector3d) Normalize() (Vector3d, error) {
	l := v.Length()
	if l < Tolerance {
		return Vector3d{}, errors.New("geometry: cannot normalize a zero vector")
	}
	return v.Scale(1 / l), nil
}

// Edge is a straight line segment with a normal defining its local plane.
// FEM-Design also knows arc and circle edges; only lines are modelled here.
type Edge struct {
	Type   string    `xml:"type,attr"`
	Points []Point3d `xml:"point"`
	Normal *Vector3d `xml:"normal,omitempty"`
}

// NewLineEdge creates a line edge from start to end.
func NewLineEdge(start, end Point3d, normal Vector3d) (Edge, error) {
	if start.Equals(end) {
		return Edge{}, errors.New("geometry: edge start and end coincide")
	}
	n := normal
	return Edge{Type: "line", Points: []Point3d{start, end}, Normal: &n}, nil
}

// Start returns the first point of the edge.
func (e Edge) Start() Point3d { return e.Points[0] }

// End returns the last point of the edge.
func (e Edge) End() Point3d { return e.Points[len(e.Points)-1] }

// Length of a line edge.
func (e Edge) Length() float64 {
	if len(e.Points) < 2 {
		return 0
	}
	return e.End().Sub(e.Start()).Length()
}

// Mid returns the point halfway along the edge.
func (e Edge) Mid() Point3d {
	return e.Start().Add(e.End().Sub(e.Start()).Scale(0.5))
}

// Direction returns the unit vector from start to end.
func (e Edge) Direction() (Vector3d, error) {
	if len(e.Points) < 2 {
		return Vector3d{}, errors.New("geometry: edge needs two points")
	}
	return e.End().Sub(e.Start()).Normalize()
}
