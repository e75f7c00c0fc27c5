package loads

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gofemdesign/internal/entity"
	"github.com/alexiusacademia/gofemdesign/internal/geometry"
)

// LoadLocationValue is an intensity at a location.
type LoadLocationValue struct {
	X   float64 `xml:"x,attr"`
	Y   float64 `xml:"y,attr"`
	Z   float64 `xml:"z,attr"`
	Val float64 `xml:"val,attr"`
}

// Load is implemented by every load element that belongs to a load case.
type Load interface {
	LoadCaseGUID() string
	ID() string
}

// PointLoad maps to <point_load>.
type PointLoad struct {
	entity.Entity
	LoadCase  string            `xml:"load_case,attr"`
	LoadType  ForceLoadType     `xml:"load_type,attr"`
	Comment   string            `xml:"comment,attr,omitempty"`
	Direction geometry.Vector3d `xml:"direction"`
	Load      LoadLocationValue `xml:"load"`
}

// NewPointLoad splits force into a unit direction and an intensity.
func NewPointLoad(position geometry.Point3d, force geometry.Vector3d, lc *LoadCase, comment string, typ ForceLoadType) (*PointLoad, error) {
	if lc == nil {
		return nil, errors.New("point load needs a load case")
	}
	dir, err := force.Normalize()
	if err != nil {
		return nil, fmt.Errorf("point load: %w", err)
	}
	return &PointLoad{
		Entity:    entity.New(),
		LoadCase:  lc.GUID,
		LoadType:  typ,
		Comment:   comment,
		Direction: dir,
		Load: LoadLocationValue{
			X: position.X, Y: position.Y, Z: position.Z,
			Val: force.Length(),
		},
	}, nil
}

func (p *PointLoad) LoadCaseGUID() string { return p.LoadCase }
func (p *PointLoad) ID() string { return p.GUID }

// Force returns the load as a vector.
func (p *PointLoad) Force() geometry.Vector3d {
	return p.Direction.Scale(p.Load.Val)
}

// LineLoad maps to <line_load>. Intensities vary linearly along the edge.
type LineLoad struct {
	entity.Entity
	LoadCase       string              `xml:"load_case,attr"`
	LoadDir        string              `xml:"load_dir,attr"`
	LoadProjection bool                `xml:"load_projection,attr"`
	LoadType       ForceLoadType       `xml:"load_type,attr"`
	Comment        string              `xml:"comment,attr,omitempty"`
	Edge           geometry.Edge       `xml:"edge"`
	Direction      geometry.Vector3d   `xml:"direction"`
	Normal         geometry.Vector3d   `xml:"normal"`
	Load           []LoadLocationValue `xml:"load"`
}

const (
	loadDirConstant = "constant"
	loadDirChanging = "changing"
)

// NewLineLoad creates a line load. startForce and endForce must be parallel;
// one of them may be zero.
func NewLineLoad(edge geometry.Edge, startForce, endForce geometry.Vector3d, lc *LoadCase, typ ForceLoadType, comment string, constLoadDir, loadProjection bool) (*LineLoad, error) {
	if lc == nil {
		return nil, errors.New("line load needs a load case")
	}
	if len(edge.Points) < 2 {
		return nil, errors.New("line load needs an edge with two points")
	}
	ref := startForce
	if ref.IsZero() {
		ref = endForce
	}
	dir, err := ref.Normalize()
	if err != nil {
		return nil, fmt.Errorf("line load: %w", err)
	}
	for _, f := range []geometry.Vector3d{startForce, endForce} {
		if !f.IsZero() && f.Cross(dir).Length() > 1e-6*math.Max(1, f.Length()) {
			return nil, errors.New("line load: start and end forces must be parallel")
		}
	}

	loadDir := loadDirChanging
	if constLoadDir {
		loadDir = loadDirConstant
	}
	normal := geometry.UnitZ
	if edge.Normal != nil {
		normal = *edge.Normal
	}
	start, end := edge.Start(), edge.End()
	return &LineLoad{
		Entity:         entity.New(),
		LoadCase:       lc.GUID,
		LoadDir:        loadDir,
		LoadProjection: loadProjection,
		LoadType:       typ,
		Comment:        comment,
		Edge:           edge,
		Direction:      dir,
		Normal:         normal,
		Load: []LoadLocationValue{
			{X: start.X, Y: start.Y, Z: start.Z, Val: startForce.Dot(dir)},
			{X: end.X, Y: end.Y, Z: end.Z, Val: endForce.Dot(dir)},
		},
	}, nil
}

func (l *LineLoad) LoadCaseGUID() string { return l.LoadCase }
func (l *LineLoad) ID() string { return l.GUID }

// ConstLoadDir reports whether the load keeps its direction when the
// structure deforms.
func (l *LineLoad) ConstLoadDir() bool { return l.LoadDir == loadDirConstant }
