package model

import (
	"errors"
	"fmt"
	"math"

	"github.com/alexiusacademia/gofemdesign/internal/entity"
	"github.com/alexiusacademia/gofemdesign/internal/geometry"
)

// BarType is the structural role of a bar.
type BarType string

const (
	Beam   BarType = "beam"
	Column BarType = "column"
	Truss  BarType = "truss"
)

// ParseBarType accepts the struxml value in any letter case.
func ParseBarType(s string) (BarType, error) {
	for _, t := range []BarType{Beam, Column, Truss} {
		if string(t) == normalizeName(s) {
			return t, nil
		}
	}
	return "", fmt.Errorf("unknown bar type %q", s)
}

// Connectivity of a bar end. true means the degree of freedom is fixed.
type Connectivity struct {
	Mx bool `xml:"m_x,attr"`
	My bool `xml:"m_y,attr"`
	Mz bool `xml:"m_z,attr"`
	Rx bool `xml:"r_x,attr"`
	Ry bool `xml:"r_y,attr"`
	Rz bool `xml:"r_z,attr"`
}

var (
	// Rigid connects all six degrees of freedom.
	Rigid = Connectivity{Mx: true, My: true, Mz: true, Rx: true, Ry: true, Rz: true}
	// Hinged releases the bending rotations.
	Hinged = Connectivity{Mx: true, My: true, Mz: true, Rx: true}
)

// BarPart carries the geometry and the material/section references.
type BarPart struct {
	entity.Entity
	Name            string            `xml:"name,attr"`
	ComplexMaterial string            `xml:"complex_material,attr"`
	ComplexSection  string            `xml:"complex_section,attr"`
	Edge            geometry.Edge     `xml:"edge"`
	LocalY          geometry.Vector3d `xml:"local-y"`
	Connectivity    []Connectivity    `xml:"connectivity"`
}

// Bar maps to <bar>.
type Bar struct {
	entity.Entity
	Name    string  `xml:"name,attr"`
	Type    BarType `xml:"type,attr"`
	BarPart BarPart `xml:"bar_part"`
}

// NewBar creates a bar with rigid ends along edge. identifier becomes the
// name prefix; the model numbers bars when they are added.
func NewBar(edge geometry.Edge, typ BarType, material *Material, section *Section, identifier string) (*Bar, error) {
	if material == nil || section == nil {
		return nil, errors.New("bar needs a material and a section")
	}
	dir, err := edge.Direction()
	if err != nil {
		return nil, err
	}
	if identifier == "" {
		identifier = defaultIdentifier(typ)
	}
	return &Bar{
		Entity: entity.New(),
		Name:   identifier,
		Type:   typ,
		BarPart: BarPart{
			Entity:          entity.New(),
			Name:            identifier,
			ComplexMaterial: material.GUID,
			ComplexSection:  section.GUID,
			Edge:            edge,
			LocalY:          defaultLocalY(dir),
			Connectivity:    []Connectivity{Rigid, Rigid},
		},
	}, nil
}

// SetLocalY overrides the local y axis. It must be perpendicular to the bar.
func (b *Bar) SetLocalY(v geometry.Vector3d) error {
	dir, err := b.BarPart.Edge.Direction()
	if err != nil {
		return err
	}
	n, err := v.Normalize()
	if err != nil {
		return err
	}
	if math.Abs(n.Dot(dir)) > 1e-6 {
		return errors.New("local y must be perpendicular to the bar axis")
	}
	b.BarPart.LocalY = n
	b.Touch()
	return nil
}

// SetConnectivity sets the start and end connectivity.
func (b *Bar) SetConnectivity(start, end Connectivity) {
	b.BarPart.Connectivity = []Connectivity{start, end}
	b.Touch()
}

func defaultIdentifier(t BarType) string {
	switch t {
	case Column:
		return "C"
	case Truss:
		return "T"
	default:
		return "B"
	}
}

// defaultLocalY is global Z cross the bar axis, or global Y for vertical
// bars.
func defaultLocalY(dir geometry.Vector3d) geometry.Vector3d {
	y := geometry.UnitZ.Cross(dir)
	if y.IsZero() {
		return geometry.UnitY
	}
	n, _ := y.Normalize()
	return n
}
