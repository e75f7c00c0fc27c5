package model

import (
	"github.com/alexiusacademia/gofemdesign/internal/entity"
	"github.com/alexiusacademia/gofemdesign/internal/geometry"
)

// RigidStiffness is the spring stiffness FEM-Design treats as fixed,
// in kN/m for motions and kNm/rad for rotations.
const RigidStiffness = 1e10

// Motions are translational spring stiffnesses per direction and sign.
type Motions struct {
	XNeg float64 `xml:"x_neg,attr" yaml:"x_neg"`
	XPos float64 `xml:"x_pos,attr" yaml:"x_pos"`
	YNeg float64 `xml:"y_neg,attr" yaml:"y_neg"`
	YPos float64 `xml:"y_pos,attr" yaml:"y_pos"`
	ZNeg float64 `xml:"z_neg,attr" yaml:"z_neg"`
	ZPos float64 `xml:"z_pos,attr" yaml:"z_pos"`
}

// Rotations are rotational spring stiffnesses per axis and sign.
type Rotations struct {
	XNeg float64 `xml:"x_neg,attr" yaml:"x_neg"`
	XPos float64 `xml:"x_pos,attr" yaml:"x_pos"`
	YNeg float64 `xml:"y_neg,attr" yaml:"y_neg"`
	YPos float64 `xml:"y_pos,attr" yaml:"y_pos"`
	ZNeg float64 `xml:"z_neg,attr" yaml:"z_neg"`
	ZPos float64 `xml:"z_pos,attr" yaml:"z_pos"`
}

func RigidMotions() Motions {
	k := RigidStiffness
	return Motions{k, k, k, k, k, k}
}

func FreeMotions() Motions { return Motions{} }

func RigidRotations() Rotations {
	k := RigidStiffness
	return Rotations{k, k, k, k, k, k}
}

func FreeRotations() Rotations { return Rotations{} }

type Rigidity struct {
	Motions   Motions   `xml:"motions"`
	Rotations Rotations `xml:"rotations"`
}

// SupportGroup holds the local system of the support.
type SupportGroup struct {
	LocalX geometry.Vector3d `xml:"local_x"`
	LocalY geometry.Vector3d `xml:"local_y"`
}

// PointSupport maps to <point_support>.
type PointSupport struct {
	entity.Entity
	Name     string           `xml:"name,attr"`
	Group    SupportGroup     `xml:"group"`
	Position geometry.Point3d `xml:"position"`
	Rigidity Rigidity         `xml:"rigidity"`
}

// NewPointSupport creates a support aligned with the global axes.
func NewPointSupport(point geometry.Point3d, motions Motions, rotations Rotations, identifier string) *PointSupport {
	if identifier == "" {
		identifier = "S"
	}
	return &PointSupport{
		Entity:   entity.New(),
		Name:     identifier,
		Group:    SupportGroup{LocalX: geometry.UnitX, LocalY: geometry.UnitY},
		Position: point,
		Rigidity: Rigidity{Motions: motions, Rotations: rotations},
	}
}
