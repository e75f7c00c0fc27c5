package results

import (
	"fmt"
	"strings"
)

type (
	Length        string
	Angle         string
	SectionalData string
	Force         string
	Mass          string
	Displacement  string
	Stress        string
)

var (
	lengthUnits        = []Length{"mm", "cm", "dm", "m", "inch", "feet", "yd"}
	angleUnits         = []Angle{"rad", "deg"}
	sectionalDataUnits = []SectionalData{"mm", "cm", "dm", "m", "inch", "feet", "yd"}
	forceUnits         = []Force{"N", "daN", "kN", "MN", "lbf", "kips"}
	massUnits          = []Mass{"t", "kg", "lb", "tf"}
	displacementUnits  = []Displacement{"mm", "cm", "dm", "m", "inch", "feet", "yd"}
	stressUnits        = []Stress{"Pa", "kPa", "MPa", "GPa"}
)

// UnitResults selects the units FEM-Design uses when it lists results.
type UnitResults struct {
	Length        Length        `yaml:"length"`
	Angle         Angle         `yaml:"angle"`
	SectionalData SectionalData `yaml:"sectional_data"`
	Force         Force         `yaml:"force"`
	Mass          Mass          `yaml:"mass"`
	Displacement  Displacement  `yaml:"displacement"`
	Stress        Stress        `yaml:"stress"`
}

// DefaultUnits are the units FEM-Design lists with when none are given.
func DefaultUnits() UnitResults {
	return UnitResults{
		Length:        "m",
		Angle:         "rad",
		SectionalData: "m",
		Force:         "kN",
		Mass:          "t",
		Displacement:  "m",
		Stress:        "Pa",
	}
}

// Validate checks every unit against the values FEM-Design knows.
func (u UnitResults) Validate() error {
	_, err := u.Normalize()
	return err
}

// Normalize returns u with every unit in the spelling FEM-Design expects,
// so "kn" becomes "kN". Unknown units are an error.
func (u UnitResults) Normalize() (UnitResults, error) {
	var err error
	var n UnitResults
	if n.Length, err = canonical("length", lengthUnits, u.Length); err != nil {
		return u, err
	}
	if n.Angle, err = canonical("angle", angleUnits, u.Angle); err != nil {
		return u, err
	}
	if n.SectionalData, err = canonical("sectional data", sectionalDataUnits, u.SectionalData); err != nil {
		return u, err
	}
	if n.Force, err = canonical("force", forceUnits, u.Force); err != nil {
		return u, err
	}
	if n.Mass, err = canonical("mass", massUnits, u.Mass); err != nil {
		return u, err
	}
	if n.Displacement, err = canonical("displacement", displacementUnits, u.Displacement); err != nil {
		return u, err
	}
	if n.Stress, err = canonical("stress", stressUnits, u.Stress); err != nil {
		return u, err
	}
	return n, nil
}

func canonical[T ~string](name string, values []T, v T) (T, error) {
	for _, x := range values {
		if x == v {
			return x, nil
		}
	}
	for _, x := range values {
		if strings.EqualFold(string(x), strings.TrimSpace(string(v))) {
			return x, nil
		}
	}
	return v, fmt.Errorf("unknown %s unit %q", name, v)
}

// Units is one <units> entry of a doctable: a magnitude index and the unit
// it is listed in.
type Units struct {
	Magnitude int    `xml:"magnitude"`
	Unit      string `xml:"unit"`
}

// Magnitude indices in the order FEM-Design numbers them.
const (
	MagnitudeLength = iota
	MagnitudeAngle
	MagnitudeSectionalData
	MagnitudeForce
	MagnitudeMass
	MagnitudeDisplacement
	MagnitudeStress
)

// GetUnits expands u into the doctable units list, one entry per magnitude.
func GetUnits(u UnitResults) []Units {
	return []Units{
		{Magnitude: MagnitudeLength, Unit: string(u.Length)},
		{Magnitude: MagnitudeAngle, Unit: string(u.Angle)},
		{Magnitude: MagnitudeSectionalData, Unit: string(u.SectionalData)},
		{Magnitude: MagnitudeForce, Unit: string(u.Force)},
		{Magnitude: MagnitudeMass, Unit: string(u.Mass)},
		{Magnitude: MagnitudeDisplacement, Unit: string(u.Displacement)},
		{Magnitude: MagnitudeStress, Unit: string(u.Stress)},
	}
}
