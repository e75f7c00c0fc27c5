package model

import (
	"errors"
	"fmt"
	"os"

	"github.com/alexiusacademia/gofemdesign/internal/geometry"
	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/alexiusacademia/gofemdesign/internal/nscp"
	"gopkg.in/yaml.v3"
)

// Input is the YAML description of a model, as written by hand or by other
// tools, from which a struxml model is built.
type Input struct {
	Country          string             `yaml:"country"`
	Bars             []BarInput         `yaml:"bars"`
	Supports         []SupportInput     `yaml:"supports"`
	LoadCases        []LoadCaseInput    `yaml:"load_cases"`
	LoadCombinations []CombinationInput `yaml:"load_combinations"`
	NSCP             *NSCPInput         `yaml:"nscp"`
	PointLoads       []PointLoadInput   `yaml:"point_loads"`
	LineLoads        []LineLoadInput    `yaml:"line_loads"`
}

type BarInput struct {
	Identifier string             `yaml:"identifier"`
	Type       string             `yaml:"type"`
	Start      geometry.Point3d   `yaml:"start"`
	End        geometry.Point3d   `yaml:"end"`
	LocalY     *geometry.Vector3d `yaml:"local_y"`
	Material   string             `yaml:"material"`
	Section    string             `yaml:"section"`
	Hinged     bool               `yaml:"hinged"`
}

// SupportInput takes either a preset name ("rigid", "free") or explicit
// stiffnesses for motions and rotations.
type SupportInput struct {
	Identifier string           `yaml:"identifier"`
	Position   geometry.Point3d `yaml:"position"`
	Motions    MotionsInput     `yaml:"motions"`
	Rotations  RotationsInput   `yaml:"rotations"`
}

type MotionsInput struct{ Motions }

func (s *MotionsInput) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		switch normalizeName(n.Value) {
		case "rigid":
			s.Motions = RigidMotions()
		case "free":
			s.Motions = FreeMotions()
		default:
			return fmt.Errorf("line %d: unknown motions preset %q", n.Line, n.Value)
		}
		return nil
	}
	return n.Decode(&s.Motions)
}

type RotationsInput struct{ Rotations }

func (s *RotationsInput) UnmarshalYAML(n *yaml.Node) error {
	if n.Kind == yaml.ScalarNode {
		switch normalizeName(n.Value) {
		case "rigid":
			s.Rotations = RigidRotations()
		case "free":
			s.Rotations = FreeRotations()
		default:
			return fmt.Errorf("line %d: unknown rotations preset %q", n.Line, n.Value)
		}
		return nil
	}
	return n.Decode(&s.Rotations)
}

type LoadCaseInput struct {
	Name     string `yaml:"name"`
	Type     string `yaml:"type"`
	Duration string `yaml:"duration"`
}

type CombinationInput struct {
	Name  string `yaml:"name"`
	Type  string `yaml:"type"`
	Cases []struct {
		Case  string  `yaml:"case"`
		Gamma float64 `yaml:"gamma"`
	} `yaml:"cases"`
}

// NSCPInput generates strength combinations from load case names per kind.
type NSCPInput struct {
	Prefix     string `yaml:"prefix"`
	Simplified bool   `yaml:"simplified"`
	Dead       string `yaml:"dead"`
	Live       string `yaml:"live"`
	Roof       string `yaml:"roof"`
	Wind       string `yaml:"wind"`
	Earthquake string `yaml:"earthquake"`
	Rain       string `yaml:"rain"`
}

type PointLoadInput struct {
	LoadCase string            `yaml:"load_case"`
	Position geometry.Point3d  `yaml:"position"`
	Force    geometry.Vector3d `yaml:"force"`
	Type     string            `yaml:"type"`
	Comment  string            `yaml:"comment"`
}

type LineLoadInput struct {
	LoadCase   string            `yaml:"load_case"`
	Start      geometry.Point3d  `yaml:"start"`
	End        geometry.Point3d  `yaml:"end"`
	StartForce geometry.Vector3d `yaml:"start_force"`
	EndForce   geometry.Vector3d `yaml:"end_force"`
	Type       string            `yaml:"type"`
	Comment    string            `yaml:"comment"`
	ConstDir   *bool             `yaml:"const_dir"`
	Projection bool              `yaml:"projection"`
}

// LoadInput reads a YAML model description and builds the model.
func LoadInput(path string) (*Model, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var s Input
	if err := yaml.Unmarshal(b, &s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	m, err := s.Build()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}

// Build creates the model described by s.
func (s Input) Build() (*Model, error) {
	country := CountrySweden
	if s.Country != "" {
		c, err := ParseCountry(s.Country)
		if err != nil {
			return nil, err
		}
		country = c
	}
	m := New(country)

	if err := s.buildBars(m); err != nil {
		return nil, err
	}
	for _, sp := range s.Supports {
		m.AddSupports([]*PointSupport{NewPointSupport(sp.Position, sp.Motions.Motions, sp.Rotations.Rotations, sp.Identifier)})
	}
	if err := s.buildLoadCases(m); err != nil {
		return nil, err
	}
	if err := s.buildCombinations(m); err != nil {
		return nil, err
	}
	if err := s.buildLoads(m); err != nil {
		return nil, err
	}
	return m, m.Validate()
}

func (s Input) buildBars(m *Model) error {
	for i, bs := range s.Bars {
		typ := Beam
		if bs.Type != "" {
			t, err := ParseBarType(bs.Type)
			if err != nil {
				return fmt.Errorf("bar %d: %w", i+1, err)
			}
			typ = t
		}
		if bs.Material == "" || bs.Section == "" {
			return fmt.Errorf("bar %d: material and section are required", i+1)
		}
		mat := m.MaterialByName(bs.Material)
		if mat == nil {
			mat = NewMaterial(bs.Material, m.Country)
		}
		sec := m.SectionByName(bs.Section)
		if sec == nil {
			sec = NewSection(bs.Section)
		}
		edge, err := geometry.NewLineEdge(bs.Start, bs.End, geometry.UnitZ)
		if err != nil {
			return fmt.Errorf("bar %d: %w", i+1, err)
		}
		bar, err := NewBar(edge, typ, mat, sec, bs.Identifier)
		if err != nil {
			return fmt.Errorf("bar %d: %w", i+1, err)
		}
		if bs.LocalY != nil {
			if err := bar.SetLocalY(*bs.LocalY); err != nil {
				return fmt.Errorf("bar %d: %w", i+1, err)
			}
		}
		if bs.Hinged {
			bar.SetConnectivity(Hinged, Hinged)
		}
		if err := m.AddElements([]*Bar{bar}, []*Material{mat}, []*Section{sec}); err != nil {
			return err
		}
	}
	return nil
}

func (s Input) buildLoadCases(m *Model) error {
	for _, ls := range s.LoadCases {
		typ := loads.LoadCaseStatic
		if ls.Type != "" {
			t, err := loads.ParseLoadCaseType(ls.Type)
			if err != nil {
				return err
			}
			typ = t
		}
		dur := loads.DurationPermanent
		if ls.Duration != "" {
			d, err := loads.ParseLoadCaseDuration(ls.Duration)
			if err != nil {
				return err
			}
			dur = d
		}
		lc, err := loads.NewLoadCase(ls.Name, typ, dur)
		if err != nil {
			return err
		}
		if err := m.AddLoadCases([]*loads.LoadCase{lc}); err != nil {
			return err
		}
	}
	return nil
}

func (s Input) buildCombinations(m *Model) error {
	for _, cs := range s.LoadCombinations {
		typ := loads.CombUltimateOrdinary
		if cs.Type != "" {
			t, err := loads.ParseLoadCombType(cs.Type)
			if err != nil {
				return err
			}
			typ = t
		}
		var cases []*loads.LoadCase
		var factors []float64
		for _, c := range cs.Cases {
			lc, err := lookupCase(m, c.Case)
			if err != nil {
				return fmt.Errorf("load combination %s: %w", cs.Name, err)
			}
			cases = append(cases, lc)
			factors = append(factors, c.Gamma)
		}
		combo, err := loads.NewLoadCombination(cs.Name, typ, cases, factors)
		if err != nil {
			return err
		}
		if err := m.AddLoadCombinations([]*loads.LoadCombination{combo}); err != nil {
			return err
		}
	}

	if s.NSCP == nil {
		return nil
	}
	set := nscp.LoadCaseSet{}
	for kind, name := range map[nscp.Kind]string{
		nscp.Dead: s.NSCP.Dead, nscp.Live: s.NSCP.Live, nscp.Roof: s.NSCP.Roof,
		nscp.Wind: s.NSCP.Wind, nscp.Earthquake: s.NSCP.Earthquake, nscp.Rain: s.NSCP.Rain,
	} {
		if name == "" {
			continue
		}
		lc, err := lookupCase(m, name)
		if err != nil {
			return fmt.Errorf("nscp %s: %w", kind, err)
		}
		set[kind] = lc
	}
	table := nscp.LoadCombinations
	if s.NSCP.Simplified {
		table = nscp.SimplifiedCombinations
	}
	prefix := s.NSCP.Prefix
	if prefix == "" {
		prefix = "NSCP "
	}
	combos, err := nscp.Build(set, table, prefix)
	if err != nil {
		return err
	}
	return m.AddLoadCombinations(combos)
}

func (s Input) buildLoads(m *Model) error {
	for _, ps := range s.PointLoads {
		lc, err := lookupCase(m, ps.LoadCase)
		if err != nil {
			return fmt.Errorf("point load: %w", err)
		}
		typ, err := forceType(ps.Type)
		if err != nil {
			return err
		}
		p, err := loads.NewPointLoad(ps.Position, ps.Force, lc, ps.Comment, typ)
		if err != nil {
			return err
		}
		if err := m.AddLoads([]loads.Load{p}); err != nil {
			return err
		}
	}
	for _, ls := range s.LineLoads {
		lc, err := lookupCase(m, ls.LoadCase)
		if err != nil {
			return fmt.Errorf("line load: %w", err)
		}
		typ, err := forceType(ls.Type)
		if err != nil {
			return err
		}
		edge, err := geometry.NewLineEdge(ls.Start, ls.End, geometry.UnitZ)
		if err != nil {
			return fmt.Errorf("line load: %w", err)
		}
		constDir := ls.ConstDir == nil || *ls.ConstDir
		l, err := loads.NewLineLoad(edge, ls.StartForce, ls.EndForce, lc, typ, ls.Comment, constDir, ls.Projection)
		if err != nil {
			return err
		}
		if err := m.AddLoads([]loads.Load{l}); err != nil {
			return err
		}
	}
	return nil
}

func lookupCase(m *Model, name string) (*loads.LoadCase, error) {
	if name == "" {
		return nil, errors.New("load case name is required")
	}
	lc := m.LoadCaseByName(name)
	if lc == nil {
		return nil, fmt.Errorf("unknown load case %q", name)
	}
	return lc, nil
}

func forceType(s string) (loads.ForceLoadType, error) {
	if s == "" {
		return loads.Force, nil
	}
	return loads.ParseForceLoadType(s)
}
