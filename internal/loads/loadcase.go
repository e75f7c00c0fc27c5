package loads

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/gofemdesign/internal/entity"
)

// LoadCase maps to <load_case> in the struxml loads section.
type LoadCase struct {
	entity.Entity
	Name          string           `xml:"name,attr"`
	Type          LoadCaseType     `xml:"type,attr"`
	DurationClass LoadCaseDuration `xml:"duration_class,attr"`
}

// NewLoadCase creates a load case with a new GUID.
func NewLoadCase(name string, typ LoadCaseType, duration LoadCaseDuration) (*LoadCase, error) {
	if name == "" {
		return nil, errors.New("load case name is required")
	}
	return &LoadCase{
		Entity:        entity.New(),
		Name:          name,
		Type:          typ,
		DurationClass: duration,
	}, nil
}

func (lc *LoadCase) String() string {
	return fmt.Sprintf("LoadCase %s (%s, %s)", lc.Name, lc.Type, lc.DurationClass)
}

// ModelLoadCase is a reference to a load case inside a combination,
// together with its partial factor.
type ModelLoadCase struct {
	GUID  string  `xml:"guid,attr"`
	Gamma float64 `xml:"gamma,attr"`

	// Case is resolved after decoding and is not serialized.
	Case *LoadCase `xml:"-"`
}

// LoadCombination maps to <load_combination>.
type LoadCombination struct {
	entity.Entity
	Name  string          `xml:"name,attr"`
	Type  LoadCombType    `xml:"type,attr"`
	Cases []ModelLoadCase `xml:"load_case"`
}

// NewLoadCombination pairs every load case with the factor at the same index.
func NewLoadCombination(name string, typ LoadCombType, cases []*LoadCase, factors []float64) (*LoadCombination, error) {
	if name == "" {
		return nil, errors.New("load combination name is required")
	}
	if len(cases) != len(factors) {
		return nil, fmt.Errorf("load combination %s: %d load cases but %d factors", name, len(cases), len(factors))
	}
	lc := &LoadCombination{
		Entity: entity.New(),
		Name:   name,
		Type:   typ,
	}
	for i, c := range cases {
		if c == nil {
			return nil, fmt.Errorf("load combination %s: load case %d is nil", name, i)
		}
		lc.Cases = append(lc.Cases, ModelLoadCase{GUID: c.GUID, Gamma: factors[i], Case: c})
	}
	return lc, nil
}

// Factor returns the partial factor of a load case, or 0 when the
// combination does not contain it.
func (c *LoadCombination) Factor(lc *LoadCase) float64 {
	for _, m := range c.Cases {
		if m.GUID == lc.GUID {
			return m.Gamma
		}
	}
	return 0
}

// Resolve links the case references to the given load cases by GUID.
func (c *LoadCombination) Resolve(cases []*LoadCase) error {
	byGUID := make(map[string]*LoadCase, len(cases))
	for _, lc := range cases {
		byGUID[lc.GUID] = lc
	}
	for i := range c.Cases {
		lc, ok := byGUID[c.Cases[i].GUID]
		if !ok {
			return fmt.Errorf("load combination %s references unknown load case %s", c.Name, c.Cases[i].GUID)
		}
		c.Cases[i].Case = lc
	}
	return nil
}
