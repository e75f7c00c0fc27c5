// Package model assembles structural elements, supports and loads into a
// FEM-Design model and reads and writes it as struxml.
package model

import (
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/entity"
	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/google/uuid"
)

// Country selects the national annex of the design code.
type Country string

const (
	CountryCommon  Country = "common"
	CountryDenmark Country = "DK"
	CountryEstonia Country = "EST"
	CountryFinland Country = "FIN"
	CountryGermany Country = "D"
	CountryUK      Country = "GB"
	CountryHungary Country = "H"
	CountryLatvia  Country = "LT"
	CountryNorway  Country = "N"
	CountryPoland  Country = "PL"
	CountryRomania Country = "RO"
	CountrySweden  Country = "S"
	CountryTurkey  Country = "TR"
)

var countries = []Country{
	CountryCommon, CountryDenmark, CountryEstonia, CountryFinland, CountryGermany,
	CountryUK, CountryHungary, CountryLatvia, CountryNorway, CountryPoland,
	CountryRomania, CountrySweden, CountryTurkey,
}

// ParseCountry accepts the struxml country code in any letter case.
func ParseCountry(s string) (Country, error) {
	for _, c := range countries {
		if strings.EqualFold(string(c), strings.TrimSpace(s)) {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown country %q", s)
}

// Namespace of struxml documents.
const Namespace = "urn:strusoft"

const (
	struxmlVersion = "01.00.000"
	emptyTime      = "1970-01-01T00:00:00.000"
	nilGUID        = "00000000-0000-0000-0000-000000000000"
)

// LoadsSection maps to <loads> inside <entities>.
type LoadsSection struct {
	PointLoads       []*loads.PointLoad       `xml:"point_load"`
	LineLoads        []*loads.LineLoad        `xml:"line_load"`
	LoadCases        []*loads.LoadCase        `xml:"load_case"`
	LoadCombinations []*loads.LoadCombination `xml:"load_combination"`
}

// Entities maps to <entities>.
type Entities struct {
	Bars          []*Bar          `xml:"bar"`
	PointSupports []*PointSupport `xml:"point_support"`
	Loads         LoadsSection    `xml:"loads"`
}

type Materials struct {
	Materials []*Material `xml:"material"`
}

type Sections struct {
	Sections []*Section `xml:"section"`
}

// Model is the struxml <database> root.
type Model struct {
	XMLName        xml.Name `xml:"urn:strusoft database"`
	StruxmlVersion string   `xml:"struxml_version,attr"`
	SourceSoftware string   `xml:"source_software,attr"`
	StartTime      string   `xml:"start_time,attr"`
	EndTime        string   `xml:"end_time,attr"`
	GUID           string   `xml:"guid,attr"`
	ConvertID      string   `xml:"convertid,attr"`
	Standard       string   `xml:"standard,attr"`
	Country        Country  `xml:"country,attr"`

	Entities  Entities  `xml:"entities"`
	Materials Materials `xml:"materials"`
	Sections  Sections  `xml:"sections"`
}

// New creates an empty model for country.
func New(country Country) *Model {
	return &Model{
		StruxmlVersion: struxmlVersion,
		StartTime:      emptyTime,
		EndTime:        emptyTime,
		GUID:           uuid.NewString(),
		ConvertID:      nilGUID,
		Standard:       "EC",
		Country:        country,
	}
}

// ValidationError represents a model consistency error
type ValidationError struct {
	msg string
}

func (e *ValidationError) Error() string {
	return e.msg
}

func invalid(format string, args ...any) error {
	return &ValidationError{msg: fmt.Sprintf(format, args...)}
}

// AddElements adds bars and registers their materials and sections. Bars
// already in the model are skipped. A bar named by a bare identifier gets
// a running number, e.g. "B" becomes "B.1". Nothing is added when a bar
// fails validation.
func (m *Model) AddElements(bars []*Bar, materials []*Material, sections []*Section) error {
	hasMaterial := func(guid string) bool {
		if m.MaterialByGUID(guid) != nil {
			return true
		}
		for _, mat := range materials {
			if mat.GUID == guid {
				return true
			}
		}
		return false
	}
	hasSection := func(guid string) bool {
		if m.SectionByGUID(guid) != nil {
			return true
		}
		for _, sec := range sections {
			if sec.GUID == guid {
				return true
			}
		}
		return false
	}
	for _, b := range bars {
		if m.hasGUID(b.GUID) {
			continue
		}
		if !hasMaterial(b.BarPart.ComplexMaterial) {
			return invalid("bar %s: material %s is not in the model", b.Name, b.BarPart.ComplexMaterial)
		}
		if !hasSection(b.BarPart.ComplexSection) {
			return invalid("bar %s: section %s is not in the model", b.Name, b.BarPart.ComplexSection)
		}
	}

	for _, mat := range materials {
		if m.MaterialByGUID(mat.GUID) == nil {
			m.Materials.Materials = append(m.Materials.Materials, mat)
		}
	}
	for _, sec := range sections {
		if m.SectionByGUID(sec.GUID) == nil {
			m.Sections.Sections = append(m.Sections.Sections, sec)
		}
	}
	for _, b := range bars {
		if m.hasGUID(b.GUID) {
			continue
		}
		if !strings.Contains(b.Name, ".") {
			b.Name = fmt.Sprintf("%s.%d", b.Name, m.countPrefix(b.Name)+1)
			b.BarPart.Name = b.Name
		}
		m.Entities.Bars = append(m.Entities.Bars, b)
	}
	return nil
}

func (m *Model) countPrefix(identifier string) int {
	n := 0
	for _, b := range m.Entities.Bars {
		if strings.HasPrefix(b.Name, identifier+".") {
			n++
		}
	}
	for _, s := range m.Entities.PointSupports {
		if strings.HasPrefix(s.Name, identifier+".") {
			n++
		}
	}
	return n
}

// AddSupports adds point supports, numbering them like bars.
func (m *Model) AddSupports(supports []*PointSupport) {
	for _, s := range supports {
		if m.hasGUID(s.GUID) {
			continue
		}
		if !strings.Contains(s.Name, ".") {
			s.Name = fmt.Sprintf("%s.%d", s.Name, m.countPrefix(s.Name)+1)
		}
		m.Entities.PointSupports = append(m.Entities.PointSupports, s)
	}
}

// AddLoadCases adds load cases. Names must be unique.
func (m *Model) AddLoadCases(cases []*loads.LoadCase) error {
	for _, lc := range cases {
		if m.hasGUID(lc.GUID) {
			continue
		}
		if m.LoadCaseByName(lc.Name) != nil {
			return invalid("duplicate load case name %q", lc.Name)
		}
		m.Entities.Loads.LoadCases = append(m.Entities.Loads.LoadCases, lc)
	}
	return nil
}

// AddLoadCombinations adds combinations whose load cases are all in the model.
func (m *Model) AddLoadCombinations(combos []*loads.LoadCombination) error {
	for _, c := range combos {
		if m.hasGUID(c.GUID) {
			continue
		}
		if err := c.Resolve(m.Entities.Loads.LoadCases); err != nil {
			return invalid("%v", err)
		}
		m.Entities.Loads.LoadCombinations = append(m.Entities.Loads.LoadCombinations, c)
	}
	return nil
}

// AddLoads adds point and line loads. Their load case must be in the model.
func (m *Model) AddLoads(ls []loads.Load) error {
	for _, l := range ls {
		if m.hasGUID(l.ID()) {
			continue
		}
		if m.LoadCaseByGUID(l.LoadCaseGUID()) == nil {
			return invalid("load %s: load case %s is not in the model", l.ID(), l.LoadCaseGUID())
		}
		switch v := l.(type) {
		case *loads.PointLoad:
			m.Entities.Loads.PointLoads = append(m.Entities.Loads.PointLoads, v)
		case *loads.LineLoad:
			m.Entities.Loads.LineLoads = append(m.Entities.Loads.LineLoads, v)
		default:
			return invalid("unsupported load type %T", l)
		}
	}
	return nil
}

// Validate checks that every reference in the model resolves.
func (m *Model) Validate() error {
	if _, err := ParseCountry(string(m.Country)); err != nil {
		return invalid("%v", err)
	}
	seen := make(map[string]bool)
	for _, e := range m.entities() {
		if !e.Valid() {
			return invalid("malformed guid %q", e.GUID)
		}
		if seen[e.GUID] {
			return invalid("duplicate guid %s", e.GUID)
		}
		seen[e.GUID] = true
	}
	for _, b := range m.Entities.Bars {
		if m.MaterialByGUID(b.BarPart.ComplexMaterial) == nil {
			return invalid("bar %s: unknown material %s", b.Name, b.BarPart.ComplexMaterial)
		}
		if m.SectionByGUID(b.BarPart.ComplexSection) == nil {
			return invalid("bar %s: unknown section %s", b.Name, b.BarPart.ComplexSection)
		}
	}
	for _, l := range m.loads() {
		if m.LoadCaseByGUID(l.LoadCaseGUID()) == nil {
			return invalid("load %s: unknown load case %s", l.ID(), l.LoadCaseGUID())
		}
	}
	for _, c := range m.Entities.Loads.LoadCombinations {
		if err := c.Resolve(m.Entities.Loads.LoadCases); err != nil {
			return invalid("%v", err)
		}
	}
	return nil
}

func (m *Model) loads() []loads.Load {
	var out []loads.Load
	for _, p := range m.Entities.Loads.PointLoads {
		out = append(out, p)
	}
	for _, l := range m.Entities.Loads.LineLoads {
		out = append(out, l)
	}
	return out
}

func (m *Model) entities() []entity.Entity {
	var out []entity.Entity
	for _, b := range m.Entities.Bars {
		out = append(out, b.Entity)
	}
	for _, s := range m.Entities.PointSupports {
		out = append(out, s.Entity)
	}
	for _, p := range m.Entities.Loads.PointLoads {
		out = append(out, p.Entity)
	}
	for _, l := range m.Entities.Loads.LineLoads {
		out = append(out, l.Entity)
	}
	for _, lc := range m.Entities.Loads.LoadCases {
		out = append(out, lc.Entity)
	}
	for _, c := range m.Entities.Loads.LoadCombinations {
		out = append(out, c.Entity)
	}
	return out
}

func (m *Model) hasGUID(guid string) bool {
	for _, e := range m.entities() {
		if e.GUID == guid {
			return true
		}
	}
	return false
}

func (m *Model) MaterialByGUID(guid string) *Material {
	for _, mat := range m.Materials.Materials {
		if mat.GUID == guid {
			return mat
		}
	}
	return nil
}

func (m *Model) MaterialByName(name string) *Material {
	for _, mat := range m.Materials.Materials {
		if mat.Name == name {
			return mat
		}
	}
	return nil
}

func (m *Model) SectionByGUID(guid string) *Section {
	for _, s := range m.Sections.Sections {
		if s.GUID == guid {
			return s
		}
	}
	return nil
}

func (m *Model) SectionByName(name string) *Section {
	for _, s := range m.Sections.Sections {
		if s.Name == name {
			return s
		}
	}
	return nil
}

func (m *Model) LoadCaseByGUID(guid string) *loads.LoadCase {
	for _, lc := range m.Entities.Loads.LoadCases {
		if lc.GUID == guid {
			return lc
		}
	}
	return nil
}

func (m *Model) LoadCaseByName(name string) *loads.LoadCase {
	for _, lc := range m.Entities.Loads.LoadCases {
		if lc.Name == name {
			return lc
		}
	}
	return nil
}

func normalizeName(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
