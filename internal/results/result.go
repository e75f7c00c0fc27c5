// Package results reads the tables FEM-Design writes with its list
// generator (LISTGEN) into typed records.
//
// A listing is tab separated and made of blocks. Each block starts with a
// header naming the table and the load case or combination, followed by a
// column line, an optional unit line in brackets and the data rows. Blank
// lines separate blocks:
//
//	Point support group, Reactions, Ultimate - Load case: Liveload
//	ID	Node	Fx'	Fy'	Fz'	Mx'	My'	Mz'	Fr	Mr
//	[-]	[-]	[kN]	[kN]	[kN]	[kNm]	[kNm]	[kNm]	[kN]	[kNm]
//	S.1	1	0.000	0.000	35.000	0.000	0.000	0.000	35.000	0.000
package results

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind names a record type.
type Kind string

const (
	KindNodalDisplacement    Kind = "NodalDisplacement"
	KindPointSupportReaction Kind = "PointSupportReaction"
	KindBarDisplacement      Kind = "BarDisplacement"
	KindBarInternalForce     Kind = "BarInternalForce"
	KindEigenFrequency       Kind = "EigenFrequency"
)

// Result is a single row of a listing.
type Result interface {
	Kind() Kind
	CaseIdentifier() string
	// Fields returns the row formatted for display, matching Columns(Kind()).
	Fields() []string
}

// NodalDisplacement of a finite element node.
type NodalDisplacement struct {
	Id     string
	NodeId int
	Ex     float64
	Ey     float64
	Ez     float64
	Fix    float64
	Fiy    float64
	Fiz    float64
	CaseId string
}

// PointSupportReaction at a point support.
type PointSupportReaction struct {
	Id     string
	NodeId int
	Fx     float64
	Fy     float64
	Fz     float64
	Mx     float64
	My     float64
	Mz     float64
	Fr     float64
	Mr     float64
	CaseId string
}

// BarDisplacement at a position along a bar.
type BarDisplacement struct {
	Id     string
	Pos    float64
	Ex     float64
	Ey     float64
	Ez     float64
	Fix    float64
	Fiy    float64
	Fiz    float64
	CaseId string
}

// BarInternalForce at a position along a bar.
type BarInternalForce struct {
	Id     string
	Pos    float64
	N      float64
	Ty     float64
	Tz     float64
	Mt     float64
	My     float64
	Mz     float64
	CaseId string
}

// EigenFrequency of a vibration shape with its mass participation.
type EigenFrequency struct {
	ShapeId   int
	Frequency float64
	Period    float64
	MassX     float64
	MassY     float64
	MassZ     float64
}

func (r NodalDisplacement) Kind() Kind { return KindNodalDisplacement }
func (r NodalDisplacement) CaseIdentifier() string { return r.CaseId }
func (r PointSupportReaction) Kind() Kind { return KindPointSupportReaction }
func (r PointSupportReaction) CaseIdentifier() string { return r.CaseId }
func (r BarDisplacement) Kind() Kind { return KindBarDisplacement }
func (r BarDisplacement) CaseIdentifier() string { return r.CaseId }
func (r BarInternalForce) Kind() Kind { return KindBarInternalForce }
func (r BarInternalForce) CaseIdentifier() string { return r.CaseId }
func (r EigenFrequency) Kind() Kind { return KindEigenFrequency }
func (r EigenFrequency) CaseIdentifier() string { return "" }

func f3(v float64) string { return strconv.FormatFloat(v, 'f', 3, 64) }

func (r NodalDisplacement) Fields() []string {
	return []string{r.Id, strconv.Itoa(r.NodeId), f3(r.Ex), f3(r.Ey), f3(r.Ez), f3(r.Fix), f3(r.Fiy), f3(r.Fiz), r.CaseId}
}

func (r PointSupportReaction) Fields() []string {
	return []string{r.Id, strconv.Itoa(r.NodeId), f3(r.Fx), f3(r.Fy), f3(r.Fz), f3(r.Mx), f3(r.My), f3(r.Mz), f3(r.Fr), f3(r.Mr), r.CaseId}
}

func (r BarDisplacement) Fields() []string {
	return []string{r.Id, f3(r.Pos), f3(r.Ex), f3(r.Ey), f3(r.Ez), f3(r.Fix), f3(r.Fiy), f3(r.Fiz), r.CaseId}
}

func (r BarInternalForce) Fields() []string {
	return []string{r.Id, f3(r.Pos), f3(r.N), f3(r.Ty), f3(r.Tz), f3(r.Mt), f3(r.My), f3(r.Mz), r.CaseId}
}

func (r EigenFrequency) Fields() []string {
	return []string{strconv.Itoa(r.ShapeId), f3(r.Frequency), f3(r.Period), f3(r.MassX), f3(r.MassY), f3(r.MassZ)}
}

func (r PointSupportReaction) String() string {
	return fmt.Sprintf("%s, Node %d: Fx=%.3f Fy=%.3f Fz=%.3f (%s)", r.Id, r.NodeId, r.Fx, r.Fy, r.Fz, r.CaseId)
}

func (r NodalDisplacement) String() string {
	return fmt.Sprintf("%s, Node %d: ex=%.3f ey=%.3f ez=%.3f (%s)", r.Id, r.NodeId, r.Ex, r.Ey, r.Ez, r.CaseId)
}

// kindSpec describes how a listing block of one kind is recognised and read.
type kindSpec struct {
	kind    Kind
	header  *regexp.Regexp
	columns []string
	decode  func(f *fields, caseID string) Result
}

var kinds = []kindSpec{
	{
		kind:    KindNodalDisplacement,
		header:  regexp.MustCompile(`(?i)^nodal displacements\b`),
		columns: []string{"ID", "Node", "ex'", "ey'", "ez'", "fix'", "fiy'", "fiz'", "Case"},
		decode: func(f *fields, c string) Result {
			return NodalDisplacement{Id: f.str(), NodeId: f.int(), Ex: f.float(), Ey: f.float(), Ez: f.float(),
				Fix: f.float(), Fiy: f.float(), Fiz: f.float(), CaseId: c}
		},
	},
	{
		kind:    KindPointSupportReaction,
		header:  regexp.MustCompile(`(?i)^point support group, reactions\b`),
		columns: []string{"ID", "Node", "Fx'", "Fy'", "Fz'", "Mx'", "My'", "Mz'", "Fr", "Mr", "Case"},
		decode: func(f *fields, c string) Result {
			return PointSupportReaction{Id: f.str(), NodeId: f.int(), Fx: f.float(), Fy: f.float(), Fz: f.float(),
				Mx: f.float(), My: f.float(), Mz: f.float(), Fr: f.float(), Mr: f.float(), CaseId: c}
		},
	},
	{
		kind:    KindBarDisplacement,
		header:  regexp.MustCompile(`(?i)^bars, displacements\b`),
		columns: []string{"ID", "Pos", "ex'", "ey'", "ez'", "fix'", "fiy'", "fiz'", "Case"},
		decode: func(f *fields, c string) Result {
			return BarDisplacement{Id: f.str(), Pos: f.float(), Ex: f.float(), Ey: f.float(), Ez: f.float(),
				Fix: f.float(), Fiy: f.float(), Fiz: f.float(), CaseId: c}
		},
	},
	{
		kind:    KindBarInternalForce,
		header:  regexp.MustCompile(`(?i)^bars, internal forces\b`),
		columns: []string{"ID", "Pos", "N", "Ty'", "Tz'", "Mt", "My'", "Mz'", "Case"},
		decode: func(f *fields, c string) Result {
			return BarInternalForce{Id: f.str(), Pos: f.float(), N: f.float(), Ty: f.float(), Tz: f.float(),
				Mt: f.float(), My: f.float(), Mz: f.float(), CaseId: c}
		},
	},
	{
		kind:    KindEigenFrequency,
		header:  regexp.MustCompile(`(?i)^eigenfrequencies\b`),
		columns: []string{"Shape", "f [Hz]", "T [s]", "mx' [%]", "my' [%]", "mz' [%]"},
		decode: func(f *fields, _ string) Result {
			return EigenFrequency{ShapeId: f.int(), Frequency: f.float(), Period: f.float(),
				MassX: f.float(), MassY: f.float(), MassZ: f.float()}
		},
	},
}

// Kinds lists every record kind the reader understands.
func Kinds() []Kind {
	out := make([]Kind, len(kinds))
	for i, k := range kinds {
		out[i] = k.kind
	}
	return out
}

// ParseKind accepts a kind name in any letter case.
func ParseKind(s string) (Kind, error) {
	for _, k := range kinds {
		if strings.EqualFold(string(k.kind), strings.TrimSpace(s)) {
			return k.kind, nil
		}
	}
	return "", fmt.Errorf("unknown result kind %q", s)
}

// Columns returns the display header for records of kind.
func Columns(kind Kind) []string {
	for _, k := range kinds {
		if k.kind == kind {
			return k.columns
		}
	}
	return nil
}

// fields walks the cells of a row. The first conversion error sticks and
// later reads return zero values.
type fields struct {
	cells []string
	i     int
	err   error
}

func (f *fields) next() (string, bool) {
	if f.err != nil {
		return "", false
	}
	if f.i >= len(f.cells) {
		f.err = fmt.Errorf("expected at least %d columns, got %d", f.i+1, len(f.cells))
		return "", false
	}
	s := strings.TrimSpace(f.cells[f.i])
	f.i++
	return s, true
}

func (f *fields) str() string {
	s, _ := f.next()
	return s
}

func (f *fields) int() int {
	s, ok := f.next()
	if !ok {
		return 0
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		f.err = fmt.Errorf("column %d: %w", f.i, err)
	}
	return v
}

// float also accepts a decimal comma, as written with regional settings.
func (f *fields) float() float64 {
	s, ok := f.next()
	if !ok {
		return 0
	}
	if s == "-" || s == "" {
		return 0
	}
	if !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		f.err = fmt.Errorf("column %d: %w", f.i, err)
	}
	return v
}
