package calculate

import (
	"encoding/xml"
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/alexiusacademia/gofemdesign/internal/version"
)

var (
	// ErrUnknownResultType is returned when no restype code is known for a
	// list procedure.
	ErrUnknownResultType = errors.New("restype not implemented")

	// ErrUnknownCaseIndex is returned when no default case index is known
	// for a list procedure.
	ErrUnknownCaseIndex = errors.New("default case index not known")
)

// Case index values understood by FEM-Design.
const (
	AllLoadCases        = -65536
	AllLoadCombinations = -1
)

// Result type codes of the doctable restype element.
//
//	LT_CASE = 1
//	LT_CS   = 2 (construction stage)
//	LT_COMB = 3
const (
	ResTypeNone          = 0
	ResTypeLoadCase      = 1
	ResTypeLoadComb      = 3
	ResTypeVibrationMode = 6
)

// caseIndependent reports whether a procedure lists results that do not
// belong to a single load case or combination.
func caseIndependent(r string) bool {
	return strings.HasPrefix(r, "QuantityEstimation") ||
		strings.HasSuffix(r, "Utilization") ||
		strings.Contains(r, "MaxComb") ||
		strings.HasPrefix(r, "FeaNode") ||
		strings.HasPrefix(r, "FeaBar") ||
		strings.HasPrefix(r, "FeaShell") ||
		strings.HasPrefix(r, "EigenFrequencies") ||
		strings.Contains(r, "MaxOfLoadCombinationMinMax")
}

// ResType returns the restype code for a list procedure.
func ResType(l ListProc) (int, error) {
	r := string(l)
	switch {
	case caseIndependent(r):
		return ResTypeNone, nil
	case strings.HasSuffix(r, "LoadCase"):
		return ResTypeLoadCase, nil
	case strings.HasSuffix(r, "LoadCombination"):
		return ResTypeLoadComb, nil
	case strings.HasPrefix(r, "NodalVibrationShape"):
		return ResTypeVibrationMode, nil
	}
	return 0, fmt.Errorf("%w: 'restype' index for %s", ErrUnknownResultType, r)
}

// DefaultCaseIndex returns the case index that selects every case or
// combination the procedure applies to.
func DefaultCaseIndex(l ListProc) (int, error) {
	r := string(l)
	switch {
	case caseIndependent(r):
		return 0, nil
	case strings.HasSuffix(r, "LoadCase"):
		return AllLoadCases, nil
	case strings.HasSuffix(r, "LoadCombination"), strings.HasPrefix(r, "NodalVibrationShape"):
		return AllLoadCombinations, nil
	}
	return 0, fmt.Errorf("%w: ResultType.%s", ErrUnknownCaseIndex, r)
}

// Bar result positions of the options element.
const (
	BarResultNodes  = 0
	BarResultByStep = 1
)

// Options selects where along bars and on shells results are listed.
type Options struct {
	Bar     int     `xml:"bar"`
	Step    float64 `xml:"step"`
	Surface int     `xml:"surface"`
}

// GetOptions returns the listing options for bar and shell procedures, or
// nil when the procedure takes none.
func GetOptions(l ListProc) *Options {
	r := string(l)
	switch {
	case strings.HasPrefix(r, "Bars"):
		return &Options{Bar: BarResultByStep, Step: 0.5}
	case strings.HasPrefix(r, "Shell"):
		return &Options{Surface: 1}
	}
	return nil
}

// DocTable selects a result table and the load cases or combinations to
// list it for.
type DocTable struct {
	FemDesignVersion string          `xml:"version"`
	ListProc         ListProc        `xml:"listproc"`
	CaseIndex        int             `xml:"index"`
	Units            []results.Units `xml:"units"`
	Option           *Options        `xml:"options,omitempty"`
	ResType          int             `xml:"restype"`
}

// DocTableOption customises NewDocTable.
type DocTableOption func(*docTableConfig)

type docTableConfig struct {
	caseIndex *int
	units     *results.UnitResults
}

// WithCaseIndex lists a single load case or combination by index instead
// of all of them.
func WithCaseIndex(i int) DocTableOption {
	return func(c *docTableConfig) { c.caseIndex = &i }
}

// WithUnits sets the units results are listed in.
func WithUnits(u results.UnitResults) DocTableOption {
	return func(c *docTableConfig) { c.units = &u }
}

// NewDocTable builds a doctable for l. Without WithCaseIndex the table
// covers all load cases or all load combinations.
func NewDocTable(l ListProc, opts ...DocTableOption) (*DocTable, error) {
	var cfg docTableConfig
	for _, o := range opts {
		o(&cfg)
	}
	if _, err := l.Code(); err != nil {
		return nil, err
	}

	var idx int
	if cfg.caseIndex != nil {
		idx = *cfg.caseIndex
	} else {
		i, err := DefaultCaseIndex(l)
		if err != nil {
			return nil, err
		}
		idx = i
	}
	resType, err := ResType(l)
	if err != nil {
		return nil, err
	}

	dt := &DocTable{
		FemDesignVersion: version.FemDesignVersion,
		ListProc:         l,
		CaseIndex:        idx,
		Option:           GetOptions(l),
		ResType:          resType,
	}
	if cfg.units != nil {
		u, err := cfg.units.Normalize()
		if err != nil {
			return nil, err
		}
		dt.Units = results.GetUnits(u)
	}
	return dt, nil
}

const cmdDocTableCommand = "; CXL $MODULE DOCTABLE"

// CmdDocTable wraps a doctable into a script command.
type CmdDocTable struct {
	XMLName  xml.Name  `xml:"cmddoctable"`
	Command  string    `xml:"command,attr"`
	DocTable *DocTable `xml:"doctable"`
}

func NewCmdDocTable(dt *DocTable) *CmdDocTable {
	return &CmdDocTable{Command: cmdDocTableCommand, DocTable: dt}
}
