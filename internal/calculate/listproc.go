package calculate

import (
	"fmt"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/results"
)

// ListProc names a FEM-Design list procedure, i.e. a result table the list
// generator can write. The Go name is what the doctable lookups match on;
// Code is what goes into the script.
type ListProc string

const (
	NodalDisplacementsLoadCase                   ListProc = "NodalDisplacementsLoadCase"
	NodalDisplacementsLoadCombination            ListProc = "NodalDisplacementsLoadCombination"
	NodalDisplacementsConstructionStage          ListProc = "NodalDisplacementsConstructionStage"
	PointSupportReactionsLoadCase                ListProc = "PointSupportReactionsLoadCase"
	PointSupportReactionsLoadCombination         ListProc = "PointSupportReactionsLoadCombination"
	PointSupportReactionsMaxComb                 ListProc = "PointSupportReactionsMaxComb"
	BarsDisplacementsLoadCase                    ListProc = "BarsDisplacementsLoadCase"
	BarsDisplacementsLoadCombination             ListProc = "BarsDisplacementsLoadCombination"
	BarsInternalForcesLoadCase                   ListProc = "BarsInternalForcesLoadCase"
	BarsInternalForcesLoadCombination            ListProc = "BarsInternalForcesLoadCombination"
	BarsInternalForcesMaxOfLoadCombinationMinMax ListProc = "BarsInternalForcesMaxOfLoadCombinationMinMax"
	BarsSteelDesignUtilization                   ListProc = "BarsSteelDesignUtilization"
	ShellDisplacementLoadCase                    ListProc = "ShellDisplacementLoadCase"
	ShellDisplacementLoadCombination             ListProc = "ShellDisplacementLoadCombination"
	NodalVibrationShape                          ListProc = "NodalVibrationShape"
	EigenFrequencies                             ListProc = "EigenFrequencies"
	QuantityEstimationConcrete                   ListProc = "QuantityEstimationConcrete"
	QuantityEstimationSteel                      ListProc = "QuantityEstimationSteel"
	QuantityEstimationTimber                     ListProc = "QuantityEstimationTimber"
	FeaNode                                      ListProc = "FeaNode"
	FeaBar                                       ListProc = "FeaBar"
	FeaShell                                     ListProc = "FeaShell"
)

// listProcCodes maps list procedures to the identifiers of fdscript.xsd.
var listProcCodes = []struct {
	proc ListProc
	code string
}{
	{NodalDisplacementsLoadCase, "ResNodeDisp"},
	{NodalDisplacementsLoadCombination, "CoResNodeDisp"},
	{NodalDisplacementsConstructionStage, "CsResNodeDisp"},
	{PointSupportReactionsLoadCase, "ResPtSupportReactions"},
	{PointSupportReactionsLoadCombination, "CoResPtSupportReactions"},
	{PointSupportReactionsMaxComb, "MaxComResPtSupportReactions"},
	{BarsDisplacementsLoadCase, "ResBarsDisp"},
	{BarsDisplacementsLoadCombination, "CoResBarsDisp"},
	{BarsInternalForcesLoadCase, "ResBarsIF"},
	{BarsInternalForcesLoadCombination, "CoResBarsIF"},
	{BarsInternalForcesMaxOfLoadCombinationMinMax, "MaxComResBarsIF"},
	{BarsSteelDesignUtilization, "SteelBarUtilization"},
	{ShellDisplacementLoadCase, "ResShellDisp"},
	{ShellDisplacementLoadCombination, "CoResShellDisp"},
	{NodalVibrationShape, "ResNodeVibrShape"},
	{EigenFrequencies, "EigenFrequencies"},
	{QuantityEstimationConcrete, "QuantityEstimationConcrete"},
	{QuantityEstimationSteel, "QuantityEstimationSteel"},
	{QuantityEstimationTimber, "QuantityEstimationTimber"},
	{FeaNode, "FeaNode"},
	{FeaBar, "FeaBar"},
	{FeaShell, "FeaShell"},
}

// ListProcs returns every known list procedure.
func ListProcs() []ListProc {
	out := make([]ListProc, len(listProcCodes))
	for i, c := range listProcCodes {
		out[i] = c.proc
	}
	return out
}

// ParseListProc accepts either the Go name or the script code.
func ParseListProc(s string) (ListProc, error) {
	s = strings.TrimSpace(s)
	for _, c := range listProcCodes {
		if strings.EqualFold(string(c.proc), s) || strings.EqualFold(c.code, s) {
			return c.proc, nil
		}
	}
	return "", fmt.Errorf("unknown list procedure %q", s)
}

// Code returns the script identifier of the procedure.
func (l ListProc) Code() (string, error) {
	for _, c := range listProcCodes {
		if c.proc == l {
			return c.code, nil
		}
	}
	return "", fmt.Errorf("unknown list procedure %q", string(l))
}

func (l ListProc) MarshalText() ([]byte, error) {
	code, err := l.Code()
	if err != nil {
		return nil, err
	}
	return []byte(code), nil
}

func (l *ListProc) UnmarshalText(b []byte) error {
	p, err := ParseListProc(string(b))
	if err != nil {
		return err
	}
	*l = p
	return nil
}

// listProcsByKind are the procedures that produce a result record kind.
var listProcsByKind = map[results.Kind][]ListProc{
	results.KindNodalDisplacement:    {NodalDisplacementsLoadCase, NodalDisplacementsLoadCombination},
	results.KindPointSupportReaction: {PointSupportReactionsLoadCase, PointSupportReactionsLoadCombination},
	results.KindBarDisplacement:      {BarsDisplacementsLoadCase, BarsDisplacementsLoadCombination},
	results.KindBarInternalForce:     {BarsInternalForcesLoadCase, BarsInternalForcesLoadCombination},
	results.KindEigenFrequency:       {EigenFrequencies},
}

// ListProcsFor returns the list procedures whose output parses into kind.
func ListProcsFor(kind results.Kind) ([]ListProc, error) {
	procs, ok := listProcsByKind[kind]
	if !ok {
		return nil, fmt.Errorf("no list procedure produces %s results", kind)
	}
	return procs, nil
}
