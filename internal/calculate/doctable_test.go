package calculate

import (
	"encoding/xml"
	"errors"
	"testing"

	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResTypeAndDefaultCaseIndex(t *testing.T) {
	tests := []struct {
		proc    ListProc
		resType int
		index   int
	}{
		{NodalDisplacementsLoadCase, ResTypeLoadCase, AllLoadCases},
		{NodalDisplacementsLoadCombination, ResTypeLoadComb, AllLoadCombinations},
		{PointSupportReactionsLoadCase, ResTypeLoadCase, AllLoadCases},
		{PointSupportReactionsLoadCombination, ResTypeLoadComb, AllLoadCombinations},
		{PointSupportReactionsMaxComb, ResTypeNone, 0},
		{BarsDisplacementsLoadCase, ResTypeLoadCase, AllLoadCases},
		{BarsDisplacementsLoadCombination, ResTypeLoadComb, AllLoadCombinations},
		{BarsInternalForcesLoadCase, ResTypeLoadCase, AllLoadCases},
		{BarsInternalForcesLoadCombination, ResTypeLoadComb, AllLoadCombinations},
		{BarsInternalForcesMaxOfLoadCombinationMinMax, ResTypeNone, 0},
		{BarsSteelDesignUtilization, ResTypeNone, 0},
		{ShellDisplacementLoadCase, ResTypeLoadCase, AllLoadCases},
		{ShellDisplacementLoadCombination, ResTypeLoadComb, AllLoadCombinations},
		{NodalVibrationShape, ResTypeVibrationMode, AllLoadCombinations},
		{EigenFrequencies, ResTypeNone, 0},
		{QuantityEstimationConcrete, ResTypeNone, 0},
		{QuantityEstimationSteel, ResTypeNone, 0},
		{QuantityEstimationTimber, ResTypeNone, 0},
		{FeaNode, ResTypeNone, 0},
		{FeaBar, ResTypeNone, 0},
		{FeaShell, ResTypeNone, 0},
	}
	for _, tt := range tests {
		t.Run(string(tt.proc), func(t *testing.T) {
			rt, err := ResType(tt.proc)
			require.NoError(t, err)
			assert.Equal(t, tt.resType, rt)

			idx, err := DefaultCaseIndex(tt.proc)
			require.NoError(t, err)
			assert.Equal(t, tt.index, idx)
		})
	}
}

func TestConstructionStageIsUnmapped(t *testing.T) {
	_, err := ResType(NodalDisplacementsConstructionStage)
	assert.ErrorIs(t, err, ErrUnknownResultType)

	_, err = DefaultCaseIndex(NodalDisplacementsConstructionStage)
	assert.ErrorIs(t, err, ErrUnknownCaseIndex)

	_, err = NewDocTable(NodalDisplacementsConstructionStage)
	assert.True(t, errors.Is(err, ErrUnknownCaseIndex))

	_, err = NewDocTable(NodalDisplacementsConstructionStage, WithCaseIndex(0))
	assert.True(t, errors.Is(err, ErrUnknownResultType))
}

func TestEveryListProcIsCovered(t *testing.T) {
	for _, l := range ListProcs() {
		if l == NodalDisplacementsConstructionStage {
			continue
		}
		_, err := NewDocTable(l)
		assert.NoError(t, err, l)
	}
}

func TestGetOptions(t *testing.T) {
	assert.Equal(t, &Options{Bar: BarResultByStep, Step: 0.5}, GetOptions(BarsInternalForcesLoadCase))
	assert.Equal(t, &Options{Surface: 1}, GetOptions(ShellDisplacementLoadCombination))
	assert.Nil(t, GetOptions(PointSupportReactionsLoadCase))
	assert.Nil(t, GetOptions(EigenFrequencies))
}

func TestNewDocTableCaseIndexOverride(t *testing.T) {
	dt, err := NewDocTable(NodalDisplacementsLoadCase, WithCaseIndex(2))
	require.NoError(t, err)
	assert.Equal(t, 2, dt.CaseIndex)
	assert.Equal(t, ResTypeLoadCase, dt.ResType)
	assert.Equal(t, "2100", dt.FemDesignVersion)
	assert.Empty(t, dt.Units)
}

func TestNewDocTableUnits(t *testing.T) {
	u := results.DefaultUnits()
	u.Force = "N"
	dt, err := NewDocTable(PointSupportReactionsLoadCase, WithUnits(u))
	require.NoError(t, err)
	require.Len(t, dt.Units, 7)
	for i, unit := range dt.Units {
		assert.Equal(t, i, unit.Magnitude)
	}
	assert.Equal(t, "N", dt.Units[results.MagnitudeForce].Unit)

	u.Stress = "psi"
	_, err = NewDocTable(PointSupportReactionsLoadCase, WithUnits(u))
	assert.Error(t, err)
}

func TestCmdDocTableXML(t *testing.T) {
	dt, err := NewDocTable(PointSupportReactionsLoadCase)
	require.NoError(t, err)
	out, err := xml.Marshal(NewCmdDocTable(dt))
	require.NoError(t, err)

	want := `<cmddoctable command="; CXL $MODULE DOCTABLE">` +
		`<doctable><version>2100</version><listproc>ResPtSupportReactions</listproc>` +
		`<index>-65536</index><restype>1</restype></doctable></cmddoctable>`
	assert.Equal(t, want, string(out))
}

func TestCmdDocTableXMLWithOptions(t *testing.T) {
	dt, err := NewDocTable(BarsInternalForcesLoadCombination, WithCaseIndex(0))
	require.NoError(t, err)
	out, err := xml.Marshal(NewCmdDocTable(dt))
	require.NoError(t, err)

	assert.Contains(t, string(out), `<listproc>CoResBarsIF</listproc><index>0</index>`)
	assert.Contains(t, string(out), `<options><bar>1</bar><step>0.5</step><surface>0</surface></options><restype>3</restype>`)
}

func TestCmdDocTableDecode(t *testing.T) {
	in := `<cmddoctable command="; CXL $MODULE DOCTABLE"><doctable><version>2100</version>` +
		`<listproc>CoResNodeDisp</listproc><index>-1</index>` +
		`<units><magnitude>0</magnitude><unit>mm</unit></units><restype>3</restype></doctable></cmddoctable>`
	var c CmdDocTable
	require.NoError(t, xml.Unmarshal([]byte(in), &c))
	require.NotNil(t, c.DocTable)
	assert.Equal(t, NodalDisplacementsLoadCombination, c.DocTable.ListProc)
	assert.Equal(t, AllLoadCombinations, c.DocTable.CaseIndex)
	assert.Equal(t, []results.Units{{Magnitude: 0, Unit: "mm"}}, c.DocTable.Units)
}

func TestParseListProc(t *testing.T) {
	l, err := ParseListProc("ResBarsIF")
	require.NoError(t, err)
	assert.Equal(t, BarsInternalForcesLoadCase, l)

	l, err = ParseListProc("eigenfrequencies")
	require.NoError(t, err)
	assert.Equal(t, EigenFrequencies, l)

	_, err = ParseListProc("SurfaceStresses")
	assert.Error(t, err)

	_, err = ListProc("Bogus").Code()
	assert.Error(t, err)
}

func TestListProcsFor(t *testing.T) {
	procs, err := ListProcsFor(results.KindPointSupportReaction)
	require.NoError(t, err)
	assert.Equal(t, []ListProc{PointSupportReactionsLoadCase, PointSupportReactionsLoadCombination}, procs)

	_, err = ListProcsFor(results.Kind("Stress"))
	assert.Error(t, err)
}

func TestNewDocTableWritesCanonicalUnits(t *testing.T) {
	u := results.DefaultUnits()
	u.Force = "kn"
	u.Stress = "mpa"

	dt, err := NewDocTable(PointSupportReactionsLoadCase, WithUnits(u))
	require.NoError(t, err)
	assert.Equal(t, "kN", dt.Units[results.MagnitudeForce].Unit)
	assert.Equal(t, "MPa", dt.Units[results.MagnitudeStress].Unit)

	raw, err := xml.Marshal(NewCmdDocTable(dt))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "<unit>kN</unit>")
	assert.NotContains(t, string(raw), "<unit>kn</unit>")
}
