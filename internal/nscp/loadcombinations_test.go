package nscp

import (
	"testing"

	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoverning(t *testing.T) {
	effects := LoadEffects{Dead: 50, Live: 30}

	mu, combo := Governing(effects, LoadCombinations)
	assert.InDelta(t, 108.0, mu, 1e-9)
	assert.Equal(t, "2", combo.ID)

	mu, combo = Governing(LoadEffects{Dead: 50}, SimplifiedCombinations)
	assert.InDelta(t, 70.0, mu, 1e-9)
	assert.Equal(t, "1", combo.ID)
}

func TestFactoredPicksLargerAlternative(t *testing.T) {
	// 1.2D + 1.6(Lr or R) + (1.0L or 0.5W)
	e, factors := LoadCombinations[2].Factored(LoadEffects{Dead: 10, Roof: 2, Rain: 5, Live: 1, Wind: 10})
	assert.InDelta(t, 12+8+5, e, 1e-9)
	assert.Equal(t, map[Kind]float64{Dead: 1.2, Rain: 1.6, Wind: 0.5}, factors)
}

func newCase(t *testing.T, name string, typ loads.LoadCaseType) *loads.LoadCase {
	t.Helper()
	lc, err := loads.NewLoadCase(name, typ, loads.DurationPermanent)
	require.NoError(t, err)
	return lc
}

func TestBuildGravity(t *testing.T) {
	dl := newCase(t, "DL", loads.LoadCaseDeadLoad)
	ll := newCase(t, "LL", loads.LoadCaseStatic)

	combos, err := Build(LoadCaseSet{Dead: dl, Live: ll}, LoadCombinations, "NSCP")
	require.NoError(t, err)

	var names []string
	for _, c := range combos {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"NSCP1", "NSCP2", "NSCP3"}, names)
	assert.Equal(t, 1.2, combos[1].Factor(dl))
	assert.Equal(t, 1.6, combos[1].Factor(ll))
	assert.Equal(t, loads.CombUltimateOrdinary, combos[0].Type)
}

func TestBuildWithAlternatives(t *testing.T) {
	set := LoadCaseSet{
		Dead: newCase(t, "DL", loads.LoadCaseDeadLoad),
		Live: newCase(t, "LL", loads.LoadCaseStatic),
		Wind: newCase(t, "WL", loads.LoadCaseStatic),
	}
	combos, err := Build(set, LoadCombinations, "C")
	require.NoError(t, err)

	var names []string
	for _, c := range combos {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"C1", "C2", "C3a", "C3b", "C4", "C6"}, names)
	assert.Equal(t, 0.5, combos[3].Factor(set[Wind]))
}

func TestBuildSeismic(t *testing.T) {
	set := LoadCaseSet{
		Dead:       newCase(t, "DL", loads.LoadCaseDeadLoad),
		Earthquake: newCase(t, "EQ", loads.LoadCaseSeisSxp),
	}
	combos, err := Build(set, LoadCombinations, "")
	require.NoError(t, err)
	require.NotEmpty(t, combos)

	last := combos[len(combos)-1]
	assert.Equal(t, "7", last.Name)
	assert.Equal(t, loads.CombUltimateSeismic, last.Type)
}

func TestBuildNeedsDeadLoad(t *testing.T) {
	_, err := Build(LoadCaseSet{Live: newCase(t, "LL", loads.LoadCaseStatic)}, LoadCombinations, "")
	assert.Error(t, err)
}
