package loads

import (
	"encoding/xml"
	"testing"

	"github.com/alexiusacademia/gofemdesign/internal/geometry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLoadCaseType(t *testing.T) {
	tests := []struct {
		in   string
		want LoadCaseType
	}{
		{"Ordinary", LoadCaseStatic},
		{"static", LoadCaseStatic},
		{"dead_load", LoadCaseDeadLoad},
		{"DeadLoad", LoadCaseDeadLoad},
		{"Soil dead load", LoadCaseSoilDeadLoad},
		{"seis_sym", LoadCaseSeisSym},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseLoadCaseType(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	_, err := ParseLoadCaseType("snow")
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestParseLoadCaseDuration(t *testing.T) {
	for _, in := range []string{"long-term", "LongTerm", "long_term"} {
		got, err := ParseLoadCaseDuration(in)
		require.NoError(t, err)
		assert.Equal(t, DurationLongTerm, got)
	}
	_, err := ParseLoadCaseDuration("forever")
	assert.ErrorIs(t, err, ErrUnknownEnum)
}

func TestParseLoadCombType(t *testing.T) {
	got, err := ParseLoadCombType("ServiceabilityCharacteristic")
	require.NoError(t, err)
	assert.Equal(t, CombServiceabilityCharacteristic, got)

	got, err = ParseLoadCombType("ULS")
	require.NoError(t, err)
	assert.Equal(t, CombUltimateOrdinary, got)
}

func TestNewLoadCombination(t *testing.T) {
	dl, err := NewLoadCase("Deadload", LoadCaseDeadLoad, DurationPermanent)
	require.NoError(t, err)
	ll, err := NewLoadCase("Liveload", LoadCaseStatic, DurationPermanent)
	require.NoError(t, err)

	uls, err := NewLoadCombination("ULS", CombUltimateOrdinary, []*LoadCase{dl, ll}, []float64{1.35, 1.5})
	require.NoError(t, err)
	assert.Equal(t, 1.35, uls.Factor(dl))
	assert.Equal(t, 1.5, uls.Factor(ll))

	_, err = NewLoadCombination("bad", CombUltimateOrdinary, []*LoadCase{dl}, []float64{1, 2})
	assert.Error(t, err)

	_, err = NewLoadCase("", LoadCaseStatic, DurationPermanent)
	assert.Error(t, err)
}

func TestLoadCombinationXML(t *testing.T) {
	dl, _ := NewLoadCase("DL", LoadCaseDeadLoad, DurationPermanent)
	c, err := NewLoadCombination("SLS", CombServiceabilityCharacteristic, []*LoadCase{dl}, []float64{1})
	require.NoError(t, err)

	out, err := xml.Marshal(struct {
		XMLName xml.Name `xml:"loads"`
		*LoadCombination
	}{LoadCombination: c})
	require.NoError(t, err)
	assert.Contains(t, string(out), `type="serviceability_characteristic"`)
	assert.Contains(t, string(out), `<load_case guid="`+dl.GUID+`" gamma="1"></load_case>`)

	var decoded LoadCombination
	require.NoError(t, xml.Unmarshal(out, &decoded))
	require.NoError(t, decoded.Resolve([]*LoadCase{dl}))
	assert.Same(t, dl, decoded.Cases[0].Case)

	assert.Error(t, decoded.Resolve(nil))
}

func TestNewPointLoad(t *testing.T) {
	ll, _ := NewLoadCase("LL", LoadCaseStatic, DurationShortTerm)
	p, err := NewPointLoad(geometry.Point3d{X: 6, Y: 2}, geometry.Vector3d{Z: -5}, ll, "", Force)
	require.NoError(t, err)
	assert.Equal(t, geometry.Vector3d{Z: -1}, p.Direction)
	assert.Equal(t, 5.0, p.Load.Val)
	assert.Equal(t, geometry.Vector3d{Z: -5}, p.Force())
	assert.Equal(t, ll.GUID, p.LoadCaseGUID())

	_, err = NewPointLoad(geometry.Point3d{}, geometry.Vector3d{}, ll, "", Force)
	assert.Error(t, err)
}

func TestNewLineLoad(t *testing.T) {
	ll, _ := NewLoadCase("LL", LoadCaseStatic, DurationShortTerm)
	edge, err := geometry.NewLineEdge(geometry.Point3d{X: 2, Y: 2}, geometry.Point3d{X: 10, Y: 2}, geometry.UnitZ)
	require.NoError(t, err)

	l, err := NewLineLoad(edge, geometry.Vector3d{Z: -2}, geometry.Vector3d{Z: -4}, ll, Force, "", true, true)
	require.NoError(t, err)
	require.Len(t, l.Load, 2)
	assert.Equal(t, 2.0, l.Load[0].Val)
	assert.Equal(t, 4.0, l.Load[1].Val)
	assert.Equal(t, 10.0, l.Load[1].X)
	assert.True(t, l.ConstLoadDir())

	_, err = NewLineLoad(edge, geometry.Vector3d{Z: -2}, geometry.Vector3d{X: 1}, ll, Force, "", true, true)
	assert.Error(t, err)
}
