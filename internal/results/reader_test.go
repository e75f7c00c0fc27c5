package results

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestParseReactions(t *testing.T) {
	rs, err := ParseFile(filepath.Join("testdata", "reactions.txt"))
	require.NoError(t, err)
	require.Len(t, rs, 4)

	first, ok := rs[0].(PointSupportReaction)
	require.True(t, ok)
	assert.Equal(t, "S.1", first.Id)
	assert.Equal(t, 1, first.NodeId)
	assert.Equal(t, 26.51, first.Fz)
	assert.Equal(t, "Deadload", first.CaseIdentifier())

	last := rs[3].(PointSupportReaction)
	assert.Equal(t, 12, last.NodeId)
	assert.Equal(t, 14.125, last.Fz)
	assert.Equal(t, "Liveload", last.CaseId)
}

func TestParseDecimalCommaAndCRLF(t *testing.T) {
	rs, err := ParseFile(filepath.Join("testdata", "displacements.txt"))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	d := rs[1].(NodalDisplacement)
	assert.Equal(t, "B.1.6", d.Id)
	assert.Equal(t, -1.254, d.Ez)
	assert.Equal(t, "ULS", d.CaseId)
	assert.Equal(t, 0.004, rs[0].(NodalDisplacement).Fiy)
}

func TestParseEigenfrequencies(t *testing.T) {
	rs, err := ParseFile(filepath.Join("testdata", "eigen.txt"))
	require.NoError(t, err)
	require.Len(t, rs, 2)

	e := rs[0].(EigenFrequency)
	assert.Equal(t, 1, e.ShapeId)
	assert.Equal(t, 4.512, e.Frequency)
	assert.Equal(t, 81.06, e.MassZ)
	assert.Empty(t, e.CaseIdentifier())
}

func TestParseBarTables(t *testing.T) {
	in := strings.Join([]string{
		"Bars, Internal forces, Ultimate - Load case: Liveload",
		"ID\tPos\tN\tTy'\tTz'\tMt\tMy'\tMz'",
		"B.1\t0.000\t0.000\t0.000\t-14.875\t0.000\t0.000\t0.000",
		"B.1\t8.000\t0.000\t0.000\t14.125\t0.000\t0.000\t0.000",
		"",
		"Bars, Displacements, Ultimate - Load case: Liveload",
		"ID\tPos\tex'\tey'\tez'\tfix'\tfiy'\tfiz'",
		"B.1\t4.000\t0.000\t0.000\t-0.210\t0.000\t0.000\t0.000",
	}, "\n")

	rs, err := Parse(strings.NewReader(in), "")
	require.NoError(t, err)
	require.Len(t, rs, 3)

	groups := GroupByKind(rs)
	assert.Len(t, groups[KindBarInternalForce], 2)
	assert.Len(t, groups[KindBarDisplacement], 1)
	assert.Equal(t, 8.0, groups[KindBarInternalForce][1].(BarInternalForce).Pos)
}

func TestParseErrors(t *testing.T) {
	_, err := Parse(strings.NewReader("Shell, Stresses - Load case: DL\nID\tx\n"), "shell.txt")
	assert.ErrorIs(t, err, ErrUnknownHeader)
	var perr *ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 1, perr.Line)
	assert.Equal(t, "shell.txt", perr.Path)

	_, err = Parse(strings.NewReader("Nodal displacements - Load case: DL\nB.1.1\tone\t0\t0\t0\t0\t0\t0\n"), "")
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, 2, perr.Line)

	_, err = Parse(strings.NewReader("Nodal displacements - Load case: DL\nB.1.1\t1\t0\t0\n"), "")
	assert.ErrorContains(t, err, "expected at least")
}

func TestParseFilesKeepsOrder(t *testing.T) {
	paths := []string{
		filepath.Join("testdata", "eigen.txt"),
		filepath.Join("testdata", "reactions.txt"),
		filepath.Join("testdata", "displacements.txt"),
	}
	rs, err := ParseFiles(context.Background(), paths)
	require.NoError(t, err)
	require.Len(t, rs, 8)
	assert.Equal(t, KindEigenFrequency, rs[0].Kind())
	assert.Equal(t, KindPointSupportReaction, rs[2].Kind())
	assert.Equal(t, KindNodalDisplacement, rs[7].Kind())

	reactions := Filter[PointSupportReaction](rs)
	assert.Len(t, reactions, 4)
}

func TestParseFilesMissing(t *testing.T) {
	_, err := ParseFiles(context.Background(), []string{filepath.Join(t.TempDir(), "nope.txt")})
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestColumnsMatchFields(t *testing.T) {
	samples := []Result{
		NodalDisplacement{}, PointSupportReaction{}, BarDisplacement{},
		BarInternalForce{}, EigenFrequency{},
	}
	for _, r := range samples {
		assert.Len(t, r.Fields(), len(Columns(r.Kind())), r.Kind())
	}
	k, err := ParseKind("pointsupportreaction")
	require.NoError(t, err)
	assert.Equal(t, KindPointSupportReaction, k)
}

func TestUnits(t *testing.T) {
	u := DefaultUnits()
	require.NoError(t, u.Validate())

	list := GetUnits(u)
	require.Len(t, list, 7)
	for i, e := range list {
		assert.Equal(t, i, e.Magnitude)
	}
	assert.Equal(t, "kN", list[MagnitudeForce].Unit)

	u.Force = "tons"
	assert.ErrorContains(t, u.Validate(), "force")
}

func TestNormalizeUnits(t *testing.T) {
	u := DefaultUnits()
	u.Force = "kn"
	u.Stress = "mpa"
	u.Length = "MM"

	n, err := u.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Force("kN"), n.Force)
	assert.Equal(t, Stress("MPa"), n.Stress)
	assert.Equal(t, Length("mm"), n.Length)
	assert.Equal(t, Angle("rad"), n.Angle)

	u.Force = "mn"
	n, err = u.Normalize()
	require.NoError(t, err)
	assert.Equal(t, Force("MN"), n.Force)

	u.Mass = "stone"
	_, err = u.Normalize()
	assert.ErrorContains(t, err, "mass")
}
