package diagram

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleReactions() []results.PointSupportReaction {
	return []results.PointSupportReaction{
		{Id: "S.1", NodeId: 1, Fz: 26.51, Fr: 26.51, CaseId: "Deadload"},
		{Id: "S.2", NodeId: 12, Fz: 26.51, Fr: 26.51, CaseId: "Deadload"},
		{Id: "S.1", NodeId: 1, Fz: 14.875, Fr: 14.875, CaseId: "Liveload"},
		{Id: "S.2", NodeId: 12, Fz: 14.125, Fr: 14.125, CaseId: "Liveload"},
	}
}

func TestRenderTable(t *testing.T) {
	var rs []results.Result
	for _, r := range sampleReactions() {
		rs = append(rs, r)
	}
	rs = append(rs, results.EigenFrequency{ShapeId: 1, Frequency: 4.2, Period: 0.238})

	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, rs))
	out := buf.String()

	assert.Contains(t, out, "PointSupportReaction (4)")
	assert.Contains(t, out, "EigenFrequency (1)")
	assert.Less(t, strings.Index(out, "PointSupportReaction"), strings.Index(out, "EigenFrequency"))
	assert.Contains(t, out, "26.510")
	assert.Contains(t, out, "Liveload")
	assert.Contains(t, out, "4.200")
}

func TestRenderTableEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderTable(&buf, nil))
	assert.Empty(t, buf.String())
}

func TestDrawSummaryBox(t *testing.T) {
	box := DrawSummaryBox("Analysis", []string{"model: beam.struxml", "results: 4"})
	lines := strings.Split(strings.TrimRight(box, "\n"), "\n")
	require.Len(t, lines, 6)
	width := len([]rune(lines[0]))
	for _, l := range lines {
		assert.Equal(t, width, len([]rune(l)), l)
	}
	assert.Contains(t, box, "results: 4")
}

func TestReactionSums(t *testing.T) {
	order, sums := ReactionSums(sampleReactions())
	assert.Equal(t, []string{"Deadload", "Liveload"}, order)
	assert.InDelta(t, 53.02, sums["Deadload"], 1e-9)
	assert.InDelta(t, 29.0, sums["Liveload"], 1e-9)
}

func TestExportReactionChart(t *testing.T) {
	dir := t.TempDir()
	for _, ext := range []string{".png", ".svg", ".pdf"} {
		path, err := ExportReactionChart(sampleReactions(), filepath.Join(dir, "reactions"+ext))
		require.NoError(t, err)
		assert.FileExists(t, path)
	}

	path, err := ExportReactionChart(sampleReactions(), filepath.Join(dir, "sub", "chart"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "sub", "chart.png"), path)
	assert.FileExists(t, path)

	_, err = ExportReactionChart(nil, filepath.Join(dir, "none.png"))
	assert.ErrorIs(t, err, ErrNoData)
}

func TestExportInternalForceDiagram(t *testing.T) {
	forces := []results.BarInternalForce{
		{Id: "B.1", Pos: 4, My: 40, CaseId: "ULS"},
		{Id: "B.1", Pos: 0, My: 0, CaseId: "ULS"},
		{Id: "B.1", Pos: 8, My: 0, CaseId: "ULS"},
		{Id: "B.2", Pos: 0, My: 5, CaseId: "ULS"},
	}
	dir := t.TempDir()

	path, err := ExportInternalForceDiagram(forces, "B.1", "My", filepath.Join(dir, "my.svg"))
	require.NoError(t, err)
	assert.FileExists(t, path)

	_, err = ExportInternalForceDiagram(forces, "B.9", "My", filepath.Join(dir, "none.svg"))
	assert.ErrorIs(t, err, ErrNoData)

	_, err = ExportInternalForceDiagram(forces, "B.1", "Vz", filepath.Join(dir, "bad.svg"))
	assert.Error(t, err)
}
