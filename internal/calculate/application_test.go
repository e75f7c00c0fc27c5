package calculate

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
	"time"

	"github.com/alexiusacademia/gofemdesign/internal/loads"
	"github.com/alexiusacademia/gofemdesign/internal/model"
	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

const reactionListing = "Point support group, Reactions, Ultimate - Load case: Deadload\n" +
	"ID\tNode\tFx'\tFy'\tFz'\tMx'\tMy'\tMz'\tFr\tMr\n" +
	"[-]\t[-]\t[kN]\t[kN]\t[kN]\t[kNm]\t[kNm]\t[kNm]\t[kN]\t[kNm]\n" +
	"S.1\t1\t0.000\t0.000\t26.510\t0.000\t0.000\t0.000\t26.510\t0.000\n" +
	"S.2\t12\t0.000\t0.000\t26.510\t0.000\t0.000\t0.000\t26.510\t0.000\n"

// helperApp runs this test binary in place of FEM-Design. mode selects how
// the fake behaves, see TestHelperProcess.
func helperApp(t *testing.T, mode string, opts ...AppOption) *Application {
	t.Helper()
	opts = append([]AppOption{WithLogger(zaptest.NewLogger(t)), WithOutputTimeout(500 * time.Millisecond)}, opts...)
	a := NewApplication("fd3dstruct.exe", opts...)
	a.command = func(ctx context.Context, name string, args ...string) *exec.Cmd {
		cs := append([]string{"-test.run=TestHelperProcess", "--", name}, args...)
		cmd := exec.CommandContext(ctx, os.Args[0], cs...)
		cmd.Env = append(os.Environ(), "GO_WANT_HELPER_PROCESS=1", "HELPER_MODE="+mode)
		return cmd
	}
	return a
}

// TestHelperProcess is not a real test. It is the fake FEM-Design started
// by helperApp: it reads the script given with /s and writes a listing to
// every list generator outfile.
func TestHelperProcess(t *testing.T) {
	if os.Getenv("GO_WANT_HELPER_PROCESS") != "1" {
		return
	}
	defer os.Exit(0)

	args := os.Args
	for len(args) > 0 && args[0] != "--" {
		args = args[1:]
	}
	// "--", executable, "/s", script
	if len(args) < 4 || args[2] != "/s" {
		fmt.Fprintln(os.Stderr, "usage: fd3dstruct /s <script>")
		os.Exit(2)
	}
	s, err := ReadFdScript(args[3])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	_ = os.WriteFile(s.Header.LogFile, []byte("script started\n\nscript finished\n"), 0o644)

	switch os.Getenv("HELPER_MODE") {
	case "fail":
		fmt.Fprintln(os.Stderr, "license not found")
		os.Exit(3)
	case "hang":
		time.Sleep(10 * time.Second)
	case "nooutput":
		return
	}
	for _, out := range s.OutFiles() {
		if err := os.WriteFile(out, []byte(reactionListing), 0o644); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	}
	fmt.Println("done")
}

func analysisScript(t *testing.T) *FdScript {
	t.Helper()
	struxml := filepath.Join(t.TempDir(), "beam.struxml")
	bscs, err := BscPathsFromResultKinds([]results.Kind{results.KindPointSupportReaction}, struxml, nil)
	require.NoError(t, err)
	s, err := NewAnalysisScript(struxml, StaticAnalysis(), bscs, true)
	require.NoError(t, err)
	return s
}

func TestRunFdScript(t *testing.T) {
	s := analysisScript(t)
	res, err := helperApp(t, "ok").RunFdScript(context.Background(), s)
	require.NoError(t, err)

	assert.Equal(t, 0, res.ExitCode)
	assert.Contains(t, res.Stdout, "done")
	assert.Equal(t, []string{"script started", "script finished"}, res.Log)
	require.Len(t, res.OutFiles, 2)
	for _, out := range res.OutFiles {
		assert.FileExists(t, out)
	}
}

func TestRunFdScriptWritesProgram(t *testing.T) {
	s := analysisScript(t)
	_, err := helperApp(t, "ok", WithProgram("2300", "sdesign")).RunFdScript(context.Background(), s)
	require.NoError(t, err)

	got, err := ReadFdScript(s.FdScriptPath)
	require.NoError(t, err)
	assert.Equal(t, "2300", got.Header.Version)
	assert.Equal(t, "sdesign", got.Header.Module)
}

func TestRunFdScriptRemovesStaleListings(t *testing.T) {
	s := analysisScript(t)
	require.NoError(t, s.Serialize())
	for _, out := range s.OutFiles() {
		require.NoError(t, os.WriteFile(out, []byte("stale"), 0o644))
	}

	_, err := helperApp(t, "nooutput").RunFdScript(context.Background(), s)
	assert.ErrorIs(t, err, ErrOutputMissing)
}

func TestRunFdScriptExitCode(t *testing.T) {
	res, err := helperApp(t, "fail").RunFdScript(context.Background(), analysisScript(t))
	require.ErrorIs(t, err, ErrProcess)
	require.NotNil(t, res)
	assert.Equal(t, 3, res.ExitCode)
	assert.Contains(t, res.Stderr, "license not found")
}

func TestRunFdScriptTimeout(t *testing.T) {
	_, err := helperApp(t, "hang", WithTimeout(300*time.Millisecond)).RunFdScript(context.Background(), analysisScript(t))
	assert.ErrorIs(t, err, ErrProcess)
}

func TestRunFdScriptNoExecutable(t *testing.T) {
	_, err := NewApplication("").RunFdScript(context.Background(), analysisScript(t))
	assert.ErrorIs(t, err, ErrNoExecutable)
}

func TestWaitForFilesLateWrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "late.csv")
	go func() {
		time.Sleep(100 * time.Millisecond)
		_ = os.WriteFile(path, []byte("x"), 0o644)
	}()
	require.NoError(t, waitForFiles(context.Background(), []string{path}, 5*time.Second))
}

func TestWaitForFilesCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := waitForFiles(ctx, []string{filepath.Join(t.TempDir(), "never.csv")}, time.Minute)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAnalyse(t *testing.T) {
	struxml := filepath.Join(t.TempDir(), "beam.struxml")
	m := model.New(model.CountrySweden)
	dl, err := loads.NewLoadCase("Deadload", loads.LoadCaseDeadLoad, loads.DurationPermanent)
	require.NoError(t, err)
	require.NoError(t, m.AddLoadCases([]*loads.LoadCase{dl}))

	units := results.DefaultUnits()
	res, err := helperApp(t, "ok").Analyse(context.Background(), m, struxml, StaticAnalysis(),
		[]results.Kind{results.KindPointSupportReaction}, &units)
	require.NoError(t, err)

	assert.FileExists(t, struxml)
	assert.Len(t, res.Script.CmdListGen, 2)
	require.Len(t, res.Results, 4)
	r, ok := res.Results[0].(results.PointSupportReaction)
	require.True(t, ok)
	assert.Equal(t, "S.1", r.Id)
	assert.InDelta(t, 26.51, r.Fz, 1e-9)
	assert.Equal(t, "Deadload", r.CaseId)
}
