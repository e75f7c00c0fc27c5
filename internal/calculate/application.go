package calculate

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gofemdesign/internal/model"
	"github.com/alexiusacademia/gofemdesign/internal/results"
	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
)

var (
	// ErrNoExecutable is returned when no FEM-Design executable is configured.
	ErrNoExecutable = errors.New("FEM-Design executable not configured")

	// ErrProcess wraps failures of the FEM-Design process itself.
	ErrProcess = errors.New("FEM-Design process failed")

	// ErrOutputMissing is returned when the process ended without writing
	// every listing the script asked for.
	ErrOutputMissing = errors.New("FEM-Design output missing")
)

// Application runs FEM-Design scripts through the batch interface.
type Application struct {
	executable    string
	minimized     bool
	timeout       time.Duration
	outputTimeout time.Duration
	version       string
	module        string
	logger        *zap.Logger

	// command builds the process; tests substitute a helper process.
	command func(ctx context.Context, name string, args ...string) *exec.Cmd
}

// AppOption configures an Application.
type AppOption func(*Application)

// WithTimeout bounds how long a single script may run.
func WithTimeout(d time.Duration) AppOption {
	return func(a *Application) { a.timeout = d }
}

// WithOutputTimeout sets how long to wait for listings after the process
// exits. FEM-Design may still be flushing files when it returns.
func WithOutputTimeout(d time.Duration) AppOption {
	return func(a *Application) { a.outputTimeout = d }
}

// WithMinimized starts FEM-Design with a minimized window.
func WithMinimized(m bool) AppOption {
	return func(a *Application) { a.minimized = m }
}

// WithProgram sets the FEM-Design version and module written into the
// header of every script the application runs.
func WithProgram(version, module string) AppOption {
	return func(a *Application) { a.version, a.module = version, module }
}

func WithLogger(l *zap.Logger) AppOption {
	return func(a *Application) { a.logger = l }
}

// NewApplication creates a runner for the FEM-Design executable at path,
// typically "C:\Program Files\StruSoft\FEM-Design 21\fd3dstruct.exe".
func NewApplication(path string, opts ...AppOption) *Application {
	a := &Application{
		executable:    path,
		timeout:       30 * time.Minute,
		outputTimeout: 30 * time.Second,
		logger:        zap.NewNop(),
		command:       exec.CommandContext,
	}
	for _, o := range opts {
		o(a)
	}
	return a
}

// RunResult describes a finished script run.
type RunResult struct {
	ExitCode  int
	StartedAt time.Time
	Duration  time.Duration
	Stdout    string
	Stderr    string

	// Log holds the lines of the script log file, if FEM-Design wrote one.
	Log      []string
	OutFiles []string
}

// RunFdScript writes the script, runs FEM-Design on it and waits until
// every listing exists.
func (a *Application) RunFdScript(ctx context.Context, script *FdScript) (*RunResult, error) {
	if a.executable == "" {
		return nil, ErrNoExecutable
	}
	script.SetProgram(a.version, a.module)
	if err := script.Serialize(); err != nil {
		return nil, fmt.Errorf("write fdscript: %w", err)
	}
	// Stale listings would satisfy the output wait.
	for _, out := range script.OutFiles() {
		if err := os.Remove(out); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	args := []string{"/s", script.FdScriptPath}
	if a.minimized {
		args = append(args, "/min")
	}

	runCtx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	cmd := a.command(runCtx, a.executable, args...)
	cmd.Dir = filepath.Dir(script.FdScriptPath)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	a.logger.Info("Running FEM-Design script",
		zap.String("executable", a.executable),
		zap.String("script", script.FdScriptPath),
		zap.Int("listings", len(script.CmdListGen)))

	res := &RunResult{StartedAt: time.Now(), OutFiles: script.OutFiles()}
	err := cmd.Run()
	res.Duration = time.Since(res.StartedAt)
	res.Stdout = stdout.String()
	res.Stderr = stderr.String()
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}
	res.Log = readLog(script.Header.LogFile)

	if err != nil {
		if errors.Is(runCtx.Err(), context.DeadlineExceeded) {
			return res, fmt.Errorf("%w: timeout after %s", ErrProcess, a.timeout)
		}
		if ctx.Err() != nil {
			return res, ctx.Err()
		}
		a.logger.Warn("FEM-Design exited with error",
			zap.Int("exit_code", res.ExitCode),
			zap.String("stderr", res.Stderr),
			zap.Error(err))
		return res, fmt.Errorf("%w: %v", ErrProcess, err)
	}
	a.logger.Debug("FEM-Design finished", zap.Duration("duration", res.Duration))

	if err := waitForFiles(ctx, res.OutFiles, a.outputTimeout); err != nil {
		return res, err
	}
	return res, nil
}

// readLog returns the non-empty lines of the script log, or nil.
func readLog(path string) []string {
	if path == "" {
		return nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil
	}
	defer f.Close()

	var lines []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if l := strings.TrimSpace(sc.Text()); l != "" {
			lines = append(lines, l)
		}
	}
	return lines
}

func missingFiles(paths []string) []string {
	var missing []string
	for _, p := range paths {
		if _, err := os.Stat(p); err != nil {
			missing = append(missing, p)
		}
	}
	return missing
}

// waitForFiles blocks until every path exists, watching their directories.
func waitForFiles(ctx context.Context, paths []string, timeout time.Duration) error {
	missing := missingFiles(paths)
	if len(missing) == 0 {
		return nil
	}
	if timeout <= 0 {
		return fmt.Errorf("%w: %s", ErrOutputMissing, strings.Join(missing, ", "))
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	watched := make(map[string]bool)
	for _, p := range missing {
		dir := filepath.Dir(p)
		if watched[dir] {
			continue
		}
		if err := w.Add(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		watched[dir] = true
	}
	// Files may have appeared before the watches were in place.
	if missing = missingFiles(missing); len(missing) == 0 {
		return nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
			return fmt.Errorf("%w after %s: %s", ErrOutputMissing, timeout, strings.Join(missing, ", "))
		case ev, ok := <-w.Events:
			if !ok {
				return fmt.Errorf("%w: watcher closed", ErrOutputMissing)
			}
			if ev.Has(fsnotify.Create) || ev.Has(fsnotify.Write) || ev.Has(fsnotify.Rename) {
				if missing = missingFiles(missing); len(missing) == 0 {
					return nil
				}
			}
		case err, ok := <-w.Errors:
			if ok {
				return fmt.Errorf("watch listings: %w", err)
			}
		}
	}
}

// AnalysisResult is everything Analyse produced.
type AnalysisResult struct {
	Script  *FdScript
	Run     *RunResult
	Results []results.Result
}

// Analyse writes the model to struxmlPath, asks FEM-Design to analyse it
// and list the requested result kinds, and parses the listings.
func (a *Application) Analyse(ctx context.Context, m *model.Model, struxmlPath string, analysis Analysis, kinds []results.Kind, units *results.UnitResults) (*AnalysisResult, error) {
	if err := m.SerializeModel(struxmlPath); err != nil {
		return nil, fmt.Errorf("write model: %w", err)
	}
	bscPaths, err := BscPathsFromResultKinds(kinds, struxmlPath, units)
	if err != nil {
		return nil, err
	}
	script, err := NewAnalysisScript(struxmlPath, analysis, bscPaths, true)
	if err != nil {
		return nil, err
	}
	run, err := a.RunFdScript(ctx, script)
	if err != nil {
		return &AnalysisResult{Script: script, Run: run}, err
	}
	rs, err := results.ParseFiles(ctx, script.OutFiles())
	if err != nil {
		return &AnalysisResult{Script: script, Run: run}, fmt.Errorf("read listings: %w", err)
	}
	a.logger.Info("Analysis finished",
		zap.String("model", struxmlPath),
		zap.Int("results", len(rs)),
		zap.Duration("duration", run.Duration))
	return &AnalysisResult{Script: script, Run: run, Results: rs}, nil
}
