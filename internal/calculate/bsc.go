package calculate

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/results"
)

// BscExtension of batch script files.
const BscExtension = ".bsc"

// Bsc is a batch script that tells the list generator which table to write.
type Bsc struct {
	ListProc ListProc
	Path     string
	Script   *FdScript
}

// NewBsc creates the batch script for l at path. units may be nil for the
// FEM-Design defaults.
func NewBsc(l ListProc, path string, units *results.UnitResults) (*Bsc, error) {
	if !strings.EqualFold(filepath.Ext(path), BscExtension) {
		return nil, fmt.Errorf("bsc file %s must have extension %s", path, BscExtension)
	}
	var opts []DocTableOption
	if units != nil {
		opts = append(opts, WithUnits(*units))
	}
	dt, err := NewDocTable(l, opts...)
	if err != nil {
		return nil, err
	}
	s := newScript(NewFdScriptHeader("Generated script.", filepath.Join(filepath.Dir(path), logFileName)))
	s.CmdDocTable = NewCmdDocTable(dt)
	s.FdScriptPath = path
	return &Bsc{ListProc: l, Path: path, Script: s}, nil
}

// Serialize writes the bsc file, creating its directory.
func (b *Bsc) Serialize() error {
	if err := os.MkdirAll(filepath.Dir(b.Path), 0o755); err != nil {
		return err
	}
	return writeFile(b.Path, b.Script.Encode)
}

// BscPathsFromResultKinds writes one bsc file per list procedure needed
// for kinds into "<model dir>/<model name>/scripts" and returns their paths.
func BscPathsFromResultKinds(kinds []results.Kind, struxmlPath string, units *results.UnitResults) ([]string, error) {
	dir := filepath.Join(workDir(struxmlPath), "scripts")
	var paths []string
	seen := make(map[ListProc]bool)
	for _, k := range kinds {
		procs, err := ListProcsFor(k)
		if err != nil {
			return nil, err
		}
		for _, l := range procs {
			if seen[l] {
				continue
			}
			seen[l] = true
			b, err := NewBsc(l, filepath.Join(dir, string(l)+BscExtension), units)
			if err != nil {
				return nil, err
			}
			if err := b.Serialize(); err != nil {
				return nil, err
			}
			paths = append(paths, b.Path)
		}
	}
	return paths, nil
}
