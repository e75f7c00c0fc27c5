package results

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"golang.org/x/sync/errgroup"
)

// ErrUnknownHeader is returned for a block whose header names no known table.
var ErrUnknownHeader = errors.New("unknown result table header")

// ParseError locates a malformed line of a listing.
type ParseError struct {
	Path string
	Line int
	Err  error
}

func (e *ParseError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return fmt.Sprintf("%s:%d: %v", e.Path, e.Line, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

var caseRe = regexp.MustCompile(`(?i)\s-\s*(?:load case|load comb(?:\.|ination))\s*:\s*(.+)$`)

// splitHeader returns the kind and the load case or combination named by a
// block header.
func splitHeader(line string) (*kindSpec, string, error) {
	caseID := ""
	title := line
	if m := caseRe.FindStringSubmatchIndex(line); m != nil {
		caseID = strings.TrimSpace(line[m[2]:m[3]])
		title = strings.TrimSpace(line[:m[0]])
	}
	for i := range kinds {
		if kinds[i].header.MatchString(title) {
			return &kinds[i], caseID, nil
		}
	}
	return nil, "", fmt.Errorf("%w: %q", ErrUnknownHeader, line)
}

// isPreamble reports whether a line inside a block is a column or unit line
// rather than data.
func isPreamble(cells []string) bool {
	first := strings.TrimSpace(cells[0])
	return first == "ID" || first == "Shape" || strings.HasPrefix(first, "[")
}

// Parse reads a listing from r. path is only used in error messages.
func Parse(r io.Reader, path string) ([]Result, error) {
	var (
		out     []Result
		current *kindSpec
		caseID  string
		lineNo  int
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 1024*1024)
	for sc.Scan() {
		lineNo++
		line := strings.TrimRight(sc.Text(), "\r")
		if lineNo == 1 {
			line = strings.TrimPrefix(line, "\ufeff")
		}
		if strings.TrimSpace(line) == "" {
			current = nil
			continue
		}
		if current == nil {
			spec, id, err := splitHeader(strings.TrimSpace(line))
			if err != nil {
				return nil, &ParseError{Path: path, Line: lineNo, Err: err}
			}
			current, caseID = spec, id
			continue
		}

		cells := strings.Split(line, "\t")
		if isPreamble(cells) {
			continue
		}
		f := &fields{cells: cells}
		res := current.decode(f, caseID)
		if f.err != nil {
			return nil, &ParseError{Path: path, Line: lineNo, Err: f.err}
		}
		out = append(out, res)
	}
	if err := sc.Err(); err != nil {
		return nil, &ParseError{Path: path, Line: lineNo, Err: err}
	}
	return out, nil
}

// ParseFile reads a listing file.
func ParseFile(path string) ([]Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return Parse(f, path)
}

// ParseFiles reads several listings concurrently. Results keep the order of
// paths, and of rows within each file.
func ParseFiles(ctx context.Context, paths []string) ([]Result, error) {
	parts := make([][]Result, len(paths))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for i, p := range paths {
		i, p := i, p
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			res, err := ParseFile(p)
			if err != nil {
				return err
			}
			parts[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	var out []Result
	for _, p := range parts {
		out = append(out, p...)
	}
	return out, nil
}

// GroupByKind splits results by record kind, keeping their order.
func GroupByKind(rs []Result) map[Kind][]Result {
	out := make(map[Kind][]Result)
	for _, r := range rs {
		out[r.Kind()] = append(out[r.Kind()], r)
	}
	return out
}

// Filter returns the results of type T, e.g.
// Filter[PointSupportReaction](all).
func Filter[T Result](rs []Result) []T {
	var out []T
	for _, r := range rs {
		if v, ok := r.(T); ok {
			out = append(out, v)
		}
	}
	return out
}
