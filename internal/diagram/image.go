package diagram

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/results"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// ErrNoData is returned when there is nothing to plot.
var ErrNoData = errors.New("no results to plot")

// ExportReactionChart draws the vertical reaction of every support as a
// grouped bar chart with one group per load case or combination. The
// format follows the extension of filename (.png, .svg, .pdf); other
// names get ".png" appended. It returns the file written.
func ExportReactionChart(reactions []results.PointSupportReaction, filename string) (string, error) {
	if len(reactions) == 0 {
		return "", ErrNoData
	}

	var supports, cases []string
	seenSupport := make(map[string]bool)
	seenCase := make(map[string]bool)
	fz := make(map[string]map[string]float64)
	for _, r := range reactions {
		if !seenSupport[r.Id] {
			seenSupport[r.Id] = true
			supports = append(supports, r.Id)
		}
		if !seenCase[r.CaseId] {
			seenCase[r.CaseId] = true
			cases = append(cases, r.CaseId)
			fz[r.CaseId] = make(map[string]float64)
		}
		fz[r.CaseId][r.Id] = r.Fz
	}

	p := plot.New()
	p.Title.Text = "Support Reactions"
	p.Y.Label.Text = "Fz'"
	p.Legend.Top = true

	width := vg.Points(60 / float64(len(cases)))
	for i, c := range cases {
		values := make(plotter.Values, len(supports))
		for j, s := range supports {
			values[j] = fz[c][s]
		}
		bars, err := plotter.NewBarChart(values, width)
		if err != nil {
			return "", err
		}
		bars.LineStyle.Width = vg.Length(0)
		bars.Color = plotutil.Color(i)
		bars.Offset = width * vg.Length(float64(i)-float64(len(cases)-1)/2)
		p.Add(bars)
		p.Legend.Add(caseLabel(c), bars)
	}
	p.NominalX(supports...)

	return save(p, 8*vg.Inch, 6*vg.Inch, filename)
}

// ForceComponents are the internal force components ExportInternalForceDiagram draws.
var ForceComponents = []string{"N", "Ty", "Tz", "Mt", "My", "Mz"}

func component(f results.BarInternalForce, name string) (float64, bool) {
	switch name {
	case "N":
		return f.N, true
	case "Ty":
		return f.Ty, true
	case "Tz":
		return f.Tz, true
	case "Mt":
		return f.Mt, true
	case "My":
		return f.My, true
	case "Mz":
		return f.Mz, true
	}
	return 0, false
}

// ExportInternalForceDiagram plots one internal force component along a
// bar, one line per load case or combination.
func ExportInternalForceDiagram(forces []results.BarInternalForce, bar, name, filename string) (string, error) {
	if _, ok := component(results.BarInternalForce{}, name); !ok {
		return "", fmt.Errorf("unknown force component %q (valid: %s)", name, strings.Join(ForceComponents, ", "))
	}

	byCase := make(map[string]plotter.XYs)
	var cases []string
	for _, f := range forces {
		if f.Id != bar {
			continue
		}
		if _, ok := byCase[f.CaseId]; !ok {
			cases = append(cases, f.CaseId)
		}
		v, _ := component(f, name)
		byCase[f.CaseId] = append(byCase[f.CaseId], plotter.XY{X: f.Pos, Y: v})
	}
	if len(cases) == 0 {
		return "", fmt.Errorf("%w: bar %s", ErrNoData, bar)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s, %s'", bar, name)
	p.X.Label.Text = "Position"
	p.Y.Label.Text = name
	p.Add(plotter.NewGrid())

	for i, c := range cases {
		pts := byCase[c]
		sort.Slice(pts, func(a, b int) bool { return pts[a].X < pts[b].X })
		line, err := plotter.NewLine(pts)
		if err != nil {
			return "", err
		}
		line.LineStyle.Width = vg.Points(2)
		line.LineStyle.Color = plotutil.Color(i)
		p.Add(line)
		p.Legend.Add(caseLabel(c), line)
	}

	return save(p, 8*vg.Inch, 5*vg.Inch, filename)
}

func caseLabel(c string) string {
	if c == "" {
		return "-"
	}
	return c
}

func save(p *plot.Plot, width, height vg.Length, filename string) (string, error) {
	dir := filepath.Dir(filename)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return "", err
		}
	}

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png", ".svg", ".pdf":
	default:
		filename += ".png"
	}
	if err := p.Save(width, height, filename); err != nil {
		return "", err
	}
	return filename, nil
}
