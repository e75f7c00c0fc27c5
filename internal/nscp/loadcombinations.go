package nscp

import (
	"fmt"
	"sort"

	"github.com/alexiusacademia/gofemdesign/internal/loads"
)

// Kind is an NSCP load type symbol.
type Kind string

const (
	Dead       Kind = "D"
	Live       Kind = "L"
	Roof       Kind = "Lr"
	Wind       Kind = "W"
	Earthquake Kind = "E"
	Rain       Kind = "R"
)

// Kinds in the order they are written in combination descriptions.
var Kinds = []Kind{Dead, Live, Roof, Wind, Earthquake, Rain}

// Term is one "factor x load" part of a combination. A term with several
// alternatives reads "(Lr or R)": one combination is generated per
// alternative that has a load case.
type Term struct {
	Factors map[Kind]float64
}

func single(k Kind, f float64) Term { return Term{Factors: map[Kind]float64{k: f}} }

func either(a Kind, fa float64, b Kind, fb float64) Term {
	return Term{Factors: map[Kind]float64{a: fa, b: fb}}
}

// LoadCombination represents an NSCP load combination
// Based on NSCP 2015 Section 203.3 - Load Combinations Using Strength Design
type LoadCombination struct {
	ID          string
	Description string
	Terms       []Term
}

// NSCP 2015 Section 203.3.1 - Basic Load Combinations
var LoadCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Terms: []Term{single(Dead, 1.4)}},
	{ID: "2", Description: "1.2D + 1.6L + 0.5(Lr or R)", Terms: []Term{
		single(Dead, 1.2), single(Live, 1.6), either(Roof, 0.5, Rain, 0.5),
	}},
	{ID: "3", Description: "1.2D + 1.6(Lr or R) + (1.0L or 0.5W)", Terms: []Term{
		single(Dead, 1.2), either(Roof, 1.6, Rain, 1.6), either(Live, 1.0, Wind, 0.5),
	}},
	{ID: "4", Description: "1.2D + 1.0W + 1.0L + 0.5(Lr or R)", Terms: []Term{
		single(Dead, 1.2), single(Wind, 1.0), single(Live, 1.0), either(Roof, 0.5, Rain, 0.5),
	}},
	{ID: "5", Description: "1.2D + 1.0E + 1.0L", Terms: []Term{
		single(Dead, 1.2), single(Earthquake, 1.0), single(Live, 1.0),
	}},
	{ID: "6", Description: "0.9D + 1.0W", Terms: []Term{single(Dead, 0.9), single(Wind, 1.0)}},
	{ID: "7", Description: "0.9D + 1.0E", Terms: []Term{single(Dead, 0.9), single(Earthquake, 1.0)}},
}

// SimplifiedCombinations for common gravity-only scenarios
var SimplifiedCombinations = []LoadCombination{
	{ID: "1", Description: "1.4D", Terms: []Term{single(Dead, 1.4)}},
	{ID: "2", Description: "1.2D + 1.6L", Terms: []Term{single(Dead, 1.2), single(Live, 1.6)}},
}

// LoadEffects holds unfactored effects (moments, reactions...) per load kind.
type LoadEffects map[Kind]float64

// Factored returns the largest factored effect over the alternatives of
// the combination, together with the factors that produced it.
func (lc LoadCombination) Factored(effects LoadEffects) (float64, map[Kind]float64) {
	var best float64
	var bestFactors map[Kind]float64
	for i, factors := range lc.expand(func(Kind) bool { return true }) {
		var sum float64
		for k, f := range factors {
			sum += f * effects[k]
		}
		if i == 0 || sum > best {
			best, bestFactors = sum, factors
		}
	}
	return best, bestFactors
}

// Governing finds the maximum factored effect from all combinations
func Governing(effects LoadEffects, combinations []LoadCombination) (float64, LoadCombination) {
	var maxEffect float64
	var governing LoadCombination

	for _, combo := range combinations {
		e, _ := combo.Factored(effects)
		if e > maxEffect {
			maxEffect = e
			governing = combo
		}
	}

	return maxEffect, governing
}

// expand returns one factor set per choice of alternatives. Alternatives
// rejected by present are dropped; a term whose alternatives are all
// rejected contributes nothing.
func (lc LoadCombination) expand(present func(Kind) bool) []map[Kind]float64 {
	sets := []map[Kind]float64{{}}
	for _, term := range lc.Terms {
		var keys []Kind
		for k := range term.Factors {
			if present(k) {
				keys = append(keys, k)
			}
		}
		if len(keys) == 0 {
			continue
		}
		sort.Slice(keys, func(i, j int) bool { return kindIndex(keys[i]) < kindIndex(keys[j]) })

		var next []map[Kind]float64
		for _, s := range sets {
			for _, k := range keys {
				n := make(map[Kind]float64, len(s)+1)
				for kk, f := range s {
					n[kk] = f
				}
				n[k] += term.Factors[k]
				next = append(next, n)
			}
		}
		sets = next
	}
	return sets
}

func kindIndex(k Kind) int {
	for i, kk := range Kinds {
		if kk == k {
			return i
		}
	}
	return len(Kinds)
}

// LoadCaseSet assigns FEM-Design load cases to NSCP load kinds.
type LoadCaseSet map[Kind]*loads.LoadCase

// Build turns the combination table into FEM-Design load combinations for
// the load cases in set. Combinations that need a kind without a load case
// are still generated without that term unless the whole combination would
// reduce to dead load only while not being a dead-load-only combination.
// Combinations with alternatives get a letter suffix per variant.
func Build(set LoadCaseSet, table []LoadCombination, prefix string) ([]*loads.LoadCombination, error) {
	if set[Dead] == nil {
		return nil, fmt.Errorf("nscp: a dead load case is required")
	}
	present := func(k Kind) bool { return set[k] != nil }

	var out []*loads.LoadCombination
	seen := make(map[string]bool)
	for _, combo := range table {
		variants := combo.expand(present)
		var kept []map[Kind]float64
		for _, v := range variants {
			if len(v) == 1 && len(combo.Terms) > 1 {
				if _, onlyDead := v[Dead]; onlyDead {
					continue
				}
			}
			key := signature(v)
			if seen[key] {
				continue
			}
			seen[key] = true
			kept = append(kept, v)
		}

		for i, v := range kept {
			name := prefix + combo.ID
			if len(kept) > 1 {
				name += string(rune('a' + i))
			}
			var cases []*loads.LoadCase
			var factors []float64
			typ := loads.CombUltimateOrdinary
			for _, k := range Kinds {
				f, ok := v[k]
				if !ok {
					continue
				}
				if k == Earthquake {
					typ = loads.CombUltimateSeismic
				}
				cases = append(cases, set[k])
				factors = append(factors, f)
			}
			c, err := loads.NewLoadCombination(name, typ, cases, factors)
			if err != nil {
				return nil, err
			}
			out = append(out, c)
		}
	}
	return out, nil
}

func signature(v map[Kind]float64) string {
	var s string
	for _, k := range Kinds {
		if f, ok := v[k]; ok {
			s += fmt.Sprintf("%s=%g;", k, f)
		}
	}
	return s
}
