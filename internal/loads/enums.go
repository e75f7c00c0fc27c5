package loads

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownEnum is returned when a string names none of the enum values.
var ErrUnknownEnum = errors.New("unknown enum value")

// LoadCaseType is the struxml load case type.
type LoadCaseType string

const (
	LoadCaseStatic       LoadCaseType = "static"
	LoadCaseDeadLoad     LoadCaseType = "dead_load"
	LoadCaseSoilDeadLoad LoadCaseType = "soil_dead_load"
	LoadCaseShrinkage    LoadCaseType = "shrinkage"
	LoadCasePrestressing LoadCaseType = "prestressing"
	LoadCaseFire         LoadCaseType = "fire"
	LoadCaseSeisSxp      LoadCaseType = "seis_sxp"
	LoadCaseSeisSxm      LoadCaseType = "seis_sxm"
	LoadCaseSeisSyp      LoadCaseType = "seis_syp"
	LoadCaseSeisSym      LoadCaseType = "seis_sym"
)

// LoadCaseTypes lists the types in the order offered to users.
var LoadCaseTypes = []LoadCaseType{
	LoadCaseStatic, LoadCaseDeadLoad, LoadCaseSoilDeadLoad, LoadCaseShrinkage,
	LoadCasePrestressing, LoadCaseFire, LoadCaseSeisSxp, LoadCaseSeisSxm,
	LoadCaseSeisSyp, LoadCaseSeisSym,
}

// LoadCaseDuration is the duration class of a load case.
type LoadCaseDuration string

const (
	DurationPermanent     LoadCaseDuration = "permanent"
	DurationLongTerm      LoadCaseDuration = "long-term"
	DurationMediumTerm    LoadCaseDuration = "medium-term"
	DurationShortTerm     LoadCaseDuration = "short-term"
	DurationInstantaneous LoadCaseDuration = "instantaneous"
)

var LoadCaseDurations = []LoadCaseDuration{
	DurationPermanent, DurationLongTerm, DurationMediumTerm,
	DurationShortTerm, DurationInstantaneous,
}

// LoadCombType is the limit state a load combination checks.
type LoadCombType string

const (
	CombUltimateOrdinary             LoadCombType = "ultimate_ordinary"
	CombUltimateAccidental           LoadCombType = "ultimate_accidental"
	CombUltimateSeismic              LoadCombType = "ultimate_seismic"
	CombServiceabilityQuasiPermanent LoadCombType = "serviceability_quasi_permanent"
	CombServiceabilityFrequent       LoadCombType = "serviceability_frequent"
	CombServiceabilityCharacteristic LoadCombType = "serviceability_characteristic"
)

var LoadCombTypes = []LoadCombType{
	CombUltimateOrdinary, CombUltimateAccidental, CombUltimateSeismic,
	CombServiceabilityQuasiPermanent, CombServiceabilityFrequent,
	CombServiceabilityCharacteristic,
}

// ForceLoadType tells whether a load is a force or a moment.
type ForceLoadType string

const (
	Force  ForceLoadType = "force"
	Moment ForceLoadType = "moment"
)

// ParseLoadCaseType accepts the struxml value or a loose spelling of it,
// e.g. "dead_load", "DeadLoad" or "Dead load". "ordinary" means static.
func ParseLoadCaseType(s string) (LoadCaseType, error) {
	return parseEnum("load case type", s, LoadCaseTypes, map[string]LoadCaseType{
		"ordinary": LoadCaseStatic,
	})
}

// ParseLoadCaseDuration accepts e.g. "long-term", "LongTerm" or "long_term".
func ParseLoadCaseDuration(s string) (LoadCaseDuration, error) {
	return parseEnum("duration class", s, LoadCaseDurations, nil)
}

func ParseLoadCombType(s string) (LoadCombType, error) {
	return parseEnum("load combination type", s, LoadCombTypes, map[string]LoadCombType{
		"uls": CombUltimateOrdinary,
		"sls": CombServiceabilityCharacteristic,
	})
}

func ParseForceLoadType(s string) (ForceLoadType, error) {
	return parseEnum("force load type", s, []ForceLoadType{Force, Moment}, nil)
}

func parseEnum[T ~string](kind, s string, values []T, aliases map[string]T) (T, error) {
	key := normalize(s)
	for _, v := range values {
		if normalize(string(v)) == key {
			return v, nil
		}
	}
	if v, ok := aliases[key]; ok {
		return v, nil
	}
	var zero T
	return zero, fmt.Errorf("%w: %s %q", ErrUnknownEnum, kind, s)
}

func normalize(s string) string {
	r := strings.NewReplacer("_", "", "-", "", " ", "")
	return strings.ToLower(r.Replace(strings.TrimSpace(s)))
}
