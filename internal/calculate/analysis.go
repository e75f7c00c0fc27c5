package calculate

import (
	"encoding/xml"
	"fmt"
	"strings"
)

// flag is a boolean written as 0/1, the way fdscript.xsd declares them.
type flag bool

func (f flag) MarshalXMLAttr(name xml.Name) (xml.Attr, error) {
	v := "0"
	if f {
		v = "1"
	}
	return xml.Attr{Name: name, Value: v}, nil
}

func (f *flag) UnmarshalXMLAttr(attr xml.Attr) error {
	switch strings.ToLower(attr.Value) {
	case "1", "true":
		*f = true
	case "0", "false", "":
		*f = false
	default:
		return fmt.Errorf("attribute %s: invalid flag %q", attr.Name.Local, attr.Value)
	}
	return nil
}

// Freq configures the eigenfrequency calculation.
type Freq struct {
	NumShapes int     `xml:"Numshape,attr"`
	MaxSturm  int     `xml:"MaxSturm,attr"`
	X         flag    `xml:"X,attr"`
	Y         flag    `xml:"Y,attr"`
	Z         flag    `xml:"Z,attr"`
	Top       float64 `xml:"top,attr"`
}

// Analysis selects what the calculation command computes.
type Analysis struct {
	CalcCase      flag  `xml:"calcCase,attr"`
	CalcCStage    flag  `xml:"calcCstage,attr"`
	CalcImpf      flag  `xml:"calcImpf,attr"`
	CalcComb      flag  `xml:"calcComb,attr"`
	CalcGMax      flag  `xml:"calcGmax,attr"`
	CalcStab      flag  `xml:"calcStab,attr"`
	CalcFreq      flag  `xml:"calcFreq,attr"`
	CalcSeis      flag  `xml:"calcSeis,attr"`
	CalcDesign    flag  `xml:"calcDesign,attr"`
	ElemFine      flag  `xml:"elemfine,attr"`
	Diaphragm     flag  `xml:"diaphragm,attr"`
	PeakSmoothing flag  `xml:"peaksmoothing,attr"`
	Freq          *Freq `xml:"freq,omitempty"`
}

// StaticAnalysis calculates all load cases and load combinations.
func StaticAnalysis() Analysis {
	return Analysis{CalcCase: true, CalcComb: true, ElemFine: true}
}

// FrequencyAnalysis calculates numShapes vibration shapes with masses in
// all three directions.
func FrequencyAnalysis(numShapes int) (Analysis, error) {
	if numShapes < 1 {
		return Analysis{}, fmt.Errorf("frequency analysis needs at least one shape, got %d", numShapes)
	}
	return Analysis{
		CalcFreq: true,
		ElemFine: true,
		Freq:     &Freq{NumShapes: numShapes, X: true, Y: true, Z: true, Top: -0.01},
	}, nil
}

// ParseAnalysis turns a name like "static" or "frequency" into settings.
func ParseAnalysis(name string, numShapes int) (Analysis, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "static", "":
		return StaticAnalysis(), nil
	case "frequency", "eigen", "eigenfrequency":
		return FrequencyAnalysis(numShapes)
	}
	return Analysis{}, fmt.Errorf("unknown analysis %q", name)
}
