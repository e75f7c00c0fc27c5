package model

import "github.com/alexiusacademia/gofemdesign/internal/entity"

// Material is a reference to a material of the FEM-Design material
// database. Only the identity is carried; strength data stays in
// FEM-Design.
type Material struct {
	entity.Entity
	Standard string  `xml:"standard,attr"`
	Country  Country `xml:"country,attr"`
	Name     string  `xml:"name,attr"`
}

func NewMaterial(name string, country Country) *Material {
	return &Material{Entity: entity.New(), Standard: "EC", Country: country, Name: name}
}

// Section is a reference to a cross-section of the section database,
// e.g. "Concrete sections, Rectangle, 300x900".
type Section struct {
	entity.Entity
	Name string `xml:"name,attr"`
	Type string `xml:"type,attr"`
}

func NewSection(name string) *Section {
	return &Section{Entity: entity.New(), Name: name, Type: "custom"}
}
