package model

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexiusacademia/gofemdesign/internal/entity"
	"github.com/alexiusacademia/gofemdesign/internal/version"
)

// Extension of struxml model files.
const Extension = ".struxml"

// Encode writes the model as an indented struxml document.
func (m *Model) Encode(w io.Writer) error {
	m.SourceSoftware = "gofemdesign " + version.Version
	m.EndTime = time.Now().UTC().Format(entity.TimeLayout)

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode struxml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// SerializeModel validates the model and writes it to path, creating the
// directory if needed.
func (m *Model) SerializeModel(path string) error {
	if !strings.EqualFold(filepath.Ext(path), Extension) {
		return fmt.Errorf("model file %s must have extension %s", path, Extension)
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := m.Encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Decode reads a struxml document and resolves load combination references.
func Decode(r io.Reader) (*Model, error) {
	var m Model
	if err := xml.NewDecoder(r).Decode(&m); err != nil {
		return nil, fmt.Errorf("decode struxml: %w", err)
	}
	if m.XMLName.Local != "database" {
		return nil, fmt.Errorf("decode struxml: unexpected root element <%s>", m.XMLName.Local)
	}
	for _, c := range m.Entities.Loads.LoadCombinations {
		if err := c.Resolve(m.Entities.Loads.LoadCases); err != nil {
			return nil, fmt.Errorf("decode struxml: %w", err)
		}
	}
	return &m, nil
}

// DeserializeFromFilePath reads a struxml model file.
func DeserializeFromFilePath(path string) (*Model, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	m, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return m, nil
}
