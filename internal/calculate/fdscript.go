package calculate

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/alexiusacademia/gofemdesign/internal/version"
)

// Script commands as fdscript.xsd spells them.
const (
	cmdOpenCommand        = "; CXL CS2SHELL OPEN"
	cmdCalculationCommand = "; CXL $MODULE CALC"
	cmdListGenCommand     = "$ MODULECOM LISTGEN"
	cmdSaveCommand        = "; CXL CS2SHELL SAVE"
)

// FdScriptHeader is the FDSCRIPTHEADER block of fdscript.xsd.
type FdScriptHeader struct {
	Title   string `xml:"title"`
	Version string `xml:"version"`
	Module  string `xml:"module"`
	LogFile string `xml:"logfile"`
}

func NewFdScriptHeader(title, logFile string) FdScriptHeader {
	return FdScriptHeader{
		Title:   title,
		Version: version.FemDesignVersion,
		Module:  "sframe",
		LogFile: logFile,
	}
}

// SetProgram overrides the FEM-Design version and module the script is
// written for. Empty values keep the current ones.
func (s *FdScript) SetProgram(version, module string) {
	if version != "" {
		s.Header.Version = version
	}
	if module != "" {
		s.Header.Module = module
	}
}

type CmdOpen struct {
	Command  string `xml:"command,attr"`
	FileName string `xml:"filename"`
}

type CmdCalculation struct {
	Command  string   `xml:"command,attr"`
	Analysis Analysis `xml:"analysis"`
}

// CmdListGen runs a bsc file and writes its table to OutFile.
type CmdListGen struct {
	Command   string `xml:"command,attr"`
	BscFile   string `xml:"bscfile,attr"`
	OutFile   string `xml:"outfile,attr"`
	Regional  flag   `xml:"regional,attr"`
	FillCells flag   `xml:"fillcells,attr"`
	Headers   flag   `xml:"headers,attr"`
}

type CmdSave struct {
	Command  string `xml:"command,attr"`
	FileName string `xml:"filename"`
}

type CmdEndSession struct{}

// FdScript is a script for the FEM-Design batch interface. Bsc files use
// the same root with only a doctable command.
type FdScript struct {
	XMLName        xml.Name        `xml:"fdscript"`
	XSI            string          `xml:"xmlns:xsi,attr,omitempty"`
	SchemaLocation string          `xml:"xsi:noNamespaceSchemaLocation,attr,omitempty"`
	Header         FdScriptHeader  `xml:"fdscriptheader"`
	CmdOpen        *CmdOpen        `xml:"cmdopen,omitempty"`
	CmdCalculation *CmdCalculation `xml:"cmdcalculation,omitempty"`
	CmdListGen     []CmdListGen    `xml:"cmdlistgen"`
	CmdDocTable    *CmdDocTable    `xml:"cmddoctable,omitempty"`
	CmdSave        *CmdSave        `xml:"cmdsave,omitempty"`
	CmdEndSession  *CmdEndSession  `xml:"cmdendsession,omitempty"`

	// FdScriptPath is where Serialize writes the script.
	FdScriptPath string `xml:"-"`
	// StruxmlPath is the model the script opens and saves.
	StruxmlPath string `xml:"-"`
}

const (
	scriptTitle    = "FEM-Design API"
	scriptFileName = "Analysis.fdscript"
	logFileName    = "logfile.log"
)

func newScript(header FdScriptHeader) *FdScript {
	return &FdScript{
		XSI:            "http://www.w3.org/2001/XMLSchema-instance",
		SchemaLocation: "fdscript.xsd",
		Header:         header,
	}
}

// workDir is the directory FEM-Design scripts, logs and listings for a
// model go to: "<dir>/<model name>".
func workDir(struxmlPath string) string {
	base := strings.TrimSuffix(filepath.Base(struxmlPath), filepath.Ext(struxmlPath))
	return filepath.Join(filepath.Dir(struxmlPath), base)
}

// OutFileFor returns the listing a bsc file is written to.
func OutFileFor(struxmlPath, bscPath string) string {
	name := strings.TrimSuffix(filepath.Base(bscPath), filepath.Ext(bscPath)) + ".csv"
	return filepath.Join(workDir(struxmlPath), "results", name)
}

// NewAnalysisScript opens the model, runs the analysis, lists every bsc
// file and saves the model. With endSession FEM-Design closes afterwards.
func NewAnalysisScript(struxmlPath string, analysis Analysis, bscPaths []string, endSession bool) (*FdScript, error) {
	if !strings.EqualFold(filepath.Ext(struxmlPath), ".struxml") {
		return nil, fmt.Errorf("analysis script: %s is not a .struxml file", struxmlPath)
	}
	dir := workDir(struxmlPath)
	s := newScript(NewFdScriptHeader(scriptTitle, filepath.Join(dir, logFileName)))
	s.FdScriptPath = filepath.Join(dir, "scripts", scriptFileName)
	s.StruxmlPath = struxmlPath

	s.CmdOpen = &CmdOpen{Command: cmdOpenCommand, FileName: struxmlPath}
	s.CmdCalculation = &CmdCalculation{Command: cmdCalculationCommand, Analysis: analysis}
	for _, bsc := range bscPaths {
		if !strings.EqualFold(filepath.Ext(bsc), BscExtension) {
			return nil, fmt.Errorf("analysis script: %s is not a %s file", bsc, BscExtension)
		}
		s.CmdListGen = append(s.CmdListGen, CmdListGen{
			Command:   cmdListGenCommand,
			BscFile:   bsc,
			OutFile:   OutFileFor(struxmlPath, bsc),
			Regional:  true,
			FillCells: true,
			Headers:   true,
		})
	}
	s.CmdSave = &CmdSave{Command: cmdSaveCommand, FileName: struxmlPath}
	if endSession {
		s.CmdEndSession = &CmdEndSession{}
	}
	return s, nil
}

// OutFiles lists the files the list generator commands write.
func (s *FdScript) OutFiles() []string {
	out := make([]string, 0, len(s.CmdListGen))
	for _, c := range s.CmdListGen {
		out = append(out, c.OutFile)
	}
	return out
}

// Encode writes the script as XML.
func (s *FdScript) Encode(w io.Writer) error {
	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode fdscript: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Serialize writes the script to FdScriptPath and creates the directories
// listings are written to.
func (s *FdScript) Serialize() error {
	if s.FdScriptPath == "" {
		return fmt.Errorf("fdscript has no path")
	}
	dirs := []string{filepath.Dir(s.FdScriptPath)}
	for _, out := range s.OutFiles() {
		dirs = append(dirs, filepath.Dir(out))
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return err
		}
	}
	return writeFile(s.FdScriptPath, s.Encode)
}

// ReadFdScript decodes a script or bsc file.
func ReadFdScript(path string) (*FdScript, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var s FdScript
	if err := xml.NewDecoder(f).Decode(&s); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	s.FdScriptPath = path
	if s.CmdOpen != nil {
		s.StruxmlPath = s.CmdOpen.FileName
	}
	return &s, nil
}

func writeFile(path string, encode func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := encode(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
