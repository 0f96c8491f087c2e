package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnsupportedFormat is returned for record files that are neither JSON nor YAML.
var ErrUnsupportedFormat = errors.New("unsupported record file format")

// Format is the encoding of a record file.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// RecordFile is the top-level structure of a record file. A file may also be
// a bare list of records, which parses into Records.
type RecordFile struct {
	Version int            `json:"version,omitempty" yaml:"version,omitempty"`
	Source  string         `json:"source,omitempty" yaml:"source,omitempty"`
	Records []RecordImport `json:"records" yaml:"records"`
}

// RecordImport defines one RFP in a record file. Optional numeric and
// approval fields are pointers so absence can be told apart from zero.
type RecordImport struct {
	ID             string           `json:"id" yaml:"id"`
	Title          string           `json:"title" yaml:"title"`
	Category       string           `json:"category" yaml:"category"`
	Site           string           `json:"site" yaml:"site"`
	Owner          string           `json:"owner" yaml:"owner"`
	Status         string           `json:"status" yaml:"status"`
	DueDate        string           `json:"dueDate" yaml:"dueDate"`
	BudgetAED      *float64         `json:"budgetAed,omitempty" yaml:"budgetAed,omitempty"`
	VendorsInvited *int             `json:"vendorsInvited,omitempty" yaml:"vendorsInvited,omitempty"`
	Submissions    *int             `json:"submissions,omitempty" yaml:"submissions,omitempty"`
	LastActivity   string           `json:"lastActivity" yaml:"lastActivity"`
	Approvals      *ApprovalsImport `json:"approvals,omitempty" yaml:"approvals,omitempty"`
	Risk           string           `json:"risk,omitempty" yaml:"risk,omitempty"`
}

// ApprovalsImport holds the three sign-off flags.
type ApprovalsImport struct {
	Finance bool `json:"finance" yaml:"finance"`
	Legal   bool `json:"legal" yaml:"legal"`
	Head    bool `json:"head" yaml:"head"`
}

// FormatFromPath picks the encoding from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// LoadRecordFile reads and parses a record file, choosing the decoder by
// extension.
func LoadRecordFile(path string) (*RecordFile, error) {
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	f, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing record file %s: %w", filepath.Base(path), err)
	}
	if f.Source == "" {
		f.Source = filepath.Base(path)
	}
	return f, nil
}

// Parse decodes a record file. Unknown JSON fields are rejected.
func Parse(data []byte, format Format) (*RecordFile, error) {
	switch format {
	case FormatJSON:
		return parseJSON(data)
	case FormatYAML:
		return parseYAML(data)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

func parseJSON(data []byte) (*RecordFile, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var records []RecordImport
		if err := strictJSON(trimmed, &records); err != nil {
			return nil, err
		}
		return &RecordFile{Records: records}, nil
	}
	var f RecordFile
	if err := strictJSON(trimmed, &f); err != nil {
		return nil, err
	}
	return &f, nil
}

func strictJSON(data []byte, v any) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func parseYAML(data []byte) (*RecordFile, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(data, &node); err != nil {
		return nil, err
	}
	if len(node.Content) == 0 {
		return &RecordFile{}, nil
	}
	root := node.Content[0]
	if root.Kind == yaml.SequenceNode {
		var records []RecordImport
		if err := root.Decode(&records); err != nil {
			return nil, err
		}
		return &RecordFile{Records: records}, nil
	}
	var f RecordFile
	if err := root.Decode(&f); err != nil {
		return nil, err
	}
	return &f, nil
}
