package sarif

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/TheApac/stringcheese/pkg/types"
)

// SARIF 2.1.0 constants
const (
	SchemaURI = "https://raw.githubusercontent.com/oasis-tcs/sarif-spec/master/Schemata/sarif-schema-2.1.0.json"
	Version   = "2.1.0"
	ToolName  = "stringcheese"
)

// Report is the top-level SARIF report structure
type Report struct {
	Schema  string `json:"$schema"`
	Version string `json:"version"`
	Runs    []Run  `json:"runs"`
}

// Run represents a single invocation of the tool
type Run struct {
	Tool    Tool     `json:"tool"`
	Results []Result `json:"results"`
}

// Tool describes the analysis tool
type Tool struct {
	Driver Driver `json:"driver"`
}

// Driver contains tool metadata
type Driver struct {
	Name    string `json:"name"`
	Version string `json:"version"`
	Rules   []Rule `json:"rules,omitempty"`
}

// Rule is one encoding the tool searched with.
type Rule struct {
	ID               string           `json:"id"`
	Name             string           `json:"name"`
	ShortDescription ShortDescription `json:"shortDescription"`
}

// ShortDescription contains rule description text
type ShortDescription struct {
	Text string `json:"text"`
}

// Result is one candidate flag.
type Result struct {
	RuleID     string            `json:"ruleId"`
	RuleIndex  int               `json:"ruleIndex"`
	Level      string            `json:"level"`
	Message    Message           `json:"message"`
	Locations  []Location        `json:"locations"`
	Properties map[string]string `json:"properties,omitempty"`
}

// Message contains the result message
type Message struct {
	Text string `json:"text"`
}

// Location describes where a result was found
type Location struct {
	PhysicalLocation PhysicalLocation `json:"physicalLocation"`
}

// PhysicalLocation specifies file location
type PhysicalLocation struct {
	ArtifactLocation ArtifactLocation `json:"artifactLocation"`
	Region           Region           `json:"region"`
}

// ArtifactLocation identifies the file
type ArtifactLocation struct {
	URI string `json:"uri"`
}

// Region locates a match by byte offset. Decoded flags rarely sit on text
// lines, so no line or column is reported.
type Region struct {
	ByteOffset int `json:"byteOffset"`
	ByteLength int `json:"byteLength,omitempty"`
}

// NewReport creates a new SARIF report with initialized structure
func NewReport(toolVersion string) *Report {
	return &Report{
		Schema:  SchemaURI,
		Version: Version,
		Runs: []Run{
			{
				Tool: Tool{
					Driver: Driver{
						Name:    ToolName,
						Version: toolVersion,
						Rules:   []Rule{},
					},
				},
				Results: []Result{},
			},
		},
	}
}

// ruleIndex returns the index of the rule for an encoding label, adding the
// rule on first use.
func (r *Report) ruleIndex(encoding string) int {
	rules := &r.Runs[0].Tool.Driver.Rules
	for i, rule := range *rules {
		if rule.ID == encoding {
			return i
		}
	}
	*rules = append(*rules, Rule{
		ID:   encoding,
		Name: encoding,
		ShortDescription: ShortDescription{
			Text: fmt.Sprintf("Pattern found encoded as %s", encoding),
		},
	})
	return len(*rules) - 1
}

// AddResult adds a candidate flag to the report.
func (r *Report) AddResult(res types.Result) {
	region := Region{ByteOffset: res.Offset}
	if len(res.Raw) > 0 {
		region.ByteLength = len(res.Raw)
	}

	result := Result{
		RuleID:    res.Encoding,
		RuleIndex: r.ruleIndex(res.Encoding),
		Level:     "note",
		Message: Message{
			Text: res.Flag,
		},
		Locations: []Location{
			{
				PhysicalLocation: PhysicalLocation{
					ArtifactLocation: ArtifactLocation{
						URI: formatFileURI(res.Source),
					},
					Region: region,
				},
			},
		},
		Properties: map[string]string{
			"view": res.View,
		},
	}

	r.Runs[0].Results = append(r.Runs[0].Results, result)
}

// ToJSON serializes the report to JSON bytes
func (r *Report) ToJSON() ([]byte, error) {
	return json.MarshalIndent(r, "", "  ")
}

// formatFileURI converts a file path to SARIF URI format
// Absolute paths get file:// prefix, relative paths stay as-is
func formatFileURI(path string) string {
	if path == "" {
		return "stdin"
	}
	if filepath.IsAbs(path) {
		path = filepath.ToSlash(path)
		if !strings.HasPrefix(path, "/") {
			path = "/" + path
		}
		return "file://" + path
	}
	return filepath.ToSlash(path)
}
