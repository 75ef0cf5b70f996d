// Package render turns a Result into the surfaces a caller shows or copies:
// a styled report, JSON, YAML, a rule script and a comparison diff. Rule
// order is always the Result's order.
package render

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"firewall-rule-generator/internal/model"
)

type Format string

const (
	FormatText   Format = "text"
	FormatJSON   Format = "json"
	FormatYAML   Format = "yaml"
	FormatScript Format = "script"
	FormatDiff   Format = "diff"
)

var formats = []Format{FormatText, FormatJSON, FormatYAML, FormatScript, FormatDiff}

func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unknown output format %q (want one of %v)", s, formats)
}

type Options struct {
	// Color enables lipgloss styling in the text report.
	Color bool
}

// Write renders res to w in the requested format.
func Write(w io.Writer, format Format, res model.Result, opts Options) error {
	var out string
	switch format {
	case FormatText:
		out = Report(res, opts)
	case FormatJSON:
		data, err := json.MarshalIndent(res, "", "  ")
		if err != nil {
			return fmt.Errorf("marshal json: %w", err)
		}
		out = string(data) + "\n"
	case FormatYAML:
		data, err := yaml.Marshal(res)
		if err != nil {
			return fmt.Errorf("marshal yaml: %w", err)
		}
		out = string(data)
	case FormatScript:
		out = Script(res)
	case FormatDiff:
		out = ComparisonDiff(res.Comparison)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	_, err := io.WriteString(w, out)
	return err
}
