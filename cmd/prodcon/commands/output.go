package commands

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"
)

// Output formats accepted by --format.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatYAML = "yaml"
)

// RunResult is the structured result of a pipeline run.
type RunResult struct {
	Items     []int  `json:"items" yaml:"items"`
	Buffer    string `json:"buffer" yaml:"buffer"`
	Capacity  int    `json:"capacity" yaml:"capacity"`
	Producers int    `json:"producers" yaml:"producers"`
	Consumers int    `json:"consumers" yaml:"consumers"`
	RunID     string `json:"run_id" yaml:"run_id"`
}

// Text renders the human-readable result line.
func (r RunResult) Text() string {
	return "Consumed items: " + formatItems(r.Items)
}

// writeOutput writes v in the requested format. text uses texter when v
// provides it and fmt's default formatting otherwise.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case FormatText, "":
		if t, ok := v.(texter); ok {
			_, err := fmt.Fprintln(w, t.Text())
			return err
		}
		_, err := fmt.Fprintln(w, v)
		return err
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case FormatYAML:
		data, err := yaml.Marshal(v)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		_, err = w.Write(data)
		return err
	default:
		return fmt.Errorf("unsupported output format: %s", format)
	}
}

type texter interface {
	Text() string
}
