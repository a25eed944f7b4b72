package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"htmlcheck/internal/elements"
)

// CompletionOutput is one completion proposal for JSON output.
type CompletionOutput struct {
	Label string `json:"label"`
	Desc  string `json:"desc,omitempty"`
}

// FormatCompletionsPretty writes one proposal per line.
func FormatCompletionsPretty(w io.Writer, comps []elements.Completion) error {
	for _, c := range comps {
		if c.Desc != "" {
			fmt.Fprintf(w, "%-12s %s\n", c.Label, c.Desc)
			continue
		}
		fmt.Fprintln(w, c.Label)
	}
	return nil
}

// FormatCompletionsJSON writes the proposals as a JSON array.
func FormatCompletionsJSON(w io.Writer, comps []elements.Completion) error {
	output := make([]CompletionOutput, 0, len(comps))
	for _, c := range comps {
		output = append(output, CompletionOutput{Label: c.Label, Desc: c.Desc})
	}
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
