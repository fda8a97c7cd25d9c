package diagfmt

import (
	"io"

	"gopkg.in/yaml.v3"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

// YAML renders the same document as JSON, in YAML.
func YAML(w io.Writer, bag *diag.Bag, file *source.File, opts JSONOpts) error {
	return EncodeYAML(w, BuildDiagnosticsOutput(bag, file, opts))
}

// EncodeYAML writes v as a YAML document.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		_ = enc.Close()
		return err
	}
	return enc.Close()
}
