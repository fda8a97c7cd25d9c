package diagfmt

import (
	"encoding/json"
	"io"

	"turbalance/internal/diag"
	"turbalance/internal/source"
)

// LocationJSON представляет местоположение в файле для JSON
type LocationJSON struct {
	File   string `json:"file" yaml:"file"`
	Line   int    `json:"line" yaml:"line"`
	Column int    `json:"column,omitempty" yaml:"column,omitempty"`
}

// DiagnosticJSON представляет диагностику в JSON формате
type DiagnosticJSON struct {
	Severity string       `json:"severity" yaml:"severity"`
	Code     string       `json:"code" yaml:"code"`
	Rule     string       `json:"rule" yaml:"rule"`
	Message  string       `json:"message" yaml:"message"`
	Text     string       `json:"text" yaml:"text"`
	Location LocationJSON `json:"location" yaml:"location"`
}

// DiagnosticsOutput представляет корневую структуру JSON вывода
type DiagnosticsOutput struct {
	Diagnostics []DiagnosticJSON `json:"diagnostics" yaml:"diagnostics"`
	Count       int              `json:"count" yaml:"count"`
	Truncated   int              `json:"truncated,omitempty" yaml:"truncated,omitempty"`
}

// BuildDiagnosticsOutput формирует структуру вывода без сериализации.
func BuildDiagnosticsOutput(bag *diag.Bag, file *source.File, opts JSONOpts) DiagnosticsOutput {
	items := bag.Items()
	maxItems := len(items)
	if opts.Max > 0 && opts.Max < maxItems {
		maxItems = opts.Max
	}

	path := displayPath(file, opts.PathMode, opts.BaseDir)
	diagnostics := make([]DiagnosticJSON, 0, maxItems)
	for _, d := range items[:maxItems] {
		diagnostics = append(diagnostics, DiagnosticJSON{
			Severity: d.Severity().String(),
			Code:     d.Kind.ID(),
			Rule:     d.Kind.Name(),
			Message:  d.Message(),
			Text:     d.String(),
			Location: LocationJSON{File: path, Line: d.Line, Column: d.Column},
		})
	}

	return DiagnosticsOutput{
		Diagnostics: diagnostics,
		Count:       len(diagnostics),
		Truncated:   bag.Truncated() + len(items) - maxItems,
	}
}

// JSON форматирует диагностики в JSON формат.
func JSON(w io.Writer, bag *diag.Bag, file *source.File, opts JSONOpts) error {
	return EncodeJSON(w, BuildDiagnosticsOutput(bag, file, opts))
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}
