package diag

import (
	"fmt"
)

// Kind classifies a structural issue found by the checker.
type Kind uint8

const (
	// Неизвестная ошибка
	UnknownKind Kind = iota
	// ExtraClose is a '}' with no open '{' to match.
	ExtraClose
	// UnclosedOpen is a '{' still open at end of input.
	UnclosedOpen
	// MissingContractBrace is a contract line without any '{'.
	MissingContractBrace
	// MissingImportSemicolon is an "import ... aka ..." line not ending in ';'.
	MissingImportSemicolon
	// MissingFuncParen is a line mentioning func without '('. Opt-in rule.
	MissingFuncParen
)

var kindMessages = map[Kind]string{
	UnknownKind:            "Unknown issue",
	ExtraClose:             "Extra '}'",
	UnclosedOpen:           "Unclosed '{'",
	MissingContractBrace:   "Expected '{' after 'contract'",
	MissingImportSemicolon: "Import statement must end with ';'",
	MissingFuncParen:       "Expected '(' after 'func'",
}

var kindNames = map[Kind]string{
	UnknownKind:            "unknown",
	ExtraClose:             "extra-close",
	UnclosedOpen:           "unclosed-open",
	MissingContractBrace:   "missing-contract-brace",
	MissingImportSemicolon: "missing-import-semicolon",
	MissingFuncParen:       "missing-func-paren",
}

// ID returns the stable code, e.g. TB0001.
func (k Kind) ID() string {
	if _, ok := kindMessages[k]; !ok || k == UnknownKind {
		return "TB0000"
	}
	return fmt.Sprintf("TB%04d", int(k))
}

// Message returns the human-readable text used in the canonical rendering.
func (k Kind) Message() string {
	msg, ok := kindMessages[k]
	if !ok {
		return kindMessages[UnknownKind]
	}
	return msg
}

// Name returns the kebab-case rule name.
func (k Kind) Name() string {
	name, ok := kindNames[k]
	if !ok {
		return kindNames[UnknownKind]
	}
	return name
}

// Severity returns the severity of the kind. Every structural issue is an error.
func (k Kind) Severity() Severity {
	return SevError
}

func (k Kind) String() string {
	return fmt.Sprintf("[%s]: %s", k.ID(), k.Message())
}

// Kinds returns all known kinds in code order.
func Kinds() []Kind {
	return []Kind{ExtraClose, UnclosedOpen, MissingContractBrace, MissingImportSemicolon, MissingFuncParen}
}
