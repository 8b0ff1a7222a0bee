package text

import (
	"context"
	"io"
)

// ReplacementRule defines a single pattern replacement
type ReplacementRule struct {
	// Pattern is a regular expression; lookaround is supported
	Pattern string

	// Replacement is the replacement text; $1 style group references are expanded
	Replacement string

	// FileFilterGlob limits the rule to paths matching this doublestar glob
	FileFilterGlob string
}

// ReplacementResult contains the results of a text replacement operation
type ReplacementResult struct {
	// WasModified indicates if any replacements were made
	WasModified bool

	// ReplacementCount is the number of replacements made
	ReplacementCount int

	// OriginalContent is the content before replacements
	OriginalContent []byte

	// ModifiedContent is the content after replacements
	ModifiedContent []byte
}

// TextReplacer defines the interface for text replacement operations
type TextReplacer interface {
	// ReplaceText applies every rule whose glob matches path to the content
	ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error)

	// ValidateRules checks that all rules are valid
	ValidateRules(rules []ReplacementRule) error
}
