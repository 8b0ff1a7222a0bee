package text

import (
	"context"
	"io"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/dlclark/regexp2"
	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

var _ TextReplacer = (*RegexReplacer)(nil)

// RegexReplacer implements TextReplacer with regexp2 patterns
type RegexReplacer struct{}

// NewRegexReplacer creates a new RegexReplacer
func NewRegexReplacer() *RegexReplacer {
	return &RegexReplacer{}
}

// ReplaceText implements TextReplacer.ReplaceText
func (r *RegexReplacer) ReplaceText(ctx context.Context, path string, content io.Reader, rules []ReplacementRule) (*ReplacementResult, error) {
	originalContent, err := io.ReadAll(content)
	if err != nil {
		return nil, errors.Errorf("reading content: %w", err)
	}

	result := &ReplacementResult{
		OriginalContent: originalContent,
		ModifiedContent: originalContent,
	}

	currentContent := string(originalContent)
	for i, rule := range rules {
		if rule.Pattern == "" {
			continue
		}

		applies, err := matchesFile(rule.FileFilterGlob, path)
		if err != nil {
			return nil, errors.Errorf("rule %d: matching file filter: %w", i, err)
		}
		if !applies {
			zerolog.Ctx(ctx).Trace().Str("path", path).Str("glob", rule.FileFilterGlob).Msg("rule skipped")
			continue
		}

		re, err := regexp2.Compile(rule.Pattern, regexp2.None)
		if err != nil {
			return nil, errors.Errorf("rule %d: compiling pattern: %w", i, err)
		}

		count, err := countMatches(re, currentContent)
		if err != nil {
			return nil, errors.Errorf("rule %d: matching pattern: %w", i, err)
		}
		if count == 0 {
			continue
		}

		newContent, err := re.Replace(currentContent, rule.Replacement, -1, -1)
		if err != nil {
			return nil, errors.Errorf("rule %d: replacing: %w", i, err)
		}

		if newContent != currentContent {
			result.WasModified = true
		}
		result.ReplacementCount += count
		currentContent = newContent
	}

	result.ModifiedContent = []byte(currentContent)
	return result, nil
}

// ValidateRules implements TextReplacer.ValidateRules
func (r *RegexReplacer) ValidateRules(rules []ReplacementRule) error {
	for i, rule := range rules {
		if rule.Pattern == "" {
			return errors.Errorf("rule %d: pattern is required", i)
		}
		if rule.FileFilterGlob == "" {
			return errors.Errorf("rule %d: file_filter_glob is required", i)
		}
		if !doublestar.ValidatePattern(rule.FileFilterGlob) {
			return errors.Errorf("rule %d: invalid file_filter_glob %q", i, rule.FileFilterGlob)
		}
		if _, err := regexp2.Compile(rule.Pattern, regexp2.None); err != nil {
			return errors.Errorf("rule %d: invalid pattern: %w", i, err)
		}
	}
	return nil
}

// matchesFile reports whether path matches glob. An empty glob matches everything.
func matchesFile(glob, path string) (bool, error) {
	if glob == "" {
		return true, nil
	}
	return doublestar.Match(glob, filepath.ToSlash(path))
}

func countMatches(re *regexp2.Regexp, s string) (int, error) {
	count := 0
	m, err := re.FindStringMatch(s)
	for m != nil && err == nil {
		count++
		m, err = re.FindNextMatch(m)
	}
	return count, err
}
