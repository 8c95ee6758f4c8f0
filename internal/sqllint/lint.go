// Package sqllint checks SQL source files for syntax-level problems and a
// small set of layout rules, and can rewrite a file to satisfy the fixable
// ones.
package sqllint

import (
	"fmt"
	"sort"
	"strings"
)

// Rule codes. PRS-prefixed codes are parse failures and block Fix; L-prefixed
// codes are layout findings that Fix can repair.
const (
	CodeUnbalancedParens    = "PRS01"
	CodeUnterminatedString  = "PRS02"
	CodeUnterminatedComment = "PRS03"
	CodeTrailingWhitespace  = "L001"
	CodeKeywordCasing       = "L010"
	CodeMissingSemicolon    = "L052"
)

// Violation is one finding, positioned at the first byte of the offending
// token or line.
type Violation struct {
	Line        int
	Col         int
	Code        string
	Description string
}

// Options control which rules run and which keyword set applies.
type Options struct {
	Dialect    string // "ansi", "mysql" or "postgres"; anything else means ansi
	OnlySyntax bool   // report only PRS-coded findings
}

// Lint checks src and returns all findings sorted by position.
func Lint(src string, opts Options) []Violation {
	tokens, violations := scan(src)
	keywords := keywordSet(opts.Dialect)

	depth := 0
	for _, t := range tokens {
		switch t.kind {
		case tokenOpenParen:
			depth++
		case tokenCloseParen:
			depth--
			if depth < 0 {
				violations = append(violations, Violation{
					Line: t.line, Col: t.col,
					Code:        CodeUnbalancedParens,
					Description: "Closing parenthesis has no opening partner",
				})
				depth = 0
			}
		case tokenWord:
			upper := strings.ToUpper(t.value)
			if keywords[upper] && t.value != upper {
				violations = append(violations, Violation{
					Line: t.line, Col: t.col,
					Code:        CodeKeywordCasing,
					Description: fmt.Sprintf("Keyword '%s' should be upper case", t.value),
				})
			}
		}
	}
	if depth > 0 {
		last := tokens[len(tokens)-1]
		violations = append(violations, Violation{
			Line: last.line, Col: last.col,
			Code:        CodeUnbalancedParens,
			Description: fmt.Sprintf("%d opening parenthesis(es) never closed", depth),
		})
	}

	for idx, rawLine := range strings.Split(src, "\n") {
		trimmed := strings.TrimRight(rawLine, " \t")
		if trimmed != rawLine {
			violations = append(violations, Violation{
				Line: idx + 1, Col: len(trimmed) + 1,
				Code:        CodeTrailingWhitespace,
				Description: "Trailing whitespace",
			})
		}
	}

	if last, ok := lastCodeToken(tokens); ok && last.kind != tokenSemicolon {
		violations = append(violations, Violation{
			Line: last.line, Col: last.col,
			Code:        CodeMissingSemicolon,
			Description: "Final statement is not terminated with a semicolon",
		})
	}

	if opts.OnlySyntax {
		kept := violations[:0]
		for _, v := range violations {
			if strings.HasPrefix(v.Code, "PRS") {
				kept = append(kept, v)
			}
		}
		violations = kept
	}

	sort.Slice(violations, func(i, j int) bool {
		if violations[i].Line != violations[j].Line {
			return violations[i].Line < violations[j].Line
		}
		if violations[i].Col != violations[j].Col {
			return violations[i].Col < violations[j].Col
		}
		return violations[i].Code < violations[j].Code
	})
	return violations
}

// Fix rewrites src so the fixable layout rules pass: keywords upper-cased,
// trailing whitespace stripped, and a semicolon appended after the final
// statement. It refuses to touch source that fails to parse and reports
// whether anything changed.
func Fix(src string, opts Options) (string, bool) {
	tokens, parseViolations := scan(src)
	if len(parseViolations) > 0 {
		return src, false
	}
	keywords := keywordSet(opts.Dialect)

	var b strings.Builder
	b.Grow(len(src) + 1)
	pos := 0
	for _, t := range tokens {
		b.WriteString(src[pos:t.start])
		if t.kind == tokenWord {
			if upper := strings.ToUpper(t.value); keywords[upper] {
				b.WriteString(upper)
			} else {
				b.WriteString(t.value)
			}
		} else {
			b.WriteString(src[t.start:t.end])
		}
		pos = t.end
	}
	b.WriteString(src[pos:])
	out := b.String()

	lines := strings.Split(out, "\n")
	for i := range lines {
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	out = strings.Join(lines, "\n")

	// Re-scan the rewritten text so token offsets are valid in it.
	fixedTokens, _ := scan(out)
	if last, ok := lastCodeToken(fixedTokens); ok && last.kind != tokenSemicolon {
		out = out[:last.end] + ";" + out[last.end:]
	}

	return out, out != src
}

// lastCodeToken returns the last token that is not a comment.
func lastCodeToken(tokens []token) (token, bool) {
	for i := len(tokens) - 1; i >= 0; i-- {
		if tokens[i].kind != tokenComment {
			return tokens[i], true
		}
	}
	return token{}, false
}
