package sqllint

type tokenKind int

const (
	tokenWord tokenKind = iota // identifier or keyword
	tokenString                // quoted literal or quoted identifier
	tokenNumber
	tokenComment
	tokenOperator
	tokenOpenParen
	tokenCloseParen
	tokenSemicolon
)

type token struct {
	kind  tokenKind
	value string
	start int // byte offset into the source
	end   int
	line  int // 1-based position of the first byte
	col   int
}

// scan tokenizes SQL without interpreting it. The only findings it reports
// are parse-level: unterminated strings and block comments.
func scan(src string) ([]token, []Violation) {
	var tokens []token
	var violations []Violation

	line, col := 1, 1
	i := 0
	n := len(src)

	// step consumes one byte, tracking line/col.
	step := func() {
		if src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
		i++
	}

	for i < n {
		c := src[i]

		if c == ' ' || c == '\t' || c == '\r' || c == '\n' {
			step()
			continue
		}

		start, startLine, startCol := i, line, col
		emit := func(kind tokenKind) {
			tokens = append(tokens, token{
				kind:  kind,
				value: src[start:i],
				start: start,
				end:   i,
				line:  startLine,
				col:   startCol,
			})
		}

		// Line comment.
		if c == '-' && i+1 < n && src[i+1] == '-' {
			for i < n && src[i] != '\n' {
				step()
			}
			emit(tokenComment)
			continue
		}

		// Block comment.
		if c == '/' && i+1 < n && src[i+1] == '*' {
			step()
			step()
			closed := false
			for i < n {
				if src[i] == '*' && i+1 < n && src[i+1] == '/' {
					step()
					step()
					closed = true
					break
				}
				step()
			}
			if !closed {
				violations = append(violations, Violation{
					Line: startLine, Col: startCol,
					Code:        CodeUnterminatedComment,
					Description: "Block comment is never closed",
				})
			}
			emit(tokenComment)
			continue
		}

		// Quoted literal or quoted identifier. A doubled quote escapes
		// itself inside single quotes.
		if c == '\'' || c == '"' || c == '`' {
			quote := c
			step()
			closed := false
			for i < n {
				if src[i] == quote {
					if quote == '\'' && i+1 < n && src[i+1] == quote {
						step()
						step()
						continue
					}
					step()
					closed = true
					break
				}
				step()
			}
			if !closed {
				violations = append(violations, Violation{
					Line: startLine, Col: startCol,
					Code:        CodeUnterminatedString,
					Description: "Quoted string is never closed",
				})
			}
			emit(tokenString)
			continue
		}

		if c >= '0' && c <= '9' {
			for i < n && (isDigit(src[i]) || src[i] == '.') {
				step()
			}
			emit(tokenNumber)
			continue
		}

		if isWordStart(c) {
			for i < n && isWordPart(src[i]) {
				step()
			}
			emit(tokenWord)
			continue
		}

		switch c {
		case '(':
			step()
			emit(tokenOpenParen)
		case ')':
			step()
			emit(tokenCloseParen)
		case ';':
			step()
			emit(tokenSemicolon)
		default:
			step()
			emit(tokenOperator)
		}
	}

	return tokens, violations
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isWordStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isWordPart(c byte) bool {
	return isWordStart(c) || isDigit(c)
}
