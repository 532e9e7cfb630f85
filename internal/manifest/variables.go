package manifest

import "strings"

type position struct {
	line   int
	column int
}

/**
 * ExtractVariables collects placeholder names from raw manifest text
 * @param {string} raw - Full manifest text
 * @returns {[]string} Placeholder names in order of appearance, duplicates kept
 * @returns {error} *SyntaxError when a '{' is never closed
 * @description
 * - `{name}` yields one entry "name"; text outside braces is ignored
 * - A backslash escapes the next character on the same line, so `\{` and `\}`
 *   never open or close a placeholder
 * - An escaped character inside an open placeholder becomes part of the name
 * - A second '{' inside an open placeholder is kept as literal text
 * - A '}' with no open placeholder is ignored
 * - Line breaks are not part of any name and cancel a pending escape
 */
func ExtractVariables(raw string) ([]string, error) {
	vars := []string{}

	var (
		name    strings.Builder
		open    *position
		escaped bool
		line    = 1
		column  = 0
	)

	runes := []rune(raw)
	for i := 0; i < len(runes); i++ {
		r := runes[i]
		if r == '\r' && i+1 < len(runes) && runes[i+1] == '\n' {
			continue
		}
		if r == '\n' {
			line++
			column = 0
			escaped = false
			continue
		}
		column++

		if escaped {
			escaped = false
			if open != nil {
				name.WriteRune(r)
			}
			continue
		}

		switch r {
		case '\\':
			escaped = true
		case '{':
			if open == nil {
				open = &position{line: line, column: column}
			} else {
				name.WriteRune(r)
			}
		case '}':
			if open != nil {
				vars = append(vars, name.String())
				name.Reset()
				open = nil
			}
		default:
			if open != nil {
				name.WriteRune(r)
			}
		}
	}

	if open != nil {
		return nil, &SyntaxError{Line: open.line, Column: open.column}
	}
	return vars, nil
}
