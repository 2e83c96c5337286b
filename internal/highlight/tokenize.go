package highlight

// Tokenize splits one line of SystemVerilog/Verilog into classified tokens.
// Concatenating the token texts yields the input unchanged.
//
// Rules, tried in order at each position:
//   - "//" starts a comment that runs to end of line or to the first '<'
//   - '"' starts a string that ends at the next unescaped '"' on the line
//   - identifiers are keywords, types or plain words
//   - digits form a number when the run is a decimal or a sized literal
//     such as 8'hFF and is not glued to a following word character
func Tokenize(line string) []Token {
	var tokens []Token
	plainStart := -1

	flush := func(end int) {
		if plainStart >= 0 && plainStart < end {
			tokens = append(tokens, Token{Kind: Plain, Text: line[plainStart:end]})
		}
		plainStart = -1
	}
	emit := func(kind Kind, start, end int) {
		flush(start)
		tokens = append(tokens, Token{Kind: kind, Text: line[start:end]})
	}

	i := 0
	for i < len(line) {
		c := line[i]
		switch {
		case c == '/' && i+1 < len(line) && line[i+1] == '/':
			end := i + 2
			for end < len(line) && line[end] != '<' {
				end++
			}
			emit(Comment, i, end)
			i = end

		case c == '"':
			end, ok := scanString(line, i)
			if !ok {
				if plainStart < 0 {
					plainStart = i
				}
				i++
				continue
			}
			emit(String, i, end)
			i = end

		case isIdentStart(c):
			end := i + 1
			for end < len(line) && isWord(line[end]) {
				end++
			}
			switch word := line[i:end]; {
			case keywords[word]:
				emit(Keyword, i, end)
			case types[word]:
				emit(Type, i, end)
			default:
				if plainStart < 0 {
					plainStart = i
				}
			}
			i = end

		case isDigit(c):
			end, ok := scanNumber(line, i)
			if ok {
				emit(Number, i, end)
			} else if plainStart < 0 {
				plainStart = i
			}
			i = end

		default:
			if plainStart < 0 {
				plainStart = i
			}
			i++
		}
	}
	flush(len(line))
	return tokens
}

// scanString returns the index just past the closing quote of the string
// starting at start, honouring backslash escapes.
func scanString(line string, start int) (int, bool) {
	for j := start + 1; j < len(line); j++ {
		switch line[j] {
		case '\\':
			j++
		case '"':
			return j + 1, true
		}
	}
	return 0, false
}

// scanNumber consumes the word-like run starting at a digit. It reports
// whether the consumed text is a number. When it is not, the returned end
// covers the whole run so it is treated as a single plain word.
func scanNumber(line string, start int) (int, bool) {
	j := start
	for j < len(line) && isDigit(line[j]) {
		j++
	}

	// Sized or based literal: <width>'<base><digits>.
	if j+2 < len(line) && line[j] == '\'' && isBase(line[j+1]) && isBasedDigit(line[j+2]) {
		k := j + 2
		for k < len(line) && isBasedDigit(line[k]) {
			k++
		}
		if k == len(line) || !isWord(line[k]) {
			return k, true
		}
	}

	if j == len(line) || !isWord(line[j]) {
		return j, true
	}

	for j < len(line) && isWord(line[j]) {
		j++
	}
	return j, false
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isWord(c byte) bool { return isIdentStart(c) || isDigit(c) }

func isBase(c byte) bool { return c == 'h' || c == 'b' || c == 'd' || c == 'o' }

func isBasedDigit(c byte) bool {
	return isDigit(c) || c == '_' || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}
