// Package highlight provides lightweight syntax highlighting for
// SystemVerilog and Verilog sources. Each line is tokenized once and every
// character lands in exactly one token, so spans never nest.
package highlight

import (
	"strings"
)

// Kind classifies a token.
type Kind int

const (
	Plain Kind = iota
	Keyword
	Type
	Comment
	String
	Number
)

// Class returns the CSS class used for the kind, or "" for plain text.
func (k Kind) Class() string {
	switch k {
	case Keyword:
		return "syntax-keyword"
	case Type:
		return "syntax-type"
	case Comment:
		return "syntax-comment"
	case String:
		return "syntax-string"
	case Number:
		return "syntax-number"
	default:
		return ""
	}
}

// Token is a run of source text with a single classification.
type Token struct {
	Kind Kind
	Text string
}

var keywords = toSet(
	"module", "endmodule", "input", "output", "logic", "wire", "reg",
	"parameter", "localparam", "typedef", "enum", "struct", "union",
	"always_comb", "always_ff", "always_latch", "always", "initial",
	"case", "endcase", "if", "else", "for", "while", "begin", "end",
	"function", "endfunction", "task", "endtask", "class", "endclass",
	"package", "endpackage", "interface", "endinterface", "modport",
	"clocking", "endclocking", "property", "endproperty", "assert",
	"assign", "return", "import", "export", "rand", "randc",
	"constraint", "inside", "default",
)

var types = toSet("int", "bit", "byte", "string", "void", "automatic")

func toSet(words ...string) map[string]bool {
	m := make(map[string]bool, len(words))
	for _, w := range words {
		m[w] = true
	}
	return m
}

// Supported reports whether lang gets token highlighting. Other languages
// are escaped and passed through.
func Supported(lang string) bool {
	switch strings.ToLower(lang) {
	case "systemverilog", "verilog":
		return true
	}
	return false
}

var escaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")

// Escape neutralizes the three markup-sensitive characters.
func Escape(s string) string {
	return escaper.Replace(s)
}

// Line highlights one line of source and returns HTML. Unsupported
// languages are only escaped.
func Line(line, lang string) string {
	if !Supported(lang) {
		return Escape(line)
	}

	var b strings.Builder
	for _, tok := range Tokenize(line) {
		class := tok.Kind.Class()
		if class == "" {
			b.WriteString(Escape(tok.Text))
			continue
		}
		b.WriteString(`<span class="`)
		b.WriteString(class)
		b.WriteString(`">`)
		b.WriteString(Escape(tok.Text))
		b.WriteString(`</span>`)
	}
	return b.String()
}

// Lines splits code into lines, dropping a trailing carriage return from
// each one.
func Lines(code string) []string {
	lines := strings.Split(code, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimSuffix(l, "\r")
	}
	return lines
}
