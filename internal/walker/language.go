package walker

import (
	"path"
	"strings"

	"github.com/ctt011/folio/internal/catalog"
)

// extensionToLanguage maps file extensions to catalog language ids.
var extensionToLanguage = map[string]string{
	// HDL
	".sv":   "systemverilog",
	".svh":  "systemverilog",
	".v":    "verilog",
	".vh":   "verilog",
	".vhd":  "vhdl",
	".vhdl": "vhdl",
	// Software
	".go":   "go",
	".py":   "python",
	".ts":   "typescript",
	".tsx":  "typescript",
	".js":   "javascript",
	".jsx":  "javascript",
	".mjs":  "javascript",
	".java": "java",
	".rs":   "rust",
	".c":    "c",
	".h":    "c",
	".cpp":  "cpp",
	".cc":   "cpp",
	".hpp":  "cpp",
	".cs":   "csharp",
	".rb":   "ruby",
	".kt":   "kotlin",
	".sh":   "shell",
	".bash": "shell",
	".sql":  "sql",
	".lua":  "lua",
	".tcl":  "tcl",
	".s":    "asm",
	".asm":  "asm",
	// Images
	".png":  catalog.LanguageImage,
	".jpg":  catalog.LanguageImage,
	".jpeg": catalog.LanguageImage,
	".gif":  catalog.LanguageImage,
	".svg":  catalog.LanguageImage,
	".webp": catalog.LanguageImage,
}

// filenameToLanguage maps specific filenames to language ids.
var filenameToLanguage = map[string]string{
	"Makefile":   "makefile",
	"Dockerfile": "dockerfile",
}

// DetectLanguage returns the catalog language id for a filename based on
// its exact name or extension, or "" for files that are not sources.
func DetectLanguage(filename string) string {
	base := path.Base(filename)

	// Check exact filename matches first.
	if lang, ok := filenameToLanguage[base]; ok {
		return lang
	}

	return extensionToLanguage[strings.ToLower(path.Ext(base))]
}
