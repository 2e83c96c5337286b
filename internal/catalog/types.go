package catalog

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// LanguageImage marks a source file that is displayed as a picture rather
// than fetched as text.
const LanguageImage = "image"

// Year is a project year. Catalogs may write it as a string or a number;
// it is held in string form and compared by equality.
type Year string

// UnmarshalJSON accepts both "2024" and 2024.
func (y *Year) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		*y = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*y = Year(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("year must be a string or number: %w", err)
	}
	*y = Year(n.String())
	return nil
}

// MarshalJSON writes numeric years as numbers so the catalog round-trips.
func (y Year) MarshalJSON() ([]byte, error) {
	if _, err := strconv.Atoi(string(y)); err == nil {
		return []byte(y), nil
	}
	return json.Marshal(string(y))
}

func (y Year) String() string { return string(y) }

// SourceFile describes example code attached to a project. Exactly one of
// Path (fetched on demand) or Code (inline) is expected to be set.
type SourceFile struct {
	Filename string `json:"filename"`
	Language string `json:"language"`
	Path     string `json:"path,omitempty"`
	Code     string `json:"code,omitempty"`
}

// IsImage reports whether the file is rendered as an image reference.
func (f SourceFile) IsImage() bool {
	return strings.EqualFold(f.Language, LanguageImage)
}

// Project is one catalog entry.
type Project struct {
	Slug            string       `json:"slug"`
	Title           string       `json:"title"`
	Description     string       `json:"description"`
	FullDescription string       `json:"fullDescription"`
	Year            Year         `json:"year"`
	Image           string       `json:"image"`
	Tags            []string     `json:"tags,omitempty"`
	TechStack       []string     `json:"techStack,omitempty"`
	GithubURL       string       `json:"githubUrl,omitempty"`
	LiveURL         string       `json:"liveUrl,omitempty"`
	Challenges      string       `json:"challenges,omitempty"`
	Learnings       string       `json:"learnings,omitempty"`
	SourceFiles     []SourceFile `json:"sourceFiles,omitempty"`

	// Extra holds catalog fields this type does not model, stringified.
	// They take part in search but are not rendered.
	Extra map[string]string `json:"-"`
}

// knownFields lists the JSON names modelled by Project.
var knownFields = map[string]bool{
	"slug": true, "title": true, "description": true, "fullDescription": true,
	"year": true, "image": true, "tags": true, "techStack": true,
	"githubUrl": true, "liveUrl": true, "challenges": true, "learnings": true,
	"sourceFiles": true,
}

// UnmarshalJSON decodes the modelled fields and keeps the rest in Extra.
func (p *Project) UnmarshalJSON(data []byte) error {
	type plain Project
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}

	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	for key, value := range raw {
		if knownFields[key] {
			continue
		}
		if decoded.Extra == nil {
			decoded.Extra = make(map[string]string)
		}
		decoded.Extra[key] = stringify(value)
	}

	*p = Project(decoded)
	return nil
}

// HasTag reports whether the project carries tag.
func (p Project) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SearchText concatenates every field value of the project, including ones
// the grid never shows, separated by spaces. Lists are comma-joined.
func (p Project) SearchText() string {
	parts := []string{
		p.Slug, p.Title, p.Description, p.FullDescription, string(p.Year),
		p.Image, strings.Join(p.Tags, ","), strings.Join(p.TechStack, ","),
		p.GithubURL, p.LiveURL, p.Challenges, p.Learnings,
	}
	for _, f := range p.SourceFiles {
		parts = append(parts, f.Filename)
	}

	keys := make([]string, 0, len(p.Extra))
	for k := range p.Extra {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		parts = append(parts, p.Extra[k])
	}
	return strings.Join(parts, " ")
}

// stringify renders a raw JSON value the way it reads in text: strings
// unquoted, arrays comma-joined, everything else as written.
func stringify(raw json.RawMessage) string {
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return string(raw)
	}
	return stringifyValue(v)
}

func stringifyValue(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case []any:
		items := make([]string, len(val))
		for i, item := range val {
			items[i] = stringifyValue(item)
		}
		return strings.Join(items, ",")
	case map[string]any:
		data, _ := json.Marshal(val)
		return string(data)
	default:
		return fmt.Sprint(val)
	}
}
