package render

// Colour scheme values, as written to the CSS color-scheme property.
const (
	ThemeAuto  = "light dark"
	ThemeLight = "light"
	ThemeDark  = "dark"
)

// ThemeOption is one entry of the theme select.
type ThemeOption struct {
	Value    string
	Label    string
	Selected bool
}

var themes = []ThemeOption{
	{Value: ThemeAuto, Label: "Automatic"},
	{Value: ThemeLight, Label: "Light"},
	{Value: ThemeDark, Label: "Dark"},
}

// ValidTheme reports whether v is a known colour scheme.
func ValidTheme(v string) bool {
	for _, t := range themes {
		if t.Value == v {
			return true
		}
	}
	return false
}

// ThemeOptions returns the select options with selected marked. Unknown
// values select Automatic.
func ThemeOptions(selected string) []ThemeOption {
	if !ValidTheme(selected) {
		selected = ThemeAuto
	}
	out := make([]ThemeOption, len(themes))
	for i, t := range themes {
		t.Selected = t.Value == selected
		out[i] = t
	}
	return out
}
