package theme

import "strings"

type Theme string

const (
	Light Theme = "light"
	Dark  Theme = "dark"

	Default = Light
)

// Parse returns the theme named by v, or Default when v is not a known theme.
func Parse(v string) (Theme, bool) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(v))); t {
	case Light, Dark:
		return t, true
	}
	return Default, false
}

func (t Theme) Toggle() Theme {
	if t == Dark {
		return Light
	}
	return Dark
}

func (t Theme) IsDark() bool {
	return t == Dark
}
