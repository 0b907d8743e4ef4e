package frame

import "strings"

// Style identifies one of the fixed frame designs.
type Style string

const (
	StyleNone            Style = "none"
	StyleGradientPurple  Style = "gradient_purple"
	StyleGradientRainbow Style = "gradient_rainbow"
	StyleNeonGlow        Style = "neon_glow"
	StyleElegantBorder   Style = "elegant_border"
	StyleModernShadow    Style = "modern_shadow"
)

var styles = []Style{
	StyleNone,
	StyleGradientPurple,
	StyleGradientRainbow,
	StyleNeonGlow,
	StyleElegantBorder,
	StyleModernShadow,
}

var labels = map[Style]string{
	StyleNone:            "No Frame",
	StyleGradientPurple:  "Purple Gradient",
	StyleGradientRainbow: "Rainbow Gradient",
	StyleNeonGlow:        "Neon Glow",
	StyleElegantBorder:   "Elegant Border",
	StyleModernShadow:    "Modern Shadow",
}

// Styles returns every supported style, StyleNone first.
func Styles() []Style {
	out := make([]Style, len(styles))
	copy(out, styles)
	return out
}

// ParseStyle maps an identifier to a Style. Blank input is StyleNone.
// Unknown identifiers return StyleNone and false.
func ParseStyle(s string) (Style, bool) {
	v := Style(strings.ToLower(strings.TrimSpace(s)))
	if v == "" {
		return StyleNone, true
	}
	if v.Known() {
		return v, true
	}
	return StyleNone, false
}

// Known reports whether s is one of the supported styles.
func (s Style) Known() bool {
	_, ok := labels[s]
	return ok
}

// Label is the human readable name shown in the UI.
func (s Style) Label() string {
	if l, ok := labels[s]; ok {
		return l
	}
	return labels[StyleNone]
}

func (s Style) String() string { return string(s) }
