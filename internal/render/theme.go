package render

import (
	"html/template"
	"regexp"
)

// Fallback colours used when the host supplies no theme.
const (
	DefaultTextColor                = "inherit"
	DefaultBackgroundColor          = "transparent"
	DefaultSecondaryBackgroundColor = "#ddd"
	DefaultPrimaryColor             = "#ff4b4b"
)

// Theme is the host's cosmetic descriptor. Empty fields fall back to the
// defaults above.
type Theme struct {
	TextColor                string `yaml:"text_color,omitempty" json:"textColor,omitempty"`
	BackgroundColor          string `yaml:"background_color,omitempty" json:"backgroundColor,omitempty"`
	SecondaryBackgroundColor string `yaml:"secondary_background_color,omitempty" json:"secondaryBackgroundColor,omitempty"`
	PrimaryColor             string `yaml:"primary_color,omitempty" json:"primaryColor,omitempty"`
}

// WithDefaults returns t with every empty field replaced by its fallback.
func (t Theme) WithDefaults() Theme {
	if t.TextColor == "" {
		t.TextColor = DefaultTextColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = DefaultBackgroundColor
	}
	if t.SecondaryBackgroundColor == "" {
		t.SecondaryBackgroundColor = DefaultSecondaryBackgroundColor
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = DefaultPrimaryColor
	}
	return t
}

// Merge returns t with empty fields taken from fallback.
func (t Theme) Merge(fallback Theme) Theme {
	if t.TextColor == "" {
		t.TextColor = fallback.TextColor
	}
	if t.BackgroundColor == "" {
		t.BackgroundColor = fallback.BackgroundColor
	}
	if t.SecondaryBackgroundColor == "" {
		t.SecondaryBackgroundColor = fallback.SecondaryBackgroundColor
	}
	if t.PrimaryColor == "" {
		t.PrimaryColor = fallback.PrimaryColor
	}
	return t
}

// cssColor matches the colour values the page stylesheet accepts: hex,
// the functional rgb/rgba/hsl/hsla forms and bare keywords such as named
// colours, inherit and transparent.
var cssColor = regexp.MustCompile(`^(?:#(?:[0-9a-fA-F]{3,4}|[0-9a-fA-F]{6}|[0-9a-fA-F]{8})|(?:rgba?|hsla?)\([0-9a-zA-Z.%\s,/+-]*\)|[a-zA-Z]+)$`)

// safeColor returns value as trusted CSS when it is a plain colour and
// fallback otherwise.
func safeColor(value, fallback string) template.CSS {
	if cssColor.MatchString(value) {
		return template.CSS(value)
	}
	return template.CSS(fallback)
}

// colors is the theme as stylesheet values.
type colors struct {
	Text                template.CSS
	Background          template.CSS
	SecondaryBackground template.CSS
	Primary             template.CSS
}

// css validates every colour of t, replacing rejected values by the
// defaults.
func (t Theme) css() colors {
	t = t.WithDefaults()
	return colors{
		Text:                safeColor(t.TextColor, DefaultTextColor),
		Background:          safeColor(t.BackgroundColor, DefaultBackgroundColor),
		SecondaryBackground: safeColor(t.SecondaryBackgroundColor, DefaultSecondaryBackgroundColor),
		Primary:             safeColor(t.PrimaryColor, DefaultPrimaryColor),
	}
}
