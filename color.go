package docfmt

import (
	"fmt"

	"github.com/fatih/color"
)

// Theme selects a color palette.
type Theme string

const (
	LightTheme Theme = "light"
	DarkTheme  Theme = "dark"
)

// ParseTheme maps a theme name to a Theme.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(s); t {
	case LightTheme, DarkTheme:
		return t, nil
	default:
		return "", fmt.Errorf("unknown theme %q", s)
	}
}

func (t Theme) orDefault() Theme {
	if t == DarkTheme {
		return DarkTheme
	}
	return LightTheme
}

type swatch struct {
	attr color.Attribute
	css  string
}

var tokenOrder = []Token{
	KeyToken, StringToken, NumberToken, BooleanToken, NullToken,
	TagToken, AttrToken, AttrValueToken, CommentToken, DeclarationToken,
}

var palettes = map[Theme]map[Token]swatch{
	LightTheme: {
		KeyToken:         {color.FgBlue, "#0451a5"},
		StringToken:      {color.FgRed, "#a31515"},
		NumberToken:      {color.FgGreen, "#098658"},
		BooleanToken:     {color.FgHiBlue, "#0000ff"},
		NullToken:        {color.FgHiBlue, "#0000ff"},
		TagToken:         {color.FgRed, "#800000"},
		AttrToken:        {color.FgHiRed, "#e50000"},
		AttrValueToken:   {color.FgBlue, "#0000ff"},
		CommentToken:     {color.FgGreen, "#008000"},
		DeclarationToken: {color.FgMagenta, "#800080"},
	},
	DarkTheme: {
		KeyToken:         {color.FgHiCyan, "#9cdcfe"},
		StringToken:      {color.FgYellow, "#ce9178"},
		NumberToken:      {color.FgHiGreen, "#b5cea8"},
		BooleanToken:     {color.FgHiBlue, "#569cd6"},
		NullToken:        {color.FgHiBlue, "#569cd6"},
		TagToken:         {color.FgHiBlue, "#569cd6"},
		AttrToken:        {color.FgHiCyan, "#9cdcfe"},
		AttrValueToken:   {color.FgYellow, "#ce9178"},
		CommentToken:     {color.FgHiBlack, "#6a9955"},
		DeclarationToken: {color.FgMagenta, "#c586c0"},
	},
}

// ColorMarkup wraps tokens in ANSI escape sequences. Colors are always
// emitted; callers decide whether the destination is a terminal.
type ColorMarkup struct {
	colors map[Token]*color.Color
}

// NewColorMarkup returns a ColorMarkup for theme. Unknown themes fall back
// to light.
func NewColorMarkup(theme Theme) *ColorMarkup {
	cm := &ColorMarkup{colors: make(map[Token]*color.Color, len(tokenOrder))}
	for t, s := range palettes[theme.orDefault()] {
		c := color.New(s.attr)
		c.EnableColor()
		cm.colors[t] = c
	}
	return cm
}

func (*ColorMarkup) Escape(text string) string { return text }

func (cm *ColorMarkup) Wrap(t Token, text string) string {
	c, ok := cm.colors[t]
	if !ok {
		return text
	}
	return c.Sprint(text)
}
