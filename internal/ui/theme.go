package ui

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

// Theme defines the colors used across the editor views.
type Theme struct {
	KeyColor       color.Color // tree keys
	ValueColor     color.Color // scalar previews
	ContainerColor color.Color // map/sequence labels
	SelectedFG     color.Color // selected row foreground
	SelectedBG     color.Color // selected row background
	HoverBG        color.Color // hovered row background
	MatchColor     color.Color // rows matching the active search
	SeparatorColor color.Color // markers and indent guides
	InputFG        color.Color // input bar text
	InputBG        color.Color // input bar background
	StatusColor    color.Color // status bar text
	StatusError    color.Color // error notices
	StatusSuccess  color.Color // success notices
	FooterFG       color.Color // key hints
	TitleFG        color.Color // title bar text
	TitleBG        color.Color // title bar background
}

// DefaultTheme returns the built-in dark palette.
func DefaultTheme() Theme {
	return Theme{
		KeyColor:       lipgloss.Color("81"),  // cyan keys for contrast
		ValueColor:     lipgloss.Color("246"), // muted gray values
		ContainerColor: lipgloss.Color("117"), // light blue containers
		SelectedFG:     lipgloss.Color("250"),
		SelectedBG:     lipgloss.Color("24"), // deep teal selection
		HoverBG:        lipgloss.Color("236"),
		MatchColor:     lipgloss.Color("221"), // yellow search hits
		SeparatorColor: lipgloss.Color("238"),
		InputFG:        lipgloss.Color("252"),
		InputBG:        lipgloss.Color("235"),
		StatusColor:    lipgloss.Color("245"),
		StatusError:    lipgloss.Color("203"),
		StatusSuccess:  lipgloss.Color("114"),
		FooterFG:       lipgloss.Color("242"),
		TitleFG:        lipgloss.Color("81"),
		TitleBG:        lipgloss.Color("236"),
	}
}
