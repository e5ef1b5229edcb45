package ui

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/yedit/internal/session"
	"github.com/oakwood-commons/yedit/pkg/document"
)

// render assembles the full screen: title, row list, bottom bar, status,
// footer.
func (m *Model) render() string {
	var b strings.Builder
	b.WriteString(m.renderTitle())
	b.WriteByte('\n')

	m.listTop = 1
	for _, line := range m.renderList() {
		b.WriteString(line)
		b.WriteByte('\n')
	}

	b.WriteString(m.renderBottomBar())
	b.WriteByte('\n')
	b.WriteString(m.renderStatus())
	b.WriteByte('\n')
	b.WriteString(m.renderFooter())
	return b.String()
}

func (m *Model) style() func(lipgloss.Style, string) string {
	if m.NoColor {
		return func(_ lipgloss.Style, s string) string { return s }
	}
	return func(st lipgloss.Style, s string) string { return st.Render(s) }
}

func (m *Model) renderTitle() string {
	sess := m.Sess
	title := " yedit"
	switch {
	case sess.InPicker():
		title += "  " + sess.Picker.Dir
	case sess.Doc.FilePath() != "":
		title += "  " + sess.Doc.FilePath()
		if sess.Dirty {
			title += " [modified]"
		}
		if sess.InRawMode() {
			title += " [raw]"
		}
	}
	title = padToWidth(title, m.WinWidth)
	st := lipgloss.NewStyle().Foreground(m.theme.TitleFG).Background(m.theme.TitleBG)
	return m.style()(st, title)
}

func (m *Model) renderList() []string {
	height := m.listHeight()
	lines := make([]string, 0, height)
	sess := m.Sess
	for offset := 0; offset < height; offset++ {
		idx := sess.Scroll + offset
		if idx >= sess.VisibleLen() {
			lines = append(lines, "")
			continue
		}
		switch {
		case sess.InPicker():
			lines = append(lines, m.renderPickerRow(idx))
		case sess.InRawMode():
			lines = append(lines, m.renderRawRow(idx))
		default:
			lines = append(lines, m.renderTreeRow(idx))
		}
	}
	return lines
}

func (m *Model) renderTreeRow(idx int) string {
	sess := m.Sess
	row := sess.Visible[idx]

	marker := "  "
	if row.IsContainer {
		if m.rowHasVisibleChildren(idx) {
			marker = "▾ "
		} else {
			marker = "▸ "
		}
	}
	indent := strings.Repeat("  ", row.Depth)

	text := indent + marker + row.DisplayKey
	if !row.IsContainer && row.Preview != "" {
		text += ": " + row.Preview
	}
	text = runewidth.Truncate(text, m.WinWidth, "…")

	if idx == sess.Selection {
		st := lipgloss.NewStyle().Foreground(m.theme.SelectedFG).Background(m.theme.SelectedBG)
		return m.style()(st, padToWidth(text, m.WinWidth))
	}
	if idx == sess.HoverRow {
		st := lipgloss.NewStyle().Background(m.theme.HoverBG)
		return m.style()(st, padToWidth(text, m.WinWidth))
	}

	// Unselected rows get per-part colors.
	keyColor := m.theme.KeyColor
	if row.IsContainer {
		keyColor = m.theme.ContainerColor
	}
	if sess.SearchQuery != "" && document.MatchesRow(row, sess.SearchQuery) {
		keyColor = m.theme.MatchColor
	}
	sty := m.style()
	line := indent + sty(lipgloss.NewStyle().Foreground(m.theme.SeparatorColor), marker) +
		sty(lipgloss.NewStyle().Foreground(keyColor), row.DisplayKey)
	if !row.IsContainer && row.Preview != "" {
		line += ": " + sty(lipgloss.NewStyle().Foreground(m.theme.ValueColor), row.Preview)
	}
	return line
}

// rowHasVisibleChildren reports whether the container row at idx is shown
// expanded, which holds exactly when the next visible row is deeper.
func (m *Model) rowHasVisibleChildren(idx int) bool {
	rows := m.Sess.Visible
	return idx+1 < len(rows) && rows[idx+1].Depth > rows[idx].Depth
}

func (m *Model) renderRawRow(idx int) string {
	sess := m.Sess
	lineno := fmt.Sprintf("%4d │ ", idx+1)
	text := runewidth.Truncate(lineno+sess.Raw.Lines[idx], m.WinWidth, "…")
	if idx == sess.Selection {
		st := lipgloss.NewStyle().Foreground(m.theme.SelectedFG).Background(m.theme.SelectedBG)
		return m.style()(st, padToWidth(text, m.WinWidth))
	}
	sty := m.style()
	return sty(lipgloss.NewStyle().Foreground(m.theme.SeparatorColor), lineno) + sess.Raw.Lines[idx]
}

func (m *Model) renderPickerRow(idx int) string {
	sess := m.Sess
	entry := sess.Picker.Entries[idx]
	text := "  " + entry.Label()
	if idx == sess.Selection {
		st := lipgloss.NewStyle().Foreground(m.theme.SelectedFG).Background(m.theme.SelectedBG)
		return m.style()(st, padToWidth(text, m.WinWidth))
	}
	color := m.theme.ValueColor
	if entry.Kind != session.PickerFile {
		color = m.theme.ContainerColor
	}
	return m.style()(lipgloss.NewStyle().Foreground(color), text)
}

func (m *Model) renderBottomBar() string {
	sess := m.Sess
	sty := m.style()
	inputStyle := lipgloss.NewStyle().Foreground(m.theme.InputFG).Background(m.theme.InputBG)

	switch sess.Mode {
	case session.ModeEditValue:
		return sty(inputStyle, " Value: ") + sess.Input.View()
	case session.ModeRenameKey:
		return sty(inputStyle, " Rename key: ") + sess.Input.View()
	case session.ModeAddKey:
		return sty(inputStyle, " New key: ") + sess.Input.View()
	case session.ModeAddValue:
		prompt := " Value: "
		if sess.PendingKey != "" {
			prompt = " Value for " + sess.PendingKey + ": "
		}
		return sty(inputStyle, prompt) + sess.Input.View()
	case session.ModeSearchInput:
		return sty(inputStyle, " /") + sess.Input.View()
	case session.ModeRawEditLine:
		return sty(inputStyle, " Line: ") + sess.Input.View()
	case session.ModeConfirmDelete:
		return m.confirmLine("Delete " + m.selectionLabel() + "? (y/n)")
	case session.ModeConfirmQuit:
		return m.confirmLine("Quit without saving? (y/n)")
	case session.ModeConfirmOpenAnother:
		return m.confirmLine("Discard unsaved changes and open another file? (y/n)")
	case session.ModeConfirmRawDeleteLine:
		return m.confirmLine("Delete this line? (y/n)")
	}
	return ""
}

func (m *Model) confirmLine(text string) string {
	st := lipgloss.NewStyle().Foreground(m.theme.StatusError)
	return m.style()(st, " "+text)
}

func (m *Model) selectionLabel() string {
	if row := m.Sess.CurrentRow(); row != nil {
		if row.Path.IsRoot() {
			return document.RootLabel
		}
		return row.Path.DotPath()
	}
	return ""
}

func (m *Model) renderStatus() string {
	sess := m.Sess
	sty := m.style()

	if sess.Toast != nil {
		color := m.theme.StatusSuccess
		if strings.Contains(sess.Toast.Message, "error") || strings.HasPrefix(sess.Toast.Message, "Failed") {
			color = m.theme.StatusError
		}
		return sty(lipgloss.NewStyle().Foreground(color), " "+sess.Toast.Message)
	}

	if sess.InPicker() {
		return sty(lipgloss.NewStyle().Foreground(m.theme.StatusColor),
			fmt.Sprintf(" %d entries", len(sess.Picker.Entries)))
	}

	if sess.InRawMode() {
		errText := sess.ParseErr
		if w := m.WinWidth - 10; w > 0 {
			errText = runewidth.Truncate(errText, w, "…")
		}
		return sty(lipgloss.NewStyle().Foreground(m.theme.StatusError), " parse: "+errText)
	}

	path, _, kind, _ := sess.StatusFields()
	if path == "" {
		path = document.RootLabel
	}
	left := " " + path + "  " + kind
	if sess.SearchQuery != "" {
		left += fmt.Sprintf("  /%s (%d)", sess.SearchQuery, len(sess.Matches))
	}
	return sty(lipgloss.NewStyle().Foreground(m.theme.StatusColor), runewidth.Truncate(left, m.WinWidth, "…"))
}

func (m *Model) renderFooter() string {
	sess := m.Sess
	var hints string
	switch {
	case sess.InPicker():
		hints = " j/k move · enter open · q quit"
	case sess.Mode.IsTextEntry():
		hints = " enter commit · esc cancel"
	case sess.Mode.IsConfirm():
		hints = " y confirm · n/esc cancel"
	case sess.InRawMode():
		hints = " e edit line · shift+del delete line · ctrl+s save+reparse · q quit"
	default:
		hints = " j/k move · h/l fold · e edit · r rename · a add · d delete · y path · / search · ctrl+s save · q quit"
	}
	st := lipgloss.NewStyle().Foreground(m.theme.FooterFG)
	return m.style()(st, runewidth.Truncate(hints, m.WinWidth, "…"))
}

func padToWidth(s string, width int) string {
	if w := runewidth.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
