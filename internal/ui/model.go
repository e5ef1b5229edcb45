// Package ui renders the editor session with Bubble Tea: the tree view,
// raw fallback view, file picker, input and status bars, and mouse
// handling over the visible rows.
package ui

import (
	"time"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"
	"github.com/go-logr/logr"

	"github.com/oakwood-commons/yedit/internal/session"
)

// Lines of chrome around the row list: title, input/confirm bar, status,
// footer. The list height is the window height minus these.
const chromeLines = 4

// tickMsg drives toast expiry and the external-change poll.
type tickMsg time.Time

func tickCmd() tea.Cmd {
	return tea.Tick(250*time.Millisecond, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Model is the Bubble Tea model wrapping a session. All state lives in the
// session; the model only owns terminal geometry and the screen-row hit
// map used for mouse events.
type Model struct {
	Sess    *session.Session
	NoColor bool

	WinWidth  int
	WinHeight int

	// First screen row of the row list, for translating mouse coordinates
	// to row indices. Updated on every render.
	listTop int

	theme Theme
	log   logr.Logger
}

// NewModel wraps sess for the terminal program.
func NewModel(sess *session.Session, log logr.Logger, noColor bool) *Model {
	return &Model{
		Sess:      sess,
		NoColor:   noColor,
		WinWidth:  80,
		WinHeight: 24,
		listTop:   1,
		theme:     DefaultTheme(),
		log:       log,
	}
}

// listHeight is the number of rows the list area can show.
func (m *Model) listHeight() int {
	h := m.WinHeight - chromeLines
	if h < 1 {
		h = 1
	}
	return h
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tickCmd())
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.WinWidth = msg.Width
		m.WinHeight = msg.Height
		m.Sess.EnsureVisible(m.listHeight())
		return m, nil

	case tickMsg:
		m.Sess.UpdateToast()
		m.Sess.CheckReload()
		m.Sess.EnsureVisible(m.listHeight())
		return m, tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseWheelMsg:
		switch msg.Button {
		case tea.MouseWheelUp:
			m.Sess.ScrollBy(-3, m.listHeight())
		case tea.MouseWheelDown:
			m.Sess.ScrollBy(3, m.listHeight())
		}
		return m, nil

	case tea.MouseClickMsg:
		return m.handleClick(msg)

	case tea.MouseMotionMsg:
		m.Sess.HoverRow = m.rowAt(msg.Y)
		return m, nil
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	height := m.listHeight()

	if m.Sess.InPicker() {
		if m.Sess.HandlePickerKey(key) {
			return m, tea.Quit
		}
		return m, nil
	}

	if m.Sess.RightClickGuardActive(key) {
		return m, nil
	}

	// Text-entry modes forward everything but esc/enter to the input
	// widget.
	if m.Sess.Mode.IsTextEntry() && key != "esc" && key != "enter" {
		var cmd tea.Cmd
		m.Sess.Input, cmd = m.Sess.Input.Update(msg)
		return m, cmd
	}

	action := m.Sess.Keys.Handle(m.Sess.Mode, key)
	if m.Sess.Apply(action, height) {
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) handleClick(msg tea.MouseClickMsg) (tea.Model, tea.Cmd) {
	switch msg.Button {
	case tea.MouseRight:
		m.Sess.ArmRightClickGuard()
		return m, nil
	case tea.MouseLeft:
	default:
		return m, nil
	}

	idx := m.rowAt(msg.Y)
	if idx < 0 {
		return m, nil
	}
	m.Sess.Selection = idx
	switch {
	case m.Sess.InPicker():
		m.Sess.PickerEnter()
	case !m.Sess.InRawMode():
		m.Sess.ToggleExpandAt(idx)
	}
	m.Sess.EnsureVisible(m.listHeight())
	return m, nil
}

// rowAt translates a screen Y coordinate to an index into the active row
// list, or -1 when the coordinate is outside it.
func (m *Model) rowAt(y int) int {
	offset := y - m.listTop
	if offset < 0 || offset >= m.listHeight() {
		return -1
	}
	idx := m.Sess.Scroll + offset
	if idx >= m.Sess.VisibleLen() {
		return -1
	}
	return idx
}

func (m *Model) View() tea.View {
	v := tea.NewView(m.render())
	v.AltScreen = true
	v.MouseMode = tea.MouseModeCellMotion
	return v
}
