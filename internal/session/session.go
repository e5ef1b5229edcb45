// Package session owns the single editor session: the document, the modal
// input state, selection and scroll over the active row list, expand-state,
// search, the raw fallback buffer, and throttled external-change detection.
// It is UI-free: the terminal layer feeds it key strings and row indices
// and renders whatever it holds.
package session

import (
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"charm.land/bubbles/v2/textinput"
	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"

	"github.com/oakwood-commons/yedit/internal/clipboard"
	"github.com/oakwood-commons/yedit/pkg/document"
)

const (
	toastDuration  = 2 * time.Second
	reloadInterval = 1500 * time.Millisecond
	// Terminals commonly paste on right-click; ignore 'a'/'r' briefly after
	// one so a paste does not open an add/rename prompt.
	rightClickGuard = 200 * time.Millisecond
)

// Toast is a transient, auto-expiring notice.
type Toast struct {
	Message   string
	ExpiresAt time.Time
}

// Session is the one owned aggregate of editor state. All event handling
// is synchronous and single-threaded: one key or mouse event is fully
// processed (keymap, mutation, rebuild, selection re-resolution) before
// the next is considered, so no locking exists anywhere in here.
type Session struct {
	Doc  *document.Document
	Mode Mode

	// Selection and Scroll index whichever row list is active: tree rows,
	// raw fallback lines, or picker entries. Row indices are invalidated
	// by every rebuild; the selected path is what persists.
	Selection int
	Scroll    int

	Expanded map[string]struct{}
	Tree     document.TreeNode
	Visible  []document.VisibleRow

	Dirty bool
	Toast *Toast

	// Input is the shared text buffer for all text-entry modes. The widget
	// owns cursor movement and multi-byte safety; the session owns what a
	// commit of its contents means.
	Input      textinput.Model
	PendingKey string

	SearchQuery string
	Matches     []int

	Keys   *Keymap
	Picker *PickerState

	// Raw is non-nil exactly while the document text does not parse.
	Raw      *RawBuffer
	ParseErr string

	HoverRow             int
	RightClickGuardUntil time.Time

	LastModified  time.Time
	LastFileCheck time.Time

	log  logr.Logger
	clip clipboard.Copier
}

func newSession(log logr.Logger, clip clipboard.Copier) *Session {
	ti := textinput.New()
	ti.Prompt = ""
	ti.CharLimit = 500
	ti.SetWidth(80)
	return &Session{
		Doc:      document.Empty(),
		Expanded: map[string]struct{}{"": {}},
		Input:    ti,
		Keys:     NewKeymap(),
		HoverRow: -1,
		log:      log,
		clip:     clip,
	}
}

// New opens path directly. Only a read failure is an error; a document
// that does not parse opens in raw fallback mode.
func New(path string, log logr.Logger, clip clipboard.Copier) (*Session, error) {
	s := newSession(log, clip)
	if err := s.OpenFile(path); err != nil {
		return nil, err
	}
	return s, nil
}

// NewPicker starts with the file picker over the current directory and no
// document loaded.
func NewPicker(log logr.Logger, clip clipboard.Copier) (*Session, error) {
	s := newSession(log, clip)
	dir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	entries, err := ListPickerEntries(dir)
	if err != nil {
		return nil, err
	}
	s.Picker = &PickerState{Dir: dir, Entries: entries}
	s.Tree = s.Doc.BuildTree()
	s.Visible = document.Flatten(s.Tree, s.Expanded, "")
	return s, nil
}

// OpenFile loads path and resets the whole session to it.
func (s *Session) OpenFile(path string) error {
	res, err := document.LoadFile(path)
	if err != nil {
		return err
	}
	s.Doc = res.Doc
	s.ParseErr = res.ParseErr
	s.Raw = nil
	if res.ParseErr != "" {
		s.Raw = NewRawBuffer(res.Raw)
	}
	s.Mode = ModeNormal
	s.Selection = 0
	s.Scroll = 0
	s.Expanded = map[string]struct{}{"": {}}
	s.Dirty = false
	s.Toast = nil
	s.PendingKey = ""
	s.SearchQuery = ""
	s.Matches = nil
	s.Picker = nil
	s.HoverRow = -1
	s.Keys.Reset()
	s.Input.SetValue("")
	s.Tree = s.Doc.BuildTree()
	s.Visible = document.Flatten(s.Tree, s.Expanded, "")
	s.LastModified = fileMtime(path)
	s.LastFileCheck = time.Time{}
	s.log.V(1).Info("opened file", "path", path, "parse_error", s.ParseErr != "")
	return nil
}

func fileMtime(path string) time.Time {
	info, err := os.Stat(path)
	if err != nil {
		return time.Time{}
	}
	return info.ModTime()
}

// InPicker reports whether the file picker is active.
func (s *Session) InPicker() bool { return s.Picker != nil }

// InRawMode reports whether raw fallback editing is active.
func (s *Session) InRawMode() bool { return s.Raw != nil }

// VisibleLen is the length of whichever row list is active.
func (s *Session) VisibleLen() int {
	switch {
	case s.Picker != nil:
		return len(s.Picker.Entries)
	case s.Raw != nil:
		return s.Raw.Len()
	default:
		return len(s.Visible)
	}
}

// CurrentRow is the selected tree row, nil when out of range or not in
// tree mode.
func (s *Session) CurrentRow() *document.VisibleRow {
	if s.Raw != nil || s.Picker != nil {
		return nil
	}
	if s.Selection < 0 || s.Selection >= len(s.Visible) {
		return nil
	}
	return &s.Visible[s.Selection]
}

// SetToast replaces the current notice; it expires after two seconds.
func (s *Session) SetToast(message string) {
	s.Toast = &Toast{Message: message, ExpiresAt: time.Now().Add(toastDuration)}
}

// UpdateToast drops an expired notice. Called once per tick.
func (s *Session) UpdateToast() {
	if s.Toast != nil && !time.Now().Before(s.Toast.ExpiresAt) {
		s.Toast = nil
	}
}

// RebuildVisible derives the shadow tree and visible rows from the current
// document, then re-resolves the selection by path. The previously selected
// row's path, not its index, is what survives: indices are meaningless
// across rebuilds.
func (s *Session) RebuildVisible() {
	var selected document.Path
	hadRow := false
	if row := s.CurrentRow(); row != nil {
		selected = row.Path
		hadRow = true
	}
	s.Tree = s.Doc.BuildTree()
	s.Visible = document.Flatten(s.Tree, s.Expanded, s.SearchQuery)
	s.recomputeMatches()
	if hadRow {
		if idx := document.RowIndexByPath(s.Visible, selected); idx >= 0 {
			s.Selection = idx
		}
	}
	if s.Selection >= len(s.Visible) {
		s.Selection = max(0, len(s.Visible)-1)
	}
}

func (s *Session) recomputeMatches() {
	s.Matches = s.Matches[:0]
	if s.SearchQuery == "" {
		return
	}
	for i, row := range s.Visible {
		if document.MatchesRow(row, s.SearchQuery) {
			s.Matches = append(s.Matches, i)
		}
	}
}

// RestoreSelection points the selection at path if it is present in the
// current row list.
func (s *Session) RestoreSelection(path document.Path) {
	if idx := document.RowIndexByPath(s.Visible, path); idx >= 0 {
		s.Selection = idx
	}
}

// EnsureVisible scrolls just enough to keep the selection inside the
// viewport.
func (s *Session) EnsureVisible(height int) {
	if s.VisibleLen() == 0 || height <= 0 {
		return
	}
	if s.Selection < s.Scroll {
		s.Scroll = s.Selection
	} else if s.Selection >= s.Scroll+height {
		s.Scroll = s.Selection - (height - 1)
	}
}

// ClampSelection pulls the selection into the viewport after a scroll that
// moved the window out from under it.
func (s *Session) ClampSelection(height int) {
	length := s.VisibleLen()
	if s.Selection < s.Scroll {
		s.Selection = s.Scroll
	} else if height > 0 && s.Selection >= s.Scroll+height {
		s.Selection = s.Scroll + height - 1
	}
	if s.Selection >= length {
		s.Selection = max(0, length-1)
	}
}

// MoveSelection moves by delta rows, clamped to the list.
func (s *Session) MoveSelection(delta, height int) {
	length := s.VisibleLen()
	if length == 0 {
		return
	}
	next := s.Selection + delta
	if next < 0 {
		next = 0
	}
	if next > length-1 {
		next = length - 1
	}
	s.Selection = next
	s.EnsureVisible(height)
}

// ScrollBy shifts the viewport and clamps the selection into it, for mouse
// wheel events.
func (s *Session) ScrollBy(delta, height int) {
	s.Scroll += delta
	if s.Scroll < 0 {
		s.Scroll = 0
	}
	maxScroll := max(0, s.VisibleLen()-height)
	if s.Scroll > maxScroll {
		s.Scroll = maxScroll
	}
	s.ClampSelection(height)
}

// Apply interprets one abstract action. Returns true when the program
// should exit. Mutation errors never escape: they become toasts here, at
// the dispatch boundary.
func (s *Session) Apply(action Action, height int) bool {
	raw := s.Raw != nil
	switch action {
	case ActionQuit:
		if s.Dirty {
			s.enterMode(ModeConfirmQuit)
			return false
		}
		return true
	case ActionSave:
		if raw {
			s.SaveRawAndReparse()
		} else {
			s.SaveDocument()
		}
	case ActionMoveUp:
		s.MoveSelection(-1, height)
	case ActionMoveDown:
		s.MoveSelection(1, height)
	case ActionJumpTop:
		s.Selection = 0
	case ActionJumpBottom:
		if n := s.VisibleLen(); n > 0 {
			s.Selection = n - 1
		}
	case ActionPageUp:
		s.MoveSelection(-height/2, height)
	case ActionPageDown:
		s.MoveSelection(height/2, height)
	case ActionJumpLeft:
		s.Scroll = 0
	case ActionCollapse:
		s.collapseSelected()
	case ActionExpand:
		s.expandSelected()
	case ActionToggleExpand:
		s.toggleExpand()
	case ActionEditValue:
		if raw {
			s.startRawEditLine()
		} else {
			s.startEditValue()
		}
	case ActionRenameKey:
		if raw {
			s.SetToast("Key rename needs tree view; fix parse errors and save first")
		} else {
			s.startRenameKey()
		}
	case ActionAddChild:
		if raw {
			s.SetToast("Add child needs tree view; fix parse errors and save first")
		} else {
			s.startAddChild()
		}
	case ActionAddMapToSequence:
		if raw {
			s.SetToast("Add object needs tree view; fix parse errors and save first")
		} else {
			s.startAddMapToSequence()
		}
	case ActionDeleteNode:
		if raw {
			s.enterMode(ModeConfirmRawDeleteLine)
		} else if s.CurrentRow() != nil {
			s.enterMode(ModeConfirmDelete)
		}
	case ActionDeleteLine:
		if raw {
			s.enterMode(ModeConfirmRawDeleteLine)
		}
	case ActionCopyPath:
		s.copyCurrentPath()
	case ActionConfirmYes:
		if s.confirmYes() {
			return true
		}
	case ActionConfirmNo:
		s.Mode = ModeNormal
	case ActionOpenAnother:
		if s.Dirty {
			s.enterMode(ModeConfirmOpenAnother)
		} else if err := s.SwitchToPicker(); err != nil {
			s.SetToast(err.Error())
		}
	case ActionStartSearch:
		s.enterMode(ModeSearchInput)
		s.startInput("")
	case ActionSearchNext:
		if idx, ok := NextMatch(s.Matches, s.Selection); ok {
			s.Selection = idx
		}
	case ActionSearchPrev:
		if idx, ok := PrevMatch(s.Matches, s.Selection); ok {
			s.Selection = idx
		}
	case ActionCancel:
		s.CancelMode()
	case ActionCommit:
		s.CommitInput()
	}
	s.EnsureVisible(height)
	return false
}

func (s *Session) enterMode(m Mode) {
	s.Mode = m
	s.Keys.Reset()
}

func (s *Session) startInput(value string) {
	s.Input.SetValue(value)
	s.Input.SetCursor(len(value))
	s.Input.Focus()
}

func (s *Session) expandSelected() {
	if row := s.CurrentRow(); row != nil && row.IsContainer {
		s.Expanded[row.Path.DotPath()] = struct{}{}
		s.RebuildVisible()
	}
}

func (s *Session) collapseSelected() {
	if row := s.CurrentRow(); row != nil && row.IsContainer {
		delete(s.Expanded, row.Path.DotPath())
		s.RebuildVisible()
	}
}

func (s *Session) toggleExpand() {
	row := s.CurrentRow()
	if row == nil {
		return
	}
	if !row.IsContainer {
		s.startEditValue()
		return
	}
	s.ToggleExpandAt(s.Selection)
}

// ToggleExpandAt flips the expand-state of the container row at idx; used
// by both Enter and mouse clicks.
func (s *Session) ToggleExpandAt(idx int) {
	if idx < 0 || idx >= len(s.Visible) {
		return
	}
	row := s.Visible[idx]
	if !row.IsContainer {
		return
	}
	dot := row.Path.DotPath()
	if _, ok := s.Expanded[dot]; ok {
		delete(s.Expanded, dot)
	} else {
		s.Expanded[dot] = struct{}{}
	}
	s.RebuildVisible()
}

func (s *Session) startEditValue() {
	row := s.CurrentRow()
	if row == nil || row.IsContainer {
		return
	}
	s.enterMode(ModeEditValue)
	s.startInput(row.Preview)
}

func (s *Session) startRenameKey() {
	row := s.CurrentRow()
	if row == nil {
		return
	}
	switch {
	case row.Path.IsRoot():
		s.SetToast("Root has no key to rename")
	case !row.Path.LastIsKey():
		s.SetToast("Cannot rename a sequence item")
	default:
		s.enterMode(ModeRenameKey)
		s.startInput(row.DisplayKey)
	}
}

func (s *Session) startAddChild() {
	row := s.CurrentRow()
	if row == nil {
		return
	}
	switch {
	case row.Kind == document.KindMap:
		s.enterMode(ModeAddKey)
		s.startInput("")
	case row.Kind == document.KindSequence:
		s.enterMode(ModeAddValue)
		s.startInput("")
	case row.Path.LastIsKey():
		// Scalar or null under a mapping key: turn it into an empty map so
		// it can take its first child.
		if err := s.Doc.ConvertToEmptyMap(row.Path); err != nil {
			s.SetToast(err.Error())
			return
		}
		s.Dirty = true
		s.RebuildVisible()
		s.enterMode(ModeAddKey)
		s.startInput("")
	default:
		s.SetToast("Cannot add a child to a scalar")
	}
}

func (s *Session) startAddMapToSequence() {
	row := s.CurrentRow()
	if row == nil {
		return
	}
	if row.Kind != document.KindSequence {
		s.SetToast("Only on a sequence; use 'a' to add a value")
		return
	}
	newPath, err := s.Doc.AddSequenceEmptyMap(row.Path)
	if err != nil {
		s.SetToast(err.Error())
		return
	}
	s.Dirty = true
	s.Expanded[row.Path.DotPath()] = struct{}{}
	s.RebuildVisible()
	s.RestoreSelection(newPath)
	s.enterMode(ModeAddKey)
	s.startInput("")
}

func (s *Session) copyCurrentPath() {
	if s.Raw != nil || s.Picker != nil {
		return
	}
	row := s.CurrentRow()
	if row == nil {
		return
	}
	dot := row.Path.DotPath()
	if err := s.clip.Copy(dot); err != nil {
		s.log.V(1).Info("clipboard copy failed", "error", err.Error())
		s.SetToast("Failed to copy path")
		return
	}
	s.SetToast("Copied: " + dot)
}

// confirmYes resolves the active confirmation. Returns true to quit.
func (s *Session) confirmYes() bool {
	switch s.Mode {
	case ModeConfirmDelete:
		if row := s.CurrentRow(); row != nil {
			if err := s.Doc.DeleteNode(row.Path); err != nil {
				s.SetToast(err.Error())
			} else {
				s.Dirty = true
				s.RebuildVisible()
			}
		}
		s.Mode = ModeNormal
	case ModeConfirmQuit:
		return true
	case ModeConfirmOpenAnother:
		if err := s.SwitchToPicker(); err != nil {
			s.SetToast(err.Error())
		}
		s.Mode = ModeNormal
	case ModeConfirmRawDeleteLine:
		s.RawDeleteLine(s.Selection)
		s.Mode = ModeNormal
	}
	return false
}

// CancelMode leaves any transient mode. Canceling search also clears the
// query and restores the unfiltered row list.
func (s *Session) CancelMode() {
	if s.Mode == ModeSearchInput {
		s.SearchQuery = ""
		s.Matches = nil
		s.RebuildVisible()
	}
	s.Mode = ModeNormal
	s.Input.SetValue("")
	s.Input.Blur()
	s.PendingKey = ""
	s.Keys.Reset()
}

// CommitInput applies the input buffer according to the active mode.
func (s *Session) CommitInput() {
	text := s.Input.Value()
	switch s.Mode {
	case ModeEditValue:
		if row := s.CurrentRow(); row != nil {
			if err := s.Doc.EditValue(row.Path, document.ParseScalar(text)); err != nil {
				s.SetToast(err.Error())
			} else {
				s.Dirty = true
			}
		}
		s.Mode = ModeNormal
		s.Input.Blur()
		s.RebuildVisible()
	case ModeRenameKey:
		row := s.CurrentRow()
		if row == nil {
			s.Mode = ModeNormal
			s.Input.Blur()
			return
		}
		key := strings.TrimSpace(text)
		if key == "" {
			s.SetToast("Key cannot be empty")
			return
		}
		if err := s.Doc.RenameKey(row.Path, key); err != nil {
			s.SetToast(err.Error())
			return
		}
		s.Dirty = true
		s.Mode = ModeNormal
		s.Input.Blur()
		s.RebuildVisible()
	case ModeAddKey:
		key := strings.TrimSpace(text)
		if key == "" {
			s.SetToast("Key cannot be empty")
			return
		}
		// Two-step flow: the typed key rides along as the AddValue payload.
		s.PendingKey = key
		s.enterMode(ModeAddValue)
		s.startInput("")
	case ModeAddValue:
		s.commitAddValue(text)
	case ModeSearchInput:
		s.commitSearch(text)
	case ModeRawEditLine:
		if s.Raw != nil {
			s.Raw.ReplaceLine(s.Selection, text)
			s.Dirty = true
		}
		s.Mode = ModeNormal
		s.Input.Blur()
	}
}

func (s *Session) commitAddValue(text string) {
	row := s.CurrentRow()
	if row == nil {
		s.Mode = ModeNormal
		s.Input.Blur()
		return
	}
	value := document.ParseScalar(text)
	switch row.Kind {
	case document.KindMap:
		key := s.PendingKey
		s.PendingKey = ""
		if key == "" {
			s.Mode = ModeNormal
			s.Input.Blur()
			return
		}
		if err := s.Doc.AddMappingChild(row.Path, key, value); err != nil {
			s.SetToast(err.Error())
			return
		}
	case document.KindSequence:
		if err := s.Doc.AddSequenceValue(row.Path, value); err != nil {
			s.SetToast(err.Error())
			return
		}
	default:
		s.Mode = ModeNormal
		s.Input.Blur()
		return
	}
	s.Dirty = true
	s.Mode = ModeNormal
	s.Input.Blur()
	s.RebuildVisible()
}

func (s *Session) commitSearch(text string) {
	query := strings.TrimSpace(text)
	s.SearchQuery = query
	s.Mode = ModeNormal
	s.Input.Blur()
	s.RebuildVisible()
	if query == "" {
		return
	}
	if len(s.Matches) == 0 {
		s.SetToast("No matches found")
		return
	}
	s.Selection = s.Matches[0]
}

// SaveDocument serializes and writes the tree. An I/O failure leaves the
// session dirty; the user retries explicitly.
func (s *Session) SaveDocument() {
	if err := s.Doc.Save(); err != nil {
		s.log.Error(err, "save failed", "path", s.Doc.FilePath())
		s.SetToast(err.Error())
		return
	}
	s.Dirty = false
	s.LastModified = fileMtime(s.Doc.FilePath())
	s.SetToast("Saved")
}

// RawDeleteLine removes the line at i from the raw buffer, keeping the
// selection in range.
func (s *Session) RawDeleteLine(i int) {
	if s.Raw == nil || !s.Raw.DeleteLine(i) {
		return
	}
	s.Dirty = true
	if n := s.Raw.Len(); s.Selection >= n {
		s.Selection = max(0, n-1)
	}
}

func (s *Session) startRawEditLine() {
	if s.Raw == nil || s.Selection >= s.Raw.Len() {
		return
	}
	s.enterMode(ModeRawEditLine)
	s.startInput(s.Raw.Lines[s.Selection])
}

// SaveRawAndReparse writes the raw buffer to the backing file and re-runs
// the parse boundary. Success switches back to tree mode with expand-state
// reset to root-only; failure stays in raw mode with the fresh error.
func (s *Session) SaveRawAndReparse() {
	if s.Raw == nil {
		return
	}
	path := s.Doc.FilePath()
	if err := os.WriteFile(path, []byte(s.Raw.Content()+"\n"), 0o644); err != nil {
		s.SetToast(err.Error())
		return
	}
	res, err := document.LoadFile(path)
	if err != nil {
		s.SetToast(err.Error())
		return
	}
	s.Doc = res.Doc
	s.ParseErr = res.ParseErr
	s.Dirty = false
	s.LastModified = fileMtime(path)
	if res.ParseErr != "" {
		s.Raw = NewRawBuffer(res.Raw)
		s.SetToast("Saved; parse still has errors")
		return
	}
	s.Raw = nil
	s.Expanded = map[string]struct{}{"": {}}
	s.Tree = s.Doc.BuildTree()
	s.Visible = document.Flatten(s.Tree, s.Expanded, "")
	s.Selection = 0
	s.Scroll = 0
	s.SetToast("Saved and parsed successfully")
}

// CheckReload polls the backing file's mtime and reloads when it changed
// externally. Throttled to one stat per interval and skipped entirely
// while there are unsaved local edits, so a reload can never clobber work
// in progress.
func (s *Session) CheckReload() {
	if s.Picker != nil || s.Dirty || s.Doc.FilePath() == "" {
		return
	}
	now := time.Now()
	if !s.LastFileCheck.IsZero() && now.Sub(s.LastFileCheck) < reloadInterval {
		return
	}
	s.LastFileCheck = now
	path := s.Doc.FilePath()
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	modified := info.ModTime()
	if !s.LastModified.IsZero() && !modified.After(s.LastModified) {
		return
	}
	s.LastModified = modified
	res, err := document.LoadFile(path)
	if err != nil {
		return
	}
	s.Doc = res.Doc
	s.ParseErr = res.ParseErr
	s.Raw = nil
	if res.ParseErr != "" {
		s.Raw = NewRawBuffer(res.Raw)
	}
	s.Expanded = map[string]struct{}{"": {}}
	s.Tree = s.Doc.BuildTree()
	s.Visible = document.Flatten(s.Tree, s.Expanded, "")
	if n := s.VisibleLen(); s.Selection >= n {
		s.Selection = max(0, n-1)
	}
	s.log.V(1).Info("reloaded after external change", "path", path)
	s.SetToast("File changed on disk, reloaded")
}

// SwitchToPicker leaves the editor for the file picker, rooted at the
// current file's directory.
func (s *Session) SwitchToPicker() error {
	dir := ""
	if p := s.Doc.FilePath(); p != "" {
		dir = filepath.Dir(p)
	} else if wd, err := os.Getwd(); err == nil {
		dir = wd
	} else {
		dir = "."
	}
	entries, err := ListPickerEntries(dir)
	if err != nil {
		return err
	}
	s.Picker = &PickerState{Dir: dir, Entries: entries}
	s.Selection = 0
	s.Scroll = 0
	s.Mode = ModeNormal
	s.Keys.Reset()
	return nil
}

// HandlePickerKey processes a key press while the picker is active.
// Returns true when the program should exit.
func (s *Session) HandlePickerKey(key string) bool {
	picker := s.Picker
	if picker == nil {
		return false
	}
	switch key {
	case "enter":
		s.PickerEnter()
	case "q", "esc":
		return true
	case "j", "down":
		s.MoveSelection(1, s.VisibleLen())
	case "k", "up":
		s.MoveSelection(-1, s.VisibleLen())
	}
	return false
}

// PickerEnter opens the selected entry: descend into directories, load
// files.
func (s *Session) PickerEnter() {
	picker := s.Picker
	if picker == nil || s.Selection < 0 || s.Selection >= len(picker.Entries) {
		return
	}
	entry := picker.Entries[s.Selection]
	switch entry.Kind {
	case PickerParent, PickerDir:
		entries, err := ListPickerEntries(entry.Path)
		if err != nil {
			s.SetToast(err.Error())
			return
		}
		picker.Dir = entry.Path
		picker.Entries = entries
		s.Selection = 0
		s.Scroll = 0
	case PickerFile:
		if err := s.OpenFile(entry.Path); err != nil {
			s.SetToast(err.Error())
		}
	}
}

// ArmRightClickGuard starts the post-right-click window during which the
// 'a' and 'r' keys are ignored in Normal mode.
func (s *Session) ArmRightClickGuard() {
	s.RightClickGuardUntil = time.Now().Add(rightClickGuard)
}

// RightClickGuardActive reports whether key should currently be swallowed.
// Any other key disarms the guard: pasted text arrives as an unbroken burst,
// so a deliberate keystroke in between means the window is over.
func (s *Session) RightClickGuardActive(key string) bool {
	if key != "a" && key != "r" {
		s.RightClickGuardUntil = time.Time{}
		return false
	}
	if s.Mode != ModeNormal {
		return false
	}
	return time.Now().Before(s.RightClickGuardUntil)
}

// StatusFields returns what the status line shows: dot path, depth, kind
// label, and preview for the selected row; line number and content in raw
// mode.
func (s *Session) StatusFields() (string, int, string, string) {
	if s.Raw != nil {
		if s.Selection < s.Raw.Len() {
			line := runewidth.Truncate(s.Raw.Lines[s.Selection], 40, "…")
			return "Line " + strconv.Itoa(s.Selection+1), s.Selection, "raw", line
		}
		return "", 0, "", ""
	}
	if row := s.CurrentRow(); row != nil {
		return row.Path.DotPath(), row.Path.Depth(), row.Kind.String(), row.Preview
	}
	return "", 0, "", ""
}

// IsNotFound reports whether err is the document's path-resolution error,
// mainly for tests at this layer.
func IsNotFound(err error) bool {
	return errors.Is(err, document.ErrNotFound)
}
