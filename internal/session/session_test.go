package session

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/go-logr/logr"
	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oakwood-commons/yedit/pkg/document"
)

// recordingCopier captures clipboard writes for assertions.
type recordingCopier struct {
	copied []string
	fail   bool
}

func (r *recordingCopier) Copy(text string) error {
	if r.fail {
		return errors.New("no clipboard")
	}
	r.copied = append(r.copied, text)
	return nil
}

const testHeight = 10

func writeTemp(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestSession(t *testing.T, content string) (*Session, *recordingCopier) {
	t.Helper()
	clip := &recordingCopier{}
	s, err := New(writeTemp(t, content), logr.Discard(), clip)
	require.NoError(t, err)
	return s, clip
}

func selectPath(t *testing.T, s *Session, dot string) {
	t.Helper()
	for i, row := range s.Visible {
		if row.Path.DotPath() == dot {
			s.Selection = i
			return
		}
	}
	t.Fatalf("path %q not visible in %d rows", dot, len(s.Visible))
}

func TestOpenFileInitialState(t *testing.T) {
	s, _ := newTestSession(t, "server:\n  port: 80\nname: demo\n")

	assert.Equal(t, ModeNormal, s.Mode)
	assert.False(t, s.Dirty)
	assert.False(t, s.InRawMode())
	// Root plus the two collapsed top-level children.
	assert.Equal(t, 3, s.VisibleLen())
	assert.Equal(t, 0, s.Selection)
}

func TestOpenEmptyFileRootAcceptsChildren(t *testing.T) {
	s, _ := newTestSession(t, "")

	require.False(t, s.InRawMode())
	require.Equal(t, 1, s.VisibleLen())
	assert.Equal(t, document.RootLabel, s.CurrentRow().DisplayKey)

	s.Apply(ActionAddChild, testHeight)
	require.Equal(t, ModeAddKey, s.Mode)
	s.Input.SetValue("name")
	s.CommitInput()
	require.Equal(t, ModeAddValue, s.Mode)
	s.Input.SetValue("x")
	s.CommitInput()

	assert.True(t, s.Dirty)
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("name")), 0)
}

func TestExpandCollapseBySelection(t *testing.T) {
	s, _ := newTestSession(t, "server:\n  port: 80\nname: demo\n")
	selectPath(t, s, "server")

	s.Apply(ActionExpand, testHeight)
	assert.Equal(t, 4, s.VisibleLen())
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("server").ChildKey("port")), 0)

	s.Apply(ActionCollapse, testHeight)
	assert.Equal(t, 3, s.VisibleLen())
}

func TestSelectionSurvivesRebuildByPath(t *testing.T) {
	s, _ := newTestSession(t, "alpha:\n  x: 1\nbeta: 2\n")
	selectPath(t, s, "beta")
	before := s.CurrentRow().Path

	// Expanding alpha shifts beta's row index down, not its path.
	selectPath(t, s, "beta")
	s.Expanded["alpha"] = struct{}{}
	s.RebuildVisible()

	require.NotNil(t, s.CurrentRow())
	assert.True(t, s.CurrentRow().Path.Equal(before))
	assert.Equal(t, 3, s.Selection)
}

func TestEditValueFlow(t *testing.T) {
	s, _ := newTestSession(t, "port: 80\n")
	selectPath(t, s, "port")

	s.Apply(ActionEditValue, testHeight)
	require.Equal(t, ModeEditValue, s.Mode)
	assert.Equal(t, "80", s.Input.Value())

	s.Input.SetValue("8080")
	s.CommitInput()

	assert.Equal(t, ModeNormal, s.Mode)
	assert.True(t, s.Dirty)
	selectPath(t, s, "port")
	assert.Equal(t, "8080", s.CurrentRow().Preview)
}

func TestAddKeyThenValueFlow(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	selectPath(t, s, "")

	s.Apply(ActionAddChild, testHeight)
	require.Equal(t, ModeAddKey, s.Mode)

	s.Input.SetValue("fresh")
	s.CommitInput()
	require.Equal(t, ModeAddValue, s.Mode)
	assert.Equal(t, "fresh", s.PendingKey)

	s.Input.SetValue("42")
	s.CommitInput()

	assert.Equal(t, ModeNormal, s.Mode)
	assert.True(t, s.Dirty)
	assert.Empty(t, s.PendingKey)
	idx := document.RowIndexByPath(s.Visible, document.Root.ChildKey("fresh"))
	require.GreaterOrEqual(t, idx, 0)
	assert.Equal(t, "42", s.Visible[idx].Preview)
}

func TestAddKeyRejectsEmpty(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	selectPath(t, s, "")
	s.Apply(ActionAddChild, testHeight)

	s.Input.SetValue("   ")
	s.CommitInput()

	assert.Equal(t, ModeAddKey, s.Mode)
	require.NotNil(t, s.Toast)
	assert.Equal(t, "Key cannot be empty", s.Toast.Message)
}

func TestAddChildOnScalarConvertsToMap(t *testing.T) {
	s, _ := newTestSession(t, "leaf: hello\n")
	selectPath(t, s, "leaf")

	s.Apply(ActionAddChild, testHeight)
	require.Equal(t, ModeAddKey, s.Mode)
	assert.True(t, s.Dirty)

	selectPath(t, s, "leaf")
	assert.Equal(t, document.KindMap, s.CurrentRow().Kind)
}

func TestAddMapToSequenceSelectsNewElement(t *testing.T) {
	s, _ := newTestSession(t, "items:\n  - a\n")
	selectPath(t, s, "items")

	s.Apply(ActionAddMapToSequence, testHeight)

	require.Equal(t, ModeAddKey, s.Mode)
	require.NotNil(t, s.CurrentRow())
	assert.Equal(t, "items.1", s.CurrentRow().Path.DotPath())
	assert.True(t, s.Dirty)
}

func TestRenameFlow(t *testing.T) {
	s, _ := newTestSession(t, "old: 1\nother: 2\n")
	selectPath(t, s, "old")

	s.Apply(ActionRenameKey, testHeight)
	require.Equal(t, ModeRenameKey, s.Mode)
	assert.Equal(t, "old", s.Input.Value())

	s.Input.SetValue("new")
	s.CommitInput()

	assert.Equal(t, ModeNormal, s.Mode)
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("new")), 0)
	assert.Equal(t, -1, document.RowIndexByPath(s.Visible, document.Root.ChildKey("old")))
}

func TestRenameDuplicateStaysInMode(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\nb: 2\n")
	selectPath(t, s, "a")
	s.Apply(ActionRenameKey, testHeight)

	s.Input.SetValue("b")
	s.CommitInput()

	assert.Equal(t, ModeRenameKey, s.Mode)
	require.NotNil(t, s.Toast)
	assert.False(t, s.Dirty)
}

func TestDeleteFlow(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\nb: 2\n")
	selectPath(t, s, "a")

	s.Apply(ActionDeleteNode, testHeight)
	require.Equal(t, ModeConfirmDelete, s.Mode)

	s.Apply(ActionConfirmYes, testHeight)
	assert.Equal(t, ModeNormal, s.Mode)
	assert.True(t, s.Dirty)
	assert.Equal(t, -1, document.RowIndexByPath(s.Visible, document.Root.ChildKey("a")))
}

func TestDeleteDeclined(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	selectPath(t, s, "a")
	s.Apply(ActionDeleteNode, testHeight)

	s.Apply(ActionConfirmNo, testHeight)
	assert.Equal(t, ModeNormal, s.Mode)
	assert.False(t, s.Dirty)
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("a")), 0)
}

func TestQuitCleanIsImmediate(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	assert.True(t, s.Apply(ActionQuit, testHeight))
}

func TestQuitDirtyNeedsConfirmation(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.Dirty = true

	assert.False(t, s.Apply(ActionQuit, testHeight))
	require.Equal(t, ModeConfirmQuit, s.Mode)
	assert.True(t, s.Apply(ActionConfirmYes, testHeight))
}

func TestSearchCommitJumpsToFirstMatch(t *testing.T) {
	s, _ := newTestSession(t, "alpha: 1\nbeta:\n  hostname: x\ngamma: 3\n")

	s.Apply(ActionStartSearch, testHeight)
	require.Equal(t, ModeSearchInput, s.Mode)
	s.Input.SetValue("hostname")
	s.CommitInput()

	assert.Equal(t, ModeNormal, s.Mode)
	require.NotEmpty(t, s.Matches)
	assert.Equal(t, s.Matches[0], s.Selection)
	// beta is force-expanded to reveal the match.
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("beta").ChildKey("hostname")), 0)
}

func TestSearchNoMatchesToast(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.Apply(ActionStartSearch, testHeight)
	s.Input.SetValue("zzz")
	s.CommitInput()

	require.NotNil(t, s.Toast)
	assert.Equal(t, "No matches found", s.Toast.Message)
	assert.Empty(t, s.Matches)
}

func TestSearchNextPrevCycle(t *testing.T) {
	s, _ := newTestSession(t, "aa_one: 1\nbb: 2\naa_two: 3\n")
	s.Apply(ActionStartSearch, testHeight)
	s.Input.SetValue("aa")
	s.CommitInput()
	require.Len(t, s.Matches, 2)
	first := s.Selection

	s.Apply(ActionSearchNext, testHeight)
	second := s.Selection
	assert.NotEqual(t, first, second)

	s.Apply(ActionSearchNext, testHeight)
	assert.Equal(t, first, s.Selection)

	s.Apply(ActionSearchPrev, testHeight)
	assert.Equal(t, second, s.Selection)
}

func TestCancelSearchClearsFilter(t *testing.T) {
	s, _ := newTestSession(t, "alpha: 1\nbeta: 2\n")
	full := s.VisibleLen()

	s.Apply(ActionStartSearch, testHeight)
	s.Input.SetValue("alpha")
	s.CommitInput()
	assert.Less(t, s.VisibleLen(), full)

	s.Apply(ActionStartSearch, testHeight)
	s.Apply(ActionCancel, testHeight)

	assert.Equal(t, ModeNormal, s.Mode)
	assert.Empty(t, s.SearchQuery)
	assert.Equal(t, full, s.VisibleLen())
}

func TestEnsureVisibleScrollsMinimally(t *testing.T) {
	s := newSession(logr.Discard(), &recordingCopier{})
	s.Visible = make([]document.VisibleRow, 50)

	s.Selection = 25
	s.EnsureVisible(testHeight)
	assert.Equal(t, 16, s.Scroll) // selection on the last line

	s.Selection = 5
	s.EnsureVisible(testHeight)
	assert.Equal(t, 5, s.Scroll)

	// Already inside the window: no movement.
	s.Selection = 9
	s.EnsureVisible(testHeight)
	assert.Equal(t, 5, s.Scroll)
}

func TestMoveSelectionClamps(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\nb: 2\n")
	s.MoveSelection(-5, testHeight)
	assert.Equal(t, 0, s.Selection)

	s.MoveSelection(99, testHeight)
	assert.Equal(t, s.VisibleLen()-1, s.Selection)
}

func TestJumpTopBottom(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\nb: 2\nc: 3\n")
	s.Apply(ActionJumpBottom, testHeight)
	assert.Equal(t, s.VisibleLen()-1, s.Selection)
	s.Apply(ActionJumpTop, testHeight)
	assert.Equal(t, 0, s.Selection)
}

func TestCopyPath(t *testing.T) {
	s, clip := newTestSession(t, "server:\n  port: 80\n")
	s.Expanded["server"] = struct{}{}
	s.RebuildVisible()
	selectPath(t, s, "server.port")

	s.Apply(ActionCopyPath, testHeight)

	require.Len(t, clip.copied, 1)
	assert.Equal(t, "server.port", clip.copied[0])
	require.NotNil(t, s.Toast)
	assert.Equal(t, "Copied: server.port", s.Toast.Message)
}

func TestCopyPathFailureToast(t *testing.T) {
	s, clip := newTestSession(t, "a: 1\n")
	clip.fail = true
	selectPath(t, s, "a")

	s.Apply(ActionCopyPath, testHeight)

	require.NotNil(t, s.Toast)
	assert.Equal(t, "Failed to copy path", s.Toast.Message)
}

func TestToastExpires(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.SetToast("hello")
	s.Toast.ExpiresAt = time.Now().Add(-time.Millisecond)
	s.UpdateToast()
	assert.Nil(t, s.Toast)
}

func TestSaveDocumentClearsDirty(t *testing.T) {
	s, _ := newTestSession(t, "port: 80\n")
	selectPath(t, s, "port")
	s.Apply(ActionEditValue, testHeight)
	s.Input.SetValue("90")
	s.CommitInput()
	require.True(t, s.Dirty)

	s.Apply(ActionSave, testHeight)

	assert.False(t, s.Dirty)
	data, err := os.ReadFile(s.Doc.FilePath())
	require.NoError(t, err)
	assert.Contains(t, string(data), "port: 90")
}

func TestCheckReloadSkippedWhileDirty(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.Dirty = true
	require.NoError(t, os.WriteFile(s.Doc.FilePath(), []byte("a: 2\n"), 0o644))
	require.NoError(t, os.Chtimes(s.Doc.FilePath(), time.Now(), time.Now().Add(time.Hour)))

	s.CheckReload()

	selectPath(t, s, "a")
	assert.Equal(t, "1", s.CurrentRow().Preview)
}

func TestCheckReloadPicksUpExternalChange(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	require.NoError(t, os.WriteFile(s.Doc.FilePath(), []byte("a: 2\nb: 3\n"), 0o644))
	require.NoError(t, os.Chtimes(s.Doc.FilePath(), time.Now(), time.Now().Add(time.Hour)))

	s.CheckReload()

	selectPath(t, s, "a")
	assert.Equal(t, "2", s.CurrentRow().Preview)
	require.NotNil(t, s.Toast)
	assert.Equal(t, "File changed on disk, reloaded", s.Toast.Message)
}

func TestCheckReloadThrottled(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.LastFileCheck = time.Now()
	require.NoError(t, os.WriteFile(s.Doc.FilePath(), []byte("a: 2\n"), 0o644))
	require.NoError(t, os.Chtimes(s.Doc.FilePath(), time.Now(), time.Now().Add(time.Hour)))

	s.CheckReload()

	selectPath(t, s, "a")
	assert.Equal(t, "1", s.CurrentRow().Preview)
}

func TestRawModeLifecycle(t *testing.T) {
	s, _ := newTestSession(t, "key: [unclosed\nother: fine\n")
	require.True(t, s.InRawMode())
	assert.Equal(t, 2, s.VisibleLen())

	// Fix the broken line through the line editor.
	s.Selection = 0
	s.Apply(ActionEditValue, testHeight)
	require.Equal(t, ModeRawEditLine, s.Mode)
	assert.Equal(t, "key: [unclosed", s.Input.Value())
	s.Input.SetValue("key: closed")
	s.CommitInput()
	assert.True(t, s.Dirty)

	s.SaveRawAndReparse()

	assert.False(t, s.InRawMode())
	assert.False(t, s.Dirty)
	assert.Equal(t, 0, s.Selection)
	require.NotNil(t, s.Toast)
	assert.Equal(t, "Saved and parsed successfully", s.Toast.Message)
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("other")), 0)
}

func TestRawSaveStillBrokenStaysRaw(t *testing.T) {
	s, _ := newTestSession(t, "key: [unclosed\n")
	require.True(t, s.InRawMode())

	s.SaveRawAndReparse()

	assert.True(t, s.InRawMode())
	require.NotNil(t, s.Toast)
	assert.Equal(t, "Saved; parse still has errors", s.Toast.Message)
}

func TestRawDeleteLineFlow(t *testing.T) {
	s, _ := newTestSession(t, "key: [unclosed\nsecond\nthird\n")
	require.True(t, s.InRawMode())
	s.Selection = 2

	s.Apply(ActionDeleteLine, testHeight)
	require.Equal(t, ModeConfirmRawDeleteLine, s.Mode)
	s.Apply(ActionConfirmYes, testHeight)

	assert.Equal(t, 2, s.Raw.Len())
	assert.Equal(t, 1, s.Selection)
	assert.True(t, s.Dirty)
}

func TestRawModeBlocksTreeEdits(t *testing.T) {
	s, _ := newTestSession(t, "key: [unclosed\n")
	require.True(t, s.InRawMode())

	s.Apply(ActionRenameKey, testHeight)
	assert.Equal(t, ModeNormal, s.Mode)
	require.NotNil(t, s.Toast)

	s.Toast = nil
	s.Apply(ActionAddChild, testHeight)
	assert.Equal(t, ModeNormal, s.Mode)
	require.NotNil(t, s.Toast)
}

func TestRightClickGuard(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")

	assert.False(t, s.RightClickGuardActive("a"))
	s.ArmRightClickGuard()
	assert.True(t, s.RightClickGuardActive("a"))
	assert.True(t, s.RightClickGuardActive("r"))

	s.Mode = ModeEditValue
	assert.False(t, s.RightClickGuardActive("a"))
	s.Mode = ModeNormal
	assert.True(t, s.RightClickGuardActive("a"))
}

func TestRightClickGuardDisarmsOnOtherKey(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")

	s.ArmRightClickGuard()
	// A deliberate keystroke inside the window ends the paste suppression.
	assert.False(t, s.RightClickGuardActive("j"))
	assert.False(t, s.RightClickGuardActive("a"))
	assert.False(t, s.RightClickGuardActive("r"))
}

func TestSwitchToPickerAndOpen(t *testing.T) {
	dir := t.TempDir()
	first := filepath.Join(dir, "first.yaml")
	second := filepath.Join(dir, "second.yaml")
	require.NoError(t, os.WriteFile(first, []byte("a: 1\n"), 0o644))
	require.NoError(t, os.WriteFile(second, []byte("b: 2\n"), 0o644))

	s, err := New(first, logr.Discard(), &recordingCopier{})
	require.NoError(t, err)

	s.Apply(ActionOpenAnother, testHeight)
	require.True(t, s.InPicker())
	assert.Equal(t, dir, s.Picker.Dir)

	// Select second.yaml and open it.
	found := false
	for i, e := range s.Picker.Entries {
		if e.Kind == PickerFile && e.Path == second {
			s.Selection = i
			found = true
		}
	}
	require.True(t, found)
	s.PickerEnter()

	assert.False(t, s.InPicker())
	assert.Equal(t, second, s.Doc.FilePath())
	assert.GreaterOrEqual(t, document.RowIndexByPath(s.Visible, document.Root.ChildKey("b")), 0)
}

func TestOpenAnotherWhileDirtyConfirms(t *testing.T) {
	s, _ := newTestSession(t, "a: 1\n")
	s.Dirty = true

	s.Apply(ActionOpenAnother, testHeight)
	require.Equal(t, ModeConfirmOpenAnother, s.Mode)

	s.Apply(ActionConfirmYes, testHeight)
	assert.True(t, s.InPicker())
}

func TestPickerKeys(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "x.yaml"), []byte("a: 1\n"), 0o644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })

	s, err := NewPicker(logr.Discard(), &recordingCopier{})
	require.NoError(t, err)
	require.True(t, s.InPicker())

	assert.False(t, s.HandlePickerKey("j"))
	assert.Equal(t, 1, s.Selection)
	assert.False(t, s.HandlePickerKey("k"))
	assert.Equal(t, 0, s.Selection)
	assert.True(t, s.HandlePickerKey("q"))
	assert.True(t, s.HandlePickerKey("esc"))
}

func TestStatusFields(t *testing.T) {
	s, _ := newTestSession(t, "server:\n  port: 80\n")
	s.Expanded["server"] = struct{}{}
	s.RebuildVisible()
	selectPath(t, s, "server.port")

	path, depth, kind, preview := s.StatusFields()
	assert.Equal(t, "server.port", path)
	assert.Equal(t, 2, depth)
	assert.Equal(t, "number", kind)
	assert.Equal(t, "80", preview)
}

func TestStatusFieldsRawLineTruncatesOnRuneBoundary(t *testing.T) {
	// Multi-byte content around the cut point must never be split mid-rune.
	long := "日本語のとても長い行" + strings.Repeat("あ", 40) + ": [unclosed"
	s, _ := newTestSession(t, long+"\n")
	require.True(t, s.InRawMode())

	_, _, kind, preview := s.StatusFields()
	assert.Equal(t, "raw", kind)
	assert.True(t, utf8.ValidString(preview), "preview = %q", preview)
	assert.LessOrEqual(t, runewidth.StringWidth(preview), 40)
	assert.True(t, strings.HasSuffix(preview, "…"))
}
