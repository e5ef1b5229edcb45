package session

// Action is an abstract editing action produced by the keymap. The keymap
// itself never mutates the document; the Session interprets actions, which
// keeps the two independently testable.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionSave
	ActionMoveUp
	ActionMoveDown
	ActionJumpTop
	ActionJumpBottom
	ActionPageUp
	ActionPageDown
	ActionJumpLeft
	ActionCollapse
	ActionExpand
	ActionToggleExpand
	ActionEditValue
	ActionRenameKey
	ActionAddChild
	ActionAddMapToSequence
	ActionDeleteNode
	ActionDeleteLine
	ActionCopyPath
	ActionConfirmYes
	ActionConfirmNo
	ActionOpenAnother
	ActionStartSearch
	ActionSearchNext
	ActionSearchPrev
	ActionCancel
	ActionCommit
)

// normalBindings maps bubbletea key strings to actions for Normal mode.
var normalBindings = map[string]Action{
	"q":            ActionQuit,
	"ctrl+s":       ActionSave,
	"ctrl+o":       ActionOpenAnother,
	"j":            ActionMoveDown,
	"down":         ActionMoveDown,
	"k":            ActionMoveUp,
	"up":           ActionMoveUp,
	"G":            ActionJumpBottom,
	"h":            ActionCollapse,
	"left":         ActionCollapse,
	"l":            ActionExpand,
	"right":        ActionExpand,
	"enter":        ActionToggleExpand,
	"e":            ActionEditValue,
	"r":            ActionRenameKey,
	"a":            ActionAddChild,
	"A":            ActionAddMapToSequence,
	"d":            ActionDeleteNode,
	"shift+delete": ActionDeleteLine,
	"y":            ActionCopyPath,
	"n":            ActionSearchNext,
	"N":            ActionSearchPrev,
	"/":            ActionStartSearch,
	"0":            ActionJumpLeft,
	"ctrl+u":       ActionPageUp,
	"ctrl+d":       ActionPageDown,
}

// Keymap turns (mode, key string) pairs into actions. It owns the one-shot
// pending-g flag for the gg compound binding, the only two-keystroke
// binding in the system; the flag is armed only in Normal mode and any
// other key or mode clears it.
type Keymap struct {
	pendingG bool
}

// NewKeymap returns a keymap with no pending compound key.
func NewKeymap() *Keymap {
	return &Keymap{}
}

// PendingG reports whether a lone g press is armed.
func (k *Keymap) PendingG() bool {
	return k.pendingG
}

// Reset clears the pending compound key, called on any mode change.
func (k *Keymap) Reset() {
	k.pendingG = false
}

// Handle resolves a key press in the given mode. Returns ActionNone when
// the key is unbound or only armed the compound flag.
//
// Text-entry modes resolve only cancel and commit here; in-buffer editing
// (character insertion, cursor movement, backspace) is the input widget's
// concern and never reaches the keymap as an action.
func (k *Keymap) Handle(mode Mode, key string) Action {
	switch {
	case mode.IsTextEntry():
		k.pendingG = false
		switch key {
		case "esc":
			return ActionCancel
		case "enter":
			return ActionCommit
		}
		return ActionNone
	case mode.IsConfirm():
		k.pendingG = false
		switch key {
		case "y":
			return ActionConfirmYes
		case "n", "esc":
			return ActionConfirmNo
		}
		return ActionNone
	}

	if key == "g" {
		if k.pendingG {
			k.pendingG = false
			return ActionJumpTop
		}
		k.pendingG = true
		return ActionNone
	}
	action, ok := normalBindings[key]
	if !ok {
		k.pendingG = false
		return ActionNone
	}
	k.pendingG = false
	return action
}
