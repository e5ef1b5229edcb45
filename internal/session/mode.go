package session

// Mode is the modal input state. Exactly one mode is active at a time; it
// governs which actions a key event can produce and what Commit does.
type Mode int

const (
	ModeNormal Mode = iota
	ModeEditValue
	ModeRenameKey
	ModeAddKey
	ModeAddValue
	ModeConfirmDelete
	ModeConfirmQuit
	ModeConfirmOpenAnother
	ModeConfirmRawDeleteLine
	ModeSearchInput
	ModeRawEditLine
)

// IsTextEntry reports whether the mode reads free text through the input
// buffer.
func (m Mode) IsTextEntry() bool {
	switch m {
	case ModeEditValue, ModeRenameKey, ModeAddKey, ModeAddValue, ModeSearchInput, ModeRawEditLine:
		return true
	}
	return false
}

// IsConfirm reports whether the mode is a yes/no confirmation.
func (m Mode) IsConfirm() bool {
	switch m {
	case ModeConfirmDelete, ModeConfirmQuit, ModeConfirmOpenAnother, ModeConfirmRawDeleteLine:
		return true
	}
	return false
}

// String is used in logs and the status line.
func (m Mode) String() string {
	switch m {
	case ModeNormal:
		return "normal"
	case ModeEditValue:
		return "edit-value"
	case ModeRenameKey:
		return "rename-key"
	case ModeAddKey:
		return "add-key"
	case ModeAddValue:
		return "add-value"
	case ModeConfirmDelete:
		return "confirm-delete"
	case ModeConfirmQuit:
		return "confirm-quit"
	case ModeConfirmOpenAnother:
		return "confirm-open"
	case ModeConfirmRawDeleteLine:
		return "confirm-raw-delete"
	case ModeSearchInput:
		return "search"
	case ModeRawEditLine:
		return "raw-edit"
	}
	return "unknown"
}
