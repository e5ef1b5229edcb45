// Package clipboard wraps the system clipboard behind a one-method
// interface so the session layer can report copy success/failure as a
// notice and tests can substitute a recorder.
package clipboard

import "github.com/atotto/clipboard"

// Copier places text on a clipboard.
type Copier interface {
	Copy(text string) error
}

// System copies to the OS clipboard.
type System struct{}

// Copy implements Copier.
func (System) Copy(text string) error {
	return clipboard.WriteAll(text)
}
