package session

import (
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// PickerEntryKind distinguishes the rows of the file picker.
type PickerEntryKind int

const (
	PickerParent PickerEntryKind = iota
	PickerDir
	PickerFile
)

// PickerEntry is one selectable row of the file picker.
type PickerEntry struct {
	Kind PickerEntryKind
	Path string
}

// Label is the text shown for the entry.
func (e PickerEntry) Label() string {
	switch e.Kind {
	case PickerParent:
		return ".."
	case PickerDir:
		return filepath.Base(e.Path) + "/"
	default:
		return filepath.Base(e.Path)
	}
}

// PickerState is the file-picker view over a directory: "..", then
// subdirectories, then YAML files, each group name-sorted.
type PickerState struct {
	Dir     string
	Entries []PickerEntry
}

// ListPickerEntries builds the picker rows for dir.
func ListPickerEntries(dir string) ([]PickerEntry, error) {
	var entries []PickerEntry
	if filepath.Dir(dir) != dir {
		entries = append(entries, PickerEntry{Kind: PickerParent, Path: filepath.Dir(dir)})
	}
	dirents, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var dirs, files []string
	for _, de := range dirents {
		full := filepath.Join(dir, de.Name())
		if de.IsDir() {
			dirs = append(dirs, full)
			continue
		}
		ext := strings.ToLower(filepath.Ext(de.Name()))
		if ext == ".yaml" || ext == ".yml" {
			files = append(files, full)
		}
	}
	sort.Strings(dirs)
	sort.Strings(files)
	for _, d := range dirs {
		entries = append(entries, PickerEntry{Kind: PickerDir, Path: d})
	}
	for _, f := range files {
		entries = append(entries, PickerEntry{Kind: PickerFile, Path: f})
	}
	return entries, nil
}
