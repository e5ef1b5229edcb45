package session

import "strings"

// RawBuffer holds the document's original text as editable lines while the
// document does not parse. Raw fallback and tree mode are mutually
// exclusive; they share only the session's generic selection/scroll fields.
type RawBuffer struct {
	Lines []string
}

// NewRawBuffer splits text into lines.
func NewRawBuffer(text string) *RawBuffer {
	return &RawBuffer{Lines: splitLines(text)}
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	lines := strings.Split(text, "\n")
	// A trailing newline produces one phantom empty line; drop it so line
	// count matches what an editor shows.
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

// Content joins the lines back into the text written on save.
func (r *RawBuffer) Content() string {
	return strings.Join(r.Lines, "\n")
}

// Len is the line count.
func (r *RawBuffer) Len() int {
	return len(r.Lines)
}

// ReplaceLine overwrites line i. Out-of-range indices and embedded
// newlines are tolerated: the index is ignored, the text is cut at the
// first newline.
func (r *RawBuffer) ReplaceLine(i int, text string) {
	if i < 0 || i >= len(r.Lines) {
		return
	}
	if nl := strings.IndexByte(text, '\n'); nl >= 0 {
		text = text[:nl]
	}
	r.Lines[i] = text
}

// DeleteLine removes line i. No-op when out of range.
func (r *RawBuffer) DeleteLine(i int) bool {
	if i < 0 || i >= len(r.Lines) {
		return false
	}
	r.Lines = append(r.Lines[:i], r.Lines[i+1:]...)
	return true
}
