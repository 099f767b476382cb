// Package frag writes HTML fragments for board plugins.
package frag

import (
	"fmt"
	"html"
	"io"
	"strings"
)

// Writer wraps an io.Writer and remembers the first write error so that
// renderers can emit a sequence of fragments and check once at the end.
type Writer struct {
	w   io.Writer
	err error
}

// New returns a Writer that writes to w.
func New(w io.Writer) *Writer { return &Writer{w: w} }

// Printf formats according to format and writes the result.
func (w *Writer) Printf(format string, args ...any) {
	if w.err != nil {
		return
	}
	_, w.err = fmt.Fprintf(w.w, format, args...)
}

// Raw writes s unescaped.
func (w *Writer) Raw(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.w, s)
}

// Text writes s with HTML special characters escaped.
func (w *Writer) Text(s string) { w.Raw(html.EscapeString(s)) }

// Err returns the first error encountered.
func (w *Writer) Err() error { return w.err }

// Esc escapes s for use in HTML text and attribute values.
func Esc(s string) string { return html.EscapeString(s) }

// Lines escapes s and turns newlines into <br>.
func Lines(s string) string {
	return strings.ReplaceAll(html.EscapeString(s), "\n", "<br>")
}

// Or returns s, or fallback when s is blank.
func Or(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}

// Empty writes the placeholder shown by boards with nothing in them.
func (w *Writer) Empty(msg string) {
	w.Printf(`<div class="empty">%s</div>`, Esc(msg))
}

// Field writes a labelled text area as used by the document editors.
func (w *Writer) Field(name, label, value, placeholder string) {
	w.Printf(`<label class="field"><span>%s</span><textarea name="%s" placeholder="%s">%s</textarea></label>`,
		Esc(label), Esc(name), Esc(placeholder), Esc(value))
}
