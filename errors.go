package docfmt

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mattn/go-runewidth"
)

// ParseError reports malformed source text.
type ParseError struct {
	Format  Format
	Message string // underlying parser message
	Offset  int    // byte offset into the input, -1 when unknown
	Line    int    // 1-based, 0 when unknown
	Column  int    // 1-based rune column, 0 when unknown
	Snippet string // offending line, with a caret under Column when known
}

func (e *ParseError) Error() string {
	switch {
	case e.Line > 0 && e.Column > 0:
		return fmt.Sprintf("invalid %s at line %d, column %d: %s", e.Format.Title(), e.Line, e.Column, e.Message)
	case e.Line > 0:
		return fmt.Sprintf("invalid %s at line %d: %s", e.Format.Title(), e.Line, e.Message)
	}
	return fmt.Sprintf("invalid %s: %s", e.Format.Title(), e.Message)
}

// Is matches [ErrParse].
func (e *ParseError) Is(target error) bool { return target == ErrParse }

// UnsupportedConversionError reports a pair outside [Pairs]. Err holds the
// reason when the pair could not be parsed at all.
type UnsupportedConversionError struct {
	Pair Pair
	Err  error
}

func (e *UnsupportedConversionError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %q: %v", ErrUnsupportedConversion, e.Pair.String(), e.Err)
	}
	return fmt.Sprintf("%s: %q", ErrUnsupportedConversion, e.Pair.String())
}

// Is matches [ErrUnsupportedConversion].
func (e *UnsupportedConversionError) Is(target error) bool {
	return target == ErrUnsupportedConversion
}

func (e *UnsupportedConversionError) Unwrap() error { return e.Err }

// ConversionError wraps any failure of the parse-then-serialize pipeline.
type ConversionError struct {
	Pair Pair
	Err  error
}

func (e *ConversionError) Error() string {
	return fmt.Sprintf("convert %s: %v", e.Pair, e.Err)
}

func (e *ConversionError) Unwrap() error { return e.Err }

// FileTooLargeError reports input above [MaxInputSize]. It is raised before
// the content is read.
type FileTooLargeError struct {
	Name  string
	Size  int64 // -1 when the size was not known up front
	Limit int64
}

func (e *FileTooLargeError) Error() string {
	if e.Size < 0 {
		return fmt.Sprintf("%s: %s exceeds %d bytes", ErrFileTooLarge, e.Name, e.Limit)
	}
	return fmt.Sprintf("%s: %s is %d bytes, limit is %d", ErrFileTooLarge, e.Name, e.Size, e.Limit)
}

// Is matches [ErrFileTooLarge].
func (e *FileTooLargeError) Is(target error) bool { return target == ErrFileTooLarge }

// newParseError locates a byte offset in text. A negative offset leaves
// the position unknown.
func newParseError(f Format, text, msg string, offset int) *ParseError {
	if offset < 0 || offset > len(text) {
		return &ParseError{Format: f, Message: msg, Offset: -1}
	}
	start := strings.LastIndexByte(text[:offset], '\n') + 1
	end := strings.IndexByte(text[offset:], '\n')
	if end < 0 {
		end = len(text)
	} else {
		end += offset
	}
	line := strings.Count(text[:start], "\n") + 1
	col := utf8.RuneCountInString(text[start:offset]) + 1
	return &ParseError{
		Format:  f,
		Message: msg,
		Offset:  offset,
		Line:    line,
		Column:  col,
		Snippet: snippet(text[start:end], col),
	}
}

// newLineError builds a ParseError for line-oriented parsers.
func newLineError(f Format, text, msg string, line, col int) *ParseError {
	lines := strings.Split(text, "\n")
	offset := -1
	src := ""
	if line >= 1 && line <= len(lines) {
		src = lines[line-1]
		offset = 0
		for _, l := range lines[:line-1] {
			offset += len(l) + 1
		}
		n := max(0, min(col-1, utf8.RuneCountInString(src)))
		offset += len(string([]rune(src)[:n]))
	}
	e := &ParseError{Format: f, Message: msg, Offset: offset, Line: line, Column: col}
	if col > 0 {
		e.Snippet = snippet(src, col)
	} else if line > 0 {
		e.Snippet = runewidth.Truncate(src, snippetWidth, "...")
		e.Offset = -1
	}
	return e
}

const snippetWidth = 80

// snippet renders line with a caret under the 1-based rune column col,
// keeping the caret in view when the line is wider than snippetWidth.
func snippet(line string, col int) string {
	line = strings.ReplaceAll(strings.TrimRight(line, "\r"), "\t", " ")
	runes := []rune(line)
	col = max(1, min(col, len(runes)+1))
	head := string(runes[:col-1])
	tail := string(runes[col-1:])
	lead := ""
	for runewidth.StringWidth(head) > snippetWidth/2 {
		_, size := utf8.DecodeRuneInString(head)
		head = head[size:]
		lead = "..."
	}
	text := runewidth.Truncate(lead+head+tail, snippetWidth, "...")
	caret := strings.Repeat(" ", runewidth.StringWidth(lead+head)) + "^"
	return text + "\n" + caret
}
