package handler

import (
	"errors"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/withastro/htmltokenizer/internal/loc"
)

var severities = []loc.DiagnosticSeverity{loc.ErrorType, loc.WarningType, loc.InformationType, loc.HintType}

// Handler collects the diagnostics produced while scanning one source text.
type Handler struct {
	sourcetext string
	filename   string
	lines      []string
	reported   map[loc.DiagnosticSeverity][]error
}

func NewHandler(sourcetext string, filename string) *Handler {
	return &Handler{
		sourcetext: sourcetext,
		filename:   filename,
		lines:      strings.Split(sourcetext, "\n"),
		reported:   make(map[loc.DiagnosticSeverity][]error),
	}
}

func (h *Handler) append(severity loc.DiagnosticSeverity, err error) {
	if err == nil {
		return
	}
	h.reported[severity] = append(h.reported[severity], err)
}

func (h *Handler) HasErrors() bool {
	return len(h.reported[loc.ErrorType]) > 0
}

func (h *Handler) HasWarnings() bool {
	return len(h.reported[loc.WarningType]) > 0
}

func (h *Handler) AppendError(err error) {
	h.append(loc.ErrorType, err)
}

func (h *Handler) AppendWarning(err error) {
	h.append(loc.WarningType, err)
}

func (h *Handler) AppendInfo(err error) {
	h.append(loc.InformationType, err)
}

func (h *Handler) AppendHint(err error) {
	h.append(loc.HintType, err)
}

// Position returns the 1-based line and column of a byte offset in the
// source text.
func (h *Handler) Position(offset int) (line, col int) {
	line, col, _ = parse.Position(strings.NewReader(h.sourcetext), offset)
	return line, col
}

// Context returns the source line around offset with a marker under the
// offending column.
func (h *Handler) Context(offset int) string {
	_, _, context := parse.Position(strings.NewReader(h.sourcetext), offset)
	return context
}

func (h *Handler) lineText(line int) string {
	if line < 1 || line > len(h.lines) {
		return ""
	}
	return strings.TrimSuffix(h.lines[line-1], "\r")
}

func (h *Handler) messages(severity loc.DiagnosticSeverity) []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0, len(h.reported[severity]))
	for _, err := range h.reported[severity] {
		msgs = append(msgs, ErrorToMessage(h, severity, err))
	}
	return msgs
}

func (h *Handler) Errors() []loc.DiagnosticMessage {
	return h.messages(loc.ErrorType)
}

func (h *Handler) Warnings() []loc.DiagnosticMessage {
	return h.messages(loc.WarningType)
}

// Diagnostics returns every message, errors first, then warnings, infos and
// hints, each group in the order it was reported.
func (h *Handler) Diagnostics() []loc.DiagnosticMessage {
	msgs := make([]loc.DiagnosticMessage, 0)
	for _, severity := range severities {
		msgs = append(msgs, h.messages(severity)...)
	}
	return msgs
}

func ErrorToMessage(h *Handler, severity loc.DiagnosticSeverity, err error) loc.DiagnosticMessage {
	var rangedError *loc.ErrorWithRange
	if !errors.As(err, &rangedError) {
		return loc.DiagnosticMessage{Text: err.Error(), Severity: int(severity)}
	}
	line, col := h.Position(rangedError.Range.Loc.Start)
	message := rangedError.ToMessage(&loc.DiagnosticLocation{
		File:     h.filename,
		LineText: h.lineText(line),
		Line:     line,
		Column:   col,
		Length:   rangedError.Range.Len,
	})
	message.Severity = int(severity)
	return message
}
