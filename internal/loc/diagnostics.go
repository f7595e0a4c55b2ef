package loc

import "fmt"

type DiagnosticCode int

const (
	ERROR                          DiagnosticCode = 1000
	ERROR_CONTEXT_OVERFLOW         DiagnosticCode = 1001
	ERROR_CONTEXT_UNDERFLOW        DiagnosticCode = 1002
	ERROR_TAG_NAME_TOO_LONG        DiagnosticCode = 1003
	WARNING                        DiagnosticCode = 2000
	WARNING_MALFORMED_INPUT        DiagnosticCode = 2001
	WARNING_UNTERMINATED_COMMENT   DiagnosticCode = 2002
	WARNING_UNTERMINATED_CDATA     DiagnosticCode = 2003
	WARNING_UNTERMINATED_RAW_TEXT  DiagnosticCode = 2004
	WARNING_UNTERMINATED_TAG       DiagnosticCode = 2005
	WARNING_UNTERMINATED_ATTRIBUTE DiagnosticCode = 2006
	INFO                           DiagnosticCode = 3000
	HINT                           DiagnosticCode = 4000
)

type DiagnosticSeverity int

const (
	ErrorType       DiagnosticSeverity = 1
	WarningType     DiagnosticSeverity = 2
	InformationType DiagnosticSeverity = 3
	HintType        DiagnosticSeverity = 4
)

func (s DiagnosticSeverity) String() string {
	switch s {
	case ErrorType:
		return "error"
	case WarningType:
		return "warning"
	case InformationType:
		return "info"
	case HintType:
		return "hint"
	}
	return fmt.Sprintf("Invalid(%d)", int(s))
}

type DiagnosticMessage struct {
	Code     int                 `js:"code" json:"code"`
	Text     string              `js:"text" json:"text"`
	Hint     string              `js:"hint" json:"hint,omitempty"`
	Location *DiagnosticLocation `js:"location" json:"location,omitempty"`
	Severity int                 `js:"severity" json:"severity"`
}

type DiagnosticLocation struct {
	File     string `js:"file" json:"file"`
	LineText string `js:"lineText" json:"lineText"`
	Line     int    `js:"line" json:"line"`
	Column   int    `js:"column" json:"column"`
	Length   int    `js:"length" json:"length"`
}

// ErrorWithRange is an error that points at a range of the scanned buffer.
type ErrorWithRange struct {
	Code  DiagnosticCode
	Text  string
	Hint  string
	Range Range
}

func (e *ErrorWithRange) Error() string {
	return e.Text
}

func (e *ErrorWithRange) ToMessage(location *DiagnosticLocation) DiagnosticMessage {
	return DiagnosticMessage{
		Code:     int(e.Code),
		Text:     e.Error(),
		Hint:     e.Hint,
		Location: location,
	}
}
