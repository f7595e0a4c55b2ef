//go:build js && wasm

package wasm_utils

import (
	"runtime/debug"
	"strings"
	"syscall/js"

	"github.com/norunners/vert"
	tokenizer "github.com/withastro/htmltokenizer/internal"
	"github.com/withastro/htmltokenizer/internal/handler"
	"github.com/withastro/htmltokenizer/internal/loc"
	"github.com/withastro/htmltokenizer/internal/printer"
)

func JSString(j js.Value) string {
	if j.IsUndefined() || j.IsNull() {
		return ""
	}
	return j.String()
}

func JSBool(j js.Value) bool {
	if j.IsUndefined() || j.IsNull() {
		return false
	}
	return j.Truthy()
}

func JSInt(j js.Value) int {
	if j.Type() != js.TypeNumber {
		return 0
	}
	return j.Int()
}

type Token struct {
	Kind  string `js:"kind"`
	Start int    `js:"start"`
	End   int    `js:"end"`
}

type TokenizeResult struct {
	Tokens      []Token                 `js:"tokens"`
	Diagnostics []loc.DiagnosticMessage `js:"diagnostics"`
	Context     string                  `js:"context"`
}

func NewTokenizeResult(tokens []tokenizer.Token, h *handler.Handler, ctx tokenizer.Context, camel bool) *TokenizeResult {
	result := &TokenizeResult{
		Tokens:      make([]Token, len(tokens)),
		Diagnostics: h.Diagnostics(),
		Context:     ctx.String(),
	}
	for i, tok := range tokens {
		result.Tokens[i] = Token{
			Kind:  printer.KindName(tok.Type, camel),
			Start: tok.Loc.Start,
			End:   tok.Loc.End,
		}
	}
	return result
}

func (r *TokenizeResult) Value() js.Value {
	return vert.ValueOf(r).Value
}

type JSError struct {
	Message string `js:"message"`
	Stack   string `js:"stack"`
}

func (err *JSError) Value() js.Value {
	return vert.ValueOf(err).Value
}

func ErrorToJSError(err error) js.Value {
	stack := string(debug.Stack())
	message := strings.TrimSpace(err.Error())
	jsError := JSError{
		Message: message,
		Stack:   stack,
	}
	return jsError.Value()
}
