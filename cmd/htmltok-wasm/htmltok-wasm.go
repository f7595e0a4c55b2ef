//go:build js && wasm

package main

import (
	"fmt"
	"syscall/js"

	"github.com/pkg/errors"
	tokenizer "github.com/withastro/htmltokenizer/internal"
	"github.com/withastro/htmltokenizer/internal/handler"
	wasm_utils "github.com/withastro/htmltokenizer/internal_wasm/utils"
)

func main() {
	js.Global().Set("__htmltok_tokenize", js.FuncOf(Tokenize))
	<-make(chan bool)
}

type tokenizeOptions struct {
	filename string
	fragment string
	maxDepth int
	camel    bool
}

func makeTokenizeOptions(options js.Value) tokenizeOptions {
	if options.Type() != js.TypeObject {
		return tokenizeOptions{}
	}
	return tokenizeOptions{
		filename: wasm_utils.JSString(options.Get("filename")),
		fragment: wasm_utils.JSString(options.Get("fragment")),
		maxDepth: wasm_utils.JSInt(options.Get("maxDepth")),
		camel:    wasm_utils.JSBool(options.Get("camelCase")),
	}
}

// Tokenize is exposed as __htmltok_tokenize(source, options?). It returns
// {tokens, diagnostics, context}, or {message, stack} when tokenizing fails.
func Tokenize(this js.Value, args []js.Value) (value interface{}) {
	defer func() {
		if r := recover(); r != nil {
			value = wasm_utils.ErrorToJSError(fmt.Errorf("internal error: %v", r))
		}
	}()
	if len(args) == 0 {
		return wasm_utils.ErrorToJSError(errors.New("missing source argument"))
	}
	source := wasm_utils.JSString(args[0])
	var opts tokenizeOptions
	if len(args) > 1 {
		opts = makeTokenizeOptions(args[1])
	}

	h := handler.NewHandler(source, opts.filename)
	z := tokenizer.NewTokenizerWithOptions(tokenizer.Options{
		MaxDepth:   opts.maxDepth,
		ContextTag: opts.fragment,
		Handler:    h,
	})
	// Scan errors are also recorded as diagnostics by h.
	tokens, _ := z.Collect([]byte(source))
	ctx := z.Finish()

	return wasm_utils.NewTokenizeResult(tokens, h, ctx, opts.camel).Value()
}
