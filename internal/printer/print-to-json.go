package printer

import (
	"github.com/go-json-experiment/json"
	"github.com/go-json-experiment/json/jsontext"
	tokenizer "github.com/withastro/htmltokenizer/internal"
	"github.com/withastro/htmltokenizer/internal/handler"
	"github.com/withastro/htmltokenizer/internal/loc"
)

type TokenNode struct {
	Kind  string `json:"kind"`
	Start int    `json:"start"`
	End   int    `json:"end"`
	Text  string `json:"text,omitempty"`
}

type TokenDocument struct {
	Tokens      []TokenNode             `json:"tokens"`
	Diagnostics []loc.DiagnosticMessage `json:"diagnostics,omitempty"`
}

// ToDocument converts a token stream into its JSON document form. The
// diagnostics of h are attached when h is not nil.
func ToDocument(source []byte, tokens []tokenizer.Token, h *handler.Handler, opts Options) TokenDocument {
	p := newPrinter(source, opts)
	doc := TokenDocument{Tokens: make([]TokenNode, 0, len(tokens))}
	for _, tok := range tokens {
		if !p.keep(tok) {
			continue
		}
		node := TokenNode{
			Kind:  p.kindName(tok.Type),
			Start: tok.Loc.Start,
			End:   tok.Loc.End,
		}
		if opts.IncludeText {
			node.Text = string(p.text(tok))
		}
		doc.Tokens = append(doc.Tokens, node)
	}
	if h != nil {
		doc.Diagnostics = h.Diagnostics()
	}
	return doc
}

// PrintToJSON writes the token document as indented JSON.
func PrintToJSON(source []byte, tokens []tokenizer.Token, h *handler.Handler, opts Options) (PrintResult, error) {
	out, err := json.Marshal(ToDocument(source, tokens, h, opts), jsontext.WithIndent("  "))
	if err != nil {
		return PrintResult{}, err
	}
	return PrintResult{Output: out}, nil
}
