package printer

import (
	tokenizer "github.com/withastro/htmltokenizer/internal"
)

// PrintToSource writes the bytes of the tokens back to back. Without a
// Match filter the output of a complete token stream equals the source.
func PrintToSource(source []byte, tokens []tokenizer.Token, opts Options) PrintResult {
	p := newPrinter(source, opts)
	for _, tok := range tokens {
		if p.keep(tok) {
			p.printBytes(p.text(tok))
		}
	}
	return p.result()
}
