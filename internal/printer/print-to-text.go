package printer

import (
	tokenizer "github.com/withastro/htmltokenizer/internal"
)

// PrintToText lists tokens one per line as `kind [start,end)`, followed by
// the quoted token bytes when Options.IncludeText is set.
func PrintToText(source []byte, tokens []tokenizer.Token, opts Options) PrintResult {
	p := newPrinter(source, opts)
	for _, tok := range tokens {
		if !p.keep(tok) {
			continue
		}
		p.printf("%s [%d,%d)", p.kindName(tok.Type), tok.Loc.Start, tok.Loc.End)
		if opts.IncludeText {
			p.printf(" %q", p.text(tok))
		}
		p.print("\n")
	}
	return p.result()
}
