package printer

import (
	"fmt"

	"github.com/dlclark/regexp2"
	tokenizer "github.com/withastro/htmltokenizer/internal"
)

// Options controls how a token stream is printed.
type Options struct {
	// CamelCase prints kind names as "tagStart" instead of "tag_start".
	CamelCase bool
	// IncludeText adds the bytes of each token to listings.
	IncludeText bool
	// Match keeps only the tokens whose bytes match. Tokens that cannot be
	// matched within the expression's timeout are dropped as well.
	Match *regexp2.Regexp
}

type PrintResult struct {
	Output []byte
}

type printer struct {
	source []byte
	opts   Options
	output []byte
}

func newPrinter(source []byte, opts Options) *printer {
	return &printer{source: source, opts: opts}
}

func (p *printer) print(text string) {
	p.output = append(p.output, text...)
}

func (p *printer) printf(format string, a ...interface{}) {
	p.output = fmt.Appendf(p.output, format, a...)
}

func (p *printer) printBytes(b []byte) {
	p.output = append(p.output, b...)
}

func (p *printer) kindName(tt tokenizer.TokenType) string {
	return KindName(tt, p.opts.CamelCase)
}

func (p *printer) text(tok tokenizer.Token) []byte {
	return tok.Bytes(p.source)
}

// keep reports whether tok passes the Match filter.
func (p *printer) keep(tok tokenizer.Token) bool {
	if p.opts.Match == nil {
		return true
	}
	ok, err := p.opts.Match.MatchString(string(p.text(tok)))
	return err == nil && ok
}

func (p *printer) result() PrintResult {
	return PrintResult{Output: p.output}
}
