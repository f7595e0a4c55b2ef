package tokenizer

import (
	"fmt"
	"iter"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/withastro/htmltokenizer/internal/handler"
	"github.com/withastro/htmltokenizer/internal/loc"
)

var (
	// ErrTagNameTooLong is returned when a tag name grows past
	// Options.MaxTagNameLength.
	ErrTagNameTooLong = errors.New("tag name too long")
	// ErrReentrant is returned when a token sink calls back into the
	// Tokenizer that is invoking it.
	ErrReentrant = errors.New("tokenizer re-entered from its own sink")
)

// Options configures a Tokenizer. The zero value is ready to use.
type Options struct {
	// MaxDepth is the capacity of the context stack. Values below 2 mean
	// DefaultMaxDepth.
	MaxDepth int
	// MaxTagNameLength caps the tracked tag name, in bytes. Zero means no
	// limit.
	MaxTagNameLength int
	// ContextTag tokenizes the buffer as the inner HTML of this element, so
	// the content of e.g. a "script" starts in script data mode.
	ContextTag string
	// Handler receives diagnostics for malformed input and scan errors.
	Handler *handler.Handler
	// Logger traces context changes when set.
	Logger logrus.FieldLogger
}

// A Tokenizer splits HTML into a stream of lexical Tokens. The context
// stack, the tracked tag name and the attribute flags survive from one
// Tokenize call to the next, so one document may be fed in consecutive
// buffers. A Tokenizer is not safe for concurrent use.
type Tokenizer struct {
	opts  Options
	stack contextStack
	scan  scanner

	// tagName is the name of the most recently opened tag. It selects the
	// content mode after the tag and closes raw text content.
	tagName []byte
	// closingTag is whether the tag being read started with "</".
	closingTag bool
	// attributeQuote is the quote that opened the current quoted value.
	attributeQuote byte
	// foundAttribute is whether a value was read in the current
	// AttributeValueContext.
	foundAttribute bool
	// lastToken is the type of the most recently emitted token.
	lastToken TokenType
	// terminated is whether the current comment or CDATA section has seen
	// its terminator.
	terminated bool
	// calls counts Tokenize runs. The context stack records the run that
	// entered each context.
	calls int

	yield   func(Token) bool
	stopped bool
	// dropped is set when a token is produced after the consumer stopped.
	// Context changes that follow it are not applied.
	dropped bool
	busy    bool
	scanErr error
	err     error
}

// NewTokenizer returns a Tokenizer in normal content.
func NewTokenizer() *Tokenizer {
	return NewTokenizerWithOptions(Options{})
}

// NewTokenizerFragment returns a Tokenizer for the inner HTML of an element
// whose tag is contextTag, such as "div" or "textarea".
//
// For example, "a<b" tokenizes as text, tag_start, tag_name for a "div"
// context but as a single text token for a "script" context.
func NewTokenizerFragment(contextTag string) *Tokenizer {
	return NewTokenizerWithOptions(Options{ContextTag: contextTag})
}

func NewTokenizerWithOptions(opts Options) *Tokenizer {
	z := &Tokenizer{
		opts:  opts,
		stack: newContextStack(opts.MaxDepth),
	}
	z.seed()
	return z
}

// Reset returns the Tokenizer to the state it had when it was created.
func (z *Tokenizer) Reset() {
	z.stack.reset()
	z.seed()
}

func (z *Tokenizer) seed() {
	z.tagName = z.tagName[:0]
	z.closingTag = false
	z.attributeQuote = 0
	z.foundAttribute = false
	z.lastToken = TextToken
	z.terminated = false
	z.err = nil
	if z.opts.ContextTag == "" {
		return
	}
	z.tagName = append(z.tagName, z.opts.ContextTag...)
	if mode := contentMode(z.tagName); mode != NoContext {
		// A fresh stack always has room above the root.
		_ = z.stack.push(mode, 0, z.calls)
	}
}

// Context returns the active context, the top of the context stack.
func (z *Tokenizer) Context() Context {
	return z.stack.current()
}

// Depth returns the number of contexts on the stack, at least 1.
func (z *Tokenizer) Depth() int {
	return z.stack.depth()
}

// TagName returns a copy of the tracked tag name.
func (z *Tokenizer) TagName() []byte {
	return append([]byte(nil), z.tagName...)
}

// Err returns the error of the most recent Tokenize, Collect or All call.
func (z *Tokenizer) Err() error {
	return z.err
}

// Tokenize scans buf from the start and calls emit once per token, in order.
// Malformed input is not an error: the unscannable rest of buf is emitted as
// a single MalformedToken. The returned error reports a context stack
// overflow or underflow, a tag name over the configured limit, or a
// re-entrant call. emit must not call back into z.
func (z *Tokenizer) Tokenize(buf []byte, emit func(Token)) error {
	err := z.run(buf, func(t Token) bool {
		emit(t)
		return true
	})
	z.err = err
	return err
}

// All returns an iterator over the tokens of buf. Stopping the iteration
// early stops the scan right after the last delivered token. The context
// change that token triggers is applied; the cursor does not move past it and
// nothing after it is read. Scan errors are reported by Err once the
// iteration is over.
func (z *Tokenizer) All(buf []byte) iter.Seq[Token] {
	return func(yield func(Token) bool) {
		z.err = z.run(buf, yield)
	}
}

// Collect scans buf and returns its tokens as a slice.
func (z *Tokenizer) Collect(buf []byte) ([]Token, error) {
	tokens := make([]Token, 0)
	err := z.Tokenize(buf, func(t Token) {
		tokens = append(tokens, t)
	})
	return tokens, err
}

// Finish marks the end of the document fed to z. It returns the active
// context, which is HTMLContext when the document ended in normal content.
// When a construct is still open a warning naming it is recorded with the
// configured handler. A comment or CDATA section whose terminator was seen
// is not reported. The warning points at the offset where the construct was
// entered when that happened during the most recent Tokenize call, and at
// offset 0 of that call's buffer otherwise. Finish does not reset z.
func (z *Tokenizer) Finish() Context {
	ctx := z.stack.current()
	var code loc.DiagnosticCode
	var what string
	switch {
	case (ctx == CommentContext || ctx == CDATAContext) && z.terminated:
		return ctx
	case ctx == CommentContext:
		code, what = loc.WARNING_UNTERMINATED_COMMENT, "comment"
	case ctx == CDATAContext:
		code, what = loc.WARNING_UNTERMINATED_CDATA, "CDATA section"
	case ctx == RCDATAContext || ctx == RawTextContext || ctx == ScriptDataContext:
		code, what = loc.WARNING_UNTERMINATED_RAW_TEXT, fmt.Sprintf("<%s> element", z.tagName)
	case ctx == OpenTagContext || ctx == AttributesContext || ctx == AttributeNameContext:
		code, what = loc.WARNING_UNTERMINATED_TAG, "tag"
	case ctx == AttributeValueContext || ctx == AttributeStringContext:
		code, what = loc.WARNING_UNTERMINATED_ATTRIBUTE, "attribute value"
	default:
		return ctx
	}
	start := 0
	if z.stack.call() == z.calls {
		start = z.stack.start()
	}
	if z.opts.Handler != nil {
		z.opts.Handler.AppendWarning(&loc.ErrorWithRange{
			Code:  code,
			Text:  "Unterminated " + what,
			Range: loc.Range{Loc: loc.Loc{Start: start}, Len: 0},
		})
	}
	return ctx
}

// Tokenize scans buf with a new Tokenizer.
func Tokenize(buf []byte) ([]Token, error) {
	return NewTokenizer().Collect(buf)
}

func (z *Tokenizer) run(buf []byte, yield func(Token) bool) error {
	if z.busy {
		return ErrReentrant
	}
	z.busy = true
	z.calls++
	z.scan = scanner{buf: buf}
	z.yield = yield
	z.stopped = false
	z.dropped = false
	z.scanErr = nil
	defer func() {
		z.busy = false
		z.scan = scanner{}
		z.yield = nil
	}()

	z.scanAll()
	return z.scanErr
}

// emit delivers a token of the given type covering the next length bytes
// and moves the cursor past them. Empty tokens are never delivered. Once the
// consumer has stopped the scan the token is dropped and the cursor stays.
func (z *Tokenizer) emit(tt TokenType, length int) {
	if length <= 0 {
		return
	}
	if z.stopped {
		z.dropped = true
		return
	}
	start := z.scan.cursor
	z.scan.cursor += length
	z.lastToken = tt
	if !z.yield(Token{Type: tt, Loc: loc.Span{Start: start, End: start + length}}) {
		z.stopped = true
	}
}

func (z *Tokenizer) push(c Context) bool {
	if z.dropped {
		return true
	}
	if err := z.stack.push(c, z.scan.cursor, z.calls); err != nil {
		z.fail(loc.ERROR_CONTEXT_OVERFLOW, errors.Wrapf(err, "offset %d", z.scan.cursor))
		return false
	}
	if z.opts.Logger != nil {
		z.opts.Logger.WithFields(logrus.Fields{
			"context": c.String(),
			"offset":  z.scan.cursor,
			"depth":   z.stack.depth(),
		}).Trace("push")
	}
	return true
}

func (z *Tokenizer) pop() bool {
	if z.dropped {
		return true
	}
	left := z.stack.current()
	if err := z.stack.pop(); err != nil {
		z.fail(loc.ERROR_CONTEXT_UNDERFLOW, errors.Wrapf(err, "offset %d", z.scan.cursor))
		return false
	}
	if z.opts.Logger != nil {
		z.opts.Logger.WithFields(logrus.Fields{
			"context": left.String(),
			"offset":  z.scan.cursor,
			"depth":   z.stack.depth(),
		}).Trace("pop")
	}
	return true
}

// fail records a scan error. The driver loop then escapes through a
// malformed token.
func (z *Tokenizer) fail(code loc.DiagnosticCode, err error) {
	if z.scanErr == nil {
		z.scanErr = err
	}
	if z.opts.Handler != nil {
		z.opts.Handler.AppendError(&loc.ErrorWithRange{
			Code:  code,
			Text:  err.Error(),
			Range: loc.Range{Loc: loc.Loc{Start: z.scan.cursor}, Len: 1},
		})
	}
	if z.opts.Logger != nil {
		z.opts.Logger.WithField("offset", z.scan.cursor).Debug(err.Error())
	}
}

// appendTagName adds the name span to the tracked tag name.
func (z *Tokenizer) appendTagName(name []byte) bool {
	if limit := z.opts.MaxTagNameLength; limit > 0 && len(z.tagName)+len(name) > limit {
		z.fail(loc.ERROR_TAG_NAME_TOO_LONG, errors.Wrapf(ErrTagNameTooLong, "%d bytes exceed the limit of %d", len(z.tagName)+len(name), limit))
		return false
	}
	z.tagName = append(z.tagName, name...)
	return true
}

func (z *Tokenizer) scanOnce() bool {
	switch z.stack.current() {
	case HTMLContext:
		return z.scanHTML()
	case OpenTagContext:
		return z.scanOpenTag()
	case AttributesContext:
		return z.scanAttributes()
	case AttributeNameContext:
		return z.scanAttributeName()
	case AttributeValueContext:
		return z.scanAttributeValue()
	case AttributeStringContext:
		return z.scanAttributeString()
	case CommentContext:
		return z.scanComment()
	case CDATAContext:
		return z.scanCDATA()
	case RCDATAContext, RawTextContext, ScriptDataContext:
		// Character references are not decoded, so the three raw text
		// modes scan alike.
		return z.scanRawText()
	case PlaintextContext:
		return z.scanPlaintext()
	}
	return false
}

func (z *Tokenizer) scanAll() {
	for !z.scan.eos() && !z.stopped && z.scanOnce() {
	}
	if z.stopped || z.scan.eos() {
		return
	}
	start := z.scan.cursor
	ctx := z.stack.current()
	z.emit(MalformedToken, z.scan.remaining())
	if z.opts.Handler != nil {
		z.opts.Handler.AppendWarning(&loc.ErrorWithRange{
			Code:  loc.WARNING_MALFORMED_INPUT,
			Text:  fmt.Sprintf("Unexpected character %q in %s", z.scan.buf[start], ctx),
			Range: loc.Range{Loc: loc.Loc{Start: start}, Len: len(z.scan.buf) - start},
		})
	}
	if z.opts.Logger != nil {
		z.opts.Logger.WithFields(logrus.Fields{
			"context": ctx.String(),
			"offset":  start,
		}).Debug("malformed input")
	}
}
