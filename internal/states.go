package tokenizer

// Each scan function handles one context. It returns false when nothing at
// the cursor matches, or when entering or leaving a context failed; the
// driver loop then escapes through a malformed token.

func (z *Tokenizer) scanHTML() bool {
	switch {
	case z.scan.isCommentStart():
		z.emit(CommentStartToken, len(commentStart))
		z.terminated = false
		return z.push(CommentContext)
	case z.scan.isDoctype():
		z.emit(TagStartToken, len(doctypeStart))
		return z.push(AttributesContext)
	case z.scan.isCDATAStart():
		z.emit(CDATAStartToken, len(cdataStart))
		z.terminated = false
		return z.push(CDATAContext)
	case z.scan.isChar('<'):
		z.emit(TagStartToken, 1)
		z.closingTag = z.scan.isChar('/')
		if z.closingTag {
			z.emit(SolidusToken, 1)
		}
		z.tagName = z.tagName[:0]
		return z.push(OpenTagContext)
	case z.scan.isChar('>'):
		z.emit(TagEndToken, 1)
		if z.closingTag {
			return true
		}
		if mode := contentMode(z.tagName); mode != NoContext {
			return z.push(mode)
		}
		return true
	}
	if n, ok := z.scan.isText(); ok {
		z.emit(TextToken, n)
		return true
	}
	return false
}

func (z *Tokenizer) scanOpenTag() bool {
	if n, ok := z.scan.isTagName(); ok {
		name := z.scan.buf[z.scan.cursor : z.scan.cursor+n]
		z.emit(TagNameToken, n)
		return z.appendTagName(name)
	}
	if z.scan.isChar('/') {
		z.emit(SolidusToken, 1)
		return z.push(AttributesContext)
	}
	if n, ok := z.scan.isWhitespace(); ok {
		z.emit(WhitespaceToken, n)
		return z.push(AttributesContext)
	}
	if z.scan.isChar('>') {
		// The ">" itself is emitted by HTMLContext.
		return z.pop()
	}
	return false
}

func (z *Tokenizer) scanAttributes() bool {
	if n, ok := z.scan.isWhitespace(); ok {
		z.emit(WhitespaceToken, n)
		return true
	}
	if z.scan.isChar('=') {
		z.emit(EqualToken, 1)
		z.foundAttribute = false
		return z.push(AttributeValueContext)
	}
	if z.scan.isChar('/') {
		z.emit(SolidusToken, 1)
		return true
	}
	if z.scan.isChar('>') {
		return z.pop()
	}
	if quote, ok := z.scan.isQuote(); ok {
		z.attributeQuote = quote
		z.emit(AttributeValueStartToken, 1)
		return z.push(AttributeStringContext)
	}
	if n, ok := z.scan.isAttributeName(); ok {
		z.emit(AttributeNameToken, n)
		return z.push(AttributeNameContext)
	}
	return false
}

func (z *Tokenizer) scanAttributeName() bool {
	if n, ok := z.scan.isAttributeName(); ok {
		z.emit(AttributeNameToken, n)
		return true
	}
	if _, ok := z.scan.isWhitespace(); ok || z.scan.isChar('/') || z.scan.isChar('>') || z.scan.isChar('=') {
		return z.pop()
	}
	return false
}

func (z *Tokenizer) scanAttributeValue() bool {
	// Only the single most recent token is consulted: a quoted value that
	// just closed ends the attribute value.
	if z.lastToken == AttributeValueEndToken {
		return z.pop()
	}
	if z.scan.isChar('/') || z.scan.isChar('>') {
		return z.pop()
	}
	if n, ok := z.scan.isWhitespace(); ok {
		z.emit(WhitespaceToken, n)
		if z.foundAttribute {
			return z.pop()
		}
		return true
	}
	if quote, ok := z.scan.isQuote(); ok {
		z.attributeQuote = quote
		z.emit(AttributeValueStartToken, 1)
		z.foundAttribute = true
		return z.push(AttributeStringContext)
	}
	if n, ok := z.scan.isUnquotedValue(); ok {
		z.emit(AttributeUnquotedValueToken, n)
		z.foundAttribute = true
		return true
	}
	return false
}

func (z *Tokenizer) scanAttributeString() bool {
	if z.scan.isChar(z.attributeQuote) {
		z.emit(AttributeValueEndToken, 1)
		return z.pop()
	}
	if n, ok := z.scan.isAttributeString(z.attributeQuote); ok {
		z.emit(TextToken, n)
		return true
	}
	return false
}

// scanComment and scanCDATA never leave their context: bytes after the
// terminator are read as more comment or CDATA text.
func (z *Tokenizer) scanComment() bool {
	if n, ok := z.scan.isCommentEnd(); ok {
		z.emit(TextToken, n)
		z.emit(CommentEndToken, len(commentEnd))
		if !z.dropped {
			z.terminated = true
		}
		return true
	}
	// The comment goes on past this buffer.
	z.emit(TextToken, z.scan.remaining())
	return true
}

func (z *Tokenizer) scanCDATA() bool {
	if n, ok := z.scan.isCDATAEnd(); ok {
		z.emit(TextToken, n)
		z.emit(CDATAEndToken, len(cdataEnd))
		if !z.dropped {
			z.terminated = true
		}
		return true
	}
	z.emit(TextToken, z.scan.remaining())
	return true
}

func (z *Tokenizer) scanRawText() bool {
	if length, closing, name, ok := z.scan.isTagStart(); ok {
		if closing && equalFoldASCII(z.scan.buf[name.Start:name.End], z.tagName) {
			// HTMLContext reads the end tag itself.
			return z.pop()
		}
		z.emit(TextToken, length)
		return true
	}
	if n, ok := z.scan.isText(); ok {
		z.emit(TextToken, n)
		return true
	}
	// A "<" that does not start a tag turns the rest of the buffer into
	// text.
	z.emit(TextToken, z.scan.remaining())
	return true
}

func (z *Tokenizer) scanPlaintext() bool {
	z.emit(TextToken, z.scan.remaining())
	return true
}
