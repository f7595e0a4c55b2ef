package tokenizer

import (
	"fmt"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	logtest "github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/withastro/htmltokenizer/internal/handler"
	"github.com/withastro/htmltokenizer/internal/loc"
	"github.com/withastro/htmltokenizer/internal/test_utils"
)

// describe renders tokens as `kind "bytes"` lines.
func describe(buf []byte, tokens []Token) []string {
	out := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		out = append(out, fmt.Sprintf("%s %q", tok.Type, tok.Bytes(buf)))
	}
	return out
}

func TestTokenizerSpans(t *testing.T) {
	input := []byte(`<div class="a">`)
	tokens, err := Tokenize(input)
	require.NoError(t, err)

	want := []Token{
		{TagStartToken, loc.Span{Start: 0, End: 1}},
		{TagNameToken, loc.Span{Start: 1, End: 4}},
		{WhitespaceToken, loc.Span{Start: 4, End: 5}},
		{AttributeNameToken, loc.Span{Start: 5, End: 10}},
		{EqualToken, loc.Span{Start: 10, End: 11}},
		{AttributeValueStartToken, loc.Span{Start: 11, End: 12}},
		{TextToken, loc.Span{Start: 12, End: 13}},
		{AttributeValueEndToken, loc.Span{Start: 13, End: 14}},
		{TagEndToken, loc.Span{Start: 14, End: 15}},
	}
	if diff := test_utils.ANSIDiff(want, tokens); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizer(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			"text",
			`hello world`,
			[]string{`text "hello world"`},
		},
		{
			"end tag",
			`</div>`,
			[]string{`tag_start "<"`, `solidus "/"`, `tag_name "div"`, `tag_end ">"`},
		},
		{
			"self-closing tag",
			`<br/>`,
			[]string{`tag_start "<"`, `tag_name "br"`, `solidus "/"`, `tag_end ">"`},
		},
		{
			"namespaced tag",
			`<svg:rect/>`,
			[]string{`tag_start "<"`, `tag_name "svg:rect"`, `solidus "/"`, `tag_end ">"`},
		},
		{
			"empty tag",
			`<>`,
			[]string{`tag_start "<"`, `tag_end ">"`},
		},
		{
			"space after tag open",
			`< a>`,
			[]string{`tag_start "<"`, `whitespace " "`, `attribute_name "a"`, `tag_end ">"`},
		},
		{
			"stray close angle",
			`<a>>x>y`,
			[]string{`tag_start "<"`, `tag_name "a"`, `tag_end ">"`, `tag_end ">"`, `text "x>y"`},
		},
		{
			"doctype",
			`<!DOCTYPE html>`,
			[]string{`tag_start "<!DOCTYPE"`, `whitespace " "`, `attribute_name "html"`, `tag_end ">"`},
		},
		{
			"doctype mixed case",
			`<!DocType html>`,
			[]string{`tag_start "<!DocType"`, `whitespace " "`, `attribute_name "html"`, `tag_end ">"`},
		},
		{
			"unquoted attribute",
			`<a href=foo>`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "href"`,
				`equal "="`, `attribute_unquoted_value "foo"`, `tag_end ">"`,
			},
		},
		{
			"unquoted attributes separated by whitespace",
			`<a b=1 c=2>`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`,
				`attribute_name "b"`, `equal "="`, `attribute_unquoted_value "1"`, `whitespace " "`,
				`attribute_name "c"`, `equal "="`, `attribute_unquoted_value "2"`, `tag_end ">"`,
			},
		},
		{
			"single quoted attribute",
			`<a title='x y' b>`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "title"`, `equal "="`,
				`attribute_value_start "'"`, `text "x y"`, `attribute_value_end "'"`,
				`whitespace " "`, `attribute_name "b"`, `tag_end ">"`,
			},
		},
		{
			"spaces around equal",
			`<a b = "1">`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`,
				`whitespace " "`, `equal "="`, `whitespace " "`,
				`attribute_value_start "\""`, `text "1"`, `attribute_value_end "\""`, `tag_end ">"`,
			},
		},
		{
			"empty quoted attribute",
			`<a b="">`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`, `equal "="`,
				`attribute_value_start "\""`, `attribute_value_end "\""`, `tag_end ">"`,
			},
		},
		{
			"other quote inside quoted attribute",
			`<a b="it's">`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`, `equal "="`,
				`attribute_value_start "\""`, `text "it's"`, `attribute_value_end "\""`, `tag_end ">"`,
			},
		},
		{
			"data attribute name",
			`<a data-x_y.z:w>`,
			[]string{`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "data-x_y.z:w"`, `tag_end ">"`},
		},
		{
			"comment",
			`<!-- a --><p>`,
			[]string{
				`comment_start "<!--"`, `text " a "`, `comment_end "-->"`, `text "<p>"`,
			},
		},
		{
			"empty comment",
			`<!---->x`,
			[]string{`comment_start "<!--"`, `comment_end "-->"`, `text "x"`},
		},
		{
			"comment too short to terminate",
			`<!-->`,
			[]string{`comment_start "<!--"`, `text ">"`},
		},
		{
			"unterminated comment",
			`<!-- abc`,
			[]string{`comment_start "<!--"`, `text " abc"`},
		},
		{
			"markup inside comment",
			`<!--<b>-->`,
			[]string{`comment_start "<!--"`, `text "<b>"`, `comment_end "-->"`},
		},
		{
			"cdata",
			`<![CDATA[x<y]]>z`,
			[]string{`cdata_start "<![CDATA["`, `text "x<y"`, `cdata_end "]]>"`, `text "z"`},
		},
		{
			"cdata lower case",
			`<![cdata[x]]>`,
			[]string{`cdata_start "<![cdata["`, `text "x"`, `cdata_end "]]>"`},
		},
		{
			"unterminated cdata",
			`<![CDATA[x]]`,
			[]string{`cdata_start "<![CDATA["`, `text "x]]"`},
		},
		{
			"script",
			`<script>var x="<b>";</script>`,
			[]string{
				`tag_start "<"`, `tag_name "script"`, `tag_end ">"`,
				`text "var x=\""`, `text "<b"`, `text ">\";"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "script"`, `tag_end ">"`,
			},
		},
		{
			"script with less-than",
			`<script>a < b</script>`,
			[]string{
				`tag_start "<"`, `tag_name "script"`, `tag_end ">"`,
				`text "a "`, `text "< b</script>"`,
			},
		},
		{
			"script ending in less-than",
			`<script>x<`,
			[]string{`tag_start "<"`, `tag_name "script"`, `tag_end ">"`, `text "x"`, `text "<"`},
		},
		{
			"script upper case",
			`<SCRIPT><b></script>`,
			[]string{
				`tag_start "<"`, `tag_name "SCRIPT"`, `tag_end ">"`, `text "<b"`, `text ">"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "script"`, `tag_end ">"`,
			},
		},
		{
			"title",
			`<title>a<b>c</TITLE>d`,
			[]string{
				`tag_start "<"`, `tag_name "title"`, `tag_end ">"`,
				`text "a"`, `text "<b"`, `text ">c"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "TITLE"`, `tag_end ">"`, `text "d"`,
			},
		},
		{
			"style with similar end tag",
			`<style></styles></style>`,
			[]string{
				`tag_start "<"`, `tag_name "style"`, `tag_end ">"`, `text "</styles"`, `text ">"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "style"`, `tag_end ">"`,
			},
		},
		{
			"textarea with attributes",
			`<textarea rows=2><p></textarea>`,
			[]string{
				`tag_start "<"`, `tag_name "textarea"`, `whitespace " "`, `attribute_name "rows"`,
				`equal "="`, `attribute_unquoted_value "2"`, `tag_end ">"`, `text "<p"`, `text ">"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "textarea"`, `tag_end ">"`,
			},
		},
		{
			"self-closed raw element",
			`<iframe/><b>`,
			[]string{
				`tag_start "<"`, `tag_name "iframe"`, `solidus "/"`, `tag_end ">"`, `text "<b"`, `text ">"`,
			},
		},
		{
			"plaintext",
			`<plaintext></plaintext><b>`,
			[]string{`tag_start "<"`, `tag_name "plaintext"`, `tag_end ">"`, `text "</plaintext><b>"`},
		},
		{
			"unterminated attribute value",
			`<a b="x`,
			[]string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`, `equal "="`,
				`attribute_value_start "\""`, `text "x"`,
			},
		},
		{
			"malformed attribute",
			`<div $>`,
			[]string{`tag_start "<"`, `tag_name "div"`, `whitespace " "`, `malformed "$>"`},
		},
		{
			"malformed attribute name",
			`<a b"c">text`,
			[]string{`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`, `malformed "\"c\">text"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input)
			tokens, err := Tokenize(input)
			require.NoError(t, err)
			if diff := test_utils.ANSIDiff(tt.want, describe(input, tokens)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

var coverageCorpus = []string{
	``,
	`plain`,
	`<html><head><title>T</title></head><body class=main>hi</body></html>`,
	`<!DOCTYPE html><p a='1' b="2" c=3 d>x</p>`,
	`<div $>`,
	`<a b"c">`,
	`<!-- x`,
	`<![CDATA[ ]]`,
	`<script>if (a<b && c>d) {}</script><style>p>a{}</style>`,
	`<textarea></textare></textarea>`,
	`<plaintext>everything <else>`,
	`<<<>>>`,
	`</>`,
	`<a b= = c>`,
	"<a\tb\r\nc\n=\n'd'>",
	`<img src="x" / >`,
	`<p>caf` + "é" + `</p>`,
}

func TestTokenizerCoverage(t *testing.T) {
	for _, input := range coverageCorpus {
		t.Run(test_utils.RedactTestName(input), func(t *testing.T) {
			buf := []byte(input)
			tokens, err := Tokenize(buf)
			require.NoError(t, err)

			var b strings.Builder
			offset := 0
			for i, tok := range tokens {
				assert.Equal(t, offset, tok.Loc.Start, "token %d starts after a gap or overlap", i)
				assert.Greater(t, tok.Len(), 0, "token %d is empty", i)
				if tok.Type == MalformedToken {
					assert.Equal(t, len(tokens)-1, i, "malformed token is not last")
					assert.Equal(t, len(buf), tok.Loc.End, "malformed token does not reach the end")
				}
				b.Write(tok.Bytes(buf))
				offset = tok.Loc.End
			}
			assert.Equal(t, input, b.String())
		})
	}
}

func TestTokenizerDeterminism(t *testing.T) {
	for _, input := range coverageCorpus {
		first, err := NewTokenizer().Collect([]byte(input))
		require.NoError(t, err)
		second, err := NewTokenizer().Collect([]byte(input))
		require.NoError(t, err)
		assert.Equal(t, first, second, input)
	}
}

func TestTokenizerChunks(t *testing.T) {
	tests := []struct {
		name    string
		chunks  []string
		want    []string
		context Context
	}{
		{
			name:   "comment spanning calls",
			chunks: []string{`<!-- a`, ` b -->c`},
			want: []string{
				`comment_start "<!--"`, `text " a"`,
				`text " b "`, `comment_end "-->"`, `text "c"`,
			},
			context: CommentContext,
		},
		{
			name:   "tag name spanning calls",
			chunks: []string{`<scr`, `ipt>x</script>`},
			want: []string{
				`tag_start "<"`, `tag_name "scr"`,
				`tag_name "ipt"`, `tag_end ">"`, `text "x"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "script"`, `tag_end ">"`,
			},
			context: HTMLContext,
		},
		{
			name:   "attribute value spanning calls",
			chunks: []string{`<a b="x`, `y">`},
			want: []string{
				`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `attribute_name "b"`, `equal "="`,
				`attribute_value_start "\""`, `text "x"`,
				`text "y"`, `attribute_value_end "\""`, `tag_end ">"`,
			},
			context: HTMLContext,
		},
		{
			name:   "script left open",
			chunks: []string{`<script>`, `a</b>`},
			want: []string{
				`tag_start "<"`, `tag_name "script"`, `tag_end ">"`,
				`text "a"`, `text "</b"`, `text ">"`,
			},
			context: ScriptDataContext,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			z := NewTokenizer()
			got := make([]string, 0)
			for _, chunk := range tt.chunks {
				buf := []byte(chunk)
				tokens, err := z.Collect(buf)
				require.NoError(t, err)
				got = append(got, describe(buf, tokens)...)
			}
			if diff := test_utils.ANSIDiff(tt.want, got); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.context, z.Context())
		})
	}
}

func TestTokenizerState(t *testing.T) {
	z := NewTokenizer()
	assert.Equal(t, HTMLContext, z.Context())
	assert.Equal(t, 1, z.Depth())

	_, err := z.Collect([]byte(`<a b="`))
	require.NoError(t, err)
	assert.Equal(t, AttributeStringContext, z.Context())
	assert.Equal(t, 5, z.Depth())
	assert.Equal(t, []byte("a"), z.TagName())

	z.Reset()
	assert.Equal(t, HTMLContext, z.Context())
	assert.Equal(t, 1, z.Depth())
	assert.Empty(t, z.TagName())
}

func TestTokenizerFragment(t *testing.T) {
	tests := []struct {
		name       string
		contextTag string
		input      string
		want       []string
	}{
		{
			"script",
			"script",
			`a<b></script>x`,
			[]string{
				`text "a"`, `text "<b"`, `text ">"`,
				`tag_start "<"`, `solidus "/"`, `tag_name "script"`, `tag_end ">"`, `text "x"`,
			},
		},
		{
			"textarea upper case",
			"TEXTAREA",
			`<p></textarea>`,
			[]string{`text "<p"`, `text ">"`, `tag_start "<"`, `solidus "/"`, `tag_name "textarea"`, `tag_end ">"`},
		},
		{
			"div",
			"div",
			`a<b`,
			[]string{`text "a"`, `tag_start "<"`, `tag_name "b"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input)
			tokens, err := NewTokenizerFragment(tt.contextTag).Collect(input)
			require.NoError(t, err)
			if diff := test_utils.ANSIDiff(tt.want, describe(input, tokens)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}

	z := NewTokenizerFragment("style")
	assert.Equal(t, RawTextContext, z.Context())
	z.Reset()
	assert.Equal(t, RawTextContext, z.Context())
	assert.Equal(t, []byte("style"), z.TagName())
}

func TestTokenizerErrors(t *testing.T) {
	tests := []struct {
		name  string
		opts  Options
		input string
		want  []string
		err   error
	}{
		{
			name:  "stack overflow in open tag",
			opts:  Options{MaxDepth: 2},
			input: `<a b>`,
			want:  []string{`tag_start "<"`, `tag_name "a"`, `whitespace " "`, `malformed "b>"`},
			err:   ErrContextOverflow,
		},
		{
			name:  "depth one uses the default",
			opts:  Options{MaxDepth: 1},
			input: `x<a b>`,
			want: []string{
				`text "x"`, `tag_start "<"`, `tag_name "a"`, `whitespace " "`,
				`attribute_name "b"`, `tag_end ">"`,
			},
		},
		{
			name:  "tag name too long",
			opts:  Options{MaxTagNameLength: 3},
			input: `<abcd>`,
			want:  []string{`tag_start "<"`, `tag_name "abcd"`, `malformed ">"`},
			err:   ErrTagNameTooLong,
		},
		{
			name:  "tag name within limit",
			opts:  Options{MaxTagNameLength: 4},
			input: `<abcd>`,
			want:  []string{`tag_start "<"`, `tag_name "abcd"`, `tag_end ">"`},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input)
			z := NewTokenizerWithOptions(tt.opts)
			tokens, err := z.Collect(input)
			if tt.err == nil {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, tt.err)
				assert.ErrorIs(t, z.Err(), tt.err)
			}
			if diff := test_utils.ANSIDiff(tt.want, describe(input, tokens)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestContextStack(t *testing.T) {
	s := newContextStack(3)
	assert.Equal(t, HTMLContext, s.current())
	require.ErrorIs(t, s.pop(), ErrContextUnderflow)

	require.NoError(t, s.push(OpenTagContext, 1, 1))
	require.NoError(t, s.push(AttributesContext, 2, 4))
	require.ErrorIs(t, s.push(AttributeNameContext, 3, 4), ErrContextOverflow)
	assert.Equal(t, AttributesContext, s.current())
	assert.Equal(t, 2, s.start())
	assert.Equal(t, 4, s.call())
	assert.Equal(t, 3, s.depth())

	require.NoError(t, s.pop())
	assert.Equal(t, 1, s.call())
	require.NoError(t, s.pop())
	assert.Equal(t, HTMLContext, s.current())
	assert.Equal(t, 1, s.depth())

	for _, capacity := range []int{-1, 0, 1} {
		assert.Len(t, newContextStack(capacity).slots, DefaultMaxDepth)
	}
	assert.Len(t, newContextStack(2).slots, 2)
}

func TestTokenizerMinimumDepth(t *testing.T) {
	z := NewTokenizerWithOptions(Options{MaxDepth: 1, ContextTag: "script"})
	assert.Equal(t, ScriptDataContext, z.Context())
	assert.Equal(t, 2, z.Depth())

	input := []byte(`a</script>`)
	tokens, err := z.Collect(input)
	require.NoError(t, err)
	assert.Equal(t, []string{
		`text "a"`, `tag_start "<"`, `solidus "/"`, `tag_name "script"`, `tag_end ">"`,
	}, describe(input, tokens))
	assert.Equal(t, HTMLContext, z.Context())
}

func TestTokenizerTerminatorKeepsContext(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []string
		context Context
	}{
		{
			"comment",
			`<!--a--><p>b</p>`,
			[]string{`comment_start "<!--"`, `text "a"`, `comment_end "-->"`, `text "<p>b</p>"`},
			CommentContext,
		},
		{
			"second terminator",
			`<!--a-->b-->c`,
			[]string{
				`comment_start "<!--"`, `text "a"`, `comment_end "-->"`,
				`text "b"`, `comment_end "-->"`, `text "c"`,
			},
			CommentContext,
		},
		{
			"cdata",
			`<![CDATA[a]]><p>`,
			[]string{`cdata_start "<![CDATA["`, `text "a"`, `cdata_end "]]>"`, `text "<p>"`},
			CDATAContext,
		},
		{
			"lone less-than in script",
			`<script>a < b</script>c`,
			[]string{
				`tag_start "<"`, `tag_name "script"`, `tag_end ">"`,
				`text "a "`, `text "< b</script>c"`,
			},
			ScriptDataContext,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input)
			z := NewTokenizer()
			tokens, err := z.Collect(input)
			require.NoError(t, err)
			if diff := test_utils.ANSIDiff(tt.want, describe(input, tokens)); diff != "" {
				t.Errorf("mismatch (-want +got):\n%s", diff)
			}
			assert.Equal(t, tt.context, z.Context())
		})
	}
}

func TestTokenizerReentrant(t *testing.T) {
	z := NewTokenizer()
	var inner error
	tokens := 0
	err := z.Tokenize([]byte(`<a>`), func(Token) {
		tokens++
		if inner == nil {
			inner = z.Tokenize([]byte(`x`), func(Token) {})
		}
	})
	require.NoError(t, err)
	assert.ErrorIs(t, inner, ErrReentrant)
	assert.Equal(t, 3, tokens)
	assert.NoError(t, z.Err())
}

func TestTokenizerAllStopsEarly(t *testing.T) {
	input := []byte(`<a b="c">d`)
	z := NewTokenizer()
	got := make([]Token, 0)
	for tok := range z.All(input) {
		got = append(got, tok)
		if len(got) == 2 {
			break
		}
	}
	require.NoError(t, z.Err())
	assert.Equal(t, []string{`tag_start "<"`, `tag_name "a"`}, describe(input, got))

	all := make([]Token, 0)
	for tok := range NewTokenizer().All(input) {
		all = append(all, tok)
	}
	assert.Len(t, all, 10)
}

func TestTokenizerAllStopKeepsState(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		after   int
		context Context
		depth   int
	}{
		{"at whitespace", `<a b>`, 3, AttributesContext, 3},
		{"at comment start", `<!--x-->`, 1, CommentContext, 2},
		{"at tag end", `<a>b`, 3, HTMLContext, 1},
		{"at raw text start tag", `<script>x`, 3, ScriptDataContext, 2},
		{"before solidus", `</a>`, 1, HTMLContext, 1},
		{"before attribute value end", `<a b="c">`, 7, AttributeStringContext, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := []byte(tt.input)
			z := NewTokenizer()
			got := make([]Token, 0)
			for tok := range z.All(input) {
				got = append(got, tok)
				if len(got) == tt.after {
					break
				}
			}
			require.NoError(t, z.Err())
			require.Len(t, got, tt.after)
			assert.Equal(t, tt.context, z.Context())
			assert.Equal(t, tt.depth, z.Depth())
		})
	}
}

func TestTokenizerAllStopInComment(t *testing.T) {
	input := []byte(`<!--x-->`)
	h := handler.NewHandler(string(input), "")
	z := NewTokenizerWithOptions(Options{Handler: h})
	got := make([]Token, 0)
	for tok := range z.All(input) {
		got = append(got, tok)
		if tok.Type == TextToken {
			break
		}
	}
	require.NoError(t, z.Err())
	assert.Equal(t, []string{`comment_start "<!--"`, `text "x"`}, describe(input, got))
	assert.Equal(t, CommentContext, z.Finish())
	warnings := h.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, int(loc.WARNING_UNTERMINATED_COMMENT), warnings[0].Code)
}

func TestTokenizerDiagnostics(t *testing.T) {
	source := "<p>\n<div $>"
	h := handler.NewHandler(source, "index.html")
	z := NewTokenizerWithOptions(Options{Handler: h})
	_, err := z.Collect([]byte(source))
	require.NoError(t, err)

	warnings := h.Warnings()
	require.Len(t, warnings, 1)
	assert.Equal(t, int(loc.WARNING_MALFORMED_INPUT), warnings[0].Code)
	assert.Equal(t, int(loc.WarningType), warnings[0].Severity)
	require.NotNil(t, warnings[0].Location)
	assert.Equal(t, "index.html", warnings[0].Location.File)
	assert.Equal(t, 2, warnings[0].Location.Line)
	assert.Equal(t, 6, warnings[0].Location.Column)
	assert.Equal(t, 2, warnings[0].Location.Length)
	assert.Equal(t, "<div $>", warnings[0].Location.LineText)
	assert.False(t, h.HasErrors())
}

func TestTokenizerFinish(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		context Context
		code    loc.DiagnosticCode
	}{
		{"complete", `<p>x</p>`, HTMLContext, 0},
		{"comment", `<!-- x`, CommentContext, loc.WARNING_UNTERMINATED_COMMENT},
		{"terminated comment", `<!-- x -->y`, CommentContext, 0},
		{"cdata", `<![CDATA[ x`, CDATAContext, loc.WARNING_UNTERMINATED_CDATA},
		{"terminated cdata", `<![CDATA[ x ]]>`, CDATAContext, 0},
		{"script", `<script>x`, ScriptDataContext, loc.WARNING_UNTERMINATED_RAW_TEXT},
		{"tag", `<a b`, AttributeNameContext, loc.WARNING_UNTERMINATED_TAG},
		{"attribute", `<a b='c`, AttributeStringContext, loc.WARNING_UNTERMINATED_ATTRIBUTE},
		{"plaintext", `<plaintext>x`, PlaintextContext, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := handler.NewHandler(tt.input, "")
			z := NewTokenizerWithOptions(Options{Handler: h})
			_, err := z.Collect([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.context, z.Finish())

			warnings := h.Warnings()
			if tt.code == 0 {
				assert.Empty(t, warnings)
				return
			}
			require.Len(t, warnings, 1)
			assert.Equal(t, int(tt.code), warnings[0].Code)
		})
	}
}

func TestTokenizerFinishLocation(t *testing.T) {
	tests := []struct {
		name   string
		chunks []string
		column int
	}{
		{"entered in last call", []string{`abc`, `de<!-- x`}, 7},
		{"entered in earlier call", []string{`xy<!-- a`, `bcdef`}, 1},
		{"single call", []string{`ab<p c='d`}, 9},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := tt.chunks[len(tt.chunks)-1]
			h := handler.NewHandler(last, "")
			z := NewTokenizerWithOptions(Options{Handler: h})
			for _, chunk := range tt.chunks {
				_, err := z.Collect([]byte(chunk))
				require.NoError(t, err)
			}
			z.Finish()

			warnings := h.Warnings()
			require.Len(t, warnings, 1)
			require.NotNil(t, warnings[0].Location)
			assert.Equal(t, 1, warnings[0].Location.Line)
			assert.Equal(t, tt.column, warnings[0].Location.Column)
		})
	}
}

func TestTokenizerLogger(t *testing.T) {
	logger, hook := logtest.NewNullLogger()
	logger.SetLevel(logrus.TraceLevel)
	z := NewTokenizerWithOptions(Options{Logger: logger})
	_, err := z.Collect([]byte(`<a $`))
	require.NoError(t, err)

	messages := make([]string, 0)
	for _, entry := range hook.AllEntries() {
		messages = append(messages, entry.Message)
	}
	assert.Equal(t, []string{"push", "push", "malformed input"}, messages)
	assert.Equal(t, "attributes", hook.LastEntry().Data["context"])
}

func TestTokenTypeNames(t *testing.T) {
	for _, tt := range TokenTypes() {
		parsed, ok := ParseTokenType(tt.String())
		assert.True(t, ok, tt.String())
		assert.Equal(t, tt, parsed)
	}
	assert.Len(t, TokenTypes(), 16)
	assert.Equal(t, "attribute_unquoted_value", AttributeUnquotedValueToken.String())
	assert.Equal(t, "Invalid(99)", TokenType(99).String())
	_, ok := ParseTokenType("doctype")
	assert.False(t, ok)
}

func TestContentMode(t *testing.T) {
	tests := []struct {
		name string
		want Context
	}{
		{"title", RCDATAContext},
		{"TextArea", RCDATAContext},
		{"style", RawTextContext},
		{"xmp", RawTextContext},
		{"iframe", RawTextContext},
		{"noembed", RawTextContext},
		{"noframes", RawTextContext},
		{"listing", RawTextContext},
		{"script", ScriptDataContext},
		{"plaintext", PlaintextContext},
		{"div", NoContext},
		{"noscript", NoContext},
		{"scripts", NoContext},
		{"svg:script", NoContext},
		{"", NoContext},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, contentMode([]byte(tt.name)))
		})
	}
}
