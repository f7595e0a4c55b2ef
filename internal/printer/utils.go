package printer

import (
	"github.com/dlclark/regexp2"
	"github.com/iancoleman/strcase"
	tokenizer "github.com/withastro/htmltokenizer/internal"
)

var camelKindNames = func() map[tokenizer.TokenType]string {
	names := make(map[tokenizer.TokenType]string)
	for _, tt := range tokenizer.TokenTypes() {
		names[tt] = strcase.ToLowerCamel(tt.String())
	}
	return names
}()

// KindName returns the printed name of a token type: its snake case name,
// or the lower camel case form of it when camel is set.
func KindName(tt tokenizer.TokenType, camel bool) string {
	if camel {
		if name, ok := camelKindNames[tt]; ok {
			return name
		}
	}
	return tt.String()
}

// CompileMatch compiles a Match filter. An empty expression means no filter.
func CompileMatch(expr string) (*regexp2.Regexp, error) {
	if expr == "" {
		return nil, nil
	}
	return regexp2.Compile(expr, regexp2.None)
}
