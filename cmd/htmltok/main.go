package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	tokenizer "github.com/withastro/htmltokenizer/internal"
	"github.com/withastro/htmltokenizer/internal/handler"
	"github.com/withastro/htmltokenizer/internal/loc"
	"github.com/withastro/htmltokenizer/internal/printer"
)

const (
	exitOK        = 0
	exitError     = 1
	exitUsage     = 2
	exitMalformed = 3
)

var formats = map[string]bool{
	"text":      true,
	"json":      true,
	"source":    true,
	"highlight": true,
}

func main() {
	os.Exit(run())
}

func run() int {
	return runWithArgs(os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
}

func runWithArgs(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("htmltok", flag.ContinueOnError)
	fs.SetOutput(stderr)
	format := fs.String("format", "text", "output format: text, json, source or highlight")
	camel := fs.Bool("camel", false, "print token kinds in camel case")
	match := fs.String("match", "", "only print tokens whose bytes match this regular expression")
	depth := fs.Int("depth", tokenizer.DefaultMaxDepth, "context stack capacity")
	fragment := fs.String("fragment", "", "tokenize the input as the content of this element")
	text := fs.Bool("text", true, "include token bytes in text and json output")
	strict := fs.Bool("strict", false, "exit with status 3 when the input is malformed")
	verbose := fs.Bool("v", false, "log context changes to stderr")
	fs.Usage = func() {
		writef(stderr, "Usage: %s [options] [file.html]\n\n", fs.Name())
		writeln(stderr, "Tokenizes an HTML document, read from file.html or standard input.")
		writeln(stderr)
		writeln(stderr, "Options:")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return exitUsage
	}

	if !formats[*format] {
		writef(stderr, "error: unknown format %q\n", *format)
		fs.Usage()
		return exitUsage
	}
	if fs.NArg() > 1 {
		writeln(stderr, "error: at most one input file is accepted")
		fs.Usage()
		return exitUsage
	}
	filter, err := printer.CompileMatch(*match)
	if err != nil {
		writef(stderr, "error: invalid -match expression: %v\n", err)
		return exitUsage
	}

	logger := logrus.New()
	logger.SetOutput(stderr)
	logger.SetFormatter(&logrus.TextFormatter{DisableTimestamp: true})
	logger.SetLevel(logrus.WarnLevel)
	if *verbose {
		logger.SetLevel(logrus.TraceLevel)
	}

	filename, source, err := readInput(fs.Arg(0), stdin)
	if err != nil {
		logger.Error(err)
		return exitError
	}

	h := handler.NewHandler(string(source), filename)
	z := tokenizer.NewTokenizerWithOptions(tokenizer.Options{
		MaxDepth:   *depth,
		ContextTag: *fragment,
		Handler:    h,
		Logger:     logger,
	})
	tokens, scanErr := z.Collect(source)
	z.Finish()

	opts := printer.Options{CamelCase: *camel, IncludeText: *text, Match: filter}
	var result printer.PrintResult
	switch *format {
	case "text":
		result = printer.PrintToText(source, tokens, opts)
	case "json":
		result, err = printer.PrintToJSON(source, tokens, h, opts)
		if err != nil {
			logger.Error(errors.Wrap(err, "encode tokens"))
			return exitError
		}
		result.Output = append(result.Output, '\n')
	case "source":
		result = printer.PrintToSource(source, tokens, opts)
	case "highlight":
		result = printer.PrintToHighlight(source, tokens, opts)
	}
	if _, err := stdout.Write(result.Output); err != nil {
		logger.Error(errors.Wrap(err, "write output"))
		return exitError
	}

	if *format != "json" {
		logDiagnostics(logger, h.Diagnostics())
	}
	if scanErr != nil {
		logger.Error(errors.Wrapf(scanErr, "tokenize %s", filename))
		return exitError
	}
	if *strict && isMalformed(tokens) {
		return exitMalformed
	}
	return exitOK
}

// readInput reads the named file, or stdin when name is empty or "-".
func readInput(name string, stdin io.Reader) (string, []byte, error) {
	if name == "" || name == "-" {
		source, err := io.ReadAll(stdin)
		if err != nil {
			return "<stdin>", nil, errors.Wrap(err, "read standard input")
		}
		return "<stdin>", source, nil
	}
	source, err := os.ReadFile(name)
	if err != nil {
		return name, nil, errors.Wrapf(err, "read %s", name)
	}
	return name, source, nil
}

func logDiagnostics(logger logrus.FieldLogger, diagnostics []loc.DiagnosticMessage) {
	for _, d := range diagnostics {
		entry := logger.WithField("code", d.Code)
		if d.Location != nil {
			entry = entry.WithFields(logrus.Fields{
				"file":   d.Location.File,
				"line":   d.Location.Line,
				"column": d.Location.Column,
			})
		}
		if d.Severity == int(loc.ErrorType) {
			entry.Error(d.Text)
		} else {
			entry.Warn(d.Text)
		}
	}
}

func isMalformed(tokens []tokenizer.Token) bool {
	return len(tokens) > 0 && tokens[len(tokens)-1].Type == tokenizer.MalformedToken
}

func writef(w io.Writer, format string, args ...any) {
	_, _ = fmt.Fprintf(w, format, args...)
}

func writeln(w io.Writer, args ...any) {
	_, _ = fmt.Fprintln(w, args...)
}
