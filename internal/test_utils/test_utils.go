package test_utils

import (
	"fmt"
	"strings"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"
	"github.com/google/go-cmp/cmp"
	"github.com/lithammer/dedent"
	"github.com/pkg/diff"
)

// Dedent trims surrounding blank lines from a raw string literal and removes
// the indentation its lines share. Runs of blank lines collapse to one.
func Dedent(input string) string {
	trimmed := strings.TrimLeft(strings.TrimRight(input, " \n\r"), " \t\r\n")
	return dedent.Dedent(strings.ReplaceAll(trimmed, "\n\n\n", "\n\n"))
}

// ANSIDiff returns a cmp diff of x and y with removed lines in red and added
// lines in green, or "" when they are equal.
func ANSIDiff(x, y interface{}, opts ...cmp.Option) string {
	d := cmp.Diff(x, y, opts...)
	if d == "" {
		return ""
	}
	lines := strings.Split(d, "\n")
	for i, line := range lines {
		switch {
		case strings.HasPrefix(line, "-"):
			lines[i] = ansi(31, line)
		case strings.HasPrefix(line, "+"):
			lines[i] = ansi(32, line)
		}
	}
	return strings.Join(lines, "\n")
}

func ansi(code int, s string) string {
	return fmt.Sprintf("\x1b[%dm%s\x1b[0m", code, s)
}

// TextDiff returns a unified diff of two texts, or "" when they are equal.
func TextDiff(want, got string) string {
	if want == got {
		return ""
	}
	var b strings.Builder
	if err := diff.Text("want", "got", want, got, &b); err != nil {
		return err.Error()
	}
	return b.String()
}

var testNameReplacer = strings.NewReplacer(
	"<", "_", ">", "_", "(", "_", ")", "_", ":", "_", " ", "_",
	"'", "_", "\"", "_", "@", "_", "`", "_", "+", "_", "/", "_",
)

// RedactTestName replaces the characters of a test case name that cannot
// appear in a snapshot file name.
func RedactTestName(testCaseName string) string {
	return testNameReplacer.Replace(testCaseName)
}

type OutputKind int

const (
	TextOutput OutputKind = iota
	JsonOutput
)

func (k OutputKind) String() string {
	if k == JsonOutput {
		return "json"
	}
	return "text"
}

type SnapshotOptions struct {
	Testing      *testing.T
	TestCaseName string
	Input        string
	Output       string
	Kind         OutputKind
	FolderName   string
}

// MakeSnapshot matches the input and output of a test case against
// <FolderName>/<test case name>.snap, "__snapshots__" by default.
func MakeSnapshot(options *SnapshotOptions) {
	folderName := options.FolderName
	if folderName == "" {
		folderName = "__snapshots__"
	}
	s := snaps.WithConfig(
		snaps.Filename(RedactTestName(options.TestCaseName)),
		snaps.Dir(folderName),
	)

	var b strings.Builder
	b.WriteString("## Input\n\n```\n")
	b.WriteString(options.Input)
	b.WriteString("\n```\n\n## Output\n\n```")
	b.WriteString(options.Kind.String())
	b.WriteString("\n")
	b.WriteString(options.Output)
	b.WriteString("\n```")

	s.MatchSnapshot(options.Testing, b.String())
}
