package lint_test

import (
	"bytes"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/BurntSushi/toml"
	"go.followtheprocess.codes/genlint/internal/diagnostic"
	"go.followtheprocess.codes/genlint/internal/lint"
	"go.followtheprocess.codes/genlint/internal/marker"
	"go.followtheprocess.codes/genlint/internal/text"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/txtar"
)

var update = flag.Bool("update", false, "Update testdata")

// unlimited returns the default options with no diagnostic limits.
func unlimited() lint.Options {
	options := lint.DefaultOptions()
	options.MaxErrors = 0
	options.MaxWarnings = 0
	options.MaxInfo = 0

	return options
}

// run lints src as a single source and returns what was recorded.
func run(t *testing.T, src string, options lint.Options) []diagnostic.Diagnostic {
	t.Helper()

	runner := lint.NewRunner(io.Discard, options)
	err := lint.Lint("<stdin>", strings.NewReader(src), runner, options)
	test.Ok(t, err)

	return runner.Diagnostics()
}

// lines returns the start line of each diagnostic.
func lines(diagnostics []diagnostic.Diagnostic) []int {
	out := make([]int, 0, len(diagnostics))
	for _, d := range diagnostics {
		out = append(out, d.Line)
	}

	return out
}

func TestMixIndent(t *testing.T) {
	tests := []struct {
		name    string            // Name of the test case
		src     string            // Source text
		helper  string            // Expected helper message
		disable []diagnostic.Code // Checks to disable
		want    int               // Expected col (and end col)
	}{
		{name: "tab first", src: "\t  let x = 5;\n", want: 1, helper: "This line starts with tabs"},
		{name: "space first", src: "  \tlet x = 5;\n", want: 2, helper: "This line starts with whitespaces"},
		{name: "unicode", src: " \t α\n", want: 1, helper: "This line starts with whitespaces"},
		{name: "ideographic space first", src: "\u3000 \tx\n", want: 1, helper: "This line starts with tabs"},
		{
			name:    "whitespace only",
			src:     "\t \n",
			disable: []diagnostic.Code{diagnostic.TrailingSpace},
			want:    1,
			helper:  "This line starts with tabs",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := unlimited()
			options.Disable = tt.disable

			got := run(t, tt.src, options)
			test.Equal(t, len(got), 1)

			d := got[0]
			test.Equal(t, d.Code, diagnostic.MixIndent)
			test.Equal(t, d.Severity, diagnostic.Warning)
			test.Equal(t, d.Line, 0)
			test.Equal(t, d.EndLine, 0)
			test.Equal(t, d.Col, tt.want)
			test.Equal(t, d.EndCol, tt.want)
			test.Equal(t, d.Source, tt.src)
			test.Equal(t, d.SourceLine, 0)
			test.Equal(t, d.Message, "Mixed tabs and whitespaces")

			test.Equal(t, len(d.Helpers), 1)
			test.Equal(t, d.Helpers[0].Message, tt.helper)
			test.Equal(t, d.Helpers[0].Col, 0)
			test.Equal(t, d.Helpers[0].EndCol, tt.want-1)
		})
	}
}

func TestMixIndentNotLeading(t *testing.T) {
	// Spaces and tabs after the first non-space character are not indentation
	got := run(t, "\tlet x = 5;\n  let\ty = 1;\n", unlimited())
	test.Equal(t, len(got), 0)
}

func TestTrailingSpace(t *testing.T) {
	tests := []struct {
		name   string // Name of the test case
		src    string // Source text
		col    int    // Expected col
		endCol int    // Expected end col
	}{
		{name: "spaces", src: "let x = 5;  \nlet y = 10;\n", col: 10, endCol: 11},
		{name: "cjk", src: "let x = \"\t中文\";  \nlet y = 10;\n", col: 14, endCol: 15},
		{name: "tab", src: "x\t\n", col: 1, endCol: 1},
		{name: "crlf", src: "x \r\n", col: 1, endCol: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := run(t, tt.src, unlimited())
			test.Equal(t, len(got), 1)

			d := got[0]
			test.Equal(t, d.Code, diagnostic.TrailingSpace)
			test.Equal(t, d.Line, 0)
			test.Equal(t, d.EndLine, 0)
			test.Equal(t, d.Col, tt.col)
			test.Equal(t, d.EndCol, tt.endCol)
			test.Equal(t, d.Source, strings.SplitAfter(tt.src, "\n")[0])
			test.Equal(t, d.SourceLine, 0)
		})
	}
}

func TestTrailingSpaceIdempotent(t *testing.T) {
	src := "let x = 5; \t \n"

	got := run(t, src, unlimited())
	test.Equal(t, len(got), 1)

	// Removing the reported span leaves a clean line
	runes := []rune(strings.TrimSuffix(src, "\n"))
	fixed := string(runes[:got[0].Col]) + "\n"

	test.Equal(t, len(run(t, fixed, unlimited())), 0)
}

func TestConflictMarkers(t *testing.T) {
	short, err := os.ReadFile(filepath.Join("testdata", "markers", "short.txt"))
	test.Ok(t, err)

	long, err := os.ReadFile(filepath.Join("testdata", "markers", "long.txt"))
	test.Ok(t, err)

	tests := []struct {
		name    string       // Name of the test case
		src     string       // Source text
		style   marker.Style // Dialect
		message string       // Every message must start with this
		want    []int        // Expected lines
	}{
		{
			name:    "git",
			src:     string(short) + string(long),
			style:   marker.Git,
			message: "Git conflict marker: ",
			want:    []int{31, 35, 39, 74, 78, 79},
		},
		{
			name:    "git-diff3",
			src:     string(short) + string(long),
			style:   marker.GitDiff3,
			message: "Git diff3 conflict marker: ",
			want:    []int{31, 32, 35, 39, 74, 75, 78, 79},
		},
		{
			name:    "jj static",
			src:     string(short),
			style:   marker.Jj,
			message: "Jujutsu conflict marker: ",
			want:    []int{31, 33, 36, 38, 39},
		},
		{
			name:    "jj dynamic",
			src:     string(short) + string(long),
			style:   marker.Jj,
			message: "Jujutsu conflict marker: ",
			want:    []int{63, 65, 68, 70, 71},
		},
		{
			name:    "jj-snapshot static",
			src:     string(short),
			style:   marker.JjSnapshot,
			message: "Jujutsu snapshot conflict marker: ",
			want:    []int{31, 36, 37, 39},
		},
		{
			name:    "jj-snapshot dynamic",
			src:     string(short) + string(long),
			style:   marker.JjSnapshot,
			message: "Jujutsu snapshot conflict marker: ",
			want:    []int{63, 68, 69, 71},
		},
		{
			name:    "jj-diff3 static",
			src:     string(short),
			style:   marker.JjDiff3,
			message: "Jujutsu diff3 conflict marker: ",
			want:    []int{31, 32, 35, 39},
		},
		{
			name:    "jj-diff3 dynamic",
			src:     string(short) + string(long),
			style:   marker.JjDiff3,
			message: "Jujutsu diff3 conflict marker: ",
			want:    []int{63, 64, 67, 71},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := unlimited()
			options.ConflictMarkerStyle = tt.style

			got := slices.DeleteFunc(run(t, tt.src, options), func(d diagnostic.Diagnostic) bool {
				return d.Code != diagnostic.ConflictMarker
			})
			test.EqualFunc(t, lines(got), tt.want, slices.Equal)

			srcLines := strings.Split(tt.src, "\n")
			for _, d := range got {
				trimmed := srcLines[d.Line]

				test.Equal(t, d.Code, diagnostic.ConflictMarker)
				test.Equal(t, d.Severity, diagnostic.Error)
				test.Equal(t, d.EndLine, d.Line)
				test.Equal(t, d.SourceLine, d.Line)
				test.Equal(t, d.Col, 0)
				test.Equal(t, d.EndCol, len(trimmed)-1)
				test.Equal(t, d.Source, trimmed+"\n")
				test.Equal(t, d.Message, tt.message+trimmed)
			}
		})
	}
}

func TestConflictMarkerProse(t *testing.T) {
	// Each line is judged on its own, a lone separator is still reported
	got := run(t, "Heading\n=======\n\nText\n", unlimited())
	test.Equal(t, len(got), 1)
	test.Equal(t, got[0].Line, 1)
	test.Equal(t, got[0].Message, "Git conflict marker: =======")
}

func TestLongLine(t *testing.T) {
	padded := fmt.Sprintf("let z = \"%075d\";", 150)
	cjk := "let z = \"" + strings.Repeat("中文", 30) + "\";"

	tests := []struct {
		name    string // Name of the test case
		src     string // Source text
		limit   int    // Max line length
		line    int    // Expected line
		col     int    // Expected col
		endCol  int    // Expected end col
		message string // Expected message
	}{
		{
			name:    "ascii",
			src:     "let x = 5;\nlet y = 10;\n" + padded + "\n",
			limit:   50,
			line:    2,
			col:     50,
			endCol:  85,
			message: "Too long line (86/50)",
		},
		{
			name:    "cjk",
			src:     "let x = 5;\nlet y = 10;\n" + cjk + "\n",
			limit:   120,
			line:    2,
			col:     64,
			endCol:  70,
			message: "Too long line (131/120)",
		},
		{
			name:    "one over",
			src:     "0123456789X\n",
			limit:   10,
			line:    0,
			col:     10,
			endCol:  10,
			message: "Too long line (11/10)",
		},
		{
			name:    "tabs count four",
			src:     "\t\t\tx\n",
			limit:   12,
			line:    0,
			col:     3,
			endCol:  3,
			message: "Too long line (13/12)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := unlimited()
			options.MaxLineLength = tt.limit

			got := run(t, tt.src, options)
			test.Equal(t, len(got), 1)

			d := got[0]
			test.Equal(t, d.Code, diagnostic.LongLine)
			test.Equal(t, d.Severity, diagnostic.Information)
			test.Equal(t, d.Line, tt.line)
			test.Equal(t, d.EndLine, tt.line)
			test.Equal(t, d.Col, tt.col)
			test.Equal(t, d.EndCol, tt.endCol)
			test.Equal(t, d.Message, tt.message)
			test.Equal(t, d.SourceLine, tt.line)
			test.Equal(t, d.Source, strings.SplitAfter(tt.src, "\n")[tt.line])
		})
	}
}

func TestLongLineAtLimit(t *testing.T) {
	options := unlimited()
	options.MaxLineLength = 10

	test.Equal(t, len(run(t, "0123456789\n", options)), 0)
	test.Equal(t, len(run(t, "中文中文中\n", options)), 0)
}

func TestConsecutiveBlank(t *testing.T) {
	parts := []string{
		"\n\n\nlet x = 5;\n",
		"\n\n\n\nlet y = 10;\n",
		"let z = 15;\n\n\n\n\n\n",
	}

	options := unlimited()
	options.MaxConsecutiveBlank = 2

	got := run(t, strings.Join(parts, ""), options)
	test.Equal(t, len(got), 3)

	test.EqualFunc(t, lines(got), []int{0, 4, 10}, slices.Equal)

	var (
		endLines    []int
		sourceLines []int
		sources     []string
		starts      []int
		ends        []int
	)

	for _, d := range got {
		test.Equal(t, d.Code, diagnostic.ConsecutiveBlank)
		test.Equal(t, d.Col, 0)
		test.Equal(t, d.EndCol, 0)

		endLines = append(endLines, d.EndLine)
		sourceLines = append(sourceLines, d.SourceLine)
		sources = append(sources, d.Source)
		starts = append(starts, text.Offset(d.Source, d.SourceLine, d.Line, d.Col))
		ends = append(ends, text.Offset(d.Source, d.SourceLine, d.EndLine, d.EndCol))
	}

	test.EqualFunc(t, endLines, []int{2, 7, 14}, slices.Equal)
	test.EqualFunc(t, sourceLines, []int{0, 3, 9}, slices.Equal)
	test.EqualFunc(t, sources, []string{parts[0], "let x = 5;\n" + parts[1], parts[2]}, slices.Equal)
	test.EqualFunc(t, starts, []int{0, 11, 12}, slices.Equal)
	test.EqualFunc(t, ends, []int{2, 14, 16}, slices.Equal)

	test.Equal(t, got[0].Message, "Too many consecutive blank lines (3/2)")
	test.Equal(t, got[1].Message, "Too many consecutive blank lines (4/2)")
	test.Equal(t, got[2].Message, "Too many consecutive blank lines (5/2)")

	test.EqualFunc(t, got[0].Helpers, []diagnostic.Helper{
		{Message: "Next non-blank line", Line: 3, EndLine: 3, Col: 0, EndCol: 9},
	}, slices.Equal)

	test.EqualFunc(t, got[1].Helpers, []diagnostic.Helper{
		{Message: "Previous non-blank line", Line: 3, EndLine: 3, Col: 0, EndCol: 9},
		{Message: "Next non-blank line", Line: 8, EndLine: 8, Col: 0, EndCol: 10},
	}, slices.Equal)

	test.EqualFunc(t, got[2].Helpers, []diagnostic.Helper{
		{Message: "Previous non-blank line", Line: 9, EndLine: 9, Col: 0, EndCol: 10},
	}, slices.Equal)
}

func TestConsecutiveBlankAtEOF(t *testing.T) {
	tests := []struct {
		name   string // Name of the test case
		src    string // Source text
		endCol int    // Expected end col of the previous line helper
	}{
		{name: "plain", src: "let x = 5;\n\n\n\n", endCol: 9},
		{name: "tab", src: "\tlet x = 5;\n\n\n\n", endCol: 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			options := unlimited()
			options.MaxConsecutiveBlank = 2

			got := run(t, tt.src, options)
			test.Equal(t, len(got), 1)

			d := got[0]
			test.Equal(t, d.Code, diagnostic.ConsecutiveBlank)
			test.Equal(t, d.Line, 1)
			test.Equal(t, d.EndLine, 3)
			test.Equal(t, d.SourceLine, 0)
			test.EqualFunc(t, d.Helpers, []diagnostic.Helper{
				{Message: "Previous non-blank line", Line: 0, EndLine: 0, Col: 0, EndCol: tt.endCol},
			}, slices.Equal)
		})
	}
}

func TestConsecutiveBlankWithTabs(t *testing.T) {
	options := unlimited()
	options.MaxConsecutiveBlank = 2

	got := run(t, "\n\n\n\tlet x = 5;\n\n\n\n\tlet y = 10;\n\tlet z = 15;\n\n\n\n\n", options)
	test.Equal(t, len(got), 3)

	test.EqualFunc(t, got[1].Helpers, []diagnostic.Helper{
		{Message: "Previous non-blank line", Line: 3, EndLine: 3, Col: 0, EndCol: 10},
		{Message: "Next non-blank line", Line: 7, EndLine: 7, Col: 0, EndCol: 11},
	}, slices.Equal)
}

func TestConsecutiveBlankWithControlChars(t *testing.T) {
	options := unlimited()
	options.MaxConsecutiveBlank = 2

	got := run(t, "let x = \"\t\x01\";\n\n\n\nlet y = \"\x02\";\n\n\n\n\n", options)
	test.Equal(t, len(got), 2)

	test.EqualFunc(t, got[0].Helpers, []diagnostic.Helper{
		{Message: "Previous non-blank line", Line: 0, EndLine: 0, Col: 0, EndCol: 12},
		{Message: "Next non-blank line", Line: 4, EndLine: 4, Col: 0, EndCol: 11},
	}, slices.Equal)

	test.EqualFunc(t, got[1].Helpers, []diagnostic.Helper{
		{Message: "Previous non-blank line", Line: 4, EndLine: 4, Col: 0, EndCol: 11},
	}, slices.Equal)
}

func TestConsecutiveBlankOnlyBlanks(t *testing.T) {
	got := run(t, "\n\n\n\n\n", unlimited())
	test.Equal(t, len(got), 1)

	d := got[0]
	test.Equal(t, d.Code, diagnostic.ConsecutiveBlank)
	test.Equal(t, d.Line, 0)
	test.Equal(t, d.EndLine, 4)
	test.Equal(t, d.Message, "Too many consecutive blank lines (5/1)")
	test.Equal(t, d.Source, "\n\n\n\n\n")
	test.True(t, d.Helpers == nil, test.Context("expected no helpers, got %v", d.Helpers))
}

func TestConsecutiveBlankBoundary(t *testing.T) {
	options := unlimited()
	options.MaxConsecutiveBlank = 2

	// Exactly max blank lines is fine
	test.Equal(t, len(run(t, "a\n\n\nb\n", options)), 0)

	// One more spans max+1 lines
	got := run(t, "a\n\n\n\nb\n", options)
	test.Equal(t, len(got), 1)
	test.Equal(t, got[0].EndLine-got[0].Line+1, 3)
}

func TestFinalNewline(t *testing.T) {
	got := run(t, "let x = 5;", unlimited())
	test.Equal(t, len(got), 1)

	d := got[0]
	test.Equal(t, d.Code, diagnostic.FinalNewline)
	test.Equal(t, d.Severity, diagnostic.Information)
	test.Equal(t, d.Line, 0)
	test.Equal(t, d.EndLine, 0)
	test.Equal(t, d.Col, 9)
	test.Equal(t, d.EndCol, 9)
	test.Equal(t, d.Message, "Missing final newline")
	test.Equal(t, d.Source, "let x = 5;")

	test.Equal(t, len(run(t, "let x = 5;\n", unlimited())), 0)
	test.Equal(t, len(run(t, "let x = 5;\r", unlimited())), 0)
	test.Equal(t, len(run(t, "", unlimited())), 0)
}

func TestBinary(t *testing.T) {
	options := unlimited()
	runner := lint.NewRunner(io.Discard, options)

	err := lint.Lint("binary", strings.NewReader("let x = 5;\x00\nlet y = 10;\n"), runner, options)
	test.True(t, errors.Is(err, lint.ErrBinary), test.Context("expected ErrBinary, got %v", err))
	test.Equal(t, len(runner.Diagnostics()), 0)

	options.Text = true
	got := run(t, "let x = 5;\x00 \nlet y = 10;\n", options)
	test.Equal(t, len(got), 1)
	test.Equal(t, got[0].Code, diagnostic.TrailingSpace)
	test.Equal(t, got[0].Source, "let x = 5;\x00 \n")
}

func TestBinaryAfterPeek(t *testing.T) {
	// A NUL byte beyond the sniffed prefix doesn't make a source binary
	src := strings.Repeat("x\n", lint.PeekSize) + "\x00\n"

	got := run(t, src, unlimited())
	test.Equal(t, len(got), 0)
}

func TestDisabled(t *testing.T) {
	src := "\t  x  \n<<<<<<< HEAD\n" + strings.Repeat("y", 200) + "\n\n\n\nz"

	options := unlimited()
	test.Equal(t, len(run(t, src, options)), 6)

	options.Disable = diagnostic.Codes()
	test.Equal(t, len(run(t, src, options)), 0)

	for _, code := range diagnostic.Codes() {
		t.Run(code.String(), func(t *testing.T) {
			options := unlimited()
			options.Disable = []diagnostic.Code{code}

			got := run(t, src, options)
			test.Equal(t, len(got), 5)

			for _, d := range got {
				test.True(t, d.Code != code, test.Context("%s was disabled but reported", code))
			}
		})
	}
}

func TestInvalidUTF8(t *testing.T) {
	options := unlimited()
	runner := lint.NewRunner(io.Discard, options)

	err := lint.Lint("bad", strings.NewReader("ok  \n\xff\xfe\nnever  \n"), runner, options)
	test.Err(t, err)
	test.True(t, !errors.Is(err, lint.ErrAborted))

	// What was found before the bad line is kept
	test.Equal(t, len(runner.Diagnostics()), 1)
}

func TestReadError(t *testing.T) {
	options := unlimited()
	options.Text = true
	runner := lint.NewRunner(io.Discard, options)

	err := lint.Lint("broken", iotest.ErrReader(errors.New("disk on fire")), runner, options)
	test.Err(t, err)
	test.True(t, strings.Contains(err.Error(), "disk on fire"))
}

func TestErrorLimitAborts(t *testing.T) {
	options := lint.DefaultOptions()
	options.MaxErrors = 2

	advisory := &bytes.Buffer{}
	runner := lint.NewRunner(advisory, options)

	src := "<<<<<<< a\n=======\n>>>>>>> b\n<<<<<<< c\n"

	err := lint.Lint("first", strings.NewReader(src), runner, options)
	test.True(t, errors.Is(err, lint.ErrAborted), test.Context("expected ErrAborted, got %v", err))
	test.Equal(t, runner.Count(diagnostic.Error), 2)
	test.True(t, runner.LimitReached(diagnostic.Error))
	test.True(t, runner.Aborted())
	test.True(t, strings.Contains(advisory.String(), "error limit (2)"))

	// A subsequent source isn't even read
	err = lint.Lint("second", iotest.ErrReader(errors.New("should not be read")), runner, options)
	test.True(t, errors.Is(err, lint.ErrAborted), test.Context("expected ErrAborted, got %v", err))
	test.Equal(t, len(runner.Diagnostics()), 2)
}

func TestErrorLimitAbortsJujutsu(t *testing.T) {
	options := lint.DefaultOptions()
	options.ConflictMarkerStyle = marker.Jj
	options.MaxErrors = 2

	advisory := &bytes.Buffer{}
	runner := lint.NewRunner(advisory, options)

	src := "<<<<<<< Conflict 1 of 1\n%%%%%%% Changes from base to side #1\n+++++++ Contents of side #2\n>>>>>>> Conflict 1 of 1 ends\ntail \n"

	// Jujutsu markers are only recorded once the whole source has been read, so the
	// limit is hit at the end and everything found before that is kept
	err := lint.Lint("src", strings.NewReader(src), runner, options)
	test.True(t, errors.Is(err, lint.ErrAborted), test.Context("expected ErrAborted, got %v", err))
	test.True(t, runner.Aborted())
	test.True(t, strings.Contains(advisory.String(), "error limit (2)"))

	got := runner.Diagnostics()
	test.Equal(t, len(got), 3)

	test.Equal(t, got[0].Code, diagnostic.TrailingSpace)
	test.Equal(t, got[0].Line, 4)

	test.Equal(t, got[1].Code, diagnostic.ConflictMarker)
	test.Equal(t, got[1].Line, 0)
	test.Equal(t, got[2].Code, diagnostic.ConflictMarker)
	test.Equal(t, got[2].Line, 1)
	test.Equal(t, runner.Count(diagnostic.Error), 2)
}

func TestWarningLimitBlocksOnlyWarnings(t *testing.T) {
	options := lint.DefaultOptions()
	options.MaxWarnings = 1

	runner := lint.NewRunner(io.Discard, options)

	src := "a \nb \nc \n<<<<<<< HEAD\n"

	err := lint.Lint("src", strings.NewReader(src), runner, options)
	test.Ok(t, err)

	test.Equal(t, runner.Count(diagnostic.Warning), 1)
	test.Equal(t, runner.Count(diagnostic.Error), 1)
	test.True(t, runner.LimitReached(diagnostic.Warning))
	test.True(t, !runner.LimitReached(diagnostic.Error))
	test.True(t, !runner.Aborted())
}

func TestRunnerSharedAcrossSources(t *testing.T) {
	options := lint.DefaultOptions()
	options.MaxInfo = 3

	runner := lint.NewRunner(io.Discard, options)

	for _, name := range []string{"one", "two", "three"} {
		err := lint.Lint(name, strings.NewReader("no newline"+name), runner, options)
		test.Ok(t, err)
	}

	// The limit is global to the run, not per source
	got := runner.Diagnostics()
	test.Equal(t, len(got), 3)
	test.Equal(t, got[0].File, "one")
	test.Equal(t, got[2].File, "three")
	test.True(t, runner.LimitReached(diagnostic.Information))

	err := lint.Lint("four", strings.NewReader("x"), runner, options)
	test.Ok(t, err)
	test.Equal(t, len(runner.Diagnostics()), 3)
}

func TestBufferSize(t *testing.T) {
	test.Equal(t, lint.BufferSize(0), lint.SmallBufferSize)
	test.Equal(t, lint.BufferSize(lint.LargeFileThreshold-1), lint.SmallBufferSize)
	test.Equal(t, lint.BufferSize(lint.LargeFileThreshold), lint.LargeBufferSize)
}

func TestGolden(t *testing.T) {
	// Force colour for diffs but only locally
	test.ColorEnabled(os.Getenv("CI") == "")

	pattern := filepath.Join("testdata", "golden", "*.txtar")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			archive, err := txtar.ParseFile(file)
			test.Ok(t, err)

			src, ok := archive.Read("src.txt")
			test.True(t, ok, test.Context("%s missing src.txt", file))

			want, ok := archive.Read("want.txt")
			test.True(t, ok, test.Context("%s missing want.txt", file))

			options := unlimited()
			if raw, ok := archive.Read("options.toml"); ok {
				_, err := toml.Decode(raw, &options)
				test.Ok(t, err)
			}

			got := format(run(t, src, options))

			if *update {
				err := archive.Write("want.txt", got)
				test.Ok(t, err)

				err = txtar.DumpFile(file, archive)
				test.Ok(t, err)

				return
			}

			test.Diff(t, got, want)
		})
	}
}

// format renders diagnostics and their helpers as compact zero based text.
func format(diagnostics []diagnostic.Diagnostic) string {
	s := &strings.Builder{}
	for _, d := range diagnostics {
		fmt.Fprintf(s, "%d:%d-%d:%d %s[%s]: %s\n", d.Line, d.Col, d.EndLine, d.EndCol, d.Severity, d.Code, d.Message)

		for _, h := range d.Helpers {
			fmt.Fprintf(s, "\t%d:%d-%d:%d %s\n", h.Line, h.Col, h.EndLine, h.EndCol, h.Message)
		}
	}

	return s.String()
}
