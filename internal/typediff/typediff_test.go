package typediff_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.followtheprocess.codes/hue"
	"go.followtheprocess.codes/test"
	"go.followtheprocess.codes/typediff/internal/format"
	"go.followtheprocess.codes/typediff/internal/resolver"
	"go.followtheprocess.codes/typediff/internal/typediff"
	"go.followtheprocess.codes/typediff/internal/typename"
	"go.uber.org/goleak"
)

func TestDiff(t *testing.T) {
	hue.Enabled(false)

	tests := []struct {
		name    string               // Name of the test case
		options typediff.DiffOptions // Options to pass
		want    string               // Expected stdout
	}{
		{
			name: "different names",
			options: typediff.DiffOptions{
				Expected: "NS.A.Dummy",
				Actual:   "NS.B.Dummy1",
				Format:   format.Text,
			},
			want: "Expected: Dummy\nBut was:  Dummy1\n",
		},
		{
			name: "generic",
			options: typediff.DiffOptions{
				Expected: "A.Generic`1[B.Type]",
				Actual:   "A.Generic`1[C.Type]",
				Format:   format.Text,
			},
			want: "Expected: Generic`1[B.Type]\nBut was:  Generic`1[C.Type]\n",
		},
		{
			name: "json",
			options: typediff.DiffOptions{
				Expected: "NS.A.Dummy",
				Actual:   "NS.B.Dummy",
				Format:   format.JSON,
			},
			want: `[
  {
    "expected": "NS.A.Dummy",
    "actual": "NS.B.Dummy",
    "expectedShort": "A.Dummy",
    "actualShort": "B.Dummy"
  }
]
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

			err := app.Diff(t.Context(), tt.options)
			test.Ok(t, err)

			test.Diff(t, stdout.String(), tt.want)
			test.Equal(t, stderr.String(), "")
		})
	}
}

func TestDiffFallback(t *testing.T) {
	hue.Enabled(false)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

	options := typediff.DiffOptions{
		Expected: "List`2[A]",
		Actual:   "System.Collections.Generic.List`1[System.Int32]",
		Format:   format.Text,
	}

	err := app.Diff(t.Context(), options)
	test.Ok(t, err)

	want := "Expected: List`2[A]\n" +
		"But was:  List`1[Int32]\n" +
		"\n" +
		"(from List`2[A] and System.Collections.Generic.List`1[System.Int32])\n"

	test.Diff(t, stdout.String(), want)
	test.True(
		t,
		strings.Contains(stderr.String(), "generic type declares 2 type arguments but 1 were given"),
		test.Context("stderr missing parse error: %q", stderr.String()),
	)
}

func TestDiffOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string               // Name of the test case
		errMsg  string               // If we wanted an error, what should it say
		options typediff.DiffOptions // Options under test
		wantErr bool                 // Whether we want an error
	}{
		{name: "text", options: typediff.DiffOptions{Format: format.Text}},
		{name: "toml", options: typediff.DiffOptions{Format: format.TOML}},
		{
			name:    "bad format",
			options: typediff.DiffOptions{Format: "xml"},
			wantErr: true,
			errMsg:  `invalid option for --format "xml", allowed values are [text json yaml toml]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.options.Validate()
			test.WantErr(t, err, tt.wantErr)

			if err != nil {
				test.Equal(t, err.Error(), tt.errMsg)
			}
		})
	}
}

func TestCheckValid(t *testing.T) {
	pattern := filepath.Join("testdata", "check", "valid", "*.txt")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

			err := app.Check(t.Context(), simpleErrorHandler(stderr), typediff.CheckOptions{Path: file, Concurrency: 2})
			test.Ok(t, err)

			test.Diff(t, stdout.String(), fmt.Sprintf("Success: %s is valid\n", file))
			test.Diff(t, stderr.String(), "")
		})
	}
}

func TestCheckInvalid(t *testing.T) {
	pattern := filepath.Join("testdata", "check", "invalid", "*.txt")
	files, err := filepath.Glob(pattern)
	test.Ok(t, err)

	for _, file := range files {
		name := filepath.Base(file)
		t.Run(name, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

			err := app.Check(t.Context(), simpleErrorHandler(stderr), typediff.CheckOptions{Path: file, Concurrency: 2})
			test.Err(t, err)

			test.Equal(t, stdout.String(), "")

			// The actual error format is down to the handler and parse errors are tested
			// extensively in internal/typename/parser so all we care about here is it's printing
			// something that looks like an error to stderr
			test.True(t, strings.Contains(stderr.String(), file))
		})
	}
}

func TestCheckReportsLine(t *testing.T) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

	file := filepath.Join("testdata", "check", "invalid", "arity.txt")

	err := app.Check(t.Context(), simpleErrorHandler(stderr), typediff.CheckOptions{Path: file, Concurrency: 2})
	test.Err(t, err)
	test.Equal(t, err.Error(), fmt.Sprintf("1 of 2 type names in %s are invalid", file))

	want := fmt.Sprintf("%s:2:38-39: generic type declares 2 type arguments but 1 were given\n", file)
	test.Diff(t, stderr.String(), want)
}

func TestCheckStdin(t *testing.T) {
	defer goleak.VerifyNone(t)

	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}

	stdin := strings.NewReader("NS.A.Dummy\n# comment\n\nList`1[System.Int32]\n")

	app := typediff.New(false, "test", stdin, stdout, stderr)

	err := app.Check(t.Context(), simpleErrorHandler(stderr), typediff.CheckOptions{Path: "-", Concurrency: 1})
	test.Ok(t, err)

	test.Diff(t, stdout.String(), "Success: - is valid\n")
	test.Diff(t, stderr.String(), "")
}

func TestCheckManyLines(t *testing.T) {
	defer goleak.VerifyNone(t)

	var input strings.Builder
	for i := range 100 {
		fmt.Fprintf(&input, "NS.Type%d\n", i)
	}

	input.WriteString("List`2[A]\n")

	stderr := &bytes.Buffer{}
	app := typediff.New(false, "test", strings.NewReader(input.String()), io.Discard, stderr)

	err := app.Check(t.Context(), simpleErrorHandler(stderr), typediff.CheckOptions{Path: "-", Concurrency: 1})
	test.Err(t, err)
	test.Equal(t, err.Error(), "1 of 101 type names in - are invalid")
	test.Diff(t, stderr.String(), "-:101:5-6: generic type declares 2 type arguments but 1 were given\n")
}

func TestCheckOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string                // Name of the test case
		options typediff.CheckOptions // Options under test
		errMsg  string                // Expected error message, empty if valid
	}{
		{
			name:    "valid",
			options: typediff.CheckOptions{Path: "names.txt", Concurrency: 4},
		},
		{
			name:    "missing path",
			options: typediff.CheckOptions{Concurrency: 1},
			errMsg:  "path cannot be empty, use '-' to read from stdin",
		},
		{
			name:    "zero concurrency",
			options: typediff.CheckOptions{Path: "-"},
			errMsg:  "concurrency must be at least 1, got 0",
		},
		{
			name:    "negative concurrency",
			options: typediff.CheckOptions{Path: "-", Concurrency: -2},
			errMsg:  "concurrency must be at least 1, got -2",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.options.Validate()
			if tt.errMsg == "" {
				test.Ok(t, err)
				return
			}

			test.Err(t, err)
			test.Equal(t, err.Error(), tt.errMsg)
		})
	}
}

func TestCheckMissingFile(t *testing.T) {
	app := typediff.New(false, "test", strings.NewReader(""), io.Discard, io.Discard)

	err := app.Check(t.Context(), nil, typediff.CheckOptions{Path: filepath.Join("testdata", "missing.txt"), Concurrency: 1})
	test.Err(t, err)
	test.True(t, strings.Contains(err.Error(), "could not open file"))
}

func TestBatch(t *testing.T) {
	want := []resolver.Result{
		{
			Pair:          resolver.Pair{Expected: "NS.A.Dummy", Actual: "NS.B.Dummy1"},
			ExpectedShort: "Dummy",
			ActualShort:   "Dummy1",
		},
		{
			Pair:          resolver.Pair{Expected: "A.Generic`1[B.Type]", Actual: "A.Generic`1[B.OtherType]"},
			ExpectedShort: "Generic`1[Type]",
			ActualShort:   "Generic`1[OtherType]",
		},
		{
			Pair:          resolver.Pair{Expected: "List`2[A]", Actual: "System.Int32"},
			ExpectedShort: "List`2[A]",
			ActualShort:   "Int32",
			Error:         "could not parse type name \"List`2[A]\": expected:5-6: generic type declares 2 type arguments but 1 were given",
			Fallback:      true,
		},
	}

	for _, file := range []string{"pairs.json", "pairs.yml", "pairs.toml"} {
		t.Run(file, func(t *testing.T) {
			defer goleak.VerifyNone(t)

			stdout := &bytes.Buffer{}
			stderr := &bytes.Buffer{}

			app := typediff.New(false, "test", strings.NewReader(""), stdout, stderr)

			options := typediff.BatchOptions{
				Path:        filepath.Join("testdata", "batch", file),
				Format:      format.JSON,
				Concurrency: 2,
			}

			err := app.Batch(t.Context(), options)
			test.Ok(t, err)

			var got []resolver.Result
			test.Ok(t, json.Unmarshal(stdout.Bytes(), &got))

			test.Equal(t, len(got), len(want))

			for i := range want {
				test.Equal(t, got[i], want[i], test.Context("result %d", i))
			}

			test.Equal(t, stderr.String(), "")
		})
	}
}

func TestBatchText(t *testing.T) {
	stdout := &bytes.Buffer{}

	stdin, err := os.Open(filepath.Join("testdata", "batch", "pairs.json"))
	test.Ok(t, err)
	defer stdin.Close()

	app := typediff.New(false, "test", stdin, stdout, io.Discard)

	options := typediff.BatchOptions{
		Path:        "-",
		Format:      format.Text,
		InputFormat: format.JSON,
		Concurrency: 1,
	}

	err = app.Batch(t.Context(), options)
	test.Ok(t, err)

	want := "Expected: Dummy\n" +
		"But was:  Dummy1\n" +
		"\n" +
		"Expected: Generic`1[Type]\n" +
		"But was:  Generic`1[OtherType]\n" +
		"\n" +
		"# could not parse type name \"List`2[A]\": expected:5-6: generic type declares 2 type arguments but 1 were given\n" +
		"Expected: List`2[A]\n" +
		"But was:  Int32\n"

	test.Diff(t, stdout.String(), want)
}

func TestBatchBadInput(t *testing.T) {
	app := typediff.New(false, "test", strings.NewReader(""), io.Discard, io.Discard)

	options := typediff.BatchOptions{
		Path:        filepath.Join("testdata", "batch", "bad.json"),
		Format:      format.JSON,
		Concurrency: 1,
	}

	err := app.Batch(t.Context(), options)
	test.Err(t, err)
	test.True(t, strings.Contains(err.Error(), "could not decode JSON"), test.Context("got %v", err))
}

func TestBatchOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string                // Name of the test case
		errMsg  string                // If we wanted an error, what should it say
		options typediff.BatchOptions // Options under test
		wantErr bool                  // Whether we want an error
	}{
		{
			name:    "valid",
			options: typediff.BatchOptions{Path: "pairs.json", Format: format.YAML, Concurrency: 4},
		},
		{
			name:    "valid stdin",
			options: typediff.BatchOptions{Path: "-", Format: format.Text, InputFormat: format.TOML, Concurrency: 1},
		},
		{
			name:    "missing path",
			options: typediff.BatchOptions{Format: format.JSON, Concurrency: 1},
			wantErr: true,
			errMsg:  "path cannot be empty, use '-' to read from stdin",
		},
		{
			name:    "bad format",
			options: typediff.BatchOptions{Path: "pairs.json", Format: "csv", Concurrency: 1},
			wantErr: true,
			errMsg:  `invalid option for --format "csv", allowed values are [text json yaml toml]`,
		},
		{
			name:    "bad input format",
			options: typediff.BatchOptions{Path: "pairs.json", Format: format.JSON, InputFormat: format.Text, Concurrency: 1},
			wantErr: true,
			errMsg:  `invalid option for --input-format "text", allowed values are [json yaml toml]`,
		},
		{
			name:    "stdin needs input format",
			options: typediff.BatchOptions{Path: "-", Format: format.JSON, Concurrency: 1},
			wantErr: true,
			errMsg:  "--input-format is required when reading from stdin",
		},
		{
			name:    "zero concurrency",
			options: typediff.BatchOptions{Path: "pairs.json", Format: format.JSON},
			wantErr: true,
			errMsg:  "concurrency must be at least 1, got 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.options.Validate()
			test.WantErr(t, err, tt.wantErr)

			if err != nil {
				test.Equal(t, err.Error(), tt.errMsg)
			}
		})
	}
}

// simpleErrorHandler returns a [typename.ErrorHandler] that returns a simple, unstyled
// string representation of the error.
func simpleErrorHandler(w io.Writer) typename.ErrorHandler {
	return func(pos typename.Position, msg string) {
		fmt.Fprintf(w, "%s: %s\n", pos, msg)
	}
}
