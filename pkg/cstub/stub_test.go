package cstub

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name string
		sig  Signature
		want string
	}{
		{
			name: "int_with_params",
			sig:  Signature{ReturnType: "int ", Name: "add", Params: "int a, int b"},
			want: "\nint add(int a, int b) {\n" +
				"  // TODO: implement\n" +
				"  *(int *)(&a) = 0;\n" +
				"  *(int *)(&b) = 0;\n" +
				"  return *(int *)(0);\n" +
				"}\n",
		},
		{
			name: "void_void",
			sig:  Signature{ReturnType: "void ", Name: "reset", Params: "void"},
			want: "\nvoid reset(void) {\n" +
				"  // TODO: implement\n" +
				"  return;\n" +
				"}\n",
		},
		{
			name: "void_empty_params",
			sig:  Signature{ReturnType: "void ", Name: "tick", Params: ""},
			want: "\nvoid tick() {\n" +
				"  // TODO: implement\n" +
				"  return;\n" +
				"}\n",
		},
		{
			name: "struct_return_threaded_through",
			sig:  Signature{ReturnType: "struct Point ", Name: "make_point", Params: "int x, int y"},
			want: "\nstruct Point make_point(int x, int y) {\n" +
				"  // TODO: implement\n" +
				"  *(int *)(&x) = 0;\n" +
				"  *(int *)(&y) = 0;\n" +
				"  return *(struct Point *)(0);\n" +
				"}\n",
		},
		{
			name: "pointer_return",
			sig:  Signature{ReturnType: "const char *", Name: "hello", Params: "void"},
			want: "\nconst char *hello(void) {\n" +
				"  // TODO: implement\n" +
				"  return *(const char **)(0);\n" +
				"}\n",
		},
		{
			name: "array_parameter",
			sig:  Signature{ReturnType: "void ", Name: "fill", Params: "int grid[static 9]"},
			want: "\nvoid fill(int grid[static 9]) {\n" +
				"  // TODO: implement\n" +
				"  *(int *)(&grid) = 0;\n" +
				"  return;\n" +
				"}\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.sig))
		})
	}
}

func TestMissing(t *testing.T) {
	declared := Extract("int a(void);\nint b(int n);\nint c(void);\n")

	tests := []struct {
		name        string
		implemented Signatures
		want        []string
	}{
		{name: "none_implemented", implemented: nil, want: []string{"a", "b", "c"}},
		{name: "all_implemented", implemented: declared, want: []string{}},
		{name: "middle_implemented", implemented: Extract("int b(int n) {\n}\n"), want: []string{"a", "c"}},
		{name: "renamed_parameter_is_missing", implemented: Extract("int b(int m) {\n}\n"), want: []string{"a", "b", "c"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Missing(declared, tt.implemented)
			assert.Equal(t, tt.want, got.Names())
		})
	}
}

func TestSynthesizeMissing(t *testing.T) {
	declared := Extract("int a(void);\nint b(void);\n")

	assert.Empty(t, SynthesizeMissing(declared, declared))

	stubs := SynthesizeMissing(declared, Extract("int a(void) {\n  return 0;\n}\n"))
	require.Len(t, stubs, 1)
	assert.True(t, strings.HasPrefix(stubs[0], "\nint b(void) {\n"))
}

func TestFill(t *testing.T) {
	tests := []struct {
		name         string
		header       string
		source       string
		wantModified bool
		wantAdded    []string
		check        func(t *testing.T, modified string)
	}{
		{
			name:         "stub_into_empty_source",
			header:       "int add(int a, int b);\n",
			source:       "",
			wantModified: true,
			wantAdded:    []string{"add"},
			check: func(t *testing.T, modified string) {
				assert.Contains(t, modified, "int add(int a, int b) {\n")
				assert.Contains(t, modified, "  *(int *)(&a) = 0;\n")
				assert.Contains(t, modified, "  *(int *)(&b) = 0;\n")
				assert.Contains(t, modified, "  return *(int *)(0);\n")
			},
		},
		{
			name:         "already_defined_untouched",
			header:       "void reset(void);\n",
			source:       "void reset(void) { }\n",
			wantModified: false,
			wantAdded:    []string{},
			check: func(t *testing.T, modified string) {
				assert.Equal(t, "void reset(void) { }\n", modified)
			},
		},
		{
			name:         "only_missing_appended_after_existing",
			header:       "int a(void);\nint b(void);\n",
			source:       "#include \"ab.h\"\n\nint a(void) {\n  return 1;\n}\n",
			wantModified: true,
			wantAdded:    []string{"b"},
			check: func(t *testing.T, modified string) {
				assert.Equal(t, "#include \"ab.h\"\n\nint a(void) {\n  return 1;\n}\n"+
					"\nint b(void) {\n  // TODO: implement\n  return *(int *)(0);\n}\n", modified)
				assert.Equal(t, 1, strings.Count(modified, "int a(void)"))
			},
		},
		{
			name:         "struct_return_type",
			header:       "struct Point make_point(int x, int y);\n",
			source:       "",
			wantModified: true,
			wantAdded:    []string{"make_point"},
			check: func(t *testing.T, modified string) {
				assert.Contains(t, modified, "return *(struct Point *)(0);")
				assert.NotContains(t, modified, "return *(int *)(0);")
			},
		},
		{
			name:         "stubs_follow_declaration_order",
			header:       "int third(void);\nint first(void);\nint second(void);\n",
			source:       "",
			wantModified: true,
			wantAdded:    []string{"third", "first", "second"},
			check: func(t *testing.T, modified string) {
				i3 := strings.Index(modified, "int third(void) {")
				i1 := strings.Index(modified, "int first(void) {")
				i2 := strings.Index(modified, "int second(void) {")
				assert.True(t, i3 < i1 && i1 < i2, "stubs out of order: %d %d %d", i3, i1, i2)
			},
		},
		{
			name:         "multi_line_declaration_matches_single_line_definition",
			header:       "int add(int a,\n        int b);\n",
			source:       "int add(int a, int b) {\n  return a + b;\n}\n",
			wantModified: false,
			wantAdded:    []string{},
		},
		{
			name:         "renamed_parameter_duplicates",
			header:       "int f(int a);\n",
			source:       "int f(int b) {\n  return b;\n}\n",
			wantModified: true,
			wantAdded:    []string{"f"},
			check: func(t *testing.T, modified string) {
				assert.Equal(t, 2, strings.Count(modified, "int f("))
			},
		},
		{
			name:         "crlf_definition_brace_on_next_line",
			header:       "int c(void);\r\n",
			source:       "int c(void)\r\n{\r\n  return 0;\r\n}\r\n",
			wantModified: false,
			wantAdded:    []string{},
		},
		{
			name:         "crlf_source_gets_crlf_stubs",
			header:       "int add(int a,\r\n        int b);\r\nvoid reset(void);\r\n",
			source:       "#include \"calc.h\"\r\n\r\nvoid reset(void)\r\n{\r\n}\r\n",
			wantModified: true,
			wantAdded:    []string{"add"},
			check: func(t *testing.T, modified string) {
				assert.Equal(t, "#include \"calc.h\"\r\n\r\nvoid reset(void)\r\n{\r\n}\r\n"+
					"\r\nint add(int a, int b) {\r\n  // TODO: implement\r\n  *(int *)(&a) = 0;\r\n  *(int *)(&b) = 0;\r\n  return *(int *)(0);\r\n}\r\n", modified)
				assert.Empty(t, Fill("int add(int a, int b);\r\nvoid reset(void);\r\n", modified).Added)
			},
		},
		{
			name:         "malformed_declaration_ignored",
			header:       "int broken(int);\n",
			source:       "",
			wantModified: false,
			wantAdded:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := Fill(tt.header, tt.source)

			require.NotNil(t, result)
			assert.Equal(t, tt.source, string(result.Original))
			assert.Equal(t, tt.wantModified, result.WasModified)
			assert.Equal(t, tt.wantAdded, result.Added.Names())
			if !tt.wantModified {
				assert.Equal(t, tt.source, string(result.Modified))
			}
			if tt.check != nil {
				tt.check(t, string(result.Modified))
			}
		})
	}
}

func TestFill_Idempotent(t *testing.T) {
	header := "#ifndef CALC_H\n#define CALC_H\n\nint add(int a, int b);\nvoid reset(void);\nconst char *name(const char *prefix,\n                 unsigned int n);\n\n#endif\n"
	source := "#include \"calc.h\"\n"

	first := Fill(header, source)
	require.True(t, first.WasModified)
	assert.Equal(t, []string{"add", "reset", "name"}, first.Added.Names())

	second := Fill(header, string(first.Modified))
	assert.False(t, second.WasModified)
	assert.Empty(t, second.Added)
	assert.Equal(t, first.Modified, second.Modified)
}

func TestStubber_FillStubs(t *testing.T) {
	stubber := NewStubber()

	result, err := stubber.FillStubs(context.Background(),
		strings.NewReader("int a(void);\n"),
		strings.NewReader(""))
	require.NoError(t, err)
	assert.True(t, result.WasModified)

	readErr := errors.New("disk gone")

	_, err = stubber.FillStubs(context.Background(), iotest.ErrReader(readErr), strings.NewReader(""))
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "reading header")

	_, err = stubber.FillStubs(context.Background(), strings.NewReader(""), iotest.ErrReader(readErr))
	require.Error(t, err)
	assert.ErrorIs(t, err, readErr)
	assert.Contains(t, err.Error(), "reading source")
}
