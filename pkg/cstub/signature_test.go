package cstub

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name string
		text string
		want Signatures
	}{
		{
			name: "simple_declaration",
			text: "int add(int a, int b);",
			want: Signatures{{ReturnType: "int ", Name: "add", Params: "int a, int b"}},
		},
		{
			name: "crlf_line_endings",
			text: "int add(int a,\r\n        int b);\r\nint c(void)\r\n{\r\n}\r\n",
			want: Signatures{
				{ReturnType: "int ", Name: "add", Params: "int a, int b"},
				{ReturnType: "int ", Name: "c", Params: "void"},
			},
		},
		{
			name: "void_params",
			text: "void reset(void);",
			want: Signatures{{ReturnType: "void ", Name: "reset", Params: "void"}},
		},
		{
			name: "empty_params_kept_verbatim",
			text: "void tick();",
			want: Signatures{{ReturnType: "void ", Name: "tick", Params: ""}},
		},
		{
			name: "qualified_pointer_return",
			text: "#ifndef HELLO_H\n#define HELLO_H\n\nconst char *hello(void);\n\n#endif\n",
			want: Signatures{{ReturnType: "const char *", Name: "hello", Params: "void"}},
		},
		{
			name: "struct_return",
			text: "struct Point make_point(int x, int y);",
			want: Signatures{{ReturnType: "struct Point ", Name: "make_point", Params: "int x, int y"}},
		},
		{
			name: "unsigned_and_double_pointer",
			text: "unsigned int count(const char **words, unsigned long n);",
			want: Signatures{{ReturnType: "unsigned int ", Name: "count", Params: "const char **words, unsigned long n"}},
		},
		{
			name: "array_suffixes",
			text: "void fill(int grid[static 9], int row[], char name[16]);",
			want: Signatures{{ReturnType: "void ", Name: "fill", Params: "int grid[static 9], int row[], char name[16]"}},
		},
		{
			name: "definitions_with_and_without_space",
			text: "int a(void) {\n  return 1;\n}\n\nint b(void){\n  return 2;\n}\n\nint c(void)\n{\n  return 3;\n}\n",
			want: Signatures{
				{ReturnType: "int ", Name: "a", Params: "void"},
				{ReturnType: "int ", Name: "b", Params: "void"},
				{ReturnType: "int ", Name: "c", Params: "void"},
			},
		},
		{
			name: "multi_line_params_collapsed",
			text: "int add(int a,\n\t        int b);",
			want: Signatures{{ReturnType: "int ", Name: "add", Params: "int a, int b"}},
		},
		{
			name: "source_order_preserved",
			text: "int z(void);\nint y(void);\nint x(void);\n",
			want: Signatures{
				{ReturnType: "int ", Name: "z", Params: "void"},
				{ReturnType: "int ", Name: "y", Params: "void"},
				{ReturnType: "int ", Name: "x", Params: "void"},
			},
		},
		{
			name: "indented_statements_ignored",
			text: "int a(void) {\n  int x = b(1);\n  return x;\n}\n",
			want: Signatures{{ReturnType: "int ", Name: "a", Params: "void"}},
		},
		{
			name: "unnamed_parameter_skipped",
			text: "int broken(int);\nint fine(int n);\n",
			want: Signatures{{ReturnType: "int ", Name: "fine", Params: "int n"}},
		},
		{
			name: "function_pointer_skipped",
			text: "void on(void (*cb)(int));\n",
			want: Signatures{},
		},
		{
			name: "empty_text",
			text: "",
			want: Signatures{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.text)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtract_WhitespaceInsensitive(t *testing.T) {
	single := Extract("bool is_valid(const char *isbn, int length, unsigned int flags);")
	multi := Extract("bool is_valid(const char *isbn,\n               int length,\n\t\tunsigned int flags);")

	assert.Len(t, single, 1)
	assert.Equal(t, single, multi)
}

func TestSignature_ParamNames(t *testing.T) {
	tests := []struct {
		name   string
		params string
		want   []string
	}{
		{name: "void", params: "void", want: nil},
		{name: "empty", params: "", want: nil},
		{name: "single", params: "int n", want: []string{"n"}},
		{name: "pointers", params: "const char *s, struct Node **head", want: []string{"s", "head"}},
		{name: "arrays", params: "int grid[static 9], int row[]", want: []string{"grid", "row"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sig := Signature{ReturnType: "void ", Name: "f", Params: tt.params}
			assert.Equal(t, tt.want, sig.ParamNames())
		})
	}
}

func TestSignatures_Contains(t *testing.T) {
	set := Signatures{
		{ReturnType: "int ", Name: "f", Params: "int a"},
	}

	assert.True(t, set.Contains(Signature{ReturnType: "int ", Name: "f", Params: "int a"}))
	assert.False(t, set.Contains(Signature{ReturnType: "int ", Name: "f", Params: "int b"}), "parameter names are part of the identity")
	assert.False(t, set.Contains(Signature{ReturnType: "long ", Name: "f", Params: "int a"}))
}
