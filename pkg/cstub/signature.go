// Copyright 2025 walteh LLC
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cstub

import (
	"fmt"
	"regexp"
	"strings"
)

// 🧩 Grammar building blocks. Each later pattern embeds the earlier ones.
const (
	// typePattern matches qualifiers, one type word and trailing stars: "const char *".
	typePattern = `(?:(?:const|unsigned|struct) )*\w+ \**`

	// paramPattern captures the parameter name and swallows an array suffix.
	paramPattern = typePattern + `(\w+)(?:\[(?:static )?.*?\])?`

	// paramsPattern captures the text between the parentheses.
	paramsPattern = `\((|void|` + paramPattern + `(?:,[ \n\t]*` + paramPattern + `)*)\)`

	// funcPattern anchors on a line boundary and ends at ';' or '{'.
	funcPattern = `(?:\n|^)(` + typePattern + `)(\w+)` + paramsPattern + `(?:;|\s?\{)`
)

var (
	paramRe = regexp.MustCompile(paramPattern)
	funcRe  = regexp.MustCompile(`(?s)` + funcPattern)
	spaceRe = regexp.MustCompile(`\s+`)
)

// 📝 Signature is the (return type, name, parameters) triple of a C function.
//
// Two signatures name the same function only when all three fields are equal,
// so parameter names are part of the identity.
type Signature struct {
	ReturnType string // Return type as written, including the trailing space or stars
	Name       string // Bare identifier
	Params     string // Parameter list text with whitespace runs collapsed
}

// String renders the signature as a prototype without the trailing semicolon.
func (s Signature) String() string {
	return fmt.Sprintf("%s%s(%s)", s.ReturnType, s.Name, s.Params)
}

// IsVoid reports whether the function returns nothing.
func (s Signature) IsVoid() bool {
	return strings.TrimSpace(s.ReturnType) == "void"
}

// ParamNames returns the identifiers of every parameter, in order.
func (s Signature) ParamNames() []string {
	if s.Params == "" || s.Params == "void" {
		return nil
	}
	var names []string
	for _, m := range paramRe.FindAllStringSubmatch(s.Params, -1) {
		names = append(names, m[1])
	}
	return names
}

// 📚 Signatures is an ordered signature set, in order of first occurrence.
type Signatures []Signature

// Contains reports whether sig is structurally equal to one of the entries.
func (ss Signatures) Contains(sig Signature) bool {
	for _, s := range ss {
		if s == sig {
			return true
		}
	}
	return false
}

// Names returns the function names, for logging.
func (ss Signatures) Names() []string {
	names := make([]string, 0, len(ss))
	for _, s := range ss {
		names = append(names, s.Name)
	}
	return names
}

// 🔍 Extract returns every function declaration and definition in text.
//
// Text the grammar does not match is skipped; Extract never fails. CRLF line
// endings are read as LF.
func Extract(text string) Signatures {
	matches := funcRe.FindAllStringSubmatch(normalizeNewlines(text), -1)
	sigs := make(Signatures, 0, len(matches))
	for _, m := range matches {
		sigs = append(sigs, Signature{
			ReturnType: m[1],
			Name:       m[2],
			Params:     normalizeSpace(m[3]),
		})
	}
	return sigs
}

func normalizeNewlines(s string) string {
	return strings.ReplaceAll(s, "\r\n", "\n")
}

// normalizeSpace collapses every whitespace run, newlines included, to one space.
func normalizeSpace(s string) string {
	return spaceRe.ReplaceAllString(s, " ")
}
