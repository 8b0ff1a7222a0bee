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
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// TodoMarker is the first line of every generated body.
const TodoMarker = "// TODO: implement"

// 🔄 Missing returns the declared signatures that are not implemented, in declaration order.
func Missing(declared, implemented Signatures) Signatures {
	var missing Signatures
	for _, sig := range declared {
		if !implemented.Contains(sig) {
			missing = append(missing, sig)
		}
	}
	return missing
}

// 📝 Render returns the placeholder definition for sig.
//
// Every parameter is zeroed through an int pointer so strict compilers do not
// flag it as unused. Non-void functions dereference a null pointer of the
// declared return type and crash if called before they are written.
func Render(sig Signature) string {
	var b strings.Builder
	b.WriteString("\n")
	fmt.Fprintf(&b, "%s%s(%s) {\n", sig.ReturnType, sig.Name, sig.Params)
	fmt.Fprintf(&b, "  %s\n", TodoMarker)
	for _, name := range sig.ParamNames() {
		fmt.Fprintf(&b, "  *(int *)(&%s) = 0;\n", name)
	}
	if sig.IsVoid() {
		b.WriteString("  return;\n")
	} else {
		fmt.Fprintf(&b, "  return *(%s*)(0);\n", sig.ReturnType)
	}
	b.WriteString("}\n")
	return b.String()
}

// SynthesizeMissing renders a stub for every missing signature. An empty
// result means the source needs no change.
func SynthesizeMissing(declared, implemented Signatures) []string {
	missing := Missing(declared, implemented)
	stubs := make([]string, 0, len(missing))
	for _, sig := range missing {
		stubs = append(stubs, Render(sig))
	}
	return stubs
}

// 📦 FillResult describes the outcome of synchronizing one header/source pair.
type FillResult struct {
	Original    []byte     // Source content before stubbing
	Modified    []byte     // Source content with stubs appended
	Added       Signatures // Signatures that received a stub
	WasModified bool       // False means nothing is missing and nothing should be written
}

// 🎯 Fill appends a stub to source for every function declared in header but
// not implemented in source. Stubs use CRLF line endings when source does.
func Fill(header, source string) *FillResult {
	declared := Extract(header)
	implemented := Extract(source)

	result := &FillResult{
		Original: []byte(source),
		Modified: []byte(source),
		Added:    Missing(declared, implemented),
	}
	if len(result.Added) == 0 {
		return result
	}

	crlf := strings.Contains(source, "\r\n")

	var b strings.Builder
	b.WriteString(source)
	for _, sig := range result.Added {
		stub := Render(sig)
		if crlf {
			stub = strings.ReplaceAll(stub, "\n", "\r\n")
		}
		b.WriteString(stub)
	}
	result.Modified = []byte(b.String())
	result.WasModified = true
	return result
}

// Stubber fills stubs from streamed file contents.
type Stubber struct{}

// NewStubber creates a new Stubber
func NewStubber() *Stubber {
	return &Stubber{}
}

// FillStubs reads header and source fully and runs Fill on them. Read errors
// are returned as is, wrapped with the side that failed.
func (s *Stubber) FillStubs(ctx context.Context, header, source io.Reader) (*FillResult, error) {
	headerContent, err := io.ReadAll(header)
	if err != nil {
		return nil, errors.Errorf("reading header: %w", err)
	}
	sourceContent, err := io.ReadAll(source)
	if err != nil {
		return nil, errors.Errorf("reading source: %w", err)
	}

	result := Fill(string(headerContent), string(sourceContent))

	zerolog.Ctx(ctx).Debug().
		Strs("added", result.Added.Names()).
		Bool("modified", result.WasModified).
		Msg("filled stubs")

	return result, nil
}
