// Copyright 2023 Ross Light
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//		 https://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
//
// SPDX-License-Identifier: Apache-2.0

package arborium

import (
	"testing"
	"unicode/utf8"

	"github.com/arborium/arborium/internal/spec"
)

func TestInsecureCharacters(t *testing.T) {
	const input = "Hello,\x00World"
	const want = "Hello,�World"

	doc := ParseDocument([]byte(input), DefaultOptions())
	root := doc.Root
	if got := root.ChildCount(); got != 1 {
		t.Fatalf("root.ChildCount() = %d; want 1", got)
	}
	para := root.FirstChild()
	if got := para.Kind(); got != Paragraph {
		t.Fatalf("root.FirstChild().Kind() = %v; want %v", got, Paragraph)
	}
	if got := para.ChildCount(); got != 1 {
		t.Fatalf("paragraph.ChildCount() = %d; want 1", got)
	}
	text := para.FirstChild()
	if got := text.Kind(); got != Text {
		t.Fatalf("paragraph.FirstChild().Kind() = %v; want %v", got, Text)
	}
	if got := text.Literal(); got != want {
		t.Errorf("paragraph.FirstChild().Literal() = %q; want %q", got, want)
	}
}

// FuzzParsing checks that ParseDocument never panics on arbitrary input
// and that every node's recorded Sourcepos stays within its parent's
// span, the nesting invariant sourcepos tracking must hold.
func FuzzParsing(f *testing.F) {
	examples, err := spec.Load()
	if err != nil {
		f.Fatal(err)
	}
	for _, test := range examples {
		f.Add(test.Markdown)
	}

	f.Fuzz(func(t *testing.T, markdown string) {
		if !utf8.ValidString(markdown) {
			t.Skip("invalid UTF-8")
		}
		doc := ParseDocument([]byte(markdown), GFMOptions())
		verifySourceposNesting(t, doc.Root, NullSourcepos())
	})
}

func verifySourceposNesting(tb testing.TB, n Node, parentSpan Sourcepos) {
	tb.Helper()
	pos := n.Sourcepos()
	if parentSpan.IsValid() && pos.IsValid() {
		if pos.StartLine < parentSpan.StartLine || pos.EndLine > parentSpan.EndLine {
			tb.Errorf("%v sourcepos %+v exceeds parent span %+v", n.Kind(), pos, parentSpan)
		}
	}
	childSpan := pos
	if !childSpan.IsValid() {
		childSpan = parentSpan
	}
	for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
		verifySourceposNesting(tb, c, childSpan)
	}
}
