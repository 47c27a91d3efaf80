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

	"github.com/google/go-cmp/cmp"
)

func TestScanThematicBreak(t *testing.T) {
	tests := []struct {
		line string
		want int
	}{
		{"", -1},
		{"---\n", 3},
		{"***\n", 3},
		{"___\n", 3},
		{"+++\n", -1},
		{"===\n", -1},
		{"--\n", -1},
		{"**\n", -1},
		{"__\n", -1},
		{"_____________________________________\n", 37},
		{"- - -\n", 5},
		{"**  * ** * ** * **\n", 18},
		{"-     -      -      -\n", 21},
		{"- - - -    \n", 7},
		{"_ _ _ _ a\n", -1},
		{"a------\n", -1},
		{"---a---\n", -1},
		{"*-*\n", -1},
	}
	for _, test := range tests {
		if got := scanThematicBreak([]byte(test.line)); got != test.want {
			t.Errorf("scanThematicBreak(%q) = %d; want %d", test.line, got, test.want)
		}
	}
}

func TestScanATXHeading(t *testing.T) {
	tests := []struct {
		line string
		want atxHeading
	}{
		{"# foo\n", atxHeading{level: 1, content: span{2, 5}}},
		{"## foo\n", atxHeading{level: 2, content: span{3, 6}}},
		{"### foo\n", atxHeading{level: 3, content: span{4, 7}}},
		{"#### foo\n", atxHeading{level: 4, content: span{5, 8}}},
		{"##### foo\n", atxHeading{level: 5, content: span{6, 9}}},
		{"###### foo\n", atxHeading{level: 6, content: span{7, 10}}},
		{"####### foo\n", atxHeading{}},
		{"#5 bolt\n", atxHeading{}},
		{"#hashtag\n", atxHeading{}},
		{"\\## foo\n", atxHeading{}},
		{"# foo *bar* \\*baz\\*\n", atxHeading{level: 1, content: span{2, 19}}},
		{
			"#                  foo                     \n",
			atxHeading{level: 1, content: span{19, 22}},
		},
		{"## foo ##\n", atxHeading{level: 2, content: span{3, 6}}},
		{"# foo ##################################\n", atxHeading{level: 1, content: span{2, 5}}},
		{"##### foo ##\n", atxHeading{level: 5, content: span{6, 9}}},
		{"### foo ###     \n", atxHeading{level: 3, content: span{4, 7}}},
		{"### foo ### b\n", atxHeading{level: 3, content: span{4, 13}}},
		{"# foo#\n", atxHeading{level: 1, content: span{2, 6}}},
		{"### foo \\###\n", atxHeading{level: 3, content: span{4, 12}}},
		{"## foo #\\##\n", atxHeading{level: 2, content: span{3, 11}}},
		{"# foo \\#\n", atxHeading{level: 1, content: span{2, 8}}},
		{"## \n", atxHeading{level: 2, content: span{3, 3}}},
		{"#\n", atxHeading{level: 1, content: span{1, 1}}},
		{"### ###\n", atxHeading{level: 3, content: span{4, 4}}},

		{"# foo \\  #\n", atxHeading{level: 1, content: span{2, 8}}},
	}
	for _, test := range tests {
		got := scanATXHeading([]byte(test.line))
		if diff := cmp.Diff(test.want, got, cmp.AllowUnexported(atxHeading{}, span{})); diff != "" {
			t.Errorf("scanATXHeading(%q) (-want +got):\n%s", test.line, diff)
		}
	}
}

func TestParseBlocksNesting(t *testing.T) {
	const input = "> - item one\n>   continued\n> - item two\n"
	doc := ParseDocument([]byte(input), DefaultOptions())
	bq := doc.Root.FirstChild()
	if got := bq.Kind(); got != BlockQuote {
		t.Fatalf("root.FirstChild().Kind() = %v; want %v", got, BlockQuote)
	}
	list := bq.FirstChild()
	if got := list.Kind(); got != List {
		t.Fatalf("blockquote.FirstChild().Kind() = %v; want %v", got, List)
	}
	if got := list.ChildCount(); got != 2 {
		t.Errorf("list.ChildCount() = %d; want 2", got)
	}
}

// TestDescriptionList covers comrak's description_lists extension
// (PHP Markdown Extra syntax): a paragraph immediately followed by a
// `:`-marked line becomes a term/details pair, and a further `:` line
// adds another details block under the same term.
func TestDescriptionList(t *testing.T) {
	opts := DefaultOptions()
	opts.Extension.DescriptionLists = true
	doc := ParseDocument([]byte("Apple\n: A fruit\n: Also a company\n"), opts)

	list := doc.Root.FirstChild()
	if got := list.Kind(); got != DescriptionList {
		t.Fatalf("root.FirstChild().Kind() = %v; want %v", got, DescriptionList)
	}
	item := list.FirstChild()
	if got := item.Kind(); got != DescriptionItem {
		t.Fatalf("list.FirstChild().Kind() = %v; want %v", got, DescriptionItem)
	}
	term := item.FirstChild()
	if got := term.Kind(); got != DescriptionTerm {
		t.Fatalf("item.FirstChild().Kind() = %v; want %v", got, DescriptionTerm)
	}
	var details []Node
	for c := term.Next(); !c.IsNil(); c = c.Next() {
		if got := c.Kind(); got != DescriptionDetails {
			t.Fatalf("item child Kind() = %v; want %v", got, DescriptionDetails)
		}
		details = append(details, c)
	}
	if len(details) != 2 {
		t.Fatalf("len(details) = %d; want 2", len(details))
	}

	got, err := RenderHTML(doc, opts)
	if err != nil {
		t.Fatal("RenderHTML:", err)
	}
	want := "<dl>\n<dt>\n<p>Apple</p>\n</dt>\n" +
		"<dd>\n<p>A fruit</p>\n</dd>\n" +
		"<dd>\n<p>Also a company</p>\n</dd>\n</dl>\n"
	if got != want {
		t.Errorf("RenderHTML = %q; want %q", got, want)
	}
}

// TestGreentext mirrors _examples/original_source/src/tests/greentext.rs:
// Extension.Greentext requires a space after `>` to open a block quote,
// so an unspaced marker stays literal paragraph text.
func TestGreentext(t *testing.T) {
	tests := []struct {
		name     string
		markdown string
		want     string
	}{
		{
			name:     "Preserved",
			markdown: ">implying\n>>implying",
			want:     "<p>&gt;implying<br />\n&gt;&gt;implying</p>\n",
		},
		{
			name:     "EmptyLine",
			markdown: ">",
			want:     "<p>&gt;</p>\n",
		},
		{
			name:     "SeparateQuotesOnLineEnd",
			markdown: "> 1\n>\n> 2",
			want:     "<blockquote>\n<p>1</p>\n</blockquote>\n<p>&gt;</p>\n<blockquote>\n<p>2</p>\n</blockquote>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Extension.Greentext = true
			if test.name == "Preserved" {
				opts.Render.HardBreaks = true
			}
			doc := ParseDocument([]byte(test.markdown), opts)
			got, err := RenderHTML(doc, opts)
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			if got != test.want {
				t.Errorf("RenderHTML(%q) = %q; want %q", test.markdown, got, test.want)
			}
		})
	}
}
