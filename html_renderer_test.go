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
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/arborium/arborium/internal/normhtml"
)

func TestSoftBreakBehavior(t *testing.T) {
	tests := []struct {
		name       string
		hardBreaks bool
		input      string
		want       string
	}{
		{
			name:  "Default",
			input: "Hello\nWorld!",
			want:  "<p>Hello\nWorld!</p>\n",
		},
		{
			name:  "CRLFNormalized",
			input: "Hello\r\nWorld!",
			want:  "<p>Hello\nWorld!</p>\n",
		},
		{
			name:       "Harden",
			hardBreaks: true,
			input:      "Hello\r\nWorld!",
			want:       "<p>Hello<br />\nWorld!</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Render.HardBreaks = test.hardBreaks
			doc := ParseDocument([]byte(test.input), opts)
			got, err := RenderHTML(doc, opts)
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			if got != test.want {
				t.Errorf("RenderHTML(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestHTMLRendererUnsafe(t *testing.T) {
	tests := []struct {
		name   string
		unsafe bool
		input  string
		want   string
	}{
		{
			name:  "NoRaw",
			input: "Hello World!",
			want:  "<p>Hello World!</p>\n",
		},
		{
			name:  "MarkdownStrong",
			input: "Hello **World**!",
			want:  "<p>Hello <strong>World</strong>!</p>\n",
		},
		{
			name:  "HTMLStrongEscaped",
			input: "Hello <strong>World</strong>!",
			want:  "<p>Hello &lt;strong&gt;World&lt;/strong&gt;!</p>\n",
		},
		{
			name:  "HTMLBlockDropped",
			input: "<table>\n<tr><td>Hello</td></tr>\n</table>\n",
			want:  "",
		},
		{
			name:   "HTMLStrongUnsafe",
			unsafe: true,
			input:  "Hello <strong>World</strong>!",
			want:   "<p>Hello <strong>World</strong>!</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Render.Unsafe = test.unsafe
			doc := ParseDocument([]byte(test.input), opts)
			got, err := RenderHTML(doc, opts)
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			if got != test.want {
				t.Errorf("RenderHTML(%q) = %q; want %q", test.input, got, test.want)
			}
		})
	}
}

func TestHTMLRendererTagfilter(t *testing.T) {
	const input = "<strong> <title> <style> <em>\n\n" +
		"<blockquote>\n" +
		"  <xmp> is disallowed.  <XMP> is also disallowed.\n" +
		"</blockquote>\n"

	opts := GFMOptions()
	opts.Render.Unsafe = true
	opts.Extension.Tagfilter = true
	doc := ParseDocument([]byte(input), opts)
	got, err := RenderHTML(doc, opts)
	if err != nil {
		t.Fatal("RenderHTML:", err)
	}
	const want = "<p><strong> &lt;title> &lt;style> <em></p>\n" +
		"<blockquote>\n" +
		"  &lt;xmp> is disallowed.  &lt;XMP> is also disallowed.\n" +
		"</blockquote>\n"
	gotNorm := normhtml.NormalizeHTML([]byte(got))
	wantNorm := normhtml.NormalizeHTML([]byte(want))
	if diff := cmp.Diff(wantNorm, gotNorm, cmpopts.EquateEmpty()); diff != "" {
		t.Errorf("RenderHTML(%q) (-want +got):\n%s", input, diff)
	}
}
