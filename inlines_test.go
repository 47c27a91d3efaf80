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

import "testing"

func TestDelimiterFlanking(t *testing.T) {
	tests := []struct {
		prefix    string
		run       string
		suffix    string
		wantOpen  bool
		wantClose bool
	}{
		// Official examples for left-flanking and right-flanking:
		{"", "***", "abc", true, false},
		{"  ", "_", "abc", true, false},
		{"", "**", `"abc"`, true, false},
		{" ", "_", `"abc"`, true, false},
		{" abc", "***", "", false, true},
		{" abc", "_", "", false, true},
		{`"abc"`, "**", "", false, true},
		{`"abc"`, "_", "", false, true},
		{" abc", "***", "def", true, true},
		{`"abc"`, "_", `"def"`, true, true},
		{"abc ", "***", " def", false, false},
		{"a ", "_", " b", false, false},

		// Extra examples to demonstrate
		// https://spec.commonmark.org/0.30/#can-open-emphasis
		// and
		// https://spec.commonmark.org/0.30/#can-close-emphasis.
		{"aa", "_", `"bb"`, false, true},
		{`"bb"`, "_", "cc", true, false},
		{"foo-", "_", "(bar)", true, true},
		{"(bar)", "_", "", false, true},
		{"abc", "_", "def", false, false},
	}
	for _, test := range tests {
		source := test.prefix + test.run + test.suffix
		start, end := len(test.prefix), len(test.prefix)+len(test.run)
		gotOpen, gotClose := delimiterFlanking([]byte(source), start, end, test.run[0], false)
		if gotOpen != test.wantOpen || gotClose != test.wantClose {
			t.Errorf("delimiterFlanking(%q, %d, %d, %q) = (%v, %v); want (%v, %v)",
				source, start, end, test.run[0], gotOpen, gotClose, test.wantOpen, test.wantClose)
		}
	}
}

// TestCJKFriendlyEmphasis covers Extension.CJKFriendlyEmphasis. Ordinary
// Han/Hiragana characters are letters, not punctuation, so `_語尾_` sitting
// between other CJK characters is intraword on both sides and `_` emphasis
// never flanks without the extension — even though CJK prose has no word
// boundaries for the intraword rule to meaningfully apply to. With the
// extension, a bordering East Asian Wide/Fullwidth rune counts as
// punctuation for flanking, same as comrak's handling, and the emphasis
// parses.
func TestCJKFriendlyEmphasis(t *testing.T) {
	tests := []struct {
		name string
		cjk  bool
		want string
	}{
		{"disabled", false, "<p>日本語_語尾_です</p>\n"},
		{"enabled", true, "<p>日本語<em>語尾</em>です</p>\n"},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := DefaultOptions()
			opts.Extension.CJKFriendlyEmphasis = test.cjk
			doc := ParseDocument([]byte("日本語_語尾_です"), opts)
			got, err := RenderHTML(doc, opts)
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			if got != test.want {
				t.Errorf("RenderHTML = %q; want %q", got, test.want)
			}
		})
	}
}

func TestParseEmphasis(t *testing.T) {
	tests := []struct {
		markdown string
		wantKind NodeKind
	}{
		{"*foo*", Emph},
		{"**foo**", Strong},
		{"__foo__", Strong},
		{"~~foo~~", Strikethrough},
	}
	for _, test := range tests {
		opts := GFMOptions()
		doc := ParseDocument([]byte(test.markdown), opts)
		para := doc.Root.FirstChild()
		if got := para.Kind(); got != Paragraph {
			t.Fatalf("ParseDocument(%q): root.FirstChild().Kind() = %v; want %v", test.markdown, got, Paragraph)
		}
		child := para.FirstChild()
		if got := child.Kind(); got != test.wantKind {
			t.Errorf("ParseDocument(%q): paragraph.FirstChild().Kind() = %v; want %v", test.markdown, got, test.wantKind)
		}
	}
}

// TestCodeMathSpan covers the `` $`...`$ `` form from
// _examples/original_source/src/tests/commonmark.rs's `math` case.
func TestCodeMathSpan(t *testing.T) {
	opts := DefaultOptions()
	opts.Extension.MathDollars = true
	opts.Extension.MathCode = true
	doc := ParseDocument([]byte("$$x^2$$ and $1 + 2$ and $`y^2`$"), opts)
	got, err := RenderHTML(doc, opts)
	if err != nil {
		t.Fatal("RenderHTML:", err)
	}
	want := `<p><span class="math-display">x^2</span> and <span class="math-inline">1 + 2</span> and <span class="math-inline">y^2</span></p>` + "\n"
	if got != want {
		t.Errorf("RenderHTML = %q; want %q", got, want)
	}
}

// TestSmartPunctuation mirrors the two `parse.smart` cases in
// _examples/original_source/src/tests/options.rs.
func TestSmartPunctuation(t *testing.T) {
	tests := []struct {
		markdown string
		want     string
	}{
		{
			"Why 'hello' \"there\". It's good.",
			"<p>Why ‘hello’ “there”. It’s good.</p>\n",
		},
		{
			"Hm. Hm.. hm... yes- indeed-- quite---!",
			"<p>Hm. Hm.. hm… yes- indeed– quite—!</p>\n",
		},
	}
	for _, test := range tests {
		opts := DefaultOptions()
		opts.Parse.SmartPunctuation = true
		doc := ParseDocument([]byte(test.markdown), opts)
		got, err := RenderHTML(doc, opts)
		if err != nil {
			t.Fatal("RenderHTML:", err)
		}
		if got != test.want {
			t.Errorf("RenderHTML(%q) = %q; want %q", test.markdown, got, test.want)
		}
	}
}

// TestSubscriptStrikethrough mirrors the three cases in
// _examples/original_source/src/tests/subscript.rs: a lone `~` run is
// always Subscript, a double `~~` run is Strikethrough only when that
// extension is enabled alongside Subscript, and with only Subscript
// enabled a double run never becomes Strikethrough.
func TestSubscriptStrikethrough(t *testing.T) {
	tests := []struct {
		name          string
		markdown      string
		subscript     bool
		strikethrough bool
		want          string
	}{
		{
			name:      "subscript",
			markdown:  "H~2~O",
			subscript: true,
			want:      "<p>H<sub>2</sub>O</p>\n",
		},
		{
			name:          "strikethrough_and_subscript",
			markdown:      "~~H~2~O~~",
			subscript:     true,
			strikethrough: true,
			want:          "<p><del>H<sub>2</sub>O</del></p>\n",
		},
		{
			name:      "no_strikethrough_when_only_subscript",
			markdown:  "~~H~2~O~~",
			subscript: true,
			want:      "<p>~~H<sub>2</sub>O~~</p>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := Options{}
			opts.Extension.Subscript = test.subscript
			opts.Extension.Strikethrough = test.strikethrough
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
