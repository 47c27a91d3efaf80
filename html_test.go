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
	"bytes"
	"testing"

	"github.com/arborium/arborium/internal/spec"
)

func TestRenderAlert(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "Note",
			input: "> [!NOTE]\n> Useful information.\n",
			want: `<div class="alert alert-note">` + "\n" +
				`<p class="alert-title">Note</p>` + "\n" +
				"<p>Useful information.</p>\n" +
				"</div>\n",
		},
		{
			name:  "CaseInsensitiveKind",
			input: "> [!caution]\n> Risky.\n",
			want: `<div class="alert alert-caution">` + "\n" +
				`<p class="alert-title">Caution</p>` + "\n" +
				"<p>Risky.</p>\n" +
				"</div>\n",
		},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			opts := GFMOptions()
			opts.Extension.Alerts = true
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

func TestIgnoreEmptyLinks(t *testing.T) {
	opts := DefaultOptions()
	opts.Render.IgnoreEmptyLinks = true
	doc := ParseDocument([]byte("[](http://x)"), opts)
	got, err := RenderHTML(doc, opts)
	if err != nil {
		t.Fatal("RenderHTML:", err)
	}
	want := "<p>[](http://x)</p>\n"
	if got != want {
		t.Errorf("RenderHTML with IgnoreEmptyLinks = %q; want %q", got, want)
	}
}

func BenchmarkRenderHTML(b *testing.B) {
	examples, err := spec.Load()
	if err != nil {
		b.Fatal(err)
	}
	input := new(bytes.Buffer)
	for i, test := range examples {
		if i > 0 {
			input.WriteString("\n\n")
		}
		input.WriteString(test.Markdown)
	}
	opts := GFMOptions()
	doc := ParseDocument(input.Bytes(), opts)
	b.ResetTimer()
	b.SetBytes(int64(input.Len()))
	b.ReportMetric(float64(len(examples)), "examples/op")

	for i := 0; i < b.N; i++ {
		if _, err := RenderHTML(doc, opts); err != nil {
			b.Fatal(err)
		}
	}
}
