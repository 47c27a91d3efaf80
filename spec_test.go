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
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"

	"github.com/arborium/arborium/internal/normhtml"
	"github.com/arborium/arborium/internal/spec"
)

func TestSpec(t *testing.T) {
	examples, err := spec.Load()
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range examples {
		t.Run(fmt.Sprintf("Example%d", test.Example), func(t *testing.T) {
			doc := ParseDocument([]byte(test.Markdown), DefaultOptions())
			got, err := RenderHTML(doc, DefaultOptions())
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			want := string(normhtml.NormalizeHTML([]byte(test.HTML)))
			gotNorm := string(normhtml.NormalizeHTML([]byte(got)))
			if diff := cmp.Diff(want, gotNorm, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.Markdown, diff)
			}
		})
	}
}

func TestGFMSpec(t *testing.T) {
	examples, err := spec.LoadGFM()
	if err != nil {
		t.Fatal(err)
	}
	for _, test := range examples {
		t.Run(fmt.Sprintf("Example%d", test.Example), func(t *testing.T) {
			doc := ParseDocument([]byte(test.Markdown), GFMOptions())
			got, err := RenderHTML(doc, GFMOptions())
			if err != nil {
				t.Fatal("RenderHTML:", err)
			}
			want := string(normhtml.NormalizeHTML([]byte(test.HTML)))
			gotNorm := string(normhtml.NormalizeHTML([]byte(got)))
			if diff := cmp.Diff(want, gotNorm, cmpopts.EquateEmpty()); diff != "" {
				t.Errorf("Input:\n%s\nOutput (-want +got):\n%s", test.Markdown, diff)
			}
		})
	}
}
