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

package arborium_test

import (
	"fmt"

	"github.com/arborium/arborium"
)

func Example() {
	html, err := arborium.MarkdownToHTML([]byte("Hello, **World**!\n"))
	if err != nil {
		panic(err)
	}
	fmt.Print(html)
	// Output:
	// <p>Hello, <strong>World</strong>!</p>
}

func ExampleParseDocument() {
	const input = "Hello, [World][]!\n" +
		"\n" +
		"[World]: https://www.example.com/\n"

	doc := arborium.ParseDocument([]byte(input), arborium.DefaultOptions())
	html, err := arborium.RenderHTML(doc, arborium.DefaultOptions())
	if err != nil {
		panic(err)
	}
	fmt.Print(html)
	// Output:
	// <p>Hello, <a href="https://www.example.com/">World</a>!</p>
}

func ExampleMarkdownToHTMLWithPlugins() {
	const input = "# Title\n\n" +
		"~~struck~~ and ==highlighted==.\n"

	opts := arborium.GFMOptions()
	opts.Extension.Highlight = true
	html, err := arborium.MarkdownToHTMLWithPlugins([]byte(input), opts)
	if err != nil {
		panic(err)
	}
	fmt.Print(html)
	// Output:
	// <h1>Title</h1>
	// <p><del>struck</del> and <mark>highlighted</mark>.</p>
}
