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

// Package arborium implements a CommonMark-compliant Markdown parser with
// GitHub-Flavored Markdown and popular extensions, producing a navigable
// AST and HTML/CommonMark/XML renderings of it.
//
// The entry points below are thin convenience wrappers over ParseDocument
// plus one of the three renderers; callers that need to inspect or mutate
// the AST between parsing and rendering should call ParseDocument
// directly.
package arborium

// MarkdownToHTML parses source with GFMOptions and renders it to an HTML
// fragment. It is the single-call path for the common case; callers that
// need CommonMark-only parsing, custom options, or plugin hooks should use
// ParseDocument and RenderHTML directly.
func MarkdownToHTML(source []byte) (string, error) {
	doc := ParseDocument(source, GFMOptions())
	return RenderHTML(doc, GFMOptions())
}

// MarkdownToHTMLWithPlugins parses and renders source with the given
// options, including any SyntaxHighlighter/HeadingAdapter/ImageAdapter
// hooks set on opts.Plugins.
func MarkdownToHTMLWithPlugins(source []byte, opts Options) (string, error) {
	doc := ParseDocument(source, opts)
	return RenderHTML(doc, opts)
}

// FormatHTML renders an already-parsed document as HTML.
func FormatHTML(doc *ParseResult, opts Options) (string, error) {
	return RenderHTML(doc, opts)
}

// FormatCommonMark renders an already-parsed document back to canonical
// CommonMark source.
func FormatCommonMark(doc *ParseResult, opts Options) (string, error) {
	return RenderCommonMark(doc, opts)
}

// FormatXML renders an already-parsed document as a CommonMark.dtd XML
// tree dump.
func FormatXML(doc *ParseResult, opts Options) (string, error) {
	return RenderXML(doc, opts)
}
