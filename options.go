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

import "io"

// ExtensionOptions toggles the GFM and comrak-derived extensions on top of
// pure CommonMark.
type ExtensionOptions struct {
	Strikethrough         bool
	Tagfilter             bool
	Table                 bool
	Autolink              bool
	Tasklist              bool
	Superscript           bool
	Subscript             bool
	Underline             bool
	Spoiler               bool
	Highlight             bool
	Footnotes             bool
	DescriptionLists      bool
	FrontMatterDelimiter  string // e.g. "---"; empty disables front matter
	MultilineBlockQuotes  bool
	Alerts                bool
	MathDollars           bool
	MathCode              bool
	ShortCodes            bool
	WikiLinks             bool
	WikiLinksTitleAfterPipe bool
	Greentext             bool
	CJKFriendlyEmphasis   bool

	// HeaderIDs, when non-nil, enables anchor-id generation on headings,
	// prefixed with *HeaderIDs (possibly the empty string).
	HeaderIDs *string

	ImageURLRewriter func(url string) string
	LinkURLRewriter  func(url string) string
}

// ParseOptions configures the block/inline parsing phases.
type ParseOptions struct {
	SmartPunctuation          bool
	DefaultInfoString         string
	RelaxedTasklistMatching   bool
	RelaxedAutolinks          bool
	IgnoreSetext              bool
	TasklistInTable           bool

	// BrokenLinkCallback is consulted when a reference-style link/image
	// label has no matching definition. Returning ok=false leaves the
	// source text as a literal bracket sequence.
	BrokenLinkCallback func(normalized, original string) (url, title string, ok bool)
}

// ListStyle selects the bullet character the CommonMark renderer emits for
// bullet lists that didn't originally use one (or when normalizing).
type ListStyle byte

const (
	ListStyleDash  ListStyle = '-'
	ListStylePlus  ListStyle = '+'
	ListStyleStar  ListStyle = '*'
)

// RenderOptions configures the output renderers.
type RenderOptions struct {
	HardBreaks      bool
	GitHubPreLang   bool
	FullInfoString  bool
	Width           int
	Unsafe          bool
	Escape          bool
	ListStyle       ListStyle
	SourcePos       bool
	EscapedCharSpans bool
	IgnoreEmptyLinks bool
	GFMQuirks        bool
	PreferFenced     bool
	FigureWithCaption bool
	TasklistClasses   bool
	OLWidth           int
	ExperimentalMinimizeCommonmark bool
}

// SyntaxHighlighter lets a caller render fenced-code-block bodies with
// external highlighting instead of plain-escaped text.
type SyntaxHighlighter interface {
	WriteHighlighted(sink io.Writer, lang, code string) error
	WritePreTag(sink io.Writer, attrs map[string]string) error
	WriteCodeTag(sink io.Writer, attrs map[string]string) error
}

// HeadingAdapter lets a caller override heading tag emission (for example
// to add a permalink anchor before the heading content).
type HeadingAdapter interface {
	EnterHeading(w io.Writer, level int, sourcepos Sourcepos) error
	ExitHeading(w io.Writer, level int) error
}

// ImageAdapter lets a caller override image tag emission.
type ImageAdapter interface {
	RenderImage(w io.Writer, url, title, alt string) error
}

// Plugins is the capability record threaded into the HTML renderer: a
// struct of optional hooks the renderer checks for nil, rather than a
// single polymorphic Renderer interface every caller must fully implement.
type Plugins struct {
	SyntaxHighlighter SyntaxHighlighter
	HeadingAdapter    HeadingAdapter
	ImageAdapter      ImageAdapter
}

// Options bundles the three option groups threaded through every parsing
// and rendering phase, plus the plugin capability record.
type Options struct {
	Extension ExtensionOptions
	Parse     ParseOptions
	Render    RenderOptions
	Plugins   Plugins
}

// DefaultOptions returns the pure-CommonMark configuration: every extension
// disabled, render defaults matching the reference implementation.
func DefaultOptions() Options {
	return Options{
		Render: RenderOptions{
			ListStyle: ListStyleDash,
		},
	}
}

// GFMOptions returns the common GitHub-Flavored-Markdown configuration:
// tables, strikethrough, tasklists, autolinks, and tagfiltering enabled.
func GFMOptions() Options {
	opts := DefaultOptions()
	opts.Extension.Strikethrough = true
	opts.Extension.Table = true
	opts.Extension.Autolink = true
	opts.Extension.Tasklist = true
	opts.Extension.Tagfilter = true
	return opts
}

// clampWidth silently clamps an out-of-range width/ol_width value to
// zero instead of rejecting it.
func clampWidth(w int) int {
	if w < 0 {
		return 0
	}
	return w
}
