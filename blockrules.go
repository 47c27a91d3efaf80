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

import "bytes"

// blockRule is the per-kind continuation/finalize behavior consulted by the
// block parser's three-phase loop (blocks.go). It generalizes the
// teacher's blockRules table (teacher blocks.go) to the arena model.
type blockRule struct {
	// match implements Phase 1 continuation: given that n is already open
	// and is the current descent target, consume whatever prefix the
	// cursor needs to and report whether n continues on this line. A leaf
	// that fully handles the remainder of the line itself (fenced code
	// content, an HTML block line, a table row) calls p.consumeLine and
	// returns true; the caller (blocks.go) detects that the line has been
	// fully consumed via p.state.
	match func(p *blockParser, n Node) bool

	// onClose runs finalize work once n's last line has been processed:
	// link-reference-definition extraction, loose-list detection, fence
	// stripping.
	onClose func(p *blockParser, n Node)

	// acceptsLines marks leaf kinds that Phase 3 may append arbitrary text
	// to directly, without wrapping it in a new Paragraph.
	acceptsLines bool
}

var blockRules = map[NodeKind]blockRule{
	BlockQuote:          {match: matchBlockQuote},
	Alert:               {match: matchBlockQuote},
	MultilineBlockQuote: {match: matchMultilineBlockQuote},
	List:                {onClose: onCloseList},
	Item:                {match: matchItem},
	TaskItem:            {match: matchItem},
	CodeBlock:           {match: matchCodeBlock, onClose: onCloseCodeBlock},
	HTMLBlock:           {match: matchHTMLBlock},
	Paragraph:           {onClose: onCloseParagraph},
	FootnoteDefinition:  {match: matchByBlockIndent},
	Table:               {match: matchTableRow},
	FrontMatter:         {match: matchFrontMatter},
}

// blockOpeners lists the container openers tried against a new line, in
// priority order: front matter (only at the very start of the document),
// description details (extension, only while interrupting an open
// paragraph), block quote, multiline block quote (extension), ATX heading,
// fenced code, HTML block, setext heading (only while interrupting an open
// paragraph), thematic break, list item, indented code, table (extension),
// footnote definition (extension).
var blockOpeners = []func(*blockParser) bool{
	openFrontMatter,
	openDescriptionDetails,
	openBlockQuote,
	openMultilineBlockQuote,
	openATXHeading,
	openFencedCodeBlock,
	openHTMLBlock,
	openSetextHeading,
	openThematicBreak,
	openListItem,
	openIndentedCodeBlock,
	openTable,
	openFootnoteDefinition,
}

// matchBlockQuote implements continuation for both BlockQuote and Alert
// (an Alert is a BlockQuote whose first line carried a `[!NOTE]`-style
// marker; once open, it continues exactly like a plain block quote).
func matchBlockQuote(p *blockParser, n Node) bool {
	if p.indent() >= 4 {
		return false
	}
	p.consumeIndent(p.indent())
	if p.i >= len(p.line) || p.line[p.i] != '>' {
		return false
	}
	if p.opts.Extension.Greentext && !greentextQuoteHasSpace(p.line, p.i) {
		return false
	}
	p.advance(1)
	if p.i < len(p.line) && (p.line[p.i] == ' ' || p.line[p.i] == '\t') {
		p.advance(1)
	}
	return true
}

// greentextQuoteHasSpace reports whether the `>` at line[i] is followed
// by a space or tab. Under Extension.Greentext, a `>` marker needs that
// space to open or continue a block quote at all; without it, a line
// like `>implying` stays literal paragraph text instead of quoting it.
func greentextQuoteHasSpace(line []byte, i int) bool {
	return i+1 < len(line) && (line[i+1] == ' ' || line[i+1] == '\t')
}

// matchMultilineBlockQuote continues until a closing fence of at least as
// many `>` characters as the opening fence is seen on its own line.
func matchMultilineBlockQuote(p *blockParser, n Node) bool {
	if p.indent() < 4 {
		rest := p.bytesAfterIndent()
		if fenceLen, ok := scanMultilineBlockQuoteFence(rest); ok && isBlankLine(rest[fenceLen:]) {
			data, _ := n.Payload().(*MultilineBlockQuoteData)
			if data == nil || fenceLen >= data.FenceLength {
				p.consumeIndent(p.indent())
				p.advance(fenceLen)
				p.consumeLine()
				p.closeNode(n, p.lineStart+p.i)
				return true
			}
		}
	}
	return true
}

// matchByBlockIndent is the shared continuation rule for containers
// (footnote definitions) whose continuation lines must simply reach the
// column width recorded in blockIndent when the container was opened.
func matchByBlockIndent(p *blockParser, n Node) bool {
	if p.restBlank() {
		return true
	}
	required := n.blockIndent()
	if p.indent() >= required {
		p.consumeIndent(required)
		return true
	}
	return false
}

// onCloseParagraph extracts any leading link-reference definitions from
// the paragraph's raw content: a paragraph consisting entirely of one or
// more `[label]: url "title"` lines never becomes a rendered Paragraph
// node at all.
func onCloseParagraph(p *blockParser, n Node) {
	content := n.Content()
	rest := extractReferenceDefinitions(p.refs, content)
	if len(rest) == 0 {
		n.Unlink()
		return
	}
	n.setContent(rest)
}

// onCloseList determines whether a list is tight or loose: loose if any
// item but the list's very last block has a blank line after it.
func onCloseList(p *blockParser, n Node) {
	data, _ := n.Payload().(*ListData)
	if data == nil {
		return
	}
	tight := true
loop:
	for item := n.FirstChild(); !item.IsNil(); item = item.Next() {
		isLastItem := item.Next().IsNil()
		for child := item.FirstChild(); !child.IsNil(); child = child.Next() {
			isLastChild := child.Next().IsNil()
			if isLastChild && isLastItem {
				continue
			}
			if child.LastLineBlank() {
				tight = false
				break loop
			}
		}
	}
	data.Tight = tight
}

// onCloseCodeBlock trims trailing blank lines from an indented code
// block's content (fenced blocks keep whatever lines fell between the
// fences verbatim) and stamps the resolved literal.
func onCloseCodeBlock(p *blockParser, n Node) {
	data, _ := n.Payload().(*CodeBlockData)
	if data == nil {
		return
	}
	content := n.Content()
	if !data.Fenced {
		content = bytes.TrimRight(content, "\n")
		if len(content) > 0 {
			content = append(content, '\n')
		}
	}
	data.Literal = string(content)
}
