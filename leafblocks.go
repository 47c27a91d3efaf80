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

// openBlockQuote recognizes a classic `>` block quote marker, and, on its
// very first line, a GFM alert marker (`> [!NOTE]`) nested inside it.
func openBlockQuote(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	start := p.i
	col := p.col
	p.consumeIndent(p.indent())
	if p.i >= len(p.line) || p.line[p.i] != '>' {
		p.i, p.col = start, col
		return false
	}
	if p.opts.Extension.Greentext && !greentextQuoteHasSpace(p.line, p.i) {
		p.i, p.col = start, col
		return false
	}
	p.advance(1)
	if p.i < len(p.line) && (p.line[p.i] == ' ' || p.line[p.i] == '\t') {
		p.advance(1)
	}
	if p.opts.Extension.Alerts {
		if alertType, n, ok := scanAlertMarker(p.line[p.i:]); ok {
			node := p.openBlock(Alert)
			node.setPayload(&AlertData{AlertType: alertType})
			p.advance(n)
			if p.i < len(p.line) && p.line[p.i] == ' ' {
				p.advance(1)
			}
			return true
		}
	}
	p.openBlock(BlockQuote)
	return true
}

// openDescriptionDetails implements comrak's description_lists extension
// (PHP Markdown Extra syntax): a `:` marker immediately interrupting an
// open Paragraph turns that paragraph into the term of a new
// DescriptionList/DescriptionItem/DescriptionTerm, opening a sibling
// DescriptionDetails (itself holding a Paragraph) for the marker's own
// text; a later `:` line under the same item's last DescriptionDetails
// instead opens another DescriptionDetails under that same item, so one
// term can carry multiple detail blocks. Multiple terms sharing one set
// of details are not supported.
func openDescriptionDetails(p *blockParser) bool {
	if !p.opts.Extension.DescriptionLists || p.container.Kind() != Paragraph {
		return false
	}
	if p.indent() >= 4 {
		return false
	}
	start := p.i
	col := p.col
	p.consumeIndent(p.indent())
	if p.i >= len(p.line) || p.line[p.i] != ':' {
		p.i, p.col = start, col
		return false
	}
	next := byte(0)
	if p.i+1 < len(p.line) {
		next = p.line[p.i+1]
	}
	if next != ' ' && next != '\t' {
		p.i, p.col = start, col
		return false
	}

	para := p.container
	parent := para.Parent()
	p.closeNode(para, p.lineStart+p.i)
	var item Node
	if parent.Kind() == DescriptionDetails {
		item = parent.Parent()
	} else {
		item = wrapRange(p.arena, para, para, DescriptionItem)
		wrapRange(p.arena, para, para, DescriptionTerm)
		wrapRange(p.arena, item, item, DescriptionList)
	}
	p.container = item
	p.openBlock(DescriptionDetails)
	p.openBlock(Paragraph)

	p.advance(1)
	if p.i < len(p.line) && (p.line[p.i] == ' ' || p.line[p.i] == '\t') {
		p.advance(1)
	}
	return true
}

// openMultilineBlockQuote recognizes a standalone `>>>`-style fence line
// (comrak's multiline_block_quote extension): at least three `>`
// characters with nothing else on the line.
func openMultilineBlockQuote(p *blockParser) bool {
	if !p.opts.Extension.MultilineBlockQuotes || p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	n, ok := scanMultilineBlockQuoteFence(rest)
	if !ok || !isBlankLine(rest[n:]) {
		return false
	}
	p.consumeIndent(p.indent())
	node := p.openBlock(MultilineBlockQuote)
	node.setPayload(&MultilineBlockQuoteData{FenceLength: n})
	p.advance(n)
	p.consumeLine()
	return true
}

func openATXHeading(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	h := scanATXHeading(rest)
	if h.level == 0 {
		return false
	}
	p.consumeIndent(p.indent())
	node := p.openBlock(Heading)
	node.setPayload(&HeadingData{Level: h.level})
	node.setContent(append([]byte(nil), h.content.slice(rest)...))
	p.consumeLine()
	p.closeNode(node, p.lineStart+p.i)
	p.container = node.Parent()
	return true
}

// openSetextHeading converts an open, non-empty Paragraph into a Heading
// when the next line is a setext underline (`===` or `---`).
func openSetextHeading(p *blockParser) bool {
	if p.opts.Parse.IgnoreSetext || p.container.Kind() != Paragraph || p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	level := scanSetextUnderline(rest)
	if level == 0 {
		return false
	}
	content := bytes.TrimRight(p.container.Content(), "\n")
	if len(bytes.TrimSpace(content)) == 0 {
		return false
	}
	para := p.container
	parent := para.Parent()
	pos := para.Sourcepos()
	para.Unlink()

	heading := p.arena.alloc(Heading, pos)
	heading.setPayload(&HeadingData{Level: level, Setext: true})
	heading.setContent(append([]byte(nil), content...))
	parent.AppendChild(heading)
	heading.close()

	p.container = parent
	p.consumeLine()
	return true
}

func openThematicBreak(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	if scanThematicBreak(rest) < 0 {
		return false
	}
	p.consumeIndent(p.indent())
	node := p.openBlock(ThematicBreak)
	p.consumeLine()
	p.closeNode(node, p.lineStart+p.i)
	p.container = node.Parent()
	return true
}

func openFencedCodeBlock(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	f := scanCodeFence(rest)
	if f.n == 0 {
		return false
	}
	fenceOffset := p.indent()
	p.consumeIndent(fenceOffset)
	node := p.openBlock(CodeBlock)
	info := ""
	if f.info.isValid() {
		info = string(bytes.TrimSpace(f.info.slice(rest)))
	}
	node.setPayload(&CodeBlockData{
		Fenced:      true,
		FenceChar:   f.char,
		FenceLength: f.n,
		FenceOffset: fenceOffset,
		Info:        info,
	})
	node.setBlockIndent(fenceOffset)
	p.consumeLine()
	return true
}

// openIndentedCodeBlock recognizes a 4-space-indented code block. It
// cannot interrupt an open paragraph (CommonMark's "indented code blocks
// cannot interrupt a paragraph" rule).
func openIndentedCodeBlock(p *blockParser) bool {
	if p.container.Kind() == Paragraph || p.indent() < codeBlockIndentLimit {
		return false
	}
	p.consumeIndent(codeBlockIndentLimit)
	node := p.openBlock(CodeBlock)
	node.setPayload(&CodeBlockData{Fenced: false})
	p.collectContent(node, len(p.line)-p.i)
	p.consumeLine()
	return true
}

// matchCodeBlock implements Phase 1 continuation for both fenced and
// indented code blocks.
func matchCodeBlock(p *blockParser, n Node) bool {
	data, _ := n.Payload().(*CodeBlockData)
	if data == nil {
		return false
	}
	if data.Fenced {
		if p.indent() < 4 {
			rest := p.bytesAfterIndent()
			cf := scanCodeFence(rest)
			if cf.n > 0 && cf.char == data.FenceChar && cf.n >= data.FenceLength && isBlankLine(rest[cf.n:]) {
				p.consumeIndent(p.indent())
				p.advance(cf.n)
				p.consumeLine()
				p.closeNode(n, p.lineStart+p.i)
				return true
			}
		}
		strip := n.blockIndent()
		if strip > 0 {
			available := p.indent()
			if strip < available {
				available = strip
			}
			p.consumeIndent(available)
		}
		p.collectContent(n, len(p.line)-p.i)
		p.consumeLine()
		return true
	}

	// Indented code block: continuation requires >=4 columns of indent, or
	// a blank line (trailing blank lines are trimmed at close).
	if p.restBlank() {
		p.collectContent(n, 0)
		p.consumeLine()
		return true
	}
	if p.indent() < codeBlockIndentLimit {
		return false
	}
	p.consumeIndent(codeBlockIndentLimit)
	p.collectContent(n, len(p.line)-p.i)
	p.consumeLine()
	return true
}
