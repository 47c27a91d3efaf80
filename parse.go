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

// ParseResult is the result of parsing a Markdown source document: a tree
// rooted at a Document node, plus the tables used to resolve references
// discovered while parsing its inlines.
type ParseResult struct {
	arena *Arena
	Root  Node
	refs  *ReferenceMap
}

// ParseDocument parses source (CommonMark plus whatever extensions opts
// enables) into a ParseResult, running the block parser followed by the
// inline parser over every leaf block, then a final pass that resolves
// footnote reference numbering now that usage order is known.
//
// The whole normalized source is held in memory and returned as a single
// tree; there is no streaming or incremental parsing API.
func ParseDocument(source []byte, opts Options) *ParseResult {
	source = normalizeSource(source)
	arena, root, refs := parseBlocks(source, opts)
	parseAllInlines(arena, root, opts, refs)
	finalizeFootnoteReferences(root)
	return &ParseResult{arena: arena, Root: root, refs: refs}
}

// normalizeSource replaces embedded NUL bytes with the Unicode
// replacement character (CommonMark §2.3), strips a leading UTF-8 BOM, and
// turns CRLF and bare CR line endings into LF.
func normalizeSource(source []byte) []byte {
	source = bytes.TrimPrefix(source, []byte{0xEF, 0xBB, 0xBF})
	if bytes.IndexByte(source, '\r') >= 0 {
		source = bytes.ReplaceAll(source, []byte("\r\n"), []byte("\n"))
		source = bytes.ReplaceAll(source, []byte("\r"), []byte("\n"))
	}
	if bytes.IndexByte(source, 0) < 0 {
		return source
	}
	return bytes.ReplaceAll(source, []byte{0}, []byte("�"))
}

// parseAllInlines walks every leaf block capable of holding raw inline
// content (Paragraph, Heading, TableCell) and runs the inline parser over
// it in document order, so link reference definitions and footnote
// definitions collected during block parsing are visible to every inline
// scan.
func parseAllInlines(arena *Arena, root Node, opts Options, refs *ReferenceMap) {
	footRef := collectFootnoteDefinitions(root)
	Walk(root, &WalkOptions{
		Pre: func(c *Cursor) bool {
			switch c.Node().Kind() {
			case Paragraph, Heading, TableCell:
				parseInlinesInto(c.Node(), arena, opts, refs, footRef)
				return false
			}
			return true
		},
	})
}

func collectFootnoteDefinitions(root Node) map[string]Node {
	footRef := make(map[string]Node)
	Walk(root, &WalkOptions{Pre: func(c *Cursor) bool {
		if c.Node().Kind() == FootnoteDefinition {
			data, _ := c.Node().Payload().(*FootnoteDefinitionData)
			if data != nil {
				footRef[normalizeFootnoteName(data.Name)] = c.Node()
			}
		}
		return true
	}})
	return footRef
}

// finalizeFootnoteReferences assigns each FootnoteReference its reference
// number (order of first use across the document) and use-index (which
// occurrence of a given name it is, for anchor disambiguation when the
// same footnote is cited more than once), and records each definition's
// total reference count for the renderer's backlink list.
func finalizeFootnoteReferences(root Node) {
	order := make(map[string]int)
	counts := make(map[string]int)
	next := 1
	Walk(root, &WalkOptions{Pre: func(c *Cursor) bool {
		if c.Node().Kind() != FootnoteReference {
			return true
		}
		data, _ := c.Node().Payload().(*FootnoteReferenceData)
		if data == nil {
			return true
		}
		key := normalizeFootnoteName(data.Name)
		refNum, seen := order[key]
		if !seen {
			refNum = next
			next++
			order[key] = refNum
		}
		counts[key]++
		data.RefNum = refNum
		data.IxNum = counts[key]
		return true
	}})
	Walk(root, &WalkOptions{Pre: func(c *Cursor) bool {
		if c.Node().Kind() != FootnoteDefinition {
			return true
		}
		data, _ := c.Node().Payload().(*FootnoteDefinitionData)
		if data != nil {
			data.TotalRef = counts[normalizeFootnoteName(data.Name)]
		}
		return true
	}})
}
