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

import "strings"

// openFootnoteDefinition recognizes a `[^name]:` marker starting a
// footnote definition (GFM footnotes extension).
func openFootnoteDefinition(p *blockParser) bool {
	if !p.opts.Extension.Footnotes || p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	name, n, ok := scanFootnoteDefinitionMarker(rest)
	if !ok {
		return false
	}
	markerOffset := p.indent()
	p.consumeIndent(markerOffset)
	node := p.openBlock(FootnoteDefinition)
	node.setPayload(&FootnoteDefinitionData{Name: name})
	node.setBlockIndent(markerOffset + n)
	p.advance(n)
	if p.i < len(p.line) && (p.line[p.i] == ' ' || p.line[p.i] == '\t') {
		p.advance(1)
	}
	key := normalizeFootnoteName(name)
	if _, exists := p.footRef[key]; !exists {
		p.footRef[key] = node
	}
	return true
}

func normalizeFootnoteName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// finalizeFootnotes drops every FootnoteDefinition past the first for a
// given name (first-definition-wins, matching ReferenceMap's rule).
// Reference-count renumbering happens later, once the inline parser has
// resolved FootnoteReference usage order (finalizeFootnoteReferences,
// called from parse.go).
func finalizeFootnotes(arena *Arena, root Node, footRef map[string]Node) {
	seen := make(map[string]bool, len(footRef))
	var walk func(Node)
	walk = func(n Node) {
		for c := n.FirstChild(); !c.IsNil(); {
			next := c.Next()
			if c.Kind() == FootnoteDefinition {
				data, _ := c.Payload().(*FootnoteDefinitionData)
				if data != nil {
					key := normalizeFootnoteName(data.Name)
					if seen[key] {
						c.Unlink()
					} else {
						seen[key] = true
					}
				}
			} else {
				walk(c)
			}
			c = next
		}
	}
	walk(root)
}
