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

// openListItem recognizes a bullet or ordered-list marker and either
// extends the currently open List (if its marker type matches) or opens a
// new one, then opens the Item/TaskItem child itself.
func openListItem(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	m := scanListMarker(rest)
	if m.end < 0 {
		return false
	}
	if p.container.Kind() == Paragraph {
		// A list marker cannot interrupt a paragraph if it would start an
		// empty item, or (for ordered lists) if it doesn't start at 1.
		if isBlankLine(rest[m.end:]) {
			return false
		}
		if m.isOrdered() && m.n != 1 {
			return false
		}
	}

	afterMarker := rest[m.end:]
	blankAfter := isBlankLine(afterMarker)
	var padding int
	switch ws := indentLength(afterMarker); {
	case blankAfter:
		padding = 1
	case ws == 0:
		return false
	case ws > 4:
		padding = 1
	default:
		padding = ws
	}

	checked, symbol := false, byte(0)
	isTask, taskN := false, 0
	if p.opts.Extension.Tasklist {
		taskRest := afterMarker
		if !blankAfter {
			taskRest = afterMarker[padding:]
		}
		checked, symbol, taskN, isTask = scanTaskListMarker(taskRest, p.opts.Parse.RelaxedTasklistMatching)
	}

	markerOffset := p.indent()
	listType := Bullet
	var delim ListDelimiter
	var bulletChar byte
	if m.isOrdered() {
		listType = Ordered
		delim = ListDelimiter(m.delim)
	} else {
		bulletChar = m.delim
	}

	reuse := false
	if p.container.Kind() == List {
		if ld, ok := p.container.Payload().(*ListData); ok {
			reuse = ld.ListType == listType && ld.Delimiter == delim && ld.BulletChar == bulletChar
		}
	}

	p.consumeIndent(markerOffset)
	if !reuse {
		listNode := p.openBlock(List)
		listNode.setPayload(&ListData{
			ListType:     listType,
			MarkerOffset: markerOffset,
			Delimiter:    delim,
			BulletChar:   bulletChar,
			Start:        m.n,
			Tight:        true,
		})
	}

	var item Node
	if isTask {
		item = p.openBlock(TaskItem)
		item.setPayload(&TaskItemData{
			ListType: listType, MarkerOffset: markerOffset, Padding: padding,
			Delimiter: delim, BulletChar: bulletChar, Checked: checked, SymbolChar: symbol,
		})
	} else {
		item = p.openBlock(Item)
		item.setPayload(&ItemData{
			ListType: listType, MarkerOffset: markerOffset, Padding: padding,
			Delimiter: delim, BulletChar: bulletChar,
		})
	}
	item.setBlockIndent(markerOffset + m.end + padding)

	p.advance(m.end)
	if !blankAfter {
		p.consumeIndent(padding)
	}
	if isTask {
		p.advance(taskN)
		if p.i < len(p.line) && p.line[p.i] == ' ' {
			p.advance(1)
		}
	}
	return true
}

// matchItem implements continuation for Item/TaskItem: the line must
// either be blank (provided the item isn't still empty on its very first
// line) or reach the item's required indent width.
func matchItem(p *blockParser, n Node) bool {
	if p.restBlank() {
		return !n.FirstChild().IsNil()
	}
	required := n.blockIndent()
	if p.indent() >= required {
		p.consumeIndent(required)
		return true
	}
	return false
}
