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

// openTable retroactively converts a single-line open Paragraph into a
// Table when the following line is a valid GFM delimiter row whose column
// count matches the paragraph's pipe-delimited cell count (GFM table
// extension §199-204), the same way openSetextHeading converts a
// Paragraph into a Heading.
func openTable(p *blockParser) bool {
	if !p.opts.Extension.Table || p.container.Kind() != Paragraph {
		return false
	}
	content := p.container.Content()
	if bytes.Count(content, []byte("\n")) != 1 {
		return false
	}
	headerLine := bytes.TrimSuffix(content, []byte("\n"))
	if !bytes.ContainsRune(headerLine, '|') {
		return false
	}
	rest := p.bytesAfterIndent()
	aligns, ok := isTableDelimiterRow(rest)
	if !ok {
		return false
	}
	headerCells := scanTableRowCells(headerLine)
	if len(headerCells) != len(aligns) {
		return false
	}

	para := p.container
	parent := para.Parent()
	pos := para.Sourcepos()
	para.Unlink()

	table := p.arena.alloc(Table, pos)
	table.setPayload(&TableData{Alignments: aligns})
	parent.AppendChild(table)

	headerRow := p.arena.alloc(TableRow, pos)
	table.AppendChild(headerRow)
	for i, c := range headerCells {
		align := AlignNone
		if i < len(aligns) {
			align = aligns[i]
		}
		cell := p.arena.alloc(TableCell, pos)
		cell.setPayload(&TableCellData{Alignment: align, IsHeader: true})
		cell.setContent(append([]byte(nil), bytes.TrimSpace(headerLine[c.start:c.end])...))
		cell.close()
		headerRow.AppendChild(cell)
	}
	headerRow.close()

	p.container = table
	p.consumeLine()
	return true
}

// matchTableRow implements Phase 1 continuation for an open Table: every
// non-blank line becomes a new TableRow of TableCells until a blank line
// or the end of input.
func matchTableRow(p *blockParser, n Node) bool {
	rest := p.bytesAfterIndent()
	if isBlankLine(rest) {
		return false
	}
	data, _ := n.Payload().(*TableData)
	cells := scanTableRowCells(rest)
	row := p.arena.alloc(TableRow, Sourcepos{StartLine: p.lineNo, StartCol: p.col + 1})
	n.AppendChild(row)
	for i, c := range cells {
		align := AlignNone
		if data != nil && i < len(data.Alignments) {
			align = data.Alignments[i]
		}
		cell := p.arena.alloc(TableCell, Sourcepos{StartLine: p.lineNo, StartCol: p.col + 1})
		cell.setPayload(&TableCellData{Alignment: align})
		cell.setContent(append([]byte(nil), bytes.TrimSpace(rest[c.start:c.end])...))
		cell.close()
		row.AppendChild(cell)
	}
	row.close()
	p.consumeLine()
	return true
}
