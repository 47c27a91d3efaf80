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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTable(t *testing.T) {
	const input = "| Left | Center | Right |\n" +
		"| :--- | :----: | ----: |\n" +
		"| a    | b      | c     |\n"

	opts := GFMOptions()
	doc := ParseDocument([]byte(input), opts)

	table := doc.Root.FirstChild()
	require.Equal(t, Table, table.Kind(), "root.FirstChild().Kind()")
	data, ok := table.Payload().(*TableData)
	require.True(t, ok, "table payload should be *TableData")
	require.Equal(t, []TableAlignment{AlignLeft, AlignCenter, AlignRight}, data.Alignments)

	require.Equal(t, 2, table.ChildCount(), "table should have a header row and one body row")

	header := table.FirstChild()
	assert.Equal(t, TableRow, header.Kind())
	assert.Equal(t, 3, header.ChildCount())
	firstHeaderCell := header.FirstChild()
	cellData, ok := firstHeaderCell.Payload().(*TableCellData)
	require.True(t, ok, "cell payload should be *TableCellData")
	assert.True(t, cellData.IsHeader)
	assert.Equal(t, AlignLeft, cellData.Alignment)

	body := header.Next()
	assert.Equal(t, TableRow, body.Kind())
	bodyCellData, ok := body.FirstChild().Payload().(*TableCellData)
	require.True(t, ok, "cell payload should be *TableCellData")
	assert.False(t, bodyCellData.IsHeader)
}

func TestParseTableRequiresDelimiterRow(t *testing.T) {
	const input = "| not | a | table |\n| just | text |\n"

	opts := GFMOptions()
	doc := ParseDocument([]byte(input), opts)

	para := doc.Root.FirstChild()
	assert.Equal(t, Paragraph, para.Kind(), "a second line that is not a delimiter row should leave the paragraph intact")
}
