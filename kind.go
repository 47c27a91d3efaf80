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

// NodeKind enumerates the closed set of block and inline node types
// (spec §3).
type NodeKind uint16

const (
	_ NodeKind = iota

	// Block kinds.
	Document
	BlockQuote
	List
	Item
	DescriptionList
	DescriptionItem
	DescriptionTerm
	DescriptionDetails
	CodeBlock
	HTMLBlock
	Paragraph
	Heading
	ThematicBreak
	FootnoteDefinition
	Table
	TableRow
	TableCell
	TaskItem
	FrontMatter
	MultilineBlockQuote
	Alert
	Raw
	LinkReferenceDefinition

	// Inline kinds.
	Text
	SoftBreak
	LineBreak
	Code
	HTMLInline
	Emph
	Strong
	Strikethrough
	Superscript
	Subscript
	Underline
	SpoileredText
	Highlight
	Link
	Image
	FootnoteReference
	Math
	WikiLink
	ShortCode
	EscapedTag
	Escaped
)

var nodeKindNames = map[NodeKind]string{
	Document:                "Document",
	BlockQuote:              "BlockQuote",
	List:                    "List",
	Item:                    "Item",
	DescriptionList:         "DescriptionList",
	DescriptionItem:         "DescriptionItem",
	DescriptionTerm:         "DescriptionTerm",
	DescriptionDetails:      "DescriptionDetails",
	CodeBlock:               "CodeBlock",
	HTMLBlock:               "HTMLBlock",
	Paragraph:               "Paragraph",
	Heading:                 "Heading",
	ThematicBreak:           "ThematicBreak",
	FootnoteDefinition:      "FootnoteDefinition",
	Table:                   "Table",
	TableRow:                "TableRow",
	TableCell:               "TableCell",
	TaskItem:                "TaskItem",
	FrontMatter:             "FrontMatter",
	MultilineBlockQuote:     "MultilineBlockQuote",
	Alert:                   "Alert",
	Raw:                     "Raw",
	LinkReferenceDefinition: "LinkReferenceDefinition",
	Text:                    "Text",
	SoftBreak:               "SoftBreak",
	LineBreak:               "LineBreak",
	Code:                    "Code",
	HTMLInline:              "HTMLInline",
	Emph:                    "Emph",
	Strong:                  "Strong",
	Strikethrough:           "Strikethrough",
	Superscript:             "Superscript",
	Subscript:               "Subscript",
	Underline:               "Underline",
	SpoileredText:           "SpoileredText",
	Highlight:               "Highlight",
	Link:                    "Link",
	Image:                   "Image",
	FootnoteReference:       "FootnoteReference",
	Math:                    "Math",
	WikiLink:                "WikiLink",
	ShortCode:               "ShortCode",
	EscapedTag:              "EscapedTag",
	Escaped:                 "Escaped",
}

func (k NodeKind) String() string {
	if s, ok := nodeKindNames[k]; ok {
		return s
	}
	return "NodeKind(0)"
}

// IsBlock reports whether k is one of the block variants.
func (k NodeKind) IsBlock() bool {
	return k >= Document && k <= LinkReferenceDefinition
}

// IsInline reports whether k is one of the inline variants.
func (k NodeKind) IsInline() bool {
	return k >= Text && k <= Escaped
}

// ListDelimiter is the punctuation that follows an ordered-list marker number.
type ListDelimiter byte

const (
	Period ListDelimiter = '.'
	Paren  ListDelimiter = ')'
)

// ListType distinguishes bullet from ordered lists.
type ListType int

const (
	Bullet ListType = iota
	Ordered
)

// ListData is the payload for a List node.
type ListData struct {
	ListType     ListType
	MarkerOffset int
	Padding      int
	Start        int
	Delimiter    ListDelimiter
	BulletChar   byte
	Tight        bool
}

// ItemData is the payload for an Item node (shares list-marker metadata
// needed to detect whether a following item continues the same list).
type ItemData struct {
	ListType     ListType
	MarkerOffset int
	Padding      int
	Delimiter    ListDelimiter
	BulletChar   byte
}

// CodeBlockData is the payload for a CodeBlock node.
type CodeBlockData struct {
	Fenced      bool
	FenceChar   byte
	FenceLength int
	FenceOffset int
	Info        string
	Literal     string
}

// LinkData is the payload for Link and Image nodes.
type LinkData struct {
	URL   string
	Title string
}

// HeadingData is the payload for a Heading node.
type HeadingData struct {
	Level  int
	Setext bool
}

// MathData is the payload for a Math node.
type MathData struct {
	DollarMath  bool
	DisplayMath bool
	Literal     string
}

// TableAlignment is the column alignment declared by a table's delimiter row.
type TableAlignment int

const (
	AlignNone TableAlignment = iota
	AlignLeft
	AlignCenter
	AlignRight
)

// TableData is the payload for a Table node.
type TableData struct {
	Alignments []TableAlignment
}

// TableCellData is the payload for a TableCell node.
type TableCellData struct {
	Alignment TableAlignment
	IsHeader  bool
}

// AlertData is the payload for an Alert node (GFM `> [!NOTE]` blocks).
type AlertData struct {
	AlertType string // "note", "tip", "important", "warning", "caution"
	Title     string // custom title text, if any, overriding the default
}

// MultilineBlockQuoteData is the payload for a MultilineBlockQuote node.
type MultilineBlockQuoteData struct {
	FenceLength int
	FenceOffset int
}

// FootnoteDefinitionData is the payload for a FootnoteDefinition node.
type FootnoteDefinitionData struct {
	Name     string
	TotalRef int
}

// FootnoteReferenceData is the payload for a FootnoteReference inline.
type FootnoteReferenceData struct {
	Name  string
	RefNum int
	IxNum  int
}

// WikiLinkData is the payload for a WikiLink inline.
type WikiLinkData struct {
	URL string
}

// TaskItemData is the payload for a TaskItem node.
type TaskItemData struct {
	ListType     ListType
	MarkerOffset int
	Padding      int
	Delimiter    ListDelimiter
	BulletChar   byte
	Checked      bool
	SymbolChar   byte
}
