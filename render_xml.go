// Copyright 2024 Ross Light
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
	"fmt"
	"strconv"
	"strings"
)

const xmlDoctype = `<?xml version="1.0" encoding="UTF-8"?>` + "\n" +
	`<!DOCTYPE document SYSTEM "CommonMark.dtd">` + "\n"

// RenderXML dumps doc as an XML tree, one element per node named after its
// NodeKind, with attributes carrying payload fields and (when
// opts.Render.SourcePos is set) a sourcepos attribute. The shape follows
// cmark/comrak's reference XML output, written in render_html.go's
// depth-first block/inline dispatch style.
func RenderXML(doc *ParseResult, opts Options) (string, error) {
	var sb strings.Builder
	sb.WriteString(xmlDoctype)
	x := &xmlRenderer{sb: &sb, opts: opts}
	x.node(doc.Root, 0)
	return sb.String(), nil
}

type xmlRenderer struct {
	sb   *strings.Builder
	opts Options
}

func (x *xmlRenderer) node(n Node, depth int) {
	name := xmlElementName(n.Kind())
	attrs := x.attrs(n)
	x.indent(depth)
	if n.ChildCount() == 0 && n.Literal() == "" && len(n.Content()) == 0 {
		fmt.Fprintf(x.sb, "<%s%s />\n", name, attrs)
		return
	}
	fmt.Fprintf(x.sb, "<%s%s>\n", name, attrs)
	if lit := x.nodeText(n); lit != "" {
		x.indent(depth + 1)
		x.sb.WriteString(`<text xml:space="preserve">`)
		x.sb.WriteString(xmlEscapeText(lit))
		x.sb.WriteString("</text>\n")
	}
	for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
		x.node(c, depth+1)
	}
	x.indent(depth)
	fmt.Fprintf(x.sb, "</%s>\n", name)
}

func (x *xmlRenderer) nodeText(n Node) string {
	switch n.Kind() {
	case Text, Code, HTMLBlock, HTMLInline, Escaped, ShortCode, Math:
		return n.Literal()
	default:
		return ""
	}
}

func (x *xmlRenderer) indent(depth int) {
	x.sb.WriteString(strings.Repeat("  ", depth))
}

func (x *xmlRenderer) attrs(n Node) string {
	var b strings.Builder
	switch data := n.Payload().(type) {
	case *HeadingData:
		attr(&b, "level", strconv.Itoa(data.Level))
	case *ListData:
		attr(&b, "type", listTypeName(data.ListType))
		attr(&b, "tight", strconv.FormatBool(data.Tight))
		if data.ListType == Ordered {
			attr(&b, "start", strconv.Itoa(data.Start))
			attr(&b, "delim", string(data.Delimiter))
		} else {
			attr(&b, "bulletChar", string(data.BulletChar))
		}
	case *TaskItemData:
		attr(&b, "checked", strconv.FormatBool(data.Checked))
	case *CodeBlockData:
		attr(&b, "fenced", strconv.FormatBool(data.Fenced))
		if data.Info != "" {
			attr(&b, "info", data.Info)
		}
	case *LinkData:
		attr(&b, "destination", data.URL)
		if data.Title != "" {
			attr(&b, "title", data.Title)
		}
	case *WikiLinkData:
		attr(&b, "destination", data.URL)
	case *FootnoteDefinitionData:
		attr(&b, "label", data.Name)
	case *FootnoteReferenceData:
		attr(&b, "label", data.Name)
		attr(&b, "refnum", strconv.Itoa(data.RefNum))
	case *TableData:
		aligns := make([]string, len(data.Alignments))
		for i, a := range data.Alignments {
			aligns[i] = tableAlignName(a)
		}
		attr(&b, "align", strings.Join(aligns, ","))
	case *TableCellData:
		attr(&b, "align", tableAlignName(data.Alignment))
		attr(&b, "header", strconv.FormatBool(data.IsHeader))
	case *AlertData:
		attr(&b, "type", data.AlertType)
		if data.Title != "" {
			attr(&b, "title", data.Title)
		}
	case *MathData:
		attr(&b, "display", strconv.FormatBool(data.DisplayMath))
	}
	if x.opts.Render.SourcePos {
		pos := n.Sourcepos()
		if pos.IsValid() {
			attr(&b, "sourcepos", fmt.Sprintf("%d:%d-%d:%d", pos.StartLine, pos.StartCol, pos.EndLine, pos.EndCol))
		}
	}
	return b.String()
}

// attr appends a name="value" XML attribute, escaping value for inclusion
// inside a double-quoted XML attribute (not Go's %q syntax, which is the
// wrong escaping dialect for this purpose).
func attr(b *strings.Builder, name, value string) {
	b.WriteByte(' ')
	b.WriteString(name)
	b.WriteString(`="`)
	b.WriteString(xmlEscapeAttr(value))
	b.WriteByte('"')
}

func listTypeName(t ListType) string {
	if t == Ordered {
		return "ordered"
	}
	return "bullet"
}

func tableAlignName(a TableAlignment) string {
	switch a {
	case AlignLeft:
		return "left"
	case AlignRight:
		return "right"
	case AlignCenter:
		return "center"
	default:
		return "none"
	}
}

// xmlElementName lowercases the NodeKind's String() form (e.g.
// "BlockQuote" -> "block_quote") to match cmark's snake_case element
// names, since NodeKind.String() uses the Go-identifier spelling.
func xmlElementName(k NodeKind) string {
	s := k.String()
	var b strings.Builder
	for i, r := range s {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			b.WriteRune(r - 'A' + 'a')
		} else {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func xmlEscapeText(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	return r.Replace(s)
}

func xmlEscapeAttr(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", "\"", "&quot;")
	return r.Replace(s)
}
