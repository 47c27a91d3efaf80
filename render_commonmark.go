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
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// RenderCommonMark writes doc back out as CommonMark source, using an
// errWriter-wrapped io.Writer and a plain recursive walk over the arena
// tree (always small enough to hold in memory, so there's no need for an
// explicit stack).
func RenderCommonMark(doc *ParseResult, opts Options) (string, error) {
	var buf bytes.Buffer
	ww := &errWriter{w: &buf}
	r := &cmRenderer{w: ww, opts: opts}
	prev := false
	for c := doc.Root.FirstChild(); !c.IsNil(); c = c.Next() {
		if prev {
			ww.WriteString("\n")
		}
		r.block(c, 0)
		prev = true
	}
	return buf.String(), ww.err
}

type errWriter struct {
	w   io.Writer
	err error
}

func (w *errWriter) Write(p []byte) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = w.w.Write(p)
	return n, w.err
}

func (w *errWriter) WriteString(s string) (n int, err error) {
	if w.err != nil {
		return 0, w.err
	}
	n, w.err = io.WriteString(w.w, s)
	return n, w.err
}

type cmRenderer struct {
	w    *errWriter
	opts Options
}

func (r *cmRenderer) block(n Node, indent int) {
	switch n.Kind() {
	case Paragraph:
		r.writeIndent(indent)
		r.inlines(n, indent)
		r.w.WriteString("\n")
	case Heading:
		data, _ := n.Payload().(*HeadingData)
		level := 1
		if data != nil {
			level = data.Level
		}
		r.writeIndent(indent)
		r.w.WriteString(strings.Repeat("#", level))
		r.w.WriteString(" ")
		r.inlines(n, indent)
		r.w.WriteString("\n")
	case ThematicBreak:
		r.writeIndent(indent)
		r.w.WriteString("---\n")
	case BlockQuote, MultilineBlockQuote, Alert:
		r.blockQuoteLike(n, indent)
	case CodeBlock:
		r.codeBlock(n, indent)
	case HTMLBlock:
		r.w.Write(n.Content())
	case List:
		r.list(n, indent)
	case Table:
		r.table(n, indent)
	case FootnoteDefinition:
		data, _ := n.Payload().(*FootnoteDefinitionData)
		name := ""
		if data != nil {
			name = data.Name
		}
		r.writeIndent(indent)
		r.w.WriteString("[^")
		r.w.WriteString(name)
		r.w.WriteString("]:")
		for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
			r.w.WriteString(" ")
			r.block(c, indent+4)
		}
	case FrontMatter:
		r.w.Write(n.Content())
	default:
		for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
			r.block(c, indent)
		}
	}
}

func (r *cmRenderer) writeIndent(indent int) {
	if indent > 0 {
		r.w.WriteString(strings.Repeat(" ", indent))
	}
}

func (r *cmRenderer) blockQuoteLike(n Node, indent int) {
	var buf bytes.Buffer
	inner := &cmRenderer{w: &errWriter{w: &buf}, opts: r.opts}
	prev := false
	for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
		if prev {
			buf.WriteString("\n")
		}
		inner.block(c, 0)
		prev = true
	}
	for _, line := range strings.Split(strings.TrimSuffix(buf.String(), "\n"), "\n") {
		r.writeIndent(indent)
		r.w.WriteString("> ")
		r.w.WriteString(line)
		r.w.WriteString("\n")
	}
}

func (r *cmRenderer) codeBlock(n Node, indent int) {
	data, _ := n.Payload().(*CodeBlockData)
	if data == nil {
		return
	}
	fence := data.FenceChar
	if fence == 0 {
		fence = '`'
	}
	fenceLen := data.FenceLength
	if fenceLen < 3 {
		fenceLen = 3
	}
	r.writeIndent(indent)
	r.w.WriteString(strings.Repeat(string(fence), fenceLen))
	r.w.WriteString(data.Info)
	r.w.WriteString("\n")
	for _, line := range strings.SplitAfter(data.Literal, "\n") {
		if line == "" {
			continue
		}
		r.writeIndent(indent)
		r.w.WriteString(line)
		if !strings.HasSuffix(line, "\n") {
			r.w.WriteString("\n")
		}
	}
	r.writeIndent(indent)
	r.w.WriteString(strings.Repeat(string(fence), fenceLen))
	r.w.WriteString("\n")
}

func (r *cmRenderer) list(n Node, indent int) {
	data, _ := n.Payload().(*ListData)
	bullet := byte(r.opts.Render.ListStyle)
	if bullet == 0 {
		bullet = '-'
	}
	ordered := data != nil && data.ListType == Ordered
	start := 1
	if data != nil {
		start = data.Start
	}
	i := start
	first := true
	for item := n.FirstChild(); !item.IsNil(); item = item.Next() {
		if !first && data != nil && !data.Tight {
			r.w.WriteString("\n")
		}
		first = false
		var marker string
		if ordered {
			width := clampWidth(r.opts.Render.OLWidth)
			num := strconv.Itoa(i)
			if width > len(num) {
				num = strings.Repeat("0", width-len(num)) + num
			}
			marker = num + "."
		} else {
			marker = string(bullet)
		}
		r.writeIndent(indent)
		r.w.WriteString(marker)
		r.w.WriteString(" ")
		r.itemBody(item, indent+len(marker)+1)
		i++
	}
}

func (r *cmRenderer) itemBody(item Node, indent int) {
	if item.Kind() == TaskItem {
		data, _ := item.Payload().(*TaskItemData)
		if data != nil && data.Checked {
			r.w.WriteString("[x] ")
		} else {
			r.w.WriteString("[ ] ")
		}
	}
	first := true
	for c := item.FirstChild(); !c.IsNil(); c = c.Next() {
		if !first {
			r.w.WriteString("\n")
			r.writeIndent(indent)
		}
		if first && c.Kind() == Paragraph {
			r.inlines(c, indent)
			r.w.WriteString("\n")
		} else {
			r.block(c, indent)
		}
		first = false
	}
}

func (r *cmRenderer) table(n Node, indent int) {
	data, _ := n.Payload().(*TableData)
	row := n.FirstChild()
	if row.IsNil() {
		return
	}
	r.writeIndent(indent)
	r.tableRow(row)
	r.writeIndent(indent)
	r.w.WriteString("|")
	naligns := row.ChildCount()
	if data != nil {
		naligns = len(data.Alignments)
	}
	for i := 0; i < naligns; i++ {
		align := alignOf(data, i)
		switch align {
		case AlignLeft:
			r.w.WriteString(":---|")
		case AlignRight:
			r.w.WriteString("---:|")
		case AlignCenter:
			r.w.WriteString(":---:|")
		default:
			r.w.WriteString("---|")
		}
	}
	r.w.WriteString("\n")
	for row = row.Next(); !row.IsNil(); row = row.Next() {
		r.writeIndent(indent)
		r.tableRow(row)
	}
}

func (r *cmRenderer) tableRow(row Node) {
	r.w.WriteString("|")
	for cell := row.FirstChild(); !cell.IsNil(); cell = cell.Next() {
		r.w.WriteString(" ")
		r.inlines(cell, 0)
		r.w.WriteString(" |")
	}
	r.w.WriteString("\n")
}

func (r *cmRenderer) inlines(n Node, indent int) {
	for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
		r.inline(c, indent)
	}
}

func (r *cmRenderer) inline(n Node, indent int) {
	switch n.Kind() {
	case Text:
		r.w.WriteString(n.Literal())
	case Escaped:
		r.w.WriteString("\\")
		r.w.WriteString(n.Literal())
	case SoftBreak:
		r.w.WriteString("\n")
		r.writeIndent(indent)
	case LineBreak:
		r.w.WriteString("  \n")
		r.writeIndent(indent)
	case Code:
		fence := minCodeSpanFence(n.Literal())
		r.w.WriteString(fence)
		r.w.WriteString(n.Literal())
		r.w.WriteString(fence)
	case Emph:
		r.w.WriteString("*")
		r.inlines(n, indent)
		r.w.WriteString("*")
	case Strong:
		r.w.WriteString("**")
		r.inlines(n, indent)
		r.w.WriteString("**")
	case Strikethrough:
		r.w.WriteString("~~")
		r.inlines(n, indent)
		r.w.WriteString("~~")
	case Underline:
		r.w.WriteString("__")
		r.inlines(n, indent)
		r.w.WriteString("__")
	case Superscript:
		r.w.WriteString("^")
		r.inlines(n, indent)
		r.w.WriteString("^")
	case Subscript:
		r.w.WriteString("~")
		r.inlines(n, indent)
		r.w.WriteString("~")
	case Highlight:
		r.w.WriteString("==")
		r.inlines(n, indent)
		r.w.WriteString("==")
	case SpoileredText:
		r.w.WriteString("||")
		r.inlines(n, indent)
		r.w.WriteString("||")
	case Link:
		r.linkOrImage(n, false, indent)
	case Image:
		r.linkOrImage(n, true, indent)
	case WikiLink:
		data, _ := n.Payload().(*WikiLinkData)
		r.w.WriteString("[[")
		if data != nil {
			r.w.WriteString(data.URL)
		}
		r.w.WriteString("]]")
	case FootnoteReference:
		data, _ := n.Payload().(*FootnoteReferenceData)
		r.w.WriteString("[^")
		if data != nil {
			r.w.WriteString(data.Name)
		}
		r.w.WriteString("]")
	case Math:
		data, _ := n.Payload().(*MathData)
		delim := "$"
		if data != nil && data.DisplayMath {
			delim = "$$"
		}
		r.w.WriteString(delim)
		if data != nil {
			r.w.WriteString(data.Literal)
		}
		r.w.WriteString(delim)
	case HTMLInline:
		r.w.WriteString(n.Literal())
	case ShortCode:
		r.w.WriteString(n.Literal())
	default:
		r.inlines(n, indent)
	}
}

func (r *cmRenderer) linkOrImage(n Node, isImage bool, indent int) {
	if isImage {
		r.w.WriteString("!")
	}
	r.w.WriteString("[")
	r.inlines(n, indent)
	r.w.WriteString("]")
	data, _ := n.Payload().(*LinkData)
	if data == nil {
		r.w.WriteString("()")
		return
	}
	r.w.WriteString("(")
	r.w.WriteString(NormalizeURI(data.URL))
	if data.Title != "" {
		r.w.WriteString(fmt.Sprintf(` "%s"`, data.Title))
	}
	r.w.WriteString(")")
}

// minCodeSpanFence returns the shortest backtick run not already present
// in literal, so the emitted code span round-trips (CommonMark §6.1).
func minCodeSpanFence(literal string) string {
	n := 1
	for strings.Contains(literal, strings.Repeat("`", n)) {
		n++
	}
	return strings.Repeat("`", n)
}
