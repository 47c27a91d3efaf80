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
	"bytes"
	"fmt"
	"strconv"
	"strings"

	"golang.org/x/net/html/atom"
)

// htmlRenderer walks a Document's tree and writes HTML via plain
// recursive descent; the arena tree is small enough to hold entirely in
// memory, so there's no need for an explicit stack machine.
type htmlRenderer struct {
	w          *bytes.Buffer
	opts       Options
	anchorizer *Anchorizer
	footnotes  []Node
}

// RenderHTML renders doc as an HTML fragment, configured by opts.Render.
func RenderHTML(doc *ParseResult, opts Options) (string, error) {
	r := &htmlRenderer{w: &bytes.Buffer{}, opts: opts, anchorizer: newAnchorizer()}
	for c := doc.Root.FirstChild(); !c.IsNil(); c = c.Next() {
		if err := r.block(c); err != nil {
			return "", err
		}
	}
	if len(r.footnotes) > 0 {
		r.renderFootnotes()
	}
	return r.w.String(), nil
}

type htmlAttr struct{ name, value string }

func (r *htmlRenderer) openTag(name atom.Atom, attrs ...htmlAttr) {
	r.w.WriteByte('<')
	r.w.WriteString(name.String())
	for _, a := range attrs {
		r.w.WriteByte(' ')
		r.w.WriteString(a.name)
		r.w.WriteString(`="`)
		r.w.WriteString(string(escapeHTMLAttr(nil, []byte(a.value))))
		r.w.WriteByte('"')
	}
	r.w.WriteByte('>')
}

func (r *htmlRenderer) closeTag(name atom.Atom) {
	r.w.WriteString("</")
	r.w.WriteString(name.String())
	r.w.WriteByte('>')
}

func (r *htmlRenderer) text(s string) {
	r.w.Write(escapeHTML(nil, []byte(s)))
}

// block renders n and, through recursion, its descendants.
func (r *htmlRenderer) block(n Node) error {
	switch n.Kind() {
	case Paragraph:
		if r.inTightItem(n) {
			return r.children(n)
		}
		r.openTag(atom.P)
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.P)
		r.w.WriteByte('\n')
	case Heading:
		return r.heading(n)
	case ThematicBreak:
		r.openTag(atom.Hr)
		r.w.WriteByte('\n')
	case BlockQuote, MultilineBlockQuote:
		r.openTag(atom.Blockquote)
		r.w.WriteByte('\n')
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.Blockquote)
		r.w.WriteByte('\n')
	case Alert:
		return r.alert(n)
	case CodeBlock:
		return r.codeBlock(n)
	case HTMLBlock:
		if r.opts.Render.Unsafe {
			content := n.Content()
			if !r.opts.Extension.Tagfilter {
				r.w.Write(content)
				return nil
			}
			for i := 0; i < len(content); i++ {
				if content[i] == '<' && isFilteredTag(string(content[i:])) {
					r.w.WriteString("&lt;")
				} else {
					r.w.WriteByte(content[i])
				}
			}
		}
	case List:
		return r.list(n)
	case Item, TaskItem:
		return r.item(n)
	case DescriptionList:
		r.openTag(atom.Dl)
		r.w.WriteByte('\n')
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.Dl)
		r.w.WriteByte('\n')
	case DescriptionItem:
		return r.children(n)
	case DescriptionTerm:
		r.openTag(atom.Dt)
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.Dt)
		r.w.WriteByte('\n')
	case DescriptionDetails:
		r.openTag(atom.Dd)
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.Dd)
		r.w.WriteByte('\n')
	case Table:
		return r.table(n)
	case FootnoteDefinition:
		r.footnotes = append(r.footnotes, n)
	case FrontMatter, LinkReferenceDefinition, Raw:
		// No HTML output.
	default:
		return r.children(n)
	}
	return nil
}

func (r *htmlRenderer) children(n Node) error {
	for c := n.FirstChild(); !c.IsNil(); c = c.Next() {
		var err error
		if c.Kind().IsBlock() {
			err = r.block(c)
		} else {
			err = r.inline(c)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

// inTightItem reports whether n is a Paragraph directly inside a tight
// list item, in which case CommonMark's HTML rendering omits the <p>
// wrapper.
func (r *htmlRenderer) inTightItem(n Node) bool {
	parent := n.Parent()
	switch parent.Kind() {
	case Item, TaskItem:
	default:
		return false
	}
	list := parent.Parent()
	data, _ := list.Payload().(*ListData)
	return data != nil && data.Tight
}

func (r *htmlRenderer) heading(n Node) error {
	data, _ := n.Payload().(*HeadingData)
	level := 1
	if data != nil {
		level = data.Level
	}
	tag := headingAtoms[clampHeadingLevel(level)]
	if r.opts.Plugins.HeadingAdapter != nil {
		if err := r.opts.Plugins.HeadingAdapter.EnterHeading(r.w, level, n.Sourcepos()); err != nil {
			return pluginError("HeadingAdapter.EnterHeading", err)
		}
	} else {
		var attrs []htmlAttr
		if r.opts.Extension.HeaderIDs != nil {
			id := *r.opts.Extension.HeaderIDs + r.anchorizer.Anchorize(headingText(n))
			attrs = append(attrs, htmlAttr{"id", id})
		}
		r.openTag(tag, attrs...)
	}
	if err := r.children(n); err != nil {
		return err
	}
	if r.opts.Plugins.HeadingAdapter != nil {
		if err := r.opts.Plugins.HeadingAdapter.ExitHeading(r.w, level); err != nil {
			return pluginError("HeadingAdapter.ExitHeading", err)
		}
	} else {
		r.closeTag(tag)
	}
	r.w.WriteByte('\n')
	return nil
}

var headingAtoms = [...]atom.Atom{atom.H1, atom.H2, atom.H3, atom.H4, atom.H5, atom.H6}

func clampHeadingLevel(level int) int {
	if level < 1 {
		return 0
	}
	if level > 6 {
		return 5
	}
	return level - 1
}

func headingText(n Node) string {
	var sb strings.Builder
	Walk(n, &WalkOptions{Pre: func(c *Cursor) bool {
		switch c.Node().Kind() {
		case Text, Code:
			sb.WriteString(c.Node().Literal())
		}
		return true
	}})
	return sb.String()
}

var alertClass = map[string]string{
	"note": "Note", "tip": "Tip", "important": "Important",
	"warning": "Warning", "caution": "Caution",
}

func (r *htmlRenderer) alert(n Node) error {
	data, _ := n.Payload().(*AlertData)
	typ := "note"
	if data != nil {
		typ = data.AlertType
	}
	r.openTag(atom.Div, htmlAttr{"class", "alert alert-" + typ})
	r.w.WriteByte('\n')
	r.openTag(atom.P, htmlAttr{"class", "alert-title"})
	title := alertClass[typ]
	if data != nil && data.Title != "" {
		title = data.Title
	}
	r.text(title)
	r.closeTag(atom.P)
	r.w.WriteByte('\n')
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(atom.Div)
	r.w.WriteByte('\n')
	return nil
}

func (r *htmlRenderer) codeBlock(n Node) error {
	data, _ := n.Payload().(*CodeBlockData)
	var info, literal string
	if data != nil {
		info, literal = data.Info, data.Literal
	}
	lang := info
	if i := strings.IndexAny(info, " \t"); i >= 0 {
		lang = info[:i]
	}
	if sh := r.opts.Plugins.SyntaxHighlighter; sh != nil {
		preAttrs := map[string]string{}
		codeAttrs := map[string]string{}
		if lang != "" {
			codeAttrs["class"] = "language-" + lang
		}
		if err := sh.WritePreTag(r.w, preAttrs); err != nil {
			return pluginError("SyntaxHighlighter.WritePreTag", err)
		}
		if err := sh.WriteCodeTag(r.w, codeAttrs); err != nil {
			return pluginError("SyntaxHighlighter.WriteCodeTag", err)
		}
		if err := sh.WriteHighlighted(r.w, lang, literal); err != nil {
			return pluginError("SyntaxHighlighter.WriteHighlighted", err)
		}
		r.closeTag(atom.Code)
		r.closeTag(atom.Pre)
		r.w.WriteByte('\n')
		return nil
	}
	preAttrs := []htmlAttr(nil)
	if r.opts.Render.GitHubPreLang && lang != "" {
		preAttrs = append(preAttrs, htmlAttr{"lang", lang})
	}
	r.openTag(atom.Pre, preAttrs...)
	var codeAttrs []htmlAttr
	if lang != "" {
		if r.opts.Render.FullInfoString && info != lang {
			codeAttrs = append(codeAttrs, htmlAttr{"class", "language-" + lang}, htmlAttr{"data-meta", strings.TrimSpace(info[len(lang):])})
		} else {
			codeAttrs = append(codeAttrs, htmlAttr{"class", "language-" + lang})
		}
	}
	r.openTag(atom.Code, codeAttrs...)
	r.text(literal)
	r.closeTag(atom.Code)
	r.closeTag(atom.Pre)
	r.w.WriteByte('\n')
	return nil
}

func (r *htmlRenderer) list(n Node) error {
	data, _ := n.Payload().(*ListData)
	tag := atom.Ul
	var attrs []htmlAttr
	if data != nil && data.ListType == Ordered {
		tag = atom.Ol
		if data.Start != 1 {
			attrs = append(attrs, htmlAttr{"start", strconv.Itoa(data.Start)})
		}
	}
	r.openTag(tag, attrs...)
	r.w.WriteByte('\n')
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(tag)
	r.w.WriteByte('\n')
	return nil
}

func (r *htmlRenderer) item(n Node) error {
	if n.Kind() == TaskItem {
		data, _ := n.Payload().(*TaskItemData)
		var cls []htmlAttr
		if r.opts.Render.TasklistClasses {
			cls = append(cls, htmlAttr{"class", "task-list-item"})
		}
		r.openTag(atom.Li, cls...)
		checkedAttrs := []htmlAttr{{"type", "checkbox"}, {"disabled", ""}}
		if data != nil && data.Checked {
			checkedAttrs = append(checkedAttrs, htmlAttr{"checked", ""})
		}
		r.openTag(atom.Input, checkedAttrs...)
		r.w.WriteByte(' ')
		if err := r.children(n); err != nil {
			return err
		}
		r.closeTag(atom.Li)
		r.w.WriteByte('\n')
		return nil
	}
	r.openTag(atom.Li)
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(atom.Li)
	r.w.WriteByte('\n')
	return nil
}

func (r *htmlRenderer) table(n Node) error {
	data, _ := n.Payload().(*TableData)
	r.openTag(atom.Table)
	r.w.WriteByte('\n')
	rowIdx := 0
	for row := n.FirstChild(); !row.IsNil(); row = row.Next() {
		sectionTag := atom.Tbody
		if rowIdx == 0 {
			sectionTag = atom.Thead
		}
		r.openTag(sectionTag)
		r.w.WriteByte('\n')
		r.openTag(atom.Tr)
		r.w.WriteByte('\n')
		col := 0
		for cell := row.FirstChild(); !cell.IsNil(); cell = cell.Next() {
			if err := r.tableCell(cell, rowIdx == 0, alignOf(data, col)); err != nil {
				return err
			}
			col++
		}
		r.closeTag(atom.Tr)
		r.w.WriteByte('\n')
		r.closeTag(sectionTag)
		r.w.WriteByte('\n')
		rowIdx++
	}
	r.closeTag(atom.Table)
	r.w.WriteByte('\n')
	return nil
}

func alignOf(data *TableData, col int) TableAlignment {
	if data == nil || col >= len(data.Alignments) {
		return AlignNone
	}
	return data.Alignments[col]
}

func (r *htmlRenderer) tableCell(n Node, header bool, align TableAlignment) error {
	tag := atom.Td
	if header {
		tag = atom.Th
	}
	var attrs []htmlAttr
	switch align {
	case AlignLeft:
		attrs = append(attrs, htmlAttr{"align", "left"})
	case AlignCenter:
		attrs = append(attrs, htmlAttr{"align", "center"})
	case AlignRight:
		attrs = append(attrs, htmlAttr{"align", "right"})
	}
	r.openTag(tag, attrs...)
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(tag)
	r.w.WriteByte('\n')
	return nil
}

func (r *htmlRenderer) renderFootnotes() {
	r.openTag(atom.Section, htmlAttr{"class", "footnotes"})
	r.w.WriteByte('\n')
	r.openTag(atom.Ol)
	r.w.WriteByte('\n')
	for _, def := range r.footnotes {
		data, _ := def.Payload().(*FootnoteDefinitionData)
		if data == nil {
			continue
		}
		id := fmt.Sprintf("fn-%s", data.Name)
		r.openTag(atom.Li, htmlAttr{"id", id})
		r.w.WriteByte('\n')
		r.children(def)
		for i := 1; i <= data.TotalRef; i++ {
			back := fmt.Sprintf("#fnref-%s-%d", data.Name, i)
			if i == 1 {
				back = fmt.Sprintf("#fnref-%s", data.Name)
			}
			r.openTag(atom.A, htmlAttr{"href", back}, htmlAttr{"class", "footnote-backref"})
			r.text("↩")
			r.closeTag(atom.A)
		}
		r.closeTag(atom.Li)
		r.w.WriteByte('\n')
	}
	r.closeTag(atom.Ol)
	r.w.WriteByte('\n')
	r.closeTag(atom.Section)
	r.w.WriteByte('\n')
}

// inline renders an inline node and its descendants.
func (r *htmlRenderer) inline(n Node) error {
	switch n.Kind() {
	case Text:
		r.text(n.Literal())
	case SoftBreak:
		if r.opts.Render.HardBreaks {
			r.w.WriteString("<br />\n")
		} else {
			r.w.WriteByte('\n')
		}
	case LineBreak:
		r.w.WriteString("<br />\n")
	case Code:
		r.openTag(atom.Code)
		r.text(n.Literal())
		r.closeTag(atom.Code)
	case HTMLInline:
		r.rawInline(n.Literal())
	case Escaped:
		if r.opts.Render.EscapedCharSpans {
			r.w.WriteString("<span data-escaped-char>")
			r.text(n.Literal())
			r.closeTag(atom.Span)
			return nil
		}
		r.text(n.Literal())
	case Emph:
		return r.wrapInline(n, atom.Em)
	case Strong:
		return r.wrapInline(n, atom.Strong)
	case Strikethrough:
		return r.wrapInline(n, atom.Del)
	case Underline:
		return r.wrapInlineClass(n, atom.Span, "underline")
	case Superscript:
		return r.wrapInline(n, atom.Sup)
	case Subscript:
		return r.wrapInline(n, atom.Sub)
	case Highlight:
		return r.wrapInline(n, atom.Mark)
	case SpoileredText:
		return r.wrapInlineClass(n, atom.Span, "spoiler")
	case Link:
		return r.link(n)
	case Image:
		return r.image(n)
	case WikiLink:
		return r.wikiLink(n)
	case FootnoteReference:
		return r.footnoteReference(n)
	case Math:
		return r.math(n)
	case ShortCode:
		r.text(n.Literal())
	case EscapedTag:
		r.text(n.Literal())
	default:
		return r.children(n)
	}
	return nil
}

func (r *htmlRenderer) wrapInline(n Node, tag atom.Atom) error {
	r.openTag(tag)
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(tag)
	return nil
}

func (r *htmlRenderer) wrapInlineClass(n Node, tag atom.Atom, class string) error {
	r.openTag(tag, htmlAttr{"class", class})
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(tag)
	return nil
}

// rawInline emits raw HTML, subject to GFM tagfiltering when enabled and
// the Unsafe gate: disallowed or unsafe raw HTML is rendered
// HTML-escaped instead of verbatim.
func (r *htmlRenderer) rawInline(raw string) {
	if !r.opts.Render.Unsafe {
		r.text(raw)
		return
	}
	if r.opts.Extension.Tagfilter && isFilteredTag(raw) {
		r.w.WriteString("&lt;")
		r.w.WriteString(raw[1:])
		return
	}
	r.w.WriteString(raw)
}

func isFilteredTag(raw string) bool {
	s := strings.TrimPrefix(raw, "<")
	s = strings.TrimPrefix(s, "/")
	end := 0
	for end < len(s) && (isASCIILetter(s[end]) || isASCIIDigit(s[end]) || s[end] == '-') {
		end++
	}
	return FilterTagGFM([]byte(s[:end]))
}

func (r *htmlRenderer) link(n Node) error {
	data, _ := n.Payload().(*LinkData)
	url := ""
	var title string
	if data != nil {
		url, title = data.URL, data.Title
	}
	if rw := r.opts.Extension.LinkURLRewriter; rw != nil {
		url = rw(url)
	}
	if r.opts.Render.IgnoreEmptyLinks && strings.TrimSpace(headingText(n)) == "" {
		r.w.WriteString("[](")
		r.text(url)
		r.w.WriteByte(')')
		return nil
	}
	attrs := []htmlAttr{{"href", NormalizeURI(url)}}
	if title != "" {
		attrs = append(attrs, htmlAttr{"title", title})
	}
	r.openTag(atom.A, attrs...)
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(atom.A)
	return nil
}

func (r *htmlRenderer) image(n Node) error {
	data, _ := n.Payload().(*LinkData)
	url, title := "", ""
	if data != nil {
		url, title = data.URL, data.Title
	}
	if rw := r.opts.Extension.ImageURLRewriter; rw != nil {
		url = rw(url)
	}
	alt := headingText(n)
	if r.opts.Plugins.ImageAdapter != nil {
		if err := r.opts.Plugins.ImageAdapter.RenderImage(r.w, NormalizeURI(url), title, alt); err != nil {
			return pluginError("ImageAdapter.RenderImage", err)
		}
		return nil
	}
	attrs := []htmlAttr{{"src", NormalizeURI(url)}, {"alt", alt}}
	if title != "" {
		attrs = append(attrs, htmlAttr{"title", title})
	}
	r.openTag(atom.Img, attrs...)
	return nil
}

func (r *htmlRenderer) wikiLink(n Node) error {
	data, _ := n.Payload().(*WikiLinkData)
	url := ""
	if data != nil {
		url = data.URL
	}
	r.openTag(atom.A, htmlAttr{"href", NormalizeURI(url)})
	if err := r.children(n); err != nil {
		return err
	}
	r.closeTag(atom.A)
	return nil
}

func (r *htmlRenderer) footnoteReference(n Node) error {
	data, _ := n.Payload().(*FootnoteReferenceData)
	if data == nil {
		return nil
	}
	id := fmt.Sprintf("fnref-%s", data.Name)
	if data.IxNum > 1 {
		id = fmt.Sprintf("fnref-%s-%d", data.Name, data.IxNum)
	}
	r.openTag(atom.Sup, htmlAttr{"class", "footnote-ref"})
	r.openTag(atom.A, htmlAttr{"href", fmt.Sprintf("#fn-%s", data.Name)}, htmlAttr{"id", id})
	r.text(strconv.Itoa(data.RefNum))
	r.closeTag(atom.A)
	r.closeTag(atom.Sup)
	return nil
}

func (r *htmlRenderer) math(n Node) error {
	data, _ := n.Payload().(*MathData)
	literal := ""
	display := false
	if data != nil {
		literal, display = data.Literal, data.DisplayMath
	}
	class := "math-inline"
	if display {
		class = "math-display"
	}
	r.openTag(atom.Span, htmlAttr{"class", class})
	r.text(literal)
	r.closeTag(atom.Span)
	return nil
}

// FilterTagGFM performs the same tag filtering as GitHub Flavored
// Markdown's tagfilter extension, reusing entity.go's tagfilterNames set
// (the same set rawInline and HTML-block rendering consult) rather than a
// second table.
func FilterTagGFM(tag []byte) bool {
	return tagfilterNames[strings.ToLower(string(tag))]
}
