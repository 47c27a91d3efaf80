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
	"regexp"
	"strings"
)

// parseOpenBracket pushes a `[` or `![` marker onto the bracket stack
// (CommonMark §6.3). The marker is kept as an ordinary Text node so that,
// if the bracket never resolves to a link or image, it renders as a
// literal character.
func (p *inlineParser) parseOpenBracket(isImage bool) {
	start := p.pos
	if isImage {
		p.pos += 2
	} else {
		p.pos++
	}
	marker := p.arena.alloc(Text, NullSourcepos())
	marker.setLiteral(string(p.source[start:p.pos]))
	p.appendChild(marker)
	p.brackets = append(p.brackets, bracket{node: marker, isImage: isImage, active: true, delimIndex: len(p.delims)})
}

func (p *inlineParser) parseCloseBracket() {
	if len(p.brackets) == 0 {
		p.appendText("]")
		p.pos++
		return
	}
	b := p.brackets[len(p.brackets)-1]
	p.brackets = p.brackets[:len(p.brackets)-1]
	if !b.active {
		p.appendText("]")
		p.pos++
		return
	}
	p.pos++ // consume ']'

	if url, title, consumed, ok := tryParseInlineLinkTail(p.source, p.pos); ok {
		p.pos += consumed
		p.finishLink(b, url, title)
		return
	}
	if label, consumed, ok := tryParseReferenceLabelTail(p.source, p.pos); ok {
		useLabel := label
		if useLabel == "" {
			useLabel = p.textBetween(b.node)
		}
		if def, found := (*p.refs)[normalizeLabel(useLabel)]; found {
			p.pos += consumed
			p.finishLink(b, def.Destination, def.Title)
			return
		}
		if cb := p.opts.Parse.BrokenLinkCallback; cb != nil {
			if url, title, okcb := cb(normalizeLabel(useLabel), useLabel); okcb {
				p.pos += consumed
				p.finishLink(b, url, title)
				return
			}
		}
	} else {
		text := p.textBetween(b.node)
		if def, found := (*p.refs)[normalizeLabel(text)]; found {
			p.finishLink(b, def.Destination, def.Title)
			return
		}
		if cb := p.opts.Parse.BrokenLinkCallback; cb != nil {
			if url, title, okcb := cb(normalizeLabel(text), text); okcb {
				p.finishLink(b, url, title)
				return
			}
		}
	}
	p.appendText("]")
}

// finishLink wraps everything opened by b into a Link or Image node,
// first resolving any emphasis delimiters opened since b (CommonMark
// requires emphasis inside link text to resolve before the link itself
// is wrapped), then disabling any enclosing link openers (links cannot
// nest inside links, though images can nest inside links).
func (p *inlineParser) finishLink(b bracket, url, title string) {
	processEmphasis(p, b.delimIndex)
	kind := Link
	if b.isImage {
		kind = Image
	}
	last := p.parent.LastChild()
	wrap := wrapRange(p.arena, b.node, last, kind)
	wrap.setPayload(&LinkData{URL: url, Title: title})
	b.node.Unlink()

	if !b.isImage {
		for i := range p.brackets {
			if !p.brackets[i].isImage {
				p.brackets[i].active = false
			}
		}
	}
	for i := b.delimIndex; i < len(p.delims); i++ {
		p.delims[i].active = false
	}
}

func (p *inlineParser) textBetween(from Node) string {
	var sb strings.Builder
	for c := from.Next(); !c.IsNil(); c = c.Next() {
		sb.WriteString(c.Literal())
	}
	return sb.String()
}

func (p *inlineParser) appendLink(url, title, text string) {
	link := p.arena.alloc(Link, NullSourcepos())
	link.setPayload(&LinkData{URL: url, Title: title})
	textNode := p.arena.alloc(Text, NullSourcepos())
	textNode.setLiteral(text)
	link.AppendChild(textNode)
	textNode.close()
	p.appendChild(link)
}

// tryParseInlineLinkTail parses the `(destination "title")` tail of an
// inline link or image starting at source[pos] == '('.
func tryParseInlineLinkTail(source []byte, pos int) (url, title string, consumed int, ok bool) {
	if pos >= len(source) || source[pos] != '(' {
		return "", "", 0, false
	}
	i := pos + 1
	i += skipLinkSpace(source, i)

	urlStart := i
	if i < len(source) && source[i] == '<' {
		i++
		for i < len(source) && source[i] != '>' && source[i] != '\n' {
			if source[i] == '\\' {
				i++
			}
			i++
		}
		if i >= len(source) || source[i] != '>' {
			return "", "", 0, false
		}
		url = string(source[urlStart+1 : i])
		i++
	} else {
		depth := 0
		for i < len(source) {
			c := source[i]
			if c == '\\' {
				i += 2
				continue
			}
			if c == '(' {
				depth++
			} else if c == ')' {
				if depth == 0 {
					break
				}
				depth--
			} else if isSpaceTabOrLineEnding(c) {
				break
			}
			i++
		}
		url = string(source[urlStart:i])
	}

	ws := skipLinkSpace(source, i)
	if ws > 0 {
		if t, ok2, end := tryParseTitle(source, i+ws); ok2 {
			after := end + skipLinkSpace(source, end)
			if after < len(source) && source[after] == ')' {
				return url, t, after + 1 - pos, true
			}
		}
	}
	i += ws
	if i < len(source) && source[i] == ')' {
		return url, "", i + 1 - pos, true
	}
	return "", "", 0, false
}

// tryParseReferenceLabelTail parses an explicit `[label]` (or the
// collapsed `[]` form, returned as label == "") following a link text's
// closing `]`.
func tryParseReferenceLabelTail(source []byte, pos int) (label string, consumed int, ok bool) {
	if pos >= len(source) || source[pos] != '[' {
		return "", 0, false
	}
	i := pos + 1
	start := i
	for i < len(source) {
		switch source[i] {
		case '\\':
			i += 2
			continue
		case '[':
			return "", 0, false
		case ']':
			return string(source[start:i]), i + 1 - pos, true
		}
		i++
	}
	return "", 0, false
}

var (
	autolinkURISchemeRe = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9+.-]{1,31}:[^\s<>\x00-\x1f]*$`)
	autolinkEmailRe     = regexp.MustCompile(`^[a-zA-Z0-9.!#$%&'*+/=?^_` + "`" + `{|}~-]+@[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?(?:\.[a-zA-Z0-9](?:[a-zA-Z0-9-]{0,61}[a-zA-Z0-9])?)*$`)
)

// parseAutolinkOrHTML handles CommonMark's `<...>` autolinks (§6.6) and,
// failing that, any inline HTML tag/comment (§6.9). Returns false if
// neither matched, leaving `<` to fall back to a literal character.
func (p *inlineParser) parseAutolinkOrHTML() bool {
	rest := p.source[p.pos:]
	if end := bytes.IndexByte(rest, '>'); end > 0 {
		candidate := rest[1:end]
		if !bytes.ContainsAny(candidate, " \t\r\n") {
			switch {
			case autolinkURISchemeRe.Match(candidate):
				p.appendLink(string(candidate), "", string(candidate))
				p.pos += end + 1
				return true
			case autolinkEmailRe.Match(candidate):
				p.appendLink("mailto:"+string(candidate), "", string(candidate))
				p.pos += end + 1
				return true
			}
		}
	}
	if n, ok := scanHTMLTagInline(p.source[p.pos:]); ok {
		node := p.arena.alloc(HTMLInline, NullSourcepos())
		node.setLiteral(string(p.source[p.pos : p.pos+n]))
		p.appendChild(node)
		p.pos += n
		return true
	}
	return false
}

// parseBareAutolinkURL recognizes GFM's extended "bare" autolinks: an
// `http://`, `https://`, or `www.` prefix appearing outside of `<...>`
// brackets, scanned forward to the end of the URL and trimmed of
// trailing punctuation the way GitHub's autolinker does. Returns false
// if p.source[p.pos:] doesn't start with a recognized prefix, or if it's
// preceded by a word character (so "xhttp://y" doesn't autolink).
func (p *inlineParser) parseBareAutolinkURL() bool {
	rest := p.source[p.pos:]
	var prefix string
	switch {
	case bytes.HasPrefix(rest, []byte("http://")):
		prefix = "http://"
	case bytes.HasPrefix(rest, []byte("https://")):
		prefix = "https://"
	case bytes.HasPrefix(rest, []byte("www.")):
		prefix = "www."
	default:
		return false
	}
	if p.pos > 0 && isAutolinkWordByte(p.source[p.pos-1]) {
		return false
	}
	bodyStart := p.pos + len(prefix)
	end := bodyStart
	for end < len(p.source) && isBareAutolinkURLByte(p.source[end]) {
		end++
	}
	end = trimBareAutolinkTrailingPunct(p.source, bodyStart, end)
	if end <= bodyStart {
		return false
	}
	text := string(p.source[p.pos:end])
	url := text
	if prefix == "www." {
		url = "http://" + text
	}
	p.appendLink(url, "", text)
	p.pos = end
	return true
}

// parseBareAutolinkEmail recognizes a bare `user@domain` address outside
// of `<...>` brackets. The local part has typically already been
// consumed as plain text by the time '@' is reached, so this widens a
// moving window backward over already-emitted text and forward over the
// domain, then re-splits the preceding Text node if it matches.
func (p *inlineParser) parseBareAutolinkEmail() bool {
	start := p.pos
	for start > 0 && isEmailLocalByte(p.source[start-1]) {
		start--
	}
	if start == p.pos {
		return false
	}
	end := p.pos + 1
	for end < len(p.source) && isEmailDomainByte(p.source[end]) {
		end++
	}
	end = trimBareAutolinkTrailingPunct(p.source, p.pos+1, end)
	candidate := p.source[start:end]
	if !autolinkEmailRe.Match(candidate) {
		return false
	}
	if last := p.parent.LastChild(); !last.IsNil() && last.Kind() == Text {
		lit := last.Literal()
		if cut := len(lit) - (p.pos - start); cut > 0 {
			last.setLiteral(lit[:cut])
		} else {
			last.Unlink()
		}
	}
	p.appendLink("mailto:"+string(candidate), "", string(candidate))
	p.pos = end
	return true
}

func isAutolinkWordByte(c byte) bool {
	return c == '_' || (c >= '0' && c <= '9') || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isBareAutolinkURLByte(c byte) bool {
	return c > ' ' && c != '<' && c != '>'
}

func isEmailLocalByte(c byte) bool {
	return isAutolinkWordByte(c) || strings.IndexByte(".!#$%&'*+/=?^_`{|}~-", c) >= 0
}

func isEmailDomainByte(c byte) bool {
	return isAutolinkWordByte(c) || c == '.' || c == '-'
}

// trimBareAutolinkTrailingPunct trims the common GitHub-autolinker
// trailing-punctuation set off source[start:end], and drops a trailing
// ')' only when it isn't balanced by an earlier '(' within the match.
func trimBareAutolinkTrailingPunct(source []byte, start, end int) int {
	for end > start {
		switch source[end-1] {
		case '.', ',', ':', ';', '!', '?', '\'', '"':
			end--
			continue
		case ')':
			if bytes.Count(source[start:end-1], []byte(")")) >= bytes.Count(source[start:end-1], []byte("(")) {
				end--
				continue
			}
		}
		break
	}
	return end
}

// parseFootnoteReference recognizes `[^name]` (GFM footnotes extension).
// RefNum/IxNum are assigned later, once usage order across the whole
// document is known (finalizeFootnoteReferences, called from parse.go).
func (p *inlineParser) parseFootnoteReference() bool {
	rest := p.source[p.pos+2:]
	end := bytes.IndexByte(rest, ']')
	if end <= 0 {
		return false
	}
	name := string(rest[:end])
	node := p.arena.alloc(FootnoteReference, NullSourcepos())
	node.setPayload(&FootnoteReferenceData{Name: name})
	p.appendChild(node)
	p.pos += 2 + end + 1
	return true
}
