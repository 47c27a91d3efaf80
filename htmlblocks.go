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

// htmlBlockData is the payload for an HTMLBlock node: which of
// CommonMark's seven start-condition types opened it, which determines
// its end condition (CommonMark §4.6).
type htmlBlockData struct {
	typ int
}

// htmlBlockTagsType6 is the block-level tag-name set for start condition 6
// (CommonMark §4.6, condition 6): these names, as either an opening or
// closing tag, open an HTML block that ends at the next blank line.
var htmlBlockTagsType6 = map[string]bool{
	"address": true, "article": true, "aside": true, "base": true,
	"basefont": true, "blockquote": true, "body": true, "caption": true,
	"center": true, "col": true, "colgroup": true, "dd": true,
	"details": true, "dialog": true, "dir": true, "div": true, "dl": true,
	"dt": true, "fieldset": true, "figcaption": true, "figure": true,
	"footer": true, "form": true, "frame": true, "frameset": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"head": true, "header": true, "hr": true, "html": true, "iframe": true,
	"legend": true, "li": true, "link": true, "main": true, "menu": true,
	"menuitem": true, "nav": true, "noframes": true, "ol": true,
	"optgroup": true, "option": true, "p": true, "param": true,
	"section": true, "summary": true, "table": true, "tbody": true,
	"td": true, "tfoot": true, "th": true, "thead": true, "title": true,
	"tr": true, "track": true, "ul": true,
}

var htmlBlockTagsType1 = map[string]bool{
	"script": true, "pre": true, "style": true, "textarea": true,
}

// detectHTMLBlockType classifies the start of an HTML block per
// CommonMark §4.6's seven conditions. canInterrupt is false when the
// current container is an open paragraph, disabling condition 7 (a bare
// tag line cannot interrupt a paragraph).
func detectHTMLBlockType(line []byte, canInterrupt bool) int {
	if len(line) == 0 || line[0] != '<' {
		return 0
	}
	rest := line[1:]

	if bytes.HasPrefix(rest, []byte("!--")) {
		return 2
	}
	if bytes.HasPrefix(rest, []byte("?")) {
		return 3
	}
	if len(rest) > 0 && rest[0] == '!' && len(rest) > 1 && isASCIILetter(rest[1]) {
		return 4
	}
	if bytes.HasPrefix(rest, []byte("![CDATA[")) {
		return 5
	}

	closing := false
	i := 0
	if i < len(rest) && rest[i] == '/' {
		closing = true
		i++
	}
	nameStart := i
	for i < len(rest) && isASCIITagNameByte(rest[i]) {
		i++
	}
	if i == nameStart {
		return 0
	}
	name := toLowerASCIIBytes(rest[nameStart:i])

	if htmlBlockTagsType1[string(name)] {
		return 1
	}
	if htmlBlockTagsType6[string(name)] {
		if closing {
			if i >= len(rest) || rest[i] != '>' {
				return 0
			}
		} else if i < len(rest) && rest[i] != ' ' && rest[i] != '\t' && rest[i] != '>' && !(rest[i] == '/' && i+1 < len(rest) && rest[i+1] == '>') {
			return 0
		}
		return 6
	}
	if canInterrupt {
		// Condition 7: a complete open or closing tag (with nothing else
		// on the line but whitespace), any other tag name.
		if looksLikeCompleteTagLine(line) {
			return 7
		}
	}
	return 0
}

func isASCIILetter(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isASCIITagNameByte(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '-'
}

// looksLikeCompleteTagLine is a pragmatic approximation of CommonMark's
// condition 7 regex: the line, once trailing whitespace is trimmed, is a
// single complete open or closing tag and nothing else.
func looksLikeCompleteTagLine(line []byte) bool {
	trimmed := bytes.TrimRight(line, " \t\r\n")
	if len(trimmed) < 3 || trimmed[0] != '<' || trimmed[len(trimmed)-1] != '>' {
		return false
	}
	i := 1
	if trimmed[i] == '/' {
		i++
	}
	start := i
	for i < len(trimmed) && isASCIITagNameByte(trimmed[i]) {
		i++
	}
	return i > start
}

// htmlBlockEndsOnLine reports whether typ's single-line end condition
// (CommonMark §4.6 conditions 1-5) is satisfied somewhere within line.
func htmlBlockEndsOnLine(typ int, line []byte) bool {
	switch typ {
	case 1:
		return bytes.Contains(bytes.ToLower(line), []byte("</script>")) ||
			bytes.Contains(bytes.ToLower(line), []byte("</pre>")) ||
			bytes.Contains(bytes.ToLower(line), []byte("</style>")) ||
			bytes.Contains(bytes.ToLower(line), []byte("</textarea>"))
	case 2:
		return bytes.Contains(line, []byte("-->"))
	case 3:
		return bytes.Contains(line, []byte("?>"))
	case 4:
		return bytes.Contains(line, []byte(">"))
	case 5:
		return bytes.Contains(line, []byte("]]>"))
	default:
		return false
	}
}

func openHTMLBlock(p *blockParser) bool {
	if p.indent() >= 4 {
		return false
	}
	rest := p.bytesAfterIndent()
	typ := detectHTMLBlockType(rest, p.container.Kind() != Paragraph)
	if typ == 0 {
		return false
	}
	p.consumeIndent(p.indent())
	node := p.openBlock(HTMLBlock)
	node.setPayload(&htmlBlockData{typ: typ})
	lineBytes := p.line[p.i:]
	p.collectContent(node, len(p.line)-p.i)
	p.consumeLine()
	if typ >= 1 && typ <= 5 && htmlBlockEndsOnLine(typ, lineBytes) {
		p.closeNode(node, p.lineStart+p.i)
	}
	return true
}

// matchHTMLBlock implements Phase 1 continuation for an open HTML block.
func matchHTMLBlock(p *blockParser, n Node) bool {
	data, _ := n.Payload().(*htmlBlockData)
	if data == nil {
		return false
	}
	if data.typ == 6 || data.typ == 7 {
		if p.restBlank() {
			return false
		}
		p.collectContent(n, len(p.line)-p.i)
		p.consumeLine()
		return true
	}
	lineBytes := p.line[p.i:]
	p.collectContent(n, len(p.line)-p.i)
	p.consumeLine()
	if htmlBlockEndsOnLine(data.typ, lineBytes) {
		p.closeNode(n, p.lineStart+p.i)
	}
	return true
}
