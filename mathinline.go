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

// parseMath recognizes `$...$` (inline) and `$$...$$` (display) math
// spans (comrak's math_dollars extension), plus, when Extension.MathCode
// is set, the backtick-protected `` $`...`$ `` form that lets math
// content contain literal `$` without escaping. Unlike code spans, a
// dollar math span never crosses a line ending in this implementation.
func (p *inlineParser) parseMath() bool {
	if p.opts.Extension.MathCode && p.pos+1 < len(p.source) && p.source[p.pos+1] == '`' {
		return p.parseCodeMath()
	}
	if !p.opts.Extension.MathDollars {
		return false
	}
	display := false
	i := p.pos + 1
	if i < len(p.source) && p.source[i] == '$' {
		display = true
		i++
	}
	contentStart := i
	for i < len(p.source) {
		c := p.source[i]
		if c == '\\' {
			i += 2
			continue
		}
		if c == '\n' {
			return false
		}
		if c == '$' {
			if display {
				if i+1 < len(p.source) && p.source[i+1] == '$' {
					return p.finishMath(contentStart, i, true, i+2)
				}
				i++
				continue
			}
			return p.finishMath(contentStart, i, false, i+1)
		}
		i++
	}
	return false
}

func (p *inlineParser) finishMath(contentStart, contentEnd int, display bool, newPos int) bool {
	content := p.source[contentStart:contentEnd]
	if !display && (len(content) == 0 || content[0] == ' ' || content[len(content)-1] == ' ') {
		return false
	}
	node := p.arena.alloc(Math, NullSourcepos())
	node.setPayload(&MathData{DollarMath: !display, DisplayMath: display, Literal: string(content)})
	node.setLiteral(string(content))
	p.appendChild(node)
	p.pos = newPos
	return true
}

// parseCodeMath recognizes the `` $`...`$ `` code-math span: a run of
// backticks immediately after the `$`, closed by a matching run
// immediately followed by `$`, the same matching rule parseCodeSpan uses
// for ordinary code spans.
func (p *inlineParser) parseCodeMath() bool {
	i := p.pos + 1
	start := i
	for i < len(p.source) && p.source[i] == '`' {
		i++
	}
	fenceLen := i - start
	if fenceLen == 0 {
		return false
	}
	contentStart := i
	searchFrom := i
	for searchFrom < len(p.source) {
		idx := bytes.IndexByte(p.source[searchFrom:], '`')
		if idx < 0 {
			return false
		}
		runStart := searchFrom + idx
		runEnd := runStart
		for runEnd < len(p.source) && p.source[runEnd] == '`' {
			runEnd++
		}
		if runEnd-runStart == fenceLen && runEnd < len(p.source) && p.source[runEnd] == '$' {
			content := p.source[contentStart:runStart]
			node := p.arena.alloc(Math, NullSourcepos())
			node.setPayload(&MathData{DollarMath: true, DisplayMath: false, Literal: string(content)})
			node.setLiteral(string(content))
			p.appendChild(node)
			p.pos = runEnd + 1
			return true
		}
		searchFrom = runEnd
	}
	return false
}

// shortCodeTable is a small subset of GitHub's gemoji table (comrak's
// shortcodes extension), enough to exercise the extension end to end
// without vendoring the full gemoji data set.
var shortCodeTable = map[string]string{
	"smile":            "\U0001F604",
	"laughing":         "\U0001F606",
	"blush":            "\U0001F60A",
	"heart":            "❤️",
	"thumbsup":         "\U0001F44D",
	"thumbsdown":       "\U0001F44E",
	"tada":             "\U0001F389",
	"rocket":           "\U0001F680",
	"eyes":             "\U0001F440",
	"fire":             "\U0001F525",
	"warning":          "⚠️",
	"x":                "❌",
	"white_check_mark": "✅",
	"bug":              "\U0001F41B",
	"sparkles":         "✨",
	"memo":             "\U0001F4DD",
}

func (p *inlineParser) parseShortCode() bool {
	i := p.pos + 1
	start := i
	for i < len(p.source) && isShortCodeByte(p.source[i]) {
		i++
	}
	if i >= len(p.source) || p.source[i] != ':' || i == start {
		return false
	}
	emoji, ok := shortCodeTable[string(p.source[start:i])]
	if !ok {
		return false
	}
	node := p.arena.alloc(ShortCode, NullSourcepos())
	node.setLiteral(emoji)
	p.appendChild(node)
	p.pos = i + 1
	return true
}

func isShortCodeByte(c byte) bool {
	return isASCIILetter(c) || isASCIIDigit(c) || c == '_' || c == '+' || c == '-'
}

// parseWikiLink recognizes `[[target]]` / `[[target|label]]`, whose
// order depends on Extension.WikiLinksTitleAfterPipe (comrak's two wiki
// link dialects).
func (p *inlineParser) parseWikiLink() bool {
	rest := p.source[p.pos+2:]
	end := bytes.Index(rest, []byte("]]"))
	if end < 0 {
		return false
	}
	inner := rest[:end]
	if bytes.ContainsRune(inner, '\n') {
		return false
	}
	target, label := string(inner), string(inner)
	if idx := bytes.IndexByte(inner, '|'); idx >= 0 {
		if p.opts.Extension.WikiLinksTitleAfterPipe {
			target, label = string(inner[:idx]), string(inner[idx+1:])
		} else {
			label, target = string(inner[:idx]), string(inner[idx+1:])
		}
	}
	node := p.arena.alloc(WikiLink, NullSourcepos())
	node.setPayload(&WikiLinkData{URL: target})
	text := p.arena.alloc(Text, NullSourcepos())
	text.setLiteral(label)
	node.AppendChild(text)
	text.close()
	p.appendChild(node)
	p.pos += 2 + end + 2
	return true
}
