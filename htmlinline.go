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

import "strings"

// scanHTMLTagInline recognizes a single inline HTML tag, comment,
// processing instruction, declaration, or CDATA section starting at
// b[0] == '<' (CommonMark §6.9), returning the number of bytes consumed.
// Operates on plain slice indexing since an inline parse here always
// runs over one leaf block's contiguous content buffer.
func scanHTMLTagInline(b []byte) (n int, ok bool) {
	if len(b) == 0 || b[0] != '<' {
		return 0, false
	}
	if len(b) < 2 {
		return 0, false
	}
	switch b[1] {
	case '?':
		end := strings.Index(string(b[2:]), "?>")
		if end < 0 {
			return 0, false
		}
		return 2 + end + 2, true
	case '!':
		rest := b[2:]
		switch {
		case len(rest) > 0 && isASCIILetter(rest[0]):
			end := indexByteFrom(b, 2, '>')
			if end < 0 {
				return 0, false
			}
			return end + 1, true
		case hasBytePrefix(rest, "--"):
			if hasBytePrefix(rest[2:], ">") || hasBytePrefix(rest[2:], "->") {
				return 0, false
			}
			end := strings.Index(string(rest[2:]), "-->")
			if end < 0 {
				return 0, false
			}
			return 2 + 2 + end + 3, true
		case hasBytePrefix(rest, "[CDATA["):
			end := strings.Index(string(rest[7:]), "]]>")
			if end < 0 {
				return 0, false
			}
			return 2 + 7 + end + 3, true
		default:
			return 0, false
		}
	case '/':
		end := scanHTMLClosingTag(b[1:])
		if end < 0 {
			return 0, false
		}
		return 1 + end, true
	default:
		end := scanHTMLOpenTag(b[1:])
		if end < 0 {
			return 0, false
		}
		return 1 + end, true
	}
}

func indexByteFrom(b []byte, from int, c byte) int {
	for i := from; i < len(b); i++ {
		if b[i] == c {
			return i
		}
	}
	return -1
}

// scanHTMLOpenTag parses an open tag sans the leading '<', returning the
// number of bytes (within its own slice) consumed through the closing '>'.
func scanHTMLOpenTag(b []byte) (end int) {
	i, ok := scanHTMLTagName(b, 0)
	if !ok {
		return -1
	}
	for {
		before := i
		i = skipTagSpace(b, i)
		if i >= len(b) {
			return -1
		}
		if b[i] == '/' {
			i++
			if i >= len(b) || b[i] != '>' {
				return -1
			}
			return i + 1
		}
		if b[i] == '>' {
			return i + 1
		}
		if i == before {
			var attrOK bool
			i, attrOK = scanHTMLAttribute(b, i)
			if !attrOK {
				return -1
			}
			continue
		}
		var attrOK bool
		i, attrOK = scanHTMLAttribute(b, i)
		if !attrOK {
			return -1
		}
	}
}

func scanHTMLClosingTag(b []byte) (end int) {
	if len(b) == 0 || b[0] != '/' {
		return -1
	}
	i, ok := scanHTMLTagName(b, 1)
	if !ok {
		return -1
	}
	i = skipTagSpace(b, i)
	if i >= len(b) || b[i] != '>' {
		return -1
	}
	return i + 1
}

func scanHTMLTagName(b []byte, i int) (int, bool) {
	if i >= len(b) || !isASCIILetter(b[i]) {
		return 0, false
	}
	i++
	for i < len(b) && (isASCIILetter(b[i]) || isASCIIDigit(b[i]) || b[i] == '-') {
		i++
	}
	return i, true
}

func skipTagSpace(b []byte, i int) int {
	for i < len(b) && (b[i] == ' ' || b[i] == '\t' || b[i] == '\n' || b[i] == '\r') {
		i++
	}
	return i
}

func scanHTMLAttribute(b []byte, i int) (int, bool) {
	if i >= len(b) {
		return i, false
	}
	if c := b[i]; !isASCIILetter(c) && c != '_' && c != ':' {
		return i, false
	}
	i++
	for i < len(b) && (isASCIILetter(b[i]) || isASCIIDigit(b[i]) || strings.IndexByte("_.:-", b[i]) >= 0) {
		i++
	}
	save := i
	j := skipTagSpace(b, i)
	if j >= len(b) || b[j] != '=' {
		return save, true
	}
	j++
	j = skipTagSpace(b, j)
	if j >= len(b) {
		return i, false
	}
	switch c := b[j]; {
	case c == '\'' || c == '"':
		j++
		for j < len(b) && b[j] != c {
			j++
		}
		if j >= len(b) {
			return i, false
		}
		return j + 1, true
	case isUnquotedAttributeValueChar(c):
		for j < len(b) && isUnquotedAttributeValueChar(b[j]) {
			j++
		}
		return j, true
	default:
		return i, false
	}
}

func isUnquotedAttributeValueChar(c byte) bool {
	return !isSpaceTabOrLineEnding(c) && strings.IndexByte("\"'=<>`", c) < 0
}
