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
	"strconv"
	"strings"
	"unicode/utf8"

	"go4.org/bytereplacer"
	"golang.org/x/net/html"
)

// htmlEscaper replaces the characters CommonMark's HTML renderer must
// always escape in text content. Built with go4.org/bytereplacer, also
// used by internal/normhtml for byte-level substitution tables.
var htmlEscaper = bytereplacer.New(
	`&`, "&amp;",
	`<`, "&lt;",
	`>`, "&gt;",
	`"`, "&quot;",
)

// htmlAttrEscaper is used for attribute values, which do not need `>` escaped
// but do need newlines normalized to spaces is handled by callers.
var htmlAttrEscaper = bytereplacer.New(
	`&`, "&amp;",
	`<`, "&lt;",
	`"`, "&quot;",
)

// escapeHTML appends the HTML-escaped form of src to dst.
func escapeHTML(dst, src []byte) []byte {
	return append(dst, htmlEscaper.Replace(src)...)
}

// escapeHTMLAttr appends the HTML-escaped form of src, suitable for an
// attribute value, to dst.
func escapeHTMLAttr(dst, src []byte) []byte {
	return append(dst, htmlAttrEscaper.Replace(src)...)
}

// decodeEntity decodes a single named or numeric entity at the start of s
// (s must begin with '&'). It returns the decoded text and the number of
// bytes consumed, or ok=false if s does not begin with a valid entity.
//
// Named-entity lookup delegates to golang.org/x/net/html's UnescapeString
// rather than this package maintaining its own ~2000-row perfect-hash
// table: this package already depends on golang.org/x/net/html for
// tag-name handling, so reusing its (HTML5-spec-complete) entity table is
// the idiomatic choice over hand-rolling one.
func decodeEntity(s []byte) (decoded string, n int, ok bool) {
	if len(s) < 2 || s[0] != '&' {
		return "", 0, false
	}
	if s[1] == '#' {
		return decodeNumericEntity(s)
	}
	// Named entity: greedily match the longest semicolon-terminated name
	// x/net/html recognizes.
	end := -1
	for i := 1; i < len(s) && i < 64; i++ {
		c := s[i]
		if c == ';' {
			end = i
			break
		}
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			break
		}
	}
	if end < 0 {
		return "", 0, false
	}
	candidate := string(s[:end+1])
	unescaped := html.UnescapeString(candidate)
	if unescaped == candidate {
		return "", 0, false
	}
	return unescaped, end + 1, true
}

func decodeNumericEntity(s []byte) (decoded string, n int, ok bool) {
	i := 2
	var value int64
	var err error
	if i < len(s) && (s[i] == 'x' || s[i] == 'X') {
		i++
		start := i
		for i < len(s) && i-start < 8 && isHexDigit(s[i]) {
			i++
		}
		if i == start {
			return "", 0, false
		}
		value, err = strconv.ParseInt(string(s[start:i]), 16, 32)
	} else {
		start := i
		for i < len(s) && i-start < 8 && isASCIIDigit(s[i]) {
			i++
		}
		if i == start {
			return "", 0, false
		}
		value, err = strconv.ParseInt(string(s[start:i]), 10, 32)
	}
	if err != nil || i >= len(s) || s[i] != ';' {
		return "", 0, false
	}
	i++
	r := rune(value)
	if value == 0 || value > utf8.MaxRune || !utf8.ValidRune(r) {
		r = utf8.RuneError
	}
	return string(r), i, true
}

func isHexDigit(c byte) bool {
	return isASCIIDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

// percentEscapeSafe is the set of bytes NormalizeURI leaves untouched,
// matching CommonMark's reference implementation's "safe" URL character set.
const percentEscapeSafe = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789" +
	"-_.+!*'(),%#@?=;&,/:~$"

// NormalizeURI percent-escapes a URL destination for safe inclusion in an
// href/src attribute, leaving already-percent-escaped sequences alone.
func NormalizeURI(s string) string {
	var sb strings.Builder
	sb.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c == '%' && i+2 < len(s) && isHexDigit(s[i+1]) && isHexDigit(s[i+2]) {
			sb.WriteByte(c)
			continue
		}
		if strings.IndexByte(percentEscapeSafe, c) >= 0 {
			sb.WriteByte(c)
			continue
		}
		if c < 0x80 {
			sb.WriteString("%")
			sb.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
			continue
		}
		// Multi-byte UTF-8 sequence: percent-escape each byte.
		r, size := utf8.DecodeRuneInString(s[i:])
		if r == utf8.RuneError && size == 1 {
			sb.WriteString("%")
			sb.WriteString(strings.ToUpper(strconv.FormatInt(int64(c), 16)))
			continue
		}
		for _, b := range []byte(s[i : i+size]) {
			sb.WriteString("%")
			sb.WriteString(strings.ToUpper(strconv.FormatInt(int64(b), 16)))
		}
		i += size - 1
	}
	return sb.String()
}

// unsafeURLSchemes are schemes whose href/src value is replaced with the
// empty string when render.unsafe_ is false (spec §4.4), unless the value
// also matches a small data:image/ allowlist.
var unsafeURLSchemes = []string{"javascript:", "vbscript:", "file:", "data:"}

var safeDataImagePrefixes = []string{
	"data:image/png", "data:image/gif", "data:image/jpeg", "data:image/webp",
}

// isSafeURL reports whether url is safe to emit as an href/src even when
// unsafe rendering is disabled.
func isSafeURL(url string) bool {
	lower := strings.ToLower(strings.TrimSpace(url))
	for _, scheme := range unsafeURLSchemes {
		if strings.HasPrefix(lower, scheme) {
			if scheme == "data:" {
				for _, allowed := range safeDataImagePrefixes {
					if strings.HasPrefix(lower, allowed) {
						return true
					}
				}
			}
			return false
		}
	}
	return true
}

// tagfilterNames is the fixed GFM tagfilter set (spec §4.4): when enabled,
// raw HTML with one of these tag names has its leading `<` escaped.
var tagfilterNames = map[string]bool{
	"title":    true,
	"textarea": true,
	"style":    true,
	"xmp":      true,
	"iframe":   true,
	"noembed":  true,
	"noframes": true,
	"script":   true,
	"plaintext": true,
}
