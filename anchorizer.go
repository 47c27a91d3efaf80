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
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Anchorizer generates GitHub-style heading anchor slugs (the
// Extension.HeaderIDs feature): Unicode-aware lowercasing via
// golang.org/x/text/cases (rather than a byte-at-a-time ASCII fold, since
// headings are free-form Unicode text), every rune other than a letter,
// mark, number, connector punctuation, or hyphen dropped, spaces folded to
// hyphens, and a running counter that
// disambiguates repeated headings by appending "-1", "-2", and so on.
type Anchorizer struct {
	seen map[string]int
	fold cases.Caser
}

func newAnchorizer() *Anchorizer {
	return &Anchorizer{
		seen: make(map[string]int),
		fold: cases.Lower(language.Und),
	}
}

// Anchorize returns a unique slug for text.
func (a *Anchorizer) Anchorize(text string) string {
	slug := a.slugify(text)
	n, exists := a.seen[slug]
	a.seen[slug] = n + 1
	if !exists {
		return slug
	}
	return slug + "-" + itoa(n)
}

func (a *Anchorizer) slugify(text string) string {
	lower := a.fold.String(text)
	var sb strings.Builder
	sb.Grow(len(lower))
	lastWasSpace := false
	for _, r := range lower {
		switch {
		case r == ' ' || r == '\t' || r == '\n':
			if sb.Len() > 0 && !lastWasSpace {
				sb.WriteByte('-')
			}
			lastWasSpace = true
		case r == '-' || r == '_' || isAlnumRune(r):
			sb.WriteRune(r)
			lastWasSpace = false
		default:
			// Punctuation is dropped, not replaced with a separator, per
			// GitHub's slugger.
		}
	}
	return strings.TrimRight(sb.String(), "-")
}

func isAlnumRune(r rune) bool {
	if r <= 0x7f {
		return (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9')
	}
	return unicode.IsLetter(r) || unicode.IsMark(r) || unicode.IsNumber(r) || unicode.Is(unicode.Pc, r)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	neg := n < 0
	if neg {
		n = -n
	}
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	if neg {
		i--
		buf[i] = '-'
	}
	return string(buf[i:])
}
