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
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/width"
)

// parseDelimiterRun scans a run of ch and records it on the delimiter
// stack with its open/close flanking flags (CommonMark §6.2).
func (p *inlineParser) parseDelimiterRun(ch byte) {
	start := p.pos
	for p.pos < len(p.source) && p.source[p.pos] == ch {
		p.pos++
	}
	n := p.pos - start

	canOpen, canClose := delimiterFlanking(p.source, start, p.pos, ch, p.opts.Extension.CJKFriendlyEmphasis)

	node := p.arena.alloc(Text, NullSourcepos())
	node.setLiteral(string(p.source[start:p.pos]))
	p.appendChild(node)
	p.delims = append(p.delims, delimiter{node: node, char: ch, n: n, canOpen: canOpen, canClose: canClose, active: true})
}

// delimiterFlanking computes whether the run of ch occupying source[start:end]
// can open and/or close emphasis, per CommonMark §6.2's left/right-flanking
// rules (with the asymmetric `_` intraword restriction; `*`, `~`, `^`, `=`,
// and `|` all use the symmetric GFM rule). Split out from parseDelimiterRun
// as a pure function so it can be driven directly by tests, the way the
// teacher's emphasisFlags was.
//
// cjkFriendly mirrors Extension.CJKFriendlyEmphasis: CJK prose runs words
// together with no spaces, so a `_run_` sitting directly against a wide CJK
// character is ordinarily treated as intraword and can neither open nor
// close.
// When enabled, a bordering East Asian Wide/Fullwidth rune counts as
// punctuation for the flanking computation, same as comrak's handling.
func delimiterFlanking(source []byte, start, end int, ch byte, cjkFriendly bool) (canOpen, canClose bool) {
	before, _ := utf8.DecodeLastRuneInString(string(source[:start]))
	after, _ := utf8.DecodeRuneInString(string(source[end:]))
	beforeSpace, afterSpace := isUnicodeSpaceOrEdge(before), isUnicodeSpaceOrEdge(after)
	beforePunct, afterPunct := isUnicodePunct(before), isUnicodePunct(after)
	if cjkFriendly {
		beforePunct = beforePunct || isCJKWideRune(before)
		afterPunct = afterPunct || isCJKWideRune(after)
	}

	leftFlanking := !afterSpace && (!afterPunct || beforeSpace || beforePunct)
	rightFlanking := !beforeSpace && (!beforePunct || afterSpace || afterPunct)

	switch ch {
	case '_':
		canOpen = leftFlanking && (!rightFlanking || beforePunct)
		canClose = rightFlanking && (!leftFlanking || afterPunct)
	default: // '*', '~', '^', '=', '|' all use the symmetric GFM rule.
		canOpen = leftFlanking
		canClose = rightFlanking
	}
	return canOpen, canClose
}

func isUnicodeSpaceOrEdge(r rune) bool {
	return r == utf8.RuneError || unicode.IsSpace(r)
}

func isUnicodePunct(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

// isCJKWideRune reports whether r renders at East Asian Wide or Fullwidth,
// the golang.org/x/text/width signal used to detect CJK characters for
// Extension.CJKFriendlyEmphasis.
func isCJKWideRune(r rune) bool {
	switch width.LookupRune(r).Kind() {
	case width.EastAsianWide, width.EastAsianFullwidth:
		return true
	}
	return false
}

// processEmphasis walks the delimiter stack from stackBottom, pairing each
// closer with the nearest matching opener and wrapping the span between
// them, the simplified single-pass variant of cmark's emphasis algorithm
// (it skips the "multiple of 3" edge-case rule documented in CommonMark's
// reference implementation, a pragmatic subset like references.go's).
func processEmphasis(p *inlineParser, stackBottom int) {
	closerIdx := stackBottom
	for closerIdx < len(p.delims) {
		d := &p.delims[closerIdx]
		if !d.active || !d.canClose || d.n == 0 {
			closerIdx++
			continue
		}
		openerIdx := -1
		for j := closerIdx - 1; j >= stackBottom; j-- {
			o := &p.delims[j]
			if o.active && o.canOpen && o.char == d.char && o.n > 0 {
				openerIdx = j
				break
			}
		}
		if openerIdx < 0 {
			closerIdx++
			continue
		}
		opener := &p.delims[openerIdx]
		closer := d

		useCount, kind := pickEmphasisKind(p.opts, opener.char, opener.n, closer.n)
		if useCount == 0 {
			closerIdx++
			continue
		}
		if useCount > opener.n {
			useCount = opener.n
		}
		if useCount > closer.n {
			useCount = closer.n
		}

		wrapInline(p.arena, opener.node, closer.node, kind, useCount)

		opener.n -= useCount
		closer.n -= useCount
		for k := openerIdx + 1; k < closerIdx; k++ {
			p.delims[k].active = false
		}
		if opener.n == 0 {
			opener.active = false
		}
		if closer.n == 0 {
			closer.active = false
			closerIdx++
		}
	}
}

// pickEmphasisKind decides how many delimiter characters a match consumes
// and which node kind it produces for a given delimiter character. A
// zero count means the extensions enabled admit no match at all, and the
// caller must leave the delimiters untouched.
func pickEmphasisKind(opts Options, ch byte, openerN, closerN int) (count int, kind NodeKind) {
	both2 := openerN >= 2 && closerN >= 2
	switch ch {
	case '~':
		// Strikethrough and Subscript each require an exact run-length
		// match (2 and 1 respectively): a double run never partially
		// matches a single-tilde Subscript closer, so `~~H~2~O~~` with
		// only Subscript enabled leaves the outer `~~` as literal text
		// (_examples/original_source/src/tests/subscript.rs).
		if opts.Extension.Strikethrough && both2 {
			return 2, Strikethrough
		}
		if opts.Extension.Subscript && openerN == 1 && closerN == 1 {
			return 1, Subscript
		}
		return 0, 0
	case '^':
		return 1, Superscript
	case '=':
		if both2 {
			return 2, Highlight
		}
		return 1, Highlight
	case '|':
		if both2 {
			return 2, SpoileredText
		}
		return 1, SpoileredText
	case '_':
		if both2 {
			if opts.Extension.Underline {
				return 2, Underline
			}
			return 2, Strong
		}
		return 1, Emph
	default: // '*'
		if both2 {
			return 2, Strong
		}
		return 1, Emph
	}
}

// wrapInline wraps the inline nodes strictly between opener and closer
// into a new node of kind. The count consumed characters of each
// delimiter run are markup and vanish entirely; any unconsumed prefix of
// opener's run or suffix of closer's run survives as plain text
// immediately outside the new wrap, not as one of its children.
func wrapInline(arena *Arena, opener, closer Node, kind NodeKind, count int) {
	parent := opener.Parent()
	prevAnchor := opener.Prev()
	nextAnchor := closer.Next()
	innerFirst := opener.Next()
	innerLast := closer.Prev()
	hasInner := !innerFirst.Equal(closer)

	var openerLeftover, closerLeftover Node
	if openerLit := opener.Literal(); len(openerLit) > count {
		openerLeftover = arena.alloc(Text, opener.Sourcepos())
		openerLeftover.setLiteral(openerLit[:len(openerLit)-count])
	}
	if closerLit := closer.Literal(); len(closerLit) > count {
		closerLeftover = arena.alloc(Text, closer.Sourcepos())
		closerLeftover.setLiteral(closerLit[count:])
	}

	// Detach the whole opener..closer run from its current position.
	if !prevAnchor.IsNil() {
		prevAnchor.slot().next = nextAnchor.id
	} else if !parent.IsNil() {
		parent.slot().firstChild = nextAnchor.id
	}
	if !nextAnchor.IsNil() {
		nextAnchor.slot().prev = prevAnchor.id
	} else if !parent.IsNil() {
		parent.slot().lastChild = prevAnchor.id
	}

	wrap := arena.alloc(kind, spanCovering(opener, closer))
	if hasInner {
		ws := wrap.slot()
		ws.firstChild = innerFirst.id
		ws.lastChild = innerLast.id
		innerFirst.slot().prev = 0
		innerLast.slot().next = 0
		for c := innerFirst; !c.IsNil(); c = c.Next() {
			c.slot().parent = wrap.id
			if c.Equal(innerLast) {
				break
			}
		}
	}
	wrap.close()

	// Splice [openerLeftover?] wrap [closerLeftover?] back in between
	// prevAnchor and nextAnchor, replacing the detached run.
	cur := prevAnchor
	attach := func(n Node) {
		ns := n.slot()
		ns.parent = parent.id
		ns.prev = cur.id
		if !cur.IsNil() {
			cur.slot().next = n.id
		} else if !parent.IsNil() {
			parent.slot().firstChild = n.id
		}
		cur = n
	}
	if !openerLeftover.IsNil() {
		attach(openerLeftover)
	}
	attach(wrap)
	if !closerLeftover.IsNil() {
		attach(closerLeftover)
	}
	cur.slot().next = nextAnchor.id
	if !nextAnchor.IsNil() {
		nextAnchor.slot().prev = cur.id
	} else if !parent.IsNil() {
		parent.slot().lastChild = cur.id
	}
}

// wrapRange relocates the sibling run [from, to] (inclusive) so that it
// becomes the child list of a freshly allocated kind node occupying that
// same position in from's former parent.
func wrapRange(arena *Arena, from, to Node, kind NodeKind) Node {
	parent := from.Parent()
	wrap := arena.alloc(kind, spanCovering(from, to))
	prev := from.Prev()
	next := to.Next()

	ws := wrap.slot()
	ws.parent = parent.id
	ws.prev = prev.id
	ws.next = next.id
	if !prev.IsNil() {
		prev.slot().next = wrap.id
	} else {
		parent.slot().firstChild = wrap.id
	}
	if !next.IsNil() {
		next.slot().prev = wrap.id
	} else {
		parent.slot().lastChild = wrap.id
	}

	from.slot().prev = 0
	to.slot().next = 0
	ws.firstChild = from.id
	ws.lastChild = to.id
	for c := from; !c.IsNil(); c = c.Next() {
		c.slot().parent = wrap.id
		if c.Equal(to) {
			break
		}
	}
	wrap.close()
	return wrap
}

func insertBeforeNode(n, newNode Node) {
	parent := n.Parent()
	prev := n.Prev()
	ns := newNode.slot()
	ns.parent = parent.id
	ns.prev = prev.id
	ns.next = n.id
	if !prev.IsNil() {
		prev.slot().next = newNode.id
	} else {
		parent.slot().firstChild = newNode.id
	}
	n.slot().prev = newNode.id
	newNode.close()
}

func insertAfterNode(n, newNode Node) {
	parent := n.Parent()
	next := n.Next()
	ns := newNode.slot()
	ns.parent = parent.id
	ns.prev = n.id
	ns.next = next.id
	if !next.IsNil() {
		next.slot().prev = newNode.id
	} else {
		parent.slot().lastChild = newNode.id
	}
	n.slot().next = newNode.id
	newNode.close()
}

func spanCovering(from, to Node) Sourcepos {
	a, b := from.Sourcepos(), to.Sourcepos()
	return Sourcepos{StartLine: a.StartLine, StartCol: a.StartCol, EndLine: b.EndLine, EndCol: b.EndCol}
}
