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

	"gopkg.in/yaml.v3"
)

// frontMatterData is the payload for a FrontMatter node.
type frontMatterData struct {
	delim string
}

// openFrontMatter recognizes a front-matter fence (a line equal to
// Extension.FrontMatterDelimiter; an empty delimiter, the default,
// disables front matter) but only as the very first line of the document
// (comrak's front_matter_delimiter extension).
func openFrontMatter(p *blockParser) bool {
	delim := p.opts.Extension.FrontMatterDelimiter
	if delim == "" || p.lineNo != 1 || !p.root.FirstChild().IsNil() {
		return false
	}
	if !scanFrontMatterDelimiter(p.line, delim) {
		return false
	}
	node := p.openBlock(FrontMatter)
	node.setPayload(&frontMatterData{delim: delim})
	p.consumeLine()
	return true
}

// matchFrontMatter consumes lines verbatim until the matching closing
// delimiter. The collected content is not validated: the FrontMatter node
// keeps whatever lines fell between the fences, valid YAML or not, and a
// block with no closing delimiter runs to the end of the document.
func matchFrontMatter(p *blockParser, n Node) bool {
	data, _ := n.Payload().(*frontMatterData)
	if data == nil {
		return false
	}
	if scanFrontMatterDelimiter(p.line, data.delim) {
		p.consumeLine()
		p.closeNode(n, p.lineStart+p.i)
		return true
	}
	p.collectContent(n, len(p.line)-p.i)
	p.consumeLine()
	return true
}

// validFrontMatterYAML reports whether content parses as a YAML mapping.
// The block parser does not call it; parsing never fails the whole
// document.
func validFrontMatterYAML(content []byte) bool {
	trimmed := bytes.TrimSpace(content)
	if len(trimmed) == 0 {
		return true
	}
	var v map[string]any
	return yaml.Unmarshal(trimmed, &v) == nil
}
