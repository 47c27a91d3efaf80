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
	"errors"
	"fmt"
)

// Sentinel errors returned by the renderers and plugin hooks. Checked with
// errors.Is by callers that need to distinguish a plugin failure from a
// malformed document.
var (
	// ErrPluginFailed wraps an error returned by a SyntaxHighlighter,
	// HeadingAdapter, or ImageAdapter hook during rendering.
	ErrPluginFailed = errors.New("arborium: plugin hook failed")

	// ErrInvalidAST is the sentinel wrapped by the value invalidASTf
	// panics with. No renderer calls invalidASTf, so no renderer reports
	// it: a hand-built node tree is rendered without structural checks.
	ErrInvalidAST = errors.New("arborium: invalid node tree")
)

// pluginError wraps err from a named plugin hook so %w unwrapping reaches
// both ErrPluginFailed and the original cause.
func pluginError(hook string, err error) error {
	return fmt.Errorf("%s: %w: %w", hook, ErrPluginFailed, err)
}

// invalidASTf panics with a diagnostic identifying the offending node kind
// and the renderer invariant it violated, for structural preconditions
// such as a node whose Payload type doesn't match its Kind, or a child
// appearing where the AST's own construction rules forbid it. No renderer
// in this package calls it.
func invalidASTf(format string, args ...any) {
	panic(fmt.Errorf("%w: %s", ErrInvalidAST, fmt.Sprintf(format, args...)))
}
