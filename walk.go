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

// Cursor describes a Node encountered during Walk.
type Cursor struct {
	node   Node
	parent Node
	index  int
}

// Node returns the current Node.
func (c *Cursor) Node() Node { return c.node }

// Parent returns the parent of the current Node.
func (c *Cursor) Parent() Node { return c.parent }

// Index returns the position of the current Node among its parent's
// children, or a negative value if it has no parent.
func (c *Cursor) Index() int { return c.index }

// WalkOptions is the set of parameters to Walk.
type WalkOptions struct {
	// Pre, if not nil, is called for each node before its children are
	// visited (pre-order). Returning false skips the node's children and
	// the matching Post call.
	Pre func(c *Cursor) bool
	// Post, if not nil, is called for each node after its children have
	// been visited (post-order). Returning false stops the walk.
	Post func(c *Cursor) bool
}

// Walk traverses root's subtree depth-first using the arena's sibling
// links (node.go).
func Walk(root Node, opts *WalkOptions) {
	type frame struct {
		Cursor
		post bool
	}
	stack := []frame{{Cursor: Cursor{node: root, index: -1}}}
	cursor := new(Cursor)
	for len(stack) > 0 {
		curr := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if curr.post {
			if opts.Post != nil {
				*cursor = curr.Cursor
				if !opts.Post(cursor) {
					return
				}
			}
			continue
		}
		if opts.Pre != nil {
			*cursor = curr.Cursor
			if !opts.Pre(cursor) {
				continue
			}
		}
		curr.post = true
		stack = append(stack, curr)

		var children []Node
		for c := curr.node.FirstChild(); !c.IsNil(); c = c.Next() {
			children = append(children, c)
		}
		for i := len(children) - 1; i >= 0; i-- {
			stack = append(stack, frame{Cursor: Cursor{
				parent: curr.node,
				node:   children[i],
				index:  i,
			}})
		}
	}
}
