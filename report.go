// This file is part of mkvrename (http://github.com/marcopaganini/mkvrename))
// See instructions in the README.md file that accompanies this program.
// (C) 2022-2024 by Marco Paganini <paganini AT paganini DOT net>

package main

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"
)

// A report line looks like "|  + Track type: audio". The prefix ("|  + ")
// length is the nesting level of the line.
var reportLineRe = regexp.MustCompile(`^([| ]*\+ )(.+?)(?:: (.*))?$`)

// Level of the first (top) entries in a report: the length of "+ ".
const topLevel = 2

// reportNode is one entry of a parsed report. Children are grouped by key,
// and each group keeps document order.
type reportNode struct {
	value    string
	hasValue bool
	keys     []string
	children map[string][]*reportNode
}

// MalformedLineError indicates a report line that does not follow the
// "<prefix> key[: value]" shape, or nests deeper than its parent allows.
type MalformedLineError struct {
	Line   int
	Text   string
	Reason string
}

func (e *MalformedLineError) Error() string {
	return fmt.Sprintf("malformed report line %d (%s): %q", e.Line, e.Reason, e.Text)
}

// Value returns the scalar value of the node and whether one was set.
func (n *reportNode) Value() (string, bool) {
	return n.value, n.hasValue
}

// Children returns all child nodes stored under key, in document order.
func (n *reportNode) Children(key string) []*reportNode {
	return n.children[key]
}

// Child returns the first child stored under key, or nil.
func (n *reportNode) Child(key string) *reportNode {
	if c := n.children[key]; len(c) > 0 {
		return c[0]
	}
	return nil
}

// Attr returns the value of the first child under key. The boolean is false
// when the child does not exist or carries no value.
func (n *reportNode) Attr(key string) (string, bool) {
	c := n.Child(key)
	if c == nil {
		return "", false
	}
	return c.Value()
}

// Keys returns the child keys in the order they were first seen.
func (n *reportNode) Keys() []string {
	return n.keys
}

// Path follows the first child for every key but the last, and returns the
// full list of children under the last key. Missing intermediate nodes
// yield an empty list.
func (n *reportNode) Path(keys ...string) []*reportNode {
	if len(keys) == 0 {
		return nil
	}
	node := n
	for _, k := range keys[:len(keys)-1] {
		if node = node.Child(k); node == nil {
			return nil
		}
	}
	return node.Children(keys[len(keys)-1])
}

func (n *reportNode) add(key string) *reportNode {
	if n.children == nil {
		n.children = map[string][]*reportNode{}
	}
	if _, ok := n.children[key]; !ok {
		n.keys = append(n.keys, key)
	}
	child := &reportNode{}
	n.children[key] = append(n.children[key], child)
	return child
}

// normalizeKey lowercases a key phrase and joins its words with underscores,
// so "Segment tracks" becomes "segment_tracks".
func normalizeKey(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "_")
}

// parseReport converts an indented report (as printed by mkvinfo) into a
// tree. Empty lines are ignored; any other line that does not match the
// report shape aborts the parse.
func parseReport(text string) (*reportNode, error) {
	root := &reportNode{}
	// stack[i] is the open node that receives entries of level i+topLevel.
	stack := []*reportNode{root}

	scanner := bufio.NewScanner(strings.NewReader(text))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineno := 0
	for scanner.Scan() {
		lineno++
		line := strings.TrimRight(scanner.Text(), "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}

		m := reportLineRe.FindStringSubmatchIndex(line)
		if m == nil {
			return nil, &MalformedLineError{Line: lineno, Text: line, Reason: "no match"}
		}
		level := m[3] - m[2]
		key := normalizeKey(line[m[4]:m[5]])
		if key == "" {
			return nil, &MalformedLineError{Line: lineno, Text: line, Reason: "empty key"}
		}

		// Entering a new level is fine, skipping one is not.
		depth := level - topLevel + 1
		if depth > len(stack) {
			return nil, &MalformedLineError{Line: lineno, Text: line, Reason: "level skipped"}
		}
		// Close deeper nodes and the previous sibling at this level.
		stack = stack[:depth]

		node := stack[len(stack)-1].add(key)
		stack = append(stack, node)

		if m[6] >= 0 {
			node.value = strings.TrimSpace(line[m[6]:m[7]])
			node.hasValue = true
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return root, nil
}

// encodeReport writes the tree below root in report form. Keys are written
// in their normalized form; parsing the output yields an equivalent tree.
// Children are grouped by key in first-seen order.
func encodeReport(w io.Writer, root *reportNode) error {
	bw := bufio.NewWriter(w)
	if err := encodeNode(bw, root, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func encodeNode(w *bufio.Writer, n *reportNode, depth int) error {
	prefix := "+ "
	if depth > 0 {
		prefix = "|" + strings.Repeat(" ", depth-1) + "+ "
	}
	for _, key := range n.keys {
		for _, child := range n.children[key] {
			line := prefix + key
			if v, ok := child.Value(); ok {
				line += ": " + v
			}
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
			if err := encodeNode(w, child, depth+1); err != nil {
				return err
			}
		}
	}
	return nil
}
