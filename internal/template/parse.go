package template

import (
	"regexp"
	"strings"
)

// NodeKind identifies a node in a parsed template.
type NodeKind int

const (
	NodeText NodeKind = iota
	NodeInclude
	NodeCommand
	NodeIf
	NodeFor
)

func (k NodeKind) String() string {
	switch k {
	case NodeText:
		return "text"
	case NodeInclude:
		return "include"
	case NodeCommand:
		return "command"
	case NodeIf:
		return "if"
	case NodeFor:
		return "for"
	default:
		return "unknown"
	}
}

// Segment is a piece of a text line: either literal text or a placeholder.
type Segment struct {
	Literal  string
	Variable string
}

// Node is one element of a parsed template. Line is 1-based.
//
//	NodeText     Segments
//	NodeInclude  Name is the layout to include
//	NodeCommand  Command is the shell text
//	NodeIf       Name is the tested variable, Negate flips the test
//	NodeFor      Item is bound to each element of the Name sequence
type Node struct {
	Kind     NodeKind
	Line     int
	Segments []Segment
	Name     string
	Item     string
	Negate   bool
	Command  string
	Children []Node
}

var placeholderPattern = regexp.MustCompile(`\{\{ ([a-z_]+) \}\}`)

// Parse turns template lines into a node tree. Every structural problem is
// reported here, so a tree that parses renders without syntax errors.
func Parse(lines []string) ([]Node, error) {
	return parseLines(lines, 1)
}

// parseLines walks lines one top-level block at a time: inline lines before
// the block, the block itself, then the remainder.
func parseLines(lines []string, firstLine int) ([]Node, error) {
	var nodes []Node
	for len(lines) > 0 {
		block, found, idx, err := scan(lines)
		if err != nil {
			return nil, syntaxError(err, firstLine+idx, lines[idx])
		}
		if !found {
			inline, err := parseInline(lines, firstLine)
			if err != nil {
				return nil, err
			}
			return append(nodes, inline...), nil
		}

		inline, err := parseInline(lines[:block.Start], firstLine)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, inline...)

		node, err := parseBlock(block.Kind, lines[block.Start:block.End+1], firstLine+block.Start)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, node)

		lines = lines[block.End+1:]
		firstLine += block.End + 1
	}
	return nodes, nil
}

func parseBlock(kind BlockKind, lines []string, firstLine int) (Node, error) {
	header := lines[0]
	node := Node{Line: firstLine}

	switch kind {
	case BlockIf:
		match := ifPattern.FindStringSubmatch(header)
		if match == nil {
			return Node{}, syntaxError(ErrMalformedDirective, firstLine, header)
		}
		node.Kind = NodeIf
		node.Negate = match[1] == "!"
		node.Name = match[2]
	case BlockFor:
		match := forPattern.FindStringSubmatch(header)
		if match == nil {
			return Node{}, syntaxError(ErrMalformedDirective, firstLine, header)
		}
		node.Kind = NodeFor
		node.Item = match[1]
		node.Name = match[2]
	}

	children, err := parseLines(lines[1:len(lines)-1], firstLine+1)
	if err != nil {
		return Node{}, err
	}
	node.Children = children
	return node, nil
}

func parseInline(lines []string, firstLine int) ([]Node, error) {
	nodes := make([]Node, 0, len(lines))
	for i, line := range lines {
		lineNo := firstLine + i
		switch {
		case isDirective(line, includeDirective):
			match := includePattern.FindStringSubmatch(line)
			if match == nil {
				return nil, syntaxError(ErrMalformedDirective, lineNo, line)
			}
			nodes = append(nodes, Node{Kind: NodeInclude, Line: lineNo, Name: match[1]})
		case isDirective(line, cmdDirective):
			command := strings.TrimPrefix(line, cmdDirective)
			if strings.TrimSpace(command) == "" {
				return nil, syntaxError(ErrMalformedDirective, lineNo, line)
			}
			nodes = append(nodes, Node{Kind: NodeCommand, Line: lineNo, Command: command[1:]})
		default:
			nodes = append(nodes, Node{Kind: NodeText, Line: lineNo, Segments: splitSegments(line)})
		}
	}
	return nodes, nil
}

func splitSegments(line string) []Segment {
	matches := placeholderPattern.FindAllStringSubmatchIndex(line, -1)
	if len(matches) == 0 {
		return []Segment{{Literal: line}}
	}

	segments := make([]Segment, 0, len(matches)*2+1)
	pos := 0
	for _, m := range matches {
		if m[0] > pos {
			segments = append(segments, Segment{Literal: line[pos:m[0]]})
		}
		segments = append(segments, Segment{Variable: line[m[2]:m[3]]})
		pos = m[1]
	}
	if pos < len(line) {
		segments = append(segments, Segment{Literal: line[pos:]})
	}
	return segments
}
