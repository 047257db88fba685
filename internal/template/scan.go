package template

import (
	"regexp"
	"strings"
)

// BlockKind identifies the directive that opens a block.
type BlockKind string

const (
	BlockIf  BlockKind = "if"
	BlockFor BlockKind = "for"
)

// Block spans the lines [Start, End] of a top-level @if or @for, both
// indexes pointing into the scanned slice. Start is the directive line and End
// its matching @end.
type Block struct {
	Kind  BlockKind
	Start int
	End   int
}

const (
	endDirective     = "@end"
	ifDirective      = "@if"
	forDirective     = "@for"
	includeDirective = "@include"
	cmdDirective     = "@cmd"
)

var (
	ifPattern      = regexp.MustCompile(`^@if (!?)([a-z_]+)$`)
	forPattern     = regexp.MustCompile(`^@for ([a-z_]+) in ([a-z_]+)$`)
	includePattern = regexp.MustCompile(`^@include (\S+)$`)
)

// Scan locates the first top-level block in lines. Blocks nested inside it,
// of either kind, are skipped by depth counting. found is false when lines
// hold no block directive at all.
func Scan(lines []string) (Block, bool, error) {
	block, found, idx, err := scan(lines)
	if err != nil {
		return Block{}, false, syntaxError(err, idx+1, lines[idx])
	}
	return block, found, nil
}

// scan returns the offending index alongside a bare sentinel error so callers
// can report absolute line numbers.
func scan(lines []string) (Block, bool, int, error) {
	var (
		block Block
		depth int
	)
	for i, line := range lines {
		kind, opens := openerKind(line)
		switch {
		case opens:
			if depth == 0 {
				block = Block{Kind: kind, Start: i}
			}
			depth++
		case line == endDirective:
			if depth == 0 {
				return Block{}, false, i, ErrUnmatchedEnd
			}
			depth--
			if depth == 0 {
				block.End = i
				return block, true, 0, nil
			}
		}
	}
	if depth > 0 {
		return Block{}, false, block.Start, ErrUnterminatedBlock
	}
	return Block{}, false, 0, nil
}

func openerKind(line string) (BlockKind, bool) {
	switch {
	case isDirective(line, ifDirective):
		return BlockIf, true
	case isDirective(line, forDirective):
		return BlockFor, true
	default:
		return "", false
	}
}

func isDirective(line, name string) bool {
	return line == name || strings.HasPrefix(line, name+" ")
}
