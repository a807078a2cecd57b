package tools

import (
	"fmt"
	"strings"
)

const diffContext = 3

// diffCellCap bounds the LCS table. Beyond it the diff degrades to a
// full replacement rather than allocating hundreds of megabytes for two
// pathological inputs.
const diffCellCap = 4 << 20

type editOp struct {
	kind byte // ' ', '-', '+'
	text string
}

// unifiedDiff renders the change between two file bodies in unified
// format with three lines of context. Returns "" when the bodies are
// equal.
func unifiedDiff(before, after, fromLabel, toLabel string) string {
	if before == after {
		return ""
	}
	a := splitLines(before)
	b := splitLines(after)
	ops := diffOps(a, b)

	var sb strings.Builder
	fmt.Fprintf(&sb, "--- %s\n+++ %s\n", fromLabel, toLabel)
	for _, h := range hunks(ops) {
		aStart, aCount, bStart, bCount := h.spans(ops)
		fmt.Fprintf(&sb, "@@ -%d,%d +%d,%d @@\n", aStart, aCount, bStart, bCount)
		for _, op := range ops[h.lo:h.hi] {
			sb.WriteByte(op.kind)
			sb.WriteString(op.text)
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

func splitLines(s string) []string {
	if s == "" {
		return nil
	}
	lines := strings.Split(s, "\n")
	if lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return lines
}

func diffOps(a, b []string) []editOp {
	n, m := len(a), len(b)
	if n*m > diffCellCap {
		ops := make([]editOp, 0, n+m)
		for _, line := range a {
			ops = append(ops, editOp{'-', line})
		}
		for _, line := range b {
			ops = append(ops, editOp{'+', line})
		}
		return ops
	}

	// Longest common subsequence table, then backtrack.
	lcs := make([][]int32, n+1)
	for i := range lcs {
		lcs[i] = make([]int32, m+1)
	}
	for i := n - 1; i >= 0; i-- {
		for j := m - 1; j >= 0; j-- {
			if a[i] == b[j] {
				lcs[i][j] = lcs[i+1][j+1] + 1
			} else if lcs[i+1][j] >= lcs[i][j+1] {
				lcs[i][j] = lcs[i+1][j]
			} else {
				lcs[i][j] = lcs[i][j+1]
			}
		}
	}

	ops := make([]editOp, 0, n+m)
	i, j := 0, 0
	for i < n && j < m {
		switch {
		case a[i] == b[j]:
			ops = append(ops, editOp{' ', a[i]})
			i++
			j++
		case lcs[i+1][j] >= lcs[i][j+1]:
			ops = append(ops, editOp{'-', a[i]})
			i++
		default:
			ops = append(ops, editOp{'+', b[j]})
			j++
		}
	}
	for ; i < n; i++ {
		ops = append(ops, editOp{'-', a[i]})
	}
	for ; j < m; j++ {
		ops = append(ops, editOp{'+', b[j]})
	}
	return ops
}

type hunk struct{ lo, hi int } // op index range, half open

// spans computes the unified-format line numbers for one hunk.
func (h hunk) spans(ops []editOp) (aStart, aCount, bStart, bCount int) {
	aLine, bLine := 1, 1
	for _, op := range ops[:h.lo] {
		if op.kind != '+' {
			aLine++
		}
		if op.kind != '-' {
			bLine++
		}
	}
	aStart, bStart = aLine, bLine
	for _, op := range ops[h.lo:h.hi] {
		if op.kind != '+' {
			aCount++
		}
		if op.kind != '-' {
			bCount++
		}
	}
	if aCount == 0 {
		aStart--
	}
	if bCount == 0 {
		bStart--
	}
	return aStart, aCount, bStart, bCount
}

// hunks groups changed ops, padded with context lines and merged when two
// groups would overlap.
func hunks(ops []editOp) []hunk {
	var out []hunk
	i := 0
	for i < len(ops) {
		if ops[i].kind == ' ' {
			i++
			continue
		}
		lo := i - diffContext
		if lo < 0 {
			lo = 0
		}
		hi := i
		for j := i; j < len(ops); j++ {
			if ops[j].kind != ' ' {
				hi = j + 1
				continue
			}
			// A run of more than 2*context equal lines ends the hunk.
			if j-hi >= 2*diffContext {
				break
			}
		}
		end := hi + diffContext
		if end > len(ops) {
			end = len(ops)
		}
		out = append(out, hunk{lo, end})
		i = end
	}
	return out
}
