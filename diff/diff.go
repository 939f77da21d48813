package diff

import "unicode"

// Op classifies a segment of the word-level diff.
type Op int

const (
	OpUnchanged Op = iota
	OpAdded
	OpRemoved
)

// String returns the op name used in logs and rendered output.
func (op Op) String() string {
	switch op {
	case OpUnchanged:
		return "unchanged"
	case OpAdded:
		return "added"
	case OpRemoved:
		return "removed"
	default:
		return "unknown"
	}
}

// Segment is one merged run of the diff output. Adjacent segments never
// share the same Op.
type Segment struct {
	Op   Op     `json:"op"`
	Text string `json:"text"`
}

// Compute returns the word-level diff between a and b.
//
// On equal LCS predecessor values the backtrace prefers emitting Added
// over Removed. This tie-break is observable in the output ordering and
// is relied upon by rendered views; keep it stable.
func Compute(a, b string) []Segment {
	ta := splitRuns(a)
	tb := splitRuns(b)

	m, n := len(ta), len(tb)
	dp := make([][]int, m+1)
	for i := range dp {
		dp[i] = make([]int, n+1)
	}
	for i := 1; i <= m; i++ {
		for j := 1; j <= n; j++ {
			if ta[i-1] == tb[j-1] {
				dp[i][j] = dp[i-1][j-1] + 1
			} else if dp[i-1][j] >= dp[i][j-1] {
				dp[i][j] = dp[i-1][j]
			} else {
				dp[i][j] = dp[i][j-1]
			}
		}
	}

	// Backtrace emits segments right-to-left; reverse restores order.
	var rev []Segment
	for i, j := m, n; i > 0 || j > 0; {
		switch {
		case i > 0 && j > 0 && ta[i-1] == tb[j-1]:
			rev = append(rev, Segment{Op: OpUnchanged, Text: ta[i-1]})
			i--
			j--
		case j > 0 && (i == 0 || dp[i][j-1] >= dp[i-1][j]):
			rev = append(rev, Segment{Op: OpAdded, Text: tb[j-1]})
			j--
		default:
			rev = append(rev, Segment{Op: OpRemoved, Text: ta[i-1]})
			i--
		}
	}
	for l, r := 0, len(rev)-1; l < r; l, r = l+1, r-1 {
		rev[l], rev[r] = rev[r], rev[l]
	}

	return mergeAdjacent(rev)
}

// splitRuns splits text into alternating whitespace and non-whitespace
// runs. Zero-length runs are discarded; concatenating the runs
// reproduces text exactly.
func splitRuns(text string) []string {
	var runs []string
	start := 0
	inSpace := false
	for i, r := range text {
		space := unicode.IsSpace(r)
		if i == 0 {
			inSpace = space
			continue
		}
		if space != inSpace {
			runs = append(runs, text[start:i])
			start = i
			inSpace = space
		}
	}
	if start < len(text) {
		runs = append(runs, text[start:])
	}
	return runs
}

// mergeAdjacent collapses runs of same-op segments into one segment each,
// preserving order.
func mergeAdjacent(segments []Segment) []Segment {
	merged := make([]Segment, 0, len(segments))
	for _, s := range segments {
		if last := len(merged) - 1; last >= 0 && merged[last].Op == s.Op {
			merged[last].Text += s.Text
			continue
		}
		merged = append(merged, s)
	}
	return merged
}
