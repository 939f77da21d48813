package diff

// SegmentDelta pairs a diff segment with its token cost under one model.
type SegmentDelta struct {
	Segment
	// Tokens is the token count of the segment text on its own. For
	// Removed segments it is the cost leaving text A; for Added segments
	// the cost entering text B.
	Tokens int `json:"tokens"`
}

// Deltas annotates each segment with a token count produced by count,
// typically a closure over an engine and a model name.
func Deltas(segments []Segment, count func(text string) int) []SegmentDelta {
	deltas := make([]SegmentDelta, 0, len(segments))
	for _, s := range segments {
		deltas = append(deltas, SegmentDelta{Segment: s, Tokens: count(s.Text)})
	}
	return deltas
}

// Net sums the signed token deltas: Added counts positive, Removed
// negative, Unchanged zero. It approximates the count(B)-count(A)
// difference; tokenization across segment boundaries can make the true
// difference deviate slightly.
func Net(deltas []SegmentDelta) int {
	net := 0
	for _, d := range deltas {
		switch d.Op {
		case OpAdded:
			net += d.Tokens
		case OpRemoved:
			net -= d.Tokens
		}
	}
	return net
}
