package tokenizer

import "sort"

// vocabTrie is a byte-keyed prefix tree stored as a flat node arena.
// Nodes are referenced by index into a single slice; each node keeps a
// sorted edge list, so lookup is a binary search per byte instead of a
// 256-pointer fan-out per node. The structure is immutable once built.
type vocabTrie struct {
	nodes []trieNode
}

type trieNode struct {
	edges    []trieEdge
	terminal bool
}

// trieEdge maps one byte value to the index of the child node.
type trieEdge struct {
	label byte
	next  int32
}

// newVocabTrie builds a trie from the vocabulary entries. Entry order is
// irrelevant to the resulting structure.
func newVocabTrie(vocab []string) *vocabTrie {
	t := &vocabTrie{nodes: make([]trieNode, 1, 1+len(vocab)*2)}
	for _, entry := range vocab {
		t.insert([]byte(entry))
	}
	return t
}

func (t *vocabTrie) insert(key []byte) {
	cur := int32(0)
	for _, b := range key {
		next, ok := t.child(cur, b)
		if !ok {
			t.nodes = append(t.nodes, trieNode{})
			next = int32(len(t.nodes) - 1)
			n := &t.nodes[cur]
			i := sort.Search(len(n.edges), func(i int) bool { return n.edges[i].label >= b })
			n.edges = append(n.edges, trieEdge{})
			copy(n.edges[i+1:], n.edges[i:])
			n.edges[i] = trieEdge{label: b, next: next}
		}
		cur = next
	}
	t.nodes[cur].terminal = true
}

func (t *vocabTrie) child(node int32, b byte) (int32, bool) {
	edges := t.nodes[node].edges
	i := sort.Search(len(edges), func(i int) bool { return edges[i].label >= b })
	if i < len(edges) && edges[i].label == b {
		return edges[i].next, true
	}
	return 0, false
}

// longestMatch walks from the root consuming bytes starting at pos and
// returns the length of the longest vocabulary entry found there. When no
// terminal node is reached it returns 1 (a single raw byte) so the scan
// always makes forward progress. Matching is byte-greedy: a match may end
// in the interior of a multi-byte UTF-8 sequence.
func (t *vocabTrie) longestMatch(data []byte, pos int) int {
	cur := int32(0)
	best := 0
	for i := pos; i < len(data); i++ {
		next, ok := t.child(cur, data[i])
		if !ok {
			break
		}
		cur = next
		if t.nodes[cur].terminal {
			best = i - pos + 1
		}
	}
	if best == 0 {
		return 1
	}
	return best
}

// size returns the number of nodes in the arena, including the root.
func (t *vocabTrie) size() int {
	return len(t.nodes)
}
