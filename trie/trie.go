// Trie implements a byte trie data structure.
// It is fast as it uses arrays instead of maps. Used to complete
// declared and builtin names.
package trie // import "grol.io/calc/trie"

type Trie struct {
	// Children of this node
	children [256]*Trie
	// This node itself is a valid leaf (end of a word) in addition having children.
	valid bool
	leaf  bool // Note really needed outside of debugging but with struct alignment it doesn't cost anything extra.
}

// Save some memory by having a shared end marker for leaves.
// Only one having "leaf" set to true.
var endMarker = &Trie{valid: true, leaf: true}

func NewTrie() *Trie {
	return &Trie{}
}

func (t *Trie) Insert(word string) {
	l := len(word)
	if l == 0 {
		return
	}
	for i := range l - 1 {
		char := word[i]
		next := t.children[char]
		switch next {
		case nil:
			next = &Trie{}
			t.children[char] = next
		case endMarker:
			// This was a valid leaf before, replace the shared marker by a node of our own.
			next = &Trie{valid: true}
			t.children[char] = next
		}
		t = next
	}
	last := word[l-1]
	switch t.children[last] {
	case nil:
		t.children[last] = endMarker // Shared for all leaves, saves memory.
	case endMarker:
		// already there.
	default:
		t.children[last].valid = true
	}
}

func (t *Trie) Contains(word string) bool {
	return t.Prefix(word).IsValid()
}

func (t *Trie) Prefix(word string) *Trie {
	for i := range len(word) {
		char := word[i]
		t = t.children[char]
		if t == nil {
			return nil
		}
	}
	return t
}

func (t *Trie) IsLeaf() bool {
	return t != nil && t.leaf
}

func (t *Trie) IsValid() bool {
	return t != nil && t.valid
}

// PrefixAll returns all the words starting with prefix, in byte order, and
// the length of their longest common prefix.
func (t *Trie) PrefixAll(prefix string) (int, []string) {
	n := t.Prefix(prefix)
	if n == nil {
		return 0, nil
	}
	var words []string
	n.collect([]byte(prefix), &words)
	if len(words) == 0 {
		return 0, nil
	}
	l := len(words[0])
	for _, w := range words[1:] {
		l = min(l, len(w))
		for i := range l {
			if w[i] != words[0][i] {
				l = i
				break
			}
		}
	}
	return l, words
}

func (t *Trie) collect(buf []byte, words *[]string) {
	if t.valid {
		*words = append(*words, string(buf))
	}
	for c := range t.children {
		if child := t.children[c]; child != nil {
			child.collect(append(buf, byte(c)), words)
		}
	}
}
