package trie_test

import (
	"reflect"
	"testing"

	"grol.io/calc/trie"
)

func TestTrie_InsertAndContains(t *testing.T) {
	trie := trie.NewTrie()

	// Insert "ABC" and check containment
	trie.Insert("ABC")
	if !trie.Contains("ABC") {
		t.Error("Expected to find 'ABC', but it was not found.")
	}
	if trie.Contains("AB") {
		t.Error("Expected 'AB' to be not found, but it was found.")
	}
	if trie.Contains("ABCD") {
		t.Error("Expected 'ABCD' to be not found, but it was found.")
	}
	p := trie.Prefix("ABC")
	if !p.IsLeaf() {
		t.Errorf("Expected to find 'ABC' as the shared leaf node but it isn't: %+v", p)
	}
	trie.Insert("AB2")
	p2 := trie.Prefix("AB2")
	if p2 != p {
		t.Errorf("Expected 'ABC' and 'AB2' to share the same leaf node but they don't: %#v != %#v", p, p2)
	}
	// Insert "ABCD" and check both "ABC" and "ABCD"
	trie.Insert("ABCD")
	if !trie.Contains("ABC") {
		t.Error("Expected to find 'ABC', but it was not found after adding 'ABCD'.")
	}
	if !trie.Contains("ABCD") {
		t.Error("Expected to find 'ABCD', but it was not found.")
	}
	if trie.Prefix("ABC").IsLeaf() {
		t.Error("'ABC' has a child now, it should no longer be the shared leaf.")
	}
	// Shorter word inserted after a longer one.
	trie.Insert("AB")
	if !trie.Contains("AB") {
		t.Error("Expected to find 'AB' after inserting it.")
	}
	if trie.Contains("A") {
		t.Error("Expected 'A' to be not found.")
	}
	trie.Insert("")
	if trie.Contains("") {
		t.Error("Empty word should not be stored.")
	}
}

func TestTrie_PrefixAll(t *testing.T) {
	tr := trie.NewTrie()
	for _, w := range []string{"sin(", "sinh(", "sqrt(", "sec(", "x"} {
		tr.Insert(w)
	}
	l, words := tr.PrefixAll("si")
	expected := []string{"sin(", "sinh("}
	if !reflect.DeepEqual(words, expected) {
		t.Errorf("PrefixAll(si) got %v, expected %v", words, expected)
	}
	if l != 3 {
		t.Errorf("PrefixAll(si) common length %d, expected 3", l)
	}
	l, words = tr.PrefixAll("sq")
	if l != 5 || len(words) != 1 || words[0] != "sqrt(" {
		t.Errorf("PrefixAll(sq) got %d %v", l, words)
	}
	l, words = tr.PrefixAll("z")
	if l != 0 || words != nil {
		t.Errorf("PrefixAll(z) got %d %v", l, words)
	}
	l, words = tr.PrefixAll("s")
	if l != 1 || len(words) != 4 {
		t.Errorf("PrefixAll(s) got %d %v", l, words)
	}
}
