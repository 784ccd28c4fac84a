package repl

import (
	"fmt"
	"io"
	"strings"

	"fortio.org/terminal"
	"grol.io/calc/trie"
)

type AutoComplete struct {
	Trie *trie.Trie
}

func NewCompletion() *AutoComplete {
	return &AutoComplete{trie.NewTrie()}
}

func (a *AutoComplete) AutoComplete() terminal.AutoCompleteCallback {
	return func(t *terminal.Terminal, line string, pos int, key rune) (newLine string, newPos int, ok bool) {
		if key != '\t' {
			return // only tab for now
		}
		return a.Complete(t.Out, line, pos)
	}
}

// Complete extends the name ending at pos to the longest prefix common to
// the matching names. When there is more than one they're listed on out.
func (a *AutoComplete) Complete(out io.Writer, line string, pos int) (newLine string, newPos int, ok bool) {
	start := pos
	for start > 0 && isLetter(line[start-1]) {
		start--
	}
	l, names := a.Trie.PrefixAll(line[start:pos])
	if len(names) == 0 {
		return
	}
	if len(names) > 1 {
		fmt.Fprint(out, "One of: ")
		for _, n := range names {
			if strings.HasSuffix(n, "(") {
				fmt.Fprint(out, n, ") ")
			} else {
				fmt.Fprint(out, n, " ")
			}
		}
		fmt.Fprintln(out)
	}
	return line[:start] + names[0][:l] + line[pos:], start + l, true
}

func isLetter(ch byte) bool {
	return ('a' <= ch && ch <= 'z') || ('A' <= ch && ch <= 'Z')
}
