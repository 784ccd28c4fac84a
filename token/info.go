package token

import "fortio.org/sets"

// CalcInfo enables introspection of known keywords and operators.
type CalcInfo struct {
	Keywords sets.Set[string]
	Symbols  sets.Set[string]
}

var info = CalcInfo{
	Keywords: sets.New[string](),
	Symbols:  sets.New[string](),
}

func init() {
	for k := range keywords {
		info.Keywords.Add(k)
	}
	for r := range runeIdents {
		info.Keywords.Add(string(r))
	}
	for t := PLUS; t < LAST; t++ {
		if t == DEG || t == RAD {
			continue
		}
		info.Symbols.Add(t.Literal())
	}
	for r := range runeTokens {
		info.Symbols.Add(string(r))
	}
}

func Info() CalcInfo {
	return info
}
