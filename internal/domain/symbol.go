package domain

import "strings"

type Symbol string

// NormalizeSymbol trims surrounding whitespace and upper-cases s.
func NormalizeSymbol(s string) Symbol {
	return Symbol(strings.ToUpper(strings.TrimSpace(s)))
}

func (s Symbol) String() string { return string(s) }
