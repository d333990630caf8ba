package domain

// Symbol is a single input character.
type Symbol = byte

const (
	// SymbolStay is the space character. Every state loops to itself on it.
	SymbolStay Symbol = ' '

	// SymbolEpsilon marks an epsilon transition in a machine description.
	// It is never matched as an input symbol.
	SymbolEpsilon Symbol = '`'
)

// IsValidSymbol reports whether ch belongs to the machine alphabet:
// the printable ASCII range '!'..'~' plus the space character.
func IsValidSymbol(ch byte) bool {
	return ch >= ' ' && ch <= '~'
}
