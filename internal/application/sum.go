package application

import "math/big"

// SumNumericTokens adds every token made only of ASCII digits and ignores the
// rest. The result is exact for any number of digits.
func SumNumericTokens(tokens []string) *big.Int {
	total := new(big.Int)
	n := new(big.Int)

	for _, tok := range tokens {
		if !isDigits(tok) {
			continue
		}
		if _, ok := n.SetString(tok, 10); ok {
			total.Add(total, n)
		}
	}

	return total
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
