package mdpreview

import "fmt"

// Tokenize splits src into tokens using rules. When rules is nil the block
// rule set is used.
//
// At every position each rule is tried against the start of the remaining
// input; the longest match wins and ties go to the rule registered first.
func Tokenize(src string, rules *RuleTable) []Token {
	if rules == nil {
		rules = BlockRules()
	}
	var tokens []Token
	for len(src) > 0 {
		tok, n := rules.Scan(src)
		tokens = append(tokens, tok)
		src = src[n:]
	}
	return tokens
}

// Scan matches the table against the front of src and returns the winning
// token together with the number of bytes it consumed.
func (t *RuleTable) Scan(src string) (Token, int) {
	best := -1
	var bestMatch []string
	for i := range t.rules {
		m := t.rules[i].Pattern.FindStringSubmatch(src)
		if m == nil || len(m[0]) == 0 {
			continue
		}
		if bestMatch == nil || len(m[0]) > len(bestMatch[0]) {
			best = i
			bestMatch = m
		}
	}
	if best < 0 {
		// NewRuleTable guarantees a catch-all rule, so this is unreachable for
		// tables built through it.
		panic(fmt.Sprintf("mdpreview: no rule matches %.16q", src))
	}
	tok := t.rules[best].Build(bestMatch)
	tok.Raw = bestMatch[0]
	return tok, len(bestMatch[0])
}

// Reconstruct concatenates the raw source text of tokens.
func Reconstruct(tokens []Token) string {
	n := 0
	for i := range tokens {
		n += len(tokens[i].Raw)
	}
	buf := make([]byte, 0, n)
	for i := range tokens {
		buf = append(buf, tokens[i].Raw...)
	}
	return string(buf)
}
