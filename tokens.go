package kousei

// Surfaces returns the surface of every token.
func (tokens Tokens) Surfaces() (parts []string) {
	for _, token := range tokens {
		parts = append(parts, token.Surface)
	}
	return
}

// RuneLen returns the number of code points of the token surface.
func (token Token) RuneLen() int {
	if token.End > token.Start {
		return token.End - token.Start
	}
	return len([]rune(token.Surface))
}
