package tools

import "strings"

// NormalizeText prepara strings para comparação: trim + lower.
func NormalizeText(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Levenshtein calcula a distância de edição entre duas strings (nível de
// caractere/rune). Implementação com duas linhas da matriz para não alocar
// a matriz inteira.
func Levenshtein(a, b string) int {
	ra := []rune(a)
	rb := []rune(b)
	if len(ra) == 0 {
		return len(rb)
	}
	if len(rb) == 0 {
		return len(ra)
	}

	prev := make([]int, len(rb)+1)
	curr := make([]int, len(rb)+1)
	for j := 0; j <= len(rb); j++ {
		prev[j] = j
	}

	for i := 1; i <= len(ra); i++ {
		curr[0] = i
		for j := 1; j <= len(rb); j++ {
			cost := 1
			if ra[i-1] == rb[j-1] {
				cost = 0
			}
			curr[j] = min3(
				prev[j]+1,      // deleção
				curr[j-1]+1,    // inserção
				prev[j-1]+cost, // substituição
			)
		}
		prev, curr = curr, prev
	}

	return prev[len(rb)]
}

func min3(a, b, c int) int {
	m := a
	if b < m {
		m = b
	}
	if c < m {
		m = c
	}
	return m
}
