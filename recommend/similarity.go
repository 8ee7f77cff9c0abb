package recommend

import (
	"fmt"
	"math"

	"hypatia/models"
	"hypatia/tools"
)

// Weights define os pesos da similaridade composta entre dois papers.
// Precisam somar 1.0.
type Weights struct {
	Concept float64 `json:"concept"`
	Title   float64 `json:"title"`
	Author  float64 `json:"author"`
	Venue   float64 `json:"venue"`
	Year    float64 `json:"year"`
}

// DefaultWeights devolve os pesos padrão do motor.
func DefaultWeights() Weights {
	return Weights{
		Concept: 0.5,
		Title:   0.2,
		Author:  0.15,
		Venue:   0.1,
		Year:    0.05,
	}
}

// Validate garante pesos não-negativos somando 1.0 (tolerância 1e-9).
func (w Weights) Validate() error {
	if w.Concept < 0 || w.Title < 0 || w.Author < 0 || w.Venue < 0 || w.Year < 0 {
		return fmt.Errorf("pesos de similaridade não podem ser negativos")
	}
	sum := w.Concept + w.Title + w.Author + w.Venue + w.Year
	if math.Abs(sum-1.0) > 1e-9 {
		return fmt.Errorf("pesos de similaridade devem somar 1.0 (soma atual: %v)", sum)
	}
	return nil
}

// Breakdown carrega os cinco sub-scores normalizados em [0,1] e o
// composto ponderado.
type Breakdown struct {
	Concept   float64 `json:"concept"`
	Title     float64 `json:"title"`
	Author    float64 `json:"author"`
	Venue     float64 `json:"venue"`
	Year      float64 `json:"year"`
	Composite float64 `json:"composite"`
}

// Similarity calcula a similaridade composta entre dois papers.
// É pura, determinística e simétrica em relação à troca de a/b.
// Conceitos precisam vir pré-carregados (Preload("Concepts")); o motor
// não extrai conceitos, isso é responsabilidade do tagger.
func Similarity(a, b *models.Paper, w Weights) Breakdown {
	br := Breakdown{
		Concept: jaccard(a.ConceptIDSet(), b.ConceptIDSet()),
		Title:   textSimilarity(a.Title, b.Title),
		Author:  authorSimilarity(a, b),
		Venue:   venueSimilarity(a.Venue, b.Venue),
		Year:    yearSimilarity(a.Year, b.Year),
	}
	br.Composite = w.Concept*br.Concept +
		w.Title*br.Title +
		w.Author*br.Author +
		w.Venue*br.Venue +
		w.Year*br.Year
	return br
}

// jaccard = |interseção| / |união|; 0 se qualquer conjunto for vazio.
func jaccard(a, b map[int64]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	inter := 0
	for id := range a {
		if b[id] {
			inter++
		}
	}
	union := len(a) + len(b) - inter
	if union == 0 {
		return 0
	}
	return float64(inter) / float64(union)
}

// textSimilarity = 1 - distância de edição normalizada (lowercase).
func textSimilarity(a, b string) float64 {
	na := tools.NormalizeText(a)
	nb := tools.NormalizeText(b)
	if na == "" && nb == "" {
		return 0
	}
	longer := len([]rune(na))
	if l := len([]rune(nb)); l > longer {
		longer = l
	}
	d := tools.Levenshtein(na, nb)
	return 1.0 - float64(d)/float64(longer)
}

func authorSimilarity(a, b *models.Paper) float64 {
	setA := authorSet(a.AuthorList())
	setB := authorSet(b.AuthorList())
	if len(setA) == 0 || len(setB) == 0 {
		return 0
	}
	inter := 0
	for name := range setA {
		if setB[name] {
			inter++
		}
	}
	union := len(setA) + len(setB) - inter
	return float64(inter) / float64(union)
}

func authorSet(names []string) map[string]bool {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		n = tools.NormalizeText(n)
		if n != "" {
			set[n] = true
		}
	}
	return set
}

// venueSimilarity: 1.0 para match exato case-insensitive; senão a mesma
// medida de edição dos títulos; 0 se qualquer venue for vazio.
func venueSimilarity(a, b string) float64 {
	na := tools.NormalizeText(a)
	nb := tools.NormalizeText(b)
	if na == "" || nb == "" {
		return 0
	}
	if na == nb {
		return 1.0
	}
	return textSimilarity(a, b)
}

// yearSimilarity = max(0, 1 - |Δano|/10); 0 quando algum ano é desconhecido.
func yearSimilarity(a, b int) float64 {
	if a == 0 || b == 0 {
		return 0
	}
	diff := math.Abs(float64(a - b))
	s := 1.0 - diff/10.0
	if s < 0 {
		return 0
	}
	return s
}
