package recommend

import (
	"testing"

	"hypatia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func paperWithConcepts(title, authors, venue string, year int, conceptIDs ...int64) *models.Paper {
	concepts := make([]models.Concept, 0, len(conceptIDs))
	for _, id := range conceptIDs {
		concepts = append(concepts, models.Concept{ID: id})
	}
	return &models.Paper{
		Title:    title,
		Authors:  authors,
		Venue:    venue,
		Year:     year,
		Concepts: concepts,
	}
}

func TestSimilarity_SelfIsOne(t *testing.T) {
	p := paperWithConcepts("Attention Is All You Need", "Vaswani, Shazeer", "NeurIPS", 2017, 1, 2, 3)

	br := Similarity(p, p, DefaultWeights())

	assert.InDelta(t, 1.0, br.Concept, 1e-9)
	assert.InDelta(t, 1.0, br.Title, 1e-9)
	assert.InDelta(t, 1.0, br.Author, 1e-9)
	assert.InDelta(t, 1.0, br.Venue, 1e-9)
	assert.InDelta(t, 1.0, br.Year, 1e-9)
	assert.InDelta(t, 1.0, br.Composite, 1e-9)
}

func TestSimilarity_Symmetric(t *testing.T) {
	a := paperWithConcepts("Deep Residual Learning", "He, Zhang", "CVPR", 2016, 1, 2)
	b := paperWithConcepts("Densely Connected Networks", "Huang, Liu", "CVPR", 2017, 2, 3)

	ab := Similarity(a, b, DefaultWeights())
	ba := Similarity(b, a, DefaultWeights())

	assert.Equal(t, ab, ba)
}

func TestSimilarity_DisjointConceptsSameMetadata(t *testing.T) {
	// Metadados idênticos mas conceitos disjuntos: o composto fica em
	// 1.0 - peso do componente de conceitos.
	a := paperWithConcepts("Graph Neural Networks", "Kipf, Welling", "ICLR", 2017, 1, 2)
	b := paperWithConcepts("Graph Neural Networks", "Kipf, Welling", "ICLR", 2017, 3, 4)

	w := DefaultWeights()
	br := Similarity(a, b, w)

	assert.Zero(t, br.Concept)
	assert.InDelta(t, 1.0-w.Concept, br.Composite, 1e-9)
}

func TestSimilarity_UnknownYearScoresZero(t *testing.T) {
	a := paperWithConcepts("A", "X", "V", 0, 1)
	b := paperWithConcepts("B", "Y", "V", 2020, 1)

	br := Similarity(a, b, DefaultWeights())
	assert.Zero(t, br.Year)
}

func TestSimilarity_YearDecayCapsAtTenYears(t *testing.T) {
	a := paperWithConcepts("A", "", "", 2000, 1)
	b := paperWithConcepts("B", "", "", 2020, 1)
	br := Similarity(a, b, DefaultWeights())
	assert.Zero(t, br.Year)

	c := paperWithConcepts("C", "", "", 2018, 1)
	br = Similarity(b, c, DefaultWeights())
	assert.InDelta(t, 0.8, br.Year, 1e-9)
}

func TestSimilarity_VenueExactMatchCaseInsensitive(t *testing.T) {
	a := paperWithConcepts("A", "", "NeurIPS", 2020, 1)
	b := paperWithConcepts("B", "", "neurips", 2020, 1)

	br := Similarity(a, b, DefaultWeights())
	assert.InDelta(t, 1.0, br.Venue, 1e-9)
}

func TestSimilarity_EmptyVenueScoresZero(t *testing.T) {
	a := paperWithConcepts("A", "", "", 2020, 1)
	b := paperWithConcepts("B", "", "NeurIPS", 2020, 1)

	br := Similarity(a, b, DefaultWeights())
	assert.Zero(t, br.Venue)
}

func TestSimilarity_AuthorOverlap(t *testing.T) {
	a := paperWithConcepts("A", "Alice Silva, Bob Costa", "", 2020, 1)
	b := paperWithConcepts("B", "alice silva, Carol Dias", "", 2020, 1)

	br := Similarity(a, b, DefaultWeights())
	// interseção 1, união 3
	assert.InDelta(t, 1.0/3.0, br.Author, 1e-9)
}

func TestWeights_Validate(t *testing.T) {
	require.NoError(t, DefaultWeights().Validate())

	bad := Weights{Concept: 0.5, Title: 0.5, Author: 0.5}
	assert.Error(t, bad.Validate())

	negative := Weights{Concept: -0.1, Title: 0.6, Author: 0.2, Venue: 0.2, Year: 0.1}
	assert.Error(t, negative.Validate())
}

func TestJaccard_EmptySetScoresZero(t *testing.T) {
	assert.Zero(t, jaccard(map[int64]bool{}, map[int64]bool{1: true}))
	assert.Zero(t, jaccard(map[int64]bool{1: true}, map[int64]bool{}))
}

func TestTextSimilarity_BothEmptyScoresZero(t *testing.T) {
	assert.Zero(t, textSimilarity("", ""))
}
