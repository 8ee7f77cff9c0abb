package recommend

import (
	"testing"

	"hypatia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildProfile_NoSignalReturnsEmpty(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "semsinal")

	profile, err := BuildProfile(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, profile)
}

func TestBuildProfile_NormalizedByMax(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "leitor")

	ml := createConcept(t, db, "machine learning")
	nlp := createConcept(t, db, "nlp")

	a := createPaper(t, db, "paper a", 30, ml)
	b := createPaper(t, db, "paper b", 30, ml, nlp)

	addHistory(t, db, user.ID, a.ID, nil)
	addHistory(t, db, user.ID, b.ID, nil)

	profile, err := BuildProfile(db, user.ID)
	require.NoError(t, err)

	// ml acumulou 2.0, nlp 1.0; normalizado pelo máximo.
	assert.InDelta(t, 1.0, profile[ml.ID], 1e-9)
	assert.InDelta(t, 0.5, profile[nlp.ID], 1e-9)

	max := 0.0
	for _, w := range profile {
		assert.GreaterOrEqual(t, w, 0.0)
		assert.LessOrEqual(t, w, 1.0)
		if w > max {
			max = w
		}
	}
	assert.InDelta(t, 1.0, max, 1e-9)
}

func TestBuildProfile_RatingWeighsPaper(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "avaliador")

	ml := createConcept(t, db, "machine learning")
	nlp := createConcept(t, db, "nlp")

	a := createPaper(t, db, "paper a", 30, ml)
	b := createPaper(t, db, "paper b", 30, nlp)

	addHistory(t, db, user.ID, a.ID, ratingOf(5.0))
	addHistory(t, db, user.ID, b.ID, ratingOf(1.0))

	profile, err := BuildProfile(db, user.ID)
	require.NoError(t, err)

	assert.InDelta(t, 1.0, profile[ml.ID], 1e-9)
	assert.InDelta(t, 0.2, profile[nlp.ID], 1e-9)
}

func TestBuildProfile_DuplicateReadsCountOnce(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "releitor")

	ml := createConcept(t, db, "machine learning")
	a := createPaper(t, db, "paper a", 30, ml)

	addHistory(t, db, user.ID, a.ID, nil)
	addHistory(t, db, user.ID, a.ID, nil)
	addHistory(t, db, user.ID, a.ID, ratingOf(4.0))

	profile, err := BuildProfile(db, user.ID)
	require.NoError(t, err)

	// Paper distinto contribui uma vez (com o maior peso visto).
	assert.Len(t, profile, 1)
	assert.InDelta(t, 1.0, profile[ml.ID], 1e-9)
}

func TestBuildProfile_NotesAndExplicitInterests(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "anotador")

	ml := createConcept(t, db, "machine learning")
	db2 := createConcept(t, db, "databases")

	note := models.Note{UserID: user.ID, Content: "anotações", Concepts: []models.Concept{ml}}
	require.NoError(t, db.Create(&note).Error)

	require.NoError(t, db.Create(&models.UserInterest{
		UserID:    user.ID,
		ConceptID: db2.ID,
		Weight:    2.0,
	}).Error)

	profile, err := BuildProfile(db, user.ID)
	require.NoError(t, err)

	// nota = 1.0, interesse explícito = 2.0 -> databases vira o máximo.
	assert.InDelta(t, 1.0, profile[db2.ID], 1e-9)
	assert.InDelta(t, 0.5, profile[ml.ID], 1e-9)
}

func TestInterestSummary_SortedByWeightDesc(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "resumido")

	ml := createConcept(t, db, "machine learning")
	nlp := createConcept(t, db, "nlp")

	a := createPaper(t, db, "paper a", 30, ml)
	b := createPaper(t, db, "paper b", 30, ml, nlp)
	addHistory(t, db, user.ID, a.ID, nil)
	addHistory(t, db, user.ID, b.ID, nil)

	summary, err := InterestSummary(db, user.ID)
	require.NoError(t, err)
	require.Len(t, summary, 2)

	assert.Equal(t, "machine learning", summary[0].Name)
	assert.InDelta(t, 1.0, summary[0].Weight, 1e-9)
	assert.Equal(t, "nlp", summary[1].Name)
	for i := 1; i < len(summary); i++ {
		assert.GreaterOrEqual(t, summary[i-1].Weight, summary[i].Weight)
	}
}

func TestInterestSummary_EmptyProfile(t *testing.T) {
	db := openTestDB(t)
	user := createUser(t, db, "vazio")

	summary, err := InterestSummary(db, user.ID)
	require.NoError(t, err)
	assert.Empty(t, summary)
}
