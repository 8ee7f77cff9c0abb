package recommend

import (
	"testing"

	"hypatia/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomSample_EligibilityRules(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "sorteado")

	eligible := models.Paper{Title: "com doi", DOI: "10.1/x", IsPublic: true}
	require.NoError(t, db.Create(&eligible).Error)

	private := models.Paper{Title: "privado", DOI: "10.1/y", IsPublic: false}
	require.NoError(t, db.Create(&private).Error)

	noExternalID := models.Paper{Title: "sem id externo", IsPublic: true}
	require.NoError(t, db.Create(&noExternalID).Error)

	arxivOnly := models.Paper{Title: "so arxiv", ArxivID: "2401.00001", IsPublic: true}
	require.NoError(t, db.Create(&arxivOnly).Error)

	items, err := svc.RandomSample(db, user.ID, "", 10, false)
	require.NoError(t, err)

	got := map[int64]bool{}
	for _, it := range items {
		got[it.PaperID] = true
		assert.GreaterOrEqual(t, it.Score, 0.5)
		assert.LessOrEqual(t, it.Score, 0.9)
		assert.NotEmpty(t, it.Reason)
	}

	assert.True(t, got[eligible.ID])
	assert.True(t, got[arxivOnly.ID])
	assert.False(t, got[private.ID], "paper privado entrou no sorteio")
	assert.False(t, got[noExternalID.ID], "paper sem DOI/arXiv entrou no sorteio")
}

func TestRandomSample_CategoryFiltersByJournal(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "categoria")

	bio := models.Journal{Name: "Cell", Category: "Biologia"}
	require.NoError(t, db.Create(&bio).Error)

	inCategory := models.Paper{Title: "paper de biologia", DOI: "10.1/a", IsPublic: true, JournalID: bio.ID}
	require.NoError(t, db.Create(&inCategory).Error)

	outOfCategory := models.Paper{Title: "paper de fisica", DOI: "10.1/b", IsPublic: true}
	require.NoError(t, db.Create(&outOfCategory).Error)

	items, err := svc.RandomSample(db, user.ID, "biologia", 10, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, inCategory.ID, items[0].PaperID)
}

func TestRandomSample_CategoryFallsBackToText(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "texto")

	// Nenhum periódico da categoria: cai pra busca em título/resumo.
	match := models.Paper{Title: "Avanços em robótica móvel", DOI: "10.1/c", IsPublic: true}
	require.NoError(t, db.Create(&match).Error)

	other := models.Paper{Title: "Teoria dos jogos", DOI: "10.1/d", IsPublic: true}
	require.NoError(t, db.Create(&other).Error)

	items, err := svc.RandomSample(db, user.ID, "robótica", 10, false)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, match.ID, items[0].PaperID)
}

func TestRandomSample_NoEligiblePapers(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "semnada")

	items, err := svc.RandomSample(db, user.ID, "", 10, false)
	require.NoError(t, err)
	assert.Empty(t, items)
}

func TestRandomSample_LimitWithoutReplacement(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "semreposicao")

	for i := 0; i < 10; i++ {
		p := models.Paper{Title: "paper", DOI: "10.2/" + string(rune('a'+i)), IsPublic: true}
		require.NoError(t, db.Create(&p).Error)
	}

	items, err := svc.RandomSample(db, user.ID, "", 4, false)
	require.NoError(t, err)
	assert.Len(t, items, 4)

	seen := map[int64]bool{}
	for _, it := range items {
		assert.False(t, seen[it.PaperID], "paper repetido no mesmo sorteio")
		seen[it.PaperID] = true
	}
}

func TestRandomSample_ForceRefreshEnqueuesIngest(t *testing.T) {
	db := openTestDB(t)
	svc := newTestService()
	user := createUser(t, db, "ingestor")

	p := models.Paper{Title: "qualquer", DOI: "10.3/z", IsPublic: true}
	require.NoError(t, db.Create(&p).Error)

	_, err := svc.RandomSample(db, user.ID, "", 5, true)
	require.NoError(t, err)

	var task models.RefreshTask
	require.NoError(t, db.Where("user_id = ?", user.ID).First(&task).Error)
	assert.Equal(t, models.REFRESH_TASK_KIND_INGEST, task.Kind)
	assert.Equal(t, models.REFRESH_TASK_STATUS_PENDING, task.Status)
}
