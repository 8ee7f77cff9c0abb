package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"hypatia/config"
	"hypatia/controllers"
	dbpkg "hypatia/db"
	"hypatia/models"
	"hypatia/recommend"
	"hypatia/router"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupAPI(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	db.DB().SetMaxOpenConns(1)
	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Paper{},
		&models.Concept{},
		&models.Note{},
		&models.Project{},
		&models.Journal{},
		&models.ReadingHistory{},
		&models.UserInterest{},
		&models.Recommendation{},
		&models.RefreshTask{},
	).Error)
	t.Cleanup(func() { db.Close() })

	var cfg config.Configuration
	cfg.Recommender.CacheTTLMinutes = 60
	cfg.Recommender.DefaultLimit = 10
	cfg.Recommender.MaxCandidates = 100
	cfg.Recommender.RecentWindowDays = 90

	controllers.SetRecommender(recommend.New(cfg))

	r := gin.New()
	r.Use(dbpkg.SetDBtoContext(db))
	router.Initialize(r, cfg)
	return r, db
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, userID int64, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if userID > 0 {
		req.Header.Set("X-User-ID", fmt.Sprintf("%d", userID))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func createAPIUser(t *testing.T, r *gin.Engine, name string) int64 {
	t.Helper()
	w := doJSON(t, r, http.MethodPost, "/api/users", 0, gin.H{
		"name":  name,
		"email": name + "@test.local",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		User models.User `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotZero(t, resp.User.ID)
	return resp.User.ID
}

func TestAPI_RequiresIdentityHeader(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/recommendations", 0, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_UnknownUserRejected(t *testing.T) {
	r, _ := setupAPI(t)

	w := doJSON(t, r, http.MethodGet, "/api/recommendations", 12345, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAPI_RecommendationsFlow(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "fluxo")

	published := time.Now().AddDate(0, 0, -5)
	paper := models.Paper{Title: "novidade quente", DOI: "10.5/n", IsPublic: true, PublicationDate: &published}
	require.NoError(t, db.Create(&paper).Error)

	w := doJSON(t, r, http.MethodGet, "/api/recommendations", userID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recommendations []models.Recommendation `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.NotEmpty(t, resp.Recommendations)

	// Marca a primeira como lida.
	recID := resp.Recommendations[0].ID
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/recommendations/%d/read", recID), userID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var stored models.Recommendation
	require.NoError(t, db.First(&stored, recID).Error)
	assert.True(t, stored.IsRead)
}

func TestAPI_RefreshReturnsAccepted(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "refresh")

	w := doJSON(t, r, http.MethodPost, "/api/recommendations/refresh", userID, nil)
	require.Equal(t, http.StatusAccepted, w.Code, w.Body.String())

	var task models.RefreshTask
	require.NoError(t, db.Where("user_id = ?", userID).First(&task).Error)
	assert.Equal(t, models.REFRESH_TASK_STATUS_PENDING, task.Status)
}

func TestAPI_HistoryInvalidatesAndLists(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "historiador")

	paper := models.Paper{Title: "pra ler", DOI: "10.5/h", IsPublic: true}
	require.NoError(t, db.Create(&paper).Error)

	w := doJSON(t, r, http.MethodPost, "/api/history", userID, gin.H{
		"paper_id": paper.ID,
		"rating":   4.5,
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/history", userID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		History []models.ReadingHistory `json:"history"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.History, 1)
	assert.Equal(t, paper.ID, resp.History[0].PaperID)

	// Histórico com paper inexistente é rejeitado.
	w = doJSON(t, r, http.MethodPost, "/api/history", userID, gin.H{"paper_id": 9999})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_SimilarPapers(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "similar")

	base := models.Paper{Title: "redes neurais profundas", DOI: "10.5/s1", IsPublic: true, Year: 2024}
	require.NoError(t, db.Create(&base).Error)
	close := models.Paper{Title: "redes neurais profundas II", DOI: "10.5/s2", IsPublic: true, Year: 2025}
	require.NoError(t, db.Create(&close).Error)

	w := doJSON(t, r, http.MethodGet, fmt.Sprintf("/api/papers/%d/similar", base.ID), userID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Similar []struct {
			Paper     models.Paper        `json:"paper"`
			Breakdown recommend.Breakdown `json:"breakdown"`
		} `json:"similar"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Similar, 1)
	assert.Equal(t, close.ID, resp.Similar[0].Paper.ID)
	assert.Greater(t, resp.Similar[0].Breakdown.Composite, 0.0)

	w = doJSON(t, r, http.MethodGet, "/api/papers/9999/similar", userID, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestAPI_BlockedUserForbidden(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "bloqueado")

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("status", models.USER_STATUS_BLOCKED).Error)

	w := doJSON(t, r, http.MethodGet, "/api/recommendations", userID, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestAPI_AdminGateOnJournals(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "comum")

	w := doJSON(t, r, http.MethodPost, "/api/journals", userID, gin.H{"name": "Nature"})
	assert.Equal(t, http.StatusForbidden, w.Code)

	require.NoError(t, db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("admin", true).Error)

	w = doJSON(t, r, http.MethodPost, "/api/journals", userID, gin.H{"name": "Nature"})
	assert.Equal(t, http.StatusOK, w.Code, w.Body.String())
}

func TestAPI_DeclareInterestFeedsSummary(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "declarante")

	concept := models.Concept{Name: "sistemas distribuídos"}
	require.NoError(t, db.Create(&concept).Error)

	w := doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/interests/%d", concept.ID), userID, gin.H{"weight": 2.5})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = doJSON(t, r, http.MethodGet, "/api/recommendations/interests", userID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Interests []recommend.ConceptWeight `json:"interests"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Interests, 1)
	assert.Equal(t, "sistemas distribuídos", resp.Interests[0].Name)
	assert.InDelta(t, 1.0, resp.Interests[0].Weight, 1e-9)

	// Upsert: segundo PUT não duplica a linha.
	w = doJSON(t, r, http.MethodPut, fmt.Sprintf("/api/interests/%d", concept.ID), userID, gin.H{"weight": 1.0})
	require.Equal(t, http.StatusOK, w.Code)

	var count int
	require.NoError(t, db.Model(&models.UserInterest{}).
		Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, 1, count)

	w = doJSON(t, r, http.MethodDelete, fmt.Sprintf("/api/interests/%d", concept.ID), userID, nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, db.Model(&models.UserInterest{}).
		Where("user_id = ?", userID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestAPI_RandomRecommendations(t *testing.T) {
	r, db := setupAPI(t)
	userID := createAPIUser(t, r, "aleatorio")

	for i := 0; i < 5; i++ {
		p := models.Paper{Title: fmt.Sprintf("paper %d", i), DOI: fmt.Sprintf("10.6/%d", i), IsPublic: true}
		require.NoError(t, db.Create(&p).Error)
	}

	w := doJSON(t, r, http.MethodGet, "/api/recommendations/random?limit=3", userID, nil)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Recommendations []recommend.SampledPaper `json:"recommendations"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Recommendations, 3)
}
