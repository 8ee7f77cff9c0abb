package recommend

import (
	"testing"
	"time"

	"hypatia/config"
	"hypatia/models"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/stretchr/testify/require"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	require.NoError(t, err)
	// sqlite em memória vive na conexão; pool precisa ficar em 1.
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
	return db
}

func testConfig() config.Configuration {
	var cfg config.Configuration
	cfg.Recommender.CacheTTLMinutes = 60
	cfg.Recommender.CacheMaxUses = 10
	cfg.Recommender.DefaultLimit = 10
	cfg.Recommender.MaxCandidates = 100
	cfg.Recommender.RecentWindowDays = 90
	return cfg
}

func newTestService() *Service {
	return New(testConfig())
}

func freezeClock(t *testing.T, at time.Time) {
	t.Helper()
	orig := nowFunc
	nowFunc = func() time.Time { return at }
	t.Cleanup(func() { nowFunc = orig })
}

func createUser(t *testing.T, db *gorm.DB, name string) models.User {
	t.Helper()
	user := models.User{Name: name, Email: name + "@test.local"}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func createConcept(t *testing.T, db *gorm.DB, name string) models.Concept {
	t.Helper()
	concept := models.Concept{Name: name}
	require.NoError(t, db.Create(&concept).Error)
	return concept
}

func createPaper(t *testing.T, db *gorm.DB, title string, publishedDaysAgo int, concepts ...models.Concept) models.Paper {
	t.Helper()
	published := nowFunc().AddDate(0, 0, -publishedDaysAgo)
	paper := models.Paper{
		Title:           title,
		DOI:             "10.0000/" + title,
		IsPublic:        true,
		Year:            published.Year(),
		PublicationDate: &published,
		Concepts:        concepts,
	}
	require.NoError(t, db.Create(&paper).Error)
	return paper
}

func addHistory(t *testing.T, db *gorm.DB, userID, paperID int64, rating *float64) {
	t.Helper()
	now := nowFunc()
	entry := models.ReadingHistory{
		UserID:          userID,
		PaperID:         paperID,
		ReadTime:        &now,
		InteractionType: models.INTERACTION_TYPE_READ,
		Rating:          rating,
	}
	require.NoError(t, db.Create(&entry).Error)
}

func ratingOf(v float64) *float64 {
	return &v
}
