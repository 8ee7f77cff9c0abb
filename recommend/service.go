// Package recommend implementa o motor de recomendação e similaridade:
// perfil de interesse por usuário, similaridade composta entre papers,
// ranking de candidatos com três componentes, cache com TTL por usuário e
// sorteio aleatório "surpreenda-me".
package recommend

import (
	"log"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"hypatia/config"
	"hypatia/models"

	"github.com/jinzhu/gorm"
	"golang.org/x/sync/singleflight"
)

// nowFunc existe pra congelar o relógio nos testes.
var nowFunc = time.Now

// Service é o motor de recomendação. Criado uma vez no boot e compartilhado
// entre handlers e workers; os métodos recebem *gorm.DB por chamada.
type Service struct {
	weights       Weights
	cache         *recCache
	group         singleflight.Group
	maxCandidates int
	recentWindow  time.Duration
	defaultLimit  int
}

func New(cfg config.Configuration) *Service {
	r := cfg.Recommender

	w := Weights{
		Concept: r.SimilarityWeights.Concept,
		Title:   r.SimilarityWeights.Title,
		Author:  r.SimilarityWeights.Author,
		Venue:   r.SimilarityWeights.Venue,
		Year:    r.SimilarityWeights.Year,
	}
	// Struct zerada significa "sem pesos na config": usa o padrão sem ruído.
	if (w == Weights{}) {
		w = DefaultWeights()
	} else if err := w.Validate(); err != nil {
		log.Printf("recommender: pesos de similaridade inválidos (%v), usando padrão", err)
		w = DefaultWeights()
	}

	ttl := time.Duration(r.CacheTTLMinutes) * time.Minute
	if ttl <= 0 {
		ttl = time.Hour
	}
	maxCandidates := r.MaxCandidates
	if maxCandidates <= 0 {
		maxCandidates = 100
	}
	recentWindow := time.Duration(r.RecentWindowDays) * 24 * time.Hour
	if recentWindow <= 0 {
		recentWindow = 90 * 24 * time.Hour
	}
	defaultLimit := r.DefaultLimit
	if defaultLimit <= 0 {
		defaultLimit = 10
	}

	return &Service{
		weights:       w,
		cache:         newRecCache(CachePolicy{TTL: ttl, MaxUses: r.CacheMaxUses}),
		maxCandidates: maxCandidates,
		recentWindow:  recentWindow,
		defaultLimit:  defaultLimit,
	}
}

// Weights expõe os pesos ativos (pra endpoint de similaridade e testes).
func (s *Service) Weights() Weights {
	return s.weights
}

// GetRecommendations devolve a lista rankeada do usuário, recomputando
// quando o cache está ausente/vencido ou quando refresh=true. Chamadas
// concorrentes pro mesmo usuário compartilham uma única recomputação
// (singleflight); ninguém dispara trabalho duplicado.
func (s *Service) GetRecommendations(db *gorm.DB, userID int64, limit int, refresh bool) ([]models.Recommendation, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	var user models.User
	if err := db.First(&user, userID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := nowFunc()
	if !refresh {
		if _, ok := s.cache.get(userID, now); ok {
			return s.loadPersisted(db, userID, limit)
		}
	}

	key := strconv.FormatInt(userID, 10)
	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		return s.regenerate(db, userID, limit, refresh), nil
	})
	if err != nil {
		return nil, err
	}
	recs := v.([]models.Recommendation)
	if len(recs) > limit {
		recs = recs[:limit]
	}
	return recs, nil
}

// regenerate recomputa e persiste o lote do usuário. A troca do lote
// (delete + inserts) acontece numa única transação: ou o lote novo entra
// inteiro, ou o antigo permanece. Falha de persistência devolve a lista
// anterior (ou vazia) com o erro logado, sem propagar pro caller.
func (s *Service) regenerate(db *gorm.DB, userID int64, limit int, wipeFirst bool) []models.Recommendation {
	excluded := map[int64]bool{}

	var readIDs []int64
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ?", userID).
		Pluck("DISTINCT paper_id", &readIDs).Error; err != nil {
		log.Printf("recommender: erro ao carregar papers lidos: %v", err)
	}
	for _, id := range readIDs {
		excluded[id] = true
	}

	// Fora do refresh forçado, papers já recomendados também saem do pool;
	// a lista regenerada traz material novo em vez de repetir a anterior.
	if !wipeFirst {
		var recIDs []int64
		if err := db.Model(&models.Recommendation{}).
			Where("user_id = ?", userID).
			Pluck("paper_id", &recIDs).Error; err != nil {
			log.Printf("recommender: erro ao carregar recomendações atuais: %v", err)
		}
		for _, id := range recIDs {
			excluded[id] = true
		}
	}

	scored := s.scoreCandidates(db, userID, excluded, limit)

	tx := db.Begin()
	if tx.Error != nil {
		log.Printf("recommender: erro ao abrir transação: %v", tx.Error)
		return s.previousOrEmpty(db, userID, limit)
	}

	if err := tx.Where("user_id = ?", userID).Delete(&models.Recommendation{}).Error; err != nil {
		tx.Rollback()
		log.Printf("recommender: erro ao limpar recomendações antigas: %v", err)
		return s.previousOrEmpty(db, userID, limit)
	}

	ids := make([]int64, 0, len(scored))
	for _, sc := range scored {
		// Pula papers que sumiram entre o scoring e a persistência.
		var count int
		if err := tx.Model(&models.Paper{}).Where("id = ?", sc.PaperID).Count(&count).Error; err != nil || count == 0 {
			continue
		}

		rec := models.Recommendation{
			UserID:  userID,
			PaperID: sc.PaperID,
			Score:   round4(sc.Score),
			Reason:  strings.Join(sc.Reasons, "; "),
		}
		if err := tx.Create(&rec).Error; err != nil {
			tx.Rollback()
			log.Printf("recommender: erro ao salvar recomendação: %v", err)
			return s.previousOrEmpty(db, userID, limit)
		}
		ids = append(ids, rec.ID)
	}

	if err := tx.Commit().Error; err != nil {
		log.Printf("recommender: erro no commit das recomendações: %v", err)
		return s.previousOrEmpty(db, userID, limit)
	}

	s.cache.put(userID, ids, nowFunc())

	recs, err := s.loadPersisted(db, userID, limit)
	if err != nil {
		log.Printf("recommender: erro ao carregar lote recém-salvo: %v", err)
		return []models.Recommendation{}
	}
	return recs
}

// previousOrEmpty serve o que sobrou no banco (lote anterior intacto após
// rollback) ou lista vazia.
func (s *Service) previousOrEmpty(db *gorm.DB, userID int64, limit int) []models.Recommendation {
	recs, err := s.loadPersisted(db, userID, limit)
	if err != nil {
		return []models.Recommendation{}
	}
	return recs
}

func (s *Service) loadPersisted(db *gorm.DB, userID int64, limit int) ([]models.Recommendation, error) {
	var recs []models.Recommendation
	err := db.Preload("Paper").
		Where("user_id = ?", userID).
		Order("score desc, paper_id asc").
		Limit(limit).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	return recs, nil
}

// MarkRead marca uma recomendação como lida. Só o dono pode marcar.
func (s *Service) MarkRead(db *gorm.DB, recommendationID, userID int64) (*models.Recommendation, error) {
	var rec models.Recommendation
	err := db.Where("id = ? AND user_id = ?", recommendationID, userID).First(&rec).Error
	if err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrRecommendationNotFound
		}
		return nil, err
	}

	rec.IsRead = true
	if err := db.Save(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

// InvalidateUser derruba o cache do usuário. Chamado quando entra linha
// nova de histórico de leitura e no pedido explícito de refresh.
func (s *Service) InvalidateUser(userID int64) {
	s.cache.invalidate(userID)
}

// EnqueueRefresh enfileira uma recomputação em background e volta na hora
// (fire-and-forget). O worker de refresh pega a tarefa no próximo tick.
// Enquanto isso o usuário continua sendo servido com o lote anterior
// (stale-while-revalidate).
func (s *Service) EnqueueRefresh(db *gorm.DB, userID int64, kind string) (*models.RefreshTask, error) {
	if kind == "" {
		kind = models.REFRESH_TASK_KIND_RECOMMENDATIONS
	}
	now := nowFunc()
	task := models.RefreshTask{
		UserID:      userID,
		Kind:        kind,
		Status:      models.REFRESH_TASK_STATUS_PENDING,
		ScheduledAt: &now,
	}
	if err := db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// SimilarPapers rankeia os papers mais parecidos com o paper dado usando a
// similaridade composta (conceitos, título, autores, venue e ano).
func (s *Service) SimilarPapers(db *gorm.DB, paperID int64, limit int) ([]SimilarPaper, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	var base models.Paper
	if err := db.Preload("Concepts").First(&base, paperID).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return nil, ErrPaperNotFound
		}
		return nil, err
	}

	var others []models.Paper
	if err := db.Preload("Concepts").
		Where("id <> ? AND is_public = ?", paperID, true).
		Find(&others).Error; err != nil {
		return nil, err
	}

	out := make([]SimilarPaper, 0, len(others))
	for i := range others {
		br := Similarity(&base, &others[i], s.weights)
		if br.Composite == 0 {
			continue
		}
		out = append(out, SimilarPaper{Paper: others[i], Breakdown: br})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Breakdown.Composite != out[j].Breakdown.Composite {
			return out[i].Breakdown.Composite > out[j].Breakdown.Composite
		}
		return out[i].Paper.ID < out[j].Paper.ID
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// SimilarPaper é um vizinho rankeado com o detalhamento dos sub-scores.
type SimilarPaper struct {
	Paper     models.Paper `json:"paper"`
	Breakdown Breakdown    `json:"breakdown"`
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}
