package recommend

import (
	"log"

	"hypatia/models"

	"github.com/jinzhu/gorm"
)

// scoreCandidates roda os três componentes com cotas de ~50/25/25% do
// pedido, mescla os resultados deduplicando por paper (fica o maior score)
// e ordena por score decrescente, empate por paper id. O componente de
// recência entra de novo como fallback quando a mescla rende menos que o
// pedido. Um componente que falha vira contribuição zero, nunca aborta.
func (s *Service) scoreCandidates(db *gorm.DB, userID int64, excluded map[int64]bool, limit int) []Scored {
	runs := []struct {
		comp  ScoringComponent
		quota int
	}{
		{&interestComponent{svc: s}, (limit + 1) / 2},
		{&collaborativeComponent{svc: s}, limit / 4},
		{&recencyComponent{svc: s}, limit / 4},
	}

	merged := map[int64]Scored{}
	for _, r := range runs {
		items, err := r.comp.Score(db, userID, excluded, r.quota)
		if err != nil {
			log.Printf("recommender: componente %s falhou, seguindo sem ele: %v", r.comp.Name(), err)
			continue
		}
		mergeScored(merged, items)
	}

	// Fallback por recência para completar o pedido.
	if len(merged) < limit {
		seen := make(map[int64]bool, len(excluded)+len(merged))
		for id := range excluded {
			seen[id] = true
		}
		for id := range merged {
			seen[id] = true
		}
		fallback := &recencyComponent{svc: s}
		items, err := fallback.Score(db, userID, seen, limit-len(merged))
		if err != nil {
			log.Printf("recommender: fallback de recência falhou: %v", err)
		} else {
			mergeScored(merged, items)
		}
	}

	out := make([]Scored, 0, len(merged))
	for _, sc := range merged {
		out = append(out, sc)
	}
	sortScored(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// mergeScored mantém, por paper, o maior score já visto (e os motivos dele).
func mergeScored(merged map[int64]Scored, items []Scored) {
	for _, sc := range items {
		if prev, ok := merged[sc.PaperID]; ok && prev.Score >= sc.Score {
			continue
		}
		merged[sc.PaperID] = sc
	}
}

// recentCandidates carrega o pool de candidatos: papers públicos fora do
// conjunto de exclusão, mais novos primeiro, limitado a maxCandidates.
// Com recentOnly, restringe à janela de recência configurada.
func (s *Service) recentCandidates(db *gorm.DB, excluded map[int64]bool, recentOnly bool) ([]models.Paper, error) {
	q := db.Preload("Concepts").Where("is_public = ?", true)
	if len(excluded) > 0 {
		q = q.Where("id NOT IN (?)", excludedIDs(excluded))
	}
	if recentOnly {
		cutoff := nowFunc().Add(-s.recentWindow)
		q = q.Where("publication_date IS NOT NULL AND publication_date >= ?", cutoff)
	}

	var papers []models.Paper
	if err := q.Order("publication_date desc, id asc").Limit(s.maxCandidates).Find(&papers).Error; err != nil {
		return nil, err
	}
	return papers, nil
}
