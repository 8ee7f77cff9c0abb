package recommend

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"hypatia/models"

	"github.com/jinzhu/gorm"
)

// SampledPaper é um item do sorteio "surpreenda-me".
type SampledPaper struct {
	PaperID int64        `json:"paper_id"`
	Score   float64      `json:"score"`
	Reason  string       `json:"reason"`
	Paper   models.Paper `json:"paper"`
}

// RandomSample sorteia papers elegíveis (públicos, com título e com
// identificador externo), opcionalmente filtrados por categoria. Sempre
// ignora o cache de recomendações; sem reposição dentro da mesma chamada.
// O filtro de categoria tenta primeiro a categoria do periódico; sem
// periódico compatível cai pra busca por substring em título/resumo.
// forceRefresh enfileira uma tarefa de re-ingestão (fire-and-forget).
func (s *Service) RandomSample(db *gorm.DB, userID int64, category string, limit int, forceRefresh bool) ([]SampledPaper, error) {
	if limit <= 0 {
		limit = s.defaultLimit
	}

	if forceRefresh {
		if _, err := s.EnqueueRefresh(db, userID, models.REFRESH_TASK_KIND_INGEST); err != nil {
			// Fire-and-forget: falha na fila não impede o sorteio.
			log.Printf("sampler: erro ao enfileirar re-ingestão: %v", err)
		}
	}

	q := db.Model(&models.Paper{}).
		Where("is_public = ?", true).
		Where("title <> ''").
		Where("doi <> '' OR arxiv_id <> ''")

	if category != "" {
		var journalIDs []int64
		if err := db.Model(&models.Journal{}).
			Where("LOWER(category) = ?", strings.ToLower(category)).
			Pluck("id", &journalIDs).Error; err != nil {
			return nil, fmt.Errorf("buscar periódicos da categoria: %w", err)
		}

		if len(journalIDs) > 0 {
			q = q.Where("journal_id IN (?)", journalIDs)
		} else {
			like := "%" + strings.ToLower(category) + "%"
			q = q.Where("LOWER(title) LIKE ? OR LOWER(abstract) LIKE ?", like, like)
		}
	}

	var ids []int64
	if err := q.Pluck("id", &ids).Error; err != nil {
		return nil, fmt.Errorf("listar papers elegíveis: %w", err)
	}
	if len(ids) == 0 {
		return []SampledPaper{}, nil
	}

	rand.Shuffle(len(ids), func(i, j int) { ids[i], ids[j] = ids[j], ids[i] })
	if len(ids) > limit {
		ids = ids[:limit]
	}

	var papers []models.Paper
	if err := db.Where("id IN (?)", ids).Find(&papers).Error; err != nil {
		return nil, fmt.Errorf("carregar papers sorteados: %w", err)
	}
	byID := make(map[int64]models.Paper, len(papers))
	for _, p := range papers {
		byID[p.ID] = p
	}

	out := make([]SampledPaper, 0, len(ids))
	for _, id := range ids {
		p, ok := byID[id]
		if !ok {
			continue
		}
		out = append(out, SampledPaper{
			PaperID: p.ID,
			Score:   round4(0.5 + rand.Float64()*0.4),
			Reason:  s.randomReason(db, &p, category),
			Paper:   p,
		})
	}
	return out, nil
}

func (s *Service) randomReason(db *gorm.DB, p *models.Paper, category string) string {
	var reasons []string

	if p.JournalID != 0 {
		var j models.Journal
		if err := db.First(&j, p.JournalID).Error; err == nil {
			jCategory := j.Category
			if jCategory == "" {
				jCategory = "pesquisa acadêmica"
			}
			if j.Ranking != "" {
				reasons = append(reasons, fmt.Sprintf("paper de %s no periódico %s (%s)", jCategory, j.Name, j.Ranking))
			} else {
				reasons = append(reasons, fmt.Sprintf("paper de %s no periódico %s", jCategory, j.Name))
			}
		}
	}

	if category != "" {
		reasons = append(reasons, fmt.Sprintf("sorteio na área de %s", category))
	} else {
		reasons = append(reasons, "sorteio entre papers de acesso aberto")
	}

	return strings.Join(reasons, "; ")
}
