package recommend

import (
	"fmt"
	"sort"

	"hypatia/models"

	"github.com/jinzhu/gorm"
)

type conceptLink struct {
	OwnerID   int64 `gorm:"column:owner_id"`
	ConceptID int64 `gorm:"column:concept_id"`
}

// BuildProfile monta o vetor de interesse do usuário (concept_id -> peso).
// Cada paper distinto do histórico contribui 1.0 (ou o rating, quando o
// usuário avaliou) para todos os conceitos do paper; conceitos das notas
// contribuem 1.0; linhas de UserInterest entram com o peso declarado.
// No final tudo é normalizado pelo maior peso, então o máximo é sempre 1.0.
// Usuário sem nenhum sinal devolve mapa vazio e erro nil.
func BuildProfile(db *gorm.DB, userID int64) (map[int64]float64, error) {
	profile := map[int64]float64{}

	// 1) Histórico de leitura: peso por paper distinto.
	var history []models.ReadingHistory
	if err := db.Where("user_id = ?", userID).Find(&history).Error; err != nil {
		return nil, fmt.Errorf("carregar histórico: %w", err)
	}

	paperWeight := map[int64]float64{}
	for _, h := range history {
		w := 1.0
		if h.Rating != nil && *h.Rating > 0 {
			w = *h.Rating
		}
		if w > paperWeight[h.PaperID] {
			paperWeight[h.PaperID] = w
		}
	}

	if len(paperWeight) > 0 {
		paperIDs := make([]int64, 0, len(paperWeight))
		for id := range paperWeight {
			paperIDs = append(paperIDs, id)
		}

		var links []conceptLink
		if err := db.Table("paper_concepts").
			Select("paper_id as owner_id, concept_id").
			Where("paper_id IN (?)", paperIDs).
			Scan(&links).Error; err != nil {
			return nil, fmt.Errorf("carregar conceitos dos papers: %w", err)
		}
		for _, l := range links {
			profile[l.ConceptID] += paperWeight[l.OwnerID]
		}
	}

	// 2) Conceitos das notas do usuário.
	var noteIDs []int64
	if err := db.Model(&models.Note{}).
		Where("user_id = ?", userID).
		Pluck("id", &noteIDs).Error; err != nil {
		return nil, fmt.Errorf("carregar notas: %w", err)
	}
	if len(noteIDs) > 0 {
		var links []conceptLink
		if err := db.Table("note_concepts").
			Select("note_id as owner_id, concept_id").
			Where("note_id IN (?)", noteIDs).
			Scan(&links).Error; err != nil {
			return nil, fmt.Errorf("carregar conceitos das notas: %w", err)
		}
		for _, l := range links {
			profile[l.ConceptID] += 1.0
		}
	}

	// 3) Interesse explícito declarado pelo usuário.
	var interests []models.UserInterest
	if err := db.Where("user_id = ?", userID).Find(&interests).Error; err != nil {
		return nil, fmt.Errorf("carregar interesses: %w", err)
	}
	for _, it := range interests {
		if it.Weight > 0 {
			profile[it.ConceptID] += it.Weight
		}
	}

	// Normalização pelo maior peso.
	if len(profile) > 0 {
		max := 0.0
		for _, w := range profile {
			if w > max {
				max = w
			}
		}
		if max > 0 {
			for id := range profile {
				profile[id] /= max
			}
		}
	}

	return profile, nil
}

// ConceptWeight é um item do resumo de interesses exposto pela API.
type ConceptWeight struct {
	ConceptID int64   `json:"concept_id"`
	Name      string  `json:"concept"`
	Weight    float64 `json:"weight"`
}

// InterestSummary devolve o perfil com nomes de conceito, ordenado por
// peso decrescente (empate por nome, pra saída estável).
func InterestSummary(db *gorm.DB, userID int64) ([]ConceptWeight, error) {
	profile, err := BuildProfile(db, userID)
	if err != nil {
		return nil, err
	}
	if len(profile) == 0 {
		return []ConceptWeight{}, nil
	}

	ids := make([]int64, 0, len(profile))
	for id := range profile {
		ids = append(ids, id)
	}

	var concepts []models.Concept
	if err := db.Where("id IN (?)", ids).Find(&concepts).Error; err != nil {
		return nil, fmt.Errorf("carregar conceitos: %w", err)
	}
	names := make(map[int64]string, len(concepts))
	for _, c := range concepts {
		names[c.ID] = c.Name
	}

	out := make([]ConceptWeight, 0, len(profile))
	for id, w := range profile {
		name := names[id]
		if name == "" {
			name = fmt.Sprintf("conceito %d", id)
		}
		out = append(out, ConceptWeight{ConceptID: id, Name: name, Weight: w})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Weight != out[j].Weight {
			return out[i].Weight > out[j].Weight
		}
		return out[i].Name < out[j].Name
	})

	return out, nil
}

// profileConceptNames devolve os nomes (lowercase) dos conceitos do perfil,
// usados no casamento por palavra-chave contra título/resumo.
func profileConceptNames(db *gorm.DB, profile map[int64]float64) ([]string, error) {
	if len(profile) == 0 {
		return nil, nil
	}
	ids := make([]int64, 0, len(profile))
	for id := range profile {
		ids = append(ids, id)
	}
	var concepts []models.Concept
	if err := db.Where("id IN (?)", ids).Find(&concepts).Error; err != nil {
		return nil, err
	}
	names := make([]string, 0, len(concepts))
	for _, c := range concepts {
		if c.Name != "" {
			names = append(names, c.Name)
		}
	}
	return names, nil
}
