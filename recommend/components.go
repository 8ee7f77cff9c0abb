package recommend

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"hypatia/models"
	"hypatia/tools"

	"github.com/jinzhu/gorm"
)

// Scored é um candidato pontuado por um componente.
type Scored struct {
	PaperID int64
	Score   float64
	Reasons []string
}

// ScoringComponent é um gerador de candidatos pontuados. Cada componente
// respeita o conjunto de exclusão e devolve no máximo limit itens em ordem
// decrescente de score. Erros de um componente nunca derrubam o ranking
// inteiro: o scorer loga e segue com os demais.
type ScoringComponent interface {
	Name() string
	Score(db *gorm.DB, userID int64, excluded map[int64]bool, limit int) ([]Scored, error)
}

func clamp01(v float64) float64 {
	return math.Min(1.0, math.Max(0.0, v))
}

// cosineOverConcepts: vetor do paper tem 1.0 em cada conceito associado;
// o perfil carrega os pesos do usuário. Produto interno / normas.
func cosineOverConcepts(paperConcepts map[int64]bool, profile map[int64]float64) float64 {
	if len(paperConcepts) == 0 || len(profile) == 0 {
		return 0
	}
	var dot, userMag float64
	for id := range paperConcepts {
		dot += profile[id]
	}
	for _, w := range profile {
		userMag += w * w
	}
	paperMag := math.Sqrt(float64(len(paperConcepts)))
	userMag = math.Sqrt(userMag)
	if paperMag*userMag == 0 {
		return 0
	}
	return dot / (paperMag * userMag)
}

// venueBonus devolve o bônus de qualidade do periódico e o motivo.
func venueBonus(db *gorm.DB, journalID int64) (float64, string) {
	if journalID == 0 {
		return 0, ""
	}
	var j models.Journal
	if err := db.First(&j, journalID).Error; err != nil {
		return 0, ""
	}

	switch j.Ranking {
	case models.JOURNAL_RANKING_CCF_A, "A", "A+":
		return 0.3, fmt.Sprintf("vem de %s (periódico %s)", j.Name, j.Ranking)
	case models.JOURNAL_RANKING_CCF_B, "B", models.JOURNAL_RANKING_SCI, models.JOURNAL_RANKING_SSCI:
		return 0.2, fmt.Sprintf("vem de %s (periódico %s)", j.Name, j.Ranking)
	case models.JOURNAL_RANKING_CCF_C, "C", models.JOURNAL_RANKING_EI, models.JOURNAL_RANKING_CSSCI:
		return 0.1, fmt.Sprintf("vem de %s (%s)", j.Name, j.Ranking)
	default:
		return 0.05, "vem de " + j.Name
	}
}

// keywordBonus conta quantos conceitos do perfil aparecem no título/resumo.
// Bônus de 0.1 por conceito, teto em 0.3.
func keywordBonus(conceptNames []string, p *models.Paper) (float64, int) {
	if len(conceptNames) == 0 {
		return 0, 0
	}
	title := strings.ToLower(p.Title)
	abstract := strings.ToLower(p.Abstract)
	matches := 0
	for _, name := range conceptNames {
		name = tools.NormalizeText(name)
		if name == "" {
			continue
		}
		if strings.Contains(title, name) || strings.Contains(abstract, name) {
			matches++
		}
	}
	if matches == 0 {
		return 0, 0
	}
	return math.Min(0.3, 0.1*float64(matches)), matches
}

// recencyBonus: +0.3 até 7 dias, +0.2 até 14, +0.1 até 90.
func recencyBonus(published *time.Time, now time.Time) (float64, string) {
	if published == nil {
		return 0, ""
	}
	age := now.Sub(*published)
	switch {
	case age < 0:
		return 0, ""
	case age < 7*24*time.Hour:
		return 0.3, "publicado na última semana"
	case age < 14*24*time.Hour:
		return 0.2, "publicado nas últimas duas semanas"
	case age < 90*24*time.Hour:
		return 0.1, "publicado nos últimos três meses"
	default:
		return 0, ""
	}
}

func sortScored(items []Scored) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].Score != items[j].Score {
			return items[i].Score > items[j].Score
		}
		return items[i].PaperID < items[j].PaperID
	})
}

func excludedIDs(excluded map[int64]bool) []int64 {
	ids := make([]int64, 0, len(excluded))
	for id := range excluded {
		ids = append(ids, id)
	}
	return ids
}

/************************************************
/**** MARK: INTEREST COMPONENT ****/
/************************************************/

// interestComponent pontua candidatos contra o perfil de interesse:
// cosseno sobre conceitos + bônus de palavra-chave, periódico e recência.
type interestComponent struct {
	svc *Service
}

func (c *interestComponent) Name() string { return "interest" }

func (c *interestComponent) Score(db *gorm.DB, userID int64, excluded map[int64]bool, limit int) ([]Scored, error) {
	if limit <= 0 {
		return nil, nil
	}

	profile, err := BuildProfile(db, userID)
	if err != nil {
		return nil, err
	}
	conceptNames, err := profileConceptNames(db, profile)
	if err != nil {
		return nil, err
	}

	papers, err := c.svc.recentCandidates(db, excluded, false)
	if err != nil {
		return nil, err
	}

	now := nowFunc()
	var out []Scored
	for i := range papers {
		p := &papers[i]
		score := cosineOverConcepts(p.ConceptIDSet(), profile)
		var reasons []string
		if score >= 0.3 {
			reasons = append(reasons, "alinhado com seu perfil de leitura")
		}

		if b, reason := venueBonus(db, p.JournalID); b > 0 {
			score += b
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}
		if b, matches := keywordBonus(conceptNames, p); b > 0 {
			score += b
			reasons = append(reasons, fmt.Sprintf("relacionado a %d dos seus interesses", matches))
		}
		if b, reason := recencyBonus(p.PublicationDate, now); b > 0 {
			score += b
			reasons = append(reasons, reason)
		}

		score = clamp01(score)
		if score == 0 {
			continue
		}
		if len(reasons) == 0 {
			reasons = append(reasons, "sugestão baseada no seu acervo")
		}
		out = append(out, Scored{PaperID: p.ID, Score: score, Reasons: reasons})
	}

	sortScored(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

/************************************************
/**** MARK: COLLABORATIVE COMPONENT ****/
/************************************************/

// collaborativeComponent: vizinhos são usuários que compartilham pelo menos
// um paper lido com o usuário alvo (basta um paper em comum, sem
// ponderação por quantidade); candidatos são papers lidos pelos
// vizinhos, pontuados pela fração de vizinhos que leram.
type collaborativeComponent struct {
	svc *Service
}

func (c *collaborativeComponent) Name() string { return "collaborative" }

func (c *collaborativeComponent) Score(db *gorm.DB, userID int64, excluded map[int64]bool, limit int) ([]Scored, error) {
	if limit <= 0 {
		return nil, nil
	}

	var ownPaperIDs []int64
	if err := db.Model(&models.ReadingHistory{}).
		Where("user_id = ?", userID).
		Pluck("DISTINCT paper_id", &ownPaperIDs).Error; err != nil {
		return nil, fmt.Errorf("carregar histórico próprio: %w", err)
	}
	if len(ownPaperIDs) == 0 {
		// Sem histórico não há vizinhança.
		return nil, nil
	}

	var neighborIDs []int64
	if err := db.Model(&models.ReadingHistory{}).
		Where("paper_id IN (?) AND user_id <> ?", ownPaperIDs, userID).
		Pluck("DISTINCT user_id", &neighborIDs).Error; err != nil {
		return nil, fmt.Errorf("carregar vizinhos: %w", err)
	}
	if len(neighborIDs) == 0 {
		return nil, nil
	}

	skip := make(map[int64]bool, len(excluded)+len(ownPaperIDs))
	for id := range excluded {
		skip[id] = true
	}
	for _, id := range ownPaperIDs {
		skip[id] = true
	}

	var neighborReads []models.ReadingHistory
	if err := db.Where("user_id IN (?)", neighborIDs).Find(&neighborReads).Error; err != nil {
		return nil, fmt.Errorf("carregar leituras dos vizinhos: %w", err)
	}

	// paper -> conjunto de vizinhos que leram; e soma/conta de ratings.
	readers := map[int64]map[int64]bool{}
	ratingSum := map[int64]float64{}
	ratingCount := map[int64]int{}
	for _, h := range neighborReads {
		if skip[h.PaperID] {
			continue
		}
		if readers[h.PaperID] == nil {
			readers[h.PaperID] = map[int64]bool{}
		}
		readers[h.PaperID][h.UserID] = true
		if h.Rating != nil {
			ratingSum[h.PaperID] += *h.Rating
			ratingCount[h.PaperID]++
		}
	}

	total := float64(len(neighborIDs))
	var out []Scored
	for paperID, who := range readers {
		score := math.Min(1.0, float64(len(who))/total)
		if n := ratingCount[paperID]; n > 0 {
			avg := ratingSum[paperID] / float64(n)
			score = score * (0.5 + 0.5*math.Min(1.0, avg/5.0))
		}
		score = clamp01(score)
		if score == 0 {
			continue
		}
		out = append(out, Scored{
			PaperID: paperID,
			Score:   score,
			Reasons: []string{"usuários com leituras parecidas também leram este paper"},
		})
	}

	sortScored(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

/************************************************
/**** MARK: RECENCY COMPONENT ****/
/************************************************/

// recencyComponent sugere publicações recentes mesmo sem sinal de interesse.
// Serve também como pool de fallback quando os outros componentes rendem
// menos que o pedido.
type recencyComponent struct {
	svc *Service
}

func (c *recencyComponent) Name() string { return "recency" }

func (c *recencyComponent) Score(db *gorm.DB, userID int64, excluded map[int64]bool, limit int) ([]Scored, error) {
	if limit <= 0 {
		return nil, nil
	}

	papers, err := c.svc.recentCandidates(db, excluded, true)
	if err != nil {
		return nil, err
	}

	// Perfil pode ser vazio; nesse caso só recência + periódico pontuam.
	profile, err := BuildProfile(db, userID)
	if err != nil {
		profile = map[int64]float64{}
	}
	conceptNames, _ := profileConceptNames(db, profile)

	now := nowFunc()
	var out []Scored
	for i := range papers {
		p := &papers[i]
		score := 0.2
		reasons := []string{"publicação recente"}

		if b, reason := venueBonus(db, p.JournalID); b > 0 {
			score += b
			if reason != "" {
				reasons = append(reasons, reason)
			}
		}
		if b, matches := keywordBonus(conceptNames, p); b > 0 {
			score += b
			reasons = append(reasons, fmt.Sprintf("relacionado a %d dos seus interesses", matches))
		}
		if b, reason := recencyBonus(p.PublicationDate, now); b > 0 {
			score += b
			reasons = append(reasons, reason)
		}

		out = append(out, Scored{PaperID: p.ID, Score: clamp01(score), Reasons: reasons})
	}

	sortScored(out)
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}
