package models

import "time"

/************************************************
/**** MARK: JOURNAL RANKINGS ****/
/************************************************/
// Rankings seguem a classificação CCF mais os índices internacionais.
const JOURNAL_RANKING_CCF_A = "CCF-A"
const JOURNAL_RANKING_CCF_B = "CCF-B"
const JOURNAL_RANKING_CCF_C = "CCF-C"
const JOURNAL_RANKING_SCI = "SCI"
const JOURNAL_RANKING_SSCI = "SSCI"
const JOURNAL_RANKING_CSSCI = "CSSCI"
const JOURNAL_RANKING_EI = "EI"

// Journal representa o periódico/venue de publicação.
// Ranking e Category alimentam o bônus de qualidade do recomendador
// e o filtro de categoria do sorteio aleatório.
type Journal struct {
	ID           int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name         string     `gorm:"not null" json:"name" form:"name"`
	Abbreviation string     `gorm:"default:''" json:"abbreviation" form:"abbreviation"`
	ISSN         string     `gorm:"column:issn;default:''" json:"issn" form:"issn"`
	Ranking      string     `gorm:"default:''" json:"ranking" form:"ranking"`
	Category     string     `gorm:"default:'';index" json:"category" form:"category"`
	ImpactFactor float64    `gorm:"default:0" json:"impact_factor" form:"impact_factor"`
	URL          string     `gorm:"column:url;default:''" json:"url" form:"url"`
	CreatedAt    *time.Time `json:"created_at"`
	UpdatedAt    *time.Time `json:"updated_at"`
}

func (journal Journal) MissingFields() string {
	if journal.Name == "" {
		return "name"
	}
	return ""
}
