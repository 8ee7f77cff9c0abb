package models

import (
	"strings"
	"time"
)

/************************************************
/**** MARK: PAPER SOURCES ****/
/************************************************/
const PAPER_SOURCE_ARXIV = "arxiv"
const PAPER_SOURCE_IEEE = "ieee"
const PAPER_SOURCE_MANUAL = "manual"

// Paper representa um artigo/documento acadêmico no acervo do usuário.
// Authors é uma string delimitada por vírgula (ordem preservada).
type Paper struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Title           string     `gorm:"not null" json:"title" form:"title"`
	Authors         string     `gorm:"type:text" json:"authors" form:"authors"`
	Abstract        string     `gorm:"type:text" json:"abstract" form:"abstract"`
	DOI             string     `gorm:"column:doi;index" json:"doi" form:"doi"`
	ArxivID         string     `gorm:"column:arxiv_id;index" json:"arxiv_id" form:"arxiv_id"`
	URL             string     `gorm:"column:url" json:"url" form:"url"`
	Venue           string     `gorm:"default:''" json:"venue" form:"venue"`
	JournalID       int64      `gorm:"index" json:"journal_id" form:"journal_id"`
	Year            int        `gorm:"default:0" json:"year" form:"year"`
	PublicationDate *time.Time `json:"publication_date" form:"publication_date"`
	Source          string     `gorm:"default:''" json:"source" form:"source"`
	CitationCount   int        `gorm:"default:0" json:"citation_count" form:"citation_count"`
	IsPublic        bool       `gorm:"not null;default:true" json:"is_public" form:"is_public"`
	UserID          int64      `gorm:"index" json:"user_id" form:"user_id"`
	ProjectID       int64      `gorm:"index" json:"project_id" form:"project_id"`
	Concepts        []Concept  `gorm:"many2many:paper_concepts" json:"concepts,omitempty"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}

func (paper Paper) MissingFields() string {
	if paper.Title == "" {
		return "title"
	}
	return ""
}

// AuthorList quebra a string de autores em nomes individuais (trim em cada um).
func (paper Paper) AuthorList() []string {
	if strings.TrimSpace(paper.Authors) == "" {
		return nil
	}
	parts := strings.Split(paper.Authors, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ConceptIDSet devolve o conjunto de conceitos associados (para Jaccard).
func (paper Paper) ConceptIDSet() map[int64]bool {
	set := make(map[int64]bool, len(paper.Concepts))
	for _, c := range paper.Concepts {
		set[c.ID] = true
	}
	return set
}

// HasExternalID diz se o paper tem identificador externo (DOI ou arXiv).
func (paper Paper) HasExternalID() bool {
	return strings.TrimSpace(paper.DOI) != "" || strings.TrimSpace(paper.ArxivID) != ""
}
