package models

import "time"

// Concept representa um tópico/palavra-chave que pode ser associado
// a papers e notas (many-to-many via paper_concepts e note_concepts).
type Concept struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name        string     `gorm:"not null;unique" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}

func (concept Concept) MissingFields() string {
	if concept.Name == "" {
		return "name"
	}
	return ""
}
