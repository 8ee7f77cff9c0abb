package models

import "time"

// Note representa uma anotação do usuário, opcionalmente ligada a um paper.
// Os conceitos da nota alimentam o perfil de interesse do usuário.
type Note struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index" json:"user_id" form:"user_id"`
	PaperID   int64      `gorm:"index" json:"paper_id" form:"paper_id"`
	Title     string     `gorm:"default:''" json:"title" form:"title"`
	Content   string     `gorm:"type:text" json:"content" form:"content"`
	Concepts  []Concept  `gorm:"many2many:note_concepts" json:"concepts,omitempty"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
