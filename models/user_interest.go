package models

import "time"

// UserInterest é o sinal explícito de interesse: o usuário declara peso
// para um conceito. É mesclado com o sinal implícito do histórico.
// Regra: um usuário só pode ter 1 linha por conceito (unique(user_id, concept_id)).
type UserInterest struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_user_concept" json:"user_id" form:"user_id"`
	ConceptID int64      `gorm:"not null;index;unique_index:ux_user_concept" json:"concept_id" form:"concept_id"`
	Weight    float64    `gorm:"not null;default:1" json:"weight" form:"weight"` // sempre >= 0
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
