package models

import "time"

/************************************************
/**** MARK: INTERACTION TYPES ****/
/************************************************/
const INTERACTION_TYPE_READ = "read"
const INTERACTION_TYPE_FAVORITE = "favorite"
const INTERACTION_TYPE_CITE = "cite"
const INTERACTION_TYPE_DOWNLOAD = "download"

// ReadingHistory registra uma interação do usuário com um paper.
// Linhas são append-only: o motor de recomendação só lê, nunca apaga.
// Rating é opcional (nil quando o usuário não avaliou), escala 0-5.
type ReadingHistory struct {
	ID              int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID          int64      `gorm:"not null;index" json:"user_id" form:"user_id"`
	PaperID         int64      `gorm:"not null;index" json:"paper_id" form:"paper_id"`
	ReadTime        *time.Time `json:"read_time" form:"read_time"`
	Duration        int        `gorm:"default:0" json:"duration" form:"duration"` // segundos
	InteractionType string     `gorm:"not null;default:'read'" json:"interaction_type" form:"interaction_type"`
	Rating          *float64   `json:"rating" form:"rating"`
	CreatedAt       *time.Time `json:"created_at"`
	UpdatedAt       *time.Time `json:"updated_at"`
}
