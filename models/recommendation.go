package models

import "time"

// Recommendation é uma sugestão persistida de leitura para um usuário.
// Só existe 1 linha viva por (user_id, paper_id); a regeneração substitui
// o lote inteiro dentro de uma transação, nunca acumula.
type Recommendation struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID    int64      `gorm:"not null;index;unique_index:ux_user_paper" json:"user_id"`
	PaperID   int64      `gorm:"not null;index;unique_index:ux_user_paper" json:"paper_id"`
	Score     float64    `gorm:"not null;default:0" json:"score"` // [0,1], 4 casas decimais
	Reason    string     `gorm:"type:text" json:"reason"`
	IsRead    bool       `gorm:"not null;default:false" json:"is_read"`
	Paper     *Paper     `gorm:"foreignkey:PaperID" json:"paper,omitempty"`
	CreatedAt *time.Time `json:"created_at"`
	UpdatedAt *time.Time `json:"updated_at"`
}
