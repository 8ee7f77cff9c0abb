package models

import "time"

// Project agrupa papers de uma mesma linha de pesquisa do usuário.
type Project struct {
	ID          int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	UserID      int64      `gorm:"not null;index" json:"user_id" form:"user_id"`
	Name        string     `gorm:"not null" json:"name" form:"name"`
	Description string     `gorm:"type:text" json:"description" form:"description"`
	CreatedAt   *time.Time `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
