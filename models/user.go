package models

import "time"

/************************************************
/**** MARK: USER STATUS ****/
/************************************************/
const USER_STATUS_AVAILABLE = 0
const USER_STATUS_PENDING = 1
const USER_STATUS_BLOCKED = 2

// User representa um usuario no sistema. A autenticação fica no gateway;
// aqui o usuário existe apenas como dono de papers, notas e recomendações.
type User struct {
	ID        int64      `gorm:"primary_key;AUTO_INCREMENT" json:"id"`
	Name      string     `gorm:"not null" json:"name" form:"name"`
	Email     string     `gorm:"not null;unique" json:"email" form:"email"`
	Bio       string     `gorm:"type:text" json:"bio" form:"bio"`
	Status    int        `gorm:"default:0" json:"status" form:"status"`
	Admin     bool       `gorm:"not null; default: false" json:"admin" form:"admin"`
	CreatedAt *time.Time `json:"created_at" form:"created_at"`
	UpdatedAt *time.Time `json:"updated_at" form:"updated_at"`
}

func (user User) MissingFields() string {
	if user.Name == "" {
		return "name"
	} else if user.Email == "" {
		return "email"
	}
	return ""
}
