package entities

import "time"

const (
	RoleAdmin    = "ADMIN"
	RoleProducer = "PRODUTOR"
	RoleCustomer = "CLIENTE"
)

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Email     string    `gorm:"size:254" json:"email"`
	Role      string    `gorm:"size:20;index" json:"role"` // ADMIN|PRODUTOR|CLIENTE
	Active    bool      `gorm:"not null" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// ValidRole reports whether r is one of the roles the system knows about.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleProducer, RoleCustomer:
		return true
	}
	return false
}
