package model

import (
	"time"

	"github.com/google/uuid"
)

// Role values. Every user holds exactly one.
const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

// ValidRole reports whether r is one of the known role values.
func ValidRole(r string) bool {
	return r == RoleUser || r == RoleAdmin
}

// User is a registered account. Email is stored trimmed and lower-cased.
// Deleting a user cascades deletion of their incidents.
type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Username     string    `gorm:"uniqueIndex;size:50;not null"`
	Email        string    `gorm:"uniqueIndex;size:255;not null"`
	PasswordHash string    `gorm:"not null"`
	FullName     *string
	Role         string `gorm:"type:varchar(10);not null;default:'user'"`
	IsActive     bool   `gorm:"not null;default:true"`
	CreatedAt    time.Time
	UpdatedAt    time.Time

	Incidents []Incident `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
}
