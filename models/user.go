package models

import (
	"time"
)

type User struct {
	Username     string    `gorm:"primaryKey;size:100" json:"username"`
	CreatedAt    time.Time `json:"-"`
	UpdatedAt    time.Time `json:"-"`
	PasswordHash string    `gorm:"not null" json:"-"`
	Email        string    `gorm:"size:255" json:"email"`
	Bio          string    `gorm:"size:1000" json:"bio"`
	Avatar       string    `gorm:"size:500" json:"avatar"`
	Location     string    `gorm:"size:200" json:"location"`
	Skills       []string  `gorm:"serializer:json" json:"skills"`
	Projects     []Project `gorm:"foreignKey:Owner;references:Username;constraint:OnDelete:CASCADE" json:"projects"`
}

// ProfileFields are the user attributes an owner may overwrite.
type ProfileFields struct {
	Email    string   `json:"email"`
	Bio      string   `json:"bio"`
	Avatar   string   `json:"avatar"`
	Location string   `json:"location"`
	Skills   []string `json:"skills"`
}

func (u *User) OwnerUsername() string {
	return u.Username
}

// Normalize replaces nil collections so they serialize as [] instead of null.
func (u *User) Normalize() {
	if u.Skills == nil {
		u.Skills = []string{}
	}
	if u.Projects == nil {
		u.Projects = []Project{}
	}
	for i := range u.Projects {
		u.Projects[i].Normalize()
	}
}
