package models

import (
	"fmt"
	"strings"
	"time"
)

type ProjectStatus string

const (
	StatusPlanned    ProjectStatus = "PLANNED"
	StatusInProgress ProjectStatus = "IN_PROGRESS"
	StatusCompleted  ProjectStatus = "COMPLETED"
)

// ParseProjectStatus accepts the canonical names case-insensitively.
// An empty string means StatusPlanned.
func ParseProjectStatus(s string) (ProjectStatus, error) {
	switch ProjectStatus(strings.ToUpper(strings.TrimSpace(s))) {
	case "", StatusPlanned:
		return StatusPlanned, nil
	case StatusInProgress:
		return StatusInProgress, nil
	case StatusCompleted:
		return StatusCompleted, nil
	}
	return "", fmt.Errorf("%w: unknown project status %q", ErrValidation, s)
}

type Project struct {
	ID           uint          `gorm:"primaryKey" json:"id"`
	CreatedAt    time.Time     `json:"-"`
	UpdatedAt    time.Time     `json:"-"`
	Title        string        `gorm:"not null;size:200" json:"title"`
	Description  string        `gorm:"size:2000" json:"description"`
	RepoLink     string        `gorm:"size:500" json:"repoLink"`
	Technologies []string      `gorm:"serializer:json" json:"technologies"`
	Screenshot   string        `gorm:"size:500" json:"screenshot"`
	Status       ProjectStatus `gorm:"not null;size:20" json:"status"`
	Owner        string        `gorm:"not null;index;size:100" json:"-"`
}

func (p *Project) OwnerUsername() string {
	return p.Owner
}

func (p *Project) Normalize() {
	if p.Technologies == nil {
		p.Technologies = []string{}
	}
}
