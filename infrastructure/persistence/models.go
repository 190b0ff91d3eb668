// Package persistence implements the posting stores on GORM.
package persistence

import (
	"time"

	"github.com/devradar/devradar/internal/database"
)

// RawPostingModel is the raw-posting table. The posting URL carries a unique
// index so upserts converge on one row per advertisement.
type RawPostingModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Platform    string `gorm:"index;not null"`
	RoleQuery   string
	Title       string `gorm:"not null"`
	Description string
	Location    string
	SalaryRaw   string
	Company     string
	PublishedAt string
	URL         string `gorm:"uniqueIndex;not null"`
	State       string `gorm:"index;not null;default:unprocessed"`
	ProcessedAt *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for raw postings.
func (RawPostingModel) TableName() string { return "raw_postings" }

// ClassifiedPostingModel is the classified-posting table. Embedding is a
// nullable JSON column; NULL marks a stored-but-unsearchable posting.
type ClassifiedPostingModel struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	Platform    string `gorm:"index"`
	RoleQuery   string
	PublishedAt string
	Title       string `gorm:"not null"`
	Location    string
	Description string
	Salary      *float64 `gorm:"index"`
	Company     string
	Skills      database.StringList `gorm:"type:text"`
	Seniority   string              `gorm:"index"`
	URL         string              `gorm:"uniqueIndex;not null"`
	Embedding   database.Vector     `gorm:"type:text"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for classified postings.
func (ClassifiedPostingModel) TableName() string { return "classified_postings" }
