// Package persistence stores completed comparison reports in a database.
package persistence

import "time"

// ReportModel is the database model for a comparison report.
type ReportModel struct {
	ID               int64     `gorm:"primaryKey;autoIncrement"`
	ComparisonDate   time.Time `gorm:"not null;index"`
	TotalComparisons int       `gorm:"not null"`
	// The FK column is report_id, not the report_model_id GORM would
	// otherwise infer from the struct name.
	Results []ResultModel `gorm:"foreignKey:ReportID"`
}

// TableName returns the table name for GORM.
func (ReportModel) TableName() string { return "reports" }

// ResultModel is the database model for a single comparison result.
// Entry skill lists are stored as JSON-encoded text so skill names may
// contain any character.
type ResultModel struct {
	ID              int64 `gorm:"primaryKey;autoIncrement"`
	ReportID        int64 `gorm:"not null;index"`
	Position        int   `gorm:"not null"`
	SourceEntryID   int64
	SourceName      string
	SourceTitle     string
	SourceSummary   string
	SourceSkills    string
	MatchedEntryID  int64
	MatchedName     string
	MatchedTitle    string
	MatchedSummary  string
	MatchedSkills   string
	SimilarityScore float64
	DiffSummary     string
}

// TableName returns the table name for GORM.
func (ResultModel) TableName() string { return "report_results" }
