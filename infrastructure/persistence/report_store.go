package persistence

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/semdiff/semdiff/domain/dataset"
	"github.com/semdiff/semdiff/domain/report"
	"github.com/semdiff/semdiff/internal/database"
	"gorm.io/gorm"
)

// ReportStore persists completed reports. Reports are write-once: the
// store only inserts and reads, never updates.
type ReportStore struct {
	db *database.Database
}

// NewReportStore creates a ReportStore and migrates its tables.
func NewReportStore(db *database.Database) (*ReportStore, error) {
	if db == nil {
		return nil, fmt.Errorf("NewReportStore: nil database")
	}
	if err := db.GORM().AutoMigrate(&ReportModel{}, &ResultModel{}); err != nil {
		return nil, fmt.Errorf("migrate report tables: %w", err)
	}
	return &ReportStore{db: db}, nil
}

// Save inserts a report and its results.
func (s *ReportStore) Save(ctx context.Context, rep report.Report) error {
	model := ReportModel{
		ComparisonDate:   rep.GeneratedAt(),
		TotalComparisons: rep.Count(),
	}

	for i, r := range rep.Results() {
		resultModel, err := toResultModel(i, r)
		if err != nil {
			return fmt.Errorf("save report: %w", err)
		}
		model.Results = append(model.Results, resultModel)
	}

	if err := s.db.Session(ctx).Create(&model).Error; err != nil {
		return fmt.Errorf("save report: %w", err)
	}

	return nil
}

// Recent returns the most recent reports, newest first, up to limit.
func (s *ReportStore) Recent(ctx context.Context, limit int) ([]report.Report, error) {
	if limit <= 0 {
		limit = 10
	}

	var models []ReportModel
	err := s.db.Session(ctx).
		Preload("Results", func(db *gorm.DB) *gorm.DB { return db.Order("position ASC") }).
		Order("comparison_date DESC").
		Limit(limit).
		Find(&models).Error
	if err != nil {
		return nil, fmt.Errorf("list reports: %w", err)
	}

	reports := make([]report.Report, len(models))
	for i, model := range models {
		rep, err := toReport(model)
		if err != nil {
			return nil, fmt.Errorf("list reports: %w", err)
		}
		reports[i] = rep
	}

	return reports, nil
}

func toResultModel(position int, r report.ComparisonResult) (ResultModel, error) {
	sourceSkills, err := json.Marshal(r.Source().Skills())
	if err != nil {
		return ResultModel{}, fmt.Errorf("encode source skills: %w", err)
	}
	matchedSkills, err := json.Marshal(r.Matched().Skills())
	if err != nil {
		return ResultModel{}, fmt.Errorf("encode matched skills: %w", err)
	}

	return ResultModel{
		Position:        position,
		SourceEntryID:   r.Source().ID(),
		SourceName:      r.Source().Name(),
		SourceTitle:     r.Source().Title(),
		SourceSummary:   r.Source().Summary(),
		SourceSkills:    string(sourceSkills),
		MatchedEntryID:  r.Matched().ID(),
		MatchedName:     r.Matched().Name(),
		MatchedTitle:    r.Matched().Title(),
		MatchedSummary:  r.Matched().Summary(),
		MatchedSkills:   string(matchedSkills),
		SimilarityScore: r.Score(),
		DiffSummary:     r.Summary(),
	}, nil
}

func toReport(model ReportModel) (report.Report, error) {
	results := make([]report.ComparisonResult, len(model.Results))
	for i, rm := range model.Results {
		var sourceSkills, matchedSkills []string
		if err := json.Unmarshal([]byte(rm.SourceSkills), &sourceSkills); err != nil {
			return report.Report{}, fmt.Errorf("decode source skills: %w", err)
		}
		if err := json.Unmarshal([]byte(rm.MatchedSkills), &matchedSkills); err != nil {
			return report.Report{}, fmt.Errorf("decode matched skills: %w", err)
		}

		source := dataset.NewEntry(rm.SourceEntryID, rm.SourceName, rm.SourceTitle, rm.SourceSummary, sourceSkills)
		matched := dataset.NewEntry(rm.MatchedEntryID, rm.MatchedName, rm.MatchedTitle, rm.MatchedSummary, matchedSkills)
		results[i] = report.NewComparisonResult(source, matched, rm.SimilarityScore, rm.DiffSummary)
	}

	return report.New(model.ComparisonDate, results), nil
}
