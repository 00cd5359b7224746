package repository

import (
	"errors"

	"github.com/lshigami/Petrels/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArchiveMetrics are the dashboard aggregates over completed interviews.
type ArchiveMetrics struct {
	TotalInterviews int64   `json:"total_interviews"`
	AverageScore    float64 `json:"average_score"`
	StrongHires     int64   `json:"strong_hires"`
	Hires           int64   `json:"hires"`
}

type SessionArchiveRepository interface {
	Create(record *model.SessionRecord) error
	FindBySessionID(sessionID string) (*model.SessionRecord, error)
	FindAll() ([]model.SessionRecord, error)
	Metrics() (*ArchiveMetrics, error)
}

type sessionArchiveRepository struct {
	db *gorm.DB
}

func NewSessionArchiveRepository(db *gorm.DB) SessionArchiveRepository {
	return &sessionArchiveRepository{db: db}
}

// Create inserts the record, ignoring a duplicate session ID so a re-archived
// completion never produces a second row.
func (r *sessionArchiveRepository) Create(record *model.SessionRecord) error {
	return r.db.Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
}

func (r *sessionArchiveRepository) FindBySessionID(sessionID string) (*model.SessionRecord, error) {
	var record model.SessionRecord
	err := r.db.Where("session_id = ?", sessionID).First(&record).Error
	if err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *sessionArchiveRepository) FindAll() ([]model.SessionRecord, error) {
	var records []model.SessionRecord
	err := r.db.Order("end_time DESC").Find(&records).Error
	return records, err
}

func (r *sessionArchiveRepository) Metrics() (*ArchiveMetrics, error) {
	var metrics ArchiveMetrics

	if err := r.db.Model(&model.SessionRecord{}).Count(&metrics.TotalInterviews).Error; err != nil {
		return nil, err
	}
	if metrics.TotalInterviews == 0 {
		return &metrics, nil
	}

	var avg *float64
	err := r.db.Model(&model.SessionRecord{}).Select("AVG(overall_score)").Scan(&avg).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if avg != nil {
		metrics.AverageScore = *avg
	}

	if err := r.db.Model(&model.SessionRecord{}).Where("recommendation = ?", model.RecommendationStrongHire).Count(&metrics.StrongHires).Error; err != nil {
		return nil, err
	}
	if err := r.db.Model(&model.SessionRecord{}).Where("recommendation = ?", model.RecommendationHire).Count(&metrics.Hires).Error; err != nil {
		return nil, err
	}
	return &metrics, nil
}
