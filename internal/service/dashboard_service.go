package service

import (
	"encoding/json"
	"fmt"

	"github.com/jinzhu/copier"
	"github.com/lshigami/Petrels/internal/dto"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/lshigami/Petrels/internal/repository"
	"github.com/rs/zerolog/log"
)

// DashboardService serves the interviewer-facing views over the archive of
// completed interviews.
type DashboardService interface {
	ListCompletedInterviews() ([]dto.CompletedInterviewSummary, error)
	GetInterviewDetails(sessionID string) (*dto.CompletedInterviewDetail, error)
	Metrics() (*dto.DashboardMetricsResponse, error)
}

type dashboardService struct {
	archive repository.SessionArchiveRepository
}

func NewDashboardService(archive repository.SessionArchiveRepository) DashboardService {
	return &dashboardService{archive: archive}
}

func (s *dashboardService) ListCompletedInterviews() ([]dto.CompletedInterviewSummary, error) {
	records, err := s.archive.FindAll()
	if err != nil {
		log.Error().Err(err).Msg("Failed to list completed interviews from archive")
		return nil, fmt.Errorf("error fetching completed interviews: %w", err)
	}

	summaries := make([]dto.CompletedInterviewSummary, 0, len(records))
	for i := range records {
		var summary dto.CompletedInterviewSummary
		if err := copier.Copy(&summary, &records[i]); err != nil {
			log.Error().Err(err).Str("sessionID", records[i].SessionID).Msg("Error copying archive record to summary DTO")
			continue
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}

func (s *dashboardService) GetInterviewDetails(sessionID string) (*dto.CompletedInterviewDetail, error) {
	record, err := s.archive.FindBySessionID(sessionID)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", sessionID).Msg("Completed interview not found in archive")
		return nil, fmt.Errorf("interview not found with session ID %s: %w", sessionID, err)
	}

	var detail dto.CompletedInterviewDetail
	if err := copier.Copy(&detail.CompletedInterviewSummary, record); err != nil {
		log.Error().Err(err).Msg("Error copying archive record to detail DTO")
		return nil, fmt.Errorf("error preparing interview details: %w", err)
	}

	if record.Transcript != "" {
		var session model.InterviewSession
		if err := json.Unmarshal([]byte(record.Transcript), &session); err != nil {
			log.Warn().Err(err).Str("sessionID", sessionID).Msg("Archived transcript is unparseable, returning summary only")
		} else {
			detail.Session = &session
		}
	}
	return &detail, nil
}

func (s *dashboardService) Metrics() (*dto.DashboardMetricsResponse, error) {
	metrics, err := s.archive.Metrics()
	if err != nil {
		log.Error().Err(err).Msg("Failed to compute dashboard metrics")
		return nil, fmt.Errorf("error computing dashboard metrics: %w", err)
	}

	var resp dto.DashboardMetricsResponse
	if err := copier.Copy(&resp, metrics); err != nil {
		return nil, fmt.Errorf("error preparing metrics response: %w", err)
	}
	return &resp, nil
}
