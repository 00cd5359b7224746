package service

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lshigami/Petrels/config"
	"github.com/lshigami/Petrels/internal/dto"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/lshigami/Petrels/internal/oracle"
	"github.com/lshigami/Petrels/internal/repository"
	"github.com/lshigami/Petrels/internal/store"
	"github.com/rs/zerolog/log"
)

// InterviewSessionService owns the interview session state machine: question
// sequencing, answer submission, pause/resume, persistence and completion.
type InterviewSessionService interface {
	CreateSession(ctx context.Context, profile model.CandidateProfile) (*model.InterviewSession, error)
	SubmitAnswer(ctx context.Context, session *model.InterviewSession, answerText string, timeSpentSeconds int) (*model.InterviewSession, error)
	PauseSession(ctx context.Context, session *model.InterviewSession) (*model.InterviewSession, error)
	ResumeSession(ctx context.Context, session *model.InterviewSession) (*model.InterviewSession, error)
	LoadActiveSession(ctx context.Context) (*model.InterviewSession, error)
	ListCompletedSessions(ctx context.Context) ([]model.InterviewSession, error)
	ClearActiveSession(ctx context.Context) error

	Progress(session *model.InterviewSession) dto.Progress
	RemainingSeconds(session *model.InterviewSession, now time.Time) int
}

type sessionService struct {
	kv       store.KeyValueStore
	oracle   oracle.Oracle
	fallback oracle.Oracle
	archive  repository.SessionArchiveRepository
	cfg      *config.Config

	// Serializes submissions per session. Submissions for different
	// sessions are independent.
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

// NewInterviewSessionService wires the manager with its store, oracle and
// archive. The archive may be nil; completed sessions are then only kept in
// the key-value store.
func NewInterviewSessionService(kv store.KeyValueStore, orc oracle.Oracle, archive repository.SessionArchiveRepository, cfg *config.Config) InterviewSessionService {
	return &sessionService{
		kv:       kv,
		oracle:   orc,
		fallback: oracle.NewFallbackOracle(),
		archive:  archive,
		cfg:      cfg,
		locks:    make(map[string]*sync.Mutex),
	}
}

func (s *sessionService) lockFor(sessionID string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[sessionID]
	if !ok {
		l = &sync.Mutex{}
		s.locks[sessionID] = l
	}
	return l
}

func (s *sessionService) CreateSession(ctx context.Context, profile model.CandidateProfile) (*model.InterviewSession, error) {
	if strings.TrimSpace(profile.FullName) == "" {
		return nil, &ValidationError{Field: "full_name", Reason: "is required"}
	}
	if strings.TrimSpace(profile.Position) == "" {
		return nil, &ValidationError{Field: "position", Reason: "is required"}
	}

	session := &model.InterviewSession{
		ID:                   "INT-" + uuid.NewString(),
		Candidate:            profile,
		Questions:            []model.Question{},
		Answers:              []model.Answer{},
		Evaluations:          []model.Evaluation{},
		CurrentQuestionIndex: 0,
		Status:               model.StatusInProgress,
		StartTime:            time.Now(),
	}

	question := s.generateQuestion(ctx, session)
	session.Questions = append(session.Questions, *question)

	s.persistActive(ctx, session)

	log.Info().Str("sessionID", session.ID).Str("candidate", profile.FullName).Msg("Interview session created")
	return session, nil
}

func (s *sessionService) SubmitAnswer(ctx context.Context, session *model.InterviewSession, answerText string, timeSpentSeconds int) (*model.InterviewSession, error) {
	l := s.lockFor(session.ID)
	l.Lock()
	defer l.Unlock()

	if session.Status != model.StatusInProgress {
		return nil, &InvalidStateError{Operation: "submit_answer", Status: session.Status}
	}
	question := session.CurrentQuestion()
	if question == nil {
		return nil, &InvalidStateError{Operation: "submit_answer", Status: session.Status}
	}

	// The caller's copy may be stale: another request can advance, pause or
	// complete the stored session between load and submit. Verify against the
	// active slot inside the lock so the same question is never answered twice.
	stored, _ := s.LoadActiveSession(ctx)
	if stored == nil || stored.ID != session.ID {
		// An empty or foreign slot means this session was completed or
		// discarded since the copy was loaded.
		return nil, &InvalidStateError{Operation: "submit_answer", Status: model.StatusCompleted}
	}
	if stored.CurrentQuestionIndex != session.CurrentQuestionIndex || stored.Status != model.StatusInProgress {
		return nil, &InvalidStateError{Operation: "submit_answer", Status: stored.Status}
	}

	// An empty answer is accepted: a timed-out question must never block the
	// candidate's progress.
	session.Answers = append(session.Answers, model.Answer{
		QuestionID:       question.ID,
		Answer:           strings.TrimSpace(answerText),
		TimeSpentSeconds: timeSpentSeconds,
		TimeLimit:        question.TimeLimit,
		SubmittedAt:      time.Now(),
	})

	evaluation := s.evaluateAnswer(ctx, session, question, answerText)
	session.Evaluations = append(session.Evaluations, *evaluation)

	session.CurrentQuestionIndex++

	if session.CurrentQuestionIndex >= model.TotalQuestions {
		s.completeSession(ctx, session)
		s.finishCompleted(ctx, session)
	} else {
		next := s.generateQuestion(ctx, session)
		session.Questions = append(session.Questions, *next)
		session.PausedSeconds = 0
		s.persistActive(ctx, session)
	}

	return session, nil
}

func (s *sessionService) PauseSession(ctx context.Context, session *model.InterviewSession) (*model.InterviewSession, error) {
	l := s.lockFor(session.ID)
	l.Lock()
	defer l.Unlock()

	if session.Status != model.StatusInProgress {
		return nil, &InvalidStateError{Operation: "pause_session", Status: session.Status}
	}
	now := time.Now()
	session.Status = model.StatusPaused
	session.PausedAt = &now

	s.persistActive(ctx, session)
	return session, nil
}

func (s *sessionService) ResumeSession(ctx context.Context, session *model.InterviewSession) (*model.InterviewSession, error) {
	l := s.lockFor(session.ID)
	l.Lock()
	defer l.Unlock()

	if session.Status != model.StatusPaused {
		return nil, &InvalidStateError{Operation: "resume_session", Status: session.Status}
	}
	now := time.Now()
	if session.PausedAt != nil {
		session.PausedSeconds += int(now.Sub(*session.PausedAt).Seconds())
	}
	session.Status = model.StatusInProgress
	session.ResumedAt = &now

	s.persistActive(ctx, session)
	return session, nil
}

func (s *sessionService) LoadActiveSession(ctx context.Context) (*model.InterviewSession, error) {
	raw, err := s.kv.Get(ctx, store.KeyActiveSession)
	if errors.Is(err, store.ErrNotFound) {
		return nil, nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read active session from store, treating as absent")
		return nil, nil
	}

	var session model.InterviewSession
	if err := json.Unmarshal([]byte(raw), &session); err != nil {
		log.Warn().Err(err).Msg("Stored active session is unparseable, treating as absent")
		return nil, nil
	}
	return &session, nil
}

func (s *sessionService) ListCompletedSessions(ctx context.Context) ([]model.InterviewSession, error) {
	raw, err := s.kv.Get(ctx, store.KeyCompletedSessions)
	if errors.Is(err, store.ErrNotFound) {
		return []model.InterviewSession{}, nil
	}
	if err != nil {
		log.Warn().Err(err).Msg("Failed to read completed sessions from store, treating as empty")
		return []model.InterviewSession{}, nil
	}

	var sessions []model.InterviewSession
	if err := json.Unmarshal([]byte(raw), &sessions); err != nil {
		log.Warn().Err(err).Msg("Stored completed sessions list is unparseable, treating as empty")
		return []model.InterviewSession{}, nil
	}
	return sessions, nil
}

func (s *sessionService) ClearActiveSession(ctx context.Context) error {
	if err := s.kv.Remove(ctx, store.KeyActiveSession); err != nil {
		log.Warn().Err(err).Msg("Failed to clear active session slot")
		return &PersistenceError{Op: "clear_active_session", Err: err}
	}
	return nil
}

// Progress reports the 1-based position of the pending question and how many
// answers have been recorded.
func (s *sessionService) Progress(session *model.InterviewSession) dto.Progress {
	current := session.CurrentQuestionIndex + 1
	if current > model.TotalQuestions {
		current = model.TotalQuestions
	}
	completed := len(session.Answers)
	return dto.Progress{
		Current:    current,
		Total:      model.TotalQuestions,
		Completed:  completed,
		Percentage: int(float64(completed)/float64(model.TotalQuestions)*100 + 0.5),
	}
}

// RemainingSeconds derives the countdown for the pending question as a pure
// function of the clock: time limit minus elapsed time since generation,
// excluding time spent paused. The periodic UI tick only recomputes this;
// expiry submits through the same SubmitAnswer path as a manual submission.
func (s *sessionService) RemainingSeconds(session *model.InterviewSession, now time.Time) int {
	question := session.CurrentQuestion()
	if question == nil || session.Status == model.StatusCompleted {
		return 0
	}

	ref := now
	if session.Status == model.StatusPaused && session.PausedAt != nil {
		ref = *session.PausedAt
	}
	elapsed := int(ref.Sub(question.GeneratedAt).Seconds()) - session.PausedSeconds
	if elapsed < 0 {
		elapsed = 0
	}

	remaining := question.TimeLimit - elapsed
	if remaining < 0 {
		remaining = 0
	}
	return remaining
}

// generateQuestion asks the oracle for the next question and substitutes the
// deterministic fallback on any failure. It never fails.
func (s *sessionService) generateQuestion(ctx context.Context, session *model.InterviewSession) *model.Question {
	position := session.CurrentQuestionIndex
	difficulty := model.DifficultyAt(position)

	callCtx, cancel := s.oracleContext(ctx)
	defer cancel()

	question, err := s.oracle.GenerateQuestion(callCtx, difficulty, position, session.Candidate, session.Questions)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", session.ID).Int("position", position).Msg("Oracle question generation failed, using fallback")
		question, _ = s.fallback.GenerateQuestion(ctx, difficulty, position, session.Candidate, session.Questions)
	}

	question.ID = "Q-" + uuid.NewString()
	question.Difficulty = difficulty
	question.TimeLimit = model.TimeLimitFor(difficulty)
	question.Position = position
	question.GeneratedAt = time.Now()
	return question
}

// evaluateAnswer scores an answer, substituting the fallback evaluation on
// any oracle failure so the session can always progress.
func (s *sessionService) evaluateAnswer(ctx context.Context, session *model.InterviewSession, question *model.Question, answerText string) *model.Evaluation {
	callCtx, cancel := s.oracleContext(ctx)
	defer cancel()

	evaluation, err := s.oracle.EvaluateAnswer(callCtx, question, answerText, session.Candidate)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", session.ID).Str("questionID", question.ID).Msg("Oracle evaluation failed, using fallback")
		evaluation, _ = s.fallback.EvaluateAnswer(ctx, question, answerText, session.Candidate)
	}
	evaluation.QuestionID = question.ID
	return evaluation
}

// completeSession transitions the session to its terminal state and attaches
// the final summary. Guarded by the status check in SubmitAnswer, so it runs
// at most once per session.
func (s *sessionService) completeSession(ctx context.Context, session *model.InterviewSession) {
	now := time.Now()
	session.Status = model.StatusCompleted
	session.EndTime = &now

	transcript := make([]oracle.TranscriptEntry, 0, len(session.Answers))
	for i := range session.Answers {
		transcript = append(transcript, oracle.TranscriptEntry{
			Question:   session.Questions[i],
			Answer:     session.Answers[i].Answer,
			Evaluation: session.Evaluations[i],
		})
	}

	callCtx, cancel := s.oracleContext(ctx)
	defer cancel()

	summary, err := s.oracle.GenerateFinalSummary(callCtx, session.Candidate, transcript)
	if err != nil {
		log.Warn().Err(err).Str("sessionID", session.ID).Msg("Oracle summary generation failed, using fallback")
		summary, _ = s.fallback.GenerateFinalSummary(ctx, session.Candidate, transcript)
	}
	session.FinalSummary = summary

	log.Info().Str("sessionID", session.ID).Int("overallScore", summary.OverallScore).Str("recommendation", summary.Recommendation).Msg("Interview session completed")
}

// finishCompleted moves the session from the active slot into the completed
// list, archives it, and clears the active slot. Appending is idempotent on
// the session ID.
func (s *sessionService) finishCompleted(ctx context.Context, session *model.InterviewSession) {
	completed, _ := s.ListCompletedSessions(ctx)
	exists := false
	for i := range completed {
		if completed[i].ID == session.ID {
			exists = true
			break
		}
	}
	if !exists {
		completed = append(completed, *session)
		if raw, err := json.Marshal(completed); err != nil {
			log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to serialize completed sessions list")
		} else if err := s.kv.Set(ctx, store.KeyCompletedSessions, string(raw)); err != nil {
			log.Warn().Err(err).Str("sessionID", session.ID).Msg("Failed to persist completed sessions list; recovery on reload is not guaranteed")
		}
	}

	s.archiveSession(session)

	if err := s.kv.Remove(ctx, store.KeyActiveSession); err != nil {
		log.Warn().Err(err).Str("sessionID", session.ID).Msg("Failed to clear active session slot after completion")
	}
}

// archiveSession writes the flattened record for the interviewer dashboard.
// Best effort: the key-value store already holds the completed session.
func (s *sessionService) archiveSession(session *model.InterviewSession) {
	if s.archive == nil || session.FinalSummary == nil || session.EndTime == nil {
		return
	}

	transcript, err := json.Marshal(session)
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to serialize session transcript for archive")
		return
	}

	record := &model.SessionRecord{
		SessionID:      session.ID,
		CandidateName:  session.Candidate.FullName,
		CandidateEmail: session.Candidate.Email,
		Position:       session.Candidate.Position,
		OverallScore:   session.FinalSummary.OverallScore,
		Recommendation: session.FinalSummary.Recommendation,
		QuestionCount:  len(session.Questions),
		StartTime:      session.StartTime,
		EndTime:        *session.EndTime,
		Transcript:     string(transcript),
	}
	if err := s.archive.Create(record); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to archive completed session")
	}
}

// persistActive saves the session to the active slot. A write failure is
// logged and absorbed: the in-memory session stays authoritative for the
// rest of the process lifetime.
func (s *sessionService) persistActive(ctx context.Context, session *model.InterviewSession) {
	raw, err := json.Marshal(session)
	if err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Failed to serialize session")
		return
	}
	if err := s.kv.Set(ctx, store.KeyActiveSession, string(raw)); err != nil {
		perr := &PersistenceError{Op: "persist_active_session", Err: err}
		log.Warn().Err(perr).Str("sessionID", session.ID).Msg("Session state not durably saved; recovery on reload is not guaranteed")
	}
}

func (s *sessionService) oracleContext(ctx context.Context) (context.Context, context.CancelFunc) {
	timeout := time.Duration(s.cfg.Oracle.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return context.WithTimeout(ctx, timeout)
}
