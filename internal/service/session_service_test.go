package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/lshigami/Petrels/config"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/lshigami/Petrels/internal/oracle"
	"github.com/lshigami/Petrels/internal/repository"
	"github.com/lshigami/Petrels/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeArchive records Create calls so completion can be asserted without a
// database.
type fakeArchive struct {
	mu      sync.Mutex
	records []model.SessionRecord
	err     error
}

func (f *fakeArchive) Create(record *model.SessionRecord) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.records = append(f.records, *record)
	return nil
}

func (f *fakeArchive) FindBySessionID(sessionID string) (*model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.records {
		if f.records[i].SessionID == sessionID {
			return &f.records[i], nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (f *fakeArchive) FindAll() ([]model.SessionRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.SessionRecord{}, f.records...), nil
}

func (f *fakeArchive) Metrics() (*repository.ArchiveMetrics, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	metrics := &repository.ArchiveMetrics{TotalInterviews: int64(len(f.records))}
	total := 0
	for i := range f.records {
		total += f.records[i].OverallScore
		switch f.records[i].Recommendation {
		case model.RecommendationStrongHire:
			metrics.StrongHires++
		case model.RecommendationHire:
			metrics.Hires++
		}
	}
	if metrics.TotalInterviews > 0 {
		metrics.AverageScore = float64(total) / float64(metrics.TotalInterviews)
	}
	return metrics, nil
}

// failingOracle always errors, forcing fallback substitution in the service.
type failingOracle struct{}

func (failingOracle) GenerateQuestion(context.Context, model.Difficulty, int, model.CandidateProfile, []model.Question) (*model.Question, error) {
	return nil, errors.New("oracle unavailable")
}

func (failingOracle) EvaluateAnswer(context.Context, *model.Question, string, model.CandidateProfile) (*model.Evaluation, error) {
	return nil, errors.New("oracle unavailable")
}

func (failingOracle) GenerateFinalSummary(context.Context, model.CandidateProfile, []oracle.TranscriptEntry) (*model.FinalSummary, error) {
	return nil, errors.New("oracle unavailable")
}

func testConfig() *config.Config {
	return &config.Config{Oracle: config.Oracle{TimeoutSeconds: 1}}
}

func newTestService(t *testing.T) (InterviewSessionService, store.KeyValueStore, *fakeArchive) {
	t.Helper()
	kv := store.NewMemoryStore()
	archive := &fakeArchive{}
	svc := NewInterviewSessionService(kv, oracle.NewFallbackOracle(), archive, testConfig())
	return svc, kv, archive
}

func testProfile() model.CandidateProfile {
	return model.CandidateProfile{
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
		Position: "Full Stack Developer",
		Skills:   []string{"React", "Node.js"},
	}
}

func TestCreateSession(t *testing.T) {
	svc, kv, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	assert.NotEmpty(t, session.ID)
	assert.Equal(t, model.StatusInProgress, session.Status)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
	require.Len(t, session.Questions, 1)
	assert.Equal(t, model.DifficultyEasy, session.Questions[0].Difficulty)
	assert.Equal(t, 20, session.Questions[0].TimeLimit)
	assert.Empty(t, session.Answers)
	assert.Empty(t, session.Evaluations)

	// The session is persisted to the active slot.
	_, err = kv.Get(ctx, store.KeyActiveSession)
	assert.NoError(t, err)
}

func TestCreateSessionValidation(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, model.CandidateProfile{Position: "Developer"})
	var verr *ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "full_name", verr.Field)

	_, err = svc.CreateSession(ctx, model.CandidateProfile{FullName: "   ", Position: "Developer"})
	assert.ErrorAs(t, err, &verr)

	_, err = svc.CreateSession(ctx, model.CandidateProfile{FullName: "Ada"})
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "position", verr.Field)
}

func TestSubmitAnswerAdvancesSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	firstQuestionID := session.Questions[0].ID
	session, err = svc.SubmitAnswer(ctx, session, "let is block scoped, var is function scoped", 15)
	require.NoError(t, err)

	assert.Equal(t, 1, session.CurrentQuestionIndex)
	require.Len(t, session.Answers, 1)
	require.Len(t, session.Evaluations, 1)
	require.Len(t, session.Questions, 2)
	assert.Equal(t, firstQuestionID, session.Answers[0].QuestionID)
	assert.Equal(t, firstQuestionID, session.Evaluations[0].QuestionID)
	assert.Equal(t, 15, session.Answers[0].TimeSpentSeconds)
	assert.Equal(t, model.DifficultyEasy, session.Questions[1].Difficulty)
}

func TestFullRunToCompletion(t *testing.T) {
	svc, kv, archive := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	wantDifficulties := []model.Difficulty{
		model.DifficultyEasy, model.DifficultyEasy,
		model.DifficultyMedium, model.DifficultyMedium,
		model.DifficultyHard, model.DifficultyHard,
	}
	wantLimits := []int{20, 20, 60, 60, 120, 120}

	for i := 0; i < model.TotalQuestions; i++ {
		q := session.CurrentQuestion()
		require.NotNil(t, q, "question %d", i)
		assert.Equal(t, wantDifficulties[i], q.Difficulty, "question %d", i)
		assert.Equal(t, wantLimits[i], q.TimeLimit, "question %d", i)
		assert.Equal(t, i, q.Position)

		session, err = svc.SubmitAnswer(ctx, session, "an answer", 10)
		require.NoError(t, err)

		// The answered prefix stays aligned after every submission.
		assert.Len(t, session.Answers, i+1)
		assert.Len(t, session.Evaluations, i+1)
		assert.Equal(t, i+1, session.CurrentQuestionIndex)
	}

	assert.Equal(t, model.StatusCompleted, session.Status)
	assert.Len(t, session.Questions, model.TotalQuestions)
	require.NotNil(t, session.EndTime)
	require.NotNil(t, session.FinalSummary)
	assert.GreaterOrEqual(t, session.FinalSummary.OverallScore, 0)
	assert.LessOrEqual(t, session.FinalSummary.OverallScore, 100)
	assert.NotEmpty(t, session.FinalSummary.Recommendation)
	assert.Nil(t, session.CurrentQuestion())

	// Active slot cleared, completed list holds exactly this session.
	_, err = kv.Get(ctx, store.KeyActiveSession)
	assert.ErrorIs(t, err, store.ErrNotFound)

	completed, err := svc.ListCompletedSessions(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Equal(t, session.ID, completed[0].ID)

	// Archived once for the dashboard.
	require.Len(t, archive.records, 1)
	assert.Equal(t, session.ID, archive.records[0].SessionID)
	assert.Equal(t, "Ada Lovelace", archive.records[0].CandidateName)
	assert.Equal(t, session.FinalSummary.OverallScore, archive.records[0].OverallScore)
	assert.Equal(t, model.TotalQuestions, archive.records[0].QuestionCount)
	assert.NotEmpty(t, archive.records[0].Transcript)
}

func TestSubmitAnswerAfterCompletion(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	for i := 0; i < model.TotalQuestions; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err)
	}

	before := *session
	_, err = svc.SubmitAnswer(ctx, session, "one more", 5)
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, model.StatusCompleted, serr.Status)
	assert.Equal(t, before.CurrentQuestionIndex, session.CurrentQuestionIndex)
	assert.Len(t, session.Answers, model.TotalQuestions)
}

func TestSubmitAnswerWhilePaused(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	session, err = svc.PauseSession(ctx, session)
	require.NoError(t, err)

	_, err = svc.SubmitAnswer(ctx, session, "answer", 5)
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, model.StatusPaused, serr.Status)
	assert.Empty(t, session.Answers)
	assert.Equal(t, 0, session.CurrentQuestionIndex)
}

func TestEmptyAnswerIsAccepted(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	session, err = svc.SubmitAnswer(ctx, session, "", 20)
	require.NoError(t, err)
	require.Len(t, session.Evaluations, 1)
	assert.Equal(t, 0, session.Evaluations[0].Score)
	assert.Equal(t, 1, session.CurrentQuestionIndex)
}

func TestPauseResume(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	session, err = svc.PauseSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPaused, session.Status)
	require.NotNil(t, session.PausedAt)

	// Pausing twice is rejected.
	_, err = svc.PauseSession(ctx, session)
	var serr *InvalidStateError
	assert.ErrorAs(t, err, &serr)

	session, err = svc.ResumeSession(ctx, session)
	require.NoError(t, err)
	assert.Equal(t, model.StatusInProgress, session.Status)
	require.NotNil(t, session.ResumedAt)

	// Resuming a running session is rejected.
	_, err = svc.ResumeSession(ctx, session)
	assert.ErrorAs(t, err, &serr)
}

func TestResumeAccumulatesPausedSeconds(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	session, err = svc.PauseSession(ctx, session)
	require.NoError(t, err)
	pausedAt := time.Now().Add(-30 * time.Second)
	session.PausedAt = &pausedAt

	session, err = svc.ResumeSession(ctx, session)
	require.NoError(t, err)
	assert.GreaterOrEqual(t, session.PausedSeconds, 30)
	assert.LessOrEqual(t, session.PausedSeconds, 31)
}

func TestLoadActiveSessionRoundTrip(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	created, err = svc.SubmitAnswer(ctx, created, "answer one", 12)
	require.NoError(t, err)

	loaded, err := svc.LoadActiveSession(ctx)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, created.ID, loaded.ID)
	assert.Equal(t, created.CurrentQuestionIndex, loaded.CurrentQuestionIndex)
	assert.Equal(t, created.Status, loaded.Status)
	require.Len(t, loaded.Answers, 1)
	assert.Equal(t, "answer one", loaded.Answers[0].Answer)
	assert.Len(t, loaded.Questions, 2)
}

func TestLoadActiveSessionAbsent(t *testing.T) {
	svc, _, _ := newTestService(t)

	loaded, err := svc.LoadActiveSession(context.Background())
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestLoadActiveSessionCorrupted(t *testing.T) {
	svc, kv, _ := newTestService(t)
	ctx := context.Background()

	require.NoError(t, kv.Set(ctx, store.KeyActiveSession, "{not json"))

	loaded, err := svc.LoadActiveSession(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestListCompletedSessionsDegradesToEmpty(t *testing.T) {
	svc, kv, _ := newTestService(t)
	ctx := context.Background()

	completed, err := svc.ListCompletedSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, completed)

	require.NoError(t, kv.Set(ctx, store.KeyCompletedSessions, "][ nope"))
	completed, err = svc.ListCompletedSessions(ctx)
	require.NoError(t, err)
	assert.Empty(t, completed)
}

func TestClearActiveSession(t *testing.T) {
	svc, kv, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	require.NoError(t, svc.ClearActiveSession(ctx))
	_, err = kv.Get(ctx, store.KeyActiveSession)
	assert.ErrorIs(t, err, store.ErrNotFound)

	loaded, err := svc.LoadActiveSession(ctx)
	assert.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestCompletionIsIdempotent(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	for i := 0; i < model.TotalQuestions; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err)
	}

	// Finishing again must not duplicate the completed-list entry.
	impl := svc.(*sessionService)
	impl.finishCompleted(ctx, session)

	completed, err := svc.ListCompletedSessions(ctx)
	require.NoError(t, err)
	assert.Len(t, completed, 1)
}

func TestOracleFailureFallsBack(t *testing.T) {
	kv := store.NewMemoryStore()
	svc := NewInterviewSessionService(kv, failingOracle{}, nil, testConfig())
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	require.Len(t, session.Questions, 1)
	assert.NotEmpty(t, session.Questions[0].Title)

	for i := 0; i < model.TotalQuestions; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err, "submission %d must not surface the oracle failure", i)
	}

	assert.Equal(t, model.StatusCompleted, session.Status)
	require.NotNil(t, session.FinalSummary)
	assert.NotEmpty(t, session.FinalSummary.Recommendation)
}

func TestProgress(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	p := svc.Progress(session)
	assert.Equal(t, 1, p.Current)
	assert.Equal(t, model.TotalQuestions, p.Total)
	assert.Equal(t, 0, p.Completed)
	assert.Equal(t, 0, p.Percentage)

	for i := 0; i < 3; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err)
	}
	p = svc.Progress(session)
	assert.Equal(t, 4, p.Current)
	assert.Equal(t, 3, p.Completed)
	assert.Equal(t, 50, p.Percentage)

	for i := 0; i < 3; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err)
	}
	p = svc.Progress(session)
	assert.Equal(t, model.TotalQuestions, p.Current)
	assert.Equal(t, model.TotalQuestions, p.Completed)
	assert.Equal(t, 100, p.Percentage)
}

func TestRemainingSeconds(t *testing.T) {
	svc, _, _ := newTestService(t)
	now := time.Now()

	session := &model.InterviewSession{
		Status:               model.StatusInProgress,
		CurrentQuestionIndex: 0,
		Questions: []model.Question{{
			TimeLimit:   60,
			GeneratedAt: now.Add(-25 * time.Second),
		}},
	}

	assert.Equal(t, 35, svc.RemainingSeconds(session, now))

	// Time spent paused does not count against the limit.
	session.PausedSeconds = 10
	assert.Equal(t, 45, svc.RemainingSeconds(session, now))

	// While paused, the countdown is frozen at the pause instant.
	pausedAt := now.Add(-5 * time.Second)
	session.Status = model.StatusPaused
	session.PausedAt = &pausedAt
	session.PausedSeconds = 0
	assert.Equal(t, 40, svc.RemainingSeconds(session, now))
	assert.Equal(t, 40, svc.RemainingSeconds(session, now.Add(time.Hour)))
}

func TestRemainingSecondsFloorsAtZero(t *testing.T) {
	svc, _, _ := newTestService(t)
	now := time.Now()

	session := &model.InterviewSession{
		Status:               model.StatusInProgress,
		CurrentQuestionIndex: 0,
		Questions: []model.Question{{
			TimeLimit:   20,
			GeneratedAt: now.Add(-5 * time.Minute),
		}},
	}
	assert.Equal(t, 0, svc.RemainingSeconds(session, now))

	session.Status = model.StatusCompleted
	assert.Equal(t, 0, svc.RemainingSeconds(session, now))
}

func TestSubmitAnswerRejectsStaleCopy(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	// Two requests load independent copies of the same session.
	copy1, err := svc.LoadActiveSession(ctx)
	require.NoError(t, err)
	copy2, err := svc.LoadActiveSession(ctx)
	require.NoError(t, err)

	copy1, err = svc.SubmitAnswer(ctx, copy1, "first answer", 10)
	require.NoError(t, err)
	assert.Equal(t, 1, copy1.CurrentQuestionIndex)

	// The second copy still points at question one; accepting it would
	// overwrite the first answer.
	_, err = svc.SubmitAnswer(ctx, copy2, "second answer", 10)
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)

	persisted, err := svc.LoadActiveSession(ctx)
	require.NoError(t, err)
	require.Len(t, persisted.Answers, 1)
	assert.Equal(t, "first answer", persisted.Answers[0].Answer)
	assert.Equal(t, 1, persisted.CurrentQuestionIndex)
}

func TestSubmitAnswerRejectsCopyOfFinishedSession(t *testing.T) {
	svc, _, archive := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)
	for i := 0; i < model.TotalQuestions-1; i++ {
		session, err = svc.SubmitAnswer(ctx, session, "answer", 5)
		require.NoError(t, err)
	}

	// A copy taken before the final submission completes the interview.
	stale, err := svc.LoadActiveSession(ctx)
	require.NoError(t, err)

	session, err = svc.SubmitAnswer(ctx, session, "final answer", 5)
	require.NoError(t, err)
	require.Equal(t, model.StatusCompleted, session.Status)

	_, err = svc.SubmitAnswer(ctx, stale, "late answer", 5)
	var serr *InvalidStateError
	require.ErrorAs(t, err, &serr)
	assert.Equal(t, model.StatusCompleted, serr.Status)

	completed, err := svc.ListCompletedSessions(ctx)
	require.NoError(t, err)
	require.Len(t, completed, 1)
	assert.Len(t, completed[0].Answers, model.TotalQuestions)
	assert.Len(t, archive.records, 1)
}

func TestConcurrentSubmissionsSerializePerSession(t *testing.T) {
	svc, _, _ := newTestService(t)
	ctx := context.Background()

	session, err := svc.CreateSession(ctx, testProfile())
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 4)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, results[i] = svc.SubmitAnswer(ctx, session, "concurrent answer", 5)
		}(i)
	}
	wg.Wait()

	for i, err := range results {
		assert.NoError(t, err, "submission %d", i)
	}
	// All four landed, in some order, without corrupting alignment.
	assert.Equal(t, 4, session.CurrentQuestionIndex)
	assert.Len(t, session.Answers, 4)
	assert.Len(t, session.Evaluations, 4)
	assert.Len(t, session.Questions, 5)
}
