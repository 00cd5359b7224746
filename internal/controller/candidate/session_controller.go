package candidate

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/copier"
	"github.com/lshigami/Petrels/internal/dto"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/lshigami/Petrels/internal/service"
	"github.com/rs/zerolog/log"
)

type SessionController struct {
	sessions service.InterviewSessionService
}

func NewSessionController(sessions service.InterviewSessionService) *SessionController {
	return &SessionController{sessions: sessions}
}

// CreateSession godoc
// @Summary (Candidate) Start a new interview session
// @Description Creates a session from the candidate's intake profile and generates the first question.
// @Tags Candidate - Interview Session
// @Accept json
// @Produce json
// @Param profile body dto.CreateSessionRequest true "Candidate profile from intake"
// @Success 201 {object} dto.SessionResponse
// @Failure 400 {object} dto.ErrorResponse "Missing required profile fields"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /sessions [post]
func (c *SessionController) CreateSession(ctx *gin.Context) {
	var req dto.CreateSessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("CreateSession: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	profile := model.CandidateProfile{
		FullName:   req.FullName,
		Email:      req.Email,
		Phone:      req.Phone,
		Position:   req.Position,
		Skills:     req.Skills,
		Experience: req.Experience,
	}

	session, err := c.sessions.CreateSession(ctx.Request.Context(), profile)
	if err != nil {
		c.writeError(ctx, err, "Failed to create interview session")
		return
	}
	ctx.JSON(http.StatusCreated, c.toResponse(session))
}

// GetActiveSession godoc
// @Summary (Candidate) Load the active interview session
// @Description Returns the in-flight session, if any, with progress and remaining time for the pending question. Used for recovery after a page reload.
// @Tags Candidate - Interview Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Router /sessions/active [get]
func (c *SessionController) GetActiveSession(ctx *gin.Context) {
	session, err := c.sessions.LoadActiveSession(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load active session", Details: []string{err.Error()}})
		return
	}
	if session == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No active interview session"})
		return
	}
	ctx.JSON(http.StatusOK, c.toResponse(session))
}

// SubmitAnswer godoc
// @Summary (Candidate) Submit the answer for the current question
// @Description Records the answer, evaluates it, and either advances to the next question or completes the interview. An empty answer is accepted for timed-out questions.
// @Tags Candidate - Interview Session
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswerRequest true "Answer text and time spent"
// @Success 200 {object} dto.SessionResponse "Updated session; check status to know whether the interview completed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request body"
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Failure 409 {object} dto.ErrorResponse "Session is paused or completed"
// @Router /sessions/answer [post]
func (c *SessionController) SubmitAnswer(ctx *gin.Context) {
	var req dto.SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		log.Warn().Err(err).Msg("SubmitAnswer: Failed to bind JSON")
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	session, err := c.sessions.LoadActiveSession(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load active session", Details: []string{err.Error()}})
		return
	}
	if session == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No active interview session"})
		return
	}

	updated, err := c.sessions.SubmitAnswer(ctx.Request.Context(), session, req.Answer, req.TimeSpentSeconds)
	if err != nil {
		c.writeError(ctx, err, "Failed to submit answer")
		return
	}
	ctx.JSON(http.StatusOK, c.toResponse(updated))
}

// PauseSession godoc
// @Summary (Candidate) Pause the active interview session
// @Tags Candidate - Interview Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Failure 409 {object} dto.ErrorResponse "Session is not in progress"
// @Router /sessions/pause [post]
func (c *SessionController) PauseSession(ctx *gin.Context) {
	c.transition(ctx, c.sessions.PauseSession)
}

// ResumeSession godoc
// @Summary (Candidate) Resume a paused interview session
// @Tags Candidate - Interview Session
// @Produce json
// @Success 200 {object} dto.SessionResponse
// @Failure 404 {object} dto.ErrorResponse "No active session"
// @Failure 409 {object} dto.ErrorResponse "Session is not paused"
// @Router /sessions/resume [post]
func (c *SessionController) ResumeSession(ctx *gin.Context) {
	c.transition(ctx, c.sessions.ResumeSession)
}

// ClearActiveSession godoc
// @Summary (Candidate) Discard the active interview session
// @Description Removes the active-session slot without touching completed interviews. Used for an explicit "start over".
// @Tags Candidate - Interview Session
// @Produce json
// @Success 204 "Active session cleared"
// @Failure 500 {object} dto.ErrorResponse "Store failure"
// @Router /sessions/active [delete]
func (c *SessionController) ClearActiveSession(ctx *gin.Context) {
	if err := c.sessions.ClearActiveSession(ctx.Request.Context()); err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to clear active session", Details: []string{err.Error()}})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (c *SessionController) transition(ctx *gin.Context, op func(ctx context.Context, session *model.InterviewSession) (*model.InterviewSession, error)) {
	session, err := c.sessions.LoadActiveSession(ctx.Request.Context())
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to load active session", Details: []string{err.Error()}})
		return
	}
	if session == nil {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: "No active interview session"})
		return
	}

	updated, err := op(ctx.Request.Context(), session)
	if err != nil {
		c.writeError(ctx, err, "Failed to change session state")
		return
	}
	ctx.JSON(http.StatusOK, c.toResponse(updated))
}

func (c *SessionController) toResponse(session *model.InterviewSession) dto.SessionResponse {
	var resp dto.SessionResponse
	if err := copier.Copy(&resp, session); err != nil {
		log.Error().Err(err).Str("sessionID", session.ID).Msg("Error copying session to response DTO")
	}
	resp.Progress = c.sessions.Progress(session)
	resp.RemainingSeconds = c.sessions.RemainingSeconds(session, time.Now())
	return resp
}

func (c *SessionController) writeError(ctx *gin.Context, err error, message string) {
	var validationErr *service.ValidationError
	var stateErr *service.InvalidStateError
	switch {
	case errors.As(err, &validationErr):
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	case errors.As(err, &stateErr):
		ctx.JSON(http.StatusConflict, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	default:
		log.Error().Err(err).Msg(message)
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: message, Details: []string{err.Error()}})
	}
}
