package oracle

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/lshigami/Petrels/config"
	"github.com/lshigami/Petrels/internal/model"
	"github.com/rs/zerolog/log"
	"google.golang.org/api/option"
)

type geminiOracle struct {
	client *genai.GenerativeModel
	cfg    *config.Config
}

// NewGeminiOracle creates the Gemini-backed oracle. The model is asked for
// JSON-only responses which are parsed into the domain types.
func NewGeminiOracle(cfg *config.Config) (Oracle, error) {
	ctx := context.Background()
	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.GeminiApiKey))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize Gemini client: %w", err)
	}
	m := client.GenerativeModel("gemini-1.5-flash")
	return &geminiOracle{client: m, cfg: cfg}, nil
}

// questionPayload mirrors the JSON shape the model is instructed to return
// when generating a question.
type questionPayload struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Requirements []string `json:"requirements"`
	ExampleCode  string   `json:"example_code,omitempty"`
	ExpectedTime string   `json:"expected_time"`
	Focus        string   `json:"focus"`
}

type evaluationPayload struct {
	Score             int      `json:"score"`
	MaxScore          int      `json:"max_score"`
	Feedback          string   `json:"feedback"`
	Strengths         []string `json:"strengths"`
	Improvements      []string `json:"improvements"`
	TechnicalAccuracy int      `json:"technical_accuracy"`
	Completeness      int      `json:"completeness"`
	Clarity           int      `json:"clarity"`
}

type summaryPayload struct {
	OverallScore        int            `json:"overall_score"`
	Recommendation      string         `json:"recommendation"`
	Summary             string         `json:"summary"`
	TechnicalStrengths  []string       `json:"technical_strengths"`
	AreasForImprovement []string       `json:"areas_for_improvement"`
	SkillAssessment     map[string]int `json:"skill_assessment"`
	DetailedFeedback    string         `json:"detailed_feedback"`
	NextSteps           []string       `json:"next_steps"`
	InterviewerNotes    string         `json:"interviewer_notes"`
}

func (o *geminiOracle) GenerateQuestion(ctx context.Context, difficulty model.Difficulty, position int, profile model.CandidateProfile, prior []model.Question) (*model.Question, error) {
	skills := "general full stack development"
	if len(profile.Skills) > 0 {
		skills = strings.Join(profile.Skills, ", ")
	}
	priorTitles := make([]string, 0, len(prior))
	for _, q := range prior {
		priorTitles = append(priorTitles, q.Title)
	}

	var focusHint string
	switch difficulty {
	case model.DifficultyEasy:
		focusHint = "Focus on fundamentals and basic concepts"
	case model.DifficultyMedium:
		focusHint = "Focus on practical application and problem-solving"
	default:
		focusHint = "Focus on system design, architecture, and advanced concepts"
	}

	var b strings.Builder
	b.WriteString("You are an expert technical interviewer. Always respond with valid JSON only.\n\n")
	fmt.Fprintf(&b, "Generate a %s level technical interview question for a %s position.\n\n", difficulty, positionOrDefault(profile))
	b.WriteString("Candidate context:\n")
	fmt.Fprintf(&b, "- Skills: %s\n", skills)
	fmt.Fprintf(&b, "- Experience: %d years\n\n", profile.Experience)
	fmt.Fprintf(&b, "Question number: %d of %d\n", position+1, model.TotalQuestions)
	fmt.Fprintf(&b, "Previous questions asked: %s\n\n", strings.Join(priorTitles, "; "))
	b.WriteString("Requirements:\n")
	b.WriteString("- The question must be relevant to the candidate's skills\n")
	fmt.Fprintf(&b, "- %s\n", focusHint)
	b.WriteString("- Avoid repeating previous questions\n")
	b.WriteString("- Include specific requirements or constraints\n\n")
	b.WriteString("Return a JSON object with exactly these fields:\n")
	b.WriteString(`{"title": "...", "description": "...", "requirements": ["..."], "example_code": "", "expected_time": "...", "focus": "..."}`)
	b.WriteString("\nReturn only valid JSON without markdown formatting.")

	raw, err := o.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var payload questionPayload
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &payload); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse question JSON from Gemini response")
		return nil, fmt.Errorf("parse question response: %w", err)
	}
	if payload.Title == "" {
		return nil, fmt.Errorf("gemini returned a question without a title")
	}

	return &model.Question{
		Title:        payload.Title,
		Description:  payload.Description,
		Difficulty:   difficulty,
		TimeLimit:    model.TimeLimitFor(difficulty),
		Position:     position,
		Requirements: payload.Requirements,
		ExampleCode:  payload.ExampleCode,
		ExpectedTime: payload.ExpectedTime,
		Focus:        payload.Focus,
	}, nil
}

func (o *geminiOracle) EvaluateAnswer(ctx context.Context, question *model.Question, answer string, profile model.CandidateProfile) (*model.Evaluation, error) {
	maxScore := model.MaxScoreFor(question.Difficulty)

	var b strings.Builder
	b.WriteString("You are an expert technical interviewer evaluating candidate responses. Always respond with valid JSON only.\n\n")
	fmt.Fprintf(&b, "Evaluate this interview answer for a %s position.\n\n", positionOrDefault(profile))
	fmt.Fprintf(&b, "Question: %s\n", question.Title)
	fmt.Fprintf(&b, "Question Description: %s\n", question.Description)
	fmt.Fprintf(&b, "Difficulty: %s\n\n", question.Difficulty)
	fmt.Fprintf(&b, "Candidate's Answer:\n---\n%s\n---\n\n", answer)
	b.WriteString("Evaluate based on technical accuracy, completeness, problem-solving approach and communication clarity.\n\n")
	b.WriteString("Return a JSON object with exactly these fields:\n")
	fmt.Fprintf(&b, `{"score": 0, "max_score": %d, "feedback": "...", "strengths": ["..."], "improvements": ["..."], "technical_accuracy": 0, "completeness": 0, "clarity": 0}`, maxScore)
	fmt.Fprintf(&b, "\n\"score\" must be an integer between 0 and %d; the three sub-scores between 0 and 10.\n", maxScore)
	b.WriteString("Return only valid JSON without markdown formatting.")

	raw, err := o.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var payload evaluationPayload
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &payload); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse evaluation JSON from Gemini response")
		return nil, fmt.Errorf("parse evaluation response: %w", err)
	}

	return &model.Evaluation{
		QuestionID:        question.ID,
		Score:             clampInt(payload.Score, 0, maxScore),
		MaxScore:          maxScore,
		Feedback:          payload.Feedback,
		Strengths:         payload.Strengths,
		Improvements:      payload.Improvements,
		TechnicalAccuracy: clampInt(payload.TechnicalAccuracy, 0, 10),
		Completeness:      clampInt(payload.Completeness, 0, 10),
		Clarity:           clampInt(payload.Clarity, 0, 10),
		EvaluatedAt:       time.Now(),
	}, nil
}

func (o *geminiOracle) GenerateFinalSummary(ctx context.Context, profile model.CandidateProfile, transcript []TranscriptEntry) (*model.FinalSummary, error) {
	totalScore, maxTotal := 0, 0
	for _, entry := range transcript {
		totalScore += entry.Evaluation.Score
		maxTotal += entry.Evaluation.MaxScore
	}
	percentage := 0
	if maxTotal > 0 {
		percentage = int(float64(totalScore)/float64(maxTotal)*100 + 0.5)
	}

	var b strings.Builder
	b.WriteString("You are an expert technical interviewer providing comprehensive candidate assessments. Always respond with valid JSON only.\n\n")
	fmt.Fprintf(&b, "Generate a comprehensive interview summary for a %s candidate.\n\n", positionOrDefault(profile))
	fmt.Fprintf(&b, "Candidate: %s, experience %d years, skills: %s\n", profile.FullName, profile.Experience, strings.Join(profile.Skills, ", "))
	fmt.Fprintf(&b, "Interview performance: %d/%d (%d%%) across %d questions.\n\n", totalScore, maxTotal, percentage, len(transcript))
	b.WriteString("Question details:\n")
	for i, entry := range transcript {
		answer := truncateAnswer(entry.Answer, 200)
		fmt.Fprintf(&b, "Q%d (%s): %s\nAnswer: %s\nScore: %d/%d\n\n",
			i+1, entry.Question.Difficulty, entry.Question.Title, answer, entry.Evaluation.Score, entry.Evaluation.MaxScore)
	}
	b.WriteString("Return a JSON object with exactly these fields:\n")
	fmt.Fprintf(&b, `{"overall_score": %d, "recommendation": "Strong Hire|Hire|Maybe|No Hire", "summary": "...", "technical_strengths": ["..."], "areas_for_improvement": ["..."], "skill_assessment": {"skill": 0}, "detailed_feedback": "...", "next_steps": ["..."], "interviewer_notes": "..."}`, percentage)
	b.WriteString("\nReturn only valid JSON without markdown formatting.")

	raw, err := o.generate(ctx, b.String())
	if err != nil {
		return nil, err
	}

	var payload summaryPayload
	if err := json.Unmarshal([]byte(cleanJSONResponse(raw)), &payload); err != nil {
		log.Warn().Err(err).Str("rawResponse", raw).Msg("Failed to parse summary JSON from Gemini response")
		return nil, fmt.Errorf("parse summary response: %w", err)
	}

	summary := &model.FinalSummary{
		OverallScore:        clampInt(percentage, 0, 100), // numeric score is ours, not the model's
		Recommendation:      payload.Recommendation,
		Summary:             payload.Summary,
		TechnicalStrengths:  payload.TechnicalStrengths,
		AreasForImprovement: payload.AreasForImprovement,
		SkillAssessment:     payload.SkillAssessment,
		DetailedFeedback:    payload.DetailedFeedback,
		NextSteps:           payload.NextSteps,
		InterviewerNotes:    payload.InterviewerNotes,
		GeneratedAt:         time.Now(),
	}
	if summary.Recommendation == "" {
		summary.Recommendation = model.RecommendationFor(summary.OverallScore)
	}
	return summary, nil
}

// generate runs one prompt and concatenates the text parts of the first
// candidate.
func (o *geminiOracle) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := o.client.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("gemini API error: %w", err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("gemini returned no content")
	}
	var full strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if txt, ok := part.(genai.Text); ok {
			full.WriteString(string(txt))
		}
	}
	if full.Len() == 0 {
		return "", fmt.Errorf("gemini returned no text content")
	}
	return full.String(), nil
}

// cleanJSONResponse strips markdown code fences the model sometimes wraps
// around JSON output.
func cleanJSONResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	cleaned = strings.ReplaceAll(cleaned, "```json", "")
	cleaned = strings.ReplaceAll(cleaned, "```", "")
	return strings.TrimSpace(cleaned)
}

// truncateAnswer shortens long answers for the summary prompt, cutting on a
// rune boundary so multibyte text stays valid UTF-8.
func truncateAnswer(answer string, maxRunes int) string {
	runes := []rune(answer)
	if len(runes) <= maxRunes {
		return answer
	}
	return string(runes[:maxRunes]) + "..."
}

func positionOrDefault(profile model.CandidateProfile) string {
	if profile.Position != "" {
		return profile.Position
	}
	return "Full Stack Developer"
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
