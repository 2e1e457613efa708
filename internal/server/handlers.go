package server

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/levelup/internal/apperr"
	"github.com/abhisek/levelup/internal/model"
	"github.com/abhisek/levelup/internal/quiz"
)

// GET /api/subjects
func (s *Server) listSubjects(c *gin.Context) {
	subjects, err := s.svc.Catalog.ListSubjects(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"subjects": subjects})
}

// GET /api/subjects/:id
func (s *Server) getSubject(c *gin.Context) {
	subject, err := s.svc.Catalog.GetSubject(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, subject)
}

type assessmentView struct {
	ID               string                 `json:"id"`
	SubjectID        string                 `json:"subject_id"`
	Questions        []model.ClientQuestion `json:"questions"`
	CreatedAt        time.Time              `json:"created_at"`
	Completed        bool                   `json:"completed"`
	CompletedAt      *time.Time             `json:"completed_at,omitempty"`
	Scores           []model.LevelScore     `json:"scores,omitempty"`
	SuggestedLevelID string                 `json:"suggested_level_id,omitempty"`
}

// clientAssessment hides answer keys until the assessment is completed.
func clientAssessment(a *model.Assessment) any {
	if a.Completed() {
		return a
	}
	return assessmentView{
		ID:        a.ID,
		SubjectID: a.SubjectID,
		Questions: model.ClientAssessmentQuestions(a.Questions),
		CreatedAt: a.CreatedAt,
	}
}

// GET /api/subjects/:id/assessments
func (s *Server) listAssessments(c *gin.Context) {
	list, err := s.svc.Assessments.List(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	views := make([]assessmentView, len(list))
	for i, a := range list {
		views[i] = assessmentView{
			ID:               a.ID,
			SubjectID:        a.SubjectID,
			Questions:        []model.ClientQuestion{},
			CreatedAt:        a.CreatedAt,
			Completed:        a.Completed(),
			CompletedAt:      a.CompletedAt,
			Scores:           a.Scores,
			SuggestedLevelID: a.SuggestedLevelID,
		}
	}
	respondOK(c, gin.H{"assessments": views})
}

// POST /api/subjects/:id/assessments
func (s *Server) startAssessment(c *gin.Context) {
	a, err := s.svc.Assessments.Start(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondCreated(c, clientAssessment(a))
}

// GET /api/assessments/:id
func (s *Server) getAssessment(c *gin.Context) {
	a, err := s.svc.Assessments.Get(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, clientAssessment(a))
}

type answersRequest struct {
	Answers          []model.Answer `json:"answers"`
	TimeTakenSeconds int            `json:"time_taken_seconds"`
	Timezone         string         `json:"timezone"`
}

func bindAnswers(c *gin.Context) (answersRequest, bool) {
	var req answersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, apperr.KindInvalidInput.String(), "invalid request body: "+err.Error())
		return req, false
	}
	return req, true
}

// POST /api/assessments/:id
func (s *Server) submitAssessment(c *gin.Context) {
	req, ok := bindAnswers(c)
	if !ok {
		return
	}
	res, err := s.svc.Assessments.Submit(c.Request.Context(), userID(c), c.Param("id"), req.Answers)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{
		"assessment":      res.Assessment,
		"scores":          res.Scores,
		"correct":         res.Correct,
		"total":           res.Total,
		"suggested_level": res.Suggested,
	})
}

// PATCH /api/users/me/subjects/:id
func (s *Server) setCurrentLevel(c *gin.Context) {
	var req struct {
		LevelID string `json:"level_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, apperr.KindInvalidInput.String(), "level_id is required")
		return
	}
	level, err := s.svc.Progress.SetCurrentLevel(c.Request.Context(), userID(c), c.Param("id"), req.LevelID)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"subject_id": c.Param("id"), "current_level": level})
}

// GET /api/stats
func (s *Server) stats(c *gin.Context) {
	st, err := s.svc.Progress.Stats(c.Request.Context(), userID(c))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, st)
}

type quizView struct {
	ID               string                 `json:"id"`
	Category         model.QuizCategory     `json:"category"`
	Questions        []model.ClientQuestion `json:"questions"`
	QuestionCount    int                    `json:"question_count"`
	TimeLimitMinutes int                    `json:"time_limit_minutes,omitempty"`
	CreatedBy        string                 `json:"created_by"`
	CreatedAt        time.Time              `json:"created_at"`
}

func clientQuiz(q *model.Quiz) quizView {
	return quizView{
		ID:               q.ID,
		Category:         q.Category,
		Questions:        model.ClientQuizQuestions(q.Questions),
		QuestionCount:    q.QuestionCount,
		TimeLimitMinutes: q.TimeLimitMinutes,
		CreatedBy:        q.CreatedBy,
		CreatedAt:        q.CreatedAt,
	}
}

func queryInt(c *gin.Context, key string) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return 0, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		abortWith(c, http.StatusBadRequest, apperr.KindInvalidInput.String(), key+" must be an integer")
		return 0, false
	}
	return n, true
}

// GET /api/quizzes?subject_id=&level_id=&search=&mine=true&page=&limit=
func (s *Server) listQuizzes(c *gin.Context) {
	page, ok := queryInt(c, "page")
	if !ok {
		return
	}
	limit, ok := queryInt(c, "limit")
	if !ok {
		return
	}
	req := quiz.ListRequest{
		SubjectID: c.Query("subject_id"),
		LevelID:   c.Query("level_id"),
		Search:    c.Query("search"),
		Page:      page,
		Limit:     limit,
	}
	if c.Query("mine") == "true" {
		req.CreatedBy = userID(c)
	}
	out, err := s.svc.Quizzes.List(c.Request.Context(), req)
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, out)
}

type createQuizRequest struct {
	SubjectID        string `json:"subject_id" binding:"required"`
	LevelID          string `json:"level_id" binding:"required"`
	Topic            string `json:"topic"`
	QuestionCount    int    `json:"question_count"`
	TimeLimitMinutes int    `json:"time_limit_minutes"`
}

// POST /api/quizzes
func (s *Server) createQuiz(c *gin.Context) {
	var req createQuizRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWith(c, http.StatusBadRequest, apperr.KindInvalidInput.String(), "subject_id and level_id are required")
		return
	}
	q, err := s.svc.Quizzes.Create(c.Request.Context(), userID(c), quiz.CreateRequest{
		SubjectID:        req.SubjectID,
		LevelID:          req.LevelID,
		Topic:            req.Topic,
		Count:            req.QuestionCount,
		TimeLimitMinutes: req.TimeLimitMinutes,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondCreated(c, clientQuiz(q))
}

// GET /api/quizzes/:id
func (s *Server) getQuiz(c *gin.Context) {
	q, err := s.svc.Quizzes.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, clientQuiz(q))
}

// POST /api/quizzes/:id/attempts
func (s *Server) submitAttempt(c *gin.Context) {
	req, ok := bindAnswers(c)
	if !ok {
		return
	}
	tz := req.Timezone
	if tz == "" {
		tz = strings.TrimSpace(c.GetHeader(headerTimezone))
	}
	review, err := s.svc.Quizzes.SubmitAttempt(c.Request.Context(), userID(c), c.Param("id"), quiz.SubmitRequest{
		Answers:          req.Answers,
		TimeTakenSeconds: req.TimeTakenSeconds,
		Timezone:         tz,
	})
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondCreated(c, review)
}

// GET /api/attempts?quiz_id=
func (s *Server) listAttempts(c *gin.Context) {
	list, err := s.svc.Quizzes.ListAttempts(c.Request.Context(), userID(c), c.Query("quiz_id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, gin.H{"attempts": list})
}

// GET /api/attempts/:id
func (s *Server) getAttempt(c *gin.Context) {
	review, err := s.svc.Quizzes.GetAttempt(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, review)
}

// POST /api/attempts/:id/feedback
func (s *Server) attemptFeedback(c *gin.Context) {
	fb, err := s.svc.Feedback.ForAttempt(c.Request.Context(), userID(c), c.Param("id"))
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, fb)
}

// POST /api/admin/fix-incomplete-attempts
func (s *Server) repairAttempts(c *gin.Context) {
	report, err := s.svc.Quizzes.RepairFirstAttempts(c.Request.Context())
	if err != nil {
		s.respondError(c, err)
		return
	}
	respondOK(c, report)
}
