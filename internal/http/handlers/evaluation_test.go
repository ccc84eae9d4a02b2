package handlers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yungbote/eventjudge-backend/internal/data/repos"
	"github.com/yungbote/eventjudge-backend/internal/data/repos/testutil"
	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/http/handlers"
	"github.com/yungbote/eventjudge-backend/internal/requestdata"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

// newEvaluationRouter builds a router around the evaluation handler. The
// caller pointer lets each request in a test run under a different user.
func newEvaluationRouter(tb testing.TB, tx *gorm.DB, caller *uuid.UUID) *gin.Engine {
	tb.Helper()
	gin.SetMode(gin.TestMode)
	log := testutil.Logger(tb)

	evaluationService := services.NewEvaluationService(
		tx,
		log,
		nil,
		repos.NewEventParticipantRepo(tx, log),
		repos.NewProjectWorkRepo(tx, log),
		repos.NewEvaluationCriteriaRepo(tx, log),
		repos.NewEvaluationRepo(tx, log),
	)
	accessService := services.NewAccessService(
		tx,
		log,
		repos.NewEventRepo(tx, log),
		repos.NewEventParticipantRepo(tx, log),
		repos.NewSessionRepo(tx, log),
		repos.NewProjectWorkRepo(tx, log),
	)
	h := handlers.NewEvaluationHandler(evaluationService, accessService)

	r := gin.New()
	r.Use(func(c *gin.Context) {
		ctx := requestdata.WithRequestData(c.Request.Context(), &requestdata.RequestData{UserID: *caller})
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	r.POST("/evaluations", h.CreateEvaluation)
	r.DELETE("/evaluations/:id", h.DeleteEvaluation)
	r.GET("/project/:project_id/evaluations", h.ListProjectEvaluations)
	return r
}

func seedHandlerProject(tb testing.TB, tx *gorm.DB, eventID, participantID uuid.UUID) *types.ProjectWork {
	tb.Helper()
	project := &types.ProjectWork{
		ID:            uuid.New(),
		EventID:       eventID,
		ParticipantID: participantID,
		Title:         "Entry",
		Status:        types.ProjectStatusSubmitted,
		IsPublished:   true,
		SubmittedAt:   time.Now(),
	}
	if err := tx.Create(project).Error; err != nil {
		tb.Fatalf("seed project: %v", err)
	}
	return project
}

func seedHandlerCriteria(tb testing.TB, tx *gorm.DB, eventID uuid.UUID) *types.EvaluationCriteria {
	tb.Helper()
	criteria := &types.EvaluationCriteria{
		ID:       uuid.New(),
		EventID:  eventID,
		Name:     "Design",
		MaxScore: 10,
		Weight:   1,
		IsActive: true,
	}
	if err := tx.Create(criteria).Error; err != nil {
		tb.Fatalf("seed criteria: %v", err)
	}
	return criteria
}

func TestCreateEvaluationRequiresRefereeRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	fix := testutil.SeedEvent(t, tx)
	project := seedHandlerProject(t, tx, fix.Event.ID, fix.Participant.ID)
	criteria := seedHandlerCriteria(t, tx, fix.Event.ID)
	outsider := testutil.SeedUser(t, tx, "outsider-"+uuid.NewString()+"@example.com")

	caller := outsider.ID
	r := newEvaluationRouter(t, tx, &caller)

	body, _ := json.Marshal(gin.H{
		"project":  project.ID.String(),
		"criteria": criteria.ID.String(),
		"score":    7.0,
	})
	req := httptest.NewRequest(http.MethodPost, "/evaluations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("outsider create status = %d, want %d", w.Code, http.StatusForbidden)
	}

	caller = fix.Referee.ID
	req = httptest.NewRequest(http.MethodPost, "/evaluations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("referee create status = %d, body %s", w.Code, w.Body.String())
	}
}

func TestCreateEvaluationAttributesJudgeFromToken(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	fix := testutil.SeedEvent(t, tx)
	project := seedHandlerProject(t, tx, fix.Event.ID, fix.Participant.ID)
	criteria := seedHandlerCriteria(t, tx, fix.Event.ID)

	caller := fix.Referee.ID
	r := newEvaluationRouter(t, tx, &caller)

	// The body names a different judge; the handler must ignore it and
	// attribute the evaluation to the authenticated caller.
	body, _ := json.Marshal(gin.H{
		"project":  project.ID.String(),
		"criteria": criteria.ID.String(),
		"judge":    fix.Owner.ID.String(),
		"score":    8.0,
	})
	req := httptest.NewRequest(http.MethodPost, "/evaluations", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", w.Code, w.Body.String())
	}

	var created types.Evaluation
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode created evaluation: %v", err)
	}
	if created.JudgeID != fix.Referee.ID {
		t.Fatalf("judge = %s, want caller %s", created.JudgeID, fix.Referee.ID)
	}
}

func TestDeleteAndListEvaluationsRequireRefereeRole(t *testing.T) {
	db := testutil.DB(t)
	tx := testutil.Tx(t, db)

	fix := testutil.SeedEvent(t, tx)
	project := seedHandlerProject(t, tx, fix.Event.ID, fix.Participant.ID)
	criteria := seedHandlerCriteria(t, tx, fix.Event.ID)
	outsider := testutil.SeedUser(t, tx, "outsider-"+uuid.NewString()+"@example.com")

	now := time.Now()
	eval := &types.Evaluation{
		ID:          uuid.New(),
		ProjectID:   project.ID,
		JudgeID:     fix.Referee.ID,
		CriteriaID:  criteria.ID,
		Score:       6,
		IsConfirmed: true,
		ConfirmedAt: &now,
		EvaluatedAt: now,
	}
	if err := tx.Create(eval).Error; err != nil {
		t.Fatalf("seed evaluation: %v", err)
	}

	caller := outsider.ID
	r := newEvaluationRouter(t, tx, &caller)

	req := httptest.NewRequest(http.MethodGet, fmt.Sprintf("/project/%s/evaluations", project.ID), nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("outsider list status = %d, want %d", w.Code, http.StatusForbidden)
	}

	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/evaluations/%s", eval.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Fatalf("outsider delete status = %d, want %d", w.Code, http.StatusForbidden)
	}

	caller = fix.Referee.ID
	req = httptest.NewRequest(http.MethodDelete, fmt.Sprintf("/evaluations/%s", eval.ID), nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("referee delete status = %d, body %s", w.Code, w.Body.String())
	}
}
