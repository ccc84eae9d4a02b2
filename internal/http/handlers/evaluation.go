package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/eventjudge-backend/internal/http/response"
	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/requestdata"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type EvaluationHandler struct {
	evaluationService services.EvaluationService
	accessService     services.AccessService
}

func NewEvaluationHandler(evaluationService services.EvaluationService, accessService services.AccessService) *EvaluationHandler {
	return &EvaluationHandler{evaluationService: evaluationService, accessService: accessService}
}

// CreateEvaluation attributes the evaluation to the authenticated caller;
// the judge is never taken from the request body.
func (eh *EvaluationHandler) CreateEvaluation(c *gin.Context) {
	var req struct {
		Project  string  `json:"project"`
		Criteria string  `json:"criteria"`
		Score    float64 `json:"score"`
		Comment  string  `json:"comment"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	projectID, err := uuid.Parse(req.Project)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	criteriaID, err := uuid.Parse(req.Criteria)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondServiceError(c, apperrors.ErrUnauthorized)
		return
	}

	if _, err := eh.accessService.RequireRefereeForProject(c.Request.Context(), projectID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	evaluation, err := eh.evaluationService.CreateEvaluation(c.Request.Context(), services.CreateEvaluationInput{
		ProjectID:  projectID,
		JudgeID:    rd.UserID,
		CriteriaID: criteriaID,
		Score:      req.Score,
		Comment:    req.Comment,
	})
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, evaluation)
}

func (eh *EvaluationHandler) DeleteEvaluation(c *gin.Context) {
	evaluationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	evaluation, err := eh.evaluationService.GetEvaluation(c.Request.Context(), evaluationID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if _, err := eh.accessService.RequireRefereeForProject(c.Request.Context(), evaluation.ProjectID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	if err := eh.evaluationService.DeleteEvaluation(c.Request.Context(), evaluationID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (eh *EvaluationHandler) ListProjectEvaluations(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("project_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := eh.accessService.RequireRefereeForProject(c.Request.Context(), projectID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	evaluations, err := eh.evaluationService.ListForProject(c.Request.Context(), projectID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, evaluations)
}
