package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
	"github.com/yungbote/eventjudge-backend/internal/http/response"
	"github.com/yungbote/eventjudge-backend/internal/requestdata"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type SummaryHandler struct {
	summaryService services.SummaryService
	accessService  services.AccessService
}

func NewSummaryHandler(summaryService services.SummaryService, accessService services.AccessService) *SummaryHandler {
	return &SummaryHandler{summaryService: summaryService, accessService: accessService}
}

func (sh *SummaryHandler) EventSummary(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireMember(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	forceRefresh := c.Query("refresh") == "true"
	summary, err := sh.summaryService.EventSummary(c.Request.Context(), eventID, forceRefresh)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, summary)
}

// ParticipantStats returns the caller's own per-role statistics.
func (sh *SummaryHandler) ParticipantStats(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	rd := requestdata.GetRequestData(c.Request.Context())
	if rd == nil || rd.UserID == uuid.Nil {
		response.RespondServiceError(c, apperrors.ErrUnauthorized)
		return
	}
	if _, err := sh.accessService.RequireMember(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	report, err := sh.summaryService.ParticipantStatistics(c.Request.Context(), rd.UserID, eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, report)
}

func (sh *SummaryHandler) ProjectLeaderboard(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireMember(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	limit := 0
	if v := c.Query("limit"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			limit = parsed
		}
	}

	rankings, err := sh.summaryService.ProjectLeaderboard(c.Request.Context(), eventID, limit)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rankings)
}

func (sh *SummaryHandler) TakeSnapshot(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.accessService.RequireOwnerOrStaff(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	var req struct {
		SnapshotType string `json:"snapshot_type"`
		Notes        string `json:"notes"`
	}
	_ = c.ShouldBindJSON(&req)

	snapshot, err := sh.summaryService.TakeSnapshot(c.Request.Context(), eventID, req.SnapshotType, req.Notes)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, snapshot)
}

func (sh *SummaryHandler) InvalidateCache(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.accessService.RequireOwnerOrStaff(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	deleted, err := sh.summaryService.InvalidateCache(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"deleted_rows": deleted})
}

func (sh *SummaryHandler) RecalculateJudgeWeights(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if err := sh.accessService.RequireOwnerOrStaff(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	weights, err := sh.summaryService.UpdateJudgeWeights(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, weights)
}
