package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/eventjudge-backend/internal/http/response"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type StatisticsHandler struct {
	statisticsService services.StatisticsService
	accessService     services.AccessService
}

func NewStatisticsHandler(statisticsService services.StatisticsService, accessService services.AccessService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService, accessService: accessService}
}

func (sh *StatisticsHandler) EventStatistics(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	stats, err := sh.statisticsService.EventStatistics(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatisticsHandler) CalculateEventStatistics(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	stats, err := sh.statisticsService.CalculateForEvent(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatisticsHandler) Leaderboard(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	entries, err := sh.statisticsService.Leaderboard(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, entries)
}

func (sh *StatisticsHandler) ListParticipantStatistics(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	rows, err := sh.statisticsService.ListParticipantStatistics(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, rows)
}

func (sh *StatisticsHandler) ParticipantFinalScore(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	participantID, err := uuid.Parse(c.Param("participant_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	row, err := sh.statisticsService.ParticipantFinalScore(c.Request.Context(), eventID, participantID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, row)
}

func (sh *StatisticsHandler) OnlineSessionStatistics(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireRefereeForOnlineSession(c.Request.Context(), sessionID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	stats, err := sh.statisticsService.OnlineSessionStatistics(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}

func (sh *StatisticsHandler) OfflineSessionStatistics(c *gin.Context) {
	sessionID, err := uuid.Parse(c.Param("session_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := sh.accessService.RequireRefereeForOfflineSession(c.Request.Context(), sessionID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	stats, err := sh.statisticsService.OfflineSessionStatistics(c.Request.Context(), sessionID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, stats)
}
