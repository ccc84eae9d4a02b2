package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/eventjudge-backend/internal/domain"
	"github.com/yungbote/eventjudge-backend/internal/http/response"
	"github.com/yungbote/eventjudge-backend/internal/services"
)

type RatingHandler struct {
	ratingService services.RatingService
	accessService services.AccessService
}

func NewRatingHandler(ratingService services.RatingService, accessService services.AccessService) *RatingHandler {
	return &RatingHandler{ratingService: ratingService, accessService: accessService}
}

func (rh *RatingHandler) RateParticipant(c *gin.Context) {
	var req struct {
		Event          string `json:"event"`
		Participant    string `json:"participant"`
		Referee        string `json:"referee"`
		GradingSystem  string `json:"grading_system"`
		Score          int    `json:"score"`
		Comment        string `json:"comment"`
		OnlineSession  string `json:"online_session"`
		OfflineSession string `json:"offline_session"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	eventID, err := uuid.Parse(req.Event)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	participantID, err := uuid.Parse(req.Participant)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	refereeID, err := uuid.Parse(req.Referee)
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	input := services.RateParticipantInput{
		EventID:       eventID,
		ParticipantID: participantID,
		RefereeID:     refereeID,
		GradingSystem: types.GradingSystem(req.GradingSystem),
		Score:         req.Score,
		Comment:       req.Comment,
	}
	if req.OnlineSession != "" {
		id, err := uuid.Parse(req.OnlineSession)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		input.OnlineSessionID = &id
	}
	if req.OfflineSession != "" {
		id, err := uuid.Parse(req.OfflineSession)
		if err != nil {
			response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
			return
		}
		input.OfflineSessionID = &id
	}

	if _, err := rh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	rating, err := rh.ratingService.RateParticipant(c.Request.Context(), input)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondCreated(c, rating)
}

func (rh *RatingHandler) DeleteRating(c *gin.Context) {
	ratingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	rating, err := rh.ratingService.GetRating(c.Request.Context(), ratingID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	if _, err := rh.accessService.RequireReferee(c.Request.Context(), rating.EventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	if err := rh.ratingService.DeleteRating(c.Request.Context(), ratingID); err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"ok": true})
}

func (rh *RatingHandler) ListEventRatings(c *gin.Context) {
	eventID, err := uuid.Parse(c.Param("event_id"))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if _, err := rh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	ratings, err := rh.ratingService.ListRatings(c.Request.Context(), eventID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, ratings)
}

func (rh *RatingHandler) ListParticipantRatings(c *gin.Context) {
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
	if _, err := rh.accessService.RequireReferee(c.Request.Context(), eventID); err != nil {
		response.RespondServiceError(c, err)
		return
	}

	ratings, err := rh.ratingService.ListParticipantRatings(c.Request.Context(), eventID, participantID)
	if err != nil {
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, ratings)
}
