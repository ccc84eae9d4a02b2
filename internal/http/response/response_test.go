package response

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	apperrors "github.com/yungbote/eventjudge-backend/internal/pkg/errors"
)

func serve(t *testing.T, err error) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.GET("/x", func(c *gin.Context) {
		RespondServiceError(c, err)
	})

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/x", nil))
	return rec
}

func TestRespondServiceErrorSentinels(t *testing.T) {
	cases := []struct {
		err  error
		code int
	}{
		{apperrors.ErrNotFound, http.StatusNotFound},
		{apperrors.ErrForbidden, http.StatusForbidden},
		{apperrors.ErrUnauthorized, http.StatusUnauthorized},
		{apperrors.ErrInvalidArgument, http.StatusBadRequest},
	}
	for _, tc := range cases {
		rec := serve(t, tc.err)
		if rec.Code != tc.code {
			t.Fatalf("%v: unexpected status: got=%d want=%d", tc.err, rec.Code, tc.code)
		}
	}
}

func TestRespondServiceErrorValidationFields(t *testing.T) {
	rec := serve(t, apperrors.Validation("score", "score out of range"))
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusBadRequest)
	}
	if !strings.Contains(rec.Body.String(), `"score"`) {
		t.Fatalf("field map missing from body: %s", rec.Body.String())
	}
}

func TestRespondServiceErrorHidesInternalDetail(t *testing.T) {
	err := fmt.Errorf("failed to load event: pq: password authentication failed for user \"app\"")
	rec := serve(t, err)

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("unexpected status: got=%d want=%d", rec.Code, http.StatusInternalServerError)
	}
	body := rec.Body.String()
	if strings.Contains(body, "password") || strings.Contains(body, "pq:") {
		t.Fatalf("internal error text leaked to the client: %s", body)
	}
	if !strings.Contains(body, "internal error") {
		t.Fatalf("generic message missing: %s", body)
	}
}
