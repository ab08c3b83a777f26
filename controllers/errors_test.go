package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"backend/models"

	"github.com/gin-gonic/gin"
)

func respond(t *testing.T, err error) (int, string) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/test", nil)

	respondError(c, err)

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response body: %v", err)
	}
	return w.Code, body.Error
}

func TestRespondErrorStatusMapping(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: bad date", models.ErrValidation), http.StatusBadRequest},
		{fmt.Errorf("%w: no such food", models.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: provider down", models.ErrNetwork), http.StatusBadGateway},
		{fmt.Errorf("%w: bad payload", models.ErrDecode), http.StatusBadGateway},
	}
	for _, c := range cases {
		if code, _ := respond(t, c.err); code != c.want {
			t.Errorf("respondError(%v) = %d, want %d", c.err, code, c.want)
		}
	}
}

// Unclassified errors can carry upstream response bodies and DB detail;
// the client gets a generic message instead.
func TestRespondErrorHidesInternalDetail(t *testing.T) {
	code, msg := respond(t, errors.New(`pq: duplicate key value violates unique constraint "idx_user_date"`))
	if code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", code)
	}
	if msg != "internal server error" {
		t.Errorf("message = %q, want generic", msg)
	}
	if strings.Contains(msg, "idx_user_date") {
		t.Error("internal detail leaked to the client")
	}
}
