package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"upaheart-backend/internal/concierge"
	"upaheart-backend/internal/handlers"
	"upaheart-backend/internal/models"
)

type fakeReplier struct {
	reply string
	err   error
}

func (f *fakeReplier) Reply(_ context.Context, _ string) (string, error) {
	return f.reply, f.err
}

func conciergeRouter(replier *fakeReplier) *gin.Engine {
	gin.SetMode(gin.TestMode)
	h := handlers.NewConciergeHandler(replier)

	router := gin.New()
	router.POST("/concierge", h.Chat)
	return router
}

func TestConciergeChat(t *testing.T) {
	router := conciergeRouter(&fakeReplier{reply: "The lithophane lamp is a lovely anniversary gift."})

	w := postJSON(router, "/concierge", models.ConciergeRequest{Message: "anniversary gift ideas?"})

	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ConciergeResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Reply, "lithophane")
}

func TestConciergeChat_ModelFailureFallsBack(t *testing.T) {
	router := conciergeRouter(&fakeReplier{err: errors.New("model unavailable")})

	w := postJSON(router, "/concierge", models.ConciergeRequest{Message: "hi"})

	// Failures must not surface to the widget.
	assert.Equal(t, http.StatusOK, w.Code)

	var resp models.ConciergeResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, concierge.FallbackReply, resp.Reply)
}

func TestConciergeChat_MissingMessage(t *testing.T) {
	router := conciergeRouter(&fakeReplier{reply: "hello"})

	w := postJSON(router, "/concierge", map[string]string{})

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
