package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"upaheart-backend/internal/concierge"
	"upaheart-backend/internal/models"
)

// Replier produces a single-turn concierge reply.
type Replier interface {
	Reply(ctx context.Context, message string) (string, error)
}

type ConciergeHandler struct {
	replier Replier
}

func NewConciergeHandler(replier Replier) *ConciergeHandler {
	return &ConciergeHandler{replier: replier}
}

// Chat godoc
// @Summary     Ask the gift concierge
// @Description Single-turn completion seeded with the catalog. Model failures return a canned reply so the widget stays interactive.
// @Tags        concierge
// @Accept      json
// @Produce     json
// @Param       request body models.ConciergeRequest true "Shopper message"
// @Success     200 {object} models.ConciergeResponse
// @Failure     400 {object} models.ErrorResponse
// @Router      /concierge [post]
func (h *ConciergeHandler) Chat(c *gin.Context) {
	var req models.ConciergeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse{Error: "invalid request", Message: err.Error()})
		return
	}

	reply, err := h.replier.Reply(c.Request.Context(), req.Message)
	if err != nil {
		log.Printf("Concierge error: %v", err)
		c.JSON(http.StatusOK, models.ConciergeResponse{Reply: concierge.FallbackReply})
		return
	}

	c.JSON(http.StatusOK, models.ConciergeResponse{Reply: reply})
}
