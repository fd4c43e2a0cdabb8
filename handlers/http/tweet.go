package httpHandler

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"tweet-server/inference"
	"tweet-server/repositories"
	"tweet-server/usecases"

	"github.com/gin-gonic/gin"
)

const (
	msgMessageRequired = "Message is required"
	msgMisconfigured   = "Server configuration error. Please contact support."
	msgGenerateFailed  = "Failed to generate tweet. Please try again."
	msgUnexpected      = "An unexpected error occurred. Please try again."
	msgListFailed      = "Failed to fetch tweet history."
	msgNotFound        = "Tweet not found."
	msgDeleteFailed    = "Failed to delete tweet."
)

type generateRequest struct {
	Message string `json:"message"`
	Style   string `json:"style"`
}

type TweetHandler struct {
	useCase *usecases.TweetUseCase
}

func NewTweetHandler(useCase *usecases.TweetUseCase) *TweetHandler {
	return &TweetHandler{
		useCase: useCase,
	}
}

// Generate handles POST /api/generate
func (h *TweetHandler) Generate(c *gin.Context) {
	var req generateRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" {
		fail(c, http.StatusBadRequest, msgMessageRequired)
		return
	}

	tweet, err := h.useCase.GenerateTweet(c.Request.Context(), req.Message, req.Style)
	if err != nil {
		status, msg := generateError(err)
		slog.Error("generate tweet failed",
			slog.Int("status", status),
			slog.String("error", err.Error()),
		)
		fail(c, status, msg)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tweet":   tweet.Content,
		"id":      tweet.ID,
	})
}

// ListTweets handles GET /api/tweets?limit=N
func (h *TweetHandler) ListTweets(c *gin.Context) {
	tweets, err := h.useCase.ListTweets(c.Request.Context(), parseLimit(c.Query("limit")))
	if err != nil {
		slog.Error("list tweets failed", slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, msgListFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"tweets":  tweets,
	})
}

// DeleteTweet handles DELETE /api/tweets/:id
func (h *TweetHandler) DeleteTweet(c *gin.Context) {
	id := c.Param("id")

	if err := h.useCase.DeleteTweet(c.Request.Context(), id); err != nil {
		if errors.Is(err, usecases.ErrTweetNotFound) {
			fail(c, http.StatusNotFound, msgNotFound)
			return
		}
		slog.Error("delete tweet failed", slog.String("id", id), slog.String("error", err.Error()))
		fail(c, http.StatusInternalServerError, msgDeleteFailed)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

func generateError(err error) (int, string) {
	switch {
	case errors.Is(err, usecases.ErrInvalidMessage):
		return http.StatusBadRequest, msgMessageRequired
	case errors.Is(err, inference.ErrMisconfigured):
		return http.StatusInternalServerError, msgMisconfigured
	case errors.Is(err, inference.ErrUpstream):
		return http.StatusInternalServerError, msgGenerateFailed
	default:
		return http.StatusInternalServerError, msgUnexpected
	}
}

// parseLimit reads the leading integer of raw ("10abc" is 10) and falls
// back to the default when there is none or it is not positive.
func parseLimit(raw string) int {
	raw = strings.TrimLeft(raw, " \t\n\r")
	end := 0
	if end < len(raw) && (raw[end] == '+' || raw[end] == '-') {
		end++
	}
	digits := end
	for end < len(raw) && raw[end] >= '0' && raw[end] <= '9' {
		end++
	}
	if end == digits {
		return repositories.DefaultTweetLimit
	}

	limit, err := strconv.Atoi(raw[:end])
	if err != nil || limit <= 0 {
		return repositories.DefaultTweetLimit
	}
	return limit
}

// Recovery turns panics into the 500 error envelope.
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered",
			slog.String("path", c.Request.URL.Path),
			slog.Any("panic", recovered),
		)
		fail(c, http.StatusInternalServerError, msgUnexpected)
	})
}

// fail writes the error envelope and aborts the chain.
func fail(c *gin.Context, status int, msg string) {
	c.AbortWithStatusJSON(status, gin.H{
		"success": false,
		"error":   msg,
	})
}
