package http

import (
	"net/http"
	"strconv"

	"wayfarer/internal/usecase"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/middleware"

	"github.com/gin-gonic/gin"
)

type FeedHandler struct {
	feedUseCase usecase.FeedUseCase
	logger      *logger.Logger
}

func NewFeedHandler(feedUseCase usecase.FeedUseCase, logger *logger.Logger) *FeedHandler {
	return &FeedHandler{
		feedUseCase: feedUseCase,
		logger:      logger,
	}
}

// GetFeed godoc
// @Summary      Get the feed
// @Description  Personalized feed for authenticated users (country interests plus followed accounts, newest lift first); the ten most recent posts for anonymous visitors.
// @Tags         feed
// @Accept       json
// @Produce      json
// @Param        page query int false "Page number (10 posts per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      401  {object}  map[string]string
// @Failure      500  {object}  map[string]string
// @Router       /feed [get]
func (h *FeedHandler) GetFeed(c *gin.Context) {
	userID := middleware.UserID(c)
	page := parsePage(c)

	feedPage, err := h.feedUseCase.BuildFeed(c.Request.Context(), userID, page)
	if err != nil {
		h.logger.Error("feed build failed for user %d: %v", userID, err)
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":       feedPage.Items,
		"page":        feedPage.PageNumber,
		"total_pages": feedPage.TotalPages,
		"has_next":    feedPage.HasNext,
		"has_prev":    feedPage.HasPrev,
	})
}

func parsePage(c *gin.Context) int {
	page := 1
	if raw := c.Query("page"); raw != "" {
		if p, err := strconv.Atoi(raw); err == nil && p > 0 {
			page = p
		}
	}
	return page
}
