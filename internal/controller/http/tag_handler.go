package http

import (
	"net/http"

	"wayfarer/internal/usecase"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/logger"

	"github.com/gin-gonic/gin"
)

type TagHandler struct {
	tagUseCase usecase.TagUseCase
	logger     *logger.Logger
}

func NewTagHandler(tagUseCase usecase.TagUseCase, logger *logger.Logger) *TagHandler {
	return &TagHandler{
		tagUseCase: tagUseCase,
		logger:     logger,
	}
}

// GetTagPosts godoc
// @Summary      Get posts for a tag
// @Tags         tags
// @Accept       json
// @Produce      json
// @Param        id path int true "Tag ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /tags/{id} [get]
func (h *TagHandler) GetTagPosts(c *gin.Context) {
	tagID, ok := pathID(c, "id")
	if !ok {
		return
	}

	posts, err := h.tagUseCase.PostsByTag(c.Request.Context(), tagID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}
