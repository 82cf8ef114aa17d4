package http

import (
	"net/http"
	"strconv"
	"strings"

	"wayfarer/internal/usecase"
	"wayfarer/pkg/apperr"
	"wayfarer/pkg/logger"
	"wayfarer/pkg/middleware"
	"wayfarer/pkg/models"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase usecase.PostUseCase
	voteUseCase usecase.VoteUseCase
	logger      *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, voteUseCase usecase.VoteUseCase, logger *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase: postUseCase,
		voteUseCase: voteUseCase,
		logger:      logger,
	}
}

type CreatePostRequest struct {
	Subject    string `form:"subject" binding:"required"`
	Body       string `form:"body" binding:"required"`
	CountryIDs string `form:"country_ids" binding:"required"`
	Tags       string `form:"tags"`
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a post tagged with countries and tags, with up to 10 photos (5MB each) uploaded to object storage.
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Security     BearerAuth
// @Param        subject formData string true "Post subject"
// @Param        body formData string true "Post body (min 3 characters)"
// @Param        country_ids formData string true "Comma separated country ids"
// @Param        tags formData string false "Comma separated tag names"
// @Param        photos formData file false "Photo files (multiple allowed)"
// @Success      201  {object}  entity.FeedPost
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := middleware.UserID(c)

	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	countryIDs, err := parseIDList(req.CountryIDs)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "country_ids must be a comma separated list of ids"})
		return
	}

	input := usecase.CreatePostInput{
		Subject:    req.Subject,
		Body:       req.Body,
		CountryIDs: countryIDs,
		TagNames:   splitNames(req.Tags),
	}

	if form, err := c.MultipartForm(); err == nil && form != nil {
		input.Photos = form.File["photos"]
	}

	post, err := h.postUseCase.CreatePost(c.Request.Context(), userID, input)
	if err != nil {
		h.logger.Error("post creation failed for user %d: %v", userID, err)
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, post)
}

// GetPost godoc
// @Summary      Get post by ID
// @Description  Post detail with countries, tags, photos and the is_following flag for the requesting user.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        id path int true "Post ID"
// @Success      200  {object}  entity.FeedPost
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [get]
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	post, err := h.postUseCase.GetPost(c.Request.Context(), postID, middleware.UserID(c))
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete post
// @Description  Delete a post with its comments, votes and photos. Only the author can delete.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.postUseCase.DeletePost(c.Request.Context(), postID, middleware.UserID(c)); err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
}

// IncreaseRating godoc
// @Summary      Vote a post up
// @Description  Records an up vote. Repeating the same vote is a no-op; switching from a down vote adds one.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/increase-rating [post]
func (h *PostHandler) IncreaseRating(c *gin.Context) {
	h.vote(c, models.VoteUp)
}

// DowngradeRating godoc
// @Summary      Vote a post down
// @Description  Records a down vote. The rating never drops below zero.
// @Tags         posts
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id path int true "Post ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{id}/downgrade-rating [post]
func (h *PostHandler) DowngradeRating(c *gin.Context) {
	h.vote(c, models.VoteDown)
}

func (h *PostHandler) vote(c *gin.Context, direction models.VoteAction) {
	postID, ok := pathID(c, "id")
	if !ok {
		return
	}
	userID := middleware.UserID(c)

	newRating, err := h.voteUseCase.ApplyVote(c.Request.Context(), userID, postID, direction)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"status": "ok", "new_rating": newRating})
}

// GetUserPosts godoc
// @Summary      Get a user's posts
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        userId path int true "User ID"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /profiles/{userId}/posts [get]
func (h *PostHandler) GetUserPosts(c *gin.Context) {
	authorID, ok := pathID(c, "userId")
	if !ok {
		return
	}

	posts, err := h.postUseCase.ListByAuthor(c.Request.Context(), authorID)
	if err != nil {
		apperr.ToResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"posts": posts, "count": len(posts)})
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": name + " must be a positive integer"})
		return 0, false
	}
	return uint(id), true
}

func parseIDList(raw string) ([]uint, error) {
	parts := strings.Split(raw, ",")
	ids := make([]uint, 0, len(parts))
	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		id, err := strconv.ParseUint(part, 10, 64)
		if err != nil {
			return nil, err
		}
		ids = append(ids, uint(id))
	}
	return ids, nil
}

func splitNames(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	names := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			names = append(names, trimmed)
		}
	}
	return names
}
