package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/app/services"
	"github.com/edusphere/edusphere/internal/middleware"
	"github.com/edusphere/edusphere/internal/pkg/helpers"
)

// ForumController handles discussion forum operations
type ForumController struct {
	forumService *services.ForumService
}

// NewForumController creates a new ForumController
func NewForumController(forumService *services.ForumService) *ForumController {
	return &ForumController{forumService: forumService}
}

// CreateForum starts a new discussion forum
// @Summary Create a forum
// @Tags forums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateForumRequest true "Forum information"
// @Success 201 {object} dto.APIResponse{data=models.DiscussionForum} "Forum created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Router /forums [post]
func (c *ForumController) CreateForum(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateForumRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	forum, err := c.forumService.Create(ctx, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(forum))
}

// GetForum retrieves a forum and bumps its view count
// @Summary Get forum by ID
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 200 {object} dto.APIResponse{data=models.DiscussionForum} "Forum retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id} [get]
func (c *ForumController) GetForum(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	forum, err := c.forumService.GetByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(forum))
}

// ListForums retrieves forums, pinned first
// @Summary List forums
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param category query string false "Filter by category"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Forums retrieved successfully"
// @Router /forums [get]
func (c *ForumController) ListForums(ctx *gin.Context) {
	var category *string
	if value := ctx.Query("category"); value != "" {
		category = &value
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	forums, total, err := c.forumService.List(ctx, category, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      forums,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// PinForum pins or unpins a forum
// @Summary Pin or unpin a forum
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param pinned query bool false "Pin state" default(true)
// @Success 200 {object} dto.APIResponse "Forum pin state updated"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id}/pin [post]
func (c *ForumController) PinForum(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	pinned := ctx.DefaultQuery("pinned", "true") != "false"

	if err := c.forumService.SetPinned(ctx, id, pinned); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewMessageResponse("Forum pin state updated", nil))
}

// DeleteForum removes a forum and its posts
// @Summary Delete a forum
// @Description Only the forum creator or an admin may delete a forum
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Success 204 "Forum deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id} [delete]
func (c *ForumController) DeleteForum(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.forumService.Delete(ctx, id, userID, middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}

// CreatePost adds a post or a reply to a forum
// @Summary Create a forum post
// @Description Replies reference a top-level post; threads are one level deep
// @Tags forums
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param request body dto.CreateForumPostRequest true "Post content"
// @Success 201 {object} dto.APIResponse{data=models.ForumPost} "Post created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid parent post"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id}/posts [post]
func (c *ForumController) CreatePost(ctx *gin.Context) {
	forumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	var req dto.CreateForumPostRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		middleware.HandleValidationError(ctx, err)
		return
	}

	post, err := c.forumService.CreatePost(ctx, forumID, userID, &req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewAPIResponse(post))
}

// ListPosts retrieves a forum's posts with nested replies
// @Summary List forum posts
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param id path int true "Forum ID"
// @Param page query int false "Page number" default(1)
// @Param size query int false "Page size" default(10)
// @Success 200 {object} dto.APIResponse{data=dto.PagedResponse} "Posts retrieved successfully"
// @Failure 404 {object} dto.ErrorResponse "Forum not found"
// @Router /forums/{id}/posts [get]
func (c *ForumController) ListPosts(ctx *gin.Context) {
	forumID, ok := parseIDParam(ctx, "id")
	if !ok {
		return
	}

	page, size := helpers.ParsePaginationParams(ctx)
	offset, limit := helpers.CalculateOffsetLimit(page, size)

	posts, total, err := c.forumService.ListPosts(ctx, forumID, offset, limit)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(dto.PagedResponse{
		Items:      posts,
		Pagination: helpers.NewPaginationInfo(total, page, size),
	}))
}

// UpvotePost increments a post's upvote count
// @Summary Upvote a post
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 200 {object} dto.APIResponse "Post upvoted successfully"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /forums/posts/{postId}/upvote [post]
func (c *ForumController) UpvotePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	upvotes, err := c.forumService.UpvotePost(ctx, postID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewAPIResponse(gin.H{"upvotes": upvotes}))
}

// DeletePost removes a forum post
// @Summary Delete a forum post
// @Description Only the post author or an admin may delete a post
// @Tags forums
// @Produce json
// @Security BearerAuth
// @Param postId path int true "Post ID"
// @Success 204 "Post deleted successfully"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Post not found"
// @Router /forums/posts/{postId} [delete]
func (c *ForumController) DeletePost(ctx *gin.Context) {
	postID, ok := parseIDParam(ctx, "postId")
	if !ok {
		return
	}

	userID, ok := currentUserID(ctx)
	if !ok {
		return
	}

	if err := c.forumService.DeletePost(ctx, postID, userID, middleware.IsAdmin(ctx)); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
