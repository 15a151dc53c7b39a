package handler

import (
	"net/http"

	"anoa.com/campquest/internal/dto"
	"anoa.com/campquest/internal/service"
	"anoa.com/campquest/pkg/response"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BlogHandler struct {
	service service.BlogService
}

func NewBlogHandler(service service.BlogService) *BlogHandler {
	return &BlogHandler{service: service}
}

func (h *BlogHandler) Create(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	var req dto.CreateBlogPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := h.service.CreatePost(c.Request.Context(), userID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, post)
}

func (h *BlogHandler) GetBySlug(c *gin.Context) {
	post, err := h.service.GetPostBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, post)
}

func (h *BlogHandler) List(c *gin.Context) {
	var page dto.Pagination
	if err := c.ShouldBindQuery(&page); err != nil {
		bindError(c, err)
		return
	}

	posts, err := h.service.ListPosts(c.Request.Context(), page)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, posts)
}

func (h *BlogHandler) Update(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req dto.UpdateBlogPostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	post, err := h.service.UpdatePost(c.Request.Context(), userID, c.GetBool("is_admin"), postID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, post)
}

func (h *BlogHandler) Delete(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	if err := h.service.DeletePost(c.Request.Context(), userID, c.GetBool("is_admin"), postID); err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "post deleted"})
}

func (h *BlogHandler) CreateComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	var req dto.CreateCommentInput
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	comment, err := h.service.CreateComment(c.Request.Context(), userID, postID, req)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.Created(c, comment)
}

func (h *BlogHandler) DeleteComment(c *gin.Context) {
	userID, err := response.GetUserID(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	commentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid comment id"})
		return
	}

	if err := h.service.DeleteComment(c.Request.Context(), userID, c.GetBool("is_admin"), commentID); err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, gin.H{"message": "comment deleted"})
}

func (h *BlogHandler) ListComments(c *gin.Context) {
	postID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid post id"})
		return
	}

	comments, err := h.service.ListComments(c.Request.Context(), postID)
	if err != nil {
		serviceError(c, err)
		return
	}

	response.OK(c, comments)
}
