package controllers

import (
	"net/http"

	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// APIController exposes the public pages as read-only JSON. It applies the
// same visibility rules as the HTML pages.
type APIController struct {
	posts      *services.PostService
	categories *services.CategoryService
	perPage    int
	log        *zap.SugaredLogger
}

func NewAPIController(posts *services.PostService, categories *services.CategoryService, perPage int, log *zap.SugaredLogger) *APIController {
	return &APIController{
		posts:      posts,
		categories: categories,
		perPage:    perPage,
		log:        log,
	}
}

type PostListResponse struct {
	Data       []models.Post `json:"data"`
	Page       int           `json:"page"`
	TotalPages int           `json:"total_pages"`
	Total      int64         `json:"total"`
}

type PostResponse struct {
	Data models.Post `json:"data"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

func newPostListResponse(page *services.PostPage) PostListResponse {
	posts := page.Posts
	if posts == nil {
		posts = []models.Post{}
	}
	return PostListResponse{
		Data:       posts,
		Page:       page.Page.Number,
		TotalPages: page.Page.TotalPages,
		Total:      page.Page.Total,
	}
}

// ListPosts godoc
// @Summary List visible posts
// @Tags posts
// @Produce json
// @Param page query int false "Page number"
// @Success 200 {object} PostListResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts [get]
func (ac *APIController) ListPosts(c *gin.Context) {
	pageNumber, err := utils.ParsePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
		return
	}

	page, err := ac.posts.ListVisible(c.Request.Context(), pageNumber, ac.perPage)
	if err != nil {
		ac.fail(c, err, "Page not found")
		return
	}

	c.JSON(http.StatusOK, newPostListResponse(page))
}

// GetPost godoc
// @Summary Get a visible post
// @Tags posts
// @Produce json
// @Param id path int true "Post ID"
// @Success 200 {object} PostResponse
// @Failure 404 {object} ErrorResponse
// @Router /posts/{id} [get]
func (ac *APIController) GetPost(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Post not found"})
		return
	}

	post, err := ac.posts.GetVisible(c.Request.Context(), postID)
	if err != nil {
		ac.fail(c, err, "Post not found")
		return
	}

	c.JSON(http.StatusOK, PostResponse{Data: *post})
}

// CategoryPosts godoc
// @Summary List visible posts in a published category
// @Tags categories
// @Produce json
// @Param slug path string true "Category slug"
// @Param page query int false "Page number"
// @Success 200 {object} PostListResponse
// @Failure 404 {object} ErrorResponse
// @Router /categories/{slug}/posts [get]
func (ac *APIController) CategoryPosts(c *gin.Context) {
	category, err := ac.categories.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		ac.fail(c, err, "Category not found")
		return
	}

	pageNumber, err := utils.ParsePage(c.Query("page"))
	if err != nil {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Page not found"})
		return
	}

	page, err := ac.posts.ListVisibleInCategory(c.Request.Context(), category, pageNumber, ac.perPage)
	if err != nil {
		ac.fail(c, err, "Page not found")
		return
	}

	c.JSON(http.StatusOK, newPostListResponse(page))
}

func (ac *APIController) fail(c *gin.Context, err error, notFoundMsg string) {
	if errors.Is(err, services.ErrNotFound) {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: notFoundMsg})
		return
	}
	_ = c.Error(err)
	ac.log.Errorw("API request failed", "path", c.Request.URL.Path, "error", err)
	c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Internal server error"})
}
