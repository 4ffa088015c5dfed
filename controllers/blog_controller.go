package controllers

import (
	"net/http"

	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
)

// BlogController serves the public read-only pages.
type BlogController struct {
	posts      *services.PostService
	categories *services.CategoryService
	comments   *services.CommentService
	render     *Renderer
	perPage    int
}

func NewBlogController(posts *services.PostService, categories *services.CategoryService, comments *services.CommentService, render *Renderer, perPage int) *BlogController {
	return &BlogController{
		posts:      posts,
		categories: categories,
		comments:   comments,
		render:     render,
		perPage:    perPage,
	}
}

func (bc *BlogController) Index(c *gin.Context) {
	pageNumber, err := utils.ParsePage(c.Query("page"))
	if err != nil {
		bc.render.NotFound(c)
		return
	}

	page, err := bc.posts.ListVisible(c.Request.Context(), pageNumber, bc.perPage)
	if err != nil {
		bc.render.Fail(c, err)
		return
	}

	bc.render.HTML(c, http.StatusOK, views.IndexPage(bc.render.Props(c), page))
}

func (bc *BlogController) CategoryPosts(c *gin.Context) {
	category, err := bc.categories.GetPublishedBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		bc.render.Fail(c, err)
		return
	}

	pageNumber, err := utils.ParsePage(c.Query("page"))
	if err != nil {
		bc.render.NotFound(c)
		return
	}

	page, err := bc.posts.ListVisibleInCategory(c.Request.Context(), category, pageNumber, bc.perPage)
	if err != nil {
		bc.render.Fail(c, err)
		return
	}

	bc.render.HTML(c, http.StatusOK, views.CategoryPage(bc.render.Props(c), category, page))
}

// PostDetail shows a visible post. Hidden posts are 404 for everyone,
// their author included.
func (bc *BlogController) PostDetail(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		bc.render.NotFound(c)
		return
	}

	post, err := bc.posts.GetVisible(c.Request.Context(), postID)
	if err != nil {
		bc.render.Fail(c, err)
		return
	}

	bc.renderDetail(c, http.StatusOK, views.PostDetailData{Post: post})
}

func (bc *BlogController) renderDetail(c *gin.Context, status int, data views.PostDetailData) {
	comments, err := bc.comments.ListForPost(c.Request.Context(), data.Post.ID)
	if err != nil {
		bc.render.Fail(c, err)
		return
	}
	data.Comments = comments

	bc.render.HTML(c, status, views.PostDetailPage(bc.render.Props(c), data))
}
