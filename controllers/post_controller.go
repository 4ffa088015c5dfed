package controllers

import (
	"net/http"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/policy"
	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type PostController struct {
	posts      *services.PostService
	categories *services.CategoryService
	render     *Renderer
	urls       utils.URLs
	log        *zap.SugaredLogger
}

func NewPostController(posts *services.PostService, categories *services.CategoryService, render *Renderer, urls utils.URLs, log *zap.SugaredLogger) *PostController {
	return &PostController{
		posts:      posts,
		categories: categories,
		render:     render,
		urls:       urls,
		log:        log,
	}
}

func (pc *PostController) CreateForm(c *gin.Context) {
	form := models.PostForm{
		PubDate:     pc.posts.Now().Format(models.PubDateLayout),
		IsPublished: true,
	}
	pc.renderForm(c, http.StatusOK, "New post", pc.urls.CreatePost(), form, nil)
}

func (pc *PostController) Create(c *gin.Context) {
	actor := middleware.CurrentActor(c)

	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		pc.renderForm(c, http.StatusUnprocessableEntity, "New post", pc.urls.CreatePost(), form, fieldErrors(&form, err))
		return
	}

	post, err := pc.posts.Create(c.Request.Context(), actor, &form)
	if err != nil {
		if fields, ok := validationFields(err); ok {
			pc.renderForm(c, http.StatusUnprocessableEntity, "New post", pc.urls.CreatePost(), form, fields)
			return
		}
		pc.render.Fail(c, err)
		return
	}

	pc.log.Infow("Post created", "post_id", post.ID, "author_id", actor.ID)
	pc.render.Redirect(c, pc.urls.Profile(actor.Username))
}

func (pc *PostController) EditForm(c *gin.Context) {
	post, ok := pc.loadOwned(c)
	if !ok {
		return
	}
	pc.renderForm(c, http.StatusOK, "Edit post", pc.urls.EditPost(post.ID), models.PostFormFrom(post), nil)
}

func (pc *PostController) Edit(c *gin.Context) {
	post, ok := pc.loadOwned(c)
	if !ok {
		return
	}

	var form models.PostForm
	if err := c.ShouldBind(&form); err != nil {
		pc.renderForm(c, http.StatusUnprocessableEntity, "Edit post", pc.urls.EditPost(post.ID), form, fieldErrors(&form, err))
		return
	}

	if err := pc.posts.Update(c.Request.Context(), middleware.CurrentActor(c), post, &form); err != nil {
		if fields, ok := validationFields(err); ok {
			pc.renderForm(c, http.StatusUnprocessableEntity, "Edit post", pc.urls.EditPost(post.ID), form, fields)
			return
		}
		pc.render.FailForPost(c, err, post.ID)
		return
	}

	pc.render.Redirect(c, pc.urls.PostDetail(post.ID))
}

func (pc *PostController) DeleteForm(c *gin.Context) {
	post, ok := pc.loadOwned(c)
	if !ok {
		return
	}
	pc.render.HTML(c, http.StatusOK, views.DeletePostPage(pc.render.Props(c), post, pc.urls.DeletePost(post.ID)))
}

func (pc *PostController) Delete(c *gin.Context) {
	post, ok := pc.loadOwned(c)
	if !ok {
		return
	}

	actor := middleware.CurrentActor(c)
	if err := pc.posts.Delete(c.Request.Context(), actor, post); err != nil {
		pc.render.FailForPost(c, err, post.ID)
		return
	}

	pc.log.Infow("Post deleted", "post_id", post.ID, "author_id", actor.ID)
	pc.render.Redirect(c, pc.urls.Profile(actor.Username))
}

// loadOwned fetches the post named in the path and checks the actor may
// change it. Non-owners are sent to the post page. It writes the response
// itself when it returns false.
func (pc *PostController) loadOwned(c *gin.Context) (*models.Post, bool) {
	postID, ok := parseID(c, "id")
	if !ok {
		pc.render.NotFound(c)
		return nil, false
	}

	post, err := pc.posts.GetByID(c.Request.Context(), postID)
	if err != nil {
		pc.render.Fail(c, err)
		return nil, false
	}

	if !policy.CanMutate(middleware.CurrentActor(c), post) {
		pc.render.Redirect(c, pc.urls.PostDetail(post.ID))
		return nil, false
	}
	return post, true
}

func (pc *PostController) renderForm(c *gin.Context, status int, heading, action string, form models.PostForm, errs map[string]string) {
	categories, err := pc.categories.ListAll(c.Request.Context())
	if err != nil {
		pc.render.Fail(c, err)
		return
	}

	pc.render.HTML(c, status, views.PostFormPage(pc.render.Props(c), views.PostFormData{
		Heading:    heading,
		Action:     action,
		Form:       form,
		Categories: categories,
		Errors:     errs,
	}))
}
