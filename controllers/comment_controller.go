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
)

type CommentController struct {
	posts          *services.PostService
	comments       *services.CommentService
	hub            *services.HubService
	render         *Renderer
	urls           utils.URLs
	requireVisible bool
}

func NewCommentController(posts *services.PostService, comments *services.CommentService, hub *services.HubService, render *Renderer, urls utils.URLs, requireVisible bool) *CommentController {
	return &CommentController{
		posts:          posts,
		comments:       comments,
		hub:            hub,
		render:         render,
		urls:           urls,
		requireVisible: requireVisible,
	}
}

// Add attaches a comment to any existing post. With requireVisible set the
// post must also be publicly visible.
func (cc *CommentController) Add(c *gin.Context) {
	postID, ok := parseID(c, "id")
	if !ok {
		cc.render.NotFound(c)
		return
	}

	ctx := c.Request.Context()
	var (
		post *models.Post
		err  error
	)
	if cc.requireVisible {
		post, err = cc.posts.GetVisible(ctx, postID)
	} else {
		post, err = cc.posts.GetByID(ctx, postID)
	}
	if err != nil {
		cc.render.Fail(c, err)
		return
	}

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		action := cc.urls.AddComment(post.ID)
		cc.render.HTML(c, http.StatusUnprocessableEntity, views.CommentFormPage(cc.render.Props(c), action, form, fieldErrors(&form, err)))
		return
	}

	comment, err := cc.comments.Create(ctx, middleware.CurrentActor(c), post, &form)
	if err != nil {
		cc.render.FailForPost(c, err, post.ID)
		return
	}

	cc.hub.BroadcastToPost(post.ID, models.EventCommentCreated, comment)
	cc.render.Redirect(c, cc.urls.PostDetail(post.ID))
}

func (cc *CommentController) EditForm(c *gin.Context) {
	comment, ok := cc.loadOwned(c)
	if !ok {
		return
	}
	action := cc.urls.EditComment(comment.PostID, comment.ID)
	cc.render.HTML(c, http.StatusOK, views.CommentFormPage(cc.render.Props(c), action, models.CommentForm{Text: comment.Text}, nil))
}

func (cc *CommentController) Edit(c *gin.Context) {
	comment, ok := cc.loadOwned(c)
	if !ok {
		return
	}

	var form models.CommentForm
	if err := c.ShouldBind(&form); err != nil {
		action := cc.urls.EditComment(comment.PostID, comment.ID)
		cc.render.HTML(c, http.StatusUnprocessableEntity, views.CommentFormPage(cc.render.Props(c), action, form, fieldErrors(&form, err)))
		return
	}

	if err := cc.comments.UpdateText(c.Request.Context(), middleware.CurrentActor(c), comment, &form); err != nil {
		cc.render.FailForPost(c, err, comment.PostID)
		return
	}

	comment.Text = form.Text
	cc.hub.BroadcastToPost(comment.PostID, models.EventCommentUpdated, comment)
	cc.render.Redirect(c, cc.urls.PostDetail(comment.PostID))
}

func (cc *CommentController) DeleteForm(c *gin.Context) {
	comment, ok := cc.loadOwned(c)
	if !ok {
		return
	}
	action := cc.urls.DeleteComment(comment.PostID, comment.ID)
	cc.render.HTML(c, http.StatusOK, views.DeleteCommentPage(cc.render.Props(c), comment, action))
}

func (cc *CommentController) Delete(c *gin.Context) {
	comment, ok := cc.loadOwned(c)
	if !ok {
		return
	}

	if err := cc.comments.Delete(c.Request.Context(), middleware.CurrentActor(c), comment); err != nil {
		cc.render.FailForPost(c, err, comment.PostID)
		return
	}

	cc.hub.BroadcastToPost(comment.PostID, models.EventCommentDeleted, gin.H{"id": comment.ID})
	cc.render.Redirect(c, cc.urls.PostDetail(comment.PostID))
}

// loadOwned resolves the comment through its post and checks the actor
// wrote it. It writes the response itself when it returns false.
func (cc *CommentController) loadOwned(c *gin.Context) (*models.Comment, bool) {
	postID, ok := parseID(c, "id")
	if !ok {
		cc.render.NotFound(c)
		return nil, false
	}
	commentID, ok := parseID(c, "comment_id")
	if !ok {
		cc.render.NotFound(c)
		return nil, false
	}

	comment, err := cc.comments.GetForPost(c.Request.Context(), postID, commentID)
	if err != nil {
		cc.render.Fail(c, err)
		return nil, false
	}

	if !policy.CanMutate(middleware.CurrentActor(c), comment) {
		cc.render.Redirect(c, cc.urls.PostDetail(postID))
		return nil, false
	}
	return comment, true
}
