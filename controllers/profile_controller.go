package controllers

import (
	"net/http"

	"blogicum/middleware"
	"blogicum/models"
	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
)

type ProfileController struct {
	users  *services.UserService
	posts  *services.PostService
	render *Renderer
	urls   utils.URLs
	limit  int
}

func NewProfileController(users *services.UserService, posts *services.PostService, render *Renderer, urls utils.URLs, limit int) *ProfileController {
	return &ProfileController{
		users:  users,
		posts:  posts,
		render: render,
		urls:   urls,
		limit:  limit,
	}
}

// View lists the user's latest posts whatever their visibility.
func (pc *ProfileController) View(c *gin.Context) {
	user, err := pc.users.GetUserByUsername(c.Request.Context(), c.Param("username"))
	if err != nil {
		pc.render.Fail(c, err)
		return
	}

	posts, err := pc.posts.ListByAuthor(c.Request.Context(), user.ID, pc.limit)
	if err != nil {
		pc.render.Fail(c, err)
		return
	}

	pc.render.HTML(c, http.StatusOK, views.ProfilePage(pc.render.Props(c), user, posts))
}

func (pc *ProfileController) EditForm(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	form := models.ProfileForm{
		FirstName: actor.FirstName,
		LastName:  actor.LastName,
		Username:  actor.Username,
		Email:     actor.Email,
	}
	pc.render.HTML(c, http.StatusOK, views.ProfileFormPage(pc.render.Props(c), form, nil))
}

func (pc *ProfileController) Edit(c *gin.Context) {
	var form models.ProfileForm
	if err := c.ShouldBind(&form); err != nil {
		pc.render.HTML(c, http.StatusUnprocessableEntity, views.ProfileFormPage(pc.render.Props(c), form, fieldErrors(&form, err)))
		return
	}

	user, err := pc.users.UpdateProfile(c.Request.Context(), middleware.CurrentActor(c), &form)
	if err != nil {
		if fields, ok := validationFields(err); ok {
			pc.render.HTML(c, http.StatusUnprocessableEntity, views.ProfileFormPage(pc.render.Props(c), form, fields))
			return
		}
		pc.render.Fail(c, err)
		return
	}

	pc.render.Redirect(c, pc.urls.Profile(user.Username))
}
