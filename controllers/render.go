package controllers

import (
	"bytes"
	"net/http"
	"reflect"
	"strconv"

	"blogicum/middleware"
	"blogicum/services"
	"blogicum/utils"
	"blogicum/views"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	g "github.com/maragudk/gomponents"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

// Renderer writes gomponents pages and the shared error pages.
type Renderer struct {
	urls utils.URLs
	log  *zap.SugaredLogger
}

func NewRenderer(urls utils.URLs, log *zap.SugaredLogger) *Renderer {
	return &Renderer{urls: urls, log: log}
}

func (r *Renderer) Props(c *gin.Context) views.LayoutProps {
	return views.LayoutProps{CurrentUser: middleware.CurrentActor(c), URLs: r.urls}
}

func (r *Renderer) HTML(c *gin.Context, status int, node g.Node) {
	var buf bytes.Buffer
	if err := node.Render(&buf); err != nil {
		r.log.Errorw("Failed to render page", "path", c.Request.URL.Path, "error", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}

func (r *Renderer) NotFound(c *gin.Context) {
	r.HTML(c, http.StatusNotFound, views.NotFoundPage(r.Props(c)))
}

func (r *Renderer) ServerError(c *gin.Context) {
	r.HTML(c, http.StatusInternalServerError, views.ErrorPage(r.Props(c)))
}

// Fail maps a service error onto a response. Validation errors are the
// caller's job since they need the form re-rendered.
func (r *Renderer) Fail(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNotFound):
		r.NotFound(c)
	default:
		_ = c.Error(err)
		r.log.Errorw("Request failed", "path", c.Request.URL.Path, "error", err)
		r.ServerError(c)
	}
}

// FailForPost is Fail for mutations of a post or its comments: a denied
// actor is sent back to the post.
func (r *Renderer) FailForPost(c *gin.Context, err error, postID uint) {
	if errors.Is(err, services.ErrPermissionDenied) {
		r.Redirect(c, r.urls.PostDetail(postID))
		return
	}
	r.Fail(c, err)
}

func (r *Renderer) Redirect(c *gin.Context, location string) {
	c.Redirect(http.StatusSeeOther, location)
}

func parseID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// fieldErrors turns a binding error for form into messages keyed by the
// form field name. Anything that is not a validator error lands in
// "__all__".
func fieldErrors(form interface{}, err error) map[string]string {
	errs := map[string]string{}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		errs["__all__"] = "The form could not be read. Check the values and try again."
		return errs
	}

	formType := reflect.TypeOf(form)
	for formType.Kind() == reflect.Ptr {
		formType = formType.Elem()
	}

	for _, fe := range verrs {
		name := fe.Field()
		if f, ok := formType.FieldByName(fe.StructField()); ok {
			if tag := f.Tag.Get("form"); tag != "" {
				name = tag
			}
		}
		errs[name] = validationMessage(fe)
	}
	return errs
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		return "Ensure this value has at most " + fe.Param() + " characters."
	case "min":
		return "Ensure this value has at least " + fe.Param() + " characters."
	case "email":
		return "Enter a valid email address."
	case "alphanum":
		return "Use letters and digits only."
	default:
		return "Enter a valid value."
	}
}

// validationFields unwraps a *services.ValidationError.
func validationFields(err error) (map[string]string, bool) {
	var verr *services.ValidationError
	if errors.As(err, &verr) {
		return verr.Fields, true
	}
	return nil, false
}
