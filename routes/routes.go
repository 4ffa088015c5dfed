package routes

import (
	"net/http"

	"blogicum/config"
	"blogicum/controllers"
	"blogicum/docs"
	"blogicum/handlers"
	"blogicum/middleware"
	"blogicum/services"
	"blogicum/utils"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Controllers struct {
	Blog    *controllers.BlogController
	Post    *controllers.PostController
	Comment *controllers.CommentController
	Profile *controllers.ProfileController
	Auth    *controllers.AuthController
	API     *controllers.APIController
	Live    *handlers.WebSocketHandler
}

// NewRouter builds the whole application on top of db: services,
// controllers, middleware and routes.
func NewRouter(cfg *config.Config, db *gorm.DB, log *zap.SugaredLogger, clock utils.Clock) *gin.Engine {
	urls := utils.URLs{Base: cfg.BasePath}
	render := controllers.NewRenderer(urls, log)
	metrics := middleware.NewMetrics()
	issuer := utils.NewTokenIssuer(cfg.JWTSecret, cfg.SessionTTL, clock)

	userService := services.NewUserService(db)
	categoryService := services.NewCategoryService(db)
	postService := services.NewPostService(db, clock)
	commentService := services.NewCommentService(db, clock)
	hubService := services.NewHubService(log)

	blog := controllers.NewBlogController(postService, categoryService, commentService, render, cfg.PostsPerPage)
	ctrls := Controllers{
		Blog:    blog,
		Post:    controllers.NewPostController(postService, categoryService, render, urls, log),
		Comment: controllers.NewCommentController(postService, commentService, hubService, render, urls, cfg.CommentRequiresVisible),
		Profile: controllers.NewProfileController(userService, postService, render, urls, cfg.ProfilePostsLimit),
		Auth:    controllers.NewAuthController(userService, issuer, render, urls, cfg.SessionCookieName, cfg.IsProd(), log),
		API:     controllers.NewAPIController(postService, categoryService, cfg.PostsPerPage, log),
		Live:    handlers.NewWebSocketHandler(hubService, postService, metrics, cfg.CORSAllowedOrigins, log),
	}

	r := gin.New()
	r.Use(middleware.ErrorHandler(log, render.ServerError))
	r.Use(middleware.RequestID())
	r.Use(middleware.Logger(log))
	r.Use(metrics.Middleware())
	r.Use(middleware.CORS(cfg.CORSAllowedOrigins))
	r.Use(middleware.RateLimit(cfg.RateLimitRPM))
	r.Use(middleware.LoadActor(issuer, userService, cfg.SessionCookieName, log))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metrics.Handler())

	docs.SwaggerInfo.BasePath = cfg.BasePath + "/api/v1"
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.NoRoute(render.NotFound)

	SetupRoutes(r, urls, ctrls)
	return r
}

func SetupRoutes(r *gin.Engine, urls utils.URLs, ctrls Controllers) {
	root := r.Group(urls.Base)

	root.GET("/", ctrls.Blog.Index)
	root.GET("/category/:slug/", ctrls.Blog.CategoryPosts)
	root.GET("/posts/:id/", ctrls.Blog.PostDetail)
	root.GET("/posts/:id/live/", ctrls.Live.HandleLive)
	root.GET("/accounts/profile/:username/", ctrls.Profile.View)

	auth := root.Group("/auth")
	{
		auth.GET("/registration/", ctrls.Auth.RegisterForm)
		auth.POST("/registration/", ctrls.Auth.Register)
		auth.GET("/login/", ctrls.Auth.LoginForm)
		auth.POST("/login/", ctrls.Auth.Login)
		auth.POST("/logout/", ctrls.Auth.Logout)
	}

	private := root.Group("", middleware.LoginRequired(urls))
	{
		private.GET("/edit_profile/", ctrls.Profile.EditForm)
		private.POST("/edit_profile/", ctrls.Profile.Edit)

		private.GET("/posts/create/", ctrls.Post.CreateForm)
		private.POST("/posts/create/", ctrls.Post.Create)
		private.GET("/posts/:id/edit/", ctrls.Post.EditForm)
		private.POST("/posts/:id/edit/", ctrls.Post.Edit)
		private.GET("/posts/:id/delete/", ctrls.Post.DeleteForm)
		private.POST("/posts/:id/delete/", ctrls.Post.Delete)

		private.POST("/posts/:id/comment/", ctrls.Comment.Add)
		private.GET("/posts/:id/edit_comment/:comment_id/", ctrls.Comment.EditForm)
		private.POST("/posts/:id/edit_comment/:comment_id/", ctrls.Comment.Edit)
		private.GET("/posts/:id/delete_comment/:comment_id/", ctrls.Comment.DeleteForm)
		private.POST("/posts/:id/delete_comment/:comment_id/", ctrls.Comment.Delete)
	}

	api := root.Group("/api/v1")
	{
		api.GET("/posts", ctrls.API.ListPosts)
		api.GET("/posts/:id", ctrls.API.GetPost)
		api.GET("/categories/:slug/posts", ctrls.API.CategoryPosts)
	}
}
