// Package router wires middleware, handlers and routes into a gin engine.
package router

import (
	"fmt"
	"net/http"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/handler"
	"gamelibrary/webapp/internal/logger"
	"gamelibrary/webapp/internal/metrics"
	"gamelibrary/webapp/internal/repository"
	"gamelibrary/webapp/internal/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// Deps are the collaborators the HTTP layer needs.
type Deps struct {
	Store    repository.Store
	Sessions *auth.Sessions
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

// New builds the engine with every page, API and operational route.
func New(d Deps) (*gin.Engine, error) {
	if d.Store == nil || d.Sessions == nil {
		return nil, fmt.Errorf("router: store and sessions are required")
	}
	if d.Logger == nil {
		d.Logger = zap.NewNop()
	}
	if err := auth.RegisterValidators(); err != nil {
		return nil, err
	}
	tmpl, err := web.Templates()
	if err != nil {
		return nil, err
	}

	r := gin.New()
	r.Use(gin.Recovery(), logger.GinMiddleware(d.Logger), web.SecureCookies(d.Sessions.Secure()))
	if d.Metrics != nil {
		r.Use(d.Metrics.GinMiddleware())
		r.GET("/metrics", gin.WrapH(d.Metrics.Handler()))
	}
	r.SetHTMLTemplate(tmpl)

	// Swagger route
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Health check endpoint
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	h := handler.New(d.Sessions)
	session := []gin.HandlerFunc{d.Sessions.OptionalAuthMiddleware(), handler.WithRepository(d.Store)}

	// Pages
	pages := r.Group("/", session...)
	{
		pages.GET("/", h.Home)
		pages.GET("/browse", h.Browse)
		pages.GET("/browse/page/:page", h.Browse)
		pages.GET("/browse/genre/:genre", h.BrowseByGenre)
		pages.GET("/browse/genre/:genre/page/:page", h.BrowseByGenre)
		pages.GET("/search", h.Search)
		pages.GET("/game/:id", h.GameDetail)
		pages.POST("/game/:id", auth.LoginRequired(), h.SubmitReview)

		pages.GET("/register", h.RegisterPage)
		pages.POST("/register", h.Register)
		pages.GET("/login", h.LoginPage)
		pages.POST("/login", h.Login)
		pages.GET("/logout", h.Logout)

		member := pages.Group("/", auth.LoginRequired())
		{
			member.GET("/add_to_wishlist/:id", h.AddToWishlist)
			member.POST("/add_to_wishlist/:id", h.AddToWishlist)
			member.POST("/remove/:id", h.RemoveFromWishlist)
			member.GET("/wishlist", h.Wishlist)
			member.GET("/profile", h.Profile)
		}
	}

	// API v1 routes
	apiV1 := r.Group("/api/v1", session...)
	{
		apiV1.POST("/auth/login", h.APILogin)
		apiV1.GET("/games", h.ListGames)
		apiV1.GET("/games/search", h.SearchGamesAPI)
		apiV1.GET("/games/:id", h.GetGame)
		apiV1.GET("/genres", h.ListGenres)

		protected := apiV1.Group("", auth.APIAuthRequired())
		{
			protected.POST("/games/:id/reviews", h.CreateReview)
			protected.GET("/me", h.GetMe)
			protected.GET("/wishlist", h.GetWishlist)
			protected.POST("/wishlist", h.PostWishlist)
			protected.DELETE("/wishlist/:id", h.DeleteWishlist)
		}
	}

	return r, nil
}
