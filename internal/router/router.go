package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4" // import the Echo web framework to handle routing

	"github.com/iliyamo/movie-catalog/internal/handler" // import the handlers that implement the catalog API
)

// RegisterRoutes registers the health check on the provided Echo instance.
// Load balancers and monitoring systems use it to verify that the service
// is up and its store answers.
func RegisterRoutes(e *echo.Echo, h *handler.CatalogHandler) {
	e.GET("/healthz", h.Health)
}

// RegisterCatalog registers the movie, director and genre routes.
// movieMW is applied to the movie reads only (typically the response cache):
// movies never change after seeding, while directors and genres do.
// Collection routes answer with and without the trailing slash.
func RegisterCatalog(e *echo.Echo, h *handler.CatalogHandler, movieMW ...echo.MiddlewareFunc) {
	// Movies are read-only.
	movies := e.Group("/movies", movieMW...)
	movies.GET("", h.ListMovies)
	movies.GET("/", h.ListMovies)
	movies.GET("/:id", h.GetMovie)

	directors := e.Group("/directors")
	directors.GET("", h.ListDirectors)
	directors.GET("/", h.ListDirectors)
	directors.POST("", h.CreateDirector)
	directors.POST("/", h.CreateDirector)
	directors.GET("/:id", h.GetDirector)
	directors.PUT("/:id", h.UpdateDirector)
	directors.DELETE("/:id", h.DeleteDirector)

	genres := e.Group("/genres")
	genres.GET("", h.ListGenres)
	genres.GET("/", h.ListGenres)
	genres.POST("", h.CreateGenre)
	genres.POST("/", h.CreateGenre)
	genres.GET("/:id", h.GetGenre)
	genres.PUT("/:id", h.UpdateGenre)
	genres.DELETE("/:id", h.DeleteGenre)
}
