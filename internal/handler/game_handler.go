package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/services"
	"gamelibrary/webapp/internal/web"
	"gamelibrary/webapp/pkg/apperrors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// region --- DTOs ---

// ReviewForm is the review submitted from the game page.
type ReviewForm struct {
	Rating  *int   `form:"rating" json:"rating" binding:"required,min=0,max=5" example:"4"`
	Comment string `form:"comment" json:"comment" binding:"required" example:"Great game"`
}

// PaginatedGameResponse defines the structure for a paginated list of games.
type PaginatedGameResponse struct {
	Data []services.GameSummary `json:"data"`
	Meta PaginationMeta         `json:"meta"`
}

// GenreResponse is a genre in the API.
type GenreResponse struct {
	Name string `json:"name" example:"Action"`
}

// endregion

// region --- Pages ---

// Home renders the landing page.
func (h *Handler) Home(c *gin.Context) {
	total, err := services.GetNumberOfGames(Repo(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "home.html", gin.H{"Title": "Home", "NumGames": total})
}

// Browse renders a page of the whole catalog.
func (h *Handler) Browse(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	repo := Repo(c)

	total, err := services.GetNumberOfGames(repo)
	if err != nil {
		renderError(c, err)
		return
	}
	games, err := services.GetPaginatedGames(repo, page)
	if err != nil {
		renderError(c, err)
		return
	}
	h.renderBrowse(c, "Browse Games", "", "/browse", games, total, page)
}

// BrowseByGenre renders a page of the games tagged with :genre.
func (h *Handler) BrowseByGenre(c *gin.Context) {
	page, err := pageParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	genre := c.Param("genre")
	repo := Repo(c)

	total, err := services.CountGamesByGenre(repo, genre)
	if err != nil {
		renderError(c, err)
		return
	}
	games, err := services.GetPaginatedGamesByGenre(repo, genre, page)
	if err != nil {
		renderError(c, err)
		return
	}
	h.renderBrowse(c, "Browse Games by "+genre, genre, "/browse/genre/"+genre, games, int64(total), page)
}

func (h *Handler) renderBrowse(c *gin.Context, heading, genre, basePath string, games []services.GameSummary, total int64, page int) {
	genres, err := services.GetAllGenres(Repo(c))
	if err != nil {
		renderError(c, err)
		return
	}
	data := gin.H{
		"Title":        heading,
		"Heading":      heading,
		"Games":        games,
		"NumGames":     total,
		"Genres":       genres,
		"CurrentGenre": genre,
	}
	for k, v := range pageLinks(basePath, page, total, services.PageSize) {
		data[k] = v
	}
	render(c, http.StatusOK, "browse.html", data)
}

// Search renders the results for ?search_type=&query=.
func (h *Handler) Search(c *gin.Context) {
	searchType := c.DefaultQuery("search_type", services.SearchByTitle)
	query := c.Query("query")

	games, err := services.SearchGames(Repo(c), searchType, query)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "search.html", gin.H{
		"Title":    "Search Results",
		"Heading":  fmt.Sprintf("Search Results for %q", query),
		"Games":    games,
		"NumGames": len(games),
	})
}

// GameDetail renders the game page.
func (h *Handler) GameDetail(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	h.renderGame(c, id, http.StatusOK, nil)
}

func (h *Handler) renderGame(c *gin.Context, id, status int, formErrors []string) {
	detail, err := services.GetGameDetail(Repo(c), id, auth.Username(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, status, "game.html", gin.H{
		"Title":  detail.Title,
		"Game":   detail,
		"Errors": formErrors,
	})
}

// SubmitReview stores the logged-in user's review and redirects back to the game.
func (h *Handler) SubmitReview(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}

	var form ReviewForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderGame(c, id, http.StatusBadRequest, reviewFormErrors(err))
		return
	}

	err = services.AddReview(Repo(c), auth.Username(c), id, *form.Rating, form.Comment)
	switch {
	case errors.Is(err, services.ErrAlreadyReviewed):
		web.SetFlash(c, "warning", apperrors.Message(err))
	case err != nil:
		renderError(c, err)
		return
	default:
		web.SetFlash(c, "success", "Review submitted successfully!")
	}
	c.Redirect(http.StatusSeeOther, "/game/"+strconv.Itoa(id))
}

func reviewFormErrors(err error) []string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []string{"Rating must be a whole number between 0 and 5."}
	}
	var out []string
	for _, fe := range verrs {
		switch fe.Field() {
		case "Comment":
			out = append(out, "Your comment is required.")
		case "Rating":
			if fe.Tag() == "required" {
				out = append(out, "Your rating is required.")
			} else {
				out = append(out, "Rating must be between 0 and 5.")
			}
		}
	}
	return out
}

// endregion

// region --- API ---

// ListGames godoc
// @Summary      List games
// @Description  Returns one page of the catalog sorted by title, optionally filtered by genre.
// @Tags         games
// @Produce      json
// @Param        page   query     int     false  "Page number" default(1)
// @Param        genre  query     string  false  "Genre name"
// @Success      200    {object}  PaginatedGameResponse
// @Failure      400    {object}  ErrorResponse
// @Router       /games [get]
func (h *Handler) ListGames(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		respondError(c, apperrors.BadRequest("Invalid page number", err))
		return
	}
	repo := Repo(c)

	var (
		games []services.GameSummary
		total int64
	)
	if genre := c.Query("genre"); genre != "" {
		var n int
		if n, err = services.CountGamesByGenre(repo, genre); err == nil {
			total = int64(n)
			games, err = services.GetPaginatedGamesByGenre(repo, genre, page)
		}
	} else {
		if total, err = services.GetNumberOfGames(repo); err == nil {
			games, err = services.GetPaginatedGames(repo, page)
		}
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, NewPaginatedResponse(games, total, page, services.PageSize))
}

// SearchGamesAPI godoc
// @Summary      Search games
// @Description  Searches by title, id, price, genres or publisher. Malformed numeric queries return no results.
// @Tags         games
// @Produce      json
// @Param        search_type  query     string  false  "title | id | price | genres | publisher" default(title)
// @Param        query        query     string  true   "Search text"
// @Success      200          {array}   services.GameSummary
// @Router       /games/search [get]
func (h *Handler) SearchGamesAPI(c *gin.Context) {
	games, err := services.SearchGames(Repo(c), c.DefaultQuery("search_type", services.SearchByTitle), c.Query("query"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// GetGame godoc
// @Summary      Get a game
// @Description  Returns a game with its reviews and average rating.
// @Tags         games
// @Produce      json
// @Param        id   path      int  true  "Game ID"
// @Success      200  {object}  services.GameDetail
// @Failure      400  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse "Game not found"
// @Router       /games/{id} [get]
func (h *Handler) GetGame(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	detail, err := services.GetGameDetail(Repo(c), id, auth.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, detail)
}

// CreateReview godoc
// @Summary      Review a game
// @Description  Adds the authenticated user's review. A user may review a game once.
// @Tags         games
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id     path      int         true  "Game ID"
// @Param        input  body      ReviewForm  true  "Review"
// @Success      201    {object}  services.GameDetail
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse "Game not found"
// @Failure      409    {object}  ErrorResponse "Already reviewed"
// @Router       /games/{id}/reviews [post]
func (h *Handler) CreateReview(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	var input ReviewForm
	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, apperrors.BadRequest(err.Error(), err))
		return
	}
	repo := Repo(c)
	username := auth.Username(c)
	if err := services.AddReview(repo, username, id, *input.Rating, input.Comment); err != nil {
		respondError(c, err)
		return
	}
	detail, err := services.GetGameDetail(repo, id, username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, detail)
}

// ListGenres godoc
// @Summary      List genres
// @Description  Returns every genre sorted by name.
// @Tags         genres
// @Produce      json
// @Success      200  {array}   GenreResponse
// @Router       /genres [get]
func (h *Handler) ListGenres(c *gin.Context) {
	genres, err := services.GetAllGenres(Repo(c))
	if err != nil {
		respondError(c, err)
		return
	}
	out := make([]GenreResponse, 0, len(genres))
	for _, g := range genres {
		out = append(out, GenreResponse{Name: g.Name})
	}
	c.JSON(http.StatusOK, out)
}

// endregion
