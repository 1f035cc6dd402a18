package handler

import (
	"net/http"
	"strconv"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/services"
	"gamelibrary/webapp/internal/web"

	"github.com/gin-gonic/gin"
)

// WishlistInput names the game to add through the API.
type WishlistInput struct {
	GameID int `json:"game_id" binding:"required" example:"7940"`
}

// region --- Pages ---

// AddToWishlist adds :id to the user's wishlist and returns to the game page.
func (h *Handler) AddToWishlist(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := services.AddGameToWishlist(Repo(c), auth.Username(c), id); err != nil {
		renderError(c, err)
		return
	}
	web.SetFlash(c, "success", "Game added to wishlist!")
	c.Redirect(http.StatusSeeOther, "/game/"+strconv.Itoa(id))
}

// RemoveFromWishlist removes :id and goes back to the form's redirect_url.
func (h *Handler) RemoveFromWishlist(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		renderError(c, err)
		return
	}
	if err := services.RemoveGameFromWishlist(Repo(c), auth.Username(c), id); err != nil {
		renderError(c, err)
		return
	}
	web.SetFlash(c, "success", "Game removed from wishlist!")
	c.Redirect(http.StatusSeeOther, localRedirect(c.PostForm("redirect_url"), "/wishlist"))
}

// Wishlist renders the user's wishlist.
func (h *Handler) Wishlist(c *gin.Context) {
	games, err := services.GetGameWishlist(Repo(c), auth.Username(c))
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "wishlist.html", gin.H{"Title": "Wishlist", "Games": games})
}

// endregion

// region --- API ---

// GetWishlist godoc
// @Summary      Get my wishlist
// @Description  Returns the authenticated user's wishlisted games in the order they were added.
// @Tags         wishlist
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   services.GameSummary
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist [get]
func (h *Handler) GetWishlist(c *gin.Context) {
	games, err := services.GetGameWishlist(Repo(c), auth.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, games)
}

// PostWishlist godoc
// @Summary      Add to my wishlist
// @Tags         wishlist
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        input  body      WishlistInput  true  "Game"
// @Success      201    {array}   services.GameSummary
// @Failure      400    {object}  ErrorResponse
// @Failure      401    {object}  ErrorResponse
// @Failure      404    {object}  ErrorResponse "Game not found"
// @Router       /wishlist [post]
func (h *Handler) PostWishlist(c *gin.Context) {
	var input WishlistInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	repo := Repo(c)
	username := auth.Username(c)
	if err := services.AddGameToWishlist(repo, username, input.GameID); err != nil {
		respondError(c, err)
		return
	}
	games, err := services.GetGameWishlist(repo, username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, games)
}

// DeleteWishlist godoc
// @Summary      Remove from my wishlist
// @Tags         wishlist
// @Security     BearerAuth
// @Param        id   path  int  true  "Game ID"
// @Success      204
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Router       /wishlist/{id} [delete]
func (h *Handler) DeleteWishlist(c *gin.Context) {
	id, err := gameIDParam(c)
	if err != nil {
		respondError(c, err)
		return
	}
	if err := services.RemoveGameFromWishlist(Repo(c), auth.Username(c), id); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// endregion
