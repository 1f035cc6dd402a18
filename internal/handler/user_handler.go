package handler

import (
	"errors"
	"net/http"

	"gamelibrary/webapp/internal/auth"
	"gamelibrary/webapp/internal/services"
	"gamelibrary/webapp/internal/web"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// region --- DTOs ---

// RegisterInput defines the structure for user registration.
type RegisterInput struct {
	Username        string `form:"username" json:"username" binding:"required" example:"testuser"`
	Password        string `form:"password" json:"password" binding:"required,password" example:"Passw0rd1"`
	ConfirmPassword string `form:"confirm_password" json:"confirm_password" binding:"eqfield=Password" example:"Passw0rd1"`
}

// LoginInput defines the structure for user login.
type LoginInput struct {
	Username string `form:"username" json:"username" binding:"required" example:"testuser"`
	Password string `form:"password" json:"password" binding:"required" example:"Passw0rd1"`
}

// TokenResponse carries a session token for API clients.
type TokenResponse struct {
	Token string `json:"token"`
}

// endregion

// region --- Auth pages ---

// RegisterPage renders the registration form.
func (h *Handler) RegisterPage(c *gin.Context) {
	render(c, http.StatusOK, "register.html", gin.H{"Title": "Register", "Form": RegisterInput{}})
}

// Register creates the account and sends the user to the login page.
func (h *Handler) Register(c *gin.Context) {
	var input RegisterInput
	if err := c.ShouldBind(&input); err != nil {
		data := registerFormErrors(err, input)
		data["Title"] = "Register"
		data["Form"] = RegisterInput{Username: input.Username}
		render(c, http.StatusBadRequest, "register.html", data)
		return
	}

	err := services.AddUser(Repo(c), input.Username, input.Password)
	if errors.Is(err, services.ErrNameNotUnique) {
		render(c, http.StatusConflict, "register.html", gin.H{
			"Title":         "Register",
			"Form":          RegisterInput{Username: input.Username},
			"UsernameError": "Username already exists",
		})
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	web.SetFlash(c, "success", "Registration successful, please log in.")
	c.Redirect(http.StatusFound, "/login")
}

func registerFormErrors(err error, input RegisterInput) gin.H {
	data := gin.H{}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		data["UsernameError"] = "Invalid registration form"
		return data
	}
	for _, fe := range verrs {
		switch fe.Field() {
		case "Username":
			data["UsernameError"] = "Your user name is required"
		case "Password":
			if fe.Tag() == "required" {
				data["PasswordError"] = "Your password is required"
			} else {
				data["PasswordError"] = auth.PasswordProblem(input.Password)
			}
		case "ConfirmPassword":
			data["ConfirmError"] = "Passwords must match"
		}
	}
	return data
}

// LoginPage renders the login form.
func (h *Handler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login.html", gin.H{"Title": "Login", "Form": LoginInput{}})
}

// Login starts a session and redirects home. Unknown users and wrong passwords
// get different messages.
func (h *Handler) Login(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBind(&input); err != nil {
		render(c, http.StatusBadRequest, "login.html", gin.H{
			"Title":         "Login",
			"Form":          LoginInput{Username: input.Username},
			"UsernameError": "Username and password are required",
		})
		return
	}

	user, err := services.AuthenticateUser(Repo(c), input.Username, input.Password)
	if err != nil {
		data := gin.H{"Title": "Login", "Form": LoginInput{Username: input.Username}}
		switch {
		case errors.Is(err, services.ErrUnknownUser):
			data["UsernameError"] = "Invalid username, please try again"
		case errors.Is(err, services.ErrAuthentication):
			data["PasswordError"] = "Invalid password, please try again"
		default:
			renderError(c, err)
			return
		}
		render(c, http.StatusUnauthorized, "login.html", data)
		return
	}

	if _, err := h.sessions.Issue(c, user.Username); err != nil {
		renderError(c, err)
		return
	}
	web.SetFlash(c, "success", "You have successfully logged in!")
	c.Redirect(http.StatusFound, "/")
}

// Logout ends the session.
func (h *Handler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	web.SetFlash(c, "success", "You have successfully logged out!")
	c.Redirect(http.StatusFound, "/")
}

// Profile renders the logged-in user's reviews and wishlist.
func (h *Handler) Profile(c *gin.Context) {
	repo := Repo(c)
	user, err := services.GetUser(repo, auth.Username(c))
	if errors.Is(err, services.ErrUnknownUser) {
		h.sessions.Clear(c)
		web.SetFlash(c, "warning", "Username not found, please login again")
		c.Redirect(http.StatusFound, "/login")
		return
	}
	if err != nil {
		renderError(c, err)
		return
	}
	activities, err := services.GetUserActivities(repo, user.Username)
	if err != nil {
		renderError(c, err)
		return
	}
	render(c, http.StatusOK, "profile.html", gin.H{
		"Title":      user.Username,
		"User":       user,
		"Activities": activities,
	})
}

// endregion

// region --- API ---

// APILogin godoc
// @Summary      Log in
// @Description  Authenticates a user and returns a session token usable as a Bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        input  body      LoginInput  true  "Login Info"
// @Success      200    {object}  TokenResponse
// @Failure      400    {object}  ErrorResponse "Invalid input"
// @Failure      401    {object}  ErrorResponse "Invalid password"
// @Failure      404    {object}  ErrorResponse "User not found"
// @Router       /auth/login [post]
func (h *Handler) APILogin(c *gin.Context) {
	var input LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}
	user, err := services.AuthenticateUser(Repo(c), input.Username, input.Password)
	if err != nil {
		respondError(c, err)
		return
	}
	token, err := h.sessions.Issue(c, user.Username)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, TokenResponse{Token: token})
}

// GetMe godoc
// @Summary      Get my profile
// @Description  Returns the authenticated user with their reviews, wishlist and rated games.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  services.Activities
// @Failure      401  {object}  ErrorResponse
// @Router       /me [get]
func (h *Handler) GetMe(c *gin.Context) {
	activities, err := services.GetUserActivities(Repo(c), auth.Username(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, activities)
}

// endregion
