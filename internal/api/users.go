package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"orchestra-platform/internal/dto"
	"orchestra-platform/internal/service"
)

// Login checks the credentials, sets the session cookie and returns the user
// with its token. A wrong username and a wrong password both answer 404.
func Login(users UserService, tokens *service.Tokens, secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in dto.Credentials
		if !bind(c, &in) {
			return
		}
		u, err := users.Authenticate(c.Request.Context(), in.Username, in.Password)
		if err != nil {
			fail(c, err)
			return
		}
		tok, err := tokens.Issue(u)
		if err != nil {
			fail(c, err)
			return
		}
		c.SetCookie(cookieName, tok, int(tokens.TTL().Seconds()), "/", "", secureCookie, true)
		c.JSON(http.StatusOK, dto.Session{User: u, Token: tok})
	}
}

func Logout(secureCookie bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.SetCookie(cookieName, "", -1, "/", "", secureCookie, true)
		c.JSON(http.StatusOK, gin.H{"ok": true})
	}
}

func Me(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		u, err := users.Get(c.Request.Context(), uid(c))
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, u)
	}
}

// GetRole resolves a role code to its name.
func GetRole(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		code, err := strconv.Atoi(c.Param("roleId"))
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "role id must be an integer"})
			return
		}
		name, err := users.Role(code)
		if err != nil {
			fail(c, err)
			return
		}
		c.JSON(http.StatusOK, name)
	}
}

func UpdateUserImage(users UserService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := paramID(c, "id", "User")
		if !ok {
			return
		}
		var in dto.UpdateImage
		if !bind(c, &in) {
			return
		}
		if err := users.UpdateImage(c.Request.Context(), id, in.Image); err != nil {
			fail(c, err)
			return
		}
		updated(c, "User", id)
	}
}

func userResource(users UserService) resource[dto.User, dto.CreateUser, dto.UpdateUser] {
	return resource[dto.User, dto.CreateUser, dto.UpdateUser]{
		label: "User",
		path:  "users",
		svc:   users,
		idOf:  func(u *dto.User) int { return u.ID },
		del: func(c *gin.Context, id int) error {
			return users.Delete(c.Request.Context(), id, actor(c))
		},
	}
}
