package core

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// NewRouter constructs the Gin engine with routes wired.
func NewRouter(cfg Config, users UserRepository, posts PostRepository, tokens *TokenService) *gin.Engine {
	r := gin.New()
	r.Use(RequestLogger())
	r.Use(gin.Recovery())
	r.Use(AuthMiddleware(tokens))

	userService := NewUserService(users, tokens)
	postService := NewPostService(posts, users, cfg.AllowAnonymousPosts)

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/signup", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		user, err := userService.Join(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, user)
	})

	r.POST("/login", func(c *gin.Context) {
		var req struct {
			Username string `json:"username"`
			Password string `json:"password"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		token, err := userService.Login(c.Request.Context(), req.Username, req.Password)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.Header("Authorization", "Bearer "+token)
		c.JSON(http.StatusOK, gin.H{"token": token})
	})

	r.POST("/logout", func(c *gin.Context) {
		if _, ok := requireIdentity(c); !ok {
			return
		}
		if err := tokens.Revoke(c.Request.Context(), bearerToken(c.Request)); err != nil {
			respondServiceError(c, err)
			return
		}
		c.Status(http.StatusNoContent)
	})

	r.GET("/post/:id", func(c *gin.Context) {
		id, ok := postID(c)
		if !ok {
			return
		}
		view, err := postService.FindOne(c.Request.Context(), id)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	r.POST("/post", func(c *gin.Context) {
		// Identity is optional only when anonymous posting is enabled.
		identity, ok := CurrentIdentity(c)
		if !ok && !cfg.AllowAnonymousPosts {
			if _, ok := requireIdentity(c); !ok {
				return
			}
		}

		var in PostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		view, err := postService.Write(c.Request.Context(), in, identity.Username)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	r.PUT("/post/:id", func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}
		id, ok := postID(c)
		if !ok {
			return
		}

		var in PostInput
		if err := c.ShouldBindJSON(&in); err != nil {
			respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid json")
			return
		}

		view, err := postService.Edit(c.Request.Context(), id, in, identity.Username)
		if err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, view)
	})

	r.DELETE("/post/:id", func(c *gin.Context) {
		identity, ok := requireIdentity(c)
		if !ok {
			return
		}
		id, ok := postID(c)
		if !ok {
			return
		}

		if err := postService.Delete(c.Request.Context(), id, identity.Username); err != nil {
			respondServiceError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "post deleted"})
	})

	return r
}

// postID parses the :id path parameter, responding 400 when it is not a
// positive integer.
func postID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		respondError(c, http.StatusBadRequest, "VALIDATION_ERROR", "invalid id")
		return 0, false
	}
	return id, true
}
