package ginserver

import (
	"errors"
	"net/http"

	gin "github.com/gin-gonic/gin"

	"staybook/internal/domain/identity"
	localidentity "staybook/internal/infra/identity"
)

// AuthHandler exposes the local identity gate. Deployments fronted by an
// external identity provider leave it nil and the routes are not registered.
type AuthHandler struct {
	Gate *localidentity.Gate
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Host     bool   `json:"host"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (h AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var groups []string
	if req.Host {
		groups = append(groups, identity.GroupHosts)
	}
	id, err := h.Gate.Register(c.Request.Context(), req.Email, req.Password, groups...)
	if err != nil {
		if errors.Is(err, localidentity.ErrEmailTaken) {
			c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"user_id": id})
}

func (h AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	token, err := h.Gate.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid email or password"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"token": token})
}

var _ AuthHTTP = AuthHandler{}
