package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/internal/domain"
)

type LoginHandler struct {
	loginUC domain.LoginUsecase
}

func NewLoginHandler(r *gin.RouterGroup, loginUC domain.LoginUsecase, limit gin.HandlerFunc) {
	handler := &LoginHandler{loginUC: loginUC}
	r.POST("/login", limit, handler.Login)
}

// Login godoc
// @Summary      Log in
// @Description  Exchanges e-mail and password for a bearer token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        request  body      domain.LoginRequest  true  "credentials"
// @Success      200      {object}  response.Response{data=domain.LoginResponse}
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /login [post]
func (h *LoginHandler) Login(c *gin.Context) {
	var req domain.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	res, err := h.loginUC.Login(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	links := response.Links{}.Add("profile", docsLink)
	switch res.Role {
	case domain.RoleEnterprise:
		links.Add("self", "%s/enterprises/%d", basePath, res.ID)
	default:
		links.Add("self", "%s/accounts/%d", basePath, res.ID)
	}
	response.Linked(c, http.StatusOK, "Login successful", res, links)
}
