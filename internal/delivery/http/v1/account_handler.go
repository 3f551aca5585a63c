package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/delivery/http/middleware"
	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/validation"
)

// visitCookieMaxAge keeps a visitor from counting twice within a day.
const visitCookieMaxAge = 24 * 60 * 60

type AccountHandler struct {
	accountUC      domain.AccountUsecase
	verificationUC domain.VerificationUsecase
	paging         Paging
}

func NewAccountHandler(r *gin.RouterGroup, accountUC domain.AccountUsecase, verificationUC domain.VerificationUsecase, paging Paging, limit gin.HandlerFunc) {
	handler := &AccountHandler{accountUC: accountUC, verificationUC: verificationUC, paging: paging}

	userOnly := middleware.RequireRole(domain.RoleUser)
	signedIn := middleware.RequireRole(domain.RoleUser, domain.RoleEnterprise)

	accounts := r.Group("/accounts")
	{
		accounts.GET("", handler.LoadAccountsWithFilter)
		accounts.POST("", handler.SaveAccount)
		accounts.GET("/profile", handler.LoadProfile)
		accounts.POST("/sendCode", limit, handler.SendCode)
		accounts.PUT("/matchCode", limit, handler.MatchCode)
		accounts.GET("/:id", handler.LoadAccount)
		accounts.PUT("/:id", userOnly, handler.UpdateAccount)
		accounts.DELETE("/:id", userOnly, handler.DeleteAccount)
		accounts.POST("/:id/favorite", signedIn, handler.Favorite)
		accounts.GET("/:id/favorite", handler.ListFavoriteUsers)
	}
}

func accountLinks(id int64) response.Links {
	return response.Links{}.
		Add("self", "%s/accounts/%d", basePath, id).
		Add("update-account", "%s/accounts/%d", basePath, id).
		Add("delete-account", "%s/accounts/%d", basePath, id).
		Add("login-account", "%s/login", basePath).
		Add("profile", docsLink)
}

// LoadAccountsWithFilter godoc
// @Summary      Search accounts
// @Description  Filters USER accounts by optional criteria. Blank criteria are ignored.
// @Tags         accounts
// @Produce      json
// @Param        nickName          query  string  false  "nickname fragment"
// @Param        oneLineIntroduce  query  string  false  "introduction fragment"
// @Param        career            query  string  false  "exact career"
// @Param        positions         query  string  false  "position fragment"
// @Param        technology        query  string  false  "exact technology tag"
// @Param        orderBy           query  string  false  "favorite | hits | createdAt (default)"
// @Param        page              query  int     false  "zero-based page"
// @Param        size              query  int     false  "page size"
// @Success      200  {object}  response.Response{data=domain.Page[domain.Account]}
// @Router       /accounts [get]
func (h *AccountHandler) LoadAccountsWithFilter(c *gin.Context) {
	var filter domain.AccountFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(apperror.Validation(validation.FieldErrors(err)))
		return
	}
	page, ok := h.paging.bind(c)
	if !ok {
		return
	}

	result, err := h.accountUC.LoadAccountsWithFilter(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Accounts", result, response.Links{}.
		Add("self", "%s%s", basePath, "/accounts").
		Add("profile", docsLink))
}

// SaveAccount godoc
// @Summary      Register an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      domain.AccountInitialRequest  true  "registration"
// @Success      201      {object}  response.Response{data=domain.Account}
// @Failure      400      {object}  map[string]string
// @Router       /accounts [post]
func (h *AccountHandler) SaveAccount(c *gin.Context) {
	var req domain.AccountInitialRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountUC.SaveAccount(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, fmt.Sprintf("%s/accounts/%d", basePath, account.ID), "Account created", account, accountLinks(account.ID))
}

// LoadProfile godoc
// @Summary      Load the caller's account
// @Tags         accounts
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.Account}
// @Failure      400  {object}  map[string]string
// @Router       /accounts/profile [get]
// @Security     BearerAuth
func (h *AccountHandler) LoadProfile(c *gin.Context) {
	account, err := h.accountUC.LoadProfile(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Account profile", account, accountLinks(account.ID))
}

// LoadAccount godoc
// @Summary      Load an account
// @Description  The first visit of a browser, tracked by a cookie, increments the hit counter.
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=domain.AccountResponse}
// @Failure      400  {object}  map[string]string
// @Router       /accounts/{id} [get]
// @Security     BearerAuth
func (h *AccountHandler) LoadAccount(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	cookieName := fmt.Sprintf("cookie%d", id)
	_, err := c.Cookie(cookieName)
	firstVisit := err != nil

	account, err := h.accountUC.LoadAccount(c.Request.Context(), id, middleware.Caller(c), firstVisit)
	if err != nil {
		_ = c.Error(err)
		return
	}
	if firstVisit {
		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, "visited", visitCookieMaxAge, "/", "", false, true)
	}
	response.Linked(c, http.StatusOK, "Account", account, accountLinks(id))
}

// UpdateAccount godoc
// @Summary      Update an account
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        id       path      int                    true  "account id"
// @Param        request  body      domain.AccountRequest  true  "profile"
// @Success      200      {object}  response.Response{data=domain.Account}
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /accounts/{id} [put]
// @Security     BearerAuth
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}
	var req domain.AccountRequest
	if !bindJSON(c, &req) {
		return
	}

	account, err := h.accountUC.UpdateAccount(c.Request.Context(), id, &req, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Account updated", account, accountLinks(id))
}

// DeleteAccount godoc
// @Summary      Delete an account with everything it owns
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=domain.Account}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /accounts/{id} [delete]
// @Security     BearerAuth
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	account, err := h.accountUC.DeleteAccount(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Account deleted", account, response.Links{}.
		Add("login-account", "%s/login", basePath).
		Add("profile", docsLink))
}

// SendCode godoc
// @Summary      Mail a registration code
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      domain.SendCodeRequest  true  "address"
// @Success      200      {object}  response.Response{data=domain.VerificationCode}
// @Failure      400      {object}  map[string]string
// @Failure      429      {object}  map[string]string
// @Router       /accounts/sendCode [post]
func (h *AccountHandler) SendCode(c *gin.Context) {
	var req domain.SendCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	code, err := h.verificationUC.SendCode(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Verification code sent", code)
}

// MatchCode godoc
// @Summary      Confirm a registration code
// @Tags         accounts
// @Accept       json
// @Produce      json
// @Param        request  body      domain.MatchCodeRequest  true  "address and code"
// @Success      200      {object}  response.Response{data=domain.VerificationCode}
// @Failure      400      {object}  map[string]string
// @Router       /accounts/matchCode [put]
func (h *AccountHandler) MatchCode(c *gin.Context) {
	var req domain.MatchCodeRequest
	if !bindJSON(c, &req) {
		return
	}

	code, err := h.verificationUC.MatchCode(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Email verified", code)
}

// Favorite godoc
// @Summary      Toggle a favorite
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=domain.AccountResponse}
// @Failure      400  {object}  map[string]string
// @Router       /accounts/{id}/favorite [post]
// @Security     BearerAuth
func (h *AccountHandler) Favorite(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	account, err := h.accountUC.Favorite(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Favorite toggled", account, accountLinks(id))
}

// ListFavoriteUsers godoc
// @Summary      List the accounts that favored an account
// @Tags         accounts
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=[]domain.Account}
// @Failure      400  {object}  map[string]string
// @Router       /accounts/{id}/favorite [get]
func (h *AccountHandler) ListFavoriteUsers(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	users, err := h.accountUC.ListFavoriteUsers(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Favorite users", users, response.Links{}.
		Add("self", "%s/accounts/%d/favorite", basePath, id).
		Add("profile", docsLink))
}
