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

type EnterpriseHandler struct {
	enterpriseUC domain.EnterpriseUsecase
	paging       Paging
}

func NewEnterpriseHandler(r *gin.RouterGroup, enterpriseUC domain.EnterpriseUsecase, paging Paging) {
	handler := &EnterpriseHandler{enterpriseUC: enterpriseUC, paging: paging}

	enterpriseOnly := middleware.RequireRole(domain.RoleEnterprise)

	enterprises := r.Group("/enterprises")
	{
		enterprises.GET("", handler.LoadEnterprisesWithFilter)
		enterprises.POST("", handler.SaveEnterprise)
		enterprises.GET("/profile", handler.LoadProfile)
		enterprises.GET("/:id", handler.LoadEnterprise)
		enterprises.PUT("/:id", enterpriseOnly, handler.UpdateEnterprise)
		enterprises.DELETE("/:id", enterpriseOnly, handler.DeleteEnterprise)
		enterprises.POST("/suggestion/:accountId", enterpriseOnly, handler.SendSuggestion)
	}
}

func enterpriseLinks(id int64) response.Links {
	return response.Links{}.
		Add("self", "%s/enterprises/%d", basePath, id).
		Add("update-enterprise", "%s/enterprises/%d", basePath, id).
		Add("delete-enterprise", "%s/enterprises/%d", basePath, id).
		Add("login-account", "%s/login", basePath).
		Add("profile", docsLink)
}

// LoadEnterprisesWithFilter godoc
// @Summary      Search enterprises
// @Tags         enterprises
// @Produce      json
// @Param        name     query  string  false  "company name fragment"
// @Param        address  query  string  false  "address fragment"
// @Param        page     query  int     false  "zero-based page"
// @Param        size     query  int     false  "page size"
// @Success      200  {object}  response.Response{data=domain.Page[domain.EnterpriseProfile]}
// @Router       /enterprises [get]
func (h *EnterpriseHandler) LoadEnterprisesWithFilter(c *gin.Context) {
	var filter domain.EnterpriseFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		_ = c.Error(apperror.Validation(validation.FieldErrors(err)))
		return
	}
	page, ok := h.paging.bind(c)
	if !ok {
		return
	}

	result, err := h.enterpriseUC.LoadEnterprisesWithFilter(c.Request.Context(), filter, page)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Enterprises", result, response.Links{}.
		Add("self", "%s/enterprises", basePath).
		Add("profile", docsLink))
}

// SaveEnterprise godoc
// @Summary      Register an enterprise
// @Tags         enterprises
// @Accept       json
// @Produce      json
// @Param        request  body      domain.EnterpriseRequest  true  "registration"
// @Success      201      {object}  response.Response{data=domain.EnterpriseProfile}
// @Failure      400      {object}  map[string]string
// @Router       /enterprises [post]
func (h *EnterpriseHandler) SaveEnterprise(c *gin.Context) {
	var req domain.EnterpriseRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.enterpriseUC.SaveEnterprise(c.Request.Context(), &req)
	if err != nil {
		_ = c.Error(err)
		return
	}
	id := profile.Account.ID
	created(c, fmt.Sprintf("%s/enterprises/%d", basePath, id), "Enterprise created", profile, enterpriseLinks(id))
}

// LoadProfile godoc
// @Summary      Load the caller's enterprise
// @Tags         enterprises
// @Produce      json
// @Success      200  {object}  response.Response{data=domain.EnterpriseProfile}
// @Failure      400  {object}  map[string]string
// @Router       /enterprises/profile [get]
// @Security     BearerAuth
func (h *EnterpriseHandler) LoadProfile(c *gin.Context) {
	profile, err := h.enterpriseUC.LoadProfile(c.Request.Context(), middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Enterprise profile", profile, enterpriseLinks(profile.Account.ID))
}

// LoadEnterprise godoc
// @Summary      Load an enterprise by its account id
// @Tags         enterprises
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=domain.EnterpriseProfile}
// @Failure      400  {object}  map[string]string
// @Router       /enterprises/{id} [get]
func (h *EnterpriseHandler) LoadEnterprise(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	profile, err := h.enterpriseUC.LoadEnterprise(c.Request.Context(), id)
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Enterprise", profile, enterpriseLinks(id))
}

// UpdateEnterprise godoc
// @Summary      Update an enterprise
// @Description  The e-mail address cannot change; a different value in the body is ignored.
// @Tags         enterprises
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "account id"
// @Param        request  body      domain.EnterpriseRequest  true  "company data"
// @Success      200      {object}  response.Response{data=domain.EnterpriseProfile}
// @Failure      400      {object}  map[string]string
// @Failure      403      {object}  map[string]string
// @Router       /enterprises/{id} [put]
// @Security     BearerAuth
func (h *EnterpriseHandler) UpdateEnterprise(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}
	var req domain.EnterpriseRequest
	if !bindJSON(c, &req) {
		return
	}

	profile, err := h.enterpriseUC.UpdateEnterprise(c.Request.Context(), id, &req, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Enterprise updated", profile, enterpriseLinks(id))
}

// DeleteEnterprise godoc
// @Summary      Delete an enterprise and its account
// @Tags         enterprises
// @Produce      json
// @Param        id   path      int  true  "account id"
// @Success      200  {object}  response.Response{data=domain.EnterpriseProfile}
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Router       /enterprises/{id} [delete]
// @Security     BearerAuth
func (h *EnterpriseHandler) DeleteEnterprise(c *gin.Context) {
	id, ok := pathID(c, "id", domain.MsgUserNotFound)
	if !ok {
		return
	}

	profile, err := h.enterpriseUC.DeleteEnterprise(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Enterprise deleted", profile, response.Links{}.
		Add("login-account", "%s/login", basePath).
		Add("profile", docsLink))
}

// SendSuggestion godoc
// @Summary      Mail a job offer to a candidate
// @Tags         enterprises
// @Produce      json
// @Param        accountId  path      int  true  "candidate account id"
// @Success      200        {object}  response.Response
// @Failure      400        {object}  map[string]string
// @Failure      403        {object}  map[string]string
// @Router       /enterprises/suggestion/{accountId} [post]
// @Security     BearerAuth
func (h *EnterpriseHandler) SendSuggestion(c *gin.Context) {
	id, ok := pathID(c, "accountId", domain.MsgUserNotFound)
	if !ok {
		return
	}

	if err := h.enterpriseUC.SendSuggestion(c.Request.Context(), id, middleware.Caller(c)); err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Suggestion sent", nil, response.Links{}.
		Add("account", "%s/accounts/%d", basePath, id).
		Add("profile", docsLink))
}
