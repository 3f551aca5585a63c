package v1

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"pickme-backend/internal/delivery/http/middleware"
	"pickme-backend/internal/delivery/http/response"
	"pickme-backend/internal/domain"
)

// ResourceHandler serves create/update/delete of one account-owned record type under path.
// Q is the request struct; R is its pointer, which the usecase takes.
type ResourceHandler[T domain.Owned, Q any, R interface {
	*Q
	domain.ResourceRequest[T]
}] struct {
	uc       domain.ResourceUsecase[T, R]
	path     string
	notFound string
}

func NewResourceHandler[T domain.Owned, Q any, R interface {
	*Q
	domain.ResourceRequest[T]
}](r *gin.RouterGroup, path, notFound string, uc domain.ResourceUsecase[T, R]) {
	handler := &ResourceHandler[T, Q, R]{uc: uc, path: path, notFound: notFound}

	group := r.Group(path, middleware.RequireRole(domain.RoleUser))
	{
		group.POST("", handler.Save)
		group.PUT("/:id", handler.Update)
		group.DELETE("/:id", handler.Delete)
	}
}

// RegisterResources mounts the handlers of every sub-resource type.
func RegisterResources(r *gin.RouterGroup, deps RouterDeps) {
	NewResourceHandler[*domain.Experience, domain.ExperienceRequest](r, "/experiences", domain.MsgExperienceNotFound, deps.ExperienceUC)
	NewResourceHandler[*domain.License, domain.LicenseRequest](r, "/licenses", domain.MsgLicenseNotFound, deps.LicenseUC)
	NewResourceHandler[*domain.Prize, domain.PrizeRequest](r, "/prizes", domain.MsgPrizeNotFound, deps.PrizeUC)
	NewResourceHandler[*domain.Project, domain.ProjectRequest](r, "/projects", domain.MsgProjectNotFound, deps.ProjectUC)
	NewResourceHandler[*domain.SelfInterview, domain.SelfInterviewRequest](r, "/selfInterviews", domain.MsgSelfInterviewNotFound, deps.SelfInterviewUC)
}

func (h *ResourceHandler[T, Q, R]) links(item T) response.Links {
	ref := item.Ref()
	return response.Links{}.
		Add("self", "%s%s/%d", basePath, h.path, ref.ID).
		Add("account", "%s/accounts/%d", basePath, ref.AccountID).
		Add("profile", docsLink)
}

// Save godoc
// @Summary      Add a record to the caller's profile
// @Description  One route per type: experiences, licenses, prizes, projects, selfInterviews.
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        request  body      domain.ExperienceRequest  true  "record"
// @Success      201      {object}  response.Response{data=domain.Experience}
// @Failure      400      {object}  map[string]string
// @Failure      401      {object}  map[string]string
// @Router       /experiences [post]
// @Security     BearerAuth
func (h *ResourceHandler[T, Q, R]) Save(c *gin.Context) {
	req := R(new(Q))
	if !bindJSON(c, req) {
		return
	}

	item, err := h.uc.Save(c.Request.Context(), req, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	created(c, fmt.Sprintf("%s%s/%d", basePath, h.path, item.Ref().ID), "Created", item, h.links(item))
}

// Update godoc
// @Summary      Update a record of the caller's profile
// @Tags         resources
// @Accept       json
// @Produce      json
// @Param        id       path      int                       true  "record id"
// @Param        request  body      domain.ExperienceRequest  true  "record"
// @Success      200      {object}  response.Response{data=domain.Experience}
// @Failure      400      {object}  map[string]string
// @Router       /experiences/{id} [put]
// @Security     BearerAuth
func (h *ResourceHandler[T, Q, R]) Update(c *gin.Context) {
	id, ok := pathID(c, "id", h.notFound)
	if !ok {
		return
	}
	req := R(new(Q))
	if !bindJSON(c, req) {
		return
	}

	item, err := h.uc.Update(c.Request.Context(), id, req, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Updated", item, h.links(item))
}

// Delete godoc
// @Summary      Remove a record from the caller's profile
// @Tags         resources
// @Produce      json
// @Param        id   path      int  true  "record id"
// @Success      200  {object}  response.Response{data=domain.Experience}
// @Failure      400  {object}  map[string]string
// @Router       /experiences/{id} [delete]
// @Security     BearerAuth
func (h *ResourceHandler[T, Q, R]) Delete(c *gin.Context) {
	id, ok := pathID(c, "id", h.notFound)
	if !ok {
		return
	}

	item, err := h.uc.Delete(c.Request.Context(), id, middleware.Caller(c))
	if err != nil {
		_ = c.Error(err)
		return
	}
	response.Linked(c, http.StatusOK, "Deleted", item, h.links(item))
}
