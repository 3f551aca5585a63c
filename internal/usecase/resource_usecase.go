package usecase

import (
	"context"

	"github.com/go-playground/validator/v10"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
)

// resourceUsecase serves every account-owned record type with the same chains; only the
// not-found message and the constructor differ per type.
type resourceUsecase[T domain.Owned, R domain.ResourceRequest[T]] struct {
	repo     domain.ResourceRepository[T]
	kind     string
	notFound string
	newItem  func() T
	validate *validator.Validate
}

func NewResourceUsecase[T domain.Owned, R domain.ResourceRequest[T]](
	repo domain.ResourceRepository[T],
	kind, notFound string,
	newItem func() T,
	validate *validator.Validate,
) domain.ResourceUsecase[T, R] {
	return &resourceUsecase[T, R]{
		repo:     repo,
		kind:     kind,
		notFound: notFound,
		newItem:  newItem,
		validate: validate,
	}
}

func NewExperienceUsecase(repo domain.ResourceRepository[*domain.Experience], v *validator.Validate) domain.ResourceUsecase[*domain.Experience, *domain.ExperienceRequest] {
	return NewResourceUsecase[*domain.Experience, *domain.ExperienceRequest](repo, "experience", domain.MsgExperienceNotFound,
		func() *domain.Experience { return &domain.Experience{} }, v)
}

func NewLicenseUsecase(repo domain.ResourceRepository[*domain.License], v *validator.Validate) domain.ResourceUsecase[*domain.License, *domain.LicenseRequest] {
	return NewResourceUsecase[*domain.License, *domain.LicenseRequest](repo, "license", domain.MsgLicenseNotFound,
		func() *domain.License { return &domain.License{} }, v)
}

func NewPrizeUsecase(repo domain.ResourceRepository[*domain.Prize], v *validator.Validate) domain.ResourceUsecase[*domain.Prize, *domain.PrizeRequest] {
	return NewResourceUsecase[*domain.Prize, *domain.PrizeRequest](repo, "prize", domain.MsgPrizeNotFound,
		func() *domain.Prize { return &domain.Prize{} }, v)
}

func NewProjectUsecase(repo domain.ResourceRepository[*domain.Project], v *validator.Validate) domain.ResourceUsecase[*domain.Project, *domain.ProjectRequest] {
	return NewResourceUsecase[*domain.Project, *domain.ProjectRequest](repo, "project", domain.MsgProjectNotFound,
		func() *domain.Project { return &domain.Project{} }, v)
}

func NewSelfInterviewUsecase(repo domain.ResourceRepository[*domain.SelfInterview], v *validator.Validate) domain.ResourceUsecase[*domain.SelfInterview, *domain.SelfInterviewRequest] {
	return NewResourceUsecase[*domain.SelfInterview, *domain.SelfInterviewRequest](repo, "self interview", domain.MsgSelfInterviewNotFound,
		func() *domain.SelfInterview { return &domain.SelfInterview{} }, v)
}

func (u *resourceUsecase[T, R]) ref(id int64) *guard.Ref[T] {
	return guard.Load(func(ctx context.Context) (T, error) {
		return u.repo.GetByID(ctx, id)
	})
}

func (u *resourceUsecase[T, R]) Save(ctx context.Context, req R, caller *domain.Account) (T, error) {
	chain := guard.For("create "+u.kind).
		Then("validation", guard.Valid(u.validate, req)).
		Then("caller", guard.CallerPresent(caller))

	return guard.Run(ctx, chain, func(ctx context.Context) (T, error) {
		item := u.newItem()
		req.ApplyTo(item)
		item.Ref().AccountID = caller.ID
		if err := u.repo.Create(ctx, item); err != nil {
			var zero T
			return zero, storeErr(err, domain.MsgUserNotFound)
		}
		return item, nil
	})
}

func (u *resourceUsecase[T, R]) Update(ctx context.Context, id int64, req R, caller *domain.Account) (T, error) {
	ref := u.ref(id)
	chain := guard.For("update "+u.kind).
		Then(u.kind+" exists", guard.Found(ref, u.notFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().Ref().AccountID }, caller)).
		Then("validation", guard.Valid(u.validate, req))

	return guard.Run(ctx, chain, func(ctx context.Context) (T, error) {
		item := ref.Value()
		req.ApplyTo(item)
		if err := u.repo.Update(ctx, item); err != nil {
			var zero T
			return zero, storeErr(err, u.notFound)
		}
		return item, nil
	})
}

func (u *resourceUsecase[T, R]) Delete(ctx context.Context, id int64, caller *domain.Account) (T, error) {
	ref := u.ref(id)
	chain := guard.For("delete "+u.kind).
		Then(u.kind+" exists", guard.Found(ref, u.notFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().Ref().AccountID }, caller))

	return guard.Run(ctx, chain, func(ctx context.Context) (T, error) {
		if err := u.repo.Delete(ctx, id); err != nil {
			var zero T
			return zero, storeErr(err, u.notFound)
		}
		return ref.Value(), nil
	})
}
