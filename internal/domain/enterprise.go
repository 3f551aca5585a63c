package domain

import "context"

// Enterprise is the company profile of an ENTERPRISE account. AccountID is the single source of
// truth for the one-to-one link; the account side holds no pointer back.
type Enterprise struct {
	ID                 int64  `json:"id"`
	AccountID          int64  `json:"accountId"`
	RegistrationNumber string `json:"registrationNumber"`
	Name               string `json:"name"`
	Address            string `json:"address"`
	CEOName            string `json:"ceoName"`
}

// EnterpriseProfile joins an Enterprise with its owning Account.
type EnterpriseProfile struct {
	Enterprise
	Account Account `json:"account"`
}

type EnterpriseRequest struct {
	Email              string `json:"email" validate:"required,email"`
	Password           string `json:"password" validate:"required,min=8,max=20"`
	RegistrationNumber string `json:"registrationNumber" validate:"required"`
	Name               string `json:"name" validate:"required"`
	Address            string `json:"address" validate:"required"`
	CEOName            string `json:"ceoName" validate:"required"`
}

type EnterpriseRepository interface {
	// Create stores the account and its enterprise row together.
	Create(ctx context.Context, account *Account, enterprise *Enterprise) error
	GetByAccountID(ctx context.Context, accountID int64) (*EnterpriseProfile, error)
	Update(ctx context.Context, account *Account, enterprise *Enterprise) error
	Filter(ctx context.Context, filter EnterpriseFilter, page Pageable) (*Page[EnterpriseProfile], error)
}

type EnterpriseUsecase interface {
	SaveEnterprise(ctx context.Context, req *EnterpriseRequest) (*EnterpriseProfile, error)
	LoadProfile(ctx context.Context, caller *Account) (*EnterpriseProfile, error)
	LoadEnterprise(ctx context.Context, id int64) (*EnterpriseProfile, error)
	UpdateEnterprise(ctx context.Context, id int64, req *EnterpriseRequest, caller *Account) (*EnterpriseProfile, error)
	DeleteEnterprise(ctx context.Context, id int64, caller *Account) (*EnterpriseProfile, error)
	LoadEnterprisesWithFilter(ctx context.Context, filter EnterpriseFilter, page Pageable) (*Page[EnterpriseProfile], error)
	SendSuggestion(ctx context.Context, accountID int64, caller *Account) error
}
