package domain

import (
	"context"
	"time"
)

type Role string

const (
	RoleUser       Role = "USER"
	RoleEnterprise Role = "ENTERPRISE"
)

// Account is a registered login identity. Enterprise accounts own exactly one Enterprise row.
type Account struct {
	ID               int64     `json:"id"`
	Email            string    `json:"email"`
	Password         string    `json:"-"`
	NickName         string    `json:"nickName"`
	OneLineIntroduce string    `json:"oneLineIntroduce"`
	SocialLink       string    `json:"socialLink"`
	Career           string    `json:"career"`
	Positions        []string  `json:"positions"`
	Technologies     []string  `json:"technologies"`
	Image            string    `json:"image"`
	Role             Role      `json:"userRole"`
	Hits             int64     `json:"hits"`
	FavoriteCount    int64     `json:"favoriteCount"` // read-only aggregate of the favorites relation
	CreatedAt        time.Time `json:"createdAt"`
}

// AccountInitialRequest is the registration payload.
type AccountInitialRequest struct {
	Email            string `json:"email" validate:"required,email"`
	Password         string `json:"password" validate:"required,min=8,max=20"`
	NickName         string `json:"nickName" validate:"required,max=30,no_emoji"`
	OneLineIntroduce string `json:"oneLineIntroduce"`
}

// AccountRequest is the update payload. Email and role never change after registration.
type AccountRequest struct {
	NickName         string   `json:"nickName" validate:"required"`
	OneLineIntroduce string   `json:"oneLineIntroduce"`
	SocialLink       string   `json:"socialLink" validate:"omitempty,url"`
	Career           string   `json:"career"`
	Positions        []string `json:"positions"`
	Technologies     []string `json:"technologies" validate:"dive,required"`
}

// AccountResponse is an Account as seen by other users.
type AccountResponse struct {
	Account
	FavoriteFlag bool `json:"favoriteFlag"`
}

type AccountRepository interface {
	Create(ctx context.Context, account *Account) error
	GetByID(ctx context.Context, id int64) (*Account, error)
	GetByEmail(ctx context.Context, email string) (*Account, error)
	Update(ctx context.Context, account *Account) error
	Delete(ctx context.Context, id int64) error
	IncrementHits(ctx context.Context, id int64) error
	ReplaceTechnologies(ctx context.Context, accountID int64, names []string) error
	Filter(ctx context.Context, filter AccountFilter, page Pageable) (*Page[Account], error)
}

type FavoriteRepository interface {
	// Toggle adds or removes the favorite and reports whether it is now set.
	Toggle(ctx context.Context, accountID, favoredBy int64) (bool, error)
	Exists(ctx context.Context, accountID, favoredBy int64) (bool, error)
	ListFavoredBy(ctx context.Context, accountID int64) ([]Account, error)
}

type AccountUsecase interface {
	SaveAccount(ctx context.Context, req *AccountInitialRequest) (*Account, error)
	UpdateAccount(ctx context.Context, id int64, req *AccountRequest, caller *Account) (*Account, error)
	DeleteAccount(ctx context.Context, id int64, caller *Account) (*Account, error)
	LoadProfile(ctx context.Context, caller *Account) (*Account, error)
	LoadAccount(ctx context.Context, id int64, caller *Account, firstVisit bool) (*AccountResponse, error)
	LoadAccountsWithFilter(ctx context.Context, filter AccountFilter, page Pageable) (*Page[Account], error)
	Favorite(ctx context.Context, id int64, caller *Account) (*AccountResponse, error)
	ListFavoriteUsers(ctx context.Context, id int64) ([]Account, error)
	UpdateImage(ctx context.Context, caller *Account, imageURL string) (*Account, error)
}
