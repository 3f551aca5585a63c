package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
	"pickme-backend/pkg/apperror"
)

type accountUsecase struct {
	accounts  domain.AccountRepository
	favorites domain.FavoriteRepository
	codes     domain.VerificationRepository
	validate  *validator.Validate
	now       func() time.Time
}

func NewAccountUsecase(
	accounts domain.AccountRepository,
	favorites domain.FavoriteRepository,
	codes domain.VerificationRepository,
	validate *validator.Validate,
) domain.AccountUsecase {
	return &accountUsecase{
		accounts:  accounts,
		favorites: favorites,
		codes:     codes,
		validate:  validate,
		now:       time.Now,
	}
}

// emailTaken is the duplicate-email lookup shared by account, enterprise and verification chains.
func emailTaken(accounts domain.AccountRepository, email string) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		return guard.Exists(ctx, func(ctx context.Context) (*domain.Account, error) {
			return accounts.GetByEmail(ctx, email)
		})
	}
}

func accountRef(accounts domain.AccountRepository, id int64) *guard.Ref[*domain.Account] {
	return guard.Load(func(ctx context.Context) (*domain.Account, error) {
		return accounts.GetByID(ctx, id)
	})
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}

// storeErr maps repository sentinels that can still surface after a passed chain (a concurrent
// writer got there first) onto the catalog errors.
func storeErr(err error, notFound string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, domain.ErrDuplicate):
		return apperror.Duplicate(domain.MsgDuplicatedUser)
	case errors.Is(err, domain.ErrNotFound):
		return apperror.NotFound(notFound)
	default:
		return apperror.Internal(err)
	}
}

func (u *accountUsecase) SaveAccount(ctx context.Context, req *domain.AccountInitialRequest) (*domain.Account, error) {
	chain := guard.For("create account").
		Then("validation", guard.Valid(u.validate, req)).
		Then("duplicate email", guard.Unique(emailTaken(u.accounts, req.Email))).
		Then("pending verification", guard.Verified(u.pendingCode(req.Email)))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.Account, error) {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		account := &domain.Account{
			Email:            strings.TrimSpace(req.Email),
			Password:         hash,
			NickName:         req.NickName,
			OneLineIntroduce: req.OneLineIntroduce,
			Role:             domain.RoleUser,
			CreatedAt:        u.now(),
		}
		if err := u.accounts.Create(ctx, account); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return account, nil
	})
}

func (u *accountUsecase) pendingCode(email string) func(ctx context.Context) (bool, error) {
	return func(ctx context.Context) (bool, error) {
		code, err := u.codes.GetByEmail(ctx, email)
		if errors.Is(err, domain.ErrNotFound) {
			return false, nil
		}
		if err != nil {
			return false, err
		}
		return code.Pending(u.now()), nil
	}
}

func (u *accountUsecase) UpdateAccount(ctx context.Context, id int64, req *domain.AccountRequest, caller *domain.Account) (*domain.Account, error) {
	ref := accountRef(u.accounts, id)
	chain := guard.For("update account").
		Then("validation", guard.Valid(u.validate, req)).
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().ID }, caller))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.Account, error) {
		account := ref.Value()
		account.NickName = req.NickName
		account.OneLineIntroduce = req.OneLineIntroduce
		account.SocialLink = req.SocialLink
		account.Career = req.Career
		account.Positions = req.Positions
		if err := u.accounts.Update(ctx, account); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		if err := u.accounts.ReplaceTechnologies(ctx, account.ID, req.Technologies); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return u.reload(ctx, account.ID)
	})
}

func (u *accountUsecase) reload(ctx context.Context, id int64) (*domain.Account, error) {
	account, err := u.accounts.GetByID(ctx, id)
	if err != nil {
		return nil, storeErr(err, domain.MsgUserNotFound)
	}
	return account, nil
}

func (u *accountUsecase) DeleteAccount(ctx context.Context, id int64, caller *domain.Account) (*domain.Account, error) {
	ref := accountRef(u.accounts, id)
	chain := guard.For("delete account").
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().ID }, caller))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.Account, error) {
		if err := u.accounts.Delete(ctx, id); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return ref.Value(), nil
	})
}

func (u *accountUsecase) LoadProfile(ctx context.Context, caller *domain.Account) (*domain.Account, error) {
	ref := guard.Load(func(ctx context.Context) (*domain.Account, error) {
		return u.accounts.GetByID(ctx, caller.ID)
	})
	chain := guard.For("load account profile").
		Then("caller", guard.CallerPresent(caller)).
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(context.Context) (*domain.Account, error) {
		return ref.Value(), nil
	})
}

// LoadAccount counts a hit only on the first visit of a browser, which the handler tracks with a
// cookie.
func (u *accountUsecase) LoadAccount(ctx context.Context, id int64, caller *domain.Account, firstVisit bool) (*domain.AccountResponse, error) {
	ref := accountRef(u.accounts, id)
	chain := guard.For("load account").
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("caller", guard.CallerPresent(caller))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.AccountResponse, error) {
		account := ref.Value()
		if firstVisit {
			if err := u.accounts.IncrementHits(ctx, id); err != nil {
				return nil, storeErr(err, domain.MsgUserNotFound)
			}
			account.Hits++
		}
		return u.respond(ctx, account, caller)
	})
}

func (u *accountUsecase) respond(ctx context.Context, account *domain.Account, caller *domain.Account) (*domain.AccountResponse, error) {
	flag, err := u.favorites.Exists(ctx, account.ID, caller.ID)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return &domain.AccountResponse{Account: *account, FavoriteFlag: flag}, nil
}

func (u *accountUsecase) LoadAccountsWithFilter(ctx context.Context, filter domain.AccountFilter, page domain.Pageable) (*domain.Page[domain.Account], error) {
	result, err := u.accounts.Filter(ctx, filter, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

func (u *accountUsecase) Favorite(ctx context.Context, id int64, caller *domain.Account) (*domain.AccountResponse, error) {
	ref := accountRef(u.accounts, id)
	chain := guard.For("favorite account").
		Then("caller", guard.CallerPresent(caller)).
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.AccountResponse, error) {
		if _, err := u.favorites.Toggle(ctx, id, caller.ID); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		account, err := u.reload(ctx, id)
		if err != nil {
			return nil, err
		}
		return u.respond(ctx, account, caller)
	})
}

func (u *accountUsecase) ListFavoriteUsers(ctx context.Context, id int64) ([]domain.Account, error) {
	ref := accountRef(u.accounts, id)
	chain := guard.For("list favorite users").
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(ctx context.Context) ([]domain.Account, error) {
		users, err := u.favorites.ListFavoredBy(ctx, id)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return users, nil
	})
}

func (u *accountUsecase) UpdateImage(ctx context.Context, caller *domain.Account, imageURL string) (*domain.Account, error) {
	ref := guard.Load(func(ctx context.Context) (*domain.Account, error) {
		return u.accounts.GetByID(ctx, caller.ID)
	})
	chain := guard.For("update account image").
		Then("caller", guard.CallerPresent(caller)).
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.Account, error) {
		account := ref.Value()
		account.Image = imageURL
		if err := u.accounts.Update(ctx, account); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return account, nil
	})
}
