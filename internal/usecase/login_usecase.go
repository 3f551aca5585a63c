package usecase

import (
	"context"
	"errors"

	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
	"pickme-backend/pkg/apperror"
)

// TokenIssuer signs bearer tokens for authenticated accounts.
type TokenIssuer interface {
	GenerateToken(accountID int64, email, role string) (string, error)
}

type loginUsecase struct {
	accounts domain.AccountRepository
	tokens   TokenIssuer
	validate *validator.Validate
}

func NewLoginUsecase(accounts domain.AccountRepository, tokens TokenIssuer, validate *validator.Validate) domain.LoginUsecase {
	return &loginUsecase{accounts: accounts, tokens: tokens, validate: validate}
}

// Login reports an unknown e-mail and a wrong password with the same message.
func (u *loginUsecase) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ref := guard.Load(func(ctx context.Context) (*domain.Account, error) {
		return u.accounts.GetByEmail(ctx, req.Email)
	})
	chain := guard.For("login").
		Then("validation", guard.Valid(u.validate, req)).
		Then("credentials", guard.Require(func(ctx context.Context) (bool, error) {
			account, err := ref.Get(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			return bcrypt.CompareHashAndPassword([]byte(account.Password), []byte(req.Password)) == nil, nil
		}, apperror.BadRequest(domain.MsgInvalidLogin)))

	return guard.Run(ctx, chain, func(context.Context) (*domain.LoginResponse, error) {
		account := ref.Value()
		token, err := u.tokens.GenerateToken(account.ID, account.Email, string(account.Role))
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return &domain.LoginResponse{ID: account.ID, Token: token, Role: account.Role}, nil
	})
}
