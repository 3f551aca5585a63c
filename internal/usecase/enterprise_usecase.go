package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/email"
)

// Mailer is the subset of the e-mail service the usecases depend on.
type Mailer interface {
	SendSuggestion(to string, data email.SuggestionEmailData) error
	SendVerificationCode(to, code string, minutes int) error
}

type enterpriseUsecase struct {
	enterprises domain.EnterpriseRepository
	accounts    domain.AccountRepository
	mailer      Mailer
	validate    *validator.Validate
	now         func() time.Time
}

func NewEnterpriseUsecase(
	enterprises domain.EnterpriseRepository,
	accounts domain.AccountRepository,
	mailer Mailer,
	validate *validator.Validate,
) domain.EnterpriseUsecase {
	return &enterpriseUsecase{
		enterprises: enterprises,
		accounts:    accounts,
		mailer:      mailer,
		validate:    validate,
		now:         time.Now,
	}
}

func (u *enterpriseUsecase) enterpriseRef(id int64) *guard.Ref[*domain.EnterpriseProfile] {
	return guard.Load(func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		profile, err := u.enterprises.GetByAccountID(ctx, id)
		if err != nil {
			return nil, err
		}
		if profile.Account.Role != domain.RoleEnterprise {
			return nil, domain.ErrNotFound
		}
		return profile, nil
	})
}

func (u *enterpriseUsecase) SaveEnterprise(ctx context.Context, req *domain.EnterpriseRequest) (*domain.EnterpriseProfile, error) {
	chain := guard.For("create enterprise").
		Then("validation", guard.Valid(u.validate, req)).
		Then("duplicate email", guard.Unique(emailTaken(u.accounts, req.Email)))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		account := &domain.Account{
			Email:     strings.TrimSpace(req.Email),
			Password:  hash,
			NickName:  req.Name,
			Role:      domain.RoleEnterprise,
			CreatedAt: u.now(),
		}
		enterprise := &domain.Enterprise{
			RegistrationNumber: req.RegistrationNumber,
			Name:               req.Name,
			Address:            req.Address,
			CEOName:            req.CEOName,
		}
		if err := u.enterprises.Create(ctx, account, enterprise); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return &domain.EnterpriseProfile{Enterprise: *enterprise, Account: *account}, nil
	})
}

func (u *enterpriseUsecase) LoadProfile(ctx context.Context, caller *domain.Account) (*domain.EnterpriseProfile, error) {
	ref := guard.Load(func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		return u.enterprises.GetByAccountID(ctx, caller.ID)
	})
	chain := guard.For("load enterprise profile").
		Then("caller", guard.CallerPresent(caller)).
		Then("account exists", guard.Found(ref, domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(context.Context) (*domain.EnterpriseProfile, error) {
		return ref.Value(), nil
	})
}

func (u *enterpriseUsecase) LoadEnterprise(ctx context.Context, id int64) (*domain.EnterpriseProfile, error) {
	ref := u.enterpriseRef(id)
	chain := guard.For("load enterprise").
		Then("enterprise exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("account exists", guard.Found(accountRef(u.accounts, id), domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(context.Context) (*domain.EnterpriseProfile, error) {
		return ref.Value(), nil
	})
}

// UpdateEnterprise rewrites the company data and the password. The account e-mail stays fixed.
func (u *enterpriseUsecase) UpdateEnterprise(ctx context.Context, id int64, req *domain.EnterpriseRequest, caller *domain.Account) (*domain.EnterpriseProfile, error) {
	ref := u.enterpriseRef(id)
	chain := guard.For("update enterprise").
		Then("validation", guard.Valid(u.validate, req)).
		Then("enterprise exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().AccountID }, caller)).
		Then("account exists", guard.Found(accountRef(u.accounts, id), domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		profile := ref.Value()
		hash, err := hashPassword(req.Password)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		account := profile.Account
		account.Password = hash
		account.NickName = req.Name

		enterprise := profile.Enterprise
		enterprise.RegistrationNumber = req.RegistrationNumber
		enterprise.Name = req.Name
		enterprise.Address = req.Address
		enterprise.CEOName = req.CEOName

		if err := u.enterprises.Update(ctx, &account, &enterprise); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return &domain.EnterpriseProfile{Enterprise: enterprise, Account: account}, nil
	})
}

// DeleteEnterprise removes the account, which takes the enterprise row with it.
func (u *enterpriseUsecase) DeleteEnterprise(ctx context.Context, id int64, caller *domain.Account) (*domain.EnterpriseProfile, error) {
	ref := u.enterpriseRef(id)
	chain := guard.For("delete enterprise").
		Then("enterprise exists", guard.Found(ref, domain.MsgUserNotFound)).
		Then("owner", guard.Owner(func() int64 { return ref.Value().AccountID }, caller)).
		Then("account exists", guard.Found(accountRef(u.accounts, id), domain.MsgUserNotFound))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		if err := u.accounts.Delete(ctx, id); err != nil {
			return nil, storeErr(err, domain.MsgUserNotFound)
		}
		return ref.Value(), nil
	})
}

func (u *enterpriseUsecase) LoadEnterprisesWithFilter(ctx context.Context, filter domain.EnterpriseFilter, page domain.Pageable) (*domain.Page[domain.EnterpriseProfile], error) {
	result, err := u.enterprises.Filter(ctx, filter, page)
	if err != nil {
		return nil, apperror.Internal(err)
	}
	return result, nil
}

// SendSuggestion mails a job offer from the caller's company to the account owner.
func (u *enterpriseUsecase) SendSuggestion(ctx context.Context, accountID int64, caller *domain.Account) error {
	target := accountRef(u.accounts, accountID)
	sender := guard.Load(func(ctx context.Context) (*domain.EnterpriseProfile, error) {
		return u.enterprises.GetByAccountID(ctx, caller.ID)
	})
	chain := guard.For("send suggestion").
		Then("caller", guard.CallerPresent(caller)).
		Then("account exists", guard.Found(target, domain.MsgUserNotFound)).
		Then("enterprise exists", guard.Found(sender, domain.MsgUserNotFound))

	_, err := guard.Run(ctx, chain, func(context.Context) (struct{}, error) {
		company := sender.Value()
		candidate := target.Value()
		err := u.mailer.SendSuggestion(candidate.Email, email.SuggestionEmailData{
			EnterpriseName:    company.Name,
			EnterpriseAddress: company.Address,
			CEOName:           company.CEOName,
			ContactEmail:      company.Account.Email,
			CandidateNickName: candidate.NickName,
		})
		if err != nil {
			return struct{}{}, apperror.Internal(err)
		}
		return struct{}{}, nil
	})
	return err
}
