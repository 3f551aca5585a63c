package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/metrics"
)

const codeDigits = 6

type verificationUsecase struct {
	codes    domain.VerificationRepository
	accounts domain.AccountRepository
	mailer   Mailer
	validate *validator.Validate
	ttl      time.Duration
	now      func() time.Time
	generate func() (string, error)
}

func NewVerificationUsecase(
	codes domain.VerificationRepository,
	accounts domain.AccountRepository,
	mailer Mailer,
	validate *validator.Validate,
	ttl time.Duration,
) domain.VerificationUsecase {
	return &verificationUsecase{
		codes:    codes,
		accounts: accounts,
		mailer:   mailer,
		validate: validate,
		ttl:      ttl,
		now:      time.Now,
		generate: randomCode,
	}
}

func randomCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1_000_000))
	if err != nil {
		return "", fmt.Errorf("generate verification code: %w", err)
	}
	return fmt.Sprintf("%0*d", codeDigits, n.Int64()), nil
}

// SendCode replaces any earlier code for the address and mails the new one.
func (u *verificationUsecase) SendCode(ctx context.Context, req *domain.SendCodeRequest) (*domain.VerificationCode, error) {
	chain := guard.For("send verification code").
		Then("validation", guard.Valid(u.validate, req)).
		Then("duplicate email", guard.Unique(emailTaken(u.accounts, req.Email)))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.VerificationCode, error) {
		code, err := u.generate()
		if err != nil {
			return nil, apperror.Internal(err)
		}
		now := u.now()
		vc := &domain.VerificationCode{
			Email:     strings.TrimSpace(req.Email),
			Code:      code,
			ExpiresAt: now.Add(u.ttl),
			CreatedAt: now,
		}
		if err := u.codes.Save(ctx, vc); err != nil {
			return nil, apperror.Internal(err)
		}
		if err := u.mailer.SendVerificationCode(vc.Email, code, int(u.ttl.Minutes())); err != nil {
			return nil, apperror.Internal(err)
		}
		return vc, nil
	})
}

func (u *verificationUsecase) MatchCode(ctx context.Context, req *domain.MatchCodeRequest) (*domain.VerificationCode, error) {
	ref := guard.Load(func(ctx context.Context) (*domain.VerificationCode, error) {
		return u.codes.GetByEmail(ctx, req.Email)
	})
	chain := guard.For("match verification code").
		Then("validation", guard.Valid(u.validate, req)).
		Then("duplicate email", guard.Unique(emailTaken(u.accounts, req.Email))).
		Then("code matches", guard.Require(func(ctx context.Context) (bool, error) {
			vc, err := ref.Get(ctx)
			if errors.Is(err, domain.ErrNotFound) {
				return false, nil
			}
			if err != nil {
				return false, err
			}
			if !vc.Pending(u.now()) {
				return false, nil
			}
			return subtle.ConstantTimeCompare([]byte(vc.Code), []byte(req.Code)) == 1, nil
		}, apperror.BadRequest(domain.MsgInvalidCode)))

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.VerificationCode, error) {
		if err := u.codes.MarkVerified(ctx, req.Email); err != nil {
			return nil, storeErr(err, domain.MsgInvalidCode)
		}
		vc := ref.Value()
		vc.Verified = true
		return vc, nil
	})
}

// PurgeExpired removes codes that were never confirmed before their deadline.
func (u *verificationUsecase) PurgeExpired(ctx context.Context) (int64, error) {
	n, err := u.codes.PurgeExpired(ctx, u.now())
	if err != nil {
		return 0, err
	}
	metrics.VerificationCodesPurged.Add(float64(n))
	return n, nil
}
