package guard

import (
	"context"

	"github.com/go-playground/validator/v10"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/validation"
)

// Valid fails with every field error of dto at once.
func Valid(v *validator.Validate, dto any) Check {
	return func(ctx context.Context) error {
		if err := v.StructCtx(ctx, dto); err != nil {
			return apperror.Validation(validation.FieldErrors(err))
		}
		return nil
	}
}

// CallerPresent fails when the request carried no usable token.
func CallerPresent(caller *domain.Account) Check {
	return func(context.Context) error {
		if caller == nil {
			return apperror.NotFound(domain.MsgUserNotFound)
		}
		return nil
	}
}

// Found fails with NotFound(message) when ref has no record.
func Found[T any](ref *Ref[T], message string) Check {
	return func(ctx context.Context) error {
		ok, err := Exists(ctx, ref.Get)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			return apperror.NotFound(message)
		}
		return nil
	}
}

// Owner fails unless caller owns the record. ownerID is only evaluated when this check runs, so
// it may safely dereference a record that an earlier check proved to exist.
func Owner(ownerID func() int64, caller *domain.Account) Check {
	return func(context.Context) error {
		if caller == nil || !IsOwner(ownerID(), caller.ID) {
			return apperror.Unauthorized(domain.MsgUnauthorizedUser)
		}
		return nil
	}
}

// Unique fails with DuplicateResource when taken reports true.
func Unique(taken func(ctx context.Context) (bool, error)) Check {
	return func(ctx context.Context) error {
		dup, err := taken(ctx)
		if err != nil {
			return apperror.Internal(err)
		}
		if dup {
			return apperror.Duplicate(domain.MsgDuplicatedUser)
		}
		return nil
	}
}

// Verified fails with Unverified when pending reports an outstanding verification code.
func Verified(pending func(ctx context.Context) (bool, error)) Check {
	return func(ctx context.Context) error {
		p, err := pending(ctx)
		if err != nil {
			return apperror.Internal(err)
		}
		if p {
			return apperror.Unverified(domain.MsgUnverifiedUser)
		}
		return nil
	}
}

// Require fails with err when cond reports false.
func Require(cond func(ctx context.Context) (bool, error), fail *apperror.AppError) Check {
	return func(ctx context.Context) error {
		ok, err := cond(ctx)
		if err != nil {
			return apperror.Internal(err)
		}
		if !ok {
			return fail
		}
		return nil
	}
}
