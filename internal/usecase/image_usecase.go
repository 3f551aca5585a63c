package usecase

import (
	"context"

	"go.uber.org/zap"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/guard"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/logger"
	"pickme-backend/pkg/storage"
)

// ImageStore persists a normalized JPEG and returns its public URL.
type ImageStore interface {
	Put(ctx context.Context, data []byte) (string, error)
}

type imageUsecase struct {
	store    ImageStore
	accounts domain.AccountUsecase
}

func NewImageUsecase(store ImageStore, accounts domain.AccountUsecase) domain.ImageUsecase {
	return &imageUsecase{store: store, accounts: accounts}
}

func (u *imageUsecase) Upload(ctx context.Context, caller *domain.Account, filename string, data []byte) (*domain.Account, error) {
	var normalized []byte
	chain := guard.For("upload image").
		Then("caller", guard.CallerPresent(caller)).
		Then("image", func(context.Context) error {
			if _, err := storage.ValidateImage(filename, data); err != nil {
				logger.Log.Info("Rejected image upload", zap.String("filename", filename), zap.Error(err))
				return apperror.BadRequest(domain.MsgInvalidImage)
			}
			out, err := storage.Normalize(data)
			if err != nil {
				logger.Log.Info("Rejected image upload", zap.String("filename", filename), zap.Error(err))
				return apperror.BadRequest(domain.MsgInvalidImage)
			}
			normalized = out
			return nil
		})

	return guard.Run(ctx, chain, func(ctx context.Context) (*domain.Account, error) {
		if u.store == nil {
			return nil, apperror.BadRequest(domain.MsgInvalidImage)
		}
		url, err := u.store.Put(ctx, normalized)
		if err != nil {
			return nil, apperror.Internal(err)
		}
		return u.accounts.UpdateImage(ctx, caller, url)
	})
}
