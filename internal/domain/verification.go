package domain

import (
	"context"
	"time"
)

// VerificationCode is an e-mail confirmation code. A code that is neither verified nor expired
// is pending and blocks registration of its e-mail.
type VerificationCode struct {
	Email     string    `json:"email"`
	Code      string    `json:"-"`
	Verified  bool      `json:"verified"`
	ExpiresAt time.Time `json:"expiresAt"`
	CreatedAt time.Time `json:"createdAt"`
}

func (v *VerificationCode) Pending(now time.Time) bool {
	return !v.Verified && now.Before(v.ExpiresAt)
}

type SendCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type MatchCodeRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6,numeric"`
}

type VerificationRepository interface {
	// Save replaces any previous code for the same e-mail.
	Save(ctx context.Context, code *VerificationCode) error
	GetByEmail(ctx context.Context, email string) (*VerificationCode, error)
	MarkVerified(ctx context.Context, email string) error
	Delete(ctx context.Context, email string) error
	PurgeExpired(ctx context.Context, now time.Time) (int64, error)
}

type VerificationUsecase interface {
	SendCode(ctx context.Context, req *SendCodeRequest) (*VerificationCode, error)
	MatchCode(ctx context.Context, req *MatchCodeRequest) (*VerificationCode, error)
	PurgeExpired(ctx context.Context) (int64, error)
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	ID    int64  `json:"id"`
	Token string `json:"jwt"`
	Role  Role   `json:"userRole"`
}

type LoginUsecase interface {
	Login(ctx context.Context, req *LoginRequest) (*LoginResponse, error)
}

type ImageUsecase interface {
	Upload(ctx context.Context, caller *Account, filename string, data []byte) (*Account, error)
}
