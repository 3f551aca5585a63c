package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/repository/memory"
	"pickme-backend/internal/usecase"
	"pickme-backend/pkg/apperror"
	"pickme-backend/pkg/email"
	"pickme-backend/pkg/validation"
)

// Mock collaborators
type MockMailer struct {
	mock.Mock
}

func (m *MockMailer) SendSuggestion(to string, data email.SuggestionEmailData) error {
	return m.Called(to, data).Error(0)
}

func (m *MockMailer) SendVerificationCode(to, code string, minutes int) error {
	return m.Called(to, code, minutes).Error(0)
}

type MockExperienceRepo struct {
	mock.Mock
}

func (m *MockExperienceRepo) Create(ctx context.Context, item *domain.Experience) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockExperienceRepo) GetByID(ctx context.Context, id int64) (*domain.Experience, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Experience), args.Error(1)
}

func (m *MockExperienceRepo) Update(ctx context.Context, item *domain.Experience) error {
	return m.Called(ctx, item).Error(0)
}

func (m *MockExperienceRepo) Delete(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockExperienceRepo) ListByAccount(ctx context.Context, accountID int64) ([]*domain.Experience, error) {
	args := m.Called(ctx, accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Experience), args.Error(1)
}

const codeTTL = 10 * time.Minute

// fixture wires every usecase over one in-memory store.
type fixture struct {
	accounts     domain.AccountRepository
	favorites    domain.FavoriteRepository
	codes        domain.VerificationRepository
	enterprises  domain.EnterpriseRepository
	experiences  domain.ResourceRepository[*domain.Experience]
	mailer       *MockMailer
	validate     *validator.Validate
	account      domain.AccountUsecase
	enterprise   domain.EnterpriseUsecase
	experience   domain.ResourceUsecase[*domain.Experience, *domain.ExperienceRequest]
	verification domain.VerificationUsecase
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	f := &fixture{
		accounts:    memory.NewAccountRepository(store),
		favorites:   memory.NewFavoriteRepository(store),
		codes:       memory.NewVerificationRepository(store),
		enterprises: memory.NewEnterpriseRepository(store),
		experiences: memory.NewResourceRepository[domain.Experience, *domain.Experience](store),
		mailer:      new(MockMailer),
		validate:    validation.New(),
	}
	f.account = usecase.NewAccountUsecase(f.accounts, f.favorites, f.codes, f.validate)
	f.enterprise = usecase.NewEnterpriseUsecase(f.enterprises, f.accounts, f.mailer, f.validate)
	f.experience = usecase.NewExperienceUsecase(f.experiences, f.validate)
	f.verification = usecase.NewVerificationUsecase(f.codes, f.accounts, f.mailer, f.validate, codeTTL)
	return f
}

func (f *fixture) register(t *testing.T, email, nickName string) *domain.Account {
	t.Helper()
	account, err := f.account.SaveAccount(context.Background(), &domain.AccountInitialRequest{
		Email:    email,
		Password: "password1",
		NickName: nickName,
	})
	require.NoError(t, err)
	return account
}

func (f *fixture) registerEnterprise(t *testing.T, email, name string) *domain.EnterpriseProfile {
	t.Helper()
	profile, err := f.enterprise.SaveEnterprise(context.Background(), &domain.EnterpriseRequest{
		Email:              email,
		Password:           "password1",
		RegistrationNumber: "123-45-67890",
		Name:               name,
		Address:            "서울시 강남구",
		CEOName:            "홍길동",
	})
	require.NoError(t, err)
	return profile
}

// assertAppError checks kind, status and catalog message of err.
func assertAppError(t *testing.T, err error, kind apperror.Kind, message string) {
	t.Helper()
	var appErr *apperror.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, kind, appErr.Kind)
	if message != "" {
		assert.Equal(t, message, appErr.Message)
	}
	if kind != apperror.KindInternal {
		assert.Equal(t, 400, appErr.Code)
	}
}
