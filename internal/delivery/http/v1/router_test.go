package v1_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickme-backend/config"
	v1 "pickme-backend/internal/delivery/http/v1"
	"pickme-backend/internal/domain"
	"pickme-backend/internal/repository/memory"
	"pickme-backend/internal/usecase"
	"pickme-backend/pkg/auth"
	"pickme-backend/pkg/email"
	"pickme-backend/pkg/validation"
)

type nopMailer struct{}

func (nopMailer) SendSuggestion(string, email.SuggestionEmailData) error {
	return nil
}

func (nopMailer) SendVerificationCode(string, string, int) error {
	return nil
}

type server struct {
	router *gin.Engine
	tokens *auth.JWTService
}

func testConfig() *config.Config {
	return &config.Config{
		Env:                    "test",
		RateLimitWindowSeconds: 60,
		RateLimitAuthThreshold: 1000,
		DefaultPageSize:        20,
		MaxPageSize:            100,
	}
}

func newServer(t *testing.T, cfg *config.Config) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := memory.NewStore()
	accounts := memory.NewAccountRepository(store)
	favorites := memory.NewFavoriteRepository(store)
	codes := memory.NewVerificationRepository(store)
	enterprises := memory.NewEnterpriseRepository(store)
	validate := validation.New()
	tokens := auth.NewJWTService("test-secret", time.Hour)

	accountUC := usecase.NewAccountUsecase(accounts, favorites, codes, validate)
	router := v1.NewRouter(v1.RouterDeps{
		AccountUC:       accountUC,
		EnterpriseUC:    usecase.NewEnterpriseUsecase(enterprises, accounts, nopMailer{}, validate),
		VerificationUC:  usecase.NewVerificationUsecase(codes, accounts, nopMailer{}, validate, 10*time.Minute),
		LoginUC:         usecase.NewLoginUsecase(accounts, tokens, validate),
		ImageUC:         usecase.NewImageUsecase(nil, accountUC),
		HealthUC:        usecase.NewHealthUsecase(nil),
		ExperienceUC:    usecase.NewExperienceUsecase(memory.NewResourceRepository[domain.Experience, *domain.Experience](store), validate),
		LicenseUC:       usecase.NewLicenseUsecase(memory.NewResourceRepository[domain.License, *domain.License](store), validate),
		PrizeUC:         usecase.NewPrizeUsecase(memory.NewResourceRepository[domain.Prize, *domain.Prize](store), validate),
		ProjectUC:       usecase.NewProjectUsecase(memory.NewResourceRepository[domain.Project, *domain.Project](store), validate),
		SelfInterviewUC: usecase.NewSelfInterviewUsecase(memory.NewResourceRepository[domain.SelfInterview, *domain.SelfInterview](store), validate),
		Accounts:        accounts,
		Tokens:          tokens,
		Config:          cfg,
	})
	return &server{router: router, tokens: tokens}
}

func (s *server) do(t *testing.T, method, path string, body any, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, c := range cookies {
		req.AddCookie(c)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

type envelope struct {
	Success bool                         `json:"success"`
	Data    json.RawMessage              `json:"data"`
	Links   map[string]map[string]string `json:"_links"`
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func data[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	env := decode[envelope](t, w)
	var out T
	require.NoError(t, json.Unmarshal(env.Data, &out), string(env.Data))
	return out
}

func message(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[map[string]string](t, w)["message"]
}

// signUp registers a USER account and returns it with a bearer token.
func (s *server) signUp(t *testing.T, addr, nickName string) (domain.Account, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/accounts", map[string]string{
		"email":    addr,
		"password": "password1",
		"nickName": nickName,
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	account := data[domain.Account](t, w)

	token, err := s.tokens.GenerateToken(account.ID, account.Email, string(account.Role))
	require.NoError(t, err)
	return account, token
}

func (s *server) signUpEnterprise(t *testing.T, addr, name string) (int64, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/enterprises", map[string]string{
		"email":              addr,
		"password":           "password1",
		"registrationNumber": "123-45-67890",
		"name":               name,
		"address":            "서울시 강남구",
		"ceoName":            "홍길동",
	}, "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	profile := data[domain.EnterpriseProfile](t, w)

	token, err := s.tokens.GenerateToken(profile.Account.ID, profile.Account.Email, string(domain.RoleEnterprise))
	require.NoError(t, err)
	return profile.Account.ID, token
}

func TestSaveAccount(t *testing.T) {
	s := newServer(t, testConfig())

	t.Run("created with location and links", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/accounts", map[string]string{
			"email":    "dev@pickme.dev",
			"password": "password1",
			"nickName": "dev",
		}, "")

		require.Equal(t, http.StatusCreated, w.Code)
		account := data[domain.Account](t, w)
		assert.Equal(t, fmt.Sprintf("/api/accounts/%d", account.ID), w.Header().Get("Location"))
		assert.Equal(t, domain.RoleUser, account.Role)
		assert.NotContains(t, w.Body.String(), "password1")

		env := decode[envelope](t, w)
		assert.Equal(t, fmt.Sprintf("/api/accounts/%d", account.ID), env.Links["self"]["href"])
		assert.Equal(t, "/api/login", env.Links["login-account"]["href"])
		assert.Equal(t, "/api/swagger/index.html", env.Links["profile"]["href"])
	})

	t.Run("validation errors are a list of field errors", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/accounts", map[string]string{
			"email":    "not-an-email",
			"password": "short",
			"nickName": "ok",
		}, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode[[]map[string]string](t, w)
		require.Len(t, fields, 2)
		assert.Equal(t, "email", fields[0]["field"])
		assert.Equal(t, "password", fields[1]["field"])
		for _, f := range fields {
			assert.NotEmpty(t, f["defaultMessage"])
		}
	})

	t.Run("duplicate email is a message", func(t *testing.T) {
		w := s.do(t, http.MethodPost, "/api/accounts", map[string]string{
			"email":    "DEV@pickme.dev",
			"password": "password1",
			"nickName": "again",
		}, "")

		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.MsgDuplicatedUser, message(t, w))
	})
}

func TestRoleGate(t *testing.T) {
	s := newServer(t, testConfig())
	user, userToken := s.signUp(t, "user@pickme.dev", "user")
	_, enterpriseToken := s.signUpEnterprise(t, "corp@pickme.dev", "픽미")
	update := map[string]any{"nickName": "renamed"}

	t.Run("no token is 401", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/accounts/%d", user.ID), update, "")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, domain.MsgUnauthenticated, message(t, w))
	})

	t.Run("invalid token is 401", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/accounts/%d", user.ID), update, "garbage")
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("wrong role is 403", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/accounts/%d", user.ID), update, enterpriseToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
		assert.Equal(t, domain.MsgForbidden, message(t, w))
	})

	t.Run("enterprise routes reject users", func(t *testing.T) {
		w := s.do(t, http.MethodPost, fmt.Sprintf("/api/enterprises/suggestion/%d", user.ID), nil, userToken)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("owner passes", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/accounts/%d", user.ID), update, userToken)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
		assert.Equal(t, "renamed", data[domain.Account](t, w).NickName)
	})
}

func TestUpdateAccountChecks(t *testing.T) {
	s := newServer(t, testConfig())
	owner, _ := s.signUp(t, "owner@pickme.dev", "owner")
	_, otherToken := s.signUp(t, "other@pickme.dev", "other")

	t.Run("validation runs before existence", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/accounts/9999", map[string]any{"nickName": ""}, otherToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		fields := decode[[]map[string]string](t, w)
		assert.Equal(t, "nickName", fields[0]["field"])
	})

	t.Run("missing account", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/accounts/9999", map[string]any{"nickName": "x"}, otherToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.MsgUserNotFound, message(t, w))
	})

	t.Run("non numeric id", func(t *testing.T) {
		w := s.do(t, http.MethodPut, "/api/accounts/abc", map[string]any{"nickName": "x"}, otherToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.MsgUserNotFound, message(t, w))
	})

	t.Run("someone else's account", func(t *testing.T) {
		w := s.do(t, http.MethodPut, fmt.Sprintf("/api/accounts/%d", owner.ID), map[string]any{"nickName": "x"}, otherToken)
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.MsgUnauthorizedUser, message(t, w))
	})
}

func TestLoadAccountCountsFirstVisit(t *testing.T) {
	s := newServer(t, testConfig())
	target, _ := s.signUp(t, "target@pickme.dev", "target")
	_, viewerToken := s.signUp(t, "viewer@pickme.dev", "viewer")
	path := fmt.Sprintf("/api/accounts/%d", target.ID)

	first := s.do(t, http.MethodGet, path, nil, viewerToken)
	require.Equal(t, http.StatusOK, first.Code, first.Body.String())
	assert.Equal(t, int64(1), data[domain.AccountResponse](t, first).Hits)

	var visit *http.Cookie
	for _, c := range first.Result().Cookies() {
		if c.Name == fmt.Sprintf("cookie%d", target.ID) {
			visit = c
		}
	}
	require.NotNil(t, visit)

	again := s.do(t, http.MethodGet, path, nil, viewerToken, visit)
	require.Equal(t, http.StatusOK, again.Code)
	assert.Equal(t, int64(1), data[domain.AccountResponse](t, again).Hits)
	assert.Empty(t, again.Result().Cookies())

	t.Run("anonymous callers are rejected after the existence check", func(t *testing.T) {
		w := s.do(t, http.MethodGet, path, nil, "")
		require.Equal(t, http.StatusBadRequest, w.Code)
		assert.Equal(t, domain.MsgUserNotFound, message(t, w))
	})
}

func TestLoadAccountsWithFilter(t *testing.T) {
	s := newServer(t, testConfig())
	for i := 0; i < 3; i++ {
		s.signUp(t, fmt.Sprintf("dev%d@pickme.dev", i), fmt.Sprintf("dev%d", i))
	}
	s.signUpEnterprise(t, "corp@pickme.dev", "devcorp")

	t.Run("default size and enterprise exclusion", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/accounts?nickName=dev", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		page := data[domain.Page[domain.Account]](t, w)
		assert.Equal(t, int64(3), page.Total)
		assert.Equal(t, 20, page.Size)
		assert.Len(t, page.Content, 3)
	})

	t.Run("page past the end keeps the total", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/accounts?nickName=dev&page=5&size=2", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		page := data[domain.Page[domain.Account]](t, w)
		assert.Equal(t, int64(3), page.Total)
		assert.Empty(t, page.Content)
	})

	t.Run("oversized pages are capped", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/accounts?size=1000", nil, "")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 100, data[domain.Page[domain.Account]](t, w).Size)
	})

	t.Run("non numeric page is a validation error", func(t *testing.T) {
		w := s.do(t, http.MethodGet, "/api/accounts?page=abc", nil, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestLoginAndProfile(t *testing.T) {
	s := newServer(t, testConfig())
	account, _ := s.signUp(t, "login@pickme.dev", "login")

	w := s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "login@pickme.dev", "password": "wrong-pass"}, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgInvalidLogin, message(t, w))

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "login@pickme.dev", "password": "password1"}, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	login := data[domain.LoginResponse](t, w)
	assert.Equal(t, account.ID, login.ID)

	w = s.do(t, http.MethodGet, "/api/accounts/profile", nil, login.Token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "login@pickme.dev", data[domain.Account](t, w).Email)

	w = s.do(t, http.MethodGet, "/api/accounts/profile", nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUserNotFound, message(t, w))
}

func TestLoginRateLimit(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimitAuthThreshold = 2
	s := newServer(t, cfg)

	body := map[string]string{"email": "nobody@pickme.dev", "password": "password1"}
	for n := 0; n < 2; n++ {
		w := s.do(t, http.MethodPost, "/api/login", body, "")
		assert.Equal(t, http.StatusBadRequest, w.Code)
	}
	w := s.do(t, http.MethodPost, "/api/login", body, "")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.NotEmpty(t, w.Header().Get("Retry-After"))
}

func TestFavoriteRoutes(t *testing.T) {
	s := newServer(t, testConfig())
	target, _ := s.signUp(t, "target@pickme.dev", "target")
	fan, fanToken := s.signUp(t, "fan@pickme.dev", "fan")
	path := fmt.Sprintf("/api/accounts/%d/favorite", target.ID)

	w := s.do(t, http.MethodPost, path, nil, fanToken)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.True(t, data[domain.AccountResponse](t, w).FavoriteFlag)

	w = s.do(t, http.MethodGet, path, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	users := data[[]domain.Account](t, w)
	require.Len(t, users, 1)
	assert.Equal(t, fan.ID, users[0].ID)

	w = s.do(t, http.MethodPost, path, nil, fanToken)
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, data[domain.AccountResponse](t, w).FavoriteFlag)

	w = s.do(t, http.MethodPost, "/api/accounts/9999/favorite", nil, fanToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUserNotFound, message(t, w))
}

func TestEnterpriseRoutes(t *testing.T) {
	s := newServer(t, testConfig())
	id, token := s.signUpEnterprise(t, "corp@pickme.dev", "픽미")
	_, otherToken := s.signUpEnterprise(t, "other@pickme.dev", "다른회사")

	w := s.do(t, http.MethodGet, fmt.Sprintf("/api/enterprises/%d", id), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	env := decode[envelope](t, w)
	assert.Equal(t, fmt.Sprintf("/api/enterprises/%d", id), env.Links["self"]["href"])

	update := map[string]string{
		"email":              "corp@pickme.dev",
		"password":           "password2",
		"registrationNumber": "123-45-67890",
		"name":               "픽미랩",
		"address":            "서울시 서초구",
		"ceoName":            "홍길동",
	}
	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/enterprises/%d", id), update, otherToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUnauthorizedUser, message(t, w))

	w = s.do(t, http.MethodPut, fmt.Sprintf("/api/enterprises/%d", id), update, token)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "픽미랩", data[domain.EnterpriseProfile](t, w).Name)

	w = s.do(t, http.MethodGet, "/api/enterprises?name="+url.QueryEscape("픽미"), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, int64(1), data[domain.Page[domain.EnterpriseProfile]](t, w).Total)

	w = s.do(t, http.MethodDelete, fmt.Sprintf("/api/enterprises/%d", id), nil, token)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodGet, fmt.Sprintf("/api/enterprises/%d", id), nil, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUserNotFound, message(t, w))
}

func TestResourceRoutes(t *testing.T) {
	s := newServer(t, testConfig())
	_, ownerToken := s.signUp(t, "owner@pickme.dev", "owner")
	_, otherToken := s.signUp(t, "other@pickme.dev", "other")

	w := s.do(t, http.MethodPost, "/api/experiences", map[string]string{"companyName": "픽미"}, ownerToken)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	experience := data[domain.Experience](t, w)
	path := fmt.Sprintf("/api/experiences/%d", experience.ID)
	assert.Equal(t, path, w.Header().Get("Location"))

	w = s.do(t, http.MethodPut, path, map[string]string{"companyName": "남의 회사"}, otherToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUnauthorizedUser, message(t, w))

	w = s.do(t, http.MethodPut, path, map[string]string{}, otherToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgUnauthorizedUser, message(t, w))

	w = s.do(t, http.MethodPut, "/api/experiences/9999", map[string]string{}, ownerToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgExperienceNotFound, message(t, w))

	w = s.do(t, http.MethodDelete, "/api/experiences/9999", nil, ownerToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgExperienceNotFound, message(t, w))

	w = s.do(t, http.MethodDelete, "/api/selfInterviews/9999", nil, ownerToken)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgSelfInterviewNotFound, message(t, w))

	w = s.do(t, http.MethodDelete, path, nil, ownerToken)
	require.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/licenses", map[string]string{"name": "정보처리기사"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestImageUploadWithoutStore(t *testing.T) {
	s := newServer(t, testConfig())
	_, token := s.signUp(t, "img@pickme.dev", "img")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("image", "avatar.txt")
	require.NoError(t, err)
	_, err = part.Write([]byte("plain text"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/images", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, domain.MsgInvalidImage, message(t, w))
}

func TestHealth(t *testing.T) {
	s := newServer(t, testConfig())

	w := s.do(t, http.MethodGet, "/api/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", data[map[string]string](t, w)["status"])
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}
