package usecase_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickme-backend/internal/domain"
	"pickme-backend/pkg/apperror"
)

func TestSaveAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Second registration with the same email is a duplicate and leaves the first intact", func(t *testing.T) {
		f := newFixture(t)

		first, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{
			Email: "a@x.com", Password: "password1", NickName: "yang",
		})
		require.NoError(t, err)
		assert.NotZero(t, first.ID)
		assert.Equal(t, domain.RoleUser, first.Role)
		assert.NotEqual(t, "password1", first.Password)

		_, err = f.account.SaveAccount(ctx, &domain.AccountInitialRequest{
			Email: "a@x.com", Password: "password2", NickName: "kim",
		})
		assertAppError(t, err, apperror.KindDuplicate, domain.MsgDuplicatedUser)

		stored, err := f.accounts.GetByEmail(ctx, "a@x.com")
		require.NoError(t, err)
		assert.Equal(t, first.ID, stored.ID)
		assert.Equal(t, "yang", stored.NickName)

		page, err := f.accounts.Filter(ctx, domain.AccountFilter{}, domain.Pageable{Size: 10})
		require.NoError(t, err)
		assert.Equal(t, int64(1), page.Total)
	})

	t.Run("Email comparison ignores case", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "yang")

		_, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{
			Email: "A@X.com", Password: "password1", NickName: "kim",
		})
		assertAppError(t, err, apperror.KindDuplicate, domain.MsgDuplicatedUser)
	})

	t.Run("Validation runs before the duplicate lookup", func(t *testing.T) {
		f := newFixture(t)
		f.register(t, "a@x.com", "yang")

		_, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{Email: "a@x.com", Password: "short"})

		var appErr *apperror.AppError
		require.ErrorAs(t, err, &appErr)
		assert.Equal(t, apperror.KindValidation, appErr.Kind)
		assert.Len(t, appErr.Fields, 2)
	})

	t.Run("Emoji nicknames are rejected", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{
			Email: "a@x.com", Password: "password1", NickName: "yang😀",
		})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})
}

func TestUpdateAccount(t *testing.T) {
	ctx := context.Background()
	req := &domain.AccountRequest{
		NickName:     "yang",
		Career:       "신입",
		Positions:    []string{"BackEnd"},
		Technologies: []string{"Go", "PostgreSQL", "Go"},
	}

	t.Run("Owner updates the profile and technologies", func(t *testing.T) {
		f := newFixture(t)
		me := f.register(t, "a@x.com", "before")

		got, err := f.account.UpdateAccount(ctx, me.ID, req, me)

		require.NoError(t, err)
		assert.Equal(t, "yang", got.NickName)
		assert.Equal(t, []string{"BackEnd"}, got.Positions)
		assert.Equal(t, []string{"Go", "PostgreSQL"}, got.Technologies)
		assert.Equal(t, "a@x.com", got.Email)

		page, err := f.account.LoadAccountsWithFilter(ctx, domain.AccountFilter{Technology: "Go"}, domain.Pageable{Size: 10})
		require.NoError(t, err)
		require.Len(t, page.Content, 1)
		assert.Equal(t, me.ID, page.Content[0].ID)
	})

	t.Run("Validation failure wins over a missing account", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.UpdateAccount(ctx, 999, &domain.AccountRequest{}, &domain.Account{ID: 1})
		assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	})

	t.Run("Missing account is NotFound", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.UpdateAccount(ctx, 999, req, &domain.Account{ID: 999})
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
	})

	t.Run("Another caller is Unauthorized and nothing changes", func(t *testing.T) {
		f := newFixture(t)
		owner := f.register(t, "a@x.com", "before")
		other := f.register(t, "b@x.com", "other")

		_, err := f.account.UpdateAccount(ctx, owner.ID, req, other)
		assertAppError(t, err, apperror.KindUnauthorized, domain.MsgUnauthorizedUser)

		stored, err := f.accounts.GetByID(ctx, owner.ID)
		require.NoError(t, err)
		assert.Equal(t, "before", stored.NickName)
	})
}

func TestDeleteAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Deleting someone else's account is Unauthorized and the account remains", func(t *testing.T) {
		f := newFixture(t)
		target := f.register(t, "five@x.com", "five")
		caller := f.register(t, "seven@x.com", "seven")

		_, err := f.account.DeleteAccount(ctx, target.ID, caller)
		assertAppError(t, err, apperror.KindUnauthorized, domain.MsgUnauthorizedUser)

		_, err = f.accounts.GetByID(ctx, target.ID)
		assert.NoError(t, err)
	})

	t.Run("Missing account is NotFound", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.DeleteAccount(ctx, 999, &domain.Account{ID: 999})
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
	})

	t.Run("Owner deletion removes owned records and favorites", func(t *testing.T) {
		f := newFixture(t)
		me := f.register(t, "a@x.com", "yang")
		fan := f.register(t, "b@x.com", "fan")
		_, err := f.experience.Save(ctx, &domain.ExperienceRequest{CompanyName: "PickMe"}, me)
		require.NoError(t, err)
		_, err = f.account.Favorite(ctx, fan.ID, me)
		require.NoError(t, err)

		deleted, err := f.account.DeleteAccount(ctx, me.ID, me)
		require.NoError(t, err)
		assert.Equal(t, me.ID, deleted.ID)

		_, err = f.accounts.GetByID(ctx, me.ID)
		assert.True(t, errors.Is(err, domain.ErrNotFound))
		owned, err := f.experiences.ListByAccount(ctx, me.ID)
		require.NoError(t, err)
		assert.Empty(t, owned)
		stored, err := f.accounts.GetByID(ctx, fan.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.FavoriteCount)
	})
}

func TestLoadAccount(t *testing.T) {
	ctx := context.Background()

	t.Run("Profile requires a caller", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.LoadProfile(ctx, nil)
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
	})

	t.Run("Profile of a deleted caller is NotFound", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.LoadProfile(ctx, &domain.Account{ID: 42})
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
	})

	t.Run("First visit counts a hit and later visits do not", func(t *testing.T) {
		f := newFixture(t)
		target := f.register(t, "a@x.com", "yang")
		viewer := f.register(t, "b@x.com", "kim")

		got, err := f.account.LoadAccount(ctx, target.ID, viewer, true)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Hits)

		got, err = f.account.LoadAccount(ctx, target.ID, viewer, false)
		require.NoError(t, err)
		assert.Equal(t, int64(1), got.Hits)
		assert.False(t, got.FavoriteFlag)
	})

	t.Run("Missing account is reported before a missing caller", func(t *testing.T) {
		f := newFixture(t)
		_, err := f.account.LoadAccount(ctx, 999, nil, true)
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
	})

	t.Run("Anonymous caller is rejected without counting a hit", func(t *testing.T) {
		f := newFixture(t)
		target := f.register(t, "a@x.com", "yang")

		_, err := f.account.LoadAccount(ctx, target.ID, nil, true)
		assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)

		stored, err := f.accounts.GetByID(ctx, target.ID)
		require.NoError(t, err)
		assert.Zero(t, stored.Hits)
	})
}

func TestFavorite(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	star := f.register(t, "a@x.com", "star")
	fan := f.register(t, "b@x.com", "fan")

	got, err := f.account.Favorite(ctx, star.ID, fan)
	require.NoError(t, err)
	assert.True(t, got.FavoriteFlag)
	assert.Equal(t, int64(1), got.FavoriteCount)

	users, err := f.account.ListFavoriteUsers(ctx, star.ID)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Equal(t, fan.ID, users[0].ID)

	loaded, err := f.account.LoadAccount(ctx, star.ID, fan, false)
	require.NoError(t, err)
	assert.True(t, loaded.FavoriteFlag)

	got, err = f.account.Favorite(ctx, star.ID, fan)
	require.NoError(t, err)
	assert.False(t, got.FavoriteFlag)
	assert.Zero(t, got.FavoriteCount)

	_, err = f.account.Favorite(ctx, 999, fan)
	assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)

	_, err = f.account.ListFavoriteUsers(ctx, 999)
	assertAppError(t, err, apperror.KindNotFound, domain.MsgUserNotFound)
}

func TestLoadAccountsWithFilter(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	f.register(t, "a@x.com", "yangkiseok")
	f.register(t, "b@x.com", "kimdonghyun")
	f.registerEnterprise(t, "hr@x.com", "yang company")

	page, err := f.account.LoadAccountsWithFilter(ctx, domain.AccountFilter{NickName: "yang", OrderBy: "hits"}, domain.Pageable{Size: 10})

	require.NoError(t, err)
	require.Len(t, page.Content, 1)
	assert.Equal(t, "yangkiseok", page.Content[0].NickName)
	assert.Equal(t, int64(1), page.Total)
}

// Updates load and write without a lock, so concurrent writers race and the last write wins.
// This test documents that behaviour; it does not assert any serialization.
func TestConcurrentUpdatesRaceLastWriteWins(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	me := f.register(t, "a@x.com", "before")

	names := []string{"first", "second"}
	var wg sync.WaitGroup
	errs := make([]error, len(names))
	for i, name := range names {
		i, name := i, name
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, errs[i] = f.account.UpdateAccount(ctx, me.ID, &domain.AccountRequest{NickName: name}, me)
		}()
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}
	stored, err := f.accounts.GetByID(ctx, me.ID)
	require.NoError(t, err)
	assert.Contains(t, names, stored.NickName)
}

func TestSaveAccountBlockedByPendingCode(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	now := time.Now()

	require.NoError(t, f.codes.Save(ctx, &domain.VerificationCode{
		Email: "a@x.com", Code: "123456", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
	}))
	_, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{Email: "a@x.com", Password: "password1", NickName: "yang"})
	assertAppError(t, err, apperror.KindUnverified, domain.MsgUnverifiedUser)

	t.Run("Duplicate is reported before an outstanding code", func(t *testing.T) {
		f.register(t, "b@x.com", "kim")
		require.NoError(t, f.codes.Save(ctx, &domain.VerificationCode{
			Email: "b@x.com", Code: "123456", ExpiresAt: now.Add(time.Minute), CreatedAt: now,
		}))
		_, err := f.account.SaveAccount(ctx, &domain.AccountInitialRequest{Email: "b@x.com", Password: "password1", NickName: "kim"})
		assertAppError(t, err, apperror.KindDuplicate, domain.MsgDuplicatedUser)
	})

	t.Run("Expired code no longer blocks registration", func(t *testing.T) {
		require.NoError(t, f.codes.Save(ctx, &domain.VerificationCode{
			Email: "c@x.com", Code: "123456", ExpiresAt: now.Add(-time.Minute), CreatedAt: now.Add(-time.Hour),
		}))
		f.register(t, "c@x.com", "lee")
	})
}
