package query_test

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pickme-backend/internal/domain"
	"pickme-backend/internal/query"
)

var base = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func fixture() []domain.Account {
	return []domain.Account{
		{ID: 1, NickName: "yangkiseok", OneLineIntroduce: "backend dev", Career: "신입", Positions: []string{"Backend"}, Technologies: []string{"Java", "Go"}, Role: domain.RoleUser, Hits: 5, FavoriteCount: 2, CreatedAt: base},
		{ID: 2, NickName: "kimdonghyun", OneLineIntroduce: "frontend", Career: "경력", Positions: []string{"Frontend"}, Technologies: []string{"React"}, Role: domain.RoleUser, Hits: 10, FavoriteCount: 0, CreatedAt: base.Add(time.Hour)},
		{ID: 3, NickName: "yangdaeun", OneLineIntroduce: "devops engineer", Career: "경력", Positions: []string{"DevOps", "Backend"}, Technologies: []string{"Go"}, Role: domain.RoleUser, Hits: 1, FavoriteCount: 7, CreatedAt: base.Add(2 * time.Hour)},
		{ID: 4, NickName: "pickme corp", Career: "경력", Positions: []string{"Backend"}, Technologies: []string{"Go"}, Role: domain.RoleEnterprise, Hits: 99, FavoriteCount: 9, CreatedAt: base.Add(3 * time.Hour)},
		{ID: 5, NickName: "parkminsu", OneLineIntroduce: "data", Career: "신입", Positions: []string{"Data Engineer"}, Technologies: []string{"Golang", "Python"}, Role: domain.RoleUser, Hits: 5, FavoriteCount: 2, CreatedAt: base.Add(4 * time.Hour)},
		{ID: 6, NickName: "leeyang", OneLineIntroduce: "backend dev", Career: "경력", Role: domain.RoleUser, Hits: 3, FavoriteCount: 1, CreatedAt: base.Add(4 * time.Hour)},
	}
}

func ids(accounts []domain.Account) []int64 {
	out := make([]int64, len(accounts))
	for i, a := range accounts {
		out[i] = a.ID
	}
	return out
}

func run(t *testing.T, items []domain.Account, f domain.AccountFilter, page domain.Pageable) *domain.Page[domain.Account] {
	t.Helper()
	result, err := query.Execute(context.Background(), query.Slice(items), query.AccountQuery(f), page)
	require.NoError(t, err)
	return result
}

func TestAccountPredicate(t *testing.T) {
	t.Run("No optional fields yields exactly the USER accounts", func(t *testing.T) {
		p := query.AccountPredicate(domain.AccountFilter{})
		assert.Equal(t, []string{"role"}, p.Names())

		result := run(t, fixture(), domain.AccountFilter{}, domain.Pageable{Size: 100})
		assert.Equal(t, int64(5), result.Total)
		assert.ElementsMatch(t, []int64{1, 2, 3, 5, 6}, ids(result.Content))
	})

	t.Run("Blank fields contribute no clause", func(t *testing.T) {
		p := query.AccountPredicate(domain.AccountFilter{NickName: "  ", Career: "", Technology: "\t"})
		assert.Equal(t, 1, p.Len())
	})

	t.Run("Each single field intersects the role-fixed set", func(t *testing.T) {
		cases := []struct {
			name   string
			filter domain.AccountFilter
			want   []int64
		}{
			{"nickName contains", domain.AccountFilter{NickName: "yang"}, []int64{1, 3, 6}},
			{"oneLineIntroduce contains", domain.AccountFilter{OneLineIntroduce: "dev"}, []int64{1, 3, 6}},
			{"career is exact", domain.AccountFilter{Career: "경력"}, []int64{2, 3, 6}},
			{"career does not match a fragment", domain.AccountFilter{Career: "경"}, []int64{}},
			{"positions contains in any element", domain.AccountFilter{Positions: "Back"}, []int64{1, 3}},
			{"technology is exact on any tag", domain.AccountFilter{Technology: "Go"}, []int64{1, 3}},
			{"technology ignores partial tags", domain.AccountFilter{Technology: "Gol"}, []int64{}},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				all := fixture()
				result := run(t, all, tc.filter, domain.Pageable{Size: 100})

				p := query.AccountPredicate(tc.filter)
				var expected []int64
				for _, a := range all {
					if a.Role == domain.RoleUser && p.Match(a) {
						expected = append(expected, a.ID)
					}
				}
				assert.ElementsMatch(t, tc.want, ids(result.Content))
				assert.ElementsMatch(t, expected, ids(result.Content))
				assert.Equal(t, int64(len(tc.want)), result.Total)
			})
		}
	})

	t.Run("Several fields combine with AND", func(t *testing.T) {
		result := run(t, fixture(), domain.AccountFilter{NickName: "yang", Career: "경력", Technology: "Go"}, domain.Pageable{Size: 10})
		assert.Equal(t, []int64{3}, ids(result.Content))
	})

	t.Run("Renders conjunctive SQL with escaped LIKE patterns", func(t *testing.T) {
		p := query.AccountPredicate(domain.AccountFilter{NickName: "50%_off", Career: "신입"})
		sql, args, err := p.Sqlizer().ToSql()
		require.NoError(t, err)
		assert.Equal(t, "(a.user_role = ? AND a.nick_name LIKE ? AND a.career = ?)", sql)
		assert.Equal(t, []interface{}{"USER", `%50\%\_off%`, "신입"}, args)
	})

	t.Run("Technology renders an existential join", func(t *testing.T) {
		sql, args, err := query.HasTechnology("Go").SQL.ToSql()
		require.NoError(t, err)
		assert.Contains(t, sql, "EXISTS (SELECT 1 FROM account_technologies")
		assert.Contains(t, sql, "t.name = ?")
		assert.Equal(t, []interface{}{"Go"}, args)
	})
}

func TestScenarioNickNameWithHitsOrder(t *testing.T) {
	accounts := []domain.Account{
		{ID: 1, NickName: "yangkiseok", Hits: 5, Role: domain.RoleUser, CreatedAt: base},
		{ID: 2, NickName: "kimdonghyun", Hits: 10, Role: domain.RoleUser, CreatedAt: base},
	}
	result := run(t, accounts, domain.AccountFilter{NickName: "yang", OrderBy: "hits"}, domain.Pageable{Size: 20})

	require.Len(t, result.Content, 1)
	assert.Equal(t, "yangkiseok", result.Content[0].NickName)
	assert.Equal(t, int64(1), result.Total)
}

func TestAccountOrder(t *testing.T) {
	t.Run("Absent, empty and unknown keys all order by newest first", func(t *testing.T) {
		want := ids(run(t, fixture(), domain.AccountFilter{OrderBy: "createdAt"}, domain.Pageable{Size: 100}).Content)
		assert.Equal(t, []int64{6, 5, 3, 2, 1}, want)

		for _, key := range []string{"", "bogus", "HITS", "createdAt desc"} {
			got := ids(run(t, fixture(), domain.AccountFilter{OrderBy: key}, domain.Pageable{Size: 100}).Content)
			assert.Equal(t, want, got, "key %q", key)
		}
	})

	t.Run("favorite orders by favorite count descending", func(t *testing.T) {
		content := run(t, fixture(), domain.AccountFilter{OrderBy: "favorite"}, domain.Pageable{Size: 100}).Content
		for i := 1; i < len(content); i++ {
			assert.GreaterOrEqual(t, content[i-1].FavoriteCount, content[i].FavoriteCount)
		}
		assert.Equal(t, []int64{3, 5, 1, 6, 2}, ids(content))
	})

	t.Run("hits orders by hit count descending", func(t *testing.T) {
		content := run(t, fixture(), domain.AccountFilter{OrderBy: "hits"}, domain.Pageable{Size: 100}).Content
		for i := 1; i < len(content); i++ {
			assert.GreaterOrEqual(t, content[i-1].Hits, content[i].Hits)
		}
		assert.Equal(t, []int64{2, 5, 1, 6, 3}, ids(content))
	})

	t.Run("Distinct counters are strictly descending", func(t *testing.T) {
		var accounts []domain.Account
		for i := int64(1); i <= 4; i++ {
			accounts = append(accounts, domain.Account{ID: i, Role: domain.RoleUser, Hits: i * 3, FavoriteCount: 10 - i, CreatedAt: base})
		}
		byHits := run(t, accounts, domain.AccountFilter{OrderBy: "hits"}, domain.Pageable{Size: 10}).Content
		byFav := run(t, accounts, domain.AccountFilter{OrderBy: "favorite"}, domain.Pageable{Size: 10}).Content
		for i := 1; i < len(accounts); i++ {
			assert.Greater(t, byHits[i-1].Hits, byHits[i].Hits)
			assert.Greater(t, byFav[i-1].FavoriteCount, byFav[i].FavoriteCount)
		}
	})

	t.Run("Renders a single key plus the id tie-break", func(t *testing.T) {
		assert.Equal(t, []string{"favorite_count DESC", "a.id DESC"}, query.AccountOrder("favorite").SQL)
		assert.Equal(t, []string{"a.hits DESC", "a.id DESC"}, query.AccountOrder("hits").SQL)
		assert.Equal(t, []string{"a.created_at DESC", "a.id DESC"}, query.AccountOrder("nope").SQL)
	})
}

func TestPaginationStability(t *testing.T) {
	var accounts []domain.Account
	for i := int64(1); i <= 23; i++ {
		accounts = append(accounts, domain.Account{
			ID:            i,
			NickName:      fmt.Sprintf("user%02d", i),
			Role:          domain.RoleUser,
			Hits:          i % 4,
			FavoriteCount: i % 3,
			CreatedAt:     base.Add(time.Duration(i%5) * time.Minute),
		})
	}

	for _, key := range []string{"", "favorite", "hits"} {
		full := run(t, accounts, domain.AccountFilter{OrderBy: key}, domain.Pageable{Size: 100})
		require.Equal(t, int64(23), full.Total)

		for _, size := range []int{1, 2, 5, 7, 23, 50} {
			t.Run(fmt.Sprintf("order %q size %d", key, size), func(t *testing.T) {
				var joined []int64
				seen := map[int64]bool{}
				for page := 0; ; page++ {
					result := run(t, accounts, domain.AccountFilter{OrderBy: key}, domain.Pageable{Page: page, Size: size})
					assert.Equal(t, full.Total, result.Total)
					if len(result.Content) == 0 {
						break
					}
					for _, a := range result.Content {
						assert.False(t, seen[a.ID], "duplicate id %d", a.ID)
						seen[a.ID] = true
						joined = append(joined, a.ID)
					}
				}
				assert.Equal(t, ids(full.Content), joined)
			})
		}
	}
}

type countingSource struct {
	query.Source[domain.Account]
	findCalls int
	countErr  error
}

func (c *countingSource) Count(ctx context.Context, where query.Predicate[domain.Account]) (int64, error) {
	if c.countErr != nil {
		return 0, c.countErr
	}
	return c.Source.Count(ctx, where)
}

func (c *countingSource) Find(ctx context.Context, where query.Predicate[domain.Account], order query.Order[domain.Account], limit, offset int) ([]domain.Account, error) {
	c.findCalls++
	return c.Source.Find(ctx, where, order, limit, offset)
}

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Offset past the end returns an empty page with the real total", func(t *testing.T) {
		src := &countingSource{Source: query.Slice(fixture())}
		result, err := query.Execute(ctx, src, query.AccountQuery(domain.AccountFilter{}), domain.Pageable{Page: 3, Size: 5})
		require.NoError(t, err)
		assert.Empty(t, result.Content)
		assert.NotNil(t, result.Content)
		assert.Equal(t, int64(5), result.Total)
		assert.Equal(t, 0, src.findCalls)
	})

	t.Run("Size zero or negative is clamped to one", func(t *testing.T) {
		for _, size := range []int{0, -4} {
			result, err := query.Execute(ctx, query.Slice(fixture()), query.AccountQuery(domain.AccountFilter{}), domain.Pageable{Page: 1, Size: size})
			require.NoError(t, err)
			assert.Equal(t, 1, result.Size)
			assert.Equal(t, []int64{5}, ids(result.Content))
		}
	})

	t.Run("Negative page is treated as the first page", func(t *testing.T) {
		result, err := query.Execute(ctx, query.Slice(fixture()), query.AccountQuery(domain.AccountFilter{}), domain.Pageable{Page: -2, Size: 2})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Page)
		assert.Equal(t, []int64{6, 5}, ids(result.Content))
	})

	t.Run("Huge page numbers do not overflow", func(t *testing.T) {
		result, err := query.Execute(ctx, query.Slice(fixture()), query.AccountQuery(domain.AccountFilter{}), domain.Pageable{Page: int(^uint(0) >> 1), Size: 100})
		require.NoError(t, err)
		assert.Empty(t, result.Content)
	})

	t.Run("Store errors are returned", func(t *testing.T) {
		boom := errors.New("connection reset")
		src := &countingSource{Source: query.Slice(fixture()), countErr: boom}
		_, err := query.Execute(ctx, src, query.AccountQuery(domain.AccountFilter{}), domain.Pageable{Size: 5})
		assert.ErrorIs(t, err, boom)
	})
}

func TestEnterpriseQuery(t *testing.T) {
	profiles := []domain.EnterpriseProfile{
		{Enterprise: domain.Enterprise{ID: 3, Name: "pickme", Address: "서울 강남구"}, Account: domain.Account{ID: 3, Role: domain.RoleEnterprise}},
		{Enterprise: domain.Enterprise{ID: 4, Name: "acme", Address: "부산 해운대구"}, Account: domain.Account{ID: 4, Role: domain.RoleEnterprise}},
		{Enterprise: domain.Enterprise{ID: 5, Name: "pick corp", Address: "서울 마포구"}, Account: domain.Account{ID: 5, Role: domain.RoleUser}},
	}

	result, err := query.Execute(context.Background(), query.Slice(profiles), query.EnterpriseQuery(domain.EnterpriseFilter{Address: "서울"}), domain.Pageable{Size: 10})
	require.NoError(t, err)
	require.Len(t, result.Content, 1)
	assert.Equal(t, "pickme", result.Content[0].Name)

	all, err := query.Execute(context.Background(), query.Slice(profiles), query.EnterpriseQuery(domain.EnterpriseFilter{}), domain.Pageable{Size: 10})
	require.NoError(t, err)
	assert.Equal(t, "acme", all.Content[0].Name)
	assert.Equal(t, "pickme", all.Content[1].Name)

	sql, _, err := sq.Select("e.id").From("enterprises e").Where(query.EnterprisePredicate(domain.EnterpriseFilter{Name: "pick"}).Sqlizer()).ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT e.id FROM enterprises e WHERE (a.user_role = ? AND e.name LIKE ?)", sql)
}
