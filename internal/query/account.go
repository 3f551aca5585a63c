package query

import (
	"slices"
	"strings"

	sq "github.com/Masterminds/squirrel"

	"pickme-backend/internal/domain"
)

// Column names assume accounts is aliased a and the favorite aggregate is selected as
// favorite_count.
const (
	ColAccountID       = "a.id"
	ColAccountRole     = "a.user_role"
	ColNickName        = "a.nick_name"
	ColOneLine         = "a.one_line_introduce"
	ColCareer          = "a.career"
	ColCreatedAt       = "a.created_at"
	ColHits            = "a.hits"
	ColFavoriteCount   = "favorite_count"
	ColEnterpriseID    = "e.id"
	ColEnterpriseName  = "e.name"
	ColEnterpriseAddr  = "e.address"
	OrderKeyFavorite   = "favorite"
	OrderKeyHits       = "hits"
	OrderKeyCreatedAt  = "createdAt"
	OrderKeyEnterprise = "name"
)

// AccountPredicate fixes role USER and adds one clause per non-blank filter field.
func AccountPredicate(f domain.AccountFilter) Predicate[domain.Account] {
	return Where(RoleIs(domain.RoleUser)).
		AndIf(f.NickName, func(v string) Clause[domain.Account] {
			return Contains("nickName", ColNickName, v, func(a domain.Account) string { return a.NickName })
		}).
		AndIf(f.OneLineIntroduce, func(v string) Clause[domain.Account] {
			return Contains("oneLineIntroduce", ColOneLine, v, func(a domain.Account) string { return a.OneLineIntroduce })
		}).
		AndIf(f.Career, func(v string) Clause[domain.Account] {
			return Equals("career", ColCareer, v, func(a domain.Account) string { return a.Career })
		}).
		AndIf(f.Positions, PositionContains).
		AndIf(f.Technology, HasTechnology)
}

func RoleIs(role domain.Role) Clause[domain.Account] {
	return Clause[domain.Account]{
		Name:  "role",
		SQL:   sq.Eq{ColAccountRole: string(role)},
		Match: func(a domain.Account) bool { return a.Role == role },
	}
}

// PositionContains matches when any of the account's positions contains v.
func PositionContains(v string) Clause[domain.Account] {
	return Clause[domain.Account]{
		Name: "positions",
		SQL:  sq.Expr("EXISTS (SELECT 1 FROM unnest(a.positions) AS p(name) WHERE p.name LIKE ?)", LikePattern(v)),
		Match: func(a domain.Account) bool {
			return slices.ContainsFunc(a.Positions, func(p string) bool { return strings.Contains(p, v) })
		},
	}
}

// HasTechnology matches when any linked technology tag equals v exactly.
func HasTechnology(v string) Clause[domain.Account] {
	return Clause[domain.Account]{
		Name: "technology",
		SQL: sq.Expr(`EXISTS (SELECT 1 FROM account_technologies atl JOIN technologies t ON t.id = atl.technology_id
WHERE atl.account_id = a.id AND t.name = ?)`, v),
		Match: func(a domain.Account) bool { return slices.Contains(a.Technologies, v) },
	}
}

func accountID(a domain.Account) int64 { return a.ID }

// AccountOrder resolves a sort key. Unknown or empty keys fall back to newest first.
func AccountOrder(key string) Order[domain.Account] {
	switch key {
	case OrderKeyFavorite:
		return Desc(OrderKeyFavorite, ColFavoriteCount, ColAccountID,
			func(a domain.Account) int64 { return a.FavoriteCount }, accountID)
	case OrderKeyHits:
		return Desc(OrderKeyHits, ColHits, ColAccountID,
			func(a domain.Account) int64 { return a.Hits }, accountID)
	default:
		return Desc(OrderKeyCreatedAt, ColCreatedAt, ColAccountID,
			func(a domain.Account) int64 { return a.CreatedAt.UnixNano() }, accountID)
	}
}

func AccountQuery(f domain.AccountFilter) Query[domain.Account] {
	return Query[domain.Account]{
		Resource: "account",
		Where:    AccountPredicate(f),
		OrderBy:  AccountOrder(f.OrderBy),
	}
}

// EnterprisePredicate fixes role ENTERPRISE on the owning account.
func EnterprisePredicate(f domain.EnterpriseFilter) Predicate[domain.EnterpriseProfile] {
	return Where(Clause[domain.EnterpriseProfile]{
		Name:  "role",
		SQL:   sq.Eq{ColAccountRole: string(domain.RoleEnterprise)},
		Match: func(p domain.EnterpriseProfile) bool { return p.Account.Role == domain.RoleEnterprise },
	}).
		AndIf(f.Name, func(v string) Clause[domain.EnterpriseProfile] {
			return Contains("name", ColEnterpriseName, v, func(p domain.EnterpriseProfile) string { return p.Name })
		}).
		AndIf(f.Address, func(v string) Clause[domain.EnterpriseProfile] {
			return Contains("address", ColEnterpriseAddr, v, func(p domain.EnterpriseProfile) string { return p.Address })
		})
}

// EnterpriseQuery always orders by company name.
func EnterpriseQuery(f domain.EnterpriseFilter) Query[domain.EnterpriseProfile] {
	return Query[domain.EnterpriseProfile]{
		Resource: "enterprise",
		Where:    EnterprisePredicate(f),
		OrderBy: Asc(OrderKeyEnterprise, ColEnterpriseName, ColEnterpriseID,
			func(p domain.EnterpriseProfile) string { return p.Name },
			func(p domain.EnterpriseProfile) int64 { return p.ID }),
	}
}
