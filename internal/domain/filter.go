package domain

// AccountFilter holds the optional criteria of an account search. Blank fields are ignored.
type AccountFilter struct {
	NickName         string `form:"nickName"`
	OneLineIntroduce string `form:"oneLineIntroduce"`
	Career           string `form:"career"`
	Positions        string `form:"positions"`
	Technology       string `form:"technology"`
	OrderBy          string `form:"orderBy"`
}

type EnterpriseFilter struct {
	Name    string `form:"name"`
	Address string `form:"address"`
}

// Pageable is a zero-based page request.
type Pageable struct {
	Page int `form:"page"`
	Size int `form:"size"`
}

func (p Pageable) Offset() int {
	return p.Page * p.Size
}

type Page[T any] struct {
	Content []T   `json:"content"`
	Total   int64 `json:"total"`
	Page    int   `json:"page"`
	Size    int   `json:"size"`
}
