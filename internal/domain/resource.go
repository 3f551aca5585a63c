package domain

import "context"

// Ownership is the identity and foreign key shared by every account-owned record.
type Ownership struct {
	ID        int64 `json:"id"`
	AccountID int64 `json:"accountId"`
}

func (o *Ownership) Ref() *Ownership { return o }

// Owned is implemented by pointers to the sub-resource types below.
type Owned interface {
	Ref() *Ownership
}

// Dates are ISO local dates (2006-01-02).

type Experience struct {
	Ownership
	CompanyName string `json:"companyName"`
	Position    string `json:"position"`
	JoinedAt    string `json:"joinedAt"`
	RetiredAt   string `json:"retiredAt"`
	Description string `json:"description"`
}

type License struct {
	Ownership
	Name        string `json:"name"`
	Institution string `json:"institution"`
	IssuedDate  string `json:"issuedDate"`
	Description string `json:"description"`
}

type Prize struct {
	Ownership
	Competition string `json:"competition"`
	Name        string `json:"name"`
	IssuedDate  string `json:"issuedDate"`
	Description string `json:"description"`
}

type Project struct {
	Ownership
	Name        string `json:"name"`
	Role        string `json:"role"`
	Description string `json:"description"`
	StartedAt   string `json:"startedAt"`
	EndedAt     string `json:"endedAt"`
	ProjectLink string `json:"projectLink"`
}

type SelfInterview struct {
	Ownership
	Title   string `json:"title"`
	Content string `json:"content"`
}

type ExperienceRequest struct {
	CompanyName string `json:"companyName" validate:"required"`
	Position    string `json:"position"`
	JoinedAt    string `json:"joinedAt" validate:"omitempty,datetime=2006-01-02,not_future"`
	RetiredAt   string `json:"retiredAt" validate:"omitempty,datetime=2006-01-02"`
	Description string `json:"description"`
}

func (r *ExperienceRequest) ApplyTo(e *Experience) {
	e.CompanyName = r.CompanyName
	e.Position = r.Position
	e.JoinedAt = r.JoinedAt
	e.RetiredAt = r.RetiredAt
	e.Description = r.Description
}

type LicenseRequest struct {
	Name        string `json:"name" validate:"required"`
	Institution string `json:"institution"`
	IssuedDate  string `json:"issuedDate" validate:"omitempty,datetime=2006-01-02,not_future"`
	Description string `json:"description"`
}

func (r *LicenseRequest) ApplyTo(l *License) {
	l.Name = r.Name
	l.Institution = r.Institution
	l.IssuedDate = r.IssuedDate
	l.Description = r.Description
}

type PrizeRequest struct {
	Competition string `json:"competition" validate:"required"`
	Name        string `json:"name"`
	IssuedDate  string `json:"issuedDate"`
	Description string `json:"description"`
}

func (r *PrizeRequest) ApplyTo(p *Prize) {
	p.Competition = r.Competition
	p.Name = r.Name
	p.IssuedDate = r.IssuedDate
	p.Description = r.Description
}

type ProjectRequest struct {
	Name        string `json:"name" validate:"required"`
	Role        string `json:"role"`
	Description string `json:"description"`
	StartedAt   string `json:"startedAt" validate:"omitempty,datetime=2006-01-02"`
	EndedAt     string `json:"endedAt" validate:"omitempty,datetime=2006-01-02"`
	ProjectLink string `json:"projectLink" validate:"omitempty,url"`
}

func (r *ProjectRequest) ApplyTo(p *Project) {
	p.Name = r.Name
	p.Role = r.Role
	p.Description = r.Description
	p.StartedAt = r.StartedAt
	p.EndedAt = r.EndedAt
	p.ProjectLink = r.ProjectLink
}

type SelfInterviewRequest struct {
	Title   string `json:"title" validate:"required"`
	Content string `json:"content" validate:"required"`
}

func (r *SelfInterviewRequest) ApplyTo(s *SelfInterview) {
	s.Title = r.Title
	s.Content = r.Content
}

// ResourceRepository stores one kind of account-owned record.
type ResourceRepository[T Owned] interface {
	Create(ctx context.Context, item T) error
	GetByID(ctx context.Context, id int64) (T, error)
	Update(ctx context.Context, item T) error
	Delete(ctx context.Context, id int64) error
	ListByAccount(ctx context.Context, accountID int64) ([]T, error)
}

// ResourceRequest is a write payload that copies its fields onto a T.
type ResourceRequest[T Owned] interface {
	ApplyTo(T)
}

type ResourceUsecase[T Owned, R ResourceRequest[T]] interface {
	Save(ctx context.Context, req R, caller *Account) (T, error)
	Update(ctx context.Context, id int64, req R, caller *Account) (T, error)
	Delete(ctx context.Context, id int64, caller *Account) (T, error)
}
