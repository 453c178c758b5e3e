package experience

import (
	"context"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

// Deleter removes persisted experience rows by id. Implementations are expected to run inside
// the same transaction as the later resume save.
type Deleter interface {
	DeleteByIDs(ctx context.Context, kind domain.ExperienceKind, ids []int64) error
}

// DeleterFunc adapts a plain function to Deleter.
type DeleterFunc func(ctx context.Context, kind domain.ExperienceKind, ids []int64) error

func (f DeleterFunc) DeleteByIDs(ctx context.Context, kind domain.ExperienceKind, ids []int64) error {
	return f(ctx, kind, ids)
}

// Context carries one kind's reconciliation inputs and output for a single resume.
type Context[T domain.Experience] struct {
	kind      domain.ExperienceKind
	resume    *domain.Resume
	existing  []T
	requested []T
	deleter   Deleter
	result    []T
}

func (c *Context[T]) Kind() domain.ExperienceKind { return c.kind }

func (c *Context[T]) Resume() *domain.Resume { return c.resume }

// ExistingItems is the set currently attached to the resume.
func (c *Context[T]) ExistingItems() []T { return c.existing }

// RequestedItems is the converted submission. A nil slice means "remove everything".
func (c *Context[T]) RequestedItems() []T { return c.requested }

func (c *Context[T]) DeleteByIDs(ctx context.Context, ids []int64) error {
	return c.deleter.DeleteByIDs(ctx, c.kind, ids)
}

// Result holds the authoritative set once Reconcile has run.
func (c *Context[T]) Result() []T { return c.result }

func (c *Context[T]) setResult(items []T) { c.result = items }

func NewWorkContext(resume *domain.Resume, requested []*domain.WorkExperience, deleter Deleter) *Context[*domain.WorkExperience] {
	return &Context[*domain.WorkExperience]{
		kind:      domain.ExperienceKindWork,
		resume:    resume,
		existing:  resume.WorkExperiences,
		requested: requested,
		deleter:   deleter,
	}
}

func NewEducationContext(resume *domain.Resume, requested []*domain.EducationExperience, deleter Deleter) *Context[*domain.EducationExperience] {
	return &Context[*domain.EducationExperience]{
		kind:      domain.ExperienceKindEducation,
		resume:    resume,
		existing:  resume.EducationExperiences,
		requested: requested,
		deleter:   deleter,
	}
}

func NewSideProjectContext(resume *domain.Resume, requested []*domain.SideProject, deleter Deleter) *Context[*domain.SideProject] {
	return &Context[*domain.SideProject]{
		kind:      domain.ExperienceKindSideProject,
		resume:    resume,
		existing:  resume.SideProjects,
		requested: requested,
		deleter:   deleter,
	}
}
