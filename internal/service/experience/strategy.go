package experience

import (
	"context"
	"slices"

	"github.com/rs/zerolog/log"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

// Strategy reconciles one experience kind and writes the outcome back onto the resume.
type Strategy[T domain.Experience] interface {
	UpdateExperiences(ctx context.Context, c *Context[T]) error
}

// sortedResult reconciles c and returns its result ordered by compare. Ties keep request order.
func sortedResult[T domain.Experience](ctx context.Context, c *Context[T], compare func(a, b T) int) ([]T, error) {
	deleted, err := Reconcile(ctx, c)
	if err != nil {
		return nil, err
	}

	result := c.Result()
	slices.SortStableFunc(result, compare)

	log.Info().
		Str("kind", string(c.Kind())).
		Int64("resume_id", c.Resume().ID).
		Int("kept", len(result)).
		Int("deleted", len(deleted)).
		Msg("reconciled experiences")

	return result, nil
}

type WorkExperienceStrategy struct{}

func (WorkExperienceStrategy) UpdateExperiences(ctx context.Context, c *Context[*domain.WorkExperience]) error {
	result, err := sortedResult(ctx, c, domain.CompareWorkExperiences)
	if err != nil {
		return err
	}

	resume := c.Resume()
	resume.WorkExperiences = result
	DeriveCurrentDesignation(resume)
	return nil
}

// DeriveCurrentDesignation copies the designation of the first (most current) work experience
// onto the resume. An empty history leaves the field as it was.
func DeriveCurrentDesignation(resume *domain.Resume) {
	if len(resume.WorkExperiences) == 0 {
		return
	}
	resume.CurrentDesignation = resume.WorkExperiences[0].Designation
}

type EducationExperienceStrategy struct{}

func (EducationExperienceStrategy) UpdateExperiences(ctx context.Context, c *Context[*domain.EducationExperience]) error {
	result, err := sortedResult(ctx, c, domain.CompareEducationExperiences)
	if err != nil {
		return err
	}

	c.Resume().EducationExperiences = result
	return nil
}

type SideProjectStrategy struct{}

func (SideProjectStrategy) UpdateExperiences(ctx context.Context, c *Context[*domain.SideProject]) error {
	result, err := sortedResult(ctx, c, domain.CompareSideProjects)
	if err != nil {
		return err
	}

	c.Resume().SideProjects = result
	return nil
}
