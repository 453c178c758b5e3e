package experience

import (
	"context"
	"errors"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

// Update is the converted experience part of one resume submission. A nil slice for a kind
// removes every existing row of that kind.
type Update struct {
	WorkExperiences      []*domain.WorkExperience
	EducationExperiences []*domain.EducationExperience
	SideProjects         []*domain.SideProject
}

type Service interface {
	// SaveAllExperiences reconciles work, education and side projects, in that order, against
	// resume. The resume is mutated in place and must be saved by the caller within the same
	// transaction as deleter.
	SaveAllExperiences(ctx context.Context, resume *domain.Resume, update *Update, deleter Deleter) error
}

type service struct {
	work         Strategy[*domain.WorkExperience]
	education    Strategy[*domain.EducationExperience]
	sideProjects Strategy[*domain.SideProject]
}

func NewService() Service {
	return &service{
		work:         WorkExperienceStrategy{},
		education:    EducationExperienceStrategy{},
		sideProjects: SideProjectStrategy{},
	}
}

func (s *service) SaveAllExperiences(ctx context.Context, resume *domain.Resume, update *Update, deleter Deleter) error {
	if resume == nil {
		return errors.New("resume cannot be nil")
	}
	if update == nil {
		update = &Update{}
	}

	if err := s.work.UpdateExperiences(ctx, NewWorkContext(resume, update.WorkExperiences, deleter)); err != nil {
		return err
	}
	if err := s.education.UpdateExperiences(ctx, NewEducationContext(resume, update.EducationExperiences, deleter)); err != nil {
		return err
	}
	return s.sideProjects.UpdateExperiences(ctx, NewSideProjectContext(resume, update.SideProjects, deleter))
}
