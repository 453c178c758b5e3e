package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain/dto"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/service/experience"
)

const DefaultMaxResumesPerOwner = 3

type ResumeService interface {
	// CreateResume stores a new resume for owner. A request carrying a positive id updates that
	// resume instead.
	CreateResume(ctx context.Context, ownerID uuid.UUID, req *dto.ResumeRequest) (*domain.Resume, error)
	UpdateResume(ctx context.Context, ownerID uuid.UUID, req *dto.ResumeRequest) (*domain.Resume, error)
	DeleteResume(ctx context.Context, ownerID uuid.UUID, resumeID int64) error
	GetResume(ctx context.Context, ownerID uuid.UUID, resumeID int64) (*domain.Resume, error)
	ListResumes(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resume, error)
}

type resumeService struct {
	db          *gorm.DB
	resumeRepo  domain.ResumeRepository
	cache       domain.ResumeCache
	experiences experience.Service
	maxResumes  int
}

// NewResumeService wires the resume use cases. cache may be nil.
func NewResumeService(
	db *gorm.DB,
	resumeRepo domain.ResumeRepository,
	cache domain.ResumeCache,
	experiences experience.Service,
	maxResumes int,
) ResumeService {
	if maxResumes <= 0 {
		maxResumes = DefaultMaxResumesPerOwner
	}
	return &resumeService{
		db:          db,
		resumeRepo:  resumeRepo,
		cache:       cache,
		experiences: experiences,
		maxResumes:  maxResumes,
	}
}

func (s *resumeService) CreateResume(ctx context.Context, ownerID uuid.UUID, req *dto.ResumeRequest) (*domain.Resume, error) {
	if req.ID > 0 {
		return s.UpdateResume(ctx, ownerID, req)
	}

	update, err := req.ToUpdate()
	if err != nil {
		return nil, err
	}

	resume := &domain.Resume{OwnerID: ownerID}
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		count, err := s.resumeRepo.CountByOwner(ctx, tx, ownerID)
		if err != nil {
			return fmt.Errorf("failed to count resumes: %w", err)
		}
		if count >= int64(s.maxResumes) {
			return domain.ErrResumeLimitReached
		}
		return s.apply(ctx, tx, resume, req, update)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	log.Info().Int64("resume_id", resume.ID).Str("owner_id", ownerID.String()).Msg("resume created")
	return resume, nil
}

func (s *resumeService) UpdateResume(ctx context.Context, ownerID uuid.UUID, req *dto.ResumeRequest) (*domain.Resume, error) {
	if req.ID <= 0 {
		return nil, domain.NewValidationError("id", "field is required", domain.ErrRequired)
	}

	update, err := req.ToUpdate()
	if err != nil {
		return nil, err
	}

	var resume *domain.Resume
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loaded, err := s.loadOwned(ctx, tx, ownerID, req.ID)
		if err != nil {
			return err
		}
		resume = loaded
		return s.apply(ctx, tx, resume, req, update)
	})
	if err != nil {
		return nil, err
	}

	s.invalidate(ctx, ownerID)
	log.Info().Int64("resume_id", resume.ID).Str("owner_id", ownerID.String()).Msg("resume updated")
	return resume, nil
}

// apply copies the request onto resume, reconciles its experiences and saves it, all on tx.
func (s *resumeService) apply(ctx context.Context, tx *gorm.DB, resume *domain.Resume, req *dto.ResumeRequest, update *experience.Update) error {
	req.ApplyTo(resume)
	detachForeignIDs(resume, update)

	if err := validateSubmission(resume, update); err != nil {
		return err
	}

	deleter := experience.DeleterFunc(func(ctx context.Context, kind domain.ExperienceKind, ids []int64) error {
		return s.resumeRepo.DeleteExperiences(ctx, tx, resume.ID, kind, ids)
	})
	if err := s.experiences.SaveAllExperiences(ctx, resume, update, deleter); err != nil {
		return fmt.Errorf("failed to reconcile experiences: %w", err)
	}

	if err := s.resumeRepo.Save(ctx, tx, resume); err != nil {
		return fmt.Errorf("failed to save resume: %w", err)
	}
	return nil
}

func (s *resumeService) DeleteResume(ctx context.Context, ownerID uuid.UUID, resumeID int64) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		resume, err := s.loadOwned(ctx, tx, ownerID, resumeID)
		if err != nil {
			return err
		}

		ids := resume.ExperienceIDs()
		if err := s.resumeRepo.Delete(ctx, tx, resume); err != nil {
			return fmt.Errorf("failed to delete resume: %w", err)
		}

		log.Info().
			Int64("resume_id", resumeID).
			Int("work_experiences", len(ids[domain.ExperienceKindWork])).
			Int("education_experiences", len(ids[domain.ExperienceKindEducation])).
			Int("side_projects", len(ids[domain.ExperienceKindSideProject])).
			Msg("resume deleted")
		return nil
	})
	if err != nil {
		return err
	}

	s.invalidate(ctx, ownerID)
	return nil
}

func (s *resumeService) GetResume(ctx context.Context, ownerID uuid.UUID, resumeID int64) (*domain.Resume, error) {
	return s.loadOwned(ctx, nil, ownerID, resumeID)
}

func (s *resumeService) ListResumes(ctx context.Context, ownerID uuid.UUID) ([]*domain.Resume, error) {
	if s.cache != nil {
		resumes, ok, err := s.cache.GetByOwner(ctx, ownerID)
		if err != nil {
			log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("resume cache read failed")
		} else if ok {
			return resumes, nil
		}
	}

	resumes, err := s.resumeRepo.ListByOwner(ctx, nil, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}

	if s.cache != nil {
		if err := s.cache.SetByOwner(ctx, ownerID, resumes); err != nil {
			log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("resume cache write failed")
		}
	}
	return resumes, nil
}

func (s *resumeService) loadOwned(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID, resumeID int64) (*domain.Resume, error) {
	resume, err := s.resumeRepo.GetByID(ctx, tx, resumeID)
	if err != nil {
		if errors.Is(err, domain.ErrResumeNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	if resume.OwnerID != ownerID {
		return nil, domain.ErrResumeForbidden
	}
	return resume, nil
}

func (s *resumeService) invalidate(ctx context.Context, ownerID uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, ownerID); err != nil {
		log.Warn().Err(err).Str("owner_id", ownerID.String()).Msg("resume cache invalidation failed")
	}
}

// detachForeignIDs turns items whose id names no row of this resume into new items, so a save
// can never rewrite another resume's rows.
func detachForeignIDs(resume *domain.Resume, update *experience.Update) {
	owned := resume.ExperienceIDs()
	detach(resume.ID, domain.ExperienceKindWork, owned[domain.ExperienceKindWork], update.WorkExperiences)
	detach(resume.ID, domain.ExperienceKindEducation, owned[domain.ExperienceKindEducation], update.EducationExperiences)
	detach(resume.ID, domain.ExperienceKindSideProject, owned[domain.ExperienceKindSideProject], update.SideProjects)
}

func detach[T domain.Experience](resumeID int64, kind domain.ExperienceKind, owned []int64, items []T) {
	known := make(map[int64]struct{}, len(owned))
	for _, id := range owned {
		known[id] = struct{}{}
	}
	for _, item := range items {
		id := item.GetID()
		if id == 0 {
			continue
		}
		if _, ok := known[id]; ok {
			continue
		}
		log.Warn().
			Int64("resume_id", resumeID).
			Str("kind", string(kind)).
			Int64("id", id).
			Msg("ignoring experience id not owned by resume")
		item.ResetID()
	}
}

// validateSubmission sanitizes and validates the resume fields and every submitted item,
// returning all problems at once.
func validateSubmission(resume *domain.Resume, update *experience.Update) error {
	var errs domain.ValidationErrors

	collect := func(prefix string, model domain.DomainModel) error {
		err := domain.ValidateAndSanitize(model)
		if err == nil {
			return nil
		}
		var verrs domain.ValidationErrors
		if !errors.As(err, &verrs) {
			return err
		}
		if prefix != "" {
			verrs = verrs.Prefixed(prefix)
		}
		errs = append(errs, verrs...)
		return nil
	}

	if err := collect("", resume); err != nil {
		return err
	}
	for i, item := range update.WorkExperiences {
		if err := collect(fmt.Sprintf("work_experiences[%d]", i), item); err != nil {
			return err
		}
	}
	for i, item := range update.EducationExperiences {
		if err := collect(fmt.Sprintf("education_experiences[%d]", i), item); err != nil {
			return err
		}
	}
	for i, item := range update.SideProjects {
		if err := collect(fmt.Sprintf("side_projects[%d]", i), item); err != nil {
			return err
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
