package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) domain.ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) conn(ctx context.Context, tx *gorm.DB) *gorm.DB {
	transaction := tx
	if transaction == nil {
		transaction = r.db
	}
	return transaction.WithContext(ctx)
}

func withExperiences(db *gorm.DB) *gorm.DB {
	return db.
		Preload("WorkExperiences").
		Preload("EducationExperiences").
		Preload("SideProjects")
}

func (r *resumeRepository) GetByID(ctx context.Context, tx *gorm.DB, id int64) (*domain.Resume, error) {
	var resume domain.Resume
	err := withExperiences(r.conn(ctx, tx)).First(&resume, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrResumeNotFound
	}
	if err != nil {
		log.Error().Err(err).Int64("resume_id", id).Msg("failed to get resume")
		return nil, err
	}

	sortExperiences(&resume)
	return &resume, nil
}

func (r *resumeRepository) ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*domain.Resume, error) {
	var resumes []*domain.Resume
	err := withExperiences(r.conn(ctx, tx)).
		Where("owner_id = ?", ownerID).
		Order("id ASC").
		Find(&resumes).Error
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("failed to list resumes")
		return nil, err
	}

	for _, resume := range resumes {
		sortExperiences(resume)
	}
	return resumes, nil
}

func (r *resumeRepository) CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error) {
	var count int64
	err := r.conn(ctx, tx).
		Model(&domain.Resume{}).
		Where("owner_id = ?", ownerID).
		Count(&count).Error
	if err != nil {
		log.Error().Err(err).Str("owner_id", ownerID.String()).Msg("failed to count resumes")
		return 0, err
	}
	return count, nil
}

// Save inserts or updates the resume together with every child row it currently holds.
func (r *resumeRepository) Save(ctx context.Context, tx *gorm.DB, resume *domain.Resume) error {
	err := r.conn(ctx, tx).
		Session(&gorm.Session{FullSaveAssociations: true}).
		Save(resume).Error
	if err != nil {
		log.Error().Err(err).Int64("resume_id", resume.ID).Msg("failed to save resume")
		return err
	}
	return nil
}

// Delete removes the resume and all of its child rows. Without a caller transaction it opens one.
func (r *resumeRepository) Delete(ctx context.Context, tx *gorm.DB, resume *domain.Resume) error {
	if tx == nil {
		return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
			return r.Delete(ctx, tx, resume)
		})
	}

	for _, kind := range []domain.ExperienceKind{
		domain.ExperienceKindWork,
		domain.ExperienceKindEducation,
		domain.ExperienceKindSideProject,
	} {
		model, err := experienceModel(kind)
		if err != nil {
			return err
		}
		if err := r.conn(ctx, tx).Where("resume_id = ?", resume.ID).Delete(model).Error; err != nil {
			log.Error().Err(err).
				Int64("resume_id", resume.ID).
				Str("kind", string(kind)).
				Msg("failed to delete experiences")
			return err
		}
	}

	result := r.conn(ctx, tx).Delete(&domain.Resume{}, resume.ID)
	if result.Error != nil {
		log.Error().Err(result.Error).Int64("resume_id", resume.ID).Msg("failed to delete resume")
		return result.Error
	}
	if result.RowsAffected == 0 {
		return domain.ErrResumeNotFound
	}
	return nil
}

// DeleteExperiences removes rows of one kind by id. Rows belonging to other resumes are never
// touched.
func (r *resumeRepository) DeleteExperiences(ctx context.Context, tx *gorm.DB, resumeID int64, kind domain.ExperienceKind, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	model, err := experienceModel(kind)
	if err != nil {
		return err
	}

	err = r.conn(ctx, tx).
		Where("resume_id = ? AND id IN ?", resumeID, ids).
		Delete(model).Error
	if err != nil {
		log.Error().Err(err).
			Int64("resume_id", resumeID).
			Str("kind", string(kind)).
			Msg("failed to delete experiences")
		return err
	}
	return nil
}

func experienceModel(kind domain.ExperienceKind) (interface{}, error) {
	switch kind {
	case domain.ExperienceKindWork:
		return &domain.WorkExperience{}, nil
	case domain.ExperienceKindEducation:
		return &domain.EducationExperience{}, nil
	case domain.ExperienceKindSideProject:
		return &domain.SideProject{}, nil
	default:
		return nil, fmt.Errorf("unknown experience kind %q", kind)
	}
}

func sortExperiences(resume *domain.Resume) {
	slices.SortStableFunc(resume.WorkExperiences, domain.CompareWorkExperiences)
	slices.SortStableFunc(resume.EducationExperiences, domain.CompareEducationExperiences)
	slices.SortStableFunc(resume.SideProjects, domain.CompareSideProjects)
}
