package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Resume is the aggregate that owns the three experience collections. Child rows have no life
// outside of their resume and are saved with it.
type Resume struct {
	ID                 int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	OwnerID            uuid.UUID `json:"owner_id" gorm:"type:uuid;index;not null"`
	Name               string    `json:"name" gorm:"size:200" validate:"max=200"`
	Email              string    `json:"email" gorm:"size:320" validate:"omitempty,email,max=320"`
	Phone              string    `json:"phone" gorm:"size:50" validate:"max=50"`
	Address            string    `json:"address" gorm:"size:500" validate:"max=500"`
	Country            string    `json:"country" gorm:"size:100" validate:"max=100"`
	LinkedIn           string    `json:"linked_in" gorm:"size:500" validate:"omitempty,url,max=500"`
	About              string    `json:"about" gorm:"type:text" validate:"max=4000"`
	CurrentDesignation string    `json:"current_designation" gorm:"size:200" validate:"max=200"`
	Skills             []string  `json:"skills" gorm:"serializer:json;type:text" validate:"max=100,dive,max=100"`

	WorkExperiences      []*WorkExperience      `json:"work_experiences" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" validate:"-"`
	EducationExperiences []*EducationExperience `json:"education_experiences" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" validate:"-"`
	SideProjects         []*SideProject         `json:"side_projects" gorm:"foreignKey:ResumeID;constraint:OnDelete:CASCADE" validate:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Resume) TableName() string { return "resumes" }

func (r *Resume) Validate() error {
	return ValidateStruct(r)
}

func (r *Resume) BeforeSave() {
	sanitizer := NewSecuritySanitizer()

	r.Name = sanitizer.SanitizeString(r.Name)
	r.Email = sanitizer.SanitizeString(r.Email)
	r.Phone = sanitizer.SanitizeString(r.Phone)
	r.Address = sanitizer.SanitizeString(r.Address)
	r.Country = sanitizer.SanitizeString(r.Country)
	r.LinkedIn = sanitizer.SanitizeString(r.LinkedIn)
	r.About = sanitizer.SanitizeString(r.About)
	r.CurrentDesignation = sanitizer.SanitizeString(r.CurrentDesignation)
	r.Skills = sanitizer.SanitizeStrings(r.Skills)
}

// ExperienceIDs returns the ids of every persisted child row, per kind.
func (r *Resume) ExperienceIDs() map[ExperienceKind][]int64 {
	ids := map[ExperienceKind][]int64{
		ExperienceKindWork:        collectIDs(r.WorkExperiences),
		ExperienceKindEducation:   collectIDs(r.EducationExperiences),
		ExperienceKindSideProject: collectIDs(r.SideProjects),
	}
	return ids
}

func collectIDs[T Experience](items []T) []int64 {
	ids := make([]int64, 0, len(items))
	for _, item := range items {
		if id := item.GetID(); id != 0 {
			ids = append(ids, id)
		}
	}
	return ids
}

// ResumeRepository persists resumes. Every method takes an optional transaction; a nil tx runs
// against the repository's own connection.
type ResumeRepository interface {
	GetByID(ctx context.Context, tx *gorm.DB, id int64) (*Resume, error)
	ListByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) ([]*Resume, error)
	CountByOwner(ctx context.Context, tx *gorm.DB, ownerID uuid.UUID) (int64, error)
	Save(ctx context.Context, tx *gorm.DB, resume *Resume) error
	Delete(ctx context.Context, tx *gorm.DB, resume *Resume) error
	DeleteExperiences(ctx context.Context, tx *gorm.DB, resumeID int64, kind ExperienceKind, ids []int64) error
}

// ResumeCache keeps the per-owner resume listing warm. A miss is reported with ok=false.
type ResumeCache interface {
	GetByOwner(ctx context.Context, ownerID uuid.UUID) (resumes []*Resume, ok bool, err error)
	SetByOwner(ctx context.Context, ownerID uuid.UUID, resumes []*Resume) error
	Invalidate(ctx context.Context, ownerID uuid.UUID) error
}
