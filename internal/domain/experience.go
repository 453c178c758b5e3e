package domain

import (
	"cmp"
	"time"
)

type ExperienceKind string

const (
	ExperienceKindWork        ExperienceKind = "work_experience"
	ExperienceKindEducation   ExperienceKind = "education_experience"
	ExperienceKindSideProject ExperienceKind = "side_project"
)

// Experience is the capability shared by the three child record kinds of a Resume.
// An ID of zero means the record has not been persisted yet.
type Experience interface {
	GetID() int64
	ResetID()
}

type WorkExperience struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ResumeID    int64      `json:"-" gorm:"index;not null"`
	Designation string     `json:"designation" gorm:"size:200" validate:"required,max=200"`
	OrgName     string     `json:"org_name" gorm:"size:200" validate:"required,max=200"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	Years       int        `json:"years" validate:"min=0,max=80"`
	Location    string     `json:"location" gorm:"size:200" validate:"max=200"`
	Description string     `json:"description" gorm:"type:text" validate:"max=2000"`
}

func (WorkExperience) TableName() string { return "resume_work_experiences" }

func (e *WorkExperience) GetID() int64 { return e.ID }
func (e *WorkExperience) ResetID()     { e.ID = 0 }

func (e *WorkExperience) Validate() error {
	return ValidateStruct(e)
}

func (e *WorkExperience) BeforeSave() {
	sanitizer := NewSecuritySanitizer()

	e.Designation = sanitizer.SanitizeString(e.Designation)
	e.OrgName = sanitizer.SanitizeString(e.OrgName)
	e.Location = sanitizer.SanitizeString(e.Location)
	e.Description = sanitizer.SanitizeString(e.Description)
}

// IsCurrent reports whether the position is still held.
func (e *WorkExperience) IsCurrent() bool {
	return e.EndDate == nil
}

type EducationExperience struct {
	ID               int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ResumeID         int64      `json:"-" gorm:"index;not null"`
	Degree           string     `json:"degree" gorm:"size:200" validate:"required,max=200"`
	CollegeName      string     `json:"college_name" gorm:"size:200" validate:"required,max=200"`
	FieldOfStudy     string     `json:"field_of_study" gorm:"size:200" validate:"max=200"`
	DateOfCompletion *time.Time `json:"date_of_completion,omitempty"`
}

func (EducationExperience) TableName() string { return "resume_education_experiences" }

func (e *EducationExperience) GetID() int64 { return e.ID }
func (e *EducationExperience) ResetID()     { e.ID = 0 }

func (e *EducationExperience) Validate() error {
	return ValidateStruct(e)
}

func (e *EducationExperience) BeforeSave() {
	sanitizer := NewSecuritySanitizer()

	e.Degree = sanitizer.SanitizeString(e.Degree)
	e.CollegeName = sanitizer.SanitizeString(e.CollegeName)
	e.FieldOfStudy = sanitizer.SanitizeString(e.FieldOfStudy)
}

// IsCompleted returns true when a completion date is known.
func (e *EducationExperience) IsCompleted() bool {
	return e.DateOfCompletion != nil
}

type SideProject struct {
	ID          int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	ResumeID    int64      `json:"-" gorm:"index;not null"`
	Name        string     `json:"name" gorm:"size:200" validate:"required,max=200"`
	Description string     `json:"description" gorm:"type:text" validate:"max=2000"`
	URL         string     `json:"url" gorm:"size:500" validate:"omitempty,url,max=500"`
	Skills      []string   `json:"skills" gorm:"serializer:json;type:text" validate:"max=30,dive,max=100"`
	StartDate   *time.Time `json:"start_date,omitempty"`
	EndDate     *time.Time `json:"end_date,omitempty"`
}

func (SideProject) TableName() string { return "resume_side_projects" }

func (p *SideProject) GetID() int64 { return p.ID }
func (p *SideProject) ResetID()     { p.ID = 0 }

func (p *SideProject) Validate() error {
	return ValidateStruct(p)
}

func (p *SideProject) BeforeSave() {
	sanitizer := NewSecuritySanitizer()

	p.Name = sanitizer.SanitizeString(p.Name)
	p.Description = sanitizer.SanitizeString(p.Description)
	p.Skills = sanitizer.SanitizeStrings(p.Skills)
}

// CompareWorkExperiences orders work history most current first: ongoing positions, then by
// end date and start date descending. Remaining ties fall back to ascending id.
func CompareWorkExperiences(a, b *WorkExperience) int {
	if c := compareRecentFirst(a.EndDate, b.EndDate); c != 0 {
		return c
	}
	if c := compareLatestFirst(a.StartDate, b.StartDate); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// CompareEducationExperiences orders pending degrees first, then by completion date descending.
func CompareEducationExperiences(a, b *EducationExperience) int {
	if c := compareRecentFirst(a.DateOfCompletion, b.DateOfCompletion); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// CompareSideProjects uses the same recency rules as work history.
func CompareSideProjects(a, b *SideProject) int {
	if c := compareRecentFirst(a.EndDate, b.EndDate); c != 0 {
		return c
	}
	if c := compareLatestFirst(a.StartDate, b.StartDate); c != 0 {
		return c
	}
	return cmp.Compare(a.ID, b.ID)
}

// compareRecentFirst treats a nil end instant as "still ongoing", which sorts before any date.
func compareRecentFirst(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	default:
		return b.Compare(*a)
	}
}

// compareLatestFirst sorts later instants first and unknown instants last.
func compareLatestFirst(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	default:
		return b.Compare(*a)
	}
}
