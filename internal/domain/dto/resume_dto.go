package dto

import (
	"fmt"
	"strings"
	"time"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
	"github.com/SLearnTribe/learntribe-resume-processor/internal/service/experience"
)

// DateLayout is the wire format of every date field.
const DateLayout = "2006-01-02"

const timestampLayout = "2006-01-02T15:04:05Z07:00"

// ResumeRequest is the body of POST and PUT /api/v1/resumes. A positive ID addresses an
// existing resume; item ids are optional and name the persisted row they update.
type ResumeRequest struct {
	ID                   int64                         `json:"id"`
	Name                 string                        `json:"name" binding:"omitempty,max=200"`
	Email                string                        `json:"email" binding:"omitempty,email"`
	Phone                string                        `json:"phone"`
	Address              string                        `json:"address"`
	Country              string                        `json:"country"`
	LinkedIn             string                        `json:"linked_in"`
	About                string                        `json:"about"`
	CurrentDesignation   string                        `json:"current_designation"`
	Skills               []string                      `json:"skills"`
	WorkExperiences      []*WorkExperienceRequest      `json:"work_experiences"`
	EducationExperiences []*EducationExperienceRequest `json:"education_experiences"`
	SideProjects         []*SideProjectRequest         `json:"side_projects"`
}

type WorkExperienceRequest struct {
	ID          *int64 `json:"id,omitempty"`
	Designation string `json:"designation"`
	OrgName     string `json:"org_name"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Years       int    `json:"years"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type EducationExperienceRequest struct {
	ID               *int64 `json:"id,omitempty"`
	Degree           string `json:"degree"`
	CollegeName      string `json:"college_name"`
	FieldOfStudy     string `json:"field_of_study"`
	DateOfCompletion string `json:"date_of_completion,omitempty"`
}

type SideProjectRequest struct {
	ID          *int64   `json:"id,omitempty"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Skills      []string `json:"skills"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
}

// ApplyTo copies the scalar fields of the request onto resume. Experience collections are left
// to the reconciliation engine.
func (req *ResumeRequest) ApplyTo(resume *domain.Resume) {
	resume.Name = req.Name
	resume.Email = req.Email
	resume.Phone = req.Phone
	resume.Address = req.Address
	resume.Country = req.Country
	resume.LinkedIn = req.LinkedIn
	resume.About = req.About
	resume.CurrentDesignation = req.CurrentDesignation
	resume.Skills = req.Skills
}

// ToUpdate converts the experience lists into domain records. Every malformed date is reported,
// with the field path of the item it belongs to.
func (req *ResumeRequest) ToUpdate() (*experience.Update, error) {
	var errs domain.ValidationErrors
	update := &experience.Update{}

	for i, item := range req.WorkExperiences {
		if item == nil {
			continue
		}
		prefix := fmt.Sprintf("work_experiences[%d]", i)
		start := parseDate(prefix+".start_date", item.StartDate, &errs)
		end := parseDate(prefix+".end_date", item.EndDate, &errs)
		update.WorkExperiences = append(update.WorkExperiences, &domain.WorkExperience{
			ID:          idValue(item.ID),
			Designation: item.Designation,
			OrgName:     item.OrgName,
			StartDate:   start,
			EndDate:     end,
			Years:       item.Years,
			Location:    item.Location,
			Description: item.Description,
		})
	}

	for i, item := range req.EducationExperiences {
		if item == nil {
			continue
		}
		prefix := fmt.Sprintf("education_experiences[%d]", i)
		update.EducationExperiences = append(update.EducationExperiences, &domain.EducationExperience{
			ID:               idValue(item.ID),
			Degree:           item.Degree,
			CollegeName:      item.CollegeName,
			FieldOfStudy:     item.FieldOfStudy,
			DateOfCompletion: parseDate(prefix+".date_of_completion", item.DateOfCompletion, &errs),
		})
	}

	for i, item := range req.SideProjects {
		if item == nil {
			continue
		}
		prefix := fmt.Sprintf("side_projects[%d]", i)
		start := parseDate(prefix+".start_date", item.StartDate, &errs)
		end := parseDate(prefix+".end_date", item.EndDate, &errs)
		update.SideProjects = append(update.SideProjects, &domain.SideProject{
			ID:          idValue(item.ID),
			Name:        item.Name,
			Description: item.Description,
			URL:         item.URL,
			Skills:      item.Skills,
			StartDate:   start,
			EndDate:     end,
		})
	}

	if len(errs) > 0 {
		return nil, errs
	}
	return update, nil
}

func idValue(id *int64) int64 {
	if id == nil || *id < 0 {
		return 0
	}
	return *id
}

func parseDate(field, value string, errs *domain.ValidationErrors) *time.Time {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		*errs = append(*errs, domain.ValidationError{
			Field:   field,
			Message: "must be a date in YYYY-MM-DD format",
			Type:    domain.ErrInvalidField,
			Value:   value,
		})
		return nil
	}
	return &t
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(DateLayout)
}

type ResumeResponse struct {
	ID                   int64                          `json:"id"`
	Name                 string                         `json:"name"`
	Email                string                         `json:"email"`
	Phone                string                         `json:"phone"`
	Address              string                         `json:"address"`
	Country              string                         `json:"country"`
	LinkedIn             string                         `json:"linked_in"`
	About                string                         `json:"about"`
	CurrentDesignation   string                         `json:"current_designation"`
	Skills               []string                       `json:"skills"`
	WorkExperiences      []*WorkExperienceResponse      `json:"work_experiences"`
	EducationExperiences []*EducationExperienceResponse `json:"education_experiences"`
	SideProjects         []*SideProjectResponse         `json:"side_projects"`
	CreatedAt            string                         `json:"created_at"`
	UpdatedAt            string                         `json:"updated_at"`
}

type WorkExperienceResponse struct {
	ID          int64  `json:"id"`
	Designation string `json:"designation"`
	OrgName     string `json:"org_name"`
	StartDate   string `json:"start_date,omitempty"`
	EndDate     string `json:"end_date,omitempty"`
	Years       int    `json:"years"`
	Location    string `json:"location"`
	Description string `json:"description"`
	Current     bool   `json:"current"`
}

type EducationExperienceResponse struct {
	ID               int64  `json:"id"`
	Degree           string `json:"degree"`
	CollegeName      string `json:"college_name"`
	FieldOfStudy     string `json:"field_of_study"`
	DateOfCompletion string `json:"date_of_completion,omitempty"`
}

type SideProjectResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	URL         string   `json:"url"`
	Skills      []string `json:"skills"`
	StartDate   string   `json:"start_date,omitempty"`
	EndDate     string   `json:"end_date,omitempty"`
}

// FromDomain converts domain.Resume into its API shape.
func (resp *ResumeResponse) FromDomain(resume *domain.Resume) *ResumeResponse {
	out := &ResumeResponse{
		ID:                   resume.ID,
		Name:                 resume.Name,
		Email:                resume.Email,
		Phone:                resume.Phone,
		Address:              resume.Address,
		Country:              resume.Country,
		LinkedIn:             resume.LinkedIn,
		About:                resume.About,
		CurrentDesignation:   resume.CurrentDesignation,
		Skills:               nonNilStrings(resume.Skills),
		WorkExperiences:      make([]*WorkExperienceResponse, 0, len(resume.WorkExperiences)),
		EducationExperiences: make([]*EducationExperienceResponse, 0, len(resume.EducationExperiences)),
		SideProjects:         make([]*SideProjectResponse, 0, len(resume.SideProjects)),
		CreatedAt:            resume.CreatedAt.Format(timestampLayout),
		UpdatedAt:            resume.UpdatedAt.Format(timestampLayout),
	}

	for _, e := range resume.WorkExperiences {
		out.WorkExperiences = append(out.WorkExperiences, &WorkExperienceResponse{
			ID:          e.ID,
			Designation: e.Designation,
			OrgName:     e.OrgName,
			StartDate:   formatDate(e.StartDate),
			EndDate:     formatDate(e.EndDate),
			Years:       e.Years,
			Location:    e.Location,
			Description: e.Description,
			Current:     e.IsCurrent(),
		})
	}
	for _, e := range resume.EducationExperiences {
		out.EducationExperiences = append(out.EducationExperiences, &EducationExperienceResponse{
			ID:               e.ID,
			Degree:           e.Degree,
			CollegeName:      e.CollegeName,
			FieldOfStudy:     e.FieldOfStudy,
			DateOfCompletion: formatDate(e.DateOfCompletion),
		})
	}
	for _, p := range resume.SideProjects {
		out.SideProjects = append(out.SideProjects, &SideProjectResponse{
			ID:          p.ID,
			Name:        p.Name,
			Description: p.Description,
			URL:         p.URL,
			Skills:      nonNilStrings(p.Skills),
			StartDate:   formatDate(p.StartDate),
			EndDate:     formatDate(p.EndDate),
		})
	}

	return out
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ResumesListResponse is the body of GET /api/v1/resumes.
type ResumesListResponse struct {
	Resumes []*ResumeResponse `json:"resumes"`
	Total   int               `json:"total"`
}

func NewResumesListResponse(resumes []*domain.Resume) *ResumesListResponse {
	out := &ResumesListResponse{
		Resumes: make([]*ResumeResponse, 0, len(resumes)),
		Total:   len(resumes),
	}
	for _, r := range resumes {
		out.Resumes = append(out.Resumes, (&ResumeResponse{}).FromDomain(r))
	}
	return out
}
