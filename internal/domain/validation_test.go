package domain

import (
	"errors"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(year int, month time.Month, d int) *time.Time {
	t := time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestValidateStruct_MapsFieldErrors(t *testing.T) {
	exp := &WorkExperience{Designation: "Engineer", StartDate: day(2020, 1, 1), EndDate: day(2019, 1, 1)}

	err := exp.Validate()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))

	byField := map[string]ValidationError{}
	for _, v := range verrs {
		byField[v.Field] = v
	}
	require.Contains(t, byField, "org_name")
	assert.Equal(t, ErrRequired, byField["org_name"].Type)
	require.Contains(t, byField, "end_date")
	assert.Equal(t, ErrDateRange, byField["end_date"].Type)
	assert.Equal(t, "must not be before the start date", byField["end_date"].Message)
}

func TestValidateStruct_ResumeFields(t *testing.T) {
	resume := &Resume{Email: "not-an-email", LinkedIn: "linkedin"}

	err := resume.Validate()
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)

	assert.NoError(t, (&Resume{Email: "ada@example.com"}).Validate())
}

func TestSideProject_ValidateURLAndDates(t *testing.T) {
	assert.NoError(t, (&SideProject{Name: "cli", URL: "https://example.com"}).Validate())
	assert.Error(t, (&SideProject{Name: "cli", URL: "example"}).Validate())
	assert.Error(t, (&SideProject{Name: "cli", StartDate: day(2022, 1, 1), EndDate: day(2021, 1, 1)}).Validate())
}

func TestValidateAndSanitize_StripsMarkup(t *testing.T) {
	exp := &EducationExperience{
		Degree:      "  <b>BSc</b> ",
		CollegeName: "<script>alert(1)</script>State",
	}

	require.NoError(t, ValidateAndSanitize(exp))
	assert.Equal(t, "BSc", exp.Degree)
	assert.Equal(t, "State", exp.CollegeName)

	empty := &EducationExperience{Degree: "<i></i>", CollegeName: "State"}
	err := ValidateAndSanitize(empty)
	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "degree", verrs[0].Field)
}

func TestSecuritySanitizer_SanitizeStrings(t *testing.T) {
	got := NewSecuritySanitizer().SanitizeStrings([]string{" go ", "<p></p>", "", "sql"})
	assert.Equal(t, []string{"go", "sql"}, got)
}

func TestValidationErrors_Prefixed(t *testing.T) {
	errs := ValidationErrors{{Field: "degree", Message: "field is required", Type: ErrRequired}}

	prefixed := errs.Prefixed("education_experiences[1]")

	assert.Equal(t, "education_experiences[1].degree", prefixed[0].Field)
	assert.Equal(t, "degree", errs[0].Field)
	assert.Equal(t, "education_experiences[1].degree: field is required", prefixed.Error())
}

func TestCompareWorkExperiences(t *testing.T) {
	items := []*WorkExperience{
		{ID: 1, Designation: "old", StartDate: day(2010, 1, 1), EndDate: day(2012, 1, 1)},
		{ID: 2, Designation: "undated"},
		{ID: 3, Designation: "current", StartDate: day(2020, 1, 1)},
		{ID: 4, Designation: "same end, later start", StartDate: day(2011, 1, 1), EndDate: day(2012, 1, 1)},
		{ID: 5, Designation: "current, older", StartDate: day(2018, 1, 1)},
	}

	slices.SortStableFunc(items, CompareWorkExperiences)

	order := make([]int64, 0, len(items))
	for _, item := range items {
		order = append(order, item.ID)
	}
	assert.Equal(t, []int64{3, 5, 2, 4, 1}, order)
	assert.True(t, items[0].IsCurrent())
	assert.False(t, items[4].IsCurrent())
}

func TestCompareEducationExperiences(t *testing.T) {
	items := []*EducationExperience{
		{ID: 7, DateOfCompletion: day(2010, 6, 1)},
		{ID: 9},
		{ID: 8, DateOfCompletion: day(2015, 6, 1)},
		{ID: 6},
	}

	slices.SortStableFunc(items, CompareEducationExperiences)

	order := make([]int64, 0, len(items))
	for _, item := range items {
		order = append(order, item.ID)
	}
	assert.Equal(t, []int64{6, 9, 8, 7}, order)
	assert.False(t, items[0].IsCompleted())
}

func TestResume_ExperienceIDs(t *testing.T) {
	resume := &Resume{
		WorkExperiences:      []*WorkExperience{{ID: 1}, {ID: 0}},
		EducationExperiences: []*EducationExperience{{ID: 4}},
	}

	ids := resume.ExperienceIDs()

	assert.Equal(t, []int64{1}, ids[ExperienceKindWork])
	assert.Equal(t, []int64{4}, ids[ExperienceKindEducation])
	assert.Empty(t, ids[ExperienceKindSideProject])
}
