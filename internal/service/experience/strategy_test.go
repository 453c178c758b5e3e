package experience

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

func date(t *testing.T, value string) *time.Time {
	t.Helper()
	d, err := time.Parse("2006-01-02", value)
	require.NoError(t, err)
	return &d
}

func TestWorkExperienceStrategy_SortsAndDerivesDesignation(t *testing.T) {
	resume := &domain.Resume{
		ID:                 1,
		CurrentDesignation: "Student",
		WorkExperiences: []*domain.WorkExperience{
			{ID: 1, Designation: "Intern", StartDate: date(t, "2015-01-01"), EndDate: date(t, "2015-06-01")},
			{ID: 2, Designation: "Engineer", StartDate: date(t, "2016-01-01"), EndDate: date(t, "2019-12-31")},
		},
	}
	requested := []*domain.WorkExperience{
		{ID: 1, Designation: "Intern", StartDate: date(t, "2015-01-01"), EndDate: date(t, "2015-06-01")},
		{ID: 2, Designation: "Engineer", StartDate: date(t, "2016-01-01"), EndDate: date(t, "2019-12-31")},
		{Designation: "Staff Engineer", StartDate: date(t, "2020-01-01")},
	}

	err := WorkExperienceStrategy{}.UpdateExperiences(context.Background(), NewWorkContext(resume, requested, &recordingDeleter{}))
	require.NoError(t, err)

	require.Len(t, resume.WorkExperiences, 3)
	assert.Equal(t, "Staff Engineer", resume.WorkExperiences[0].Designation)
	assert.Equal(t, "Engineer", resume.WorkExperiences[1].Designation)
	assert.Equal(t, "Intern", resume.WorkExperiences[2].Designation)
	assert.Equal(t, "Staff Engineer", resume.CurrentDesignation)
}

func TestWorkExperienceStrategy_EmptyResultKeepsDesignation(t *testing.T) {
	resume := &domain.Resume{
		ID:                 1,
		CurrentDesignation: "Consultant",
		WorkExperiences:    []*domain.WorkExperience{work(1, "Engineer")},
	}
	deleter := &recordingDeleter{}

	err := WorkExperienceStrategy{}.UpdateExperiences(context.Background(), NewWorkContext(resume, nil, deleter))
	require.NoError(t, err)

	assert.Empty(t, resume.WorkExperiences)
	assert.Equal(t, "Consultant", resume.CurrentDesignation)
	require.Len(t, deleter.calls, 1)
	assert.Equal(t, []int64{1}, deleter.calls[0].ids)
}

func TestWorkExperienceStrategy_TiesBrokenByID(t *testing.T) {
	resume := &domain.Resume{ID: 1, WorkExperiences: []*domain.WorkExperience{work(9, "x"), work(4, "y")}}
	requested := []*domain.WorkExperience{work(9, "Nine"), work(4, "Four")}

	err := WorkExperienceStrategy{}.UpdateExperiences(context.Background(), NewWorkContext(resume, requested, &recordingDeleter{}))
	require.NoError(t, err)

	assert.Equal(t, []int64{4, 9}, workIDs(resume.WorkExperiences))
	assert.Equal(t, "Four", resume.CurrentDesignation)
}

func TestWorkExperienceStrategy_DeleteFailureLeavesResume(t *testing.T) {
	existing := []*domain.WorkExperience{work(1, "Engineer")}
	resume := &domain.Resume{ID: 1, CurrentDesignation: "Engineer", WorkExperiences: existing}

	err := WorkExperienceStrategy{}.UpdateExperiences(context.Background(),
		NewWorkContext(resume, []*domain.WorkExperience{work(0, "Manager")}, &recordingDeleter{err: errors.New("down")}))
	require.Error(t, err)

	assert.Equal(t, existing, resume.WorkExperiences)
	assert.Equal(t, "Engineer", resume.CurrentDesignation)
}

func TestEducationExperienceStrategy_SortsPendingFirst(t *testing.T) {
	resume := &domain.Resume{ID: 1}
	requested := []*domain.EducationExperience{
		{ID: 3, Degree: "BSc", DateOfCompletion: date(t, "2012-06-01")},
		{ID: 5, Degree: "PhD"},
		{ID: 4, Degree: "MSc", DateOfCompletion: date(t, "2014-06-01")},
	}

	err := EducationExperienceStrategy{}.UpdateExperiences(context.Background(), NewEducationContext(resume, requested, &recordingDeleter{}))
	require.NoError(t, err)

	degrees := make([]string, 0, len(resume.EducationExperiences))
	for _, e := range resume.EducationExperiences {
		degrees = append(degrees, e.Degree)
		assert.Zero(t, e.ID, "first creation resets ids")
	}
	assert.Equal(t, []string{"PhD", "MSc", "BSc"}, degrees)
}

func TestSideProjectStrategy_Sorts(t *testing.T) {
	resume := &domain.Resume{
		ID:           1,
		SideProjects: []*domain.SideProject{{ID: 1, Name: "old"}, {ID: 2, Name: "gone"}},
	}
	requested := []*domain.SideProject{
		{ID: 1, Name: "old", StartDate: date(t, "2018-01-01"), EndDate: date(t, "2018-03-01")},
		{Name: "ongoing", StartDate: date(t, "2023-01-01")},
		{Name: "recent", StartDate: date(t, "2021-01-01"), EndDate: date(t, "2022-01-01")},
	}
	deleter := &recordingDeleter{}

	err := SideProjectStrategy{}.UpdateExperiences(context.Background(), NewSideProjectContext(resume, requested, deleter))
	require.NoError(t, err)

	names := make([]string, 0, len(resume.SideProjects))
	for _, p := range resume.SideProjects {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{"ongoing", "recent", "old"}, names)
	require.Len(t, deleter.calls, 1)
	assert.Equal(t, domain.ExperienceKindSideProject, deleter.calls[0].kind)
	assert.Equal(t, []int64{2}, deleter.calls[0].ids)
}

func TestDeriveCurrentDesignation(t *testing.T) {
	resume := &domain.Resume{CurrentDesignation: "keep"}
	DeriveCurrentDesignation(resume)
	assert.Equal(t, "keep", resume.CurrentDesignation)

	resume.WorkExperiences = []*domain.WorkExperience{work(1, "first"), work(2, "second")}
	DeriveCurrentDesignation(resume)
	assert.Equal(t, "first", resume.CurrentDesignation)
}
