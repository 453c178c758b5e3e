package experience

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SLearnTribe/learntribe-resume-processor/internal/domain"
)

func TestService_SaveAllExperiences_RunsKindsInOrder(t *testing.T) {
	resume := &domain.Resume{
		ID:                   1,
		WorkExperiences:      []*domain.WorkExperience{work(1, "a"), work(2, "b")},
		EducationExperiences: []*domain.EducationExperience{{ID: 10, Degree: "BSc"}},
		SideProjects:         []*domain.SideProject{{ID: 20, Name: "p"}},
	}
	update := &Update{
		WorkExperiences: []*domain.WorkExperience{work(2, "b")},
	}
	deleter := &recordingDeleter{}

	err := NewService().SaveAllExperiences(context.Background(), resume, update, deleter)
	require.NoError(t, err)

	assert.Equal(t, []deleteCall{
		{kind: domain.ExperienceKindWork, ids: []int64{1}},
		{kind: domain.ExperienceKindEducation, ids: []int64{10}},
		{kind: domain.ExperienceKindSideProject, ids: []int64{20}},
	}, deleter.calls)
	assert.Equal(t, []int64{2}, workIDs(resume.WorkExperiences))
	assert.Empty(t, resume.EducationExperiences)
	assert.Empty(t, resume.SideProjects)
	assert.Equal(t, "b", resume.CurrentDesignation)
}

func TestService_SaveAllExperiences_NewResume(t *testing.T) {
	resume := &domain.Resume{}
	update := &Update{
		WorkExperiences:      []*domain.WorkExperience{work(99, "Intern")},
		EducationExperiences: []*domain.EducationExperience{{ID: 12, Degree: "BSc"}},
		SideProjects:         []*domain.SideProject{{ID: 13, Name: "cli"}},
	}
	deleter := &recordingDeleter{}

	err := NewService().SaveAllExperiences(context.Background(), resume, update, deleter)
	require.NoError(t, err)

	assert.Empty(t, deleter.calls)
	require.Len(t, resume.WorkExperiences, 1)
	assert.Zero(t, resume.WorkExperiences[0].ID)
	require.Len(t, resume.EducationExperiences, 1)
	assert.Zero(t, resume.EducationExperiences[0].ID)
	require.Len(t, resume.SideProjects, 1)
	assert.Zero(t, resume.SideProjects[0].ID)
	assert.Equal(t, "Intern", resume.CurrentDesignation)
}

func TestService_SaveAllExperiences_StopsOnFirstFailure(t *testing.T) {
	boom := errors.New("boom")
	resume := &domain.Resume{
		ID:                   1,
		WorkExperiences:      []*domain.WorkExperience{work(1, "a")},
		EducationExperiences: []*domain.EducationExperience{{ID: 10, Degree: "BSc"}},
	}
	calls := 0
	deleter := DeleterFunc(func(_ context.Context, kind domain.ExperienceKind, _ []int64) error {
		calls++
		if kind == domain.ExperienceKindWork {
			return boom
		}
		return nil
	})

	err := NewService().SaveAllExperiences(context.Background(), resume, &Update{}, deleter)
	require.ErrorIs(t, err, boom)
	assert.Equal(t, 1, calls)
	assert.Len(t, resume.EducationExperiences, 1)
}

func TestService_SaveAllExperiences_NilInputs(t *testing.T) {
	err := NewService().SaveAllExperiences(context.Background(), nil, &Update{}, &recordingDeleter{})
	require.Error(t, err)

	resume := &domain.Resume{}
	err = NewService().SaveAllExperiences(context.Background(), resume, nil, &recordingDeleter{})
	require.NoError(t, err)
	assert.Empty(t, resume.WorkExperiences)
}
