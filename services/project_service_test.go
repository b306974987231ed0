package services

import (
	"context"
	"errors"
	"testing"

	"portfolio/database"
	"portfolio/database/dbtest"
	"portfolio/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestProjects(t *testing.T, usernames ...string) *ProjectService {
	t.Helper()
	db := dbtest.New(t)
	users := database.NewUserStore(db)
	for _, u := range usernames {
		require.NoError(t, users.Create(context.Background(), &models.User{Username: u, PasswordHash: "x"}))
	}
	return NewProjectService(database.NewProjectStore(db))
}

func TestCreateTwoProjectsDistinctIDs(t *testing.T) {
	ctx := context.Background()
	svc := newTestProjects(t, "alice")

	a, err := svc.CreateProject(ctx, "alice", ProjectInput{Title: "X"})
	require.NoError(t, err)
	b, err := svc.CreateProject(ctx, "alice", ProjectInput{Title: "X"})
	require.NoError(t, err)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, models.StatusPlanned, a.Status)
	assert.Equal(t, "alice", a.Owner)
	assert.Equal(t, []string{}, a.Technologies)

	list, err := svc.ListProjects(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, a.ID, list[0].ID)
	assert.Equal(t, b.ID, list[1].ID)
}

func TestCreateProjectValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestProjects(t, "alice")

	_, err := svc.CreateProject(ctx, "alice", ProjectInput{Title: "  "})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.CreateProject(ctx, "alice", ProjectInput{Title: "X", Status: "SHIPPED"})
	assert.True(t, errors.Is(err, models.ErrValidation))

	_, err = svc.CreateProject(ctx, "", ProjectInput{Title: "X"})
	assert.True(t, errors.Is(err, models.ErrAuthentication))

	list, err := svc.ListProjects(ctx, "alice")
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListProjectsIsScopedToOwner(t *testing.T) {
	ctx := context.Background()
	svc := newTestProjects(t, "alice", "bob")

	_, err := svc.CreateProject(ctx, "alice", ProjectInput{Title: "A"})
	require.NoError(t, err)
	_, err = svc.CreateProject(ctx, "bob", ProjectInput{Title: "B"})
	require.NoError(t, err)

	list, err := svc.ListProjects(ctx, "bob")
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "B", list[0].Title)

	list, err = svc.ListProjects(ctx, "carol")
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestDeleteProjectOwnership(t *testing.T) {
	ctx := context.Background()
	svc := newTestProjects(t, "alice", "bob")

	p, err := svc.CreateProject(ctx, "alice", ProjectInput{
		Title:        "Portfolio",
		Description:  "site",
		Technologies: []string{"go", "react"},
		Status:       "IN_PROGRESS",
	})
	require.NoError(t, err)

	err = svc.DeleteProject(ctx, "bob", p.ID)
	assert.True(t, errors.Is(err, models.ErrAuthorization), "got %v", err)

	after, err := svc.GetProject(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, p.Title, after.Title)
	assert.Equal(t, p.Description, after.Description)
	assert.Equal(t, p.Technologies, after.Technologies)
	assert.Equal(t, p.Status, after.Status)
	assert.Equal(t, "alice", after.Owner)

	require.NoError(t, svc.DeleteProject(ctx, "alice", p.ID))

	err = svc.DeleteProject(ctx, "alice", p.ID)
	assert.True(t, errors.Is(err, models.ErrNotFound))

	err = svc.DeleteProject(ctx, "alice", 4242)
	assert.True(t, errors.Is(err, models.ErrNotFound))
}

func TestUpdateProject(t *testing.T) {
	ctx := context.Background()
	svc := newTestProjects(t, "alice", "bob")

	p, err := svc.CreateProject(ctx, "alice", ProjectInput{Title: "Old", Status: "COMPLETED", Technologies: []string{"go"}})
	require.NoError(t, err)

	// any status may follow any other
	updated, err := svc.UpdateProject(ctx, "alice", p.ID, ProjectInput{Title: "New", Status: "PLANNED", Technologies: []string{"rust", " "}})
	require.NoError(t, err)
	assert.Equal(t, "New", updated.Title)
	assert.Equal(t, models.StatusPlanned, updated.Status)
	assert.Equal(t, []string{"rust"}, updated.Technologies)

	_, err = svc.UpdateProject(ctx, "bob", p.ID, ProjectInput{Title: "Hijack"})
	assert.True(t, errors.Is(err, models.ErrAuthorization))

	_, err = svc.UpdateProject(ctx, "alice", p.ID, ProjectInput{Title: ""})
	assert.True(t, errors.Is(err, models.ErrValidation))

	got, err := svc.GetProject(ctx, "alice", p.ID)
	require.NoError(t, err)
	assert.Equal(t, "New", got.Title)

	_, err = svc.GetProject(ctx, "bob", p.ID)
	assert.True(t, errors.Is(err, models.ErrAuthorization))
}
