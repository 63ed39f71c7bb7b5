package services

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/vcs"
)

func newGitHubServiceForTest(users *stubUsers, students *stubStudents, portfolio *stubPortfolio, client *stubGitHub) *GitHubService {
	return NewGitHubService(users, students, portfolio, client, zerolog.Nop())
}

func connectedUser(id int64) *models.User {
	username := "alice"
	token := "gh-token"
	return &models.User{ID: id, Email: "alice@example.com", IsActive: true, GitHubUsername: &username, GitHubToken: &token}
}

func staleSyncedProject(studentID int64, repoID string) *models.PortfolioProject {
	return &models.PortfolioProject{StudentID: studentID, Title: "old-repo", Source: "github", GitHubRepoID: &repoID}
}

func TestSyncPrunesWhenNothingQualifies(t *testing.T) {
	portfolio := newStubPortfolio()
	repoID := "555"
	portfolio.synced[repoID] = staleSyncedProject(3, repoID)

	svc := newGitHubServiceForTest(
		newStubUsers(connectedUser(7)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		portfolio,
		&stubGitHub{repos: []vcs.Repo{
			{ID: 1, Name: "forked-lib", Fork: true},
			{ID: 2, Name: "another-fork", Fork: true},
		}},
	)

	resp, err := svc.Sync(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 0, resp.SyncedCount)
	assert.Equal(t, 1, portfolio.pruneCalls, "an empty selection still prunes")
	assert.Empty(t, portfolio.lastKeepIDs)
	assert.Empty(t, portfolio.synced, "projects from earlier syncs are removed")
}

func TestSyncKeepsTopStarredOwnedRepos(t *testing.T) {
	portfolio := newStubPortfolio()
	repos := []vcs.Repo{
		{ID: 100, Name: "fork-me", Stars: 900, Fork: true},
	}
	for i := 1; i <= 12; i++ {
		repos = append(repos, vcs.Repo{ID: int64(i), Name: "repo", Stars: i})
	}

	svc := newGitHubServiceForTest(
		newStubUsers(connectedUser(7)),
		newStubStudents(&models.Student{ID: 3, UserID: 7}),
		portfolio,
		&stubGitHub{repos: repos},
	)

	resp, err := svc.Sync(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 10, resp.SyncedCount)
	assert.Len(t, portfolio.synced, 10)
	assert.NotContains(t, portfolio.lastKeepIDs, "100", "forks are never synced")
	assert.NotContains(t, portfolio.lastKeepIDs, "1", "only the most starred repos are kept")
	assert.NotContains(t, portfolio.lastKeepIDs, "2", "only the most starred repos are kept")
	assert.Contains(t, portfolio.lastKeepIDs, "12")
}
