package services

import (
	"context"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/models/dto"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
)

// maxSyncedRepos caps how many repositories a sync pulls into the portfolio
const maxSyncedRepos = 10

// GitHubService links GitHub accounts and syncs repositories into portfolios
type GitHubService struct {
	userRepo      userStore
	studentRepo   studentStore
	portfolioRepo portfolioStore
	client        githubAPI
	logger        zerolog.Logger
}

// NewGitHubService creates a new GitHubService
func NewGitHubService(
	userRepo userStore,
	studentRepo studentStore,
	portfolioRepo portfolioStore,
	client githubAPI,
	logger zerolog.Logger,
) *GitHubService {
	return &GitHubService{
		userRepo:      userRepo,
		studentRepo:   studentRepo,
		portfolioRepo: portfolioRepo,
		client:        client,
		logger:        logger,
	}
}

// AuthorizeURL builds the OAuth redirect for linking an account
func (s *GitHubService) AuthorizeURL(state string) string {
	return s.client.AuthorizeURL(state)
}

// Connect exchanges an OAuth code and links the GitHub account to the user
func (s *GitHubService) Connect(ctx context.Context, userID int64, req *dto.ConnectGitHubRequest) (*models.User, error) {
	token, err := s.client.ExchangeCode(ctx, req.Code)
	if err != nil {
		return nil, apperrors.NewCustomError(apperrors.ErrBadRequest, "github authorization failed")
	}

	ghUser, err := s.client.GetUser(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("error fetching github user: %w", err)
	}

	if err := s.userRepo.ConnectGitHub(ctx, userID, ghUser.Login, token); err != nil {
		return nil, err
	}

	s.logger.Info().Int64("userID", userID).Str("githubUsername", ghUser.Login).Msg("GitHub account linked")
	return s.userRepo.GetByID(ctx, userID)
}

// Disconnect unlinks the GitHub account
func (s *GitHubService) Disconnect(ctx context.Context, userID int64) error {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if user.GitHubUsername == nil {
		return apperrors.ErrGitHubNotConnected
	}
	return s.userRepo.DisconnectGitHub(ctx, userID)
}

// Sync pulls the user's repositories and mirrors the most starred ones
// into the student's portfolio. Previously synced repositories that
// dropped out of the selection are pruned.
func (s *GitHubService) Sync(ctx context.Context, userID int64) (*dto.GitHubSyncResponse, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user.GitHubUsername == nil || user.GitHubToken == nil {
		return nil, apperrors.ErrGitHubNotConnected
	}

	student, err := s.studentRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}

	repos, err := s.client.ListRepos(ctx, *user.GitHubToken)
	if err != nil {
		return nil, fmt.Errorf("error listing github repositories: %w", err)
	}

	// Forks carry no portfolio signal
	owned := repos[:0]
	for _, repo := range repos {
		if !repo.Fork {
			owned = append(owned, repo)
		}
	}

	sort.Slice(owned, func(i, j int) bool {
		return owned[i].Stars > owned[j].Stars
	})
	if len(owned) > maxSyncedRepos {
		owned = owned[:maxSyncedRepos]
	}

	keepIDs := make([]string, 0, len(owned))
	for _, repo := range owned {
		repoID := strconv.FormatInt(repo.ID, 10)
		project := &models.PortfolioProject{
			StudentID:    student.ID,
			Title:        repo.Name,
			Description:  repo.Description,
			GitHubURL:    repo.HTMLURL,
			Tags:         repo.Topics,
			GitHubRepoID: &repoID,
			Stars:        repo.Stars,
			Forks:        repo.Forks,
			Language:     repo.Language,
		}
		if err := s.portfolioRepo.UpsertSyncedProject(ctx, project); err != nil {
			return nil, err
		}
		keepIDs = append(keepIDs, repoID)
	}

	// An empty keep list still prunes, otherwise projects from a
	// previous sync would outlive repositories that no longer qualify.
	pruned, err := s.portfolioRepo.DeleteStaleSyncedProjects(ctx, student.ID, keepIDs)
	if err != nil {
		return nil, err
	}
	if pruned > 0 {
		s.logger.Info().Int64("studentID", student.ID).Int64("pruned", pruned).Msg("Pruned stale synced projects")
	}

	syncedAt := time.Now()
	if err := s.userRepo.TouchGitHubSync(ctx, userID, syncedAt); err != nil {
		s.logger.Error().Err(err).Int64("userID", userID).Msg("Failed to record sync time")
	}

	s.logger.Info().Int64("userID", userID).Int("synced", len(keepIDs)).Msg("GitHub portfolio synced")
	return &dto.GitHubSyncResponse{
		Username:    *user.GitHubUsername,
		SyncedCount: len(keepIDs),
		LastSyncedAt: syncedAt.Format(time.RFC3339),
	}, nil
}

// AddProject records a manually entered portfolio project
func (s *GitHubService) AddProject(ctx context.Context, studentID int64, req *dto.CreateProjectRequest) (*models.PortfolioProject, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}

	project := &models.PortfolioProject{
		StudentID:   studentID,
		Title:       req.Title,
		Description: req.Description,
		GitHubURL:   req.GitHubURL,
		LiveURL:     req.LiveURL,
		Tags:        req.Tags,
		Source:      "manual",
	}
	if err := s.portfolioRepo.CreateProject(ctx, project); err != nil {
		return nil, err
	}

	return project, nil
}

// ListProjects retrieves a student's portfolio projects
func (s *GitHubService) ListProjects(ctx context.Context, studentID int64) ([]*models.PortfolioProject, error) {
	if _, err := s.studentRepo.GetByID(ctx, studentID); err != nil {
		return nil, err
	}
	return s.portfolioRepo.ListProjectsByStudent(ctx, studentID)
}

// DeleteProject removes a portfolio project owned by the student
func (s *GitHubService) DeleteProject(ctx context.Context, id, studentID int64) error {
	return s.portfolioRepo.DeleteProject(ctx, id, studentID)
}
