package services

import (
	"context"
	"time"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/pkg/apperrors"
	"github.com/edusphere/edusphere/internal/pkg/vcs"
)

// In-memory stand-ins for the pgx repositories. Each embeds its store
// interface so a call to anything unstubbed panics loudly in the test.

type stubUsers struct {
	userStore
	users       map[int64]*models.User
	deactivated []int64
}

func newStubUsers(users ...*models.User) *stubUsers {
	s := &stubUsers{users: make(map[int64]*models.User)}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *stubUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, apperrors.ErrUserNotFound
	}
	return user, nil
}

func (s *stubUsers) GetByEmail(_ context.Context, email string) (*models.User, error) {
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.ErrUserNotFound
}

func (s *stubUsers) Deactivate(_ context.Context, id int64) error {
	user, ok := s.users[id]
	if !ok {
		return apperrors.ErrUserNotFound
	}
	user.IsActive = false
	s.deactivated = append(s.deactivated, id)
	return nil
}

func (s *stubUsers) TouchGitHubSync(_ context.Context, _ int64, _ time.Time) error {
	return nil
}

type stubTokens struct {
	tokenStore
	tokens     map[string]int64
	revokedAll []int64
}

func newStubTokens() *stubTokens {
	return &stubTokens{tokens: make(map[string]int64)}
}

func (s *stubTokens) CreateToken(_ context.Context, token string, userID int64, _ time.Time) error {
	s.tokens[token] = userID
	return nil
}

func (s *stubTokens) GetTokenUserID(_ context.Context, token string) (int64, error) {
	userID, ok := s.tokens[token]
	if !ok {
		return 0, apperrors.ErrTokenNotFound
	}
	return userID, nil
}

func (s *stubTokens) RevokeToken(_ context.Context, token string) error {
	delete(s.tokens, token)
	return nil
}

func (s *stubTokens) RevokeAllUserTokens(_ context.Context, userID int64) error {
	s.revokedAll = append(s.revokedAll, userID)
	for token, owner := range s.tokens {
		if owner == userID {
			delete(s.tokens, token)
		}
	}
	return nil
}

type stubStudents struct {
	studentStore
	students    map[int64]*models.Student
	deactivated []int64
}

func newStubStudents(students ...*models.Student) *stubStudents {
	s := &stubStudents{students: make(map[int64]*models.Student)}
	for _, st := range students {
		s.students[st.ID] = st
	}
	return s
}

func (s *stubStudents) GetByID(_ context.Context, id int64) (*models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return student, nil
}

func (s *stubStudents) GetByUserID(_ context.Context, userID int64) (*models.Student, error) {
	for _, student := range s.students {
		if student.UserID == userID {
			return student, nil
		}
	}
	return nil, apperrors.ErrStudentNotFound
}

func (s *stubStudents) Deactivate(_ context.Context, id int64) error {
	if _, ok := s.students[id]; !ok {
		return apperrors.ErrStudentNotFound
	}
	s.deactivated = append(s.deactivated, id)
	return nil
}

type stubInternships struct {
	internshipStore
	internships map[int64]*models.Internship
}

func newStubInternships(internships ...*models.Internship) *stubInternships {
	s := &stubInternships{internships: make(map[int64]*models.Internship)}
	for _, in := range internships {
		s.internships[in.ID] = in
	}
	return s
}

func (s *stubInternships) GetByID(_ context.Context, id int64) (*models.Internship, error) {
	internship, ok := s.internships[id]
	if !ok {
		return nil, apperrors.ErrInternshipNotFound
	}
	return internship, nil
}

func (s *stubInternships) SetActive(_ context.Context, id int64, active bool) error {
	internship, ok := s.internships[id]
	if !ok {
		return apperrors.ErrInternshipNotFound
	}
	internship.IsActive = active
	return nil
}

func (s *stubInternships) Delete(ctx context.Context, id int64) error {
	return s.SetActive(ctx, id, false)
}

type stubApplications struct {
	applicationStore
	applications map[int64]*models.Application
	nextID       int64
}

func newStubApplications(applications ...*models.Application) *stubApplications {
	s := &stubApplications{applications: make(map[int64]*models.Application), nextID: 1}
	for _, a := range applications {
		s.applications[a.ID] = a
		if a.ID >= s.nextID {
			s.nextID = a.ID + 1
		}
	}
	return s
}

func (s *stubApplications) Create(_ context.Context, application *models.Application) error {
	application.ID = s.nextID
	s.nextID++
	application.AppliedAt = time.Now()
	s.applications[application.ID] = application
	return nil
}

func (s *stubApplications) GetByID(_ context.Context, id int64) (*models.Application, error) {
	application, ok := s.applications[id]
	if !ok {
		return nil, apperrors.ErrApplicationNotFound
	}
	return application, nil
}

func (s *stubApplications) Exists(_ context.Context, studentID, internshipID int64) (bool, error) {
	for _, a := range s.applications {
		if a.StudentID == studentID && a.InternshipID == internshipID {
			return true, nil
		}
	}
	return false, nil
}

func (s *stubApplications) UpdateStatus(_ context.Context, id int64, status models.ApplicationStatus, rejectionReason *string, reviewedAt *time.Time) error {
	application, ok := s.applications[id]
	if !ok {
		return apperrors.ErrApplicationNotFound
	}
	application.Status = status
	application.RejectionReason = rejectionReason
	application.ReviewedAt = reviewedAt
	return nil
}

type stubCredits struct {
	creditStore
	balances map[int64]*models.Credit
	nextID   int64
}

func newStubCredits() *stubCredits {
	return &stubCredits{balances: make(map[int64]*models.Credit), nextID: 1}
}

func (s *stubCredits) ensure(studentID int64) *models.Credit {
	credit, ok := s.balances[studentID]
	if !ok {
		credit = &models.Credit{ID: s.nextID, StudentID: studentID, UpdatedAt: time.Now()}
		s.nextID++
		s.balances[studentID] = credit
	}
	return credit
}

func (s *stubCredits) Add(_ context.Context, studentID int64, amount int) (*models.Credit, error) {
	credit := s.ensure(studentID)
	credit.CreditsEarned += amount
	credit.UpdatedAt = time.Now()
	return credit, nil
}

func (s *stubCredits) GetByStudentID(_ context.Context, studentID int64) (*models.Credit, error) {
	return s.ensure(studentID), nil
}

type stubNotifications struct {
	notificationStore
	created []*models.Notification
}

func (s *stubNotifications) Create(_ context.Context, notification *models.Notification) error {
	s.created = append(s.created, notification)
	return nil
}

type stubPortfolio struct {
	portfolioStore
	synced      map[string]*models.PortfolioProject
	lastKeepIDs []string
	pruneCalls  int
}

func newStubPortfolio() *stubPortfolio {
	return &stubPortfolio{synced: make(map[string]*models.PortfolioProject)}
}

func (s *stubPortfolio) UpsertSyncedProject(_ context.Context, project *models.PortfolioProject) error {
	s.synced[*project.GitHubRepoID] = project
	return nil
}

func (s *stubPortfolio) DeleteStaleSyncedProjects(_ context.Context, _ int64, keepRepoIDs []string) (int64, error) {
	s.pruneCalls++
	s.lastKeepIDs = keepRepoIDs
	keep := make(map[string]bool, len(keepRepoIDs))
	for _, id := range keepRepoIDs {
		keep[id] = true
	}
	var pruned int64
	for id := range s.synced {
		if !keep[id] {
			delete(s.synced, id)
			pruned++
		}
	}
	return pruned, nil
}

type stubGitHub struct {
	githubAPI
	repos []vcs.Repo
}

func (s *stubGitHub) ListRepos(_ context.Context, _ string) ([]vcs.Repo, error) {
	return s.repos, nil
}
