package services

import (
	"context"
	"time"

	"github.com/edusphere/edusphere/internal/app/models"
	"github.com/edusphere/edusphere/internal/app/repositories"
	"github.com/edusphere/edusphere/internal/pkg/vcs"
)

// Store seams consumed by the services. The pgx-backed repositories
// satisfy them; tests substitute in-memory fakes.

type userStore interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	Update(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
	Deactivate(ctx context.Context, id int64) error
	ConnectGitHub(ctx context.Context, userID int64, username, token string) error
	DisconnectGitHub(ctx context.Context, userID int64) error
	TouchGitHubSync(ctx context.Context, userID int64, syncedAt time.Time) error
}

type tokenStore interface {
	CreateToken(ctx context.Context, token string, userID int64, expiryDate time.Time) error
	GetTokenUserID(ctx context.Context, token string) (int64, error)
	RevokeToken(ctx context.Context, token string) error
	RevokeAllUserTokens(ctx context.Context, userID int64) error
}

type studentStore interface {
	Create(ctx context.Context, student *models.Student) error
	GetByID(ctx context.Context, id int64) (*models.Student, error)
	GetByUserID(ctx context.Context, userID int64) (*models.Student, error)
	GetProfile(ctx context.Context, studentID int64) (*models.Profile, error)
	List(ctx context.Context, filter repositories.StudentFilter, offset uint64, limit int) ([]*models.Student, int64, error)
	RollNumberExists(ctx context.Context, rollNumber string) (bool, error)
	SetApproved(ctx context.Context, id int64, approved bool) error
	Update(ctx context.Context, student *models.Student) error
	UpsertProfile(ctx context.Context, profile *models.Profile) error
	Deactivate(ctx context.Context, id int64) error
}

type internshipStore interface {
	Create(ctx context.Context, internship *models.Internship) error
	GetByID(ctx context.Context, id int64) (*models.Internship, error)
	List(ctx context.Context, filter repositories.InternshipFilter, offset uint64, limit int) ([]*models.Internship, int64, error)
	Update(ctx context.Context, internship *models.Internship) error
	SetActive(ctx context.Context, id int64, active bool) error
	Delete(ctx context.Context, id int64) error
}

type applicationStore interface {
	Create(ctx context.Context, application *models.Application) error
	GetByID(ctx context.Context, id int64) (*models.Application, error)
	Exists(ctx context.Context, studentID, internshipID int64) (bool, error)
	ListByStudent(ctx context.Context, studentID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error)
	ListByInternship(ctx context.Context, internshipID int64, status *models.ApplicationStatus, offset uint64, limit int) ([]*models.Application, int64, error)
	UpdateStatus(ctx context.Context, id int64, status models.ApplicationStatus, rejectionReason *string, reviewedAt *time.Time) error
}

type creditStore interface {
	Add(ctx context.Context, studentID int64, amount int) (*models.Credit, error)
	GetByStudentID(ctx context.Context, studentID int64) (*models.Credit, error)
	ListTop(ctx context.Context, limit int) ([]*models.Credit, error)
}

type notificationStore interface {
	Create(ctx context.Context, notification *models.Notification) error
	ListByUser(ctx context.Context, userID int64, unreadOnly bool, offset uint64, limit int) ([]*models.Notification, int64, error)
	CountUnread(ctx context.Context, userID int64) (int64, error)
	MarkRead(ctx context.Context, id, userID int64) error
	MarkAllRead(ctx context.Context, userID int64) (int64, error)
	Delete(ctx context.Context, id, userID int64) error
	CreateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	GetAnnouncementByID(ctx context.Context, id int64) (*models.Announcement, error)
	ListAnnouncements(ctx context.Context, activeOnly bool, audience *string, offset uint64, limit int) ([]*models.Announcement, int64, error)
	UpdateAnnouncement(ctx context.Context, announcement *models.Announcement) error
	DeleteAnnouncement(ctx context.Context, id int64) error
}

type portfolioStore interface {
	CreateProject(ctx context.Context, project *models.PortfolioProject) error
	UpsertSyncedProject(ctx context.Context, project *models.PortfolioProject) error
	ListProjectsByStudent(ctx context.Context, studentID int64) ([]*models.PortfolioProject, error)
	DeleteProject(ctx context.Context, id, studentID int64) error
	DeleteStaleSyncedProjects(ctx context.Context, studentID int64, keepRepoIDs []string) (int64, error)
}

type githubAPI interface {
	AuthorizeURL(state string) string
	ExchangeCode(ctx context.Context, code string) (string, error)
	GetUser(ctx context.Context, token string) (*vcs.User, error)
	ListRepos(ctx context.Context, token string) ([]vcs.Repo, error)
}
