package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository          *UserRepository
	TokenRepository         *TokenRepository
	StudentRepository       *StudentRepository
	InternshipRepository    *InternshipRepository
	ApplicationRepository   *ApplicationRepository
	MentorRepository        *MentorRepository
	CreditRepository        *CreditRepository
	NotificationRepository  *NotificationRepository
	ChatRepository          *ChatRepository
	MessageRepository       *MessageRepository
	ForumRepository         *ForumRepository
	CertificationRepository *CertificationRepository
	PortfolioRepository     *PortfolioRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:          NewUserRepository(db),
		TokenRepository:         NewTokenRepository(db),
		StudentRepository:       NewStudentRepository(db),
		InternshipRepository:    NewInternshipRepository(db),
		ApplicationRepository:   NewApplicationRepository(db),
		MentorRepository:        NewMentorRepository(db),
		CreditRepository:        NewCreditRepository(db),
		NotificationRepository:  NewNotificationRepository(db),
		ChatRepository:          NewChatRepository(db),
		MessageRepository:       NewMessageRepository(db),
		ForumRepository:         NewForumRepository(db),
		CertificationRepository: NewCertificationRepository(db),
		PortfolioRepository:     NewPortfolioRepository(db),
	}
}
