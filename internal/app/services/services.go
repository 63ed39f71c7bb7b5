package services

// Services defined in this package:
// - AuthService: registration, login and token lifecycle
// - UserService: account management
// - StudentService: student records and extended profiles
// - InternshipService: internship postings
// - ApplicationService: application lifecycle and decisions
// - MentorService: mentors, sessions and reviews
// - CreditService: credit awards and balances
// - NotificationService: notifications and announcements
// - ChatService: chat rooms and room messaging
// - ForumService: discussion forums and posts
// - MessageService: private messaging
// - CertificationService: manual and document-extracted certifications
// - CVService: CV generation
// - GitHubService: GitHub linking and portfolio sync

// Services holds all the service instances
type Services struct {
	Auth          *AuthService
	User          *UserService
	Student       *StudentService
	Internship    *InternshipService
	Application   *ApplicationService
	Mentor        *MentorService
	Credit        *CreditService
	Notification  *NotificationService
	Chat          *ChatService
	Forum         *ForumService
	Message       *MessageService
	Certification *CertificationService
	CV            *CVService
	GitHub        *GitHubService
}
