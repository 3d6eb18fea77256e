package repos

type DB interface {
	NewSessionRepository() SessionRepository
	Close() error
}
