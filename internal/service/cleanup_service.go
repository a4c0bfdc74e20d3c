package service

import (
	"context"
	"log"
	"time"
)

// CleanupService periodically purges expired refresh tokens and lapsed
// password reset windows. Expiry checks on the hot paths stay authoritative;
// the sweeper only bounds table growth.
type CleanupService struct {
	tokens   RefreshTokenStore
	users    UserStore
	interval time.Duration
}

func NewCleanupService(tokens RefreshTokenStore, users UserStore, interval time.Duration) *CleanupService {
	return &CleanupService{
		tokens:   tokens,
		users:    users,
		interval: interval,
	}
}

// Start runs the sweep loop until the context is cancelled
func (s *CleanupService) Start(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	log.Printf("Token cleanup worker started - sweeping every %s", s.interval)

	for {
		select {
		case <-ctx.Done():
			log.Println("Token cleanup worker stopped")
			return
		case <-ticker.C:
			s.Sweep()
		}
	}
}

// Sweep runs one purge pass
func (s *CleanupService) Sweep() {
	now := time.Now()

	deleted, err := s.tokens.DeleteExpired(now)
	if err != nil {
		log.Printf("Error purging expired refresh tokens: %v", err)
	} else if deleted > 0 {
		log.Printf("Purged %d expired refresh tokens", deleted)
	}

	cleared, err := s.users.ClearExpiredResetTokens(now)
	if err != nil {
		log.Printf("Error clearing lapsed reset tokens: %v", err)
	} else if cleared > 0 {
		log.Printf("Cleared %d lapsed reset tokens", cleared)
	}
}
