package service

import (
	"sync"
	"time"

	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
)

// In-memory stores mirroring the repository semantics, including the
// conditional single-statement updates the real stores rely on.

type fakeUserStore struct {
	mu     sync.Mutex
	nextID uint
	users  map[uint]*models.User
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[uint]*models.User{}}
}

func (s *fakeUserStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) FindByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *fakeUserStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	user.CreatedAt = time.Now()
	s.users[user.ID] = user
	return nil
}

func (s *fakeUserStore) UpdateProfile(id uint, upd repository.ProfileUpdate) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	if upd.UserName != "" {
		u.UserName = upd.UserName
	}
	if upd.Email != "" {
		u.Email = upd.Email
	}
	if upd.Phone != "" {
		u.Phone = upd.Phone
	}
	return u, nil
}

func (s *fakeUserStore) UpdatePassword(id uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *fakeUserStore) SetResetToken(id uint, token string, expires time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.ResetPasswordToken = &token
	u.ResetPasswordExpires = &expires
	return nil
}

func (s *fakeUserStore) ConsumeResetToken(token, newPasswordHash string, now time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.ResetPasswordToken != nil && *u.ResetPasswordToken == token &&
			u.ResetPasswordExpires != nil && u.ResetPasswordExpires.After(now) {
			u.PasswordHash = newPasswordHash
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
			return true, nil
		}
	}
	return false, nil
}

func (s *fakeUserStore) ClearExpiredResetTokens(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var cleared int64
	for _, u := range s.users {
		if u.ResetPasswordExpires != nil && !u.ResetPasswordExpires.After(now) {
			u.ResetPasswordToken = nil
			u.ResetPasswordExpires = nil
			cleared++
		}
	}
	return cleared, nil
}

func (s *fakeUserStore) SetProfileImage(id uint, url string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.ProfileImage = url
	return u, nil
}

func (s *fakeUserStore) ListAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

type fakeTokenStore struct {
	mu     sync.Mutex
	users  *fakeUserStore
	tokens map[string]*models.RefreshToken
}

func newFakeTokenStore(users *fakeUserStore) *fakeTokenStore {
	return &fakeTokenStore{users: users, tokens: map[string]*models.RefreshToken{}}
}

func (s *fakeTokenStore) Create(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	token.CreatedAt = time.Now()
	s.tokens[token.Token] = token
	return nil
}

func (s *fakeTokenStore) FindByValue(value string) (*models.RefreshToken, error) {
	s.mu.Lock()
	rec, ok := s.tokens[value]
	s.mu.Unlock()
	if !ok {
		return nil, repository.ErrTokenNotFound
	}

	// Owner resolved at read time, like the repository's Preload
	owner, err := s.users.FindByID(rec.UserID)
	if err != nil {
		return nil, err
	}
	out := *rec
	out.User = *owner
	return &out, nil
}

func (s *fakeTokenStore) DeleteByValue(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[value]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, value)
	return nil
}

func (s *fakeTokenStore) DeleteIfExpired(value string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.tokens[value]; ok && !rec.ExpiresAt.After(now) {
		delete(s.tokens, value)
	}
	return nil
}

func (s *fakeTokenStore) DeleteExpired(now time.Time) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var deleted int64
	for value, rec := range s.tokens {
		if !rec.ExpiresAt.After(now) {
			delete(s.tokens, value)
			deleted++
		}
	}
	return deleted, nil
}

func (s *fakeTokenStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.tokens)
}

type fakeMessageStore struct {
	mu       sync.Mutex
	nextID   uint
	messages map[uint]*models.Message
}

func newFakeMessageStore() *fakeMessageStore {
	return &fakeMessageStore{messages: map[uint]*models.Message{}}
}

func (s *fakeMessageStore) Create(message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message.ID = s.nextID
	message.CreatedAt = time.Now()
	s.messages[message.ID] = message
	return nil
}

func (s *fakeMessageStore) ListByReceiver(receiverID uint) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.ReceiverID == receiverID {
			out = append(out, *m)
		}
	}
	return out, nil
}

func (s *fakeMessageStore) MarkRead(id uint) (*models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.messages[id]
	if !ok {
		return nil, repository.ErrMessageNotFound
	}
	m.Read = true
	out := *m
	return &out, nil
}

func (s *fakeMessageStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return repository.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

type fakeAuditStore struct {
	mu      sync.Mutex
	actions []string
}

func (s *fakeAuditStore) Record(userID *uint, action, details string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.actions = append(s.actions, action)
	return nil
}

type fakeMailer struct {
	sent chan string
}

func newFakeMailer() *fakeMailer {
	return &fakeMailer{sent: make(chan string, 1)}
}

func (m *fakeMailer) SendPasswordReset(to, token string) error {
	m.sent <- token
	return nil
}
