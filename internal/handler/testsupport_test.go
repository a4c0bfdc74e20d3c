package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"user-messaging-backend/internal/middleware"
	"user-messaging-backend/internal/models"
	"user-messaging-backend/internal/repository"
	"user-messaging-backend/internal/service"
	"user-messaging-backend/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

// memStore is an in-memory stand-in for the gorm repositories, good enough
// to run the HTTP surface end to end.
type memStore struct {
	mu       sync.Mutex
	nextID   uint
	users    map[uint]*models.User
	tokens   map[string]*models.RefreshToken
	messages map[uint]*models.Message
}

func newMemStore() *memStore {
	return &memStore{
		users:    map[uint]*models.User{},
		tokens:   map[string]*models.RefreshToken{},
		messages: map[uint]*models.Message{},
	}
}

func (s *memStore) FindByEmail(email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, repository.ErrUserNotFound
}

func (s *memStore) FindByID(id uint) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, repository.ErrUserNotFound
}

func (s *memStore) Create(user *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	user.ID = s.nextID
	s.users[user.ID] = user
	return nil
}

func (s *memStore) UpdateProfile(id uint, upd repository.ProfileUpdate) (*models.User, error) {
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

func (s *memStore) UpdatePassword(id uint, passwordHash string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return repository.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (s *memStore) SetResetToken(id uint, token string, expires time.Time) error {
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

func (s *memStore) ConsumeResetToken(token, newPasswordHash string, now time.Time) (bool, error) {
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

func (s *memStore) ClearExpiredResetTokens(now time.Time) (int64, error) {
	return 0, nil
}

func (s *memStore) SetProfileImage(id uint, url string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	u.ProfileImage = url
	return u, nil
}

func (s *memStore) ListAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, 0, len(s.users))
	for _, u := range s.users {
		out = append(out, *u)
	}
	return out, nil
}

func (s *memStore) CreateToken(token *models.RefreshToken) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[token.Token] = token
	return nil
}

func (s *memStore) FindByValue(value string) (*models.RefreshToken, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rec, ok := s.tokens[value]
	if !ok {
		return nil, repository.ErrTokenNotFound
	}
	owner, ok := s.users[rec.UserID]
	if !ok {
		return nil, repository.ErrUserNotFound
	}
	out := *rec
	out.User = *owner
	return &out, nil
}

func (s *memStore) DeleteByValue(value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tokens[value]; !ok {
		return repository.ErrTokenNotFound
	}
	delete(s.tokens, value)
	return nil
}

func (s *memStore) DeleteIfExpired(value string, now time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec, ok := s.tokens[value]; ok && !rec.ExpiresAt.After(now) {
		delete(s.tokens, value)
	}
	return nil
}

func (s *memStore) DeleteExpired(now time.Time) (int64, error) {
	return 0, nil
}

func (s *memStore) CreateMessage(message *models.Message) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextID++
	message.ID = s.nextID
	message.CreatedAt = time.Now()
	s.messages[message.ID] = message
	return nil
}

func (s *memStore) ListByReceiver(receiverID uint) ([]models.Message, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Message
	for _, m := range s.messages {
		if m.ReceiverID == receiverID {
			msg := *m
			if sender, ok := s.users[m.SenderID]; ok {
				sc := *sender
				msg.Sender = &sc
			}
			out = append(out, msg)
		}
	}
	return out, nil
}

func (s *memStore) MarkRead(id uint) (*models.Message, error) {
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

func (s *memStore) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.messages[id]; !ok {
		return repository.ErrMessageNotFound
	}
	delete(s.messages, id)
	return nil
}

func (s *memStore) Record(userID *uint, action, details string) error { return nil }

// tokenStoreView and messageStoreView split memStore's method set so it can
// satisfy both store interfaces despite the overlapping Create names.
type tokenStoreView struct{ *memStore }

func (v tokenStoreView) Create(token *models.RefreshToken) error { return v.CreateToken(token) }

type messageStoreView struct{ *memStore }

func (v messageStoreView) Create(message *models.Message) error { return v.CreateMessage(message) }

// newTestServer wires the real handlers, services and middleware over the
// in-memory store, mirroring the route table in cmd/server.
func newTestServer(t *testing.T) (*gin.Engine, *memStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := newMemStore()
	jwtManager := utils.NewJWTManager("test-secret", time.Hour)

	authService := service.NewAuthService(store, tokenStoreView{store}, store, jwtManager, nil, service.AuthConfig{
		RefreshTokenExpiry: 7 * 24 * time.Hour,
		ResetTokenExpiry:   10 * time.Minute,
	})
	userService := service.NewUserService(store)
	messageService := service.NewMessageService(messageStoreView{store})

	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	messageHandler := NewMessageHandler(messageService)

	r := gin.New()
	r.Use(middleware.RequestID())

	users := r.Group("/api/v1/users")
	{
		users.POST("/signup", authHandler.Signup)
		users.POST("/login", authHandler.Login)
		users.POST("/refresh-token", authHandler.Refresh)
		users.POST("/logout", authHandler.Logout)
		users.POST("/forgot-password", authHandler.ForgotPassword)
		users.PUT("/reset-password/:token", authHandler.ResetPassword)

		authed := users.Group("", middleware.Auth(jwtManager))
		{
			authed.GET("/profile", userHandler.Profile)
			authed.PUT("/profile", userHandler.UpdateProfile)
			authed.PUT("/change-password", authHandler.ChangePassword)
			authed.POST("/upload-profile", userHandler.UploadProfileImage)
			authed.GET("/admin", middleware.RequireRole("admin"), func(c *gin.Context) {
				utils.MessageResponse(c, http.StatusOK, "Welcome Admin!")
			})
			authed.GET("/all", middleware.RequireRole("admin"), userHandler.AllUsers)
		}
	}

	messages := r.Group("/api/v1/messages", middleware.Auth(jwtManager))
	{
		messages.POST("/send", messageHandler.Send)
		messages.GET("/my-messages", messageHandler.MyMessages)
		messages.PUT("/mark-read/:id", messageHandler.MarkRead)
		messages.DELETE("/delete/:messageId", messageHandler.Delete)
	}

	return r, store
}

func doJSON(t *testing.T, r *gin.Engine, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out))
	return out
}
