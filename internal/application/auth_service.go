package application

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"github.com/bootcamphub/bootcamp-api/config"
	"github.com/bootcamphub/bootcamp-api/internal/domain"
	"github.com/bootcamphub/bootcamp-api/internal/domain/entity"
	"github.com/bootcamphub/bootcamp-api/internal/domain/repository"
	"github.com/bootcamphub/bootcamp-api/pkg/helpers"
	"github.com/bootcamphub/bootcamp-api/pkg/mailer"
)

const resetTokenTTL = 10 * time.Minute

func keyResetToken(hashed string) string { return "pwd:reset:token:" + hashed }

// AuthService owns registration, login and the credential lifecycle.
type AuthService struct {
	Users  repository.UserRepository
	JWT    *helpers.JWTManager
	Redis  *redis.Client
	Pub    *helpers.RabbitPublisher
	Cfg    *config.Config
	Logger *logrus.Logger
}

func NewAuthService(users repository.UserRepository, jwt *helpers.JWTManager, rdb *redis.Client, pub *helpers.RabbitPublisher, cfg *config.Config, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, JWT: jwt, Redis: rdb, Pub: pub, Cfg: cfg, Logger: logger}
}

// Token pairs an issued token with its expiry for the cookie writer.
type Token struct {
	Value  string
	Expiry time.Time
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*entity.User, Token, error) {
	role := in.Role
	if role == "" {
		role = entity.RoleUser
	}
	if !entity.ValidRole(role) {
		return nil, Token{}, domain.ValidationError{Field: "role", Msg: "must be user or publisher"}
	}
	hash, err := helpers.HashPassword(in.Password)
	if err != nil {
		return nil, Token{}, err
	}
	u := &entity.User{Name: in.Name, Email: in.Email, Role: role, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, Token{}, err
	}
	tok, err := s.issue(u.ID)
	if err != nil {
		return nil, Token{}, err
	}
	s.Logger.WithFields(logrus.Fields{"user_id": u.ID, "role": u.Role}).Info("user registered")
	return u, tok, nil
}

func (s *AuthService) Login(ctx context.Context, email, password string) (*entity.User, Token, error) {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return nil, Token{}, domain.UnauthorizedError{Msg: "invalid credentials"}
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return nil, Token{}, domain.UnauthorizedError{Msg: "invalid credentials"}
	}
	tok, err := s.issue(u.ID)
	if err != nil {
		return nil, Token{}, err
	}
	return u, tok, nil
}

type UpdateDetailsInput struct {
	Name  string
	Email string
}

func (s *AuthService) UpdateDetails(ctx context.Context, userID string, in UpdateDetailsInput) (*entity.User, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if in.Name != "" {
		u.Name = in.Name
	}
	if in.Email != "" {
		u.Email = in.Email
	}
	if err := s.Users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

// UpdatePassword verifies the current password before setting the new one
// and reissues a token.
func (s *AuthService) UpdatePassword(ctx context.Context, userID, current, next string) (Token, error) {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return Token{}, err
	}
	if !helpers.CompareHashAndPassword(u.Password, current) {
		return Token{}, domain.UnauthorizedError{Msg: "password is incorrect"}
	}
	hash, err := helpers.HashPassword(next)
	if err != nil {
		return Token{}, err
	}
	if err := s.Users.UpdatePassword(ctx, userID, hash); err != nil {
		return Token{}, err
	}
	return s.issue(userID)
}

// ForgotPassword stores a hashed reset token in redis and queues the reset
// email. If queueing fails the stored token is cleared again; a failure of
// that cleanup is surfaced in the logs rather than swallowed.
func (s *AuthService) ForgotPassword(ctx context.Context, email string) error {
	u, err := s.Users.GetByEmail(ctx, email)
	if err != nil {
		return err
	}

	raw, err := randomToken(20)
	if err != nil {
		return err
	}
	hashed := hashToken(raw)
	key := keyResetToken(hashed)
	if err := s.Redis.Set(ctx, key, u.ID, resetTokenTTL).Err(); err != nil {
		return err
	}

	resetURL := s.Cfg.ResetPasswordURL + "/" + raw
	job := mailer.EmailJob{
		To:      u.Email,
		Subject: "Password reset token",
		Text: "You are receiving this email because you (or someone else) has " +
			"requested the reset of a password. Please make a PUT request to: \n\n" + resetURL,
	}
	if s.Pub == nil || !s.Cfg.MailSendEnabled {
		s.Logger.WithField("user_id", u.ID).Info("mail sending disabled, reset token issued")
		return nil
	}
	if err := s.Pub.PublishJSON(ctx, job); err != nil {
		if delErr := s.Redis.Del(ctx, key).Err(); delErr != nil {
			s.Logger.WithError(delErr).WithField("user_id", u.ID).
				Error("failed to clear reset token after publish failure")
		}
		return domain.InternalError{Msg: "email could not be sent", Err: err}
	}
	return nil
}

// ResetPassword consumes a reset token, sets the new password, and
// reissues an identity token.
func (s *AuthService) ResetPassword(ctx context.Context, resetToken, password string) (*entity.User, Token, error) {
	key := keyResetToken(hashToken(resetToken))
	uid, err := s.Redis.Get(ctx, key).Result()
	if err != nil || uid == "" {
		return nil, Token{}, domain.ValidationError{Msg: "invalid token"}
	}
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, Token{}, err
	}
	if err := s.Users.UpdatePassword(ctx, uid, hash); err != nil {
		return nil, Token{}, err
	}
	if err := s.Redis.Del(ctx, key).Err(); err != nil {
		s.Logger.WithError(err).WithField("user_id", uid).Error("failed to delete used reset token")
	}
	u, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		return nil, Token{}, err
	}
	tok, err := s.issue(uid)
	if err != nil {
		return nil, Token{}, err
	}
	return u, tok, nil
}

func (s *AuthService) issue(userID string) (Token, error) {
	v, exp, err := s.JWT.Issue(userID)
	if err != nil {
		return Token{}, err
	}
	return Token{Value: v, Expiry: exp}, nil
}

func randomToken(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

func hashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
