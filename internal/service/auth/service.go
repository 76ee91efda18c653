package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
	"time"

	"cafe-storefront/internal/domain"
	"cafe-storefront/internal/logger"
	otprepo "cafe-storefront/internal/repository/otp"
	"cafe-storefront/internal/sms"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

type userRepo interface {
	UpsertByPhone(ctx context.Context, phone string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
}

// Service implements phone verification and token issuance. Exactly one code
// is outstanding per phone; verification is single-use.
type Service struct {
	store  otprepo.Store
	sender sms.Sender
	users  userRepo
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func New(store otprepo.Store, sender sms.Sender, users userRepo, secret string, ttl time.Duration) *Service {
	return &Service{
		store:  store,
		sender: sender,
		users:  users,
		secret: []byte(secret),
		ttl:    ttl,
		now:    time.Now,
	}
}

// RequestCode generates a 6-digit code, dispatches it and stores it with the
// expiry window. Nothing is stored when the provider call fails, and any
// prior outstanding code for the phone is overwritten.
func (s *Service) RequestCode(ctx context.Context, phone string) error {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return fmt.Errorf("%w: phone required", domain.ErrValidation)
	}

	code, err := generateCode()
	if err != nil {
		return fmt.Errorf("generate code: %w", err)
	}

	body := fmt.Sprintf("Your Ginni's Cafe verification code is: %s", code)
	if err := s.sender.Send(ctx, phone, body); err != nil {
		return err
	}

	rec := otprepo.Record{Code: code, Expiry: s.now().Add(s.ttl)}
	if err := s.store.Set(ctx, phone, rec); err != nil {
		return fmt.Errorf("store code: %w", err)
	}

	logger.FromCtx(ctx).Info("otp requested", zap.String("phone", phone))
	return nil
}

// VerifyCode checks the submitted code against the stored one. On success the
// record is deleted, the user is upserted by phone and a signed token is
// returned.
func (s *Service) VerifyCode(ctx context.Context, phone, submitted string) (string, *domain.User, error) {
	phone = strings.TrimSpace(phone)
	submitted = strings.TrimSpace(submitted)
	if phone == "" || submitted == "" {
		return "", nil, fmt.Errorf("%w: phone and otp required", domain.ErrValidation)
	}

	rec, err := s.store.Get(ctx, phone)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrNotFound
		}
		return "", nil, err
	}

	if s.now().After(rec.Expiry) {
		_ = s.store.Delete(ctx, phone)
		return "", nil, domain.ErrExpired
	}

	if rec.Code != submitted {
		return "", nil, domain.ErrMismatch
	}

	if err := s.store.Delete(ctx, phone); err != nil {
		return "", nil, err
	}

	user, err := s.users.UpsertByPhone(ctx, phone)
	if err != nil {
		return "", nil, err
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}

	logger.FromCtx(ctx).Info("otp verified", zap.String("phone", phone), zap.String("user_id", user.ID))
	return token, user, nil
}

// AdminLogin authenticates a back-office user by username and password.
func (s *Service) AdminLogin(ctx context.Context, username, password string) (string, *domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return "", nil, fmt.Errorf("%w: username and password required", domain.ErrValidation)
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return "", nil, domain.ErrUnauthorized
		}
		return "", nil, err
	}

	if !user.IsAdmin || user.PasswordHash == "" {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}

	token, err := s.issueToken(user)
	if err != nil {
		return "", nil, err
	}
	return token, user, nil
}

func (s *Service) issueToken(user *domain.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id":  user.ID,
		"is_admin": user.IsAdmin,
		"iat":      s.now().Unix(),
		"exp":      s.now().Add(24 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Claims is the subset of token claims the HTTP layer cares about.
type Claims struct {
	UserID  string
	IsAdmin bool
}

// ParseToken validates a signed token and extracts its claims.
func (s *Service) ParseToken(tokenStr string) (*Claims, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, domain.ErrUnauthorized
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrUnauthorized
	}

	out := &Claims{}
	if v, ok := claims["user_id"].(string); ok {
		out.UserID = v
	}
	if v, ok := claims["is_admin"].(bool); ok {
		out.IsAdmin = v
	}
	if out.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return out, nil
}

func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(900000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()+100000), nil
}
