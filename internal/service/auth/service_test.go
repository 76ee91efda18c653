package auth

import (
	"context"
	"fmt"
	"testing"
	"time"

	"cafe-storefront/internal/domain"
	otprepo "cafe-storefront/internal/repository/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type stubSender struct {
	err   error
	calls int
	to    string
	body  string
}

func (s *stubSender) Send(_ context.Context, to, body string) error {
	s.calls++
	s.to = to
	s.body = body
	return s.err
}

type stubUsers struct {
	byPhone    map[string]*domain.User
	byUsername map[string]*domain.User
}

func (s *stubUsers) UpsertByPhone(_ context.Context, phone string) (*domain.User, error) {
	if u, ok := s.byPhone[phone]; ok {
		return u, nil
	}
	u := &domain.User{ID: "user-" + phone, Phone: phone}
	if s.byPhone == nil {
		s.byPhone = map[string]*domain.User{}
	}
	s.byPhone[phone] = u
	return u, nil
}

func (s *stubUsers) GetByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := s.byUsername[username]; ok {
		return u, nil
	}
	return nil, domain.ErrNotFound
}

func newTestService(sender *stubSender) (*Service, otprepo.Store, *time.Time) {
	store := otprepo.NewMemory()
	svc := New(store, sender, &stubUsers{}, "test-secret", 10*time.Minute)

	now := time.Now()
	current := &now
	svc.now = func() time.Time { return *current }
	return svc, store, current
}

// storedCode reads the outstanding code straight from the store.
func storedCode(t *testing.T, store otprepo.Store, phone string) string {
	t.Helper()
	rec, err := store.Get(context.Background(), phone)
	require.NoError(t, err)
	return rec.Code
}

const phone = "+911234567890"

func TestRequestCode_StoresSixDigitCode(t *testing.T) {
	sender := &stubSender{}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, phone))

	assert.Equal(t, 1, sender.calls)
	assert.Equal(t, phone, sender.to)

	code := storedCode(t, store, phone)
	assert.Len(t, code, 6)
	assert.Contains(t, sender.body, code)
	assert.Contains(t, sender.body, "Ginni's Cafe")
}

func TestRequestCode_DispatchFailureStoresNothing(t *testing.T) {
	sender := &stubSender{err: fmt.Errorf("%w: provider down", domain.ErrDispatch)}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	err := svc.RequestCode(ctx, phone)
	assert.ErrorIs(t, err, domain.ErrDispatch)

	_, err = store.Get(ctx, phone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRequestCode_OverwritesPriorCode(t *testing.T) {
	sender := &stubSender{}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	// Plant a known code, then request again: it must be replaced.
	require.NoError(t, store.Set(ctx, phone, otprepo.Record{Code: "000000", Expiry: time.Now().Add(time.Hour)}))
	require.NoError(t, svc.RequestCode(ctx, phone))

	assert.NotEqual(t, "000000", storedCode(t, store, phone))
	assert.Equal(t, 1, sender.calls)
}

func TestVerifyCode_SuccessIsSingleUse(t *testing.T) {
	sender := &stubSender{}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, phone))
	code := storedCode(t, store, phone)

	token, user, err := svc.VerifyCode(ctx, phone, code)
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	require.NotNil(t, user)
	assert.Equal(t, phone, user.Phone)

	// Second attempt with the same code: the record is gone.
	_, _, err = svc.VerifyCode(ctx, phone, code)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyCode_ExpiredDeletesRecord(t *testing.T) {
	sender := &stubSender{}
	svc, store, current := newTestService(sender)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, phone))
	code := storedCode(t, store, phone)

	*current = current.Add(11 * time.Minute)

	_, _, err := svc.VerifyCode(ctx, phone, code)
	assert.ErrorIs(t, err, domain.ErrExpired)

	_, err = store.Get(ctx, phone)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyCode_Mismatch(t *testing.T) {
	sender := &stubSender{}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, phone))
	code := storedCode(t, store, phone)

	wrong := "000000"
	if code == wrong {
		wrong = "999999"
	}
	_, _, err := svc.VerifyCode(ctx, phone, wrong)
	assert.ErrorIs(t, err, domain.ErrMismatch)

	// Mismatch does not consume the code.
	_, _, err = svc.VerifyCode(ctx, phone, code)
	assert.NoError(t, err)
}

func TestVerifyCode_UnknownPhone(t *testing.T) {
	svc, _, _ := newTestService(&stubSender{})
	_, _, err := svc.VerifyCode(context.Background(), phone, "123456")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestVerifyCode_Validation(t *testing.T) {
	svc, _, _ := newTestService(&stubSender{})
	_, _, err := svc.VerifyCode(context.Background(), "", "123456")
	assert.ErrorIs(t, err, domain.ErrValidation)
	_, _, err = svc.VerifyCode(context.Background(), phone, "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestParseToken_RoundTrip(t *testing.T) {
	sender := &stubSender{}
	svc, store, _ := newTestService(sender)
	ctx := context.Background()

	require.NoError(t, svc.RequestCode(ctx, phone))
	token, user, err := svc.VerifyCode(ctx, phone, storedCode(t, store, phone))
	require.NoError(t, err)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.False(t, claims.IsAdmin)

	_, err = svc.ParseToken(token + "tampered")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestAdminLogin(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.MinCost)
	require.NoError(t, err)

	users := &stubUsers{byUsername: map[string]*domain.User{
		"admin": {ID: "admin-1", Username: "admin", PasswordHash: string(hash), IsAdmin: true},
		"bob":   {ID: "bob-1", Username: "bob", PasswordHash: string(hash), IsAdmin: false},
	}}
	svc := New(otprepo.NewMemory(), &stubSender{}, users, "test-secret", 10*time.Minute)
	ctx := context.Background()

	token, user, err := svc.AdminLogin(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.True(t, user.IsAdmin)

	claims, err := svc.ParseToken(token)
	require.NoError(t, err)
	assert.True(t, claims.IsAdmin)

	_, _, err = svc.AdminLogin(ctx, "admin", "wrong")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.AdminLogin(ctx, "bob", "admin123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.AdminLogin(ctx, "ghost", "admin123")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, _, err = svc.AdminLogin(ctx, "", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGenerateCode_Range(t *testing.T) {
	for i := 0; i < 50; i++ {
		code, err := generateCode()
		require.NoError(t, err)
		require.Len(t, code, 6)
		assert.GreaterOrEqual(t, code, "100000")
		assert.LessOrEqual(t, code, "999999")
	}
}
