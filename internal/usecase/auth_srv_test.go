package usecase

import (
	"context"
	"strings"
	"testing"

	"media-review/internal/dto/request"
	"media-review/pkg/token"
	"media-review/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthService(t *testing.T, store *testStore, mail *memMailer) AuthService {
	t.Helper()

	tokens, err := token.NewManager(utils.JWTConfig{Secret: "test-secret", ExpiryHours: 1})
	require.NoError(t, err)

	config := &utils.Config{
		Confirmation: utils.ConfirmationConfig{ExpiryMinutes: 15, Length: 6},
	}

	return NewAuthService(store.repo, tokens, mail, config, zap.NewNop())
}

// pulls the plain code out of the confirmation mail body
func codeFromMail(t *testing.T, body string) string {
	t.Helper()
	fields := strings.Fields(body)
	require.Greater(t, len(fields), 4, "unexpected mail body %q", body)
	return strings.TrimSuffix(fields[4], ".")
}

func TestSignUpCreatesUserAndSendsCode(t *testing.T) {
	store := newTestStore()
	mail := &memMailer{}
	svc := newAuthService(t, store, mail)

	resp, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)
	assert.Equal(t, "alice", resp.Username)
	assert.Equal(t, "alice@example.com", resp.Email)

	require.Len(t, store.users.users, 1)
	assert.Equal(t, "alice", store.users.users[0].Username)
	require.Len(t, mail.sent, 1)
	assert.Len(t, codeFromMail(t, mail.sent[0]), 6)
}

func TestSignUpRepeatReissuesCode(t *testing.T) {
	store := newTestStore()
	mail := &memMailer{}
	svc := newAuthService(t, store, mail)

	req := &request.SignUpRequest{Username: "alice", Email: "alice@example.com"}

	_, err := svc.SignUp(context.Background(), req)
	require.NoError(t, err)
	_, err = svc.SignUp(context.Background(), req)
	require.NoError(t, err)

	// Same account, two mails, and only the latest code is live
	assert.Len(t, store.users.users, 1)
	require.Len(t, mail.sent, 2)

	first := codeFromMail(t, mail.sent[0])
	second := codeFromMail(t, mail.sent[1])

	_, err = svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: first,
	})
	assert.Error(t, err)

	resp, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: second,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.Token)
}

func TestSignUpRejectsTakenUsername(t *testing.T) {
	store := newTestStore()
	mail := &memMailer{}
	svc := newAuthService(t, store, mail)

	_, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "other@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")

	_, err = svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "bob",
		Email:    "alice@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already")
}

func TestSignUpRejectsReservedUsername(t *testing.T) {
	store := newTestStore()
	svc := newAuthService(t, store, &memMailer{})

	_, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "me",
		Email:    "me@example.com",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Empty(t, store.users.users)
}

func TestTokenRejectsBadCode(t *testing.T) {
	store := newTestStore()
	mail := &memMailer{}
	svc := newAuthService(t, store, mail)

	_, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	_, err = svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: "000000",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid confirmation code")
}

func TestTokenIsSingleUse(t *testing.T) {
	store := newTestStore()
	mail := &memMailer{}
	svc := newAuthService(t, store, mail)

	_, err := svc.SignUp(context.Background(), &request.SignUpRequest{
		Username: "alice",
		Email:    "alice@example.com",
	})
	require.NoError(t, err)

	code := codeFromMail(t, mail.sent[0])

	_, err = svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: code,
	})
	require.NoError(t, err)

	_, err = svc.Token(context.Background(), &request.TokenRequest{
		Username:         "alice",
		ConfirmationCode: code,
	})
	assert.Error(t, err)
}

func TestTokenUnknownUser(t *testing.T) {
	store := newTestStore()
	svc := newAuthService(t, store, &memMailer{})

	_, err := svc.Token(context.Background(), &request.TokenRequest{
		Username:         "ghost",
		ConfirmationCode: "123456",
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}
