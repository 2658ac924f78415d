package auth_test

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/Fahleh/alx-files-manager/internal/auth"
	"github.com/Fahleh/alx-files-manager/internal/jobs"
	"github.com/Fahleh/alx-files-manager/internal/storage"
)

type fakeUserStore struct {
	mu     sync.Mutex
	users  map[string]*storage.User // keyed by id
	nextID int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: make(map[string]*storage.User)}
}

func (f *fakeUserStore) Create(_ context.Context, email string, hash []byte) (*storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	user := &storage.User{
		ID:           fmt.Sprintf("%024x", f.nextID),
		Email:        email,
		PasswordHash: hash,
	}
	f.users[user.ID] = user
	return user, nil
}

func (f *fakeUserStore) GetByEmail(_ context.Context, email string) (*storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, u := range f.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, storage.ErrUserNotFound
}

func (f *fakeUserStore) GetByID(_ context.Context, id string) (*storage.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if u, ok := f.users[id]; ok {
		return u, nil
	}
	return nil, storage.ErrUserNotFound
}

type fakeSessions struct {
	mu     sync.Mutex
	tokens map[string]string
	n      int
}

func newFakeSessions() *fakeSessions {
	return &fakeSessions{tokens: make(map[string]string)}
}

func (f *fakeSessions) Create(_ context.Context, userID string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.n++
	token := fmt.Sprintf("token-%d", f.n)
	f.tokens[token] = userID
	return token, nil
}

func (f *fakeSessions) Resolve(_ context.Context, token string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if userID, ok := f.tokens[token]; ok {
		return userID, nil
	}
	return "", fmt.Errorf("missing")
}

func (f *fakeSessions) Destroy(_ context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.tokens, token)
	return nil
}

type recordingEnqueuer struct {
	mu       sync.Mutex
	payloads []any
	err      error
}

func (r *recordingEnqueuer) Enqueue(_ context.Context, payload any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err != nil {
		return r.err
	}
	r.payloads = append(r.payloads, payload)
	return nil
}

func TestService_Register(t *testing.T) {
	t.Parallel()

	users := newFakeUserStore()
	enq := &recordingEnqueuer{}
	svc := auth.New(users, newFakeSessions(), auth.WithEnqueuer(enq))

	user, err := svc.Register(context.Background(), "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.Equal(t, "bob@dylan.com", user.Email)
	assert.NotEmpty(t, user.ID)

	// The stored hash verifies against the password and is not the
	// password itself.
	assert.NoError(t, bcrypt.CompareHashAndPassword(user.PasswordHash, []byte("toto1234!")))

	require.Len(t, enq.payloads, 1)
	assert.Equal(t, jobs.WelcomeEmail{UserID: user.ID}, enq.payloads[0])
}

func TestService_Register_Validation(t *testing.T) {
	t.Parallel()

	svc := auth.New(newFakeUserStore(), newFakeSessions())

	_, err := svc.Register(context.Background(), "", "pw")
	assert.ErrorIs(t, err, auth.ErrMissingEmail)

	_, err = svc.Register(context.Background(), "bob@dylan.com", "")
	assert.ErrorIs(t, err, auth.ErrMissingPassword)
}

func TestService_Register_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := auth.New(newFakeUserStore(), newFakeSessions())
	_, err := svc.Register(context.Background(), "bob@dylan.com", "pw")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "bob@dylan.com", "other")
	assert.ErrorIs(t, err, auth.ErrEmailTaken)
}

func TestService_Register_EnqueueFailureDoesNotFail(t *testing.T) {
	t.Parallel()

	enq := &recordingEnqueuer{err: assert.AnError}
	svc := auth.New(newFakeUserStore(), newFakeSessions(), auth.WithEnqueuer(enq))

	_, err := svc.Register(context.Background(), "bob@dylan.com", "pw")
	assert.NoError(t, err)
}

func TestService_VerifyCredentials(t *testing.T) {
	t.Parallel()

	svc := auth.New(newFakeUserStore(), newFakeSessions())
	registered, err := svc.Register(context.Background(), "bob@dylan.com", "toto1234!")
	require.NoError(t, err)

	user, err := svc.VerifyCredentials(context.Background(), "bob@dylan.com", "toto1234!")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.VerifyCredentials(context.Background(), "bob@dylan.com", "wrong")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = svc.VerifyCredentials(context.Background(), "nobody@dylan.com", "toto1234!")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)

	_, err = svc.VerifyCredentials(context.Background(), "", "")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_SessionLifecycle(t *testing.T) {
	t.Parallel()

	svc := auth.New(newFakeUserStore(), newFakeSessions())
	user, err := svc.Register(context.Background(), "bob@dylan.com", "pw")
	require.NoError(t, err)

	token, err := svc.OpenSession(context.Background(), user.ID)
	require.NoError(t, err)

	resolved, err := svc.ResolveToken(context.Background(), token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, resolved.ID)

	require.NoError(t, svc.CloseSession(context.Background(), token))

	_, err = svc.ResolveToken(context.Background(), token)
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}

func TestService_ResolveToken_Empty(t *testing.T) {
	t.Parallel()

	svc := auth.New(newFakeUserStore(), newFakeSessions())
	_, err := svc.ResolveToken(context.Background(), "")
	assert.ErrorIs(t, err, auth.ErrUnauthorized)
}
