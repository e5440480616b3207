package services

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/auth"
	"github.com/dmitrijs2005/notebook/internal/server/models"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/notes"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/users"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret"

var fixedNow = time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	return db, mock
}

func newTokens() *auth.TokenService {
	return auth.NewTokenService(testSecret, time.Hour)
}

// newMemoryUserService wires a UserService to a fresh in-memory store.
func newMemoryUserService(t *testing.T) (*UserService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	return NewUserService(dbx.NopTransactor{}, rm, auth.NewBcryptHasher(bcrypt.MinCost), newTokens()), rm
}

func newMemoryNoteService(t *testing.T) (*NoteService, *repomanager.MemoryRepositoryManager) {
	t.Helper()
	rm := repomanager.NewMemoryRepositoryManager()
	s := NewNoteService(dbx.NopTransactor{}, rm)
	s.now = func() time.Time { return fixedNow }
	return s, rm
}

func seedUser(t *testing.T, rm repomanager.RepositoryManager, email string) string {
	t.Helper()
	id := uuid.NewString()
	_, err := rm.Users(nil).Create(context.Background(), &models.User{ID: id, Name: "user", Email: email, PasswordHash: "h"})
	require.NoError(t, err)
	return id
}

// --- fakes ---

type fakeUsersRepo struct {
	users.Repository

	getByEmailOut *models.User
	getByEmailErr error

	createErr error

	updateTokenErr error
	updatedToken   string
}

func (f *fakeUsersRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	if f.getByEmailErr != nil {
		return nil, f.getByEmailErr
	}
	return f.getByEmailOut, nil
}

func (f *fakeUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	return u, nil
}

func (f *fakeUsersRepo) UpdateToken(ctx context.Context, id, token string) error {
	f.updatedToken = token
	return f.updateTokenErr
}

type fakeNotesRepo struct {
	notes.Repository

	getOut *models.Note
	getErr error

	listOut []*models.Note
	listErr error

	updateErr error
	deleteErr error
}

func (f *fakeNotesRepo) GetByID(ctx context.Context, id string) (*models.Note, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	n := *f.getOut
	return &n, nil
}

func (f *fakeNotesRepo) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	return f.listOut, f.listErr
}

func (f *fakeNotesRepo) Update(ctx context.Context, n *models.Note) (*models.Note, error) {
	if f.updateErr != nil {
		return nil, f.updateErr
	}
	return n, nil
}

func (f *fakeNotesRepo) Delete(ctx context.Context, id, userID string) (*models.Note, error) {
	if f.deleteErr != nil {
		return nil, f.deleteErr
	}
	n := *f.getOut
	return &n, nil
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	n *fakeNotesRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) users.Repository           { return m.u }
func (m *fakeRepoManager) Notes(dbx.DBTX) notes.Repository           { return m.n }
