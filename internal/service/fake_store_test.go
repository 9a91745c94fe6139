package service

import (
	"context"
	"sync"

	"github.com/aptmap/backend/internal/db"
	"github.com/aptmap/backend/internal/model"
)

type fakeUserStore struct {
	mu     sync.Mutex
	nextID int64
	users  map[string]*model.User

	// beforeSwap runs once, before the next SwapRefreshToken, to simulate a
	// concurrent writer.
	beforeSwap func(u *model.User)
	// deleteOnSwap removes the account as the next swap runs.
	deleteOnSwap bool
	swapCalls  int
	getErr     error
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{users: map[string]*model.User{}}
}

func (f *fakeUserStore) CreateUser(ctx context.Context, loginID, name, passwordHash string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.users[loginID]; ok {
		return 0, db.ErrDuplicate
	}
	f.nextID++
	f.users[loginID] = &model.User{ID: f.nextID, LoginID: loginID, Name: name, Email: loginID, PasswordHash: passwordHash}
	return f.nextID, nil
}

func (f *fakeUserStore) GetUserByLoginID(ctx context.Context, loginID string) (*model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.users[loginID]
	if !ok {
		return nil, db.ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUserStore) UpdatePasswordHash(ctx context.Context, loginID, passwordHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[loginID]
	if !ok {
		return db.ErrNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (f *fakeUserStore) UpdateProfile(ctx context.Context, loginID, name, email string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.users[loginID]
	if !ok {
		return db.ErrNotFound
	}
	u.Name, u.Email = name, email
	return nil
}

func (f *fakeUserStore) SwapRefreshToken(ctx context.Context, loginID string, prev, next *string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.swapCalls++
	if f.deleteOnSwap {
		f.deleteOnSwap = false
		delete(f.users, loginID)
		return false, nil
	}
	u, ok := f.users[loginID]
	if !ok {
		return false, nil
	}
	if hook := f.beforeSwap; hook != nil {
		f.beforeSwap = nil
		hook(u)
	}
	if !sameToken(u.RefreshToken, prev) {
		return false, nil
	}
	u.RefreshToken = next
	return true, nil
}

func (f *fakeUserStore) storedRefresh(loginID string) *string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.users[loginID].RefreshToken
}

func sameToken(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
