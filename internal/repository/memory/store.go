// Package memory is a process-local storage driver. It backs STORAGE_DRIVER=memory and the
// property tests; all repositories created from one Store share a lock and an id sequence.
package memory

import (
	"sync"

	"pickme-backend/internal/domain"
)

type Store struct {
	mu     sync.RWMutex
	nextID int64

	accounts    map[int64]domain.Account
	favorites   map[int64]map[int64]struct{} // account id -> ids of accounts that favored it
	enterprises map[int64]domain.Enterprise
	codes       map[string]domain.VerificationCode

	// called with mu held when an account is deleted
	onAccountDelete []func(accountID int64)
}

func NewStore() *Store {
	return &Store{
		accounts:    make(map[int64]domain.Account),
		favorites:   make(map[int64]map[int64]struct{}),
		enterprises: make(map[int64]domain.Enterprise),
		codes:       make(map[string]domain.VerificationCode),
	}
}

func (s *Store) newID() int64 {
	s.nextID++
	return s.nextID
}

func (s *Store) deleteAccountLocked(id int64) {
	delete(s.accounts, id)
	delete(s.enterprises, id)
	delete(s.favorites, id)
	for _, favoredBy := range s.favorites {
		delete(favoredBy, id)
	}
	for _, fn := range s.onAccountDelete {
		fn(id)
	}
}
