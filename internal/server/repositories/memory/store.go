// Package memory provides map-backed repositories for development and
// tests. All repositories created from one Store share its data.
package memory

import (
	"sync"

	"github.com/dmitrijs2005/notebook/internal/server/models"
)

type noteRecord struct {
	note models.Note
	seq  int64
}

type Store struct {
	mu     sync.RWMutex
	users  map[string]models.User
	emails map[string]string
	notes  map[string]*noteRecord
	seq    int64
}

func NewStore() *Store {
	return &Store{
		users:  make(map[string]models.User),
		emails: make(map[string]string),
		notes:  make(map[string]*noteRecord),
	}
}

func (s *Store) Users() *UserRepository { return &UserRepository{s: s} }
func (s *Store) Notes() *NoteRepository { return &NoteRepository{s: s} }
