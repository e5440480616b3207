package memory

import (
	"context"
	"sort"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/server/models"
)

type NoteRepository struct {
	s *Store
}

func (r *NoteRepository) Create(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	if _, ok := r.s.notes[note.ID]; ok {
		return nil, common.ErrorAlreadyExists
	}
	if _, ok := r.s.users[note.UserID]; !ok {
		return nil, common.ErrorNotFound
	}

	r.s.seq++
	r.s.notes[note.ID] = &noteRecord{note: *note, seq: r.s.seq}

	return note, nil
}

func (r *NoteRepository) GetByID(ctx context.Context, id string) (*models.Note, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()

	rec, ok := r.s.notes[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	n := rec.note
	return &n, nil
}

func (r *NoteRepository) ListByUser(ctx context.Context, userID string) ([]*models.Note, error) {
	r.s.mu.RLock()
	recs := make([]*noteRecord, 0)
	for _, rec := range r.s.notes {
		if rec.note.UserID == userID {
			recs = append(recs, rec)
		}
	}
	r.s.mu.RUnlock()

	sort.Slice(recs, func(i, j int) bool {
		a, b := recs[i], recs[j]
		if !a.note.CreatedAt.Equal(b.note.CreatedAt) {
			return a.note.CreatedAt.Before(b.note.CreatedAt)
		}
		return a.seq < b.seq
	})

	result := make([]*models.Note, 0, len(recs))
	for _, rec := range recs {
		n := rec.note
		result = append(result, &n)
	}

	return result, nil
}

func (r *NoteRepository) Update(ctx context.Context, note *models.Note) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.notes[note.ID]
	if !ok || rec.note.UserID != note.UserID {
		return nil, common.ErrorNotFound
	}

	rec.note.Title = note.Title
	rec.note.Description = note.Description
	rec.note.Tag = note.Tag
	rec.note.UpdatedAt = note.UpdatedAt

	n := rec.note
	return &n, nil
}

func (r *NoteRepository) Delete(ctx context.Context, id, userID string) (*models.Note, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()

	rec, ok := r.s.notes[id]
	if !ok || rec.note.UserID != userID {
		return nil, common.ErrorNotFound
	}
	delete(r.s.notes, id)

	n := rec.note
	return &n, nil
}
