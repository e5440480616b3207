package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notebook/internal/common"
	"github.com/dmitrijs2005/notebook/internal/dbx"
	"github.com/dmitrijs2005/notebook/internal/server/models"
	"github.com/dmitrijs2005/notebook/internal/server/repositories/repomanager"
	"github.com/dmitrijs2005/notebook/internal/server/validation"
	"github.com/google/uuid"
)

type NoteInput struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	Tag         string `json:"tag" form:"tag"`
}

type createNoteRules struct {
	Title       string `json:"title" validate:"min=3" msg:"title must be 3 characters"`
	Description string `json:"description" validate:"min=5" msg:"description must be 5 characters"`
}

// Update requires every field, tag included. Lengths are not checked on
// update, only on create.
type updateNoteRules struct {
	Title       string `json:"title" validate:"required" msg:"please fill all the details"`
	Description string `json:"description" validate:"required" msg:"please fill all the details"`
	Tag         string `json:"tag" validate:"required" msg:"please fill all the details"`
}

// NoteService implements note CRUD. Every operation is scoped to the
// authenticated user passed in by the caller.
type NoteService struct {
	tx          dbx.Transactor
	repomanager repomanager.RepositoryManager
	validator   *validation.Validator
	now         func() time.Time
}

func NewNoteService(tx dbx.Transactor, m repomanager.RepositoryManager) *NoteService {
	return &NoteService{
		tx:          tx,
		repomanager: m,
		validator:   validation.New(),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

func (s *NoteService) Create(ctx context.Context, userID string, in NoteInput) (*models.Note, error) {
	if err := s.validator.Struct(createNoteRules{Title: in.Title, Description: in.Description}); err != nil {
		return nil, err
	}

	tag := in.Tag
	if tag == "" {
		tag = common.DefaultNoteTag
	}

	now := s.now()
	note := &models.Note{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       in.Title,
		Description: in.Description,
		Tag:         tag,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	created, err := s.repomanager.Notes(s.tx.Conn()).Create(ctx, note)
	if err != nil {
		return nil, fmt.Errorf("error creating note: %w", err)
	}

	return created, nil
}

// List returns the user's notes oldest first; never nil.
func (s *NoteService) List(ctx context.Context, userID string) ([]*models.Note, error) {
	notes, err := s.repomanager.Notes(s.tx.Conn()).ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing notes: %w", err)
	}
	if notes == nil {
		notes = []*models.Note{}
	}
	return notes, nil
}

func (s *NoteService) Update(ctx context.Context, userID, noteID string, in NoteInput) (*models.Note, error) {
	var updated *models.Note

	err := s.withOwnedNote(ctx, userID, noteID, func(ctx context.Context, tx dbx.DBTX, note *models.Note) error {
		if err := s.validator.Struct(updateNoteRules(in)); err != nil {
			return err
		}

		note.Title = in.Title
		note.Description = in.Description
		note.Tag = in.Tag
		note.UpdatedAt = s.now()

		n, err := s.repomanager.Notes(tx).Update(ctx, note)
		if err != nil {
			return storeNoteErr("error updating note", err)
		}
		updated = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return updated, nil
}

// Delete removes the note and returns what it contained.
func (s *NoteService) Delete(ctx context.Context, userID, noteID string) (*models.Note, error) {
	var deleted *models.Note

	err := s.withOwnedNote(ctx, userID, noteID, func(ctx context.Context, tx dbx.DBTX, note *models.Note) error {
		n, err := s.repomanager.Notes(tx).Delete(ctx, note.ID, userID)
		if err != nil {
			return storeNoteErr("error deleting note", err)
		}
		deleted = n
		return nil
	})
	if err != nil {
		return nil, err
	}

	return deleted, nil
}

// withOwnedNote loads the note inside a transaction, checks ownership and
// hands it to fn.
func (s *NoteService) withOwnedNote(ctx context.Context, userID, noteID string,
	fn func(ctx context.Context, tx dbx.DBTX, note *models.Note) error) error {

	if _, err := uuid.Parse(noteID); err != nil {
		return common.ErrNoteNotFound
	}

	return s.tx.InTx(ctx, func(ctx context.Context, tx dbx.DBTX) error {
		note, err := s.repomanager.Notes(tx).GetByID(ctx, noteID)
		if err != nil {
			return storeNoteErr("error loading note", err)
		}

		if note.UserID != userID {
			return common.ErrNotAuthorized
		}

		return fn(ctx, tx, note)
	})
}

func storeNoteErr(msg string, err error) error {
	if errors.Is(err, common.ErrorNotFound) {
		return common.ErrNoteNotFound
	}
	return fmt.Errorf("%s: %w", msg, err)
}
