package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/dmitrijs2005/notebook/internal/server/models"
	"github.com/google/uuid"
)

const exportLinkValidity = 15 * time.Minute

// ObjectStore is the blob storage an export is written to.
type ObjectStore interface {
	Put(ctx context.Context, key string, body []byte, contentType string) error
	PresignGet(ctx context.Context, key string, ttl time.Duration) (string, error)
}

// ArchiveService snapshots a user's notes into object storage.
type ArchiveService struct {
	notes *NoteService
	store ObjectStore
	now   func() time.Time
	newID func() string
}

func NewArchiveService(notes *NoteService, store ObjectStore) *ArchiveService {
	return &ArchiveService{
		notes: notes,
		store: store,
		now:   func() time.Time { return time.Now().UTC() },
		newID: uuid.NewString,
	}
}

func ExportKey(userID string, d time.Time, id string) string {
	return fmt.Sprintf("users/%s/exports/%04d/%02d/%02d/%s.json", userID, d.Year(), d.Month(), d.Day(), id)
}

// Export uploads the caller's notes, in List order, as one JSON document and
// returns a short-lived download link for it.
func (s *ArchiveService) Export(ctx context.Context, userID string) (*models.Export, error) {
	notes, err := s.notes.List(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := s.now()
	body, err := json.Marshal(&models.Archive{UserID: userID, ExportedAt: now, Notes: notes})
	if err != nil {
		return nil, fmt.Errorf("error encoding archive: %w", err)
	}

	key := ExportKey(userID, now, s.newID())
	if err := s.store.Put(ctx, key, body, "application/json"); err != nil {
		return nil, fmt.Errorf("error uploading archive: %w", err)
	}

	url, err := s.store.PresignGet(ctx, key, exportLinkValidity)
	if err != nil {
		return nil, fmt.Errorf("error signing archive link: %w", err)
	}

	return &models.Export{Key: key, URL: url, Count: len(notes)}, nil
}
