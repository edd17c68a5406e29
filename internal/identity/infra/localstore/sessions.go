package localstore

import (
	"encoding/json"
	"fmt"

	"github.com/mgridtech/carfixit/internal/identity/domain"
	"github.com/mgridtech/carfixit/pkg/localstore"
)

const sessionKey = "current"

// Sessions persists the login state the way the web client kept
// isLoggedIn/userId in browser storage, but as one versioned record.
type Sessions struct {
	store *localstore.Store
}

func NewSessions(store *localstore.Store) *Sessions {
	return &Sessions{store: store}
}

type sessionRecord struct {
	UserID     int    `json:"userId"`
	Token      string `json:"token,omitempty"`
	LoggedInAt string `json:"loggedInAt,omitempty"`
}

func (s *Sessions) Save(sess domain.Session) error {
	rec := sessionRecord{UserID: sess.UserID, Token: sess.Token}
	if !sess.LoggedInAt.IsZero() {
		rec.LoggedInAt = sess.LoggedInAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	raw, err := json.Marshal(rec)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.store.Put(localstore.BucketSession, sessionKey, raw)
}

func (s *Sessions) Load() (domain.Session, bool, error) {
	raw, ok, err := s.store.Get(localstore.BucketSession, sessionKey)
	if err != nil || !ok {
		return domain.Session{}, false, err
	}
	var rec sessionRecord
	if err := json.Unmarshal(raw, &rec); err != nil {
		return domain.Session{}, false, fmt.Errorf("decode session: %w", err)
	}
	return domain.Session{UserID: rec.UserID, Token: rec.Token}, true, nil
}

func (s *Sessions) Clear() error {
	return s.store.Delete(localstore.BucketSession, sessionKey)
}
