package client

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/user-directory/engine/internal/api/validators"
	"github.com/user-directory/engine/internal/models"
)

// Roster is the list a user browses: fetched profiles plus session-only
// additions. Local entries sit in front of fetched ones, newest first.
type Roster struct {
	mu       sync.RWMutex
	local    []models.Entry
	fetched  []models.Entry
	total    int64
	validate *validator.Validate
	now      func() time.Time
}

func NewRoster() *Roster {
	return &Roster{
		validate: validators.New(),
		now:      time.Now,
	}
}

// Load replaces the fetched entries with one page from the API. Local
// entries are kept.
func (r *Roster) Load(ctx context.Context, c *Client, p ListParams) error {
	list, err := c.ListUsers(ctx, p)
	if err != nil {
		return err
	}
	fetched := make([]models.Entry, 0, len(list.Users))
	for i := range list.Users {
		fetched = append(fetched, models.PersistedEntry(&list.Users[i]))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.fetched = fetched
	r.total = list.Total
	return nil
}

// AddLocal validates u, stamps it as local and puts it at the front.
func (r *Roster) AddLocal(u models.LocalUser) (models.Entry, error) {
	if err := r.validate.Struct(u); err != nil {
		return models.Entry{}, fmt.Errorf("invalid local user: %w", err)
	}
	u.ID = uuid.New()
	u.AddedAt = r.now()
	u.IsLocal = true
	e := models.LocalEntry(&u)

	r.mu.Lock()
	defer r.mu.Unlock()
	r.local = append([]models.Entry{e}, r.local...)
	return e, nil
}

// Remove drops the entry with the given key and reports whether it existed.
func (r *Roster) Remove(key string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	var ok bool
	if r.local, ok = without(r.local, key); ok {
		return true
	}
	r.fetched, ok = without(r.fetched, key)
	return ok
}

func without(entries []models.Entry, key string) ([]models.Entry, bool) {
	for i, e := range entries {
		if e.Key() == key {
			out := make([]models.Entry, 0, len(entries)-1)
			out = append(out, entries[:i]...)
			return append(out, entries[i+1:]...), true
		}
	}
	return entries, false
}

// Entries returns local entries followed by fetched ones.
func (r *Roster) Entries() []models.Entry {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Entry, 0, len(r.local)+len(r.fetched))
	out = append(out, r.local...)
	return append(out, r.fetched...)
}

// Total is the server-side match count of the last Load.
func (r *Roster) Total() int64 {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.total
}

// Filter keeps entries whose full name, company name, title or country
// contains term, ignoring case. An empty term keeps everything.
func (r *Roster) Filter(term string) []models.Entry {
	all := r.Entries()
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return all
	}
	out := make([]models.Entry, 0, len(all))
	for _, e := range all {
		for _, s := range e.Searchable() {
			if strings.Contains(strings.ToLower(s), term) {
				out = append(out, e)
				break
			}
		}
	}
	return out
}
