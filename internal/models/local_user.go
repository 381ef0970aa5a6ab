package models

import (
	"strconv"
	"time"

	"github.com/google/uuid"
)

// LocalUser is a client-side record added during a session. It is never
// sent to the API and has no store-assigned id.
type LocalUser struct {
	ID          uuid.UUID `json:"id"`
	FirstName   string    `json:"firstName" validate:"required,max=100"`
	LastName    string    `json:"lastName" validate:"required,max=100"`
	Email       string    `json:"email" validate:"required,email,max=255"`
	CompanyName string    `json:"companyName" validate:"max=200"`
	Title       string    `json:"title" validate:"max=150"`
	Country     string    `json:"country" validate:"max=100"`
	AddedAt     time.Time `json:"addedAt"`
	IsLocal     bool      `json:"isLocal"`
}

// EntryKind tags the variant held by an Entry.
type EntryKind int

const (
	EntryPersisted EntryKind = iota
	EntryLocal
)

// Entry is either a persisted User or a LocalUser, never both.
type Entry struct {
	kind      EntryKind
	persisted *User
	local     *LocalUser
}

func PersistedEntry(u *User) Entry { return Entry{kind: EntryPersisted, persisted: u} }

func LocalEntry(u *LocalUser) Entry { return Entry{kind: EntryLocal, local: u} }

func (e Entry) Kind() EntryKind { return e.kind }

// Persisted returns the stored record, or nil for a local entry.
func (e Entry) Persisted() *User { return e.persisted }

// Local returns the session-only record, or nil for a persisted entry.
func (e Entry) Local() *LocalUser { return e.local }

// Key identifies the entry inside a roster.
func (e Entry) Key() string {
	if e.kind == EntryLocal {
		return "local:" + e.local.ID.String()
	}
	return "user:" + strconv.FormatInt(e.persisted.ID, 10)
}

// Searchable returns the fields the client filter matches against:
// full name, company name, company title and country.
func (e Entry) Searchable() [4]string {
	if e.kind == EntryLocal {
		l := e.local
		return [4]string{l.FirstName + " " + l.LastName, l.CompanyName, l.Title, l.Country}
	}
	u := e.persisted
	return [4]string{u.FullName(), deref(u.Company.Name), deref(u.Company.Title), deref(u.Address.Country)}
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
