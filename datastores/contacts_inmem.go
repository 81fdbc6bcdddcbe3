package datastores

import (
	"context"
	"slices"
	"sync"
	"time"
)

// ContactsInmem implements [ContactsStore]. Contacts are kept in insertion
// order; values handed out are copies so callers mutate through [ContactsInmem.Update].
type ContactsInmem struct {
	mu       sync.Mutex
	index    map[Name]int
	contacts []*Contact
}

var _ ContactsStore = (*ContactsInmem)(nil)

func NewContactsInmem(cs ...*Contact) *ContactsInmem {
	s := &ContactsInmem{index: make(map[Name]int, len(cs))}
	for _, c := range cs {
		s.put(c.Clone())
	}
	return s
}

// Put inserts c, replacing any contact with the same name. The stored
// contact gets a fresh ID which is returned.
func (s *ContactsInmem) Put(_ context.Context, c *Contact) (ContactID, error) {
	if c.Name == "" {
		return ContactID{}, ErrInvalidName
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.put(c.Clone()), nil
}

func (s *ContactsInmem) put(c *Contact) ContactID {
	c.ID = newContactID()
	if i, ok := s.index[c.Name]; ok {
		s.contacts[i] = c
		return c.ID
	}
	s.index[c.Name] = len(s.contacts)
	s.contacts = append(s.contacts, c)
	return c.ID
}

func (s *ContactsInmem) Get(_ context.Context, name Name) (*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[name]
	if !ok {
		return nil, ErrObjectNotFound
	}
	return s.contacts[i].Clone(), nil
}

// Update applies fn to a copy of the named contact and stores the copy
// only if fn succeeds. The name and ID cannot be changed by fn.
func (s *ContactsInmem) Update(_ context.Context, name Name, fn func(*Contact) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[name]
	if !ok {
		return ErrObjectNotFound
	}
	current := s.contacts[i]
	c := current.Clone()
	if err := fn(c); err != nil {
		return err
	}
	c.ID, c.Name = current.ID, current.Name
	s.contacts[i] = c
	return nil
}

func (s *ContactsInmem) Delete(_ context.Context, name Name) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	i, ok := s.index[name]
	if !ok {
		return ErrObjectNotFound
	}
	delete(s.index, name)
	s.contacts = slices.Delete(s.contacts, i, i+1)
	for j := i; j < len(s.contacts); j++ {
		s.index[s.contacts[j].Name] = j
	}
	return nil
}

func (s *ContactsInmem) List(_ context.Context) ([]*Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	contacts := make([]*Contact, 0, len(s.contacts))
	for _, c := range s.contacts {
		contacts = append(contacts, c.Clone())
	}
	return contacts, nil
}

func (s *ContactsInmem) Len(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.contacts)
}

func (s *ContactsInmem) UpcomingBirthdays(_ context.Context, today time.Time) ([]Name, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return upcomingBirthdays(s.contacts, today, BirthdayWindow), nil
}
