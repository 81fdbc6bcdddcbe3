package datastores

import (
	"context"
	"errors"
	"time"
)

type ContactsStore interface {
	Put(context.Context, *Contact) (ContactID, error)
	Get(context.Context, Name) (*Contact, error)
	Update(context.Context, Name, func(*Contact) error) error
	Delete(context.Context, Name) error
	List(context.Context) ([]*Contact, error)
	Len(context.Context) int
	UpcomingBirthdays(ctx context.Context, today time.Time) ([]Name, error)
}

var (
	ErrObjectNotFound  = errors.New("store: object not found")
	ErrPhoneNotFound   = errors.New("contact: phone not found")
	ErrInvalidName     = errors.New("contact: empty name")
	ErrInvalidPhone    = errors.New("contact: invalid phone")
	ErrInvalidBirthday = errors.New("contact: invalid birthday")
)
