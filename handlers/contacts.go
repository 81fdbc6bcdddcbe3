package handlers

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	ds "github.com/oaiiae/contacts-book/datastores"
	"github.com/oaiiae/contacts-book/router"
)

type Contacts struct {
	Store        ds.ContactsStore
	Now          func() time.Time
	ErrorHandler func(context.Context, error)
	Logger       func(context.Context) *slog.Logger
}

func (h *Contacts) now() time.Time {
	if h.Now == nil {
		return time.Now()
	}
	return h.Now()
}

func (h *Contacts) logger(ctx context.Context) *slog.Logger {
	if h.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return h.Logger(ctx)
}

func (h *Contacts) RegisterAdd(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("add", 2, handlerWithErrorHandler(h.add, h.ErrorHandler))
}

func (h *Contacts) add(ctx context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	contact, err := ds.NewContact(name)
	if err != nil {
		return "", invalidInput(err)
	}
	if err := contact.AddPhone(phone); err != nil {
		return "", invalidInput(err)
	}

	id, err := h.Store.Put(ctx, contact)
	if err != nil {
		return "", err
	}
	h.logger(ctx).Info("contact saved", "name", name, "id", id)
	return "Contact " + name + " added with phone " + phone + ".", nil
}

func (h *Contacts) RegisterChange(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("change", 2, handlerWithErrorHandler(h.change, h.ErrorHandler))
}

func (h *Contacts) change(ctx context.Context, args []string) (string, error) {
	name, phone := args[0], args[1]
	err := h.Store.Update(ctx, ds.Name(name), func(c *ds.Contact) error {
		if len(c.Phones) == 0 {
			return c.AddPhone(phone)
		}
		return c.SetPhone(0, phone)
	})
	switch {
	case err == nil:
		h.logger(ctx).Info("phone changed", "name", name)
		return "Phone number for " + name + " changed to " + phone + ".", nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return "", contactNotFound(name, err)

	default:
		return "", invalidInput(err)
	}
}

func (h *Contacts) RegisterPhone(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("phone", 1, handlerWithErrorHandler(h.phone, h.ErrorHandler))
}

func (h *Contacts) phone(ctx context.Context, args []string) (string, error) {
	name := args[0]
	contact, err := h.Store.Get(ctx, ds.Name(name))
	switch {
	case errors.Is(err, ds.ErrObjectNotFound):
		return "", contactNotFound(name, err)

	case err != nil:
		return "", err

	case len(contact.Phones) == 0:
		return "", router.UserErrorf(ds.ErrPhoneNotFound, "Contact %s has no phone numbers.", name)

	default:
		return "Phone number for " + name + ": " + contact.Phones[0].String() + ".", nil
	}
}

func (h *Contacts) RegisterDelete(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("delete", 1, handlerWithErrorHandler(h.del, h.ErrorHandler))
}

func (h *Contacts) del(ctx context.Context, args []string) (string, error) {
	name := args[0]
	err := h.Store.Delete(ctx, ds.Name(name))
	switch {
	case err == nil:
		h.logger(ctx).Info("contact deleted", "name", name)
		return "Contact " + name + " deleted.", nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return "", contactNotFound(name, err)

	default:
		return "", err
	}
}

func (h *Contacts) RegisterAll(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("all", 0, handlerWithErrorHandler(h.all, h.ErrorHandler))
}

func (h *Contacts) all(ctx context.Context, _ []string) (string, error) {
	contacts, err := h.Store.List(ctx)
	if err != nil {
		return "", err
	}
	if len(contacts) == 0 {
		return "No contacts saved.", nil
	}

	lines := make([]string, 0, len(contacts))
	for _, c := range contacts {
		lines = append(lines, c.String())
	}
	return strings.Join(lines, "\n"), nil
}

func (h *Contacts) RegisterAddBirthday(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("add-birthday", 2, handlerWithErrorHandler(h.addBirthday, h.ErrorHandler))
}

func (h *Contacts) addBirthday(ctx context.Context, args []string) (string, error) {
	name, date := args[0], args[1]
	err := h.Store.Update(ctx, ds.Name(name), func(c *ds.Contact) error {
		return c.AddBirthday(date)
	})
	switch {
	case err == nil:
		h.logger(ctx).Info("birthday set", "name", name)
		return "Birthday added for " + name + ".", nil

	case errors.Is(err, ds.ErrObjectNotFound):
		return "", contactNotFound(name, err)

	default:
		return "", invalidInput(err)
	}
}

func (h *Contacts) RegisterShowBirthday(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("show-birthday", 1, handlerWithErrorHandler(h.showBirthday, h.ErrorHandler))
}

func (h *Contacts) showBirthday(ctx context.Context, args []string) (string, error) {
	name := args[0]
	contact, err := h.Store.Get(ctx, ds.Name(name))
	switch {
	case err == nil && contact.Birthday != nil:
		return "Birthday for " + name + ": " + contact.Birthday.String() + ".", nil

	case err == nil, errors.Is(err, ds.ErrObjectNotFound):
		return "", router.UserErrorf(err, "Birthday not found for %s.", name)

	default:
		return "", err
	}
}

func (h *Contacts) RegisterBirthdays(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("birthdays", 0, handlerWithErrorHandler(h.birthdays, h.ErrorHandler))
}

func (h *Contacts) birthdays(ctx context.Context, _ []string) (string, error) {
	names, err := h.Store.UpcomingBirthdays(ctx, h.now())
	if err != nil {
		return "", err
	}
	if len(names) == 0 {
		return "No upcoming birthdays in the next week.", nil
	}

	list := make([]string, 0, len(names))
	for _, n := range names {
		list = append(list, n.String())
	}
	return "Upcoming birthdays: " + strings.Join(list, ", ") + ".", nil
}

func contactNotFound(name string, err error) error {
	return router.UserErrorf(err, "Contact %s not found.", name)
}

// invalidInput turns validation failures into their user message and
// passes any other error through.
func invalidInput(err error) error {
	switch {
	case errors.Is(err, ds.ErrInvalidPhone):
		return router.UserErrorf(err, "Phone must be a 10-digit numeric value.")
	case errors.Is(err, ds.ErrInvalidBirthday):
		return router.UserErrorf(err, "Invalid birthday format. Use DD.MM.YYYY")
	case errors.Is(err, ds.ErrInvalidName):
		return router.UserErrorf(err, "Contact name must not be empty.")
	default:
		return err
	}
}
