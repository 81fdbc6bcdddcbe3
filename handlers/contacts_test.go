package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ds "github.com/oaiiae/contacts-book/datastores"
	"github.com/oaiiae/contacts-book/router"
)

type dispatcher struct {
	t      *testing.T
	router *router.Router
	errs   []error
}

func newDispatcher(t *testing.T, today time.Time, seed ...*ds.Contact) *dispatcher {
	d := &dispatcher{t: t}
	d.router = router.New(
		router.OptAutoRegister(&Greeting{}),
		router.OptAutoRegister(&Contacts{
			Store:        ds.NewContactsInmem(seed...),
			Now:          func() time.Time { return today },
			ErrorHandler: func(_ context.Context, err error) { d.errs = append(d.errs, err) },
		}),
	)
	return d
}

// run dispatches line and returns what a user would read.
func (d *dispatcher) run(line string) string {
	d.t.Helper()
	out, err := d.router.Dispatch(context.Background(), line)
	if err != nil {
		var userErr *router.UserError
		require.ErrorAs(d.t, err, &userErr, "line %q", line)
		return userErr.Message
	}
	return out
}

func TestContactsCommands(t *testing.T) {
	d := newDispatcher(t, time.Date(2024, time.June, 10, 12, 0, 0, 0, time.UTC))

	for _, step := range []struct{ line, want string }{
		{"hello", "How can I help you?"},
		{"all", "No contacts saved."},
		{"phone John", "Contact John not found."},
		{"add John 1234567890", "Contact John added with phone 1234567890."},
		{"add Jane 12345", "Phone must be a 10-digit numeric value."},
		{"phone Jane", "Contact Jane not found."},
		{"phone John", "Phone number for John: 1234567890."},
		{"change John 1112223333", "Phone number for John changed to 1112223333."},
		{"change John abc", "Phone must be a 10-digit numeric value."},
		{"phone John", "Phone number for John: 1112223333."},
		{"change Jane 1112223333", "Contact Jane not found."},
		{"show-birthday John", "Birthday not found for John."},
		{"show-birthday Jane", "Birthday not found for Jane."},
		{"add-birthday John 31.02.1990", "Invalid birthday format. Use DD.MM.YYYY"},
		{"add-birthday Jane 12.06.1990", "Contact Jane not found."},
		{"add-birthday John 12.06.1990", "Birthday added for John."},
		{"show-birthday John", "Birthday for John: 12.06.1990."},
		{"add Jane 9876543210", "Contact Jane added with phone 9876543210."},
		{"add-birthday Jane 18.06.1992", "Birthday added for Jane."},
		{"birthdays", "Upcoming birthdays: John."},
		{"all", "Contact name: John, phones: 1112223333, Birthday: 12.06.1990\n" +
			"Contact name: Jane, phones: 9876543210, Birthday: 18.06.1992"},
		{"delete Jane", "Contact Jane deleted."},
		{"delete Jane", "Contact Jane not found."},
		{"add John 5555555555", "Contact John added with phone 5555555555."},
		{"show-birthday John", "Birthday not found for John."},
		{"birthdays", "No upcoming birthdays in the next week."},
	} {
		assert.Equal(t, step.want, d.run(step.line), "line %q", step.line)
	}

	assert.Len(t, d.errs, 11)
}

func TestContactsBirthdaysAcrossNewYear(t *testing.T) {
	d := newDispatcher(t, time.Date(2024, time.December, 29, 8, 0, 0, 0, time.UTC))

	d.run("add Ann 1234567890")
	d.run("add-birthday Ann 02.01.1995")
	d.run("add Bob 1234567890")
	d.run("add-birthday Bob 28.12.1980")
	d.run("add Eve 1234567890")
	d.run("add-birthday Eve 31.12.2001")

	assert.Equal(t, "Upcoming birthdays: Ann, Eve.", d.run("birthdays"))
}

func TestContactsChangeKeepsFirstPosition(t *testing.T) {
	john, err := ds.NewContact("John")
	require.NoError(t, err)
	require.NoError(t, john.AddPhone("1234567890"))
	require.NoError(t, john.AddPhone("5555555555"))
	d := newDispatcher(t, time.Now(), john)

	assert.Equal(t, "Phone number for John changed to 1112223333.", d.run("change John 1112223333"))
	assert.Equal(t, "Phone number for John: 1112223333.", d.run("phone John"))
	assert.Equal(t, "Contact name: John, phones: 1112223333: 5555555555", d.run("all"))
}

func TestContactsWrongArity(t *testing.T) {
	d := newDispatcher(t, time.Now())

	for _, line := range []string{"add John", "add John 1234567890 extra", "phone", "all now", "birthdays soon"} {
		_, err := d.router.Dispatch(context.Background(), line)
		require.ErrorIs(t, err, router.ErrInvalidCommand, "line %q", line)
	}
	assert.Empty(t, d.errs)
}

func TestSession(t *testing.T) {
	stopped := 0
	r := router.New(router.OptAutoRegister(&Session{Stop: func() { stopped++ }}))

	for _, verb := range []string{"close", "EXIT"} {
		out, err := r.Dispatch(context.Background(), verb)
		require.NoError(t, err)
		assert.Equal(t, "Closing the program.", out)
	}
	assert.Equal(t, 2, stopped)

	out, err := r.Dispatch(context.Background(), "help")
	require.NoError(t, err)
	for _, verb := range []string{"add", "change", "phone", "all", "add-birthday", "show-birthday", "birthdays", "close"} {
		assert.Contains(t, out, verb)
	}
}
