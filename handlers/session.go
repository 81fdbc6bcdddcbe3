package handlers

import (
	"context"

	"github.com/oaiiae/contacts-book/router"
)

const helpText = `Available commands:
  hello, hi                      greet the assistant
  add <name> <phone>             add a contact, replacing any contact with that name
  change <name> <phone>          change the phone number of a contact
  phone <name>                   show the phone number of a contact
  delete <name>                  delete a contact
  all                            show all contacts
  add-birthday <name> <date>     set the birthday of a contact (DD.MM.YYYY)
  show-birthday <name>           show the birthday of a contact
  birthdays                      show contacts with a birthday in the next 7 days
  help                           show this help
  close, exit                    quit`

// Session handles the commands controlling the session itself.
type Session struct {
	Stop func()
}

func (h *Session) RegisterClose(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("close", 0, h.close)
	r.Handle("exit", 0, h.close)
}

func (h *Session) close(context.Context, []string) (string, error) {
	if h.Stop != nil {
		h.Stop()
	}
	return "Closing the program.", nil
}

func (h *Session) RegisterHelp(r *router.Router) { // called by [router.AutoRegister]
	r.Handle("help", 0, func(context.Context, []string) (string, error) { return helpText, nil })
}
