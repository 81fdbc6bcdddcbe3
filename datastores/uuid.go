package datastores

import (
	"encoding/base64"

	"github.com/google/uuid"
)

// ContactID is a [uuid.UUID] that uses [base64.RawURLEncoding]
// to marshal to text, which is how it shows up in logs.
type ContactID uuid.UUID

func newContactID() ContactID { return ContactID(uuid.Must(uuid.NewV7())) }

func (*ContactID) encoding() *base64.Encoding { return base64.RawURLEncoding }

// IsZero reports whether id was never assigned by a store.
func (id ContactID) IsZero() bool { return id == ContactID{} }

func (id ContactID) String() string {
	b, _ := id.AppendText(nil)
	return string(b)
}

func (id ContactID) AppendText(b []byte) ([]byte, error) {
	return id.encoding().AppendEncode(b, id[:]), nil
}

func (id ContactID) MarshalText() ([]byte, error) {
	return id.AppendText(nil)
}
