package datastores

import (
	"fmt"
	"slices"
	"strings"
)

// Contact is the record held for one person. The zero ID means the
// contact has not been put into a store yet.
type Contact struct {
	ID       ContactID
	Name     Name
	Phones   []Phone
	Birthday *Birthday
}

func NewContact(name string) (*Contact, error) {
	n, err := ParseName(name)
	if err != nil {
		return nil, err
	}
	return &Contact{Name: n}, nil
}

func (c *Contact) AddPhone(phone string) error {
	p, err := ParsePhone(phone)
	if err != nil {
		return err
	}
	c.Phones = append(c.Phones, p)
	return nil
}

// RemovePhone drops every phone equal to phone.
func (c *Contact) RemovePhone(phone string) {
	c.Phones = slices.DeleteFunc(c.Phones, func(p Phone) bool { return string(p) == phone })
}

// EditPhone replaces old with phone. The new value is validated before
// anything is removed so an invalid phone leaves c untouched.
func (c *Contact) EditPhone(old, phone string) error {
	p, err := ParsePhone(phone)
	if err != nil {
		return err
	}
	c.RemovePhone(old)
	c.Phones = append(c.Phones, p)
	return nil
}

// SetPhone replaces the phone at index i, keeping its position.
func (c *Contact) SetPhone(i int, phone string) error {
	if i < 0 || i >= len(c.Phones) {
		return fmt.Errorf("%w: no phone at index %d", ErrPhoneNotFound, i)
	}
	p, err := ParsePhone(phone)
	if err != nil {
		return err
	}
	c.Phones[i] = p
	return nil
}

func (c *Contact) FindPhone(phone string) (Phone, error) {
	i := slices.Index(c.Phones, Phone(phone))
	if i < 0 {
		return "", fmt.Errorf("%w: %s", ErrPhoneNotFound, phone)
	}
	return c.Phones[i], nil
}

func (c *Contact) AddBirthday(date string) error {
	b, err := ParseBirthday(date)
	if err != nil {
		return err
	}
	c.Birthday = &b
	return nil
}

// Clone returns a deep copy of c.
func (c *Contact) Clone() *Contact {
	clone := *c
	clone.Phones = slices.Clone(c.Phones)
	if c.Birthday != nil {
		b := *c.Birthday
		clone.Birthday = &b
	}
	return &clone
}

func (c *Contact) String() string {
	var sb strings.Builder
	sb.WriteString("Contact name: ")
	sb.WriteString(string(c.Name))
	sb.WriteString(", phones: ")
	for i, p := range c.Phones {
		if i > 0 {
			sb.WriteString(": ")
		}
		sb.WriteString(string(p))
	}
	if c.Birthday != nil {
		sb.WriteString(", Birthday: ")
		sb.WriteString(c.Birthday.String())
	}
	return sb.String()
}
