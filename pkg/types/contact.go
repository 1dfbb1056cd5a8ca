package types

import "strings"

const MaxContactPhoneNumbers = 2

type Contact struct {
	PhoneNumbers  []string `json:"phoneNumbers" validate:"max=2,dive,required"`
	Email         string   `json:"email" validate:"required,email"`
	GoogleMapsURL string   `json:"googleMapsUrl" validate:"required"`
}

// Clean trims every field and drops empty phone numbers.
func (c *Contact) Clean() {
	phones := make([]string, 0, len(c.PhoneNumbers))
	for _, p := range c.PhoneNumbers {
		p = strings.TrimSpace(p)
		if p != "" {
			phones = append(phones, p)
		}
	}

	c.PhoneNumbers = phones
	c.Email = strings.TrimSpace(c.Email)
	c.GoogleMapsURL = strings.TrimSpace(c.GoogleMapsURL)
}

// IsEmpty reports whether a cleaned contact carries no information at all.
func (c *Contact) IsEmpty() bool {
	return len(c.PhoneNumbers) == 0 && c.Email == "" && c.GoogleMapsURL == ""
}
