// Package contacts recognizes contact records in free-form pasted text.
//
// Input is processed one line at a time. A line contributes a contact only
// when it carries an email address; name, phone and company are picked up
// heuristically from the rest of the line.
package contacts

import "strings"

// Contact is a single contact record in the shape accepted by the bulk import endpoint
type Contact struct {
	Email      string      `json:"email"`
	Attributes *Attributes `json:"attributes,omitempty"`
}

// Attributes holds the optional contact attributes found on a line.
// Empty fields are omitted so an import never blanks existing values.
type Attributes struct {
	FirstName string `json:"FIRSTNAME,omitempty"`
	LastName  string `json:"LASTNAME,omitempty"`
	SMS       string `json:"SMS,omitempty"`
	Company   string `json:"COMPANY,omitempty"`
}

// IsEmpty reports whether no attribute is set
func (a *Attributes) IsEmpty() bool {
	return a == nil || (a.FirstName == "" && a.LastName == "" && a.SMS == "" && a.Company == "")
}

// ParseText splits text into lines and extracts one contact per line that has an email.
// Input order is preserved and duplicates are kept.
func ParseText(text string) []Contact {
	batch := make([]Contact, 0)

	for line := range strings.SplitSeq(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		if contact, ok := ExtractContact(line); ok {
			batch = append(batch, contact)
		}
	}

	return batch
}
