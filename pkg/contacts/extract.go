package contacts

import (
	"regexp"
	"strings"
)

var (
	emailPattern   = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	phonePattern   = regexp.MustCompile(`\+?[\d\s\-()]{10,}`)
	quotedPattern  = regexp.MustCompile(`["']([^"']+)["']`)
	parenPattern   = regexp.MustCompile(`\(([^)]+)\)`)
	companyPattern = regexp.MustCompile(`(?i)(?:at|@)\s+([^,<@]+)`)
	phoneStrip     = strings.NewReplacer(" ", "", "\t", "", "\r", "", "\f", "", "-", "", "(", "", ")", "")
)

// namePunctuation wraps names written as `"Jane Doe" <jane@...>` or `Jane Doe (jane@...)`
const namePunctuation = " \t\"'(<,;:"

// ExtractContact extracts a contact from a single line of text.
// It returns false when the line has no email address. Only the first email
// on the line is used.
func ExtractContact(line string) (Contact, bool) {
	loc := emailPattern.FindStringIndex(line)
	if loc == nil {
		return Contact{}, false
	}

	contact := Contact{Email: line[loc[0]:loc[1]]}
	attributes := &Attributes{}

	if name := extractName(line, loc[0]); name != "" {
		attributes.FirstName, attributes.LastName = splitName(name)
	}

	attributes.SMS = extractPhone(line)
	attributes.Company = extractCompany(line)

	if !attributes.IsEmpty() {
		contact.Attributes = attributes
	}

	return contact, true
}

// extractName tries, in order: the text leading up to the first '<' or the email,
// a quoted string, then a parenthesized string
func extractName(line string, emailStart int) string {
	end := emailStart
	if i := strings.IndexByte(line, '<'); i >= 0 && i < end {
		end = i
	}
	if name := strings.Trim(line[:end], namePunctuation); name != "" {
		return name
	}

	if m := quotedPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}

	if m := parenPattern.FindStringSubmatch(line); m != nil {
		return strings.TrimSpace(m[1])
	}

	return ""
}

// splitName returns the first token as first name and the remaining tokens as last name
func splitName(name string) (first, last string) {
	parts := strings.Fields(name)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// extractPhone returns the first phone-like run normalized to digits with an optional leading '+'
func extractPhone(line string) string {
	match := phonePattern.FindString(line)
	if match == "" {
		return ""
	}

	phone := phoneStrip.Replace(match)
	if strings.Trim(phone, "+") == "" {
		return ""
	}

	return phone
}

// extractCompany matches "at X" or "@ X" up to the next comma, '<' or '@'.
// It is not checked against the email, so "@ " inside other text can be picked up.
func extractCompany(line string) string {
	m := companyPattern.FindStringSubmatch(line)
	if m == nil {
		return ""
	}
	return strings.TrimSpace(m[1])
}
