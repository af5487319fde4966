package referrals

import "strings"

const maxNameLen = 50

// Extract keeps the entries that carry both a name and a contact, classifies
// the contact as email or phone by the presence of '@', and caps the list at
// MaxPerSubmission in submission order.
func Extract(entries []Entry) []Referral {
	out := make([]Referral, 0, MaxPerSubmission)
	for _, entry := range entries {
		if len(out) == MaxPerSubmission {
			break
		}
		name := strings.TrimSpace(entry.Name)
		contact := strings.TrimSpace(entry.Contact)
		if name == "" || contact == "" {
			continue
		}
		ref := Referral{Name: truncate(name, maxNameLen)}
		if strings.Contains(contact, "@") {
			ref.Email = strings.ToLower(contact)
		} else {
			ref.Phone = contact
		}
		out = append(out, ref)
	}
	return out
}

// SplitName returns the first word as the first name and the remainder as the
// last name, each capped at 50 characters.
func SplitName(name string) (first, last string) {
	fields := strings.Fields(strings.TrimSpace(name))
	if len(fields) == 0 {
		return "", ""
	}
	first = truncate(fields[0], maxNameLen)
	if len(fields) > 1 {
		last = truncate(strings.Join(fields[1:], " "), maxNameLen)
	}
	return first, last
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
