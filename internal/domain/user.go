package domain

import "strings"

// UserProfile is a diary participant. Identity is the (FirstName, LastName)
// pair compared case-insensitively; profiles are never edited, only removed
// by a full reset.
type UserProfile struct {
	FirstName string
	LastName  string
}

// DisplayName is "Vorname Nachname", the value stored with each trip.
func (u UserProfile) DisplayName() string {
	return u.FirstName + " " + u.LastName
}

// Key is the case-insensitive identity used for uniqueness checks. It is the
// lowercased display name, so "Anna Maria"/"Muster" and "Anna"/"Maria Muster"
// are the same user.
func (u UserProfile) Key() string {
	return strings.ToLower(u.FirstName) + " " + strings.ToLower(u.LastName)
}
