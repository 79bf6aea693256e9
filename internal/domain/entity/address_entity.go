package entity

import "strings"

// Address is a shipping address owned by a User. UserID is a non-owning
// back-reference kept for lookup only; the User side drives the lifecycle.
type Address struct {
	ID              string
	UserID          string
	StreetType      string
	NumberPrefix    string
	MainNumber      string
	SecondaryNumber string
	AdditionalInfo  string
	Neighborhood    string
	City            string
	ZipCode         string
	Country         string
}

// Validate reports whether the fields required for shipping are present.
func (a *Address) Validate() bool {
	return strings.TrimSpace(a.MainNumber) != "" &&
		strings.TrimSpace(a.City) != "" &&
		strings.TrimSpace(a.ZipCode) != "" &&
		strings.TrimSpace(a.Country) != ""
}

// FullStreet renders the street portion without city or country.
func (a *Address) FullStreet() string {
	var b strings.Builder
	if a.MainNumber != "" {
		if a.NumberPrefix != "" {
			b.WriteString(a.NumberPrefix)
			b.WriteString(" ")
		}
		b.WriteString(a.MainNumber)
		if a.SecondaryNumber != "" {
			b.WriteString("-")
			b.WriteString(a.SecondaryNumber)
		}
	}
	if a.AdditionalInfo != "" {
		if b.Len() > 0 {
			b.WriteString(" - ")
		}
		b.WriteString(a.AdditionalInfo)
	}
	return strings.TrimSpace(b.String())
}

// FormatForShipping renders the full single-line address used on labels.
func (a *Address) FormatForShipping() string {
	var b strings.Builder
	if a.StreetType != "" {
		b.WriteString(a.StreetType)
		b.WriteString(" ")
	}
	b.WriteString(a.FullStreet())
	if a.Neighborhood != "" {
		b.WriteString(", ")
		b.WriteString(a.Neighborhood)
	}
	if a.City != "" {
		b.WriteString(", ")
		b.WriteString(a.City)
	}
	if a.ZipCode != "" {
		b.WriteString(" ")
		b.WriteString(a.ZipCode)
	}
	if a.Country != "" {
		b.WriteString(", ")
		b.WriteString(a.Country)
	}
	return strings.TrimSpace(b.String())
}
