package models

// LegalEntity is an Axmed contracting entity used as buyer and bill-to party.
type LegalEntity struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Abbreviation string `json:"abbreviation"`
	Address      string `json:"address"`
}

type SupplierContact struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

type SupplierOrg struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Address  string            `json:"address"`
	City     string            `json:"city"`
	Country  string            `json:"country"`
	Contacts []SupplierContact `json:"contacts"`
}

// PrimaryContact returns the first listed contact, if any.
func (s SupplierOrg) PrimaryContact() (SupplierContact, bool) {
	if len(s.Contacts) == 0 {
		return SupplierContact{}, false
	}
	return s.Contacts[0], true
}
