package profile

// Profile holds the company attributes recovered from a free-text
// description. Fields that could not be extracted stay empty; a profile is
// never rejected for missing data.
type Profile struct {
	CompanyName string
	Industry    string
	Location    string
	BudgetRange string
	CompanySize string
	Keywords    *KeywordSet
	Preferences map[string]any
}

// Equal reports whether two profiles carry the same extracted fields.
// Keyword sets are compared as sets, ignoring insertion order.
func (p *Profile) Equal(other *Profile) bool {
	if p == nil || other == nil {
		return p == other
	}

	return p.CompanyName == other.CompanyName &&
		p.Industry == other.Industry &&
		p.Location == other.Location &&
		p.BudgetRange == other.BudgetRange &&
		p.CompanySize == other.CompanySize &&
		p.Keywords.Equal(other.Keywords)
}
