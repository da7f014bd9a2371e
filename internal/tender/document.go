package tender

// Document is the normalized tender schema extracted from a raw candidate.
// All fields are free text; anything the extraction could not recover stays
// empty.
type Document struct {
	Title                   string `json:"title"`
	Description             string `json:"description"`
	Deadline                string `json:"deadline"`
	BudgetRange             string `json:"budget_range"`
	EligibilityCriteria     string `json:"eligibility_criteria"`
	ApplicationRequirements string `json:"application_requirements"`
	ContactDetails          string `json:"contact_details"`
	TenderID                string `json:"tender_id"`
}
