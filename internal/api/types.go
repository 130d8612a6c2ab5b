package api

// Program is a promotional program a partner can apply to.
// Read-only from the client's point of view.
type Program struct {
	ID       string `json:"id"`
	Slug     string `json:"slug"`
	Name     string `json:"name"`
	Domain   string `json:"domain"`
	Logo     string `json:"logo,omitempty"`
	TermsURL string `json:"termsUrl,omitempty"`
}

// PartnerProfile identifies the partner on whose behalf applications
// are submitted.
type PartnerProfile struct {
	Email   string `json:"email"`
	Name    string `json:"name"`
	Website string `json:"website,omitempty"`
}

// ApplicationPayload is the merged submission sent to the platform:
// the form values plus partner identity and the program id.
type ApplicationPayload struct {
	Proposal       string `json:"proposal"`
	Comments       string `json:"comments,omitempty"`
	TermsAgreement bool   `json:"termsAgreement"`
	Email          string `json:"email"`
	Name           string `json:"name"`
	Website        string `json:"website,omitempty"`
	ProgramID      string `json:"programId"`
	IdempotencyKey string `json:"idempotencyKey"`
}
