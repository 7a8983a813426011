package model

import "time"

// LicenseProfile is the business profile returned by the FSSAI registry,
// normalized to one shape regardless of the upstream response layout.
type LicenseProfile struct {
	LicenseNumber string     `json:"licenseNumber"`
	CompanyName   string     `json:"companyName"`
	Address       string     `json:"address"`
	State         string     `json:"state"`
	District      string     `json:"district"`
	Pincode       string     `json:"pincode"`
	Taluk         string     `json:"taluk,omitempty"`
	LicenseType   string     `json:"licenseType"`
	Status        string     `json:"status"`
	IssuedDate    *time.Time `json:"issuedDate,omitempty"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	Products      []string   `json:"products"`
}

// VerificationResult is the outcome of a successful license lookup.
// IsMock marks synthetic profiles produced without a registry response.
type VerificationResult struct {
	Verified bool            `json:"verified"`
	Data     *LicenseProfile `json:"data"`
	IsMock   bool            `json:"isMock"`
}
