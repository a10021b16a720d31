package models

// Company is a company-registry (CIPC) record returned by the lookup service.
type Company struct {
	RegistrationNumber string   `json:"registration_number"`
	Name               string   `json:"name"`
	Status             string   `json:"status"`
	Directors          []string `json:"directors"`
}
