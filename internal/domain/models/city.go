// internal/domain/models/city.go
package models

// City is reference data backing the /reprise-auto-{slug} landing pages.
type City struct {
	Slug        string `json:"slug"`
	Nom         string `json:"nom"`
	CodePostal  string `json:"codePostal"`
	Departement string `json:"departement"`
	Region      string `json:"region"`
}
