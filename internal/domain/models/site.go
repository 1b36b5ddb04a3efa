// internal/domain/models/site.go
package models

// Site-wide defaults.
const (
	DefaultSiteName = "LUNICAR"
	DefaultSiteURL  = "https://lunicar.fr"
	DefaultMailTo   = "contact@lunicar.fr"
)

// Collection names in the content store.
const (
	CollectionArticles = "articles"
	CollectionCities   = "cities"
	CollectionThemes   = "themes"
	CollectionLeads    = "demandes"
	CollectionMessages = "messages"
)

// Collections lists every content collection.
var Collections = []string{
	CollectionArticles,
	CollectionCities,
	CollectionThemes,
	CollectionLeads,
	CollectionMessages,
}
