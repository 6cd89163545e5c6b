// Package citation renders APA and IEEE citation strings for datasets.
package citation

import (
	"fmt"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

// RepositoryName is the fallback source rendered when a dataset has no
// DOI.
const RepositoryName = "Unimus Repository"

// UnknownAuthor is the placeholder for a contributor with neither a
// display name nor an email.
const UnknownAuthor = "Unknown Author"

type Citation struct {
	APA  string `json:"apa"`
	IEEE string `json:"ieee"`
}

// AuthorName resolves the author string: display name, else email,
// else the placeholder.
func AuthorName(contributor *entity.User) string {
	if contributor == nil {
		return UnknownAuthor
	}
	if name := contributor.DisplayName(); name != "" {
		return name
	}
	return UnknownAuthor
}

func doiURL(ds *entity.Dataset) string {
	if ds.DOI == nil || *ds.DOI == "" {
		return ""
	}
	return "https://doi.org/" + *ds.DOI
}

// Generate renders both citation styles for a dataset and author.
func Generate(ds *entity.Dataset, author string) Citation {
	return Citation{
		APA:  apa(ds, author),
		IEEE: ieee(ds, author),
	}
}

func apa(ds *entity.Dataset, author string) string {
	source := doiURL(ds)
	if source == "" {
		source = RepositoryName
	}
	return fmt.Sprintf("%s. (%d). %s [Dataset]. %s.", author, ds.PublicationYear, ds.Title, source)
}

func ieee(ds *entity.Dataset, author string) string {
	cite := fmt.Sprintf(`%s, "%s," Dataset, %d.`, author, ds.Title, ds.PublicationYear)
	if url := doiURL(ds); url != "" {
		return cite + " [Online]. Available: " + url
	}
	return cite + " [Database]"
}
