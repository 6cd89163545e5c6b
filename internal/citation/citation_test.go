package citation

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

func dataset(title string, year int, doi *string) *entity.Dataset {
	return &entity.Dataset{Title: title, PublicationYear: year, DOI: doi}
}

func TestGenerateWithoutDOI(t *testing.T) {
	c := Generate(dataset("T", 2022, nil), "A")

	assert.Equal(t, "A. (2022). T [Dataset]. Unimus Repository.", c.APA)
	assert.Equal(t, `A, "T," Dataset, 2022. [Database]`, c.IEEE)
}

func TestGenerateWithDOI(t *testing.T) {
	doi := "10.1234/abcd"
	c := Generate(dataset("Rainfall Records", 2021, &doi), "Dr. Sari")

	assert.Equal(t, "Dr. Sari. (2021). Rainfall Records [Dataset]. https://doi.org/10.1234/abcd.", c.APA)
	assert.Equal(t, `Dr. Sari, "Rainfall Records," Dataset, 2021. [Online]. Available: https://doi.org/10.1234/abcd`, c.IEEE)
}

func TestGenerateEmptyDOIFallsBack(t *testing.T) {
	doi := ""
	c := Generate(dataset("T", 2022, &doi), "A")

	assert.Equal(t, "A. (2022). T [Dataset]. Unimus Repository.", c.APA)
}

func TestAuthorName(t *testing.T) {
	name := "Dr. Sari"
	assert.Equal(t, "Dr. Sari", AuthorName(&entity.User{Name: &name, Email: "s@example.edu"}))

	empty := ""
	assert.Equal(t, "s@example.edu", AuthorName(&entity.User{Name: &empty, Email: "s@example.edu"}))
	assert.Equal(t, "s@example.edu", AuthorName(&entity.User{Email: "s@example.edu"}))

	assert.Equal(t, UnknownAuthor, AuthorName(&entity.User{}))
	assert.Equal(t, UnknownAuthor, AuthorName(nil))
}
