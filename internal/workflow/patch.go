package workflow

import (
	"encoding/json"
	"fmt"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
	"github.com/appdotbuilder/unimus-dataset-repo/internal/entity"
)

// Field is an optional patch field. A field absent from the request
// body stays Set=false and leaves the stored value untouched; a field
// present with a null value is Set=true with the zero Value, so
// "present-and-null" and "absent" stay distinct.
type Field[T any] struct {
	Set   bool
	Value T
}

func (f *Field[T]) UnmarshalJSON(b []byte) error {
	f.Set = true
	return json.Unmarshal(b, &f.Value)
}

func (f Field[T]) MarshalJSON() ([]byte, error) {
	return json.Marshal(f.Value)
}

// DatasetPatch carries a partial dataset update. Only set fields are
// written; a direct status overwrite is permitted and bypasses the
// review-driven transitions (administrative correction).
type DatasetPatch struct {
	Title           Field[string]               `json:"title"`
	Description     Field[string]               `json:"description"`
	Domain          Field[string]               `json:"domain"`
	Task            Field[string]               `json:"task"`
	License         Field[string]               `json:"license"`
	DOI             Field[*string]              `json:"doi"`
	AccessLevel     Field[entity.AccessLevel]   `json:"access_level"`
	Status          Field[entity.DatasetStatus] `json:"status"`
	PublicationYear Field[int]                  `json:"publication_year"`
}

// changes validates the set fields and returns the column map to apply.
func (p DatasetPatch) changes() (map[string]interface{}, error) {
	updates := map[string]interface{}{}
	if p.Title.Set {
		updates["title"] = p.Title.Value
	}
	if p.Description.Set {
		updates["description"] = p.Description.Value
	}
	if p.Domain.Set {
		updates["domain"] = p.Domain.Value
	}
	if p.Task.Set {
		updates["task"] = p.Task.Value
	}
	if p.License.Set {
		updates["license"] = p.License.Value
	}
	if p.DOI.Set {
		updates["doi"] = p.DOI.Value
	}
	if p.AccessLevel.Set {
		if !p.AccessLevel.Value.Valid() {
			return nil, fmt.Errorf("%w: invalid access level %q", apperrors.ErrValidation, p.AccessLevel.Value)
		}
		updates["access_level"] = p.AccessLevel.Value
	}
	if p.Status.Set {
		if !p.Status.Value.Valid() {
			return nil, fmt.Errorf("%w: invalid status %q", apperrors.ErrValidation, p.Status.Value)
		}
		updates["status"] = p.Status.Value
	}
	if p.PublicationYear.Set {
		updates["publication_year"] = p.PublicationYear.Value
	}
	return updates, nil
}
