package ecs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/enginedemos/ecs/component"
)

// ErrSingularityViolation is returned when a query that must match exactly
// one entity matches none or several.
var ErrSingularityViolation = errors.New("ecs: singularity violation")

// SingularityError reports which kinds were queried and how many entities
// matched.
type SingularityError struct {
	Kinds []string
	Count int
}

func (e *SingularityError) Error() string {
	return fmt.Sprintf("%v: expected exactly one entity with [%s], found %d",
		ErrSingularityViolation, strings.Join(e.Kinds, ", "), e.Count)
}

func (e *SingularityError) Unwrap() error {
	return ErrSingularityViolation
}

// Single returns the only entity carrying every kind.
func Single(w *World, kinds ...component.Kind) (Entity, error) {
	ents := w.Query(kinds...)
	if len(ents) != 1 {
		names := make([]string, 0, len(kinds))
		for _, k := range kinds {
			if k != nil {
				names = append(names, k.Name())
			}
		}
		return 0, &SingularityError{Kinds: names, Count: len(ents)}
	}
	return ents[0], nil
}

// MustSingle is Single for callers whose scene guarantees uniqueness. A
// violation is a programming error and panics.
func MustSingle(w *World, kinds ...component.Kind) Entity {
	e, err := Single(w, kinds...)
	if err != nil {
		panic(err)
	}
	return e
}
