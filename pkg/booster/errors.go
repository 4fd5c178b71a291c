package booster

import (
	"errors"
	"fmt"
	"time"

	"github.com/latoulicious/boosterbot/pkg/catalog"
)

// ErrorKind classifies engine failures
type ErrorKind int

const (
	OnCooldown ErrorKind = iota
	CatalogInconsistent
	CardNotFound
	NotOwned
	StorageFailure
	Unauthorized
)

var errorKindNames = map[ErrorKind]string{
	OnCooldown:          "on_cooldown",
	CatalogInconsistent: "catalog_inconsistent",
	CardNotFound:        "card_not_found",
	NotOwned:            "not_owned",
	StorageFailure:      "storage_failure",
	Unauthorized:        "unauthorized",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// EngineError is returned by engine and service operations. Only the fields
// relevant to Kind are set.
type EngineError struct {
	Kind      ErrorKind
	Remaining time.Duration
	Card      string
	Rarity    catalog.Rarity
	Err       error
}

func (e *EngineError) Error() string {
	switch e.Kind {
	case OnCooldown:
		return fmt.Sprintf("on cooldown for %s", e.Remaining)
	case CatalogInconsistent:
		return fmt.Sprintf("no card in catalog for weighted rarity %s", e.Rarity)
	case CardNotFound:
		return fmt.Sprintf("card %q not found", e.Card)
	case NotOwned:
		return fmt.Sprintf("card %q not owned", e.Card)
	case StorageFailure:
		return fmt.Sprintf("storage failure: %v", e.Err)
	case Unauthorized:
		return "unauthorized"
	default:
		return fmt.Sprintf("engine error %d", int(e.Kind))
	}
}

func (e *EngineError) Unwrap() error {
	return e.Err
}

// IsKind reports whether err is an *EngineError of the given kind
func IsKind(err error, kind ErrorKind) bool {
	var ee *EngineError
	return errors.As(err, &ee) && ee.Kind == kind
}
