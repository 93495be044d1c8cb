package listings

import (
	"context"
	"errors"
)

var (
	ErrNotFound    = errors.New("listings: listing not found")
	ErrInvalidType = errors.New("listings: invalid listing type")
)

type ListingID string
type HostID string

// Type tags a listing as a stay or an experience. It is resolved once at the
// data-access boundary and carried explicitly; nothing downstream parses id
// prefixes.
type Type string

const (
	TypeStay       Type = "STAY"
	TypeExperience Type = "EXPR"
)

func ParseType(s string) (Type, error) {
	switch Type(s) {
	case TypeStay, TypeExperience:
		return Type(s), nil
	default:
		return "", ErrInvalidType
	}
}

// Ref is the slice of listing metadata the booking engine needs: who hosts it
// and what kind of listing it is.
type Ref struct {
	ID   ListingID
	Host HostID
	Type Type
}

// Projection is the display subset attached to search results.
type Projection struct {
	ID    ListingID
	City  string
	Image string
}

// Directory is the read interface onto the externally-owned listing catalog.
// Listing CRUD lives elsewhere; this engine only resolves ownership/type and
// fetches display projections.
type Directory interface {
	Resolve(ctx context.Context, id ListingID) (Ref, error)
	Projections(ctx context.Context, ids []ListingID) ([]Projection, error)
}
