package identity

import (
	"context"
	"errors"
	"strings"
)

var (
	ErrInvalidCredential  = errors.New("identity: invalid or expired credential")
	ErrCredentialRequired = errors.New("identity: credential required")
)

// GroupHosts marks callers allowed to manage listing calendars.
const GroupHosts = "hosts"

// Identity is the resolved caller: an opaque stable id plus group
// memberships.
type Identity struct {
	ID     string
	Groups []string
}

func (i Identity) InGroup(group string) bool {
	group = strings.TrimSpace(group)
	if group == "" {
		return false
	}
	for _, g := range i.Groups {
		if strings.EqualFold(g, group) {
			return true
		}
	}
	return false
}

// Gate resolves a bearer credential to a caller identity. The engine consumes
// only this interface; token issuance and user management live elsewhere.
type Gate interface {
	Authenticate(ctx context.Context, credential string) (Identity, error)
}
