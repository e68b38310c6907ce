package actor

import "errors"

var ErrUnauthorized = errors.New("actor not authorized")

type Role string

const (
	RoleSME    Role = "sme"
	RoleLender Role = "lender"
)

// Actor is an already-authenticated identity supplied by the external
// identity provider. The engine never sees raw credentials.
type Actor struct {
	ID   string // 32-char lowercase hex user id
	Role Role
	// SMEID is set only for SME actors and names the SME they own.
	SMEID string
}

// OwnsSME reports whether the actor may act on behalf of the given SME.
func (a Actor) OwnsSME(smeID string) bool {
	return a.Role == RoleSME && a.SMEID == smeID
}

// CanDecide reports whether the actor may approve or reject finance requests.
func (a Actor) CanDecide() bool { return a.Role == RoleLender }
