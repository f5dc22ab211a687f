// Package permission gates every generated operation by role. Evaluation is
// deny-by-default against the document type's own permission list; a wildcard
// role or action grant matches everything.
package permission

import (
	"fmt"

	"github.com/docflow-io/docflow/internal/doctype"
)

// Error reports a denied action. It names the missing capability so the
// response tells the caller exactly what role grant is absent.
type Error struct {
	DocType string
	Action  doctype.Action
	Roles   []string
}

// Error implements the error interface
func (e *Error) Error() string {
	return fmt.Sprintf("permission denied: %s on %s", e.Action, e.DocType)
}

// Evaluator decides whether a role set may perform an action on a document
// type. It is stateless; one instance serves all requests.
type Evaluator struct{}

// NewEvaluator creates a permission evaluator
func NewEvaluator() *Evaluator {
	return &Evaluator{}
}

// Allowed reports whether any of the caller's roles grants the action
func (e *Evaluator) Allowed(roles []string, action doctype.Action, dt *doctype.DocType) bool {
	for _, grant := range dt.Permissions {
		if !grant.Allows(action) {
			continue
		}
		if grant.Role == doctype.RoleWildcard {
			return true
		}
		for _, role := range roles {
			if role == grant.Role {
				return true
			}
		}
	}
	return false
}

// Check returns a *Error when the action is denied, nil otherwise. It must
// run before the operation body so a denial never leaves a partial side
// effect behind.
func (e *Evaluator) Check(roles []string, action doctype.Action, dt *doctype.DocType) error {
	if e.Allowed(roles, action, dt) {
		return nil
	}
	return &Error{DocType: dt.Name, Action: action, Roles: roles}
}
