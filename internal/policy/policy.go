// Package policy holds the role- and ownership-based access decisions
// consumed by every resource operation. Decide is a pure function: it never
// touches the store, so callers can check permissions before looking a
// resource up and avoid leaking its existence on denial.
package policy

import (
	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/pkg/apperror"
)

type Action string

const (
	// Staff-only actions
	ActionUpdateApplicationStatus Action = "application:update_status"
	ActionAdministerAccounts      Action = "accounts:administer"
	ActionHardDeleteJob           Action = "job:hard_delete"

	// Ownership actions
	ActionEditProfile   Action = "profile:edit"
	ActionEditJob       Action = "job:edit"
	ActionDeactivateJob Action = "job:deactivate"

	// Ownership actions that staff may also perform
	ActionViewApplication     Action = "application:view"
	ActionViewJobApplications Action = "job:view_applications"

	// Role-gated creation
	ActionCreateJob  Action = "job:create"
	ActionApplyToJob Action = "application:create"

	// Reads open to any authenticated actor
	ActionViewPublicJobs Action = "job:view_public"
)

// Target is anything with an owning account. Pass nil for actions that have
// no ownership component.
type Target interface {
	OwnerAccountID() string
}

// Decide evaluates (actor, action, target) and returns nil to allow or
// apperror.Forbidden to deny. Rules apply in precedence order: superuser,
// staff-only, ownership, authenticated public read, deny.
func Decide(actor *domain.Account, action Action, target Target) error {
	if actor == nil {
		return apperror.Unauthorized("Authentication required")
	}

	// Rule 1: superuser admins may do anything.
	if actor.IsAdmin() {
		return nil
	}

	switch action {
	case ActionUpdateApplicationStatus, ActionAdministerAccounts, ActionHardDeleteJob:
		// Rule 2: staff-only.
		if actor.IsStaff {
			return nil
		}
		return apperror.Forbidden("Permission denied")

	case ActionEditProfile, ActionEditJob, ActionDeactivateJob:
		// Rule 3: ownership.
		if target != nil && target.OwnerAccountID() == actor.ID {
			return nil
		}
		return apperror.Forbidden("Permission denied")

	case ActionViewApplication, ActionViewJobApplications:
		if actor.IsStaff {
			return nil
		}
		if target != nil && target.OwnerAccountID() == actor.ID {
			return nil
		}
		return apperror.Forbidden("Permission denied")

	case ActionCreateJob:
		if actor.Role.CanPostJobs() {
			return nil
		}
		return apperror.Forbidden("Only clinics and employers can post jobs")

	case ActionApplyToJob:
		if actor.Role.CanApply() {
			return nil
		}
		return apperror.Forbidden("Only job seekers can apply to jobs")

	case ActionViewPublicJobs:
		// Rule 4: any authenticated actor may read public resources.
		return nil
	}

	// Rule 5: default deny.
	return apperror.Forbidden("Permission denied")
}
