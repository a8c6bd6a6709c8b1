package policy_test

import (
	"testing"

	"clinic-portal-backend/internal/domain"
	"clinic-portal-backend/internal/policy"

	"github.com/stretchr/testify/assert"
)

type ownedTarget struct {
	owner string
}

func (t ownedTarget) OwnerAccountID() string { return t.owner }

func admin() *domain.Account {
	return &domain.Account{ID: "admin1", Role: domain.RoleAdmin, IsStaff: true, IsSuperuser: true}
}

func staff() *domain.Account {
	return &domain.Account{ID: "staff1", Role: domain.RoleAdmin, IsStaff: true}
}

func clinic(id string) *domain.Account {
	return &domain.Account{ID: id, Role: domain.RoleClinic}
}

func seeker(id string) *domain.Account {
	return &domain.Account{ID: id, Role: domain.RoleJobSeeker}
}

func TestDecideNilActor(t *testing.T) {
	err := policy.Decide(nil, policy.ActionViewPublicJobs, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Authentication required")
}

func TestDecideSuperuser(t *testing.T) {
	// Superuser admins pass every action, including ones they do not own.
	actions := []policy.Action{
		policy.ActionUpdateApplicationStatus,
		policy.ActionAdministerAccounts,
		policy.ActionHardDeleteJob,
		policy.ActionEditProfile,
		policy.ActionEditJob,
		policy.ActionCreateJob,
		policy.ActionApplyToJob,
		policy.ActionViewPublicJobs,
	}
	for _, action := range actions {
		assert.NoError(t, policy.Decide(admin(), action, ownedTarget{owner: "someone-else"}), string(action))
	}
}

func TestDecideStaffOnly(t *testing.T) {
	t.Run("Staff allowed", func(t *testing.T) {
		assert.NoError(t, policy.Decide(staff(), policy.ActionUpdateApplicationStatus, nil))
		assert.NoError(t, policy.Decide(staff(), policy.ActionAdministerAccounts, nil))
	})

	t.Run("Owner denied for staff-only action", func(t *testing.T) {
		// Owning the target does not substitute for staff status.
		err := policy.Decide(seeker("u1"), policy.ActionUpdateApplicationStatus, ownedTarget{owner: "u1"})
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Permission denied")
	})

	t.Run("Non-superuser staff cannot hard delete as owner check", func(t *testing.T) {
		assert.NoError(t, policy.Decide(staff(), policy.ActionHardDeleteJob, nil))
	})
}

func TestDecideOwnership(t *testing.T) {
	t.Run("Owner allowed", func(t *testing.T) {
		assert.NoError(t, policy.Decide(clinic("c1"), policy.ActionEditJob, ownedTarget{owner: "c1"}))
	})

	t.Run("Non-owner denied", func(t *testing.T) {
		err := policy.Decide(clinic("c1"), policy.ActionEditJob, ownedTarget{owner: "c2"})
		assert.Error(t, err)
	})

	t.Run("Nil target denied", func(t *testing.T) {
		err := policy.Decide(clinic("c1"), policy.ActionEditJob, nil)
		assert.Error(t, err)
	})

	t.Run("Staff without ownership denied for owner-only action", func(t *testing.T) {
		err := policy.Decide(staff(), policy.ActionEditProfile, ownedTarget{owner: "c1"})
		assert.Error(t, err)
	})
}

func TestDecideStaffOrOwner(t *testing.T) {
	t.Run("Owner allowed", func(t *testing.T) {
		assert.NoError(t, policy.Decide(seeker("u1"), policy.ActionViewApplication, ownedTarget{owner: "u1"}))
	})

	t.Run("Staff allowed without ownership", func(t *testing.T) {
		assert.NoError(t, policy.Decide(staff(), policy.ActionViewApplication, ownedTarget{owner: "u1"}))
	})

	t.Run("Third party denied", func(t *testing.T) {
		err := policy.Decide(seeker("u2"), policy.ActionViewApplication, ownedTarget{owner: "u1"})
		assert.Error(t, err)
	})
}

func TestDecideRoleGatedCreate(t *testing.T) {
	t.Run("Clinics and employers may post jobs", func(t *testing.T) {
		assert.NoError(t, policy.Decide(clinic("c1"), policy.ActionCreateJob, nil))
		employer := &domain.Account{ID: "e1", Role: domain.RoleEmployer}
		assert.NoError(t, policy.Decide(employer, policy.ActionCreateJob, nil))
	})

	t.Run("Job seekers may not post jobs", func(t *testing.T) {
		err := policy.Decide(seeker("u1"), policy.ActionCreateJob, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only clinics and employers can post jobs")
	})

	t.Run("Only job seekers may apply", func(t *testing.T) {
		assert.NoError(t, policy.Decide(seeker("u1"), policy.ActionApplyToJob, nil))
		err := policy.Decide(clinic("c1"), policy.ActionApplyToJob, nil)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "Only job seekers can apply")
	})
}

func TestDecideDefaultDeny(t *testing.T) {
	err := policy.Decide(seeker("u1"), policy.Action("unknown:action"), nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "Permission denied")
}
