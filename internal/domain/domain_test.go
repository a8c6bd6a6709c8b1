package domain_test

import (
	"testing"

	"clinic-portal-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestParseRole(t *testing.T) {
	for _, valid := range []string{"admin", "clinic", "employer", "job_seeker"} {
		role, err := domain.ParseRole(valid)
		assert.NoError(t, err)
		assert.Equal(t, domain.Role(valid), role)
	}

	for _, invalid := range []string{"", "superadmin", "Clinic", "jobseeker"} {
		_, err := domain.ParseRole(invalid)
		assert.Error(t, err, invalid)
	}
}

func TestRoleProfileKind(t *testing.T) {
	assert.Equal(t, domain.KindClinic, domain.RoleClinic.ProfileKind())
	assert.Equal(t, domain.KindEmployer, domain.RoleEmployer.ProfileKind())
	assert.Equal(t, domain.KindJobSeeker, domain.RoleJobSeeker.ProfileKind())
	assert.Equal(t, domain.KindNone, domain.RoleAdmin.ProfileKind())
}

func TestRoleCapabilities(t *testing.T) {
	assert.True(t, domain.RoleClinic.CanPostJobs())
	assert.True(t, domain.RoleEmployer.CanPostJobs())
	assert.True(t, domain.RoleAdmin.CanPostJobs())
	assert.False(t, domain.RoleJobSeeker.CanPostJobs())

	assert.True(t, domain.RoleJobSeeker.CanApply())
	assert.False(t, domain.RoleClinic.CanApply())
	assert.False(t, domain.RoleEmployer.CanApply())
	assert.False(t, domain.RoleAdmin.CanApply())
}

func TestAccountIsAdmin(t *testing.T) {
	// Both flags are required; staff alone is a moderator, not an admin.
	assert.True(t, (&domain.Account{IsStaff: true, IsSuperuser: true}).IsAdmin())
	assert.False(t, (&domain.Account{IsStaff: true}).IsAdmin())
	assert.False(t, (&domain.Account{IsSuperuser: true}).IsAdmin())
	assert.False(t, (&domain.Account{}).IsAdmin())
}

func TestIsValidStatusTarget(t *testing.T) {
	for _, valid := range []string{"reviewed", "shortlisted", "rejected", "accepted"} {
		assert.True(t, domain.IsValidStatusTarget(valid), valid)
	}
	// Pending is the initial state only, never assignable.
	assert.False(t, domain.IsValidStatusTarget("pending"))
	assert.False(t, domain.IsValidStatusTarget(""))
	assert.False(t, domain.IsValidStatusTarget("hired"))
}

func TestIsValidJobType(t *testing.T) {
	for _, valid := range []string{"full_time", "part_time", "contract", "internship", "remote"} {
		assert.True(t, domain.IsValidJobType(valid), valid)
	}
	assert.False(t, domain.IsValidJobType("freelance"))
	assert.False(t, domain.IsValidJobType(""))
}

func TestProfileUnionAccessors(t *testing.T) {
	clinicProfile := &domain.Profile{
		Kind:   domain.KindClinic,
		Clinic: &domain.ClinicProfile{ID: 7, AccountID: "acc1"},
	}
	assert.Equal(t, int64(7), clinicProfile.ID())
	assert.Equal(t, "acc1", clinicProfile.OwnerAccountID())

	seekerProfile := &domain.Profile{
		Kind:      domain.KindJobSeeker,
		JobSeeker: &domain.JobSeekerProfile{ID: 3, AccountID: "acc2"},
	}
	assert.Equal(t, int64(3), seekerProfile.ID())
	assert.Equal(t, "acc2", seekerProfile.OwnerAccountID())

	empty := &domain.Profile{}
	assert.Equal(t, int64(0), empty.ID())
	assert.Equal(t, "", empty.OwnerAccountID())
}
