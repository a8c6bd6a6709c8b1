package domain

import "fmt"

// Role is the actor kind fixed at registration. It selects which profile
// variant an account may own and which permissions apply.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleClinic    Role = "clinic"
	RoleEmployer  Role = "employer"
	RoleJobSeeker Role = "job_seeker"
)

// ParseRole validates a role string from untrusted input.
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case RoleAdmin, RoleClinic, RoleEmployer, RoleJobSeeker:
		return Role(s), nil
	default:
		return "", fmt.Errorf("unknown role %q", s)
	}
}

// ProfileKind is the tagged variant of profile belonging to a role.
type ProfileKind string

const (
	KindNone      ProfileKind = ""
	KindClinic    ProfileKind = "clinic"
	KindEmployer  ProfileKind = "employer"
	KindJobSeeker ProfileKind = "job_seeker"
)

// ProfileKind maps a role to its profile variant. Admin accounts own no
// profile. The switch is exhaustive over the declared roles; an unknown
// role (which ParseRole should have rejected) maps to KindNone.
func (r Role) ProfileKind() ProfileKind {
	switch r {
	case RoleClinic:
		return KindClinic
	case RoleEmployer:
		return KindEmployer
	case RoleJobSeeker:
		return KindJobSeeker
	case RoleAdmin:
		return KindNone
	default:
		return KindNone
	}
}

// CanPostJobs reports whether the role may create job postings.
func (r Role) CanPostJobs() bool {
	return r == RoleClinic || r == RoleEmployer || r == RoleAdmin
}

// CanApply reports whether the role may submit job applications.
func (r Role) CanApply() bool {
	return r == RoleJobSeeker
}
