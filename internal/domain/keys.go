package domain

type CtxKey string

const (
	KeyUserID    CtxKey = "UserID"
	KeyUserEmail CtxKey = "Email"
	KeyUserRole  CtxKey = "Role"
	KeyActor     CtxKey = "Actor" // *Account loaded by the auth middleware

	// Session identity of the presented token, for logout and revocation.
	KeyTokenJTI CtxKey = "TokenJTI"
	KeyTokenExp CtxKey = "TokenExp" // time.Time
)
