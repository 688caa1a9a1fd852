package usecase

// Actor identifies the authenticated caller for tenant-scoped operations.
// The web layer builds it from the session; use cases only check ownership.
type Actor struct {
	UserID string
	Admin  bool
}

// CanManage reports whether the actor may mutate resources owned by the
// tenant's user account.
func (a Actor) CanManage(tenantUserID string) bool {
	return a.Admin || (a.UserID != "" && a.UserID == tenantUserID)
}
