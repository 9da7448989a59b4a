package models

import "time"

// Invitation lets a family admin bring another person into the tenant.
// The code travels in a shareable link; whoever registers with it joins
// the invitation's family. An invitation is live while AcceptedAt is nil
// and ExpiresAt is in the future.
type Invitation struct {
	Base
	TenantID   string     `gorm:"type:uuid;not null;index" json:"tenant_id"`
	FamilyID   string     `gorm:"type:uuid;not null" json:"family_id"`
	Email      string     `gorm:"not null" json:"email"`
	Code       string     `gorm:"uniqueIndex;not null" json:"code"`
	Role       MemberRole `gorm:"not null;default:parent" json:"role"`
	ExpiresAt  time.Time  `gorm:"not null" json:"expires_at"`
	AcceptedAt *time.Time `json:"accepted_at"`
}

// IsExpired reports whether the invitation's expiry has passed.
func (i *Invitation) IsExpired() bool {
	return time.Now().After(i.ExpiresAt)
}

// IsAccepted reports whether the invitation has already been used.
func (i *Invitation) IsAccepted() bool {
	return i.AcceptedAt != nil
}

// IsLive reports whether the invitation can still be accepted.
func (i *Invitation) IsLive() bool {
	return !i.IsExpired() && !i.IsAccepted()
}
