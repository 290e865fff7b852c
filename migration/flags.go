// Package migration maps legacy status snapshots onto workflow statuses so
// bulk-migrated documents enter the state machine at a sensible terminal or
// exception state instead of restarting at CAPTURED. It chooses a starting
// point within the ordinary transition tables and never alters them; a
// migrated document remains fully subject to normal Advance transitions.
package migration

// LegacyFlags is the boolean status snapshot exported by a legacy system.
// QualityTags carries any quality-record tags present on the source record.
type LegacyFlags struct {
	IsPaid      bool     `json:"is_paid"`
	IsPosted    bool     `json:"is_posted"`
	IsExported  bool     `json:"is_exported"`
	IsApproved  bool     `json:"is_approved"`
	IsCanceled  bool     `json:"is_canceled"`
	IsVoided    bool     `json:"is_voided"`
	IsClosed    bool     `json:"is_closed"`
	IsReviewed  bool     `json:"is_reviewed"`
	QualityTags []string `json:"quality_tags,omitempty"`
}

// Dead reports whether the legacy record was canceled or voided.
func (f LegacyFlags) Dead() bool {
	return f.IsCanceled || f.IsVoided
}
