package enum

// AccountsApprovalStatus is the accounts team's verdict on a submitted quotation
type AccountsApprovalStatus string

const (
	AccountsApprovalPending    AccountsApprovalStatus = "pending"
	AccountsApprovalApproved   AccountsApprovalStatus = "approved"
	AccountsApprovalCreditCase AccountsApprovalStatus = "credit_case"
)

// IsDecision reports whether s is a verdict accounts may record
func (s AccountsApprovalStatus) IsDecision() bool {
	return s == AccountsApprovalApproved || s == AccountsApprovalCreditCase
}

// SeniorApprovalStatus is senior management's verdict on a credit case
type SeniorApprovalStatus string

const (
	SeniorApprovalNotRequired SeniorApprovalStatus = "not_required"
	SeniorApprovalPending     SeniorApprovalStatus = "pending"
	SeniorApprovalApproved    SeniorApprovalStatus = "approved"
	SeniorApprovalRejected    SeniorApprovalStatus = "rejected"
)

// IsDecision reports whether s is a verdict senior management may record
func (s SeniorApprovalStatus) IsDecision() bool {
	return s == SeniorApprovalApproved || s == SeniorApprovalRejected
}
