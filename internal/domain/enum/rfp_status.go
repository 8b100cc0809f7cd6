package enum

// RfpStatus represents the workflow status of an RFP
type RfpStatus string

const (
	RfpStatusPendingDH        RfpStatus = "pending_dh"
	RfpStatusApproved         RfpStatus = "approved"
	RfpStatusRejected         RfpStatus = "rejected"
	RfpStatusPricingReady     RfpStatus = "pricing_ready"
	RfpStatusQuotationCreated RfpStatus = "quotation_created"
	RfpStatusAccountsPending  RfpStatus = "accounts_pending"
	RfpStatusAccountsApproved RfpStatus = "accounts_approved"
	RfpStatusCreditCase       RfpStatus = "credit_case"
	RfpStatusSeniorApproved   RfpStatus = "senior_approved"
	RfpStatusSeniorRejected   RfpStatus = "senior_rejected"
	RfpStatusSentToOperations RfpStatus = "sent_to_operations"
)

var rfpTransitions = map[RfpStatus][]RfpStatus{
	RfpStatusPendingDH:        {RfpStatusApproved, RfpStatusRejected},
	RfpStatusApproved:         {RfpStatusPricingReady},
	RfpStatusPricingReady:     {RfpStatusPricingReady, RfpStatusQuotationCreated},
	RfpStatusQuotationCreated: {RfpStatusAccountsPending},
	RfpStatusAccountsPending:  {RfpStatusAccountsApproved, RfpStatusCreditCase},
	RfpStatusAccountsApproved: {RfpStatusSentToOperations},
	RfpStatusCreditCase:       {RfpStatusSeniorApproved, RfpStatusSeniorRejected},
	RfpStatusSeniorApproved:   {RfpStatusSentToOperations},
}

func (s RfpStatus) String() string {
	return string(s)
}

// IsValid reports whether s is a known workflow status
func (s RfpStatus) IsValid() bool {
	switch s {
	case RfpStatusPendingDH, RfpStatusApproved, RfpStatusRejected, RfpStatusPricingReady,
		RfpStatusQuotationCreated, RfpStatusAccountsPending, RfpStatusAccountsApproved,
		RfpStatusCreditCase, RfpStatusSeniorApproved, RfpStatusSeniorRejected,
		RfpStatusSentToOperations:
		return true
	}
	return false
}

// IsTerminal reports whether no further transition can leave s
func (s RfpStatus) IsTerminal() bool {
	_, ok := rfpTransitions[s]
	return !ok
}

// CanTransitionTo reports whether the workflow permits moving from s to next
func (s RfpStatus) CanTransitionTo(next RfpStatus) bool {
	for _, allowed := range rfpTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}
