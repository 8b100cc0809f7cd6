package enum

// PricingDecisionStatus is the lifecycle of a pricing decision snapshot
type PricingDecisionStatus string

const (
	PricingDecisionSaved      PricingDecisionStatus = "saved"
	PricingDecisionApproved   PricingDecisionStatus = "approved"
	PricingDecisionRfpCreated PricingDecisionStatus = "rfp_created"
)

// QuotationStatus represents the status of a quotation
type QuotationStatus string

const (
	QuotationStatusPending  QuotationStatus = "pending"
	QuotationStatusSent     QuotationStatus = "sent"
	QuotationStatusCanceled QuotationStatus = "canceled"
)

// WorkOrderStatus represents the status of a production work order
type WorkOrderStatus string

const (
	WorkOrderStatusSentToOperations WorkOrderStatus = "sent_to_operations"
	WorkOrderStatusInProduction     WorkOrderStatus = "in_production"
	WorkOrderStatusCompleted        WorkOrderStatus = "completed"
)
