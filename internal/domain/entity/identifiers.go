package entity

// WorkflowRfpID is the business identifier of an RFP aggregate, assigned once at
// head approval: RFP-<salespersonKey>-<YYYYMM>-<seq3>, sequenced per salesperson
// per month.
type WorkflowRfpID string

func (id WorkflowRfpID) String() string {
	return string(id)
}

// DecisionSnapshotID is the business identifier of a pricing decision snapshot:
// RFP-<YYYYMM>-<seq4>, sequenced globally per month. It is displayed as an
// "RFP ID" as well but lives in its own numbering space.
type DecisionSnapshotID string

func (id DecisionSnapshotID) String() string {
	return string(id)
}
