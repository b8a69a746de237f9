package service

// MetricsRecorder is implemented by pkg/metrics.Metrics.
type MetricsRecorder interface {
	PlanGeneration(outcome string)
	MealReplacement(outcome string)
	PartialImportFailure()
	ShoppingListBuilt()
	QuotaRejected(tier string)
}

const (
	OutcomeSuccess   = "success"
	OutcomeRejected  = "rejected"
	OutcomeUpstream  = "upstream_failure"
	OutcomeNotEnough = "not_enough_recipes"
	OutcomeFailed    = "failed"
)

type nopRecorder struct{}

func (nopRecorder) PlanGeneration(string)  {}
func (nopRecorder) MealReplacement(string) {}
func (nopRecorder) PartialImportFailure()  {}
func (nopRecorder) ShoppingListBuilt()     {}
func (nopRecorder) QuotaRejected(string)   {}

// NopRecorder drops every observation.
func NopRecorder() MetricsRecorder {
	return nopRecorder{}
}
