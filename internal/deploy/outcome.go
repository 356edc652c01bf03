package deploy

// Outcome records the terminal result for one attempted table.
type Outcome struct {
	Table     string // final table identifier, e.g. VersaAnalytics_CL
	Succeeded bool
}

// Recorder aggregates outcomes in processing order. It performs no
// deduplication: attempting the same table twice in one run yields two
// entries.
type Recorder struct {
	outcomes []Outcome
}

// Record appends one outcome.
func (r *Recorder) Record(table string, succeeded bool) {
	r.outcomes = append(r.outcomes, Outcome{Table: table, Succeeded: succeeded})
}

// Outcomes returns the recorded outcomes in insertion order.
func (r *Recorder) Outcomes() []Outcome {
	out := make([]Outcome, len(r.outcomes))
	copy(out, r.outcomes)
	return out
}

// FailedCount returns how many recorded outcomes failed.
func (r *Recorder) FailedCount() int {
	n := 0
	for _, o := range r.outcomes {
		if !o.Succeeded {
			n++
		}
	}
	return n
}
