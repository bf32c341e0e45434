package cascade

// WithBatchSize overrides the page size so tests can exercise arbitrary N/B ratios.
func (j *Job) WithBatchSize(n int) *Job {
	j.batchSize = n
	return j
}
