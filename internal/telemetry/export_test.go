package telemetry

// PendingSeqs returns the sequence numbers still buffered in repo.
func PendingSeqs(repo Repository) []uint32 {
	r := repo.(*repository)
	r.mu.Lock()
	defer r.mu.Unlock()

	seqs := make([]uint32, len(r.buffer))
	for i, rec := range r.buffer {
		seqs[i] = rec.Seq
	}
	return seqs
}
