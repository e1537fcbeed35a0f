package step

// Progress counts steps per status.
type Progress struct {
	Total      int `json:"total"`
	Pending    int `json:"pending"`
	InProgress int `json:"inProgress"`
	Completed  int `json:"completed"`
	Skipped    int `json:"skipped"`
}

// Summarize counts the steps of an order.
func Summarize(steps []Step) Progress {
	p := Progress{Total: len(steps)}
	for _, s := range steps {
		switch s.status {
		case Pending:
			p.Pending++
		case InProgress:
			p.InProgress++
		case Completed:
			p.Completed++
		case Skipped:
			p.Skipped++
		}
	}
	return p
}

// Percent is the share of finished (completed or skipped) steps, rounded down.
func (p Progress) Percent() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Completed + p.Skipped) * 100 / p.Total
}

// Done reports whether every step is finished.
func (p Progress) Done() bool {
	return p.Total > 0 && p.Completed+p.Skipped == p.Total
}
