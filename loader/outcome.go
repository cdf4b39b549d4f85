package loader

// OutcomeStatus classifies the result of loading one file.
type OutcomeStatus int

const (
	// OutcomeLoaded means the file contributed a document.
	OutcomeLoaded OutcomeStatus = iota + 1
	// OutcomeSkipped means the file was excluded (unreadable or empty).
	OutcomeSkipped
)

// Outcome is the per-file result of a load. Skips carry the reason so the
// caller can report them; they never abort the run.
type Outcome struct {
	Path   string
	Status OutcomeStatus
	Reason string
}

// Loaded builds a successful outcome for path.
func Loaded(path string) Outcome {
	return Outcome{Path: path, Status: OutcomeLoaded}
}

// Skipped builds a skip outcome for path with the given reason.
func Skipped(path, reason string) Outcome {
	return Outcome{Path: path, Status: OutcomeSkipped, Reason: reason}
}

// SkippedCount returns how many outcomes are skips.
func SkippedCount(outcomes []Outcome) int {
	count := 0
	for _, o := range outcomes {
		if o.Status == OutcomeSkipped {
			count++
		}
	}
	return count
}
