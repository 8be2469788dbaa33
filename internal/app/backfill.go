package app

type BackfillRequest struct {
	JQL      string
	DryRun   bool
	Progress ProgressFunc
}

// StoryPointUpdate is one story-point value computed from an estimate.
type StoryPointUpdate struct {
	Key     string
	Points  float64
	Applied bool
}

type BackfillResponse struct {
	RunID   string
	Query   string
	Updates []StoryPointUpdate
	// Failed lists keys the provider refused, sorted and de-duplicated.
	Failed []string
}
