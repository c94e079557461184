package runner

// Phase is the giraffe's vertical-motion state.
type Phase int

const (
	PhaseGrounded   Phase = iota // On the ground, no jump in progress
	PhaseAscending               // Rising towards the apex
	PhaseDescending              // Falling back to the ground
)

// String returns a human-readable name for the phase.
func (p Phase) String() string {
	switch p {
	case PhaseGrounded:
		return "grounded"
	case PhaseAscending:
		return "ascending"
	case PhaseDescending:
		return "descending"
	default:
		return "unknown"
	}
}

// Status is the run status. Failed is terminal until Reset.
type Status int

const (
	StatusRunning Status = iota
	StatusFailed
)

// String returns a human-readable name for the status.
func (s Status) String() string {
	if s == StatusFailed {
		return "failed"
	}
	return "running"
}

// Player is the giraffe. Y is the top of the sprite in world units and
// grows downward, so jumping decreases it.
type Player struct {
	Y     float64
	Phase Phase
}

// Obstacle is a bush. Only its horizontal position changes.
type Obstacle struct {
	X float64
}

// Difficulty is the current level and the speeds derived from it.
type Difficulty struct {
	Level     int
	JumpSpeed float64
	WalkSpeed float64
}

// Score holds the current run's score and the best score of the process.
// HasBest is false until a run has ended with a positive score.
type Score struct {
	Current int
	Best    int
	HasBest bool
}

// Input carries the edge events delivered since the previous tick.
type Input struct {
	JumpBegin   bool // Start a jump; honoured only when grounded
	JumpRelease bool // Cut an ascending jump short
}

// Snapshot is a read-only copy of the simulation state for renderers and hosts.
type Snapshot struct {
	Status     Status
	Tick       int
	Player     Player
	Obstacles  []Obstacle
	Difficulty Difficulty
	Score      Score
	ScrollX    float64 // Background offset in world units, wraps at the field width
	Frame      int     // Run animation frame index
	// RecordBeaten is true when the failure that ended the run raised the best score.
	RecordBeaten bool
}
