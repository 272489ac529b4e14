package catalog

// JobStatus represents the lifecycle status of a catalog generation job
type JobStatus string

const (
	JobStatusPending    JobStatus = "pending"
	JobStatusProcessing JobStatus = "processing"
	JobStatusCompleted  JobStatus = "completed"
	JobStatusFailed     JobStatus = "failed"
)

// IsValid checks if the JobStatus is a valid value
func (s JobStatus) IsValid() bool {
	switch s {
	case JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed:
		return true
	}
	return false
}

// String returns the string representation of JobStatus
func (s JobStatus) String() string {
	return string(s)
}

// IsTerminal returns true if this is a terminal status (no further transitions)
func (s JobStatus) IsTerminal() bool {
	return s == JobStatusCompleted || s == JobStatusFailed
}

// CanTransitionTo checks if the status can transition to the target status
func (s JobStatus) CanTransitionTo(target JobStatus) bool {
	switch s {
	case JobStatusPending:
		return target == JobStatusProcessing || target == JobStatusFailed
	case JobStatusProcessing:
		return target == JobStatusCompleted || target == JobStatusFailed
	case JobStatusCompleted, JobStatusFailed:
		return false // Terminal states
	}
	return false
}

// BackgroundTone classifies a template page background as light or dark.
// It decides which processed logo variant gets composited onto the page.
type BackgroundTone string

const (
	BackgroundToneLight BackgroundTone = "light"
	BackgroundToneDark  BackgroundTone = "dark"
)

// IsValid checks if the BackgroundTone is a valid value
func (t BackgroundTone) IsValid() bool {
	return t == BackgroundToneLight || t == BackgroundToneDark
}

// String returns the string representation of BackgroundTone
func (t BackgroundTone) String() string {
	return string(t)
}

// Opposite returns the opposite tone
func (t BackgroundTone) Opposite() BackgroundTone {
	if t == BackgroundToneLight {
		return BackgroundToneDark
	}
	return BackgroundToneLight
}

// LogoPlacement names the position of the customer logo on a rendered page
type LogoPlacement string

const (
	LogoPlacementLeftChest LogoPlacement = "left_chest"
	LogoPlacementCenter    LogoPlacement = "center"
)

// IsValid checks if the LogoPlacement is a valid value
func (p LogoPlacement) IsValid() bool {
	return p == LogoPlacementLeftChest || p == LogoPlacementCenter
}

// String returns the string representation of LogoPlacement
func (p LogoPlacement) String() string {
	return string(p)
}

// AllLogoPlacements returns all valid LogoPlacement values
func AllLogoPlacements() []LogoPlacement {
	return []LogoPlacement{LogoPlacementLeftChest, LogoPlacementCenter}
}
