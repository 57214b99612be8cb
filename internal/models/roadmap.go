package models

// RoadmapTask is one actionable subtask inside a roadmap section.
type RoadmapTask struct {
	Title string `json:"title"`
}

// RoadmapSection is a main task grouping within a roadmap week.
type RoadmapSection struct {
	Title string        `json:"title"`
	Tasks []RoadmapTask `json:"tasks"`
}

// RoadmapWeek is one week of a generated roadmap outline.
type RoadmapWeek struct {
	Number   int              `json:"number"`
	Focus    string           `json:"focus"`
	Sections []RoadmapSection `json:"sections"`
}

// Roadmap is the parsed Week -> Section -> Task outline of a generated plan,
// together with the raw upstream text it was parsed from. Parsing is
// best-effort; Raw is always populated.
type Roadmap struct {
	Raw   string        `json:"raw"`
	Weeks []RoadmapWeek `json:"weeks"`
}
