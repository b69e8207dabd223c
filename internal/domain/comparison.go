package domain

// Side identifies one of the two compared repositories.
type Side string

const (
	SideFirst  Side = "repo1"
	SideSecond Side = "repo2"
	SideTie    Side = "tie"
)

// RadarAxis is one axis of the comparison radar chart; both values are in [0,100].
type RadarAxis struct {
	Subject  string  `json:"subject"`
	First    float64 `json:"repo1"`
	Second   float64 `json:"repo2"`
	FullMark float64 `json:"full_mark"`
}

// MetricComparison is one row of the side-by-side comparison table.
type MetricComparison struct {
	Name   string `json:"name"`
	First  string `json:"repo1"`
	Second string `json:"repo2"`
	Winner Side   `json:"winner"`
}

// Verdict is the weighted overall winner.
type Verdict struct {
	FirstScore  float64 `json:"repo1_score"`
	SecondScore float64 `json:"repo2_score"`
	Winner      Side    `json:"winner"`
	WinnerName  string  `json:"winner_name,omitempty"`
	Summary     string  `json:"summary"`
}

type Comparison struct {
	First           string             `json:"repo1"`
	Second          string             `json:"repo2"`
	Radar           []RadarAxis        `json:"radar"`
	Metrics         []MetricComparison `json:"metrics"`
	FirstStrengths  []string           `json:"repo1_strengths"`
	SecondStrengths []string           `json:"repo2_strengths"`
	Verdict         Verdict            `json:"verdict"`
}
