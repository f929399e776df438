package tiers

// Client activity tiers, ordered from most to least active. Thresholds are
// relative to the maxima observed in the classified set, not absolute cutoffs,
// so the same client can land in different tiers on different snapshots.
const (
	TierHighValue = "High Volume & High Spend"
	TierActive    = "Active Clients"
	TierModerate  = "Moderate Activity"
	TierLow       = "Low Activity"
)

// Point is one client's activity signals extracted from a job record:
// jobs-posted volume and parsed total spend.
type Point struct {
	ClientID   string `json:"client_id"`
	Location   string `json:"location"`
	JobsPosted int    `json:"jobs_posted"`
	TotalSpent int    `json:"total_spent"`
}

// Classified is a Point plus its derived presentation tier: category label,
// color token and symbol size for the scatter rendering.
type Classified struct {
	Point
	Category string `json:"category"`
	Color    string `json:"color"`
	Size     int    `json:"size"`
}

// Classify buckets a snapshot of activity points into four ordered tiers by
// comparing each point against the observed maxima:
//
//  1. both signals >= 70% of their maxima
//  2. either signal >= 50% of its maximum
//  3. either signal >= 30% of its maximum
//  4. everything else
//
// Rules are evaluated in order and the first match wins. Points without both
// signals positive are dropped before the maxima are computed: a zero here
// means "unparsed", and classifying it as low activity would misrepresent an
// unknown as a measurement.
func Classify(points []Point) []Classified {
	known := make([]Point, 0, len(points))
	for _, p := range points {
		if p.JobsPosted > 0 && p.TotalSpent > 0 {
			known = append(known, p)
		}
	}
	if len(known) == 0 {
		return []Classified{}
	}

	maxJobs, maxSpent := 0, 0
	for _, p := range known {
		if p.JobsPosted > maxJobs {
			maxJobs = p.JobsPosted
		}
		if p.TotalSpent > maxSpent {
			maxSpent = p.TotalSpent
		}
	}

	classified := make([]Classified, 0, len(known))
	for _, p := range known {
		jobs := float64(p.JobsPosted)
		spent := float64(p.TotalSpent)

		var c Classified
		c.Point = p
		switch {
		case jobs >= float64(maxJobs)*0.7 && spent >= float64(maxSpent)*0.7:
			c.Category, c.Color, c.Size = TierHighValue, "#DC2626", 35
		case jobs >= float64(maxJobs)*0.5 || spent >= float64(maxSpent)*0.5:
			c.Category, c.Color, c.Size = TierActive, "#F59E0B", 30
		case jobs >= float64(maxJobs)*0.3 || spent >= float64(maxSpent)*0.3:
			c.Category, c.Color, c.Size = TierModerate, "#10B981", 25
		default:
			c.Category, c.Color, c.Size = TierLow, "#6B7280", 20
		}
		classified = append(classified, c)
	}
	return classified
}
