// Package risktypes holds risk result types shared by the risk service
// and report generation, so neither package has to import the other.
package risktypes

// DistrictScore is the compact per-district result used by batch assessment.
type DistrictScore struct {
	District     string  `json:"district"`
	Latitude     float64 `json:"latitude"`
	Longitude    float64 `json:"longitude"`
	Score        float64 `json:"risk_score"`
	Category     string  `json:"risk_category"`
	TrafficLight string  `json:"traffic_light"`
}
