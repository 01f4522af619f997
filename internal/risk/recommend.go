package risk

import (
	"sort"
	"strings"

	"agrorisk-copilot/loan-portal-backend/internal/catalog"
	"agrorisk-copilot/loan-portal-backend/internal/climate"
)

// Recommendation is one alternative crop that scores strictly better than the
// assessed crop at the same location and month.
type Recommendation struct {
	Crop         string       `json:"crop"`
	CropUz       string       `json:"crop_uz"`
	Score        float64      `json:"risk_score"`
	Category     RiskCategory `json:"risk_category"`
	TrafficLight string       `json:"traffic_light"`
	Reason       string       `json:"reason"`
}

// MaxRecommendations caps the returned list.
const MaxRecommendations = 3

// genericReason is used when no single factor clearly dominates a candidate's
// score.
const genericReason = "alternative crop option"

// dominantFactorThreshold is the minimum contribution share (percent of total
// absolute mass) for a positive factor to count as dominant.
const dominantFactorThreshold = 5.0

// Recommender re-scores the crop catalog for one location and month and keeps
// the alternatives that beat the assessed crop. Stateless; safe for
// concurrent use.
type Recommender struct {
	catalog   *catalog.Catalog
	assembler *Assembler
	model     Model
}

func NewRecommender(c *catalog.Catalog, assembler *Assembler, model Model) *Recommender {
	return &Recommender{catalog: c, assembler: assembler, model: model}
}

// Recommend evaluates every catalog crop except excludeCrop against the same
// snapshot and returns those scoring strictly above baseScore, best first.
// A candidate that fails to score is skipped; recommendations are advisory and
// one bad candidate must not sink the rest. Candidate order never affects the
// result: the catalog iterates sorted by name and score ties resolve lexically.
func (r *Recommender) Recommend(loc catalog.LocationProfile, month int, excludeCrop string, snap climate.Snapshot, baseScore float64) []Recommendation {
	exclude := strings.ToLower(strings.TrimSpace(excludeCrop))

	var recs []Recommendation
	for _, crop := range r.catalog.Crops() {
		if crop.Name == exclude {
			continue
		}

		vec, err := r.assembler.Assemble(loc, crop, snap, month)
		if err != nil {
			continue
		}
		raw, err := r.model.Score(vec)
		if err != nil {
			continue
		}
		score, category, _, err := Interpret(raw, snap)
		if err != nil {
			continue
		}
		if score <= baseScore {
			continue
		}

		contributions, err := r.model.Explain(vec)
		if err != nil {
			continue
		}

		recs = append(recs, Recommendation{
			Crop:         crop.Name,
			CropUz:       crop.NameUz,
			Score:        score,
			Category:     category,
			TrafficLight: category.TrafficLight(),
			Reason:       reasonFor(contributions),
		})
	}

	sort.Slice(recs, func(i, j int) bool {
		if recs[i].Score != recs[j].Score {
			return recs[i].Score > recs[j].Score
		}
		return recs[i].Crop < recs[j].Crop
	})

	if len(recs) > MaxRecommendations {
		recs = recs[:MaxRecommendations]
	}
	return recs
}

// reasonFor derives a short reason from the dominant positive factor, falling
// back to a generic string when nothing clearly dominates.
func reasonFor(contributions map[string]float64) string {
	for _, f := range RankFactors(contributions, TopFactorCount) {
		if f.Direction == DirectionIncreases && f.ContributionPercent >= dominantFactorThreshold {
			return "favorable " + strings.ToLower(f.Label)
		}
	}
	return genericReason
}
