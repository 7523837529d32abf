package leaderboard

import (
	"sort"

	"github.com/google/uuid"
)

// PointsDivisor normalizes XP (which runs into the thousands) onto a scale
// comparable with the percentage metrics, so no single signal dominates.
const PointsDivisor = 400.0

// PodiumSize is how many leading entries get distinguished rank badges.
const PodiumSize = 3

// WinnerEntry is one row of the combined-score ranking. It is derived on
// every read from current stats and measurement history, never persisted.
type WinnerEntry struct {
	UserID                   uuid.UUID `json:"user_id" db:"user_id"`
	Nickname                 string    `json:"nickname" db:"nickname"`
	AvatarURL                *string   `json:"avatar_url" db:"avatar_url"`
	WeightLossPercentage     float64   `json:"weight_loss_percentage"`
	WaistReductionPercentage float64   `json:"waist_reduction_percentage"`
	Points                   int       `json:"points"`
	CombinedScore            float64   `json:"combined_score"`
	Rank                     int       `json:"rank"`
	Podium                   bool      `json:"podium"`
}

// PointsEntry is one row of the simpler "most active" ranking, ordered by
// raw points.
type PointsEntry struct {
	UserID    uuid.UUID `json:"user_id" db:"user_id"`
	Nickname  string    `json:"nickname" db:"nickname"`
	AvatarURL *string   `json:"avatar_url" db:"avatar_url"`
	Points    int       `json:"points" db:"points"`
	Rank      int       `json:"rank"`
}

type WinnerRanking struct {
	Entries      []*WinnerEntry `json:"entries"`
	UserPosition *WinnerEntry   `json:"user_position"`
	TotalUsers   int            `json:"total_users"`
}

// CombinedScore sums the three independent signals: weight-loss %, waist
// reduction % and normalized points.
func CombinedScore(weightLossPct, waistReductionPct float64, points int) float64 {
	return weightLossPct + waistReductionPct + float64(points)/PointsDivisor
}

// BuildWinnerRanking orders entries by combined score descending. Equal
// scores are broken by user id ascending so repeated computations never flap.
// Ranks are assigned 1..n with the podium flag on the top three.
func BuildWinnerRanking(entries []*WinnerEntry) []*WinnerEntry {
	for _, e := range entries {
		e.CombinedScore = CombinedScore(e.WeightLossPercentage, e.WaistReductionPercentage, e.Points)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		if entries[i].CombinedScore != entries[j].CombinedScore {
			return entries[i].CombinedScore > entries[j].CombinedScore
		}
		return entries[i].UserID.String() < entries[j].UserID.String()
	})

	for i, e := range entries {
		e.Rank = i + 1
		e.Podium = e.Rank <= PodiumSize
	}
	return entries
}
