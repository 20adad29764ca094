package report

import (
	"context"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/shapepush/arena/internal/scoring"
	"github.com/shapepush/arena/internal/shape"
)

//go:generate go tool mockgen -destination=./mocks/store_mock.go -package=mocks . Store

// Store persists finished run reports.
type Store interface {
	Save(ctx context.Context, r Report) error
}

// ItemInfo is one kind's contribution within one level.
type ItemInfo struct {
	CollectLevel    string `json:"CollectLevel"`
	ContributeScore int    `json:"ContributeScore"`
}

// ItemResults groups a kind's contributions by level.
type ItemResults struct {
	ItemType  string     `json:"ItemType"`
	ItemInfos []ItemInfo `json:"ItemInfos"`
}

// Report summarizes one run.
type Report struct {
	RunID                 string        `json:"RunId"`
	Reason                string        `json:"Reason"`
	FinishedAt            time.Time     `json:"FinishedAt"`
	TimeOfAttempt         float64       `json:"TimeOfAttempt"` // seconds
	AmountOfPushedObjects int           `json:"AmountOfPushedObjects"`
	TotalScore            int           `json:"TotalScore"`
	Score                 []ItemResults `json:"Score"`
}

// Build summarizes records by kind (first-collected order) then by level.
func Build(runID, reason string, elapsed time.Duration, finishedAt time.Time, records []scoring.Record) Report {
	type levelSum struct {
		level int
		sum   float64
	}
	var order []shape.Kind
	byKind := make(map[shape.Kind][]levelSum)
	total := 0.0

	for _, rec := range records {
		total += rec.Value
		sums, seen := byKind[rec.Kind]
		if !seen {
			order = append(order, rec.Kind)
		}
		i := slices.IndexFunc(sums, func(s levelSum) bool { return s.level == rec.Level })
		if i < 0 {
			sums = append(sums, levelSum{level: rec.Level})
			i = len(sums) - 1
		}
		sums[i].sum += rec.Value
		byKind[rec.Kind] = sums
	}

	score := make([]ItemResults, 0, len(order))
	for _, kind := range order {
		sums := byKind[kind]
		slices.SortFunc(sums, func(a, b levelSum) int { return a.level - b.level })
		infos := make([]ItemInfo, 0, len(sums))
		for _, s := range sums {
			infos = append(infos, ItemInfo{
				CollectLevel:    fmt.Sprintf("Level %d", s.level),
				ContributeScore: int(math.RoundToEven(s.sum)),
			})
		}
		score = append(score, ItemResults{ItemType: kind.String(), ItemInfos: infos})
	}

	return Report{
		RunID:                 runID,
		Reason:                reason,
		FinishedAt:            finishedAt.UTC(),
		TimeOfAttempt:         elapsed.Seconds(),
		AmountOfPushedObjects: len(records),
		TotalScore:            int(math.RoundToEven(total)),
		Score:                 score,
	}
}
