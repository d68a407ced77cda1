package analytics

import (
	"encoding/json"
	"math"
	"time"

	"zerim-todo/pkg/types"
)

// ProductivityScore blends completion rate, on-time rate and recent focus
// session length into a single 0-100 score with a categorical trend and
// advisory insights. Field names are part of the wire contract.
type ProductivityScore struct {
	Score            float64  `json:"score"`
	Trend            string   `json:"trend"`
	CompletionRate   float64  `json:"completion_rate"`
	OnTimeRate       float64  `json:"on_time_rate"`
	AvgSessionLength float64  `json:"avg_session_length"`
	Insights         []string `json:"insights"`

	empty bool
}

// MarshalJSON emits only score, trend and insights when the task collection
// was empty. The rate fields stay present in every other case, including
// legitimate zero rates, so omitempty is not an option here.
func (p ProductivityScore) MarshalJSON() ([]byte, error) {
	if p.empty {
		return json.Marshal(struct {
			Score    float64  `json:"score"`
			Trend    string   `json:"trend"`
			Insights []string `json:"insights"`
		}{p.Score, p.Trend, p.Insights})
	}
	type full ProductivityScore
	return json.Marshal(full(p))
}

// Advisory strings appended to the insight list. Fixed wording: existing
// clients match on them.
const (
	insightBreakDownTasks = "Consider breaking down large tasks into smaller ones"
	insightRealisticDates = "Try setting more realistic due dates"
	insightLongerSessions = "Focus on longer work sessions for better productivity"
	sessionTargetMinutes  = 25.0
	sessionFactorWeight   = 30.0
	completionRateWeight  = 0.4
	onTimeRateWeight      = 0.3
)

// Productivity computes the productivity score for the snapshot.
//
// Degradation defaults are part of the contract: an empty task collection
// scores 0 with a "neutral" trend, a collection with no due dates has a 100%
// on-time rate (absence of deadlines is perfect timeliness), and no recent
// time entries yields a 0 average session length.
func Productivity(tasks []types.Task, entries []types.TimeEntry, now time.Time) ProductivityScore {
	if len(tasks) == 0 {
		return ProductivityScore{Score: 0, Trend: "neutral", Insights: []string{}, empty: true}
	}

	completion := completionRate(tasks)
	onTime := onTimeRate(tasks)
	avgSession := avgSessionMinutes(entries, now)

	sessionFactor := avgSession / sessionTargetMinutes
	if sessionFactor > 1 {
		sessionFactor = 1
	}
	score := completion*completionRateWeight + onTime*onTimeRateWeight + sessionFactor*sessionFactorWeight

	insights := []string{}
	if completion < 50 {
		insights = append(insights, insightBreakDownTasks)
	}
	if onTime < 70 {
		insights = append(insights, insightRealisticDates)
	}
	if avgSession < 15 {
		insights = append(insights, insightLongerSessions)
	}

	trend := "stable"
	switch {
	case score > 75:
		trend = "improving"
	case score < 40:
		trend = "declining"
	}

	return ProductivityScore{
		Score:            round1(score),
		Trend:            trend,
		CompletionRate:   round1(completion),
		OnTimeRate:       round1(onTime),
		AvgSessionLength: round1(avgSession),
		Insights:         insights,
	}
}

func completionRate(tasks []types.Task) float64 {
	completed := 0
	for i := range tasks {
		if tasks[i].Completed {
			completed++
		}
	}
	return float64(completed) / float64(len(tasks)) * 100
}

// onTimeRate is the share of due-dated tasks completed at or before their due
// date. With no due-dated tasks it is 100, not 0.
func onTimeRate(tasks []types.Task) float64 {
	withDueDate := 0
	onTime := 0
	for i := range tasks {
		t := &tasks[i]
		if t.DueDate == nil {
			continue
		}
		withDueDate++
		if t.Completed && t.CompletedAt != nil && !t.CompletedAt.After(*t.DueDate) {
			onTime++
		}
	}
	if withDueDate == 0 {
		return 100
	}
	return float64(onTime) / float64(withDueDate) * 100
}

// avgSessionMinutes averages entry durations (seconds, converted to minutes)
// over entries started within the last seven days. Entries without a recorded
// duration still count toward the divisor.
func avgSessionMinutes(entries []types.TimeEntry, now time.Time) float64 {
	weekAgo := now.AddDate(0, 0, -7)

	recent := 0
	totalSeconds := 0
	for i := range entries {
		if entries[i].StartTime.Before(weekAgo) {
			continue
		}
		recent++
		if entries[i].Duration != nil {
			totalSeconds += *entries[i].Duration
		}
	}
	if recent == 0 {
		return 0
	}
	return float64(totalSeconds) / float64(recent) / 60
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
