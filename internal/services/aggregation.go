package services

import (
	"math"
	"sort"

	"github.com/samber/lo"

	"github.com/grindboard/practice-service/internal/models"
)

type resultCounts struct {
	total, solved, unsolved, partial int
	time                             int
}

func (c *resultCounts) add(a *models.Attempt) {
	c.total++
	c.time += a.TimeSpent
	switch a.Result {
	case models.ResultSolved:
		c.solved++
	case models.ResultUnsolved:
		c.unsolved++
	case models.ResultPartial:
		c.partial++
	}
}

func (c *resultCounts) avgTime() float64 {
	if c.total == 0 {
		return 0
	}
	return roundFloat(float64(c.time)/float64(c.total), 1)
}

// ComputeQuestionStats summarizes one question's attempts
func ComputeQuestionStats(attempts []*models.Attempt) models.QuestionStats {
	var counts resultCounts
	for _, a := range attempts {
		if a != nil {
			counts.add(a)
		}
	}

	return models.QuestionStats{
		TotalAttempts: counts.total,
		Solved:        counts.solved,
		Unsolved:      counts.unsolved,
		Partial:       counts.partial,
		AvgTime:       counts.avgTime(),
	}
}

// ComputeGlobalStats summarizes the whole log. Every attempt counts toward
// the totals; only attempts whose question resolves feed the topic buckets,
// once per distinct topic on the question.
func ComputeGlobalStats(attempts []*models.Attempt, lookup QuestionLookup) models.GlobalStats {
	var totals resultCounts
	buckets := make(map[string]*resultCounts)

	for _, a := range attempts {
		if a == nil {
			continue
		}
		totals.add(a)

		question := lookup.Get(a.QuestionID)
		if question == nil {
			continue
		}
		for _, topic := range lo.Uniq([]string(question.Topic)) {
			bucket, ok := buckets[topic]
			if !ok {
				bucket = &resultCounts{}
				buckets[topic] = bucket
			}
			bucket.add(a)
		}
	}

	byTopic := make([]models.TopicStats, 0, len(buckets))
	for topic, bucket := range buckets {
		byTopic = append(byTopic, models.TopicStats{
			Topic:     topic,
			Total:     bucket.total,
			Solved:    bucket.solved,
			SolveRate: solveRate(bucket.solved, bucket.total),
			AvgTime:   bucket.avgTime(),
		})
	}
	sort.Slice(byTopic, func(i, j int) bool {
		if byTopic[i].Total != byTopic[j].Total {
			return byTopic[i].Total > byTopic[j].Total
		}
		return byTopic[i].Topic < byTopic[j].Topic
	})

	return models.GlobalStats{
		TotalSessions: totals.total,
		Solved:        totals.solved,
		Unsolved:      totals.unsolved,
		Partial:       totals.partial,
		AvgTime:       totals.avgTime(),
		ByTopic:       byTopic,
	}
}

// solveRate is round(100*solved/total) as an integer percent
func solveRate(solved, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(100 * float64(solved) / float64(total)))
}

// roundFloat rounds half away from zero to precision decimals
func roundFloat(val float64, precision int) float64 {
	ratio := math.Pow(10, float64(precision))
	return math.Round(val*ratio) / ratio
}
