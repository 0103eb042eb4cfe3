package search

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

type Job struct {
	OriginalIndex int
	ID            uuid.UUID
	Title         string
	CompanyName   string
	Location      string
	Description   string
	CreatedAt     time.Time
}

type JobScore struct {
	JobID       uuid.UUID
	Relevance   float64
	Freshness   float64
	DataQuality float64
	FinalScore  float64
}

// ComputeRelevance scores 3 per variant found in the title and 1 per variant
// found in the description or company name, capped at 10.
func ComputeRelevance(job Job, queryVariants []string) float64 {
	if len(queryVariants) == 0 {
		return 0
	}

	title := strings.ToLower(job.Title)
	desc := strings.ToLower(job.Description)
	company := strings.ToLower(job.CompanyName)

	score := 0.0
	for _, v := range queryVariants {
		v = strings.ToLower(strings.TrimSpace(v))
		if v == "" {
			continue
		}
		if title != "" && strings.Contains(title, v) {
			score += 3
		}
		if desc != "" && strings.Contains(desc, v) {
			score += 1
		}
		if company != "" && strings.Contains(company, v) {
			score += 1
		}
		if score >= 10 {
			return 10
		}
	}
	return score
}

func ComputeFreshness(job Job, now time.Time) float64 {
	if job.CreatedAt.IsZero() {
		return 0
	}

	age := now.Sub(job.CreatedAt)
	if age < 0 {
		age = 0
	}

	switch {
	case age <= 24*time.Hour:
		return 5
	case age <= 3*24*time.Hour:
		return 4
	case age <= 7*24*time.Hour:
		return 3
	case age <= 14*24*time.Hour:
		return 2
	case age <= 30*24*time.Hour:
		return 1
	}
	return 0
}

func ComputeDataQuality(job Job) float64 {
	score := 0.0
	if strings.TrimSpace(job.Title) != "" {
		score++
	}
	if strings.TrimSpace(job.CompanyName) != "" {
		score++
	}
	if strings.TrimSpace(job.Location) != "" {
		score++
	}
	if len(strings.TrimSpace(job.Description)) > 100 {
		score++
	}
	return score
}

func ScoreJob(job Job, queryVariants []string, now time.Time) JobScore {
	rel := ComputeRelevance(job, queryVariants)
	fresh := ComputeFreshness(job, now)
	qual := ComputeDataQuality(job)

	return JobScore{
		JobID:       job.ID,
		Relevance:   rel,
		Freshness:   fresh,
		DataQuality: qual,
		FinalScore:  (rel * 2.0) + (fresh * 1.5) + (qual * 0.5),
	}
}

// RankJobs orders jobs by blended score. Equal scores keep input order.
func RankJobs(jobs []Job, queryVariants []string, now time.Time) []Job {
	if len(jobs) == 0 {
		return jobs
	}

	type scoredJob struct {
		idx   int
		score float64
	}
	scored := make([]scoredJob, len(jobs))
	maxScore := 0.0
	for i := range jobs {
		s := ScoreJob(jobs[i], queryVariants, now).FinalScore
		scored[i] = scoredJob{idx: i, score: s}
		if s > maxScore {
			maxScore = s
		}
	}
	if maxScore == 0 {
		return jobs
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	out := make([]Job, 0, len(jobs))
	for _, it := range scored {
		out = append(out, jobs[it.idx])
	}
	return out
}
