package service

import (
	"math"
	"sort"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/dto"
	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

// VoteStats are the per-submission vote statistics. Stdev is the
// population standard deviation; both Avg and Stdev are 0 when N is 0.
type VoteStats struct {
	N     int
	Total int
	Avg   float64
	Stdev float64
}

// ComputeVoteStats folds a submission's vote values into statistics.
func ComputeVoteStats(values []int) VoteStats {
	n := len(values)
	if n == 0 {
		return VoteStats{}
	}

	total := 0
	for _, v := range values {
		total += v
	}
	avg := float64(total) / float64(n)

	var sumSq float64
	for _, v := range values {
		d := float64(v) - avg
		sumSq += d * d
	}

	return VoteStats{
		N:     n,
		Total: total,
		Avg:   avg,
		Stdev: math.Sqrt(sumSq / float64(n)),
	}
}

// groupVotesBySubmission buckets vote values by submission id. Rows with
// out-of-range values contribute nothing rather than poisoning the
// aggregate.
func groupVotesBySubmission(votes []model.Vote) map[string][]int {
	grouped := make(map[string][]int)
	for _, v := range votes {
		if v.SubmissionID == "" || v.Value < 1 || v.Value > 10 {
			continue
		}
		grouped[v.SubmissionID] = append(grouped[v.SubmissionID], v.Value)
	}
	return grouped
}

// buildSubmissionResults computes stats for each submission, preserving
// input order.
func buildSubmissionResults(submissions []model.Submission, votes []model.Vote) []dto.SubmissionResult {
	grouped := groupVotesBySubmission(votes)

	results := make([]dto.SubmissionResult, 0, len(submissions))
	for _, s := range submissions {
		stats := ComputeVoteStats(grouped[s.SubmissionID])
		results = append(results, dto.SubmissionResult{
			SubmissionID:  s.SubmissionID,
			Text:          s.Text,
			ParticipantID: s.ParticipantID,
			N:             stats.N,
			Total:         stats.Total,
			Avg:           stats.Avg,
			Stdev:         stats.Stdev,
		})
	}
	return results
}

// orderForLeaderboard sorts submission results by descending total,
// ties keeping their original (insertion) order.
func orderForLeaderboard(results []dto.SubmissionResult) []dto.SubmissionResult {
	ordered := make([]dto.SubmissionResult, len(results))
	copy(ordered, results)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Total > ordered[j].Total
	})
	return ordered
}

// buildGroupLeaderboard sums vote values credited to each group's
// submissions. A vote is credited to the group of the submission's
// author; submissions by ungrouped participants are skipped. Output is
// sorted by descending total, ties keeping first-seen group order.
func buildGroupLeaderboard(
	submissions []model.Submission,
	votes []model.Vote,
	participants []model.Participant,
	groups []model.Group,
) []dto.LeaderboardEntry {
	groupOf := make(map[string]string, len(participants)) // participant -> group
	for _, p := range participants {
		if p.GroupID != nil {
			groupOf[p.ParticipantID] = *p.GroupID
		}
	}

	nameOf := make(map[string]string, len(groups))
	for _, g := range groups {
		nameOf[g.GroupID] = g.Name
	}

	submissionGroup := make(map[string]string, len(submissions)) // submission -> group
	for _, s := range submissions {
		if s.ParticipantID == nil {
			continue
		}
		if gid, ok := groupOf[*s.ParticipantID]; ok {
			submissionGroup[s.SubmissionID] = gid
		}
	}

	totals := make(map[string]int)
	var order []string
	for _, v := range votes {
		gid, ok := submissionGroup[v.SubmissionID]
		if !ok || v.Value < 1 || v.Value > 10 {
			continue
		}
		if _, seen := totals[gid]; !seen {
			order = append(order, gid)
		}
		totals[gid] += v.Value
	}

	entries := make([]dto.LeaderboardEntry, 0, len(order))
	for _, gid := range order {
		entries = append(entries, dto.LeaderboardEntry{
			GroupID:   gid,
			GroupName: nameOf[gid],
			Total:     totals[gid],
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].Total > entries[j].Total
	})

	return entries
}

// buildInitiativeResults groups structured responses per initiative,
// preserving initiative order. Responses referencing a missing
// initiative are dropped.
func buildInitiativeResults(
	initiatives []model.StocktakeInitiative,
	responses []model.StocktakeResponse,
) []dto.InitiativeResult {
	byInitiative := make(map[string][]dto.ResponseResult)
	for _, r := range responses {
		byInitiative[r.InitiativeID] = append(byInitiative[r.InitiativeID], dto.ResponseResult{
			ParticipantID: r.ParticipantID,
			Status:        r.Status,
			Comment:       r.Comment,
		})
	}

	results := make([]dto.InitiativeResult, 0, len(initiatives))
	for _, ini := range initiatives {
		rs := byInitiative[ini.InitiativeID]
		if rs == nil {
			rs = []dto.ResponseResult{}
		}
		results = append(results, dto.InitiativeResult{
			InitiativeID: ini.InitiativeID,
			Title:        ini.Title,
			Responses:    rs,
		})
	}
	return results
}
