package service

import (
	"math"
	"testing"

	"github.com/reachoutthueme/SessionFoundry-sub001/internal/model"
)

func TestComputeVoteStats(t *testing.T) {
	stats := ComputeVoteStats([]int{2, 4, 6})

	if stats.N != 3 {
		t.Errorf("N = %d, want 3", stats.N)
	}
	if stats.Total != 12 {
		t.Errorf("Total = %d, want 12", stats.Total)
	}
	if stats.Avg != 4 {
		t.Errorf("Avg = %v, want 4", stats.Avg)
	}
	// Population stdev of {2,4,6} is sqrt(8/3).
	want := math.Sqrt(8.0 / 3.0)
	if math.Abs(stats.Stdev-want) > 1e-9 {
		t.Errorf("Stdev = %v, want %v", stats.Stdev, want)
	}
}

func TestComputeVoteStatsEmpty(t *testing.T) {
	stats := ComputeVoteStats(nil)
	if stats.N != 0 || stats.Total != 0 || stats.Avg != 0 || stats.Stdev != 0 {
		t.Errorf("empty input should yield all zeros, got %+v", stats)
	}
}

func TestComputeVoteStatsSingleValue(t *testing.T) {
	stats := ComputeVoteStats([]int{7})
	if stats.N != 1 || stats.Total != 7 || stats.Avg != 7 || stats.Stdev != 0 {
		t.Errorf("single value stats wrong: %+v", stats)
	}
}

func TestGroupVotesSkipsOutOfRange(t *testing.T) {
	votes := []model.Vote{
		{SubmissionID: "s1", Value: 5},
		{SubmissionID: "s1", Value: 0},  // below range
		{SubmissionID: "s1", Value: 11}, // above range
		{SubmissionID: "s1", Value: 3},
	}

	grouped := groupVotesBySubmission(votes)
	if got := len(grouped["s1"]); got != 2 {
		t.Fatalf("kept %d votes, want 2", got)
	}
}

func TestBuildSubmissionResultsPreservesOrder(t *testing.T) {
	submissions := []model.Submission{
		{SubmissionID: "s1", Text: "first"},
		{SubmissionID: "s2", Text: "second"},
		{SubmissionID: "s3", Text: "third"},
	}
	votes := []model.Vote{
		{SubmissionID: "s2", Value: 9},
		{SubmissionID: "s1", Value: 3},
	}

	results := buildSubmissionResults(submissions, votes)
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []string{"s1", "s2", "s3"} {
		if results[i].SubmissionID != want {
			t.Errorf("results[%d] = %s, want %s", i, results[i].SubmissionID, want)
		}
	}
	if results[2].N != 0 || results[2].Avg != 0 {
		t.Errorf("unvoted submission should have zero stats, got %+v", results[2])
	}
}

func TestOrderForLeaderboardStableDescending(t *testing.T) {
	submissions := []model.Submission{
		{SubmissionID: "low"},
		{SubmissionID: "tied-a"},
		{SubmissionID: "tied-b"},
		{SubmissionID: "high"},
	}
	votes := []model.Vote{
		{SubmissionID: "low", Value: 1},
		{SubmissionID: "tied-a", Value: 5},
		{SubmissionID: "tied-b", Value: 5},
		{SubmissionID: "high", Value: 10},
	}

	ordered := orderForLeaderboard(buildSubmissionResults(submissions, votes))

	want := []string{"high", "tied-a", "tied-b", "low"}
	for i, id := range want {
		if ordered[i].SubmissionID != id {
			t.Errorf("ordered[%d] = %s, want %s", i, ordered[i].SubmissionID, id)
		}
	}
}

func TestBuildGroupLeaderboard(t *testing.T) {
	groups := []model.Group{
		{GroupID: "g1", Name: "Red"},
		{GroupID: "g2", Name: "Blue"},
	}
	participants := []model.Participant{
		{ParticipantID: "p1", GroupID: strptr("g1")},
		{ParticipantID: "p2", GroupID: strptr("g2")},
		{ParticipantID: "p3"}, // ungrouped
	}
	submissions := []model.Submission{
		{SubmissionID: "s1", ParticipantID: strptr("p1")},
		{SubmissionID: "s2", ParticipantID: strptr("p2")},
		{SubmissionID: "s3", ParticipantID: strptr("p3")},
	}
	votes := []model.Vote{
		{SubmissionID: "s1", Value: 3},
		{SubmissionID: "s2", Value: 8},
		{SubmissionID: "s2", Value: 2},
		{SubmissionID: "s3", Value: 10}, // ungrouped author, dropped
	}

	entries := buildGroupLeaderboard(submissions, votes, participants, groups)

	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}
	if entries[0].GroupID != "g2" || entries[0].Total != 10 {
		t.Errorf("entries[0] = %+v, want g2 with total 10", entries[0])
	}
	if entries[1].GroupID != "g1" || entries[1].Total != 3 {
		t.Errorf("entries[1] = %+v, want g1 with total 3", entries[1])
	}
	if entries[0].GroupName != "Blue" {
		t.Errorf("group name = %s, want Blue", entries[0].GroupName)
	}
}

func TestBuildInitiativeResultsEmptyResponses(t *testing.T) {
	initiatives := []model.StocktakeInitiative{
		{InitiativeID: "i1", Title: "Hiring"},
		{InitiativeID: "i2", Title: "Tooling"},
	}
	responses := []model.StocktakeResponse{
		{InitiativeID: "i1", Status: "on_track"},
		{InitiativeID: "orphan", Status: "late"}, // missing initiative, dropped
	}

	results := buildInitiativeResults(initiatives, responses)

	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if len(results[0].Responses) != 1 || results[0].Responses[0].Status != "on_track" {
		t.Errorf("i1 responses wrong: %+v", results[0].Responses)
	}
	if results[1].Responses == nil || len(results[1].Responses) != 0 {
		t.Errorf("i2 should have an empty non-nil response list, got %+v", results[1].Responses)
	}
}
