package search

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func TestNormalizeQuery(t *testing.T) {
	cases := map[string]string{
		"  Senior   Go-Developer!! ": "senior go developer",
		"C++ / Rust":                "c rust",
		"":                          "",
	}
	for in, want := range cases {
		if got := NormalizeQuery(in); got != want {
			t.Fatalf("NormalizeQuery(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestExpandQuery_SynonymsAndPrefix(t *testing.T) {
	got := ExpandQuery("golang jakarta")
	want := []string{"golang jakarta", "go jakarta"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %v want %v", got, want)
	}

	got = ExpandQuery("frontend")
	if len(got) < 2 || got[0] != "frontend" {
		t.Fatalf("unexpected expansion: %v", got)
	}
	found := false
	for _, v := range got {
		if v == "front end" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected spaced variant, got %v", got)
	}
}

func TestExpandQuery_Deterministic(t *testing.T) {
	first := ExpandQuery("backend engineer")
	for i := 0; i < 20; i++ {
		if got := ExpandQuery("backend engineer"); !reflect.DeepEqual(got, first) {
			t.Fatalf("non-deterministic expansion: %v vs %v", got, first)
		}
	}
}

func TestComputeRelevance_WeightsAndCap(t *testing.T) {
	j := Job{Title: "Go Engineer", Description: "go services", CompanyName: "Go Corp"}
	if got := ComputeRelevance(j, []string{"go"}); got != 5 {
		t.Fatalf("expected 5, got %v", got)
	}
	if got := ComputeRelevance(j, []string{"go", "go", "go"}); got != 10 {
		t.Fatalf("expected cap 10, got %v", got)
	}
	if got := ComputeRelevance(j, nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestComputeFreshness(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		age  time.Duration
		want float64
	}{
		{time.Hour, 5},
		{48 * time.Hour, 4},
		{6 * 24 * time.Hour, 3},
		{10 * 24 * time.Hour, 2},
		{20 * 24 * time.Hour, 1},
		{60 * 24 * time.Hour, 0},
	}
	for _, tc := range cases {
		if got := ComputeFreshness(Job{CreatedAt: now.Add(-tc.age)}, now); got != tc.want {
			t.Fatalf("age %s: got %v want %v", tc.age, got, tc.want)
		}
	}
}

func TestRankJobs_RelevanceThenStableTies(t *testing.T) {
	now := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	a := Job{OriginalIndex: 0, ID: uuid.New(), Title: "Accountant", CreatedAt: now}
	b := Job{OriginalIndex: 1, ID: uuid.New(), Title: "Go Engineer", CreatedAt: now}
	c := Job{OriginalIndex: 2, ID: uuid.New(), Title: "Senior Go Engineer", CreatedAt: now}

	out := RankJobs([]Job{a, b, c}, []string{"go"}, now)
	if out[0].ID != b.ID || out[1].ID != c.ID || out[2].ID != a.ID {
		t.Fatalf("unexpected order: %v %v %v", out[0].Title, out[1].Title, out[2].Title)
	}
}
