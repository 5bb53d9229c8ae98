package scan

import (
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/nitevelour/liveapi/models"
)

func makePool(n int) []models.Performer {
	pool := make([]models.Performer, 0, n)
	for i := 0; i < n; i++ {
		pool = append(pool, models.Performer{"itemId": fmt.Sprintf("p-%d", i)})
	}
	return pool
}

func windowIDs(p Page) []string {
	ids := make([]string, 0, len(p.Window))
	for _, rec := range p.Window {
		ids = append(ids, rec.ItemID())
	}
	return ids
}

func TestAssembleNoTopic(t *testing.T) {
	res := &Result{Served: makePool(5)}
	page := Assemble(res, Criteria{Page: 1, Size: 10})

	if page.TopicApplied {
		t.Fatalf("topicApplied should be false without a topic")
	}
	if page.Total != 5 || len(page.Window) != 5 {
		t.Fatalf("total = %d window = %d, want 5/5", page.Total, len(page.Window))
	}
}

func TestAssembleStrictTopicEmpty(t *testing.T) {
	res := &Result{Served: makePool(20)}
	page := Assemble(res, Criteria{Page: 1, Size: 10, Topic: "yoga", StrictTopic: true})

	if !page.TopicApplied {
		t.Fatalf("strict topic must always apply")
	}
	if page.Total != 0 {
		t.Fatalf("total = %d, want 0", page.Total)
	}
	if page.Window == nil || len(page.Window) != 0 {
		t.Fatalf("window must be empty but non-nil, got %v", page.Window)
	}
}

func TestAssembleTopicFallback(t *testing.T) {
	// Below max(4, min(size,12)) topic matches: the topic becomes advisory
	// and the full pool is served.
	res := &Result{Served: makePool(20), Topic: makePool(3)}
	page := Assemble(res, Criteria{Page: 1, Size: 10, Topic: "yoga"})

	if page.TopicApplied {
		t.Fatalf("sparse topic pool should not be applied")
	}
	if page.Total != 20 {
		t.Fatalf("total = %d, want full pool 20", page.Total)
	}
}

func TestAssembleTopicApplied(t *testing.T) {
	res := &Result{Served: makePool(20), Topic: makePool(10)}
	page := Assemble(res, Criteria{Page: 1, Size: 10, Topic: "yoga"})

	if !page.TopicApplied {
		t.Fatalf("topic pool at threshold should be applied")
	}
	if page.Total != 10 {
		t.Fatalf("total = %d, want topic pool 10", page.Total)
	}
}

func TestMinTopicYield(t *testing.T) {
	tests := []struct {
		size int
		want int
	}{
		{size: 1, want: 4},
		{size: 4, want: 4},
		{size: 10, want: 10},
		{size: 12, want: 12},
		{size: 24, want: 12},
		{size: 60, want: 12},
	}

	for _, tt := range tests {
		t.Run(fmt.Sprintf("size_%d", tt.size), func(t *testing.T) {
			if got := minTopicYield(tt.size); got != tt.want {
				t.Fatalf("minTopicYield(%d) = %d, want %d", tt.size, got, tt.want)
			}
		})
	}
}

func TestAssembleSlicing(t *testing.T) {
	res := &Result{Served: makePool(25)}
	page := Assemble(res, Criteria{Page: 2, Size: 10})

	want := []string{"p-10", "p-11", "p-12", "p-13", "p-14", "p-15", "p-16", "p-17", "p-18", "p-19"}
	if diff := cmp.Diff(want, windowIDs(page)); diff != "" {
		t.Fatalf("page 2 window mismatch (-want +got):\n%s", diff)
	}
	if page.Total != 25 {
		t.Fatalf("total = %d, want 25", page.Total)
	}

	tail := Assemble(res, Criteria{Page: 3, Size: 10})
	if diff := cmp.Diff([]string{"p-20", "p-21", "p-22", "p-23", "p-24"}, windowIDs(tail)); diff != "" {
		t.Fatalf("tail window mismatch (-want +got):\n%s", diff)
	}

	beyond := Assemble(res, Criteria{Page: 9, Size: 10})
	if len(beyond.Window) != 0 || beyond.Total != 25 {
		t.Fatalf("past-the-end page: window = %d total = %d, want 0/25", len(beyond.Window), beyond.Total)
	}
}
