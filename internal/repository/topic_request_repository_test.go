package repository

import (
	"testing"

	"expertline/internal/model"
	"expertline/internal/util"
)

func TestRecordCreatesThenIncrements(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRequestRepository(db)

	first, err := repo.Record("rust-ownership", "fn main() {}")
	if err != nil {
		t.Fatalf("first record: %v", err)
	}
	if first.Count != 1 || first.Status != model.RequestPending {
		t.Errorf("unexpected first record %+v", first)
	}

	second, err := repo.Record("rust-ownership", "fn other() {}")
	if err != nil {
		t.Fatalf("second record: %v", err)
	}
	if second.Count != 2 {
		t.Errorf("expected count 2, got %d", second.Count)
	}
	if second.ID != first.ID {
		t.Error("expected the same row to be incremented")
	}
	// 示例代码保留第一次提交的
	if second.ExampleCode != "fn main() {}" {
		t.Errorf("example code should keep the original, got %q", second.ExampleCode)
	}
}

func TestRecordPromotesAtThreshold(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRequestRepository(db)

	var last *model.TopicRequest
	var err error
	for i := 0; i < util.TopicRequestSuggestAt; i++ {
		last, err = repo.Record("zig-comptime", "comptime {}")
		if err != nil {
			t.Fatalf("record %d: %v", i, err)
		}
	}

	if last.Count != util.TopicRequestSuggestAt {
		t.Fatalf("expected count %d, got %d", util.TopicRequestSuggestAt, last.Count)
	}
	if last.Status != model.RequestSuggested {
		t.Errorf("expected SUGGESTED at threshold, got %s", last.Status)
	}

	// 晋升后的记录不再累计,新信号重新开一行
	fresh, err := repo.Record("zig-comptime", "comptime {}")
	if err != nil {
		t.Fatal(err)
	}
	if fresh.ID == last.ID || fresh.Count != 1 {
		t.Errorf("expected a fresh PENDING row after promotion, got %+v", fresh)
	}
}

func TestRecordKeysAreIndependent(t *testing.T) {
	db := newTestDB(t)
	repo := NewTopicRequestRepository(db)

	if _, err := repo.Record("key-a", "a"); err != nil {
		t.Fatal(err)
	}
	b, err := repo.Record("key-b", "b")
	if err != nil {
		t.Fatal(err)
	}
	if b.Count != 1 {
		t.Errorf("keys must not share counts, got %d", b.Count)
	}
}
