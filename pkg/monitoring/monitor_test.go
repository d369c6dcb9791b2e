package monitoring

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestVoteCounterTracksActions(t *testing.T) {
	VoteCounter.Reset()

	VoteCounter.WithLabelValues("endorse").Inc()
	VoteCounter.WithLabelValues("endorse").Inc()
	VoteCounter.WithLabelValues("unvote").Inc()

	if got := testutil.ToFloat64(VoteCounter.WithLabelValues("endorse")); got != 2 {
		t.Errorf("endorse count = %v, want 2", got)
	}
	if got := testutil.ToFloat64(VoteCounter.WithLabelValues("unvote")); got != 1 {
		t.Errorf("unvote count = %v, want 1", got)
	}
}
