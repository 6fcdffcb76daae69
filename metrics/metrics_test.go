package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestVote(t *testing.T) {
	before := testutil.ToFloat64(Votes.WithLabelValues(BoardLive, OutcomeChanged))

	Vote(BoardLive, OutcomeChanged)
	Vote(BoardLive, OutcomeChanged)

	after := testutil.ToFloat64(Votes.WithLabelValues(BoardLive, OutcomeChanged))
	if after-before != 2 {
		t.Errorf("Expected counter to grow by 2, grew by %v", after-before)
	}
}
