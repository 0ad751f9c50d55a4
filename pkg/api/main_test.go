package api

import (
	"testing"

	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m,
		// Closed test servers can leave socket readers parked in the
		// poller for a moment after teardown.
		goleak.IgnoreTopFunction("internal/poll.runtime_pollWait"),
	)
}
