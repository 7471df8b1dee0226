package events_test

import (
	"testing"

	"github.com/stecheiguess/crypto/foundation/events"
)

func Test_Events(t *testing.T) {
	evts := events.New("chain:", "state:")

	ch1 := evts.Acquire("1")
	ch2 := evts.Acquire("2")

	if evts.Count() != 2 {
		t.Fatalf("Should have two receivers, got %d.", evts.Count())
	}

	evts.Send("worker: runShareTxOperation: started")
	evts.Send("chain: mine: MINING: started")

	for _, ch := range []<-chan string{ch1, ch2} {
		select {
		case msg := <-ch:
			if msg != "chain: mine: MINING: started" {
				t.Fatalf("Should only receive wanted events, got %q.", msg)
			}
		default:
			t.Fatalf("Should receive the event.")
		}
	}

	if err := evts.Release("1"); err != nil {
		t.Fatalf("Should be able to release a receiver: %s", err)
	}

	if _, ok := <-ch1; ok {
		t.Fatalf("Should close the released channel.")
	}

	if err := evts.Release("1"); err == nil {
		t.Fatalf("Should not be able to release a receiver twice.")
	}

	evts.Shutdown()

	if _, ok := <-ch2; ok {
		t.Fatalf("Should close every channel on shutdown.")
	}

	if evts.Count() != 0 {
		t.Fatalf("Should remove every receiver on shutdown.")
	}
}
