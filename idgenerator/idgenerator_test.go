package idgenerator

import "testing"

func TestRandomDeterministic(t *testing.T) {
	a := NewRandom(42)
	b := NewRandom(42)
	for i := 0; i < 100; i++ {
		ta, tb := a.NewTraceID(), b.NewTraceID()
		if ta != tb {
			t.Fatalf("same seed produced different trace ids at iter %d: %x vs %x", i, ta, tb)
		}
		sa, sb := a.NewSpanID(), b.NewSpanID()
		if sa != sb {
			t.Fatalf("same seed produced different span ids at iter %d: %x vs %x", i, sa, sb)
		}
	}
}

func TestRandomNeverZero(t *testing.T) {
	g := NewRandom(1)
	for i := 0; i < 10000; i++ {
		if !g.NewTraceID().IsValid() {
			t.Fatal("generated an all-zero trace id")
		}
		if !g.NewSpanID().IsValid() {
			t.Fatal("generated an all-zero span id")
		}
	}
}

func TestRandomConcurrentSafe(t *testing.T) {
	g := NewDefault()
	done := make(chan struct{})
	for i := 0; i < 8; i++ {
		go func() {
			defer func() { done <- struct{}{} }()
			for j := 0; j < 1000; j++ {
				g.NewTraceID()
				g.NewSpanID()
			}
		}()
	}
	for i := 0; i < 8; i++ {
		<-done
	}
}
