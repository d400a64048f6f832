package httpserver

import (
	"fmt"
	"testing"
)

func TestLimiterPool_Bounded(t *testing.T) {
	p := newLimiterPool(1, 1, 100)
	for i := 0; i < 1000; i++ {
		p.get(fmt.Sprintf("10.0.%d.%d", i/256, i%256))
	}
	if n := len(p.limiters); n > 100 {
		t.Fatalf("pool holds %d limiters, cap is 100", n)
	}
}

func TestLimiterPool_ReusesPerIP(t *testing.T) {
	p := newLimiterPool(1, 1, 100)
	a := p.get("10.0.0.1")
	if b := p.get("10.0.0.1"); b != a {
		t.Fatal("expected the same limiter for a repeated IP")
	}
	if a.Allow() && a.Allow() {
		t.Fatal("burst of 1 allowed two immediate requests")
	}
}
