package matchengine

import (
	"fmt"
	"testing"
)

func TestSimpleMatch(t *testing.T) {
	e := NewEngine(DefaultConfig())

	out := e.Process([]string{
		"INSERT,1,AAPL,SELL,12.2,5",
		"INSERT,2,AAPL,BUY,12.2,5",
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 output row, got %d: %v", len(out), out)
	}
	if out[0] != "AAPL,12.2,5,2,1" {
		t.Errorf("incorrect trade row: %s", out[0])
	}
}

func TestNoMatchDueToPrice(t *testing.T) {
	e := NewEngine(DefaultConfig())
	e.RegisterTradeCallback(func(trades []Trade) {
		t.Fatalf("expected no match, got %+v", trades)
	})

	_ = e.Apply("INSERT,1,AAPL,SELL,100,10")
	_ = e.Apply("INSERT,2,AAPL,BUY,98,10")
}

func TestPartialFill(t *testing.T) {
	e := NewEngine(DefaultConfig())

	_ = e.Apply("INSERT,1,AAPL,SELL,100,5")
	_ = e.Apply("INSERT,2,AAPL,BUY,101,10")

	trades := e.Trades()
	if len(trades) != 1 {
		t.Fatalf("expected 1 trade, got %d", len(trades))
	}
	if trades[0].Volume != 5 {
		t.Errorf("expected traded volume 5, got %d", trades[0].Volume)
	}
	// trade always prints at the resting order's price
	if trades[0].Row() != "AAPL,100,5,2,1" {
		t.Errorf("incorrect trade row: %s", trades[0].Row())
	}
}

func TestTimePriorityMatch(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// two SELLs at the same price; FIFO decides who fills first
	_ = e.Apply("INSERT,1,AAPL,SELL,100,5")
	_ = e.Apply("INSERT,2,AAPL,SELL,100,5")
	_ = e.Apply("INSERT,3,AAPL,BUY,100,10")

	trades := e.Trades()
	if len(trades) != 2 {
		t.Fatalf("expected 2 trades, got %d", len(trades))
	}
	if trades[0].PassiveID != 1 || trades[1].PassiveID != 2 {
		t.Errorf("expected FIFO match order, got %+v", trades)
	}
}

func TestSymbolIsolation(t *testing.T) {
	e := NewEngine(DefaultConfig())

	// crossable prices but different symbols never trade
	_ = e.Apply("INSERT,1,AAPL,SELL,100,5")
	_ = e.Apply("INSERT,2,MSFT,BUY,101,5")

	if len(e.Trades()) != 0 {
		t.Fatalf("expected no trades across symbols, got %+v", e.Trades())
	}
}

// End-to-end scenario from the venue's acceptance sheet: three resting
// bids, one ask above the market, then a one-lot ask that crosses the
// oldest bid.
func TestEndToEndScenario(t *testing.T) {
	e := NewEngine(DefaultConfig())

	out := e.Process([]string{
		"INSERT,1,WEBB,BUY,45.95,5",
		"INSERT,2,WEBB,BUY,45.95,6",
		"INSERT,3,WEBB,BUY,45.95,12",
		"INSERT,4,WEBB,SELL,46,8",
		"INSERT,5,WEBB,SELL,45.95,1",
	})

	want := []string{
		"WEBB,45.95,1,5,1",
		"===WEBB===",
		"45.95,22,46,8",
	}
	if len(out) != len(want) {
		t.Fatalf("expected %d rows, got %d: %v", len(want), len(out), out)
	}
	for i := range want {
		if out[i] != want[i] {
			t.Errorf("row %d: expected %q, got %q", i, want[i], out[i])
		}
	}
}

func TestDuplicateInsertRejected(t *testing.T) {
	e := NewEngine(DefaultConfig())

	_ = e.Apply("INSERT,1,AAPL,BUY,100,5")
	if err := e.Apply("INSERT,1,AAPL,BUY,101,7"); err == nil {
		t.Fatal("expected duplicate id rejection")
	}
	if e.Stats().Duplicates != 1 {
		t.Errorf("expected 1 duplicate, got %d", e.Stats().Duplicates)
	}

	out := e.Process(nil)
	want := []string{"===AAPL===", "100,5,,"}
	if len(out) != 2 || out[0] != want[0] || out[1] != want[1] {
		t.Errorf("duplicate insert mutated the book: %v", out)
	}
}

func TestMalformedRecordsSkipped(t *testing.T) {
	e := NewEngine(DefaultConfig())

	records := []string{
		"INSERT,abc,AAPL,BUY,100,5", // bad id
		"INSERT,2,AAPL,BUY,xyz,5",   // bad price
		"INSERT,3,AAPL,BUY,100",     // wrong field count
		"INSERT,4,AAPL,SELL,100,5",
		"INSERT,5,AAPL,BUY,100,5",
	}
	out := e.Process(records)

	if e.Stats().Malformed != 3 {
		t.Fatalf("expected 3 malformed records, got %d", e.Stats().Malformed)
	}
	if len(out) != 1 || out[0] != "AAPL,100,5,5,4" {
		t.Errorf("expected the valid pair to trade, got %v", out)
	}
}

func TestHighVolumeOrders(t *testing.T) {
	e := NewEngine(DefaultConfig())
	trades := 0
	e.RegisterTradeCallback(func(batch []Trade) {
		trades += len(batch)
	})

	num := 10_000
	for i := 0; i < num; i++ {
		side := "BUY"
		if i%2 == 0 {
			side = "SELL"
		}
		_ = e.Apply(fmt.Sprintf("INSERT,%d,ABC,%s,100,10", i+1, side))
	}

	if trades != num/2 {
		t.Errorf("expected %d trades, got %d", num/2, trades)
	}
}

func BenchmarkEngineMatch(b *testing.B) {
	e := NewEngine(DefaultConfig())

	for i := 0; i < b.N; i++ {
		side := "BUY"
		if i%2 == 0 {
			side = "SELL"
		}
		_ = e.Apply(fmt.Sprintf("INSERT,%d,ABC,%s,100,10", i+1, side))
	}
}
