package main

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/quantfeed/matchengine/pkg/matchengine"
)

const (
	numCommands = 1_000_000
	minPrice    = 100
	maxPrice    = 200
	minVolume   = 1
	maxVolume   = 100
)

var symbols = []string{"WEBB", "AAPL", "TSLA"}

func randomCommand(rng *rand.Rand, id int) string {
	side := "BUY"
	if rng.Intn(2) == 0 {
		side = "SELL"
	}
	symbol := symbols[rng.Intn(len(symbols))]
	price := float64(minPrice) + rng.Float64()*(maxPrice-minPrice)
	volume := rng.Intn(maxVolume-minVolume+1) + minVolume

	switch rng.Intn(10) {
	case 0: // occasional amend against a recent id
		return fmt.Sprintf("AMEND,%d,%.2f,%d", 1+rng.Intn(id), price, volume)
	case 1: // occasional pull
		return fmt.Sprintf("PULL,%d", 1+rng.Intn(id))
	default:
		return fmt.Sprintf("INSERT,%d,%s,%s,%.2f,%d", id, symbol, side, price, volume)
	}
}

func main() {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	engine := matchengine.NewEngine(matchengine.DefaultConfig())

	totalMatched := 0
	totalVolume := int64(0)
	engine.RegisterTradeCallback(func(trades []matchengine.Trade) {
		for _, t := range trades {
			totalMatched++
			totalVolume += t.Volume
		}
	})

	records := make([]string, 0, numCommands)
	for i := 0; i < numCommands; i++ {
		records = append(records, randomCommand(rng, i+1))
	}

	start := time.Now()
	out := engine.Process(records)
	elapsed := time.Since(start)

	stats := engine.Stats()
	fmt.Println("--------")
	fmt.Printf("Total Commands    : %d\n", numCommands)
	fmt.Printf("Processed         : %d\n", stats.Processed)
	fmt.Printf("Total Matches     : %d\n", totalMatched)
	fmt.Printf("Total Matched Qty : %d\n", totalVolume)
	fmt.Printf("Output Rows       : %d\n", len(out))
	fmt.Printf("Time Taken        : %s\n", elapsed)
}
