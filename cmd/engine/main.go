package main

import (
	"bufio"
	"context"
	"flag"
	"os"
	"strings"

	"github.com/quantfeed/matchengine/config"
	kafkawrapper "github.com/quantfeed/matchengine/pkg/kafka_wrapper"
	"github.com/quantfeed/matchengine/pkg/logging"
	"github.com/quantfeed/matchengine/pkg/matchengine"
	"github.com/quantfeed/matchengine/pkg/publisher"
	"go.uber.org/zap"
)

func main() {
	var configFile, inputFile, outputFile string
	flag.StringVar(&configFile, "config-file", "", "Specify config file path")
	flag.StringVar(&inputFile, "input", "", "Command file, one record per line (default: config input_file or stdin)")
	flag.StringVar(&outputFile, "output", "", "Output file (default: config output_file or stdout)")
	flag.Parse()

	cfg, err := config.Load(configFile)
	if err != nil {
		panic(err)
	}
	if inputFile == "" {
		inputFile = cfg.InputFile
	}
	if outputFile == "" {
		outputFile = cfg.OutputFile
	}

	ctx := context.Background()
	log, ctx := logging.GetLogger(ctx)
	defer log.Sync() //nolint:errcheck

	records, err := readRecords(inputFile)
	if err != nil {
		log.Fatal(ctx, "read input", zap.Error(err))
	}

	engine := matchengine.NewEngine(cfg.Engine, matchengine.WithLogger(log.Zap()))

	if cfg.TradeFeed != nil && cfg.TradeFeed.Enabled {
		producer := kafkawrapper.NewProducer(kafkawrapper.ProducerConfig{
			Brokers: cfg.TradeFeed.Brokers,
		})
		defer producer.Close(ctx) //nolint:errcheck
		feed := publisher.NewTradePublisher(producer, cfg.TradeFeed.Topic, log)
		engine.RegisterTradeCallback(feed.Callback(ctx))
	}

	out := engine.Process(records)

	if err := writeRows(outputFile, out); err != nil {
		log.Fatal(ctx, "write output", zap.Error(err))
	}

	stats := engine.Stats()
	log.Info(ctx, "run complete",
		zap.Int("processed", stats.Processed),
		zap.Int("malformed", stats.Malformed),
		zap.Int("scale_dropped", stats.ScaleDropped),
		zap.Int("duplicates", stats.Duplicates),
		zap.Int("trades", len(engine.Trades())),
	)
}

func readRecords(path string) ([]string, error) {
	f := os.Stdin
	if path != "" {
		var err error
		f, err = os.Open(path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
	}

	var records []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		if line := strings.TrimSpace(sc.Text()); line != "" {
			records = append(records, line)
		}
	}
	return records, sc.Err()
}

func writeRows(path string, rows []string) error {
	f := os.Stdout
	if path != "" {
		var err error
		f, err = os.Create(path)
		if err != nil {
			return err
		}
		defer f.Close()
	}

	w := bufio.NewWriter(f)
	for _, row := range rows {
		if _, err := w.WriteString(row + "\n"); err != nil {
			return err
		}
	}
	return w.Flush()
}
