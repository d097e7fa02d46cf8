package publisher

import (
	"context"

	kafkawrapper "github.com/quantfeed/matchengine/pkg/kafka_wrapper"
	"github.com/quantfeed/matchengine/pkg/logging"
	"github.com/quantfeed/matchengine/pkg/matchengine"
	"go.uber.org/zap"
)

// TradePublisher forwards executed trades to a Kafka topic as JSON. It is
// an external collaborator: the engine core stays pure and feeds it
// through the trade callback.
type TradePublisher struct {
	producer *kafkawrapper.Producer
	topic    string
	log      *logging.Logger
}

type tradeEvent struct {
	Symbol      string `json:"symbol"`
	Price       string `json:"price"`
	Volume      int64  `json:"volume"`
	AggressorID int64  `json:"aggressor_id"`
	PassiveID   int64  `json:"passive_id"`
}

func NewTradePublisher(producer *kafkawrapper.Producer, topic string, log *logging.Logger) *TradePublisher {
	return &TradePublisher{
		producer: producer,
		topic:    topic,
		log:      log,
	}
}

// PublishBatch sends one command's trades, keyed by symbol so a symbol's
// trades stay ordered within a partition. A publish failure is logged and
// never fed back into the run.
func (p *TradePublisher) PublishBatch(ctx context.Context, trades []matchengine.Trade) {
	for _, t := range trades {
		ev := tradeEvent{
			Symbol:      t.Symbol,
			Price:       t.Price.String(),
			Volume:      t.Volume,
			AggressorID: t.AggressorID,
			PassiveID:   t.PassiveID,
		}
		if err := p.producer.PublishJSON(ctx, p.topic, t.Symbol, ev, nil); err != nil {
			p.log.Error(ctx, "publish trade", zap.Error(err), zap.Int64("aggressor_id", t.AggressorID))
		}
	}
}

// Callback adapts the publisher to the engine's trade callback signature.
func (p *TradePublisher) Callback(ctx context.Context) func([]matchengine.Trade) {
	return func(trades []matchengine.Trade) {
		p.PublishBatch(ctx, trades)
	}
}
