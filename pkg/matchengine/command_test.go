package matchengine

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand_Insert(t *testing.T) {
	cmd, err := ParseCommand("INSERT,1,AAPL,BUY,12.1234,5")

	require.NoError(t, err)
	assert.Equal(t, CmdInsert, cmd.Kind)
	assert.Equal(t, int64(1), cmd.ID)
	assert.Equal(t, "AAPL", cmd.Symbol)
	assert.Equal(t, BUY, cmd.Side)
	assert.True(t, cmd.Price.Equal(decimal.RequireFromString("12.1234")))
	assert.Equal(t, int64(5), cmd.Volume)
}

func TestParseCommand_SideDefaultsToSell(t *testing.T) {
	// anything but the exact string BUY is a SELL
	for _, side := range []string{"SELL", "sell", "buy", "B", ""} {
		cmd, err := ParseCommand("INSERT,1,AAPL," + side + ",12,5")
		require.NoError(t, err)
		assert.Equal(t, SELL, cmd.Side, "side field %q", side)
	}
}

func TestParseCommand_Amend(t *testing.T) {
	cmd, err := ParseCommand("AMEND,7,45.95,8")

	require.NoError(t, err)
	assert.Equal(t, CmdAmend, cmd.Kind)
	assert.Equal(t, int64(7), cmd.ID)
	assert.Empty(t, cmd.Symbol)
	assert.True(t, cmd.Price.Equal(decimal.RequireFromString("45.95")))
	assert.Equal(t, int64(8), cmd.Volume)
}

func TestParseCommand_Pull(t *testing.T) {
	cmd, err := ParseCommand("PULL,4")
	require.NoError(t, err)
	assert.Equal(t, CmdPull, cmd.Kind)
	assert.Equal(t, int64(4), cmd.ID)

	// an unknown first field is treated as a PULL
	cmd, err = ParseCommand("CANCEL,4")
	require.NoError(t, err)
	assert.Equal(t, CmdPull, cmd.Kind)
}

func TestParseCommand_PriceScale(t *testing.T) {
	tests := []struct {
		name   string
		record string
		ok     bool
	}{
		{"insert 5 decimals rejected", "INSERT,1,AAPL,BUY,12.12345,5", false},
		{"insert 4 decimals accepted", "INSERT,1,AAPL,BUY,12.1234,5", true},
		{"amend 5 decimals rejected", "AMEND,1,0.00001,5", false},
		{"amend 4 decimals accepted", "AMEND,1,0.0001,5", true},
		{"integral price accepted", "INSERT,1,AAPL,BUY,46,8", true},
		{"trailing zeros count as digits", "INSERT,1,AAPL,BUY,12.10000,5", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.record)
			if tt.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrPriceScale)
			}
		})
	}
}

func TestParseCommand_Malformed(t *testing.T) {
	tests := []struct {
		name   string
		record string
		field  string
	}{
		{"empty record", "", "record"},
		{"bad id", "PULL,notanumber", "id"},
		{"insert too few fields", "INSERT,1,AAPL,BUY,12", "record"},
		{"insert too many fields", "INSERT,1,AAPL,BUY,12,5,extra", "record"},
		{"amend wrong field count", "AMEND,1,12", "record"},
		{"bad price", "INSERT,1,AAPL,BUY,abc,5", "price"},
		{"negative price", "INSERT,1,AAPL,BUY,-12.5,5", "price"},
		{"bad volume", "INSERT,1,AAPL,BUY,12,xx", "volume"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCommand(tt.record)
			require.Error(t, err)

			var decodeErr *DecodeError
			require.True(t, errors.As(err, &decodeErr), "want *DecodeError, got %T", err)
			assert.Equal(t, tt.field, decodeErr.Field)
		})
	}
}

// The scale drop is a business rule, not an error: the engine counts it
// but never mutates state or logs it loudly.
func TestPriceScaleDropObservable(t *testing.T) {
	e := NewEngine(DefaultConfig())

	err := e.Apply("INSERT,1,AAPL,BUY,12.12345,5")
	assert.ErrorIs(t, err, ErrPriceScale)
	assert.Equal(t, 1, e.Stats().ScaleDropped)
	assert.Equal(t, 0, e.Stats().Malformed)

	assert.Empty(t, e.Process(nil), "dropped record must leave no book state")
}
