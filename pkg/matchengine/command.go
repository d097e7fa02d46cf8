package matchengine

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

type CommandKind int

const (
	CmdInsert CommandKind = iota
	CmdAmend
	CmdPull
)

func (k CommandKind) String() string {
	switch k {
	case CmdInsert:
		return "INSERT"
	case CmdAmend:
		return "AMEND"
	default:
		return "PULL"
	}
}

// Command is one decoded input record. Symbol and Side are only set for
// INSERT; an AMEND resolves them from the resting order it targets.
type Command struct {
	Kind   CommandKind
	ID     int64
	Symbol string
	Side   Side
	Price  decimal.Decimal
	Volume int64
}

// DecodeError reports a record that could not be decoded. A bad record is
// skipped, never fatal to the run.
type DecodeError struct {
	Record string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode %q: bad %s: %v", e.Record, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

const maxPriceScale = 4

// ParseCommand decodes one comma-separated record into a Command. The
// first field selects INSERT or AMEND; any other value is a PULL.
//
//	INSERT,<id>,<symbol>,<side>,<price>,<volume>
//	AMEND,<id>,<price>,<volume>
//	PULL,<id>
//
// A side other than the exact string "BUY" is SELL. INSERT and AMEND
// prices are subject to the four-decimal rule (ErrPriceScale); PULL is
// exempt. Pure function of the record, no side effects.
func ParseCommand(record string) (Command, error) {
	fields := strings.Split(record, ",")
	if len(fields) < 2 {
		return Command{}, &DecodeError{Record: record, Field: "record", Err: errors.New("too few fields")}
	}

	id, err := strconv.ParseInt(fields[1], 10, 64)
	if err != nil {
		return Command{}, &DecodeError{Record: record, Field: "id", Err: err}
	}
	cmd := Command{ID: id}

	switch fields[0] {
	case "INSERT":
		if len(fields) != 6 {
			return Command{}, &DecodeError{Record: record, Field: "record", Err: fmt.Errorf("INSERT wants 6 fields, got %d", len(fields))}
		}
		cmd.Kind = CmdInsert
		cmd.Symbol = fields[2]
		cmd.Side = SELL
		if fields[3] == "BUY" {
			cmd.Side = BUY
		}
		if cmd.Price, cmd.Volume, err = parsePriceVolume(record, fields[4], fields[5]); err != nil {
			return Command{}, err
		}
	case "AMEND":
		if len(fields) != 4 {
			return Command{}, &DecodeError{Record: record, Field: "record", Err: fmt.Errorf("AMEND wants 4 fields, got %d", len(fields))}
		}
		cmd.Kind = CmdAmend
		if cmd.Price, cmd.Volume, err = parsePriceVolume(record, fields[2], fields[3]); err != nil {
			return Command{}, err
		}
	default:
		cmd.Kind = CmdPull
	}

	return cmd, nil
}

// parsePriceVolume decodes the trailing price,volume pair shared by
// INSERT and AMEND. The scale rule applies to the raw price text: more
// than four digits after the final '.' drops the whole record.
func parsePriceVolume(record, rawPrice, rawVolume string) (decimal.Decimal, int64, error) {
	if dot := strings.LastIndexByte(rawPrice, '.'); dot >= 0 && len(rawPrice)-dot-1 > maxPriceScale {
		return decimal.Decimal{}, 0, ErrPriceScale
	}

	price, err := decimal.NewFromString(rawPrice)
	if err != nil {
		return decimal.Decimal{}, 0, &DecodeError{Record: record, Field: "price", Err: err}
	}
	if price.IsNegative() {
		return decimal.Decimal{}, 0, &DecodeError{Record: record, Field: "price", Err: errors.New("negative price")}
	}

	volume, err := strconv.ParseInt(rawVolume, 10, 64)
	if err != nil {
		return decimal.Decimal{}, 0, &DecodeError{Record: record, Field: "volume", Err: err}
	}

	return price, volume, nil
}
