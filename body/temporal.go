package body

import (
	"fmt"
	"math"
	"time"

	"cloud.google.com/go/civil"

	"github.com/arloliu/herald/encoding"
	"github.com/arloliu/herald/errs"
)

const (
	secondsPerDay = 86_400
	nanosPerDay   = 86_400_000_000_000

	// Calendar bounds for Date values, as years and as day offsets from the
	// 1970-01-01 epoch: -9999-01-01 is day -4,371,587 and 9999-12-31 is day
	// 2,932,896 on the proleptic Gregorian calendar.
	minDateYear = -9999
	maxDateYear = 9999
	minDateDays = -4_371_587
	maxDateDays = 2_932_896
)

// epochDate is day zero of the wire encoding.
var epochDate = civil.Date{Year: 1970, Month: time.January, Day: 1}

// EncodeDate encodes a calendar date as a zigzag varint day offset from
// 1970-01-01.
//
// Returns errs.ErrInvalidValue for a date that does not exist on the
// calendar or whose year falls outside -9999..9999.
func (e *Encoder) EncodeDate(v civil.Date) error {
	if !v.IsValid() || v.Year < minDateYear || v.Year > maxDateYear {
		return fmt.Errorf("%w: date %v", errs.ErrInvalidValue, v)
	}

	e.buf.B = encoding.AppendVarint(e.buf.B, int64(v.DaysSince(epochDate)))

	return nil
}

// DecodeDate decodes a calendar date.
//
// Returns errs.ErrOverflow for day offsets beyond the representable
// calendar range.
func (d *Decoder) DecodeDate() (civil.Date, error) {
	days, err := encoding.Varint(d, 64)
	if err != nil {
		return civil.Date{}, err
	}

	// The encoder only emits years -9999..9999; anything outside is
	// corruption.
	if days < minDateDays || days > maxDateDays {
		return civil.Date{}, fmt.Errorf("%w: day offset %d", errs.ErrOverflow, days)
	}

	return epochDate.AddDays(int(days)), nil
}

// EncodeDateTime encodes an instant as its calendar date in UTC (a zigzag
// varint day offset from 1970-01-01) followed by a varint nanosecond-of-day
// offset. Any zone information is normalized to UTC; monotonic clock
// readings are discarded.
func (e *Encoder) EncodeDateTime(v time.Time) {
	sec := v.Unix()
	days := floorDiv(sec, secondsPerDay)
	secOfDay := sec - days*secondsPerDay
	nanoOfDay := uint64(secOfDay)*1_000_000_000 + uint64(v.Nanosecond()) //nolint:gosec

	e.buf.B = encoding.AppendVarint(e.buf.B, days)
	e.buf.B = encoding.AppendUvarint(e.buf.B, nanoOfDay)
}

// DecodeDateTime decodes an instant. The result is always in UTC.
//
// Returns errs.ErrOverflow when the nanosecond-of-day offset reaches a full
// day or the day offset cannot be represented as a time.Time.
func (d *Decoder) DecodeDateTime() (time.Time, error) {
	days, err := encoding.Varint(d, 64)
	if err != nil {
		return time.Time{}, err
	}

	nanoOfDay, err := encoding.Uvarint(d, 64)
	if err != nil {
		return time.Time{}, err
	}
	if nanoOfDay >= nanosPerDay {
		return time.Time{}, fmt.Errorf("%w: nanosecond-of-day %d", errs.ErrOverflow, nanoOfDay)
	}

	// Bound the day offset so the seconds conversion below cannot overflow
	// int64, including the second-of-day contribution on the positive side.
	const (
		maxDays = math.MaxInt64/secondsPerDay - 1
		minDays = math.MinInt64 / secondsPerDay
	)
	if days > maxDays || days < minDays {
		return time.Time{}, fmt.Errorf("%w: day offset %d", errs.ErrOverflow, days)
	}

	sec := days*secondsPerDay + int64(nanoOfDay/1_000_000_000) //nolint:gosec

	return time.Unix(sec, int64(nanoOfDay%1_000_000_000)).UTC(), nil //nolint:gosec
}

// floorDiv divides rounding toward negative infinity, so instants before
// the epoch still land on the calendar day they belong to.
func floorDiv(a, b int64) int64 {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}

	return q
}
