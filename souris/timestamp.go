package souris

import (
	"fmt"
	"time"

	"github.com/BurntNail/sourisdb/cursor"
	"github.com/BurntNail/sourisdb/internal/errs"
	"github.com/BurntNail/sourisdb/varint"
)

// Timestamp is a calendar-time value encoded as seven Integers: a signed
// year plus month, day, hour, minute, second, and nanosecond, per §3.3/§4.5.
// Unlike time.Time it carries no monotonic reading or location — the wire
// format has no concept of either.
type Timestamp struct {
	Year       int32
	Month      uint8
	Day        uint8
	Hour       uint8
	Minute     uint8
	Second     uint8
	Nanosecond uint32
}

// NewTimestamp validates its arguments the way chrono's from_ymd_opt/
// from_hms_nano_opt do in the original implementation: a field out of its
// calendar range is rejected rather than silently normalised (time.Date
// would roll "day 32" into the next month, which this format never does).
func NewTimestamp(year int32, month, day, hour, minute, second uint8, nanosecond uint32) (Timestamp, error) {
	if month == 0 || month > 12 || day == 0 || day > 31 ||
		hour > 23 || minute > 59 || second > 59 || nanosecond > 999_999_999 {
		return Timestamp{}, errs.ErrInvalidDateOrTime
	}

	t := time.Date(int(year), time.Month(month), int(day), 0, 0, 0, 0, time.UTC)
	if int32(t.Year()) != year || t.Month() != time.Month(month) || t.Day() != int(day) {
		return Timestamp{}, errs.ErrInvalidDateOrTime
	}

	return Timestamp{
		Year: year, Month: month, Day: day,
		Hour: hour, Minute: minute, Second: second, Nanosecond: nanosecond,
	}, nil
}

// FromTime converts a time.Time, truncating to UTC and dropping monotonic
// and location data the wire format has no room for.
func FromTime(t time.Time) Timestamp {
	u := t.UTC()

	return Timestamp{
		Year:       int32(u.Year()),
		Month:      uint8(u.Month()),
		Day:        uint8(u.Day()),
		Hour:       uint8(u.Hour()),
		Minute:     uint8(u.Minute()),
		Second:     uint8(u.Second()),
		Nanosecond: uint32(u.Nanosecond()),
	}
}

// Time converts back to a time.Time in UTC.
func (t Timestamp) Time() time.Time {
	return time.Date(int(t.Year), time.Month(t.Month), int(t.Day), int(t.Hour), int(t.Minute), int(t.Second), int(t.Nanosecond), time.UTC)
}

// Equal compares two Timestamps field-by-field.
func (t Timestamp) Equal(other Timestamp) bool {
	return t == other
}

func (t Timestamp) String() string {
	return t.Time().Format("2006-01-02T15:04:05.999999999Z")
}

// yearSignedState is year's niche mirror bit (0 of the Timestamp type byte):
// 1 when the year is negative, 0 otherwise. It is a convenience shortcut for
// readers of the wire bytes alone — decoding always reads the full Integer
// discriminant from the payload rather than trusting this bit.
func (t Timestamp) yearSignedState() byte {
	if t.Year < 0 {
		return 1
	}

	return 0
}

// ser appends the seven-Integer payload described in §4.5's Timestamp row.
// It does not write the leading type byte; callers needing just the payload
// (Value.Ser) share this with callers needing the niche bit (composeTypeByte).
func (t Timestamp) ser(dst []byte) []byte {
	dst = varint.FromInt32(t.Year).Ser(dst)
	dst = varint.FromUint8(t.Month).Ser(dst)
	dst = varint.FromUint8(t.Day).Ser(dst)
	dst = varint.FromUint8(t.Hour).Ser(dst)
	dst = varint.FromUint8(t.Minute).Ser(dst)
	dst = varint.FromUint8(t.Second).Ser(dst)
	dst = varint.FromUint32(t.Nanosecond).Ser(dst)

	return dst
}

// deserTimestamp reverses ser, reading the seven Integers off c.
func deserTimestamp(c *cursor.Cursor) (Timestamp, error) {
	year, err := readInt32(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp year: %w", err)
	}
	month, err := readUint8(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp month: %w", err)
	}
	day, err := readUint8(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp day: %w", err)
	}
	hour, err := readUint8(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp hour: %w", err)
	}
	minute, err := readUint8(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp minute: %w", err)
	}
	second, err := readUint8(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp second: %w", err)
	}
	ns, err := readUint32(c)
	if err != nil {
		return Timestamp{}, fmt.Errorf("timestamp nanosecond: %w", err)
	}

	return NewTimestamp(year, month, day, hour, minute, second, ns)
}

func readInt32(c *cursor.Cursor) (int32, error) {
	i, err := varint.Deser(c)
	if err != nil {
		return 0, err
	}

	return i.TryInt32()
}

func readUint8(c *cursor.Cursor) (uint8, error) {
	i, err := varint.Deser(c)
	if err != nil {
		return 0, err
	}

	return i.TryUint8()
}

func readUint32(c *cursor.Cursor) (uint32, error) {
	i, err := varint.Deser(c)
	if err != nil {
		return 0, err
	}

	return i.TryUint32()
}
