package clock

import (
	"testing"
	"time"
)

func TestNowFixedOffset(t *testing.T) {
	before := time.Now()
	got := Now()
	after := time.Now()

	name, offset := got.Zone()
	if name != "JST" || offset != 9*3600 {
		t.Fatalf("unexpected zone: %s %d", name, offset)
	}
	if got.Before(before.Add(-time.Second)) || got.After(after.Add(time.Second)) {
		t.Fatalf("Now() = %v, outside [%v, %v]", got, before, after)
	}
}

func TestJSTIgnoresHostZone(t *testing.T) {
	utc := time.Date(2024, 12, 31, 20, 30, 0, 0, time.UTC)
	jst := utc.In(JST)
	if jst.Day() != 1 || jst.Month() != time.January || jst.Hour() != 5 {
		t.Fatalf("unexpected conversion: %v", jst)
	}
}
