package attendance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func at(hour, minute int) time.Time {
	return time.Date(2026, 3, 2, hour, minute, 0, 0, time.UTC)
}

func TestPolicy_CheckInStatus(t *testing.T) {
	p := DefaultPolicy()

	cases := []struct {
		hour, minute int
		want         Status
	}{
		{7, 30, StatusPresent},
		{8, 59, StatusPresent},
		{9, 0, StatusPresent},
		{9, 15, StatusPresent},
		{9, 16, StatusLate},
		{10, 0, StatusLate},
		{23, 59, StatusLate},
	}
	for _, c := range cases {
		got := p.CheckInStatus(at(c.hour, c.minute))
		if got != c.want {
			t.Errorf("CheckInStatus(%02d:%02d) = %s, want %s", c.hour, c.minute, got, c.want)
		}
	}
}

func TestPolicy_CheckInStatus_Threshold(t *testing.T) {
	p := DefaultPolicy()
	p.LateThresholdMinutes = 0

	assert.Equal(t, StatusPresent, p.CheckInStatus(at(9, 0)))
	assert.Equal(t, StatusLate, p.CheckInStatus(at(9, 1)))
}

func TestPolicy_CheckInStatus_UsesConfiguredZone(t *testing.T) {
	p := DefaultPolicy()
	p.Location = time.FixedZone("WIB", 7*60*60)

	// 02:10 UTC is 09:10 in UTC+7
	assert.Equal(t, StatusPresent, p.CheckInStatus(at(2, 10)))
	// 09:10 UTC is 16:10 in UTC+7
	assert.Equal(t, StatusLate, p.CheckInStatus(at(9, 10)))
}

func TestPolicy_Today(t *testing.T) {
	p := DefaultPolicy()
	assert.Equal(t, time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC),
		p.Today(time.Date(2026, 10, 15, 23, 59, 59, 0, time.UTC)))

	p.Location = time.FixedZone("WIB", 7*60*60)
	assert.Equal(t, time.Date(2026, 10, 16, 0, 0, 0, 0, time.UTC),
		p.Today(time.Date(2026, 10, 15, 20, 0, 0, 0, time.UTC)))
}

func TestPolicy_CheckOutStatus(t *testing.T) {
	p := DefaultPolicy()
	in := at(9, 0)

	assert.Equal(t, StatusHalfDay, p.CheckOutStatus(in, in.Add(3*time.Hour), StatusPresent))
	assert.Equal(t, StatusHalfDay, p.CheckOutStatus(in, in.Add(3*time.Hour), StatusLate))
	assert.Equal(t, StatusHalfDay, p.CheckOutStatus(in, in.Add(4*time.Hour-time.Second), StatusPresent))
	assert.Equal(t, StatusPresent, p.CheckOutStatus(in, in.Add(4*time.Hour), StatusPresent))
	assert.Equal(t, StatusLate, p.CheckOutStatus(in, in.Add(8*time.Hour), StatusLate))
}

func TestFormatHours(t *testing.T) {
	assert.Equal(t, "2.00", FormatHours(2))
	assert.Equal(t, "3.46", FormatHours(3.456))
	assert.Equal(t, "0.00", FormatHours(0))
}
