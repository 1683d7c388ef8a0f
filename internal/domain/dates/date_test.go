package dates

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Valid(t *testing.T) {
	d, err := Parse("2024-02-29")

	require.NoError(t, err)
	assert.Equal(t, 2024, d.Year())
	assert.Equal(t, time.February, d.Month())
	assert.Equal(t, 29, d.Day())
	assert.Equal(t, "2024-02-29", d.String())
}

func TestParse_Invalid(t *testing.T) {
	inputs := []string{
		"",
		"2024/01/05",
		"2024-1-5",
		"01-05-2024",
		"2023-02-29",
		"2024-13-01",
		"2024-01-05T00:00:00Z",
		"not a date",
	}

	for _, in := range inputs {
		t.Run(in, func(t *testing.T) {
			_, err := Parse(in)

			require.Error(t, err)
			var dfe *DateFormatError
			require.True(t, errors.As(err, &dfe))
			assert.Equal(t, in, dfe.Value)
		})
	}
}

func TestDate_Sub(t *testing.T) {
	a := NewDate(2024, time.January, 1)
	b := NewDate(2024, time.March, 1)

	assert.Equal(t, 60, b.Sub(a))
	assert.Equal(t, -60, a.Sub(b))
	assert.Equal(t, 60, DaysBetween(a, b))
	assert.Equal(t, 60, DaysBetween(b, a))
	assert.True(t, a.Before(b))
}

func TestDate_SubAcrossYears(t *testing.T) {
	a := NewDate(2023, time.December, 25)
	b := NewDate(2024, time.January, 8)

	assert.Equal(t, 14, b.Sub(a))
}

func TestNewDate_Normalizes(t *testing.T) {
	d := NewDate(2024, time.January, 32)

	assert.Equal(t, "2024-02-01", d.String())
}
