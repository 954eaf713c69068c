package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "valid", input: "2024-03-20", want: "2024-03-20"},
		{name: "leap day in leap year", input: "2024-02-29", want: "2024-02-29"},
		{name: "leap day in common year", input: "2023-02-29", wantErr: true},
		{name: "invalid month", input: "2024-13-01", wantErr: true},
		{name: "invalid day", input: "2024-02-30", wantErr: true},
		{name: "wrong layout", input: "20/03/2024", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseDate(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestDateOf(t *testing.T) {
	ts := time.Date(2024, time.March, 21, 17, 45, 0, 0, time.FixedZone("WIB", 7*3600))
	d := DateOf(ts)

	assert.Equal(t, "2024-03-21", d.String())
	assert.True(t, d.Equal(NewDate(2024, time.March, 21)))
	assert.Equal(t, "", Date{}.String())
	assert.True(t, Date{}.IsZero())
}

func TestDateScanValue(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-20"))
	assert.Equal(t, "2024-03-20", d.String())

	require.NoError(t, d.Scan([]byte("2024-02-29")))
	assert.Equal(t, "2024-02-29", d.String())

	require.NoError(t, d.Scan(time.Date(2024, time.March, 21, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-21", d.String())

	assert.Error(t, d.Scan("2024-02-30"))
	assert.Error(t, d.Scan(42))

	v, err := NewDate(2024, time.March, 20).Value()
	require.NoError(t, err)
	assert.Equal(t, "2024-03-20", v)

	v, err = Date{}.Value()
	require.NoError(t, err)
	assert.Nil(t, v)
}
