package datetime_test

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Astemirdum/shareit/pkg/datetime"
)

func TestDateTime_JSON(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    time.Time
		wantErr bool
	}{
		{
			name:  "seconds",
			input: `"2030-01-02T10:00:00"`,
			want:  time.Date(2030, 1, 2, 10, 0, 0, 0, time.UTC),
		},
		{
			name:  "fraction accepted",
			input: `"2030-01-02T10:00:00.123456789"`,
			want:  time.Date(2030, 1, 2, 10, 0, 0, 123456000, time.UTC),
		},
		{
			name:    "zone rejected",
			input:   `"2030-01-02T10:00:00+03:00"`,
			wantErr: true,
		},
		{
			name:    "not a string",
			input:   `12`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var d datetime.DateTime
			err := json.Unmarshal([]byte(tt.input), &d)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.True(t, tt.want.Equal(d.Time))
		})
	}
}

func TestDateTime_MarshalDropsFraction(t *testing.T) {
	t.Parallel()
	d := datetime.New(time.Date(2030, 1, 2, 10, 0, 5, 999, time.UTC))
	b, err := json.Marshal(struct {
		At datetime.DateTime `json:"at"`
	}{At: d})
	require.NoError(t, err)
	require.Equal(t, `{"at":"2030-01-02T10:00:05"}`, string(b))
}

func TestNaive(t *testing.T) {
	t.Parallel()
	loc := time.FixedZone("MSK", 3*60*60)
	in := time.Date(2030, 5, 1, 12, 30, 0, 1500, loc)
	got := datetime.Naive(in)
	require.Equal(t, time.UTC, got.Location())
	require.Equal(t, 12, got.Hour())
	require.Equal(t, 1000, got.Nanosecond())
}
