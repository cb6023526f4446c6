package domain

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    Amount
		wantErr bool
	}{
		{in: "12", want: 12_000_000},
		{in: "0.5", want: 500_000},
		{in: ".25", want: 250_000},
		{in: "3.000001", want: 3_000_001},
		{in: " 7 ", want: 7_000_000},
		{in: "0", want: 0},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "+1", wantErr: true},
		{in: "1.", wantErr: true},
		{in: "1.0000001", wantErr: true},
		{in: "abc", wantErr: true},
		{in: "1.2x", wantErr: true},
		{in: "99999999999999999999", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseAmount(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestAmount_String(t *testing.T) {
	require.Equal(t, "12", Amount(12_000_000).String())
	require.Equal(t, "0.5", Amount(500_000).String())
	require.Equal(t, "3.000001", Amount(3_000_001).String())
	require.Equal(t, "-1.25", Amount(-1_250_000).String())
	require.Equal(t, "0", Amount(0).String())
}

func TestAmount_RoundTrip(t *testing.T) {
	for _, s := range []string{"1", "0.1", "123.456789", "1000000"} {
		a, err := ParseAmount(s)
		require.NoError(t, err)
		require.Equal(t, s, a.String())
	}
}
