package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestKeyFragment(t *testing.T) {
	assert.Equal(t, "3F2B9A", KeyFragment("3f2b9a1c-0000-4000-8000-000000000000", 6, "GEN"))
	assert.Equal(t, "S1", KeyFragment("s-1", 6, "GEN"))
	assert.Equal(t, "GEN", KeyFragment("", 6, "GEN"))
	assert.Equal(t, "GEN", KeyFragment("---", 6, "GEN"))
}

func TestNextSequence(t *testing.T) {
	cases := []struct {
		name   string
		last   string
		prefix string
		width  int
		want   string
	}{
		{"first", "", "RFP-S1KEY-202405", 3, "RFP-S1KEY-202405-001"},
		{"increment", "RFP-S1KEY-202405-009", "RFP-S1KEY-202405", 3, "RFP-S1KEY-202405-010"},
		{"global", "RFP-202405-0041", "RFP-202405", 4, "RFP-202405-0042"},
		{"overflow keeps digits", "RFP-X-202405-999", "RFP-X-202405", 3, "RFP-X-202405-1000"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := NextSequence(tc.last, tc.prefix, tc.width)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNextSequenceRejectsForeignPrefix(t *testing.T) {
	_, err := NextSequence("RFP-OTHER-202405-001", "RFP-S1KEY-202405", 3)
	assert.Error(t, err)

	_, err = NextSequence("RFP-S1KEY-202405-abc", "RFP-S1KEY-202405", 3)
	assert.Error(t, err)
}
