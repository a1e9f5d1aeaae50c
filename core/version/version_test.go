package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want Ordering
	}{
		{"patch greater", "1.2.4", "1.2.3", Greater},
		{"patch less", "1.2.3", "1.2.4", Less},
		{"equal", "1.2.3", "1.2.3", Equal},
		{"short form", "1.2", "1.2.0", Equal},
		{"numeric not lexical", "4.10.0", "4.9.9", Greater},
		{"v prefix", "v2.0.0", "1.9.9", Greater},
		{"prerelease lower than release", "1.0.0-rc.1", "1.0.0", Less},
		{"build metadata", "17.0.7+8", "17.0.7+7", Greater},
		{"same build metadata", "17.0.7+7", "17.0.7+7", Equal},
		{"textual build metadata", "1.0.0+abc", "1.0.0+abd", Less},
		{"numeric prerelease suffix", "1.0.0-rc10", "1.0.0-rc9", Greater},
		{"numeric prerelease suffix reversed", "1.0.0-rc9", "1.0.0-rc10", Less},
		{"dotted prerelease", "1.0.0-beta.11", "1.0.0-beta.2", Greater},
		{"prerelease letters", "1.0.0-beta1", "1.0.0-alpha9", Greater},
		{"bare prerelease equals zero", "1.0.0-rc", "1.0.0-rc0", Equal},
		{"prerelease of different patch", "1.0.1-rc1", "1.0.0-rc9", Greater},
		{"four components", "1.2.3.10", "1.2.3.9", Greater},
		{"four vs three components", "1.2.3.1", "1.2.3", Greater},
		{"garbage left", "not-a-version", "1.2.3", Incomparable},
		{"garbage right", "1.2.3", "latest", Incomparable},
		{"empty", "", "1.0", Incomparable},
		{"letter suffix", "1.1.1w", "1.1.1v", Incomparable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Compare(tt.a, tt.b))
		})
	}
}

func TestCompare_Antisymmetric(t *testing.T) {
	pairs := [][2]string{
		{"1.0", "2.0"},
		{"3.1.4", "3.1.40"},
		{"1.2.3.4", "1.2.3.5"},
		{"2.0.0-rc9", "2.0.0-rc10"},
		{"2.0.0-rc.2", "2.0.0"},
	}
	for _, p := range pairs {
		assert.Equal(t, Less, Compare(p[0], p[1]), p)
		assert.Equal(t, Greater, Compare(p[1], p[0]), p)
	}
}

func TestIsValid(t *testing.T) {
	assert.True(t, IsValid("1.2.3"))
	assert.True(t, IsValid("10.0.1.2"))
	assert.False(t, IsValid("abc"))
	assert.False(t, IsValid("1..2"))
}

func TestOrdering_String(t *testing.T) {
	assert.Equal(t, "greater", Greater.String())
	assert.Equal(t, "incomparable", Incomparable.String())
}
