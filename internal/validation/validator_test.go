package validation

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInteger(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"Decimal", "29", "29", false},
		{"Padded", "  7 \n", "7", false},
		{"Negative", "-12", "-12", false},
		{"Plus sign", "+5", "5", false},
		{"Hex", "0x1d", "29", false},
		{"Binary", "0b111", "7", false},
		{"Octal", "0o17", "15", false},
		{"Underscores", "1_000_003", "1000003", false},
		{"Large", "170141183460469231731687303715884105727", "170141183460469231731687303715884105727", false},
		{"Empty", "", "", true},
		{"Whitespace only", "   ", "", true},
		{"Letters", "abc", "", true},
		{"Float", "1.5", "", true},
		{"Embedded space", "1 2", "", true},
		{"Bad hex digit", "0xZZ", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseInteger(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestParseNamedInteger(t *testing.T) {
	_, err := ParseNamedInteger("modulus", "seven")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid modulus")
}

func TestValidateModulusSize(t *testing.T) {
	n := new(big.Int).Lsh(big.NewInt(1), 70)

	assert.NoError(t, ValidateModulusSize(n, 0))
	assert.NoError(t, ValidateModulusSize(n, 71))
	assert.Error(t, ValidateModulusSize(n, 64))
}

func TestSplitFields(t *testing.T) {
	assert.Equal(t, []string{"5", "3", "7"}, SplitFields("5 3 7"))
	assert.Equal(t, []string{"5", "3", "7"}, SplitFields(" 5,3;\t7 "))
	assert.Nil(t, SplitFields("   "))
}

func TestStripComment(t *testing.T) {
	assert.Equal(t, "5 3 7", StripComment("5 3 7  # primitive root"))
	assert.Equal(t, "", StripComment("# only a comment"))
	assert.Equal(t, "2 1 5", StripComment("2 1 5"))
}

func TestSanitizeInput(t *testing.T) {
	assert.Equal(t, "a\nb\nc", SanitizeInput("  a \r\n b\r c  "))
}

func TestValidateOutputFormat(t *testing.T) {
	assert.NoError(t, ValidateOutputFormat("text"))
	assert.NoError(t, ValidateOutputFormat("json"))
	assert.Error(t, ValidateOutputFormat("yaml"))
}

func TestValidateWorkers(t *testing.T) {
	assert.NoError(t, ValidateWorkers(1))
	assert.NoError(t, ValidateWorkers(64))
	assert.Error(t, ValidateWorkers(0))
	assert.Error(t, ValidateWorkers(2048))
}
