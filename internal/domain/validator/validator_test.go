package validator

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSubcluster(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"默認", "secondary_subcluster_1", false},
		{"含空格", "sub 1", false},
		{"空", "", true},
		{"全空白", "   ", true},
		{"控制字符", "sub\n1", true},
		{"過長", strings.Repeat("a", MaxSubclusterLength+1), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateSubcluster(tt.input)
			if tt.wantErr {
				assert.Error(t, err)
				var ve *ValidationError
				assert.True(t, errors.As(err, &ve))
				assert.Equal(t, "endpoint.subcluster_name", ve.Field)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateHostPort(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{":8080", false},
		{"127.0.0.1:6379", false},
		{"redis.internal:6379", false},
		{"[::1]:6379", false},
		{"", true},
		{"localhost", true},
		{"localhost:0", true},
		{"localhost:70000", true},
		{"localhost:http", true},
		{"bad host:80", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			err := ValidateHostPort(tt.input, "server.listen")
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateKeyPrefix(t *testing.T) {
	assert.NoError(t, ValidateKeyPrefix("pulse:snapshot:"))
	assert.NoError(t, ValidateKeyPrefix(""))
	assert.Error(t, ValidateKeyPrefix("pulse snapshot"))
	assert.Error(t, ValidateKeyPrefix(strings.Repeat("k", MaxKeyPrefixLength+1)))
}

func TestValidateLength(t *testing.T) {
	assert.NoError(t, ValidateLength("abc", 3, "f"))

	err := ValidateLength("abcd", 3, "f")
	assert.EqualError(t, err, "f: 長度超過限制（最大 3 字符，當前 4 字符）")
}
