package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandEnv(t *testing.T) {
	t.Setenv("DRS_TEST_HOST", "redis.internal")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "set variable wins over default",
			in:   "host: ${DRS_TEST_HOST:localhost}",
			want: "host: redis.internal",
		},
		{
			name: "unset variable falls back to default",
			in:   "port: ${DRS_TEST_PORT:6379}",
			want: "port: 6379",
		},
		{
			name: "empty default",
			in:   "password: ${DRS_TEST_PASSWORD:}",
			want: "password: ",
		},
		{
			name: "unset variable without default kept verbatim",
			in:   "key: ${DRS_TEST_MISSING}",
			want: "key: ${DRS_TEST_MISSING}",
		},
		{
			name: "multiple placeholders in one document",
			in:   "${DRS_TEST_HOST:a}:${DRS_TEST_PORT:6379}",
			want: "redis.internal:6379",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, expandEnv(tt.in))
		})
	}
}

func TestExpandEnv_SetButEmpty(t *testing.T) {
	t.Setenv("DRS_TEST_EMPTY", "")

	// 已设置但为空的变量按其空值展开，不使用默认值
	assert.Equal(t, "v: ", expandEnv("v: ${DRS_TEST_EMPTY:fallback}"))
}
