package database

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	gormlogger "gorm.io/gorm/logger"

	"github.com/user-directory/engine/pkg/config"
)

func TestNextDelayDoublesAndCaps(t *testing.T) {
	b := backoff{maxRetries: 5, delay: 500 * time.Millisecond, maxDelay: 5 * time.Second}

	cases := []struct {
		attempt int
		want    time.Duration
	}{
		{-1, 500 * time.Millisecond},
		{0, 500 * time.Millisecond},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 5 * time.Second},
		{31, 5 * time.Second},
		{40, 5 * time.Second},
		{63, 5 * time.Second},
		{200, 5 * time.Second},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, b.nextDelay(tc.attempt), "attempt %d", tc.attempt)
	}
}

func TestPoolOptionsFrom(t *testing.T) {
	cases := []struct {
		env  string
		want gormlogger.LogLevel
	}{
		{"development", gormlogger.Warn},
		{"test", gormlogger.Warn},
		{"production", gormlogger.Silent},
		{"staging", gormlogger.Silent},
	}
	for _, tc := range cases {
		c := &config.Config{
			AppEnv:            tc.env,
			DBMaxOpenConns:    12,
			DBMaxIdleConns:    4,
			DBConnMaxLifetime: 30 * time.Minute,
		}
		got := PoolOptionsFrom(c)
		require.Equal(t, tc.want, got.LogLevel, tc.env)
		require.Equal(t, 12, got.MaxOpenConns)
		require.Equal(t, 4, got.MaxIdleConns)
		require.Equal(t, 30*time.Minute, got.ConnMaxLifetime)
	}
}
