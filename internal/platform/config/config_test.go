package config

import (
	"testing"
	"time"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("HLSGET_TEST_STR", "value")
	if got := GetEnv("HLSGET_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnv = %q, want value", got)
	}
	if got := GetEnv("HLSGET_TEST_UNSET", "fallback"); got != "fallback" {
		t.Errorf("GetEnv = %q, want fallback", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("HLSGET_TEST_INT", "42")
	if got := GetEnvInt("HLSGET_TEST_INT", 7); got != 42 {
		t.Errorf("GetEnvInt = %d, want 42", got)
	}
	t.Setenv("HLSGET_TEST_INT", "not-a-number")
	if got := GetEnvInt("HLSGET_TEST_INT", 7); got != 7 {
		t.Errorf("GetEnvInt = %d, want fallback 7", got)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("HLSGET_TEST_DUR", "15")
	if got := GetEnvDuration("HLSGET_TEST_DUR", time.Second, time.Minute); got != 15*time.Second {
		t.Errorf("GetEnvDuration = %v, want 15s", got)
	}
	if got := GetEnvDuration("HLSGET_TEST_DUR_UNSET", time.Second, time.Minute); got != time.Minute {
		t.Errorf("GetEnvDuration = %v, want fallback 1m", got)
	}
}
