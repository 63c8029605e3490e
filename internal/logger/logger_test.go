package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestToZapLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		in   string
		want zapcore.Level
	}{
		{DebugLevel, zapcore.DebugLevel},
		{InfoLevel, zapcore.InfoLevel},
		{WarnLevel, zapcore.WarnLevel},
		{ErrorLevel, zapcore.ErrorLevel},
		{"bogus", defaultZapLevel},
		{"", defaultZapLevel},
	}
	for _, tc := range cases {
		if got := toZapLevel(tc.in); got != tc.want {
			t.Errorf("toZapLevel(%q) = %v, want %v", tc.in, got, tc.want)
		}
	}
}

func TestGet_ReturnsSingleton(t *testing.T) {
	a := Get(InfoLevel)
	b := Get(ErrorLevel)
	if a != b {
		t.Fatalf("expected the same instance on repeated Get calls")
	}
}

func TestNop_DoesNotPanic(t *testing.T) {
	t.Parallel()
	l := Nop()
	l.Infow("message", "k", "v")
	l.Errorw("message", "err", "boom")
}
