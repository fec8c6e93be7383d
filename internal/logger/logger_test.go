package logger

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLevels(t *testing.T) {
	cases := []struct {
		in   string
		want logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"WARN", logrus.WarnLevel},
		{" error ", logrus.ErrorLevel},
		{"", logrus.InfoLevel},
		{"nonsense", logrus.InfoLevel},
	}
	for _, tc := range cases {
		if got := New(tc.in).GetLevel(); got != tc.want {
			t.Fatalf("level %q: expected %s, got %s", tc.in, tc.want, got)
		}
	}
}
