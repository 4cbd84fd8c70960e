package log

import (
	"bytes"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
)

func TestWithFields(t *testing.T) {
	var buf bytes.Buffer
	l := WithFields(NewWithOutput(&buf, logrus.DebugLevel), Fields{"rom": "TETRIS"})
	l.Debugf("loaded %d banks", 2)

	out := buf.String()
	for _, want := range []string{"loaded 2 banks", "rom=TETRIS", "level=debug"} {
		if !strings.Contains(out, want) {
			t.Errorf("got %q, missing %q", out, want)
		}
	}
}

func TestNullLogger(t *testing.T) {
	l := WithFields(NewNullLogger(), Fields{"a": 1})
	if _, ok := l.(nullLogger); !ok {
		t.Errorf("got %T, want nullLogger", l)
	}
	l.Errorf("nothing %d", 1)
}
