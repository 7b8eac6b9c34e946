package timer

import (
	"strings"
	"testing"
)

func TestXTimer(t *testing.T) {
	timer := NewXTimer()
	timer.Mark("load")
	timer.Mark("invoke")

	out := timer.Print()
	for _, tag := range []string{"load:", "invoke:", "total:"} {
		if !strings.Contains(out, tag) {
			t.Fatalf("expect %s in %s", tag, out)
		}
	}
	if timer.Elapsed() <= 0 {
		t.Fatal("elapsed must be positive")
	}
}
