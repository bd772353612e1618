package utils

import (
	"reflect"
	"testing"
)

func TestTruncate(t *testing.T) {
	if Truncate("hello", 10) != "hello" {
		t.Error("short string unchanged")
	}
	if Truncate("hello world", 5) != "hello..." {
		t.Errorf("got %s", Truncate("hello world", 5))
	}
	if Truncate("x", 0) != "x" {
		t.Error("maxLen 0 returns as-is")
	}
	if got := Truncate("স্তন ক্যান্সার", 4); got != "স্তন..." {
		t.Errorf("bengali truncate = %q", got)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" a.xlsx, ,b.xlsx,")
	want := []string{"a.xlsx", "b.xlsx"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitList = %v, want %v", got, want)
	}
	if SplitList("") != nil {
		t.Error("empty input should give nil")
	}
}
