package app

import (
	"reflect"
	"testing"
)

func TestListenAddr(t *testing.T) {
	cases := map[string]string{"8080": ":8080", ":9000": ":9000", " 3000 ": ":3000"}
	for in, want := range cases {
		got, err := ListenAddr(in)
		if err != nil {
			t.Fatalf("ListenAddr(%q): unexpected err: %v", in, err)
		}
		if got != want {
			t.Fatalf("ListenAddr(%q): expected %q, got %q", in, want, got)
		}
	}
	if _, err := ListenAddr("  "); err == nil {
		t.Fatalf("expected error for empty port")
	}
}

func TestSplitOrigins(t *testing.T) {
	got := splitOrigins("https://a.example, https://b.example ,,")
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	if got := splitOrigins(""); !reflect.DeepEqual(got, []string{"*"}) {
		t.Fatalf("expected wildcard default, got %v", got)
	}
}
