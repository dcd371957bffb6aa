package utils

import (
	"testing"
	"time"
)

func TestNumber(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
	}

	for _, c := range cases {
		if got := Number(c.in); got != c.want {
			t.Errorf("Number(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestBytes(t *testing.T) {
	cases := []struct {
		in   int64
		want string
	}{
		{0, "0B"},
		{512, "512B"},
		{4096, "4.0KiB"},
		{1536 * 1024, "1.5MiB"},
		{2 * 1024 * 1024 * 1024, "2.0GiB"},
	}

	for _, c := range cases {
		if got := Bytes(c.in); got != c.want {
			t.Errorf("Bytes(%d) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestDuration(t *testing.T) {
	cases := []struct {
		in   time.Duration
		want string
	}{
		{500 * time.Millisecond, "0s"},
		{5200 * time.Millisecond, "5.2s"},
		{3*time.Minute + 5200*time.Millisecond, "3m5.2s"},
		{2*time.Hour + 15*time.Minute, "2h15m"},
	}

	for _, c := range cases {
		if got := Duration(c.in); got != c.want {
			t.Errorf("Duration(%v) = %q, want %q", c.in, got, c.want)
		}
	}
}
