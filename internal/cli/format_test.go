package cli

import (
	"testing"
	"time"
)

func TestFormatDurationShort(t *testing.T) {
	cases := []struct {
		d    time.Duration
		want string
	}{
		{0, "0:00"},
		{42 * time.Second, "0:42"},
		{5*time.Minute + 3*time.Second, "5:03"},
		{time.Hour + 2*time.Minute + 9*time.Second, "1:02:09"},
	}
	for _, tc := range cases {
		if got := FormatDurationShort(tc.d); got != tc.want {
			t.Errorf("FormatDurationShort(%v) = %q, want %q", tc.d, got, tc.want)
		}
	}
}

func TestFormatMilliseconds(t *testing.T) {
	cases := []struct {
		ms   int64
		want string
	}{
		{0, "00:00"},
		{999, "00:00"},
		{1000, "00:01"},
		{61500, "01:01"},
		{600000, "10:00"},
	}
	for _, tc := range cases {
		if got := FormatMilliseconds(tc.ms); got != tc.want {
			t.Errorf("FormatMilliseconds(%d) = %q, want %q", tc.ms, got, tc.want)
		}
	}
}

func TestFormatBytes(t *testing.T) {
	cases := []struct {
		n    int64
		want string
	}{
		{512, "512 B"},
		{2048, "2.0 KB"},
		{5 * 1024 * 1024, "5.0 MB"},
		{3 * 1024 * 1024 * 1024, "3.0 GB"},
	}
	for _, tc := range cases {
		if got := FormatBytes(tc.n); got != tc.want {
			t.Errorf("FormatBytes(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}

func TestContentTypeFor(t *testing.T) {
	cases := []struct {
		path string
		want string
	}{
		{"clip.mp4", "video/mp4"},
		{"clip.mov", "video/quicktime"},
		{"clip.mkv", "video/x-matroska"},
		{"audio.mp3", "audio/mpeg"},
		{"unknown.bin", "video/mp4"},
	}
	for _, tc := range cases {
		if got := ContentTypeFor(tc.path); got != tc.want {
			t.Errorf("ContentTypeFor(%q) = %q, want %q", tc.path, got, tc.want)
		}
	}
}
