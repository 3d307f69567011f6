package api

import (
	"testing"
	"time"
)

func TestTimeAgo(t *testing.T) {
	now := time.Now()

	cases := []struct {
		age  time.Duration
		want string
	}{
		{30 * time.Second, "0 minutes ago"},
		{1 * time.Minute, "1 minute ago"},
		{5 * time.Minute, "5 minutes ago"},
		{59 * time.Minute, "59 minutes ago"},
		{60 * time.Minute, "1 hour ago"},
		{90 * time.Minute, "1 hour ago"},
		{2 * time.Hour, "2 hours ago"},
		{25 * time.Hour, "25 hours ago"},
	}

	for _, tc := range cases {
		got := timeAgo(now.Add(-tc.age), now)
		if got != tc.want {
			t.Errorf("age %v: expected %q, got %q", tc.age, tc.want, got)
		}
	}
}
