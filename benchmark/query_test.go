package benchmark

import (
	"errors"
	"net/url"
	"testing"
)

func TestParseQuery(t *testing.T) {
	tests := []struct {
		raw     string
		want    uint64
		wantErr bool
	}{
		{"", DefaultOps, false},
		{"ops=", DefaultOps, false},
		{"ops=0", 0, false},
		{"ops=1", 1, false},
		{"ops=18446744073709551615", 18446744073709551615, false},
		{"other=7", DefaultOps, false},
		{"ops=%2B5", 5, false},
		{"ops=%2B", 0, true},
		{"ops=%2B%2B5", 0, true},
		{"ops=%2B-5", 0, true},
		{"ops=-1", 0, true},
		{"ops=abc", 0, true},
		{"ops=1.5", 0, true},
		{"ops=18446744073709551616", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			values, err := url.ParseQuery(tt.raw)
			if err != nil {
				t.Fatal(err)
			}
			q, err := ParseQuery(values)
			if tt.wantErr {
				if !errors.Is(err, ErrInvalidOps) {
					t.Fatalf("err = %v, want ErrInvalidOps", err)
				}
				if !IsClientError(err) {
					t.Fatal("IsClientError = false")
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := q.OpsOrDefault(); got != tt.want {
				t.Errorf("ops = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestCheckLimit(t *testing.T) {
	if err := CheckLimit(1<<40, 0); err != nil {
		t.Errorf("unlimited: %v", err)
	}
	if err := CheckLimit(100, 100); err != nil {
		t.Errorf("at limit: %v", err)
	}
	err := CheckLimit(101, 100)
	if !errors.Is(err, ErrOpsLimit) || !IsClientError(err) {
		t.Errorf("over limit: err = %v", err)
	}
}
