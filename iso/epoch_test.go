package iso

import "testing"

func TestFromUnixBalances(t *testing.T) {
	tests := []struct {
		sec, nsec int64
		wantSec   int64
		wantNanos uint32
	}{
		{0, 0, 0, 0},
		{10, 500, 10, 500},
		{10, 1_500_000_000, 11, 500_000_000},
		{10, -1, 9, 999_999_999},
		{0, -1_000_000_001, -2, 999_999_999},
	}
	for _, tt := range tests {
		got := FromUnix(tt.sec, tt.nsec)
		if got.Seconds() != tt.wantSec || got.SubsecondNanos() != tt.wantNanos {
			t.Errorf("FromUnix(%d, %d) = (%d, %d), want (%d, %d)",
				tt.sec, tt.nsec, got.Seconds(), got.SubsecondNanos(), tt.wantSec, tt.wantNanos)
		}
	}
}

func TestAddSub(t *testing.T) {
	e := FromUnix(100, 0)
	if got := e.Add(-1).Sub(e); got != -1 {
		t.Errorf("Add(-1).Sub = %d, want -1", got)
	}
	if got := e.Add(3_500_000_000); got.Seconds() != 103 || got.SubsecondNanos() != 500_000_000 {
		t.Errorf("Add(3.5s) = (%d, %d)", got.Seconds(), got.SubsecondNanos())
	}
	if got := FromUnix(2, 500).Sub(FromUnix(1, 400)); got != 1_000_000_100 {
		t.Errorf("Sub = %d, want 1000000100", got)
	}
}

func TestCompare(t *testing.T) {
	a := FromUnix(1, 500)
	b := FromUnix(1, 600)
	c := FromUnix(2, 0)
	if a.Compare(b) != -1 || b.Compare(a) != 1 || a.Compare(a) != 0 || b.Compare(c) != -1 {
		t.Error("Compare ordering wrong")
	}
}

func TestIsValid(t *testing.T) {
	if !FromUnix(maxEpochSeconds, 0).IsValid() {
		t.Error("positive boundary invalid")
	}
	if FromUnix(maxEpochSeconds, 1).IsValid() {
		t.Error("past positive boundary valid")
	}
	if !FromUnix(-maxEpochSeconds, 0).IsValid() {
		t.Error("negative boundary invalid")
	}
	if !FromUnix(-maxEpochSeconds, 1).IsValid() {
		t.Error("just inside negative boundary invalid")
	}
	if FromUnix(-maxEpochSeconds, -1).IsValid() {
		t.Error("past negative boundary valid")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		e    EpochNanoseconds
		want string
	}{
		{FromUnix(0, 0), "0"},
		{FromUnix(10, 0), "10"},
		{FromUnix(10, 500_000_000), "10.500000000"},
		{FromUnix(-1, 0), "-1"},
		{FromUnix(0, -500_000_000), "-0.500000000"},
		{FromUnix(-2, 500_000_000), "-1.500000000"},
	}
	for _, tt := range tests {
		if got := tt.e.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}
