package panel

import (
	"testing"
	"time"
)

func TestScheduleValidation(t *testing.T) {
	if _, err := NewSchedule(0, time.Microsecond); err == nil {
		t.Fatal("accepted zero planes")
	}
	if _, err := NewSchedule(17, time.Microsecond); err == nil {
		t.Fatal("accepted more planes than channel bits")
	}
	if _, err := NewSchedule(8, 0); err == nil {
		t.Fatal("accepted zero base hold")
	}
}

func TestOnTimeMonotonic(t *testing.T) {
	s, err := NewSchedule(8, 40*time.Microsecond)
	if err != nil {
		t.Fatal(err)
	}
	prev := time.Duration(-1)
	for v := 0; v <= 0xFFFF; v++ {
		on := s.OnTime(uint16(v))
		if on < prev {
			t.Fatalf("on-time decreased at %#x: %v < %v", v, on, prev)
		}
		prev = on
	}
}

func TestFullDepthOnTimeProportional(t *testing.T) {
	s, err := NewSchedule(16, time.Nanosecond)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []uint16{0, 1, 2, 0x0100, 0x8000, 0xFFFF} {
		want := time.Duration(v) * time.Nanosecond
		if got := s.OnTime(v); got != want {
			t.Fatalf("OnTime(%#x) = %v, want %v", v, got, want)
		}
	}
}

func TestReducedDepthDiscardsLowBits(t *testing.T) {
	s, err := NewSchedule(8, time.Microsecond)
	if err != nil {
		t.Fatal(err)
	}
	if s.OnTime(0x00FF) != 0 {
		t.Fatal("low 8 bits contributed on-time at 8 planes")
	}
	if s.OnTime(0x0100) == 0 {
		t.Fatal("bit 8 discarded at 8 planes")
	}
}

func TestPlaneWeightsDouble(t *testing.T) {
	s, err := NewSchedule(8, 40*time.Microsecond)
	if err != nil {
		t.Fatal(err)
	}
	for p := 1; p < s.Planes(); p++ {
		if s.Hold(p) != 2*s.Hold(p-1) {
			t.Fatalf("plane %d hold %v is not double plane %d hold %v", p, s.Hold(p), p-1, s.Hold(p-1))
		}
	}
}

func TestOutOfRangePlanePanics(t *testing.T) {
	s, _ := NewSchedule(8, time.Microsecond)
	for _, plane := range []int{-1, 8} {
		func() {
			defer func() {
				if recover() == nil {
					t.Fatalf("plane %d did not panic", plane)
				}
			}()
			s.Bit(0xFFFF, plane)
		}()
	}
}
