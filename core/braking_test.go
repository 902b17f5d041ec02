package core

import "testing"

func TestBrakingDistanceClosedFormWithZeroJerk(t *testing.T) {
	d, ok := brakingDistance(1000, 16, -20000, 0)
	if !ok {
		t.Fatal("expected a solution with zero jerk")
	}
	want := (1000.0 - 16) * (1000 - 16) / (2 * 20000)
	if d < want*0.99 || d > want*1.01 {
		t.Fatalf("brakingDistance() = %v, want ~%v", d, want)
	}
}

func TestBrakingDistanceZeroAtMinVelocity(t *testing.T) {
	d, ok := brakingDistance(16, 16, -20000, -400000)
	if !ok {
		t.Fatal("expected a solution when already at vMin")
	}
	if d != 0 {
		t.Fatalf("brakingDistance() = %v, want 0 when vCurrent == vMin", d)
	}
}

func TestBrakingDistanceIncreasesWithVelocity(t *testing.T) {
	d1, ok1 := brakingDistance(1000, 16, -20000, -400000)
	d2, ok2 := brakingDistance(2000, 16, -20000, -400000)
	if !ok1 || !ok2 {
		t.Fatal("expected solutions for both velocities")
	}
	if d2 <= d1 {
		t.Fatalf("braking distance at higher velocity (%v) should exceed lower velocity (%v)", d2, d1)
	}
}
