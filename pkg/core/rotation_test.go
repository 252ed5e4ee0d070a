package core

import (
	"errors"
	"testing"
)

func TestNewRotation_Orthonormal(t *testing.T) {
	directions := []Vec3{
		NewVec3(0, 0, 1),
		NewVec3(1, 0, 0),
		NewVec3(1, 2, 3),
		NewVec3(-0.5, -0.1, 0.2),
		NewVec3(0, 1, 0),  // parallel to up
		NewVec3(0, -5, 0), // anti-parallel to up
	}

	for _, dir := range directions {
		rot, err := NewRotation(dir, WorldUp)
		if err != nil {
			t.Fatalf("NewRotation(%v): unexpected error %v", dir, err)
		}

		axes := []Vec3{rot.Right(), rot.Up(), rot.Forward()}
		for i, axis := range axes {
			if !axis.IsUnit() {
				t.Errorf("direction %v: axis %d = %v is not unit", dir, i, axis)
			}
			for j := i + 1; j < len(axes); j++ {
				if !NearZero(axis.Dot(axes[j])) {
					t.Errorf("direction %v: axes %d and %d are not orthogonal", dir, i, j)
				}
			}
		}

		if !rot.Forward().Equals(dir.Normalize()) {
			t.Errorf("Expected forward %v, got %v", dir.Normalize(), rot.Forward())
		}
	}
}

func TestNewRotation_RightIsHorizontal(t *testing.T) {
	rot, err := NewRotation(NewVec3(3, -1, 2), WorldUp)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !NearZero(rot.Right().Dot(WorldUp)) {
		t.Errorf("Expected right axis perpendicular to up, got %v", rot.Right())
	}
	if rot.Up().Dot(WorldUp) <= 0 {
		t.Errorf("Expected local up to point upwards, got %v", rot.Up())
	}
}

func TestNewRotation_CustomUp(t *testing.T) {
	// With +X as up, looking down +Z tilts the frame by 90 degrees
	rot, err := NewRotation(NewVec3(0, 0, 1), NewVec3(1, 0, 0))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}
	if !rot.Up().Equals(NewVec3(1, 0, 0)) {
		t.Errorf("Expected local up (1,0,0), got %v", rot.Up())
	}
}

func TestNewRotation_ZeroDirection(t *testing.T) {
	_, err := NewRotation(Vec3{}, WorldUp)
	if !errors.Is(err, ErrDirectionZero) {
		t.Errorf("Expected ErrDirectionZero, got %v", err)
	}
}
