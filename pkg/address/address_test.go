package address

import (
	"errors"
	"testing"
)

func TestLabel(t *testing.T) {
	tests := []struct {
		name string
		addr Address
		want string
	}{
		{"empty", New(), "CSC"},
		{"side plus", New().WithSide(1), "CSC_SidePlus"},
		{"side minus", New().WithSide(2), "CSC_SideMinus"},
		{"station", New().WithSide(1).WithStation(2), "CSC_SidePlus_Station02"},
		{"ring", New().WithSide(2).WithStation(1).WithRing(3), "CSC_SideMinus_Station01_Ring03"},
		{"chamber", Chamber(1, 2, 1, 17), "CSC_SidePlus_Station02_Ring01_Chamber17"},
		{"full", Chamber(1, 1, 1, 5).WithLayer(3).WithElement(4), "CSC_SidePlus_Station01_Ring01_Chamber05_Layer03_Element04"},
		{"gap", New().WithSide(1).WithChamber(7), "CSC_SidePlus_Chamber07"},
		{"out of range side", New().WithSide(7), "CSC_Side7"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.addr.Label(); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestLabelIgnoresClearedFields(t *testing.T) {
	a := Chamber(1, 2, 1, 9).Without(FieldChamber)
	b := New().WithSide(1).WithStation(2).WithRing(1)

	if a.Label() != b.Label() {
		t.Errorf("cleared field leaked into label: %q vs %q", a.Label(), b.Label())
	}
	if !a.Equal(b) {
		t.Error("addresses with same set fields and values should be equal")
	}
}

func TestLabelDistinctFieldSets(t *testing.T) {
	// Same numeric value in different positions must never collide.
	addrs := []Address{
		New().WithStation(1),
		New().WithRing(1),
		New().WithChamber(1),
		New().WithLayer(1),
		New().WithElement(1),
		New().WithSide(1),
		New().WithStation(1).WithRing(1),
		New().WithRing(1).WithChamber(1),
	}

	seen := make(map[string]int)
	for i, a := range addrs {
		label := a.Label()
		if j, dup := seen[label]; dup {
			t.Errorf("address %d and %d share label %q", j, i, label)
		}
		seen[label] = i
	}
}

func TestLabelUniqueAcrossDetector(t *testing.T) {
	seen := make(map[string]bool)
	for _, a := range Enumerate(FieldChamber) {
		label := a.Label()
		if seen[label] {
			t.Fatalf("duplicate label %q", label)
		}
		seen[label] = true
	}
}

func TestMatches(t *testing.T) {
	pattern := New().WithSide(1).WithStation(2)

	tests := []struct {
		name      string
		candidate Address
		want      bool
	}{
		{"same group", Chamber(1, 2, 3, 5), true},
		{"other side", Chamber(2, 2, 3, 5), false},
		{"other station", Chamber(1, 3, 1, 5), false},
		{"exact", New().WithSide(1).WithStation(2), true},
		{"missing station", New().WithSide(1).WithRing(1), false},
		{"extra layer", Chamber(1, 2, 1, 1).WithLayer(4), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := pattern.Matches(tt.candidate); got != tt.want {
				t.Errorf("Matches(%s) = %v, want %v", tt.candidate, got, tt.want)
			}
		})
	}
}

func TestEmptyPatternMatchesEverything(t *testing.T) {
	if !New().Matches(Chamber(2, 4, 2, 36)) {
		t.Error("empty pattern should match any candidate")
	}
}

func TestString(t *testing.T) {
	tests := []struct {
		addr Address
		want string
	}{
		{New(), "*"},
		{New().WithSide(1), "side=1"},
		{New().WithSide(1).WithRing(3), "side=1,station=*,ring=3"},
		{Chamber(2, 1, 2, 10), "side=2,station=1,ring=2,chamber=10"},
	}

	for _, tt := range tests {
		if got := tt.addr.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestFields(t *testing.T) {
	s := FieldSet(FieldSide, FieldRing)
	if !s.Has(FieldSide) || !s.Has(FieldRing) || s.Has(FieldStation) {
		t.Errorf("unexpected membership for %s", s)
	}
	if s.Len() != 2 {
		t.Errorf("Len() = %d, want 2", s.Len())
	}
	if s.String() != "side|ring" {
		t.Errorf("String() = %q", s.String())
	}
	if Fields(0).String() != "none" {
		t.Errorf("empty set String() = %q", Fields(0).String())
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		addr    Address
		wantErr error
	}{
		{"valid chamber", Chamber(1, 1, 3, 36), nil},
		{"bad side", New().WithSide(3), ErrInvalidSide},
		{"bad station", New().WithStation(5), ErrInvalidStation},
		{"ring beyond station", New().WithStation(2).WithRing(3), ErrInvalidRing},
		{"ring without station", New().WithRing(3), nil},
		{"chamber beyond ring", Chamber(1, 2, 1, 19), ErrInvalidChamber},
		{"chamber without ring", New().WithChamber(36), nil},
		{"bad layer", Chamber(1, 1, 1, 1).WithLayer(7), ErrInvalidLayer},
		{"element beyond ring", Chamber(1, 1, 1, 1).WithElement(5), ErrInvalidElement},
		{"element ok", Chamber(1, 1, 2, 1).WithElement(5), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.addr.Validate()
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() error = %v, want nil", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("Validate() error = %v, want %v", err, tt.wantErr)
			}
		})
	}
}
