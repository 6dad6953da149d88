package services

import "testing"

func TestRegistryOverridesDisabled(t *testing.T) {
	r, err := NewRegistry("https://example.com/default.csv", newTestLoader(), false, 4)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	if got := r.For("https://example.com/other.csv"); got != r.Default() {
		t.Error("overrides disabled: For should return the default catalog")
	}
	if r.OverrideCount() != 0 {
		t.Errorf("OverrideCount = %d; want 0", r.OverrideCount())
	}
}

func TestRegistryOverrides(t *testing.T) {
	r, err := NewRegistry("https://example.com/default.csv", newTestLoader(), true, 2)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}

	tests := []struct {
		src         string
		wantDefault bool
	}{
		{"", true},
		{"https://example.com/default.csv", true},
		{"/etc/passwd", true},
		{"file:///etc/passwd", true},
		{"https://example.com/a.csv", false},
	}
	for _, tt := range tests {
		if got := r.For(tt.src) == r.Default(); got != tt.wantDefault {
			t.Errorf("For(%q) is default = %v; want %v", tt.src, got, tt.wantDefault)
		}
	}

	a := r.For("https://example.com/a.csv")
	if r.For("https://example.com/a.csv") != a {
		t.Error("the same source should map to the same catalog")
	}
	if a.Source() != "https://example.com/a.csv" {
		t.Errorf("Source() = %q", a.Source())
	}

	r.For("http://example.com/b.csv")
	r.For("http://example.com/c.csv")
	if r.OverrideCount() != 2 {
		t.Errorf("OverrideCount = %d; want capped at 2", r.OverrideCount())
	}
	if r.For("https://example.com/a.csv") == a {
		t.Error("least recently used catalog should have been evicted")
	}
}
