package sprite

import "testing"

func TestSelectVariant(t *testing.T) {
	n := NewFormatNegotiator()
	n.probe = func() bool { return true }

	tests := []struct {
		name    string
		locator string
		want    string
	}{
		{"png swapped", "assets/tavern.png", "assets/tavern.webp"},
		{"uppercase extension swapped", "assets/TAVERN.PNG", "assets/TAVERN.webp"},
		{"url swapped", "https://cdn.example.com/sprites/forge.png", "https://cdn.example.com/sprites/forge.webp"},
		{"jpeg unchanged", "assets/photo.jpg", "assets/photo.jpg"},
		{"webp unchanged", "assets/tavern.webp", "assets/tavern.webp"},
		{"no extension unchanged", "assets/tavern", "assets/tavern"},
		{"empty unchanged", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := n.SelectVariant(tt.locator); got != tt.want {
				t.Errorf("SelectVariant(%q): got %q, want %q", tt.locator, got, tt.want)
			}
		})
	}
}

func TestSelectVariant_AlternateUnsupported(t *testing.T) {
	n := NewFormatNegotiator()
	n.probe = func() bool { return false }

	if got := n.SelectVariant("assets/tavern.png"); got != "assets/tavern.png" {
		t.Errorf("SelectVariant with unsupported alternate: got %q, want original", got)
	}
}

func TestSelectVariant_ProbeRunsOnce(t *testing.T) {
	calls := 0
	n := NewFormatNegotiator()
	n.probe = func() bool {
		calls++
		return true
	}

	for i := 0; i < 5; i++ {
		n.SelectVariant("assets/tavern.png")
	}

	if calls != 1 {
		t.Errorf("probe ran %d times, want 1", calls)
	}
}

func TestSelectVariant_SkipsProbeForNonBaseExtension(t *testing.T) {
	calls := 0
	n := NewFormatNegotiator()
	n.probe = func() bool {
		calls++
		return true
	}

	n.SelectVariant("assets/photo.jpg")
	if calls != 0 {
		t.Error("probe ran for a locator without the base extension")
	}
}

func TestDecodeProbeImage(t *testing.T) {
	// The embedded reference image must decode with the bundled WebP
	// decoder, otherwise every runtime would be negotiated down to PNG.
	if !decodeProbeImage() {
		t.Error("embedded probe image failed to decode")
	}
}
