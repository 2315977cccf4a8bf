package cloud

import "testing"

func TestPaletteThemes(t *testing.T) {
	want := []string{"blue", "green", "mono", "orange", "pastel", "pink", "purple", "sunset"}
	got := Themes()
	if len(got) != len(want) {
		t.Fatalf("Themes() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Themes()[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	for _, name := range want {
		if !ValidTheme(name) {
			t.Errorf("ValidTheme(%q) = false", name)
		}
		if len(Palette(name)) < 6 {
			t.Errorf("palette %q has %d colors, want >= 6", name, len(Palette(name)))
		}
	}
}

func TestPaletteUnknownFallsBack(t *testing.T) {
	got := Palette("neon")
	want := Palette(DefaultTheme)
	if len(got) != len(want) {
		t.Fatalf("unknown theme palette len = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Palette(unknown)[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if ValidTheme("neon") {
		t.Error("ValidTheme(neon) = true, want false")
	}
}

func TestColorCycles(t *testing.T) {
	p := Palette("blue")
	k := len(p)
	for rank := 0; rank < 3*k; rank++ {
		if Color(rank, p) != Color(rank+k, p) {
			t.Errorf("Color(%d) != Color(%d)", rank, rank+k)
		}
		if Color(rank, p) != p[rank%k] {
			t.Errorf("Color(%d) = %q, want %q", rank, Color(rank, p), p[rank%k])
		}
	}
}

func TestColorDegenerateInputs(t *testing.T) {
	if got := Color(0, nil); got == "" {
		t.Error("Color with nil palette returned empty string")
	}
	if got := Color(-3, Palette("mono")); got != Palette("mono")[0] {
		t.Errorf("Color with negative rank = %q, want first entry", got)
	}
}
