package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"accented genre phrase", "Tìm phim Hành Động", "tim phim action"},
		{"folded genre phrase", "tim phim hanh dong moi nhat", "tim phim action moi nhat"},
		{"longest phrase wins", "khoa hoc vien tuong", "sci-fi"},
		{"english passes through", "Best horror films from 2024", "best horror films from 2024"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalizeIdempotent(t *testing.T) {
	inputs := []string{
		"Tìm phim hành động mới nhất năm 2024",
		"phim kinh dị hay nhất",
		"khoa học viễn tưởng",
		"Best comedy films",
		"",
	}
	for _, in := range inputs {
		once := Normalize(in)
		if twice := Normalize(once); twice != once {
			t.Errorf("Normalize not idempotent for %q: %q != %q", in, once, twice)
		}
	}
}

func TestFold(t *testing.T) {
	tests := []struct{ in, want string }{
		{"hành động", "hanh dong"},
		{"gia đình", "gia dinh"},
		{"Đạo diễn", "Dao dien"},
		{"plain ascii", "plain ascii"},
	}
	for _, tt := range tests {
		if got := Fold(tt.in); got != tt.want {
			t.Errorf("Fold(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
