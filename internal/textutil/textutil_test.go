package textutil

import "testing"

func TestSanitizeLabel(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"T1proc", "T1proc"},
		{"  my pipeline  ", "my_pipeline"},
		{"a/b\\c:d", "a_b_c_d"},
		{"__trimmed__", "trimmed"},
		{"rs-fMRI.v2", "rs-fMRI.v2"},
	}
	for _, tc := range cases {
		if got := SanitizeLabel(tc.in); got != tc.want {
			t.Fatalf("SanitizeLabel(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"010_denoise", "Denoise"},
		{"01A_empty_mask", "Empty Mask"},
		{"denoise", "Denoise"},
		{"020_", "020_"},
	}
	for _, tc := range cases {
		if got := DisplayName(tc.in); got != tc.want {
			t.Fatalf("DisplayName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
