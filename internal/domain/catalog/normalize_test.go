package catalog

import (
	"reflect"
	"testing"
)

func TestNormalizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Pain Relief", "Pain Relief"},
		{"  Pain   Relief  ", "Pain Relief"},
		{"\tPain\nRelief", "Pain Relief"},
		{"   ", ""},
	}
	for _, tc := range cases {
		if got := NormalizeName(tc.in); got != tc.want {
			t.Errorf("NormalizeName(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestFoldName_CaseInsensitive(t *testing.T) {
	if FoldName("Antibiotics") != FoldName("ANTIBIOTICS ") {
		t.Error("expected folded names to match regardless of case and trailing space")
	}
	if FoldName("Antibiotics") == FoldName("Antidotes") {
		t.Error("expected distinct names to fold differently")
	}
}

func TestSplitCategoryNames(t *testing.T) {
	got := SplitCategoryNames("Pain Relief / Antipyretic")
	want := []string{"Pain Relief", "Antipyretic"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCategoryNames() = %v, want %v", got, want)
	}
}

func TestSplitCategoryNames_DropsEmptyPieces(t *testing.T) {
	got := SplitCategoryNames("/Pain Relief//  /")
	want := []string{"Pain Relief"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitCategoryNames() = %v, want %v", got, want)
	}
}

func TestSplitCategoryNames_KeepsDuplicates(t *testing.T) {
	got := SplitCategoryNames("Vitamins/Vitamins")
	if len(got) != 2 {
		t.Errorf("expected duplicates preserved, got %v", got)
	}
}
