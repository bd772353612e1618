package keyword

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/hyperjump/cancerqa/internal/models"
)

func newTestExtractor(t *testing.T, opts ...ExtractorOption) *Extractor {
	t.Helper()
	x, err := NewExtractor(opts...)
	if err != nil {
		t.Fatalf("NewExtractor: %v", err)
	}
	return x
}

func TestExtract_English(t *testing.T) {
	x := newTestExtractor(t)
	tests := []struct {
		name string
		text string
		want []string
	}{
		{"stop words removed", "What are the early signs of breast cancer?", []string{"breast", "cancer", "early", "signs"}},
		{"lower-cased", "HPV Transmission", []string{"hpv", "transmission"}},
		{"duplicates collapsed", "cancer Cancer CANCER", []string{"cancer"}},
		{"punctuation dropped", "cancer , ; ! ?", []string{"cancer"}},
		{"only stop words", "what is the", []string{}},
		{"empty", "", []string{}},
		{"whitespace", "   \t\n", []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.text, models.English).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_Bengali(t *testing.T) {
	x := newTestExtractor(t)
	got := x.Extract("স্তন ক্যান্সারের প্রাথমিক লক্ষণগুলি কী?", models.Bengali)
	if got.Len() != 5 {
		t.Fatalf("expected 5 tokens, got %d: %v", got.Len(), got.Sorted())
	}
	for _, want := range []string{"স্তন", "ক্যান্সারের", "প্রাথমিক", "লক্ষণগুলি", "কী"} {
		if !got.Contains(want) {
			t.Errorf("missing token %q in %v", want, got.Sorted())
		}
	}
	if got.Contains("?") {
		t.Error("punctuation token kept")
	}
}

func TestExtract_BengaliDanda(t *testing.T) {
	x := newTestExtractor(t)
	got := x.Extract("স্তন ক্যান্সার।", models.Bengali)
	want := NewTokenSet("স্তন", "ক্যান্সার")
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestExtract_BengaliKeepsCaseAndStopWords(t *testing.T) {
	x := newTestExtractor(t)
	got := x.Extract("HPV the কী", models.Bengali)
	want := NewTokenSet("HPV", "the", "কী")
	if !got.Equal(want) {
		t.Errorf("got %v, want %v", got.Sorted(), want.Sorted())
	}
}

func TestExtract_InvalidUTF8KeepsLaterTokens(t *testing.T) {
	x := newTestExtractor(t)
	tests := []struct {
		name string
		text string
		lang models.Language
		want []string
	}{
		{"english", "breast \xff cancer HPV screening", models.English, []string{"breast", "cancer", "hpv", "screening"}},
		{"english glued", "breast\xffcancer", models.English, []string{"breast", "cancer"}},
		{"bengali", "স্তন \xff ক্যান্সার", models.Bengali, []string{"ক্যান্সার", "স্তন"}},
		{"only invalid", "\xff\xfe", models.English, []string{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := x.Extract(tt.text, tt.lang).Sorted()
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Extract(%q) = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestExtract_NFCEquivalentInputs(t *testing.T) {
	x := newTestExtractor(t)
	composed := x.Extract("\u09df", models.Bengali)
	decomposed := x.Extract("\u09af\u09bc", models.Bengali)
	if composed.Len() != 1 || !composed.Equal(decomposed) {
		t.Errorf("canonically equivalent inputs differ: %v vs %v", composed.Sorted(), decomposed.Sorted())
	}
}

func TestExtract_Pure(t *testing.T) {
	x := newTestExtractor(t)
	inputs := []struct {
		text string
		lang models.Language
	}{
		{"How is HPV transmitted?", models.English},
		{"কীভাবে এইচপিভি সংক্রমণিত?", models.Bengali},
		{"", models.English},
	}
	for _, in := range inputs {
		first := x.Extract(in.text, in.lang)
		second := x.Extract(in.text, in.lang)
		if !first.Equal(second) {
			t.Errorf("Extract(%q) not stable: %v vs %v", in.text, first.Sorted(), second.Sorted())
		}
	}
}

func TestNewExtractor_CustomStopWords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stop.txt")
	content := "# project stop words\nPlease\ntell | trailing comment\n"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}
	x := newTestExtractor(t, WithStopWordsFile(path), WithStopWords("kindly", "  "))
	got := x.Extract("Please kindly tell me about mammograms", models.English).Sorted()
	want := []string{"mammograms"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
	if got := x.Extract("PLEASE the cancer", models.English).Sorted(); !reflect.DeepEqual(got, []string{"cancer"}) {
		t.Errorf("custom and built-in stop words: got %v", got)
	}
}

func TestNewExtractor_MissingStopWordsFile(t *testing.T) {
	if _, err := NewExtractor(WithStopWordsFile(filepath.Join(t.TempDir(), "missing.txt"))); err == nil {
		t.Error("expected error for missing stop words file")
	}
}

func TestTokenSet(t *testing.T) {
	s := NewTokenSet("b", "a", "b")
	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	if !reflect.DeepEqual(s.Sorted(), []string{"a", "b"}) {
		t.Errorf("Sorted = %v", s.Sorted())
	}
	if !s.Equal(NewTokenSet("a", "b")) || s.Equal(NewTokenSet("a")) || s.Equal(NewTokenSet("a", "c")) {
		t.Error("Equal mismatch")
	}
}
