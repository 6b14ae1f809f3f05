package timing

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"facesynth/internal/resolver"

	"github.com/google/go-cmp/cmp"
)

const sample = `eu gostar cafe
T0,S10,T40,S46,T70,S75,T100,F110

voce casado ?
T0,S10,T30,S36,T60,S70,T80,F90
`

func TestParse(t *testing.T) {
	got, err := Parse(strings.NewReader(sample))
	if err != nil {
		t.Fatal(err)
	}
	want := []Sentence{
		{
			Tokens:     []string{"EU", "GOSTAR", "CAFE"},
			Timestamps: []int{0, 10, 40, 46, 70, 75, 100, 110},
		},
		{
			Tokens:     []string{"VOCE", "CASADO", "?"},
			Timestamps: []int{0, 10, 30, 36, 60, 70, 80, 90},
		},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Parse mismatch (-want +got):\n%s", diff)
	}
}

func TestSentence_Slots(t *testing.T) {
	s := Sentence{
		Tokens:     []string{"EU", "GOSTAR", "CAFE"},
		Timestamps: []int{0, 10, 40, 46, 70, 75, 100, 110},
	}
	got, err := s.Slots()
	if err != nil {
		t.Fatal(err)
	}
	want := []resolver.SignSlot{
		{Sign: "EU", Start: 10, Duration: 30, Left: 10, Right: 6},
		{Sign: "GOSTAR", Start: 46, Duration: 24, Left: 6, Right: 5},
		{Sign: "CAFE", Start: 75, Duration: 25, Left: 5, Right: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
}

func TestSentence_SlotsQuestionMark(t *testing.T) {
	sentences, err := Parse(strings.NewReader("voce casado ?\nT0,S10,T30,S36,T60,S70,T80,F90\n"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := sentences[0].Slots()
	if err != nil {
		t.Fatal(err)
	}
	want := []resolver.SignSlot{
		{Sign: "VOCE", Start: 10, Duration: 20, Left: 10, Right: 6},
		{Sign: "CASADO", Start: 36, Duration: 24, Left: 6, Right: 10},
		{Sign: "?", Start: 70, Duration: 10, Left: 10, Right: 10},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Slots mismatch (-want +got):\n%s", diff)
	}
}

func TestSentence_SlotsErrors(t *testing.T) {
	tests := []struct {
		name string
		s    Sentence
	}{
		{"no signs", Sentence{Timestamps: []int{0, 1}}},
		{"too few timestamps", Sentence{Tokens: []string{"A"}, Timestamps: []int{0, 5, 10}}},
		{"extra timestamps", Sentence{Tokens: []string{"A"}, Timestamps: []int{0, 5, 10, 12, 14, 16}}},
		{"untimed question mark", Sentence{Tokens: []string{"A", "?"}, Timestamps: []int{0, 5, 10, 12}}},
		{"decreasing", Sentence{Tokens: []string{"A"}, Timestamps: []int{0, 5, 3, 8}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.s.Slots(); !errors.Is(err, ErrMalformed) {
				t.Errorf("err = %v, want ErrMalformed", err)
			}
		})
	}
}

func TestParse_Malformed(t *testing.T) {
	tests := []string{
		"A B\nT0,Sx\n",
		"A B\nT0,,S4\n",
		"A B\n",
		"? A\nT0,S1,T2,S3,T4,F5\n",
		"A ? B\nT0,S1,T2,S3,T4,S5,T6,F7\n",
	}
	for _, in := range tests {
		if _, err := Parse(strings.NewReader(in)); !errors.Is(err, ErrMalformed) {
			t.Errorf("Parse(%q) err = %v, want ErrMalformed", in, err)
		}
	}
}

func TestLoadAndPick(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sentencas.txt")
	if err := os.WriteFile(path, []byte(sample), 0644); err != nil {
		t.Fatal(err)
	}
	sentences, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	s, err := Pick(sentences, 1)
	if err != nil {
		t.Fatal(err)
	}
	if s.Tokens[0] != "VOCE" {
		t.Errorf("Tokens[0] = %q, want VOCE", s.Tokens[0])
	}
	if _, err := Pick(sentences, 2); !errors.Is(err, ErrMalformed) {
		t.Errorf("err = %v, want ErrMalformed", err)
	}
}
