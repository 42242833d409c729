package usecase

import "testing"

func TestCorrect(t *testing.T) {
	corrector := NewQueryCorrector(CorrectorConfig{})

	testCases := []struct {
		name  string
		query string
		want  string
	}{
		{"corrects close misspelling", "samsun", "samsung"},
		{"corrects transposition", "ipohne", "iphone"},
		{"exact vocabulary hit passes through", "iphone", "iphone"},
		{"case-insensitive exact hit keeps original casing", "IPHONE", "IPHONE"},
		{"distant query passes through", "zapatillas running", "zapatillas running"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := corrector.Correct(tc.query); got != tc.want {
				t.Errorf("Correct(%q) = %q, want %q", tc.query, got, tc.want)
			}
		})
	}
}

func TestCorrectWithCustomVocabulary(t *testing.T) {
	corrector := NewQueryCorrector(CorrectorConfig{
		Vocabulary: []string{"refrigeradora", "lavadora"},
		Threshold:  80,
	})

	if got := corrector.Correct("refrigeradra"); got != "refrigeradora" {
		t.Errorf("Correct = %q, want refrigeradora", got)
	}
	if got := corrector.Correct("iphone"); got != "iphone" {
		t.Errorf("Correct = %q, want passthrough for out-of-vocabulary query", got)
	}
}

func TestCorrectNeverRejects(t *testing.T) {
	corrector := NewQueryCorrector(CorrectorConfig{})

	for _, query := range []string{"", "xq9z", "producto totalmente desconocido"} {
		if got := corrector.Correct(query); got == "" && query != "" {
			t.Errorf("Correct(%q) returned empty, want passthrough", query)
		}
	}
}
