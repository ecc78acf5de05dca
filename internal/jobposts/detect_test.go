package jobposts

import "testing"

func TestDetect(t *testing.T) {
	cases := []struct {
		name   string
		prompt string
		want   FieldDetection
	}{
		{name: "empty", prompt: "", want: FieldDetection{}},
		{
			name:   "role only",
			prompt: "Hiring a React Developer",
			want:   FieldDetection{HasRole: true},
		},
		{
			name:   "full prompt",
			prompt: "Senior Go engineer, 5 years, Kubernetes stack, $150k salary, remote in EU",
			want:   FieldDetection{HasRole: true, HasExperience: true, HasSkills: true, HasCompensation: true, HasLocation: true},
		},
		{
			name:   "case insensitive",
			prompt: "HYBRID OFFICE, BONUS",
			want:   FieldDetection{HasCompensation: true, HasLocation: true},
		},
		{
			name:   "substring match",
			prompt: "leadership",
			want:   FieldDetection{HasRole: true},
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Detect(tc.prompt); got != tc.want {
				t.Fatalf("Detect(%q) = %+v, want %+v", tc.prompt, got, tc.want)
			}
		})
	}
}

func TestDetectIsStateless(t *testing.T) {
	first := Detect("remote designer")
	_ = Detect("salary $100k, 3 years experience")
	if again := Detect("remote designer"); again != first {
		t.Fatalf("detection depends on history: %+v vs %+v", first, again)
	}
}

func TestChecklistLabels(t *testing.T) {
	items := FieldDetection{HasSkills: true}.Checklist()
	want := []string{"Job Title", "Experience Level", "Key Skills", "Compensation", "Location/Remote"}
	if len(items) != len(want) {
		t.Fatalf("expected %d items, got %d", len(want), len(items))
	}
	for i, item := range items {
		if item.Label != want[i] {
			t.Fatalf("item %d: expected %q, got %q", i, want[i], item.Label)
		}
		if item.Active != (item.Label == "Key Skills") {
			t.Fatalf("item %q has wrong active flag", item.Label)
		}
	}
}
