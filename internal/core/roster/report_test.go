package roster

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/JonMunkholm/portal/internal/models"
)

func TestBuildMessage(t *testing.T) {
	tests := []struct {
		name      string
		label     string
		succeeded int
		failed    int
		errs      []string
		want      string
	}{
		{
			name:      "all succeeded",
			label:     "students",
			succeeded: 4,
			want:      "Successfully added 4 students.",
		},
		{
			name:      "faculty with failures",
			label:     "faculty members",
			succeeded: 1,
			failed:    2,
			errs:      []string{"Row 2: a", "Row 3: b"},
			want:      "Successfully added 1 faculty members. 2 failed. Errors: Row 2: a; Row 3: b",
		},
		{
			name:      "nothing added",
			label:     "students",
			succeeded: 0,
			failed:    1,
			errs:      []string{"Row 2: Username 001 already exists"},
			want:      "Successfully added 0 students. 1 failed. Errors: Row 2: Username 001 already exists",
		},
		{
			name:      "failures without messages",
			label:     "students",
			succeeded: 2,
			failed:    1,
			want:      "Successfully added 2 students. 1 failed.",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildMessage(tt.label, tt.succeeded, tt.failed, tt.errs); got != tt.want {
				t.Errorf("BuildMessage() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReport_MessageShowsFirstFiveErrors(t *testing.T) {
	var existing []models.User
	var rows [][]string
	for i := 0; i < 7; i++ {
		rollno := fmt.Sprintf("7%02d", i)
		existing = append(existing, models.User{Username: rollno, Role: models.RoleStudent})
		rows = append(rows, student("Dup Student", rollno))
	}
	rows = append(rows, student("New Student", "800"))

	im := NewImporter(newMemStore(existing...))
	report, err := im.Import(context.Background(), KindStudent, studentHeaders, rows)
	if err != nil {
		t.Fatalf("Import() error = %v", err)
	}
	if report.Failed != 7 {
		t.Fatalf("Failed = %d, want 7", report.Failed)
	}

	msg := report.Message()
	if !strings.HasPrefix(msg, "Successfully added 1 students. 7 failed. Errors: ") {
		t.Errorf("Message() prefix wrong: %q", msg)
	}
	if got := strings.Count(msg, "already exists"); got != 5 {
		t.Errorf("error entries in message = %d, want 5", got)
	}
	if strings.Contains(msg, "Row 7:") || strings.Contains(msg, "Row 8:") {
		t.Errorf("Message() includes errors beyond the fifth: %q", msg)
	}
	if got := len(report.Errors()); got != 7 {
		t.Errorf("len(Errors()) = %d, want 7", got)
	}
}
