package edit_test

import (
	"errors"
	"testing"

	"github.com/nmtools/nmrec/pkg/edit"
)

func TestBuilder(t *testing.T) {
	t.Parallel()

	b := edit.NewBuilder()
	b.ReplaceRange(2, 5, "XYZ")
	b.Insert(0, "pre")
	b.Delete(7, 9)

	if len(b.Edits) != 3 {
		t.Fatalf("Edits = %d, want 3", len(b.Edits))
	}
	if e := b.Edits[1]; e.StartOffset != 0 || e.EndOffset != 0 || e.NewText != "pre" {
		t.Errorf("Insert edit = %+v", e)
	}
	if e := b.Edits[2]; e.StartOffset != 7 || e.EndOffset != 9 || e.NewText != "" {
		t.Errorf("Delete edit = %+v", e)
	}
}

func TestApply(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		edits   []edit.TextEdit
		want    string
	}{
		{
			name:    "no edits",
			content: "COMRES=5",
			want:    "COMRES=5",
		},
		{
			name:    "replace middle",
			content: "COMRES=5 PROTECT",
			edits:   []edit.TextEdit{{StartOffset: 7, EndOffset: 8, NewText: "12"}},
			want:    "COMRES=12 PROTECT",
		},
		{
			name:    "insert at start",
			content: "PROTECT",
			edits:   []edit.TextEdit{{StartOffset: 0, EndOffset: 0, NewText: "FASTDER "}},
			want:    "FASTDER PROTECT",
		},
		{
			name:    "delete suffix",
			content: "COMRES=5 PROTECT",
			edits:   []edit.TextEdit{{StartOffset: 8, EndOffset: 16, NewText: ""}},
			want:    "COMRES=5",
		},
		{
			name:    "multiple ordered edits",
			content: "abcdef",
			edits: []edit.TextEdit{
				{StartOffset: 0, EndOffset: 1, NewText: "A"},
				{StartOffset: 2, EndOffset: 3, NewText: "C"},
				{StartOffset: 5, EndOffset: 6, NewText: "F"},
			},
			want: "AbCdeF",
		},
		{
			name:    "adjacent edits",
			content: "abcd",
			edits: []edit.TextEdit{
				{StartOffset: 0, EndOffset: 2, NewText: "X"},
				{StartOffset: 2, EndOffset: 4, NewText: "Y"},
			},
			want: "XY",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := edit.Apply([]byte(tt.content), tt.edits)
			if string(got) != tt.want {
				t.Errorf("Apply = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestValidate(t *testing.T) {
	t.Parallel()

	valid := []edit.TextEdit{{StartOffset: 0, EndOffset: 4, NewText: "x"}}
	if err := edit.Validate(valid, 4); err != nil {
		t.Errorf("Validate(valid) = %v", err)
	}

	tests := []struct {
		name string
		edit edit.TextEdit
	}{
		{name: "negative start", edit: edit.TextEdit{StartOffset: -1, EndOffset: 2}},
		{name: "end before start", edit: edit.TextEdit{StartOffset: 3, EndOffset: 1}},
		{name: "end past content", edit: edit.TextEdit{StartOffset: 0, EndOffset: 10}},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			err := edit.Validate([]edit.TextEdit{tt.edit}, 4)
			var verr *edit.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Validate = %v, want ValidationError", err)
			}
		})
	}
}

func TestDetectConflicts(t *testing.T) {
	t.Parallel()

	overlapping := []edit.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 3, EndOffset: 8},
	}
	err := edit.DetectConflicts(overlapping)
	var cerr *edit.ConflictError
	if !errors.As(err, &cerr) {
		t.Fatalf("DetectConflicts = %v, want ConflictError", err)
	}

	adjacent := []edit.TextEdit{
		{StartOffset: 0, EndOffset: 5},
		{StartOffset: 5, EndOffset: 8},
	}
	if err := edit.DetectConflicts(adjacent); err != nil {
		t.Errorf("DetectConflicts(adjacent) = %v, want nil", err)
	}
}

func TestPrepare(t *testing.T) {
	t.Parallel()

	edits := []edit.TextEdit{
		{StartOffset: 6, EndOffset: 8, NewText: "b"},
		{StartOffset: 0, EndOffset: 2, NewText: "a"},
	}
	got, err := edit.Prepare(edits, 10)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	if got[0].StartOffset != 0 || got[1].StartOffset != 6 {
		t.Errorf("Prepare did not sort: %+v", got)
	}
	// Input slice is left untouched.
	if edits[0].StartOffset != 6 {
		t.Errorf("Prepare mutated its input: %+v", edits)
	}

	if _, err := edit.Prepare([]edit.TextEdit{{StartOffset: 0, EndOffset: 99}}, 10); err == nil {
		t.Error("Prepare accepted out-of-range edit")
	}
}
