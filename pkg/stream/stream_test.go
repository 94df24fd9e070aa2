package stream_test

import (
	"testing"

	"github.com/nmtools/nmrec/pkg/stream"
)

const sampleControl = "; model 42\n$PROBLEM test run\n$ABBREVIATED COMRES=5\n$SIZES LTH=40\n"

func TestSplit(t *testing.T) {
	t.Parallel()

	s := stream.Split("run1.mod", []byte(sampleControl))

	if got := s.Preamble.Text(s.Content); string(got) != "; model 42\n" {
		t.Errorf("Preamble = %q", got)
	}
	if len(s.Records) != 3 {
		t.Fatalf("records = %d, want 3", len(s.Records))
	}

	wantRaw := []string{"PROBLEM", "ABBREVIATED", "SIZES"}
	for i, want := range wantRaw {
		if got := s.Records[i].RawName; got != want {
			t.Errorf("record %d RawName = %q, want %q", i, got, want)
		}
		// Split resolves nothing.
		if s.Records[i].Name != "" {
			t.Errorf("record %d Name = %q, want empty", i, s.Records[i].Name)
		}
	}

	if got := s.Records[1].Span.Text(s.Content); string(got) != "$ABBREVIATED COMRES=5\n" {
		t.Errorf("record 1 span = %q", got)
	}
	if got := s.Records[1].Body.Text(s.Content); string(got) != " COMRES=5\n" {
		t.Errorf("record 1 body = %q", got)
	}
}

func TestSplitNoRecords(t *testing.T) {
	t.Parallel()

	s := stream.Split("", []byte("just a comment\nno markers here\n"))
	if len(s.Records) != 0 {
		t.Fatalf("records = %d, want 0", len(s.Records))
	}
	if got := s.Preamble.Text(s.Content); string(got) != "just a comment\nno markers here\n" {
		t.Errorf("Preamble = %q", got)
	}
}

func TestSplitIndentedMarker(t *testing.T) {
	t.Parallel()

	s := stream.Split("", []byte("  $SIZES LTH=40\n"))
	if len(s.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(s.Records))
	}
	rec := s.Records[0]
	if rec.RawName != "SIZES" {
		t.Errorf("RawName = %q", rec.RawName)
	}
	// Indentation stays inside the record span.
	if rec.Span.StartOffset != 0 {
		t.Errorf("Span.StartOffset = %d, want 0", rec.Span.StartOffset)
	}
}

func TestParse(t *testing.T) {
	t.Parallel()

	s := stream.Parse("run1.mod", []byte(sampleControl))

	if s.Records[0].Parsed() {
		t.Error("PROBLEM record parsed; should stay opaque")
	}
	if s.Records[0].Name != "" {
		t.Errorf("PROBLEM Name = %q, want empty", s.Records[0].Name)
	}

	abb := s.Records[1]
	if !abb.Parsed() {
		t.Fatal("ABBREVIATED record not parsed")
	}
	if abb.Name != "ABBREVIATED" {
		t.Errorf("Name = %q", abb.Name)
	}
	if idx := abb.Tree.Find("COMRES"); idx != 0 {
		t.Errorf("Find(COMRES) = %d", idx)
	}

	if !s.Records[2].Parsed() || s.Records[2].Name != "SIZES" {
		t.Errorf("SIZES record: parsed=%v name=%q", s.Records[2].Parsed(), s.Records[2].Name)
	}
}

func TestParseAbbreviatedMarker(t *testing.T) {
	t.Parallel()

	s := stream.Parse("", []byte("$ABB COMRES=5\n"))
	if len(s.Records) != 1 {
		t.Fatalf("records = %d, want 1", len(s.Records))
	}
	if s.Records[0].Name != "ABBREVIATED" {
		t.Errorf("Name = %q, want ABBREVIATED", s.Records[0].Name)
	}
	if !s.Records[0].Parsed() {
		t.Error("abbreviated marker did not resolve to a parsed record")
	}
}

func TestParseFailureKeepsRecordOpaque(t *testing.T) {
	t.Parallel()

	s := stream.Parse("run1.mod", []byte("$ABBREVIATED COMRES=ABC\n$SIZES LTH=40\n"))

	bad := s.Records[0]
	if bad.Parsed() {
		t.Error("malformed record still parsed")
	}
	if bad.Err == nil {
		t.Fatal("malformed record has no error")
	}
	if bad.Name != "ABBREVIATED" {
		t.Errorf("Name = %q; resolution should survive parse failure", bad.Name)
	}
	if !s.Records[1].Parsed() {
		t.Error("record after failure not parsed")
	}
	if !s.HasErrors() {
		t.Error("HasErrors = false")
	}
}

func TestRecordsOfType(t *testing.T) {
	t.Parallel()

	s := stream.Parse("", []byte("$SIZES LTH=40\n$PROBLEM x\n$SIZES LVR=60\n"))
	got := s.RecordsOfType("SIZES")
	if len(got) != 2 {
		t.Fatalf("RecordsOfType = %d records, want 2", len(got))
	}
	if got[0].Tree.Find("LTH") != 0 || got[1].Tree.Find("LVR") != 0 {
		t.Error("RecordsOfType returned records out of order")
	}
}

func TestDiagnosticsPositions(t *testing.T) {
	t.Parallel()

	s := stream.Parse("run1.mod", []byte("$PROBLEM x\n$ABBREVIATED COMRES=ABC\n"))

	diags := s.Diagnostics()
	if len(diags) != 1 {
		t.Fatalf("diagnostics = %d, want 1", len(diags))
	}
	d := diags[0]
	if d.Path != "run1.mod" {
		t.Errorf("Path = %q", d.Path)
	}
	if d.Record != "ABBREVIATED" {
		t.Errorf("Record = %q", d.Record)
	}
	if d.Kind != "MalformedValue" {
		t.Errorf("Kind = %q", d.Kind)
	}
	// "ABC" sits on line 2; columns are 1-based file positions.
	if d.StartLine != 2 || d.StartColumn != 21 {
		t.Errorf("start = %d:%d, want 2:21", d.StartLine, d.StartColumn)
	}
}

func TestRenderIdentity(t *testing.T) {
	t.Parallel()

	inputs := []string{
		sampleControl,
		"",
		"no records at all\n",
		"$UNKNOWN anything goes here\n$ABBREVIATED COMR = 5\n",
		"$ABBREVIATED COMRES=ABC\n", // parse failure stays verbatim
		"  $SIZES\tLTH = 40\r\n",
		"; preamble note\n$ABBREVIATED COMRES=5 ; carryover\n$SIZES LTH=40\n",
	}
	for _, input := range inputs {
		s := stream.Parse("", []byte(input))
		got, err := s.Render()
		if err != nil {
			t.Errorf("Render(%q): %v", input, err)
			continue
		}
		if string(got) != input {
			t.Errorf("Render(%q) = %q", input, got)
		}
	}
}

func TestRenderAfterEdit(t *testing.T) {
	t.Parallel()

	input := "$PROBLEM test run\n$ABBREVIATED COMR  =  5 PROTECT\n$SIZES LTH=40\n"
	s := stream.Parse("run1.mod", []byte(input))

	abb := s.RecordsOfType("ABBREVIATED")[0]
	abb.Tree.Node(abb.Tree.Find("COMRES")).SetInt(9)

	got, err := s.Render()
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	want := "$PROBLEM test run\n$ABBREVIATED COMRES=9 PROTECT\n$SIZES LTH=40\n"
	if string(got) != want {
		t.Errorf("Render = %q, want %q", got, want)
	}
}
