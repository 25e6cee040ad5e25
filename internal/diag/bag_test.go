package diag

import (
	"testing"

	"github.com/rikushoney/abc-cmake/internal/source"
)

func errAt(code Code, file source.FileID, start, end uint32) Diagnostic {
	return Diagnostic{
		Severity: SevError,
		Code:     code,
		Message:  "test",
		Primary:  source.Span{File: file, Start: start, End: end},
	}
}

func TestBag_Limit(t *testing.T) {
	bag := NewBag(2)
	if !bag.Add(errAt(LexUnknownChar, 0, 0, 1)) {
		t.Fatal("first add rejected")
	}
	if !bag.Add(errAt(LexUnknownChar, 0, 1, 2)) {
		t.Fatal("second add rejected")
	}
	if bag.Add(errAt(LexUnknownChar, 0, 2, 3)) {
		t.Fatal("add over the limit accepted")
	}
	if bag.Len() != 2 {
		t.Errorf("Len = %d", bag.Len())
	}
}

func TestBag_HasErrors(t *testing.T) {
	bag := NewBag(4)
	if bag.HasErrors() {
		t.Error("empty bag has errors")
	}

	bag.Add(Diagnostic{Severity: SevInfo, Code: ObsTimings, Message: "x"})
	if bag.HasErrors() {
		t.Error("info counted as error")
	}
	if bag.HasWarnings() {
		t.Error("info counted as warning")
	}

	bag.Add(Diagnostic{Severity: SevWarning, Code: LexUnknownChar, Message: "x"})
	if bag.HasErrors() {
		t.Error("warning counted as error")
	}
	if !bag.HasWarnings() {
		t.Error("warning not counted")
	}

	bag.Add(errAt(LexUnknownChar, 0, 0, 1))
	if !bag.HasErrors() {
		t.Error("error not counted")
	}
}

func TestBag_Sort(t *testing.T) {
	bag := NewBag(4)
	bag.Add(errAt(LexUnknownChar, 1, 0, 1))
	bag.Add(errAt(LexUnknownChar, 0, 5, 6))
	bag.Add(errAt(LexUnknownChar, 0, 0, 1))

	bag.Sort()
	items := bag.Items()
	if items[0].Primary.File != 0 || items[0].Primary.Start != 0 {
		t.Errorf("items[0] = %+v", items[0].Primary)
	}
	if items[1].Primary.Start != 5 {
		t.Errorf("items[1] = %+v", items[1].Primary)
	}
	if items[2].Primary.File != 1 {
		t.Errorf("items[2] = %+v", items[2].Primary)
	}
}

func TestBag_Dedup(t *testing.T) {
	bag := NewBag(4)
	bag.Add(errAt(LexUnknownChar, 0, 0, 1))
	bag.Add(errAt(LexUnknownChar, 0, 0, 1))
	bag.Add(errAt(LexUnterminatedString, 0, 0, 1))

	bag.Dedup()
	if bag.Len() != 2 {
		t.Errorf("Len = %d after dedup", bag.Len())
	}
}

func TestBag_Merge(t *testing.T) {
	a := NewBag(1)
	a.Add(errAt(LexUnknownChar, 0, 0, 1))
	b := NewBag(1)
	b.Add(errAt(LexUnterminatedString, 0, 1, 2))

	a.Merge(b)
	if a.Len() != 2 {
		t.Errorf("Len = %d after merge", a.Len())
	}
}

func TestCodeID(t *testing.T) {
	tests := []struct {
		code Code
		want string
	}{
		{LexUnknownChar, "DT1001"},
		{IOLoadFileError, "DT2001"},
		{DirMissingMagic, "DT3001"},
		{ResExpectedStruct, "DT4001"},
		{PatchDuplicateHeader, "DT5001"},
		{ObsTimings, "DT9001"},
	}
	for _, tt := range tests {
		if got := tt.code.ID(); got != tt.want {
			t.Errorf("%s.ID() = %q, want %q", tt.code, got, tt.want)
		}
	}
}
