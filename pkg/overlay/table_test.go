package overlay

import "testing"

func TestParseTableBasic(t *testing.T) {
	table := ParseTable("id,value\nR00200,1.5\nR00201,-0.7\n")

	if v, ok := table.Lookup("r00200"); !ok || v != 1.5 {
		t.Errorf("Lookup(r00200) = %v, %v; want 1.5, true", v, ok)
	}
	if v, ok := table.Lookup("rn:r00201"); !ok || v != -0.7 {
		t.Errorf("Lookup(rn:r00201) = %v, %v; want -0.7, true", v, ok)
	}
	if _, ok := table.Lookup("r99999"); ok {
		t.Error("unexpected hit for unknown key")
	}
}

func TestParseTableHeaderDetection(t *testing.T) {
	// Both regex classes match, so row 0 is a header and is skipped.
	table := ParseTable("gene_id,log2fc\nsdhA,2.0\n")
	if v, ok := table.Lookup("sdha"); !ok || v != 2.0 {
		t.Errorf("Lookup(sdha) = %v, %v; want 2.0, true", v, ok)
	}
	if _, ok := table.Lookup("geneid"); ok {
		t.Error("header row must not be registered as data")
	}

	// Only one class matches: not a header, row 0 is data.
	table = ParseTable("R00200,1.0\n")
	if v, ok := table.Lookup("r00200"); !ok || v != 1.0 {
		t.Errorf("headerless table: Lookup(r00200) = %v, %v; want 1.0, true", v, ok)
	}
}

func TestParseTableHeaderSelectsColumns(t *testing.T) {
	// The value column precedes the identifier column.
	table := ParseTable("score\tname_id\n3.5\tR00100\n")
	if v, ok := table.Lookup("r00100"); !ok || v != 3.5 {
		t.Errorf("Lookup(r00100) = %v, %v; want 3.5, true", v, ok)
	}
}

func TestParseTableDelimitersAndBOM(t *testing.T) {
	table := ParseTable("\uFEFFid\tvalue\r\nR00200\t2.5\rR00201\t3.5\n")
	if v, ok := table.Lookup("r00200"); !ok || v != 2.5 {
		t.Errorf("tab/BOM: Lookup(r00200) = %v, %v; want 2.5, true", v, ok)
	}
	if v, ok := table.Lookup("r00201"); !ok || v != 3.5 {
		t.Errorf("bare-\\r line split: Lookup(r00201) = %v, %v; want 3.5, true", v, ok)
	}
}

func TestParseTableQuoting(t *testing.T) {
	// RFC 4180: quoted field with an embedded comma and a doubled quote.
	table := ParseTable("id,value\n\"R00200\",\"1,234.5\"\n")
	if v, ok := table.Lookup("r00200"); !ok || v != 1234.5 {
		t.Errorf("quoted thousands value: got %v, %v; want 1234.5, true", v, ok)
	}

	table = ParseTable(`id,value` + "\n" + `"say ""R1""",2.0` + "\n")
	if table.Len() == 0 {
		t.Fatal("doubled-quote row was dropped")
	}
}

func TestParseTableSkipsBadRows(t *testing.T) {
	table := ParseTable("id,value\n,1.0\nR00200,not-a-number\nR00201,4.0\n")
	if _, ok := table.Lookup("r00200"); ok {
		t.Error("row with unparsable value must be skipped")
	}
	if v, ok := table.Lookup("r00201"); !ok || v != 4.0 {
		t.Errorf("good row lost: got %v, %v; want 4.0, true", v, ok)
	}
}

func TestParseTableLastWriteWins(t *testing.T) {
	table := ParseTable("id,value\nR00200,1.0\nrn:R00200,9.0\n")
	if v, _ := table.Lookup("r00200"); v != 9.0 {
		t.Errorf("colliding keys: got %v, want 9.0 (last write wins)", v)
	}
}

func TestParseTableEmpty(t *testing.T) {
	for _, text := range []string{"", "id,value\n", "\n\n"} {
		if table := ParseTable(text); table.Len() != 0 {
			t.Errorf("ParseTable(%q).Len() = %d, want 0", text, table.Len())
		}
	}
}
