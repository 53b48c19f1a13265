package table

import "testing"

func TestColumnIndex(t *testing.T) {
	header := []string{"CHR", "BP", "SNP", "P"}

	for _, v := range []struct {
		Spec     string
		Expected int
		Err      bool
	}{
		{"CHR", 0, false},
		{"P", 3, false},
		{"1", 0, false},
		{"4", 3, false},
		{"-1", 3, false},
		{"-4", 0, false},
		{"0", -1, true},
		{"5", -1, true},
		{"-5", -1, true},
		{"BETA", -1, true},
		{"", -1, true},
	} {
		idx, err := ColumnIndex(header, v.Spec)
		if (err != nil) != v.Err {
			t.Fatalf("%+v: unexpected error state: %v", v, err)
		}
		if idx != v.Expected {
			t.Fatalf("%+v: got %d", v, idx)
		}
	}
}

func TestColumnIndicesCount(t *testing.T) {
	header := []string{"CHR", "BP", "P"}

	if _, err := ColumnIndices(header, []string{"CHR", "BP"}, 3); err == nil {
		t.Fatal("Expected an error when too few columns are given")
	}

	idx, err := ColumnIndices(header, SplitList("CHR, 2 ,-1"), 3)
	if err != nil {
		t.Fatal(err)
	}

	if idx[0] != 0 || idx[1] != 1 || idx[2] != 2 {
		t.Fatalf("Got %v", idx)
	}
}
