package variantid

import (
	"reflect"
	"testing"
)

func TestResetBIM(t *testing.T) {
	r, err := NewResetter([]int{2, 1, 4, 6, 5})
	if err != nil {
		t.Fatal(err)
	}

	row := []string{"2", "chr2:20289436:SG", "0", "20289436", "C", "A"}
	if err := r.Reset(row); err != nil {
		t.Fatal(err)
	}
	if row[1] != "2:20289436:A:C" {
		t.Fatalf("Got %s", row[1])
	}

	r.KeepOld = true
	row = []string{"2", "chr2:20289436:SG", "0", "20289436", "C", "A"}
	if err := r.Reset(row); err != nil {
		t.Fatal(err)
	}
	if row[1] != "2:20289436:A:C:chr2:20289436:SG" {
		t.Fatalf("Got %s", row[1])
	}
}

func TestResetIDOnly(t *testing.T) {
	r, err := NewResetter([]int{1})
	if err != nil {
		t.Fatal(err)
	}

	for _, v := range []struct {
		ID       string
		Sort     bool
		AddChr   bool
		Expected string
		Err      bool
	}{
		{"1:100:G:A", false, false, "1:100:G:A", false},
		{"1:100:G:A", true, false, "1:100:A:G", false},
		{"chr1:100:G:A", false, false, "1:100:G:A", false},
		{"01:100:G:A", false, true, "chr1:100:G:A", false},
		{"23:100:G:A", false, true, "chrX:100:G:A", false},
		{"26:100:G:A", false, true, "chrMT:100:G:A", false},
		{"27:100:G:A", false, true, "", true},
		{"rs123", false, false, "", true},
		{"1:100:G:A:extra", false, false, "", true},
	} {
		r.SortAlleles = v.Sort
		r.AddChr = v.AddChr

		row := []string{v.ID, "x"}
		err := r.Reset(row)
		if (err != nil) != v.Err {
			t.Fatalf("%+v: unexpected error state: %v", v, err)
		}
		if !v.Err && row[0] != v.Expected {
			t.Fatalf("%+v: got %s", v, row[0])
		}
	}
}

func TestNewResetterRejectsBadOrders(t *testing.T) {
	for _, order := range [][]int{{}, {1, 2}, {0}, {3, 1, 2, 4, -5}} {
		if _, err := NewResetter(order); err == nil {
			t.Fatalf("%v: expected an error", order)
		}
	}

	r, _ := NewResetter([]int{9})
	if err := r.Reset([]string{"1:1:A:C"}); err == nil {
		t.Fatal("Expected an error for a missing column")
	}
}

func TestToBED(t *testing.T) {
	row := []string{"1:108274969:T:C", "1", "108274969"}

	got, err := ToBED(row, 1, ":", false)
	if err != nil {
		t.Fatal(err)
	}
	expected := []string{"chr1", "108274969", "108274969", "T", "C", "1:108274969:T:C", "1", "108274969"}
	if !reflect.DeepEqual(got, expected) {
		t.Fatalf("Got %v", got)
	}

	got, err = ToBED(row, 1, ":", true)
	if err != nil {
		t.Fatal(err)
	}
	if got[0] != "1" {
		t.Fatalf("Expected the chromosome to be left alone, got %s", got[0])
	}

	if _, err := ToBED([]string{"rs1"}, 1, ":", false); err == nil {
		t.Fatal("Expected an error for a malformed ID")
	}

	if _, err := ToBED(row, 4, ":", false); err == nil {
		t.Fatal("Expected an error for a missing column")
	}
}
