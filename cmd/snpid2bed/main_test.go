package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/gwasmisc/gwasmisc/table"
)

func TestSNPID2BED(t *testing.T) {
	input := "SNP CHR BP\n1:108274969:T:C 1 108274969\n\nX:5:A:G   X 5\n"

	for _, v := range []struct {
		Cfg      config
		Expected string
	}{
		{
			config{IDCol: 1, IDSep: ":", Delimiter: table.Whitespace},
			"chr\tstart\tend\tref\talt\tSNP\tCHR\tBP\nchr1\t108274969\t108274969\tT\tC\t1:108274969:T:C\t1\t108274969\nX\t5\t5\tA\tG\tX:5:A:G\tX\t5\n",
		},
		{
			config{IDCol: 1, IDSep: ":", Delimiter: table.Whitespace, NoChr: true},
			"chr\tstart\tend\tref\talt\tSNP\tCHR\tBP\n1\t108274969\t108274969\tT\tC\t1:108274969:T:C\t1\t108274969\nX\t5\t5\tA\tG\tX:5:A:G\tX\t5\n",
		},
	} {
		var out bytes.Buffer
		if err := run(strings.NewReader(input), &out, v.Cfg); err != nil {
			t.Fatal(err)
		}

		if out.String() != v.Expected {
			t.Fatalf("%+v\nGot:\n%s\nExpected:\n%s", v.Cfg, out.String(), v.Expected)
		}
	}
}

func TestSNPID2BEDNoHeader(t *testing.T) {
	var out bytes.Buffer
	cfg := config{IDCol: 2, IDSep: "_", Delimiter: table.Delimiter{Comma: ','}, NoHeader: true}
	if err := run(strings.NewReader("x,2_10_A_T\n"), &out, cfg); err != nil {
		t.Fatal(err)
	}

	if expected := "chr2,10,10,A,T,x,2_10_A_T\n"; out.String() != expected {
		t.Fatalf("Got %q, expected %q", out.String(), expected)
	}

	out.Reset()
	if err := run(strings.NewReader("x,rs1\n"), &out, cfg); err == nil || !strings.Contains(err.Error(), "line 1") {
		t.Fatalf("Expected an error on line 1, got %v", err)
	}
}
