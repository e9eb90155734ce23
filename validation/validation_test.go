package validation

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestMoney(t *testing.T) {
	def := decimal.NewFromInt(7)
	cases := map[string]string{
		"":          "7",
		"  ":        "7",
		"abc":       "7",
		"1,250.50":  "1250.5",
		" 99.99 ":   "99.99",
		"-3":        "-3",
		"1,2,3.4.5": "7",
	}
	for in, want := range cases {
		if got := Money(in, def); !got.Equal(decimal.RequireFromString(want)) {
			t.Errorf("Money(%q) = %s want %s", in, got, want)
		}
	}
}

func TestInt(t *testing.T) {
	if Int(" 12 ", 1) != 12 || Int("1.5", 1) != 1 || Int("", 3) != 3 {
		t.Fatal("unexpected Int parsing")
	}
}

func TestID(t *testing.T) {
	if id, ok := ID("42"); !ok || id != 42 {
		t.Fatalf("ID(42) = %d %v", id, ok)
	}
	for _, bad := range []string{"", "0", "-1", "x"} {
		if _, ok := ID(bad); ok {
			t.Errorf("ID(%q) accepted", bad)
		}
	}
}

func TestViolations(t *testing.T) {
	v := Violations{}
	if !v.Empty() {
		t.Fatal("new Violations must be empty")
	}
	Required("order_no", " ", v)
	Required("branch", "Deira", v)
	Positive("amount", decimal.Zero, v)
	Positive("paid", decimal.NewFromInt(5), v)
	if id := RequiredID("branch_id", "", v); id != 0 {
		t.Errorf("blank id = %d", id)
	}
	RequiredID("invoice_id", "abc", v)
	if id := RequiredID("order_id", "12", v); id != 12 {
		t.Errorf("RequiredID(12) = %d", id)
	}
	want := Violations{
		"order_no":   "required",
		"amount":     "must_be_positive",
		"branch_id":  "required",
		"invoice_id": "invalid",
	}
	if len(v) != len(want) {
		t.Fatalf("violations = %v", v)
	}
	for field, msg := range want {
		if v[field] != msg {
			t.Errorf("%s = %q want %q", field, v[field], msg)
		}
	}
}
