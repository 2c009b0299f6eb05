package location

import "testing"

func TestParseBrandRules(t *testing.T) {
	cases := []struct {
		in       string
		merchant string
		area     string
	}{
		{"Shell Dagoretti", "Shell", "Dagoretti"},
		{"shell - Lavington", "Shell", "Lavington"},
		{"Shell", "Shell", "Unknown"},
		{"Total Kikuyu", "Total", "Kikuyu"},
		{"Home_Kikuyu Road", "Home", "Kikuyu Road"},
		{"Home - Kikuyu", "Home", "Kikuyu"},
		{"Home", "Home", "Unknown"},
		{"Love Dale Butchery_Kikuyu", "Love Dale Butchery", "Kikuyu"},
		{"Love Dale Butchery Kikuyu", "Love Dale Butchery", "Kikuyu"},
		// Shorter than the canonical prefix cut: remainder is empty.
		{"Love Dale", "Love Dale Butchery", "Unknown"},
		{"Dupoint Lounge Westlands", "Dupoint Lounge", "Westlands"},
		{"Dupont Lounge Westlands", "Dupoint Lounge", "Westlands"},
		{"Dupoint", "Dupoint Lounge", "Unknown"},
		{"Greenview Kikuyu", "Greenview Restaurant", "Kikuyu"},
		{"Fish Pit Hub Kawangware", "Fish Pit Hub", "Kawangware"},
		{"Junction Pizza Inn", "Pizza Inn", "Junction Mall"},
		{"Junction Mall parking", "Junction Mall", "Junction Mall"},
		{"LeoFresh Kikuyu", "LeoFresh", "Kikuyu"},
		{"Nairobi Chapel Ngong Road", "Nairobi Chapel", "Ngong Road"},
		{"Karura Forest gate B", "Karura Forest", "Karura"},
		{"Rockwell Uthiru", "Rockwell Service Station", "Uthiru"},
		{"Kisii harambee", "Kisii Contribution", "Kisii"},
		{"Naivasha Road", "Naivasha Road", "Naivasha Road"},
	}
	for _, tc := range cases {
		m, a := Parse(tc.in)
		if m != tc.merchant || a != tc.area {
			t.Fatalf("Parse(%q) = (%q, %q), want (%q, %q)", tc.in, m, a, tc.merchant, tc.area)
		}
	}
}

func TestParseRuleOrder(t *testing.T) {
	// "junction pizza inn" textually satisfies the junction mall prefix too;
	// only the earlier rule may win.
	m, a := Parse("Junction Pizza Inn Ngong")
	if m != "Pizza Inn" || a != "Junction Mall" {
		t.Fatalf("got (%q, %q)", m, a)
	}
}

func TestParseFallbacks(t *testing.T) {
	cases := []struct {
		in       string
		merchant string
		area     string
	}{
		{"Mama_Olive Grove", "Mama", "Olive Grove"},
		{"_Westlands", "Unknown", "Westlands"},
		{"Quickmart_", "Quickmart", "Unknown"},
		{"Naivas", "Naivas", "Unknown"},
		{"Naivas Kikuyu", "Naivas Kikuyu", "Unknown"},
		{"Java House Westlands Branch", "Java House", "Westlands Branch"},
		{"a b c d e", "a b", "c d e"},
	}
	for _, tc := range cases {
		m, a := Parse(tc.in)
		if m != tc.merchant || a != tc.area {
			t.Fatalf("Parse(%q) = (%q, %q), want (%q, %q)", tc.in, m, a, tc.merchant, tc.area)
		}
	}
}

func TestParseTotality(t *testing.T) {
	inputs := []string{"", "   ", "\t\n", "___", " _ ", "x", "ShellShellShell"}
	for _, in := range inputs {
		m, a := Parse(in)
		if m == "" || a == "" {
			t.Fatalf("Parse(%q) returned empty field (%q, %q)", in, m, a)
		}
	}
	if m, a := Parse(""); m != Unknown || a != Unknown {
		t.Fatalf("blank input must be fully Unknown, got (%q, %q)", m, a)
	}
}

func TestParseNormalizesWhitespace(t *testing.T) {
	m, a := Parse("  Shell   Dagoretti  ")
	if m != "Shell" || a != "Dagoretti" {
		t.Fatalf("got (%q, %q)", m, a)
	}
}

func TestParseDeterministic(t *testing.T) {
	for i := 0; i < 3; i++ {
		m, a := Parse("Greenview Kikuyu")
		if m != "Greenview Restaurant" || a != "Kikuyu" {
			t.Fatalf("iteration %d: got (%q, %q)", i, m, a)
		}
	}
}
