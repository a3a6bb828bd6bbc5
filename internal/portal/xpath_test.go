package portal

import "testing"

func TestXPathString(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`10 York Road`, `"10 York Road"`},
		{`O'Connell Street`, `"O'Connell Street"`},
		{`The "Hub"`, `'The "Hub"'`},
		{`It's "mixed"`, `concat("It's ", '"', "mixed", '"')`},
	}
	for _, tt := range tests {
		if got := xpathString(tt.in); got != tt.want {
			t.Errorf("xpathString(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestQueryOption_XPathConvention(t *testing.T) {
	// XPath selectors in the fallback lists must start with "//" so the
	// click helpers pick the right query mode.
	for _, list := range [][]string{
		emailSelectors, continueSelectors, signInSelectors,
		locationPickerSelectors, dateFieldSelectors, nextMonthSelectors,
		doneSelectors, fallbackConfirmSelectors,
	} {
		for _, sel := range list {
			if len(sel) == 0 {
				t.Fatal("empty selector in fallback list")
			}
			if sel[0] == '/' && (len(sel) < 2 || sel[1] != '/') {
				t.Errorf("selector %q looks like XPath but lacks the // prefix", sel)
			}
		}
	}
}
