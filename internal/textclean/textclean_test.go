package textclean

import "testing"

func TestPlainText(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"200mm Block Wall", "200mm Block Wall"},
		{"  Ready   mix\nconcrete ", "Ready mix concrete"},
		{"<p><b>Y12</b> bars</p>", "Y12 bars"},
		{"Sand &amp; ballast", "Sand & ballast"},
		{"<div>Paint<script>alert(1)</script></div>", "Paint"},
		{"", ""},
		{"Pl\u00e2tre", "Pl\u00e2tre"},
		{"Pla\u0302tre", "Pl\u00e2tre"},
		{"<i>Pla\u0302tre</i> finish", "Pl\u00e2tre finish"},
		{"m\u00b2", "m\u00b2"},
		{"PVC pipe a<b class", "PVC pipe a<b class"},
		{"Rebar <Y16 bars", "Rebar <Y16 bars"},
		{"Wire mesh, gauge<c8", "Wire mesh, gauge<c8"},
		{"Slab thickness < 150mm &amp; > 100mm", "Slab thickness < 150mm & > 100mm"},
		{"Tiles<br/>grade 1", "Tiles grade 1"},
		{"Paint <!-- draft --> finish", "Paint finish"},
	}
	for _, tc := range cases {
		if got := PlainText(tc.in); got != tc.want {
			t.Errorf("PlainText(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
