package ocean

import "testing"

func TestParseRenderMode(t *testing.T) {
	tests := []struct {
		in      string
		want    RenderMode
		wantErr bool
	}{
		{"geometry", GeometryOnly, false},
		{"Flat", GeometryOnly, false},
		{"normalmap", GeometryPlusNormalMap, false},
		{" normal_map ", GeometryPlusNormalMap, false},
		{"", GeometryPlusNormalMap, false},
		{"wireframe", GeometryPlusNormalMap, true},
	}
	for _, tt := range tests {
		got, err := ParseRenderMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRenderMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseRenderMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestRenderModeCycle(t *testing.T) {
	if GeometryOnly.Next() != GeometryPlusNormalMap {
		t.Error("GeometryOnly.Next() should bake the normal map")
	}
	if GeometryPlusNormalMap.Next() != GeometryOnly {
		t.Error("GeometryPlusNormalMap.Next() should wrap around")
	}
	if GeometryOnly.BakesNormalMap() || !GeometryPlusNormalMap.BakesNormalMap() {
		t.Error("only GeometryPlusNormalMap bakes")
	}
	for _, m := range []RenderMode{GeometryOnly, GeometryPlusNormalMap} {
		back, err := ParseRenderMode(m.String())
		if err != nil || back != m {
			t.Errorf("String/Parse mismatch for %d: %q -> %v, %v", int(m), m.String(), back, err)
		}
	}
	if s := RenderMode(7).String(); s != "RenderMode(7)" {
		t.Errorf("String() = %q", s)
	}
}
