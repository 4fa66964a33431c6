package maplocator

import "testing"

func TestZoneIDForFile(t *testing.T) {
	cases := []struct {
		parent   string
		filename string
		want     string
	}{
		{"Region2", "base.png", "Region2_Base"},
		{"Region2", "Base.PNG", "Region2_Base"},
		{"Region7", "Lv003Tier012.png", "Region7_L3_12"},
		{"Region7", "lv1tier2.webp", "Region7_L1_2"},
		{"Region7", "LV010TIER001.JPG", "Region7_L10_1"},
		{"Region7", "Lv000Tier000.png", "Region7_L0_0"},
		{"Region3", "overview.png", "overview"},
		{"Region3", "Lv1Tier2.bmp", "Lv1Tier2"}, // 扩展名不在白名单，回退文件名
	}
	for _, c := range cases {
		if got := zoneIDForFile(c.parent, c.filename); got != c.want {
			t.Errorf("zoneIDForFile(%q, %q) = %q, want %q", c.parent, c.filename, got, c.want)
		}
	}
}

func TestStripLeadingZeros(t *testing.T) {
	cases := map[string]string{
		"003": "3",
		"0":   "0",
		"000": "0",
		"120": "120",
		"12":  "12",
	}
	for in, want := range cases {
		if got := stripLeadingZeros(in); got != want {
			t.Errorf("stripLeadingZeros(%q) = %q, want %q", in, got, want)
		}
	}
}
