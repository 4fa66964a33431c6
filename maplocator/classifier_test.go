package maplocator

import (
	"os"
	"path/filepath"
	"testing"
)

func testClassifier() *zoneClassifier {
	return &zoneClassifier{
		meta: classifierMeta{
			RegionMapping: map[string]string{
				"Map02": "Region2",
				"Map07": "Region7",
			},
		},
	}
}

func TestConvertClassNameToZoneID(t *testing.T) {
	c := testClassifier()
	cases := []struct {
		in   string
		want string
	}{
		{"Map02Base", "Region2_Base"},
		{"Map02BaseMap", "Region2_Base"},
		{"Map07Lv003Tier012", "Region7_L3_12"},
		{"Map07Lv1Tier2", "Region7_L1_2"},
		{"Map99Lv1Tier2", "Map99Lv1Tier2"}, // 前缀不在映射表，原样返回
		{"Map02Unknown", "Map02Unknown"},   // 前缀命中但无规则可套
		{"None", "None"},
		{"abc", "abc"}, // 不足 5 字符
	}
	for _, tc := range cases {
		if got := c.convertClassNameToZoneID(tc.in); got != tc.want {
			t.Errorf("convert(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestConvertClassNameIsIdempotentOnOutput(t *testing.T) {
	// 翻译是确定且全函数: 已翻译的 id 不再匹配类名规则，二次调用恒等
	c := testClassifier()
	inputs := []string{"Map02Base", "Map07Lv003Tier012", "SomethingElse"}
	for _, in := range inputs {
		once := c.convertClassNameToZoneID(in)
		twice := c.convertClassNameToZoneID(once)
		if once != twice {
			t.Errorf("translation not idempotent: %q -> %q -> %q", in, once, twice)
		}
	}
}

func TestClassifierDisabledWithoutModel(t *testing.T) {
	c := newZoneClassifier("", 0.6)
	if c.isLoaded() {
		t.Fatal("classifier without model path must stay disabled")
	}
	c.close()
}

func TestClassifierDisabledOnMissingSidecar(t *testing.T) {
	// 模型文件存在但旁边没有 cls.json
	modelPath := filepath.Join(t.TempDir(), "cls.onnx")
	if err := os.WriteFile(modelPath, []byte("not a model"), 0o644); err != nil {
		t.Fatal(err)
	}
	c := newZoneClassifier(modelPath, 0.6)
	if c.isLoaded() {
		t.Fatal("classifier with missing sidecar must stay disabled")
	}
	c.close()
}
