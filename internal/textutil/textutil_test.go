package textutil

import "testing"

func TestNormalizeName(t *testing.T) {
	cases := map[string]string{
		"結月 ゆかり":  "結月ゆかり",
		"結月　ゆかり":  "結月ゆかり",
		"ＲＩＡ":     "RIA",
		"ｽﾞﾝﾀﾞﾓﾝ": "ズンダモン",
		"":        "",
	}
	for in, want := range cases {
		if got := NormalizeName(in); got != want {
			t.Fatalf("NormalizeName(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestNameMatches(t *testing.T) {
	cases := []struct {
		a, b string
		want bool
	}{
		{"琴葉茜", "琴葉 茜", true},
		{"東北きりたん", "きりたん", true},
		{"ずんだもん", "四国めたん", false},
		{"", "A", false},
	}
	for _, tc := range cases {
		if got := NameMatches(tc.a, tc.b); got != tc.want {
			t.Fatalf("NameMatches(%q, %q) = %v, want %v", tc.a, tc.b, got, tc.want)
		}
	}
}

func TestSanitizeFileName(t *testing.T) {
	cases := map[string]string{
		" a/b:c? ": "a-b-c",
		"結月ゆかり":    "結月ゆかり",
		"琴葉 茜　<葵>": "琴葉_茜_葵",
		"":         "",
	}
	for in, want := range cases {
		if got := SanitizeFileName(in); got != want {
			t.Fatalf("SanitizeFileName(%q) = %q, want %q", in, got, want)
		}
	}
}
