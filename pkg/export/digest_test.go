package export

import "testing"

func TestDigestKnownValue(t *testing.T) {
	// Well-known SHA-256 of "hello world".
	want := "b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9"
	if got := Digest([]byte("hello world")); got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestDigestDistinguishesInputs(t *testing.T) {
	a := Digest([]byte("%PDF-1.4 one"))
	b := Digest([]byte("%PDF-1.4 two"))
	if a == b {
		t.Error("different inputs produced the same digest")
	}
	if a != Digest([]byte("%PDF-1.4 one")) {
		t.Error("same input produced different digests")
	}
}

func TestShortDigest(t *testing.T) {
	if got := ShortDigest("b94d27b9934d3e08"); got != "b94d27b9" {
		t.Errorf("expected b94d27b9, got %s", got)
	}
	if got := ShortDigest("abc"); got != "abc" {
		t.Errorf("short input should pass through, got %s", got)
	}
}
