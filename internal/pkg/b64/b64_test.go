package b64

import (
	"encoding/base64"
	"testing"
)

func TestDecodeDialects(t *testing.T) {
	const plain = "https://example.com/embed?id=a/b+c"

	tests := []struct {
		name    string
		encoded string
	}{
		{"raw url", base64.RawURLEncoding.EncodeToString([]byte(plain))},
		{"padded url", base64.URLEncoding.EncodeToString([]byte(plain))},
		{"raw std", base64.RawStdEncoding.EncodeToString([]byte(plain))},
		{"padded std", base64.StdEncoding.EncodeToString([]byte(plain))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Decode(tt.encoded)
			if err != nil {
				t.Fatalf("Decode(%q) failed: %v", tt.encoded, err)
			}
			if got != plain {
				t.Errorf("Decode(%q) = %q, want %q", tt.encoded, got, plain)
			}
		})
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	const plain = "https://cdn.example.com/live/stream.m3u8?token=x+y/z"
	got, err := Decode(Encode(plain))
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if got != plain {
		t.Errorf("round trip = %q, want %q", got, plain)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	if _, err := Decode("not base64 at all!!!"); err == nil {
		t.Error("expected error for invalid payload")
	}
}
