package credentials

import (
	"bytes"
	"testing"
)

func sealerKey() []byte {
	key := make([]byte, 32)
	copy(key, "an example very very secret key!")
	return key
}

func TestSealerRoundtrip(t *testing.T) {
	s, err := NewSealer(sealerKey())
	if err != nil {
		t.Fatalf("NewSealer() error: %v", err)
	}

	plaintext := []byte(`{"access_token":"secret"}`)
	sealed, err := s.Seal(plaintext)
	if err != nil {
		t.Fatalf("Seal() error: %v", err)
	}
	if bytes.Contains(sealed, []byte("secret")) {
		t.Error("sealed blob contains plaintext")
	}

	opened, err := s.Open(sealed)
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	if !bytes.Equal(opened, plaintext) {
		t.Errorf("roundtrip mismatch: %q", opened)
	}
}

func TestSealerRejectsTampering(t *testing.T) {
	s, err := NewSealer(sealerKey())
	if err != nil {
		t.Fatal(err)
	}
	sealed, err := s.Seal([]byte("payload"))
	if err != nil {
		t.Fatal(err)
	}

	sealed[len(sealed)-1] ^= 0xff
	if _, err := s.Open(sealed); err == nil {
		t.Error("Open accepted a tampered blob")
	}

	if _, err := s.Open([]byte("short")); err == nil {
		t.Error("Open accepted a truncated blob")
	}
}

func TestSealerKeyLength(t *testing.T) {
	if _, err := NewSealer([]byte("too short")); err == nil {
		t.Error("NewSealer accepted a short key")
	}
}

func TestSealerNoncesAreUnique(t *testing.T) {
	s, err := NewSealer(sealerKey())
	if err != nil {
		t.Fatal(err)
	}
	a, err := s.Seal([]byte("same input"))
	if err != nil {
		t.Fatal(err)
	}
	b, err := s.Seal([]byte("same input"))
	if err != nil {
		t.Fatal(err)
	}
	if bytes.Equal(a, b) {
		t.Error("two seals of the same plaintext produced identical blobs")
	}
}
