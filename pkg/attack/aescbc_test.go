package attack

import (
	"bytes"
	"testing"

	"github.com/Taxdi/Random-Number-Generator/internal/util"
)

var cbcKey = []byte("0123456789abcdef")

func TestPKCS7Pad(t *testing.T) {
	got := pkcs7Pad([]byte("ab"), 16)
	if len(got) != 16 {
		t.Fatalf("padded length %d, want 16", len(got))
	}
	for i := 2; i < 16; i++ {
		if got[i] != 14 {
			t.Fatalf("pad byte %d is %d, want 14", i, got[i])
		}
	}

	// a full block gains a whole pad block
	got = pkcs7Pad(make([]byte, 16), 16)
	if len(got) != 32 || got[31] != 16 {
		t.Fatalf("full block pad: len %d last %d", len(got), got[31])
	}
}

func TestCBCFirstBlockEquation(t *testing.T) {
	// the first block is E(P0 XOR IV), so moving an IV difference
	// into the plaintext leaves it unchanged
	p := []byte("sixteen byte msg")
	iv1 := bytes.Repeat([]byte{7}, 16)
	iv2 := bytes.Repeat([]byte{9}, 16)

	c1, err := CBCEncrypt(cbcKey, iv1, p)
	if err != nil {
		t.Fatal(err)
	}

	shifted := append([]byte(nil), p...)
	util.DoubleXor(shifted, iv1, iv2)
	c2, err := CBCEncrypt(cbcKey, iv2, shifted)
	if err != nil {
		t.Fatal(err)
	}

	if !bytes.Equal(c1[:16], c2[:16]) {
		t.Fatal("first blocks differ")
	}
}

func TestCBCEncryptArguments(t *testing.T) {
	if _, err := CBCEncrypt(cbcKey[:7], make([]byte, 16), []byte("x")); err == nil {
		t.Fatal("bad key length must error")
	}
	if _, err := CBCEncrypt(cbcKey, make([]byte, 8), []byte("x")); err != ErrBlockSize {
		t.Fatalf("short iv error %v, want ErrBlockSize", err)
	}
}

func TestOracleIVSequence(t *testing.T) {
	oracle, err := NewCBCOracle(cbcKey)
	if err != nil {
		t.Fatal(err)
	}

	if iv := oracle.NextIV(); !bytes.Equal(iv, make([]byte, 16)) {
		t.Fatalf("first iv %x, want zeros", iv)
	}

	iv, ct := oracle.Encrypt([]byte("hello"))
	if !bytes.Equal(iv, make([]byte, 16)) || len(ct) != 16 {
		t.Fatalf("first encryption iv %x, %d ciphertext bytes", iv, len(ct))
	}

	next := oracle.NextIV()
	if next[15] != 1 {
		t.Fatalf("second iv %x, want counter 1", next)
	}
}

func TestNewCBCOracleOSKey(t *testing.T) {
	oracle, err := NewCBCOracle(nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, ct := oracle.Encrypt([]byte("probe")); len(ct) != 16 {
		t.Fatalf("ciphertext length %d", len(ct))
	}
}

func TestDetectEqualPlaintext(t *testing.T) {
	oracle, err := NewCBCOracle(cbcKey)
	if err != nil {
		t.Fatal(err)
	}

	secret := []byte("account is valid")
	prevIV, prevCT := oracle.Encrypt(secret)

	candidates := [][]byte{
		[]byte("account invalid!"),
		[]byte("access granted!!"),
		[]byte("account is valid"),
		[]byte("access denied!!!"),
	}

	var found []byte
	for _, cand := range candidates {
		match, err := oracle.DetectEqualPlaintext(prevIV, prevCT[:16], cand)
		if err != nil {
			t.Fatal(err)
		}
		if match {
			if found != nil {
				t.Fatal("more than one candidate flagged")
			}
			found = cand
		}
	}

	if !bytes.Equal(found, secret) {
		t.Fatalf("identified %q, want %q", found, secret)
	}
}

func TestDetectEqualPlaintextArguments(t *testing.T) {
	oracle, err := NewCBCOracle(cbcKey)
	if err != nil {
		t.Fatal(err)
	}

	if _, err := oracle.DetectEqualPlaintext(make([]byte, 8), make([]byte, 16), []byte("x")); err != ErrBlockSize {
		t.Fatalf("short iv error %v, want ErrBlockSize", err)
	}
	if _, err := oracle.DetectEqualPlaintext(make([]byte, 16), make([]byte, 8), []byte("x")); err != ErrBlockSize {
		t.Fatalf("short block error %v, want ErrBlockSize", err)
	}
}
