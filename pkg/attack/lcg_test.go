package attack

import (
	"bytes"
	"context"
	"encoding/hex"
	"testing"
)

const (
	glibcA = 1103515245
	glibcC = 12345
	demoM  = 1 << 16
)

var demoMessage = []byte("this message was protected by a toy stream cipher")

func TestLCGEncryptRoundTrip(t *testing.T) {
	ct := LCGEncrypt(demoMessage, 42424, glibcA, glibcC, demoM)

	want := "e59e9e17edeff6a3baaf8899a5ad6a9b21d695fb4957e0745c1aff4e8caa9a380539aee4de960155c843ef3f0c4a832d93"
	if got := hex.EncodeToString(ct); got != want {
		t.Fatalf("ciphertext %s, want %s", got, want)
	}
	if !bytes.Equal(LCGEncrypt(ct, 42424, glibcA, glibcC, demoM), demoMessage) {
		t.Fatal("second application must decrypt")
	}
}

func TestRecoverLCGSeed(t *testing.T) {
	ct := LCGEncrypt(demoMessage, 42424, glibcA, glibcC, demoM)

	seed, err := RecoverLCGSeed(context.Background(), demoMessage[:10], ct[:10], glibcA, glibcC, demoM, demoM)
	if err != nil {
		t.Fatal(err)
	}

	// the low byte keystream depends on the seed only modulo 256, so
	// the search lands on the lowest member of the secret's class
	if seed != 184 {
		t.Fatalf("recovered seed %d, want 184", seed)
	}
	if seed%256 != 42424%256 {
		t.Fatalf("seed %d is not equivalent to the secret", seed)
	}

	plain, ok := RecoverMessage(ct, demoMessage[:10], seed, glibcA, glibcC, demoM)
	if !ok || !bytes.Equal(plain, demoMessage) {
		t.Fatalf("decryption with recovered seed gave %q", plain)
	}
}

func TestRecoverLCGSeedNotFound(t *testing.T) {
	// no seed produces ten 0xFF low bytes in a row under these
	// parameters
	plain := make([]byte, 10)
	cipher := bytes.Repeat([]byte{0xFF}, 10)

	if _, err := RecoverLCGSeed(context.Background(), plain, cipher, glibcA, glibcC, demoM, demoM); err != ErrSeedNotFound {
		t.Fatalf("error %v, want ErrSeedNotFound", err)
	}
}

func TestRecoverLCGSeedArguments(t *testing.T) {
	ctx := context.Background()

	if _, err := RecoverLCGSeed(ctx, make([]byte, 4), make([]byte, 5), glibcA, glibcC, demoM, demoM); err != ErrKnownLengths {
		t.Fatalf("length mismatch error %v, want ErrKnownLengths", err)
	}
	if _, err := RecoverLCGSeed(ctx, nil, nil, glibcA, glibcC, demoM, demoM); err != ErrNoKnownBytes {
		t.Fatalf("empty fragment error %v, want ErrNoKnownBytes", err)
	}
}

func TestRecoverLCGSeedCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	plain := make([]byte, 10)
	cipher := bytes.Repeat([]byte{0xFF}, 10)

	if _, err := RecoverLCGSeed(ctx, plain, cipher, glibcA, glibcC, demoM, demoM); err != context.Canceled {
		t.Fatalf("error %v, want context.Canceled", err)
	}
}

func BenchmarkRecoverLCGSeed(b *testing.B) {
	ct := LCGEncrypt(demoMessage, 42424, glibcA, glibcC, demoM)
	ctx := context.Background()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := RecoverLCGSeed(ctx, demoMessage[:10], ct[:10], glibcA, glibcC, demoM, demoM); err != nil {
			b.Fatal(err)
		}
	}
}
