package wordlist

import (
	"bufio"
	"io"

	"github.com/aead/chacha20/chacha"
	"github.com/minio/sha256-simd"
)

// Copyright © 2022 Matthew R Bonnette. Licensed under the Apache-2.0 license.

const alphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Synthesize writes n newline-terminated pseudo-random candidates of 4 to 12 lowercase
// alphanumerics to w. The same seed always yields the same list.
func Synthesize(w io.Writer, n int, seed []byte) error {
	key, nonce := sha256.Sum256(seed), [chacha.NonceSize]byte{}
	stream, err := chacha.NewCipher(nonce[:], key[:], 8)
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(w, bufSize)
	ks, word := make([]byte, 13), make([]byte, 0, 13)
	for ; n > 0; n-- {
		for i := range ks {
			ks[i] = 0
		}
		stream.XORKeyStream(ks, ks)
		word = word[:0]
		for _, b := range ks[1 : 5+ks[0]%9] {
			word = append(word, alphabet[int(b)%len(alphabet)])
		}
		word = append(word, '\n')
		if _, err = bw.Write(word); err != nil {
			return err
		}
	}
	return bw.Flush()
}
