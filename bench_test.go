package ssv

import (
	"testing"

	"github.com/brianvoe/gofakeit/v6"
)

func BenchmarkAppendInline(b *testing.B) {
	var (
		vals = getVals(b.N)
		s, _ = New[uint64](MaxInlineBytes)
	)

	b.ResetTimer()

	for _, v := range vals {
		if s.IsOnHeap() {
			break
		}
		_ = s.Append(v)
	}
}

func BenchmarkAppendSpilled(b *testing.B) {
	var (
		vals = getVals(b.N)
		s, _ = New[uint64](MaxInlineBytes)
	)

	b.ResetTimer()

	for _, v := range vals {
		_ = s.Append(v)
	}
}

func BenchmarkIndex(b *testing.B) {
	var (
		vals = getVals(1000)
		s, _ = New[uint64](MaxInlineBytes)
	)

	for _, v := range vals {
		_ = s.Append(v)
	}

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = s.Index(i % len(vals))
	}
}

func getVals(total int) [][]byte {
	const seed = 1234567890

	var (
		faker = gofakeit.New(seed)
		vals  = make([][]byte, total)
	)

	for i := range vals {
		vals[i] = []byte(faker.Sentence(4))
	}

	return vals
}
