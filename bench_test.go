package chainmap

import (
	"fmt"
	"io"
	"strconv"
	"testing"

	"github.com/aclements/go-perfevent/perfbench"
)

func BenchmarkMapGetHit(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapGetHit))
	b.Run("impl=chainMap", benchSizes(benchmarkChainMapGetHit))
}

func BenchmarkMapGetMiss(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapGetMiss))
	b.Run("impl=chainMap", benchSizes(benchmarkChainMapGetMiss))
}

func BenchmarkMapPut(b *testing.B) {
	b.Run("impl=runtimeMap", benchSizes(benchmarkRuntimeMapPut))
	b.Run("impl=chainMap", benchSizes(benchmarkChainMapPut))
}

func benchSizes(f func(b *testing.B, n int)) func(*testing.B) {
	// The table is built for small populations; keep a couple of larger
	// sizes to show the linear-chain falloff.
	var cases = []int{6, 12, 18, 24, 30, 64, 128, 256}

	return func(b *testing.B) {
		for _, n := range cases {
			b.Run("len="+strconv.Itoa(n), func(b *testing.B) { f(b, n) })
		}
	}
}

func genKeys(start, end int) []string {
	keys := make([]string, end-start)
	for i := range keys {
		keys[i] = strconv.Itoa(start + i)
	}
	return keys
}

func newBenchMap(b *testing.B) *Map[string, string] {
	m, err := New[string, string](StringHash, StringEqual)
	if err != nil {
		b.Fatal(err)
	}
	return m
}

func benchmarkRuntimeMapGetHit(b *testing.B, n int) {
	m := make(map[string]string, n)
	keys := genKeys(0, n)
	for _, k := range keys {
		m[k] = k
	}

	// Defeat the runtime map's pointer-equality shortcut for string keys
	// so the comparison is content vs content, as it is for chainMap.
	keys = genKeys(0, n)

	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[keys[i%n]]
	}
	cs.Stop()
}

func benchmarkChainMapGetHit(b *testing.B, n int) {
	m := newBenchMap(b)
	defer m.Unref()
	keys := genKeys(0, n)
	for _, k := range keys {
		if err := m.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}

	keys = genKeys(0, n)

	cs := perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(keys[i%n])
	}
	cs.Stop()
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapGetMiss(b *testing.B, n int) {
	m := make(map[string]string, n)
	keys := genKeys(0, n)
	miss := genKeys(-n, 0)
	for _, k := range keys {
		m[k] = k
	}

	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_ = m[miss[i%n]]
	}
	cs.Stop()
}

func benchmarkChainMapGetMiss(b *testing.B, n int) {
	m := newBenchMap(b)
	defer m.Unref()
	keys := genKeys(0, n)
	miss := genKeys(-n, 0)
	for _, k := range keys {
		if err := m.Put(k, k); err != nil {
			b.Fatal(err)
		}
	}

	cs := perfbench.Open(b)
	b.ResetTimer()
	var ok bool
	for i := 0; i < b.N; i++ {
		_, ok = m.Get(miss[i%n])
	}
	cs.Stop()
	b.StopTimer()
	fmt.Fprint(io.Discard, ok)
}

func benchmarkRuntimeMapPut(b *testing.B, n int) {
	keys := genKeys(0, n)

	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := make(map[string]string)
		for _, k := range keys {
			m[k] = k
		}
	}
	cs.Stop()
}

func benchmarkChainMapPut(b *testing.B, n int) {
	keys := genKeys(0, n)

	cs := perfbench.Open(b)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		m := newBenchMap(b)
		for _, k := range keys {
			if err := m.Put(k, k); err != nil {
				b.Fatal(err)
			}
		}
		m.Unref()
	}
	cs.Stop()
}
