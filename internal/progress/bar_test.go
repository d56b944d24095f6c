package progress

import (
	"bytes"
	"sync"
	"testing"
	"time"
)

func TestNilBarIsNoop(t *testing.T) {
	var b *Bar
	b.Tick(time.Millisecond)
	b.Wait()
}

func TestBarConcurrentTicks(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, 100, 4, "queries")
	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 25; j++ {
				b.Tick(time.Millisecond)
			}
		}()
	}
	wg.Wait()
	if got := b.bar.Current(); got != 100 {
		t.Fatalf("current = %d, want 100", got)
	}
	b.Wait()
}

func TestBarZeroElapsedStillAdvances(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, 2, 0, "queries")
	b.Tick(0)
	b.Tick(-time.Second)
	if got := b.bar.Current(); got != 2 {
		t.Fatalf("current = %d, want 2", got)
	}
	b.Wait()
}

func TestBarAbortsWhenShort(t *testing.T) {
	var out bytes.Buffer
	b := New(&out, 10, 1, "queries")
	b.Tick(time.Millisecond)
	b.Wait() // must not hang
}
