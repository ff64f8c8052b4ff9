package service

import (
	"bufio"
	"bytes"
	"context"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"
)

const DefaultPollInterval = time.Second

// ProgressMonitor turns the key=value file written by ffmpeg -progress into a
// completion fraction. Reported values never decrease.
type ProgressMonitor struct {
	path     string
	total    float64
	interval time.Duration

	mu   sync.Mutex
	best float64
}

func NewProgressMonitor(path string, totalSeconds float64, interval time.Duration) *ProgressMonitor {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	return &ProgressMonitor{
		path:     path,
		total:    totalSeconds,
		interval: interval,
	}
}

// Poll reads the progress file once. A missing or empty file reports the
// previous value.
func (m *ProgressMonitor) Poll() float64 {
	data, err := os.ReadFile(m.path)
	if err != nil {
		return m.observe(-1)
	}
	elapsed, ok := ParseOutTime(data)
	if !ok {
		return m.observe(-1)
	}
	return m.observe(Fraction(elapsed, m.total))
}

func (m *ProgressMonitor) observe(f float64) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if f > m.best {
		m.best = f
	}
	return m.best
}

// Watch polls until ctx is cancelled. The channel is closed on return.
func (m *ProgressMonitor) Watch(ctx context.Context) <-chan float64 {
	ch := make(chan float64, 1)
	go func() {
		defer close(ch)
		ticker := time.NewTicker(m.interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				select {
				case ch <- m.Poll():
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return ch
}

// ParseOutTime returns the elapsed seconds from the last out_time_ms (or
// out_time_us) line. Despite its name ffmpeg writes microseconds to both.
func ParseOutTime(data []byte) (float64, bool) {
	var (
		last  int64
		found bool
	)
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		key, value, ok := strings.Cut(strings.TrimSpace(sc.Text()), "=")
		if !ok || (key != "out_time_ms" && key != "out_time_us") {
			continue
		}
		us, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			continue
		}
		last, found = us, true
	}
	if !found {
		return 0, false
	}
	return float64(last) / 1e6, true
}

// Fraction clamps elapsed/total to [0,1]. An unknown total reports 0.
func Fraction(elapsed, total float64) float64 {
	if total <= 0 {
		return 0
	}
	f := elapsed / total
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// band maps a stage-local fraction into its slice of overall progress.
type band struct {
	lo, hi float64
}

func (b band) at(f float64) float64 {
	return b.lo + (b.hi-b.lo)*f
}

// runMonitored runs call while a monitor feeds emit. The watcher is stopped and
// drained before returning so no late value follows the caller's next report.
func runMonitored(ctx context.Context, mon *ProgressMonitor, emit func(float64), call func(context.Context) error) error {
	watchCtx, stop := context.WithCancel(ctx)
	updates := mon.Watch(watchCtx)
	drained := make(chan struct{})
	go func() {
		defer close(drained)
		for f := range updates {
			emit(f)
		}
	}()

	err := call(ctx)
	stop()
	<-drained
	return err
}
