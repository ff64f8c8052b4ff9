package vidio

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProber_Duration_Errors(t *testing.T) {
	p := NewProber()

	_, err := p.Duration(context.Background(), "")
	assert.Error(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = p.Duration(ctx, "a.mp4")
	assert.ErrorIs(t, err, context.Canceled)

	_, err = p.Duration(context.Background(), filepath.Join(t.TempDir(), "missing.mp4"))
	assert.Error(t, err)
}
