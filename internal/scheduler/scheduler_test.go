package scheduler

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterRejectsBadSpec(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())

	err := s.Register("bad", "not a cron spec", func(context.Context) error { return nil })
	assert.Error(t, err)
}

func TestRegisterAcceptsStandardSpec(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())

	err := s.Register("nightly", "30 2 * * *", func(context.Context) error { return nil })
	require.NoError(t, err)
}

func TestRunRecoversFromPanic(t *testing.T) {
	s := New(context.Background(), zerolog.Nop())

	assert.NotPanics(t, func() {
		s.run("explosive", func(context.Context) error { panic("boom") })
	})
}
