package session

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/fatalSec/DaliVM/internal/config"
	"github.com/fatalSec/DaliVM/internal/object"
)

func TestStaticFieldStoreRoundTrip(t *testing.T) {
	s := New(config.Default())
	require.False(t, s.HasStatic("Lcom/example/Foo;", "COUNT"))

	s.SetStatic("Lcom/example/Foo;", "COUNT", object.Int32(3))
	v, ok := s.GetStatic("Lcom/example/Foo;", "COUNT")
	require.True(t, ok)
	require.Equal(t, int32(3), v.I32)
}

func TestResetStaticFieldStoreClearsEverything(t *testing.T) {
	s := New(config.Default())
	s.SetStatic("Lcom/example/Foo;", "COUNT", object.Int32(3))
	s.MarkClinitDone("Lcom/example/Foo;")

	s.ResetStaticFieldStore()

	require.False(t, s.HasStatic("Lcom/example/Foo;", "COUNT"))
	require.False(t, s.IsClassInitialized("Lcom/example/Foo;"))
}

func TestClinitLifecycle(t *testing.T) {
	s := New(config.Default())
	require.Equal(t, ClinitNotStarted, s.ClinitStateOf("Lcom/example/Foo;"))

	s.MarkClinitInProgress("Lcom/example/Foo;")
	require.Equal(t, ClinitInProgress, s.ClinitStateOf("Lcom/example/Foo;"))
	require.False(t, s.IsClassInitialized("Lcom/example/Foo;"))

	s.MarkClinitDone("Lcom/example/Foo;")
	require.True(t, s.IsClassInitialized("Lcom/example/Foo;"))
}

func TestFrameDepthGuardTripsAtMax(t *testing.T) {
	s := New(config.Default())
	for i := 0; i < MaxFrameDepth; i++ {
		require.NoError(t, s.EnterFrame("Lcom/example/Foo;->run()V"))
	}
	err := s.EnterFrame("Lcom/example/Foo;->run()V")
	require.Error(t, err)

	s.ExitFrame()
	require.Equal(t, MaxFrameDepth-1, s.Depth())
}
