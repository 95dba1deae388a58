package util

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSafeAlgorithmCallRecoversPanics(t *testing.T) {
	err := SafeAlgorithmCall("source", "RequestData", func() error {
		panic(fmt.Errorf("boom"))
	})
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "RequestData Panic in source: boom"))

	err = SafeAlgorithmCall("source", "RequestData", func() error {
		panic("plain")
	})
	require.NotNil(t, err)
	require.True(t, strings.Contains(err.Error(), "plain"))
}

func TestSafeAlgorithmCallPassesErrors(t *testing.T) {
	expected := fmt.Errorf("failed")
	require.Equal(t, expected, SafeAlgorithmCall("source", "RequestData", func() error { return expected }))
	require.Nil(t, SafeAlgorithmCall("source", "RequestData", func() error { return nil }))
}
