//go:build !usbhw

package logger

import (
	"bytes"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ardnew/usblog/semihost"
)

func TestHosted_DestinationAliases(t *testing.T) {
	assert.False(t, HasUSB)
	assert.Equal(t, DestinationSemihost, DestinationInternalUSB)
	assert.Equal(t, DestinationNone, DestinationExternalUSB)
	assert.Equal(t, "semihost", DestinationInternalUSB.String())
	assert.Equal(t, "none", DestinationExternalUSB.String())
}

func TestHosted_BackendAliases(t *testing.T) {
	assert.Equal(t, reflect.TypeOf((*Semihost)(nil)).Elem(), reflect.TypeOf((*Internal)(nil)).Elem())
	assert.Equal(t, reflect.TypeOf((*Mute)(nil)).Elem(), reflect.TypeOf((*External)(nil)).Elem())
	assert.IsType(t, Semihost{}, Open(DestinationInternalUSB))
	assert.IsType(t, Mute{}, Open(DestinationExternalUSB))
}

func TestHosted_InternalBehavesLikeSemihost(t *testing.T) {
	msg := []byte("Tick:\t0\r\n")

	var viaSemihost, viaInternal bytes.Buffer

	restore := semihost.SetOutput(semihost.Stdout, &viaSemihost)
	var s Logger[Semihost]
	s.Init()
	okSemihost := s.Transmit(msg)
	restore()

	restore = semihost.SetOutput(semihost.Stdout, &viaInternal)
	var i Logger[Internal]
	i.Init()
	okInternal := i.Transmit(msg)
	restore()

	assert.Equal(t, okSemihost, okInternal)
	assert.Equal(t, viaSemihost.Bytes(), viaInternal.Bytes())
	assert.Equal(t, msg, viaInternal.Bytes())
}

func TestHosted_ExternalBehavesLikeMute(t *testing.T) {
	var out bytes.Buffer
	t.Cleanup(semihost.SetOutput(semihost.Stdout, &out))

	var e Logger[External]
	e.Init()
	assert.True(t, e.Transmit([]byte("Tick:\t0\r\n")))
	assert.True(t, e.Transmit(nil))
	assert.Zero(t, out.Len())
}
