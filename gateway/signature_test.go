package gateway

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "whsec_test_secret"

func TestVerifySignature_RoundTrip(t *testing.T) {
	payload := []byte(`{"id":"evt_1","type":"checkout.session.completed"}`)
	header := SignPayload(payload, testSecret, time.Now())

	assert.NoError(t, VerifySignature(payload, header, testSecret, DefaultSignatureTolerance))
}

func TestVerifySignature_TamperedPayload(t *testing.T) {
	original := []byte(`{"amount":100000}`)
	tampered := []byte(`{"amount":1}`)
	header := SignPayload(original, testSecret, time.Now())

	err := VerifySignature(tampered, header, testSecret, DefaultSignatureTolerance)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignature_WrongSecret(t *testing.T) {
	payload := []byte(`{}`)
	header := SignPayload(payload, "whsec_other", time.Now())

	err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignature_StaleTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	header := SignPayload(payload, testSecret, time.Now().Add(-10*time.Minute))

	err := VerifySignature(payload, header, testSecret, 5*time.Minute)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignature_FutureTimestamp(t *testing.T) {
	payload := []byte(`{}`)
	header := SignPayload(payload, testSecret, time.Now().Add(10*time.Minute))

	err := VerifySignature(payload, header, testSecret, 5*time.Minute)
	assert.ErrorIs(t, err, ErrSignatureInvalid)
}

func TestVerifySignature_MalformedHeaders(t *testing.T) {
	payload := []byte(`{}`)

	for _, header := range []string{
		"",
		"garbage",
		"t=,v1=abc",
		"t=notanumber,v1=abc",
		"v1=abc",
		"t=1700000000",
	} {
		err := VerifySignature(payload, header, testSecret, DefaultSignatureTolerance)
		assert.ErrorIs(t, err, ErrSignatureInvalid, "header %q", header)
	}
}

func TestVerifySignature_AcceptsAnyMatchingCandidate(t *testing.T) {
	payload := []byte(`{"id":"evt_1"}`)
	valid := SignPayload(payload, testSecret, time.Now())

	// A rotated-secret header carries multiple v1 entries.
	header := valid + ",v1=deadbeef"
	require.NoError(t, VerifySignature(payload, header, testSecret, DefaultSignatureTolerance))
}
