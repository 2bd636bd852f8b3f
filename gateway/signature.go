package gateway

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SignatureHeader carries the webhook signature on inbound processor requests.
const SignatureHeader = "Pay-Signature"

// DefaultSignatureTolerance bounds how stale a signed timestamp may be before
// the webhook is rejected as a possible replay.
const DefaultSignatureTolerance = 5 * time.Minute

// ErrSignatureInvalid marks a webhook whose signature header is missing,
// malformed, stale, or does not match the payload.
var ErrSignatureInvalid = errors.New("webhook signature invalid")

// SignPayload produces the signature header value for a payload at the given
// time: "t=<unix>,v1=<hex hmac-sha256(secret, "<unix>.<payload>")>".
func SignPayload(payload []byte, secret string, at time.Time) string {
	ts := at.Unix()
	return fmt.Sprintf("t=%d,v1=%s", ts, computeSignature(payload, secret, ts))
}

// VerifySignature checks a webhook payload against its signature header. The
// signed timestamp must fall within tolerance of the current time; the HMAC is
// compared in constant time. Any failure returns ErrSignatureInvalid.
func VerifySignature(payload []byte, header, secret string, tolerance time.Duration) error {
	if tolerance <= 0 {
		tolerance = DefaultSignatureTolerance
	}

	ts, candidates, err := parseSignatureHeader(header)
	if err != nil {
		return err
	}

	age := time.Since(time.Unix(ts, 0))
	if age > tolerance || age < -tolerance {
		return fmt.Errorf("%w: timestamp outside tolerance window", ErrSignatureInvalid)
	}

	expected := computeSignature(payload, secret, ts)
	for _, candidate := range candidates {
		if hmac.Equal([]byte(expected), []byte(candidate)) {
			return nil
		}
	}
	return fmt.Errorf("%w: no matching signature", ErrSignatureInvalid)
}

func parseSignatureHeader(header string) (ts int64, signatures []string, err error) {
	if header == "" {
		return 0, nil, fmt.Errorf("%w: missing signature header", ErrSignatureInvalid)
	}
	for _, part := range strings.Split(header, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "t":
			ts, err = strconv.ParseInt(kv[1], 10, 64)
			if err != nil {
				return 0, nil, fmt.Errorf("%w: bad timestamp", ErrSignatureInvalid)
			}
		case "v1":
			signatures = append(signatures, kv[1])
		}
	}
	if ts == 0 || len(signatures) == 0 {
		return 0, nil, fmt.Errorf("%w: malformed signature header", ErrSignatureInvalid)
	}
	return ts, signatures, nil
}

func computeSignature(payload []byte, secret string, ts int64) string {
	mac := hmac.New(sha256.New, []byte(secret))
	fmt.Fprintf(mac, "%d.", ts)
	mac.Write(payload)
	return hex.EncodeToString(mac.Sum(nil))
}
