package errors

import (
	"errors"
	"fmt"
	"net"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "github.com/sentinellock/sentinel-web/internal/errors"
)

func TestClassify(t *testing.T) {
	assert.Empty(t, Classify(nil))
	assert.Equal(t, "timeout", Classify(fmt.Errorf("wrap: %w", apperrors.ErrTimeout)))
	assert.Equal(t, "net_dnserror", Classify(fmt.Errorf("dial: %w", &net.DNSError{Err: "no such host", Name: "db"})))
	assert.Equal(t, "errors_errorstring", Classify(errors.New("plain")))
}
