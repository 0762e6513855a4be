package sheets

import (
	"errors"
	"fmt"
	"testing"

	"google.golang.org/api/googleapi"
)

func TestClassify(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want error
	}{
		{"403 maps to permission denied", &googleapi.Error{Code: 403, Message: "The caller does not have permission"}, ErrPermissionDenied},
		{"401 maps to unauthorized", &googleapi.Error{Code: 401, Message: "Request had invalid authentication credentials"}, ErrUnauthorized},
		{"500 maps to upstream", &googleapi.Error{Code: 500, Message: "Internal error"}, ErrUpstream},
		{"wrapped api error still classified", fmt.Errorf("read range: %w", &googleapi.Error{Code: 403}), ErrPermissionDenied},
		{"permission substring fallback", errors.New("oauth2: permission denied for subject"), ErrPermissionDenied},
		{"invalid_grant fallback", errors.New(`oauth2: "invalid_grant" token expired`), ErrUnauthorized},
		{"connection refused fallback", errors.New("dial tcp: connection refused"), ErrUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := classify(tc.err)
			if !errors.Is(got, tc.want) {
				t.Errorf("classify(%v) = %v, want %v", tc.err, got, tc.want)
			}
		})
	}

	t.Run("nil passes through", func(t *testing.T) {
		if classify(nil) != nil {
			t.Error("classify(nil) should be nil")
		}
	})

	t.Run("404 stays unclassified", func(t *testing.T) {
		err := &googleapi.Error{Code: 404}
		got := classify(err)
		if errors.Is(got, ErrPermissionDenied) || errors.Is(got, ErrUnauthorized) || errors.Is(got, ErrUpstream) {
			t.Errorf("404 should not map to a sentinel, got %v", got)
		}
	})
}
