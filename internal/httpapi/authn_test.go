package httpapi

import "testing"

func TestExtractBearerToken(t *testing.T) {
	cases := []struct {
		header string
		want   string
		ok     bool
	}{
		{"Bearer abc.def.ghi", "abc.def.ghi", true},
		{"bearer abc.def.ghi", "abc.def.ghi", true},
		{"Bearer ", "", false},
		{"Basic dXNlcjpwYXNz", "", false},
		{"abc.def.ghi", "", false},
		{"", "", false},
	}
	for _, tc := range cases {
		got, err := extractBearerToken(tc.header)
		if (err == nil) != tc.ok || got != tc.want {
			t.Errorf("extractBearerToken(%q) = (%q, %v), want (%q, ok=%v)", tc.header, got, err, tc.want, tc.ok)
		}
	}
}

func TestIsPublicPath(t *testing.T) {
	public := []string{"/", "/login", "/renew", "/healthz", "/readyz", "/metrics"}
	for _, p := range public {
		if !isPublicPath(p) {
			t.Errorf("expected %s to be public", p)
		}
	}
	private := []string{"/enqueue", "/enqueue-get", "/set-location", "/get-location/1", "/get-user1-data", "/collections-from-redis-cache", "/purge-redis-cache", "/loginx"}
	for _, p := range private {
		if isPublicPath(p) {
			t.Errorf("expected %s to require authentication", p)
		}
	}
}
