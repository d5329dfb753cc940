package obs

import "testing"

func TestCanonicalPath(t *testing.T) {
	cases := map[string]string{
		"":                              "/",
		"/metrics":                      "/metrics",
		"/get-location/42":              "/get-location/:user_id",
		"/get-location/user1":           "/get-location/:user_id",
		"/get-location/":                "/get-location/",
		"/get-location/42/extra":        "/get-location/42/extra",
		"/collections-from-redis-cache": "/collections-from-redis-cache",
		"/set-location?debug=1":         "/set-location",
	}
	for input, expected := range cases {
		if got := CanonicalPath(input); got != expected {
			t.Fatalf("CanonicalPath(%q)=%q, want %q", input, got, expected)
		}
	}
}
