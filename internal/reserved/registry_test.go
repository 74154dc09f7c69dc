package reserved

import "testing"

func TestDefaultRegistry(t *testing.T) {
	reg := NewDefault()

	for _, h := range []string{
		"portal.canopysites.com",
		"Portal.CanopySites.com",
		"admin.canopysites.com:443",
		"localhost",
		"localhost:3000",
		"api.canopysites.com",
	} {
		if !reg.Contains(h) {
			t.Errorf("expected %q to be reserved", h)
		}
	}

	for _, h := range []string{
		"acme.canopysites.com",
		"portal.canopysites.com.evil.com",
		"example.com",
		"",
	} {
		if reg.Contains(h) {
			t.Errorf("expected %q not to be reserved", h)
		}
	}
}

func TestCustomRegistry(t *testing.T) {
	reg := New("Staging.Canopysites.com.", "")
	if !reg.Contains("staging.canopysites.com") {
		t.Fatal("custom entry not normalised into the set")
	}
	if reg.Contains("localhost") {
		t.Fatal("custom registry must not inherit defaults")
	}
}
