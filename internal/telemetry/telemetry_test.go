package telemetry

import "testing"

func TestServiceVersion_NeverEmpty(t *testing.T) {
	// Test binaries carry no main-module version, so the devel fallback
	// applies; a tagged release build would report its tag instead.
	if v := serviceVersion(); v == "" {
		t.Fatal("serviceVersion returned an empty string")
	}
}

func TestGetTracer_NoopWithoutInit(t *testing.T) {
	tr := GetTracer("jobsift/test")
	if tr == nil {
		t.Fatal("GetTracer returned nil")
	}
}
