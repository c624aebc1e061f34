package monitoring

import (
	"testing"
)

func TestSetLogger(t *testing.T) {
	original := Logf
	defer func() { Logf = original }()

	called := false
	SetLogger(func(format string, v ...interface{}) {
		called = true
	})
	Logf("test message")
	if !called {
		t.Error("custom logger was not called")
	}

	// nil installs a no-op logger that never calls back
	called = false
	SetLogger(nil)
	Logf("test message")
	if called {
		t.Error("no-op logger should not have triggered callback")
	}
}

func TestLogfDefault(t *testing.T) {
	if Logf == nil {
		t.Error("Logf should not be nil by default")
	}
}

func TestSetVerbose(t *testing.T) {
	originalLogf := Logf
	defer func() {
		Logf = originalLogf
		SetVerbose(false)
	}()

	var lines []string
	SetLogger(func(format string, v ...interface{}) {
		lines = append(lines, format)
	})

	Debugf("hidden")
	if len(lines) != 0 {
		t.Errorf("Debugf logged while verbose disabled: %v", lines)
	}

	SetVerbose(true)
	Debugf("visible")
	if len(lines) != 1 {
		t.Errorf("Debugf did not log while verbose enabled: %v", lines)
	}

	SetVerbose(false)
	Debugf("hidden again")
	if len(lines) != 1 {
		t.Errorf("Debugf logged after verbose disabled: %v", lines)
	}
}
