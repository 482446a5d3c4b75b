package cclogger

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func capture(t *testing.T) (*bytes.Buffer, *bytes.Buffer) {
	var out, errOut bytes.Buffer
	stdout, stderr = &out, &errOut
	t.Cleanup(func() {
		stdout, stderr = os.Stdout, os.Stderr
		Init("info", true)
	})
	return &out, &errOut
}

func TestInitLevels(t *testing.T) {
	out, errOut := capture(t)

	Init("warn", false)
	Info("hidden")
	Debug("hidden")
	Warn("shown")
	if out.Len() != 0 {
		t.Errorf("info output at level warn: %q", out.String())
	}
	if got := errOut.String(); got != "WARN shown\n" {
		t.Errorf("warn output == %q", got)
	}

	errOut.Reset()
	Init("debug", false)
	ComponentDebug("Api", "listening on", ":8080")
	if got := errOut.String(); got != "DEBUG [Api] listening on :8080\n" {
		t.Errorf("debug output == %q", got)
	}

	errOut.Reset()
	Init("err", false)
	Warn("hidden")
	ComponentError("Api", "broken")
	if got := errOut.String(); !strings.HasPrefix(got, "ERROR [Api|") || !strings.HasSuffix(got, "] broken\n") {
		t.Errorf("error output == %q", got)
	}
}

func TestSetOutput(t *testing.T) {
	capture(t)
	Init("info", false)
	name := filepath.Join(t.TempDir(), "engine.log")
	SetOutput(name)
	ComponentWarn("Watcher", "config changed")
	SetOutput("stderr")

	data, err := os.ReadFile(name)
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "WARN [Watcher] config changed\n" {
		t.Errorf("log file contains %q", string(data))
	}
}

func TestPrint(t *testing.T) {
	out, errOut := capture(t)

	// printed regardless of the level
	Init("err", false)
	Print("2.5 kN/m")
	ComponentPrint("UnitApi", "Listening on", "localhost:8080")
	if got := out.String(); got != "2.5 kN/m\n[UnitApi] Listening on localhost:8080\n" {
		t.Errorf("print output == %q", got)
	}
	if errOut.Len() != 0 {
		t.Errorf("print wrote to stderr: %q", errOut.String())
	}
}
