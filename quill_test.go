package quill

import "testing"

func TestOpenDefaultOptions(t *testing.T) {
	h, err := Open("", DefaultOptions())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()

	if h.Options().Threading != 0 {
		t.Errorf("Threading = %v, want SingleThreaded", h.Options().Threading)
	}
	if h.Engine() == nil {
		t.Error("Engine() returned nil")
	}
}

func TestOpenWithBusyTimeoutAndForeignKeys(t *testing.T) {
	opts := DefaultOptions()
	opts.BusyTimeoutMillis = 500
	h, err := Open("", opts)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer h.Close()
}
