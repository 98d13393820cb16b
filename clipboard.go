package main

import (
	"fmt"
	"sync"

	"golang.design/x/clipboard"
)

var (
	clipboardOnce sync.Once
	clipboardErr  error
)

// exportToClipboard puts data on the system clipboard as text.
func exportToClipboard(data []byte) error {
	clipboardOnce.Do(func() {
		clipboardErr = clipboard.Init()
	})
	if clipboardErr != nil {
		return fmt.Errorf("clipboard: %w", clipboardErr)
	}
	clipboard.Write(clipboard.FmtText, data)
	return nil
}
