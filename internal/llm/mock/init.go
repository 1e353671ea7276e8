package mock

import (
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
)

func init() {
	llm.RegisterProvider(providerName, func() (llm.Provider, error) {
		return New(), nil
	})
}
