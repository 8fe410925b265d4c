// Package translate formats user-facing messages in the host locale.
package translate

import (
	"log"
	"sync"

	"github.com/jeandeaual/go-locale"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var (
	printer     *message.Printer
	printerOnce sync.Once
)

// Printer returns the message printer for the host locale, falling back to
// en-US when the locale cannot be determined.
func Printer() *message.Printer {
	printerOnce.Do(func() {
		locales, err := locale.GetLocales()
		if err != nil {
			log.Printf("marie: locale: %v", err)
		}

		if len(locales) == 0 {
			locales = []string{"en-US"}
		}

		printer = message.NewPrinter(message.MatchLanguage(locales...))
	})

	return printer
}

// SetLanguage forces the printer to a specific BCP 47 language tag.
func SetLanguage(tag string) (err error) {
	lang, err := language.Parse(tag)
	if err != nil {
		return
	}

	printerOnce.Do(func() {})
	printer = message.NewPrinter(lang)

	return
}

// From an en-US Sprintf() format, translate to string.
func From(key message.Reference, args ...any) string {
	return Printer().Sprintf(key, args...)
}
